package application

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// DefaultConfirmationTimeout is how long a destructive request waits for confirm
const DefaultConfirmationTimeout = 30 * time.Second

// ConfirmationKind names a destructive command that needs confirmation
type ConfirmationKind string

const (
	KindDeleteItem  ConfirmationKind = "deleteitem"
	KindResetItems  ConfirmationKind = "resetitems"
	KindResetTokens ConfirmationKind = "resettokens"
)

// confirmationOrder decides which pending kind a single confirm executes
var confirmationOrder = []ConfirmationKind{KindDeleteItem, KindResetItems, KindResetTokens}

// Clock is the time source of the gate
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the wall clock
func SystemClock() Clock { return systemClock{} }

// PendingConfirmation is a destructive request waiting for confirm
type PendingConfirmation struct {
	GuildID   int64
	DiscordID int64
	Kind      ConfirmationKind
	Argument  string // Item name for deleteitem, empty otherwise
	ExpiresAt time.Time
}

type confirmationKey struct {
	guildID   int64
	discordID int64
	kind      ConfirmationKind
}

// ConfirmationGate holds at most one pending request per (guild, user, kind).
// Expiry is a deadline compared against the clock; Sweep only frees memory.
type ConfirmationGate struct {
	mu      sync.Mutex
	clock   Clock
	timeout time.Duration
	pending map[confirmationKey]PendingConfirmation
}

// NewConfirmationGate creates a gate. A nil clock means the wall clock and a
// non-positive timeout means DefaultConfirmationTimeout.
func NewConfirmationGate(clock Clock, timeout time.Duration) *ConfirmationGate {
	if clock == nil {
		clock = SystemClock()
	}
	if timeout <= 0 {
		timeout = DefaultConfirmationTimeout
	}
	return &ConfirmationGate{
		clock:   clock,
		timeout: timeout,
		pending: make(map[confirmationKey]PendingConfirmation),
	}
}

// Timeout returns the confirmation window
func (g *ConfirmationGate) Timeout() time.Duration {
	return g.timeout
}

// Request records a pending operation, replacing any earlier request of the
// same kind by the same user and restarting its window.
func (g *ConfirmationGate) Request(guildID, discordID int64, kind ConfirmationKind, argument string) PendingConfirmation {
	g.mu.Lock()
	defer g.mu.Unlock()

	p := PendingConfirmation{
		GuildID:   guildID,
		DiscordID: discordID,
		Kind:      kind,
		Argument:  argument,
		ExpiresAt: g.clock.Now().Add(g.timeout),
	}
	g.pending[confirmationKey{guildID, discordID, kind}] = p
	return p
}

// Take removes and returns the request a confirm should execute. Expired
// requests are dropped on the way and never returned.
func (g *ConfirmationGate) Take(guildID, discordID int64) (PendingConfirmation, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.clock.Now()
	for _, kind := range confirmationOrder {
		key := confirmationKey{guildID, discordID, kind}
		p, ok := g.pending[key]
		if !ok {
			continue
		}
		delete(g.pending, key)
		if !now.Before(p.ExpiresAt) {
			continue
		}
		return p, true
	}
	return PendingConfirmation{}, false
}

// Cancel drops every pending request of the user and returns how many were live
func (g *ConfirmationGate) Cancel(guildID, discordID int64) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.clock.Now()
	cancelled := 0
	for _, kind := range confirmationOrder {
		key := confirmationKey{guildID, discordID, kind}
		if p, ok := g.pending[key]; ok {
			if now.Before(p.ExpiresAt) {
				cancelled++
			}
			delete(g.pending, key)
		}
	}
	return cancelled
}

// Sweep drops expired requests and returns how many were removed
func (g *ConfirmationGate) Sweep() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.clock.Now()
	removed := 0
	for key, p := range g.pending {
		if !now.Before(p.ExpiresAt) {
			delete(g.pending, key)
			removed++
		}
	}
	if removed > 0 {
		log.WithField("expired", removed).Debug("Swept expired confirmations")
	}
	return removed
}

// PendingCount returns the number of stored requests, expired or not
func (g *ConfirmationGate) PendingCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.pending)
}
