package application

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"gachabot/domain/entities"
	"gachabot/domain/interfaces"
	"gachabot/events"
)

// memState is one guild's persisted data
type memState struct {
	items       []*entities.Item
	nextItemID  int64
	pity        map[int64]entities.PityState
	tokens      map[int64]entities.TokenBalance
	collections map[int64]map[string]int
	exchanges   []*entities.ExchangeRule
	config      *entities.GuildGachaConfig
}

func newMemState(guildID int64) *memState {
	return &memState{
		pity:        make(map[int64]entities.PityState),
		tokens:      make(map[int64]entities.TokenBalance),
		collections: make(map[int64]map[string]int),
		config:      &entities.GuildGachaConfig{GuildID: guildID},
	}
}

func (s *memState) clone() *memState {
	out := &memState{
		nextItemID:  s.nextItemID,
		pity:        make(map[int64]entities.PityState, len(s.pity)),
		tokens:      make(map[int64]entities.TokenBalance, len(s.tokens)),
		collections: make(map[int64]map[string]int, len(s.collections)),
	}
	for _, item := range s.items {
		copied := *item
		out.items = append(out.items, &copied)
	}
	for k, v := range s.pity {
		out.pity[k] = v
	}
	for k, v := range s.tokens {
		out.tokens[k] = v.Clone()
	}
	for k, v := range s.collections {
		m := make(map[string]int, len(v))
		for name, n := range v {
			m[name] = n
		}
		out.collections[k] = m
	}
	for _, rule := range s.exchanges {
		copied := *rule
		copied.Price = entities.PriceVector{}
		for tier, amount := range rule.Price {
			copied.Price[tier] = amount
		}
		out.exchanges = append(out.exchanges, &copied)
	}
	cfg := *s.config
	out.config = &cfg
	return out
}

// memStore keeps committed state per guild and records flushed events
type memStore struct {
	mu        sync.Mutex
	guilds    map[int64]*memState
	published []events.Event
	commits   int
}

func newMemStore() *memStore {
	return &memStore{guilds: make(map[int64]*memState)}
}

func (s *memStore) state(guildID int64) *memState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.guilds[guildID]
	if !ok {
		st = newMemState(guildID)
		s.guilds[guildID] = st
	}
	return st
}

func (s *memStore) CreateForGuild(guildID int64) UnitOfWork {
	return &memUnitOfWork{store: s, guildID: guildID}
}

// memUnitOfWork works on a copy of the guild state and swaps it in on
// commit. Read-only transactions leave the committed state alone.
type memUnitOfWork struct {
	store   *memStore
	guildID int64
	working *memState
	dirty   bool
	pending []events.Event
}

func (u *memUnitOfWork) Begin(ctx context.Context) error {
	u.store.mu.Lock()
	st, ok := u.store.guilds[u.guildID]
	if !ok {
		st = newMemState(u.guildID)
		u.store.guilds[u.guildID] = st
	}
	u.working = st.clone()
	u.store.mu.Unlock()
	return nil
}

func (u *memUnitOfWork) Commit() error {
	if u.working == nil {
		return fmt.Errorf("no transaction to commit")
	}
	u.store.mu.Lock()
	if u.dirty {
		u.store.guilds[u.guildID] = u.working
	}
	u.store.published = append(u.store.published, u.pending...)
	u.store.commits++
	u.store.mu.Unlock()
	u.working = nil
	u.dirty = false
	u.pending = nil
	return nil
}

func (u *memUnitOfWork) Rollback() error {
	u.working = nil
	u.pending = nil
	return nil
}

func (u *memUnitOfWork) Publish(event events.Event) error {
	u.pending = append(u.pending, event)
	return nil
}

func (u *memUnitOfWork) ItemRepository() interfaces.ItemRepository {
	return &memItems{u}
}
func (u *memUnitOfWork) PityRepository() interfaces.PityRepository {
	return &memPity{u}
}
func (u *memUnitOfWork) TokenRepository() interfaces.TokenRepository {
	return &memTokens{u}
}
func (u *memUnitOfWork) CollectionRepository() interfaces.CollectionRepository {
	return &memCollections{u}
}
func (u *memUnitOfWork) ExchangeRepository() interfaces.ExchangeRepository {
	return &memExchanges{u}
}
func (u *memUnitOfWork) GuildConfigRepository() interfaces.GuildConfigRepository {
	return &memConfig{u}
}
func (u *memUnitOfWork) EventBus() interfaces.EventPublisher {
	return u
}

type memItems struct{ u *memUnitOfWork }

func (r *memItems) GetPool(ctx context.Context) ([]*entities.Item, error) {
	return append([]*entities.Item(nil), r.u.working.items...), nil
}

func (r *memItems) GetByName(ctx context.Context, name string) (*entities.Item, error) {
	for _, item := range r.u.working.items {
		if item.Name == name {
			return item, nil
		}
	}
	return nil, nil
}

func (r *memItems) Create(ctx context.Context, item *entities.Item) error {
	r.u.dirty = true
	if existing, _ := r.GetByName(ctx, item.Name); existing != nil {
		return fmt.Errorf("duplicate item %q", item.Name)
	}
	r.u.working.nextItemID++
	item.ID = r.u.working.nextItemID
	item.GuildID = r.u.guildID
	r.u.working.items = append(r.u.working.items, item)
	return nil
}

func (r *memItems) Update(ctx context.Context, item *entities.Item) error {
	r.u.dirty = true
	for i, existing := range r.u.working.items {
		if existing.ID == item.ID {
			r.u.working.items[i] = item
			return nil
		}
	}
	return entities.ErrNotFound
}

func (r *memItems) Upsert(ctx context.Context, item *entities.Item) (bool, error) {
	r.u.dirty = true
	if existing, _ := r.GetByName(ctx, item.Name); existing != nil {
		item.ID = existing.ID
		return false, r.Update(ctx, item)
	}
	return true, r.Create(ctx, item)
}

func (r *memItems) Delete(ctx context.Context, id int64) error {
	r.u.dirty = true
	for i, existing := range r.u.working.items {
		if existing.ID == id {
			r.u.working.items = append(r.u.working.items[:i], r.u.working.items[i+1:]...)
			return nil
		}
	}
	return entities.ErrNotFound
}

func (r *memItems) DeleteAll(ctx context.Context) (int64, error) {
	r.u.dirty = true
	n := int64(len(r.u.working.items))
	r.u.working.items = nil
	return n, nil
}

type memPity struct{ u *memUnitOfWork }

func (r *memPity) GetForUpdate(ctx context.Context, discordID int64) (*entities.PityState, error) {
	return r.Get(ctx, discordID)
}

func (r *memPity) Get(ctx context.Context, discordID int64) (*entities.PityState, error) {
	state, ok := r.u.working.pity[discordID]
	if !ok {
		state = entities.PityState{GuildID: r.u.guildID, DiscordID: discordID}
	}
	return &state, nil
}

func (r *memPity) Save(ctx context.Context, state *entities.PityState) error {
	r.u.dirty = true
	r.u.working.pity[state.DiscordID] = *state
	return nil
}

func (r *memPity) DeleteAll(ctx context.Context) (int64, error) {
	r.u.dirty = true
	n := int64(len(r.u.working.pity))
	r.u.working.pity = make(map[int64]entities.PityState)
	return n, nil
}

type memTokens struct{ u *memUnitOfWork }

func (r *memTokens) GetBalance(ctx context.Context, discordID int64) (entities.TokenBalance, error) {
	balance := r.u.working.tokens[discordID]
	if balance == nil {
		return entities.TokenBalance{}, nil
	}
	return balance.Clone(), nil
}

func (r *memTokens) Adjust(ctx context.Context, discordID int64, rarity entities.Rarity, delta int64) error {
	r.u.dirty = true
	balance := r.u.working.tokens[discordID]
	if balance == nil {
		balance = entities.TokenBalance{}
	}
	if balance[rarity]+delta < 0 {
		return entities.ErrInsufficientFunds
	}
	balance[rarity] += delta
	r.u.working.tokens[discordID] = balance
	return nil
}

func (r *memTokens) DeleteAll(ctx context.Context) (int64, error) {
	r.u.dirty = true
	var n int64
	for _, balance := range r.u.working.tokens {
		n += int64(len(balance))
	}
	r.u.working.tokens = make(map[int64]entities.TokenBalance)
	return n, nil
}

type memCollections struct{ u *memUnitOfWork }

func (r *memCollections) user(discordID int64) map[string]int {
	m, ok := r.u.working.collections[discordID]
	if !ok {
		m = make(map[string]int)
		r.u.working.collections[discordID] = m
	}
	return m
}

func (r *memCollections) GetCopies(ctx context.Context, discordID int64, itemName string) (int, error) {
	return r.user(discordID)[itemName], nil
}

func (r *memCollections) Increment(ctx context.Context, discordID int64, itemName string, by int) (int, error) {
	r.u.dirty = true
	m := r.user(discordID)
	m[itemName] += by
	return m[itemName], nil
}

func (r *memCollections) ListByUser(ctx context.Context, discordID int64) ([]*entities.CollectionEntry, error) {
	var out []*entities.CollectionEntry
	for name, n := range r.user(discordID) {
		if n > 0 {
			out = append(out, &entities.CollectionEntry{GuildID: r.u.guildID, DiscordID: discordID, ItemName: name, Copies: n})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemName < out[j].ItemName })
	return out, nil
}

func (r *memCollections) Reset(ctx context.Context, discordID int64, itemName string) (bool, error) {
	r.u.dirty = true
	m := r.user(discordID)
	_, ok := m[itemName]
	delete(m, itemName)
	return ok, nil
}

func (r *memCollections) DeleteByItem(ctx context.Context, itemName string) (int64, error) {
	r.u.dirty = true
	var n int64
	for _, m := range r.u.working.collections {
		if _, ok := m[itemName]; ok {
			delete(m, itemName)
			n++
		}
	}
	return n, nil
}

func (r *memCollections) DeleteAll(ctx context.Context) (int64, error) {
	r.u.dirty = true
	var n int64
	for _, m := range r.u.working.collections {
		n += int64(len(m))
	}
	r.u.working.collections = make(map[int64]map[string]int)
	return n, nil
}

type memExchanges struct{ u *memUnitOfWork }

func (r *memExchanges) List(ctx context.Context) ([]*entities.ExchangeRule, error) {
	return append([]*entities.ExchangeRule(nil), r.u.working.exchanges...), nil
}

func (r *memExchanges) Get(ctx context.Context, exchangeID int) (*entities.ExchangeRule, error) {
	for _, rule := range r.u.working.exchanges {
		if rule.ExchangeID == exchangeID {
			return rule, nil
		}
	}
	return nil, nil
}

func (r *memExchanges) Create(ctx context.Context, rewardName string) (*entities.ExchangeRule, error) {
	r.u.dirty = true
	next := 1
	for _, rule := range r.u.working.exchanges {
		if rule.ExchangeID >= next {
			next = rule.ExchangeID + 1
		}
	}
	rule := &entities.ExchangeRule{GuildID: r.u.guildID, ExchangeID: next, RewardName: rewardName, Price: entities.PriceVector{}}
	r.u.working.exchanges = append(r.u.working.exchanges, rule)
	return rule, nil
}

func (r *memExchanges) UpdatePrice(ctx context.Context, exchangeID int, price entities.PriceVector) error {
	r.u.dirty = true
	rule, _ := r.Get(ctx, exchangeID)
	if rule == nil {
		return entities.ErrNotFound
	}
	rule.Price = price
	return nil
}

func (r *memExchanges) UpdateRole(ctx context.Context, exchangeID int, role *string) error {
	r.u.dirty = true
	rule, _ := r.Get(ctx, exchangeID)
	if rule == nil {
		return entities.ErrNotFound
	}
	rule.RoleOnRedeem = role
	return nil
}

func (r *memExchanges) DeleteAll(ctx context.Context) (int64, error) {
	r.u.dirty = true
	n := int64(len(r.u.working.exchanges))
	r.u.working.exchanges = nil
	return n, nil
}

type memConfig struct{ u *memUnitOfWork }

func (r *memConfig) GetOrCreate(ctx context.Context) (*entities.GuildGachaConfig, error) {
	cfg := *r.u.working.config
	return &cfg, nil
}

func (r *memConfig) Update(ctx context.Context, cfg *entities.GuildGachaConfig) error {
	r.u.dirty = true
	copied := *cfg
	r.u.working.config = &copied
	return nil
}

func (r *memConfig) ListGuildIDs(ctx context.Context) ([]int64, error) {
	return []int64{r.u.guildID}, nil
}

// fakeRoles is an in-memory RoleGateway keyed by lower-cased role name
type fakeRoles struct {
	mu        sync.Mutex
	held      map[int64]map[string]bool
	denyGrant map[string]bool
	denyAll   bool
	// keepTickets makes RevokeTicket record the call without removing the role
	keepTickets bool
	// checkDelay stalls HasTicket to widen the window between check and revoke
	checkDelay time.Duration
	grants     []string
	revokes    []string
}

func newFakeRoles() *fakeRoles {
	return &fakeRoles{
		held:      make(map[int64]map[string]bool),
		denyGrant: make(map[string]bool),
	}
}

func (f *fakeRoles) give(discordID int64, role string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.held[discordID] == nil {
		f.held[discordID] = make(map[string]bool)
	}
	f.held[discordID][strings.ToLower(role)] = true
}

func (f *fakeRoles) has(discordID int64, role string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.held[discordID][strings.ToLower(role)]
}

func (f *fakeRoles) HasRole(ctx context.Context, guildID, discordID int64, roleRef string) (bool, error) {
	return f.has(discordID, roleRef), nil
}

func (f *fakeRoles) HasTicket(ctx context.Context, guildID, discordID int64, ticket string) (bool, error) {
	if f.checkDelay > 0 {
		time.Sleep(f.checkDelay)
	}
	return f.has(discordID, ticket), nil
}

func (f *fakeRoles) GrantRole(ctx context.Context, guildID, discordID int64, roleRef string) error {
	f.mu.Lock()
	denied := f.denyAll || f.denyGrant[roleRef]
	f.grants = append(f.grants, roleRef)
	f.mu.Unlock()
	if denied {
		return entities.ErrPermissionDenied
	}
	f.give(discordID, roleRef)
	return nil
}

func (f *fakeRoles) RevokeTicket(ctx context.Context, guildID, discordID int64, ticket string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.revokes = append(f.revokes, ticket)
	if f.denyAll {
		return entities.ErrPermissionDenied
	}
	if !f.keepTickets {
		delete(f.held[discordID], strings.ToLower(ticket))
	}
	return nil
}

// seedItems stores items directly as committed state
func seedItems(store *memStore, guildID int64, items ...*entities.Item) {
	st := store.state(guildID)
	for _, item := range items {
		st.nextItemID++
		item.ID = st.nextItemID
		item.GuildID = guildID
		st.items = append(st.items, item)
	}
}

// manualClock is a Clock the test advances by hand
type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// constantRNG always returns the same value
type constantRNG float64

func (r constantRNG) Float64() float64 { return float64(r) }

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }
