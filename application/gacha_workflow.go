package application

import (
	"context"
	"errors"
	"fmt"

	"gachabot/domain/entities"
	"gachabot/domain/gacha"
	"gachabot/domain/services"
	"gachabot/infrastructure/observability"

	log "github.com/sirupsen/logrus"
)

// TicketRequiredError reports the ticket role a spin needed but the user lacked
type TicketRequiredError struct {
	Role  string
	Count int
}

func (e *TicketRequiredError) Error() string {
	return fmt.Sprintf("the %q role is required to spin %d time(s)", e.Role, e.Count)
}

func (e *TicketRequiredError) Unwrap() error {
	return entities.ErrNoTicket
}

// TicketDefaults are the ticket roles used by guilds that never set their own
type TicketDefaults struct {
	Single string
	Ten    string
}

// SpinResult is a committed spin together with the guild settings needed to present it
type SpinResult struct {
	*entities.SpinReport
	Config *entities.GuildGachaConfig
}

// GachaWorkflow runs spins and redemptions end to end: ticket check, the
// economy transaction and the role effects that follow a commit.
type GachaWorkflow struct {
	uowFactory UnitOfWorkFactory
	roles      RoleGateway
	locks      *KeyedMutex
	rng        gacha.RandomSource
	defaults   TicketDefaults
}

// NewGachaWorkflow creates a new gacha workflow. A nil rng uses crypto/rand
func NewGachaWorkflow(uowFactory UnitOfWorkFactory, roles RoleGateway, rng gacha.RandomSource, defaults TicketDefaults) *GachaWorkflow {
	if rng == nil {
		rng = gacha.DefaultRNG()
	}
	if defaults.Single == "" {
		defaults.Single = entities.DefaultTicketRole
	}
	if defaults.Ten == "" {
		defaults.Ten = entities.DefaultTicketRole10
	}
	return &GachaWorkflow{
		uowFactory: uowFactory,
		roles:      roles,
		locks:      NewKeyedMutex(),
		rng:        rng,
		defaults:   defaults,
	}
}

// GuildConfig returns the guild's settings with the ticket defaults applied
func (w *GachaWorkflow) GuildConfig(ctx context.Context, guildID int64) (*entities.GuildGachaConfig, error) {
	var cfg *entities.GuildGachaConfig
	err := RunInTransaction(ctx, w.uowFactory, guildID, func(uow UnitOfWork) error {
		var err error
		cfg, err = services.NewGuildConfigService(uow.GuildConfigRepository()).GetConfig(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	if cfg.TicketRole == nil || *cfg.TicketRole == "" {
		role := w.defaults.Single
		cfg.TicketRole = &role
	}
	if cfg.TicketRole10 == nil || *cfg.TicketRole10 == "" {
		role := w.defaults.Ten
		cfg.TicketRole10 = &role
	}
	return cfg, nil
}

// Spin checks the ticket, draws count items in one transaction and then
// applies role grants and removes the ticket. Failures after the commit are
// returned as warnings on the report.
func (w *GachaWorkflow) Spin(ctx context.Context, guildID, discordID int64, count int) (*SpinResult, error) {
	if count < 1 || count > services.MaxSpinCount {
		return nil, fmt.Errorf("%w: spin count must be between 1 and %d", entities.ErrInvalidArgument, services.MaxSpinCount)
	}

	cfg, err := w.GuildConfig(ctx, guildID)
	if err != nil {
		return nil, err
	}

	// held from the ticket check through its removal so one ticket pays for one spin
	unlock := w.locks.Lock(userKey(guildID, discordID))
	defer unlock()

	ticket := cfg.TicketRoleFor(count)
	hasTicket, err := w.roles.HasTicket(ctx, guildID, discordID, ticket)
	if err != nil {
		return nil, fmt.Errorf("failed to check ticket role: %w", err)
	}
	if !hasTicket {
		return nil, &TicketRequiredError{Role: ticket, Count: count}
	}

	var report *entities.SpinReport
	err = RunInTransaction(ctx, w.uowFactory, guildID, func(uow UnitOfWork) error {
		gachaService := services.NewGachaService(
			guildID,
			uow.ItemRepository(),
			uow.PityRepository(),
			uow.TokenRepository(),
			uow.CollectionRepository(),
			uow.EventBus(),
			w.rng,
		)

		var err error
		report, err = gachaService.Spin(ctx, discordID, count, guildOwnership{roles: w.roles, guildID: guildID})
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics := observability.GetMetrics()
	granted := make(map[string]bool)
	for _, draw := range report.Draws {
		metrics.RecordDraw(draw.Item.Rarity.String(), draw.Forced, draw.Outcome.TokensAwarded)

		role := draw.Outcome.GrantRole
		if role == "" || granted[role] {
			continue
		}
		granted[role] = true
		if err := w.roles.GrantRole(ctx, guildID, discordID, role); err != nil {
			report.Warnings = append(report.Warnings, w.roleWarning("grant", role, err, guildID, discordID))
		}
	}

	if err := w.roles.RevokeTicket(ctx, guildID, discordID, ticket); err != nil {
		report.Warnings = append(report.Warnings, w.roleWarning("remove", ticket, err, guildID, discordID))
	}

	return &SpinResult{SpinReport: report, Config: cfg}, nil
}

// Redeem spends tokens on an exchange and then grants its role, if any
func (w *GachaWorkflow) Redeem(ctx context.Context, guildID, discordID int64, exchangeID int) (*entities.ExchangeResult, error) {
	unlock := w.locks.Lock(userKey(guildID, discordID))
	defer unlock()

	var result *entities.ExchangeResult
	err := RunInTransaction(ctx, w.uowFactory, guildID, func(uow UnitOfWork) error {
		exchangeService := services.NewExchangeService(
			guildID,
			uow.ExchangeRepository(),
			uow.TokenRepository(),
			uow.EventBus(),
		)

		var err error
		result, err = exchangeService.Redeem(ctx, discordID, exchangeID)
		return err
	})
	if err != nil {
		return nil, err
	}

	observability.GetMetrics().RecordExchange()

	if role := result.GrantRole; role != "" {
		if err := w.roles.GrantRole(ctx, guildID, discordID, role); err != nil {
			result.Warnings = append(result.Warnings, w.roleWarning("grant", role, err, guildID, discordID))
		}
	}
	return result, nil
}

// roleWarning logs a failed role effect and returns the text shown to the user
func (w *GachaWorkflow) roleWarning(action, role string, err error, guildID, discordID int64) string {
	observability.GetMetrics().RecordRoleFailure()
	log.WithFields(log.Fields{
		"guildID":   guildID,
		"discordID": discordID,
		"role":      role,
		"action":    action,
		"error":     err,
	}).Warn("Role effect failed after commit")

	if errors.Is(err, entities.ErrPermissionDenied) {
		return fmt.Sprintf("Could not %s the role %s: the bot lacks permission", action, role)
	}
	if errors.Is(err, entities.ErrNotFound) {
		return fmt.Sprintf("Could not %s the role %s: role not found", action, role)
	}
	return fmt.Sprintf("Could not %s the role %s", action, role)
}
