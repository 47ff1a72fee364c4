package services

import (
	"context"
	"fmt"

	"gachabot/domain/entities"
	"gachabot/domain/gacha"
	"gachabot/domain/interfaces"
	"gachabot/events"
)

// MaxSpinCount caps a single spin command.
const MaxSpinCount = 10

// gachaService implements the GachaService interface
type gachaService struct {
	guildID        int64
	itemRepo       interfaces.ItemRepository
	pityRepo       interfaces.PityRepository
	tokenRepo      interfaces.TokenRepository
	collectionRepo interfaces.CollectionRepository
	eventPublisher interfaces.EventPublisher
	rng            gacha.RandomSource
}

// NewGachaService creates a new gacha service
func NewGachaService(
	guildID int64,
	itemRepo interfaces.ItemRepository,
	pityRepo interfaces.PityRepository,
	tokenRepo interfaces.TokenRepository,
	collectionRepo interfaces.CollectionRepository,
	eventPublisher interfaces.EventPublisher,
	rng gacha.RandomSource,
) interfaces.GachaService {
	if rng == nil {
		rng = gacha.DefaultRNG()
	}
	return &gachaService{
		guildID:        guildID,
		itemRepo:       itemRepo,
		pityRepo:       pityRepo,
		tokenRepo:      tokenRepo,
		collectionRepo: collectionRepo,
		eventPublisher: eventPublisher,
		rng:            rng,
	}
}

// Spin draws count items and persists every state change inside the caller's
// transaction. Nothing is written when the pool is empty.
func (s *gachaService) Spin(ctx context.Context, discordID int64, count int, ownership gacha.OwnershipChecker) (*entities.SpinReport, error) {
	if count < 1 || count > MaxSpinCount {
		return nil, fmt.Errorf("%w: spin count must be between 1 and %d", entities.ErrInvalidArgument, MaxSpinCount)
	}

	pool, err := s.itemRepo.GetPool(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load item pool: %w", err)
	}
	if len(pool) == 0 || entities.TotalWeight(pool) <= 0 {
		return nil, entities.ErrEmptyPool
	}

	pity, err := s.pityRepo.GetForUpdate(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to load pity state: %w", err)
	}

	selections, finalPity, err := gacha.DrawBatch(pool, *pity, count, s.rng)
	if err != nil {
		return nil, err
	}

	holdings, err := s.loadHoldings(ctx, discordID, selections, ownership)
	if err != nil {
		return nil, err
	}
	results, _ := gacha.ResolveBatch(selections, holdings)

	finalPity.GuildID = s.guildID
	finalPity.DiscordID = discordID
	if err := s.pityRepo.Save(ctx, &finalPity); err != nil {
		return nil, fmt.Errorf("failed to save pity state: %w", err)
	}

	for _, r := range results {
		if err := s.applyOutcome(ctx, discordID, r); err != nil {
			return nil, err
		}
	}

	balance, err := s.tokenRepo.GetBalance(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get token balance: %w", err)
	}

	return &entities.SpinReport{Draws: results, Balance: balance}, nil
}

// loadHoldings asks once per distinct role and item name what the user
// already owns before the batch starts.
func (s *gachaService) loadHoldings(ctx context.Context, discordID int64, selections []gacha.Selection, ownership gacha.OwnershipChecker) (gacha.Holdings, error) {
	holdings := gacha.Holdings{
		Roles:  make(map[string]bool),
		Copies: make(map[string]int),
	}

	for _, sel := range selections {
		item := sel.Item
		if _, seen := holdings.Copies[item.Name]; !seen {
			copies, err := s.collectionRepo.GetCopies(ctx, discordID, item.Name)
			if err != nil {
				return holdings, fmt.Errorf("failed to get collection for %s: %w", item.Name, err)
			}
			holdings.Copies[item.Name] = copies
		}

		if !item.HasRole() || ownership == nil {
			continue
		}
		role := *item.RoleOnAcquire
		if _, seen := holdings.Roles[role]; seen {
			continue
		}
		owned, err := ownership.Owns(ctx, discordID, role)
		if err != nil {
			return holdings, fmt.Errorf("failed to check ownership of %s: %w", role, err)
		}
		holdings.Roles[role] = owned
	}
	return holdings, nil
}

func (s *gachaService) applyOutcome(ctx context.Context, discordID int64, r entities.DrawResult) error {
	outcome := r.Outcome

	if outcome.TokensAwarded > 0 {
		if err := s.tokenRepo.Adjust(ctx, discordID, outcome.TokenRarity, outcome.TokensAwarded); err != nil {
			return fmt.Errorf("failed to award token: %w", err)
		}
		publishEvent(s.eventPublisher, events.TokensChangedEvent{
			GuildID: s.guildID,
			UserID:  discordID,
			Rarity:  outcome.TokenRarity.String(),
			Delta:   outcome.TokensAwarded,
			Reason:  events.ReasonDuplicate,
		})
	} else {
		if _, err := s.collectionRepo.Increment(ctx, discordID, r.Item.Name, 1); err != nil {
			return fmt.Errorf("failed to update collection: %w", err)
		}
	}

	publishEvent(s.eventPublisher, events.DrawCompletedEvent{
		GuildID:       s.guildID,
		UserID:        discordID,
		ItemName:      r.Item.Name,
		Rarity:        r.Item.Rarity.String(),
		IsDuplicate:   outcome.IsDuplicate,
		IsPromotional: r.Item.IsPromotional,
		Forced:        r.Forced,
		PityCounter:   r.Pity.Counter,
		TokensAwarded: outcome.TokensAwarded,
	})
	return nil
}

// GetPity returns the user's pity state
func (s *gachaService) GetPity(ctx context.Context, discordID int64) (*entities.PityState, error) {
	pity, err := s.pityRepo.Get(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get pity state: %w", err)
	}
	return pity, nil
}
