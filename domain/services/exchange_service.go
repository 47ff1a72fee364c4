package services

import (
	"context"
	"fmt"
	"strings"

	"gachabot/domain/entities"
	"gachabot/domain/gacha"
	"gachabot/domain/interfaces"
	"gachabot/events"
)

// exchangeService implements the ExchangeService interface
type exchangeService struct {
	guildID        int64
	exchangeRepo   interfaces.ExchangeRepository
	tokenRepo      interfaces.TokenRepository
	eventPublisher interfaces.EventPublisher
}

// NewExchangeService creates a new exchange service
func NewExchangeService(
	guildID int64,
	exchangeRepo interfaces.ExchangeRepository,
	tokenRepo interfaces.TokenRepository,
	eventPublisher interfaces.EventPublisher,
) interfaces.ExchangeService {
	return &exchangeService{
		guildID:        guildID,
		exchangeRepo:   exchangeRepo,
		tokenRepo:      tokenRepo,
		eventPublisher: eventPublisher,
	}
}

// ListExchanges returns the rules ordered by id
func (s *exchangeService) ListExchanges(ctx context.Context) ([]*entities.ExchangeRule, error) {
	rules, err := s.exchangeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list exchanges: %w", err)
	}
	return rules, nil
}

// CreateExchange adds a free rule with the next sequential id
func (s *exchangeService) CreateExchange(ctx context.Context, rewardName string) (*entities.ExchangeRule, error) {
	rewardName = strings.TrimSpace(rewardName)
	if rewardName == "" {
		return nil, fmt.Errorf("%w: reward name is required", entities.ErrInvalidArgument)
	}

	rule, err := s.exchangeRepo.Create(ctx, rewardName)
	if err != nil {
		return nil, fmt.Errorf("failed to create exchange: %w", err)
	}
	return rule, nil
}

// EditPrice replaces the price vector of a rule
func (s *exchangeService) EditPrice(ctx context.Context, exchangeID int, price entities.PriceVector) (*entities.ExchangeRule, error) {
	rule, err := s.getRule(ctx, exchangeID)
	if err != nil {
		return nil, err
	}
	for tier, amount := range price {
		if amount < 0 {
			return nil, fmt.Errorf("%w: %s price cannot be negative", entities.ErrInvalidArgument, tier)
		}
	}

	if err := s.exchangeRepo.UpdatePrice(ctx, exchangeID, price); err != nil {
		return nil, fmt.Errorf("failed to update exchange price: %w", err)
	}
	rule.Price = price
	return rule, nil
}

// EditRole sets or clears the role granted on redeem
func (s *exchangeService) EditRole(ctx context.Context, exchangeID int, role string) (*entities.ExchangeRule, error) {
	rule, err := s.getRule(ctx, exchangeID)
	if err != nil {
		return nil, err
	}

	var rolePtr *string
	if role = strings.TrimSpace(role); role != "" {
		rolePtr = &role
	}
	if err := s.exchangeRepo.UpdateRole(ctx, exchangeID, rolePtr); err != nil {
		return nil, fmt.Errorf("failed to update exchange role: %w", err)
	}
	rule.RoleOnRedeem = rolePtr
	return rule, nil
}

// ResetExchanges removes every rule and returns how many were removed
func (s *exchangeService) ResetExchanges(ctx context.Context) (int64, error) {
	n, err := s.exchangeRepo.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to reset exchanges: %w", err)
	}
	return n, nil
}

// Redeem debits the rule's price. Affordability is checked against the
// current balance first; each tier's debit is then guarded again by the
// repository so a concurrent spend cannot push a tier negative.
func (s *exchangeService) Redeem(ctx context.Context, discordID int64, exchangeID int) (*entities.ExchangeResult, error) {
	rule, err := s.getRule(ctx, exchangeID)
	if err != nil {
		return nil, err
	}

	balance, err := s.tokenRepo.GetBalance(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get token balance: %w", err)
	}

	next, grantRole, err := gacha.Redeem(rule, balance)
	if err != nil {
		return nil, err
	}

	for _, tier := range entities.AllRarities {
		amount := rule.Price[tier]
		if amount <= 0 {
			continue
		}
		if err := s.tokenRepo.Adjust(ctx, discordID, tier, -amount); err != nil {
			return nil, fmt.Errorf("failed to debit %s tokens: %w", tier, err)
		}
	}

	price := make(map[string]int64, len(rule.Price))
	for tier, amount := range rule.Price {
		if amount > 0 {
			price[tier.String()] = amount
		}
	}
	publishEvent(s.eventPublisher, events.ExchangeRedeemedEvent{
		GuildID:    s.guildID,
		UserID:     discordID,
		ExchangeID: rule.ExchangeID,
		RewardName: rule.RewardName,
		Price:      price,
	})

	return &entities.ExchangeResult{Rule: rule, Balance: next, GrantRole: grantRole}, nil
}

func (s *exchangeService) getRule(ctx context.Context, exchangeID int) (*entities.ExchangeRule, error) {
	rule, err := s.exchangeRepo.Get(ctx, exchangeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get exchange: %w", err)
	}
	if rule == nil {
		return nil, fmt.Errorf("exchange %d: %w", exchangeID, entities.ErrNotFound)
	}
	return rule, nil
}
