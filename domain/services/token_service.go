package services

import (
	"context"
	"fmt"

	"gachabot/domain/entities"
	"gachabot/domain/interfaces"
	"gachabot/events"
)

// tokenService implements the TokenService interface
type tokenService struct {
	guildID        int64
	tokenRepo      interfaces.TokenRepository
	eventPublisher interfaces.EventPublisher
}

// NewTokenService creates a new token service
func NewTokenService(guildID int64, tokenRepo interfaces.TokenRepository, eventPublisher interfaces.EventPublisher) interfaces.TokenService {
	return &tokenService{
		guildID:        guildID,
		tokenRepo:      tokenRepo,
		eventPublisher: eventPublisher,
	}
}

// GetBalance returns every tier the user holds
func (s *tokenService) GetBalance(ctx context.Context, discordID int64) (entities.TokenBalance, error) {
	balance, err := s.tokenRepo.GetBalance(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get token balance: %w", err)
	}
	return balance, nil
}

// AddTokens credits one tier and returns the new balance
func (s *tokenService) AddTokens(ctx context.Context, discordID int64, rarity entities.Rarity, amount int64) (entities.TokenBalance, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", entities.ErrInvalidArgument)
	}
	return s.adjust(ctx, discordID, rarity, amount)
}

// RemoveTokens debits one tier, failing with ErrInsufficientFunds when short
func (s *tokenService) RemoveTokens(ctx context.Context, discordID int64, rarity entities.Rarity, amount int64) (entities.TokenBalance, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", entities.ErrInvalidArgument)
	}
	return s.adjust(ctx, discordID, rarity, -amount)
}

func (s *tokenService) adjust(ctx context.Context, discordID int64, rarity entities.Rarity, delta int64) (entities.TokenBalance, error) {
	if err := s.tokenRepo.Adjust(ctx, discordID, rarity, delta); err != nil {
		return nil, fmt.Errorf("failed to adjust %s tokens: %w", rarity, err)
	}

	publishEvent(s.eventPublisher, events.TokensChangedEvent{
		GuildID: s.guildID,
		UserID:  discordID,
		Rarity:  rarity.String(),
		Delta:   delta,
		Reason:  events.ReasonAdmin,
	})

	return s.GetBalance(ctx, discordID)
}

// ResetTokens clears every balance in the guild
func (s *tokenService) ResetTokens(ctx context.Context) (int64, error) {
	n, err := s.tokenRepo.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to reset tokens: %w", err)
	}

	publishEvent(s.eventPublisher, events.TokensChangedEvent{
		GuildID: s.guildID,
		Reason:  events.ReasonReset,
	})
	return n, nil
}
