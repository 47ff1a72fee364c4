package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"gachabot/domain/entities"
	"gachabot/domain/interfaces"
)

// guildConfigService implements the GuildConfigService interface
type guildConfigService struct {
	configRepo interfaces.GuildConfigRepository
}

// NewGuildConfigService creates a new guild config service
func NewGuildConfigService(configRepo interfaces.GuildConfigRepository) interfaces.GuildConfigService {
	return &guildConfigService{configRepo: configRepo}
}

// GetConfig returns the guild's settings, creating them on first use
func (s *guildConfigService) GetConfig(ctx context.Context) (*entities.GuildGachaConfig, error) {
	cfg, err := s.configRepo.GetOrCreate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get guild config: %w", err)
	}
	return cfg, nil
}

// SetTicketRole sets the role required for single or ten spins
func (s *guildConfigService) SetTicketRole(ctx context.Context, count int, role string) (*entities.GuildGachaConfig, error) {
	role = strings.TrimSpace(role)
	if role == "" {
		return nil, fmt.Errorf("%w: role is required", entities.ErrInvalidArgument)
	}
	return s.update(ctx, func(cfg *entities.GuildGachaConfig) {
		if count >= 10 {
			cfg.TicketRole10 = &role
		} else {
			cfg.TicketRole = &role
		}
	})
}

// SetLoadingGif sets or clears the pull animation. "remove" or an empty url clears it
func (s *guildConfigService) SetLoadingGif(ctx context.Context, ssr bool, rawURL string) (*entities.GuildGachaConfig, error) {
	rawURL = strings.TrimSpace(rawURL)
	var gif *string
	if rawURL != "" && !strings.EqualFold(rawURL, "remove") {
		u, err := url.ParseRequestURI(rawURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return nil, fmt.Errorf("%w: %q is not an http(s) url", entities.ErrInvalidArgument, rawURL)
		}
		gif = &rawURL
	}
	return s.update(ctx, func(cfg *entities.GuildGachaConfig) {
		if ssr {
			cfg.SSRGif = gif
		} else {
			cfg.PullGif = gif
		}
	})
}

// SetCurrency sets the emoji shown next to token balances
func (s *guildConfigService) SetCurrency(ctx context.Context, emoji string) (*entities.GuildGachaConfig, error) {
	emoji = strings.TrimSpace(emoji)
	if emoji == "" {
		return nil, fmt.Errorf("%w: emoji is required", entities.ErrInvalidArgument)
	}
	return s.update(ctx, func(cfg *entities.GuildGachaConfig) {
		cfg.CurrencyEmoji = &emoji
	})
}

func (s *guildConfigService) update(ctx context.Context, mutate func(*entities.GuildGachaConfig)) (*entities.GuildGachaConfig, error) {
	cfg, err := s.GetConfig(ctx)
	if err != nil {
		return nil, err
	}
	mutate(cfg)
	if err := s.configRepo.Update(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to update guild config: %w", err)
	}
	return cfg, nil
}
