package repository

import (
	"context"
	"fmt"

	"gachabot/database"
	"gachabot/domain/entities"
)

// GuildConfigRepository implements the GuildConfigRepository interface
type GuildConfigRepository struct {
	q       Queryable
	guildID int64
}

// NewGuildConfigRepository creates a new guild config repository outside of a transaction
func NewGuildConfigRepository(db *database.DB, guildID int64) *GuildConfigRepository {
	return &GuildConfigRepository{q: db.Pool, guildID: guildID}
}

// NewGuildConfigRepositoryScoped creates a new guild config repository with a transaction and guild scope
func NewGuildConfigRepositoryScoped(tx Queryable, guildID int64) *GuildConfigRepository {
	return &GuildConfigRepository{q: tx, guildID: guildID}
}

// GetOrCreate returns the guild's config, inserting an empty row on first use
func (r *GuildConfigRepository) GetOrCreate(ctx context.Context) (*entities.GuildGachaConfig, error) {
	// The no-op update makes RETURNING yield the existing row on conflict
	query := `
		INSERT INTO guild_gacha_config (guild_id)
		VALUES ($1)
		ON CONFLICT (guild_id) DO UPDATE SET guild_id = EXCLUDED.guild_id
		RETURNING guild_id, ticket_role, ticket_role_10, pull_gif, ssr_gif, currency_emoji
	`

	var cfg entities.GuildGachaConfig
	err := r.q.QueryRow(ctx, query, r.guildID).Scan(
		&cfg.GuildID,
		&cfg.TicketRole,
		&cfg.TicketRole10,
		&cfg.PullGif,
		&cfg.SSRGif,
		&cfg.CurrencyEmoji,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get guild config for guild %d: %w", r.guildID, err)
	}
	return &cfg, nil
}

// Update persists every field of the config
func (r *GuildConfigRepository) Update(ctx context.Context, cfg *entities.GuildGachaConfig) error {
	result, err := r.q.Exec(ctx, `
		UPDATE guild_gacha_config
		SET ticket_role = $2,
		    ticket_role_10 = $3,
		    pull_gif = $4,
		    ssr_gif = $5,
		    currency_emoji = $6,
		    updated_at = NOW()
		WHERE guild_id = $1
	`, r.guildID, cfg.TicketRole, cfg.TicketRole10, cfg.PullGif, cfg.SSRGif, cfg.CurrencyEmoji)
	if err != nil {
		return fmt.Errorf("failed to update guild config for guild %d: %w", r.guildID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("guild config for guild %d: %w", r.guildID, entities.ErrNotFound)
	}
	return nil
}

// ListGuildIDs returns every guild that has a config row
func (r *GuildConfigRepository) ListGuildIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.q.Query(ctx, `SELECT guild_id FROM guild_gacha_config ORDER BY guild_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list guilds: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan guild id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
