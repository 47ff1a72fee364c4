package repository

import (
	"context"
	"errors"
	"fmt"

	"gachabot/database"
	"gachabot/domain/entities"

	"github.com/jackc/pgx/v5"
)

// PityRepository implements the PityRepository interface
type PityRepository struct {
	q       Queryable
	guildID int64
}

// NewPityRepository creates a new pity repository outside of a transaction
func NewPityRepository(db *database.DB, guildID int64) *PityRepository {
	return &PityRepository{q: db.Pool, guildID: guildID}
}

// NewPityRepositoryScoped creates a new pity repository with a transaction and guild scope
func NewPityRepositoryScoped(tx Queryable, guildID int64) *PityRepository {
	return &PityRepository{q: tx, guildID: guildID}
}

// GetForUpdate creates the row on first use and locks it for the rest of the
// transaction. Concurrent spins by the same user queue here.
func (r *PityRepository) GetForUpdate(ctx context.Context, discordID int64) (*entities.PityState, error) {
	_, err := r.q.Exec(ctx, `
		INSERT INTO user_pity (guild_id, discord_id)
		VALUES ($1, $2)
		ON CONFLICT (guild_id, discord_id) DO NOTHING
	`, r.guildID, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to create pity state for user %d in guild %d: %w", discordID, r.guildID, err)
	}

	query := `
		SELECT guild_id, discord_id, counter, guaranteed_promotional, updated_at
		FROM user_pity
		WHERE guild_id = $1 AND discord_id = $2
		FOR UPDATE
	`

	var state entities.PityState
	err = r.q.QueryRow(ctx, query, r.guildID, discordID).Scan(
		&state.GuildID,
		&state.DiscordID,
		&state.Counter,
		&state.GuaranteedPromotional,
		&state.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to lock pity state for user %d in guild %d: %w", discordID, r.guildID, err)
	}
	return &state, nil
}

// Get returns the user's pity state. A user who never drew reads as zero
func (r *PityRepository) Get(ctx context.Context, discordID int64) (*entities.PityState, error) {
	query := `
		SELECT guild_id, discord_id, counter, guaranteed_promotional, updated_at
		FROM user_pity
		WHERE guild_id = $1 AND discord_id = $2
	`

	state := entities.PityState{GuildID: r.guildID, DiscordID: discordID}
	err := r.q.QueryRow(ctx, query, r.guildID, discordID).Scan(
		&state.GuildID,
		&state.DiscordID,
		&state.Counter,
		&state.GuaranteedPromotional,
		&state.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return &state, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pity state for user %d in guild %d: %w", discordID, r.guildID, err)
	}
	return &state, nil
}

// Save persists the counter and guarantee flag
func (r *PityRepository) Save(ctx context.Context, state *entities.PityState) error {
	query := `
		INSERT INTO user_pity (guild_id, discord_id, counter, guaranteed_promotional, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (guild_id, discord_id) DO UPDATE
		SET counter = EXCLUDED.counter,
		    guaranteed_promotional = EXCLUDED.guaranteed_promotional,
		    updated_at = NOW()
		RETURNING updated_at
	`

	err := r.q.QueryRow(ctx, query, r.guildID, state.DiscordID, state.Counter, state.GuaranteedPromotional).
		Scan(&state.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save pity state for user %d in guild %d: %w", state.DiscordID, r.guildID, err)
	}
	return nil
}

// DeleteAll clears pity for every user of the guild
func (r *PityRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.q.Exec(ctx, `DELETE FROM user_pity WHERE guild_id = $1`, r.guildID)
	if err != nil {
		return 0, fmt.Errorf("failed to reset pity in guild %d: %w", r.guildID, err)
	}
	return result.RowsAffected(), nil
}
