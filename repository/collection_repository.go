package repository

import (
	"context"
	"errors"
	"fmt"

	"gachabot/database"
	"gachabot/domain/entities"

	"github.com/jackc/pgx/v5"
)

// CollectionRepository implements the CollectionRepository interface
type CollectionRepository struct {
	q       Queryable
	guildID int64
}

// NewCollectionRepository creates a new collection repository outside of a transaction
func NewCollectionRepository(db *database.DB, guildID int64) *CollectionRepository {
	return &CollectionRepository{q: db.Pool, guildID: guildID}
}

// NewCollectionRepositoryScoped creates a new collection repository with a transaction and guild scope
func NewCollectionRepositoryScoped(tx Queryable, guildID int64) *CollectionRepository {
	return &CollectionRepository{q: tx, guildID: guildID}
}

// GetCopies returns how many copies of an item the user owns
func (r *CollectionRepository) GetCopies(ctx context.Context, discordID int64, itemName string) (int, error) {
	var copies int
	err := r.q.QueryRow(ctx, `
		SELECT copies
		FROM user_collectables
		WHERE guild_id = $1 AND discord_id = $2 AND item_name = $3
	`, r.guildID, discordID, itemName).Scan(&copies)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get copies of %q for user %d in guild %d: %w", itemName, discordID, r.guildID, err)
	}
	return copies, nil
}

// Increment adds copies and returns the new count
func (r *CollectionRepository) Increment(ctx context.Context, discordID int64, itemName string, by int) (int, error) {
	var copies int
	err := r.q.QueryRow(ctx, `
		INSERT INTO user_collectables (guild_id, discord_id, item_name, copies)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (guild_id, discord_id, item_name) DO UPDATE
		SET copies = user_collectables.copies + EXCLUDED.copies
		RETURNING copies
	`, r.guildID, discordID, itemName, by).Scan(&copies)
	if err != nil {
		return 0, fmt.Errorf("failed to increment %q for user %d in guild %d: %w", itemName, discordID, r.guildID, err)
	}
	return copies, nil
}

// ListByUser returns every entry with at least one copy
func (r *CollectionRepository) ListByUser(ctx context.Context, discordID int64) ([]*entities.CollectionEntry, error) {
	rows, err := r.q.Query(ctx, `
		SELECT guild_id, discord_id, item_name, copies
		FROM user_collectables
		WHERE guild_id = $1 AND discord_id = $2 AND copies > 0
		ORDER BY item_name
	`, r.guildID, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to query collection for user %d in guild %d: %w", discordID, r.guildID, err)
	}
	defer rows.Close()

	var entries []*entities.CollectionEntry
	for rows.Next() {
		var e entities.CollectionEntry
		if err := rows.Scan(&e.GuildID, &e.DiscordID, &e.ItemName, &e.Copies); err != nil {
			return nil, fmt.Errorf("failed to scan collection for user %d in guild %d: %w", discordID, r.guildID, err)
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate collection for user %d in guild %d: %w", discordID, r.guildID, err)
	}
	return entries, nil
}

// Reset removes one entry
func (r *CollectionRepository) Reset(ctx context.Context, discordID int64, itemName string) (bool, error) {
	result, err := r.q.Exec(ctx, `
		DELETE FROM user_collectables
		WHERE guild_id = $1 AND discord_id = $2 AND item_name = $3
	`, r.guildID, discordID, itemName)
	if err != nil {
		return false, fmt.Errorf("failed to reset %q for user %d in guild %d: %w", itemName, discordID, r.guildID, err)
	}
	return result.RowsAffected() > 0, nil
}

// DeleteByItem removes the item from every user's collection
func (r *CollectionRepository) DeleteByItem(ctx context.Context, itemName string) (int64, error) {
	result, err := r.q.Exec(ctx, `
		DELETE FROM user_collectables WHERE guild_id = $1 AND item_name = $2
	`, r.guildID, itemName)
	if err != nil {
		return 0, fmt.Errorf("failed to delete collections of %q in guild %d: %w", itemName, r.guildID, err)
	}
	return result.RowsAffected(), nil
}

// DeleteAll clears the collections of the guild
func (r *CollectionRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.q.Exec(ctx, `DELETE FROM user_collectables WHERE guild_id = $1`, r.guildID)
	if err != nil {
		return 0, fmt.Errorf("failed to reset collections in guild %d: %w", r.guildID, err)
	}
	return result.RowsAffected(), nil
}
