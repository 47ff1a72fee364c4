package repository

import (
	"context"
	"fmt"

	"gachabot/database"
	"gachabot/domain/entities"
)

// TokenRepository implements the TokenRepository interface
type TokenRepository struct {
	q       Queryable
	guildID int64
}

// NewTokenRepository creates a new token repository outside of a transaction
func NewTokenRepository(db *database.DB, guildID int64) *TokenRepository {
	return &TokenRepository{q: db.Pool, guildID: guildID}
}

// NewTokenRepositoryScoped creates a new token repository with a transaction and guild scope
func NewTokenRepositoryScoped(tx Queryable, guildID int64) *TokenRepository {
	return &TokenRepository{q: tx, guildID: guildID}
}

// GetBalance returns every tier the user holds
func (r *TokenRepository) GetBalance(ctx context.Context, discordID int64) (entities.TokenBalance, error) {
	rows, err := r.q.Query(ctx, `
		SELECT rarity, amount
		FROM user_tokens
		WHERE guild_id = $1 AND discord_id = $2
	`, r.guildID, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tokens for user %d in guild %d: %w", discordID, r.guildID, err)
	}
	defer rows.Close()

	balance := make(entities.TokenBalance)
	for rows.Next() {
		var (
			tier   string
			amount int64
		)
		if err := rows.Scan(&tier, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan tokens for user %d in guild %d: %w", discordID, r.guildID, err)
		}
		rarity, err := entities.ParseRarity(tier)
		if err != nil {
			return nil, err
		}
		balance[rarity] = amount
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tokens for user %d in guild %d: %w", discordID, r.guildID, err)
	}
	return balance, nil
}

// Adjust adds delta to one tier. Debits are guarded in SQL so the balance
// can never go negative, even under concurrent writers.
func (r *TokenRepository) Adjust(ctx context.Context, discordID int64, rarity entities.Rarity, delta int64) error {
	if delta == 0 {
		return nil
	}

	if delta > 0 {
		_, err := r.q.Exec(ctx, `
			INSERT INTO user_tokens (guild_id, discord_id, rarity, amount)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (guild_id, discord_id, rarity) DO UPDATE
			SET amount = user_tokens.amount + EXCLUDED.amount
		`, r.guildID, discordID, rarity.String(), delta)
		if err != nil {
			return fmt.Errorf("failed to credit %s tokens for user %d in guild %d: %w", rarity, discordID, r.guildID, err)
		}
		return nil
	}

	result, err := r.q.Exec(ctx, `
		UPDATE user_tokens
		SET amount = amount - $4
		WHERE guild_id = $1 AND discord_id = $2 AND rarity = $3
		  AND amount >= $4
	`, r.guildID, discordID, rarity.String(), -delta)
	if err != nil {
		return fmt.Errorf("failed to debit %s tokens for user %d in guild %d: %w", rarity, discordID, r.guildID, err)
	}
	if result.RowsAffected() == 0 {
		return entities.ErrInsufficientFunds
	}
	return nil
}

// DeleteAll clears every balance of the guild
func (r *TokenRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.q.Exec(ctx, `DELETE FROM user_tokens WHERE guild_id = $1`, r.guildID)
	if err != nil {
		return 0, fmt.Errorf("failed to reset tokens in guild %d: %w", r.guildID, err)
	}
	return result.RowsAffected(), nil
}
