package repository

import (
	"context"
	"errors"
	"fmt"

	"gachabot/database"
	"gachabot/domain/entities"

	"github.com/jackc/pgx/v5"
)

const exchangeColumns = `guild_id, exchange_id, reward_name, price_r, price_ur, price_sr, price_ssr, role_on_redeem`

// ExchangeRepository implements the ExchangeRepository interface
type ExchangeRepository struct {
	q       Queryable
	guildID int64
}

// NewExchangeRepository creates a new exchange repository outside of a transaction
func NewExchangeRepository(db *database.DB, guildID int64) *ExchangeRepository {
	return &ExchangeRepository{q: db.Pool, guildID: guildID}
}

// NewExchangeRepositoryScoped creates a new exchange repository with a transaction and guild scope
func NewExchangeRepositoryScoped(tx Queryable, guildID int64) *ExchangeRepository {
	return &ExchangeRepository{q: tx, guildID: guildID}
}

// List returns the rules ordered by exchange id
func (r *ExchangeRepository) List(ctx context.Context) ([]*entities.ExchangeRule, error) {
	rows, err := r.q.Query(ctx, `SELECT `+exchangeColumns+` FROM exchange_rules WHERE guild_id = $1 ORDER BY exchange_id`, r.guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to query exchanges in guild %d: %w", r.guildID, err)
	}
	defer rows.Close()

	var rules []*entities.ExchangeRule
	for rows.Next() {
		rule, err := scanExchange(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan exchange in guild %d: %w", r.guildID, err)
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate exchanges in guild %d: %w", r.guildID, err)
	}
	return rules, nil
}

// Get returns one rule or nil when it does not exist
func (r *ExchangeRepository) Get(ctx context.Context, exchangeID int) (*entities.ExchangeRule, error) {
	rule, err := scanExchange(r.q.QueryRow(ctx,
		`SELECT `+exchangeColumns+` FROM exchange_rules WHERE guild_id = $1 AND exchange_id = $2`,
		r.guildID, exchangeID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get exchange %d in guild %d: %w", exchangeID, r.guildID, err)
	}
	return rule, nil
}

// Create adds a free rule with the next id. A transaction-scoped advisory
// lock keyed on the guild serializes concurrent creates.
func (r *ExchangeRepository) Create(ctx context.Context, rewardName string) (*entities.ExchangeRule, error) {
	if _, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, r.guildID); err != nil {
		return nil, fmt.Errorf("failed to lock exchanges in guild %d: %w", r.guildID, err)
	}

	rule, err := scanExchange(r.q.QueryRow(ctx, `
		INSERT INTO exchange_rules (guild_id, exchange_id, reward_name)
		SELECT $1, COALESCE(MAX(exchange_id), 0) + 1, $2
		FROM exchange_rules
		WHERE guild_id = $1
		RETURNING `+exchangeColumns,
		r.guildID, rewardName))
	if err != nil {
		return nil, fmt.Errorf("failed to create exchange in guild %d: %w", r.guildID, err)
	}
	return rule, nil
}

// UpdatePrice replaces the whole price vector. Tiers missing from price become zero
func (r *ExchangeRepository) UpdatePrice(ctx context.Context, exchangeID int, price entities.PriceVector) error {
	result, err := r.q.Exec(ctx, `
		UPDATE exchange_rules
		SET price_r = $3, price_ur = $4, price_sr = $5, price_ssr = $6
		WHERE guild_id = $1 AND exchange_id = $2
	`, r.guildID, exchangeID,
		price[entities.RarityR],
		price[entities.RarityUR],
		price[entities.RaritySR],
		price[entities.RaritySSR],
	)
	if err != nil {
		return fmt.Errorf("failed to update price of exchange %d in guild %d: %w", exchangeID, r.guildID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("exchange %d in guild %d: %w", exchangeID, r.guildID, entities.ErrNotFound)
	}
	return nil
}

// UpdateRole sets or clears the role granted on redeem
func (r *ExchangeRepository) UpdateRole(ctx context.Context, exchangeID int, role *string) error {
	result, err := r.q.Exec(ctx, `
		UPDATE exchange_rules SET role_on_redeem = $3 WHERE guild_id = $1 AND exchange_id = $2
	`, r.guildID, exchangeID, role)
	if err != nil {
		return fmt.Errorf("failed to update role of exchange %d in guild %d: %w", exchangeID, r.guildID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("exchange %d in guild %d: %w", exchangeID, r.guildID, entities.ErrNotFound)
	}
	return nil
}

// DeleteAll removes every rule of the guild. Ids start again at 1 afterwards
func (r *ExchangeRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.q.Exec(ctx, `DELETE FROM exchange_rules WHERE guild_id = $1`, r.guildID)
	if err != nil {
		return 0, fmt.Errorf("failed to reset exchanges in guild %d: %w", r.guildID, err)
	}
	return result.RowsAffected(), nil
}

func scanExchange(row pgx.Row) (*entities.ExchangeRule, error) {
	var (
		rule              entities.ExchangeRule
		priceR, priceUR   int64
		priceSR, priceSSR int64
	)
	if err := row.Scan(
		&rule.GuildID,
		&rule.ExchangeID,
		&rule.RewardName,
		&priceR,
		&priceUR,
		&priceSR,
		&priceSSR,
		&rule.RoleOnRedeem,
	); err != nil {
		return nil, err
	}

	rule.Price = entities.PriceVector{}
	for tier, amount := range map[entities.Rarity]int64{
		entities.RarityR:   priceR,
		entities.RarityUR:  priceUR,
		entities.RaritySR:  priceSR,
		entities.RaritySSR: priceSSR,
	} {
		if amount > 0 {
			rule.Price[tier] = amount
		}
	}
	return &rule, nil
}
