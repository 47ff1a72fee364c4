package repository

import (
	"context"
	"errors"
	"fmt"

	"gachabot/database"
	"gachabot/domain/entities"

	"github.com/jackc/pgx/v5"
)

const itemColumns = `id, guild_id, name, weight, rarity, reply, gives_tokens, role_on_acquire,
	object_type, is_promotional, is_secret, collectable_threshold, created_at`

// ItemRepository implements the ItemRepository interface
type ItemRepository struct {
	q       Queryable
	guildID int64
}

// NewItemRepository creates a new item repository outside of a transaction
func NewItemRepository(db *database.DB, guildID int64) *ItemRepository {
	return &ItemRepository{q: db.Pool, guildID: guildID}
}

// NewItemRepositoryScoped creates a new item repository with a transaction and guild scope
func NewItemRepositoryScoped(tx Queryable, guildID int64) *ItemRepository {
	return &ItemRepository{q: tx, guildID: guildID}
}

// GetPool returns every item of the guild in insertion order
func (r *ItemRepository) GetPool(ctx context.Context) ([]*entities.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM gacha_items WHERE guild_id = $1 ORDER BY id`

	rows, err := r.q.Query(ctx, query, r.guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items in guild %d: %w", r.guildID, err)
	}
	defer rows.Close()

	var items []*entities.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item in guild %d: %w", r.guildID, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items in guild %d: %w", r.guildID, err)
	}
	return items, nil
}

// GetByName retrieves an item by its exact name
func (r *ItemRepository) GetByName(ctx context.Context, name string) (*entities.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM gacha_items WHERE guild_id = $1 AND name = $2`

	item, err := scanItem(r.q.QueryRow(ctx, query, r.guildID, name))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item %q in guild %d: %w", name, r.guildID, err)
	}
	return item, nil
}

// Create inserts a new item
func (r *ItemRepository) Create(ctx context.Context, item *entities.Item) error {
	query := `
		INSERT INTO gacha_items (guild_id, name, weight, rarity, reply, gives_tokens, role_on_acquire,
			object_type, is_promotional, is_secret, collectable_threshold)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		r.guildID,
		item.Name,
		item.Weight,
		item.Rarity.String(),
		item.Reply,
		item.GivesTokens,
		item.RoleOnAcquire,
		string(item.ObjectType),
		item.IsPromotional,
		item.IsSecret,
		item.CollectableThreshold,
	).Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create item %q in guild %d: %w", item.Name, r.guildID, err)
	}

	item.GuildID = r.guildID
	return nil
}

// Update writes every mutable field of an item
func (r *ItemRepository) Update(ctx context.Context, item *entities.Item) error {
	query := `
		UPDATE gacha_items
		SET weight = $3,
		    rarity = $4,
		    reply = $5,
		    gives_tokens = $6,
		    role_on_acquire = $7,
		    object_type = $8,
		    is_promotional = $9,
		    is_secret = $10,
		    collectable_threshold = $11
		WHERE guild_id = $1 AND id = $2
	`

	result, err := r.q.Exec(ctx, query,
		r.guildID,
		item.ID,
		item.Weight,
		item.Rarity.String(),
		item.Reply,
		item.GivesTokens,
		item.RoleOnAcquire,
		string(item.ObjectType),
		item.IsPromotional,
		item.IsSecret,
		item.CollectableThreshold,
	)
	if err != nil {
		return fmt.Errorf("failed to update item %d in guild %d: %w", item.ID, r.guildID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("item %d in guild %d: %w", item.ID, r.guildID, entities.ErrNotFound)
	}
	return nil
}

// Upsert inserts or updates an item by name. The id of an existing item is
// kept, so its position in the draw order does not move.
func (r *ItemRepository) Upsert(ctx context.Context, item *entities.Item) (bool, error) {
	query := `
		INSERT INTO gacha_items (guild_id, name, weight, rarity, reply, gives_tokens, role_on_acquire,
			object_type, is_promotional, is_secret, collectable_threshold)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (guild_id, name) DO UPDATE
		SET weight = EXCLUDED.weight,
		    rarity = EXCLUDED.rarity,
		    reply = EXCLUDED.reply,
		    gives_tokens = EXCLUDED.gives_tokens,
		    role_on_acquire = EXCLUDED.role_on_acquire,
		    object_type = EXCLUDED.object_type,
		    is_promotional = EXCLUDED.is_promotional,
		    is_secret = EXCLUDED.is_secret,
		    collectable_threshold = EXCLUDED.collectable_threshold
		RETURNING id, created_at, (xmax = 0) AS inserted
	`

	var inserted bool
	err := r.q.QueryRow(ctx, query,
		r.guildID,
		item.Name,
		item.Weight,
		item.Rarity.String(),
		item.Reply,
		item.GivesTokens,
		item.RoleOnAcquire,
		string(item.ObjectType),
		item.IsPromotional,
		item.IsSecret,
		item.CollectableThreshold,
	).Scan(&item.ID, &item.CreatedAt, &inserted)
	if err != nil {
		return false, fmt.Errorf("failed to upsert item %q in guild %d: %w", item.Name, r.guildID, err)
	}

	item.GuildID = r.guildID
	return inserted, nil
}

// Delete removes an item by ID
func (r *ItemRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.q.Exec(ctx, `DELETE FROM gacha_items WHERE guild_id = $1 AND id = $2`, r.guildID, id)
	if err != nil {
		return fmt.Errorf("failed to delete item %d in guild %d: %w", id, r.guildID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("item %d in guild %d: %w", id, r.guildID, entities.ErrNotFound)
	}
	return nil
}

// DeleteAll removes every item of the guild
func (r *ItemRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.q.Exec(ctx, `DELETE FROM gacha_items WHERE guild_id = $1`, r.guildID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete items in guild %d: %w", r.guildID, err)
	}
	return result.RowsAffected(), nil
}

func scanItem(row pgx.Row) (*entities.Item, error) {
	var (
		item       entities.Item
		rarity     string
		objectType string
	)
	err := row.Scan(
		&item.ID,
		&item.GuildID,
		&item.Name,
		&item.Weight,
		&rarity,
		&item.Reply,
		&item.GivesTokens,
		&item.RoleOnAcquire,
		&objectType,
		&item.IsPromotional,
		&item.IsSecret,
		&item.CollectableThreshold,
		&item.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	item.Rarity, err = entities.ParseRarity(rarity)
	if err != nil {
		return nil, err
	}
	item.ObjectType = entities.ObjectType(objectType)
	return &item, nil
}
