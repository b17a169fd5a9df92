package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nexuslan/arena/internal/domain"
	"github.com/nexuslan/arena/internal/repository"
)

// MarketplaceRepository implements the marketplace repository for PostgreSQL
type MarketplaceRepository struct {
	db *pgxpool.Pool
}

// NewMarketplaceRepository creates a new MarketplaceRepository
func NewMarketplaceRepository(db *pgxpool.Pool) *MarketplaceRepository {
	return &MarketplaceRepository{db: db}
}

const itemColumns = `item_id, item_name, description, category, price, icon, stock, available, stackable, created_at`

func scanItem(row pgx.Row) (*domain.MarketplaceItem, error) {
	var item domain.MarketplaceItem
	var stock pgtype.Int4
	err := row.Scan(&item.ID, &item.Name, &item.Description, &item.Category, &item.Price,
		&item.Icon, &stock, &item.Available, &item.Stackable, &item.CreatedAt)
	if err != nil {
		return nil, err
	}
	if stock.Valid {
		v := int(stock.Int32)
		item.Stock = &v
	}
	return &item, nil
}

// ListItems retrieves catalog items matching the filter
func (r *MarketplaceRepository) ListItems(ctx context.Context, filter domain.ItemFilter) ([]domain.MarketplaceItem, error) {
	query := `SELECT ` + itemColumns + ` FROM marketplace_items WHERE 1=1`
	var args []any

	if filter.Category != "" {
		args = append(args, string(filter.Category))
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filter.AvailableOnly {
		query += " AND available = TRUE AND (stock IS NULL OR stock > 0)"
	}
	query += " ORDER BY price, item_name"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Skip > 0 {
		args = append(args, filter.Skip)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []domain.MarketplaceItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// GetItem retrieves a catalog item by ID
func (r *MarketplaceRepository) GetItem(ctx context.Context, id string) (*domain.MarketplaceItem, error) {
	row := r.db.QueryRow(ctx, `SELECT `+itemColumns+` FROM marketplace_items WHERE item_id = $1`, id)
	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return item, nil
}

// CreateItem inserts a catalog item
func (r *MarketplaceRepository) CreateItem(ctx context.Context, item *domain.MarketplaceItem) error {
	var stock pgtype.Int4
	if item.Stock != nil {
		stock = pgtype.Int4{Int32: int32(*item.Stock), Valid: true}
	}
	err := r.db.QueryRow(ctx, `
		INSERT INTO marketplace_items (item_id, item_name, description, category, price, icon, stock, available, stackable)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at`,
		item.ID, item.Name, item.Description, string(item.Category), item.Price,
		item.Icon, stock, item.Available, item.Stackable).Scan(&item.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("failed to create item: %w", err)
	}
	return nil
}

// GetInventory retrieves a user's owned items with catalog details
func (r *MarketplaceRepository) GetInventory(ctx context.Context, userID string) ([]domain.InventoryEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT ui.inventory_id, ui.user_id, ui.item_id, mi.item_name, mi.category, mi.icon, ui.quantity, ui.acquired_at
		FROM user_inventory ui
		JOIN marketplace_items mi ON mi.item_id = ui.item_id
		WHERE ui.user_id = $1
		ORDER BY ui.acquired_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory: %w", err)
	}
	defer rows.Close()

	var entries []domain.InventoryEntry
	for rows.Next() {
		var e domain.InventoryEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.ItemID, &e.ItemName, &e.Category, &e.Icon, &e.Quantity, &e.AcquiredAt); err != nil {
			return nil, fmt.Errorf("failed to scan inventory entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// BeginPurchaseTx starts a purchase transaction
func (r *MarketplaceRepository) BeginPurchaseTx(ctx context.Context) (repository.PurchaseTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &purchaseTx{profileTxOps{pgxTx{tx: tx}}}, nil
}

type purchaseTx struct {
	profileTxOps
}

// GetItemForUpdate retrieves an item with a row lock for the stock check
func (t *purchaseTx) GetItemForUpdate(ctx context.Context, id string) (*domain.MarketplaceItem, error) {
	row := t.tx.QueryRow(ctx, `SELECT `+itemColumns+` FROM marketplace_items WHERE item_id = $1 FOR UPDATE`, id)
	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get item for update: %w", err)
	}
	return item, nil
}

// DecrementStock reduces a limited item's stock by one
func (t *purchaseTx) DecrementStock(ctx context.Context, id string) error {
	tag, err := t.tx.Exec(ctx, `
		UPDATE marketplace_items SET stock = stock - 1
		WHERE item_id = $1 AND stock IS NOT NULL AND stock > 0`, id)
	if err != nil {
		return fmt.Errorf("failed to decrement stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotAvailable
	}
	return nil
}

// GetInventoryEntry retrieves a user's holding of one item, nil when absent
func (t *purchaseTx) GetInventoryEntry(ctx context.Context, userID, itemID string) (*domain.InventoryEntry, error) {
	var e domain.InventoryEntry
	err := t.tx.QueryRow(ctx, `
		SELECT inventory_id, user_id, item_id, quantity, acquired_at
		FROM user_inventory WHERE user_id = $1 AND item_id = $2 FOR UPDATE`,
		userID, itemID).Scan(&e.ID, &e.UserID, &e.ItemID, &e.Quantity, &e.AcquiredAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get inventory entry: %w", err)
	}
	return &e, nil
}

// UpsertInventoryEntry inserts the holding or bumps its quantity
func (t *purchaseTx) UpsertInventoryEntry(ctx context.Context, e *domain.InventoryEntry) error {
	err := t.tx.QueryRow(ctx, `
		INSERT INTO user_inventory (inventory_id, user_id, item_id, quantity)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, item_id)
		DO UPDATE SET quantity = user_inventory.quantity + EXCLUDED.quantity
		RETURNING inventory_id, quantity, acquired_at`,
		e.ID, e.UserID, e.ItemID, e.Quantity).Scan(&e.ID, &e.Quantity, &e.AcquiredAt)
	if err != nil {
		return fmt.Errorf("failed to upsert inventory entry: %w", err)
	}
	return nil
}
