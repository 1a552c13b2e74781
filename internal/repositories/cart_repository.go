package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopsphere/ecommerce-backend/internal/models"
	"github.com/shopsphere/ecommerce-backend/internal/utils"
)

type CartRepository interface {
	ListByUser(ctx context.Context, userID string) ([]models.CartItem, error)
	GetByUserAndProduct(ctx context.Context, userID string, productID int64) (*models.CartItem, error)
	// AddItem consolidates: an existing (user, product) line has its
	// quantity incremented atomically, otherwise a new line is created.
	AddItem(ctx context.Context, userID string, productID int64, quantity int) (*models.CartItem, error)
	SetQuantity(ctx context.Context, userID string, productID int64, quantity int) (*models.CartItem, error)
	DeleteByUserAndProduct(ctx context.Context, userID string, productID int64) error
	DeleteByUser(ctx context.Context, userID string) error
	CountLines(ctx context.Context, userID string) (int64, error)
	SumQuantities(ctx context.Context, userID string) (int64, error)
}

type cartRepository struct {
	DB *sql.DB
}

func NewCartRepo(db *sql.DB) CartRepository {
	return &cartRepository{DB: db}
}

func (r *cartRepository) ListByUser(ctx context.Context, userID string) ([]models.CartItem, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT ci.id, ci.user_id, ci.product_id, ci.quantity, ci.created_at, ci.updated_at,
			` + productColumns + `
		FROM cart_items ci
		JOIN products p ON ci.product_id = p.id
		LEFT JOIN categories c ON p.category_id = c.id
		WHERE ci.user_id = $1
		ORDER BY ci.id
	`

	rows, err := r.DB.QueryContext(dbCtx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}

	defer rows.Close()

	var items []models.CartItem

	for rows.Next() {
		var item models.CartItem

		product := &models.Product{}
		category := &models.Category{}

		err := rows.Scan(&item.ID, &item.UserID, &item.ProductID, &item.Quantity,
			&item.CreatedAt, &item.UpdatedAt,
			&product.ID, &product.CategoryID, &product.Name, &product.Description,
			&product.Price, &product.ImageURL, &product.StockQuantity,
			&product.CreatedAt, &product.UpdatedAt,
			&category.ID, &category.Name, &category.Description, &category.ImageURL)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}

		product.Category = category
		item.Product = product
		items = append(items, item)
	}

	return items, rows.Err()
}

func (r *cartRepository) GetByUserAndProduct(ctx context.Context, userID string, productID int64) (*models.CartItem, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	item := &models.CartItem{}

	query := `
		SELECT id, user_id, product_id, quantity, created_at, updated_at
		FROM cart_items
		WHERE user_id = $1 AND product_id = $2
	`

	err := r.DB.QueryRowContext(dbCtx, query, userID, productID).
		Scan(&item.ID, &item.UserID, &item.ProductID, &item.Quantity, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return item, nil
}

// AddItem relies on the UNIQUE(user_id, product_id) constraint so two
// concurrent adds of the same product serialize inside Postgres instead
// of producing duplicate lines.
func (r *cartRepository) AddItem(ctx context.Context, userID string, productID int64, quantity int) (*models.CartItem, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	item := &models.CartItem{}

	query := `
		INSERT INTO cart_items (user_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = NOW()
		RETURNING id, user_id, product_id, quantity, created_at, updated_at
	`

	err := r.DB.QueryRowContext(dbCtx, query, userID, productID, quantity).
		Scan(&item.ID, &item.UserID, &item.ProductID, &item.Quantity, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}

	return item, nil
}

func (r *cartRepository) SetQuantity(ctx context.Context, userID string, productID int64, quantity int) (*models.CartItem, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	item := &models.CartItem{}

	query := `
		UPDATE cart_items SET quantity = $3, updated_at = NOW()
		WHERE user_id = $1 AND product_id = $2
		RETURNING id, user_id, product_id, quantity, created_at, updated_at
	`

	err := r.DB.QueryRowContext(dbCtx, query, userID, productID, quantity).
		Scan(&item.ID, &item.UserID, &item.ProductID, &item.Quantity, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return item, nil
}

func (r *cartRepository) DeleteByUserAndProduct(ctx context.Context, userID string, productID int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	// Idempotent: deleting an absent line is not an error.
	_, err := r.DB.ExecContext(dbCtx,
		`DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2`, userID, productID)
	if err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}

	return nil
}

func (r *cartRepository) DeleteByUser(ctx context.Context, userID string) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	_, err := r.DB.ExecContext(dbCtx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	return nil
}

func (r *cartRepository) CountLines(ctx context.Context, userID string) (int64, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var count int64

	err := r.DB.QueryRowContext(dbCtx,
		`SELECT COUNT(*) FROM cart_items WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count cart lines: %w", err)
	}

	return count, nil
}

func (r *cartRepository) SumQuantities(ctx context.Context, userID string) (int64, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var sum int64

	err := r.DB.QueryRowContext(dbCtx,
		`SELECT COALESCE(SUM(quantity), 0) FROM cart_items WHERE user_id = $1`, userID).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("failed to sum cart quantities: %w", err)
	}

	return sum, nil
}
