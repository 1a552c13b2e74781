package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/shopsphere/ecommerce-backend/internal/models"
	"github.com/shopsphere/ecommerce-backend/internal/utils"
)

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id int64) error
	ListProducts(ctx context.Context, page, size int) ([]*models.Product, int, error)
	ListProductsByCategory(ctx context.Context, categoryID int64, page, size int) ([]*models.Product, int, error)
	SearchProducts(ctx context.Context, term string, page, size int) ([]*models.Product, int, error)
	ListProductsByPriceRange(ctx context.Context, minPrice, maxPrice decimal.Decimal, page, size int) ([]*models.Product, int, error)
	ListAvailableProducts(ctx context.Context, page, size int) ([]*models.Product, int, error)
	ListLatestProducts(ctx context.Context, page, size int) ([]*models.Product, int, error)
	ListLowStockProducts(ctx context.Context, threshold int) ([]*models.Product, error)
}

type productRepository struct {
	DB *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

const productColumns = `p.id, p.category_id, p.name, p.description, p.price,
		p.image_url, p.stock_quantity, p.created_at, p.updated_at,
		c.id, c.name, c.description, c.image_url`

func scanProduct(row interface{ Scan(...any) error }) (*models.Product, error) {
	product := &models.Product{}
	category := &models.Category{}

	err := row.Scan(&product.ID, &product.CategoryID, &product.Name, &product.Description,
		&product.Price, &product.ImageURL, &product.StockQuantity, &product.CreatedAt,
		&product.UpdatedAt, &category.ID, &category.Name, &category.Description, &category.ImageURL)
	if err != nil {
		return nil, err
	}

	product.Category = category

	return product, nil
}

func (r *productRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `INSERT INTO products (category_id, name, description, price, image_url, stock_quantity)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id, created_at, updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query, product.CategoryID, product.Name, product.Description,
		product.Price, product.ImageURL, product.StockQuantity).
		Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
}

func (r *productRepository) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT ` + productColumns + `
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		WHERE p.id = $1`

	product, err := scanProduct(r.DB.QueryRowContext(dbCtx, query, id))
	if err != nil {
		return nil, fmt.Errorf("querying database: %w", err)
	}

	return product, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE products SET category_id = $1, name = $2, description = $3, price = $4, image_url = $5, stock_quantity = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query, product.CategoryID, product.Name, product.Description,
		product.Price, product.ImageURL, product.StockQuantity, product.ID).Scan(&product.UpdatedAt)
}

func (r *productRepository) DeleteProduct(ctx context.Context, id int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *productRepository) ListProducts(ctx context.Context, page, size int) ([]*models.Product, int, error) {
	return r.listProducts(ctx, page, size, ``, `ORDER BY p.id`)
}

func (r *productRepository) ListProductsByCategory(ctx context.Context, categoryID int64, page, size int) ([]*models.Product, int, error) {
	return r.listProducts(ctx, page, size, `WHERE p.category_id = $1`, `ORDER BY p.name`, categoryID)
}

func (r *productRepository) SearchProducts(ctx context.Context, term string, page, size int) ([]*models.Product, int, error) {
	pattern := "%" + term + "%"

	return r.listProducts(ctx, page, size,
		`WHERE p.name ILIKE $1 OR p.description ILIKE $1`, `ORDER BY p.name`, pattern)
}

func (r *productRepository) ListProductsByPriceRange(ctx context.Context, minPrice, maxPrice decimal.Decimal, page, size int) ([]*models.Product, int, error) {
	return r.listProducts(ctx, page, size,
		`WHERE p.price BETWEEN $1 AND $2`, `ORDER BY p.price`, minPrice, maxPrice)
}

func (r *productRepository) ListAvailableProducts(ctx context.Context, page, size int) ([]*models.Product, int, error) {
	return r.listProducts(ctx, page, size, `WHERE p.stock_quantity > 0`, `ORDER BY p.name`)
}

func (r *productRepository) ListLatestProducts(ctx context.Context, page, size int) ([]*models.Product, int, error) {
	return r.listProducts(ctx, page, size, ``, `ORDER BY p.created_at DESC`)
}

// listProducts runs filter+order with a matching COUNT(*) over the same
// filter args; LIMIT/OFFSET take the trailing placeholders.
func (r *productRepository) listProducts(ctx context.Context, page, size int, filter, order string, args ...any) ([]*models.Product, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	countQuery := `SELECT COUNT(*) FROM products p ` + filter

	err := r.DB.QueryRowContext(dbCtx, countQuery, args...).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	// Offset
	offset := (page - 1) * size

	query := fmt.Sprintf(`
		SELECT `+productColumns+`
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		%s
		%s
		LIMIT $%d OFFSET $%d
	`, filter, order, len(args)+1, len(args)+2)

	queryArgs := append(append([]any{}, args...), size, offset)

	rows, err := r.DB.QueryContext(dbCtx, query, queryArgs...)
	if err != nil {
		return nil, 0, err
	}

	defer rows.Close()

	var products []*models.Product

	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}

		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *productRepository) ListLowStockProducts(ctx context.Context, threshold int) ([]*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT ` + productColumns + `
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		WHERE p.stock_quantity <= $1
		ORDER BY p.stock_quantity
	`

	rows, err := r.DB.QueryContext(dbCtx, query, threshold)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var products []*models.Product

	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}

		products = append(products, product)
	}

	return products, rows.Err()
}
