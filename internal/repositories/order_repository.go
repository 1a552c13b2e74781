package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/shopsphere/ecommerce-backend/internal/models"
	"github.com/shopsphere/ecommerce-backend/internal/utils"
)

// StockConflictError aborts an order commit when a line's conditional
// stock decrement matches no row. Available carries the stock observed
// at abort time.
type StockConflictError struct {
	ProductID   int64
	ProductName string
	Requested   int
	Available   int
}

func (e *StockConflictError) Error() string {
	return fmt.Sprintf("insufficient stock for product %q: requested %d, available %d",
		e.ProductName, e.Requested, e.Available)
}

type OrderRepository interface {
	// CreateOrder commits the whole pipeline in one transaction: insert
	// the order, decrement stock per line, insert the order items, and
	// clear the user's cart. Any failure rolls everything back.
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrderByID(ctx context.Context, id int64) (*models.Order, error)
	ListOrdersByUser(ctx context.Context, userID string, page, size int) ([]models.Order, int, error)
	ListOrdersByStatus(ctx context.Context, status models.OrderStatus, limit int) ([]models.Order, error)
	ListOrdersByUserAndStatus(ctx context.Context, userID string, status models.OrderStatus) ([]models.Order, error)
	ListHighValueOrders(ctx context.Context, minAmount decimal.Decimal) ([]models.Order, error)
	CountOrdersByUser(ctx context.Context, userID string) (int64, error)
	TotalSpentByUser(ctx context.Context, userID string) (decimal.Decimal, error)
	UpdateOrderStatus(ctx context.Context, id int64, status models.OrderStatus) error
}

type orderRepository struct {
	DB *sql.DB
}

func NewOrderRepo(db *sql.DB) OrderRepository {
	return &orderRepository{DB: db}
}

func (r *orderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer tx.Rollback()

	query := `
		INSERT INTO orders (user_id, status, shipping_address, total_amount)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err = tx.QueryRowContext(dbCtx, query, order.UserID, order.Status, order.ShippingAddress, order.TotalAmount).
		Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	for i := range order.Items {
		item := &order.Items[i]

		if err := decrementStock(dbCtx, tx, item.ProductID, item.Quantity); err != nil {
			return err
		}

		itemQuery := `
			INSERT INTO order_items (order_id, product_id, quantity, unit_price)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at
		`

		err := tx.QueryRowContext(dbCtx, itemQuery, order.ID, item.ProductID, item.Quantity, item.UnitPrice).
			Scan(&item.ID, &item.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}

		item.OrderID = order.ID
	}

	_, err = tx.ExecContext(dbCtx, `DELETE FROM cart_items WHERE user_id = $1`, order.UserID)
	if err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit order: %w", err)
	}

	return nil
}

// decrementStock is the serialization point against concurrent commits:
// the decrement only matches when enough stock remains, so two
// transactions cannot both take the last units.
func decrementStock(ctx context.Context, tx *sql.Tx, productID int64, quantity int) error {

	result, err := tx.ExecContext(ctx, `
		UPDATE products SET stock_quantity = stock_quantity - $1, updated_at = NOW()
		WHERE id = $2 AND stock_quantity >= $1
	`, quantity, productID)
	if err != nil {
		return fmt.Errorf("failed to decrement stock: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		conflict := &StockConflictError{ProductID: productID, Requested: quantity}

		err := tx.QueryRowContext(ctx,
			`SELECT name, stock_quantity FROM products WHERE id = $1`, productID).
			Scan(&conflict.ProductName, &conflict.Available)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("product %d not found: %w", productID, sql.ErrNoRows)
		}

		if err != nil {
			return fmt.Errorf("failed to read stock for product %d: %w", productID, err)
		}

		return conflict
	}

	return nil
}

const orderColumns = `id, user_id, status, shipping_address, total_amount, created_at, updated_at`

func scanOrder(row interface{ Scan(...any) error }) (models.Order, error) {
	var order models.Order

	err := row.Scan(&order.ID, &order.UserID, &order.Status, &order.ShippingAddress,
		&order.TotalAmount, &order.CreatedAt, &order.UpdatedAt)

	return order, err
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.DB.QueryRowContext(dbCtx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get the order: %w", err)
	}

	if err := r.attachItems(dbCtx, &order); err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepository) attachItems(ctx context.Context, order *models.Order) error {

	query := `
		SELECT id, order_id, product_id, quantity, unit_price, created_at
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`

	rows, err := r.DB.QueryContext(ctx, query, order.ID)
	if err != nil {
		return fmt.Errorf("failed to get the order items: %w", err)
	}

	defer rows.Close()

	var items []models.OrderItem

	for rows.Next() {
		var item models.OrderItem

		err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity,
			&item.UnitPrice, &item.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to scan order item: %w", err)
		}

		items = append(items, item)
	}

	order.Items = items

	return rows.Err()
}

func (r *orderRepository) ListOrdersByUser(ctx context.Context, userID string, page, size int) ([]models.Order, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	err := r.DB.QueryRowContext(dbCtx,
		`SELECT COUNT(*) FROM orders WHERE user_id = $1`, userID).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	// Offset
	offset := (page - 1) * size

	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	orders, err := r.queryOrders(dbCtx, query, userID, size, offset)
	if err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

func (r *orderRepository) ListOrdersByStatus(ctx context.Context, status models.OrderStatus, limit int) ([]models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE status = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	return r.queryOrders(dbCtx, query, status, limit)
}

func (r *orderRepository) ListOrdersByUserAndStatus(ctx context.Context, userID string, status models.OrderStatus) ([]models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE user_id = $1 AND status = $2
		ORDER BY created_at DESC
	`

	return r.queryOrders(dbCtx, query, userID, status)
}

func (r *orderRepository) ListHighValueOrders(ctx context.Context, minAmount decimal.Decimal) ([]models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE total_amount >= $1
		ORDER BY total_amount DESC
	`

	return r.queryOrders(dbCtx, query, minAmount)
}

func (r *orderRepository) queryOrders(ctx context.Context, query string, args ...any) ([]models.Order, error) {

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	defer rows.Close()

	var orders []models.Order

	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan the orders: %w", err)
		}

		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		if err := r.attachItems(ctx, &orders[i]); err != nil {
			return nil, err
		}
	}

	return orders, nil
}

func (r *orderRepository) CountOrdersByUser(ctx context.Context, userID string) (int64, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var count int64

	err := r.DB.QueryRowContext(dbCtx,
		`SELECT COUNT(*) FROM orders WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}

	return count, nil
}

// TotalSpentByUser returns zero, not an error, for a user with no orders.
func (r *orderRepository) TotalSpentByUser(ctx context.Context, userID string) (decimal.Decimal, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total decimal.Decimal

	err := r.DB.QueryRowContext(dbCtx,
		`SELECT COALESCE(SUM(total_amount), 0) FROM orders WHERE user_id = $1`, userID).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum order totals: %w", err)
	}

	return total, nil
}

func (r *orderRepository) UpdateOrderStatus(ctx context.Context, id int64, status models.OrderStatus) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx,
		`UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
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
