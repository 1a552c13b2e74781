package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/shopsphere/ecommerce-backend/internal/cache"
	appErrors "github.com/shopsphere/ecommerce-backend/internal/errors"
	"github.com/shopsphere/ecommerce-backend/internal/metrics"
	"github.com/shopsphere/ecommerce-backend/internal/models"
	repository "github.com/shopsphere/ecommerce-backend/internal/repositories"
)

const statusListLimit = 100

type OrderService interface {
	CreateOrder(ctx context.Context, userID string, req *models.CreateOrderRequest) (*models.Order, error)
	GetOrderByID(ctx context.Context, id int64) (*models.Order, error)
	ListUserOrders(ctx context.Context, userID string, page, size int) ([]models.Order, int, error)
	UpdateOrderStatus(ctx context.Context, id int64, status models.OrderStatus) (*models.Order, error)
	ListOrdersByStatus(ctx context.Context, status models.OrderStatus) ([]models.Order, error)
	ListUserOrdersByStatus(ctx context.Context, userID string, status models.OrderStatus) ([]models.Order, error)
	ListHighValueOrders(ctx context.Context, minAmount decimal.Decimal) ([]models.Order, error)
	GetUserOrderCount(ctx context.Context, userID string) (int64, error)
	GetUserTotalSpent(ctx context.Context, userID string) (decimal.Decimal, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
	cartRepo  repository.CartRepository
	cache     cache.Cache
}

func NewOrderService(orderRepo repository.OrderRepository, cartRepo repository.CartRepository, cacheStore cache.Cache) OrderService {
	return &orderService{orderRepo: orderRepo, cartRepo: cartRepo, cache: cacheStore}
}

// CreateOrder converts the user's cart into an order. The repository
// runs the commit as one transaction, so a stock conflict on any line
// leaves no order, no decremented stock and the cart untouched.
func (s *orderService) CreateOrder(ctx context.Context, userID string, req *models.CreateOrderRequest) (*models.Order, error) {

	cartItems, err := s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch cart").WithError(err)
	}

	if len(cartItems) == 0 {
		metrics.RecordOrderCommitFailure("empty_cart")
		return nil, appErrors.EmptyCartError("Cannot create order with empty cart")
	}

	// Line totals use the current product price, not anything cached on
	// the cart line; the same price becomes the OrderItem snapshot.
	totalAmount := decimal.Zero
	items := make([]models.OrderItem, 0, len(cartItems))

	for i := range cartItems {
		cartItem := &cartItems[i]

		totalAmount = totalAmount.Add(cartItem.LineTotal())
		items = append(items, models.OrderItem{
			ProductID: cartItem.ProductID,
			Quantity:  cartItem.Quantity,
			UnitPrice: cartItem.Product.Price,
		})
	}

	order := &models.Order{
		UserID:          userID,
		Status:          models.OrderStatusPending,
		ShippingAddress: req.ShippingAddress,
		TotalAmount:     totalAmount,
		Items:           items,
	}

	if err := s.orderRepo.CreateOrder(ctx, order); err != nil {

		var conflict *repository.StockConflictError
		if errors.As(err, &conflict) {
			metrics.RecordOrderCommitFailure("insufficient_stock")
			return nil, appErrors.InsufficientStockError(
				fmt.Sprintf("Insufficient stock for product: %s", conflict.ProductName),
				conflict.Available).WithError(err)
		}

		if errors.Is(err, sql.ErrNoRows) {
			metrics.RecordOrderCommitFailure("product_missing")
			return nil, appErrors.NotFoundError("Product no longer exists").WithError(err)
		}

		metrics.RecordOrderCommitFailure("database")
		return nil, appErrors.DatabaseError("Failed to create order").WithError(err)
	}

	metrics.RecordOrderCreated()

	// Stock changed, so cached product reads are stale now.
	for i := range order.Items {
		s.cache.Delete(ctx, cache.Key(cache.ProductKeyPrefix, strconv.FormatInt(order.Items[i].ProductID, 10)))
	}

	return order, nil
}

func (s *orderService) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {

	key := cache.Key(cache.OrderKeyPrefix, strconv.FormatInt(id, 10))

	var cached models.Order
	if found, err := s.cache.Get(ctx, key, &cached); err == nil && found {
		return &cached, nil
	}

	order, err := s.orderRepo.GetOrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError(fmt.Sprintf("Order not found with id: %d", id)).WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to fetch order").WithError(err)
	}

	s.cache.Set(ctx, key, order, 0)

	return order, nil
}

func (s *orderService) ListUserOrders(ctx context.Context, userID string, page, size int) ([]models.Order, int, error) {

	if page < 1 {
		page = 1
	}

	if size < 1 || size > 50 {
		size = 10
	}

	orders, total, err := s.orderRepo.ListOrdersByUser(ctx, userID, page, size)
	if err != nil {
		return nil, 0, appErrors.DatabaseError("Failed to fetch orders").WithError(err)
	}

	return orders, total, nil
}

// UpdateOrderStatus applies the new status unconditionally; the status
// is a label, not a workflow state machine.
func (s *orderService) UpdateOrderStatus(ctx context.Context, id int64, status models.OrderStatus) (*models.Order, error) {

	err := s.orderRepo.UpdateOrderStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError(fmt.Sprintf("Order not found with id: %d", id)).WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to update order status").WithError(err)
	}

	s.cache.Delete(ctx, cache.Key(cache.OrderKeyPrefix, strconv.FormatInt(id, 10)))

	order, err := s.orderRepo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch updated order").WithError(err)
	}

	return order, nil
}

func (s *orderService) ListOrdersByStatus(ctx context.Context, status models.OrderStatus) ([]models.Order, error) {

	orders, err := s.orderRepo.ListOrdersByStatus(ctx, status, statusListLimit)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch orders").WithError(err)
	}

	return orders, nil
}

func (s *orderService) ListUserOrdersByStatus(ctx context.Context, userID string, status models.OrderStatus) ([]models.Order, error) {

	orders, err := s.orderRepo.ListOrdersByUserAndStatus(ctx, userID, status)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch orders").WithError(err)
	}

	return orders, nil
}

func (s *orderService) ListHighValueOrders(ctx context.Context, minAmount decimal.Decimal) ([]models.Order, error) {

	orders, err := s.orderRepo.ListHighValueOrders(ctx, minAmount)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch orders").WithError(err)
	}

	return orders, nil
}

func (s *orderService) GetUserOrderCount(ctx context.Context, userID string) (int64, error) {

	count, err := s.orderRepo.CountOrdersByUser(ctx, userID)
	if err != nil {
		return 0, appErrors.DatabaseError("Failed to count orders").WithError(err)
	}

	return count, nil
}

func (s *orderService) GetUserTotalSpent(ctx context.Context, userID string) (decimal.Decimal, error) {

	total, err := s.orderRepo.TotalSpentByUser(ctx, userID)
	if err != nil {
		return decimal.Zero, appErrors.DatabaseError("Failed to sum order totals").WithError(err)
	}

	return total, nil
}
