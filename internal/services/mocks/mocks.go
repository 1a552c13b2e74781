// Package mocks provides hand-written testify mocks of the service
// interfaces for handler-level tests.
package mocks

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/shopsphere/ecommerce-backend/internal/models"
	"github.com/stretchr/testify/mock"
)

type CartService struct {
	mock.Mock
}

func (m *CartService) GetCartItems(ctx context.Context, userID string) ([]models.CartItem, error) {
	ret := m.Called(ctx, userID)

	var items []models.CartItem
	if ret.Get(0) != nil {
		items = ret.Get(0).([]models.CartItem)
	}

	return items, ret.Error(1)
}

func (m *CartService) AddToCart(ctx context.Context, userID string, req *models.AddToCartRequest) (*models.CartItem, error) {
	return cartItemRet(m.Called(ctx, userID, req))
}

func (m *CartService) UpdateCartItemQuantity(ctx context.Context, userID string, req *models.UpdateCartItemRequest) (*models.CartItem, error) {
	return cartItemRet(m.Called(ctx, userID, req))
}

func (m *CartService) RemoveFromCart(ctx context.Context, userID string, productID int64) error {
	return m.Called(ctx, userID, productID).Error(0)
}

func (m *CartService) ClearCart(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *CartService) CalculateCartTotal(ctx context.Context, userID string) (decimal.Decimal, error) {
	ret := m.Called(ctx, userID)

	return ret.Get(0).(decimal.Decimal), ret.Error(1)
}

func (m *CartService) GetCartItemCount(ctx context.Context, userID string) (int64, error) {
	ret := m.Called(ctx, userID)

	return ret.Get(0).(int64), ret.Error(1)
}

func (m *CartService) GetCartQuantityTotal(ctx context.Context, userID string) (int64, error) {
	ret := m.Called(ctx, userID)

	return ret.Get(0).(int64), ret.Error(1)
}

func cartItemRet(ret mock.Arguments) (*models.CartItem, error) {
	var item *models.CartItem
	if ret.Get(0) != nil {
		item = ret.Get(0).(*models.CartItem)
	}

	return item, ret.Error(1)
}

type OrderService struct {
	mock.Mock
}

func (m *OrderService) CreateOrder(ctx context.Context, userID string, req *models.CreateOrderRequest) (*models.Order, error) {
	return orderRet(m.Called(ctx, userID, req))
}

func (m *OrderService) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	return orderRet(m.Called(ctx, id))
}

func (m *OrderService) ListUserOrders(ctx context.Context, userID string, page, size int) ([]models.Order, int, error) {
	ret := m.Called(ctx, userID, page, size)

	var orders []models.Order
	if ret.Get(0) != nil {
		orders = ret.Get(0).([]models.Order)
	}

	return orders, ret.Int(1), ret.Error(2)
}

func (m *OrderService) UpdateOrderStatus(ctx context.Context, id int64, status models.OrderStatus) (*models.Order, error) {
	return orderRet(m.Called(ctx, id, status))
}

func (m *OrderService) ListOrdersByStatus(ctx context.Context, status models.OrderStatus) ([]models.Order, error) {
	return orderListRet(m.Called(ctx, status))
}

func (m *OrderService) ListUserOrdersByStatus(ctx context.Context, userID string, status models.OrderStatus) ([]models.Order, error) {
	return orderListRet(m.Called(ctx, userID, status))
}

func (m *OrderService) ListHighValueOrders(ctx context.Context, minAmount decimal.Decimal) ([]models.Order, error) {
	return orderListRet(m.Called(ctx, minAmount))
}

func (m *OrderService) GetUserOrderCount(ctx context.Context, userID string) (int64, error) {
	ret := m.Called(ctx, userID)

	return ret.Get(0).(int64), ret.Error(1)
}

func (m *OrderService) GetUserTotalSpent(ctx context.Context, userID string) (decimal.Decimal, error) {
	ret := m.Called(ctx, userID)

	return ret.Get(0).(decimal.Decimal), ret.Error(1)
}

func orderRet(ret mock.Arguments) (*models.Order, error) {
	var order *models.Order
	if ret.Get(0) != nil {
		order = ret.Get(0).(*models.Order)
	}

	return order, ret.Error(1)
}

func orderListRet(ret mock.Arguments) ([]models.Order, error) {
	var orders []models.Order
	if ret.Get(0) != nil {
		orders = ret.Get(0).([]models.Order)
	}

	return orders, ret.Error(1)
}

type CatalogService struct {
	mock.Mock
}

func (m *CatalogService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	return productRet(m.Called(ctx, req))
}

func (m *CatalogService) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	return productRet(m.Called(ctx, id))
}

func (m *CatalogService) UpdateProduct(ctx context.Context, id int64, req *models.UpdateProductRequest) (*models.Product, error) {
	return productRet(m.Called(ctx, id, req))
}

func (m *CatalogService) DeleteProduct(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *CatalogService) ListProducts(ctx context.Context, page, size int) ([]*models.Product, int, error) {
	return productListRet(m.Called(ctx, page, size))
}

func (m *CatalogService) ListProductsByCategory(ctx context.Context, categoryID int64, page, size int) ([]*models.Product, int, error) {
	return productListRet(m.Called(ctx, categoryID, page, size))
}

func (m *CatalogService) SearchProducts(ctx context.Context, term string, page, size int) ([]*models.Product, int, error) {
	return productListRet(m.Called(ctx, term, page, size))
}

func (m *CatalogService) ListProductsByPriceRange(ctx context.Context, minPrice, maxPrice decimal.Decimal, page, size int) ([]*models.Product, int, error) {
	return productListRet(m.Called(ctx, minPrice, maxPrice, page, size))
}

func (m *CatalogService) ListAvailableProducts(ctx context.Context, page, size int) ([]*models.Product, int, error) {
	return productListRet(m.Called(ctx, page, size))
}

func (m *CatalogService) ListLatestProducts(ctx context.Context, page, size int) ([]*models.Product, int, error) {
	return productListRet(m.Called(ctx, page, size))
}

func (m *CatalogService) ListLowStockProducts(ctx context.Context, threshold int) ([]*models.Product, error) {
	ret := m.Called(ctx, threshold)

	var products []*models.Product
	if ret.Get(0) != nil {
		products = ret.Get(0).([]*models.Product)
	}

	return products, ret.Error(1)
}

func (m *CatalogService) CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error) {
	return categoryRet(m.Called(ctx, req))
}

func (m *CatalogService) GetCategoryByID(ctx context.Context, id int64) (*models.Category, error) {
	return categoryRet(m.Called(ctx, id))
}

func (m *CatalogService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	return categoryListRet(m.Called(ctx))
}

func (m *CatalogService) SearchCategories(ctx context.Context, name string) ([]*models.Category, error) {
	return categoryListRet(m.Called(ctx, name))
}

func (m *CatalogService) UpdateCategory(ctx context.Context, id int64, req *models.UpdateCategoryRequest) (*models.Category, error) {
	return categoryRet(m.Called(ctx, id, req))
}

func (m *CatalogService) DeleteCategory(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func productRet(ret mock.Arguments) (*models.Product, error) {
	var product *models.Product
	if ret.Get(0) != nil {
		product = ret.Get(0).(*models.Product)
	}

	return product, ret.Error(1)
}

func productListRet(ret mock.Arguments) ([]*models.Product, int, error) {
	var products []*models.Product
	if ret.Get(0) != nil {
		products = ret.Get(0).([]*models.Product)
	}

	return products, ret.Int(1), ret.Error(2)
}

func categoryRet(ret mock.Arguments) (*models.Category, error) {
	var category *models.Category
	if ret.Get(0) != nil {
		category = ret.Get(0).(*models.Category)
	}

	return category, ret.Error(1)
}

func categoryListRet(ret mock.Arguments) ([]*models.Category, error) {
	var categories []*models.Category
	if ret.Get(0) != nil {
		categories = ret.Get(0).([]*models.Category)
	}

	return categories, ret.Error(1)
}
