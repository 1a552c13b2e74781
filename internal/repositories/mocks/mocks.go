// Package mocks provides hand-written testify mocks of the repository
// interfaces for service-level tests.
package mocks

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/shopsphere/ecommerce-backend/internal/models"
	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

type ProductRepository struct {
	mock.Mock
}

func NewProductRepository(t testingT) *ProductRepository {
	m := &ProductRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *ProductRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *ProductRepository) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	ret := m.Called(ctx, id)

	var product *models.Product
	if ret.Get(0) != nil {
		product = ret.Get(0).(*models.Product)
	}

	return product, ret.Error(1)
}

func (m *ProductRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *ProductRepository) DeleteProduct(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *ProductRepository) ListProducts(ctx context.Context, page, size int) ([]*models.Product, int, error) {
	return m.productList(m.Called(ctx, page, size))
}

func (m *ProductRepository) ListProductsByCategory(ctx context.Context, categoryID int64, page, size int) ([]*models.Product, int, error) {
	return m.productList(m.Called(ctx, categoryID, page, size))
}

func (m *ProductRepository) SearchProducts(ctx context.Context, term string, page, size int) ([]*models.Product, int, error) {
	return m.productList(m.Called(ctx, term, page, size))
}

func (m *ProductRepository) ListProductsByPriceRange(ctx context.Context, minPrice, maxPrice decimal.Decimal, page, size int) ([]*models.Product, int, error) {
	return m.productList(m.Called(ctx, minPrice, maxPrice, page, size))
}

func (m *ProductRepository) ListAvailableProducts(ctx context.Context, page, size int) ([]*models.Product, int, error) {
	return m.productList(m.Called(ctx, page, size))
}

func (m *ProductRepository) ListLatestProducts(ctx context.Context, page, size int) ([]*models.Product, int, error) {
	return m.productList(m.Called(ctx, page, size))
}

func (m *ProductRepository) ListLowStockProducts(ctx context.Context, threshold int) ([]*models.Product, error) {
	ret := m.Called(ctx, threshold)

	var products []*models.Product
	if ret.Get(0) != nil {
		products = ret.Get(0).([]*models.Product)
	}

	return products, ret.Error(1)
}

func (m *ProductRepository) productList(ret mock.Arguments) ([]*models.Product, int, error) {
	var products []*models.Product
	if ret.Get(0) != nil {
		products = ret.Get(0).([]*models.Product)
	}

	return products, ret.Int(1), ret.Error(2)
}

type CategoryRepository struct {
	mock.Mock
}

func NewCategoryRepository(t testingT) *CategoryRepository {
	m := &CategoryRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *CategoryRepository) CreateCategory(ctx context.Context, category *models.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *CategoryRepository) GetCategoryByID(ctx context.Context, id int64) (*models.Category, error) {
	return m.categoryRet(m.Called(ctx, id))
}

func (m *CategoryRepository) GetCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	return m.categoryRet(m.Called(ctx, name))
}

func (m *CategoryRepository) ListCategories(ctx context.Context) ([]*models.Category, error) {
	return m.categoryListRet(m.Called(ctx))
}

func (m *CategoryRepository) SearchCategories(ctx context.Context, name string) ([]*models.Category, error) {
	return m.categoryListRet(m.Called(ctx, name))
}

func (m *CategoryRepository) UpdateCategory(ctx context.Context, category *models.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *CategoryRepository) DeleteCategory(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *CategoryRepository) categoryRet(ret mock.Arguments) (*models.Category, error) {
	var category *models.Category
	if ret.Get(0) != nil {
		category = ret.Get(0).(*models.Category)
	}

	return category, ret.Error(1)
}

func (m *CategoryRepository) categoryListRet(ret mock.Arguments) ([]*models.Category, error) {
	var categories []*models.Category
	if ret.Get(0) != nil {
		categories = ret.Get(0).([]*models.Category)
	}

	return categories, ret.Error(1)
}

type CartRepository struct {
	mock.Mock
}

func NewCartRepository(t testingT) *CartRepository {
	m := &CartRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *CartRepository) ListByUser(ctx context.Context, userID string) ([]models.CartItem, error) {
	ret := m.Called(ctx, userID)

	var items []models.CartItem
	if ret.Get(0) != nil {
		items = ret.Get(0).([]models.CartItem)
	}

	return items, ret.Error(1)
}

func (m *CartRepository) GetByUserAndProduct(ctx context.Context, userID string, productID int64) (*models.CartItem, error) {
	return m.itemRet(m.Called(ctx, userID, productID))
}

func (m *CartRepository) AddItem(ctx context.Context, userID string, productID int64, quantity int) (*models.CartItem, error) {
	return m.itemRet(m.Called(ctx, userID, productID, quantity))
}

func (m *CartRepository) SetQuantity(ctx context.Context, userID string, productID int64, quantity int) (*models.CartItem, error) {
	return m.itemRet(m.Called(ctx, userID, productID, quantity))
}

func (m *CartRepository) DeleteByUserAndProduct(ctx context.Context, userID string, productID int64) error {
	return m.Called(ctx, userID, productID).Error(0)
}

func (m *CartRepository) DeleteByUser(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *CartRepository) CountLines(ctx context.Context, userID string) (int64, error) {
	ret := m.Called(ctx, userID)

	return ret.Get(0).(int64), ret.Error(1)
}

func (m *CartRepository) SumQuantities(ctx context.Context, userID string) (int64, error) {
	ret := m.Called(ctx, userID)

	return ret.Get(0).(int64), ret.Error(1)
}

func (m *CartRepository) itemRet(ret mock.Arguments) (*models.CartItem, error) {
	var item *models.CartItem
	if ret.Get(0) != nil {
		item = ret.Get(0).(*models.CartItem)
	}

	return item, ret.Error(1)
}

type OrderRepository struct {
	mock.Mock
}

func NewOrderRepository(t testingT) *OrderRepository {
	m := &OrderRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *OrderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *OrderRepository) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	ret := m.Called(ctx, id)

	var order *models.Order
	if ret.Get(0) != nil {
		order = ret.Get(0).(*models.Order)
	}

	return order, ret.Error(1)
}

func (m *OrderRepository) ListOrdersByUser(ctx context.Context, userID string, page, size int) ([]models.Order, int, error) {
	ret := m.Called(ctx, userID, page, size)

	var orders []models.Order
	if ret.Get(0) != nil {
		orders = ret.Get(0).([]models.Order)
	}

	return orders, ret.Int(1), ret.Error(2)
}

func (m *OrderRepository) ListOrdersByStatus(ctx context.Context, status models.OrderStatus, limit int) ([]models.Order, error) {
	return m.orderListRet(m.Called(ctx, status, limit))
}

func (m *OrderRepository) ListOrdersByUserAndStatus(ctx context.Context, userID string, status models.OrderStatus) ([]models.Order, error) {
	return m.orderListRet(m.Called(ctx, userID, status))
}

func (m *OrderRepository) ListHighValueOrders(ctx context.Context, minAmount decimal.Decimal) ([]models.Order, error) {
	return m.orderListRet(m.Called(ctx, minAmount))
}

func (m *OrderRepository) CountOrdersByUser(ctx context.Context, userID string) (int64, error) {
	ret := m.Called(ctx, userID)

	return ret.Get(0).(int64), ret.Error(1)
}

func (m *OrderRepository) TotalSpentByUser(ctx context.Context, userID string) (decimal.Decimal, error) {
	ret := m.Called(ctx, userID)

	return ret.Get(0).(decimal.Decimal), ret.Error(1)
}

func (m *OrderRepository) UpdateOrderStatus(ctx context.Context, id int64, status models.OrderStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *OrderRepository) orderListRet(ret mock.Arguments) ([]models.Order, error) {
	var orders []models.Order
	if ret.Get(0) != nil {
		orders = ret.Get(0).([]models.Order)
	}

	return orders, ret.Error(1)
}
