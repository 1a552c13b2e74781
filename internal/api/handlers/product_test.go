package handlers_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/shopsphere/ecommerce-backend/internal/api/handlers"
	appErrors "github.com/shopsphere/ecommerce-backend/internal/errors"
	"github.com/shopsphere/ecommerce-backend/internal/models"
	"github.com/shopsphere/ecommerce-backend/internal/services/mocks"
	"github.com/shopsphere/ecommerce-backend/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestProductHandlerCreateProduct(t *testing.T) {
	t.Run("Success - Creates Product", func(t *testing.T) {
		// Arrange
		catalogService := new(mocks.CatalogService)
		handler := handlers.NewProductHandler(catalogService)

		catalogService.On("CreateProduct", mock.Anything, mock.MatchedBy(func(req *models.CreateProductRequest) bool {
			return req.Name == "Laptop" && req.CategoryID == 3
		})).Return(&models.Product{ID: 7, Name: "Laptop", CategoryID: 3, Price: decimal.NewFromFloat(999.99)}, nil)

		body := bytes.NewBufferString(`{"category_id": 3, "name": "Laptop", "price": "999.99", "stock_quantity": 10}`)
		req := testutils.CreateTestRequest(http.MethodPost, "/api/v1/products", body, nil)
		rec := httptest.NewRecorder()

		// Act
		handler.CreateProduct().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusCreated, rec.Code)
		resp := decodeResponse(t, rec)
		assert.True(t, resp.Success)
		catalogService.AssertExpectations(t)
	})

	t.Run("Failure - Missing Name Fails Validation", func(t *testing.T) {
		// Arrange
		catalogService := new(mocks.CatalogService)
		handler := handlers.NewProductHandler(catalogService)

		body := bytes.NewBufferString(`{"category_id": 3, "price": "999.99"}`)
		req := testutils.CreateTestRequest(http.MethodPost, "/api/v1/products", body, nil)
		rec := httptest.NewRecorder()

		// Act
		handler.CreateProduct().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		catalogService.AssertNotCalled(t, "CreateProduct")
	})

	t.Run("Failure - Unknown Category", func(t *testing.T) {
		// Arrange
		catalogService := new(mocks.CatalogService)
		handler := handlers.NewProductHandler(catalogService)

		catalogService.On("CreateProduct", mock.Anything, mock.Anything).
			Return(nil, appErrors.NotFoundError("Category not found"))

		body := bytes.NewBufferString(`{"category_id": 99, "name": "Laptop", "price": "999.99"}`)
		req := testutils.CreateTestRequest(http.MethodPost, "/api/v1/products", body, nil)
		rec := httptest.NewRecorder()

		// Act
		handler.CreateProduct().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, rec.Code)
		resp := decodeResponse(t, rec)
		assert.Equal(t, appErrors.ErrCodeNotFound, resp.Error.Code)
	})
}

func TestProductHandlerGetProduct(t *testing.T) {
	t.Run("Success - Returns Product", func(t *testing.T) {
		// Arrange
		catalogService := new(mocks.CatalogService)
		handler := handlers.NewProductHandler(catalogService)

		catalogService.On("GetProductByID", mock.Anything, int64(7)).
			Return(&models.Product{ID: 7, Name: "Laptop"}, nil)

		req := testutils.CreateTestRequest(http.MethodGet, "/api/v1/products/7", nil,
			map[string]string{"id": "7"})
		rec := httptest.NewRecorder()

		// Act
		handler.GetProduct().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
		catalogService.AssertExpectations(t)
	})

	t.Run("Failure - Invalid ID", func(t *testing.T) {
		// Arrange
		catalogService := new(mocks.CatalogService)
		handler := handlers.NewProductHandler(catalogService)

		req := testutils.CreateTestRequest(http.MethodGet, "/api/v1/products/abc", nil,
			map[string]string{"id": "abc"})
		rec := httptest.NewRecorder()

		// Act
		handler.GetProduct().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		catalogService.AssertNotCalled(t, "GetProductByID")
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		catalogService := new(mocks.CatalogService)
		handler := handlers.NewProductHandler(catalogService)

		catalogService.On("GetProductByID", mock.Anything, int64(99)).
			Return(nil, appErrors.NotFoundError("Product not found"))

		req := testutils.CreateTestRequest(http.MethodGet, "/api/v1/products/99", nil,
			map[string]string{"id": "99"})
		rec := httptest.NewRecorder()

		// Act
		handler.GetProduct().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestProductHandlerListProducts(t *testing.T) {
	t.Run("Success - Paginates With Defaults", func(t *testing.T) {
		// Arrange
		catalogService := new(mocks.CatalogService)
		handler := handlers.NewProductHandler(catalogService)

		catalogService.On("ListProducts", mock.Anything, 1, 20).
			Return([]*models.Product{{ID: 7, Name: "Laptop"}}, 1, nil)

		req := testutils.CreateTestRequest(http.MethodGet, "/api/v1/products", nil, nil)
		rec := httptest.NewRecorder()

		// Act
		handler.ListProducts().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
		catalogService.AssertExpectations(t)
	})

	t.Run("Success - Clamps Oversized Page Size", func(t *testing.T) {
		// Arrange
		catalogService := new(mocks.CatalogService)
		handler := handlers.NewProductHandler(catalogService)

		catalogService.On("ListProducts", mock.Anything, 2, 100).
			Return([]*models.Product{}, 0, nil)

		req := testutils.CreateTestRequest(http.MethodGet, "/api/v1/products?page=2&size=500", nil, nil)
		rec := httptest.NewRecorder()

		// Act
		handler.ListProducts().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
		catalogService.AssertExpectations(t)
	})
}

func TestProductHandlerSearchProducts(t *testing.T) {
	t.Run("Success - Searches By Term", func(t *testing.T) {
		// Arrange
		catalogService := new(mocks.CatalogService)
		handler := handlers.NewProductHandler(catalogService)

		catalogService.On("SearchProducts", mock.Anything, "lap", 1, 20).
			Return([]*models.Product{{ID: 7, Name: "Laptop"}}, 1, nil)

		req := testutils.CreateTestRequest(http.MethodGet, "/api/v1/products/search?q=lap", nil, nil)
		rec := httptest.NewRecorder()

		// Act
		handler.SearchProducts().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
		catalogService.AssertExpectations(t)
	})

	t.Run("Failure - Missing Search Term", func(t *testing.T) {
		// Arrange
		catalogService := new(mocks.CatalogService)
		handler := handlers.NewProductHandler(catalogService)

		req := testutils.CreateTestRequest(http.MethodGet, "/api/v1/products/search", nil, nil)
		rec := httptest.NewRecorder()

		// Act
		handler.SearchProducts().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		catalogService.AssertNotCalled(t, "SearchProducts")
	})
}

func TestProductHandlerListByPriceRange(t *testing.T) {
	t.Run("Success - Filters By Range", func(t *testing.T) {
		// Arrange
		catalogService := new(mocks.CatalogService)
		handler := handlers.NewProductHandler(catalogService)

		catalogService.On("ListProductsByPriceRange", mock.Anything,
			mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(decimal.NewFromInt(100)) }),
			mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(decimal.NewFromInt(1000)) }),
			1, 20).
			Return([]*models.Product{{ID: 7}}, 1, nil)

		req := testutils.CreateTestRequest(http.MethodGet, "/api/v1/products/price-range?min=100&max=1000", nil, nil)
		rec := httptest.NewRecorder()

		// Act
		handler.ListByPriceRange().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
		catalogService.AssertExpectations(t)
	})

	t.Run("Failure - Non-Numeric Bound", func(t *testing.T) {
		// Arrange
		catalogService := new(mocks.CatalogService)
		handler := handlers.NewProductHandler(catalogService)

		req := testutils.CreateTestRequest(http.MethodGet, "/api/v1/products/price-range?min=cheap&max=1000", nil, nil)
		rec := httptest.NewRecorder()

		// Act
		handler.ListByPriceRange().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		catalogService.AssertNotCalled(t, "ListProductsByPriceRange")
	})

	t.Run("Failure - Missing Bound", func(t *testing.T) {
		// Arrange
		catalogService := new(mocks.CatalogService)
		handler := handlers.NewProductHandler(catalogService)

		req := testutils.CreateTestRequest(http.MethodGet, "/api/v1/products/price-range?min=100", nil, nil)
		rec := httptest.NewRecorder()

		// Act
		handler.ListByPriceRange().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestProductHandlerListLowStock(t *testing.T) {
	t.Run("Success - Uses Default Threshold", func(t *testing.T) {
		// Arrange
		catalogService := new(mocks.CatalogService)
		handler := handlers.NewProductHandler(catalogService)

		catalogService.On("ListLowStockProducts", mock.Anything, 5).
			Return([]*models.Product{{ID: 7, StockQuantity: 2}}, nil)

		req := testutils.CreateTestRequest(http.MethodGet, "/api/v1/products/low-stock", nil, nil)
		rec := httptest.NewRecorder()

		// Act
		handler.ListLowStock().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
		catalogService.AssertExpectations(t)
	})

	t.Run("Failure - Negative Threshold", func(t *testing.T) {
		// Arrange
		catalogService := new(mocks.CatalogService)
		handler := handlers.NewProductHandler(catalogService)

		req := testutils.CreateTestRequest(http.MethodGet, "/api/v1/products/low-stock?threshold=-1", nil, nil)
		rec := httptest.NewRecorder()

		// Act
		handler.ListLowStock().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		catalogService.AssertNotCalled(t, "ListLowStockProducts")
	})
}

func TestProductHandlerDeleteProduct(t *testing.T) {
	t.Run("Success - Deletes Product", func(t *testing.T) {
		// Arrange
		catalogService := new(mocks.CatalogService)
		handler := handlers.NewProductHandler(catalogService)

		catalogService.On("DeleteProduct", mock.Anything, int64(7)).Return(nil)

		req := testutils.CreateTestRequest(http.MethodDelete, "/api/v1/products/7", nil,
			map[string]string{"id": "7"})
		rec := httptest.NewRecorder()

		// Act
		handler.DeleteProduct().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusNoContent, rec.Code)
		catalogService.AssertExpectations(t)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		catalogService := new(mocks.CatalogService)
		handler := handlers.NewProductHandler(catalogService)

		catalogService.On("DeleteProduct", mock.Anything, int64(99)).
			Return(appErrors.NotFoundError("Product not found"))

		req := testutils.CreateTestRequest(http.MethodDelete, "/api/v1/products/99", nil,
			map[string]string{"id": "99"})
		rec := httptest.NewRecorder()

		// Act
		handler.DeleteProduct().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
