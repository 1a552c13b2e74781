package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopsphere/ecommerce-backend/internal/api/handlers"
	appErrors "github.com/shopsphere/ecommerce-backend/internal/errors"
	"github.com/shopsphere/ecommerce-backend/internal/models"
	"github.com/shopsphere/ecommerce-backend/internal/services/mocks"
	"github.com/shopsphere/ecommerce-backend/internal/testutils"
	"github.com/shopsphere/ecommerce-backend/internal/utils/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) response.APIResponse {
	t.Helper()

	var resp response.APIResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	return resp
}

func TestCartHandlerAddItem(t *testing.T) {
	t.Run("Success - Adds Item", func(t *testing.T) {
		// Arrange
		cartService := new(mocks.CartService)
		handler := handlers.NewCartHandler(cartService)

		cartService.On("AddToCart", mock.Anything, "user-1", mock.MatchedBy(func(req *models.AddToCartRequest) bool {
			return req.ProductID == 7 && req.Quantity == 2
		})).Return(&models.CartItem{ID: 1, UserID: "user-1", ProductID: 7, Quantity: 2}, nil)

		body := bytes.NewBufferString(`{"product_id": 7, "quantity": 2}`)
		req := testutils.CreateTestRequest(http.MethodPost, "/api/v1/cart/user-1/items", body,
			map[string]string{"userId": "user-1"})
		rec := httptest.NewRecorder()

		// Act
		handler.AddItem().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
		resp := decodeResponse(t, rec)
		assert.True(t, resp.Success)
		cartService.AssertExpectations(t)
	})

	t.Run("Failure - Missing User ID", func(t *testing.T) {
		// Arrange
		cartService := new(mocks.CartService)
		handler := handlers.NewCartHandler(cartService)

		body := bytes.NewBufferString(`{"product_id": 7, "quantity": 2}`)
		req := testutils.CreateTestRequest(http.MethodPost, "/api/v1/cart//items", body, nil)
		rec := httptest.NewRecorder()

		// Act
		handler.AddItem().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		cartService.AssertNotCalled(t, "AddToCart")
	})

	t.Run("Failure - Zero Quantity Fails Validation", func(t *testing.T) {
		// Arrange
		cartService := new(mocks.CartService)
		handler := handlers.NewCartHandler(cartService)

		body := bytes.NewBufferString(`{"product_id": 7, "quantity": 0}`)
		req := testutils.CreateTestRequest(http.MethodPost, "/api/v1/cart/user-1/items", body,
			map[string]string{"userId": "user-1"})
		rec := httptest.NewRecorder()

		// Act
		handler.AddItem().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		cartService.AssertNotCalled(t, "AddToCart")
	})

	t.Run("Failure - Insufficient Stock Maps To 409", func(t *testing.T) {
		// Arrange
		cartService := new(mocks.CartService)
		handler := handlers.NewCartHandler(cartService)

		cartService.On("AddToCart", mock.Anything, "user-1", mock.Anything).
			Return(nil, appErrors.InsufficientStockError("Insufficient stock for product: Laptop", 1))

		body := bytes.NewBufferString(`{"product_id": 7, "quantity": 5}`)
		req := testutils.CreateTestRequest(http.MethodPost, "/api/v1/cart/user-1/items", body,
			map[string]string{"userId": "user-1"})
		rec := httptest.NewRecorder()

		// Act
		handler.AddItem().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusConflict, rec.Code)
		resp := decodeResponse(t, rec)
		assert.False(t, resp.Success)
		require.NotNil(t, resp.Error)
		assert.Equal(t, appErrors.ErrCodeInsufficientStock, resp.Error.Code)
	})
}

func TestCartHandlerUpdateItem(t *testing.T) {
	t.Run("Success - Zero Quantity Returns No Content", func(t *testing.T) {
		// Arrange
		cartService := new(mocks.CartService)
		handler := handlers.NewCartHandler(cartService)

		cartService.On("UpdateCartItemQuantity", mock.Anything, "user-1", mock.MatchedBy(func(req *models.UpdateCartItemRequest) bool {
			return req.ProductID == 7 && req.Quantity == 0
		})).Return(nil, nil)

		body := bytes.NewBufferString(`{"product_id": 7, "quantity": 0}`)
		req := testutils.CreateTestRequest(http.MethodPut, "/api/v1/cart/user-1/items", body,
			map[string]string{"userId": "user-1"})
		rec := httptest.NewRecorder()

		// Act
		handler.UpdateItem().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("Success - Returns Updated Line", func(t *testing.T) {
		// Arrange
		cartService := new(mocks.CartService)
		handler := handlers.NewCartHandler(cartService)

		cartService.On("UpdateCartItemQuantity", mock.Anything, "user-1", mock.Anything).
			Return(&models.CartItem{ID: 1, UserID: "user-1", ProductID: 7, Quantity: 9}, nil)

		body := bytes.NewBufferString(`{"product_id": 7, "quantity": 9}`)
		req := testutils.CreateTestRequest(http.MethodPut, "/api/v1/cart/user-1/items", body,
			map[string]string{"userId": "user-1"})
		rec := httptest.NewRecorder()

		// Act
		handler.UpdateItem().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
		resp := decodeResponse(t, rec)
		assert.True(t, resp.Success)
	})

	t.Run("Failure - Unknown Line Maps To 404", func(t *testing.T) {
		// Arrange
		cartService := new(mocks.CartService)
		handler := handlers.NewCartHandler(cartService)

		cartService.On("UpdateCartItemQuantity", mock.Anything, "user-1", mock.Anything).
			Return(nil, appErrors.NotFoundError("Cart item not found"))

		body := bytes.NewBufferString(`{"product_id": 404, "quantity": 2}`)
		req := testutils.CreateTestRequest(http.MethodPut, "/api/v1/cart/user-1/items", body,
			map[string]string{"userId": "user-1"})
		rec := httptest.NewRecorder()

		// Act
		handler.UpdateItem().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestCartHandlerRemoveItem(t *testing.T) {
	t.Run("Success - Returns No Content", func(t *testing.T) {
		// Arrange
		cartService := new(mocks.CartService)
		handler := handlers.NewCartHandler(cartService)

		cartService.On("RemoveFromCart", mock.Anything, "user-1", int64(7)).Return(nil)

		req := testutils.CreateTestRequest(http.MethodDelete, "/api/v1/cart/user-1/items/7", nil,
			map[string]string{"userId": "user-1", "productId": "7"})
		rec := httptest.NewRecorder()

		// Act
		handler.RemoveItem().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusNoContent, rec.Code)
		cartService.AssertExpectations(t)
	})

	t.Run("Failure - Non-Numeric Product ID", func(t *testing.T) {
		// Arrange
		cartService := new(mocks.CartService)
		handler := handlers.NewCartHandler(cartService)

		req := testutils.CreateTestRequest(http.MethodDelete, "/api/v1/cart/user-1/items/abc", nil,
			map[string]string{"userId": "user-1", "productId": "abc"})
		rec := httptest.NewRecorder()

		// Act
		handler.RemoveItem().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		cartService.AssertNotCalled(t, "RemoveFromCart")
	})
}

func TestCartHandlerCounts(t *testing.T) {
	t.Run("Success - Line Count", func(t *testing.T) {
		// Arrange
		cartService := new(mocks.CartService)
		handler := handlers.NewCartHandler(cartService)

		cartService.On("GetCartItemCount", mock.Anything, "user-1").Return(int64(2), nil)

		req := testutils.CreateTestRequest(http.MethodGet, "/api/v1/cart/user-1/count", nil,
			map[string]string{"userId": "user-1"})
		rec := httptest.NewRecorder()

		// Act
		handler.CartCount().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"count":2`)
	})

	t.Run("Success - Quantity Total", func(t *testing.T) {
		// Arrange
		cartService := new(mocks.CartService)
		handler := handlers.NewCartHandler(cartService)

		cartService.On("GetCartQuantityTotal", mock.Anything, "user-1").Return(int64(7), nil)

		req := testutils.CreateTestRequest(http.MethodGet, "/api/v1/cart/user-1/quantity", nil,
			map[string]string{"userId": "user-1"})
		rec := httptest.NewRecorder()

		// Act
		handler.CartQuantityTotal().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"count":7`)
	})
}
