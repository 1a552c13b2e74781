package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/shopsphere/ecommerce-backend/internal/api/middleware"
	"github.com/shopsphere/ecommerce-backend/internal/errors"
	"github.com/shopsphere/ecommerce-backend/internal/models"
	service "github.com/shopsphere/ecommerce-backend/internal/services"
	"github.com/shopsphere/ecommerce-backend/internal/utils"
	"github.com/shopsphere/ecommerce-backend/internal/utils/response"
)

type CartHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		validator:   validator.New(),
	}
}

// userIDFromPath rejects a blank userId path value; the id itself is an
// opaque caller-supplied string.
func userIDFromPath(r *http.Request, w http.ResponseWriter) (string, bool) {
	userID := r.PathValue("userId")
	if userID == "" {
		response.Error(w, errors.BadRequestError("User ID is required"))
		return "", false
	}

	return userID, true
}

func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		userID, ok := userIDFromPath(r, w)
		if !ok {
			return
		}

		items, err := h.cartService.GetCartItems(r.Context(), userID)
		if err != nil {
			logger.Error("Failed to fetch cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, items)
	}
}

func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		userID, ok := userIDFromPath(r, w)
		if !ok {
			return
		}

		var req models.AddToCartRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid add to cart input")
			return
		}

		item, err := h.cartService.AddToCart(r.Context(), userID, &req)
		if err != nil {
			logger.Error("Failed to add item to cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Item added to cart",
			slog.String("userId", userID),
			slog.Int64("productId", req.ProductID),
			slog.Int("quantity", item.Quantity))
		response.Success(w, http.StatusOK, item)
	}
}

func (h *CartHandler) UpdateItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		userID, ok := userIDFromPath(r, w)
		if !ok {
			return
		}

		var req models.UpdateCartItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid update cart input")
			return
		}

		item, err := h.cartService.UpdateCartItemQuantity(r.Context(), userID, &req)
		if err != nil {
			logger.Error("Failed to update cart item", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		// A zero-or-less quantity removes the line.
		if item == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		response.Success(w, http.StatusOK, item)
	}
}

func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		userID, ok := userIDFromPath(r, w)
		if !ok {
			return
		}

		productID, err := utils.ParseIDParam(r, "productId")
		if err != nil {
			response.Error(w, errors.BadRequestError(err.Error()))
			return
		}

		if err := h.cartService.RemoveFromCart(r.Context(), userID, productID); err != nil {
			logger.Error("Failed to remove cart item", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		userID, ok := userIDFromPath(r, w)
		if !ok {
			return
		}

		if err := h.cartService.ClearCart(r.Context(), userID); err != nil {
			logger.Error("Failed to clear cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *CartHandler) CartTotal() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		userID, ok := userIDFromPath(r, w)
		if !ok {
			return
		}

		total, err := h.cartService.CalculateCartTotal(r.Context(), userID)
		if err != nil {
			logger.Error("Failed to calculate cart total", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]any{"total": total})
	}
}

// CartCount reports the number of distinct cart lines.
func (h *CartHandler) CartCount() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		userID, ok := userIDFromPath(r, w)
		if !ok {
			return
		}

		count, err := h.cartService.GetCartItemCount(r.Context(), userID)
		if err != nil {
			logger.Error("Failed to count cart items", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]int64{"count": count})
	}
}

// CartQuantityTotal reports the summed quantity across all lines, which
// is a different figure than CartCount.
func (h *CartHandler) CartQuantityTotal() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		userID, ok := userIDFromPath(r, w)
		if !ok {
			return
		}

		sum, err := h.cartService.GetCartQuantityTotal(r.Context(), userID)
		if err != nil {
			logger.Error("Failed to sum cart quantities", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]int64{"count": sum})
	}
}
