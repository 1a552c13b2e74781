package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/shopsphere/ecommerce-backend/internal/api/middleware"
	"github.com/shopsphere/ecommerce-backend/internal/errors"
	"github.com/shopsphere/ecommerce-backend/internal/models"
	service "github.com/shopsphere/ecommerce-backend/internal/services"
	"github.com/shopsphere/ecommerce-backend/internal/utils"
	"github.com/shopsphere/ecommerce-backend/internal/utils/response"
)

type OrderHandler struct {
	orderService service.OrderService
	validator    *validator.Validate
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService, validator: validator.New()}
}

// CreateOrder godoc
//	@Summary		Create a new order
//	@Description	Creates an order from the user's current cart items and the provided shipping address. The cart is cleared on success.
//	@Tags			Orders
//	@Accept			json
//	@Produce		json
//	@Param			userId	path		string						true	"User ID"
//	@Param			order	body		models.CreateOrderRequest	true	"Order creation details"
//	@Success		201		{object}	models.Order				"Successfully created order"
//	@Failure		400		{object}	response.ErrorResponse		"Validation error or empty cart"
//	@Failure		409		{object}	response.ErrorResponse		"Insufficient stock"
//	@Failure		500		{object}	response.ErrorResponse		"Internal server error"
//	@Router			/orders/user/{userId} [post]
func (h *OrderHandler) CreateOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		userID, ok := userIDFromPath(r, w)
		if !ok {
			return
		}
		logger = logger.With(slog.String("userId", userID))

		// Decode the request body, validate
		var req models.CreateOrderRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid create order input")
			return
		}

		order, err := h.orderService.CreateOrder(r.Context(), userID, &req)
		if err != nil {
			logger.Error("Failed to create order", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Order created successfully",
			slog.Int64("orderId", order.ID),
			slog.String("total", order.TotalAmount.String()))
		response.Success(w, http.StatusCreated, order)
	}
}

// GetOrder godoc
//	@Summary		Get an order by ID
//	@Description	Retrieves a single order with its line items.
//	@Tags			Orders
//	@Produce		json
//	@Param			id	path		int						true	"Order ID"
//	@Success		200	{object}	models.Order			"Successfully retrieved order"
//	@Failure		400	{object}	response.ErrorResponse	"Invalid order ID"
//	@Failure		404	{object}	response.ErrorResponse	"Order not found"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Router			/orders/{id} [get]
func (h *OrderHandler) GetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		orderID, err := utils.ParseIDParam(r, "id")
		if err != nil {
			response.Error(w, errors.BadRequestError(err.Error()))
			return
		}

		order, err := h.orderService.GetOrderByID(r.Context(), orderID)
		if err != nil {
			logger.Error("Failed to fetch order", slog.Int64("orderId", orderID), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, order)
	}
}

// ListUserOrders godoc
//	@Summary		List a user's orders
//	@Description	Retrieves a paginated list of orders for the given user, newest first.
//	@Tags			Orders
//	@Produce		json
//	@Param			userId	path		string					true	"User ID"
//	@Param			page	query		int						false	"Page number (default 1)"
//	@Param			size	query		int						false	"Page size (default 10, max 50)"
//	@Success		200		{object}	models.PaginatedResponse	"Paginated order list"
//	@Failure		500		{object}	response.ErrorResponse	"Internal server error"
//	@Router			/orders/user/{userId} [get]
func (h *OrderHandler) ListUserOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		userID, ok := userIDFromPath(r, w)
		if !ok {
			return
		}

		page, pageSize := utils.ParsePagination(r, 10, 50)

		orders, total, err := h.orderService.ListUserOrders(r.Context(), userID, page, pageSize)
		if err != nil {
			logger.Error("Failed to list orders", slog.String("userId", userID), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, models.PaginatedResponse{
			Data:     orders,
			Total:    total,
			Page:     page,
			PageSize: pageSize,
		})
	}
}

// UpdateStatus godoc
//	@Summary		Update order status
//	@Description	Sets a new status on an existing order.
//	@Tags			Orders
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int								true	"Order ID"
//	@Param			status	body		models.UpdateOrderStatusRequest	true	"New status"
//	@Success		200		{object}	models.Order			"Updated order"
//	@Failure		400		{object}	response.ErrorResponse	"Validation error"
//	@Failure		404		{object}	response.ErrorResponse	"Order not found"
//	@Failure		500		{object}	response.ErrorResponse	"Internal server error"
//	@Router			/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		orderID, err := utils.ParseIDParam(r, "id")
		if err != nil {
			response.Error(w, errors.BadRequestError(err.Error()))
			return
		}

		var req models.UpdateOrderStatusRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid status update input")
			return
		}

		order, err := h.orderService.UpdateOrderStatus(r.Context(), orderID, req.Status)
		if err != nil {
			logger.Error("Failed to update order status",
				slog.Int64("orderId", orderID),
				slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Order status updated",
			slog.Int64("orderId", orderID),
			slog.String("status", string(req.Status)))
		response.Success(w, http.StatusOK, order)
	}
}

func (h *OrderHandler) ListByStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		status := r.PathValue("status")
		if status == "" {
			response.Error(w, errors.BadRequestError("Status is required"))
			return
		}

		orders, err := h.orderService.ListOrdersByStatus(r.Context(), models.OrderStatus(status))
		if err != nil {
			logger.Error("Failed to list orders by status", slog.String("status", status), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, orders)
	}
}

func (h *OrderHandler) ListUserOrdersByStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		userID, ok := userIDFromPath(r, w)
		if !ok {
			return
		}

		status := r.PathValue("status")
		if status == "" {
			response.Error(w, errors.BadRequestError("Status is required"))
			return
		}

		orders, err := h.orderService.ListUserOrdersByStatus(r.Context(), userID, models.OrderStatus(status))
		if err != nil {
			logger.Error("Failed to list user orders by status",
				slog.String("userId", userID), slog.String("status", status), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, orders)
	}
}

func (h *OrderHandler) ListHighValue() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		raw := r.URL.Query().Get("minAmount")
		if raw == "" {
			response.Error(w, errors.BadRequestError("minAmount query parameter is required"))
			return
		}

		minAmount, err := decimal.NewFromString(raw)
		if err != nil {
			response.Error(w, errors.BadRequestError("minAmount must be a decimal number"))
			return
		}

		orders, err := h.orderService.ListHighValueOrders(r.Context(), minAmount)
		if err != nil {
			logger.Error("Failed to list high value orders", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, orders)
	}
}

func (h *OrderHandler) UserOrderCount() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		userID, ok := userIDFromPath(r, w)
		if !ok {
			return
		}

		count, err := h.orderService.GetUserOrderCount(r.Context(), userID)
		if err != nil {
			logger.Error("Failed to count orders", slog.String("userId", userID), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]int64{"count": count})
	}
}

func (h *OrderHandler) UserTotalSpent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		userID, ok := userIDFromPath(r, w)
		if !ok {
			return
		}

		total, err := h.orderService.GetUserTotalSpent(r.Context(), userID)
		if err != nil {
			logger.Error("Failed to sum order totals", slog.String("userId", userID), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]any{
			"userId":     userID,
			"totalSpent": total,
		})
	}
}
