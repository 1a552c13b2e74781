package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/shopsphere/ecommerce-backend/internal/api/middleware"
	"github.com/shopsphere/ecommerce-backend/internal/errors"
	"github.com/shopsphere/ecommerce-backend/internal/models"
	service "github.com/shopsphere/ecommerce-backend/internal/services"
	"github.com/shopsphere/ecommerce-backend/internal/utils"
	"github.com/shopsphere/ecommerce-backend/internal/utils/response"
)

type ProductHandler struct {
	catalogService service.CatalogService
	validator      *validator.Validate
}

func NewProductHandler(catalogService service.CatalogService) *ProductHandler {
	return &ProductHandler{catalogService: catalogService, validator: validator.New()}
}

// CreateProduct godoc
//	@Summary		Create a product
//	@Description	Creates a new product in the given category.
//	@Tags			Products
//	@Accept			json
//	@Produce		json
//	@Param			product	body		models.CreateProductRequest	true	"Product details"
//	@Success		201		{object}	models.Product			"Created product"
//	@Failure		400		{object}	response.ErrorResponse	"Validation error"
//	@Failure		404		{object}	response.ErrorResponse	"Category not found"
//	@Failure		500		{object}	response.ErrorResponse	"Internal server error"
//	@Router			/products [post]
func (h *ProductHandler) CreateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateProductRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid create product input")
			return
		}

		product, err := h.catalogService.CreateProduct(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to create product", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Product created", slog.Int64("productId", product.ID))
		response.Success(w, http.StatusCreated, product)
	}
}

func (h *ProductHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseIDParam(r, "id")
		if err != nil {
			response.Error(w, errors.BadRequestError(err.Error()))
			return
		}

		product, err := h.catalogService.GetProductByID(r.Context(), id)
		if err != nil {
			logger.Error("Failed to fetch product", slog.Int64("productId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, product)
	}
}

func (h *ProductHandler) UpdateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseIDParam(r, "id")
		if err != nil {
			response.Error(w, errors.BadRequestError(err.Error()))
			return
		}

		var req models.UpdateProductRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid update product input")
			return
		}

		product, err := h.catalogService.UpdateProduct(r.Context(), id, &req)
		if err != nil {
			logger.Error("Failed to update product", slog.Int64("productId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, product)
	}
}

func (h *ProductHandler) DeleteProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseIDParam(r, "id")
		if err != nil {
			response.Error(w, errors.BadRequestError(err.Error()))
			return
		}

		if err := h.catalogService.DeleteProduct(r.Context(), id); err != nil {
			logger.Error("Failed to delete product", slog.Int64("productId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// ListProducts godoc
//	@Summary		List products
//	@Description	Retrieves a paginated product list, optionally filtered by category via the route variant.
//	@Tags			Products
//	@Produce		json
//	@Param			page		query		int	false	"Page number (default 1)"
//	@Param			size		query		int	false	"Page size (default 20, max 100)"
//	@Success		200	{object}	models.PaginatedResponse	"Paginated product list"
//	@Failure		500	{object}	response.ErrorResponse		"Internal server error"
//	@Router			/products [get]
func (h *ProductHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.paginated(w, r, func(page, size int) ([]*models.Product, int, error) {
			return h.catalogService.ListProducts(r.Context(), page, size)
		})
	}
}

func (h *ProductHandler) ListByCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		categoryID, err := utils.ParseIDParam(r, "id")
		if err != nil {
			response.Error(w, errors.BadRequestError(err.Error()))
			return
		}

		h.paginated(w, r, func(page, size int) ([]*models.Product, int, error) {
			return h.catalogService.ListProductsByCategory(r.Context(), categoryID, page, size)
		})
	}
}

func (h *ProductHandler) SearchProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		term := r.URL.Query().Get("q")
		if term == "" {
			response.Error(w, errors.BadRequestError("Search term 'q' is required"))
			return
		}

		h.paginated(w, r, func(page, size int) ([]*models.Product, int, error) {
			return h.catalogService.SearchProducts(r.Context(), term, page, size)
		})
	}
}

func (h *ProductHandler) ListByPriceRange() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		minPrice, err := decimalQueryParam(r, "min")
		if err != nil {
			response.Error(w, err)
			return
		}

		maxPrice, err := decimalQueryParam(r, "max")
		if err != nil {
			response.Error(w, err)
			return
		}

		h.paginated(w, r, func(page, size int) ([]*models.Product, int, error) {
			return h.catalogService.ListProductsByPriceRange(r.Context(), minPrice, maxPrice, page, size)
		})
	}
}

func (h *ProductHandler) ListAvailable() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.paginated(w, r, func(page, size int) ([]*models.Product, int, error) {
			return h.catalogService.ListAvailableProducts(r.Context(), page, size)
		})
	}
}

func (h *ProductHandler) ListLatest() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.paginated(w, r, func(page, size int) ([]*models.Product, int, error) {
			return h.catalogService.ListLatestProducts(r.Context(), page, size)
		})
	}
}

func (h *ProductHandler) ListLowStock() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		threshold := 5
		if raw := r.URL.Query().Get("threshold"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 0 {
				response.Error(w, errors.BadRequestError("threshold must be a non-negative integer"))
				return
			}
			threshold = parsed
		}

		products, err := h.catalogService.ListLowStockProducts(r.Context(), threshold)
		if err != nil {
			logger.Error("Failed to list low stock products", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, products)
	}
}

// paginated runs a page-scoped catalog query and writes the standard
// paginated envelope.
func (h *ProductHandler) paginated(w http.ResponseWriter, r *http.Request, fetch func(page, size int) ([]*models.Product, int, error)) {
	logger := middleware.LoggerFromContext(r.Context())

	page, pageSize := utils.ParsePagination(r, 20, 100)

	products, total, err := fetch(page, pageSize)
	if err != nil {
		logger.Error("Failed to list products", slog.Any("error", err))
		response.Error(w, err)
		return
	}

	response.Success(w, http.StatusOK, models.PaginatedResponse{
		Data:     products,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

func decimalQueryParam(r *http.Request, name string) (decimal.Decimal, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return decimal.Zero, errors.BadRequestError("Query parameter '" + name + "' is required")
	}

	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, errors.BadRequestError("Query parameter '" + name + "' must be a decimal number")
	}

	return value, nil
}
