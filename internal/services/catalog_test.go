package service_test

import (
	"database/sql"
	"testing"

	"github.com/shopspring/decimal"
	cachemocks "github.com/shopsphere/ecommerce-backend/internal/cache/mocks"
	appErrors "github.com/shopsphere/ecommerce-backend/internal/errors"
	"github.com/shopsphere/ecommerce-backend/internal/models"
	"github.com/shopsphere/ecommerce-backend/internal/repositories/mocks"
	service "github.com/shopsphere/ecommerce-backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupCatalogServiceTest(t *testing.T) (service.CatalogService, *mocks.ProductRepository, *mocks.CategoryRepository, *cachemocks.Cache) {
	t.Helper()

	productRepo := mocks.NewProductRepository(t)
	categoryRepo := mocks.NewCategoryRepository(t)
	cacheStore := cachemocks.NewCache(t)

	svc := service.NewCatalogService(productRepo, categoryRepo, cacheStore)
	require.NotNil(t, svc)

	return svc, productRepo, categoryRepo, cacheStore
}

func TestCreateProduct(t *testing.T) {
	t.Run("Success - Sanitizes Name And Description", func(t *testing.T) {
		// Arrange
		svc, productRepo, categoryRepo, _ := setupCatalogServiceTest(t)

		categoryRepo.On("GetCategoryByID", mock.Anything, int64(3)).
			Return(&models.Category{ID: 3, Name: "Electronics"}, nil)
		productRepo.On("CreateProduct", mock.Anything, mock.MatchedBy(func(p *models.Product) bool {
			return p.Name == "Laptop" && p.Description == "Thin and light"
		})).Return(nil)

		// Act
		product, err := svc.CreateProduct(t.Context(), &models.CreateProductRequest{
			CategoryID:    3,
			Name:          `Laptop<script>alert("x")</script>`,
			Description:   "Thin and <b>light</b>",
			Price:         decimal.RequireFromString("999.99"),
			StockQuantity: 10,
		})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Laptop", product.Name)
		assert.Equal(t, "Thin and light", product.Description)
	})

	t.Run("Failure - Negative Price", func(t *testing.T) {
		// Arrange
		svc, _, _, _ := setupCatalogServiceTest(t)

		// Act
		product, err := svc.CreateProduct(t.Context(), &models.CreateProductRequest{
			CategoryID: 3,
			Name:       "Laptop",
			Price:      decimal.RequireFromString("-1"),
		})

		// Assert
		require.Error(t, err)
		assert.Nil(t, product)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)
	})

	t.Run("Failure - Unknown Category", func(t *testing.T) {
		// Arrange
		svc, _, categoryRepo, _ := setupCatalogServiceTest(t)

		categoryRepo.On("GetCategoryByID", mock.Anything, int64(404)).Return(nil, sql.ErrNoRows)

		// Act
		product, err := svc.CreateProduct(t.Context(), &models.CreateProductRequest{
			CategoryID: 404,
			Name:       "Laptop",
			Price:      decimal.RequireFromString("999.99"),
		})

		// Assert
		require.Error(t, err)
		assert.Nil(t, product)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})
}

func TestGetProductByID(t *testing.T) {
	t.Run("Success - Miss Reads Through And Caches", func(t *testing.T) {
		// Arrange
		svc, productRepo, _, cacheStore := setupCatalogServiceTest(t)
		product := laptop()

		cacheStore.On("Get", mock.Anything, "product:7", mock.Anything).Return(false, nil)
		productRepo.On("GetProductByID", mock.Anything, int64(7)).Return(product, nil)
		cacheStore.On("Set", mock.Anything, "product:7", product, mock.Anything).Return(nil)

		// Act
		got, err := svc.GetProductByID(t.Context(), 7)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Laptop", got.Name)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		svc, productRepo, _, cacheStore := setupCatalogServiceTest(t)

		cacheStore.On("Get", mock.Anything, "product:999", mock.Anything).Return(false, nil)
		productRepo.On("GetProductByID", mock.Anything, int64(999)).Return(nil, sql.ErrNoRows)

		// Act
		got, err := svc.GetProductByID(t.Context(), 999)

		// Assert
		require.Error(t, err)
		assert.Nil(t, got)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})
}

func TestUpdateProduct(t *testing.T) {
	t.Run("Success - Partial Update Evicts Cache", func(t *testing.T) {
		// Arrange
		svc, productRepo, _, cacheStore := setupCatalogServiceTest(t)
		newStock := 25

		productRepo.On("GetProductByID", mock.Anything, int64(7)).Return(laptop(), nil)
		productRepo.On("UpdateProduct", mock.Anything, mock.MatchedBy(func(p *models.Product) bool {
			return p.StockQuantity == 25 && p.Name == "Laptop"
		})).Return(nil)
		cacheStore.On("Delete", mock.Anything, "product:7").Return(nil)

		// Act
		product, err := svc.UpdateProduct(t.Context(), 7, &models.UpdateProductRequest{StockQuantity: &newStock})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 25, product.StockQuantity)
	})
}

func TestListProductsByPriceRange(t *testing.T) {
	t.Run("Failure - Inverted Bounds", func(t *testing.T) {
		// Arrange
		svc, _, _, _ := setupCatalogServiceTest(t)

		// Act
		products, total, err := svc.ListProductsByPriceRange(t.Context(),
			decimal.RequireFromString("1000"), decimal.RequireFromString("100"), 1, 20)

		// Assert
		require.Error(t, err)
		assert.Nil(t, products)
		assert.Zero(t, total)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeBadRequest, appErr.Code)
	})
}

func TestListCategories(t *testing.T) {
	t.Run("Success - Cache Hit Skips Repository", func(t *testing.T) {
		// Arrange
		svc, _, _, cacheStore := setupCatalogServiceTest(t)

		cacheStore.On("Get", mock.Anything, "categories:all", mock.Anything).
			Run(func(args mock.Arguments) {
				categories := args.Get(2).(*[]*models.Category)
				*categories = []*models.Category{{ID: 3, Name: "Electronics"}}
			}).Return(true, nil)

		// Act
		categories, err := svc.ListCategories(t.Context())

		// Assert
		require.NoError(t, err)
		require.Len(t, categories, 1)
		assert.Equal(t, "Electronics", categories[0].Name)
	})

	t.Run("Success - Miss Reads Through And Caches", func(t *testing.T) {
		// Arrange
		svc, _, categoryRepo, cacheStore := setupCatalogServiceTest(t)
		categories := []*models.Category{{ID: 3, Name: "Electronics"}}

		cacheStore.On("Get", mock.Anything, "categories:all", mock.Anything).Return(false, nil)
		categoryRepo.On("ListCategories", mock.Anything).Return(categories, nil)
		cacheStore.On("Set", mock.Anything, "categories:all", categories, mock.Anything).Return(nil)

		// Act
		got, err := svc.ListCategories(t.Context())

		// Assert
		require.NoError(t, err)
		require.Len(t, got, 1)
	})
}

func TestUpdateCategory(t *testing.T) {
	t.Run("Success - Evicts Both Keys", func(t *testing.T) {
		// Arrange
		svc, _, categoryRepo, cacheStore := setupCatalogServiceTest(t)
		newName := "Computers"

		categoryRepo.On("GetCategoryByID", mock.Anything, int64(3)).
			Return(&models.Category{ID: 3, Name: "Electronics"}, nil)
		categoryRepo.On("UpdateCategory", mock.Anything, mock.MatchedBy(func(c *models.Category) bool {
			return c.Name == "Computers"
		})).Return(nil)
		cacheStore.On("Delete", mock.Anything, "category:3").Return(nil)
		cacheStore.On("Delete", mock.Anything, "categories:all").Return(nil)

		// Act
		category, err := svc.UpdateCategory(t.Context(), 3, &models.UpdateCategoryRequest{Name: &newName})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Computers", category.Name)
	})
}

func TestDeleteCategory(t *testing.T) {
	t.Run("Failure - Unknown Category", func(t *testing.T) {
		// Arrange
		svc, _, categoryRepo, _ := setupCatalogServiceTest(t)

		categoryRepo.On("DeleteCategory", mock.Anything, int64(404)).Return(sql.ErrNoRows)

		// Act
		err := svc.DeleteCategory(t.Context(), 404)

		// Assert
		require.Error(t, err)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})
}
