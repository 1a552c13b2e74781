package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/microcosm-cc/bluemonday"
	"github.com/shopspring/decimal"
	"github.com/shopsphere/ecommerce-backend/internal/cache"
	appErrors "github.com/shopsphere/ecommerce-backend/internal/errors"
	"github.com/shopsphere/ecommerce-backend/internal/models"
	repository "github.com/shopsphere/ecommerce-backend/internal/repositories"
)

// CatalogService is the read-heavy product/category surface. Lookups by
// id and the category list are served through the cache; every write
// invalidates the affected keys.
type CatalogService interface {
	CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error)
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
	UpdateProduct(ctx context.Context, id int64, req *models.UpdateProductRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	ListProducts(ctx context.Context, page, size int) ([]*models.Product, int, error)
	ListProductsByCategory(ctx context.Context, categoryID int64, page, size int) ([]*models.Product, int, error)
	SearchProducts(ctx context.Context, term string, page, size int) ([]*models.Product, int, error)
	ListProductsByPriceRange(ctx context.Context, minPrice, maxPrice decimal.Decimal, page, size int) ([]*models.Product, int, error)
	ListAvailableProducts(ctx context.Context, page, size int) ([]*models.Product, int, error)
	ListLatestProducts(ctx context.Context, page, size int) ([]*models.Product, int, error)
	ListLowStockProducts(ctx context.Context, threshold int) ([]*models.Product, error)

	CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error)
	GetCategoryByID(ctx context.Context, id int64) (*models.Category, error)
	ListCategories(ctx context.Context) ([]*models.Category, error)
	SearchCategories(ctx context.Context, name string) ([]*models.Category, error)
	UpdateCategory(ctx context.Context, id int64, req *models.UpdateCategoryRequest) (*models.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
}

type catalogService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	cache        cache.Cache
	sanitizer    *bluemonday.Policy
}

func NewCatalogService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository, cacheStore cache.Cache) CatalogService {
	return &catalogService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		cache:        cacheStore,
		sanitizer:    bluemonday.StrictPolicy(),
	}
}

func productKey(id int64) string {
	return cache.Key(cache.ProductKeyPrefix, strconv.FormatInt(id, 10))
}

func categoryKey(id int64) string {
	return cache.Key(cache.CategoryKeyPrefix, strconv.FormatInt(id, 10))
}

func (s *catalogService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {

	if req.Price.IsNegative() {
		return nil, appErrors.ValidationError("Product price must not be negative")
	}

	if _, err := s.categoryRepo.GetCategoryByID(ctx, req.CategoryID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError(fmt.Sprintf("Category not found with id: %d", req.CategoryID)).WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to fetch category").WithError(err)
	}

	product := &models.Product{
		CategoryID:    req.CategoryID,
		Name:          s.sanitizer.Sanitize(req.Name),
		Description:   s.sanitizer.Sanitize(req.Description),
		Price:         req.Price,
		ImageURL:      req.ImageURL,
		StockQuantity: req.StockQuantity,
	}

	if err := s.productRepo.CreateProduct(ctx, product); err != nil {
		return nil, appErrors.DatabaseError("Failed to create product").WithError(err)
	}

	return product, nil
}

func (s *catalogService) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {

	key := productKey(id)

	var cached models.Product
	if found, err := s.cache.Get(ctx, key, &cached); err == nil && found {
		return &cached, nil
	}

	product, err := s.productRepo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError(fmt.Sprintf("Product not found with id: %d", id)).WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to fetch product").WithError(err)
	}

	s.cache.Set(ctx, key, product, 0)

	return product, nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, id int64, req *models.UpdateProductRequest) (*models.Product, error) {

	product, err := s.productRepo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError(fmt.Sprintf("Product not found with id: %d", id)).WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to fetch product").WithError(err)
	}

	if req.CategoryID != nil {
		product.CategoryID = *req.CategoryID
	}
	if req.Name != nil {
		product.Name = s.sanitizer.Sanitize(*req.Name)
	}
	if req.Description != nil {
		product.Description = s.sanitizer.Sanitize(*req.Description)
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, appErrors.ValidationError("Product price must not be negative")
		}

		product.Price = *req.Price
	}
	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}
	if req.StockQuantity != nil {
		product.StockQuantity = *req.StockQuantity
	}

	if err := s.productRepo.UpdateProduct(ctx, product); err != nil {
		return nil, appErrors.DatabaseError("Failed to update product").WithError(err)
	}

	s.cache.Delete(ctx, productKey(id))

	return product, nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, id int64) error {

	if err := s.productRepo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.NotFoundError(fmt.Sprintf("Product not found with id: %d", id)).WithError(err)
		}

		return appErrors.DatabaseError("Failed to delete product").WithError(err)
	}

	s.cache.Delete(ctx, productKey(id))

	return nil
}

func (s *catalogService) ListProducts(ctx context.Context, page, size int) ([]*models.Product, int, error) {
	return s.listProducts(s.productRepo.ListProducts(ctx, normalizePage(page), normalizeSize(size)))
}

func (s *catalogService) ListProductsByCategory(ctx context.Context, categoryID int64, page, size int) ([]*models.Product, int, error) {
	return s.listProducts(s.productRepo.ListProductsByCategory(ctx, categoryID, normalizePage(page), normalizeSize(size)))
}

func (s *catalogService) SearchProducts(ctx context.Context, term string, page, size int) ([]*models.Product, int, error) {
	return s.listProducts(s.productRepo.SearchProducts(ctx, term, normalizePage(page), normalizeSize(size)))
}

func (s *catalogService) ListProductsByPriceRange(ctx context.Context, minPrice, maxPrice decimal.Decimal, page, size int) ([]*models.Product, int, error) {

	if minPrice.GreaterThan(maxPrice) {
		return nil, 0, appErrors.BadRequestError("minPrice must not exceed maxPrice")
	}

	return s.listProducts(s.productRepo.ListProductsByPriceRange(ctx, minPrice, maxPrice, normalizePage(page), normalizeSize(size)))
}

func (s *catalogService) ListAvailableProducts(ctx context.Context, page, size int) ([]*models.Product, int, error) {
	return s.listProducts(s.productRepo.ListAvailableProducts(ctx, normalizePage(page), normalizeSize(size)))
}

func (s *catalogService) ListLatestProducts(ctx context.Context, page, size int) ([]*models.Product, int, error) {
	return s.listProducts(s.productRepo.ListLatestProducts(ctx, normalizePage(page), normalizeSize(size)))
}

func (s *catalogService) ListLowStockProducts(ctx context.Context, threshold int) ([]*models.Product, error) {

	products, err := s.productRepo.ListLowStockProducts(ctx, threshold)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch products").WithError(err)
	}

	return products, nil
}

func (s *catalogService) listProducts(products []*models.Product, total int, err error) ([]*models.Product, int, error) {
	if err != nil {
		return nil, 0, appErrors.DatabaseError("Failed to fetch products").WithError(err)
	}

	return products, total, nil
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}

	return page
}

func normalizeSize(size int) int {
	if size < 1 || size > 100 {
		return 20
	}

	return size
}

func (s *catalogService) CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error) {

	category := &models.Category{
		Name:        s.sanitizer.Sanitize(req.Name),
		Description: s.sanitizer.Sanitize(req.Description),
		ImageURL:    req.ImageURL,
	}

	if err := s.categoryRepo.CreateCategory(ctx, category); err != nil {
		return nil, appErrors.DatabaseError("Failed to create category").WithError(err)
	}

	s.cache.Delete(ctx, cache.CategoryListKey)

	return category, nil
}

func (s *catalogService) GetCategoryByID(ctx context.Context, id int64) (*models.Category, error) {

	key := categoryKey(id)

	var cached models.Category
	if found, err := s.cache.Get(ctx, key, &cached); err == nil && found {
		return &cached, nil
	}

	category, err := s.categoryRepo.GetCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError(fmt.Sprintf("Category not found with id: %d", id)).WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to fetch category").WithError(err)
	}

	s.cache.Set(ctx, key, category, 0)

	return category, nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]*models.Category, error) {

	var cached []*models.Category
	if found, err := s.cache.Get(ctx, cache.CategoryListKey, &cached); err == nil && found {
		return cached, nil
	}

	categories, err := s.categoryRepo.ListCategories(ctx)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch categories").WithError(err)
	}

	s.cache.Set(ctx, cache.CategoryListKey, categories, 0)

	return categories, nil
}

func (s *catalogService) SearchCategories(ctx context.Context, name string) ([]*models.Category, error) {

	categories, err := s.categoryRepo.SearchCategories(ctx, name)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to search categories").WithError(err)
	}

	return categories, nil
}

func (s *catalogService) UpdateCategory(ctx context.Context, id int64, req *models.UpdateCategoryRequest) (*models.Category, error) {

	category, err := s.categoryRepo.GetCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError(fmt.Sprintf("Category not found with id: %d", id)).WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to fetch category").WithError(err)
	}

	if req.Name != nil {
		category.Name = s.sanitizer.Sanitize(*req.Name)
	}
	if req.Description != nil {
		category.Description = s.sanitizer.Sanitize(*req.Description)
	}
	if req.ImageURL != nil {
		category.ImageURL = *req.ImageURL
	}

	if err := s.categoryRepo.UpdateCategory(ctx, category); err != nil {
		return nil, appErrors.DatabaseError("Failed to update category").WithError(err)
	}

	s.cache.Delete(ctx, categoryKey(id))
	s.cache.Delete(ctx, cache.CategoryListKey)

	return category, nil
}

func (s *catalogService) DeleteCategory(ctx context.Context, id int64) error {

	if err := s.categoryRepo.DeleteCategory(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.NotFoundError(fmt.Sprintf("Category not found with id: %d", id)).WithError(err)
		}

		return appErrors.DatabaseError("Failed to delete category").WithError(err)
	}

	s.cache.Delete(ctx, categoryKey(id))
	s.cache.Delete(ctx, cache.CategoryListKey)

	return nil
}
