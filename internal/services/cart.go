package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	appErrors "github.com/shopsphere/ecommerce-backend/internal/errors"
	"github.com/shopsphere/ecommerce-backend/internal/models"
	repository "github.com/shopsphere/ecommerce-backend/internal/repositories"
)

type CartService interface {
	GetCartItems(ctx context.Context, userID string) ([]models.CartItem, error)
	AddToCart(ctx context.Context, userID string, req *models.AddToCartRequest) (*models.CartItem, error)
	// UpdateCartItemQuantity sets an absolute quantity; a quantity of
	// zero or less deletes the line and returns (nil, nil).
	UpdateCartItemQuantity(ctx context.Context, userID string, req *models.UpdateCartItemRequest) (*models.CartItem, error)
	RemoveFromCart(ctx context.Context, userID string, productID int64) error
	ClearCart(ctx context.Context, userID string) error
	CalculateCartTotal(ctx context.Context, userID string) (decimal.Decimal, error)
	// GetCartItemCount counts distinct cart lines.
	GetCartItemCount(ctx context.Context, userID string) (int64, error)
	// GetCartQuantityTotal sums quantities across all lines.
	GetCartQuantityTotal(ctx context.Context, userID string) (int64, error)
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &cartService{cartRepo: cartRepo, productRepo: productRepo}
}

func (s *cartService) GetCartItems(ctx context.Context, userID string) ([]models.CartItem, error) {

	items, err := s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch cart").WithError(err)
	}

	return items, nil
}

func (s *cartService) AddToCart(ctx context.Context, userID string, req *models.AddToCartRequest) (*models.CartItem, error) {

	product, err := s.productRepo.GetProductByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError(fmt.Sprintf("Product not found with id: %d", req.ProductID)).WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to fetch product").WithError(err)
	}

	// Checked against current stock only; quantity already in the cart
	// is not reserved until order commit.
	if !product.InStock(req.Quantity) {
		return nil, appErrors.InsufficientStockError(
			fmt.Sprintf("Insufficient stock for product: %s", product.Name), product.StockQuantity)
	}

	item, err := s.cartRepo.AddItem(ctx, userID, req.ProductID, req.Quantity)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to add item to cart").WithError(err)
	}

	item.Product = product

	return item, nil
}

func (s *cartService) UpdateCartItemQuantity(ctx context.Context, userID string, req *models.UpdateCartItemRequest) (*models.CartItem, error) {

	existing, err := s.cartRepo.GetByUserAndProduct(ctx, userID, req.ProductID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Cart item not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to fetch cart item").WithError(err)
	}

	if req.Quantity <= 0 {
		if err := s.cartRepo.DeleteByUserAndProduct(ctx, userID, req.ProductID); err != nil {
			return nil, appErrors.DatabaseError("Failed to remove cart item").WithError(err)
		}

		return nil, nil
	}

	product, err := s.productRepo.GetProductByID(ctx, existing.ProductID)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch product").WithError(err)
	}

	if !product.InStock(req.Quantity) {
		return nil, appErrors.InsufficientStockError(
			fmt.Sprintf("Insufficient stock for product: %s", product.Name), product.StockQuantity)
	}

	item, err := s.cartRepo.SetQuantity(ctx, userID, req.ProductID, req.Quantity)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to update cart item").WithError(err)
	}

	item.Product = product

	return item, nil
}

func (s *cartService) RemoveFromCart(ctx context.Context, userID string, productID int64) error {

	if err := s.cartRepo.DeleteByUserAndProduct(ctx, userID, productID); err != nil {
		return appErrors.DatabaseError("Failed to remove cart item").WithError(err)
	}

	return nil
}

func (s *cartService) ClearCart(ctx context.Context, userID string) error {

	if err := s.cartRepo.DeleteByUser(ctx, userID); err != nil {
		return appErrors.DatabaseError("Failed to clear cart").WithError(err)
	}

	return nil
}

func (s *cartService) CalculateCartTotal(ctx context.Context, userID string) (decimal.Decimal, error) {

	items, err := s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return decimal.Zero, appErrors.DatabaseError("Failed to fetch cart").WithError(err)
	}

	total := decimal.Zero
	for i := range items {
		total = total.Add(items[i].LineTotal())
	}

	return total, nil
}

func (s *cartService) GetCartItemCount(ctx context.Context, userID string) (int64, error) {

	count, err := s.cartRepo.CountLines(ctx, userID)
	if err != nil {
		return 0, appErrors.DatabaseError("Failed to count cart items").WithError(err)
	}

	return count, nil
}

func (s *cartService) GetCartQuantityTotal(ctx context.Context, userID string) (int64, error) {

	sum, err := s.cartRepo.SumQuantities(ctx, userID)
	if err != nil {
		return 0, appErrors.DatabaseError("Failed to sum cart quantities").WithError(err)
	}

	return sum, nil
}
