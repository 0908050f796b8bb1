package service

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

var (
	// ErrEmptyOrder indicates the request referenced no products.
	ErrEmptyOrder = errors.New("userId and productIds are required")
	// ErrUserNotFound indicates the owning user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrUnknownProducts indicates at least one referenced product is missing.
	ErrUnknownProducts = errors.New("some products do not exist")
)

// taxRate is the fixed tax multiplier applied to the pre-tax subtotal.
var taxRate = decimal.NewFromFloat(1.20)

// OrderService creates and reads orders. Creation validates every
// referenced product before anything is written and persists the header
// and line rows atomically.
type OrderService interface {
	CreateOrder(ctx context.Context, userID int64, productIDs []int64) (*domain.Order, error)
	GetOrder(ctx context.Context, id int64) (*domain.OrderDetail, error)
	ListOrders(ctx context.Context) ([]domain.OrderDetail, error)
}

type orderService struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	users    repository.UserRepository
}

func NewOrderService(orders repository.OrderRepository, products repository.ProductRepository, users repository.UserRepository) OrderService {
	return &orderService{
		orders:   orders,
		products: products,
		users:    users,
	}
}

func (s *orderService) CreateOrder(ctx context.Context, userID int64, productIDs []int64) (*domain.Order, error) {
	if userID <= 0 || len(productIDs) == 0 {
		return nil, ErrEmptyOrder
	}

	if _, err := s.users.Get(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	products, err := s.products.ListByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	priceByID := make(map[int64]decimal.Decimal, len(products))
	for _, product := range products {
		priceByID[product.ID] = decimal.NewFromFloat(product.Price)
	}

	// Quantity is implicit in repetition: every occurrence of an id in
	// the request prices once.
	subtotal := decimal.Zero
	for _, id := range productIDs {
		price, ok := priceByID[id]
		if !ok {
			return nil, ErrUnknownProducts
		}
		subtotal = subtotal.Add(price)
	}

	total := subtotal.Mul(taxRate).Round(2)

	order := &domain.Order{
		UserID:  userID,
		Total:   total.InexactFloat64(),
		Payment: false,
	}
	if _, err := s.orders.CreateWithLines(ctx, order, productIDs); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) GetOrder(ctx context.Context, id int64) (*domain.OrderDetail, error) {
	return s.orders.Get(ctx, id)
}

func (s *orderService) ListOrders(ctx context.Context) ([]domain.OrderDetail, error) {
	return s.orders.List(ctx)
}
