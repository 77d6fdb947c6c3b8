package service

import (
	"context"
	"errors"
	"strings"

	"github.com/alimikegami/point-of-sales/storefront-service/internal/domain"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/dto"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/infrastructure/metrics"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/repository"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/errs"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/utils"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

// errUnchanged lets a mutation skip the write when it would not alter the cart.
var errUnchanged = errors.New("cart unchanged")

type CartServiceImpl struct {
	repo     repository.CartRepository
	validate *validator.Validate
	retries  int
}

func CreateCartService(repo repository.CartRepository, retries int) CartService {
	if retries < 1 {
		retries = 1
	}

	return &CartServiceImpl{
		repo:     repo,
		validate: utils.NewValidator(),
		retries:  retries,
	}
}

func (s *CartServiceImpl) load(ctx context.Context, userID string, create bool) (cart domain.Cart, err error) {
	cart, err = s.repo.GetCartByUserID(ctx, userID)
	if err == nil || !create || !errors.Is(err, errs.ErrCartNotFound) {
		return
	}

	cart = domain.NewCart(userID, utils.NowUTC())
	err = s.repo.InsertCart(ctx, cart)
	if errors.Is(err, errs.ErrConflict) {
		// another request created it first
		return s.repo.GetCartByUserID(ctx, userID)
	}

	return cart, err
}

// mutate applies fn to a fresh copy of the cart and writes it back only if the
// stored version is unchanged, retrying with a new read on conflict.
func (s *CartServiceImpl) mutate(ctx context.Context, operation string, userID string, create bool, fn func(cart *domain.Cart) error) (domain.Cart, error) {
	for attempt := 1; attempt <= s.retries; attempt++ {
		current, err := s.load(ctx, userID, create)
		if err != nil {
			return domain.Cart{}, err
		}

		next := current.Clone()
		if err := fn(&next); err != nil {
			if errors.Is(err, errUnchanged) {
				return current, nil
			}
			return domain.Cart{}, err
		}

		next.Version = current.Version + 1
		next.UpdatedAt = utils.NowUTC()

		err = s.repo.UpdateCart(ctx, next, current.Version)
		if err == nil {
			return next, nil
		}
		if !errors.Is(err, errs.ErrCartWriteConflict) {
			return domain.Cart{}, err
		}

		metrics.CartWriteConflicts.WithLabelValues(operation).Inc()
		log.Ctx(ctx).Warn().Str("component", operation).Str("user_id", userID).Int("attempt", attempt).Msg("cart write conflict, retrying")
	}

	return domain.Cart{}, errs.ErrCartWriteConflict
}

func (s *CartServiceImpl) GetCart(ctx context.Context, userID string) (cart domain.Cart, err error) {
	if userID == "" {
		return cart, errs.ErrNotLoggedIn
	}

	return s.load(ctx, userID, true)
}

func (s *CartServiceImpl) AddItem(ctx context.Context, req dto.CartItemRequest) (cart domain.Cart, err error) {
	if req.UserID == "" {
		return cart, errs.ErrNotLoggedIn
	}

	req.ProductID = dto.ProductID(strings.TrimSpace(string(req.ProductID)))
	req.Name = strings.TrimSpace(req.Name)
	req.Image = strings.TrimSpace(req.Image)

	if err = s.validate.Struct(req); err != nil {
		return cart, errs.FromValidator(err)
	}
	if req.Price.IsNegative() {
		return cart, errs.NewValidationError("Invalid or missing fields: price", errs.FieldError{Field: "price", Tag: "min"})
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	item := domain.CartItem{
		ProductID: string(req.ProductID),
		Name:      req.Name,
		Price:     *req.Price,
		Image:     req.Image,
		Brand:     strings.TrimSpace(req.Brand),
		Quantity:  quantity,
	}

	return s.mutate(ctx, "AddItem", req.UserID, true, func(cart *domain.Cart) error {
		return cart.AddItem(item)
	})
}

func (s *CartServiceImpl) UpdateItemQuantity(ctx context.Context, req dto.CartQuantityRequest) (cart domain.Cart, err error) {
	if req.UserID == "" {
		return cart, errs.ErrNotLoggedIn
	}

	if err = s.validate.Struct(req); err != nil {
		return cart, errs.FromValidator(err)
	}

	return s.mutate(ctx, "UpdateItemQuantity", req.UserID, false, func(cart *domain.Cart) error {
		return cart.SetQuantity(req.ProductID, *req.Quantity)
	})
}

// RemoveItem is idempotent: removing a product that is not in the cart returns
// the cart unchanged.
func (s *CartServiceImpl) RemoveItem(ctx context.Context, userID string, productID string) (cart domain.Cart, err error) {
	if userID == "" {
		return cart, errs.ErrNotLoggedIn
	}

	return s.mutate(ctx, "RemoveItem", userID, true, func(cart *domain.Cart) error {
		if !cart.RemoveItem(productID) {
			return errUnchanged
		}
		return nil
	})
}

// ClearCart creates the cart when the user has none, so it always succeeds with
// an empty cart.
func (s *CartServiceImpl) ClearCart(ctx context.Context, userID string) (cart domain.Cart, err error) {
	if userID == "" {
		return cart, errs.ErrNotLoggedIn
	}

	return s.mutate(ctx, "ClearCart", userID, true, func(cart *domain.Cart) error {
		if cart.IsEmpty() && cart.TotalQuantity == 0 && cart.TotalPrice.IsZero() {
			return errUnchanged
		}
		cart.Clear()
		return nil
	})
}
