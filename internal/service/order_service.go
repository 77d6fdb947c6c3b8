package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/alimikegami/point-of-sales/storefront-service/internal/domain"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/dto"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/infrastructure/metrics"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/repository"
	pkgdto "github.com/alimikegami/point-of-sales/storefront-service/pkg/dto"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/errs"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/utils"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

type OrderServiceImpl struct {
	trx       repository.TransactionManager
	orderRepo repository.OrderRepository
	cartRepo  repository.CartRepository
	publisher EventPublisher
	validate  *validator.Validate
	retries   int
	events    sync.WaitGroup
}

func CreateOrderService(trx repository.TransactionManager, orderRepo repository.OrderRepository, cartRepo repository.CartRepository, publisher EventPublisher, retries int) OrderService {
	if retries < 1 {
		retries = 1
	}

	return &OrderServiceImpl{
		trx:       trx,
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		publisher: publisher,
		validate:  utils.NewValidator(),
		retries:   retries,
	}
}

// PlaceOrder writes the order and empties the cart in one transaction. With an
// idempotency key, a repeated request returns the order created the first time.
func (s *OrderServiceImpl) PlaceOrder(ctx context.Context, req dto.OrderRequest) (order domain.Order, err error) {
	if req.UserID == "" {
		return order, errs.ErrNotLoggedIn
	}

	req.ShippingAddress.Address = strings.TrimSpace(req.ShippingAddress.Address)
	req.ShippingAddress.City = strings.TrimSpace(req.ShippingAddress.City)
	req.ShippingAddress.Zip = strings.TrimSpace(req.ShippingAddress.Zip)
	req.IdempotencyKey = strings.TrimSpace(req.IdempotencyKey)

	if err = s.validate.Struct(req); err != nil {
		return order, errs.FromValidator(err)
	}

	address := domain.ShippingAddress{
		Address: req.ShippingAddress.Address,
		City:    req.ShippingAddress.City,
		Zip:     req.ShippingAddress.Zip,
	}

	for attempt := 1; attempt <= s.retries; attempt++ {
		replayed := false

		err = s.trx.HandleTrx(ctx, func(ctx context.Context) error {
			replayed = false

			if req.IdempotencyKey != "" {
				existing, err := s.orderRepo.GetOrderByIdempotencyKey(ctx, req.UserID, req.IdempotencyKey)
				if err == nil {
					order = existing
					replayed = true
					return nil
				}
				if !errors.Is(err, errs.ErrOrderNotFound) {
					return err
				}
			}

			cart, err := s.cartRepo.GetCartByUserID(ctx, req.UserID)
			if errors.Is(err, errs.ErrCartNotFound) {
				return errs.WrapValidation(errs.ErrCartEmpty)
			}
			if err != nil {
				return err
			}
			if cart.IsEmpty() {
				return errs.WrapValidation(errs.ErrCartEmpty)
			}

			now := utils.NowUTC()
			order = domain.NewOrderFromCart(cart, address, req.IdempotencyKey, now)
			if _, err := s.orderRepo.AddOrder(ctx, order); err != nil {
				return err
			}

			cleared := cart.Clone()
			cleared.Clear()
			cleared.Version = cart.Version + 1
			cleared.UpdatedAt = now

			return s.cartRepo.UpdateCart(ctx, cleared, cart.Version)
		})

		if errors.Is(err, errs.ErrCartWriteConflict) || (errors.Is(err, errs.ErrConflict) && req.IdempotencyKey != "") {
			metrics.CartWriteConflicts.WithLabelValues("PlaceOrder").Inc()
			log.Ctx(ctx).Warn().Err(err).Str("component", "PlaceOrder").Int("attempt", attempt).Msg("checkout conflict, retrying")
			continue
		}
		if err != nil {
			if !errs.IsClientError(err) {
				log.Ctx(ctx).Error().Err(err).Str("component", "PlaceOrder").Msg("")
			}
			return domain.Order{}, err
		}

		if replayed {
			metrics.IdempotentReplays.Inc()
			return order, nil
		}

		metrics.OrdersPlaced.Inc()
		s.events.Add(1)
		go func() {
			defer s.events.Done()
			s.publishOrderCreated(context.WithoutCancel(ctx), order)
		}()

		return order, nil
	}

	return domain.Order{}, errs.ErrCartWriteConflict
}

// publishOrderCreated is best effort; the order is already committed.
func (s *OrderServiceImpl) publishOrderCreated(ctx context.Context, order domain.Order) {
	items := make([]dto.OrderEventItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, dto.OrderEventItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	msg := dto.KafkaMessage{
		EventType: dto.EventOrderCreated,
		Data: dto.OrderCreatedEvent{
			OrderID:     order.ID.Hex(),
			UserID:      order.UserID,
			TotalAmount: order.TotalAmount,
			Items:       items,
			CreatedAt:   order.CreatedAt.UnixMilli(),
		},
	}

	if err := s.publisher.Publish(ctx, order.ID.Hex(), msg); err != nil {
		metrics.EventsPublished.WithLabelValues(dto.EventOrderCreated, "failed").Inc()
		log.Ctx(ctx).Error().Err(err).Str("component", "publishOrderCreated").Str("order_id", order.ID.Hex()).Msg("")
		return
	}

	metrics.EventsPublished.WithLabelValues(dto.EventOrderCreated, "ok").Inc()
}

// WaitForEvents blocks until every order_created publish started so far has
// finished, or ctx is done.
func (s *OrderServiceImpl) WaitForEvents(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.events.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("order events still in flight: %w", ctx.Err())
	}
}

func (s *OrderServiceImpl) GetOrder(ctx context.Context, userID string, orderID string) (order domain.Order, err error) {
	if userID == "" {
		return order, errs.ErrNotLoggedIn
	}

	order, err = s.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}

	if order.UserID != userID {
		log.Ctx(ctx).Warn().Str("component", "GetOrder").Str("order_id", orderID).Str("user_id", userID).Msg("order belongs to another user")
		return domain.Order{}, errs.ErrForbidden
	}

	return order, nil
}

func (s *OrderServiceImpl) ListOrders(ctx context.Context, userID string) (orders []domain.Order, err error) {
	if userID == "" {
		return nil, errs.ErrNotLoggedIn
	}

	return s.orderRepo.GetOrdersByUserID(ctx, userID)
}

func (s *OrderServiceImpl) ListAllOrders(ctx context.Context, filter pkgdto.Filter) (resp pkgdto.PaginationResponse, err error) {
	filter = filter.Normalize()
	filter.Status = strings.ToLower(strings.TrimSpace(filter.Status))

	if filter.Status != "" && !domain.OrderStatus(filter.Status).IsValid() {
		return resp, errs.WrapValidation(errs.ErrInvalidStatus, errs.FieldError{Field: "status", Tag: "oneof"})
	}

	orders, err := s.orderRepo.GetOrders(ctx, filter)
	if err != nil {
		return
	}

	count, err := s.orderRepo.CountOrders(ctx, filter)
	if err != nil {
		return
	}

	return pkgdto.NewPaginationResponse(orders, count, filter), nil
}

// UpdateOrderStatus accepts any known status regardless of the current one.
func (s *OrderServiceImpl) UpdateOrderStatus(ctx context.Context, req dto.OrderStatusRequest) (order domain.Order, err error) {
	if err = s.validate.Struct(req); err != nil {
		return order, errs.FromValidator(err)
	}

	status := domain.OrderStatus(strings.ToLower(strings.TrimSpace(req.Status)))
	if !status.IsValid() {
		return order, errs.WrapValidation(errs.ErrInvalidStatus, errs.FieldError{Field: "status", Tag: "oneof"})
	}

	order, err = s.orderRepo.UpdateOrderStatus(ctx, req.OrderID, status)
	if err != nil {
		return domain.Order{}, err
	}

	log.Ctx(ctx).Info().Str("component", "UpdateOrderStatus").Str("order_id", req.OrderID).Str("status", string(status)).Msg("order status updated")

	return order, nil
}
