package repository

import (
	"context"

	"github.com/alimikegami/point-of-sales/storefront-service/internal/domain"
	pkgdto "github.com/alimikegami/point-of-sales/storefront-service/pkg/dto"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/errs"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MemoryOrderRepositoryImpl struct {
	store *MemoryStore
}

func CreateMemoryOrderRepository(store *MemoryStore) OrderRepository {
	return &MemoryOrderRepositoryImpl{store: store}
}

func (r *MemoryOrderRepositoryImpl) AddOrder(ctx context.Context, data domain.Order) (id primitive.ObjectID, err error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if data.ID.IsZero() {
		data.ID = primitive.NewObjectID()
	}

	if _, ok := r.store.orders[data.ID]; ok {
		return id, errs.ErrConflict
	}
	if data.IdempotencyKey != "" {
		for _, order := range r.store.orders {
			if order.UserID == data.UserID && order.IdempotencyKey == data.IdempotencyKey {
				return id, errs.ErrConflict
			}
		}
	}

	r.store.orders[data.ID] = data.Clone()
	r.store.recordUndo(ctx, func() {
		delete(r.store.orders, data.ID)
	})

	return data.ID, nil
}

func (r *MemoryOrderRepositoryImpl) GetOrderByID(ctx context.Context, id string) (data domain.Order, err error) {
	orderID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return data, errs.ErrOrderNotFound
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	order, ok := r.store.orders[orderID]
	if !ok {
		return data, errs.ErrOrderNotFound
	}

	return order.Clone(), nil
}

func (r *MemoryOrderRepositoryImpl) GetOrderByIdempotencyKey(ctx context.Context, userID string, key string) (data domain.Order, err error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, order := range r.store.orders {
		if order.UserID == userID && order.IdempotencyKey == key {
			return order.Clone(), nil
		}
	}

	return data, errs.ErrOrderNotFound
}

func (r *MemoryOrderRepositoryImpl) collect(match func(domain.Order) bool) []domain.Order {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	orders := []domain.Order{}
	for _, order := range r.store.orders {
		if match(order) {
			orders = append(orders, order.Clone())
		}
	}
	sortOrdersNewestFirst(orders)

	return orders
}

func (r *MemoryOrderRepositoryImpl) GetOrdersByUserID(ctx context.Context, userID string) (data []domain.Order, err error) {
	return r.collect(func(o domain.Order) bool { return o.UserID == userID }), nil
}

func matchOrderFilter(filter pkgdto.Filter) func(domain.Order) bool {
	return func(o domain.Order) bool {
		return filter.Status == "" || string(o.Status) == filter.Status
	}
}

func (r *MemoryOrderRepositoryImpl) GetOrders(ctx context.Context, filter pkgdto.Filter) (data []domain.Order, err error) {
	orders := r.collect(matchOrderFilter(filter))
	if filter.Limit == 0 || filter.Page == 0 {
		return orders, nil
	}

	return page(orders, filter.Offset(), filter.Limit), nil
}

func (r *MemoryOrderRepositoryImpl) CountOrders(ctx context.Context, filter pkgdto.Filter) (count int64, err error) {
	return int64(len(r.collect(matchOrderFilter(filter)))), nil
}

func (r *MemoryOrderRepositoryImpl) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) (data domain.Order, err error) {
	orderID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return data, errs.ErrOrderNotFound
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	order, ok := r.store.orders[orderID]
	if !ok {
		return data, errs.ErrOrderNotFound
	}

	previous := order.Clone()
	order.Status = status
	order.UpdatedAt = utils.NowUTC()
	r.store.orders[orderID] = order
	r.store.recordUndo(ctx, func() {
		r.store.orders[orderID] = previous
	})

	return order.Clone(), nil
}
