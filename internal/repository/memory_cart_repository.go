package repository

import (
	"context"

	"github.com/alimikegami/point-of-sales/storefront-service/internal/domain"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/errs"
)

type MemoryCartRepositoryImpl struct {
	store *MemoryStore
}

func CreateMemoryCartRepository(store *MemoryStore) CartRepository {
	return &MemoryCartRepositoryImpl{store: store}
}

func (r *MemoryCartRepositoryImpl) GetCartByUserID(ctx context.Context, userID string) (data domain.Cart, err error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	cart, ok := r.store.carts[userID]
	if !ok {
		return data, errs.ErrCartNotFound
	}

	return cart.Clone(), nil
}

func (r *MemoryCartRepositoryImpl) InsertCart(ctx context.Context, data domain.Cart) (err error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.carts[data.UserID]; ok {
		return errs.ErrConflict
	}

	r.store.carts[data.UserID] = data.Clone()
	r.store.recordUndo(ctx, func() {
		delete(r.store.carts, data.UserID)
	})

	return nil
}

func (r *MemoryCartRepositoryImpl) UpdateCart(ctx context.Context, data domain.Cart, expectedVersion int64) (err error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	previous, ok := r.store.carts[data.UserID]
	if !ok || previous.Version != expectedVersion {
		return errs.ErrCartWriteConflict
	}

	r.store.carts[data.UserID] = data.Clone()
	r.store.recordUndo(ctx, func() {
		r.store.carts[data.UserID] = previous
	})

	return nil
}
