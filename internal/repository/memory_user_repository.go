package repository

import (
	"context"
	"strings"

	"github.com/alimikegami/point-of-sales/storefront-service/internal/domain"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/errs"
)

type MemoryUserRepositoryImpl struct {
	store *MemoryStore
}

func CreateMemoryUserRepository(store *MemoryStore) UserRepository {
	return &MemoryUserRepositoryImpl{store: store}
}

func (r *MemoryUserRepositoryImpl) GetUserByEmail(ctx context.Context, email string) (res domain.User, err error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.store.users[strings.ToLower(email)], nil
}

func (r *MemoryUserRepositoryImpl) GetUserByExternalID(ctx context.Context, externalID string) (res domain.User, err error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, user := range r.store.users {
		if user.ExternalID == externalID {
			return user, nil
		}
	}

	return res, errs.ErrAccountNotFound
}

func (r *MemoryUserRepositoryImpl) AddUser(ctx context.Context, data domain.User) (id int64, err error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	key := strings.ToLower(data.Email)
	if _, ok := r.store.users[key]; ok {
		return 0, errs.ErrEmailAlreadyUsed
	}

	r.store.lastUserID++
	data.ID = r.store.lastUserID
	r.store.users[key] = data

	return data.ID, nil
}
