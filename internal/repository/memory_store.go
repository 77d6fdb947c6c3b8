package repository

import (
	"bytes"
	"context"
	"sort"
	"sync"

	"github.com/alimikegami/point-of-sales/storefront-service/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore backs every repository when the service runs with the memory
// storage driver. Data lives only as long as the process.
type MemoryStore struct {
	mu    sync.RWMutex
	trxMu sync.Mutex

	carts       map[string]domain.Cart
	orders      map[primitive.ObjectID]domain.Order
	products    map[primitive.ObjectID]domain.Product
	users       map[string]domain.User
	transcripts map[string]domain.Transcript
	lastUserID  int64
}

func CreateMemoryStore() *MemoryStore {
	return &MemoryStore{
		carts:       map[string]domain.Cart{},
		orders:      map[primitive.ObjectID]domain.Order{},
		products:    map[primitive.ObjectID]domain.Product{},
		users:       map[string]domain.User{},
		transcripts: map[string]domain.Transcript{},
	}
}

type memoryTrxKey struct{}

type memoryTrx struct {
	undo []func()
}

// recordUndo must be called with s.mu held.
func (s *MemoryStore) recordUndo(ctx context.Context, fn func()) {
	if trx, ok := ctx.Value(memoryTrxKey{}).(*memoryTrx); ok {
		trx.undo = append(trx.undo, fn)
	}
}

type MemoryTransactionManager struct {
	store *MemoryStore
}

func CreateMemoryTransactionManager(store *MemoryStore) TransactionManager {
	return &MemoryTransactionManager{store: store}
}

// HandleTrx serializes transactions against each other and reverts every write
// made through ctx when fn fails.
func (m *MemoryTransactionManager) HandleTrx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if _, nested := ctx.Value(memoryTrxKey{}).(*memoryTrx); nested {
		return fn(ctx)
	}

	m.store.trxMu.Lock()
	defer m.store.trxMu.Unlock()

	trx := &memoryTrx{}
	defer func() {
		p := recover()
		if err != nil || p != nil {
			m.store.mu.Lock()
			for i := len(trx.undo) - 1; i >= 0; i-- {
				trx.undo[i]()
			}
			m.store.mu.Unlock()
		}
		if p != nil {
			panic(p)
		}
	}()

	return fn(context.WithValue(ctx, memoryTrxKey{}, trx))
}

func sortOrdersNewestFirst(orders []domain.Order) {
	sort.Slice(orders, func(i, j int) bool {
		if !orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].CreatedAt.After(orders[j].CreatedAt)
		}
		return bytes.Compare(orders[i].ID[:], orders[j].ID[:]) > 0
	})
}

func sortProductsNewestFirst(products []domain.Product) {
	sort.Slice(products, func(i, j int) bool {
		if !products[i].CreatedAt.Equal(products[j].CreatedAt) {
			return products[i].CreatedAt.After(products[j].CreatedAt)
		}
		return bytes.Compare(products[i].ID[:], products[j].ID[:]) > 0
	})
}

func page[T any](records []T, offset int, limit int) []T {
	if limit == 0 {
		return records
	}
	if offset < 0 || offset >= len(records) {
		return []T{}
	}
	end := offset + limit
	if end > len(records) {
		end = len(records)
	}
	return records[offset:end]
}
