package repository

import (
	"context"

	"github.com/alimikegami/point-of-sales/storefront-service/internal/domain"
	pkgdto "github.com/alimikegami/point-of-sales/storefront-service/pkg/dto"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TransactionManager runs fn as one unit of work. Repository calls made with the
// ctx passed to fn take part in the transaction.
type TransactionManager interface {
	HandleTrx(ctx context.Context, fn func(ctx context.Context) error) error
}

type CartRepository interface {
	GetCartByUserID(ctx context.Context, userID string) (data domain.Cart, err error)
	// InsertCart returns errs.ErrConflict when the user already has a cart.
	InsertCart(ctx context.Context, data domain.Cart) (err error)
	// UpdateCart writes data only while the stored cart is still at expectedVersion,
	// otherwise it returns errs.ErrCartWriteConflict.
	UpdateCart(ctx context.Context, data domain.Cart, expectedVersion int64) (err error)
}

type OrderRepository interface {
	AddOrder(ctx context.Context, data domain.Order) (id primitive.ObjectID, err error)
	GetOrderByID(ctx context.Context, id string) (data domain.Order, err error)
	GetOrderByIdempotencyKey(ctx context.Context, userID string, key string) (data domain.Order, err error)
	GetOrdersByUserID(ctx context.Context, userID string) (data []domain.Order, err error)
	GetOrders(ctx context.Context, filter pkgdto.Filter) (data []domain.Order, err error)
	CountOrders(ctx context.Context, filter pkgdto.Filter) (count int64, err error)
	UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) (data domain.Order, err error)
}

type ProductRepository interface {
	AddProduct(ctx context.Context, data domain.Product) (id primitive.ObjectID, err error)
	GetProductByID(ctx context.Context, id string) (data domain.Product, err error)
	GetProducts(ctx context.Context, filter pkgdto.Filter) (data []domain.Product, err error)
	CountProducts(ctx context.Context, filter pkgdto.Filter) (count int64, err error)
	GetBrands(ctx context.Context) (brands []string, err error)
	UpdateProduct(ctx context.Context, id string, data domain.ProductUpdate) (product domain.Product, err error)
	DeleteProduct(ctx context.Context, id string) (err error)
}

type UserRepository interface {
	// GetUserByEmail returns the zero User and no error when nobody has the email.
	GetUserByEmail(ctx context.Context, email string) (res domain.User, err error)
	GetUserByExternalID(ctx context.Context, externalID string) (res domain.User, err error)
	AddUser(ctx context.Context, data domain.User) (id int64, err error)
}

type ChatRepository interface {
	// GetTranscript returns errs.ErrNotFound for unknown sessions.
	GetTranscript(ctx context.Context, sessionID string) (data domain.Transcript, err error)
	AppendMessages(ctx context.Context, sessionID string, userID string, messages ...domain.ChatMessage) (err error)
}
