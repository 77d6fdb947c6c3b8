package service

import (
	"context"

	"github.com/alimikegami/point-of-sales/storefront-service/internal/domain"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/dto"
	pkgdto "github.com/alimikegami/point-of-sales/storefront-service/pkg/dto"
)

type CartService interface {
	GetCart(ctx context.Context, userID string) (cart domain.Cart, err error)
	AddItem(ctx context.Context, req dto.CartItemRequest) (cart domain.Cart, err error)
	UpdateItemQuantity(ctx context.Context, req dto.CartQuantityRequest) (cart domain.Cart, err error)
	RemoveItem(ctx context.Context, userID string, productID string) (cart domain.Cart, err error)
	ClearCart(ctx context.Context, userID string) (cart domain.Cart, err error)
}

type OrderService interface {
	PlaceOrder(ctx context.Context, req dto.OrderRequest) (order domain.Order, err error)
	GetOrder(ctx context.Context, userID string, orderID string) (order domain.Order, err error)
	ListOrders(ctx context.Context, userID string) (orders []domain.Order, err error)
	ListAllOrders(ctx context.Context, filter pkgdto.Filter) (resp pkgdto.PaginationResponse, err error)
	UpdateOrderStatus(ctx context.Context, req dto.OrderStatusRequest) (order domain.Order, err error)
	WaitForEvents(ctx context.Context) error
}

type ProductService interface {
	ListProducts(ctx context.Context, filter pkgdto.Filter) (resp pkgdto.PaginationResponse, err error)
	ListProductsByBrand(ctx context.Context, brand string, filter pkgdto.Filter) (resp pkgdto.PaginationResponse, err error)
	SearchProducts(ctx context.Context, q string, filter pkgdto.Filter) (resp pkgdto.PaginationResponse, err error)
	ListBrands(ctx context.Context) (brands []string, err error)
	GetProduct(ctx context.Context, id string) (product domain.Product, err error)
	CreateProduct(ctx context.Context, req dto.ProductRequest) (product domain.Product, err error)
	UpdateProduct(ctx context.Context, req dto.ProductUpdateRequest) (product domain.Product, err error)
	DeleteProduct(ctx context.Context, id string) (err error)
	SetStock(ctx context.Context, req dto.ProductStockRequest) (product domain.Product, err error)
}

type UserService interface {
	Register(ctx context.Context, req dto.UserRequest) (resp dto.UserResponse, err error)
	Login(ctx context.Context, req dto.LoginRequest) (resp dto.LoginResponse, err error)
	EnsureAdmin(ctx context.Context, req dto.UserRequest) (err error)
}

type ChatService interface {
	SendMessage(ctx context.Context, req dto.ChatRequest) (resp dto.ChatResponse, err error)
	GetTranscript(ctx context.Context, sessionID string, userID string) (transcript domain.Transcript, err error)
}

// EventPublisher delivers domain events to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, key string, msg dto.KafkaMessage) error
}

// TextGenerator is an opaque text completion backend.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
