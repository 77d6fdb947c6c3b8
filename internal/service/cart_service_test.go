package service

import (
	"context"
	"math"
	"sync"
	"testing"

	"github.com/alimikegami/point-of-sales/storefront-service/internal/domain"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/dto"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/repository"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/errs"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

func intPtr(i int) *int {
	return &i
}

func price(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func addRequest(userID string, productID string, unitPrice int64, quantity int) dto.CartItemRequest {
	return dto.CartItemRequest{
		UserID:    userID,
		ProductID: dto.ProductID(productID),
		Name:      "Product " + productID,
		Price:     price(unitPrice),
		Image:     "https://img.example.com/" + productID + ".png",
		Brand:     "Acme",
		Quantity:  intPtr(quantity),
	}
}

type CartServiceTestSuite struct {
	suite.Suite
	store *repository.MemoryStore
	repo  repository.CartRepository
	svc   CartService
}

func (s *CartServiceTestSuite) SetupTest() {
	s.store = repository.CreateMemoryStore()
	s.repo = repository.CreateMemoryCartRepository(s.store)
	s.svc = CreateCartService(s.repo, 5)
}

func TestCartServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CartServiceTestSuite))
}

func (s *CartServiceTestSuite) assertTotals(cart domain.Cart) {
	quantity := 0
	total := decimal.Zero
	for _, item := range cart.Items {
		quantity += item.Quantity
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	s.Equal(quantity, cart.TotalQuantity)
	s.True(total.Equal(cart.TotalPrice), "total price %s, expected %s", cart.TotalPrice, total)
}

func (s *CartServiceTestSuite) Test_GetCartCreatesEmptyCart() {
	ctx := context.Background()

	cart, err := s.svc.GetCart(ctx, "u1")
	s.Require().NoError(err)
	s.Equal("u1", cart.UserID)
	s.Empty(cart.Items)
	s.NotNil(cart.Items)
	s.Equal(0, cart.TotalQuantity)
	s.True(cart.TotalPrice.IsZero())

	again, err := s.svc.GetCart(ctx, "u1")
	s.Require().NoError(err)
	s.Equal(cart.ID, again.ID)
}

func (s *CartServiceTestSuite) Test_RequiresUser() {
	_, err := s.svc.GetCart(context.Background(), "")
	s.ErrorIs(err, errs.ErrNotLoggedIn)

	_, err = s.svc.AddItem(context.Background(), addRequest("", "p1", 10, 1))
	s.ErrorIs(err, errs.ErrNotLoggedIn)
}

func (s *CartServiceTestSuite) Test_AddItemToEmptyCart() {
	req := addRequest("u1", "p1", 1000, 1)
	req.Name = "Phone"

	cart, err := s.svc.AddItem(context.Background(), req)
	s.Require().NoError(err)

	s.Require().Len(cart.Items, 1)
	s.Equal("p1", cart.Items[0].ProductID)
	s.Equal("Phone", cart.Items[0].Name)
	s.Equal("Acme", cart.Items[0].Brand)
	s.Equal(1, cart.TotalQuantity)
	s.True(decimal.NewFromInt(1000).Equal(cart.TotalPrice))
}

func (s *CartServiceTestSuite) Test_AddExistingItemIncrementsQuantity() {
	ctx := context.Background()

	_, err := s.svc.AddItem(ctx, addRequest("u1", "p1", 1000, 1))
	s.Require().NoError(err)

	cart, err := s.svc.AddItem(ctx, addRequest("u1", "p1", 1000, 2))
	s.Require().NoError(err)

	s.Require().Len(cart.Items, 1)
	s.Equal(3, cart.Items[0].Quantity)
	s.Equal(3, cart.TotalQuantity)
	s.True(decimal.NewFromInt(3000).Equal(cart.TotalPrice))
}

func (s *CartServiceTestSuite) Test_AddItemDefaultsQuantityToOne() {
	req := addRequest("u1", "p1", 20, 1)
	req.Quantity = nil

	cart, err := s.svc.AddItem(context.Background(), req)
	s.Require().NoError(err)
	s.Equal(1, cart.Items[0].Quantity)
}

func (s *CartServiceTestSuite) Test_AddItemValidation() {
	type TestCase struct {
		Name   string
		Mutate func(req *dto.CartItemRequest)
		Field  string
	}

	testCases := []TestCase{
		{Name: "Missing product id", Mutate: func(req *dto.CartItemRequest) { req.ProductID = "" }, Field: "productId"},
		{Name: "Blank product id", Mutate: func(req *dto.CartItemRequest) { req.ProductID = "   " }, Field: "productId"},
		{Name: "Missing name", Mutate: func(req *dto.CartItemRequest) { req.Name = "" }, Field: "name"},
		{Name: "Missing price", Mutate: func(req *dto.CartItemRequest) { req.Price = nil }, Field: "price"},
		{Name: "Negative price", Mutate: func(req *dto.CartItemRequest) { req.Price = price(-1) }, Field: "price"},
		{Name: "Missing image", Mutate: func(req *dto.CartItemRequest) { req.Image = "" }, Field: "image"},
		{Name: "Zero quantity", Mutate: func(req *dto.CartItemRequest) { req.Quantity = intPtr(0) }, Field: "quantity"},
		{Name: "Negative quantity", Mutate: func(req *dto.CartItemRequest) { req.Quantity = intPtr(-2) }, Field: "quantity"},
		{Name: "Quantity over limit", Mutate: func(req *dto.CartItemRequest) { req.Quantity = intPtr(domain.MaxLineQuantity + 1) }, Field: "quantity"},
		{Name: "Max int quantity", Mutate: func(req *dto.CartItemRequest) { req.Quantity = intPtr(math.MaxInt) }, Field: "quantity"},
	}

	for _, tc := range testCases {
		s.Run(tc.Name, func() {
			req := addRequest("u1", "p1", 10, 1)
			tc.Mutate(&req)

			_, err := s.svc.AddItem(context.Background(), req)

			var validationErr *errs.ValidationError
			s.Require().ErrorAs(err, &validationErr)
			s.Equal(400, errs.GetErrorStatusCode(err))
			s.Require().NotEmpty(validationErr.Fields)
			s.Equal(tc.Field, validationErr.Fields[0].Field)
		})
	}

	_, err := s.repo.GetCartByUserID(context.Background(), "u1")
	s.ErrorIs(err, errs.ErrCartNotFound, "rejected requests must not write")
}

func (s *CartServiceTestSuite) Test_AddItemMergeRespectsQuantityLimit() {
	ctx := context.Background()
	_, err := s.svc.AddItem(ctx, addRequest("u1", "p1", 10, domain.MaxLineQuantity))
	s.Require().NoError(err)

	_, err = s.svc.AddItem(ctx, addRequest("u1", "p1", 10, 1))
	var validationErr *errs.ValidationError
	s.Require().ErrorAs(err, &validationErr)
	s.Equal(400, errs.GetErrorStatusCode(err))
	s.Require().NotEmpty(validationErr.Fields)
	s.Equal("quantity", validationErr.Fields[0].Field)

	cart, err := s.svc.GetCart(ctx, "u1")
	s.Require().NoError(err)
	s.Equal(domain.MaxLineQuantity, cart.Items[0].Quantity)
	s.Equal(int64(1), cart.Version)
	s.assertTotals(cart)
}

func (s *CartServiceTestSuite) Test_UpdateItemQuantity() {
	ctx := context.Background()
	_, err := s.svc.AddItem(ctx, addRequest("u1", "p1", 500, 2))
	s.Require().NoError(err)

	cart, err := s.svc.UpdateItemQuantity(ctx, dto.CartQuantityRequest{UserID: "u1", ProductID: "p1", Quantity: intPtr(1)})
	s.Require().NoError(err)
	s.Equal(1, cart.Items[0].Quantity)
	s.assertTotals(cart)

	cart, err = s.svc.UpdateItemQuantity(ctx, dto.CartQuantityRequest{UserID: "u1", ProductID: "p1", Quantity: intPtr(7)})
	s.Require().NoError(err)
	s.Equal(7, cart.Items[0].Quantity)
	s.True(decimal.NewFromInt(3500).Equal(cart.TotalPrice))
}

func (s *CartServiceTestSuite) Test_UpdateItemQuantityBoundary() {
	ctx := context.Background()
	_, err := s.svc.AddItem(ctx, addRequest("u1", "p1", 500, 2))
	s.Require().NoError(err)

	for _, quantity := range []*int{intPtr(0), intPtr(-1), nil, intPtr(domain.MaxLineQuantity + 1), intPtr(math.MaxInt)} {
		_, err := s.svc.UpdateItemQuantity(ctx, dto.CartQuantityRequest{UserID: "u1", ProductID: "p1", Quantity: quantity})

		var validationErr *errs.ValidationError
		s.ErrorAs(err, &validationErr)
	}

	cart, err := s.svc.GetCart(ctx, "u1")
	s.Require().NoError(err)
	s.Equal(2, cart.Items[0].Quantity)
}

func (s *CartServiceTestSuite) Test_UpdateMissingItem() {
	ctx := context.Background()
	_, err := s.svc.AddItem(ctx, addRequest("u1", "p1", 500, 2))
	s.Require().NoError(err)

	_, err = s.svc.UpdateItemQuantity(ctx, dto.CartQuantityRequest{UserID: "u1", ProductID: "nonexistent-product", Quantity: intPtr(3)})
	s.ErrorIs(err, errs.ErrCartItemNotFound)
	s.Equal(404, errs.GetErrorStatusCode(err))
}

func (s *CartServiceTestSuite) Test_UpdateWithoutCart() {
	_, err := s.svc.UpdateItemQuantity(context.Background(), dto.CartQuantityRequest{UserID: "u1", ProductID: "p1", Quantity: intPtr(3)})
	s.ErrorIs(err, errs.ErrCartNotFound)
	s.Equal(404, errs.GetErrorStatusCode(err))
}

func (s *CartServiceTestSuite) Test_RemoveItem() {
	ctx := context.Background()
	_, err := s.svc.AddItem(ctx, addRequest("u1", "p1", 500, 2))
	s.Require().NoError(err)
	_, err = s.svc.AddItem(ctx, addRequest("u1", "p2", 100, 1))
	s.Require().NoError(err)

	cart, err := s.svc.RemoveItem(ctx, "u1", "p1")
	s.Require().NoError(err)
	s.Require().Len(cart.Items, 1)
	s.Equal("p2", cart.Items[0].ProductID)
	s.assertTotals(cart)

	again, err := s.svc.RemoveItem(ctx, "u1", "p1")
	s.Require().NoError(err)
	s.Equal(cart.Items, again.Items)
	s.Equal(cart.Version, again.Version)
}

func (s *CartServiceTestSuite) Test_ClearCartIsIdempotent() {
	ctx := context.Background()
	_, err := s.svc.AddItem(ctx, addRequest("u1", "p1", 500, 2))
	s.Require().NoError(err)

	first, err := s.svc.ClearCart(ctx, "u1")
	s.Require().NoError(err)
	second, err := s.svc.ClearCart(ctx, "u1")
	s.Require().NoError(err)

	s.Equal(first, second)
	s.Empty(second.Items)
	s.Equal(0, second.TotalQuantity)
	s.True(second.TotalPrice.IsZero())
}

func (s *CartServiceTestSuite) Test_ClearCartCreatesMissingCart() {
	cart, err := s.svc.ClearCart(context.Background(), "new-user")
	s.Require().NoError(err)
	s.Equal("new-user", cart.UserID)
	s.Empty(cart.Items)

	_, err = s.repo.GetCartByUserID(context.Background(), "new-user")
	s.NoError(err)
}

func (s *CartServiceTestSuite) Test_TotalsHoldAfterEveryMutation() {
	ctx := context.Background()

	steps := []func() (domain.Cart, error){
		func() (domain.Cart, error) { return s.svc.AddItem(ctx, addRequest("u1", "p1", 1999, 1)) },
		func() (domain.Cart, error) { return s.svc.AddItem(ctx, addRequest("u1", "p2", 5, 10)) },
		func() (domain.Cart, error) { return s.svc.AddItem(ctx, addRequest("u1", "p1", 1999, 2)) },
		func() (domain.Cart, error) {
			return s.svc.UpdateItemQuantity(ctx, dto.CartQuantityRequest{UserID: "u1", ProductID: "p2", Quantity: intPtr(4)})
		},
		func() (domain.Cart, error) { return s.svc.RemoveItem(ctx, "u1", "p1") },
		func() (domain.Cart, error) { return s.svc.ClearCart(ctx, "u1") },
	}

	for _, step := range steps {
		cart, err := step()
		s.Require().NoError(err)
		s.assertTotals(cart)

		stored, err := s.repo.GetCartByUserID(ctx, "u1")
		s.Require().NoError(err)
		s.assertTotals(stored)
		s.Equal(cart.Items, stored.Items)
	}
}

func (s *CartServiceTestSuite) Test_ConcurrentAddItemLosesNoUpdates() {
	const workers = 20
	svc := CreateCartService(s.repo, workers+5)
	ctx := context.Background()

	var wg sync.WaitGroup
	errCh := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.AddItem(ctx, addRequest("u1", "p1", 10, 1))
			errCh <- err
		}()
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		s.NoError(err)
	}

	cart, err := svc.GetCart(ctx, "u1")
	s.Require().NoError(err)
	s.Require().Len(cart.Items, 1)
	s.Equal(workers, cart.Items[0].Quantity)
	s.True(decimal.NewFromInt(10 * workers).Equal(cart.TotalPrice))
}

type conflictingCartRepo struct {
	repository.CartRepository
}

func (conflictingCartRepo) UpdateCart(ctx context.Context, data domain.Cart, expectedVersion int64) error {
	return errs.ErrCartWriteConflict
}

func (s *CartServiceTestSuite) Test_PersistentConflictSurfaces() {
	svc := CreateCartService(conflictingCartRepo{s.repo}, 3)

	_, err := svc.AddItem(context.Background(), addRequest("u1", "p1", 10, 1))
	s.ErrorIs(err, errs.ErrCartWriteConflict)
	s.Equal(409, errs.GetErrorStatusCode(err))
}
