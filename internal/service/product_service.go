package service

import (
	"context"
	"strings"

	"github.com/alimikegami/point-of-sales/storefront-service/internal/domain"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/dto"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/repository"
	pkgdto "github.com/alimikegami/point-of-sales/storefront-service/pkg/dto"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/errs"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/utils"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

type ProductServiceImpl struct {
	repo     repository.ProductRepository
	validate *validator.Validate
}

func CreateProductService(repo repository.ProductRepository) ProductService {
	return &ProductServiceImpl{
		repo:     repo,
		validate: utils.NewValidator(),
	}
}

var errNegativePrice = errs.NewValidationError("Invalid or missing fields: price", errs.FieldError{Field: "price", Tag: "min"})

func (s *ProductServiceImpl) ListProducts(ctx context.Context, filter pkgdto.Filter) (resp pkgdto.PaginationResponse, err error) {
	filter = filter.Normalize()
	filter.Q = strings.TrimSpace(filter.Q)
	filter.Brand = strings.TrimSpace(filter.Brand)

	products, err := s.repo.GetProducts(ctx, filter)
	if err != nil {
		return
	}

	count, err := s.repo.CountProducts(ctx, filter)
	if err != nil {
		return
	}

	return pkgdto.NewPaginationResponse(products, count, filter), nil
}

func (s *ProductServiceImpl) ListProductsByBrand(ctx context.Context, brand string, filter pkgdto.Filter) (resp pkgdto.PaginationResponse, err error) {
	filter.Brand = brand
	return s.ListProducts(ctx, filter)
}

func (s *ProductServiceImpl) SearchProducts(ctx context.Context, q string, filter pkgdto.Filter) (resp pkgdto.PaginationResponse, err error) {
	filter.Q = q
	return s.ListProducts(ctx, filter)
}

func (s *ProductServiceImpl) ListBrands(ctx context.Context) (brands []string, err error) {
	return s.repo.GetBrands(ctx)
}

func (s *ProductServiceImpl) GetProduct(ctx context.Context, id string) (product domain.Product, err error) {
	return s.repo.GetProductByID(ctx, id)
}

func (s *ProductServiceImpl) CreateProduct(ctx context.Context, req dto.ProductRequest) (product domain.Product, err error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Brand = strings.TrimSpace(req.Brand)

	if err = s.validate.Struct(req); err != nil {
		return product, errs.FromValidator(err)
	}
	if req.Price.IsNegative() {
		return product, errNegativePrice
	}

	now := utils.NowUTC()
	product = domain.Product{
		Name:        req.Name,
		Brand:       req.Brand,
		Description: req.Description,
		Price:       *req.Price,
		Image:       req.Image,
		Images:      req.Images,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}

	product.ID, err = s.repo.AddProduct(ctx, product)
	if err != nil {
		return domain.Product{}, err
	}

	log.Ctx(ctx).Info().Str("component", "CreateProduct").Str("product_id", product.ID.Hex()).Msg("product created")

	return product, nil
}

func (s *ProductServiceImpl) UpdateProduct(ctx context.Context, req dto.ProductUpdateRequest) (product domain.Product, err error) {
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		req.Name = &name
	}
	if req.Brand != nil {
		brand := strings.TrimSpace(*req.Brand)
		req.Brand = &brand
	}

	if err = s.validate.Struct(req); err != nil {
		return product, errs.FromValidator(err)
	}
	if req.Price != nil && req.Price.IsNegative() {
		return product, errNegativePrice
	}

	return s.repo.UpdateProduct(ctx, req.ID, domain.ProductUpdate{
		Name:        req.Name,
		Brand:       req.Brand,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		Images:      req.Images,
		Stock:       req.Stock,
		UpdatedAt:   utils.NowUTC(),
	})
}

func (s *ProductServiceImpl) DeleteProduct(ctx context.Context, id string) (err error) {
	return s.repo.DeleteProduct(ctx, id)
}

func (s *ProductServiceImpl) SetStock(ctx context.Context, req dto.ProductStockRequest) (product domain.Product, err error) {
	if err = s.validate.Struct(req); err != nil {
		return product, errs.FromValidator(err)
	}

	return s.repo.UpdateProduct(ctx, req.ID, domain.ProductUpdate{
		Stock:     req.Stock,
		UpdatedAt: utils.NowUTC(),
	})
}
