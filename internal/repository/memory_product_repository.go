package repository

import (
	"context"
	"sort"
	"strings"

	"github.com/alimikegami/point-of-sales/storefront-service/internal/domain"
	pkgdto "github.com/alimikegami/point-of-sales/storefront-service/pkg/dto"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/errs"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MemoryProductRepositoryImpl struct {
	store *MemoryStore
}

func CreateMemoryProductRepository(store *MemoryStore) ProductRepository {
	return &MemoryProductRepositoryImpl{store: store}
}

func cloneProduct(p domain.Product) domain.Product {
	if p.Images != nil {
		p.Images = append([]string{}, p.Images...)
	}
	return p
}

func (r *MemoryProductRepositoryImpl) AddProduct(ctx context.Context, data domain.Product) (id primitive.ObjectID, err error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if data.ID.IsZero() {
		data.ID = primitive.NewObjectID()
	}
	r.store.products[data.ID] = cloneProduct(data)

	return data.ID, nil
}

func (r *MemoryProductRepositoryImpl) GetProductByID(ctx context.Context, id string) (data domain.Product, err error) {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return data, errs.ErrProductNotFound
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	product, ok := r.store.products[productID]
	if !ok {
		return data, errs.ErrProductNotFound
	}

	return cloneProduct(product), nil
}

func containsFold(s string, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func matchProductFilter(filter pkgdto.Filter) func(domain.Product) bool {
	return func(p domain.Product) bool {
		if filter.Brand != "" && !strings.EqualFold(p.Brand, filter.Brand) {
			return false
		}
		if filter.Q != "" && !containsFold(p.Name, filter.Q) && !containsFold(p.Brand, filter.Q) && !containsFold(p.Description, filter.Q) {
			return false
		}
		return true
	}
}

func (r *MemoryProductRepositoryImpl) collect(filter pkgdto.Filter) []domain.Product {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	match := matchProductFilter(filter)
	products := []domain.Product{}
	for _, product := range r.store.products {
		if match(product) {
			products = append(products, cloneProduct(product))
		}
	}
	sortProductsNewestFirst(products)

	return products
}

func (r *MemoryProductRepositoryImpl) GetProducts(ctx context.Context, filter pkgdto.Filter) (data []domain.Product, err error) {
	products := r.collect(filter)
	if filter.Limit == 0 || filter.Page == 0 {
		return products, nil
	}

	return page(products, filter.Offset(), filter.Limit), nil
}

func (r *MemoryProductRepositoryImpl) CountProducts(ctx context.Context, filter pkgdto.Filter) (count int64, err error) {
	return int64(len(r.collect(filter))), nil
}

func (r *MemoryProductRepositoryImpl) GetBrands(ctx context.Context) (brands []string, err error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	seen := map[string]struct{}{}
	brands = []string{}
	for _, product := range r.store.products {
		if product.Brand == "" {
			continue
		}
		if _, ok := seen[product.Brand]; ok {
			continue
		}
		seen[product.Brand] = struct{}{}
		brands = append(brands, product.Brand)
	}
	sort.Strings(brands)

	return brands, nil
}

func (r *MemoryProductRepositoryImpl) UpdateProduct(ctx context.Context, id string, data domain.ProductUpdate) (product domain.Product, err error) {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return product, errs.ErrProductNotFound
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	product, ok := r.store.products[productID]
	if !ok {
		return product, errs.ErrProductNotFound
	}

	data.Apply(&product)
	r.store.products[productID] = cloneProduct(product)

	return cloneProduct(product), nil
}

func (r *MemoryProductRepositoryImpl) DeleteProduct(ctx context.Context, id string) (err error) {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errs.ErrProductNotFound
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.products[productID]; !ok {
		return errs.ErrProductNotFound
	}
	delete(r.store.products, productID)

	return nil
}
