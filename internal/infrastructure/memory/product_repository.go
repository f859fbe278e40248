package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/octavian/nexus-inventory/internal/domain"
	"github.com/octavian/nexus-inventory/internal/domain/entity"
	"github.com/octavian/nexus-inventory/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo repositorio de productos en memoria.
type ProductRepo struct {
	sc scope
}

// NewProductRepository construye el repositorio sobre el Store.
func NewProductRepository(store *Store) *ProductRepo {
	return &ProductRepo{sc: scope{store: store}}
}

// Create persiste un producto nuevo. SKU repetido -> domain.ErrDuplicateSKU.
func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	return r.sc.with(func(d *data) error {
		if _, ok := d.skuIndex[product.SKU]; ok {
			return domain.ErrDuplicateSKU
		}
		d.products[product.ID] = *product
		d.skuIndex[product.SKU] = product.ID
		return nil
	})
}

// GetByID obtiene un producto por ID; (nil, nil) si no existe.
func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.sc.with(func(d *data) error {
		if p, ok := d.products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

// GetByIDForUpdate en memoria equivale a GetByID: el TxRunner ya tiene el Store bloqueado.
func (r *ProductRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

// GetBySKU obtiene un producto por SKU.
func (r *ProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	var out *entity.Product
	err := r.sc.with(func(d *data) error {
		if id, ok := d.skuIndex[sku]; ok {
			p := d.products[id]
			out = &p
		}
		return nil
	})
	return out, err
}

// UpdateDetails sobrescribe los campos editables; conserva SKU, cantidad y cantidad inicial.
func (r *ProductRepo) UpdateDetails(_ context.Context, product *entity.Product) error {
	return r.sc.with(func(d *data) error {
		cur, ok := d.products[product.ID]
		if !ok {
			return domain.ErrNotFound
		}
		cur.Name = product.Name
		cur.Category = product.Category
		cur.Description = product.Description
		cur.Price = product.Price
		cur.ReorderThreshold = product.ReorderThreshold
		cur.UpdatedAt = product.UpdatedAt
		d.products[product.ID] = cur
		return nil
	})
}

// UpdateQuantity fija la cantidad del producto.
func (r *ProductRepo) UpdateQuantity(_ context.Context, productID string, quantity int) error {
	return r.sc.with(func(d *data) error {
		cur, ok := d.products[productID]
		if !ok {
			return domain.ErrNotFound
		}
		if quantity < 0 {
			return fmt.Errorf("memory: cantidad negativa para %s", productID)
		}
		cur.Quantity = quantity
		d.products[productID] = cur
		return nil
	})
}

// List lista productos ordenados por nombre con paginación.
func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	all, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if offset >= len(all) {
		return []*entity.Product{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

// ListLowStock devuelve los productos con cantidad <= umbral de reorden.
func (r *ProductRepo) ListLowStock(ctx context.Context) ([]*entity.Product, error) {
	all, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Product, 0)
	for _, p := range all {
		if p.LowStockAlert() {
			out = append(out, p)
		}
	}
	return out, nil
}

// ListAll devuelve todos los productos ordenados por nombre y SKU.
func (r *ProductRepo) ListAll(_ context.Context) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.sc.with(func(d *data) error {
		out = make([]*entity.Product, 0, len(d.products))
		for _, p := range d.products {
			p := p
			out = append(out, &p)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].SKU < out[j].SKU
	})
	return out, err
}
