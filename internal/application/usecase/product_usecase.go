package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/octavian/nexus-inventory/internal/application/dto"
	"github.com/octavian/nexus-inventory/internal/domain"
	"github.com/octavian/nexus-inventory/internal/domain/entity"
	"github.com/octavian/nexus-inventory/internal/domain/repository"
)

// ProductUseCase casos de uso del catálogo. La cantidad solo cambia vía movimientos del libro.
type ProductUseCase struct {
	repo repository.ProductRepository
	now  func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, now: time.Now}
}

// Create crea un producto. Quantity es el stock inicial y queda fijado como InitialQuantity.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	sku := strings.TrimSpace(in.SKU)
	name := strings.TrimSpace(in.Name)
	if sku == "" || name == "" {
		return nil, fmt.Errorf("%w: sku y name son obligatorios", domain.ErrInvalidInput)
	}
	if in.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price no puede ser negativo", domain.ErrInvalidInput)
	}
	if in.Quantity < 0 || in.Quantity > entity.MaxQuantity {
		return nil, fmt.Errorf("%w: quantity fuera de rango [0, %d]", domain.ErrInvalidInput, entity.MaxQuantity)
	}
	threshold := entity.DefaultReorderThreshold
	if in.ReorderThreshold != nil {
		if *in.ReorderThreshold < 0 || *in.ReorderThreshold > entity.MaxQuantity {
			return nil, fmt.Errorf("%w: reorder_threshold fuera de rango", domain.ErrInvalidInput)
		}
		threshold = *in.ReorderThreshold
	}

	existing, err := uc.repo.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateSKU
	}

	now := uc.now().UTC()
	product := &entity.Product{
		ID:               uuid.New().String(),
		SKU:              sku,
		Name:             name,
		Category:         strings.TrimSpace(in.Category),
		Description:      strings.TrimSpace(in.Description),
		Price:            in.Price,
		Quantity:         in.Quantity,
		ReorderThreshold: threshold,
		InitialQuantity:  in.Quantity,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	// el repositorio traduce la violación de unicidad a ErrDuplicateSKU (carrera entre altas)
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return dto.FromProduct(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.FromProduct(product), nil
}

// Update sobrescribe los datos descriptivos. SKU y cantidad no se modifican.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name no puede quedar vacío", domain.ErrInvalidInput)
		}
		product.Name = name
	}
	if in.Category != nil {
		product.Category = strings.TrimSpace(*in.Category)
	}
	if in.Description != nil {
		product.Description = strings.TrimSpace(*in.Description)
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, fmt.Errorf("%w: price no puede ser negativo", domain.ErrInvalidInput)
		}
		product.Price = *in.Price
	}
	if in.ReorderThreshold != nil {
		if *in.ReorderThreshold < 0 || *in.ReorderThreshold > entity.MaxQuantity {
			return nil, fmt.Errorf("%w: reorder_threshold fuera de rango", domain.ErrInvalidInput)
		}
		product.ReorderThreshold = *in.ReorderThreshold
	}
	product.UpdatedAt = uc.now().UTC()
	if err := uc.repo.UpdateDetails(ctx, product); err != nil {
		return nil, err
	}
	// releer: la cantidad pudo cambiar por un movimiento concurrente
	return uc.GetByID(ctx, id)
}

// List lista productos ordenados por nombre con paginación.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return &dto.ProductListResponse{
		Items: toProductResponses(list),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// ListLowStock lista los productos con cantidad <= umbral de reorden.
func (uc *ProductUseCase) ListLowStock(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.repo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	return toProductResponses(list), nil
}

func (uc *ProductUseCase) load(ctx context.Context, id string) (*entity.Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrNotFound
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

func toProductResponses(list []*entity.Product) []dto.ProductResponse {
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *dto.FromProduct(p))
	}
	return items
}
