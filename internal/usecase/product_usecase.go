package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

type ProductUsecase struct {
	productRepo  repo.ProductRepository
	categoryRepo repo.CategoryRepository
}

// DI
func NewProductUsecase(productRepo repo.ProductRepository, categoryRepo repo.CategoryRepository) *ProductUsecase {
	return &ProductUsecase{productRepo: productRepo, categoryRepo: categoryRepo}
}

type ProductInput struct {
	Name         string          `json:"name"`
	SKU          string          `json:"sku"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int64           `json:"quantity"`
	ReorderLevel int64           `json:"reorder_level"`
	CategoryID   int64           `json:"category_id"`
}

// 商品入力の検証（フィールドごとにエラーを集める）
func (u *ProductUsecase) validateProductInput(ctx context.Context, in ProductInput) map[string]string {
	fields := map[string]string{}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		fields["name"] = "required"
	} else if len(name) > 15 {
		fields["name"] = "must be at most 15 characters"
	}

	sku := strings.TrimSpace(in.SKU)
	if sku == "" {
		fields["sku"] = "required"
	} else if len(sku) > 100 {
		fields["sku"] = "must be at most 100 characters"
	}

	if in.Price.IsNegative() {
		fields["price"] = "must be >= 0"
	}
	if in.Quantity < 0 {
		fields["quantity"] = "must be >= 0"
	}
	if in.ReorderLevel < 0 {
		fields["reorder_level"] = "must be >= 0"
	}

	if in.CategoryID <= 0 {
		fields["category_id"] = "required"
	} else {
		_, err := u.categoryRepo.FindByID(ctx, in.CategoryID)
		if errors.Is(err, repo.ErrNotFound) {
			fields["category_id"] = "category not found"
		}
	}

	return fields
}

func (u *ProductUsecase) CreateProduct(ctx context.Context, in ProductInput) (model.Product, error) {
	if fields := u.validateProductInput(ctx, in); len(fields) > 0 {
		return model.Product{}, NewValidationError(fields)
	}

	created, err := u.productRepo.Create(ctx, model.Product{
		CategoryID:   in.CategoryID,
		Name:         strings.TrimSpace(in.Name),
		SKU:          strings.TrimSpace(in.SKU),
		Description:  in.Description,
		Price:        in.Price,
		Quantity:     in.Quantity,
		ReorderLevel: in.ReorderLevel,
	})
	if errors.Is(err, repo.ErrDuplicate) {
		return model.Product{}, NewValidationError(map[string]string{"sku": "already in use"})
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

// 在庫quantityは更新対象外（在庫はInventory経由でのみ動かす）
func (u *ProductUsecase) UpdateProduct(ctx context.Context, productID int64, in ProductInput) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if fields := u.validateProductInput(ctx, in); len(fields) > 0 {
		return model.Product{}, NewValidationError(fields)
	}

	err := u.productRepo.Update(ctx, model.Product{
		ID:           productID,
		CategoryID:   in.CategoryID,
		Name:         strings.TrimSpace(in.Name),
		SKU:          strings.TrimSpace(in.SKU),
		Description:  in.Description,
		Price:        in.Price,
		ReorderLevel: in.ReorderLevel,
	})
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if errors.Is(err, repo.ErrDuplicate) {
		return model.Product{}, NewValidationError(map[string]string{"sku": "already in use"})
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	updated, err := u.productRepo.FindByID(ctx, productID)
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return updated, nil
}

func (u *ProductUsecase) DeleteProduct(ctx context.Context, productID int64) error {
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	err := u.productRepo.SoftDelete(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *ProductUsecase) ListProducts(ctx context.Context) ([]model.Product, error) {
	products, err := u.productRepo.ListAll(ctx)
	if err != nil {
		return []model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return products, nil
}

func (u *ProductUsecase) ListLowStockProducts(ctx context.Context, threshold int64) ([]model.Product, error) {
	if threshold < 0 {
		return []model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid threshold")
	}
	products, err := u.productRepo.ListLowStock(ctx, threshold)
	if err != nil {
		return []model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return products, nil
}
