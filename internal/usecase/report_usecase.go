package usecase

import (
	"context"
	"net/http"

	repo "app/internal/repository"
)

type ReportUsecase struct {
	productRepo   repo.ProductRepository
	orderItemRepo repo.OrderItemRepository
}

func NewReportUsecase(productRepo repo.ProductRepository, orderItemRepo repo.OrderItemRepository) *ReportUsecase {
	return &ReportUsecase{productRepo: productRepo, orderItemRepo: orderItemRepo}
}

type ProductStockRow struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Quantity       int64  `json:"quantity"`
	TotalPurchased int64  `json:"total_purchased"`
}

// グラフ描画用に配列も並べて返す（フロントの契約に合わせる）
type ProductStockReport struct {
	Labels     []string          `json:"labels"`
	Quantities []int64           `json:"quantities"`
	Purchased  []int64           `json:"purchased"`
	Products   []ProductStockRow `json:"products"`
}

// 商品ごとの在庫と累計販売数
func (u *ReportUsecase) ProductStock(ctx context.Context) (ProductStockReport, error) {
	products, err := u.productRepo.ListAll(ctx)
	if err != nil {
		return ProductStockReport{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	sums, err := u.orderItemRepo.SumQuantityByProduct(ctx)
	if err != nil {
		return ProductStockReport{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	report := ProductStockReport{
		Labels:     make([]string, 0, len(products)),
		Quantities: make([]int64, 0, len(products)),
		Purchased:  make([]int64, 0, len(products)),
		Products:   make([]ProductStockRow, 0, len(products)),
	}
	for _, p := range products {
		purchased := sums[p.ID]
		report.Labels = append(report.Labels, p.Name)
		report.Quantities = append(report.Quantities, p.Quantity)
		report.Purchased = append(report.Purchased, purchased)
		report.Products = append(report.Products, ProductStockRow{
			ID:             p.ID,
			Name:           p.Name,
			Quantity:       p.Quantity,
			TotalPurchased: purchased,
		})
	}

	return report, nil
}
