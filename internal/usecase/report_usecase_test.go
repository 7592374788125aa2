package usecase_test

import (
	"context"
	"testing"

	"app/internal/domain/model"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReportUsecase_ProductStock_ShapesArrays(t *testing.T) {
	pRepo := new(ProdProductRepoMock)
	iRepo := new(OrderItemRepoMock)
	uc := usecase.NewReportUsecase(pRepo, iRepo)

	pRepo.On("ListAll", mock.Anything).Return([]model.Product{
		{ID: 1, Name: "Coffee", Quantity: 8},
		{ID: 2, Name: "Muffin", Quantity: 3},
	}, nil)
	iRepo.On("SumQuantityByProduct", mock.Anything).Return(map[int64]int64{1: 12}, nil)

	out, err := uc.ProductStock(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Coffee", "Muffin"}, out.Labels)
	assert.Equal(t, []int64{8, 3}, out.Quantities)
	//注文実績のない商品は0
	assert.Equal(t, []int64{12, 0}, out.Purchased)
	require.Len(t, out.Products, 2)
	assert.Equal(t, int64(12), out.Products[0].TotalPurchased)
}
