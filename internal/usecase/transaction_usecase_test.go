package usecase_test

import (
	"context"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =====================
// Mocks（衝突回避の命名）
// =====================

type TxOrderRepoMock struct{ mock.Mock }

func (m *TxOrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *TxOrderRepoMock) ListAll(ctx context.Context) ([]model.Order, error) {
	panic("not used in TransactionUsecase tests")
}

func (m *TxOrderRepoMock) Create(ctx context.Context, order model.Order) (int64, error) {
	panic("not used in TransactionUsecase tests")
}

type TxTransactionRepoMock struct{ mock.Mock }

func (m *TxTransactionRepoMock) Create(ctx context.Context, tx model.Transaction) (model.Transaction, error) {
	args := m.Called(ctx, tx)
	created, _ := args.Get(0).(model.Transaction)
	return created, args.Error(1)
}

func (m *TxTransactionRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.Transaction, error) {
	panic("not used in TransactionUsecase tests")
}

// =====================
// ApplyDiscount
// =====================

// senior 20%: original 80 → 割引16、合計64、支払100で釣り36
func TestTransactionUsecase_ApplyDiscount_SeniorExample(t *testing.T) {
	ctx := context.Background()

	oRepo := new(TxOrderRepoMock)
	tRepo := new(TxTransactionRepoMock)
	uc := usecase.NewTransactionUsecase(oRepo, tRepo)

	oRepo.On("FindByID", mock.Anything, int64(1)).
		Return(model.Order{ID: 1, OriginalTotal: dec("80.00")}, nil)
	tRepo.On("Create", mock.Anything, mock.MatchedBy(func(tx model.Transaction) bool {
		return tx.OrderID == 1 &&
			tx.DiscountType == model.DiscountTypeSenior &&
			tx.DiscountAmount.Equal(dec("16.00")) &&
			tx.TotalAmount.Equal(dec("64.00")) &&
			tx.ChangeDue.Equal(dec("36.00"))
	})).Return(model.Transaction{ID: 10, OrderID: 1}, nil)

	out, err := uc.ApplyDiscount(ctx, usecase.ApplyDiscountInput{
		OrderID:      1,
		DiscountType: "senior",
		AmountPaid:   dec("100.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10), out.ID)

	oRepo.AssertExpectations(t)
	tRepo.AssertExpectations(t)
}

func TestTransactionUsecase_ApplyDiscount_NoneKeepsTotal(t *testing.T) {
	ctx := context.Background()

	oRepo := new(TxOrderRepoMock)
	tRepo := new(TxTransactionRepoMock)
	uc := usecase.NewTransactionUsecase(oRepo, tRepo)

	oRepo.On("FindByID", mock.Anything, int64(2)).
		Return(model.Order{ID: 2, OriginalTotal: dec("50.00")}, nil)
	tRepo.On("Create", mock.Anything, mock.MatchedBy(func(tx model.Transaction) bool {
		return tx.DiscountAmount.Equal(dec("0")) && tx.TotalAmount.Equal(dec("50.00"))
	})).Return(model.Transaction{ID: 11}, nil)

	_, err := uc.ApplyDiscount(ctx, usecase.ApplyDiscountInput{
		OrderID:      2,
		DiscountType: "none",
		AmountPaid:   dec("50.00"),
	})
	require.NoError(t, err)
}

// 支払不足はこの経路では拒否しない（釣りが負になる）
func TestTransactionUsecase_ApplyDiscount_UnderpaymentAllowed(t *testing.T) {
	ctx := context.Background()

	oRepo := new(TxOrderRepoMock)
	tRepo := new(TxTransactionRepoMock)
	uc := usecase.NewTransactionUsecase(oRepo, tRepo)

	oRepo.On("FindByID", mock.Anything, int64(3)).
		Return(model.Order{ID: 3, OriginalTotal: dec("100.00")}, nil)
	tRepo.On("Create", mock.Anything, mock.MatchedBy(func(tx model.Transaction) bool {
		//pwd 25%: 合計75、支払50 → 釣り-25
		return tx.TotalAmount.Equal(dec("75.00")) && tx.ChangeDue.Equal(dec("-25.00"))
	})).Return(model.Transaction{ID: 12}, nil)

	_, err := uc.ApplyDiscount(ctx, usecase.ApplyDiscountInput{
		OrderID:      3,
		DiscountType: "pwd",
		AmountPaid:   dec("50.00"),
	})
	require.NoError(t, err)
}

func TestTransactionUsecase_ApplyDiscount_UnknownTypeRejected(t *testing.T) {
	uc := usecase.NewTransactionUsecase(new(TxOrderRepoMock), new(TxTransactionRepoMock))

	_, err := uc.ApplyDiscount(context.Background(), usecase.ApplyDiscountInput{
		OrderID:      1,
		DiscountType: "vip",
		AmountPaid:   dec("10.00"),
	})
	ve, ok := usecase.AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "discount_type")
}

func TestTransactionUsecase_ApplyDiscount_OrderNotFound(t *testing.T) {
	oRepo := new(TxOrderRepoMock)
	uc := usecase.NewTransactionUsecase(oRepo, new(TxTransactionRepoMock))

	oRepo.On("FindByID", mock.Anything, int64(99)).Return(model.Order{}, repo.ErrNotFound)

	_, err := uc.ApplyDiscount(context.Background(), usecase.ApplyDiscountInput{
		OrderID:      99,
		DiscountType: "student",
		AmountPaid:   dec("10.00"),
	})
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, 404, he.Status)
}
