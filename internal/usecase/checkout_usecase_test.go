package usecase_test

import (
	"context"
	"sync"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =====================
// インメモリの偽ストア
// WithinTxがmutexで直列化し、fnがエラーを返したらスナップショットへ戻す
// （DBの行ロックとロールバックの代役）。
// =====================

type fakeStore struct {
	mu       sync.Mutex
	products map[int64]model.Product
	orders   map[int64]model.Order
	items    map[int64][]model.OrderItem
	nextID   int64
}

func newFakeStore(products ...model.Product) *fakeStore {
	s := &fakeStore{
		products: map[int64]model.Product{},
		orders:   map[int64]model.Order{},
		items:    map[int64][]model.OrderItem{},
	}
	for _, p := range products {
		s.products[p.ID] = p
	}
	return s
}

type storeSnapshot struct {
	products map[int64]model.Product
	orders   map[int64]model.Order
	items    map[int64][]model.OrderItem
	nextID   int64
}

func (s *fakeStore) snapshot() storeSnapshot {
	snap := storeSnapshot{
		products: map[int64]model.Product{},
		orders:   map[int64]model.Order{},
		items:    map[int64][]model.OrderItem{},
		nextID:   s.nextID,
	}
	for id, p := range s.products {
		snap.products[id] = p
	}
	for id, o := range s.orders {
		snap.orders[id] = o
	}
	for id, its := range s.items {
		snap.items[id] = append([]model.OrderItem{}, its...)
	}
	return snap
}

func (s *fakeStore) restore(snap storeSnapshot) {
	s.products = snap.products
	s.orders = snap.orders
	s.items = snap.items
	s.nextID = snap.nextID
}

type fakeTxManager struct {
	store *fakeStore
}

func (m *fakeTxManager) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	snap := m.store.snapshot()
	if err := fn(&fakeTxRepos{store: m.store}); err != nil {
		m.store.restore(snap)
		return err
	}
	return nil
}

// ロック中にだけ使うrepo群
type fakeTxRepos struct {
	store *fakeStore
}

func (r *fakeTxRepos) Orders() repo.OrderRepository { return &fakeOrderRepo{store: r.store} }
func (r *fakeTxRepos) OrderItems() repo.OrderItemRepository {
	return &fakeOrderItemRepo{store: r.store}
}
func (r *fakeTxRepos) Inventory() repo.InventoryRepository      { return &fakeInventoryRepo{store: r.store} }
func (r *fakeTxRepos) Products() repo.ProductRepository         { return &fakeProductRepo{store: r.store} }
func (r *fakeTxRepos) Transactions() repo.TransactionRepository { panic("not used in checkout tests") }

type fakeProductRepo struct{ store *fakeStore }

func (r *fakeProductRepo) FindByID(ctx context.Context, id int64) (model.Product, error) {
	p, ok := r.store.products[id]
	if !ok {
		return model.Product{}, repo.ErrNotFound
	}
	return p, nil
}

func (r *fakeProductRepo) ListAll(ctx context.Context) ([]model.Product, error) {
	panic("not used in checkout tests")
}
func (r *fakeProductRepo) ListLowStock(ctx context.Context, threshold int64) ([]model.Product, error) {
	panic("not used in checkout tests")
}
func (r *fakeProductRepo) Create(ctx context.Context, p model.Product) (model.Product, error) {
	panic("not used in checkout tests")
}
func (r *fakeProductRepo) Update(ctx context.Context, p model.Product) error {
	panic("not used in checkout tests")
}
func (r *fakeProductRepo) SoftDelete(ctx context.Context, id int64) error {
	panic("not used in checkout tests")
}

type fakeInventoryRepo struct{ store *fakeStore }

func (r *fakeInventoryRepo) Reserve(ctx context.Context, productID int64, qty int64) (bool, error) {
	p, ok := r.store.products[productID]
	if !ok || p.Quantity < qty {
		return false, nil
	}
	p.Quantity -= qty
	r.store.products[productID] = p
	return true, nil
}

func (r *fakeInventoryRepo) Release(ctx context.Context, productID int64, qty int64) error {
	p, ok := r.store.products[productID]
	if !ok {
		return repo.ErrNotFound
	}
	p.Quantity += qty
	r.store.products[productID] = p
	return nil
}

type fakeOrderRepo struct{ store *fakeStore }

func (r *fakeOrderRepo) Create(ctx context.Context, order model.Order) (int64, error) {
	r.store.nextID++
	order.ID = r.store.nextID
	r.store.orders[order.ID] = order
	return order.ID, nil
}

func (r *fakeOrderRepo) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	o, ok := r.store.orders[orderID]
	if !ok {
		return model.Order{}, repo.ErrNotFound
	}
	return o, nil
}

func (r *fakeOrderRepo) ListAll(ctx context.Context) ([]model.Order, error) {
	panic("not used in checkout tests")
}

type fakeOrderItemRepo struct{ store *fakeStore }

func (r *fakeOrderItemRepo) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	for i := range items {
		items[i].OrderID = orderID
	}
	r.store.items[orderID] = append(r.store.items[orderID], items...)
	return nil
}

func (r *fakeOrderItemRepo) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	return append([]model.OrderItem{}, r.store.items[orderID]...), nil
}

func (r *fakeOrderItemRepo) SumQuantityByProduct(ctx context.Context) (map[int64]int64, error) {
	panic("not used in checkout tests")
}

// =====================
// helpers
// =====================

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func strPtr(s string) *string {
	return &s
}

// 仕様書どおりのカート例:
// 2×50.00 + 1×30.00 = 130.00、学割13.00 → 117.00、支払120.00、釣り3.00
func validCheckoutInput() usecase.CheckoutInput {
	return usecase.CheckoutInput{
		Items: []usecase.CheckoutItemInput{
			{ProductID: 1, Quantity: 2, Price: dec("50.00")},
			{ProductID: 2, Quantity: 1, Price: dec("30.00")},
		},
		OriginalTotal:  dec("130.00"),
		DiscountType:   strPtr("student"),
		DiscountAmount: dec("13.00"),
		FinalAmount:    dec("117.00"),
		AmountPaid:     dec("120.00"),
		ChangeDue:      dec("3.00"),
	}
}

func storeWithTwoProducts() *fakeStore {
	return newFakeStore(
		model.Product{ID: 1, Name: "Coffee", SKU: "CF-001", Quantity: 10, Price: dec("50.00")},
		model.Product{ID: 2, Name: "Muffin", SKU: "MF-001", Quantity: 4, Price: dec("30.00")},
	)
}

// =====================
// Checkout
// =====================

func TestCheckoutUsecase_Checkout_Success(t *testing.T) {
	store := storeWithTwoProducts()
	uc := usecase.NewCheckoutUsecase(&fakeTxManager{store: store})

	out, err := uc.Checkout(context.Background(), validCheckoutInput())
	require.NoError(t, err)

	//注文が合計をそのまま保持している
	assert.NotZero(t, out.ID)
	assert.NotEmpty(t, out.OrderNumber)
	assert.True(t, out.OriginalTotal.Equal(dec("130.00")))
	assert.True(t, out.FinalAmount.Equal(dec("117.00")))
	assert.True(t, out.ChangeDue.Equal(dec("3.00")))

	//明細スナップショット
	require.Len(t, out.Items, 2)
	assert.Equal(t, "Coffee", out.Items[0].ProductName)
	assert.Equal(t, int64(2), out.Items[0].Quantity)
	assert.True(t, out.Items[0].Price.Equal(dec("50.00")))
	assert.Equal(t, "Muffin", out.Items[1].ProductName)

	//在庫が明細どおり減っている
	assert.Equal(t, int64(8), store.products[1].Quantity)
	assert.Equal(t, int64(3), store.products[2].Quantity)

	//永続化されている
	assert.Len(t, store.orders, 1)
	assert.Len(t, store.items[out.ID], 2)
}

func TestCheckoutUsecase_Checkout_ValidationEmptyItems(t *testing.T) {
	store := storeWithTwoProducts()
	uc := usecase.NewCheckoutUsecase(&fakeTxManager{store: store})

	in := validCheckoutInput()
	in.Items = nil

	_, err := uc.Checkout(context.Background(), in)
	ve, ok := usecase.AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "items")

	//書き込みなし
	assert.Empty(t, store.orders)
	assert.Equal(t, int64(10), store.products[1].Quantity)
}

func TestCheckoutUsecase_Checkout_ValidationFieldErrors(t *testing.T) {
	store := storeWithTwoProducts()
	uc := usecase.NewCheckoutUsecase(&fakeTxManager{store: store})

	in := validCheckoutInput()
	in.Items[0].Quantity = 0
	in.Items[1].Price = dec("-1")
	in.AmountPaid = dec("-5")

	_, err := uc.Checkout(context.Background(), in)
	ve, ok := usecase.AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "items.0.quantity")
	assert.Contains(t, ve.Fields, "items.1.price")
	assert.Contains(t, ve.Fields, "amount_paid")
}

func TestCheckoutUsecase_Checkout_RejectsMismatchedTotals(t *testing.T) {
	store := storeWithTwoProducts()
	uc := usecase.NewCheckoutUsecase(&fakeTxManager{store: store})

	//合計はクライアント申告を信用しない
	in := validCheckoutInput()
	in.OriginalTotal = dec("999.00")
	in.FinalAmount = dec("986.00")
	in.ChangeDue = dec("0.00")
	in.AmountPaid = dec("986.00")

	_, err := uc.Checkout(context.Background(), in)
	ve, ok := usecase.AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "original_total")
	assert.Empty(t, store.orders)
}

func TestCheckoutUsecase_Checkout_RejectsBrokenDiscountArithmetic(t *testing.T) {
	store := storeWithTwoProducts()
	uc := usecase.NewCheckoutUsecase(&fakeTxManager{store: store})

	in := validCheckoutInput()
	in.FinalAmount = dec("120.00") //130 - 13 != 120

	_, err := uc.Checkout(context.Background(), in)
	ve, ok := usecase.AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "final_amount")
}

func TestCheckoutUsecase_Checkout_ProductNotFound(t *testing.T) {
	store := storeWithTwoProducts()
	uc := usecase.NewCheckoutUsecase(&fakeTxManager{store: store})

	in := usecase.CheckoutInput{
		Items:          []usecase.CheckoutItemInput{{ProductID: 99, Quantity: 1, Price: dec("10.00")}},
		OriginalTotal:  dec("10.00"),
		DiscountAmount: dec("0"),
		FinalAmount:    dec("10.00"),
		AmountPaid:     dec("10.00"),
		ChangeDue:      dec("0"),
	}

	_, err := uc.Checkout(context.Background(), in)
	ve, ok := usecase.AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "items.0.product_id")
	assert.Empty(t, store.orders)
}

func TestCheckoutUsecase_Checkout_InsufficientStockRollsBackWholeCart(t *testing.T) {
	store := storeWithTwoProducts()
	uc := usecase.NewCheckoutUsecase(&fakeTxManager{store: store})

	//1品目は足りる（在庫10に対して2）、2品目で不足（在庫4に対して5）
	in := usecase.CheckoutInput{
		Items: []usecase.CheckoutItemInput{
			{ProductID: 1, Quantity: 2, Price: dec("50.00")},
			{ProductID: 2, Quantity: 5, Price: dec("30.00")},
		},
		OriginalTotal:  dec("250.00"),
		DiscountAmount: dec("0"),
		FinalAmount:    dec("250.00"),
		AmountPaid:     dec("250.00"),
		ChangeDue:      dec("0"),
	}

	_, err := uc.Checkout(context.Background(), in)
	ie, ok := usecase.AsInsufficientStockError(err)
	require.True(t, ok)
	assert.Equal(t, int64(2), ie.ProductID)
	assert.Equal(t, "Muffin", ie.ProductName)
	assert.Equal(t, int64(5), ie.Requested)
	assert.Equal(t, int64(4), ie.Available)

	//先に減った1品目の在庫も含めて全て巻き戻る
	assert.Equal(t, int64(10), store.products[1].Quantity)
	assert.Equal(t, int64(4), store.products[2].Quantity)
	assert.Empty(t, store.orders)
	assert.Empty(t, store.items)
}

// 在庫5の商品へ同時に3個ずつ → 成功はちょうど1件、最終在庫2
func TestCheckoutUsecase_Checkout_ConcurrentCheckoutsNeverOversell(t *testing.T) {
	store := newFakeStore(
		model.Product{ID: 1, Name: "Coffee", SKU: "CF-001", Quantity: 5, Price: dec("50.00")},
	)
	uc := usecase.NewCheckoutUsecase(&fakeTxManager{store: store})

	in := usecase.CheckoutInput{
		Items:          []usecase.CheckoutItemInput{{ProductID: 1, Quantity: 3, Price: dec("50.00")}},
		OriginalTotal:  dec("150.00"),
		DiscountAmount: dec("0"),
		FinalAmount:    dec("150.00"),
		AmountPaid:     dec("150.00"),
		ChangeDue:      dec("0"),
	}

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = uc.Checkout(context.Background(), in)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	insufficient := 0
	for _, err := range results {
		if err == nil {
			succeeded++
			continue
		}
		if _, ok := usecase.AsInsufficientStockError(err); ok {
			insufficient++
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, insufficient)
	assert.Equal(t, int64(2), store.products[1].Quantity)
}

// 会計後に読み直しても合計と明細スナップショットは同じ
func TestCheckoutUsecase_Checkout_OrderGraphSurvivesProductChanges(t *testing.T) {
	store := storeWithTwoProducts()
	uc := usecase.NewCheckoutUsecase(&fakeTxManager{store: store})

	out, err := uc.Checkout(context.Background(), validCheckoutInput())
	require.NoError(t, err)

	//商品側を後から改名しても明細は売った時の名前のまま
	p := store.products[1]
	p.Name = "Renamed"
	store.products[1] = p

	saved := store.orders[out.ID]
	assert.True(t, saved.FinalAmount.Equal(dec("117.00")))
	items := store.items[out.ID]
	require.Len(t, items, 2)
	assert.Equal(t, "Coffee", items[0].ProductName)
	assert.True(t, items[0].Price.Equal(dec("50.00")))
}
