package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warehouse_backend/internal/feature/stock/domain"
	"warehouse_backend/internal/feature/stock/domain/entity"
	"warehouse_backend/internal/feature/stock/usecase"
	"warehouse_backend/internal/platform/lock"
)

// ErrDB はモックと期待値の間で共有されるセンチネルエラーです。
var ErrDB = errors.New("database error")

// fakeStockRepository is an in-memory StockRepository. Each transaction works
// on copies of the rows it touches and writes them back on commit, so it
// loses updates exactly like a real database would without serialisation.
type fakeStockRepository struct {
	mu      sync.Mutex
	items   map[entity.ItemKey]entity.StockItem
	history []entity.HistoryEntry
	nextID  uint

	// AppendErr, when set, makes every history append fail.
	AppendErr error
}

func newFakeStockRepository() *fakeStockRepository {
	return &fakeStockRepository{items: map[entity.ItemKey]entity.StockItem{}}
}

func (r *fakeStockRepository) ListItems(ctx context.Context) ([]entity.StockItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.StockItem, 0, len(r.items))
	for _, it := range r.items {
		out = append(out, it)
	}
	return out, nil
}

func (r *fakeStockRepository) ListHistory(ctx context.Context) ([]entity.HistoryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entity.HistoryEntry(nil), r.history...), nil
}

func (r *fakeStockRepository) RunInTx(ctx context.Context, fn func(usecase.ItemLedger, usecase.HistoryLog) error) error {
	tx := &fakeTx{repo: r, items: map[entity.ItemKey]entity.StockItem{}}
	if err := fn(tx, tx); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, it := range tx.items {
		r.items[k] = it
	}
	for _, e := range tx.history {
		r.nextID++
		e.ID = r.nextID
		r.history = append(r.history, e)
	}
	return nil
}

type fakeTx struct {
	repo    *fakeStockRepository
	items   map[entity.ItemKey]entity.StockItem
	history []entity.HistoryEntry
}

func (t *fakeTx) FindItem(ctx context.Context, key entity.ItemKey) (*entity.StockItem, error) {
	if it, ok := t.items[key]; ok {
		return &it, nil
	}
	t.repo.mu.Lock()
	it, ok := t.repo.items[key]
	t.repo.mu.Unlock()
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	return &it, nil
}

func (t *fakeTx) CreateItem(ctx context.Context, item *entity.StockItem) error {
	if err := item.Validate(); err != nil {
		return err
	}
	t.items[item.Key()] = *item
	return nil
}

func (t *fakeTx) IncreaseQuantity(ctx context.Context, item *entity.StockItem, delta int) error {
	if err := item.Increase(delta); err != nil {
		return err
	}
	t.items[item.Key()] = *item
	return nil
}

func (t *fakeTx) DecreaseQuantity(ctx context.Context, item *entity.StockItem, delta int) error {
	if err := item.Decrease(delta); err != nil {
		return err
	}
	t.items[item.Key()] = *item
	return nil
}

func (t *fakeTx) Append(ctx context.Context, entry *entity.HistoryEntry) error {
	if t.repo.AppendErr != nil {
		return t.repo.AppendErr
	}
	t.history = append(t.history, *entry)
	return nil
}

func (r *fakeStockRepository) quantity(t *testing.T, item, company string) int {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[entity.ItemKey{ItemName: item, CompanyName: company}]
	require.True(t, ok, "item %s/%s should exist", company, item)
	return it.Quantity
}

// failingLocker always fails to acquire.
type failingLocker struct{}

func (failingLocker) Lock(ctx context.Context, key string) (func(), error) {
	return nil, ErrDB
}

func movement(party, item, company string, qty int) entity.Movement {
	return entity.Movement{
		PartyName:         party,
		Address:           "1 Harbour Rd",
		ContactNumber:     "555-0100",
		CompanyName:       company,
		ItemName:          item,
		Quantity:          qty,
		UnitOfMeasurement: "pcs",
		Date:              "2024-05-01",
		Timestamp:         "2024-05-01T09:00:00Z",
	}
}

func newUsecase() (*usecase.StockUsecase, *fakeStockRepository) {
	repo := newFakeStockRepository()
	return usecase.NewStockUsecase(repo, lock.NewLocalLocker()), repo
}

// TestStockUsecase_Scenario は入庫の累積・出庫・在庫不足拒否の一連の流れを検証します。
func TestStockUsecase_Scenario(t *testing.T) {
	ctx := context.Background()
	uc, repo := newUsecase()

	_, err := uc.StockIn(ctx, movement("Supplier A", "Bolt", "Acme", 10))
	require.NoError(t, err)
	_, err = uc.StockIn(ctx, movement("Supplier A", "Bolt", "Acme", 5))
	require.NoError(t, err)

	items, err := uc.ListStockItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 15, items[0].Quantity)

	history, err := uc.ListHistory(ctx)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, entity.TransactionStockIn, history[0].TransactionType)
	assert.Equal(t, entity.TransactionStockIn, history[1].TransactionType)

	entry, err := uc.StockOut(ctx, movement("Customer B", "Bolt", "Acme", 12))
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionStockOut, entry.TransactionType)
	assert.Equal(t, "Customer B", entry.Name)
	assert.NotEmpty(t, entry.Reference)
	assert.Equal(t, 3, repo.quantity(t, "Bolt", "Acme"))

	_, err = uc.StockOut(ctx, movement("Customer B", "Bolt", "Acme", 10))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 3, repo.quantity(t, "Bolt", "Acme"))

	history, err = uc.ListHistory(ctx)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, entity.TransactionStockOut, history[2].TransactionType)
}

// TestStockUsecase_StockIn はStockInの新規作成・累積・バリデーションを検証します。
func TestStockUsecase_StockIn(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		seed        []entity.Movement
		in          entity.Movement
		expectedQty int
		expectedErr error
	}{
		{
			name:        "success: creates item when absent",
			in:          movement("Supplier A", "Nut", "Acme", 7),
			expectedQty: 7,
		},
		{
			name:        "success: accumulates into existing item",
			seed:        []entity.Movement{movement("Supplier A", "Nut", "Acme", 7)},
			in:          movement("Supplier Z", "Nut", "Acme", 3),
			expectedQty: 10,
		},
		{
			name:        "failure: zero quantity",
			in:          movement("Supplier A", "Nut", "Acme", 0),
			expectedErr: domain.ErrValidation,
		},
		{
			name:        "failure: negative quantity",
			in:          movement("Supplier A", "Nut", "Acme", -4),
			expectedErr: domain.ErrValidation,
		},
		{
			name:        "failure: empty supplier",
			in:          movement("", "Nut", "Acme", 4),
			expectedErr: domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			uc, repo := newUsecase()
			for _, m := range tt.seed {
				_, err := uc.StockIn(ctx, m)
				require.NoError(t, err)
			}

			entry, err := uc.StockIn(ctx, tt.in)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, entry)
				history, _ := uc.ListHistory(ctx)
				assert.Len(t, history, len(tt.seed), "a rejected movement must not be logged")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedQty, repo.quantity(t, tt.in.ItemName, tt.in.CompanyName))
			assert.Equal(t, entity.TransactionStockIn, entry.TransactionType)
			assert.Equal(t, tt.in.PartyName, entry.Name)
		})
	}
}

// TestStockUsecase_StockOut は出庫の成功・未登録品目・在庫不足を検証します。
func TestStockUsecase_StockOut(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		out         entity.Movement
		expectedQty int
		expectedErr error
	}{
		{
			name:        "success: exact quantity empties the item",
			out:         movement("Customer", "Bolt", "Acme", 10),
			expectedQty: 0,
		},
		{
			name:        "success: partial dispatch",
			out:         movement("Customer", "Bolt", "Acme", 4),
			expectedQty: 6,
		},
		{
			name:        "failure: more than on hand",
			out:         movement("Customer", "Bolt", "Acme", 11),
			expectedQty: 10,
			expectedErr: domain.ErrInsufficientStock,
		},
		{
			name:        "failure: unknown company for known item",
			out:         movement("Customer", "Bolt", "Globex", 1),
			expectedQty: 10,
			expectedErr: domain.ErrItemNotFound,
		},
		{
			name:        "failure: zero quantity",
			out:         movement("Customer", "Bolt", "Acme", 0),
			expectedQty: 10,
			expectedErr: domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			uc, repo := newUsecase()
			_, err := uc.StockIn(ctx, movement("Supplier", "Bolt", "Acme", 10))
			require.NoError(t, err)

			entry, err := uc.StockOut(ctx, tt.out)

			assert.Equal(t, tt.expectedQty, repo.quantity(t, "Bolt", "Acme"))
			history, _ := uc.ListHistory(ctx)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, entry)
				assert.Len(t, history, 1)
				return
			}
			require.NoError(t, err)
			require.Len(t, history, 2)
			assert.Equal(t, entity.TransactionStockOut, history[1].TransactionType)
			assert.Equal(t, "Customer", history[1].Name)
		})
	}
}

// TestStockUsecase_StockOut_NeverCreates は未登録品目への出庫が品目を作成しないことを検証します。
func TestStockUsecase_StockOut_NeverCreates(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	uc, _ := newUsecase()

	_, err := uc.StockOut(ctx, movement("Customer", "Ghost", "Acme", 1))
	assert.ErrorIs(t, err, domain.ErrItemNotFound)

	items, err := uc.ListStockItems(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

// TestStockUsecase_HistoryFailureRollsBack は履歴追加失敗時に在庫数が変化しないことを検証します。
func TestStockUsecase_HistoryFailureRollsBack(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	uc, repo := newUsecase()
	_, err := uc.StockIn(ctx, movement("Supplier", "Bolt", "Acme", 10))
	require.NoError(t, err)

	repo.AppendErr = fmt.Errorf("%w: disk full", domain.ErrStorage)

	_, err = uc.StockIn(ctx, movement("Supplier", "Bolt", "Acme", 5))
	assert.ErrorIs(t, err, domain.ErrStorage)
	_, err = uc.StockOut(ctx, movement("Customer", "Bolt", "Acme", 5))
	assert.ErrorIs(t, err, domain.ErrStorage)

	assert.Equal(t, 10, repo.quantity(t, "Bolt", "Acme"))
}

// TestStockUsecase_LockFailure はロック取得失敗がErrStorageとして返されることを検証します。
func TestStockUsecase_LockFailure(t *testing.T) {
	t.Parallel()

	repo := newFakeStockRepository()
	uc := usecase.NewStockUsecase(repo, failingLocker{})

	_, err := uc.StockIn(context.Background(), movement("Supplier", "Bolt", "Acme", 1))
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.ErrorIs(t, err, ErrDB)

	items, _ := repo.ListItems(context.Background())
	assert.Empty(t, items)
}

// TestStockUsecase_AccumulationRoundTrip はN回の入庫後に1行のみが存在し合計数量になることを検証します。
func TestStockUsecase_AccumulationRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	uc, _ := newUsecase()

	quantities := []int{1, 2, 3, 4, 5, 6}
	sum := 0
	for _, q := range quantities {
		sum += q
		_, err := uc.StockIn(ctx, movement("Supplier", "Washer", "Acme", q))
		require.NoError(t, err)
	}

	items, err := uc.ListStockItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, sum, items[0].Quantity)
}

// TestStockUsecase_ConcurrentStockOut は同一キーへの並行出庫が過剰出庫しないことを検証します。
func TestStockUsecase_ConcurrentStockOut(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	uc, repo := newUsecase()
	_, err := uc.StockIn(ctx, movement("Supplier", "Bolt", "Acme", 50))
	require.NoError(t, err)
	_, err = uc.StockIn(ctx, movement("Supplier", "Nut", "Acme", 50))
	require.NoError(t, err)

	const workers = 40
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded = map[string]int{}
	)
	for i := 0; i < workers; i++ {
		item := "Bolt"
		if i%2 == 1 {
			item = "Nut"
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.StockOut(ctx, movement("Customer", item, "Acme", 3))
			if err == nil {
				mu.Lock()
				succeeded[item]++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, domain.ErrInsufficientStock)
		}()
	}
	wg.Wait()

	// 20 requests of 3 against 50 on hand: 16 succeed, 4 are rejected.
	for _, item := range []string{"Bolt", "Nut"} {
		assert.Equal(t, 16, succeeded[item], item)
		assert.Equal(t, 50-3*succeeded[item], repo.quantity(t, item, "Acme"), item)
	}
	history, err := uc.ListHistory(ctx)
	require.NoError(t, err)
	assert.Len(t, history, 2+32)
}
