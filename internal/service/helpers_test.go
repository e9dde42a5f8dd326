package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/yery-max/Proyecto-final/internal/dto"
	"github.com/yery-max/Proyecto-final/internal/infra"
	"github.com/yery-max/Proyecto-final/internal/model"
	"github.com/yery-max/Proyecto-final/internal/repository"
	"github.com/yery-max/Proyecto-final/internal/store"
)

// ── Test doubles ──────────────────────────────────────────────────────────────

type flakyRepo struct {
	*repository.MemoryStore
	failSave bool
}

func newFlakyRepo() *flakyRepo { return &flakyRepo{MemoryStore: repository.NewMemoryStore()} }

func (r *flakyRepo) Save(ctx context.Context, docs repository.Documents) error {
	if r.failSave {
		return &repository.PersistenceError{Op: "save", Document: "test", Err: errors.New("disk full")}
	}
	return r.MemoryStore.Save(ctx, docs)
}

type recordingEnqueuer struct {
	mu  sync.Mutex
	ids []string
}

func (e *recordingEnqueuer) EnqueueReceipt(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ids = append(e.ids, id)
	return nil
}

// emptyCatalog registers a branch so Load does not bootstrap sample data.
type emptyCatalog struct{ branches []string }

func (b emptyCatalog) Bootstrap(_ context.Context, tx *store.Tx) error {
	for _, name := range b.branches {
		tx.RegisterBranch(name)
	}
	return nil
}

// ── Environment ───────────────────────────────────────────────────────────────

var testNow = time.Date(2024, 6, 14, 15, 30, 0, 0, time.Local)

type testEnv struct {
	repo     *flakyRepo
	store    *store.Store
	svcs     *Services
	receipts *recordingEnqueuer
	dir      string
}

type envOption func(*SaleOptions)

func withReload() envOption { return func(o *SaleOptions) { o.ReloadOnFailure = true } }

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()
	env := &testEnv{repo: newFlakyRepo(), receipts: &recordingEnqueuer{}, dir: t.TempDir()}
	env.store = store.New(env.repo, store.Options{
		Config:    model.Config{LowStockThreshold: 2},
		Bootstrap: emptyCatalog{branches: []string{"A"}},
		Now:       func() time.Time { return testNow },
	})
	require.NoError(t, env.store.Load(context.Background()))

	saleOpts := SaleOptions{Receipts: env.receipts}
	for _, o := range opts {
		o(&saleOpts)
	}
	env.svcs = NewServices(env.store, infra.NewMetrics(), env.dir, saleOpts)
	return env
}

func (e *testEnv) add(t *testing.T, sku, name, price string, stock int, branch string) model.Product {
	t.Helper()
	p, err := e.svcs.Products.AddProduct(context.Background(), dto.AddProductRequest{
		SKU: sku, Name: name, Price: decimal.RequireFromString(price), Stock: stock, Branch: branch,
	})
	require.NoError(t, err)
	return p
}

func (e *testEnv) product(t *testing.T, sku, branch string) model.Product {
	t.Helper()
	p, err := e.svcs.Products.FindProduct(context.Background(), sku, branch)
	require.NoError(t, err)
	return p
}

func (e *testEnv) sales() []model.Sale {
	var out []model.Sale
	_ = e.store.View(func(v store.View) error {
		out = v.Sales()
		return nil
	})
	return out
}

func (e *testEnv) products() []model.Product {
	return e.svcs.Query.ListProducts(context.Background(), "")
}

func saleReq(branch, total string, lines ...dto.SaleLineRequest) dto.RegisterSaleRequest {
	return dto.RegisterSaleRequest{Items: lines, Branch: branch, Total: decimal.RequireFromString(total)}
}

func line(sku string, qty int) dto.SaleLineRequest {
	return dto.SaleLineRequest{SKU: sku, Quantity: qty}
}
