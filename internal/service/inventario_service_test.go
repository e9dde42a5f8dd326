package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yery-max/Proyecto-final/internal/dto"
	"github.com/yery-max/Proyecto-final/internal/model"
	"github.com/yery-max/Proyecto-final/internal/repository"
)

func transfer(sku string, qty int, origin, dest string) dto.TransferRequest {
	return dto.TransferRequest{SKU: sku, Quantity: qty, Origin: origin, Destination: dest}
}

func TestTransferStock_ClonesIntoNewBranch(t *testing.T) {
	env := newTestEnv(t)
	src := env.add(t, "X-1", "Widget", "10.00", 5, "A")

	msg, err := env.svcs.Inventory.TransferStock(context.Background(), transfer("X-1", 2, "A", "B"))
	require.NoError(t, err)
	assert.Equal(t, "Transferencia de 2 u. de X-1 de A a B exitosa.", msg)

	assert.Equal(t, 3, env.product(t, "X-1", "A").Stock)
	dest := env.product(t, "X-1", "B")
	assert.Equal(t, 2, dest.Stock)
	assert.NotEqual(t, src.ID, dest.ID)
	assert.Equal(t, src.Name, dest.Name)
	assert.True(t, src.Price.Equal(dest.Price))

	names := env.svcs.Query.ListBranches(context.Background())
	assert.Equal(t, "B", names[1].Name, "destination is registered")
}

func TestTransferStock_Conservation(t *testing.T) {
	env := newTestEnv(t)
	env.add(t, "X-1", "Widget", "10.00", 5, "A")
	env.add(t, "X-1", "Widget", "10.00", 4, "B")

	_, err := env.svcs.Inventory.TransferStock(context.Background(), transfer("X-1", 5, "A", "B"))
	require.NoError(t, err)
	assert.Equal(t, 0, env.product(t, "X-1", "A").Stock)
	assert.Equal(t, 9, env.product(t, "X-1", "B").Stock)
	assert.Len(t, env.products(), 2)
}

func TestTransferStock_Rejections(t *testing.T) {
	env := newTestEnv(t)
	env.add(t, "X-1", "Widget", "10.00", 5, "A")
	ctx := context.Background()

	_, err := env.svcs.Inventory.TransferStock(ctx, transfer("NOPE", 1, "A", "B"))
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = env.svcs.Inventory.TransferStock(ctx, transfer("X-1", 6, "A", "B"))
	assert.ErrorIs(t, err, model.ErrInsufficientStock)

	_, err = env.svcs.Inventory.TransferStock(ctx, transfer("X-1", 1, "A", "A"))
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = env.svcs.Inventory.TransferStock(ctx, transfer("X-1", 0, "A", "B"))
	assert.ErrorIs(t, err, model.ErrValidation)

	assert.Equal(t, 5, env.product(t, "X-1", "A").Stock)
	assert.Len(t, env.products(), 1)
}

func TestTransferStock_PersistenceFailure(t *testing.T) {
	env := newTestEnv(t)
	env.add(t, "X-1", "Widget", "10.00", 5, "A")
	env.repo.failSave = true

	_, err := env.svcs.Inventory.TransferStock(context.Background(), transfer("X-1", 2, "A", "B"))
	assert.ErrorIs(t, err, repository.ErrPersistence)
	assert.Equal(t, 5, env.product(t, "X-1", "A").Stock)
	assert.Len(t, env.products(), 1)
}

func TestReset(t *testing.T) {
	env := newTestEnv(t)
	env.add(t, "X-1", "Widget", "10.00", 5, "A")
	_, err := env.svcs.Sales.RegisterSale(context.Background(), saleReq("A", "10", line("X-1", 1)))
	require.NoError(t, err)

	msg, err := env.svcs.Inventory.Reset(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Sistema reinicializado.", msg)

	assert.Empty(t, env.products())
	assert.Empty(t, env.sales())
	assert.Empty(t, env.svcs.Query.ListBranches(context.Background()))
	assert.Equal(t, 2, env.svcs.Query.Config().LowStockThreshold)
	assert.JSONEq(t, `[]`, string(env.repo.Raw(repository.BucketProducts)))
	assert.JSONEq(t, `{}`, string(env.repo.Raw(repository.BucketBranches)))
}

func TestLowStock(t *testing.T) {
	env := newTestEnv(t)
	env.add(t, "X-1", "Widget", "10.00", 2, "A")
	env.add(t, "Y-1", "Gizmo", "1.00", 30, "A")
	env.add(t, "Z-1", "Doohickey", "1.00", 0, "B")

	all := env.svcs.Inventory.LowStock(context.Background(), "")
	assert.Len(t, all, 2)
	onlyA := env.svcs.Inventory.LowStock(context.Background(), "A")
	require.Len(t, onlyA, 1)
	assert.Equal(t, "X-1", onlyA[0].SKU)
}
