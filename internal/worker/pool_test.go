package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yery-max/Proyecto-final/internal/infra"
)

type stubRenderer struct {
	mu   sync.Mutex
	ids  []string
	fail map[string]bool
	done chan string
}

func newStubRenderer() *stubRenderer {
	return &stubRenderer{fail: map[string]bool{}, done: make(chan string, 16)}
}

func (r *stubRenderer) SaleReceipt(_ context.Context, saleID string) (string, error) {
	r.mu.Lock()
	r.ids = append(r.ids, saleID)
	r.mu.Unlock()
	defer func() { r.done <- saleID }()
	if r.fail[saleID] {
		return "", errors.New("render failed")
	}
	return "recibo_" + saleID + ".pdf", nil
}

func TestDispatcher_EnqueueNeverBlocks(t *testing.T) {
	d := NewDispatcher(2, infra.NewMetrics())
	require.NoError(t, d.EnqueueReceipt("VTA-1"))
	require.NoError(t, d.EnqueueReceipt("VTA-2"))
	assert.ErrorIs(t, d.EnqueueReceipt("VTA-3"), ErrQueueFull)
	assert.Equal(t, 2, d.Pending())
}

func TestDispatcher_DefaultBuffer(t *testing.T) {
	d := NewDispatcher(0, nil)
	assert.Equal(t, 64, cap(d.jobs))
}

func TestWorkerPool_ProcessesReceipts(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	renderer := newStubRenderer()
	renderer.fail["VTA-2"] = true
	d := NewDispatcher(8, nil)
	StartWorkerPool(ctx, d, renderer, 2)

	for _, id := range []string{"VTA-1", "VTA-2", "VTA-3"} {
		require.NoError(t, d.EnqueueReceipt(id))
	}
	seen := map[string]bool{}
	for len(seen) < 3 {
		select {
		case id := <-renderer.done:
			seen[id] = true
		case <-time.After(2 * time.Second):
			t.Fatalf("receipts not processed, got %v", seen)
		}
	}

	cancel()
	d.Wait()
	assert.ElementsMatch(t, []string{"VTA-1", "VTA-2", "VTA-3"}, renderer.ids)
}

func TestProcessJob_UnknownTypeIsDropped(t *testing.T) {
	renderer := newStubRenderer()
	processJob(context.Background(), renderer, Job{Type: "email", SaleID: "VTA-1"})
	assert.Empty(t, renderer.ids)
}
