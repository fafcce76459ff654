package lifecycle

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/originals-sdk/sdk/pkg/asset"
	"github.com/originals-sdk/sdk/pkg/resource"
)

// DefaultBatchConcurrency bounds the number of batch items processed
// concurrently when a caller does not specify one.
const DefaultBatchConcurrency = 8

// BatchError wraps a single batch item's failure with its index in the
// input slice.
type BatchError struct {
	Index int
	Err   error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("batch item %d: %v", e.Index, e.Err)
}

func (e *BatchError) Unwrap() error { return e.Err }

// BatchStats summarizes a batch run.
type BatchStats struct {
	Total     int
	Succeeded int
	Failed    int
}

// BatchResult is the aggregated outcome of a batch operation. Successes
// preserves the input order of the items that succeeded; Failures
// likewise preserves order and records each one's original index.
type BatchResult[T any] struct {
	Successes []T
	Failures  []*BatchError
	Stats     BatchStats
}

// runBatch executes fn over items with bounded parallelism, collecting
// each item's result or error without letting one item's failure cancel
// the others — batch semantics are best-effort, not all-or-nothing.
func runBatch[I any, O any](ctx context.Context, items []I, concurrency int, fn func(context.Context, int, I) (O, error)) BatchResult[O] {
	if concurrency <= 0 {
		concurrency = DefaultBatchConcurrency
	}

	type slot struct {
		ok    bool
		value O
		err   error
	}
	slots := make([]slot, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var mu sync.Mutex
	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			value, err := fn(gctx, i, item)
			mu.Lock()
			defer mu.Unlock()
			slots[i] = slot{ok: err == nil, value: value, err: err}
			return nil
		})
	}
	_ = g.Wait()

	result := BatchResult[O]{Stats: BatchStats{Total: len(items)}}
	for i, s := range slots {
		if s.ok {
			result.Successes = append(result.Successes, s.value)
			result.Stats.Succeeded++
		} else {
			result.Failures = append(result.Failures, &BatchError{Index: i, Err: s.err})
			result.Stats.Failed++
		}
	}
	return result
}

// CreateBatchItem is one createBatch input.
type CreateBatchItem struct {
	Resources []*resource.Resource
	Options   CreateDraftOptions
}

// CreateBatch runs CreateDraft over every item with bounded parallelism.
func (m *Manager) CreateBatch(ctx context.Context, items []CreateBatchItem, concurrency int) BatchResult[*asset.OriginalsAsset] {
	return runBatch(ctx, items, concurrency, func(_ context.Context, _ int, item CreateBatchItem) (*asset.OriginalsAsset, error) {
		return m.CreateDraft(item.Resources, item.Options)
	})
}

// PublishBatchItem is one publishBatch input.
type PublishBatchItem struct {
	Asset   *asset.OriginalsAsset
	Options PublishOptions
}

// PublishBatch runs Publish over every item with bounded parallelism.
func (m *Manager) PublishBatch(ctx context.Context, items []PublishBatchItem, concurrency int) BatchResult[*asset.OriginalsAsset] {
	return runBatch(ctx, items, concurrency, func(ctx context.Context, _ int, item PublishBatchItem) (*asset.OriginalsAsset, error) {
		return m.Publish(ctx, item.Asset, item.Options)
	})
}

// InscribeBatchItem is one inscribeBatch input.
type InscribeBatchItem struct {
	Asset   *asset.OriginalsAsset
	Options InscribeOptions
}

// InscribeBatch runs Inscribe over every item with bounded parallelism.
func (m *Manager) InscribeBatch(ctx context.Context, items []InscribeBatchItem, concurrency int) BatchResult[*asset.OriginalsAsset] {
	return runBatch(ctx, items, concurrency, func(ctx context.Context, _ int, item InscribeBatchItem) (*asset.OriginalsAsset, error) {
		return m.Inscribe(ctx, item.Asset, item.Options)
	})
}

// TransferBatchItem is one transferBatch input.
type TransferBatchItem struct {
	Asset            *asset.OriginalsAsset
	RecipientAddress string
	Options          TransferOptions
}

// TransferBatch runs Transfer over every item with bounded parallelism.
func (m *Manager) TransferBatch(ctx context.Context, items []TransferBatchItem, concurrency int) BatchResult[*TransferResult] {
	return runBatch(ctx, items, concurrency, func(ctx context.Context, _ int, item TransferBatchItem) (*TransferResult, error) {
		return m.Transfer(ctx, item.Asset, item.RecipientAddress, item.Options)
	})
}
