package cleaner

import (
	"context"

	"github.com/Easy-Cloud-in/ubuntu-cleaner/internal/actionlog"
)

// Outcome records the result of removing one item.
type Outcome struct {
	ID  string
	Err error
}

// Success reports whether the removal succeeded.
func (o Outcome) Success() bool {
	return o.Err == nil
}

// BatchResult aggregates the outcomes of one executor invocation.
// BytesReclaimed is a best-effort estimate summed from the pre-removal
// sizes of the items that succeeded; it is not a re-measurement.
type BatchResult struct {
	Attempted      int
	Succeeded      int
	Failed         int
	BytesReclaimed int64
	Outcomes       []Outcome
}

// RemoveFunc removes a single item. Implementations come from the
// filesystem remover or a tool adapter.
type RemoveFunc func(ctx context.Context, item Item) error

// RunBatch removes each item in turn, continuing past individual
// failures. Every outcome is appended to the action log.
func RunBatch(ctx context.Context, items []Item, remove RemoveFunc, log *actionlog.Log) BatchResult {
	if log == nil {
		log = actionlog.Discard()
	}

	result := BatchResult{
		Attempted: len(items),
		Outcomes:  make([]Outcome, 0, len(items)),
	}

	for _, item := range items {
		err := remove(ctx, item)
		result.Outcomes = append(result.Outcomes, Outcome{ID: item.ID, Err: err})

		if err != nil {
			result.Failed++
			log.Printf("remove failed: %s: %v", item.ID, err)
			continue
		}
		result.Succeeded++
		result.BytesReclaimed += item.Size
		log.Printf("removed: %s (%s)", item.ID, FormatBytes(item.Size))
	}

	return result
}
