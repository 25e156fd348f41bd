package measure

import (
	"fmt"

	"github.com/piwi3910/gridflow/internal/engine"
	"github.com/piwi3910/gridflow/internal/model"
)

// ItemLookup resolves a flattened index to the item shown there.
type ItemLookup func(index int) (model.Item, bool)

// SettleResult summarizes a full measurement pass.
type SettleResult struct {
	Generation  model.Generation
	Corrections int     // items whose height changed
	Refreshed   int     // total refresh entries across all corrections
	TotalDelta  float64 // sum of ContentSizeDelta
	Requests    []model.InvalidationRequest
}

// Settle measures every item of the current build in index order and applies
// each differing height as a correction against the build's generation.
func Settle(l *engine.Layout, lookup ItemLookup, m Measurer) (SettleResult, error) {
	l.Prepare()
	result := SettleResult{Generation: l.Generation()}

	for i := 0; i < l.Len(); i++ {
		item, ok := lookup(i)
		if !ok {
			return result, fmt.Errorf("failed to look up item %d: %w", i, engine.ErrIndexOutOfRange)
		}
		rec, err := l.Record(i)
		if err != nil {
			return result, err
		}

		height := m.Height(item, rec.Frame.Width)
		if !l.NeedsCorrection(i, height) {
			continue
		}

		req, err := l.ApplyCorrection(rec.Generation, i, height)
		if err != nil {
			return result, fmt.Errorf("failed to apply correction for item %d: %w", i, err)
		}
		result.Corrections++
		result.Refreshed += len(req.ItemsToRefresh)
		result.TotalDelta += req.ContentSizeDelta
		result.Requests = append(result.Requests, req)
	}
	return result, nil
}
