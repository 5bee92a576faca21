package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"ecommerce-dashboard/internal/model"

	"github.com/google/uuid"
)

// ErrUnknownPanel is returned by RunOne for names not in the registry.
var ErrUnknownPanel = errors.New("unknown panel")

// ------------------- Pass Runner -------------------

// Run executes one recomputation pass: filter the dataset to r, then run every
// registered aggregator over the filtered view. Aggregators run concurrently
// over the immutable view; a failing aggregator yields an unavailable panel and
// never aborts the pass.
func Run(ctx context.Context, ds model.View, r model.DateRange, reg *Registry) *model.Report {
	start := time.Now()
	passID := uuid.New().String()

	view := FilterByPurchaseDate(ds, r)
	aggregators := reg.Aggregators()
	panels := make([]model.Panel, len(aggregators))

	var wg sync.WaitGroup
	wg.Add(len(aggregators))
	for i, agg := range aggregators {
		go func(i int, agg Aggregator) {
			defer wg.Done()
			panels[i] = computePanel(ctx, passID, agg, view)
		}(i, agg)
	}
	wg.Wait()

	failed := 0
	for _, p := range panels {
		if !p.Available {
			failed++
		}
	}

	duration := time.Since(start)
	log.Printf("📊 Pass %s: %d/%d rows in range, %d panels (%d unavailable) in %v\n",
		passID, view.Len(), ds.Len(), len(panels), failed, duration)

	return &model.Report{
		PassID:     passID,
		Range:      r,
		Rows:       view.Len(),
		Empty:      view.Len() == 0,
		Panels:     panels,
		ComputedAt: start.UTC(),
		Duration:   duration,
	}
}

// RunOne filters the dataset and computes a single named panel.
func RunOne(ctx context.Context, ds model.View, r model.DateRange, reg *Registry, name string) (model.Panel, error) {
	agg, ok := reg.Get(name)
	if !ok {
		return model.Panel{}, fmt.Errorf("%w: %s", ErrUnknownPanel, name)
	}
	view := FilterByPurchaseDate(ds, r)
	return computePanel(ctx, uuid.New().String(), agg, view), nil
}

// computePanel runs one aggregator, turning errors and panics into an unavailable panel
func computePanel(ctx context.Context, passID string, agg Aggregator, view model.View) (panel model.Panel) {
	panel = model.Panel{Name: agg.Name, Title: agg.Title, Kind: agg.Kind}

	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("❌ Pass %s: aggregator %s panicked: %v\n", passID, agg.Name, rec)
			panel.Available = false
			panel.Data = nil
			panel.Error = fmt.Sprintf("computation unavailable: %v", rec)
		}
	}()

	if err := ctx.Err(); err != nil {
		panel.Error = fmt.Sprintf("computation unavailable: %v", err)
		return panel
	}

	data, err := agg.Compute(view)
	if err != nil {
		log.Printf("❌ Pass %s: aggregator %s failed: %v\n", passID, agg.Name, err)
		panel.Error = fmt.Sprintf("computation unavailable: %v", err)
		return panel
	}

	panel.Data = data
	panel.Available = true
	return panel
}
