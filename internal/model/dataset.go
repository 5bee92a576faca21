package model

import "time"

// View provides read-only indexed access to order rows.
// A Dataset is a View; filters return SubViews into it.
type View interface {
	Len() int
	At(i int) Order
}

// Dataset is the full order table, immutable after load.
type Dataset struct {
	source string
	orders []Order
}

// NewDataset takes ownership of orders. Callers must not modify the slice afterwards.
func NewDataset(source string, orders []Order) *Dataset {
	return &Dataset{source: source, orders: orders}
}

func (d *Dataset) Len() int { return len(d.orders) }

func (d *Dataset) At(i int) Order { return d.orders[i] }

// Source returns the location the dataset was loaded from.
func (d *Dataset) Source() string { return d.source }

// PurchaseSpan returns the earliest and latest purchase timestamps.
// ok is false when no row has a purchase timestamp.
func PurchaseSpan(v View) (min, max time.Time, ok bool) {
	for i := 0; i < v.Len(); i++ {
		t := v.At(i).PurchasedAt
		if t.IsZero() {
			continue
		}
		if !ok || t.Before(min) {
			min = t
		}
		if !ok || t.After(max) {
			max = t
		}
		ok = true
	}
	return min, max, ok
}

// SubView is a subset of a parent view, held as indices into it.
type SubView struct {
	parent  View
	indices []int
}

// NewSubView creates a view over the given parent indices.
func NewSubView(parent View, indices []int) *SubView {
	return &SubView{parent: parent, indices: indices}
}

func (v *SubView) Len() int { return len(v.indices) }

func (v *SubView) At(i int) Order { return v.parent.At(v.indices[i]) }

// DateRange is an inclusive purchase-timestamp interval.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether Start <= t <= End.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Inverted reports whether the range can match nothing because Start is after End.
func (r DateRange) Inverted() bool { return r.Start.After(r.End) }
