package model

import "time"

// PanelKind tells the presentation layer how to draw a panel.
type PanelKind string

const (
	KindMetric    PanelKind = "metric"
	KindLine      PanelKind = "line"
	KindPie       PanelKind = "pie"
	KindBar       PanelKind = "bar"
	KindHistogram PanelKind = "histogram"
)

// LabelValue is one entry of an ordered category mapping.
type LabelValue struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Count int     `json:"count"`
}

// DailyPoint is the distinct order count for one calendar day.
type DailyPoint struct {
	Day    time.Time `json:"day"`
	Orders int       `json:"orders"`
}

// Scalar is a metric tile value. Valid is false when there is no data.
type Scalar struct {
	Value float64 `json:"value"`
	Valid bool    `json:"valid"`
}

// Bin is one histogram bucket covering [Lower, Upper).
// The last bin of a histogram also includes Upper.
type Bin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// Histogram is a frequency distribution plus the raw samples it was built from.
type Histogram struct {
	Bins    []Bin  `json:"bins"`
	Samples []int  `json:"samples"`
	Mean    Scalar `json:"mean"`
}

// LateDelivery is the late-delivery share of one payment type.
type LateDelivery struct {
	PaymentType string  `json:"payment_type"`
	Late        int     `json:"late"`
	OnTime      int     `json:"on_time"`
	Percent     float64 `json:"percent"`
}

// ProductPerformance holds the best and worst selling products.
type ProductPerformance struct {
	Top    []LabelValue `json:"top"`
	Bottom []LabelValue `json:"bottom"`
}

// Panel is the outcome of one aggregator in a pass.
type Panel struct {
	Name      string    `json:"name"`
	Title     string    `json:"title"`
	Kind      PanelKind `json:"kind"`
	Available bool      `json:"available"`
	Data      any       `json:"data,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// Report is the result of one recomputation pass.
type Report struct {
	PassID     string        `json:"pass_id"`
	Range      DateRange     `json:"range"`
	Rows       int           `json:"rows"`
	Empty      bool          `json:"empty"`
	Panels     []Panel       `json:"panels"`
	ComputedAt time.Time     `json:"computed_at"`
	Duration   time.Duration `json:"duration"`
}

// Panel returns the named panel of the report.
func (r *Report) Panel(name string) (Panel, bool) {
	for _, p := range r.Panels {
		if p.Name == name {
			return p, true
		}
	}
	return Panel{}, false
}
