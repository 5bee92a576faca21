package pipeline

import (
	"fmt"

	"ecommerce-dashboard/internal/model"
)

// Panel names of the default dashboard
const (
	PanelTotalOrders    = "total_orders"
	PanelTotalRevenue   = "total_revenue"
	PanelAvgFreight     = "average_freight"
	PanelDailyOrders    = "daily_orders"
	PanelPaymentTypes   = "payment_types"
	PanelInstallments   = "installments"
	PanelLateDelivery   = "late_delivery"
	PanelTopProducts    = "top_products"
	PanelBottomProducts = "bottom_products"
	PanelTopCities      = "top_cities"
	PanelStates         = "customer_states"
	PanelDeliveryTimes  = "delivery_times"
)

// Aggregator is a named pure function over a filtered view.
type Aggregator struct {
	Name    string
	Title   string
	Kind    model.PanelKind
	Compute func(model.View) (any, error)
}

// Registry holds aggregators in registration order.
type Registry struct {
	aggregators []Aggregator
	index       map[string]int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Register adds an aggregator. Names must be unique.
func (r *Registry) Register(a Aggregator) error {
	if a.Name == "" || a.Compute == nil {
		return fmt.Errorf("aggregator needs a name and a compute function")
	}
	if _, exists := r.index[a.Name]; exists {
		return fmt.Errorf("aggregator %q already registered", a.Name)
	}
	r.index[a.Name] = len(r.aggregators)
	r.aggregators = append(r.aggregators, a)
	return nil
}

// MustRegister is Register for static setup; it panics on error.
func (r *Registry) MustRegister(a Aggregator) *Registry {
	if err := r.Register(a); err != nil {
		panic(err)
	}
	return r
}

// Get looks up an aggregator by name.
func (r *Registry) Get(name string) (Aggregator, bool) {
	i, ok := r.index[name]
	if !ok {
		return Aggregator{}, false
	}
	return r.aggregators[i], true
}

// Aggregators returns a copy of the registered aggregators in order.
func (r *Registry) Aggregators() []Aggregator {
	out := make([]Aggregator, len(r.aggregators))
	copy(out, r.aggregators)
	return out
}

// DefaultRegistry is the e-commerce dashboard battery in display order.
func DefaultRegistry() *Registry {
	return NewRegistry().
		MustRegister(Aggregator{Name: PanelTotalOrders, Title: "Total Orders", Kind: model.KindMetric,
			Compute: func(v model.View) (any, error) { return TotalOrders(v), nil }}).
		MustRegister(Aggregator{Name: PanelTotalRevenue, Title: "Total Revenue", Kind: model.KindMetric,
			Compute: func(v model.View) (any, error) { return TotalRevenue(v), nil }}).
		MustRegister(Aggregator{Name: PanelAvgFreight, Title: "Average Freight Cost", Kind: model.KindMetric,
			Compute: func(v model.View) (any, error) { return AverageFreight(v), nil }}).
		MustRegister(Aggregator{Name: PanelDailyOrders, Title: "Daily Orders", Kind: model.KindLine,
			Compute: func(v model.View) (any, error) { return DailyOrderTrend(v), nil }}).
		MustRegister(Aggregator{Name: PanelPaymentTypes, Title: "Payment Types", Kind: model.KindPie,
			Compute: func(v model.View) (any, error) { return PaymentTypeDistribution(v), nil }}).
		MustRegister(Aggregator{Name: PanelInstallments, Title: "Installment Distribution", Kind: model.KindBar,
			Compute: func(v model.View) (any, error) { return InstallmentDistribution(v), nil }}).
		MustRegister(Aggregator{Name: PanelLateDelivery, Title: "Late Deliveries by Payment Type", Kind: model.KindBar,
			Compute: func(v model.View) (any, error) { return LateDeliveryByPaymentType(v), nil }}).
		MustRegister(Aggregator{Name: PanelTopProducts, Title: "Top 5 Best Selling Products", Kind: model.KindBar,
			Compute: func(v model.View) (any, error) { return ProductPerformance(v, ProductLimit).Top, nil }}).
		MustRegister(Aggregator{Name: PanelBottomProducts, Title: "Top 5 Worst Selling Products", Kind: model.KindBar,
			Compute: func(v model.View) (any, error) { return ProductPerformance(v, ProductLimit).Bottom, nil }}).
		MustRegister(Aggregator{Name: PanelTopCities, Title: "Top 10 Customer Cities", Kind: model.KindBar,
			Compute: func(v model.View) (any, error) { return TopCities(v, CityLimit), nil }}).
		MustRegister(Aggregator{Name: PanelStates, Title: "Customer Distribution by State", Kind: model.KindPie,
			Compute: func(v model.View) (any, error) { return StateDistribution(v), nil }}).
		MustRegister(Aggregator{Name: PanelDeliveryTimes, Title: "Distribution of Delivery Times", Kind: model.KindHistogram,
			Compute: func(v model.View) (any, error) { return DeliveryTimeDistribution(v, DeliveryBins), nil }})
}
