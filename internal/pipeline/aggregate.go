package pipeline

import (
	"sort"
	"strconv"
	"time"

	"ecommerce-dashboard/internal/model"
	"ecommerce-dashboard/pkg/utils"

	"github.com/shopspring/decimal"
)

// Fixed dashboard sizes
const (
	ProductLimit = 5
	CityLimit    = 10
	DeliveryBins = 20
)

// group is one category and its row count, kept in first-appearance order
type group struct {
	label string
	count int
}

// countBy counts rows per key. Rows for which key reports false are skipped.
// Groups come back in the order their key was first seen.
func countBy(v model.View, key func(model.Order) (string, bool)) []group {
	index := make(map[string]int)
	var groups []group
	for i := 0; i < v.Len(); i++ {
		k, ok := key(v.At(i))
		if !ok {
			continue
		}
		pos, exists := index[k]
		if !exists {
			pos = len(groups)
			index[k] = pos
			groups = append(groups, group{label: k})
		}
		groups[pos].count++
	}
	return groups
}

// rankDesc orders groups by count, largest first; equal counts keep first-appearance order
func rankDesc(groups []group) {
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].count > groups[j].count })
}

func toCounts(groups []group) []model.LabelValue {
	out := make([]model.LabelValue, 0, len(groups))
	for _, g := range groups {
		out = append(out, model.LabelValue{Label: g.label, Value: float64(g.count), Count: g.count})
	}
	return out
}

func toPercentages(groups []group) []model.LabelValue {
	total := 0
	for _, g := range groups {
		total += g.count
	}
	out := make([]model.LabelValue, 0, len(groups))
	for _, g := range groups {
		out = append(out, model.LabelValue{Label: g.label, Value: utils.Percent(g.count, total), Count: g.count})
	}
	return out
}

// ------------------- Metric tiles -------------------

// TotalOrders counts distinct order identifiers.
func TotalOrders(v model.View) int {
	seen := make(map[string]struct{})
	for i := 0; i < v.Len(); i++ {
		seen[v.At(i).OrderID] = struct{}{}
	}
	return len(seen)
}

// TotalRevenue sums payment values over every line item, so a multi-item
// order contributes its payment once per row. Absent values are skipped.
func TotalRevenue(v model.View) float64 {
	total := decimal.Zero
	for i := 0; i < v.Len(); i++ {
		o := v.At(i)
		if !o.HasPayment() {
			continue
		}
		total = total.Add(decimal.NewFromFloat(o.PaymentValue))
	}
	return total.InexactFloat64()
}

// AverageFreight is the mean freight value. It is invalid when no row has one.
func AverageFreight(v model.View) model.Scalar {
	sum, n := 0.0, 0
	for i := 0; i < v.Len(); i++ {
		o := v.At(i)
		if !o.HasFreight() {
			continue
		}
		sum += o.FreightValue
		n++
	}
	if n == 0 {
		return model.Scalar{}
	}
	return model.Scalar{Value: sum / float64(n), Valid: true}
}

// ------------------- Trends -------------------

// DailyOrderTrend counts distinct orders per purchase day. The series runs
// from the first to the last purchase day in v with zero-filled gaps.
func DailyOrderTrend(v model.View) []model.DailyPoint {
	perDay := make(map[time.Time]map[string]struct{})
	var first, last time.Time
	for i := 0; i < v.Len(); i++ {
		o := v.At(i)
		if o.PurchasedAt.IsZero() {
			continue
		}
		day := utils.StartOfDay(o.PurchasedAt)
		if len(perDay) == 0 || day.Before(first) {
			first = day
		}
		if len(perDay) == 0 || day.After(last) {
			last = day
		}
		orders, ok := perDay[day]
		if !ok {
			orders = make(map[string]struct{})
			perDay[day] = orders
		}
		orders[o.OrderID] = struct{}{}
	}

	points := make([]model.DailyPoint, 0, len(perDay))
	if len(perDay) == 0 {
		return points
	}
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		points = append(points, model.DailyPoint{Day: day, Orders: len(perDay[day])})
	}
	return points
}

// ------------------- Payments -------------------

// PaymentTypeDistribution is the share of rows per payment type, largest first.
func PaymentTypeDistribution(v model.View) []model.LabelValue {
	groups := countBy(v, func(o model.Order) (string, bool) { return o.PaymentType, o.PaymentType != "" })
	rankDesc(groups)
	return toPercentages(groups)
}

// InstallmentDistribution counts rows per installment count, ascending by count of installments.
func InstallmentDistribution(v model.View) []model.LabelValue {
	counts := make(map[int]int)
	for i := 0; i < v.Len(); i++ {
		o := v.At(i)
		if o.HasInstallments() {
			counts[o.PaymentInstallments]++
		}
	}
	keys := make([]int, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	out := make([]model.LabelValue, 0, len(keys))
	for _, k := range keys {
		out = append(out, model.LabelValue{Label: strconv.Itoa(k), Value: float64(counts[k]), Count: counts[k]})
	}
	return out
}

// LateDeliveryByPaymentType reports, per payment type, the share of delivered
// rows that arrived at least one whole day after the estimate. Payment types
// without delivered rows report 0.
func LateDeliveryByPaymentType(v model.View) []model.LateDelivery {
	index := make(map[string]int)
	var out []model.LateDelivery
	for i := 0; i < v.Len(); i++ {
		o := v.At(i)
		if o.PaymentType == "" {
			continue
		}
		pos, ok := index[o.PaymentType]
		if !ok {
			pos = len(out)
			index[o.PaymentType] = pos
			out = append(out, model.LateDelivery{PaymentType: o.PaymentType})
		}

		delay, err := o.DeliveryDelayDays()
		if err != nil {
			continue // not delivered yet or no estimate
		}
		if delay > 0 {
			out[pos].Late++
		} else {
			out[pos].OnTime++
		}
	}

	for i := range out {
		out[i].Percent = utils.Percent(out[i].Late, out[i].Late+out[i].OnTime)
	}
	if out == nil {
		out = []model.LateDelivery{}
	}
	return out
}

// ------------------- Products & geography -------------------

// ProductPerformance returns the n best and n worst selling products by line-item count.
// Products are ranked once (count desc, first appearance on ties); the top is
// the head of that ranking and the bottom its tail ordered by ascending count,
// so the two never overlap while at least 2n products exist.
func ProductPerformance(v model.View, n int) model.ProductPerformance {
	groups := countBy(v, func(o model.Order) (string, bool) { return o.ProductID, o.ProductID != "" })
	rankDesc(groups)

	topN := n
	if topN > len(groups) {
		topN = len(groups)
	}
	top := groups[:topN]

	tail := make([]group, topN)
	copy(tail, groups[len(groups)-topN:])
	sort.SliceStable(tail, func(i, j int) bool { return tail[i].count < tail[j].count })

	return model.ProductPerformance{Top: toCounts(top), Bottom: toCounts(tail)}
}

// TopCities returns the k cities with the most rows.
func TopCities(v model.View, k int) []model.LabelValue {
	groups := countBy(v, func(o model.Order) (string, bool) { return o.CustomerCity, o.CustomerCity != "" })
	rankDesc(groups)
	if len(groups) > k {
		groups = groups[:k]
	}
	return toCounts(groups)
}

// StateDistribution is the share of rows per customer state, largest first.
func StateDistribution(v model.View) []model.LabelValue {
	groups := countBy(v, func(o model.Order) (string, bool) { return o.CustomerState, o.CustomerState != "" })
	rankDesc(groups)
	return toPercentages(groups)
}

// ------------------- Delivery -------------------

// DeliveryTimeDistribution histograms whole days from purchase to delivery
// over delivered rows.
func DeliveryTimeDistribution(v model.View, bins int) model.Histogram {
	samples := make([]int, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		days, err := v.At(i).DeliveryDays()
		if err != nil {
			continue
		}
		samples = append(samples, days)
	}

	h := model.Histogram{Bins: histogram(samples, bins), Samples: samples}
	if len(samples) > 0 {
		sum := 0
		for _, s := range samples {
			sum += s
		}
		h.Mean = model.Scalar{Value: float64(sum) / float64(len(samples)), Valid: true}
	}
	return h
}

// histogram splits [min, max] of samples into equal-width bins. The last bin
// is closed on the right. A single distinct value is widened to +-0.5.
func histogram(samples []int, bins int) []model.Bin {
	if len(samples) == 0 || bins <= 0 {
		return []model.Bin{}
	}
	lo, hi := samples[0], samples[0]
	for _, s := range samples[1:] {
		if s < lo {
			lo = s
		}
		if s > hi {
			hi = s
		}
	}
	min, max := float64(lo), float64(hi)
	if lo == hi {
		min, max = min-0.5, max+0.5
	}
	width := (max - min) / float64(bins)

	out := make([]model.Bin, bins)
	for i := range out {
		out[i].Lower = min + float64(i)*width
		out[i].Upper = min + float64(i+1)*width
	}
	out[bins-1].Upper = max

	for _, s := range samples {
		idx := int((float64(s) - min) / width)
		if idx >= bins {
			idx = bins - 1
		}
		if idx < 0 {
			idx = 0
		}
		out[idx].Count++
	}
	return out
}
