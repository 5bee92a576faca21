package render

import (
	"bytes"
	"errors"
	"testing"
	"time"
	"unicode/utf8"

	"ecommerce-dashboard/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

func day(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }

func TestPanelRendersPNG(t *testing.T) {
	tests := []struct {
		name  string
		panel model.Panel
	}{
		{"line", model.Panel{Title: "Daily Orders", Kind: model.KindLine, Available: true,
			Data: []model.DailyPoint{{Day: day(1), Orders: 1}, {Day: day(2), Orders: 2}, {Day: day(3), Orders: 0}}}},
		{"single day line", model.Panel{Title: "Daily Orders", Kind: model.KindLine, Available: true,
			Data: []model.DailyPoint{{Day: day(1), Orders: 4}}}},
		{"pie", model.Panel{Title: "Payment Types", Kind: model.KindPie, Available: true,
			Data: []model.LabelValue{{Label: "credit_card", Value: 75, Count: 3}, {Label: "boleto", Value: 25, Count: 1}}}},
		{"bar", model.Panel{Title: "Top Cities", Kind: model.KindBar, Available: true,
			Data: []model.LabelValue{{Label: "sao paulo", Value: 3, Count: 3}, {Label: "rio de janeiro", Value: 1, Count: 1}}}},
		{"late delivery", model.Panel{Title: "Late", Kind: model.KindBar, Available: true,
			Data: []model.LateDelivery{{PaymentType: "credit_card", Late: 1, OnTime: 1, Percent: 50}}}},
		{"histogram", model.Panel{Title: "Delivery", Kind: model.KindHistogram, Available: true,
			Data: model.Histogram{Bins: []model.Bin{{Lower: 0, Upper: 1, Count: 2}, {Lower: 1, Upper: 2, Count: 5}}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Panel(&buf, tt.panel))
			assert.True(t, bytes.HasPrefix(buf.Bytes(), pngSignature))
		})
	}
}

func TestPanelWithoutData(t *testing.T) {
	var buf bytes.Buffer

	err := Panel(&buf, model.Panel{Kind: model.KindLine, Available: true, Data: []model.DailyPoint{}})
	assert.True(t, errors.Is(err, ErrNoData))

	err = Panel(&buf, model.Panel{Kind: model.KindPie, Available: true, Data: []model.LabelValue{}})
	assert.True(t, errors.Is(err, ErrNoData))

	err = Panel(&buf, model.Panel{Kind: model.KindBar, Available: false, Error: "computation unavailable"})
	assert.True(t, errors.Is(err, ErrNoData))

	err = Panel(&buf, model.Panel{Kind: model.KindMetric, Available: true, Data: 3})
	assert.True(t, errors.Is(err, ErrNotChartable))
	assert.Zero(t, buf.Len())
}

func TestShorten(t *testing.T) {
	assert.Equal(t, "boleto", shorten("boleto"))
	assert.Equal(t, "4244733e0...", shorten("4244733e06e7ecb4970a6e2683c13e61"))

	got := shorten("são josé dos campos")
	assert.Equal(t, "são josé ...", got)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, "são paulo", shorten("são paulo"))
}
