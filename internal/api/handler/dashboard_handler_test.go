package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ecommerce-dashboard/internal/model"
	"ecommerce-dashboard/internal/pipeline"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func order(id, payment, city string, purchased time.Time) model.Order {
	return model.Order{
		OrderID:             id,
		ProductID:           "p-" + id,
		OrderItemID:         "1",
		CustomerID:          "c-" + id,
		PaymentType:         payment,
		PaymentInstallments: 1,
		PaymentValue:        20,
		FreightValue:        4,
		CustomerCity:        city,
		CustomerState:       "SP",
		PurchasedAt:         purchased,
		DeliveredCustomerAt: purchased.AddDate(0, 0, 3),
		EstimatedDeliveryAt: purchased.AddDate(0, 0, 7),
	}
}

func newDashboard() *Dashboard {
	day := func(d int) time.Time { return time.Date(2024, 3, d, 12, 0, 0, 0, time.UTC) }
	ds := model.NewDataset("fixture", []model.Order{
		order("o1", "credit_card", "sao paulo", day(1)),
		order("o2", "boleto", "campinas", day(2)),
		order("o3", "credit_card", "sao paulo", day(4)),
	})
	return New(ds, pipeline.DefaultRegistry())
}

func serve(h http.HandlerFunc, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(v))
}

func TestHealth(t *testing.T) {
	d := newDashboard()
	rec := serve(d.Health, "/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	decode(t, rec, &body)
	assert.Equal(t, "ok", body["status"])
	assert.EqualValues(t, 3, body["rows"])
}

func TestGetDashboardDefaultRange(t *testing.T) {
	d := newDashboard()
	rec := serve(d.GetDashboard, "/api/v1/dashboard")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var report struct {
		PassID string `json:"pass_id"`
		Rows   int    `json:"rows"`
		Empty  bool   `json:"empty"`
		Panels []struct {
			Name      string          `json:"name"`
			Available bool            `json:"available"`
			Data      json.RawMessage `json:"data"`
		} `json:"panels"`
	}
	decode(t, rec, &report)
	assert.NotEmpty(t, report.PassID)
	assert.Equal(t, 3, report.Rows)
	assert.False(t, report.Empty)
	require.Len(t, report.Panels, len(pipeline.DefaultRegistry().Aggregators()))
	for _, p := range report.Panels {
		assert.True(t, p.Available, p.Name)
	}
	assert.Equal(t, pipeline.PanelTotalOrders, report.Panels[0].Name)
	assert.JSONEq(t, "3", string(report.Panels[0].Data))
}

func TestGetDashboardNarrowRange(t *testing.T) {
	d := newDashboard()
	rec := serve(d.GetDashboard, "/api/v1/dashboard?start=2024-03-02&end=2024-03-02")
	require.Equal(t, http.StatusOK, rec.Code)

	var report model.Report
	decode(t, rec, &report)
	assert.Equal(t, 1, report.Rows)
	assert.Equal(t, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), report.Range.Start)
	assert.Equal(t, 2, report.Range.End.Day())
	assert.Equal(t, 23, report.Range.End.Hour())
}

func TestGetDashboardEmptyRange(t *testing.T) {
	d := newDashboard()
	rec := serve(d.GetDashboard, "/api/v1/dashboard?start=2024-03-10&end=2024-03-01")
	require.Equal(t, http.StatusOK, rec.Code)

	var report model.Report
	decode(t, rec, &report)
	assert.True(t, report.Empty)
	assert.Zero(t, report.Rows)
	p, ok := report.Panel(pipeline.PanelTotalRevenue)
	require.True(t, ok)
	assert.EqualValues(t, 0, p.Data)
}

func TestGetDashboardBadDate(t *testing.T) {
	d := newDashboard()
	rec := serve(d.GetDashboard, "/api/v1/dashboard?start=03/01/2024")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	decode(t, rec, &body)
	assert.Contains(t, body["error"], "invalid start date")
}

func TestGetRange(t *testing.T) {
	d := newDashboard()
	rec := serve(d.GetRange, "/api/v1/dashboard/range")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Start time.Time `json:"start"`
		End   time.Time `json:"end"`
		Rows  int       `json:"rows"`
	}
	decode(t, rec, &body)
	assert.Equal(t, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), body.Start)
	assert.Equal(t, time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC), body.End)
	assert.Equal(t, 3, body.Rows)
}

func TestListPanels(t *testing.T) {
	d := newDashboard()
	rec := serve(d.ListPanels, "/api/v1/panels")
	require.Equal(t, http.StatusOK, rec.Code)

	var panels []map[string]string
	decode(t, rec, &panels)
	require.Len(t, panels, 12)
	assert.Equal(t, pipeline.PanelTotalOrders, panels[0]["name"])
	assert.Equal(t, string(model.KindMetric), panels[0]["kind"])
	assert.Equal(t, pipeline.PanelDeliveryTimes, panels[11]["name"])
}

func TestGetPanel(t *testing.T) {
	d := newDashboard()
	rec := serve(d.GetPanel, "/api/v1/panels/"+pipeline.PanelPaymentTypes)
	require.Equal(t, http.StatusOK, rec.Code)

	var panel struct {
		Name      string             `json:"name"`
		Available bool               `json:"available"`
		Data      []model.LabelValue `json:"data"`
	}
	decode(t, rec, &panel)
	assert.Equal(t, pipeline.PanelPaymentTypes, panel.Name)
	require.Len(t, panel.Data, 2)
	assert.Equal(t, "credit_card", panel.Data[0].Label)
	assert.InDelta(t, 66.67, panel.Data[0].Value, 0.01)
}

func TestGetPanelErrors(t *testing.T) {
	d := newDashboard()
	assert.Equal(t, http.StatusNotFound, serve(d.GetPanel, "/api/v1/panels/nope").Code)
	assert.Equal(t, http.StatusBadRequest, serve(d.GetPanel, "/api/v1/panels/").Code)
	assert.Equal(t, http.StatusBadRequest, serve(d.GetPanel, "/api/v1/panels/top_cities?end=bad").Code)
}

func TestGetChart(t *testing.T) {
	d := newDashboard()

	rec := serve(d.GetChart, "/api/v1/charts/"+pipeline.PanelDailyOrders+".png")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, []byte("\x89PNG"), rec.Body.Bytes()[:4])

	rec = serve(d.GetChart, "/api/v1/charts/"+pipeline.PanelDailyOrders+".png?start=2030-01-01&end=2030-01-31")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = serve(d.GetChart, "/api/v1/charts/"+pipeline.PanelTotalOrders+".png")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(d.GetChart, "/api/v1/charts/unknown.png")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(d.GetChart, "/api/v1/charts/"+pipeline.PanelDailyOrders)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
