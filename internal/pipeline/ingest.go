package pipeline

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"ecommerce-dashboard/internal/model"
	"ecommerce-dashboard/internal/store"
	"ecommerce-dashboard/pkg/utils"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/pkg/errors"
)

var errMissingColumn = errors.New("required column not found")

// table is a column-major text table shared by all source types
type table struct {
	columns map[string][]string
	rows    int
}

func (t *table) cell(column string, i int) string {
	col, ok := t.columns[column]
	if !ok {
		return ""
	}
	return col[i]
}

// ------------------- Loader -------------------

// Load reads the whole order dataset described by src into memory.
// Any failure is reported as a *model.DataLoadError.
func Load(ctx context.Context, src model.Source) (*model.Dataset, error) {
	start := time.Now()
	log.Printf("➡️ Loading dataset: %s (%s)\n", src.URL, sourceType(src))

	var (
		tbl *table
		err error
	)
	switch sourceType(src) {
	case model.SourceCSV:
		tbl, err = readCSV(src.URL)
	case model.SourceSQLite, model.SourcePostgres:
		tbl, err = readSQL(ctx, src)
	default:
		err = &model.DataLoadError{Source: src.URL, Err: fmt.Errorf("unknown source type: %s", src.Type)}
	}
	if err != nil {
		return nil, err
	}

	orders, err := buildOrders(ctx, src.URL, tbl)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Dataset loaded: %d rows from %s in %v\n", len(orders), src.URL, time.Since(start))
	return model.NewDataset(src.URL, orders), nil
}

func sourceType(src model.Source) string {
	if src.Type == "" {
		return model.SourceCSV
	}
	return strings.ToLower(src.Type)
}

// ------------------- CSV -------------------

func readCSV(path string) (*table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &model.DataLoadError{Source: path, Err: errors.Wrap(err, "open CSV file")}
	}

	// Every column is read as text; typing happens in buildOrders
	df := dataframe.ReadCSV(bytes.NewReader(data),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		// gota refuses a header without rows; that is an empty dataset, not a load failure
		if header, ok := headerOnly(data); ok {
			return emptyTable(header), nil
		}
		return nil, &model.DataLoadError{Source: path, Err: errors.Wrap(df.Err, "parse CSV")}
	}

	tbl := &table{columns: make(map[string][]string), rows: df.Nrow()}
	for _, name := range df.Names() {
		col := df.Col(name)
		if col.Err != nil {
			return nil, &model.DataLoadError{Source: path, Column: name, Err: col.Err}
		}
		records := col.Records()
		nan := col.IsNaN()
		for i := range records {
			if nan[i] {
				records[i] = ""
			}
		}
		tbl.columns[cleanHeader(name)] = records
	}
	return tbl, nil
}

// headerOnly returns the header of a CSV that has no data rows.
func headerOnly(data []byte) ([]string, bool) {
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil || len(records) != 1 {
		return nil, false
	}
	return records[0], true
}

func emptyTable(header []string) *table {
	tbl := &table{columns: make(map[string][]string, len(header))}
	for _, name := range header {
		tbl.columns[cleanHeader(name)] = []string{}
	}
	return tbl
}

// cleanHeader trims whitespace and quotes from a header name
func cleanHeader(h string) string {
	return strings.ReplaceAll(strings.TrimSpace(h), `"`, "")
}

// ------------------- SQL -------------------

func readSQL(ctx context.Context, src model.Source) (*table, error) {
	db, err := store.Open(ctx, src)
	if err != nil {
		return nil, &model.DataLoadError{Source: src.URL, Err: err}
	}
	defer db.Close()

	rows, err := store.QueryOrders(ctx, db, src.Table)
	if err != nil {
		return nil, &model.DataLoadError{Source: src.URL, Err: err}
	}

	tbl := &table{columns: make(map[string][]string, len(rows.Columns)), rows: len(rows.Values)}
	for c, name := range rows.Columns {
		col := make([]string, len(rows.Values))
		for i, rec := range rows.Values {
			col[i] = rec[c]
		}
		tbl.columns[cleanHeader(name)] = col
	}
	return tbl, nil
}

// ------------------- Typing -------------------

func buildOrders(ctx context.Context, source string, tbl *table) ([]model.Order, error) {
	for _, col := range model.RequiredColumns {
		if _, ok := tbl.columns[col]; !ok {
			return nil, &model.DataLoadError{Source: source, Column: col, Err: errMissingColumn}
		}
	}

	orders := make([]model.Order, tbl.rows)
	for i := 0; i < tbl.rows; i++ {
		if i%10000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, &model.DataLoadError{Source: source, Err: err}
			}
		}

		o := model.Order{
			OrderID:             strings.TrimSpace(tbl.cell(model.ColOrderID, i)),
			ProductID:           strings.TrimSpace(tbl.cell(model.ColProductID, i)),
			OrderItemID:         strings.TrimSpace(tbl.cell(model.ColOrderItemID, i)),
			CustomerID:          strings.TrimSpace(tbl.cell(model.ColCustomerID, i)),
			PaymentType:         strings.TrimSpace(tbl.cell(model.ColPaymentType, i)),
			PaymentInstallments: utils.ParseInt(tbl.cell(model.ColPaymentInstallments, i), model.UnknownInstallments),
			PaymentValue:        utils.ParseFloat(tbl.cell(model.ColPaymentValue, i)),
			FreightValue:        utils.ParseFloat(tbl.cell(model.ColFreightValue, i)),
			CustomerCity:        strings.TrimSpace(tbl.cell(model.ColCustomerCity, i)),
			CustomerState:       strings.TrimSpace(tbl.cell(model.ColCustomerState, i)),
		}

		timestamps := []struct {
			column string
			dst    *time.Time
		}{
			{model.ColPurchasedAt, &o.PurchasedAt},
			{model.ColApprovedAt, &o.ApprovedAt},
			{model.ColDeliveredCarrierAt, &o.DeliveredCarrierAt},
			{model.ColDeliveredCustomerAt, &o.DeliveredCustomerAt},
			{model.ColEstimatedDelivery, &o.EstimatedDeliveryAt},
			{model.ColShippingLimitAt, &o.ShippingLimitAt}, // optional column
		}
		for _, ts := range timestamps {
			t, err := utils.ParseTimestamp(tbl.cell(ts.column, i))
			if err != nil {
				return nil, &model.DataLoadError{Source: source, Column: ts.column, Line: i + 1, Err: err}
			}
			*ts.dst = t
		}

		orders[i] = o
	}
	return orders, nil
}
