package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"strings"
	"testing"

	"github.com/odyssey-erp/salesdash/internal/dataset"
)

func TestWriteMetricsCSV(t *testing.T) {
	buf := &bytes.Buffer{}
	m := dataset.Metrics{TotalRevenue: 120000, PreviousRevenue: 100000, UnitsSold: 10, TopProduct: "Wireless Headphones", TopProductSales: 1245}
	if err := WriteMetricsCSV(buf, m); err != nil {
		t.Fatalf("metrics csv error: %v", err)
	}
	records, err := csv.NewReader(bytes.NewReader(buf.Bytes())).ReadAll()
	if err != nil {
		t.Fatalf("csv read error: %v", err)
	}
	if len(records) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(records))
	}
	if records[1][3] != "20.0" {
		t.Fatalf("expected revenue change 20.0, got %q", records[1][3])
	}
	if records[2][3] != "" {
		t.Fatalf("zero previous must leave change empty, got %q", records[2][3])
	}
}

func TestWriteSeriesCSVShares(t *testing.T) {
	buf := &bytes.Buffer{}
	s := dataset.Series{Labels: []string{"Online", "Retail"}, Data: []float64{3, 1}}
	if err := WriteSeriesCSV(buf, "Channel", s); err != nil {
		t.Fatalf("series csv error: %v", err)
	}
	want := "Channel,Value,Share %\nOnline,3,75.0\nRetail,1,25.0\n"
	if buf.String() != want {
		t.Fatalf("unexpected csv:\n%s", buf.String())
	}
}

func TestWriteMonthlyCSVRejectsMismatch(t *testing.T) {
	err := WriteMonthlyCSV(&bytes.Buffer{}, dataset.MonthlySales{Series: dataset.Series{Labels: []string{"Jan"}}})
	if !errors.Is(err, dataset.ErrInvalidSeries) {
		t.Fatalf("expected invalid series, got %v", err)
	}
}

func TestWriteDatasetCSVSections(t *testing.T) {
	series := dataset.Series{Labels: []string{"A"}, Data: []float64{1}}
	ds := &dataset.SalesDataset{
		MonthlySales:  dataset.MonthlySales{Series: dataset.Series{Labels: []string{"Jan", "Feb"}, Data: []float64{1, 2}}, PreviousData: []float64{1}},
		ProductSales:  series,
		RegionalSales: series,
		ChannelSales:  series,
	}
	buf := &bytes.Buffer{}
	if err := WriteDatasetCSV(buf, ds); err != nil {
		t.Fatalf("dataset csv error: %v", err)
	}
	out := buf.String()
	if got := strings.Count(out, "\n\n"); got != 4 {
		t.Fatalf("expected 4 section breaks, got %d:\n%s", got, out)
	}
	if !strings.Contains(out, "Feb,2,\n") {
		t.Fatalf("missing previous value should be blank:\n%s", out)
	}
	if err := WriteDatasetCSV(buf, nil); err == nil {
		t.Fatal("expected error for nil dataset")
	}
}
