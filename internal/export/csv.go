// Package export serialises the sales dataset for download.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/odyssey-erp/salesdash/internal/dataset"
	"github.com/odyssey-erp/salesdash/internal/kpi"
)

// WriteMetricsCSV serialises the headline metrics with their change.
func WriteMetricsCSV(w io.Writer, m dataset.Metrics) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"Metric", "Current", "Previous", "Change %"}); err != nil {
		return err
	}
	records := [][]string{
		{"Total Revenue", formatFloat(m.TotalRevenue), formatFloat(m.PreviousRevenue), formatChange(m.TotalRevenue, m.PreviousRevenue)},
		{"Units Sold", formatFloat(m.UnitsSold), formatFloat(m.PreviousUnits), formatChange(m.UnitsSold, m.PreviousUnits)},
		{"Avg. Order Value", formatFloat(m.AvgOrderValue), formatFloat(m.PreviousAvgOrder), formatChange(m.AvgOrderValue, m.PreviousAvgOrder)},
		{"Top Product", m.TopProduct, formatFloat(m.TopProductSales), ""},
	}
	for _, record := range records {
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteMonthlyCSV emits the sales trend with the previous period column.
func WriteMonthlyCSV(w io.Writer, s dataset.MonthlySales) error {
	if len(s.Labels) != len(s.Data) {
		return fmt.Errorf("export: monthly sales: %w", dataset.ErrInvalidSeries)
	}
	writer := csv.NewWriter(w)
	defer writer.Flush()
	if err := writer.Write([]string{"Month", "Current Period", "Previous Period"}); err != nil {
		return err
	}
	for i, label := range s.Labels {
		previous := ""
		if i < len(s.PreviousData) {
			previous = formatFloat(s.PreviousData[i])
		}
		if err := writer.Write([]string{label, formatFloat(s.Data[i]), previous}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteSeriesCSV emits a labelled series with each value's share of the total.
func WriteSeriesCSV(w io.Writer, heading string, s dataset.Series) error {
	if len(s.Labels) != len(s.Data) {
		return fmt.Errorf("export: %s: %w", heading, dataset.ErrInvalidSeries)
	}
	total := s.Total()
	writer := csv.NewWriter(w)
	defer writer.Flush()
	if err := writer.Write([]string{heading, "Value", "Share %"}); err != nil {
		return err
	}
	for i, label := range s.Labels {
		share := ""
		if total != 0 {
			share = strconv.FormatFloat(s.Data[i]/total*100, 'f', 1, 64)
		}
		if err := writer.Write([]string{label, formatFloat(s.Data[i]), share}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteDatasetCSV writes every section separated by a blank line.
func WriteDatasetCSV(w io.Writer, ds *dataset.SalesDataset) error {
	if ds == nil {
		return fmt.Errorf("export: dataset required")
	}
	sections := []func(io.Writer) error{
		func(w io.Writer) error { return WriteMetricsCSV(w, ds.Metrics) },
		func(w io.Writer) error { return WriteMonthlyCSV(w, ds.MonthlySales) },
		func(w io.Writer) error { return WriteSeriesCSV(w, "Product", ds.ProductSales) },
		func(w io.Writer) error { return WriteSeriesCSV(w, "Region", ds.RegionalSales) },
		func(w io.Writer) error { return WriteSeriesCSV(w, "Channel", ds.ChannelSales) },
	}
	for i, write := range sections {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := write(w); err != nil {
			return err
		}
	}
	return nil
}

func formatChange(current, previous float64) string {
	pct, ok := kpi.PercentChange(current, previous)
	if !ok {
		return ""
	}
	return strconv.FormatFloat(pct, 'f', 1, 64)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
