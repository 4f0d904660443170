package dataset

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSeries(t *testing.T) {
	cases := []struct {
		name    string
		series  Series
		wantErr bool
	}{
		{"valid", Series{Labels: []string{"a", "b"}, Data: []float64{1, 2}}, false},
		{"valid with colors", Series{Labels: []string{"a"}, Data: []float64{1}, Colors: []string{"#fff"}}, false},
		{"missing labels", Series{Data: []float64{1}}, true},
		{"empty values", Series{Labels: []string{"a"}, Data: []float64{}}, true},
		{"length mismatch", Series{Labels: []string{"a", "b"}, Data: []float64{1}}, true},
		{"blank label", Series{Labels: []string{""}, Data: []float64{1}}, true},
		{"color mismatch", Series{Labels: []string{"a", "b"}, Data: []float64{1, 2}, Colors: []string{"#fff"}}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateSeries("productSales", tc.series)
			if !tc.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, ErrInvalidSeries), "expected ErrInvalidSeries, got %v", err)
			assert.Contains(t, err.Error(), "productSales")
		})
	}
}

func TestValidateMonthlyPreviousLength(t *testing.T) {
	m := MonthlySales{Series: Series{Labels: []string{"Jan", "Feb"}, Data: []float64{1, 2}}, PreviousData: []float64{1}}
	assert.ErrorIs(t, ValidateMonthly(m), ErrInvalidSeries)
}

func TestValidateMetricsRejectsNegative(t *testing.T) {
	assert.Error(t, ValidateMetrics(Metrics{TotalRevenue: -1}))
	assert.NoError(t, ValidateMetrics(Metrics{TotalRevenue: 1}))
}
