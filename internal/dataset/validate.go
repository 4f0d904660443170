package dataset

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateSeries checks that a series has labels with a value for each of them.
func ValidateSeries(name string, s Series) error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %s: %s", ErrInvalidSeries, name, describe(err))
	}
	if len(s.Labels) != len(s.Data) {
		return fmt.Errorf("%w: %s: %d labels but %d values", ErrInvalidSeries, name, len(s.Labels), len(s.Data))
	}
	if len(s.Colors) > 0 && len(s.Colors) != len(s.Labels) {
		return fmt.Errorf("%w: %s: %d colors for %d labels", ErrInvalidSeries, name, len(s.Colors), len(s.Labels))
	}
	return nil
}

// ValidateMonthly checks the trend series including its previous period overlay.
func ValidateMonthly(s MonthlySales) error {
	if err := ValidateSeries("monthlySales", s.Series); err != nil {
		return err
	}
	if len(s.PreviousData) > 0 && len(s.PreviousData) != len(s.Labels) {
		return fmt.Errorf("%w: monthlySales: %d previous values for %d labels", ErrInvalidSeries, len(s.PreviousData), len(s.Labels))
	}
	return nil
}

// ValidateMetrics checks the headline figures.
func ValidateMetrics(m Metrics) error {
	if err := validate.Struct(m); err != nil {
		return fmt.Errorf("dataset: invalid metrics: %s", describe(err))
	}
	return nil
}

// Validate runs every series and metric check on the document.
func (d *SalesDataset) Validate() error {
	if d == nil {
		return fmt.Errorf("%w: dataset missing", ErrInvalidSeries)
	}
	if err := ValidateMetrics(d.Metrics); err != nil {
		return err
	}
	if err := ValidateMonthly(d.MonthlySales); err != nil {
		return err
	}
	named := []struct {
		name   string
		series Series
	}{
		{"productSales", d.ProductSales},
		{"regionalSales", d.RegionalSales},
		{"channelSales", d.ChannelSales},
	}
	for _, n := range named {
		if err := ValidateSeries(n.name, n.series); err != nil {
			return err
		}
	}
	return nil
}

func describe(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return err.Error()
	}
	first := verrs[0]
	return fmt.Sprintf("field %s failed %q", first.Field(), first.Tag())
}
