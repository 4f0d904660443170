// Package dataset loads the sales document that drives the dashboard.
package dataset

import "time"

// SalesDataset is the root document consumed by the dashboard.
type SalesDataset struct {
	Metadata      Metadata     `json:"metadata"`
	Metrics       Metrics      `json:"metrics"`
	MonthlySales  MonthlySales `json:"monthlySales"`
	ProductSales  Series       `json:"productSales"`
	RegionalSales Series       `json:"regionalSales"`
	ChannelSales  Series       `json:"channelSales"`
}

// Metadata carries document level attributes.
type Metadata struct {
	LastUpdated time.Time `json:"lastUpdated"`
}

// Metrics holds headline figures for the current and previous period.
type Metrics struct {
	TotalRevenue     float64 `json:"totalRevenue" validate:"gte=0"`
	PreviousRevenue  float64 `json:"previousRevenue" validate:"gte=0"`
	UnitsSold        float64 `json:"unitsSold" validate:"gte=0"`
	PreviousUnits    float64 `json:"previousUnits" validate:"gte=0"`
	AvgOrderValue    float64 `json:"avgOrderValue" validate:"gte=0"`
	PreviousAvgOrder float64 `json:"previousAvgOrder" validate:"gte=0"`
	TopProduct       string  `json:"topProduct"`
	TopProductSales  float64 `json:"topProductSales" validate:"gte=0"`
	Period           string  `json:"period"`
}

// Series is an ordered set of labels with parallel values and optional colors.
type Series struct {
	Labels []string  `json:"labels" validate:"required,min=1,dive,required"`
	Data   []float64 `json:"data" validate:"required,min=1"`
	Colors []string  `json:"colors,omitempty"`
}

// MonthlySales extends Series with the previous period values.
type MonthlySales struct {
	Series
	PreviousData []float64 `json:"previousData,omitempty"`
}

// Total sums the series values.
func (s Series) Total() float64 {
	total := 0.0
	for _, v := range s.Data {
		total += v
	}
	return total
}
