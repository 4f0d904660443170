package dashboard

// Element IDs shared between the page template and the event table.
const (
	IDSalesChart      = "sales-chart"
	IDProductChart    = "product-chart"
	IDRegionChart     = "region-chart"
	IDChannelChart    = "channel-chart"
	IDStartDate       = "start-date"
	IDEndDate         = "end-date"
	IDApplyFilter     = "apply-filter"
	IDResetFilter     = "reset-filter"
	IDThemeToggle     = "theme-toggle"
	IDLastUpdated     = "last-updated"
	IDCurrentYear     = "current-year"
	IDTotalRevenue    = "total-revenue"
	IDRevenueChange   = "revenue-change"
	IDUnitsSold       = "units-sold"
	IDUnitsChange     = "units-change"
	IDTopProduct      = "top-product"
	IDTopProductSales = "top-product-sales"
	IDAvgOrder        = "avg-order"
	IDOrderChange     = "order-change"
)

// ElementIDs lists every ID the page must render.
func ElementIDs() []string {
	return []string{
		IDSalesChart, IDProductChart, IDRegionChart, IDChannelChart,
		IDStartDate, IDEndDate, IDApplyFilter, IDResetFilter, IDThemeToggle,
		IDLastUpdated, IDCurrentYear,
		IDTotalRevenue, IDRevenueChange, IDUnitsSold, IDUnitsChange,
		IDTopProduct, IDTopProductSales, IDAvgOrder, IDOrderChange,
	}
}
