package dashboardhttp

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/salesdash/internal/dashboard"
	"github.com/odyssey-erp/salesdash/internal/dataset"
	"github.com/odyssey-erp/salesdash/internal/filter"
	"github.com/odyssey-erp/salesdash/internal/theme"
	"github.com/odyssey-erp/salesdash/internal/view"
)

type stubLoader struct {
	ds  *dataset.SalesDataset
	err error
}

func (l stubLoader) Load(context.Context) (*dataset.SalesDataset, error) { return l.ds, l.err }

func fixture() *dataset.SalesDataset {
	return &dataset.SalesDataset{
		Metadata: dataset.Metadata{LastUpdated: time.Date(2023, 10, 1, 9, 30, 0, 0, time.UTC)},
		Metrics: dataset.Metrics{
			TotalRevenue: 120000, PreviousRevenue: 100000,
			UnitsSold: 946, PreviousUnits: 1000,
			AvgOrderValue: 80, PreviousAvgOrder: 80,
			TopProduct: "Wireless Headphones", TopProductSales: 1245,
			Period: "last period",
		},
		MonthlySales: dataset.MonthlySales{
			Series:       dataset.Series{Labels: []string{"Apr", "May"}, Data: []float64{10, 20}},
			PreviousData: []float64{8, 18},
		},
		ProductSales:  dataset.Series{Labels: []string{"A", "B"}, Data: []float64{3, 4}},
		RegionalSales: dataset.Series{Labels: []string{"N", "S"}, Data: []float64{1, 1}},
		ChannelSales:  dataset.Series{Labels: []string{"Web"}, Data: []float64{5}},
	}
}

func newServer(t *testing.T, loader dataset.Loader, initialise bool) (*httptest.Server, *dashboard.Dashboard) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	d := dashboard.New(dashboard.Params{
		Loader: loader,
		Theme:  theme.NewController(context.Background(), theme.NewMemoryStore(), false, logger),
		Logger: logger,
		Now:    func() time.Time { return time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC) },
	})
	t.Cleanup(d.Close)
	if initialise {
		_ = d.Init(context.Background())
	}

	engine, err := view.NewEngine()
	require.NoError(t, err)

	r := chi.NewRouter()
	NewHandler(logger, d, engine, nil).MountRoutes(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, d
}

func noRedirect() *http.Client {
	return &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}}
}

func TestPageRendersElements(t *testing.T) {
	srv, _ := newServer(t, stubLoader{ds: fixture()}, true)

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	html := string(body)
	for _, id := range dashboard.ElementIDs() {
		assert.Contains(t, html, `id="`+id+`"`, "missing element %s", id)
	}
	assert.Contains(t, html, "$120,000")
	assert.Contains(t, html, "Wireless Headphones")
}

func TestThemeToggleEventRedirects(t *testing.T) {
	srv, d := newServer(t, stubLoader{ds: fixture()}, true)

	resp, err := noRedirect().PostForm(srv.URL+"/events/theme-toggle/click", url.Values{})
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
	assert.Equal(t, theme.Dark, d.State().Theme.Current())
}

func TestApplyFilterEvent(t *testing.T) {
	srv, d := newServer(t, stubLoader{ds: fixture()}, true)

	form := url.Values{"start-date": {"2023-06-01"}, "end-date": {"2023-05-01"}}
	resp, err := noRedirect().PostForm(srv.URL+"/events/apply-filter/click", form)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)

	toasts := d.State().Notes.Active()
	require.Len(t, toasts, 1)
	assert.Equal(t, filter.MsgOrder, toasts[0].Message)
}

func TestEventErrors(t *testing.T) {
	srv, _ := newServer(t, stubLoader{ds: fixture()}, false)

	resp, err := noRedirect().PostForm(srv.URL+"/events/nope/click", url.Values{})
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = noRedirect().PostForm(srv.URL+"/events/reset-filter/click", url.Values{})
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestChartSVG(t *testing.T) {
	srv, _ := newServer(t, stubLoader{ds: fixture()}, true)

	resp, err := http.Get(srv.URL + "/charts/trend.svg")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))
	body, _ := io.ReadAll(resp.Body)
	assert.True(t, strings.Contains(string(body), "<svg"))

	resp, err = http.Get(srv.URL + "/charts/pie.svg")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestChartUnavailableBeforeInit(t *testing.T) {
	srv, _ := newServer(t, stubLoader{ds: fixture()}, false)

	resp, err := http.Get(srv.URL + "/charts/trend.svg")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestAPIDashboard(t *testing.T) {
	srv, _ := newServer(t, stubLoader{ds: fixture()}, true)

	resp, err := http.Get(srv.URL + "/api/dashboard")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Theme   string `json:"theme"`
		Ready   bool   `json:"ready"`
		Metrics struct {
			Revenue struct {
				Value  string `json:"value"`
				Change struct {
					Percent *float64 `json:"percent"`
					Tone    string   `json:"tone"`
				} `json:"change"`
			} `json:"totalRevenue"`
		} `json:"metrics"`
		Charts   []json.RawMessage `json:"charts"`
		Bindings []json.RawMessage `json:"bindings"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "light", body.Theme)
	assert.True(t, body.Ready)
	assert.Equal(t, "$120,000", body.Metrics.Revenue.Value)
	require.NotNil(t, body.Metrics.Revenue.Change.Percent)
	assert.InDelta(t, 20.0, *body.Metrics.Revenue.Change.Percent, 0.001)
	assert.Equal(t, "success", body.Metrics.Revenue.Change.Tone)
	assert.Len(t, body.Charts, 4)
	assert.Len(t, body.Bindings, 3)
}

func TestAPINotificationsAfterLoadFailure(t *testing.T) {
	srv, _ := newServer(t, stubLoader{err: &dataset.NetworkError{Source: "x", Status: 500}}, true)

	resp, err := http.Get(srv.URL + "/api/notifications")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body struct {
		Notifications []struct {
			Kind    string `json:"kind"`
			Message string `json:"message"`
		} `json:"notifications"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Notifications, 1)
	assert.Equal(t, "error", body.Notifications[0].Kind)
	assert.Equal(t, dashboard.LoadFailedMessage, body.Notifications[0].Message)
}

func TestExportCSV(t *testing.T) {
	srv, _ := newServer(t, stubLoader{ds: fixture()}, true)

	resp, err := http.Get(srv.URL + "/export.csv")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Wireless Headphones")
}

func TestExportCSVUnavailable(t *testing.T) {
	srv, _ := newServer(t, stubLoader{err: &dataset.NetworkError{Source: "x", Status: 500}}, true)

	resp, err := http.Get(srv.URL + "/export.csv")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "application/problem+json", resp.Header.Get("Content-Type"))
}
