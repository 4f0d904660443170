package dataset

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJSON = `{
  "metadata": {"lastUpdated": "2023-10-05T14:30:00Z"},
  "metrics": {"totalRevenue": 120000, "previousRevenue": 100000, "unitsSold": 10, "previousUnits": 8,
    "avgOrderValue": 50, "previousAvgOrder": 50, "topProduct": "Widget", "topProductSales": 4, "period": "last month"},
  "monthlySales": {"labels": ["Jan", "Feb"], "data": [1, 2], "previousData": [1, 1]},
  "productSales": {"labels": ["A"], "data": [3], "colors": ["#111111"]},
  "regionalSales": {"labels": ["North", "South"], "data": [60, 40], "colors": ["#222222", "#333333"]},
  "channelSales": {"labels": ["Online"], "data": [100], "colors": ["#444444"]}
}`

func TestFileLoaderReadsDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleJSON), 0o600))

	ds, err := FileLoader{Path: path}.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 120000.0, ds.Metrics.TotalRevenue)
	assert.Equal(t, []string{"Jan", "Feb"}, ds.MonthlySales.Labels)
	assert.Equal(t, []float64{1, 1}, ds.MonthlySales.PreviousData)
	assert.Equal(t, 2023, ds.Metadata.LastUpdated.Year())
	assert.NoError(t, ds.Validate())
}

func TestFileLoaderMissingFileIsNetworkError(t *testing.T) {
	_, err := FileLoader{Path: filepath.Join(t.TempDir(), "missing.json")}.Load(context.Background())
	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr), "expected NetworkError, got %v", err)
	assert.True(t, IsLoadError(err))
}

func TestHTTPLoaderStatusIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := HTTPLoader{URL: srv.URL}.Load(context.Background())
	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.Equal(t, http.StatusNotFound, netErr.Status)
}

func TestHTTPLoaderMalformedBodyIsParseError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"metrics": `))
	}))
	defer srv.Close()

	_, err := HTTPLoader{URL: srv.URL}.Load(context.Background())
	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr), "expected ParseError, got %v", err)
	assert.True(t, IsLoadError(err))
}

func TestHTTPLoaderSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleJSON))
	}))
	defer srv.Close()

	ds, err := HTTPLoader{URL: srv.URL, Client: srv.Client()}.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Widget", ds.Metrics.TopProduct)
}

type stubRow struct {
	raw []byte
	err error
}

func (r stubRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*[]byte)) = r.raw
	return nil
}

type stubPool struct {
	row stubRow
}

func (p stubPool) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return p.row
}

func TestPostgresLoader(t *testing.T) {
	ds, err := PostgresLoader{Pool: stubPool{row: stubRow{raw: []byte(sampleJSON)}}}.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3.0, ds.ProductSales.Data[0])

	_, err = PostgresLoader{Pool: stubPool{row: stubRow{err: pgx.ErrNoRows}}}.Load(context.Background())
	var netErr *NetworkError
	assert.True(t, errors.As(err, &netErr))

	_, err = PostgresLoader{Pool: stubPool{row: stubRow{raw: []byte("nope")}}}.Load(context.Background())
	var parseErr *ParseError
	assert.True(t, errors.As(err, &parseErr))
}

func TestNewLoaderSelectsSource(t *testing.T) {
	l, err := NewLoader(Options{Source: "FILE", Path: "x.json"})
	require.NoError(t, err)
	assert.Equal(t, FileLoader{Path: "x.json"}, l.(TimeoutLoader).Next)

	_, err = NewLoader(Options{Source: "ftp"})
	assert.Error(t, err)
}
