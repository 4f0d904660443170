package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

// DefaultPath is the relative location of the dataset document.
const DefaultPath = "data/sales-data.json"

// Loader fetches and parses the sales dataset. Implementations make a single
// attempt and never retry.
type Loader interface {
	Load(ctx context.Context) (*SalesDataset, error)
}

// Decode parses raw JSON into a dataset, reporting failures as *ParseError.
func Decode(source string, raw []byte) (*SalesDataset, error) {
	var ds SalesDataset
	if err := json.Unmarshal(raw, &ds); err != nil {
		return nil, &ParseError{Source: source, Err: err}
	}
	return &ds, nil
}

// FileLoader reads the dataset from the local filesystem.
type FileLoader struct {
	Path string
}

// Load reads and decodes the file.
func (l FileLoader) Load(ctx context.Context) (*SalesDataset, error) {
	path := l.Path
	if strings.TrimSpace(path) == "" {
		path = DefaultPath
	}
	if err := ctx.Err(); err != nil {
		return nil, &NetworkError{Source: path, Err: err}
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &NetworkError{Source: path, Err: err}
	}
	return Decode(path, raw)
}

// HTTPLoader fetches the dataset over HTTP.
type HTTPLoader struct {
	URL    string
	Client *http.Client
}

// Load performs a GET request and decodes the body.
func (l HTTPLoader) Load(ctx context.Context) (*SalesDataset, error) {
	if strings.TrimSpace(l.URL) == "" {
		return nil, &NetworkError{Source: "http", Err: errors.New("url required")}
	}
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.URL, nil)
	if err != nil {
		return nil, &NetworkError{Source: l.URL, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, &NetworkError{Source: l.URL, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &NetworkError{Source: l.URL, Status: resp.StatusCode}
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Source: l.URL, Err: err}
	}
	return Decode(l.URL, raw)
}

// RowQuerier is the subset of pgxpool.Pool used by PostgresLoader.
type RowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const latestDocumentQuery = `SELECT document FROM sales_datasets ORDER BY updated_at DESC LIMIT 1`

// PostgresLoader reads the most recent dataset document stored as JSONB.
type PostgresLoader struct {
	Pool RowQuerier
}

// Load fetches the latest document row.
func (l PostgresLoader) Load(ctx context.Context) (*SalesDataset, error) {
	if l.Pool == nil {
		return nil, &NetworkError{Source: "postgres", Err: errors.New("pool not configured")}
	}
	var raw []byte
	if err := l.Pool.QueryRow(ctx, latestDocumentQuery).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NetworkError{Source: "postgres", Err: errors.New("no dataset stored")}
		}
		return nil, &NetworkError{Source: "postgres", Err: err}
	}
	return Decode("postgres", raw)
}

// TimeoutLoader bounds another loader with a deadline. A zero timeout leaves the
// call unbounded.
type TimeoutLoader struct {
	Next    Loader
	Timeout time.Duration
}

// Load delegates to Next under the configured deadline.
func (l TimeoutLoader) Load(ctx context.Context) (*SalesDataset, error) {
	if l.Next == nil {
		return nil, fmt.Errorf("dataset: loader missing")
	}
	if l.Timeout <= 0 {
		return l.Next.Load(ctx)
	}
	ctx, cancel := context.WithTimeout(ctx, l.Timeout)
	defer cancel()
	return l.Next.Load(ctx)
}

// Source names a dataset backend.
type Source string

// Supported dataset backends.
const (
	SourceFile     Source = "file"
	SourceHTTP     Source = "http"
	SourcePostgres Source = "postgres"
)

// Options selects and configures a Loader.
type Options struct {
	Source  Source
	Path    string
	URL     string
	Client  *http.Client
	Pool    RowQuerier
	Timeout time.Duration
}

// NewLoader builds the loader named by opts.Source, bounded by opts.Timeout.
func NewLoader(opts Options) (Loader, error) {
	var next Loader
	switch Source(strings.ToLower(string(opts.Source))) {
	case "", SourceFile:
		next = FileLoader{Path: opts.Path}
	case SourceHTTP:
		next = HTTPLoader{URL: opts.URL, Client: opts.Client}
	case SourcePostgres:
		next = PostgresLoader{Pool: opts.Pool}
	default:
		return nil, fmt.Errorf("dataset: unknown source %q", opts.Source)
	}
	return TimeoutLoader{Next: next, Timeout: opts.Timeout}, nil
}
