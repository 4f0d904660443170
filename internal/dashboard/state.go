package dashboard

import (
	"html/template"
	"sync"

	"github.com/odyssey-erp/salesdash/internal/chart"
	"github.com/odyssey-erp/salesdash/internal/dataset"
	"github.com/odyssey-erp/salesdash/internal/filter"
	"github.com/odyssey-erp/salesdash/internal/kpi"
	"github.com/odyssey-erp/salesdash/internal/notify"
	"github.com/odyssey-erp/salesdash/internal/theme"
)

// State is the process wide dashboard context. The components it points at
// guard their own fields; State guards what Init populates.
type State struct {
	Theme  *theme.Controller
	Charts *chart.Renderer
	Filter *filter.Controller
	Notes  *notify.Service

	mu           sync.RWMutex
	data         *dataset.SalesDataset
	metrics      *kpi.DisplayMetrics
	lastUpdated  string
	currentYear  int
	filtersReady bool
	closed       bool
}

// ChartView is one rendered chart slot.
type ChartView struct {
	Spec chart.Spec
	SVG  template.HTML
}

// Snapshot is a consistent read of everything the page shows.
type Snapshot struct {
	Theme        theme.Theme
	ThemeIcon    string
	Metrics      *kpi.DisplayMetrics
	LastUpdated  string
	CurrentYear  int
	Range        filter.Range
	MinDate      string
	MaxDate      string
	FiltersReady bool
	Charts       []ChartView
	Toasts       []notify.Toast
}

// Dataset returns the loaded dataset, or nil before a successful load.
func (s *State) Dataset() *dataset.SalesDataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data
}

// Metrics returns the formatted metric cards.
func (s *State) Metrics() (kpi.DisplayMetrics, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.metrics == nil {
		return kpi.DisplayMetrics{}, false
	}
	return *s.metrics, true
}

// FiltersReady reports whether the filter controls are wired.
func (s *State) FiltersReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filtersReady
}

func (s *State) setYear(year int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentYear = year
}

func (s *State) setLoaded(ds *dataset.SalesDataset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = ds
	s.lastUpdated = kpi.FormatLastUpdated(ds.Metadata.LastUpdated)
}

func (s *State) setMetrics(m kpi.DisplayMetrics) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics = &m
}

func (s *State) setFiltersReady() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filtersReady = true
}

// Snapshot copies the current view.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	snap := Snapshot{
		LastUpdated:  s.lastUpdated,
		CurrentYear:  s.currentYear,
		FiltersReady: s.filtersReady,
	}
	if s.metrics != nil {
		m := *s.metrics
		snap.Metrics = &m
	}
	s.mu.RUnlock()

	current := s.Theme.Current()
	snap.Theme = current
	snap.ThemeIcon = current.Icon()
	snap.Range = s.Filter.Range()
	snap.MinDate, snap.MaxDate = s.Filter.Bounds()
	for _, h := range s.Charts.Handles().List() {
		snap.Charts = append(snap.Charts, ChartView{Spec: h.Spec(), SVG: h.SVG()})
	}
	snap.Toasts = s.Notes.Active()
	return snap
}

// Close destroys the charts and stops pending toast timers.
func (s *State) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()
	s.Charts.DestroyAll()
	s.Notes.Close()
}
