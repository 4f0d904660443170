// Package web holds the dashboard page templates and static assets.
package web

import "embed"

var (
	// Templates holds layouts, partials and pages keyed by their define names.
	//
	//go:embed templates
	Templates embed.FS

	// Static is served under /static.
	//
	//go:embed static
	Static embed.FS
)
