// Package web holds the wizard page and its static assets.
package web

import "embed"

//go:embed templates static
var Assets embed.FS
