// Package circuit1021 embeds the dashboard templates and static files.
package circuit1021

import "embed"

// Served from disk instead when the server runs in dev mode.

//go:embed all:frontend/static
var StaticFS embed.FS

//go:embed all:frontend/templates
var TemplateFS embed.FS
