// Package routes assembles the HTTP surface: middleware, huma operations,
// metrics and the client page.
package routes

import (
	"github.com/danielgtaylor/huma/v2"

	"github.com/tikkun/tikkun-api/internal/version"
)

// NewHumaConfig creates the Huma configuration for the API.
func NewHumaConfig() huma.Config {
	cfg := huma.DefaultConfig("Tikkun API", version.Get().Short())
	cfg.Info.Description = "Relay that forwards Hebrew text and a named instruction profile to the Anthropic Messages API."

	// Response bodies keep the plain shape clients expect, without $schema.
	cfg.CreateHooks = nil

	cfg.Tags = []*huma.Tag{
		{Name: "Health", Description: "Liveness and registry size"},
		{Name: "Catalog", Description: "Available functions and models"},
		{Name: "Chat", Description: "Text processing through the upstream model"},
	}

	return cfg
}
