package routes

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/tikkun/tikkun-api/internal/http/handlers"
	"github.com/tikkun/tikkun-api/internal/http/mw"
)

// Register registers all API operations with the given Huma API instance.
func Register(api huma.API, h *handlers.Handlers, maxBodyBytes int64) {
	mw.PublicGet(api, "/api/health", h.Health,
		mw.WithTags("Health"),
		mw.WithSummary("Health check"),
		mw.WithOperationID("health"))

	mw.PublicGet(api, "/api/functions", h.ListFunctions,
		mw.WithTags("Catalog"),
		mw.WithSummary("List functions"),
		mw.WithDescription("Returns every registered function with its full configuration, in registration order."),
		mw.WithOperationID("listFunctions"))

	mw.PublicGet(api, "/api/models", h.ListModels,
		mw.WithTags("Catalog"),
		mw.WithSummary("List models"),
		mw.WithOperationID("listModels"))

	mw.PublicPost(api, "/api/chat", h.Chat,
		mw.WithTags("Chat"),
		mw.WithSummary("Process text"),
		mw.WithDescription("Resolves the function, applies overrides and relays one request to the upstream model."),
		mw.WithOperationID("chat"),
		mw.WithMaxBodyBytes(maxBodyBytes),
		mw.WithErrors(http.StatusBadRequest, http.StatusInternalServerError))

	// Probe (hidden from docs)
	mw.HiddenGet(api, "/healthz", h.Livez)
}
