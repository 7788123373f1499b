package persona

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts the persona admin endpoints consumed by the gateway.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/api/prompt", h.CreatePrompt)
	r.Patch("/api/prompt/{promptID}", h.UpdatePrompt)

	r.Post("/api/admin/persona", h.CreatePersona)
	r.Patch("/api/admin/persona/{personaID}", h.UpdatePersona)
	r.Delete("/api/admin/persona/{personaID}", h.DeletePersona)

	r.Get("/api/persona/utils/prompt-explorer", h.PromptExplorer)
}
