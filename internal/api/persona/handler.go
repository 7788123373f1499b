package persona

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/AlexandrSher/danswer/internal/entity"
	"github.com/AlexandrSher/danswer/internal/pkg/response"
	"github.com/go-chi/chi/v5"
)

// Handler implements the slice of the danswer admin API the gateway
// consumes, backed by the in-memory store.
type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) CreatePrompt(w http.ResponseWriter, r *http.Request) {
	var req entity.PromptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid prompt body")
		return
	}
	if req.Name == "" {
		response.Error(w, http.StatusBadRequest, "prompt name is required")
		return
	}

	prompt := h.store.CreatePrompt(entity.PromptSnapshot{
		Name:         req.Name,
		Description:  req.Description,
		Shared:       req.Shared,
		SystemPrompt: req.SystemPrompt,
		TaskPrompt:   req.TaskPrompt,
	})

	response.Created(w, prompt)
}

func (h *Handler) UpdatePrompt(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "promptID"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid prompt id")
		return
	}

	var req entity.PromptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid prompt body")
		return
	}

	prompt := entity.PromptSnapshot{
		ID:           id,
		Name:         req.Name,
		Description:  req.Description,
		Shared:       req.Shared,
		SystemPrompt: req.SystemPrompt,
		TaskPrompt:   req.TaskPrompt,
	}
	if !h.store.UpdatePrompt(prompt) {
		response.Error(w, http.StatusNotFound, "prompt not found")
		return
	}

	response.Success(w, prompt)
}

func (h *Handler) CreatePersona(w http.ResponseWriter, r *http.Request) {
	var req entity.PersonaUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid persona body")
		return
	}
	if errMsg := h.validateUpsert(&req); errMsg != "" {
		response.Error(w, http.StatusBadRequest, errMsg)
		return
	}

	persona := h.store.CreatePersona(snapshotFromUpsert(&req))

	response.Created(w, persona)
}

func (h *Handler) UpdatePersona(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "personaID"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid persona id")
		return
	}

	var req entity.PersonaUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid persona body")
		return
	}
	if errMsg := h.validateUpsert(&req); errMsg != "" {
		response.Error(w, http.StatusBadRequest, errMsg)
		return
	}

	persona := snapshotFromUpsert(&req)
	persona.ID = id
	if !h.store.UpdatePersona(persona) {
		response.Error(w, http.StatusNotFound, "persona not found")
		return
	}

	response.Success(w, persona)
}

func (h *Handler) DeletePersona(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "personaID"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid persona id")
		return
	}

	if !h.store.DeletePersona(id) {
		response.Error(w, http.StatusNotFound, "persona not found")
		return
	}

	response.NoContent(w)
}

// PromptExplorer assembles the final prompt template from the query
// parameters without persisting anything.
func (h *Handler) PromptExplorer(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	systemPrompt := query.Get("system_prompt")
	taskPrompt := query.Get("task_prompt")
	retrievalDisabled, _ := strconv.ParseBool(query.Get("retrieval_disabled"))

	response.Success(w, entity.PromptTemplateResponse{
		FinalPromptTemplate: buildFinalPromptTemplate(systemPrompt, taskPrompt, retrievalDisabled),
	})
}

// validateUpsert returns an error message, or "" when the body is valid.
// A persona must reference exactly one existing prompt.
func (h *Handler) validateUpsert(req *entity.PersonaUpsertRequest) string {
	if req.Name == "" {
		return "persona name is required"
	}
	if len(req.PromptIDs) != 1 {
		return "persona must reference exactly one prompt"
	}
	if _, found := h.store.GetPrompt(req.PromptIDs[0]); !found {
		return "referenced prompt does not exist"
	}
	return ""
}

func snapshotFromUpsert(req *entity.PersonaUpsertRequest) entity.PersonaSnapshot {
	return entity.PersonaSnapshot{
		Name:                    req.Name,
		Description:             req.Description,
		Shared:                  req.Shared,
		NumChunks:               req.NumChunks,
		LLMRelevanceFilter:      req.LLMRelevanceFilter,
		LLMFilterExtraction:     req.LLMFilterExtraction,
		RecencyBias:             req.RecencyBias,
		PromptIDs:               req.PromptIDs,
		DocumentSetIDs:          req.DocumentSetIDs,
		LLMModelVersionOverride: req.LLMModelVersionOverride,
	}
}

func buildFinalPromptTemplate(systemPrompt, taskPrompt string, retrievalDisabled bool) string {
	var parts []string
	if systemPrompt != "" {
		parts = append(parts, systemPrompt)
	}
	if !retrievalDisabled {
		parts = append(parts, "CONTEXT:\n{context_docs}")
	}
	if taskPrompt != "" {
		parts = append(parts, taskPrompt)
	}
	return strings.Join(parts, "\n\n")
}
