package entity

// PromptRequest is the body for creating or updating a Prompt resource.
// The gateway derives name and description from the persona name; callers
// never set them directly.
type PromptRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Shared       bool   `json:"shared"`
	SystemPrompt string `json:"system_prompt"`
	TaskPrompt   string `json:"task_prompt"`
}

// PersonaCreationRequest is the caller-facing input for creating a persona.
type PersonaCreationRequest struct {
	Name                    string  `json:"name"`
	Description             string  `json:"description"`
	SystemPrompt            string  `json:"system_prompt"`
	TaskPrompt              string  `json:"task_prompt"`
	DocumentSetIDs          []int   `json:"document_set_ids"`
	NumChunks               *int    `json:"num_chunks,omitempty"`
	LLMRelevanceFilter      *bool   `json:"llm_relevance_filter,omitempty"`
	LLMModelVersionOverride *string `json:"llm_model_version_override,omitempty"`
}

// PersonaUpdateRequest is the caller-facing input for updating a persona.
// ExistingPromptID selects the Prompt to patch in place; when nil a fresh
// Prompt is created instead.
type PersonaUpdateRequest struct {
	PersonaCreationRequest
	ID               int  `json:"id"`
	ExistingPromptID *int `json:"existing_prompt_id,omitempty"`
}

// PersonaUpsertRequest is the wire body sent to the persona admin endpoints.
type PersonaUpsertRequest struct {
	Name                    string  `json:"name"`
	Description             string  `json:"description"`
	Shared                  bool    `json:"shared"`
	NumChunks               *int    `json:"num_chunks,omitempty"`
	LLMRelevanceFilter      *bool   `json:"llm_relevance_filter,omitempty"`
	LLMFilterExtraction     bool    `json:"llm_filter_extraction"`
	RecencyBias             string  `json:"recency_bias"`
	PromptIDs               []int   `json:"prompt_ids"`
	DocumentSetIDs          []int   `json:"document_set_ids"`
	LLMModelVersionOverride *string `json:"llm_model_version_override,omitempty"`
}

// PromptSnapshot is a Prompt resource as the backend returns it.
type PromptSnapshot struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Shared       bool   `json:"shared"`
	SystemPrompt string `json:"system_prompt"`
	TaskPrompt   string `json:"task_prompt"`
}

// PersonaSnapshot is a Persona resource as the backend returns it.
type PersonaSnapshot struct {
	ID                      int     `json:"id"`
	Name                    string  `json:"name"`
	Description             string  `json:"description"`
	Shared                  bool    `json:"shared"`
	NumChunks               *int    `json:"num_chunks,omitempty"`
	LLMRelevanceFilter      *bool   `json:"llm_relevance_filter,omitempty"`
	LLMFilterExtraction     bool    `json:"llm_filter_extraction"`
	RecencyBias             string  `json:"recency_bias"`
	PromptIDs               []int   `json:"prompt_ids"`
	DocumentSetIDs          []int   `json:"document_set_ids"`
	LLMModelVersionOverride *string `json:"llm_model_version_override,omitempty"`
}

// PromptTemplateResponse is the prompt-explorer reply carrying the fully
// assembled prompt template.
type PromptTemplateResponse struct {
	FinalPromptTemplate string `json:"final_prompt_template"`
}
