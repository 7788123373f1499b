package persona

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/AlexandrSher/danswer/internal/entity"
)

const defaultRecencyBias = "base_decay"

func promptNameFromPersonaName(personaName string) string {
	return "default-prompt__" + personaName
}

// buildPromptRequest derives the Prompt body from the persona name. Name
// and description are fully determined by the persona name and the prompt
// is always shared.
func buildPromptRequest(personaName, systemPrompt, taskPrompt string) *entity.PromptRequest {
	return &entity.PromptRequest{
		Name:         promptNameFromPersonaName(personaName),
		Description:  "Default prompt for persona " + personaName,
		Shared:       true,
		SystemPrompt: systemPrompt,
		TaskPrompt:   taskPrompt,
	}
}

// buildPersonaUpsertRequest assembles the persona admin body. A persona
// references exactly one prompt id at creation/update time.
func buildPersonaUpsertRequest(req *entity.PersonaCreationRequest, promptID int) *entity.PersonaUpsertRequest {
	documentSetIDs := req.DocumentSetIDs
	if documentSetIDs == nil {
		documentSetIDs = []int{}
	}

	return &entity.PersonaUpsertRequest{
		Name:                    req.Name,
		Description:             req.Description,
		Shared:                  true,
		NumChunks:               req.NumChunks,
		LLMRelevanceFilter:      req.LLMRelevanceFilter,
		LLMFilterExtraction:     false,
		RecencyBias:             defaultRecencyBias,
		PromptIDs:               []int{promptID},
		DocumentSetIDs:          documentSetIDs,
		LLMModelVersionOverride: req.LLMModelVersionOverride,
	}
}

// promptExplorerQuery builds the preview query string with keys in fixed
// order. Components are encoded like encodeURIComponent does, with space
// as %20 rather than +.
func promptExplorerQuery(systemPrompt, taskPrompt string, retrievalDisabled bool) string {
	pairs := []struct {
		key   string
		value string
	}{
		{"system_prompt", systemPrompt},
		{"task_prompt", taskPrompt},
		{"retrieval_disabled", strconv.FormatBool(retrievalDisabled)},
	}

	parts := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		parts = append(parts, encodeQueryComponent(pair.key)+"="+encodeQueryComponent(pair.value))
	}

	return strings.Join(parts, "&")
}

func encodeQueryComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
