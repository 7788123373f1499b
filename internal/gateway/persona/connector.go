package persona

import (
	"context"
	"fmt"
	"net/http"

	"github.com/AlexandrSher/danswer/internal/config"
	"github.com/AlexandrSher/danswer/internal/entity"
	pkglogger "github.com/AlexandrSher/danswer/internal/pkg/logger"
	pkghttp "github.com/AlexandrSher/danswer/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Endpoint paths of the danswer persona admin API.
const (
	promptsEndpoint        = "/api/prompt"
	promptEndpointFmt      = "/api/prompt/%d"
	personasEndpoint       = "/api/admin/persona"
	personaEndpointFmt     = "/api/admin/persona/%d"
	promptExplorerEndpoint = "/api/persona/utils/prompt-explorer"
)

// Connector orchestrates the dependent Prompt and Persona calls of the
// danswer admin API. It holds no state between calls; concurrent use by
// independent callers is safe.
type Connector struct {
	config    config.HTTPClientConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.HTTPClientConfig,
	logger *zap.Logger,
) *Connector {
	connCfg := &pkghttp.ConnectorConfig{
		BaseURL: cfg.Url,
		Logger:  logger,
	}

	return &Connector{
		connector: pkghttp.NewConnector(
			connCfg,
			pkghttp.WithRequestTimeout(cfg.RequestTimeout),
			pkghttp.WithConnTimeout(cfg.ConnTimeout),
			pkghttp.WithKeepAlive(cfg.KeepAlive),
			pkghttp.WithIdleConnTimeout(cfg.IdleConnTimeout),
			pkghttp.WithResponseHeaderTimeout(cfg.ResponseHeaderTimeout),
			pkghttp.WithRequestLogging(),
			pkghttp.WithRequestID(),
			pkghttp.WithAuthToken(cfg.Token),
		),
		config: cfg,
		logger: logger,
	}
}

// UpsertResult pairs the two responses of a create/update sequence.
// Persona is nil when the prompt step did not yield a usable id, which is
// the partial-failure signal: the caller must inspect both responses. A
// Prompt left behind by a failed persona step is not cleaned up.
type UpsertResult struct {
	Prompt  *pkghttp.Response
	Persona *pkghttp.Response
}

// promptIDEnvelope extracts just the id field from a prompt response.
// A pointer keeps "id: 0" distinct from "no id at all".
type promptIDEnvelope struct {
	ID *int `json:"id"`
}

// CreatePersona creates a Prompt with the derived default name and then a
// Persona referencing it. The persona call is attempted only when the
// prompt call returned 2xx with a parseable id. On a transport failure in
// the second step the result still carries the prompt response together
// with the error.
func (c *Connector) CreatePersona(ctx context.Context, req *entity.PersonaCreationRequest) (*UpsertResult, error) {
	ctx = pkglogger.AddFields(ctx, zap.String("persona", req.Name))
	ctxzap.Info(ctx, "creating persona")

	promptResp, err := c.connector.Do(ctx, http.MethodPost, promptsEndpoint,
		buildPromptRequest(req.Name, req.SystemPrompt, req.TaskPrompt))
	if err != nil {
		return nil, fmt.Errorf("create prompt: %w", err)
	}

	result := &UpsertResult{Prompt: promptResp}

	promptID, err := parsePromptID(promptResp)
	if err != nil {
		return result, fmt.Errorf("parse prompt id: %w", err)
	}
	if promptID == nil {
		ctxzap.Warn(ctx, "prompt creation yielded no id, skipping persona creation",
			zap.Int("status", promptResp.StatusCode))
		return result, nil
	}

	personaResp, err := c.connector.Do(ctx, http.MethodPost, personasEndpoint,
		buildPersonaUpsertRequest(req, *promptID))
	if err != nil {
		return result, fmt.Errorf("create persona: %w", err)
	}
	result.Persona = personaResp

	ctxzap.Info(ctx, "persona creation finished",
		zap.Int("prompt_status", promptResp.StatusCode),
		zap.Int("persona_status", personaResp.StatusCode),
	)

	return result, nil
}

// UpdatePersona patches the persona's Prompt in place when an existing
// prompt id is given, otherwise creates a fresh Prompt, then patches the
// Persona. The persona call requires the prompt step's response to be 2xx
// and an id to be known; with an existing id the id is kept regardless of
// the patch outcome, but a failed patch still skips the persona step.
func (c *Connector) UpdatePersona(ctx context.Context, req *entity.PersonaUpdateRequest) (*UpsertResult, error) {
	ctx = pkglogger.AddFields(ctx, zap.Int("persona_id", req.ID), zap.String("persona", req.Name))
	ctxzap.Info(ctx, "updating persona")

	promptBody := buildPromptRequest(req.Name, req.SystemPrompt, req.TaskPrompt)

	var (
		promptResp *pkghttp.Response
		promptID   *int
		err        error
	)
	if req.ExistingPromptID != nil {
		promptResp, err = c.connector.Do(ctx, http.MethodPatch,
			fmt.Sprintf(promptEndpointFmt, *req.ExistingPromptID), promptBody)
		if err != nil {
			return nil, fmt.Errorf("update prompt: %w", err)
		}
		promptID = req.ExistingPromptID
	} else {
		promptResp, err = c.connector.Do(ctx, http.MethodPost, promptsEndpoint, promptBody)
		if err != nil {
			return nil, fmt.Errorf("create prompt: %w", err)
		}
		promptID, err = parsePromptID(promptResp)
		if err != nil {
			return &UpsertResult{Prompt: promptResp}, fmt.Errorf("parse prompt id: %w", err)
		}
	}

	result := &UpsertResult{Prompt: promptResp}

	if !promptResp.OK() || promptID == nil {
		ctxzap.Warn(ctx, "prompt step failed, skipping persona update",
			zap.Int("status", promptResp.StatusCode))
		return result, nil
	}

	personaResp, err := c.connector.Do(ctx, http.MethodPatch,
		fmt.Sprintf(personaEndpointFmt, req.ID),
		buildPersonaUpsertRequest(&req.PersonaCreationRequest, *promptID))
	if err != nil {
		return result, fmt.Errorf("update persona: %w", err)
	}
	result.Persona = personaResp

	ctxzap.Info(ctx, "persona update finished",
		zap.Int("prompt_status", promptResp.StatusCode),
		zap.Int("persona_status", personaResp.StatusCode),
	)

	return result, nil
}

// DeletePersona deletes a single persona. The associated Prompt is left
// untouched and no pre-checks are made.
func (c *Connector) DeletePersona(ctx context.Context, personaID int) (*pkghttp.Response, error) {
	ctxzap.Info(ctx, "deleting persona", zap.Int("id", personaID))

	resp, err := c.connector.Do(ctx, http.MethodDelete,
		fmt.Sprintf(personaEndpointFmt, personaID), nil)
	if err != nil {
		return nil, fmt.Errorf("delete persona: %w", err)
	}

	return resp, nil
}

// BuildFinalPrompt previews the fully assembled prompt template for the
// given system/task prompts via the prompt-explorer endpoint.
func (c *Connector) BuildFinalPrompt(ctx context.Context, systemPrompt, taskPrompt string, retrievalDisabled bool) (*pkghttp.Response, error) {
	ctxzap.Debug(ctx, "previewing final prompt", zap.Bool("retrieval_disabled", retrievalDisabled))

	resp, err := c.connector.Do(ctx, http.MethodGet, promptExplorerEndpoint, nil,
		pkghttp.WithRawQuery(promptExplorerQuery(systemPrompt, taskPrompt, retrievalDisabled)))
	if err != nil {
		return nil, fmt.Errorf("prompt explorer: %w", err)
	}

	return resp, nil
}

// parsePromptID returns the id of a freshly created prompt, or nil when
// the call did not succeed. A body that cannot be decoded while the call
// succeeded is an error, not a silent skip.
func parsePromptID(resp *pkghttp.Response) (*int, error) {
	if !resp.OK() {
		return nil, nil
	}

	var envelope promptIDEnvelope
	if err := resp.DecodeJSON(&envelope); err != nil {
		return nil, err
	}

	return envelope.ID, nil
}
