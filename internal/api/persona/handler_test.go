package persona

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/AlexandrSher/danswer/internal/config"
	"github.com/AlexandrSher/danswer/internal/entity"
	gatewaypersona "github.com/AlexandrSher/danswer/internal/gateway/persona"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func newStubServer(t *testing.T) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(NewStore()))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestPromptCreateAndUpdate(t *testing.T) {
	srv := newStubServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/prompt", entity.PromptRequest{
		Name:         "default-prompt__helper",
		Description:  "Default prompt for persona helper",
		Shared:       true,
		SystemPrompt: "be helpful",
		TaskPrompt:   "answer",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var prompt entity.PromptSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&prompt); err != nil {
		t.Fatalf("decode prompt: %v", err)
	}
	if prompt.ID != 1 {
		t.Errorf("expected first prompt id 1, got %d", prompt.ID)
	}

	resp = doJSON(t, http.MethodPatch, srv.URL+"/api/prompt/1", entity.PromptRequest{
		Name: "default-prompt__helper", SystemPrompt: "be very helpful",
	})
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200 on prompt update, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodPatch, srv.URL+"/api/prompt/999", entity.PromptRequest{Name: "x"})
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 on unknown prompt, got %d", resp.StatusCode)
	}
}

func TestPersonaValidation(t *testing.T) {
	srv := newStubServer(t)

	// No prompt reference at all
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/admin/persona", entity.PersonaUpsertRequest{
		Name: "helper",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 without prompt_ids, got %d", resp.StatusCode)
	}

	// Reference to a prompt that does not exist
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/admin/persona", entity.PersonaUpsertRequest{
		Name:      "helper",
		PromptIDs: []int{123},
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown prompt reference, got %d", resp.StatusCode)
	}
}

func TestPersonaLifecycle(t *testing.T) {
	srv := newStubServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/prompt", entity.PromptRequest{Name: "p"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 on prompt create, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/admin/persona", entity.PersonaUpsertRequest{
		Name:        "helper",
		Shared:      true,
		RecencyBias: "base_decay",
		PromptIDs:   []int{1},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 on persona create, got %d", resp.StatusCode)
	}

	var persona entity.PersonaSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&persona); err != nil {
		t.Fatalf("decode persona: %v", err)
	}

	resp = doJSON(t, http.MethodPatch, srv.URL+"/api/admin/persona/1", entity.PersonaUpsertRequest{
		Name:      "helper v2",
		PromptIDs: []int{1},
	})
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200 on persona update, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/admin/persona/1", nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("expected 204 on delete, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/admin/persona/1", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 on repeated delete, got %d", resp.StatusCode)
	}
}

func TestPromptExplorer(t *testing.T) {
	srv := newStubServer(t)

	resp := doJSON(t, http.MethodGet,
		srv.URL+"/api/persona/utils/prompt-explorer?system_prompt=sys&task_prompt=task&retrieval_disabled=false", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var tmpl entity.PromptTemplateResponse
	if err := json.NewDecoder(resp.Body).Decode(&tmpl); err != nil {
		t.Fatalf("decode template: %v", err)
	}
	want := "sys\n\nCONTEXT:\n{context_docs}\n\ntask"
	if tmpl.FinalPromptTemplate != want {
		t.Errorf("expected %q, got %q", want, tmpl.FinalPromptTemplate)
	}

	resp = doJSON(t, http.MethodGet,
		srv.URL+"/api/persona/utils/prompt-explorer?system_prompt=sys&task_prompt=task&retrieval_disabled=true", nil)
	if err := json.NewDecoder(resp.Body).Decode(&tmpl); err != nil {
		t.Fatalf("decode template: %v", err)
	}
	if tmpl.FinalPromptTemplate != "sys\n\ntask" {
		t.Errorf("expected context block omitted, got %q", tmpl.FinalPromptTemplate)
	}
}

// The gateway run against the stub end to end.
func TestGatewayRoundTrip(t *testing.T) {
	srv := newStubServer(t)

	gateway := gatewaypersona.NewConnector(config.HTTPClientConfig{
		RequestTimeout:        5 * time.Second,
		ConnTimeout:           5 * time.Second,
		KeepAlive:             30 * time.Second,
		IdleConnTimeout:       30 * time.Second,
		ResponseHeaderTimeout: 5 * time.Second,
		Url:                   srv.URL,
	}, zap.NewNop())

	ctx := context.Background()

	result, err := gateway.CreatePersona(ctx, &entity.PersonaCreationRequest{
		Name:         "helper",
		Description:  "a helper",
		SystemPrompt: "be helpful",
		TaskPrompt:   "answer",
	})
	if err != nil {
		t.Fatalf("create persona: %v", err)
	}
	if result.Persona == nil || result.Persona.StatusCode != http.StatusCreated {
		t.Fatalf("expected persona creation to succeed, got %+v", result.Persona)
	}

	var created entity.PersonaSnapshot
	if err := result.Persona.DecodeJSON(&created); err != nil {
		t.Fatalf("decode created persona: %v", err)
	}
	if len(created.PromptIDs) != 1 {
		t.Fatalf("expected one prompt reference, got %v", created.PromptIDs)
	}

	existingPromptID := created.PromptIDs[0]
	result, err = gateway.UpdatePersona(ctx, &entity.PersonaUpdateRequest{
		PersonaCreationRequest: entity.PersonaCreationRequest{
			Name:         "helper",
			Description:  "an updated helper",
			SystemPrompt: "be even more helpful",
			TaskPrompt:   "answer",
		},
		ID:               created.ID,
		ExistingPromptID: &existingPromptID,
	})
	if err != nil {
		t.Fatalf("update persona: %v", err)
	}
	if result.Persona == nil || !result.Persona.OK() {
		t.Fatalf("expected persona update to succeed, got %+v", result.Persona)
	}

	deleteResp, err := gateway.DeletePersona(ctx, created.ID)
	if err != nil {
		t.Fatalf("delete persona: %v", err)
	}
	if deleteResp.StatusCode != http.StatusNoContent {
		t.Errorf("expected 204 on delete, got %d", deleteResp.StatusCode)
	}
}
