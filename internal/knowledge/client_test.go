package knowledge

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cadre-sh/cadre/internal/config"
	"github.com/cadre-sh/cadre/internal/errors"
)

func testClient(url string) *Client {
	return NewClient(&config.KnowledgeConfig{
		BaseURL: url,
		Token:   "test-token",
		Timeout: 5 * time.Second,
	})
}

func TestInvokeSendsBearerTokenAndInput(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]string{"content": "doc snippet"})
	}))
	defer server.Close()

	c := testClient(server.URL)
	content, err := c.Invoke(context.Background(), "lookup_docs", map[string]any{"query": "context cancellation"})
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if content != "doc snippet" {
		t.Errorf("unexpected content: %q", content)
	}
	if gotPath != "/v1/tools/lookup_docs:invoke" {
		t.Errorf("unexpected path: %s", gotPath)
	}
	if gotAuth != "Bearer test-token" {
		t.Errorf("unexpected auth header: %s", gotAuth)
	}
	input, ok := gotBody["input"].(map[string]any)
	if !ok || input["query"] != "context cancellation" {
		t.Errorf("input not forwarded: %+v", gotBody)
	}
}

func TestInvokeServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "index unavailable"})
	}))
	defer server.Close()

	_, err := testClient(server.URL).Invoke(context.Background(), "analyze_code", nil)
	if err == nil {
		t.Fatal("expected error from service error field")
	}
	if errors.GetCategory(err) != errors.CategoryTool {
		t.Errorf("expected tool category, got %s", errors.GetCategory(err))
	}
}

func TestInvokeNon200Status(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := testClient(server.URL).Invoke(context.Background(), "best_practices", nil)
	if err == nil {
		t.Fatal("expected error for 502")
	}
}

func TestFetchMappings(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/annotations/mappings" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Method != http.MethodGet {
			t.Errorf("unexpected method: %s", r.Method)
		}
		_, _ = w.Write([]byte(`{"mappings":[{"pattern":"TODO","persona":"generalist","label":"Track this"}]}`))
	}))
	defer server.Close()

	mappings, err := testClient(server.URL).FetchMappings(context.Background())
	if err != nil {
		t.Fatalf("FetchMappings: %v", err)
	}
	if len(mappings) != 1 {
		t.Fatalf("expected 1 mapping, got %d", len(mappings))
	}
	if mappings[0].Pattern != "TODO" || mappings[0].PersonaID != "generalist" {
		t.Errorf("unexpected mapping: %+v", mappings[0])
	}
}

func TestFetchMappingsServerDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := testClient(server.URL).FetchMappings(context.Background())
	if err == nil {
		t.Fatal("expected error for unreachable server")
	}
	if errors.GetCategory(err) != errors.CategoryAnnotate {
		t.Errorf("expected annotate category, got %s", errors.GetCategory(err))
	}
}
