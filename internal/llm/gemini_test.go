package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func geminiConfig(endpoint string) LLMConfig {
	cfg := DefaultConfig()
	cfg.APIKey = "test-key"
	cfg.Endpoint = endpoint
	return cfg
}

func geminiReply(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"candidates": []any{
			map[string]any{
				"content": map[string]any{
					"role":  "model",
					"parts": []any{map[string]any{"text": text}},
				},
			},
		},
		"modelVersion": "gemini-2.5-flash",
	})
}

func TestGeminiClient_Generate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "models/gemini-2.5-flash:generateContent"), r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		contents, _ := json.Marshal(body["contents"])
		assert.Contains(t, string(contents), "make a plan")
		sys, _ := json.Marshal(body["systemInstruction"])
		assert.Contains(t, string(sys), "expert study planner")

		geminiReply(w, "```json\n[]\n```")
	}))
	defer srv.Close()

	client, err := NewGeminiClient(context.Background(), geminiConfig(srv.URL+"/"), NoopObserver{})
	require.NoError(t, err)

	resp, err := client.Generate(context.Background(), GenerateRequest{
		Task:         TaskSchedule,
		SystemPrompt: "You are an expert study planner.",
		UserPrompt:   "make a plan",
	})
	require.NoError(t, err)
	assert.Equal(t, "```json\n[]\n```", resp.Text)
	assert.Equal(t, "gemini-2.5-flash", resp.Model)
}

func TestGeminiClient_Generate_APIErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"code":429,"message":"quota","status":"RESOURCE_EXHAUSTED"}}`))
	}))
	defer srv.Close()

	var captured LLMCallEvent
	client, err := NewGeminiClient(context.Background(), geminiConfig(srv.URL+"/"),
		&captureObserver{fn: func(e LLMCallEvent) { captured = e }})
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), GenerateRequest{Task: TaskSchedule, UserPrompt: "x"})
	assert.ErrorIs(t, err, ErrRetryExhausted)
	assert.Contains(t, err.Error(), "quota")
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, ProviderGemini, captured.Provider)
	assert.False(t, captured.Success)
}

func TestGeminiClient_Generate_NoCandidatesIsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	client, err := NewGeminiClient(context.Background(), geminiConfig(srv.URL+"/"), nil)
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), GenerateRequest{Task: TaskSummary, UserPrompt: "x"})
	assert.ErrorIs(t, err, ErrEmptyOutput)
}

func TestNewClient_SelectsProvider(t *testing.T) {
	cfg := DefaultConfig()
	_, err := NewClient(context.Background(), cfg, nil)
	assert.Error(t, err, "gemini without api key must be rejected")

	cfg.Provider = ProviderOllama
	c, err := NewClient(context.Background(), cfg, nil)
	require.NoError(t, err)
	_, ok := c.(*ollamaClient)
	assert.True(t, ok)

	cfg.Provider = "openai"
	_, err = NewClient(context.Background(), cfg, nil)
	assert.Error(t, err)
}
