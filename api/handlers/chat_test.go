package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPromptsHandler(t *testing.T) {
	c := Chat{}

	req := httptest.NewRequest("GET", "/api/chat/prompts", nil)
	w := httptest.NewRecorder()
	c.PromptsHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string][]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp["prompts"], 6)
	assert.Contains(t, resp["prompts"], "How to track my complaint?")
}

func TestChatHealthHandler(t *testing.T) {
	c := Chat{}

	req := httptest.NewRequest("GET", "/api/chat", nil)
	w := httptest.NewRecorder()
	c.HealthHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status": "ok"}`, w.Body.String())
}

func TestChatHandlerEmptyMessage(t *testing.T) {
	c := Chat{}

	req := httptest.NewRequest("POST", "/api/chat", bytes.NewBufferString(`{"message": "   "}`))
	w := httptest.NewRecorder()
	c.ChatHandler(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp chatResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Message is required", resp.Error)
	assert.Equal(t, "Please type something to chat.", resp.Response)
}

func TestChatHandlerSuccess(t *testing.T) {
	var upstream completionRequest
	var authHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&upstream)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices": [{"message": {"role": "assistant", "content": "File a GD at your nearest station."}}]}`))
	}))
	defer srv.Close()

	c := Chat{APIKey: "test-key", APIURL: srv.URL}

	req := httptest.NewRequest("POST", "/api/chat", bytes.NewBufferString(`{"message": "How do I file a GD?"}`))
	w := httptest.NewRecorder()
	c.ChatHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp chatResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "File a GD at your nearest station.", resp.Response)
	assert.NotEmpty(t, resp.Raw)

	assert.Equal(t, "Bearer test-key", authHeader)
	assert.Equal(t, "llama-3.1-8b-instant", upstream.Model)
	assert.Len(t, upstream.Messages, 2)
	assert.Equal(t, "system", upstream.Messages[0].Role)
	assert.Equal(t, "How do I file a GD?", upstream.Messages[1].Content)
}

func TestChatHandlerEmptyChoicesFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices": []}`))
	}))
	defer srv.Close()

	c := Chat{APIURL: srv.URL}

	req := httptest.NewRequest("POST", "/api/chat", bytes.NewBufferString(`{"message": "hello"}`))
	w := httptest.NewRecorder()
	c.ChatHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp chatResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Sorry, I couldn't process your request.", resp.Response)
}

func TestChatHandlerUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": {"message": "model overloaded"}}`))
	}))
	defer srv.Close()

	c := Chat{APIURL: srv.URL}

	req := httptest.NewRequest("POST", "/api/chat", bytes.NewBufferString(`{"message": "hello"}`))
	w := httptest.NewRecorder()
	c.ChatHandler(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp chatResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Error processing chat message", resp.Error)
	assert.Equal(t, "Sorry, there was an error with the chatbot. Please try again later.", resp.Response)
}
