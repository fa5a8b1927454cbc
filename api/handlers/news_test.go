package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetNewsHandlerSuccess(t *testing.T) {
	var query url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok", "totalResults": 1, "articles": [{"title": "Robbery suspect arrested"}]}`))
	}))
	defer srv.Close()

	n := News{APIKey: "test-key", APIURL: srv.URL}

	req := httptest.NewRequest("GET", "/api/news", nil)
	w := httptest.NewRecorder()
	n.GetNewsHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var articles []json.RawMessage
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &articles))
	assert.Len(t, articles, 1)
	assert.Contains(t, string(articles[0]), "Robbery suspect arrested")

	assert.Equal(t, "crime OR police OR robbery OR cybercrime", query.Get("q"))
	assert.Equal(t, "en", query.Get("language"))
	assert.Equal(t, "publishedAt", query.Get("sortBy"))
	assert.Equal(t, "10", query.Get("pageSize"))
	assert.Equal(t, "test-key", query.Get("apiKey"))
}

func TestGetNewsHandlerNoArticles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok", "totalResults": 0}`))
	}))
	defer srv.Close()

	n := News{APIURL: srv.URL}

	req := httptest.NewRequest("GET", "/api/news", nil)
	w := httptest.NewRecorder()
	n.GetNewsHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestGetNewsHandlerUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"status": "error", "code": "apiKeyInvalid"}`))
	}))
	defer srv.Close()

	n := News{APIURL: srv.URL}

	req := httptest.NewRequest("GET", "/api/news", nil)
	w := httptest.NewRecorder()
	n.GetNewsHandler(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error": "Failed to fetch news"}`, w.Body.String())
}
