package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

const defaultNewsAPIURL = "https://newsapi.org/v2/everything"

// News proxies the public safety news feed from newsapi.org
type News struct {
	APIKey string
	APIURL string
	Client *http.Client
}

type newsAPIResponse struct {
	Articles []json.RawMessage `json:"articles"`
}

// GetNewsHandler fetches recent crime and police coverage and returns
// the raw articles array.
func (n News) GetNewsHandler(w http.ResponseWriter, r *http.Request) {
	apiURL := n.APIURL
	if apiURL == "" {
		apiURL = defaultNewsAPIURL
	}

	params := url.Values{}
	params.Set("q", "crime OR police OR robbery OR cybercrime")
	params.Set("language", "en")
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", "10")
	params.Set("apiKey", n.APIKey)

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, apiURL+"?"+params.Encode(), nil)
	if err != nil {
		n.newsError(w, err)
		return
	}

	client := n.Client
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		n.newsError(w, err)
		return
	}
	defer resp.Body.Close()

	var payload newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil || resp.StatusCode >= 400 {
		n.newsError(w, err)
		return
	}
	if payload.Articles == nil {
		payload.Articles = []json.RawMessage{}
	}

	b, err := json.Marshal(payload.Articles)
	if err != nil {
		n.newsError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

func (n News) newsError(w http.ResponseWriter, err error) {
	zap.S().Errorw("news fetch failed", "error", err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	w.Write([]byte(`{"error": "Failed to fetch news"}`))
}
