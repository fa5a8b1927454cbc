package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultGroqAPIURL = "https://api.groq.com/openai/v1/chat/completions"

// canned starter prompts for the assistant widget
var defaultPrompts = []string{
	"Can you explain the difference between GD/FIR?",
	"When should I file a GD or FIR?",
	"How do I report a crime using this app?",
	"How to track my complaint?",
	"How does anonymous reporting work?",
	"What information is needed for a proper complaint?",
}

const chatSystemPrompt = "You are a police assistant AI. Answer the user's queries regarding police services clearly and accurately. Provide helpful guidance about reporting crimes, filing GD/FIR, and tracking complaints."

// Chat proxies assistant messages to a Groq chat-completions API
type Chat struct {
	APIKey string
	APIURL string
	Client *http.Client
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Success  bool            `json:"success"`
	Response string          `json:"response"`
	Error    string          `json:"error,omitempty"`
	Raw      json.RawMessage `json:"raw,omitempty"`
}

type completionRequest struct {
	Model       string              `json:"model"`
	Messages    []completionMessage `json:"messages"`
	Temperature float64             `json:"temperature"`
	MaxTokens   int                 `json:"max_tokens"`
}

type completionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionResponse struct {
	Choices []struct {
		Message completionMessage `json:"message"`
	} `json:"choices"`
}

func writeChat(w http.ResponseWriter, status int, resp chatResponse) {
	b, _ := json.Marshal(resp)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(b)
}

// PromptsHandler returns the canned starter prompts
func (c Chat) PromptsHandler(w http.ResponseWriter, r *http.Request) {
	b, _ := json.Marshal(map[string][]string{"prompts": defaultPrompts})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// HealthHandler reports assistant availability
func (c Chat) HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}

// ChatHandler forwards the user message to the completion API and
// returns the assistant reply.
func (c Chat) ChatHandler(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		writeChat(w, http.StatusBadRequest, chatResponse{
			Error:    "Message is required",
			Response: "Please type something to chat.",
		})
		return
	}

	body, err := json.Marshal(completionRequest{
		Model: "llama-3.1-8b-instant",
		Messages: []completionMessage{
			{Role: "system", Content: chatSystemPrompt},
			{Role: "user", Content: req.Message},
		},
		Temperature: 0.7,
		MaxTokens:   1024,
	})
	if err != nil {
		c.chatError(w, err)
		return
	}

	apiURL := c.APIURL
	if apiURL == "" {
		apiURL = defaultGroqAPIURL
	}
	httpReq, err := http.NewRequestWithContext(r.Context(), http.MethodPost, apiURL, bytes.NewReader(body))
	if err != nil {
		c.chatError(w, err)
		return
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)

	client := c.Client
	if client == nil {
		client = &http.Client{Timeout: 25 * time.Second}
	}
	resp, err := client.Do(httpReq)
	if err != nil {
		c.chatError(w, err)
		return
	}
	defer resp.Body.Close()

	var raw bytes.Buffer
	var completion completionResponse
	if err := json.NewDecoder(io.TeeReader(resp.Body, &raw)).Decode(&completion); err != nil || resp.StatusCode >= 400 {
		c.chatError(w, err)
		return
	}

	reply := "Sorry, I couldn't process your request."
	if len(completion.Choices) > 0 && completion.Choices[0].Message.Content != "" {
		reply = completion.Choices[0].Message.Content
	}

	writeChat(w, http.StatusOK, chatResponse{
		Success:  true,
		Response: reply,
		Raw:      json.RawMessage(raw.Bytes()),
	})
}

func (c Chat) chatError(w http.ResponseWriter, err error) {
	zap.S().Errorw("chat completion failed", "error", err)
	writeChat(w, http.StatusInternalServerError, chatResponse{
		Error:    "Error processing chat message",
		Response: "Sorry, there was an error with the chatbot. Please try again later.",
	})
}
