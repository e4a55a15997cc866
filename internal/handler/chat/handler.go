package chat

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sehatlabs/healthchat/internal/config"
	"github.com/sehatlabs/healthchat/internal/model/chat"
	chatService "github.com/sehatlabs/healthchat/internal/service/chat"
	"github.com/sehatlabs/healthchat/pkg/utils"
)

// Handler exposes the chat API.
type Handler struct {
	chatSvc  *chatService.Service
	upstream config.UpstreamConfig
}

// New creates the chat handler.
func New(chatSvc *chatService.Service, upstream config.UpstreamConfig) *Handler {
	return &Handler{
		chatSvc:  chatSvc,
		upstream: upstream,
	}
}

// RegisterRoutes registers the chat endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.handleChat)
	r.Get("/history", h.handleHistory)
	r.Post("/clear_history", h.handleClearHistory)
	r.Get("/test", h.handleTest)
}

// handleChat runs one chat turn.
func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Message string `json:"message"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	turn, err := h.chatSvc.Send(r.Context(), payload.Message)
	if err != nil {
		if errors.Is(err, chatService.ErrEmptyMessage) {
			utils.RespondError(w, http.StatusBadRequest, "Message cannot be empty")
			return
		}
		log.Printf("[chat] pipeline error: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "Something went wrong. Please try again.")
		return
	}

	utils.RespondJSON(w, http.StatusOK, struct {
		Response    string    `json:"response"`
		IsEmergency bool      `json:"is_emergency"`
		Timestamp   time.Time `json:"timestamp"`
	}{
		Response:    turn.Bot,
		IsEmergency: turn.IsEmergency,
		Timestamp:   turn.Timestamp,
	})
}

// handleHistory returns the full transcript.
func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	turns := h.chatSvc.History(r.Context())
	if turns == nil {
		turns = []chat.Turn{}
	}
	utils.RespondJSON(w, http.StatusOK, turns)
}

// handleClearHistory resets the transcript.
func (h *Handler) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	if err := h.chatSvc.Clear(r.Context()); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// handleTest reports upstream configuration without exposing the secret.
func (h *Handler) handleTest(w http.ResponseWriter, _ *http.Request) {
	var prefix *string
	if h.upstream.Enabled() {
		p := h.upstream.KeyPrefix()
		prefix = &p
	}

	utils.RespondJSON(w, http.StatusOK, struct {
		Status       string  `json:"status"`
		SiteURL      string  `json:"site_url"`
		APIKeySet    bool    `json:"api_key_set"`
		APIKeyPrefix *string `json:"api_key_prefix"`
		Model        string  `json:"model"`
	}{
		Status:       "ok",
		SiteURL:      h.upstream.SiteURL,
		APIKeySet:    h.upstream.Enabled(),
		APIKeyPrefix: prefix,
		Model:        h.upstream.Model,
	})
}
