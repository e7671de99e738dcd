package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/docchat-ai/docchat/internal/dialogue"
	"github.com/docchat-ai/docchat/internal/transcript"
	"github.com/docchat-ai/docchat/pkg/logging"
)

// TranscriptStore records the conversation. Persistence here is best-effort:
// a transcript failure never fails the chat turn.
type TranscriptStore interface {
	Append(ctx context.Context, sessionID string, msg transcript.Message) error
	List(ctx context.Context, sessionID string) ([]transcript.Message, error)
}

// ChatHandler serves the conversational endpoint.
type ChatHandler struct {
	sessions    *dialogue.SessionStore
	router      *dialogue.Router
	transcripts TranscriptStore
	logger      *logging.Logger
}

// NewChatHandler creates the handler. transcripts may be nil when no
// transcript store is configured.
func NewChatHandler(sessions *dialogue.SessionStore, router *dialogue.Router, transcripts TranscriptStore, logger *logging.Logger) *ChatHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &ChatHandler{
		sessions:    sessions,
		router:      router,
		transcripts: transcripts,
		logger:      logger,
	}
}

type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type chatResponse struct {
	SessionID string `json:"session_id"`
	Reply     string `json:"reply"`
}

// HandleMessage processes one chat turn.
func (h *ChatHandler) HandleMessage(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	s := h.sessions.Get(req.SessionID)
	reply := h.router.Route(r.Context(), s, req.Message)

	h.recordTurn(r.Context(), s.ID, req.Message, reply)

	writeJSON(w, http.StatusOK, chatResponse{SessionID: s.ID, Reply: reply})
}

// HandleHistory returns the stored transcript for a session.
func (h *ChatHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	if h.transcripts == nil {
		writeError(w, http.StatusNotFound, "transcripts not enabled")
		return
	}

	sessionID := chi.URLParam(r, "sessionID")
	msgs, err := h.transcripts.List(r.Context(), sessionID)
	if err != nil {
		h.logger.Error("chat: transcript load failed", "session_id", sessionID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load history")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"session_id": sessionID,
		"messages":   msgs,
	})
}

func (h *ChatHandler) recordTurn(ctx context.Context, sessionID, message, reply string) {
	if h.transcripts == nil {
		return
	}
	if err := h.transcripts.Append(ctx, sessionID, transcript.Message{Role: "user", Text: message}); err != nil {
		h.logger.Error("chat: transcript append failed", "session_id", sessionID, "error", err)
		return
	}
	if err := h.transcripts.Append(ctx, sessionID, transcript.Message{Role: "assistant", Text: reply}); err != nil {
		h.logger.Error("chat: transcript append failed", "session_id", sessionID, "error", err)
	}
}
