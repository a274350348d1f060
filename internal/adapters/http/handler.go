package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bnema/platform-intake/internal/application"
	"github.com/bnema/platform-intake/internal/domain"
)

const maxBodyBytes = 1 << 20

// Intake is the conversational service behind the chat endpoints.
type Intake interface {
	Handle(ctx context.Context, sessionID, text string) (application.Reply, error)
	Reset(ctx context.Context, sessionID string) error
	Snapshot(ctx context.Context, sessionID string) (domain.Session, error)
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Messages  []Message `json:"messages"`
	SessionID string    `json:"sessionId"`
}

type ChatResponse struct {
	Text        string         `json:"text"`
	SessionID   string         `json:"sessionId"`
	Phase       string         `json:"phase"`
	PendingKind string         `json:"pendingKind,omitempty"`
	Counts      map[string]int `json:"counts,omitempty"`
	Publish     *PublishBody   `json:"publish,omitempty"`
}

type PublishBody struct {
	Outcome  string   `json:"outcome"`
	URL      string   `json:"url,omitempty"`
	Stage    string   `json:"stage,omitempty"`
	Category string   `json:"category,omitempty"`
	Paths    []string `json:"paths,omitempty"`
}

type ResetRequest struct {
	SessionID string `json:"sessionId"`
}

type SessionResponse struct {
	SessionID   string         `json:"sessionId"`
	Phase       string         `json:"phase"`
	PendingKind string         `json:"pendingKind,omitempty"`
	Counts      map[string]int `json:"counts"`
	Records     []RecordRef    `json:"records"`
}

type RecordRef struct {
	Kind string `json:"kind"`
	Name string `json:"name"`
}

type ErrorBody struct {
	Error string `json:"error"`
}

type ChatHandler struct {
	intake Intake
	logger zerolog.Logger
}

func NewChatHandler(intake Intake, logger zerolog.Logger) *ChatHandler {
	return &ChatHandler{intake: intake, logger: logger}
}

// Chat feeds the latest user message to the session and returns the reply.
// A missing sessionId starts a new conversation whose id is echoed back.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorBody{Error: err.Error()})
		return
	}

	text, ok := lastUserMessage(req.Messages)
	if !ok {
		writeJSON(w, http.StatusBadRequest, ErrorBody{Error: "messages must contain at least one user message"})
		return
	}
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	reply, err := h.intake.Handle(r.Context(), req.SessionID, text)
	if err != nil {
		h.logger.Error().Err(err).
			Str("session_id", req.SessionID).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("handle chat message")
		writeJSON(w, http.StatusInternalServerError, ErrorBody{Error: "the conversation could not be processed, please retry"})
		return
	}

	writeJSON(w, http.StatusOK, toChatResponse(req.SessionID, reply))
}

func (h *ChatHandler) Reset(w http.ResponseWriter, r *http.Request) {
	var req ResetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorBody{Error: err.Error()})
		return
	}
	if req.SessionID == "" {
		writeJSON(w, http.StatusBadRequest, ErrorBody{Error: "sessionId is required"})
		return
	}

	if err := h.intake.Reset(r.Context(), req.SessionID); err != nil {
		h.logger.Error().Err(err).Str("session_id", req.SessionID).Msg("reset session")
		writeJSON(w, http.StatusInternalServerError, ErrorBody{Error: "the session could not be reset"})
		return
	}

	writeJSON(w, http.StatusOK, ChatResponse{
		Text:      "Session cleared. Which resource would you like to add: a database, a bucket or a role?",
		SessionID: req.SessionID,
		Phase:     string(domain.PhaseIdle),
	})
}

func (h *ChatHandler) Session(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	session, err := h.intake.Snapshot(r.Context(), id)
	if err != nil {
		h.logger.Error().Err(err).Str("session_id", id).Msg("load session")
		writeJSON(w, http.StatusInternalServerError, ErrorBody{Error: "the session could not be loaded"})
		return
	}

	resp := SessionResponse{
		SessionID: id,
		Phase:     string(session.Phase),
		Counts:    countsBody(session.Counts()),
		Records:   []RecordRef{},
	}
	if session.Phase == domain.PhaseCollecting {
		resp.PendingKind = string(session.PendingKind)
	}
	for _, kind := range domain.Kinds() {
		for _, record := range session.Records[kind] {
			resp.Records = append(resp.Records, RecordRef{Kind: string(kind), Name: record.Name()})
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func lastUserMessage(messages []Message) (string, bool) {
	for i := len(messages) - 1; i >= 0; i-- {
		if strings.EqualFold(messages[i].Role, "user") && strings.TrimSpace(messages[i].Content) != "" {
			return messages[i].Content, true
		}
	}
	return "", false
}

func toChatResponse(sessionID string, reply application.Reply) ChatResponse {
	resp := ChatResponse{
		Text:        reply.Text,
		SessionID:   sessionID,
		Phase:       string(reply.Phase),
		PendingKind: string(reply.PendingKind),
		Counts:      countsBody(reply.Counts),
	}
	if reply.Result != nil {
		resp.Publish = &PublishBody{
			Outcome:  string(reply.Result.Outcome),
			URL:      reply.Result.URL,
			Stage:    string(reply.Result.Stage),
			Category: string(reply.Result.Category),
			Paths:    reply.Result.Paths,
		}
	}
	return resp
}

func countsBody(counts domain.Counts) map[string]int {
	out := make(map[string]int, len(counts))
	for kind, n := range counts {
		out[string(kind)] = n
	}
	return out
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return errors.New("request body is not valid JSON")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
