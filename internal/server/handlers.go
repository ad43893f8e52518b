package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hamzaessahbaoui/travel-planner/pkg/agent"
	"github.com/hamzaessahbaoui/travel-planner/pkg/planner"
	"github.com/hamzaessahbaoui/travel-planner/pkg/tools/itinerary"
	"github.com/hamzaessahbaoui/travel-planner/pkg/travel"
)

// Chatter is satisfied by *agent.Dispatcher.
type Chatter interface {
	Run(ctx context.Context, history []agent.Message, emit agent.Emitter) error
}

// Handler serves the HTTP API.
type Handler struct {
	chat   Chatter
	plans  agent.Orchestrator
	logger *slog.Logger
}

// NewHandler creates a Handler. chat may be nil when no model is configured;
// the chat endpoint then answers 503.
func NewHandler(chat Chatter, plans agent.Orchestrator, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{chat: chat, plans: plans, logger: logger}
}

type chatRequest struct {
	Messages []agent.Message `json:"messages"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// Chat streams the conversation as newline-delimited JSON events.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	if h.chat == nil {
		respondError(w, http.StatusServiceUnavailable, "chat is not configured")
		return
	}
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rc := http.NewResponseController(w)
	enc := json.NewEncoder(w)
	started := false
	emit := func(e agent.Event) error {
		if !started {
			w.Header().Set("Content-Type", "application/x-ndjson")
			w.WriteHeader(http.StatusOK)
			started = true
		}
		if err := enc.Encode(e); err != nil {
			return err
		}
		if err := rc.Flush(); err != nil && !errors.Is(err, http.ErrNotSupported) {
			return err
		}
		return nil
	}

	err := h.chat.Run(r.Context(), req.Messages, emit)
	switch {
	case err == nil:
	case agent.IsClientError(err) && !started:
		respondError(w, http.StatusBadRequest, err.Error())
	case !started:
		h.logger.Error("chat failed", "request_id", RequestID(r.Context()), "error", err)
		respondError(w, http.StatusBadGateway, "the assistant is unavailable, please try again")
	default:
		h.logger.Error("chat stream aborted", "request_id", RequestID(r.Context()), "error", err)
		_ = enc.Encode(map[string]string{"type": "error", "message": "the assistant stopped unexpectedly"})
	}
}

// Plan runs the orchestrator directly. With ?format=ics the itinerary is
// returned as an iCalendar document.
func (h *Handler) Plan(w http.ResponseWriter, r *http.Request) {
	var req planner.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.plans.Plan(r.Context(), req, nil)
	if err != nil {
		status, message := planError(err)
		h.logger.Warn("plan failed", "request_id", RequestID(r.Context()), "status", status, "error", err)
		respondError(w, status, message)
		return
	}

	if r.URL.Query().Get("format") == "ics" {
		cal, err := itinerary.Calendar(res.Plan.ID, res.Plan.Itinerary)
		if err != nil {
			h.logger.Error("calendar export failed", "request_id", RequestID(r.Context()), "error", err)
			respondError(w, http.StatusInternalServerError, planner.FailureMessage)
			return
		}
		w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="itinerary.ics"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(cal))
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func planError(err error) (int, string) {
	var verr *travel.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, verr.Error()
	case errors.Is(err, travel.ErrPlanTimeout):
		return http.StatusGatewayTimeout, "Travel plan timed out, please try again"
	default:
		return http.StatusInternalServerError, planner.FailureMessage
	}
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Message: message})
}
