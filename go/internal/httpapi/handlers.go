// Package httpapi exposes the draft room over REST plus a WebSocket feed.
// Handlers translate between wire shapes and app calls; all policy lives in
// the app layer, and error kinds become status codes only here.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/cLEANTHUGGcODES/lcs-fantasy-sub001/go/internal/draft/detail"
	"github.com/cLEANTHUGGcODES/lcs-fantasy-sub001/go/internal/draft/pick"
	"github.com/cLEANTHUGGcODES/lcs-fantasy-sub001/go/internal/draft/presence"
	"github.com/cLEANTHUGGcODES/lcs-fantasy-sub001/go/internal/errs"
	"github.com/cLEANTHUGGcODES/lcs-fantasy-sub001/go/internal/models"
)

// DraftApp updates draft status.
type DraftApp interface {
	UpdateStatus(ctx context.Context, draftID uuid.UUID, actor models.Actor, target models.DraftStatus, force bool) (*models.Draft, error)
}

// PresenceApp records heartbeats.
type PresenceApp interface {
	Heartbeat(ctx context.Context, req presence.HeartbeatRequest) error
}

// PickApp submits picks.
type PickApp interface {
	SubmitPick(ctx context.Context, actor models.Actor, req pick.SubmitRequest) (*pick.Result, error)
}

// DetailApp assembles and invalidates the room view.
type DetailApp interface {
	Assemble(ctx context.Context, draftID uuid.UUID, viewer *models.User) (*detail.View, error)
	Invalidate(draftID uuid.UUID)
}

// RoomGateway upgrades requests into room WebSockets.
type RoomGateway interface {
	Upgrade(w http.ResponseWriter, r *http.Request, userID string, draftID uuid.UUID) error
}

// Waker nudges the auto-pick scheduler after writes that arm deadlines.
type Waker interface {
	Wake()
}

// Server holds handler dependencies.
type Server struct {
	drafts   DraftApp
	presence PresenceApp
	picks    PickApp
	details  DetailApp
	gateway  RoomGateway
	waker    Waker
}

// NewServer creates a Server. gateway and waker may be nil; the WebSocket
// endpoint then returns 404 and no scheduler nudges happen.
func NewServer(drafts DraftApp, presenceApp PresenceApp, picks PickApp, details DetailApp, gateway RoomGateway, waker Waker) *Server {
	return &Server{
		drafts:   drafts,
		presence: presenceApp,
		picks:    picks,
		details:  details,
		gateway:  gateway,
		waker:    waker,
	}
}

type updateStatusRequest struct {
	Status string `json:"status"`
	Force  bool   `json:"force"`
}

func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	draftID, err := draftIDFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var body updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, errs.Validation(errs.ReasonInvalidInput, "malformed request body"))
		return
	}

	user := userFrom(r.Context())
	actor := models.Actor{UserID: user.ID, IsAdmin: user.IsAdmin}
	if _, err := s.drafts.UpdateStatus(r.Context(), draftID, actor, models.DraftStatus(body.Status), body.Force); err != nil {
		writeError(w, err)
		return
	}
	s.details.Invalidate(draftID)
	s.wake()

	view, err := s.details.Assemble(r.Context(), draftID, user)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

type heartbeatRequest struct {
	IsReady *bool `json:"is_ready"`
}

func (s *Server) handleHeartbeat(w http.ResponseWriter, r *http.Request) {
	draftID, err := draftIDFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var body heartbeatRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, errs.Validation(errs.ReasonInvalidInput, "malformed request body"))
			return
		}
	}

	user := userFrom(r.Context())
	if err := s.presence.Heartbeat(r.Context(), presence.HeartbeatRequest{
		DraftID: draftID,
		UserID:  user.ID,
		IsReady: body.IsReady,
	}); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type submitPickRequest struct {
	PlayerName string `json:"player_name"`
}

type submitPickResponse struct {
	Pick   *models.Pick `json:"pick"`
	Detail *detail.View `json:"detail"`
}

func (s *Server) handleSubmitPick(w http.ResponseWriter, r *http.Request) {
	draftID, err := draftIDFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var body submitPickRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, errs.Validation(errs.ReasonInvalidInput, "malformed request body"))
		return
	}

	user := userFrom(r.Context())
	actor := models.Actor{UserID: user.ID, IsAdmin: user.IsAdmin}
	result, err := s.picks.SubmitPick(r.Context(), actor, pick.SubmitRequest{
		DraftID:    draftID,
		PlayerName: body.PlayerName,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	s.details.Invalidate(draftID)
	s.wake()

	view, err := s.details.Assemble(r.Context(), draftID, user)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, submitPickResponse{Pick: result.Pick, Detail: view})
}

func (s *Server) handleGetDetail(w http.ResponseWriter, r *http.Request) {
	draftID, err := draftIDFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}
	view, err := s.details.Assemble(r.Context(), draftID, userFrom(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleRoomSocket(w http.ResponseWriter, r *http.Request) {
	if s.gateway == nil {
		writeError(w, errs.NotFound("room feed is not enabled"))
		return
	}
	draftID, err := draftIDFrom(r)
	if err != nil {
		writeError(w, err)
		return
	}
	user := userFrom(r.Context())
	if err := s.gateway.Upgrade(w, r, user.ID.String(), draftID); err != nil {
		log.Error().Err(err).Str("draft_id", draftID.String()).Msg("WebSocket upgrade failed")
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) wake() {
	if s.waker != nil {
		s.waker.Wake()
	}
}

func draftIDFrom(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "draftID"))
	if err != nil {
		return uuid.Nil, errs.Validation(errs.ReasonInvalidInput, "draft id must be a UUID")
	}
	return id, nil
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Kind    string `json:"kind"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, err error) {
	kind := errs.KindOf(err)
	status := statusFor(kind)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("request failed")
	}
	writeJSON(w, status, errorBody{Error: errorDetail{
		Kind:    kindLabel(kind),
		Reason:  errs.ReasonOf(err),
		Message: publicMessage(err, status),
	}})
}

func statusFor(kind errs.Kind) int {
	switch kind {
	case errs.KindValidation:
		return http.StatusBadRequest
	case errs.KindAuth:
		return http.StatusUnauthorized
	case errs.KindForbidden:
		return http.StatusForbidden
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func kindLabel(kind errs.Kind) string {
	switch kind {
	case errs.KindValidation:
		return "validation"
	case errs.KindAuth:
		return "auth"
	case errs.KindForbidden:
		return "forbidden"
	case errs.KindNotFound:
		return "not_found"
	case errs.KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// publicMessage hides storage details behind a generic message for 500s.
func publicMessage(err error, status int) string {
	if status == http.StatusInternalServerError {
		return "internal error"
	}
	var e *errs.Error
	if errors.As(err, &e) {
		return e.Msg
	}
	return err.Error()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}
