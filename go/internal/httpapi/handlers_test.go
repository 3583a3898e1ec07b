package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cLEANTHUGGcODES/lcs-fantasy-sub001/go/internal/draft/detail"
	"github.com/cLEANTHUGGcODES/lcs-fantasy-sub001/go/internal/draft/pick"
	"github.com/cLEANTHUGGcODES/lcs-fantasy-sub001/go/internal/draft/presence"
	"github.com/cLEANTHUGGcODES/lcs-fantasy-sub001/go/internal/errs"
	"github.com/cLEANTHUGGcODES/lcs-fantasy-sub001/go/internal/models"
)

type stubResolver struct {
	users map[string]*models.User
}

func (s *stubResolver) GetUserByToken(_ context.Context, token string) (*models.User, error) {
	if u, ok := s.users[token]; ok {
		return u, nil
	}
	return nil, errs.Auth("invalid session token")
}

type stubDrafts struct {
	err    error
	draft  *models.Draft
	actors []models.Actor
}

func (s *stubDrafts) UpdateStatus(_ context.Context, _ uuid.UUID, actor models.Actor, _ models.DraftStatus, _ bool) (*models.Draft, error) {
	s.actors = append(s.actors, actor)
	if s.err != nil {
		return nil, s.err
	}
	return s.draft, nil
}

type stubPresence struct {
	reqs []presence.HeartbeatRequest
}

func (s *stubPresence) Heartbeat(_ context.Context, req presence.HeartbeatRequest) error {
	s.reqs = append(s.reqs, req)
	return nil
}

type stubPicks struct {
	err    error
	result *pick.Result
}

func (s *stubPicks) SubmitPick(_ context.Context, _ models.Actor, _ pick.SubmitRequest) (*pick.Result, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

type stubDetails struct {
	view        *detail.View
	err         error
	invalidated int
}

func (s *stubDetails) Assemble(_ context.Context, _ uuid.UUID, _ *models.User) (*detail.View, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.view, nil
}

func (s *stubDetails) Invalidate(_ uuid.UUID) { s.invalidated++ }

type env struct {
	drafts   *stubDrafts
	presence *stubPresence
	picks    *stubPicks
	details  *stubDetails
	handler  http.Handler
	user     *models.User
	draftID  uuid.UUID
}

func newEnv(t *testing.T) *env {
	t.Helper()
	user := &models.User{ID: uuid.New(), Username: "commish"}
	draftID := uuid.New()
	e := &env{
		drafts:   &stubDrafts{draft: &models.Draft{ID: draftID, Status: models.DraftStatusLive}},
		presence: &stubPresence{},
		picks: &stubPicks{result: &pick.Result{
			Pick: &models.Pick{ID: uuid.New(), DraftID: draftID, OverallPick: 1, PlayerName: "Faker"},
		}},
		details: &stubDetails{view: &detail.View{Draft: models.Draft{ID: draftID}}},
		user:    user,
		draftID: draftID,
	}
	server := NewServer(e.drafts, e.presence, e.picks, e.details, nil, nil)
	resolver := &stubResolver{users: map[string]*models.User{"good-token": user}}
	e.handler = Routes(server, resolver)
	return e
}

func (e *env) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorDetail {
	t.Helper()
	var body errorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Error
}

func TestHealthRequiresNoAuth(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthRejectsMissingAndBadTokens(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, http.MethodGet, "/drafts/"+e.draftID.String(), "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = e.do(t, http.MethodGet, "/drafts/"+e.draftID.String(), "wrong-token", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, errs.ReasonUnauthenticated, decodeError(t, rec).Reason)
}

func TestGetDetail(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodGet, "/drafts/"+e.draftID.String(), "good-token", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var view detail.View
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&view))
	assert.Equal(t, e.draftID, view.Draft.ID)
}

func TestGetDetailBadDraftID(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodGet, "/drafts/not-a-uuid", "good-token", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, errs.ReasonInvalidInput, decodeError(t, rec).Reason)
}

func TestUpdateStatusSuccess(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodPost, "/drafts/"+e.draftID.String()+"/status", "good-token",
		`{"status":"live","force":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, e.details.invalidated)
	require.Len(t, e.drafts.actors, 1)
	assert.Equal(t, e.user.ID, e.drafts.actors[0].UserID)
	assert.False(t, e.drafts.actors[0].System)
}

func TestUpdateStatusErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		reason string
	}{
		{"forbidden", errs.Forbidden(errs.ReasonNotCommissioner, "only the commissioner may change draft status"), http.StatusForbidden, errs.ReasonNotCommissioner},
		{"invalid transition", errs.Validation(errs.ReasonInvalidTransition, "transition not allowed"), http.StatusBadRequest, errs.ReasonInvalidTransition},
		{"not found", errs.NotFound("draft not found"), http.StatusNotFound, errs.ReasonNotFound},
		{"conflict", errs.Conflict(errs.ReasonStatusChanged, "status changed concurrently"), http.StatusConflict, errs.ReasonStatusChanged},
		{"storage", errs.Transient(assert.AnError, "query failed"), http.StatusInternalServerError, errs.ReasonStorage},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newEnv(t)
			e.drafts.err = tc.err
			rec := e.do(t, http.MethodPost, "/drafts/"+e.draftID.String()+"/status", "good-token",
				`{"status":"live"}`)
			assert.Equal(t, tc.status, rec.Code)
			errDetail := decodeError(t, rec)
			assert.Equal(t, tc.reason, errDetail.Reason)
			if tc.status == http.StatusInternalServerError {
				assert.Equal(t, "internal error", errDetail.Message, "storage details must not leak")
			}
		})
	}
}

func TestHeartbeat(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodPost, "/drafts/"+e.draftID.String()+"/presence", "good-token",
		`{"is_ready":true}`)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Len(t, e.presence.reqs, 1)
	assert.Equal(t, e.user.ID, e.presence.reqs[0].UserID)
	require.NotNil(t, e.presence.reqs[0].IsReady)
	assert.True(t, *e.presence.reqs[0].IsReady)
}

func TestHeartbeatWithoutBody(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodPost, "/drafts/"+e.draftID.String()+"/presence", "good-token", "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Len(t, e.presence.reqs, 1)
	assert.Nil(t, e.presence.reqs[0].IsReady, "absent body must not overwrite readiness")
}

func TestSubmitPickSuccess(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodPost, "/drafts/"+e.draftID.String()+"/picks", "good-token",
		`{"player_name":"Faker"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp submitPickResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Faker", resp.Pick.PlayerName)
	require.NotNil(t, resp.Detail)
	assert.Equal(t, 1, e.details.invalidated)
}

func TestSubmitPickConflict(t *testing.T) {
	e := newEnv(t)
	e.picks.err = errs.Conflict(errs.ReasonPlayerUnavailable, "player was just taken")
	rec := e.do(t, http.MethodPost, "/drafts/"+e.draftID.String()+"/picks", "good-token",
		`{"player_name":"Faker"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, errs.ReasonPlayerUnavailable, decodeError(t, rec).Reason)
	assert.Equal(t, 0, e.details.invalidated)
}
