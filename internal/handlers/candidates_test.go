package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/talentgraph-backend/internal/repos"
	"github.com/yungbote/talentgraph-backend/internal/types"
)

type stubCandidateService struct {
	summary *types.ResumeSummary
	full    *types.CandidateFull
	err     error
}

func (s *stubCandidateService) AddCandidateFromResume(_ context.Context, _ types.ParsedResume) (*types.ResumeSummary, error) {
	return s.summary, s.err
}

func (s *stubCandidateService) GetCandidateFull(_ context.Context, _ string) (*types.CandidateFull, error) {
	return s.full, s.err
}

type stubMatchRepo struct {
	match *types.MatchResponse
	query *types.QueryResponse
	err   error
}

func (s *stubMatchRepo) MatchCandidates(_ context.Context, _ types.MatchRequest) (*types.MatchResponse, error) {
	return s.match, s.err
}

func (s *stubMatchRepo) QueryCandidates(_ context.Context, _ types.QueryRequest) (*types.QueryResponse, error) {
	return s.query, s.err
}

func newTestRouter(svc *stubCandidateService, match *stubMatchRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewCandidateHandler(svc, match)
	r := gin.New()
	r.POST("/api/candidates/from_resume", h.AddFromResume)
	r.GET("/api/candidates/:uid/full", h.GetFull)
	r.POST("/api/candidates/match", h.Match)
	return r
}

func TestAddFromResumeCreated(t *testing.T) {
	svc := &stubCandidateService{summary: &types.ResumeSummary{CandidateUID: "c-1"}}
	r := newTestRouter(svc, &stubMatchRepo{})

	body := `{"name": "Ada Lovelace"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/candidates/from_resume", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var got types.ResumeSummary
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if got.CandidateUID != "c-1" {
		t.Fatalf("unexpected summary: %+v", got)
	}
}

func TestAddFromResumeBadJSON(t *testing.T) {
	r := newTestRouter(&stubCandidateService{}, &stubMatchRepo{})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/candidates/from_resume", strings.NewReader("{nope"))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestGetFullNotFound(t *testing.T) {
	svc := &stubCandidateService{err: repos.ErrNotFound}
	r := newTestRouter(svc, &stubMatchRepo{})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/candidates/ghost/full", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "NOT_FOUND") {
		t.Fatalf("expected NOT_FOUND code in body: %s", w.Body.String())
	}
}

func TestMatchReturnsRanking(t *testing.T) {
	match := &stubMatchRepo{match: &types.MatchResponse{
		TopK:  10,
		Items: []types.MatchItem{{Candidate: map[string]any{"uid": "c-1"}, Score: 0.6}},
	}}
	r := newTestRouter(&stubCandidateService{}, match)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/candidates/match", strings.NewReader(`{"top_k": 10}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var got types.MatchResponse
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if len(got.Items) != 1 || got.Items[0].Score != 0.6 {
		t.Fatalf("unexpected response: %+v", got)
	}
}
