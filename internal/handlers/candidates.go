package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/talentgraph-backend/internal/repos"
	"github.com/yungbote/talentgraph-backend/internal/services"
	"github.com/yungbote/talentgraph-backend/internal/types"
)

type CandidateHandler struct {
	candidateService services.CandidateService
	matchRepo        repos.MatchRepo
}

func NewCandidateHandler(candidateService services.CandidateService, matchRepo repos.MatchRepo) *CandidateHandler {
	return &CandidateHandler{candidateService: candidateService, matchRepo: matchRepo}
}

func (ch *CandidateHandler) AddFromResume(c *gin.Context) {
	var resume types.ParsedResume
	if err := c.ShouldBindJSON(&resume); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "VALIDATION"})
		return
	}
	summary, err := ch.candidateService.AddCandidateFromResume(c.Request.Context(), resume)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, summary)
}

func (ch *CandidateHandler) GetFull(c *gin.Context) {
	full, err := ch.candidateService.GetCandidateFull(c.Request.Context(), c.Param("uid"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, full)
}

func (ch *CandidateHandler) Match(c *gin.Context) {
	var req types.MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "VALIDATION"})
		return
	}
	resp, err := ch.matchRepo.MatchCandidates(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (ch *CandidateHandler) Query(c *gin.Context) {
	var req types.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "VALIDATION"})
		return
	}
	resp, err := ch.matchRepo.QueryCandidates(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
