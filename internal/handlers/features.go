package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/talentgraph-backend/internal/repos"
)

// FeatureHandler serves the dictionary nodes (skills, languages, job titles
// and so on) behind a single set of routes keyed by kind.
type FeatureHandler struct {
	features map[string]repos.FeatureRepo
}

func NewFeatureHandler(features map[string]repos.FeatureRepo) *FeatureHandler {
	return &FeatureHandler{features: features}
}

func (fh *FeatureHandler) repo(c *gin.Context) (repos.FeatureRepo, bool) {
	kind := c.Param("kind")
	repo, ok := fh.features[kind]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown feature kind: " + kind, "code": "NOT_FOUND"})
		return nil, false
	}
	return repo, true
}

func (fh *FeatureHandler) List(c *gin.Context) {
	repo, ok := fh.repo(c)
	if !ok {
		return
	}
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	items, err := repo.GetList(c.Request.Context(), skip, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "skip": skip, "limit": limit})
}

func (fh *FeatureHandler) Upsert(c *gin.Context) {
	repo, ok := fh.repo(c)
	if !ok {
		return
	}
	var body struct {
		Name string `json:"name" binding:"required"`
		UID  string `json:"uid"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "VALIDATION"})
		return
	}
	uid, err := repo.Upsert(c.Request.Context(), body.Name, body.UID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"uid": uid})
}

func (fh *FeatureHandler) Delete(c *gin.Context) {
	repo, ok := fh.repo(c)
	if !ok {
		return
	}
	deleted, err := repo.Delete(c.Request.Context(), c.Param("uid"))
	if err != nil {
		writeError(c, err)
		return
	}
	if deleted == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found", "code": "NOT_FOUND"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
