package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/talentgraph-backend/internal/graph"
	"github.com/yungbote/talentgraph-backend/internal/platform/apierr"
	"github.com/yungbote/talentgraph-backend/internal/repos"
)

// writeError maps domain errors to HTTP statuses. Schema violations and
// empty identifiers are caller mistakes; anything unrecognized is a 500.
func writeError(c *gin.Context, err error) {
	var ae *apierr.Error
	if errors.As(err, &ae) {
		c.JSON(ae.Status, gin.H{"error": ae.Err.Error(), "code": ae.Code})
		return
	}
	var se *graph.SchemaError
	if errors.As(err, &se) {
		c.JSON(http.StatusBadRequest, gin.H{"error": se.Error(), "code": "SCHEMA"})
		return
	}
	switch {
	case errors.Is(err, repos.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found", "code": "NOT_FOUND"})
	case errors.Is(err, repos.ErrEmptyKey), errors.Is(err, repos.ErrEmptyID):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "VALIDATION"})
	case errors.Is(err, graph.ErrWeightFixed), errors.Is(err, graph.ErrCostNotSettable):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "VALIDATION"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "code": "INTERNAL"})
	}
}
