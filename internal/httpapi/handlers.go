package httpapi

import (
	"errors"
	"net/http"

	"slicepoll/internal/auth"
	"slicepoll/internal/ratings"
	"slicepoll/internal/surveys"
	"slicepoll/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Handlers groups HTTP handlers for dependency injection.
// Keep these thin: parse/validate input, call internal services, return JSON.
//
// Authentication ordering: the gate middleware runs before any handler here,
// so body validation (e.g. score range) only ever applies to requests that
// already passed the guard on gated routes.
type Handlers struct {
	Surveys *surveys.Service
	Ratings *ratings.Service
}

// --- Surveys ---

func (h Handlers) ListSurveys(c *gin.Context) {
	out, err := h.Surveys.List(c.Request.Context())
	if err != nil {
		logger.FromGin(c).Error("survey list failed", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load surveys"})
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h Handlers) GetSurvey(c *gin.Context) {
	sv, err := h.Surveys.Get(c.Request.Context(), c.Param("survey_id"))
	if err != nil {
		h.surveyError(c, err)
		return
	}
	c.JSON(http.StatusOK, sv)
}

func (h Handlers) CreateSurvey(c *gin.Context) {
	var req surveys.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	u, err := auth.UserFrom(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	sv, err := h.Surveys.Create(c.Request.Context(), req, u.ID)
	if err != nil {
		h.surveyError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sv)
}

func (h Handlers) UpdateSurvey(c *gin.Context) {
	var req surveys.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}
	sv, err := h.Surveys.Update(c.Request.Context(), c.Param("survey_id"), req)
	if err != nil {
		h.surveyError(c, err)
		return
	}
	c.JSON(http.StatusOK, sv)
}

func (h Handlers) DeleteSurvey(c *gin.Context) {
	if err := h.Surveys.Delete(c.Request.Context(), c.Param("survey_id")); err != nil {
		h.surveyError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Ratings ---

type submitRatingRequest struct {
	Score int `json:"score"`
}

func (h Handlers) SubmitRating(c *gin.Context) {
	var req submitRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	u, err := auth.UserFrom(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	r, err := h.Ratings.Submit(c.Request.Context(), c.Param("survey_id"), u.ID, req.Score)
	if err != nil {
		switch {
		case errors.Is(err, ratings.ErrScoreOutOfRange):
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Score must be between 1 and 10"})
		case errors.Is(err, ratings.ErrSurveyNotFound):
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Survey not found"})
		case errors.Is(err, ratings.ErrInvalidArgument):
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid rating"})
		default:
			logger.FromGin(c).Error("rating submit failed", "err", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit rating"})
		}
		return
	}
	c.JSON(http.StatusCreated, r)
}

func (h Handlers) GetResults(c *gin.Context) {
	surveyID := c.Param("survey_id")

	// Results are public; the caller's own score rides along when the
	// Optional gate attached a principal.
	callerID := ""
	if u, err := auth.UserFrom(c.Request.Context()); err == nil {
		callerID = u.ID
	}

	if _, err := h.Surveys.Get(c.Request.Context(), surveyID); err != nil {
		h.surveyError(c, err)
		return
	}

	sum, err := h.Ratings.Results(c.Request.Context(), surveyID, callerID)
	if err != nil {
		logger.FromGin(c).Error("results lookup failed", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load results"})
		return
	}
	c.JSON(http.StatusOK, sum)
}

// --- Me ---

func (h Handlers) Me(c *gin.Context) {
	u, err := auth.UserFrom(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	id, _ := auth.IdentityFrom(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"user": u, "identity": id})
}

func (h Handlers) surveyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, surveys.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Survey not found"})
	case errors.Is(err, surveys.ErrInvalidArgument):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid survey"})
	default:
		logger.FromGin(c).Error("survey operation failed", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Survey operation failed"})
	}
}
