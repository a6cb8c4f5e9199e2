package handler

import (
	"net/http"

	"volunteer_platform/internal/model"
	"volunteer_platform/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SurveyHandler handles survey related requests
type SurveyHandler struct {
	service service.SurveyService
	log     *zap.Logger
}

// NewSurveyHandler creates a new SurveyHandler
func NewSurveyHandler(s service.SurveyService, log *zap.Logger) *SurveyHandler {
	return &SurveyHandler{service: s, log: log}
}

func parseSurveyID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "Invalid survey ID")
		return uuid.Nil, false
	}
	return id, true
}

func (h *SurveyHandler) CreateSurvey(c *gin.Context) {
	p, ok := getPrincipal(c)
	if !ok {
		return
	}

	var req model.CreateSurveyRequest
	if !bindJSON(c, &req) {
		return
	}

	survey, err := h.service.CreateSurvey(c.Request.Context(), p.UserID, req)
	if err != nil {
		respondError(c, h.log, err, "Failed to create survey")
		return
	}
	c.JSON(http.StatusCreated, survey)
}

func (h *SurveyHandler) GetMySurveys(c *gin.Context) {
	p, ok := getPrincipal(c)
	if !ok {
		return
	}

	surveys, count, err := h.service.GetVolunteerSurveys(c.Request.Context(), p.UserID)
	if err != nil {
		respondError(c, h.log, err, "Failed to retrieve surveys")
		return
	}
	c.JSON(http.StatusOK, gin.H{"surveys": surveys, "count": count})
}

func (h *SurveyHandler) GetSurveyByID(c *gin.Context) {
	p, ok := getPrincipal(c)
	if !ok {
		return
	}
	surveyID, ok := parseSurveyID(c)
	if !ok {
		return
	}

	survey, err := h.service.GetSurveyByID(c.Request.Context(), surveyID, p)
	if err != nil {
		respondError(c, h.log, err, "Failed to retrieve survey")
		return
	}
	c.JSON(http.StatusOK, survey)
}

func (h *SurveyHandler) UpdateSurvey(c *gin.Context) {
	p, ok := getPrincipal(c)
	if !ok {
		return
	}
	surveyID, ok := parseSurveyID(c)
	if !ok {
		return
	}

	var req model.UpdateSurveyRequest
	if !bindJSON(c, &req) {
		return
	}

	survey, err := h.service.UpdateSurvey(c.Request.Context(), surveyID, p, req)
	if err != nil {
		respondError(c, h.log, err, "Failed to update survey")
		return
	}
	c.JSON(http.StatusOK, survey)
}

func (h *SurveyHandler) DeleteSurvey(c *gin.Context) {
	p, ok := getPrincipal(c)
	if !ok {
		return
	}
	surveyID, ok := parseSurveyID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteSurvey(c.Request.Context(), surveyID, p); err != nil {
		respondError(c, h.log, err, "Failed to delete survey")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Survey deleted successfully"})
}

// RegisterSurveyRoutes registers survey routes. rg must already carry authentication.
// Creating and listing own surveys goes through volunteerMW; the /:id routes go through
// ownerMW and the service checks ownership.
func (h *SurveyHandler) RegisterSurveyRoutes(rg *gin.RouterGroup, volunteerMW, ownerMW gin.HandlerFunc) {
	surveyRoutes := rg.Group("/volunteer/surveys")
	{
		surveyRoutes.POST("", volunteerMW, h.CreateSurvey)
		surveyRoutes.GET("", volunteerMW, h.GetMySurveys)
		surveyRoutes.GET("/:id", ownerMW, h.GetSurveyByID)
		surveyRoutes.PUT("/:id", ownerMW, h.UpdateSurvey)
		surveyRoutes.DELETE("/:id", ownerMW, h.DeleteSurvey)
	}
}
