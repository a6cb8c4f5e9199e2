package handler

import (
	"net/http"

	"volunteer_platform/internal/model"
	"volunteer_platform/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProfileHandler exposes the volunteer profile wizard
type ProfileHandler struct {
	service service.ProfileService
	log     *zap.Logger
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(s service.ProfileService, log *zap.Logger) *ProfileHandler {
	return &ProfileHandler{service: s, log: log}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	p, ok := getPrincipal(c)
	if !ok {
		return
	}

	view, err := h.service.GetProfile(c.Request.Context(), p.UserID)
	if err != nil {
		respondError(c, h.log, err, "Failed to retrieve profile")
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *ProfileHandler) SubmitStep1(c *gin.Context) {
	p, ok := getPrincipal(c)
	if !ok {
		return
	}

	var req model.Step1Request
	if !bindJSON(c, &req) {
		return
	}

	profile, err := h.service.SubmitStep1(c.Request.Context(), p.UserID, req)
	if err != nil {
		respondError(c, h.log, err, "Failed to save step 1")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Step 1 saved", "profile": profile})
}

func (h *ProfileHandler) SubmitStep2(c *gin.Context) {
	p, ok := getPrincipal(c)
	if !ok {
		return
	}

	var req model.Step2Request
	if !bindJSON(c, &req) {
		return
	}

	profile, err := h.service.SubmitStep2(c.Request.Context(), p.UserID, req)
	if err != nil {
		respondError(c, h.log, err, "Failed to save step 2")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Step 2 saved", "profile": profile})
}

func (h *ProfileHandler) SubmitStep3(c *gin.Context) {
	p, ok := getPrincipal(c)
	if !ok {
		return
	}

	var req model.Step3Request
	if !bindJSON(c, &req) {
		return
	}

	profile, err := h.service.SubmitStep3(c.Request.Context(), p.UserID, req)
	if err != nil {
		respondError(c, h.log, err, "Failed to save step 3")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Step 3 saved", "profile": profile})
}

func (h *ProfileHandler) Submit(c *gin.Context) {
	p, ok := getPrincipal(c)
	if !ok {
		return
	}

	profile, err := h.service.Submit(c.Request.Context(), p.UserID)
	if err != nil {
		respondError(c, h.log, err, "Failed to submit profile")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile submitted", "profile": profile})
}

// RegisterProfileRoutes registers the wizard under /volunteer/profile. rg must already
// carry authentication.
func (h *ProfileHandler) RegisterProfileRoutes(rg *gin.RouterGroup, volunteerMW gin.HandlerFunc) {
	profileGroup := rg.Group("/volunteer/profile")
	profileGroup.Use(volunteerMW)
	{
		profileGroup.GET("", h.GetProfile)
		profileGroup.POST("/step1", h.SubmitStep1)
		profileGroup.POST("/step2", h.SubmitStep2)
		profileGroup.POST("/step3", h.SubmitStep3)
		profileGroup.POST("/submit", h.Submit)
	}
}
