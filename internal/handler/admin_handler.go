package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"volunteer_platform/internal/model"
	"volunteer_platform/internal/service"
	"volunteer_platform/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AdminHandler serves the read-only admin dashboard and listings
type AdminHandler struct {
	admin   service.AdminService
	surveys service.SurveyService
	log     *zap.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(admin service.AdminService, surveys service.SurveyService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{admin: admin, surveys: surveys, log: log}
}

func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.admin.GetDashboardStats(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "Failed to retrieve statistics")
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *AdminHandler) ListVolunteers(c *gin.Context) {
	volunteers, err := h.admin.ListVolunteers(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "Failed to retrieve volunteers")
		return
	}
	c.JSON(http.StatusOK, gin.H{"volunteers": volunteers, "count": len(volunteers)})
}

func (h *AdminHandler) GetVolunteer(c *gin.Context) {
	volunteerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "Invalid volunteer ID")
		return
	}

	detail, err := h.admin.GetVolunteerDetail(c.Request.Context(), volunteerID)
	if err != nil {
		respondError(c, h.log, err, "Failed to retrieve volunteer")
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *AdminHandler) ListSurveys(c *gin.Context) {
	filters, ok := parseSurveyFilters(c)
	if !ok {
		return
	}

	surveys, err := h.surveys.GetAllSurveysAdmin(c.Request.Context(), filters)
	if err != nil {
		respondError(c, h.log, err, "Failed to retrieve surveys")
		return
	}
	c.JSON(http.StatusOK, gin.H{"surveys": surveys, "count": len(surveys)})
}

func (h *AdminHandler) ExportSurveysCSV(c *gin.Context) {
	filters, ok := parseSurveyFilters(c)
	if !ok {
		return
	}

	csvBuffer, err := h.surveys.ExportSurveysCSVAdmin(c.Request.Context(), filters)
	if err != nil {
		respondError(c, h.log, err, "Failed to export surveys to CSV")
		return
	}

	fileName := fmt.Sprintf("surveys_export_%s.csv", time.Now().Format("20060102_150405"))
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	c.Data(http.StatusOK, "text/csv", csvBuffer.Bytes())
}

// parseSurveyFilters reads volunteer_id, from, to, near_lat, near_lng and radius_km.
// The three radius parameters must be given together.
func parseSurveyFilters(c *gin.Context) (model.SurveyFilters, bool) {
	var filters model.SurveyFilters
	errs := &validation.Errors{}

	if v := c.Query("volunteer_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			errs.Add("volunteer_id", "must be a UUID")
		} else {
			filters.VolunteerID = &id
		}
	}
	if v := c.Query("from"); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			errs.Add("from", "must be a date in YYYY-MM-DD format")
		} else {
			filters.StartDate = &d
		}
	}
	if v := c.Query("to"); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			errs.Add("to", "must be a date in YYYY-MM-DD format")
		} else {
			endOfDay := time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, 999999999, d.Location())
			filters.EndDate = &endOfDay
		}
	}

	lat, lng, radius := c.Query("near_lat"), c.Query("near_lng"), c.Query("radius_km")
	if lat != "" || lng != "" || radius != "" {
		if lat == "" || lng == "" || radius == "" {
			errs.Add("near", "near_lat, near_lng and radius_km must be given together")
		} else {
			point := model.GeoPoint{
				Latitude:  parseFloatParam("near_lat", lat, errs),
				Longitude: parseFloatParam("near_lng", lng, errs),
			}
			r := parseFloatParam("radius_km", radius, errs)
			if !errs.Has("near_lat") && !validation.ValidLatitude(point.Latitude) {
				errs.Add("near_lat", "latitude must be between -90 and 90")
			}
			if !errs.Has("near_lng") && !validation.ValidLongitude(point.Longitude) {
				errs.Add("near_lng", "longitude must be between -180 and 180")
			}
			if !errs.Has("radius_km") && !(r > 0) {
				errs.Add("radius_km", "must be greater than 0")
			}
			filters.Near = &point
			filters.RadiusKm = r
		}
	}

	if len(errs.Fields) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "fields": errs.Fields})
		return model.SurveyFilters{}, false
	}
	return filters, true
}

func parseFloatParam(name, value string, errs *validation.Errors) float64 {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		errs.Add(name, "must be a number")
		return 0
	}
	return f
}

// RegisterAdminRoutes registers admin routes. rg must already carry authentication.
func (h *AdminHandler) RegisterAdminRoutes(rg *gin.RouterGroup, adminMW gin.HandlerFunc) {
	adminRoutes := rg.Group("/admin")
	adminRoutes.Use(adminMW)
	{
		adminRoutes.GET("/stats", h.GetStats)
		adminRoutes.GET("/volunteers", h.ListVolunteers)
		adminRoutes.GET("/volunteers/:id", h.GetVolunteer)
		adminRoutes.GET("/surveys", h.ListSurveys)
		adminRoutes.GET("/surveys/export/csv", h.ExportSurveysCSV)
	}
}
