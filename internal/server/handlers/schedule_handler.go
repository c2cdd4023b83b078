package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/brewhouse/internal/domain/apperr"
	"github.com/mamadbah2/brewhouse/internal/domain/models"
	"github.com/mamadbah2/brewhouse/internal/service/scheduling"
)

// ScheduleHandler exposes production schedules over HTTP.
type ScheduleHandler struct {
	svc    *scheduling.Service
	logger *zap.Logger
}

// NewScheduleHandler wires the schedule routes to the scheduling service.
func NewScheduleHandler(svc *scheduling.Service, logger *zap.Logger) *ScheduleHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleHandler{svc: svc, logger: logger}
}

type createScheduleRequest struct {
	TankID       string                `json:"tankId"`
	BrewStyle    string                `json:"brewStyle"`
	StartDate    *Date                 `json:"startDate"`
	Status       models.ScheduleStatus `json:"status"`
	ActualVolume *float64              `json:"actualVolume"`
	Notes        string                `json:"notes"`
}

type updateScheduleRequest struct {
	TankID       *string                `json:"tankId"`
	BrewStyle    *string                `json:"brewStyle"`
	StartDate    *Date                  `json:"startDate"`
	Status       *models.ScheduleStatus `json:"status"`
	ActualVolume *float64               `json:"actualVolume"`
	Notes        *string                `json:"notes"`
}

type checkConflictRequest struct {
	TankID    string `json:"tankId"`
	BrewStyle string `json:"brewStyle"`
	StartDate *Date  `json:"startDate"`
	EndDate   *Date  `json:"endDate"`
	ExcludeID string `json:"excludeId"`
}

// Create books a tank for a new batch and returns 201 with the computed dates.
func (h *ScheduleHandler) Create(c *gin.Context) {
	var req createScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	tankID, err := parseObjectID("tankId", req.TankID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	if req.StartDate == nil {
		writeError(c, h.logger, apperr.Validation("startDate", "start date is required"))
		return
	}

	schedule, err := h.svc.Create(c.Request.Context(), scheduling.CreateInput{
		TankID:       tankID,
		BrewStyle:    req.BrewStyle,
		StartDate:    req.StartDate.Time,
		Status:       req.Status,
		ActualVolume: req.ActualVolume,
		Notes:        req.Notes,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, schedule)
}

// List supports the tankId, status, from and to query parameters.
func (h *ScheduleHandler) List(c *gin.Context) {
	var filter models.ScheduleFilter

	tankID, err := parseOptionalObjectID("tankId", c.Query("tankId"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	filter.TankID = tankID
	filter.Status = models.ScheduleStatus(c.Query("status"))

	if raw := c.Query("from"); raw != "" {
		if filter.From, err = parseDate(raw); err != nil {
			writeError(c, h.logger, apperr.Validation("from", "%v", err))
			return
		}
	}
	if raw := c.Query("to"); raw != "" {
		if filter.To, err = parseDate(raw); err != nil {
			writeError(c, h.logger, apperr.Validation("to", "%v", err))
			return
		}
	}

	list, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Get returns one schedule by id.
func (h *ScheduleHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	schedule, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, schedule)
}

// Update re-plans a schedule, re-running the conflict check against other bookings.
func (h *ScheduleHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req updateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	in := scheduling.UpdateInput{
		BrewStyle:    req.BrewStyle,
		StartDate:    req.StartDate.ptr(),
		Status:       req.Status,
		ActualVolume: req.ActualVolume,
		Notes:        req.Notes,
	}
	if req.TankID != nil {
		tankID, err := parseObjectID("tankId", *req.TankID)
		if err != nil {
			writeError(c, h.logger, err)
			return
		}
		in.TankID = &tankID
	}

	schedule, err := h.svc.Update(c.Request.Context(), id, in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, schedule)
}

// Delete removes a schedule and answers 204.
func (h *ScheduleHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CheckConflict answers {hasConflict} for a prospective booking without saving anything.
func (h *ScheduleHandler) CheckConflict(c *gin.Context) {
	var req checkConflictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	tankID, err := parseObjectID("tankId", req.TankID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	excludeID, err := parseOptionalObjectID("excludeId", req.ExcludeID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	if req.StartDate == nil {
		writeError(c, h.logger, apperr.Validation("startDate", "start date is required"))
		return
	}

	conflict, err := h.svc.CheckConflict(c.Request.Context(), scheduling.ConflictQuery{
		TankID:    tankID,
		BrewStyle: req.BrewStyle,
		StartDate: req.StartDate.Time,
		EndDate:   req.EndDate.ptr(),
		ExcludeID: excludeID,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"hasConflict": conflict})
}
