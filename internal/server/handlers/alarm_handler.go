package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/brewhouse/internal/domain/models"
	"github.com/mamadbah2/brewhouse/internal/service/alarms"
)

// AlarmHandler exposes alarm definitions. The active flag is read-only here.
type AlarmHandler struct {
	svc    *alarms.Service
	logger *zap.Logger
}

// NewAlarmHandler wires the alarm definition routes.
func NewAlarmHandler(svc *alarms.Service, logger *zap.Logger) *AlarmHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AlarmHandler{svc: svc, logger: logger}
}

type alarmRequest struct {
	Name      string           `json:"name"`
	Type      models.AlarmType `json:"type"`
	Threshold *float64         `json:"threshold"`
	TankID    string           `json:"tankId"`
}

func (h *AlarmHandler) bind(c *gin.Context) (alarms.AlarmInput, bool) {
	var req alarmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return alarms.AlarmInput{}, false
	}
	tankID, err := parseObjectID("tankId", req.TankID)
	if err != nil {
		writeError(c, h.logger, err)
		return alarms.AlarmInput{}, false
	}
	return alarms.AlarmInput{
		Name:      req.Name,
		Type:      req.Type,
		Threshold: req.Threshold,
		TankID:    tankID,
	}, true
}

// Create stores an alarm definition. New alarms start inactive.
func (h *AlarmHandler) Create(c *gin.Context) {
	in, ok := h.bind(c)
	if !ok {
		return
	}
	alarm, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, alarm)
}

// List returns every alarm with its current active flag.
func (h *AlarmHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Get returns one alarm by id.
func (h *AlarmHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	alarm, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, alarm)
}

// Update edits an alarm definition without touching its active flag.
func (h *AlarmHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	in, ok := h.bind(c)
	if !ok {
		return
	}
	alarm, err := h.svc.Update(c.Request.Context(), id, in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, alarm)
}

// Delete removes an alarm and answers 204.
func (h *AlarmHandler) Delete(c *gin.Context) {
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
