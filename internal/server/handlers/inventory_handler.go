package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/brewhouse/internal/domain/models"
	"github.com/mamadbah2/brewhouse/internal/service/inventory"
)

// InventoryHandler exposes tanks, brew styles and the system status.
type InventoryHandler struct {
	svc    *inventory.Service
	logger *zap.Logger
}

// NewInventoryHandler wires the tank, brew style and system status routes.
func NewInventoryHandler(svc *inventory.Service, logger *zap.Logger) *InventoryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InventoryHandler{svc: svc, logger: logger}
}

type tankRequest struct {
	Name        string             `json:"name"`
	Temperature float64            `json:"temperature"`
	Status      models.TankStatus  `json:"status"`
	Mode        models.Mode        `json:"mode"`
	ValveStatus models.ValveStatus `json:"valveStatus"`
}

func (r tankRequest) input() inventory.TankInput {
	return inventory.TankInput{
		Name:        r.Name,
		Temperature: r.Temperature,
		Status:      r.Status,
		Mode:        r.Mode,
		ValveStatus: r.ValveStatus,
	}
}

type readingRequest struct {
	Temperature *float64            `json:"temperature"`
	Mode        *models.Mode        `json:"mode"`
	ValveStatus *models.ValveStatus `json:"valveStatus"`
}

// ---- tanks ----

// CreateTank registers a tank.
func (h *InventoryHandler) CreateTank(c *gin.Context) {
	var req tankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	tank, err := h.svc.CreateTank(c.Request.Context(), req.input())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, tank)
}

// ListTanks returns every tank.
func (h *InventoryHandler) ListTanks(c *gin.Context) {
	list, err := h.svc.ListTanks(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetTank returns one tank by id.
func (h *InventoryHandler) GetTank(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	tank, err := h.svc.GetTank(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, tank)
}

// UpdateTank replaces a tank definition.
func (h *InventoryHandler) UpdateTank(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req tankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	tank, err := h.svc.UpdateTank(c.Request.Context(), id, req.input())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, tank)
}

// RecordReading accepts partial temperature, mode and valve updates from tank controllers.
func (h *InventoryHandler) RecordReading(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req readingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	tank, err := h.svc.RecordReading(c.Request.Context(), id, inventory.ReadingInput{
		Temperature: req.Temperature,
		Mode:        req.Mode,
		ValveStatus: req.ValveStatus,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, tank)
}

// DeleteTank removes a tank and answers 204.
func (h *InventoryHandler) DeleteTank(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteTank(c.Request.Context(), id); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ---- brew styles ----

// CreateBrewStyle stores a new brew style.
func (h *InventoryHandler) CreateBrewStyle(c *gin.Context) {
	var req models.RecipeStyle
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	style, err := h.svc.CreateBrewStyle(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, style)
}

// ListBrewStyles returns every brew style.
func (h *InventoryHandler) ListBrewStyles(c *gin.Context) {
	list, err := h.svc.ListBrewStyles(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetBrewStyle returns one brew style by id.
func (h *InventoryHandler) GetBrewStyle(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	style, err := h.svc.GetBrewStyle(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, style)
}

// UpdateBrewStyle replaces a brew style.
func (h *InventoryHandler) UpdateBrewStyle(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req models.RecipeStyle
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	style, err := h.svc.UpdateBrewStyle(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, style)
}

// DeleteBrewStyle removes a brew style and answers 204.
func (h *InventoryHandler) DeleteBrewStyle(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteBrewStyle(c.Request.Context(), id); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ---- system status ----

// GetSystemStatus returns the plant equipment status.
func (h *InventoryHandler) GetSystemStatus(c *gin.Context) {
	status, err := h.svc.SystemStatus(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// UpdateSystemStatus overwrites the plant equipment status.
func (h *InventoryHandler) UpdateSystemStatus(c *gin.Context) {
	var req models.SystemStatus
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	status, err := h.svc.UpdateSystemStatus(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, status)
}
