package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/dairy/internal/service/admin"
)

// AdminHandler serves the administrator dashboard and farmer management.
type AdminHandler struct {
	svc    *admin.Service
	logger *zap.Logger
}

// NewAdminHandler constructs the HTTP handler adapter.
func NewAdminHandler(svc *admin.Service, logger *zap.Logger) *AdminHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminHandler{svc: svc, logger: logger}
}

// Dashboard returns platform-wide totals.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	dash, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dash)
}

// Farmers lists every farmer account.
func (h *AdminHandler) Farmers(c *gin.Context) {
	farmers, err := h.svc.ListFarmers(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, farmers)
}

// ToggleBlock blocks or unblocks a farmer.
func (h *AdminHandler) ToggleBlock(c *gin.Context) {
	farmer, err := h.svc.ToggleBlock(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	message := "Farmer unblocked"
	if farmer.Blocked {
		message = "Farmer blocked"
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "farmer": farmer})
}

// DeleteFarmer removes a farmer and their records.
func (h *AdminHandler) DeleteFarmer(c *gin.Context) {
	if err := h.svc.DeleteFarmer(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Farmer deleted"})
}

// Snapshots lists stored dashboard snapshots, newest first. ?limit=N bounds the result.
func (h *AdminHandler) Snapshots(c *gin.Context) {
	var limit int64
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	snapshots, err := h.svc.ListSnapshots(c.Request.Context(), limit)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, snapshots)
}

// TakeSnapshot records the current dashboard immediately.
func (h *AdminHandler) TakeSnapshot(c *gin.Context) {
	snapshot, err := h.svc.Snapshot(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, snapshot)
}
