package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/dairy/internal/domain/models"
	"github.com/mamadbah2/dairy/internal/service/records"
)

// RecordHandler exposes one record kind as a REST collection.
type RecordHandler[T models.Record, C records.Creator[T], P records.Patcher[T]] struct {
	svc    *records.Service[T, C, P]
	logger *zap.Logger
}

// NewRecordHandler constructs the HTTP handler adapter for svc.
func NewRecordHandler[T models.Record, C records.Creator[T], P records.Patcher[T]](svc *records.Service[T, C, P], logger *zap.Logger) *RecordHandler[T, C, P] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecordHandler[T, C, P]{svc: svc, logger: logger}
}

// Mount registers list, create, update and delete on rg.
func (h *RecordHandler[T, C, P]) Mount(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}

func (h *RecordHandler[T, C, P]) List(c *gin.Context) {
	out, err := h.svc.List(c.Request.Context(), caller(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *RecordHandler[T, C, P]) Create(c *gin.Context) {
	var in C
	if !bindJSON(c, h.logger, &in) {
		return
	}

	record, err := h.svc.Create(c.Request.Context(), caller(c), in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (h *RecordHandler[T, C, P]) Update(c *gin.Context) {
	var patch P
	if !bindJSON(c, h.logger, &patch) {
		return
	}

	record, err := h.svc.Update(c.Request.Context(), caller(c), c.Param("id"), patch)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *RecordHandler[T, C, P]) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), caller(c), c.Param("id")); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": h.svc.Kind() + " deleted"})
}
