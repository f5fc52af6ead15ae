package timeline

import (
	"net/http"

	"go-hris-leave/internal/shared/apperror"
	"go-hris-leave/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("timeline.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("timeline.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) ListByEntity(c *gin.Context) {
	companyID := c.GetString("company_id")

	resp, err := h.service.ListByEntity(c.Request.Context(), companyID, c.Param("entity_type"), c.Param("entity_id"))
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		h.logger.Warn("list timeline failed", zap.Int("status", httpErr.Status), zap.Error(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
