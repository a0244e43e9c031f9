package catalog

import (
	"net/http"

	"memberpay/internal/api"
	"memberpay/internal/logger"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// List godoc
// @Summary      List purchasable services
// @Tags         information
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  api.Response{data=[]Service}
// @Failure      401  {object}  api.Response
// @Router       /services [get]
func (h *Handler) List(c *gin.Context) {
	services, err := h.repo.List(c.Request.Context())
	if err != nil {
		logger.Errorf("list services: %v", err)
		api.Error(c, http.StatusInternalServerError, api.CodeFailure, "Failed to get services")
		return
	}

	api.OK(c, "Success", services)
}
