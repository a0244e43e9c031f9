package banner

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
// @Summary      List promotional banners
// @Tags         information
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  api.Response{data=[]Banner}
// @Failure      401  {object}  api.Response
// @Router       /banner [get]
func (h *Handler) List(c *gin.Context) {
	banners, err := h.repo.List(c.Request.Context())
	if err != nil {
		logger.Errorf("list banners: %v", err)
		api.Error(c, http.StatusInternalServerError, api.CodeFailure, "Failed to get banners")
		return
	}

	api.OK(c, "Success", banners)
}
