package v1

import (
	"net/http"

	"portfolio-website/internal/delivery/http/response"
	"portfolio-website/internal/domain"
	"portfolio-website/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ContentHandler struct {
	content domain.ContentProvider
}

// NewContentHandler registers the content snapshot routes. Refresh sits on
// the operator group, which carries its own auth.
func NewContentHandler(api *gin.RouterGroup, operator *gin.RouterGroup, content domain.ContentProvider) {
	handler := &ContentHandler{
		content: content,
	}

	api.GET("/content/site", handler.GetSite)
	operator.POST("/content/refresh", handler.Refresh)
}

// GetSite godoc
// @Summary      Site Content
// @Description  The content snapshot currently served, with loading and error flags.
// @Tags         content
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.ContentState}
// @Router       /content/site [get]
func (h *ContentHandler) GetSite(c *gin.Context) {
	response.Success(c, http.StatusOK, "OK", h.content.State())
}

// Refresh godoc
// @Summary      Refresh Site Content
// @Description  Re-fetch the whole snapshot from the CMS. On failure the previous snapshot is kept.
// @Tags         content
// @Produce      json
// @Param        Authorization  header    string  true  "Bearer CONTENT_REFRESH_TOKEN"
// @Success      200            {object}  response.Response{data=domain.ContentState}
// @Failure      401            {object}  response.Response
// @Failure      502            {object}  response.Response
// @Router       /content/refresh [post]
func (h *ContentHandler) Refresh(c *gin.Context) {
	if err := h.content.Refresh(c.Request.Context()); err != nil {
		c.Error(apperror.New(http.StatusBadGateway, "Content refresh failed; previous content is still served.", err))
		return
	}
	response.Success(c, http.StatusOK, "Content refreshed", h.content.State())
}
