package v1

import (
	"net/http"

	"portfolio-website/internal/delivery/http/middleware"
	"portfolio-website/internal/delivery/http/response"
	"portfolio-website/internal/domain"
	"portfolio-website/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type InquiryHandler struct {
	inquiryUC domain.InquiryUsecase
}

// NewInquiryHandler registers the JSON inquiry routes
func NewInquiryHandler(api *gin.RouterGroup, throttled *gin.RouterGroup, inquiryUC domain.InquiryUsecase) {
	handler := &InquiryHandler{
		inquiryUC: inquiryUC,
	}

	throttled.POST("/inquiries", handler.SubmitInquiry)
	api.GET("/inquiries/status", handler.Status)
}

// SubmitInquiry godoc
// @Summary      Submit Inquiry
// @Description  Validate, rate limit, sanitize and forward a contact form submission.
// @Tags         inquiries
// @Accept       json
// @Produce      json
// @Param        X-CSRF-Token  header    string                  true  "CSRF token from the csrf_token cookie"
// @Param        inquiry       body      domain.InquiryFormData  true  "Inquiry"
// @Success      200           {object}  response.Response
// @Failure      400           {object}  response.Response
// @Failure      422           {object}  response.Response
// @Failure      429           {object}  response.Response
// @Failure      502           {object}  response.Response
// @Router       /inquiries [post]
func (h *InquiryHandler) SubmitInquiry(c *gin.Context) {
	var req domain.InquiryFormData
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	resp, err := h.inquiryUC.Submit(c.Request.Context(), middleware.SessionID(c), &req)
	if err != nil {
		c.Error(err)
		return
	}
	if !resp.Success {
		message := resp.Error
		if message == "" {
			message = resp.Message
		}
		response.Error(c, http.StatusBadGateway, message, resp)
		return
	}

	message := resp.Message
	if message == "" {
		message = "Your message has been sent successfully!"
	}
	response.Success(c, http.StatusOK, message, resp)
}

// Status godoc
// @Summary      Inquiry Rate Limit Status
// @Description  Whether the current session may submit another inquiry.
// @Tags         inquiries
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.RateLimitStatus}
// @Router       /inquiries/status [get]
func (h *InquiryHandler) Status(c *gin.Context) {
	status := h.inquiryUC.Status(c.Request.Context(), middleware.SessionID(c))
	response.Success(c, http.StatusOK, "OK", status)
}
