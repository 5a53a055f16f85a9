package v1

import (
	"net/http"
	"strings"

	"portfolio-web/internal/delivery/http/response"
	"portfolio-web/internal/domain"
	"portfolio-web/internal/usecase"
	"portfolio-web/pkg/apperror"
	"portfolio-web/pkg/security"
	"portfolio-web/pkg/validation"

	"github.com/gin-gonic/gin"
)

// maxContactBody caps the JSON body of a contact submission.
const maxContactBody = 32 << 10

type ContactHandler struct {
	contactUC domain.ContactUsecase
	audit     *security.SecurityLogger
}

// NewContactHandler registers the contact relay (public, no auth required)
func NewContactHandler(api *gin.RouterGroup, contactUC domain.ContactUsecase, audit *security.SecurityLogger, limit gin.HandlerFunc) {
	handler := &ContactHandler{
		contactUC: contactUC,
		audit:     audit,
	}

	handlers := []gin.HandlerFunc{}
	if limit != nil {
		handlers = append(handlers, limit)
	}
	handlers = append(handlers, handler.Send)
	api.POST("/send", handlers...)
}

// Send godoc
// @Summary      Relay a contact form message
// @Description  Validates name, email and message and forwards them to the email provider once. The success body is the provider's confirmation.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        contact  body      domain.ContactRequest  true  "Contact Form Data"
// @Success      200      {object}  domain.SendReceipt
// @Failure      400      {object}  response.Response
// @Failure      429      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Failure      503      {object}  response.Response
// @Router       /api/send [post]
func (h *ContactHandler) Send(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxContactBody)

	meta := domain.ContactMeta{
		IP:        c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
		RequestID: response.RequestID(c),
	}

	var req domain.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		reason := strings.Join(validation.FormatValidationErrors(err), "; ")
		h.audit.LogValidationFailed(c.Request.Context(), meta.IP, meta.UserAgent, meta.RequestID, c.Request.URL.Path, reason)
		_ = c.Error(apperror.New(http.StatusBadRequest, usecase.MsgMissingFields, err).WithDetail(usecase.MsgMissingFields))
		return
	}

	receipt, err := h.contactUC.SendContactMessage(c.Request.Context(), &req, meta)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, receipt)
}
