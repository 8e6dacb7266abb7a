package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/advokit/outreach-api/internal/dto"
	"github.com/advokit/outreach-api/internal/service"
)

// SendHandler exposes the email sending endpoint.
type SendHandler struct {
	outreach *service.OutreachService
}

// NewSendHandler constructs a SendHandler.
func NewSendHandler(outreach *service.OutreachService) *SendHandler {
	return &SendHandler{outreach: outreach}
}

// SendEmail handles POST /send-email requests.
func (h *SendHandler) SendEmail(c echo.Context) error {
	var req dto.SendEmailRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	if err := h.outreach.SendEmail(c.Request().Context(), currentUserID(c), req); err != nil {
		return ErrorCode(c, err)
	}

	return Success(c, http.StatusOK, "email sent", map[string]any{"recipient": req.To})
}
