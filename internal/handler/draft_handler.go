package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/advokit/outreach-api/internal/dto"
	"github.com/advokit/outreach-api/internal/service"
)

// DraftHandler exposes the email drafting and resume parsing endpoints.
type DraftHandler struct {
	outreach *service.OutreachService
}

// NewDraftHandler constructs a DraftHandler.
func NewDraftHandler(outreach *service.OutreachService) *DraftHandler {
	return &DraftHandler{outreach: outreach}
}

// DraftEmail handles POST /draft-email requests. All context blocks are
// optional; missing ones are substituted with placeholders downstream.
func (h *DraftHandler) DraftEmail(c echo.Context) error {
	var req dto.DraftEmailRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	draft, err := h.outreach.DraftEmail(c.Request().Context(), req)
	if err != nil {
		return ErrorCode(c, err)
	}

	return Success(c, http.StatusOK, "email drafted", draft)
}

// ParseResume handles POST /parse-resume requests.
func (h *DraftHandler) ParseResume(c echo.Context) error {
	var req dto.ParseResumeRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	profile, err := h.outreach.ParseResume(c.Request().Context(), req.RawText)
	if err != nil {
		return ErrorCode(c, err)
	}

	return Success(c, http.StatusOK, "resume parsed", profile)
}
