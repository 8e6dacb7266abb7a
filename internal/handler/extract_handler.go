package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/advokit/outreach-api/internal/dto"
	"github.com/advokit/outreach-api/internal/service"
)

// ExtractHandler exposes the job info extraction endpoint.
type ExtractHandler struct {
	outreach *service.OutreachService
}

// NewExtractHandler constructs an ExtractHandler.
func NewExtractHandler(outreach *service.OutreachService) *ExtractHandler {
	return &ExtractHandler{outreach: outreach}
}

// ExtractJobInfo handles POST /extract-job-info requests.
func (h *ExtractHandler) ExtractJobInfo(c echo.Context) error {
	var req dto.ExtractJobInfoRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	info, err := h.outreach.ExtractJobInfo(c.Request().Context(), currentUserID(c), req)
	if err != nil {
		return ErrorCode(c, err)
	}

	return Success(c, http.StatusOK, "job info extracted", info)
}
