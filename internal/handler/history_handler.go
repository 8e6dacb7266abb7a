package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/advokit/outreach-api/internal/dto"
	"github.com/advokit/outreach-api/internal/service"
)

// HistoryHandler exposes the per-user extraction and sent email history.
type HistoryHandler struct {
	outreach *service.OutreachService
}

// NewHistoryHandler constructs a HistoryHandler.
func NewHistoryHandler(outreach *service.OutreachService) *HistoryHandler {
	return &HistoryHandler{outreach: outreach}
}

// ListExtractions handles GET /history/extractions requests.
func (h *HistoryHandler) ListExtractions(c echo.Context) error {
	var filter dto.ListFilter
	if err := c.Bind(&filter); err != nil {
		return Error(c, http.StatusBadRequest, "invalid query parameters")
	}

	records, err := h.outreach.ListExtractions(c.Request().Context(), currentUserID(c), filter)
	if err != nil {
		return ErrorCode(c, err)
	}

	return Success(c, http.StatusOK, "ok", records)
}

// ListSentEmails handles GET /history/emails requests.
func (h *HistoryHandler) ListSentEmails(c echo.Context) error {
	var filter dto.ListFilter
	if err := c.Bind(&filter); err != nil {
		return Error(c, http.StatusBadRequest, "invalid query parameters")
	}

	records, err := h.outreach.ListSentEmails(c.Request().Context(), currentUserID(c), filter)
	if err != nil {
		return ErrorCode(c, err)
	}

	return Success(c, http.StatusOK, "ok", records)
}
