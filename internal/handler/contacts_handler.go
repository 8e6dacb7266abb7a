package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/advokit/outreach-api/internal/dto"
	"github.com/advokit/outreach-api/internal/service"
)

// ContactsHandler exposes contact discovery endpoints.
type ContactsHandler struct {
	outreach *service.OutreachService
}

// NewContactsHandler constructs a ContactsHandler.
func NewContactsHandler(outreach *service.OutreachService) *ContactsHandler {
	return &ContactsHandler{outreach: outreach}
}

// FindEmployees handles POST /find-employees requests.
func (h *ContactsHandler) FindEmployees(c echo.Context) error {
	var req dto.FindEmployeesRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	result, err := h.outreach.FindEmployees(c.Request().Context(), req)
	if err != nil {
		return ErrorCode(c, err)
	}

	return Success(c, http.StatusOK, "contacts found", map[string]any{
		"contacts": result.Contacts,
		"dropped":  result.Dropped,
	})
}

// ResolveDomain handles POST /resolve-domain requests.
func (h *ContactsHandler) ResolveDomain(c echo.Context) error {
	var req dto.ResolveDomainRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	domain, err := h.outreach.ResolveDomain(c.Request().Context(), req.CompanyNames)
	if err != nil {
		return ErrorCode(c, err)
	}

	return Success(c, http.StatusOK, "domain resolved", dto.ResolveDomainResponse{Domain: domain})
}
