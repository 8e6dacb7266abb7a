package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/advokit/outreach-api/internal/middleware"
)

// currentUserID returns the authenticated user's id stored by the JWT
// middleware. The zero UUID means the request was not authenticated.
func currentUserID(c echo.Context) uuid.UUID {
	raw, _ := c.Get(middleware.ContextKeyUserID).(string)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}
