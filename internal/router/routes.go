package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/advokit/outreach-api/internal/auth"
	"github.com/advokit/outreach-api/internal/config"
	"github.com/advokit/outreach-api/internal/handler"
	middlewarepkg "github.com/advokit/outreach-api/internal/middleware"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Auth     *handler.AuthHandler
	Users    *handler.UserAdminHandler
	Extract  *handler.ExtractHandler
	Contacts *handler.ContactsHandler
	Draft    *handler.DraftHandler
	Send     *handler.SendHandler
	History  *handler.HistoryHandler
}

// Register wires all HTTP routes for the API.
func Register(e *echo.Echo, cfg *config.Config, jwtManager *auth.JWTManager, handlers Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return handler.Success(c, http.StatusOK, "service healthy", map[string]any{"status": "ok"})
	})

	e.POST("/auth/register", handlers.Auth.Register)
	e.POST("/auth/login", handlers.Auth.Login)

	secured := e.Group("")
	secured.Use(middlewarepkg.JWT(jwtManager))

	admin := secured.Group("/admin", middlewarepkg.RequireRole("admin"))
	admin.GET("/users", handlers.Users.List)
	admin.POST("/users", handlers.Users.Create)
	admin.PATCH("/users/:id", handlers.Users.Update)
	admin.DELETE("/users/:id", handlers.Users.Delete)

	limiter := middlewarepkg.OutreachRateLimiter(cfg.RateLimitOutreach,
		"/extract-job-info", "/find-employees", "/resolve-domain", "/draft-email", "/parse-resume")

	secured.POST("/extract-job-info", handlers.Extract.ExtractJobInfo, limiter)
	secured.POST("/find-employees", handlers.Contacts.FindEmployees, limiter)
	secured.POST("/resolve-domain", handlers.Contacts.ResolveDomain, limiter)
	secured.POST("/draft-email", handlers.Draft.DraftEmail, limiter)
	secured.POST("/parse-resume", handlers.Draft.ParseResume, limiter)
	secured.POST("/send-email", handlers.Send.SendEmail)
	secured.GET("/history/extractions", handlers.History.ListExtractions)
	secured.GET("/history/emails", handlers.History.ListSentEmails)
}
