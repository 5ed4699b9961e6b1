package router

import (
	"github.com/labstack/echo/v4"

	"github.com/plastiside/plastiside/internal/handler"
	"github.com/plastiside/plastiside/internal/middleware"
	"github.com/plastiside/plastiside/internal/model"
	"github.com/plastiside/plastiside/internal/repository"
)

// RegisterAdmin registers the admin console: branding settings, platform
// analytics, user management, the full submission listing and chatbot
// curation.  Every route requires an active admin account.
func RegisterAdmin(e *echo.Echo, ad *handler.AdminHandler, s *handler.SubmissionHandler, cb *handler.ChatbotHandler, users *repository.UserRepo, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireActive(users),
		middleware.RequireRole(model.RoleAdmin),
	)

	g.GET("/settings", ad.GetSettings)
	g.PUT("/settings", ad.UpdateSettings)
	g.POST("/logo", ad.UploadLogo)

	// Analytics is computed fresh per request and must never sit behind
	// the response cache.
	g.GET("/analytics", ad.Analytics)

	g.GET("/users", ad.ListUsers)
	g.PUT("/users/:id/status", ad.UpdateUserStatus)

	g.GET("/submissions", s.ListAll)

	g.POST("/chatbot/responses", cb.AddResponse)
	g.GET("/chatbot/responses", cb.ListResponses)
}
