package router

import (
	"github.com/labstack/echo/v4"

	"github.com/plastiside/plastiside/internal/handler"
	"github.com/plastiside/plastiside/internal/middleware"
	"github.com/plastiside/plastiside/internal/model"
	"github.com/plastiside/plastiside/internal/repository"
)

// RegisterUser registers endpoints available to any authenticated, active
// account: own profile management and the submission ledger.  All routes
// require a valid JWT and an active account; the gate also refreshes the
// principal's role from the database so a role change takes effect without
// re-login.
func RegisterUser(e *echo.Echo, p *handler.ProfileHandler, s *handler.SubmissionHandler, users *repository.UserRepo, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireActive(users),
	)

	g.GET("/profile", p.Get)
	g.PUT("/profile", p.Update)
	g.POST("/profile/avatar", p.UploadAvatar)

	// Submissions are owned by the caller; listing returns only their own.
	g.POST("/submissions", s.Create)
	g.GET("/submissions", s.ListOwn)
}

// RegisterVerifier registers the verification decision endpoint for the
// roles allowed to decide submissions: collectors at drop-off points and
// admins from the console.
func RegisterVerifier(e *echo.Echo, s *handler.SubmissionHandler, users *repository.UserRepo, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireActive(users),
		middleware.RequireRole(model.RoleAdmin, model.RoleCollector),
	)
	g.PUT("/submissions/verify", s.Verify)
}
