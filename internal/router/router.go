package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/plastiside/plastiside/internal/handler"    // import the handlers that implement business logic
	"github.com/plastiside/plastiside/internal/middleware" // import middleware for JWT authentication and role enforcement
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes.  Unauthenticated
// operations live under /v1/auth, while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	// Operations that do not require an existing session.  Registration
	// returns a token immediately so the client can skip a second login.
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Tokens are stateless; logout is a client-side discard but the route
	// exists so clients have a uniform call to make.
	g.POST("/logout", a.Logout)
	// Invite-code check ahead of admin registration.
	g.POST("/verify-admin-invite", a.VerifyAdminInvite)

	// Protected identity probe.  Any valid token may call it; role and
	// account status checks are not applied here so that suspended users
	// can still see who they are logged in as.
	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterPublic registers unauthenticated endpoints: platform branding for
// the pre-login UI and the FAQ chatbot.  cache may be nil; when set it is
// applied only to the branding read, which is cosmetic and safe to serve
// stale.  The chatbot answer depends on the message body and stays uncached.
func RegisterPublic(e *echo.Echo, ad *handler.AdminHandler, cb *handler.ChatbotHandler, cache echo.MiddlewareFunc) {
	if cache != nil {
		e.GET("/v1/settings/public", ad.PublicSettings, cache)
	} else {
		e.GET("/v1/settings/public", ad.PublicSettings)
	}
	e.POST("/v1/chatbot/message", cb.Message)
}
