package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/thuwalaco/thuwala-site/internal/handler"    // import the handlers that implement business logic
	"github.com/thuwalaco/thuwala-site/internal/middleware" // import middleware for JWT auth, caching and rate limiting
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterPublic registers the unauthenticated site pages.  The cache
// middleware fronts the GET pages; the rate limiter guards the contact
// form against abuse.  Either middleware may be nil when disabled.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, ct *handler.ContactHandler, cache, limiter echo.MiddlewareFunc) {
	g := e.Group("/v1")
	if cache != nil {
		g.GET("/home", p.Home, cache)
		g.GET("/about", p.About, cache)
		g.GET("/services", p.ServiceList, cache)
		g.GET("/portfolio", p.PortfolioList, cache)
	} else {
		g.GET("/home", p.Home)
		g.GET("/about", p.About)
		g.GET("/services", p.ServiceList)
		g.GET("/portfolio", p.PortfolioList)
	}
	g.GET("/contact", ct.Info)
	if limiter != nil {
		g.POST("/contact", ct.Submit, limiter)
	} else {
		g.POST("/contact", ct.Submit)
	}
}

// RegisterAdmin registers the back office under /v1/admin.  Login and the
// password reset flow are open; everything else requires a valid session
// JWT carried in the admin cookie or the Authorization header.
func RegisterAdmin(e *echo.Echo,
	a *handler.AuthHandler,
	m *handler.AdminMessageHandler,
	s *handler.AdminServiceHandler,
	p *handler.AdminPortfolioHandler,
	ads *handler.AdminAdHandler,
	u *handler.AdminUserHandler,
	jwtSecret string,
) {
	// Open endpoints: session establishment and password recovery.
	open := e.Group("/v1/admin")
	open.POST("/login", a.Login)
	open.POST("/logout", a.Logout)
	open.POST("/forgot-password", a.ForgotPassword)
	open.POST("/reset-password/:token", a.ResetPassword)

	// Everything below runs behind the JWT middleware.
	auth := e.Group("/v1/admin")
	auth.Use(middleware.JWTAuth(jwtSecret))

	auth.GET("/me", a.Me)
	auth.POST("/change-password", a.ChangePassword)

	auth.GET("/dashboard", m.Dashboard)
	auth.GET("/messages", m.List)
	auth.GET("/messages/:id", m.View)
	auth.POST("/messages/:id/read", m.MarkRead)

	auth.GET("/services", s.List)
	auth.POST("/services", s.Add)
	auth.PUT("/services/:id", s.Edit)
	auth.DELETE("/services/:id", s.Delete)

	auth.GET("/portfolio", p.List)
	auth.POST("/portfolio", p.Add)
	auth.PUT("/portfolio/:id", p.Edit)
	auth.DELETE("/portfolio/:id", p.Delete)

	auth.GET("/advertisements", ads.List)
	auth.POST("/advertisements", ads.Add)
	auth.PUT("/advertisements/:id", ads.Edit)
	auth.DELETE("/advertisements/:id", ads.Delete)
	auth.POST("/advertisements/:id/toggle", ads.Toggle)
	auth.POST("/advertisements/:id/move-up", ads.MoveUp)
	auth.POST("/advertisements/:id/move-down", ads.MoveDown)

	auth.GET("/users", u.List)
	auth.POST("/users", u.Add)
}
