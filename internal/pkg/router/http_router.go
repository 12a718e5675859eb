package router

import (
	"github.com/gofiber/fiber/v2"
	gothfiber "github.com/shareed2k/goth_fiber"

	"github.com/leadvine/leadvine/app/controllers"
	"github.com/leadvine/leadvine/internal/pkg/middleware"
	"github.com/leadvine/leadvine/internal/pkg/oauth"
	"github.com/leadvine/leadvine/internal/pkg/session"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	// init oauth providers
	oauth.Setup()

	// Apply UserContext middleware globally as first middleware
	app.Use(middleware.UserContextMiddleware)

	h.registerPublicRoutes(app)
	h.registerProtectedRoutes(app)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	// Marketing pages
	app.Get("/", controllers.HandleStart)
	app.Get("/pricing", controllers.HandlePricing)
	app.Get("/testimonials", controllers.HandleTestimonials)
	app.Get("/faq", controllers.HandleFAQ)
	app.Get("/terms", controllers.HandleTerms)
	app.Get("/privacy", controllers.HandlePrivacy)

	// Auth
	app.Get("/login", controllers.HandleAuthLogin)
	app.Post("/login", controllers.HandleAuthLogin)
	app.Get("/register", controllers.HandleAuthRegister)
	app.Post("/register", controllers.HandleAuthRegister)
	app.Post("/logout", middleware.RequireAuth, controllers.HandleAuthLogout)

	// Social OAuth
	app.Get("/auth/:provider", gothfiber.BeginAuthHandler)
	app.Get("/auth/:provider/callback", controllers.HandleOAuthCallback)
}

func (h HttpRouter) registerProtectedRoutes(app *fiber.App) {
	app.Get("/dashboard", middleware.RequireAuth, controllers.HandleDashboard)
	app.Get("/payment/success", middleware.RequireAuth, controllers.HandlePaymentSuccess)
	app.Get("/admin/audits", middleware.RequireAuth, controllers.HandleAuditDashboard)
}
