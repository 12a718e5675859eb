package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/leadvine/leadvine/app/controllers"
	"github.com/leadvine/leadvine/internal/pkg/middleware"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New())
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	v1 := api.Group("/v1")

	// Public catalog + niche data
	v1.Get("/pricing/tiers", controllers.HandleAPIPricingTiers)
	v1.Get("/leads/niches", controllers.HandleAPINiches)
	v1.Get("/leads/sources", controllers.HandleAPINicheSources)

	// Checkout and subscription management (session auth)
	v1.Post("/payment/checkout", middleware.RequireAPISessionAuth, controllers.HandleAPICreateCheckout)
	v1.Get("/payment/subscription", middleware.RequireAPISessionAuth, controllers.HandleAPISubscriptionStatus)
	v1.Post("/payment/subscription/cancel", middleware.RequireAPISessionAuth, controllers.HandleAPICancelSubscription)

	// Lead generation (session auth)
	v1.Post("/leads/generate", middleware.RequireAPISessionAuth, controllers.HandleAPIGenerateLeads)
	v1.Get("/leads/hot", middleware.RequireAPISessionAuth, controllers.HandleAPIHotLeads)
	v1.Get("/partner/profile", middleware.RequireAPISessionAuth, controllers.HandleAPIPartnerProfile)
	v1.Post("/partner/niche", middleware.RequireAPISessionAuth, controllers.HandleAPIUpdateNiche)

	// Audit workflow (session auth + admin role)
	v1.Get("/audits/tiers", middleware.RequireAPISessionAuth, controllers.HandleAPIAuditTiers)
	v1.Get("/audits/subscription", middleware.RequireAPISessionAuth, middleware.RequireAPIAdmin, controllers.HandleAPIAuditSubscription)
	v1.Post("/audits", middleware.RequireAPISessionAuth, middleware.RequireAPIAdmin, controllers.HandleAPICreateAudit)
	v1.Get("/audits", middleware.RequireAPISessionAuth, middleware.RequireAPIAdmin, controllers.HandleAPIListAudits)
	v1.Get("/audits/:id", middleware.RequireAPISessionAuth, middleware.RequireAPIAdmin, controllers.HandleAPIAuditDetails)
	v1.Post("/audits/:id/score", middleware.RequireAPISessionAuth, middleware.RequireAPIAdmin, controllers.HandleAPIUpdateAuditScore)

	// Payment processor callbacks (signature-verified in controller, no
	// session, excluded from the limiter so redeliveries never bounce)
	app.Post("/webhooks/stripe", controllers.HandleStripeWebhook)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
