package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/leadvine/leadvine/internal/pkg/catalog"
)

func HandleStart(c *fiber.Ctx) error {
	data := baseViewData(c, "LeadVine - AI-Powered Lead Generation")
	data["Flash"] = flash.Get(c)
	return c.Render("home", data, "layouts/main")
}

func HandlePricing(c *fiber.Ctx) error {
	data := baseViewData(c, "Pricing")
	data["LeadTiers"] = catalog.TiersForService(catalog.ServiceLeads)
	data["AuditTiers"] = catalog.TiersForService(catalog.ServiceAudit)
	data["MetaAuditTiers"] = catalog.TiersForService(catalog.ServiceMetaAudit)
	return c.Render("pricing", data, "layouts/main")
}

func HandleTestimonials(c *fiber.Ctx) error {
	return c.Render("testimonials", baseViewData(c, "Testimonials"), "layouts/main")
}

func HandleFAQ(c *fiber.Ctx) error {
	return c.Render("faq", baseViewData(c, "FAQ"), "layouts/main")
}

func HandleTerms(c *fiber.Ctx) error {
	return c.Render("terms", baseViewData(c, "Terms of Service"), "layouts/main")
}

func HandlePrivacy(c *fiber.Ctx) error {
	return c.Render("privacy", baseViewData(c, "Privacy Policy"), "layouts/main")
}

// HandleDashboard is the logged-in landing page with hot leads and the niche
// picker. Data is loaded client-side via the /api/v1 endpoints.
func HandleDashboard(c *fiber.Ctx) error {
	data := baseViewData(c, "Dashboard")
	data["Flash"] = flash.Get(c)
	return c.Render("dashboard", data, "layouts/main")
}

// HandleAuditDashboard renders the admin audit workspace.
func HandleAuditDashboard(c *fiber.Ctx) error {
	data := baseViewData(c, "Audit Dashboard")
	data["AuditTiers"] = catalog.TiersForService(catalog.ServiceAudit)
	return c.Render("audit_dashboard", data, "layouts/main")
}

// HandlePaymentSuccess is the post-checkout landing page. The session id in
// the query is informational; state is reconciled by webhooks.
func HandlePaymentSuccess(c *fiber.Ctx) error {
	data := baseViewData(c, "Payment Successful")
	data["SessionID"] = c.Query("session_id")
	return c.Render("payment_success", data, "layouts/main")
}
