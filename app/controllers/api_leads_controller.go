package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/leadvine/leadvine/internal/pkg/database"
	"github.com/leadvine/leadvine/internal/pkg/leadgen"
	"github.com/leadvine/leadvine/internal/pkg/usercontext"
)

func leadgenService() *leadgen.Service {
	return leadgen.NewServiceFromDB(database.GetDB())
}

// HandleAPINiches lists the supported niches. Public.
func HandleAPINiches(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"niches": leadgenService().Niches(),
	})
}

// HandleAPINicheSources returns the lead sources for one niche. Public;
// unknown niches get an empty list.
func HandleAPINicheSources(c *fiber.Ctx) error {
	niche := c.Query("niche")
	if niche == "" {
		return apiError(c, fiber.StatusBadRequest, "bad_request", "niche is required")
	}
	return c.JSON(fiber.Map{
		"niche":   niche,
		"sources": leadgenService().SourcesForNiche(niche),
	})
}

type generateLeadsRequest struct {
	Niche string `json:"niche"`
}

// HandleAPIGenerateLeads runs a generation pass for the caller's niche.
func HandleAPIGenerateLeads(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized", "login required")
	}

	var req generateLeadsRequest
	if err := c.BodyParser(&req); err != nil {
		return apiError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}
	if req.Niche == "" {
		return apiError(c, fiber.StatusBadRequest, "bad_request", "niche is required")
	}

	result, err := leadgenService().GenerateLeads(c.Context(), user, req.Niche)
	if err != nil {
		return apiInternal(c)
	}
	return c.JSON(fiber.Map{
		"success":         true,
		"partner_id":      result.PartnerID,
		"niche":           result.Niche,
		"leads_generated": result.LeadsGenerated,
	})
}

// HandleAPIHotLeads returns the caller's top prospects by score.
func HandleAPIHotLeads(c *fiber.Ctx) error {
	leads, err := leadgenService().HotLeads(c.Context(), usercontext.GetUserID(c))
	if err != nil {
		return apiInternal(c)
	}
	return c.JSON(fiber.Map{"leads": leads})
}

// HandleAPIPartnerProfile returns the caller's partner row, or null.
func HandleAPIPartnerProfile(c *fiber.Ctx) error {
	partner, err := leadgenService().PartnerProfile(c.Context(), usercontext.GetUserID(c))
	if err != nil {
		return apiInternal(c)
	}
	return c.JSON(fiber.Map{"partner": partner})
}

// HandleAPIUpdateNiche sets the caller's niche.
func HandleAPIUpdateNiche(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized", "login required")
	}

	var req generateLeadsRequest
	if err := c.BodyParser(&req); err != nil {
		return apiError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}
	if req.Niche == "" {
		return apiError(c, fiber.StatusBadRequest, "bad_request", "niche is required")
	}

	if err := leadgenService().UpdateNiche(c.Context(), user, req.Niche); err != nil {
		return apiInternal(c)
	}
	return c.JSON(fiber.Map{"success": true, "niche": req.Niche})
}
