package controllers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/leadvine/leadvine/internal/pkg/audits"
	"github.com/leadvine/leadvine/internal/pkg/database"
	"github.com/leadvine/leadvine/internal/pkg/usercontext"
)

func auditService() *audits.Service {
	return audits.NewServiceFromDB(database.GetDB())
}

// HandleAPIAuditTiers lists the purchasable audit tiers.
func HandleAPIAuditTiers(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"tiers": auditService().Tiers()})
}

// HandleAPIAuditSubscription returns the admin's audit service subscription.
func HandleAPIAuditSubscription(c *fiber.Ctx) error {
	info, err := auditService().Subscription(c.Context(), usercontext.GetUserID(c))
	if err != nil {
		return apiInternal(c)
	}
	return c.JSON(info)
}

// HandleAPICreateAudit records a new pending audit.
func HandleAPICreateAudit(c *fiber.Ctx) error {
	var in audits.CreateAuditInput
	if err := c.BodyParser(&in); err != nil {
		return apiError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}

	audit, err := auditService().CreateAudit(c.Context(), usercontext.GetUserID(c), in)
	if err != nil {
		if errors.Is(err, audits.ErrNoAuditService) {
			return apiError(c, fiber.StatusNotFound, "not_found", err.Error())
		}
		return apiError(c, fiber.StatusBadRequest, "bad_request", err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(audit)
}

// HandleAPIListAudits returns the admin's audits, newest first.
func HandleAPIListAudits(c *fiber.Ctx) error {
	list, err := auditService().ListAudits(c.Context(), usercontext.GetUserID(c))
	if err != nil {
		return apiInternal(c)
	}
	return c.JSON(fiber.Map{"audits": list})
}

// HandleAPIAuditDetails returns one audit with decoded hallucinations.
func HandleAPIAuditDetails(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "bad_request", "invalid audit id")
	}

	details, err := auditService().Details(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, audits.ErrAuditNotFound) {
			return apiError(c, fiber.StatusNotFound, "not_found", err.Error())
		}
		return apiInternal(c)
	}
	return c.JSON(details)
}

type updateScoreRequest struct {
	GroundingScore int      `json:"grounding_score"`
	Hallucinations []string `json:"hallucinations"`
}

// HandleAPIUpdateAuditScore sets the grounding score; the status follows it.
func HandleAPIUpdateAuditScore(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "bad_request", "invalid audit id")
	}

	var req updateScoreRequest
	if err := c.BodyParser(&req); err != nil {
		return apiError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}

	result, err := auditService().UpdateScore(c.Context(), uint(id), req.GroundingScore, req.Hallucinations)
	if err != nil {
		switch {
		case errors.Is(err, audits.ErrInvalidScore):
			return apiError(c, fiber.StatusBadRequest, "bad_request", err.Error())
		case errors.Is(err, audits.ErrAuditNotFound):
			return apiError(c, fiber.StatusNotFound, "not_found", err.Error())
		default:
			return apiInternal(c)
		}
	}
	return c.JSON(result)
}
