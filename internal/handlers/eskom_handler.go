package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/loadshare-sa/loadshare-backend/internal/dto"
	"github.com/loadshare-sa/loadshare-backend/internal/eskom"
	"github.com/loadshare-sa/loadshare-backend/internal/services"
)

type EskomHandler struct {
	client          *eskom.Client
	businessService *services.BusinessService
}

func NewEskomHandler(client *eskom.Client, businessService *services.BusinessService) *EskomHandler {
	return &EskomHandler{client: client, businessService: businessService}
}

// SearchAreas always answers 200; provider failures are masked by the
// fallback area list.
func (h *EskomHandler) SearchAreas(c *fiber.Ctx) error {
	query := c.Query("q", "johannesburg")
	return c.JSON(h.client.SearchAreas(c.Context(), query))
}

// Status always answers 200; provider failures are masked by the canned
// fallback status, tagged with source=fallback.
func (h *EskomHandler) Status(c *fiber.Ctx) error {
	areaID := c.Query("areaId", "eskde-4-sandton-sandton")
	return c.JSON(h.client.GetStatus(c.Context(), areaID))
}

// AreaBusinesses combines the outage status of one area with its visible
// listings.
func (h *EskomHandler) AreaBusinesses(c *fiber.Ctx) error {
	areaID := c.Query("areaId")
	if areaID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "areaId is required",
		})
	}

	status := h.client.GetStatus(c.Context(), areaID)

	businesses, err := h.businessService.ListByArea(areaID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch businesses",
		})
	}

	items := make([]dto.BusinessResponse, len(businesses))
	for i := range businesses {
		items[i] = dto.NewBusinessResponse(&businesses[i])
	}

	return c.JSON(fiber.Map{
		"eskomStatus": status,
		"businesses":  items,
	})
}
