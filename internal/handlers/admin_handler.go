package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/loadshare-sa/loadshare-backend/internal/dto"
	"github.com/loadshare-sa/loadshare-backend/internal/services"
)

type AdminHandler struct {
	verificationService *services.VerificationService
}

func NewAdminHandler(verificationService *services.VerificationService) *AdminHandler {
	return &AdminHandler{verificationService: verificationService}
}

// ListPendingBusinesses returns listings awaiting verification.
func (h *AdminHandler) ListPendingBusinesses(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "50"))

	businesses, total, err := h.verificationService.ListPending(page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch pending businesses",
		})
	}

	query := dto.SearchBusinessQuery{Page: page, Limit: limit}
	return c.JSON(listResponse(businesses, total, &query))
}

// ReviewBusiness approves or rejects a pending listing.
func (h *AdminHandler) ReviewBusiness(c *fiber.Ctx) error {
	var req dto.ReviewBusinessRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if req.BusinessID == uuid.Nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "businessId is required",
		})
	}

	business, err := h.verificationService.Review(req.BusinessID, req.Action)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidAction):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrBusinessNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to review business",
		})
	}

	return c.JSON(dto.NewBusinessResponse(business))
}
