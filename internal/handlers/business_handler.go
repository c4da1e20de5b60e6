package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/loadshare-sa/loadshare-backend/internal/dto"
	"github.com/loadshare-sa/loadshare-backend/internal/models"
	"github.com/loadshare-sa/loadshare-backend/internal/services"
	"github.com/loadshare-sa/loadshare-backend/internal/session"
)

type BusinessHandler struct {
	businessService *services.BusinessService
}

func NewBusinessHandler(businessService *services.BusinessService) *BusinessHandler {
	return &BusinessHandler{businessService: businessService}
}

// Search is the public directory feed. Only verified, active listings
// are visible here.
func (h *BusinessHandler) Search(c *fiber.Ctx) error {
	query := dto.SearchBusinessQuery{
		Area:      c.Query("area"),
		Type:      c.Query("type"),
		Search:    c.Query("search"),
		SortBy:    c.Query("sortBy", "createdAt"),
		SortOrder: c.Query("sortOrder", "desc"),
	}
	query.Page, _ = strconv.Atoi(c.Query("page", "1"))
	query.Limit, _ = strconv.Atoi(c.Query("limit", "50"))

	if raw := c.Query("hasPower"); raw != "" {
		if hasPower, err := strconv.ParseBool(raw); err == nil {
			query.HasPower = &hasPower
		}
	}

	businesses, total, err := h.businessService.Search(&query)
	if err != nil {
		if errors.Is(err, services.ErrInvalidSortField) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to search businesses",
		})
	}

	return c.JSON(listResponse(businesses, total, &query))
}

func (h *BusinessHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid business ID",
		})
	}

	business, err := h.businessService.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrBusinessNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch business",
		})
	}

	return c.JSON(dto.NewBusinessResponse(business))
}

func (h *BusinessHandler) Register(c *fiber.Ctx) error {
	ownerID, err := session.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.RegisterBusinessRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	business, err := h.businessService.Register(ownerID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOwnerHasBusiness):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrNameRequired),
			errors.Is(err, services.ErrTypeRequired),
			errors.Is(err, services.ErrAddressRequired),
			errors.Is(err, services.ErrAreaRequired),
			errors.Is(err, services.ErrInvalidPowerType):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to register business",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewBusinessResponse(business))
}

// Mine lists the caller's own listings, unverified included.
func (h *BusinessHandler) Mine(c *fiber.Ctx) error {
	ownerID, err := session.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "50"))

	businesses, total, err := h.businessService.Mine(ownerID, page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch businesses",
		})
	}

	query := dto.SearchBusinessQuery{Page: page, Limit: limit}
	return c.JSON(listResponse(businesses, total, &query))
}

func (h *BusinessHandler) UpdatePower(c *fiber.Ctx) error {
	ownerID, err := session.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid business ID",
		})
	}

	var req dto.UpdatePowerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	business, err := h.businessService.UpdatePowerStatus(id, ownerID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBusinessNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrInvalidPowerType):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update business",
		})
	}

	return c.JSON(dto.NewBusinessResponse(business))
}

func listResponse(businesses []models.Business, total int64, query *dto.SearchBusinessQuery) dto.BusinessListResponse {
	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}

	items := make([]dto.BusinessResponse, len(businesses))
	for i := range businesses {
		items[i] = dto.NewBusinessResponse(&businesses[i])
	}

	return dto.BusinessListResponse{
		Businesses: items,
		Pagination: dto.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: services.TotalPages(total, limit),
		},
	}
}
