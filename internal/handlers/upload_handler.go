package handlers

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gofiber/fiber/v2"
	"github.com/loadshare-sa/loadshare-backend/internal/dto"
	"github.com/loadshare-sa/loadshare-backend/internal/services"
	"github.com/loadshare-sa/loadshare-backend/internal/session"
)

type UploadHandler struct {
	cld         *cloudinary.Cloudinary
	authService *services.AuthService
}

// NewUploadHandler accepts a nil Cloudinary client; uploads then answer 503.
func NewUploadHandler(cld *cloudinary.Cloudinary, authService *services.AuthService) *UploadHandler {
	return &UploadHandler{cld: cld, authService: authService}
}

// UploadAvatar stores a profile image on Cloudinary and saves its URL on
// the authenticated user. form-data: file=<image>
func (h *UploadHandler) UploadAvatar(c *fiber.Ctx) error {
	if h.cld == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Error: true, Message: "Image uploads are not configured",
		})
	}

	userID, err := session.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "file is required",
		})
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	allowed := map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true}
	if !allowed[ext] {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "only jpg/jpeg/png/webp allowed",
		})
	}

	const maxSize = 5 * 1024 * 1024
	if file.Size > maxSize {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "file too large (max 5MB)",
		})
	}

	f, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "cannot open uploaded file",
		})
	}
	defer f.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	up, err := h.cld.Upload.Upload(ctx, f, uploader.UploadParams{
		Folder:         "loadshare/avatars",
		ResourceType:   "image",
		UseFilename:    boolPtr(true),
		UniqueFilename: boolPtr(true),
		Overwrite:      boolPtr(false),
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Image upload failed",
		})
	}

	if err := h.authService.SetProfileImage(userID, up.SecureURL); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to save profile image",
		})
	}

	return c.JSON(dto.UploadResponse{
		URL:      up.SecureURL,
		PublicID: up.PublicID,
	})
}

func boolPtr(b bool) *bool {
	return &b
}
