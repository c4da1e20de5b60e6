package services

import (
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/loadshare-sa/loadshare-backend/internal/events"
	"github.com/loadshare-sa/loadshare-backend/internal/models"
	"gorm.io/gorm"
)

// Review actions.
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

var ErrInvalidAction = errors.New("action must be approve or reject")

// VerificationService drives the (verified, active) state machine:
// pending (false,true) -> approve -> (true,true), or reject -> (false,false).
// A rejected listing stays rejected; re-registration is the only way back.
type VerificationService struct {
	db        *gorm.DB
	publisher *events.Publisher
}

func NewVerificationService(db *gorm.DB, publisher *events.Publisher) *VerificationService {
	return &VerificationService{db: db, publisher: publisher}
}

// ListPending returns unverified, still-active listings awaiting review.
func (s *VerificationService) ListPending(page, limit int) ([]models.Business, int64, error) {
	query := s.db.Model(&models.Business{}).
		Where("verified = false AND active = true")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, limit = normalizePage(page, limit)

	var businesses []models.Business
	if err := query.Preload("Owner").
		Order("created_at ASC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&businesses).Error; err != nil {
		return nil, 0, err
	}

	return businesses, total, nil
}

// Review applies an approve or reject transition as one two-column update.
// Re-applying the same action is a no-op on the stored state.
func (s *VerificationService) Review(businessID uuid.UUID, action string) (*models.Business, error) {
	var verified, active bool
	switch action {
	case ActionApprove:
		verified, active = true, true
	case ActionReject:
		verified, active = false, false
	default:
		return nil, ErrInvalidAction
	}

	var business models.Business
	if err := s.db.First(&business, "id = ?", businessID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, err
	}

	if err := s.db.Model(&business).
		Updates(map[string]interface{}{"verified": verified, "active": active}).Error; err != nil {
		return nil, err
	}
	business.Verified = verified
	business.Active = active

	if err := s.publisher.BusinessReviewed(&business, action); err != nil {
		slog.Error("failed to publish review event",
			"business_id", business.ID, "action", action, "error", err)
	}

	return &business, nil
}
