package services

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/loadshare-sa/loadshare-backend/internal/dto"
	"github.com/loadshare-sa/loadshare-backend/internal/events"
	"github.com/loadshare-sa/loadshare-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrBusinessNotFound = errors.New("business not found")
	ErrNameRequired     = errors.New("name is required")
	ErrTypeRequired     = errors.New("type is required")
	ErrAddressRequired  = errors.New("address is required")
	ErrAreaRequired     = errors.New("areaId is required")
	ErrInvalidPowerType = errors.New("powerType must be generator, ups, solar or none")
	ErrOwnerHasBusiness = errors.New("owner already has a registered business")
	ErrInvalidSortField = errors.New("unsupported sort field")
)

// tokenPattern splits free-text filters on non-alphanumeric boundaries.
var tokenPattern = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// sortColumns whitelists sortable fields (query name -> column).
var sortColumns = map[string]string{
	"createdAt":  "created_at",
	"created_at": "created_at",
	"updatedAt":  "updated_at",
	"updated_at": "updated_at",
	"name":       "name",
}

type BusinessService struct {
	db        *gorm.DB
	publisher *events.Publisher
}

func NewBusinessService(db *gorm.DB, publisher *events.Publisher) *BusinessService {
	return &BusinessService{db: db, publisher: publisher}
}

// Register creates a pending listing for the owner. At most one business
// per owner is allowed; the first registration also promotes the owner's
// role to BUSINESS_OWNER. Both writes share one transaction.
func (s *BusinessService) Register(ownerID uuid.UUID, req *dto.RegisterBusinessRequest) (*models.Business, error) {
	if err := validateRegistration(req); err != nil {
		return nil, err
	}

	hasPower := req.PowerType != "" && req.PowerType != models.PowerTypeNone
	if req.HasPower != nil {
		hasPower = *req.HasPower
	}

	business := models.Business{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(req.Name),
		Type:        strings.TrimSpace(req.Type),
		Address:     strings.TrimSpace(req.Address),
		AreaID:      strings.TrimSpace(req.AreaID),
		AreaName:    strings.TrimSpace(req.AreaName),
		HasPower:    hasPower,
		PowerType:   req.PowerType,
		Description: req.Description,
		Verified:    false,
		Active:      true,
		OwnerID:     ownerID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Business{}).
			Where("owner_id = ? AND active = true", ownerID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrOwnerHasBusiness
		}

		if err := tx.Create(&business).Error; err != nil {
			return fmt.Errorf("failed to create business: %w", err)
		}

		return tx.Model(&models.User{}).
			Where("id = ? AND role = ?", ownerID, models.RoleCustomer).
			Update("role", models.RoleBusinessOwner).Error
	})
	if err != nil {
		return nil, err
	}

	if err := s.publisher.BusinessRegistered(&business); err != nil {
		slog.Error("failed to publish registration event", "business_id", business.ID, "error", err)
	}

	return &business, nil
}

// Search filters the public directory. Area and name filters are split
// into tokens; tokens AND together, and each area token matches either
// the area id or the area display name.
func (s *BusinessService) Search(q *dto.SearchBusinessQuery) ([]models.Business, int64, error) {
	query := s.db.Model(&models.Business{}).
		Where("verified = true AND active = true")

	query = applyFilters(query, q)

	orderBy, err := orderClause(q.SortBy, q.SortOrder)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, limit := normalizePage(q.Page, q.Limit)

	var businesses []models.Business
	if err := query.Preload("Owner").
		Order(orderBy).
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&businesses).Error; err != nil {
		return nil, 0, err
	}

	return businesses, total, nil
}

// Mine lists the owner's businesses regardless of verification state.
func (s *BusinessService) Mine(ownerID uuid.UUID, page, limit int) ([]models.Business, int64, error) {
	query := s.db.Model(&models.Business{}).Where("owner_id = ?", ownerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, limit = normalizePage(page, limit)

	var businesses []models.Business
	if err := query.Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&businesses).Error; err != nil {
		return nil, 0, err
	}

	return businesses, total, nil
}

func (s *BusinessService) Get(id uuid.UUID) (*models.Business, error) {
	var business models.Business
	if err := s.db.Preload("Owner").First(&business, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, err
	}
	return &business, nil
}

// ListByArea returns the visible businesses of one outage area, newest
// first, capped at 50.
func (s *BusinessService) ListByArea(areaID string) ([]models.Business, error) {
	var businesses []models.Business
	err := s.db.Preload("Owner").
		Where("area_id = ? AND verified = true AND active = true", areaID).
		Order("created_at DESC").
		Limit(50).
		Find(&businesses).Error
	return businesses, err
}

// UpdatePowerStatus flips the owner's live power availability. The owner
// match is part of the update predicate, so a foreign business id reads
// as not found.
func (s *BusinessService) UpdatePowerStatus(id, ownerID uuid.UUID, req *dto.UpdatePowerRequest) (*models.Business, error) {
	updates := map[string]interface{}{}
	if req.HasPower != nil {
		updates["has_power"] = *req.HasPower
	}
	if req.PowerType != "" {
		if !validPowerType(req.PowerType) {
			return nil, ErrInvalidPowerType
		}
		updates["power_type"] = req.PowerType
		if req.HasPower == nil {
			updates["has_power"] = req.PowerType != models.PowerTypeNone
		}
	}
	if len(updates) == 0 {
		return s.Get(id)
	}

	result := s.db.Model(&models.Business{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrBusinessNotFound
	}

	return s.Get(id)
}

func validateRegistration(req *dto.RegisterBusinessRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return ErrNameRequired
	}
	if strings.TrimSpace(req.Type) == "" {
		return ErrTypeRequired
	}
	if strings.TrimSpace(req.Address) == "" {
		return ErrAddressRequired
	}
	if strings.TrimSpace(req.AreaID) == "" {
		return ErrAreaRequired
	}
	if req.PowerType != "" && !validPowerType(req.PowerType) {
		return ErrInvalidPowerType
	}
	return nil
}

func validPowerType(t string) bool {
	switch t {
	case models.PowerTypeGenerator, models.PowerTypeUPS, models.PowerTypeSolar, models.PowerTypeNone:
		return true
	}
	return false
}

// Tokenize splits a free-text filter into lowercase alphanumeric tokens.
func Tokenize(text string) []string {
	parts := tokenPattern.Split(text, -1)
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			tokens = append(tokens, strings.ToLower(p))
		}
	}
	return tokens
}

func applyFilters(query *gorm.DB, q *dto.SearchBusinessQuery) *gorm.DB {
	for _, token := range Tokenize(q.Area) {
		like := "%" + token + "%"
		query = query.Where("(LOWER(area_id) LIKE ? OR LOWER(area_name) LIKE ?)", like, like)
	}

	for _, token := range Tokenize(q.Search) {
		query = query.Where("LOWER(name) LIKE ?", "%"+token+"%")
	}

	if q.Type != "" {
		query = query.Where("LOWER(type) LIKE ?", "%"+strings.ToLower(q.Type)+"%")
	}

	if q.HasPower != nil {
		query = query.Where("has_power = ?", *q.HasPower)
	}

	return query
}

func orderClause(sortBy, sortOrder string) (string, error) {
	if sortBy == "" {
		sortBy = "created_at"
	}
	column, ok := sortColumns[sortBy]
	if !ok {
		return "", ErrInvalidSortField
	}

	direction := "DESC"
	if strings.EqualFold(sortOrder, "asc") {
		direction = "ASC"
	}
	return column + " " + direction, nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

// TotalPages computes the page count for a result set.
func TotalPages(total int64, limit int) int {
	return int(math.Ceil(float64(total) / float64(limit)))
}
