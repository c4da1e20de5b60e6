package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/loadshare-sa/loadshare-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewApprove(t *testing.T) {
	db := newTestDB(t)
	svc := NewVerificationService(db, nil)
	owner := createUser(t, db, models.RoleBusinessOwner)
	business := seedBusiness(t, db, owner, func(b *models.Business) { b.Verified = false })

	reviewed, err := svc.Review(business.ID, ActionApprove)
	require.NoError(t, err)
	assert.True(t, reviewed.Verified)
	assert.True(t, reviewed.Active)

	var stored models.Business
	require.NoError(t, db.First(&stored, "id = ?", business.ID).Error)
	assert.True(t, stored.Verified)
	assert.True(t, stored.Active)
}

func TestReviewReject(t *testing.T) {
	db := newTestDB(t)
	svc := NewVerificationService(db, nil)
	owner := createUser(t, db, models.RoleBusinessOwner)
	business := seedBusiness(t, db, owner, func(b *models.Business) { b.Verified = false })

	reviewed, err := svc.Review(business.ID, ActionReject)
	require.NoError(t, err)
	assert.False(t, reviewed.Verified)
	assert.False(t, reviewed.Active)
}

func TestReviewIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewVerificationService(db, nil)
	owner := createUser(t, db, models.RoleBusinessOwner)

	approved := seedBusiness(t, db, owner, func(b *models.Business) { b.Verified = false })
	for i := 0; i < 2; i++ {
		reviewed, err := svc.Review(approved.ID, ActionApprove)
		require.NoError(t, err)
		assert.True(t, reviewed.Verified)
		assert.True(t, reviewed.Active)
	}

	rejected := seedBusiness(t, db, owner, func(b *models.Business) { b.Verified = false })
	for i := 0; i < 2; i++ {
		reviewed, err := svc.Review(rejected.ID, ActionReject)
		require.NoError(t, err)
		assert.False(t, reviewed.Verified)
		assert.False(t, reviewed.Active)
	}
}

func TestReviewInvalidAction(t *testing.T) {
	db := newTestDB(t)
	svc := NewVerificationService(db, nil)

	_, err := svc.Review(uuid.New(), "promote")
	require.ErrorIs(t, err, ErrInvalidAction)
}

func TestReviewUnknownBusiness(t *testing.T) {
	db := newTestDB(t)
	svc := NewVerificationService(db, nil)

	_, err := svc.Review(uuid.New(), ActionApprove)
	require.ErrorIs(t, err, ErrBusinessNotFound)
}

func TestListPending(t *testing.T) {
	db := newTestDB(t)
	svc := NewVerificationService(db, nil)
	owner := createUser(t, db, models.RoleBusinessOwner)

	seedBusiness(t, db, owner, nil) // already verified
	pending := seedBusiness(t, db, owner, func(b *models.Business) { b.Name = "Pending Spot"; b.Verified = false })
	seedBusiness(t, db, owner, func(b *models.Business) { b.Verified = false; b.Active = false })

	items, total, err := svc.ListPending(1, 50)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, pending.ID, items[0].ID)
}
