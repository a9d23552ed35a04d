// File: internal/profile/repository.go
package profile

import (
	"context"
	"errors"

	"uplio_backend/internal/common"

	"gorm.io/gorm"
)

// Repository defines the interface for profile data operations.
type Repository interface {
	FindByUserID(ctx context.Context, userID string) (*Profile, error)
	Create(ctx context.Context, profile *Profile) error
	Update(ctx context.Context, profile *Profile) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM profile repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

// FindByUserID retrieves a profile by its owning user id.
func (r *gormRepository) FindByUserID(ctx context.Context, userID string) (*Profile, error) {
	var profileModel Profile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profileModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithMessage("Profile not found for this user.")
		}
		return nil, err
	}
	return &profileModel, nil
}

// Create inserts a new profile row.
func (r *gormRepository) Create(ctx context.Context, profile *Profile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

// Update replaces the stored row in place.
func (r *gormRepository) Update(ctx context.Context, profile *Profile) error {
	// Save writes every column, matching the full-document replace semantics.
	return r.db.WithContext(ctx).Save(profile).Error
}
