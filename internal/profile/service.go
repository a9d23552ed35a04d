// File: internal/profile/service.go
package profile

import (
	"context"
	"errors"

	"uplio_backend/internal/common"
	"uplio_backend/internal/user"

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// Service implements profile reads and the upsert save path.
type Service struct {
	repo   Repository
	users  user.Repository
	logger *zap.Logger
}

// NewService creates a new profile service.
func NewService(repo Repository, users user.Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, users: users, logger: logger}
}

// Get returns the persisted profile for the user, or an ephemeral default
// synthesized from the user record. The default is never written to storage;
// a row only appears after an explicit save.
func (s *Service) Get(ctx context.Context, userID string) (Response, error) {
	stored, err := s.repo.FindByUserID(ctx, userID)
	if err == nil {
		return ToResponse(stored), nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		s.logger.Error("Failed to load profile", zap.Error(err), zap.String("userID", userID))
		return Response{}, common.ErrInternalServer
	}

	usr, uerr := s.users.FindByID(ctx, userID)
	if uerr != nil && !errors.Is(uerr, common.ErrNotFound) {
		s.logger.Error("Failed to load user for default profile", zap.Error(uerr), zap.String("userID", userID))
		return Response{}, common.ErrInternalServer
	}
	return defaultResponse(userID, usr), nil
}

// Save upserts the user's profile and returns the canonical persisted row,
// re-read from storage so the caller sees exactly what was stored.
func (s *Service) Save(ctx context.Context, userID string, req UpdateRequest) (Response, error) {
	existing, err := s.repo.FindByUserID(ctx, userID)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		s.logger.Error("Failed to load profile before save", zap.Error(err), zap.String("userID", userID))
		return Response{}, common.ErrInternalServer
	}

	stats := Stats{}
	if req.Stats != nil {
		stats = req.Stats.clamped()
	}

	row := &Profile{
		UserID:   userID,
		Name:     req.Name,
		Location: req.Location,
		Roles:    datatypes.NewJSONSlice(emptyIfNil(req.Roles)),
		About:    req.About,
		Offers:   datatypes.NewJSONSlice(emptyIfNil(req.Offers)),
		Needs:    datatypes.NewJSONSlice(emptyIfNil(req.Needs)),
		Projects: datatypes.NewJSONSlice(emptyIfNil(req.Projects)),
		Stats:    datatypes.NewJSONType(stats),
	}

	if existing != nil {
		// Avatar/header are preserved unless the update names them; an empty
		// string is an intentional clear, nil means no change.
		row.Avatar = existing.Avatar
		row.Header = existing.Header
	}
	if req.Avatar != nil {
		row.Avatar = *req.Avatar
	}
	if req.Header != nil {
		row.Header = *req.Header
	}

	if existing == nil {
		err = s.repo.Create(ctx, row)
	} else {
		err = s.repo.Update(ctx, row)
	}
	if err != nil {
		s.logger.Error("Failed to save profile", zap.Error(err), zap.String("userID", userID))
		return Response{}, common.ErrInternalServer
	}

	saved, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to re-read profile after save", zap.Error(err), zap.String("userID", userID))
		return Response{}, common.ErrInternalServer
	}
	return ToResponse(saved), nil
}

// defaultResponse derives an ephemeral profile from the user record: name
// falls back to the email, lists are empty, stats are zeroed and the avatar
// falls back to any provider-supplied picture.
func defaultResponse(userID string, usr *user.User) Response {
	resp := Response{
		UserID:   userID,
		Roles:    []string{},
		Offers:   []Offer{},
		Needs:    []Need{},
		Projects: []Project{},
	}
	if usr != nil {
		if usr.Name != "" {
			resp.Name = usr.Name
		} else {
			resp.Name = usr.Email
		}
		resp.Avatar = nullable(usr.Picture)
	}
	return resp
}
