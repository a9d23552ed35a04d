// File: internal/profile/model.go
package profile

import (
	"gorm.io/datatypes"
)

// Offer is a skill the user offers to collaborators.
type Offer struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// Need is a skill the user is looking for.
type Need struct {
	Title    string   `json:"title"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
}

// Project is an entry in the user's project list.
type Project struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Stage       string `json:"stage"`
	LookingFor  string `json:"lookingFor"`
}

// Stats holds the reputation counters. All three are non-negative; the
// storage boundary clamps anything below zero.
type Stats struct {
	Collaborations  int `json:"collaborations"`
	SkillsConfirmed int `json:"skillsConfirmed"`
	Projects        int `json:"projects"`
}

func (s Stats) clamped() Stats {
	if s.Collaborations < 0 {
		s.Collaborations = 0
	}
	if s.SkillsConfirmed < 0 {
		s.SkillsConfirmed = 0
	}
	if s.Projects < 0 {
		s.Projects = 0
	}
	return s
}

// Profile is the persisted profile document, keyed 1:1 to a user id. The
// structured sub-fields are JSON columns with typed Go representations so
// malformed persisted data fails at the storage boundary, not in handlers.
type Profile struct {
	UserID   string                       `gorm:"column:user_id;type:varchar(64);primaryKey"`
	Name     string                       `gorm:"type:varchar(255)"`
	Location string                       `gorm:"type:varchar(255)"`
	Roles    datatypes.JSONSlice[string]  `gorm:"column:roles"`
	About    string                       `gorm:"type:text"`
	Offers   datatypes.JSONSlice[Offer]   `gorm:"column:offers"`
	Needs    datatypes.JSONSlice[Need]    `gorm:"column:needs"`
	Projects datatypes.JSONSlice[Project] `gorm:"column:projects"`
	Stats    datatypes.JSONType[Stats]    `gorm:"column:stats"`
	Avatar   string                       `gorm:"type:text"`
	Header   string                       `gorm:"type:text"`
}

// TableName specifies the table name for the Profile model.
func (Profile) TableName() string {
	return "profiles"
}

// --- DTOs for API requests/responses ---

// UpdateRequest is a full-document replacement except for Avatar/Header,
// which are three-state: nil means "leave the stored value unchanged", an
// empty string intentionally clears it, any other value replaces it.
type UpdateRequest struct {
	Name     string    `json:"name"`
	Location string    `json:"location" binding:"omitempty,max=255"`
	Roles    []string  `json:"roles" binding:"omitempty,dive,max=64"`
	About    string    `json:"about"`
	Offers   []Offer   `json:"offers"`
	Needs    []Need    `json:"needs"`
	Projects []Project `json:"projects"`
	Stats    *Stats    `json:"stats"`
	Avatar   *string   `json:"avatar"`
	Header   *string   `json:"header"`
}

// Response is the canonical profile representation returned to clients.
type Response struct {
	UserID   string    `json:"user_id"`
	Name     string    `json:"name"`
	Location string    `json:"location"`
	Roles    []string  `json:"roles"`
	About    string    `json:"about"`
	Offers   []Offer   `json:"offers"`
	Needs    []Need    `json:"needs"`
	Projects []Project `json:"projects"`
	Stats    Stats     `json:"stats"`
	Avatar   *string   `json:"avatar"`
	Header   *string   `json:"header"`
}

// ToResponse converts a persisted Profile row to its API representation.
func ToResponse(p *Profile) Response {
	return Response{
		UserID:   p.UserID,
		Name:     p.Name,
		Location: p.Location,
		Roles:    emptyIfNil([]string(p.Roles)),
		About:    p.About,
		Offers:   emptyIfNil([]Offer(p.Offers)),
		Needs:    emptyIfNil([]Need(p.Needs)),
		Projects: emptyIfNil([]Project(p.Projects)),
		Stats:    p.Stats.Data(),
		Avatar:   nullable(p.Avatar),
		Header:   nullable(p.Header),
	}
}

func emptyIfNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
