package service

import (
	"context"
	"dsa_tracker_backend/internal/repository"
	"dsa_tracker_backend/internal/util"
	"errors"

	"gorm.io/gorm"
)

type ViewerKind int

const (
	ViewerAnonymous ViewerKind = iota
	ViewerGuest
	ViewerAuthenticated
)

func (k ViewerKind) String() string {
	switch k {
	case ViewerGuest:
		return "guest"
	case ViewerAuthenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// Viewer is the identity a request acts as.
type Viewer struct {
	Kind   ViewerKind
	UserID uint
}

var Anonymous = Viewer{Kind: ViewerAnonymous}

func Authenticated(userID uint) Viewer {
	return Viewer{Kind: ViewerAuthenticated, UserID: userID}
}

func Guest(demoUserID uint) Viewer {
	return Viewer{Kind: ViewerGuest, UserID: demoUserID}
}

// IdentityID returns the identity whose records the viewer may read.
func (v Viewer) IdentityID() (uint, bool) {
	return v.UserID, v.Kind != ViewerAnonymous
}

// WriterID returns the acting identity for mutations. Guests and anonymous
// viewers are read-only.
func (v Viewer) WriterID() (uint, error) {
	if v.Kind != ViewerAuthenticated {
		return 0, util.ErrUnauthorized
	}
	return v.UserID, nil
}

type IdentityService struct {
	UserRepo  *repository.UserRepository
	DemoEmail string
}

func NewIdentityService(userRepo *repository.UserRepository, demoEmail string) *IdentityService {
	return &IdentityService{
		UserRepo:  userRepo,
		DemoEmail: normalizeEmail(demoEmail),
	}
}

// Resolve maps request claims to a viewer. Without claims the demo identity is
// served to guests; if it was never provisioned the viewer is anonymous.
func (s *IdentityService) Resolve(ctx context.Context, claims *util.Claims) (Viewer, error) {
	if claims != nil {
		return Authenticated(claims.UserID), nil
	}
	if s.DemoEmail == "" {
		return Anonymous, nil
	}

	demo, err := s.UserRepo.FindByEmail(ctx, s.DemoEmail)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Anonymous, nil
	}
	if err != nil {
		return Anonymous, err
	}
	return Guest(demo.ID), nil
}
