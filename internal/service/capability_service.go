package service

import (
	"fmt"

	"github.com/hndoan/Lorises/internal/model"
	"github.com/hndoan/Lorises/internal/repository"
)

// CapabilityService is the single place role membership is derived. Every
// handler needing reviewer or admin access consults it instead of re-reading
// role rows inline.
type CapabilityService interface {
	CanReview(userID uint) (bool, error)
	IsAdmin(userID uint) (bool, error)
}

type capabilityService struct {
	userRepo repository.UserRepository
}

func NewCapabilityService(userRepo repository.UserRepository) CapabilityService {
	return &capabilityService{userRepo: userRepo}
}

func (s *capabilityService) CanReview(userID uint) (bool, error) {
	return s.hasAny(userID, model.RoleReviewer, model.RoleAdmin, model.RoleSuperAdmin)
}

func (s *capabilityService) IsAdmin(userID uint) (bool, error) {
	return s.hasAny(userID, model.RoleAdmin, model.RoleSuperAdmin)
}

func (s *capabilityService) hasAny(userID uint, roles ...string) (bool, error) {
	names, err := s.userRepo.FindRoleNames(userID)
	if err != nil {
		return false, fmt.Errorf("failed to load roles for user %d: %w", userID, err)
	}
	for _, name := range names {
		for _, role := range roles {
			if name == role {
				return true, nil
			}
		}
	}
	return false, nil
}
