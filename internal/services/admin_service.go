package services

import (
	"context"
	"fmt"
	"log/slog"

	"icafe-booking/internal/domain"
	"icafe-booking/internal/repository"
)

type UpdateAdminRequest struct {
	AdminID     string
	FullName    string
	PhoneNumber string
}

type AdminService struct {
	repo repository.AdminRepository
}

func NewAdminService(r repository.AdminRepository) *AdminService {
	return &AdminService{repo: r}
}

// Authenticate resolves the admin behind a verified identity.
func (s *AdminService) Authenticate(ctx context.Context, caller domain.Identity) (*AdminResponse, error) {
	a, err := s.FindByEmail(ctx, caller.Email)
	if err != nil {
		return nil, err
	}
	return NewAdminResponse(a), nil
}

func (s *AdminService) GetByID(ctx context.Context, id string) (*AdminResponse, error) {
	a, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewAdminResponse(a), nil
}

func (s *AdminService) FindByID(ctx context.Context, id string) (*domain.Admin, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrAdminNotFound
	}
	return a, nil
}

func (s *AdminService) FindByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	a, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrAdminNotFound
	}
	return a, nil
}

// Update changes the caller's own name and phone number. A phone number held
// by another admin is a conflict.
func (s *AdminService) Update(ctx context.Context, caller domain.Identity, req UpdateAdminRequest) (*AdminResponse, error) {
	me, err := s.Authenticate(ctx, caller)
	if err != nil {
		return nil, err
	}

	admin, err := s.FindByID(ctx, req.AdminID)
	if err != nil {
		return nil, err
	}

	if me.AdminID != admin.ID {
		return nil, fmt.Errorf("%w: you are not allowed to access this resource", ErrForbidden)
	}

	existing, err := s.repo.FindByPhoneNumber(ctx, req.PhoneNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.ID != req.AdminID {
		return nil, fmt.Errorf("%w: phone number already in use", ErrConflict)
	}

	admin.FullName = req.FullName
	admin.PhoneNumber = req.PhoneNumber
	if err := s.repo.Update(ctx, admin); err != nil {
		return nil, err
	}

	return NewAdminResponse(admin), nil
}

// Delete removes the caller's own account and deactivates its credential.
func (s *AdminService) Delete(ctx context.Context, caller domain.Identity, id string) error {
	me, err := s.Authenticate(ctx, caller)
	if err != nil {
		return err
	}
	if me.AdminID != id {
		return fmt.Errorf("%w: you are not allowed to access this resource", ErrForbidden)
	}

	admin, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteAndDeactivate(ctx, admin); err != nil {
		return err
	}

	slog.Info("admin deleted", "admin_id", id)
	return nil
}
