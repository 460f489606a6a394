package mysql

import (
	"context"
	"errors"
	"fmt"

	"icafe-booking/internal/domain"
	"icafe-booking/internal/repository"

	"gorm.io/gorm"
)

type credentialRepo struct {
	db *gorm.DB
}

func NewCredentialRepository(db *gorm.DB) repository.CredentialRepository {
	return &credentialRepo{db: db}
}

func (r *credentialRepo) FindByEmail(ctx context.Context, email string) (*domain.UserCredential, error) {
	var c domain.UserCredential
	if err := r.db.WithContext(ctx).First(&c, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find credential: %w", err)
	}
	return &c, nil
}

func (r *credentialRepo) CreateCustomer(ctx context.Context, cred *domain.UserCredential, customer *domain.Customer) error {
	return r.createWithProfile(ctx, cred, func(tx *gorm.DB) error {
		customer.CredentialID = cred.ID
		return tx.Omit("UserCredential").Create(customer).Error
	})
}

func (r *credentialRepo) CreateAdmin(ctx context.Context, cred *domain.UserCredential, admin *domain.Admin) error {
	return r.createWithProfile(ctx, cred, func(tx *gorm.DB) error {
		admin.CredentialID = cred.ID
		return tx.Omit("UserCredential").Create(admin).Error
	})
}

func (r *credentialRepo) createWithProfile(ctx context.Context, cred *domain.UserCredential, profile func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(cred).Error; err != nil {
			return translate("create credential", err)
		}
		if err := profile(tx); err != nil {
			return translate("create profile", err)
		}
		return nil
	})
}

func translate(op string, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return repository.ErrDuplicate
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (r *credentialRepo) FindCustomerByCredentialID(ctx context.Context, credentialID string) (*domain.Customer, error) {
	var c domain.Customer
	if err := r.db.WithContext(ctx).First(&c, "credential_id = ?", credentialID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find customer by credential: %w", err)
	}
	return &c, nil
}

func (r *credentialRepo) FindAdminByCredentialID(ctx context.Context, credentialID string) (*domain.Admin, error) {
	var a domain.Admin
	if err := r.db.WithContext(ctx).First(&a, "credential_id = ?", credentialID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find admin by credential: %w", err)
	}
	return &a, nil
}
