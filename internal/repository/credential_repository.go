package repository

import (
	"context"

	"icafe-booking/internal/domain"
)

type CredentialRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.UserCredential, error)
	// CreateCustomer and CreateAdmin store the credential and its profile in one
	// transaction.
	CreateCustomer(ctx context.Context, cred *domain.UserCredential, customer *domain.Customer) error
	CreateAdmin(ctx context.Context, cred *domain.UserCredential, admin *domain.Admin) error
	FindCustomerByCredentialID(ctx context.Context, credentialID string) (*domain.Customer, error)
	FindAdminByCredentialID(ctx context.Context, credentialID string) (*domain.Admin, error)
}
