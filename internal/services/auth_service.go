package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"icafe-booking/internal/domain"
	"icafe-booking/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type RegisterCustomerRequest struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	PhoneNumber string
}

type RegisterAdminRequest struct {
	Email       string
	Password    string
	FullName    string
	PhoneNumber string
}

type Claims struct {
	UserID string      `json:"user_id"`
	Email  string      `json:"email"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

type AuthService struct {
	creds  repository.CredentialRepository
	secret []byte
	ttl    time.Duration
	cost   int
	now    func() time.Time
}

func NewAuthService(creds repository.CredentialRepository, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		creds:  creds,
		secret: []byte(secret),
		ttl:    ttl,
		cost:   bcrypt.DefaultCost,
		now:    time.Now,
	}
}

func (s *AuthService) newCredential(email, password string, role domain.Role) (*domain.UserCredential, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password required", ErrBadRequest)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return &domain.UserCredential{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(email),
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}, nil
}

func (s *AuthService) RegisterCustomer(ctx context.Context, req RegisterCustomerRequest) (*domain.Customer, error) {
	cred, err := s.newCredential(req.Email, req.Password, domain.RoleCustomer)
	if err != nil {
		return nil, err
	}
	customer := &domain.Customer{
		ID:          uuid.NewString(),
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       cred.Email,
		PhoneNumber: req.PhoneNumber,
	}
	if err := s.creds.CreateCustomer(ctx, cred, customer); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: email already registered", ErrConflict)
		}
		return nil, err
	}
	slog.Info("customer registered", "customer_id", customer.ID)
	return customer, nil
}

func (s *AuthService) RegisterAdmin(ctx context.Context, req RegisterAdminRequest) (*domain.Admin, error) {
	cred, err := s.newCredential(req.Email, req.Password, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}
	admin := &domain.Admin{
		ID:          uuid.NewString(),
		FullName:    req.FullName,
		Email:       cred.Email,
		PhoneNumber: req.PhoneNumber,
	}
	if err := s.creds.CreateAdmin(ctx, cred, admin); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: email already registered", ErrConflict)
		}
		return nil, err
	}
	slog.Info("admin registered", "admin_id", admin.ID)
	return admin, nil
}

// EnsureAdmin registers the bootstrap admin unless the email is already taken.
func (s *AuthService) EnsureAdmin(ctx context.Context, req RegisterAdminRequest) error {
	existing, err := s.creds.FindByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	_, err = s.RegisterAdmin(ctx, req)
	return err
}

var errInvalidLogin = fmt.Errorf("%w: invalid email or password", ErrUnauthorized)

// Login verifies the password and returns a signed token for the account.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	cred, err := s.creds.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return "", err
	}
	if cred == nil || !cred.IsActive {
		return "", errInvalidLogin
	}
	if err := bcrypt.CompareHashAndPassword(cred.PasswordHash, []byte(password)); err != nil {
		return "", errInvalidLogin
	}

	userID, err := s.resolveUserID(ctx, cred)
	if err != nil {
		return "", err
	}

	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: userID,
		Email:  cred.Email,
		Role:   cred.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   cred.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (s *AuthService) resolveUserID(ctx context.Context, cred *domain.UserCredential) (string, error) {
	switch cred.Role {
	case domain.RoleAdmin:
		a, err := s.creds.FindAdminByCredentialID(ctx, cred.ID)
		if err != nil {
			return "", err
		}
		if a == nil {
			return "", errInvalidLogin
		}
		return a.ID, nil
	default:
		c, err := s.creds.FindCustomerByCredentialID(ctx, cred.ID)
		if err != nil {
			return "", err
		}
		if c == nil {
			return "", errInvalidLogin
		}
		return c.ID, nil
	}
}

// ParseToken validates a token and returns the identity it carries.
func (s *AuthService) ParseToken(tokenString string) (domain.Identity, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return domain.Identity{}, fmt.Errorf("%w: invalid or expired token", ErrUnauthorized)
	}
	if claims.UserID == "" {
		return domain.Identity{}, fmt.Errorf("%w: user_id not found in token", ErrUnauthorized)
	}
	return domain.Identity{UserID: claims.UserID, Email: claims.Email, Role: claims.Role}, nil
}
