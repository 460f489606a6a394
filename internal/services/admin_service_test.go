package services

import (
	"context"
	"testing"

	"icafe-booking/internal/domain"
	"icafe-booking/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testAdmin(id, email string) *domain.Admin {
	return &domain.Admin{ID: id, FullName: "Admin " + id, Email: email, PhoneNumber: "0811", CredentialID: "cred-" + id}
}

func TestAdminService_Authenticate(t *testing.T) {
	repo := new(mocks.MockAdminRepository)
	repo.On("FindByEmail", mock.Anything, "admin@example.com").Return(testAdmin("admin-1", "admin@example.com"), nil)

	resp, err := NewAdminService(repo).Authenticate(context.Background(), adminIdentity())

	require.NoError(t, err)
	assert.Equal(t, "admin-1", resp.AdminID)
}

func TestAdminService_GetByID_NotFound(t *testing.T) {
	repo := new(mocks.MockAdminRepository)
	repo.On("FindByID", mock.Anything, "ghost").Return(nil, nil)

	_, err := NewAdminService(repo).GetByID(context.Background(), "ghost")

	assert.ErrorIs(t, err, ErrAdminNotFound)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAdminService_Update(t *testing.T) {
	tests := []struct {
		name       string
		req        UpdateAdminRequest
		phoneOwner *domain.Admin
		wantErr    error
	}{
		{
			name: "updates own profile",
			req:  UpdateAdminRequest{AdminID: "admin-1", FullName: "New Name", PhoneNumber: "0822"},
		},
		{
			name:       "keeps own phone number",
			req:        UpdateAdminRequest{AdminID: "admin-1", FullName: "New Name", PhoneNumber: "0811"},
			phoneOwner: testAdmin("admin-1", "admin@example.com"),
		},
		{
			name:    "other admin is forbidden",
			req:     UpdateAdminRequest{AdminID: "admin-2", FullName: "X", PhoneNumber: "0899"},
			wantErr: ErrForbidden,
		},
		{
			name:       "phone held by another admin",
			req:        UpdateAdminRequest{AdminID: "admin-1", FullName: "X", PhoneNumber: "0833"},
			phoneOwner: testAdmin("admin-2", "other@example.com"),
			wantErr:    ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockAdminRepository)
			repo.On("FindByEmail", mock.Anything, "admin@example.com").Return(testAdmin("admin-1", "admin@example.com"), nil)
			repo.On("FindByID", mock.Anything, "admin-1").Return(testAdmin("admin-1", "admin@example.com"), nil).Maybe()
			repo.On("FindByID", mock.Anything, "admin-2").Return(testAdmin("admin-2", "other@example.com"), nil).Maybe()
			if tt.phoneOwner != nil {
				repo.On("FindByPhoneNumber", mock.Anything, tt.req.PhoneNumber).Return(tt.phoneOwner, nil).Maybe()
			} else {
				repo.On("FindByPhoneNumber", mock.Anything, tt.req.PhoneNumber).Return(nil, nil).Maybe()
			}
			if tt.wantErr == nil {
				repo.On("Update", mock.Anything, mock.MatchedBy(func(a *domain.Admin) bool {
					return a.ID == "admin-1" && a.FullName == tt.req.FullName && a.PhoneNumber == tt.req.PhoneNumber
				})).Return(nil).Once()
			}

			resp, err := NewAdminService(repo).Update(context.Background(), adminIdentity(), tt.req)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.req.FullName, resp.FullName)
			assert.Equal(t, tt.req.PhoneNumber, resp.PhoneNumber)
			repo.AssertExpectations(t)
		})
	}
}

func TestAdminService_Delete(t *testing.T) {
	t.Run("own account", func(t *testing.T) {
		repo := new(mocks.MockAdminRepository)
		me := testAdmin("admin-1", "admin@example.com")
		repo.On("FindByEmail", mock.Anything, "admin@example.com").Return(me, nil)
		repo.On("FindByID", mock.Anything, "admin-1").Return(me, nil)
		repo.On("DeleteAndDeactivate", mock.Anything, me).Return(nil).Once()

		err := NewAdminService(repo).Delete(context.Background(), adminIdentity(), "admin-1")

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("someone else", func(t *testing.T) {
		repo := new(mocks.MockAdminRepository)
		repo.On("FindByEmail", mock.Anything, "admin@example.com").Return(testAdmin("admin-1", "admin@example.com"), nil)

		err := NewAdminService(repo).Delete(context.Background(), adminIdentity(), "admin-2")

		assert.ErrorIs(t, err, ErrForbidden)
		repo.AssertNotCalled(t, "DeleteAndDeactivate", mock.Anything, mock.Anything)
	})
}
