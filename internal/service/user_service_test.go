package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "nicbank/internal/errors"
	"nicbank/internal/model"
	"nicbank/internal/repository"
)

func TestUserService_List_Defaults(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewUserService(mockRepo)

	mockRepo.On("List", mock.Anything, repository.ListFilter{Offset: 0, Limit: 10}).
		Return([]model.User{{ID: 1}, {ID: 2}}, int64(2), nil)

	page, err := svc.List(context.Background(), ListParams{})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 10, page.Limit)
	assert.Equal(t, int64(2), page.Total)
	assert.Equal(t, 1, page.TotalPages)
	assert.False(t, page.HasMore)
	mockRepo.AssertExpectations(t)
}

func TestUserService_List_Pagination(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewUserService(mockRepo)

	// 25 users at 10 per page gives 3 pages.
	mockRepo.On("List", mock.Anything, repository.ListFilter{Offset: 10, Limit: 10}).
		Return(make([]model.User, 10), int64(25), nil)

	page, err := svc.List(context.Background(), ListParams{Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 3, page.TotalPages)
	assert.True(t, page.HasMore)

	mockRepo.On("List", mock.Anything, repository.ListFilter{Offset: 40, Limit: 10}).
		Return([]model.User{}, int64(25), nil)

	_, err = svc.List(context.Background(), ListParams{Page: 5, Limit: 10})
	assert.ErrorIs(t, err, apperrors.ErrPageOutOfRange)
}

func TestUserService_List_EmptyResult(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewUserService(mockRepo)

	mockRepo.On("List", mock.Anything, mock.AnythingOfType("repository.ListFilter")).
		Return([]model.User{}, int64(0), nil)

	// Page 1 of an empty set is not out of range.
	page, err := svc.List(context.Background(), ListParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(0), page.Total)
	assert.Equal(t, 1, page.TotalPages)
	assert.False(t, page.HasMore)
}

func TestUserService_List_InvalidParams(t *testing.T) {
	tests := []struct {
		name   string
		params ListParams
	}{
		{"negative page", ListParams{Page: -1}},
		{"limit above cap", ListParams{Limit: 101}},
		{"negative limit", ListParams{Limit: -5}},
		{"unknown role", ListParams{Role: "root"}},
		{"unknown status", ListParams{Status: "dormant"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewUserService(new(MockUserRepository))
			_, err := svc.List(context.Background(), tt.params)
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		})
	}
}

func TestUserService_List_Filters(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewUserService(mockRepo)

	manager := model.RoleManager
	active := true
	mockRepo.On("List", mock.Anything, repository.ListFilter{
		Search: "ann",
		Role:   &manager,
		Active: &active,
		Offset: 0,
		Limit:  10,
	}).Return([]model.User{{ID: 7}}, int64(1), nil)

	page, err := svc.List(context.Background(), ListParams{
		Search: " ann ",
		Role:   "manager",
		Status: "active",
	})
	require.NoError(t, err)
	assert.Len(t, page.Users, 1)
	mockRepo.AssertExpectations(t)
}

func TestUserService_Get_NotFound(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewUserService(mockRepo)

	mockRepo.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Get(context.Background(), 99)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestUserService_Create(t *testing.T) {
	tests := []struct {
		name      string
		input     CreateUserInput
		setupMock func(*MockUserRepository)
		wantErr   error
		check     func(*testing.T, *model.User)
	}{
		{
			name:  "defaults applied",
			input: CreateUserInput{Name: "Ann", Email: "Ann@X.com", Password: "secret1"},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "ann@x.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			check: func(t *testing.T, u *model.User) {
				assert.Equal(t, model.RoleUser, u.Role)
				assert.Equal(t, "Operations", u.Department)
				assert.True(t, u.IsActive)
				assert.Equal(t, "ann@x.com", u.Email)
			},
		},
		{
			name: "explicit role and inactive status",
			input: CreateUserInput{
				Name: "Bob", Email: "bob@x.com", Password: "secret1",
				Role: "staff", Department: "Finance", Status: "inactive",
			},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "bob@x.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			check: func(t *testing.T, u *model.User) {
				assert.Equal(t, model.RoleStaff, u.Role)
				assert.Equal(t, "Finance", u.Department)
				assert.False(t, u.IsActive)
			},
		},
		{
			name:      "invalid role",
			input:     CreateUserInput{Name: "Ann", Email: "ann@x.com", Password: "secret1", Role: "root"},
			setupMock: func(m *MockUserRepository) {},
			wantErr:   apperrors.ErrInvalidInput,
		},
		{
			name:  "duplicate email",
			input: CreateUserInput{Name: "Ann", Email: "taken@x.com", Password: "secret1"},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "taken@x.com").
					Return(&model.User{ID: 5, Email: "taken@x.com"}, nil)
			},
			wantErr: apperrors.ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)
			svc := NewUserService(mockRepo)

			user, err := svc.Create(context.Background(), tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, user)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_Update_Permissions(t *testing.T) {
	target := func() *model.User {
		return &model.User{ID: 2, Name: "Bob", Email: "bob@x.com", Role: model.RoleUser, IsActive: true}
	}
	staff := &model.User{ID: 3, Role: model.RoleStaff}
	admin := &model.User{ID: 1, Role: model.RoleAdmin}
	self := &model.User{ID: 2, Role: model.RoleUser}

	t.Run("stranger may not update", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(2)).Return(target(), nil)
		svc := NewUserService(mockRepo)

		_, err := svc.Update(context.Background(), staff, 2, UpdateUserInput{Name: "Hijacked"})
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("self may not change role or status", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(2)).Return(target(), nil)
		svc := NewUserService(mockRepo)

		_, err := svc.Update(context.Background(), self, 2, UpdateUserInput{Role: "admin"})
		assert.ErrorIs(t, err, apperrors.ErrForbidden)

		_, err = svc.Update(context.Background(), self, 2, UpdateUserInput{Status: "inactive"})
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("self may update name", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(2)).Return(target(), nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
		svc := NewUserService(mockRepo)

		updated, err := svc.Update(context.Background(), self, 2, UpdateUserInput{Name: "Robert"})
		require.NoError(t, err)
		assert.Equal(t, "Robert", updated.Name)
	})

	t.Run("admin may change role and status", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(2)).Return(target(), nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
		svc := NewUserService(mockRepo)

		updated, err := svc.Update(context.Background(), admin, 2, UpdateUserInput{
			Role:   "manager",
			Status: "inactive",
		})
		require.NoError(t, err)
		assert.Equal(t, model.RoleManager, updated.Role)
		assert.False(t, updated.IsActive)
	})
}

func TestUserService_Update_EmailConflict(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewUserService(mockRepo)

	admin := &model.User{ID: 1, Role: model.RoleAdmin}
	mockRepo.On("FindByID", mock.Anything, uint(2)).
		Return(&model.User{ID: 2, Email: "bob@x.com"}, nil)
	mockRepo.On("FindByEmail", mock.Anything, "carol@x.com").
		Return(&model.User{ID: 9, Email: "carol@x.com"}, nil)

	_, err := svc.Update(context.Background(), admin, 2, UpdateUserInput{Email: "carol@x.com"})
	assert.ErrorIs(t, err, apperrors.ErrEmailTaken)
}

func TestUserService_Update_SameEmailNoConflictCheck(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewUserService(mockRepo)

	admin := &model.User{ID: 1, Role: model.RoleAdmin}
	mockRepo.On("FindByID", mock.Anything, uint(2)).
		Return(&model.User{ID: 2, Email: "bob@x.com"}, nil)
	mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

	// Re-sending the current address, differently cased, is a no-op.
	updated, err := svc.Update(context.Background(), admin, 2, UpdateUserInput{Email: "Bob@X.com"})
	require.NoError(t, err)
	assert.Equal(t, "bob@x.com", updated.Email)
	mockRepo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}

func TestUserService_Delete(t *testing.T) {
	admin := &model.User{ID: 1, Role: model.RoleAdmin}

	t.Run("success", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(2)).Return(&model.User{ID: 2}, nil)
		mockRepo.On("Delete", mock.Anything, uint(2)).Return(nil)
		svc := NewUserService(mockRepo)

		err := svc.Delete(context.Background(), admin, 2)
		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("self delete refused", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.User{ID: 1}, nil)
		svc := NewUserService(mockRepo)

		err := svc.Delete(context.Background(), admin, 1)
		assert.ErrorIs(t, err, apperrors.ErrSelfDelete)
		mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)
		svc := NewUserService(mockRepo)

		err := svc.Delete(context.Background(), admin, 99)
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})
}

func TestUserService_Stats(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewUserService(mockRepo)

	mockRepo.On("Stats", mock.Anything).Return(&repository.UserStats{
		TotalUsers:        12,
		ActiveUsers:       10,
		PendingApprovals:  2,
		NewUsersThisMonth: 3,
	}, nil)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(12), stats.TotalUsers)
	assert.Equal(t, int64(10), stats.ActiveUsers)
}
