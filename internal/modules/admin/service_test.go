package admin

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"coworking/internal/domain"
	"coworking/internal/repository"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepo) List(ctx context.Context, f repository.UserFilters) ([]domain.User, int64, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]domain.User), args.Get(1).(int64), args.Error(2)
}

type mockProfileRepo struct {
	mock.Mock
}

func (m *mockProfileRepo) GetByUserID(ctx context.Context, userID int64) (*domain.ManagerProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ManagerProfile), args.Error(1)
}

func (m *mockProfileRepo) Update(ctx context.Context, p *domain.ManagerProfile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

type mockStatsReader struct {
	mock.Mock
}

func (m *mockStatsReader) Stats(ctx context.Context, centerID int64) (*repository.CenterStats, error) {
	args := m.Called(ctx, centerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.CenterStats), args.Error(1)
}

func newAdminService(users *mockUserRepo, profiles *mockProfileRepo, stats *mockStatsReader) *Service {
	s := NewService(users, profiles, stats)
	s.now = func() time.Time { return time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC) }
	return s
}

// Both the page and the total must be scoped to pending status in the query,
// otherwise approved and rejected managers inflate the pagination count.
func TestService_ListPendingManagers_ScopedToPendingStatus(t *testing.T) {
	users := new(mockUserRepo)
	profiles := new(mockProfileRepo)

	users.On("List", mock.Anything, repository.UserFilters{
		Role:          "manager",
		ManagerStatus: "pending",
		Limit:         20,
		Offset:        0,
	}).Return([]domain.User{
		{ID: 2, Role: domain.RoleManager, ManagerStatus: domain.ManagerPending, PasswordHash: "hash"},
	}, int64(1), nil)
	profiles.On("GetByUserID", mock.Anything, int64(2)).Return(&domain.ManagerProfile{UserID: 2, CompanyName: "NewDesk"}, nil)

	service := newAdminService(users, profiles, new(mockStatsReader))

	out, total, err := service.ListPendingManagers(context.Background(), 20, 0)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, out, 1)
	assert.Empty(t, out[0].User.PasswordHash)
	assert.Equal(t, "NewDesk", out[0].Profile.CompanyName)
	users.AssertExpectations(t)
}

func TestService_ApproveManager_Success(t *testing.T) {
	users := new(mockUserRepo)
	profiles := new(mockProfileRepo)

	users.On("GetByID", mock.Anything, int64(9)).Return(&domain.User{
		ID: 9, Role: domain.RoleManager, ManagerStatus: domain.ManagerPending,
	}, nil)
	users.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.ManagerStatus == domain.ManagerApproved
	})).Return(nil)
	profiles.On("GetByUserID", mock.Anything, int64(9)).Return(&domain.ManagerProfile{UserID: 9}, nil)
	profiles.On("Update", mock.Anything, mock.MatchedBy(func(p *domain.ManagerProfile) bool {
		return p.ApprovedAt != nil && p.ApprovedBy != nil && *p.ApprovedBy == 1
	})).Return(nil)

	service := newAdminService(users, profiles, new(mockStatsReader))

	user, err := service.ApproveManager(context.Background(), 1, 9)

	assert.NoError(t, err)
	assert.Equal(t, domain.ManagerApproved, user.ManagerStatus)
	users.AssertExpectations(t)
	profiles.AssertExpectations(t)
}

func TestService_ApproveManager_NotPending(t *testing.T) {
	users := new(mockUserRepo)
	users.On("GetByID", mock.Anything, int64(9)).Return(&domain.User{
		ID: 9, Role: domain.RoleManager, ManagerStatus: domain.ManagerApproved,
	}, nil)

	service := newAdminService(users, new(mockProfileRepo), new(mockStatsReader))

	_, err := service.ApproveManager(context.Background(), 1, 9)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestService_ApproveManager_NotAManager(t *testing.T) {
	users := new(mockUserRepo)
	users.On("GetByID", mock.Anything, int64(9)).Return(&domain.User{
		ID: 9, Role: domain.RoleClient,
	}, nil)

	service := newAdminService(users, new(mockProfileRepo), new(mockStatsReader))

	_, err := service.ApproveManager(context.Background(), 1, 9)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestService_RejectManager_RequiresReason(t *testing.T) {
	service := newAdminService(new(mockUserRepo), new(mockProfileRepo), new(mockStatsReader))

	_, err := service.RejectManager(context.Background(), 9, "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_RejectManager_Success(t *testing.T) {
	users := new(mockUserRepo)
	profiles := new(mockProfileRepo)

	users.On("GetByID", mock.Anything, int64(9)).Return(&domain.User{
		ID: 9, Role: domain.RoleManager, ManagerStatus: domain.ManagerPending,
	}, nil)
	users.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.ManagerStatus == domain.ManagerRejected
	})).Return(nil)
	profiles.On("GetByUserID", mock.Anything, int64(9)).Return(&domain.ManagerProfile{UserID: 9}, nil)
	profiles.On("Update", mock.Anything, mock.MatchedBy(func(p *domain.ManagerProfile) bool {
		return p.RejectedReason == "incomplete documents"
	})).Return(nil)

	service := newAdminService(users, profiles, new(mockStatsReader))

	user, err := service.RejectManager(context.Background(), 9, "incomplete documents")

	assert.NoError(t, err)
	assert.Equal(t, domain.ManagerRejected, user.ManagerStatus)
}

func TestService_BanUser_BlocksManager(t *testing.T) {
	users := new(mockUserRepo)
	users.On("GetByID", mock.Anything, int64(9)).Return(&domain.User{
		ID: 9, Role: domain.RoleManager, ManagerStatus: domain.ManagerApproved,
	}, nil)
	users.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.IsBanned && u.ManagerStatus == domain.ManagerBlocked && u.BanReason == "fraud"
	})).Return(nil)

	service := newAdminService(users, new(mockProfileRepo), new(mockStatsReader))

	user, err := service.BanUser(context.Background(), 9, "fraud")

	assert.NoError(t, err)
	assert.True(t, user.IsBanned)
	users.AssertExpectations(t)
}

func TestService_BanUser_AlreadyBanned(t *testing.T) {
	users := new(mockUserRepo)
	users.On("GetByID", mock.Anything, int64(9)).Return(&domain.User{ID: 9, IsBanned: true}, nil)

	service := newAdminService(users, new(mockProfileRepo), new(mockStatsReader))

	_, err := service.BanUser(context.Background(), 9, "again")
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestService_UnbanUser_RestoresManagerStatus(t *testing.T) {
	users := new(mockUserRepo)
	users.On("GetByID", mock.Anything, int64(9)).Return(&domain.User{
		ID: 9, Role: domain.RoleManager, IsBanned: true, ManagerStatus: domain.ManagerBlocked,
	}, nil)
	users.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return !u.IsBanned && u.ManagerStatus == domain.ManagerApproved && u.BannedAt == nil
	})).Return(nil)

	service := newAdminService(users, new(mockProfileRepo), new(mockStatsReader))

	user, err := service.UnbanUser(context.Background(), 9)

	assert.NoError(t, err)
	assert.False(t, user.IsBanned)
}

func TestService_BanUser_NotFound(t *testing.T) {
	users := new(mockUserRepo)
	users.On("GetByID", mock.Anything, int64(9)).Return(nil, gorm.ErrRecordNotFound)

	service := newAdminService(users, new(mockProfileRepo), new(mockStatsReader))

	_, err := service.BanUser(context.Background(), 9, "reason")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Stats(t *testing.T) {
	users := new(mockUserRepo)
	stats := new(mockStatsReader)

	users.On("List", mock.Anything, repository.UserFilters{Limit: 1}).
		Return([]domain.User{}, int64(120), nil)
	users.On("List", mock.Anything, repository.UserFilters{Role: "manager", Limit: 1000}).
		Return([]domain.User{
			{ID: 1, ManagerStatus: domain.ManagerApproved},
			{ID: 2, ManagerStatus: domain.ManagerPending},
			{ID: 3, ManagerStatus: domain.ManagerPending},
		}, int64(3), nil)
	stats.On("Stats", mock.Anything, int64(0)).Return(&repository.CenterStats{
		TotalBookings: 40, CancelledBookings: 5, Revenue: 123000, Refunded: 4000,
	}, nil)

	service := newAdminService(users, new(mockProfileRepo), stats)

	out, err := service.Stats(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int64(120), out.TotalUsers)
	assert.Equal(t, int64(3), out.TotalManagers)
	assert.Equal(t, int64(2), out.PendingManagers)
	assert.Equal(t, int64(40), out.Bookings.TotalBookings)
}
