package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"coworking/internal/database"
	"coworking/internal/domain"
	"coworking/internal/repository"
)

// Mock User Repository implementing the interface
type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	if u != nil && args.Error(0) == nil {
		u.ID = 101
	}
	return args.Error(0)
}

func (m *mockUserRepo) CreateManagerWithProfile(ctx context.Context, u *domain.User, p *domain.ManagerProfile) error {
	args := m.Called(ctx, u, p)
	if u != nil && args.Error(0) == nil {
		u.ID = 101
		p.UserID = u.ID
	}
	return args.Error(0)
}

func (m *mockUserRepo) Update(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) DB() *gorm.DB {
	return &gorm.DB{} // dummy, token flows are covered by the e2e suite
}

type mockManagerProfileRepo struct {
	mock.Mock
}

func (m *mockManagerProfileRepo) GetByUserID(ctx context.Context, userID int64) (*domain.ManagerProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ManagerProfile), args.Error(1)
}

type mockJWTService struct {
	mock.Mock
}

func (m *mockJWTService) GenerateToken(userID int64, role string) (string, error) {
	args := m.Called(userID, role)
	return args.String(0), args.Error(1)
}

func newAuthService(users *mockUserRepo, managers *mockManagerProfileRepo, jwtSvc *mockJWTService) *Service {
	return NewService(users, managers, jwtSvc, "test-pepper", 0)
}

func TestService_RegisterClient_Success(t *testing.T) {
	userRepo := new(mockUserRepo)
	managerRepo := new(mockManagerProfileRepo)
	jwtSvc := new(mockJWTService)

	userRepo.On("ExistsByEmail", mock.Anything, "Test@Example.com").Return(false, nil)
	userRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	jwtSvc.On("GenerateToken", int64(101), "client").Return("fake-jwt-token", nil)

	service := newAuthService(userRepo, managerRepo, jwtSvc)

	user, token, err := service.RegisterClient(context.Background(), RegisterClientRequest{
		Email:    "Test@Example.com",
		Password: "supersecret",
		Name:     "Test User",
	})

	assert.NoError(t, err)
	assert.Equal(t, "fake-jwt-token", token)
	assert.Equal(t, "test@example.com", user.Email)
	assert.Equal(t, domain.RoleClient, user.Role)
	assert.Empty(t, user.PasswordHash)
	userRepo.AssertExpectations(t)
}

func TestService_RegisterClient_DuplicateEmail(t *testing.T) {
	userRepo := new(mockUserRepo)
	userRepo.On("ExistsByEmail", mock.Anything, "taken@example.com").Return(true, nil)

	service := newAuthService(userRepo, new(mockManagerProfileRepo), new(mockJWTService))

	_, _, err := service.RegisterClient(context.Background(), RegisterClientRequest{
		Email:    "taken@example.com",
		Password: "supersecret",
		Name:     "Test User",
	})

	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestService_RegisterClient_PasswordIsHashed(t *testing.T) {
	userRepo := new(mockUserRepo)
	jwtSvc := new(mockJWTService)

	var stored string
	userRepo.On("ExistsByEmail", mock.Anything, mock.Anything).Return(false, nil)
	userRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		stored = args.Get(1).(*domain.User).PasswordHash
	}).Return(nil)
	jwtSvc.On("GenerateToken", mock.Anything, mock.Anything).Return("t", nil)

	service := newAuthService(userRepo, new(mockManagerProfileRepo), jwtSvc)

	_, _, err := service.RegisterClient(context.Background(), RegisterClientRequest{
		Email:    "hash@example.com",
		Password: "supersecret",
		Name:     "Hash Check",
	})

	assert.NoError(t, err)
	assert.NotEqual(t, "supersecret", stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored), []byte("supersecret")))
}

// Manager registration writes two rows. When the profile insert fails the
// user insert must roll back with it, otherwise a half-registered manager
// can never retry with the same email.
func TestService_RegisterManager_ProfileFailureRollsBackUser(t *testing.T) {
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	// manager_profiles is deliberately not migrated so the profile insert fails
	require.NoError(t, db.AutoMigrate(&domain.User{}))

	users := repository.NewUserRepository(db)
	service := NewService(users, repository.NewManagerProfileRepository(db), new(mockJWTService), "pepper", time.Hour)

	_, _, err = service.RegisterManager(context.Background(), RegisterManagerRequest{
		Email:       "boss@example.com",
		Password:    "supersecret",
		Name:        "Boss",
		CompanyName: "Boss Co",
	})
	require.Error(t, err)

	var cnt int64
	require.NoError(t, db.Table("users").Count(&cnt).Error)
	assert.Zero(t, cnt, "user row must roll back with the failed profile insert")
}

func TestService_RegisterManager_CreatesUserAndProfile(t *testing.T) {
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.ManagerProfile{}))

	users := repository.NewUserRepository(db)
	jwtSvc := new(mockJWTService)
	jwtSvc.On("GenerateToken", mock.Anything, "manager").Return("jwt", nil)
	service := NewService(users, repository.NewManagerProfileRepository(db), jwtSvc, "pepper", time.Hour)

	user, token, err := service.RegisterManager(context.Background(), RegisterManagerRequest{
		Email:       "boss@example.com",
		Password:    "supersecret",
		Name:        "Boss",
		CompanyName: "Boss Co",
	})

	require.NoError(t, err)
	assert.Equal(t, "jwt", token)
	assert.Equal(t, domain.ManagerPending, user.ManagerStatus)

	profile, err := repository.NewManagerProfileRepository(db).GetByUserID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Boss Co", profile.CompanyName)
}

func TestService_GetCurrentUser_StripsPasswordHash(t *testing.T) {
	userRepo := new(mockUserRepo)
	userRepo.On("GetByID", mock.Anything, int64(7)).Return(&domain.User{
		ID: 7, Email: "u@example.com", PasswordHash: "secret-hash", Role: domain.RoleClient,
	}, nil)

	service := newAuthService(userRepo, new(mockManagerProfileRepo), new(mockJWTService))

	user, err := service.GetCurrentUser(context.Background(), 7)

	assert.NoError(t, err)
	assert.Empty(t, user.PasswordHash)
}

func TestService_GetCurrentUser_NotFound(t *testing.T) {
	userRepo := new(mockUserRepo)
	userRepo.On("GetByID", mock.Anything, int64(7)).Return(nil, gorm.ErrRecordNotFound)

	service := newAuthService(userRepo, new(mockManagerProfileRepo), new(mockJWTService))

	_, err := service.GetCurrentUser(context.Background(), 7)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestService_UpdateProfile_PartialUpdate(t *testing.T) {
	userRepo := new(mockUserRepo)
	userRepo.On("GetByID", mock.Anything, int64(7)).Return(&domain.User{
		ID: 7, Email: "u@example.com", Name: "Old Name", Phone: "+700", Role: domain.RoleClient,
	}, nil)
	userRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Name == "New Name" && u.Phone == "+700"
	})).Return(nil)

	service := newAuthService(userRepo, new(mockManagerProfileRepo), new(mockJWTService))

	user, err := service.UpdateProfile(context.Background(), 7, UpdateProfileRequest{Name: "New Name"})

	assert.NoError(t, err)
	assert.Equal(t, "New Name", user.Name)
	assert.Equal(t, "+700", user.Phone)
	userRepo.AssertExpectations(t)
}

func TestHashTokenWithPepper(t *testing.T) {
	h1 := hashTokenWithPepper("raw-token", "pepper-a")
	h2 := hashTokenWithPepper("raw-token", "pepper-a")
	h3 := hashTokenWithPepper("raw-token", "pepper-b")

	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
	assert.Len(t, h1, 64)
}

func TestGenerateOpaqueRefreshToken(t *testing.T) {
	raw1, hash1, err := generateOpaqueRefreshToken("pepper")
	assert.NoError(t, err)
	raw2, hash2, err := generateOpaqueRefreshToken("pepper")
	assert.NoError(t, err)

	assert.NotEqual(t, raw1, raw2)
	assert.NotEqual(t, hash1, hash2)
	assert.Equal(t, hashTokenWithPepper(raw1, "pepper"), hash1)
}
