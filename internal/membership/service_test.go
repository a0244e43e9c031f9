package membership

import (
	"context"
	"errors"
	"testing"

	"memberpay/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, email, passwordHash, firstName, lastName string) error {
	args := m.Called(ctx, email, passwordHash, firstName, lastName)
	return args.Error(0)
}

func (m *MockRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (*Member, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Member), args.Error(1)
}

func (m *MockRepository) GetProfile(ctx context.Context, email string) (*Profile, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Profile), args.Error(1)
}

func (m *MockRepository) UpdateName(ctx context.Context, email, firstName, lastName string) (*Profile, error) {
	args := m.Called(ctx, email, firstName, lastName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Profile), args.Error(1)
}

func (m *MockRepository) UpdateProfileImage(ctx context.Context, email, imagePath string) (*Profile, error) {
	args := m.Called(ctx, email, imagePath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Profile), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context) ([]MemberSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]MemberSummary), args.Error(1)
}

func TestRegister(t *testing.T) {
	t.Run("new email", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("EmailExists", mock.Anything, "a@x.com").Return(false, nil)
		repo.On("Create", mock.Anything, "a@x.com", mock.MatchedBy(func(hash string) bool {
			// The stored password must be a bcrypt hash, never the plaintext.
			return hash != "secret123" && auth.CheckPassword(hash, "secret123")
		}), "Ada", "Lovelace").Return(nil)

		svc := NewService(repo, "test-secret")
		err := svc.Register(context.Background(), RegisterRequest{
			Email:     "a@x.com",
			Password:  "secret123",
			FirstName: "Ada",
			LastName:  "Lovelace",
		})

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("EmailExists", mock.Anything, "a@x.com").Return(true, nil)

		svc := NewService(repo, "test-secret")
		err := svc.Register(context.Background(), RegisterRequest{
			Email:     "a@x.com",
			Password:  "secret123",
			FirstName: "Ada",
			LastName:  "Lovelace",
		})

		assert.ErrorIs(t, err, ErrEmailExists)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("lookup failure propagates", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("EmailExists", mock.Anything, "a@x.com").Return(false, errors.New("connection refused"))

		svc := NewService(repo, "test-secret")
		err := svc.Register(context.Background(), RegisterRequest{
			Email:     "a@x.com",
			Password:  "secret123",
			FirstName: "Ada",
			LastName:  "Lovelace",
		})

		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrEmailExists)
	})
}

func TestLogin(t *testing.T) {
	hash, err := auth.HashPassword("secret123")
	require.NoError(t, err)

	member := &Member{
		Email:     "a@x.com",
		Password:  hash,
		FirstName: "Ada",
		LastName:  "Lovelace",
	}

	t.Run("valid credentials", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByEmail", mock.Anything, "a@x.com").Return(member, nil)

		svc := NewService(repo, "test-secret")
		token, err := svc.Login(context.Background(), LoginRequest{Email: "a@x.com", Password: "secret123"})

		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := auth.ValidateToken(token, "test-secret")
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", claims.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByEmail", mock.Anything, "a@x.com").Return(member, nil)

		svc := NewService(repo, "test-secret")
		_, err := svc.Login(context.Background(), LoginRequest{Email: "a@x.com", Password: "wrongpass1"})

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByEmail", mock.Anything, "ghost@x.com").Return(nil, ErrMemberNotFound)

		svc := NewService(repo, "test-secret")
		_, err := svc.Login(context.Background(), LoginRequest{Email: "ghost@x.com", Password: "secret123"})

		// Unknown email and wrong password are indistinguishable to the caller.
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestUpdateProfile(t *testing.T) {
	repo := new(MockRepository)
	repo.On("UpdateName", mock.Anything, "a@x.com", "Grace", "Hopper").
		Return(&Profile{Email: "a@x.com", FirstName: "Grace", LastName: "Hopper"}, nil)

	svc := NewService(repo, "test-secret")
	profile, err := svc.UpdateProfile(context.Background(), "a@x.com", UpdateProfileRequest{
		FirstName: "Grace",
		LastName:  "Hopper",
	})

	require.NoError(t, err)
	assert.Equal(t, "Grace", profile.FirstName)
	assert.Equal(t, "Hopper", profile.LastName)
	repo.AssertExpectations(t)
}

func TestSetProfileImage(t *testing.T) {
	image := "images/3f1d.jpg"
	repo := new(MockRepository)
	repo.On("UpdateProfileImage", mock.Anything, "a@x.com", image).
		Return(&Profile{Email: "a@x.com", FirstName: "Ada", LastName: "Lovelace", ProfileImage: &image}, nil)

	svc := NewService(repo, "test-secret")
	profile, err := svc.SetProfileImage(context.Background(), "a@x.com", image)

	require.NoError(t, err)
	require.NotNil(t, profile.ProfileImage)
	assert.Equal(t, image, *profile.ProfileImage)
	repo.AssertExpectations(t)
}
