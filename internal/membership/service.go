package membership

import (
	"context"
	"errors"

	"memberpay/internal/auth"
)

var (
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type Service interface {
	Register(ctx context.Context, req RegisterRequest) error
	Login(ctx context.Context, req LoginRequest) (string, error)
	GetProfile(ctx context.Context, email string) (*Profile, error)
	UpdateProfile(ctx context.Context, email string, req UpdateProfileRequest) (*Profile, error)
	SetProfileImage(ctx context.Context, email, imagePath string) (*Profile, error)
	List(ctx context.Context) ([]MemberSummary, error)
}

type service struct {
	repo      Repository
	jwtSecret string
}

func NewService(repo Repository, jwtSecret string) Service {
	return &service{
		repo:      repo,
		jwtSecret: jwtSecret,
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) error {
	exists, err := s.repo.EmailExists(ctx, req.Email)
	if err != nil {
		return err
	}
	if exists {
		return ErrEmailExists
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return err
	}

	return s.repo.Create(ctx, req.Email, passwordHash, req.FirstName, req.LastName)
}

func (s *service) Login(ctx context.Context, req LoginRequest) (string, error) {
	member, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	if !auth.CheckPassword(member.Password, req.Password) {
		return "", ErrInvalidCredentials
	}

	return auth.GenerateToken(member.Email, s.jwtSecret)
}

func (s *service) GetProfile(ctx context.Context, email string) (*Profile, error) {
	return s.repo.GetProfile(ctx, email)
}

func (s *service) UpdateProfile(ctx context.Context, email string, req UpdateProfileRequest) (*Profile, error) {
	return s.repo.UpdateName(ctx, email, req.FirstName, req.LastName)
}

func (s *service) SetProfileImage(ctx context.Context, email, imagePath string) (*Profile, error) {
	return s.repo.UpdateProfileImage(ctx, email, imagePath)
}

func (s *service) List(ctx context.Context) ([]MemberSummary, error) {
	return s.repo.List(ctx)
}
