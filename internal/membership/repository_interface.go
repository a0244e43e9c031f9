package membership

import "context"

type Repository interface {
	Create(ctx context.Context, email, passwordHash, firstName, lastName string) error
	EmailExists(ctx context.Context, email string) (bool, error)
	FindByEmail(ctx context.Context, email string) (*Member, error)
	GetProfile(ctx context.Context, email string) (*Profile, error)
	UpdateName(ctx context.Context, email, firstName, lastName string) (*Profile, error)
	UpdateProfileImage(ctx context.Context, email, imagePath string) (*Profile, error)
	List(ctx context.Context) ([]MemberSummary, error)
}
