package membership

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrMemberNotFound = errors.New("member not found")

type SQLRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) Create(ctx context.Context, email, passwordHash, firstName, lastName string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO memberships (email, password, first_name, last_name)
		 VALUES ($1, $2, $3, $4)`,
		email, passwordHash, firstName, lastName,
	)
	return err
}

func (r *SQLRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM memberships WHERE email = $1)`, email)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *SQLRepository) FindByEmail(ctx context.Context, email string) (*Member, error) {
	var member Member
	err := r.db.GetContext(ctx, &member,
		`SELECT email, password, first_name, last_name, profile_image, created_at
		 FROM memberships
		 WHERE email = $1
		 LIMIT 1`,
		email,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMemberNotFound
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *SQLRepository) GetProfile(ctx context.Context, email string) (*Profile, error) {
	var profile Profile
	err := r.db.GetContext(ctx, &profile,
		`SELECT email, first_name, last_name, profile_image
		 FROM memberships
		 WHERE email = $1
		 LIMIT 1`,
		email,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMemberNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *SQLRepository) UpdateName(ctx context.Context, email, firstName, lastName string) (*Profile, error) {
	_, err := r.db.ExecContext(ctx,
		`UPDATE memberships SET first_name = $1, last_name = $2 WHERE email = $3`,
		firstName, lastName, email,
	)
	if err != nil {
		return nil, err
	}
	return r.GetProfile(ctx, email)
}

func (r *SQLRepository) UpdateProfileImage(ctx context.Context, email, imagePath string) (*Profile, error) {
	_, err := r.db.ExecContext(ctx,
		`UPDATE memberships SET profile_image = $1 WHERE email = $2`,
		imagePath, email,
	)
	if err != nil {
		return nil, err
	}
	return r.GetProfile(ctx, email)
}

func (r *SQLRepository) List(ctx context.Context) ([]MemberSummary, error) {
	var members []MemberSummary
	err := r.db.SelectContext(ctx, &members,
		`SELECT email, first_name, last_name FROM memberships ORDER BY email ASC`,
	)
	if err != nil {
		return nil, err
	}
	if members == nil {
		members = []MemberSummary{}
	}
	return members, nil
}
