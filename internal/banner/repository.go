package banner

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type SQLRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) List(ctx context.Context) ([]Banner, error) {
	var banners []Banner
	err := r.db.SelectContext(ctx, &banners,
		`SELECT banner_name, banner_image, description
		 FROM banners
		 ORDER BY banner_name ASC`,
	)
	if err != nil {
		return nil, err
	}
	if banners == nil {
		banners = []Banner{}
	}
	return banners, nil
}
