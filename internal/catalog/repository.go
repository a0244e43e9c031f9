package catalog

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrServiceNotFound = errors.New("service not found")

type SQLRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) List(ctx context.Context) ([]Service, error) {
	var services []Service
	err := r.db.SelectContext(ctx, &services,
		`SELECT service_code, service_name, service_icon, service_tarif
		 FROM services
		 ORDER BY service_code ASC`,
	)
	if err != nil {
		return nil, err
	}
	if services == nil {
		services = []Service{}
	}
	return services, nil
}

func (r *SQLRepository) FindByCode(ctx context.Context, code string) (*Service, error) {
	var service Service
	err := r.db.GetContext(ctx, &service,
		`SELECT service_code, service_name, service_icon, service_tarif
		 FROM services
		 WHERE service_code = $1
		 LIMIT 1`,
		code,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, err
	}
	return &service, nil
}
