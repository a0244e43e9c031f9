package catalog

import "context"

type Repository interface {
	List(ctx context.Context) ([]Service, error)
	FindByCode(ctx context.Context, code string) (*Service, error)
}
