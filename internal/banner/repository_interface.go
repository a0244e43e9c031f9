package banner

import "context"

type Repository interface {
	List(ctx context.Context) ([]Banner, error)
}
