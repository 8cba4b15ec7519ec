package catalog

//go:generate mockgen -source=ports.go -destination=mocks/mock_source.go -package=mocks

import (
	"context"
)

// Source loads the catalog dataset once at startup.
type Source interface {
	Load(ctx context.Context) (Dataset, error)
}
