package catalog

import (
	"context"
	"fmt"
)

// Service builds the catalog store from a dataset source.
type Service struct {
	src      Source
	pageSize int
}

// NewService creates a new catalog service.
func NewService(src Source, pageSize int) *Service {
	return &Service{src: src, pageSize: pageSize}
}

// Open loads the dataset and returns a store showing its first page.
func (s *Service) Open(ctx context.Context) (*Store, error) {
	ds, err := s.src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return NewStore(ds, s.pageSize)
}
