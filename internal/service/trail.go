package service

import (
	"context"
	"fmt"

	"github.com/cityscout/backend/internal/domain"
)

// TrailFetcher fetches mapped trails for a set of coordinates.
// Implemented by provider.TrailClient.
type TrailFetcher interface {
	Fetch(ctx context.Context, p domain.FetchParams) ([]domain.Trail, error)
}

// TrailService is the pass-through resolver: trails go straight from the
// provider to the caller with no store read or write.
type TrailService struct {
	trails TrailFetcher
}

// NewTrailService constructs a TrailService.
func NewTrailService(trails TrailFetcher) *TrailService {
	return &TrailService{trails: trails}
}

// Find fetches trails near the given coordinates.
func (s *TrailService) Find(ctx context.Context, p domain.FetchParams) ([]domain.Trail, error) {
	trails, err := s.trails.Fetch(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("service.TrailService.Find: %w", err)
	}
	return trails, nil
}
