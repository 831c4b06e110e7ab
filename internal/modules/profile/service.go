// README: Profile service; load-or-create plus additive updates.
package profile

import (
	"context"
	"errors"
)

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Get returns the stored profile, or a fresh empty one on first interaction.
func (s *Service) Get(ctx context.Context, id string) (*Profile, error) {
	p, err := s.store.Load(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return &Profile{}, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Update merges the incoming fields into the stored profile and persists the
// result. Missing rows are created.
func (s *Service) Update(ctx context.Context, id string, in Profile) (*Profile, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Merge(in)
	if err := s.store.Save(ctx, id, p); err != nil {
		return nil, err
	}
	return p, nil
}
