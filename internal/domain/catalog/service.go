package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var validKinds = map[ItemKind]bool{
	KindMedication: true,
	KindService:    true,
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateItem(ctx context.Context, it *Item) error {
	if !validKinds[it.Kind] {
		return fmt.Errorf("kind must be one of: medication, service")
	}
	if strings.TrimSpace(it.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if it.PriceStandard < 0 || it.PriceMember < 0 || it.PriceStaff < 0 {
		return fmt.Errorf("prices must not be negative")
	}
	it.Active = true
	return s.repo.Create(ctx, it)
}

func (s *Service) GetItem(ctx context.Context, id uuid.UUID) (*Item, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdateItem(ctx context.Context, it *Item) error {
	if !validKinds[it.Kind] {
		return fmt.Errorf("kind must be one of: medication, service")
	}
	if strings.TrimSpace(it.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if _, err := s.repo.GetByID(ctx, it.ID); err != nil {
		return fmt.Errorf("item not found: %w", err)
	}
	return s.repo.Update(ctx, it)
}

func (s *Service) ListItems(ctx context.Context, kind *ItemKind, activeOnly bool, limit, offset int) ([]*Item, int, error) {
	if kind != nil && !validKinds[*kind] {
		return nil, 0, fmt.Errorf("kind must be one of: medication, service")
	}
	return s.repo.List(ctx, kind, activeOnly, limit, offset)
}

// ResolveByName looks up an active item of the given kind by name.
// An exact case-insensitive match wins; otherwise a substring match is
// accepted only when it is unique. Returns (nil, nil) when the name
// cannot be resolved to a single item.
func (s *Service) ResolveByName(ctx context.Context, kind ItemKind, name string) (*Item, error) {
	term := strings.TrimSpace(name)
	if term == "" {
		return nil, nil
	}
	matches, err := s.repo.SearchByName(ctx, kind, term)
	if err != nil {
		return nil, err
	}
	for _, it := range matches {
		if strings.EqualFold(it.Name, term) {
			return it, nil
		}
	}
	if len(matches) == 1 {
		return matches[0], nil
	}
	return nil, nil
}
