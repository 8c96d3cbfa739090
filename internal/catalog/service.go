package catalog

import (
	"context"
	"sync"
	"time"
)

// Reader is the slice of the catalog backend the service needs.
type Reader interface {
	ListCategories(ctx context.Context) ([]Category, error)
	ListSubcategories(ctx context.Context, categoryID string) ([]Subcategory, error)
	GetSubcategory(ctx context.Context, subcategoryID string) (*Subcategory, error)
}

// Service serves catalog lookups with a short memo over the category tree.
// Categories change rarely; rule edits never touch them, so a small TTL is
// enough and no invalidation hooks are needed.
type Service struct {
	reader Reader
	ttl    time.Duration

	mu         sync.Mutex
	categories []Category
	fetchedAt  time.Time
}

func NewService(reader Reader, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Service{reader: reader, ttl: ttl}
}

// Categories lists all categories, serving the memo while fresh.
func (s *Service) Categories(ctx context.Context) ([]Category, error) {
	s.mu.Lock()
	if s.categories != nil && time.Since(s.fetchedAt) < s.ttl {
		cached := s.categories
		s.mu.Unlock()
		return cached, nil
	}
	s.mu.Unlock()

	categories, err := s.reader.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.categories = categories
	s.fetchedAt = time.Now()
	s.mu.Unlock()
	return categories, nil
}

// Subcategories lists subcategories, optionally narrowed to one category.
func (s *Service) Subcategories(ctx context.Context, categoryID string) ([]Subcategory, error) {
	return s.reader.ListSubcategories(ctx, categoryID)
}

// Subcategory fetches one subcategory with its category embedded.
func (s *Service) Subcategory(ctx context.Context, subcategoryID string) (*Subcategory, error) {
	return s.reader.GetSubcategory(ctx, subcategoryID)
}
