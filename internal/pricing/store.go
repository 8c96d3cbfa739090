package pricing

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/multierr"

	pkgerrors "github.com/ImAlagar/zohra-admin-core/pkg/errors"
	"github.com/ImAlagar/zohra-admin-core/pkg/logger"
)

// BackendClient is the slice of the catalog backend the store needs.
type BackendClient interface {
	ListSubcategoriesWithPricing(ctx context.Context) ([]SubcategoryRules, error)
	GetRule(ctx context.Context, ruleID string) (*RuleDetail, error)
	CreateRule(ctx context.Context, subcategoryID string, payload RulePayload) (*QuantityPriceRule, error)
	UpdateRule(ctx context.Context, ruleID string, payload RulePayload, isActive *bool) (*QuantityPriceRule, error)
	DeleteRule(ctx context.Context, ruleID string) error
	ToggleRule(ctx context.Context, ruleID string, isActive bool) (*QuantityPriceRule, error)
}

// SnapshotCache mirrors the grouped snapshot across instances. Optional.
type SnapshotCache interface {
	GetSnapshot(ctx context.Context, scope string) (string, bool, error)
	SetSnapshot(ctx context.Context, scope, payload string, ttl time.Duration) error
	DropSnapshot(ctx context.Context, scopes ...string) error
}

const snapshotScope = "pricing"

// snapshot is an immutable view of every subcategory's rule set. A refetch
// builds a fresh snapshot and swaps the pointer; readers never observe a
// partially-updated list.
type snapshot struct {
	groups        []SubcategoryRules
	bySubcategory map[string][]QuantityPriceRule
	fetchedAt     time.Time
}

func newSnapshot(groups []SubcategoryRules) *snapshot {
	byID := make(map[string][]QuantityPriceRule, len(groups))
	for _, group := range groups {
		byID[group.Subcategory.ID] = group.Rules
	}
	return &snapshot{groups: groups, bySubcategory: byID, fetchedAt: time.Now()}
}

// Store mediates all reads and writes of quantity price rules. It is the
// project's data-cache boundary: no optimistic patching, every successful
// mutation refetches the grouped snapshot in full before returning.
type Store struct {
	client      BackendClient
	cache       SnapshotCache
	snapshotTTL time.Duration
	logg        *logger.Logger

	mu   sync.RWMutex
	snap *snapshot
}

// StoreOptions configures optional store collaborators.
type StoreOptions struct {
	// Cache, when set, shares the latest snapshot across instances.
	Cache       SnapshotCache
	SnapshotTTL time.Duration
	Logger      *logger.Logger
}

func NewStore(client BackendClient, opts StoreOptions) *Store {
	ttl := opts.SnapshotTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Store{
		client:      client,
		cache:       opts.Cache,
		snapshotTTL: ttl,
		logg:        opts.Logger,
	}
}

// ListAllGrouped returns every subcategory with its rule set.
func (s *Store) ListAllGrouped(ctx context.Context) ([]SubcategoryRules, error) {
	snap, err := s.currentSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.groups, nil
}

// ListBySubcategory returns all rules for one subcategory. An unknown
// subcategory yields an empty list, not an error.
func (s *Store) ListBySubcategory(ctx context.Context, subcategoryID string) ([]QuantityPriceRule, error) {
	snap, err := s.currentSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	rules := snap.bySubcategory[subcategoryID]
	if rules == nil {
		return []QuantityPriceRule{}, nil
	}
	return rules, nil
}

// GetRule fetches a single rule with its denormalized names. Detail reads
// bypass the snapshot; the backend embeds fields the grouped list lacks.
func (s *Store) GetRule(ctx context.Context, ruleID string) (*RuleDetail, error) {
	return s.client.GetRule(ctx, ruleID)
}

// RuleByID finds a rule in the current snapshot, fetching one if needed.
func (s *Store) RuleByID(ctx context.Context, ruleID string) (*QuantityPriceRule, error) {
	snap, err := s.currentSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	for _, rules := range snap.bySubcategory {
		for _, rule := range rules {
			if rule.ID == ruleID {
				found := rule
				return &found, nil
			}
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "pricing rule not found")
}

// Create validates and creates a rule, then refetches. Validation here is
// defense in depth: the editing surface has already rejected bad payloads,
// and an invalid payload never reaches the backend.
func (s *Store) Create(ctx context.Context, subcategoryID string, payload RulePayload) (*QuantityPriceRule, error) {
	if err := ValidateRule(payload); err != nil {
		return nil, err
	}
	created, err := s.client.CreateRule(ctx, subcategoryID, payload)
	if err != nil {
		return nil, err
	}
	if err := s.refresh(ctx); err != nil {
		return created, err
	}
	return created, nil
}

// Update validates and replaces a rule's fields, then refetches.
func (s *Store) Update(ctx context.Context, ruleID string, payload RulePayload, isActive *bool) (*QuantityPriceRule, error) {
	if err := ValidateRule(payload); err != nil {
		return nil, err
	}
	updated, err := s.client.UpdateRule(ctx, ruleID, payload, isActive)
	if err != nil {
		return nil, err
	}
	if err := s.refresh(ctx); err != nil {
		return updated, err
	}
	return updated, nil
}

// Remove deletes a rule, then refetches. Deleting an id that is already gone
// surfaces NotFound from the backend, never a crash.
func (s *Store) Remove(ctx context.Context, ruleID string) error {
	if err := s.client.DeleteRule(ctx, ruleID); err != nil {
		return err
	}
	return s.refresh(ctx)
}

// ToggleActive flips only the active flag. No quantity/value re-validation;
// toggling to the current state is a no-op success.
func (s *Store) ToggleActive(ctx context.Context, ruleID string, isActive bool) (*QuantityPriceRule, error) {
	toggled, err := s.client.ToggleRule(ctx, ruleID, isActive)
	if err != nil {
		return nil, err
	}
	if err := s.refresh(ctx); err != nil {
		return toggled, err
	}
	return toggled, nil
}

// Invalidate drops local and shared snapshots so the next read refetches.
func (s *Store) Invalidate(ctx context.Context) {
	s.mu.Lock()
	s.snap = nil
	s.mu.Unlock()
	if s.cache != nil {
		if err := s.cache.DropSnapshot(ctx, snapshotScope); err != nil && s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "pricing.snapshot_drop_failed")
		}
	}
}

func (s *Store) currentSnapshot(ctx context.Context) (*snapshot, error) {
	s.mu.RLock()
	snap := s.snap
	s.mu.RUnlock()
	if snap != nil {
		return snap, nil
	}

	if shared := s.snapshotFromCache(ctx); shared != nil {
		s.mu.Lock()
		s.snap = shared
		s.mu.Unlock()
		return shared, nil
	}

	if err := s.refresh(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap, nil
}

// refresh replaces the snapshot in full from the backend. The shared cache
// is dropped first so other instances never serve the stale snapshot while
// this fetch is in flight.
func (s *Store) refresh(ctx context.Context) error {
	var dropErr error
	if s.cache != nil {
		dropErr = s.cache.DropSnapshot(ctx, snapshotScope)
	}

	groups, err := s.client.ListSubcategoriesWithPricing(ctx)
	if err != nil {
		return multierr.Append(err, dropErr)
	}

	s.mu.Lock()
	s.snap = newSnapshot(groups)
	s.mu.Unlock()

	s.storeSnapshotInCache(ctx, groups)

	if dropErr != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", dropErr.Error()), "pricing.snapshot_drop_failed")
	}
	return nil
}

func (s *Store) snapshotFromCache(ctx context.Context) *snapshot {
	if s.cache == nil {
		return nil
	}
	payload, found, err := s.cache.GetSnapshot(ctx, snapshotScope)
	if err != nil || !found {
		if err != nil && s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "pricing.snapshot_read_failed")
		}
		return nil
	}
	var groups []SubcategoryRules
	if err := json.Unmarshal([]byte(payload), &groups); err != nil {
		if s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "pricing.snapshot_decode_failed")
		}
		return nil
	}
	return newSnapshot(groups)
}

func (s *Store) storeSnapshotInCache(ctx context.Context, groups []SubcategoryRules) {
	if s.cache == nil {
		return
	}
	encoded, err := json.Marshal(groups)
	if err == nil {
		err = s.cache.SetSnapshot(ctx, snapshotScope, string(encoded), s.snapshotTTL)
	}
	if err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "pricing.snapshot_write_failed")
	}
}
