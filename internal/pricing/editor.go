package pricing

import (
	"context"
	"sync"

	pkgerrors "github.com/ImAlagar/zohra-admin-core/pkg/errors"
	"github.com/ImAlagar/zohra-admin-core/pkg/logger"
)

// RowState is the editing lifecycle of a single rule row.
type RowState string

const (
	RowViewing RowState = "VIEWING"
	RowEditing RowState = "EDITING"
	RowSaving  RowState = "SAVING"
)

// RuleStore is the slice of the store the editor drives.
type RuleStore interface {
	Create(ctx context.Context, subcategoryID string, payload RulePayload) (*QuantityPriceRule, error)
	Update(ctx context.Context, ruleID string, payload RulePayload, isActive *bool) (*QuantityPriceRule, error)
	Remove(ctx context.Context, ruleID string) error
	ToggleActive(ctx context.Context, ruleID string, isActive bool) (*QuantityPriceRule, error)
}

// Notifier receives the outcome of every editor operation, success or
// failure, for surfacing to the operator.
type Notifier interface {
	Success(ctx context.Context, message string)
	Failure(ctx context.Context, message string)
}

// NopNotifier discards notifications.
type NopNotifier struct{}

func (NopNotifier) Success(ctx context.Context, message string) {}
func (NopNotifier) Failure(ctx context.Context, message string) {}

// Session is one open editing row.
type Session struct {
	Key           string      `json:"key"`
	RuleID        string      `json:"rule_id,omitempty"`
	SubcategoryID string      `json:"subcategory_id"`
	State         RowState    `json:"state"`
	IsNew         bool        `json:"is_new"`
	Draft         RulePayload `json:"draft"`
}

// Editor owns per-row editing sessions for quantity price rules. Each row
// moves Viewing -> Editing -> Saving; a failed save returns the row to
// Editing with the draft intact so nothing typed is lost. Active toggles
// bypass the session machine entirely.
type Editor struct {
	store    RuleStore
	notifier Notifier
	logg     *logger.Logger

	mu       sync.Mutex
	sessions map[string]*Session
	busy     map[string]bool
}

func NewEditor(store RuleStore, notifier Notifier, logg *logger.Logger) *Editor {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Editor{
		store:    store,
		notifier: notifier,
		logg:     logg,
		sessions: map[string]*Session{},
		busy:     map[string]bool{},
	}
}

// NewRowKey is the session key for a subcategory's add-new row.
func NewRowKey(subcategoryID string) string { return "new:" + subcategoryID }

// Begin opens an editing session for an existing rule, seeded with the
// rule's current values. Reopening an already-open row is a no-op that
// returns the existing session, draft included.
func (e *Editor) Begin(rule QuantityPriceRule) *Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	if existing, ok := e.sessions[rule.ID]; ok {
		return cloneSession(existing)
	}
	quantity := float64(rule.Quantity)
	value := rule.Value
	session := &Session{
		Key:           rule.ID,
		RuleID:        rule.ID,
		SubcategoryID: rule.SubcategoryID,
		State:         RowEditing,
		Draft: RulePayload{
			Quantity:  &quantity,
			PriceType: rule.PriceType,
			Value:     &value,
		},
	}
	e.sessions[rule.ID] = session
	return cloneSession(session)
}

// BeginAdd opens a blank add-new row for a subcategory. At most one add-new
// row per subcategory; a second call returns the open one.
func (e *Editor) BeginAdd(subcategoryID string) *Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	key := NewRowKey(subcategoryID)
	if existing, ok := e.sessions[key]; ok {
		return cloneSession(existing)
	}
	session := &Session{
		Key:           key,
		SubcategoryID: subcategoryID,
		State:         RowEditing,
		IsNew:         true,
		Draft:         RulePayload{PriceType: PriceTypePercentage},
	}
	e.sessions[key] = session
	return cloneSession(session)
}

// UpdateDraft replaces the draft of an open row. No validation happens
// here; intermediate states while typing are allowed.
func (e *Editor) UpdateDraft(key string, draft RulePayload) (*Session, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	session, ok := e.sessions[key]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no editing session for row")
	}
	if session.State == RowSaving {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "row is saving")
	}
	session.Draft = draft
	return cloneSession(session), nil
}

// Cancel discards a row's draft and closes the session.
func (e *Editor) Cancel(key string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	session, ok := e.sessions[key]
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "no editing session for row")
	}
	if session.State == RowSaving {
		return pkgerrors.New(pkgerrors.CodeConflict, "row is saving")
	}
	delete(e.sessions, key)
	return nil
}

// Session returns the current session for a row, if open.
func (e *Editor) Session(key string) (*Session, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	session, ok := e.sessions[key]
	if !ok {
		return nil, false
	}
	return cloneSession(session), true
}

// Submit validates the row's draft and persists it. Validation failures
// keep the session open in Editing with the draft untouched and never
// reach the store. Backend failures do the same. Success closes the row.
func (e *Editor) Submit(ctx context.Context, key string) (*QuantityPriceRule, error) {
	session, err := e.enterSaving(key)
	if err != nil {
		return nil, err
	}

	if err := ValidateRule(session.Draft); err != nil {
		e.exitSaving(key, false)
		e.notifier.Failure(ctx, validationMessage(err))
		return nil, err
	}

	var saved *QuantityPriceRule
	if session.IsNew {
		saved, err = e.store.Create(ctx, session.SubcategoryID, session.Draft)
	} else {
		saved, err = e.store.Update(ctx, session.RuleID, session.Draft, nil)
	}
	if err != nil {
		e.exitSaving(key, false)
		e.notifier.Failure(ctx, pkgerrors.MetadataFor(pkgerrors.CodeOf(err)).PublicMessage)
		return nil, err
	}

	e.exitSaving(key, true)
	if session.IsNew {
		e.notifier.Success(ctx, "Quantity price rule created")
	} else {
		e.notifier.Success(ctx, "Quantity price rule updated")
	}
	return saved, nil
}

// Delete removes a rule. Any open session for the row is closed on success.
func (e *Editor) Delete(ctx context.Context, ruleID string) error {
	if err := e.acquire(ruleID); err != nil {
		return err
	}
	defer e.release(ruleID)

	if err := e.store.Remove(ctx, ruleID); err != nil {
		e.notifier.Failure(ctx, pkgerrors.MetadataFor(pkgerrors.CodeOf(err)).PublicMessage)
		return err
	}

	e.mu.Lock()
	delete(e.sessions, ruleID)
	e.mu.Unlock()

	e.notifier.Success(ctx, "Quantity price rule deleted")
	return nil
}

// ToggleActive flips a rule's active flag without touching any open
// editing session. The draft, if one exists, stays as typed.
func (e *Editor) ToggleActive(ctx context.Context, ruleID string, isActive bool) (*QuantityPriceRule, error) {
	if err := e.acquire(ruleID); err != nil {
		return nil, err
	}
	defer e.release(ruleID)

	toggled, err := e.store.ToggleActive(ctx, ruleID, isActive)
	if err != nil {
		e.notifier.Failure(ctx, pkgerrors.MetadataFor(pkgerrors.CodeOf(err)).PublicMessage)
		return nil, err
	}
	if toggled.IsActive {
		e.notifier.Success(ctx, "Quantity price rule activated")
	} else {
		e.notifier.Success(ctx, "Quantity price rule deactivated")
	}
	return toggled, nil
}

// enterSaving transitions a row to Saving and marks it busy. A row already
// saving, or busy with a delete/toggle, yields Conflict.
func (e *Editor) enterSaving(key string) (*Session, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	session, ok := e.sessions[key]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no editing session for row")
	}
	if session.State == RowSaving || e.busy[key] {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "row operation already in flight")
	}
	session.State = RowSaving
	e.busy[key] = true
	return cloneSession(session), nil
}

// exitSaving completes a save: success closes the session, failure returns
// it to Editing with the draft intact.
func (e *Editor) exitSaving(key string, success bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.busy, key)
	session, ok := e.sessions[key]
	if !ok {
		return
	}
	if success {
		delete(e.sessions, key)
		return
	}
	session.State = RowEditing
}

func (e *Editor) acquire(key string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.busy[key] {
		return pkgerrors.New(pkgerrors.CodeConflict, "row operation already in flight")
	}
	if session, ok := e.sessions[key]; ok && session.State == RowSaving {
		return pkgerrors.New(pkgerrors.CodeConflict, "row operation already in flight")
	}
	e.busy[key] = true
	return nil
}

func (e *Editor) release(key string) {
	e.mu.Lock()
	delete(e.busy, key)
	e.mu.Unlock()
}

func cloneSession(s *Session) *Session {
	copied := *s
	return &copied
}

func validationMessage(err error) string {
	if typed := pkgerrors.As(err); typed != nil {
		return typed.Message()
	}
	return "Invalid rule"
}
