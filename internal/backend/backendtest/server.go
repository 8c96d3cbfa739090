// Package backendtest provides an in-memory stand-in for the catalog backend
// REST API, used by tests and local development.
package backendtest

import (
	"encoding/json"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EnvelopeStyle controls how list responses are wrapped, so clients can be
// exercised against every shape the real backend is known to produce.
type EnvelopeStyle int

const (
	// EnvelopeData wraps lists as {"data": [...]}.
	EnvelopeData EnvelopeStyle = iota
	// EnvelopeNested wraps lists as {"data": {"<key>": [...]}}.
	EnvelopeNested
	// EnvelopeBare returns the list without any wrapper.
	EnvelopeBare
)

type subcategoryRec struct {
	ID         string
	Name       string
	CategoryID string
	Category   string
}

type ruleRec struct {
	ID            string
	SubcategoryID string
	Quantity      int
	PriceType     string
	Value         decimal.Decimal
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type contactRec struct {
	ID        string
	Name      string
	Email     string
	Subject   string
	Message   string
	Status    string
	CreatedAt time.Time
}

type ratingRec struct {
	ID        string
	ProductID string
	Author    string
	Stars     int
	Comment   string
	Status    string
	CreatedAt time.Time
}

// Server is the fake backend. Zero value is not usable; construct with New.
type Server struct {
	mu sync.Mutex

	ListStyle EnvelopeStyle

	categories    []subcategoryRec // reused shape; Category only needs ID/Name
	subcategories []subcategoryRec
	rules         map[string]*ruleRec
	contacts      map[string]*contactRec
	ratings       map[string]*ratingRec

	requestCounts map[string]int

	failStatus  int
	failMessage string

	router chi.Router
}

func New() *Server {
	s := &Server{
		rules:         map[string]*ruleRec{},
		contacts:      map[string]*contactRec{},
		ratings:       map[string]*ratingRec{},
		requestCounts: map[string]int{},
	}
	r := chi.NewRouter()

	r.Get("/subcategories-with-pricing", s.count("list_subcategories_with_pricing", s.handleListSubcategoriesWithPricing))
	r.Get("/quantity-prices/{id}", s.count("get_rule", s.handleGetRule))
	r.Post("/subcategories/{subcategoryID}/quantity-prices", s.count("create_rule", s.handleCreateRule))
	r.Put("/quantity-prices/{id}", s.count("update_rule", s.handleUpdateRule))
	r.Delete("/quantity-prices/{id}", s.count("delete_rule", s.handleDeleteRule))
	r.Patch("/quantity-prices/{id}/status", s.count("toggle_rule", s.handleToggleRule))

	r.Get("/categories", s.count("list_categories", s.handleListCategories))
	r.Get("/subcategories", s.count("list_subcategories", s.handleListSubcategories))
	r.Get("/subcategories/{id}", s.count("get_subcategory", s.handleGetSubcategory))

	r.Get("/contacts", s.count("list_contacts", s.handleListContacts))
	r.Patch("/contacts/{id}/status", s.count("set_contact_status", s.handleSetContactStatus))
	r.Delete("/contacts/{id}", s.count("delete_contact", s.handleDeleteContact))
	r.Get("/ratings", s.count("list_ratings", s.handleListRatings))
	r.Patch("/ratings/{id}/status", s.count("set_rating_status", s.handleSetRatingStatus))
	r.Delete("/ratings/{id}", s.count("delete_rating", s.handleDeleteRating))

	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// FailNext makes the next request fail with the given status and message.
func (s *Server) FailNext(status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failStatus = status
	s.failMessage = message
}

// RequestCount returns how many times the named operation was served.
func (s *Server) RequestCount(operation string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requestCounts[operation]
}

// AddCategory seeds a category and returns its id.
func (s *Server) AddCategory(name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	s.categories = append(s.categories, subcategoryRec{ID: id, Name: name})
	return id
}

// AddSubcategory seeds a subcategory under a category and returns its id.
func (s *Server) AddSubcategory(name, categoryID, categoryName string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	s.subcategories = append(s.subcategories, subcategoryRec{
		ID:         id,
		Name:       name,
		CategoryID: categoryID,
		Category:   categoryName,
	})
	return id
}

// AddRule seeds a rule and returns its id.
func (s *Server) AddRule(subcategoryID string, quantity int, priceType, value string, isActive bool) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	now := time.Now().UTC()
	s.rules[id] = &ruleRec{
		ID:            id,
		SubcategoryID: subcategoryID,
		Quantity:      quantity,
		PriceType:     priceType,
		Value:         decimal.RequireFromString(value),
		IsActive:      isActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	return id
}

// AddContact seeds a contact message and returns its id.
func (s *Server) AddContact(name, email, subject, message string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	s.contacts[id] = &contactRec{
		ID: id, Name: name, Email: email, Subject: subject, Message: message,
		Status: "PENDING", CreatedAt: time.Now().UTC(),
	}
	return id
}

// AddRating seeds a product rating and returns its id.
func (s *Server) AddRating(productID, author string, stars int, comment string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	s.ratings[id] = &ratingRec{
		ID: id, ProductID: productID, Author: author, Stars: stars, Comment: comment,
		Status: "PENDING", CreatedAt: time.Now().UTC(),
	}
	return id
}

func (s *Server) count(operation string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requestCounts[operation]++
		failStatus, failMessage := s.failStatus, s.failMessage
		s.failStatus, s.failMessage = 0, ""
		s.mu.Unlock()

		if failStatus != 0 {
			writeJSON(w, failStatus, map[string]any{
				"error": map[string]any{"message": failMessage},
			})
			return
		}
		next(w, r)
	}
}

func ruleJSON(rule *ruleRec) map[string]any {
	return map[string]any{
		"id":            rule.ID,
		"subcategoryId": rule.SubcategoryID,
		"quantity":      rule.Quantity,
		"priceType":     rule.PriceType,
		"value":         rule.Value,
		"isActive":      rule.IsActive,
		"createdAt":     rule.CreatedAt,
		"updatedAt":     rule.UpdatedAt,
	}
}

func (s *Server) handleListSubcategoriesWithPricing(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	list := make([]map[string]any, 0, len(s.subcategories))
	for _, sub := range s.subcategories {
		rules := s.rulesForSubcategoryLocked(sub.ID)
		prices := make([]map[string]any, 0, len(rules))
		for _, rule := range rules {
			prices = append(prices, ruleJSON(rule))
		}
		list = append(list, map[string]any{
			"id":             sub.ID,
			"name":           sub.Name,
			"categoryId":     sub.CategoryID,
			"category":       sub.Category,
			"quantityPrices": prices,
		})
	}
	style := s.ListStyle
	s.mu.Unlock()

	s.writeList(w, style, "subcategories", list)
}

func (s *Server) rulesForSubcategoryLocked(subcategoryID string) []*ruleRec {
	rules := make([]*ruleRec, 0)
	for _, rule := range s.rules {
		if rule.SubcategoryID == subcategoryID {
			rules = append(rules, rule)
		}
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].Quantity < rules[j].Quantity })
	return rules
}

func (s *Server) handleGetRule(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	rule, ok := s.rules[chi.URLParam(r, "id")]
	var subName, catName string
	if ok {
		for _, sub := range s.subcategories {
			if sub.ID == rule.SubcategoryID {
				subName, catName = sub.Name, sub.Category
			}
		}
	}
	s.mu.Unlock()

	if !ok {
		writeNotFound(w, "quantity price not found")
		return
	}
	payload := ruleJSON(rule)
	payload["subcategory"] = subName
	payload["category"] = catName
	writeJSON(w, http.StatusOK, map[string]any{"data": payload})
}

type ruleWriteRequest struct {
	Quantity  int             `json:"quantity"`
	PriceType string          `json:"priceType"`
	Value     decimal.Decimal `json:"value"`
	IsActive  *bool           `json:"isActive"`
}

func (s *Server) handleCreateRule(w http.ResponseWriter, r *http.Request) {
	var req ruleWriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	subcategoryID := chi.URLParam(r, "subcategoryID")
	s.mu.Lock()
	known := false
	for _, sub := range s.subcategories {
		if sub.ID == subcategoryID {
			known = true
		}
	}
	if !known {
		s.mu.Unlock()
		writeNotFound(w, "subcategory not found")
		return
	}
	now := time.Now().UTC()
	rule := &ruleRec{
		ID:            uuid.NewString(),
		SubcategoryID: subcategoryID,
		Quantity:      req.Quantity,
		PriceType:     req.PriceType,
		Value:         req.Value,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.rules[rule.ID] = rule
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, map[string]any{"data": ruleJSON(rule)})
}

func (s *Server) handleUpdateRule(w http.ResponseWriter, r *http.Request) {
	var req ruleWriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	s.mu.Lock()
	rule, ok := s.rules[chi.URLParam(r, "id")]
	if ok {
		rule.Quantity = req.Quantity
		rule.PriceType = req.PriceType
		rule.Value = req.Value
		if req.IsActive != nil {
			rule.IsActive = *req.IsActive
		}
		rule.UpdatedAt = time.Now().UTC()
	}
	s.mu.Unlock()

	if !ok {
		writeNotFound(w, "quantity price not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": ruleJSON(rule)})
}

func (s *Server) handleDeleteRule(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	_, ok := s.rules[id]
	delete(s.rules, id)
	s.mu.Unlock()

	if !ok {
		writeNotFound(w, "quantity price not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleToggleRule(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IsActive bool `json:"isActive"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	s.mu.Lock()
	rule, ok := s.rules[chi.URLParam(r, "id")]
	if ok {
		// Setting the same state twice is a no-op success, not a conflict.
		rule.IsActive = req.IsActive
		rule.UpdatedAt = time.Now().UTC()
	}
	s.mu.Unlock()

	if !ok {
		writeNotFound(w, "quantity price not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": ruleJSON(rule)})
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	list := make([]map[string]any, 0, len(s.categories))
	for _, cat := range s.categories {
		list = append(list, map[string]any{"id": cat.ID, "name": cat.Name})
	}
	style := s.ListStyle
	s.mu.Unlock()
	s.writeList(w, style, "categories", list)
}

func subcategoryJSON(sub subcategoryRec) map[string]any {
	return map[string]any{
		"id":         sub.ID,
		"name":       sub.Name,
		"categoryId": sub.CategoryID,
		"category":   sub.Category,
	}
}

func (s *Server) handleListSubcategories(w http.ResponseWriter, r *http.Request) {
	categoryID := r.URL.Query().Get("categoryId")
	s.mu.Lock()
	list := make([]map[string]any, 0, len(s.subcategories))
	for _, sub := range s.subcategories {
		if categoryID != "" && sub.CategoryID != categoryID {
			continue
		}
		list = append(list, subcategoryJSON(sub))
	}
	style := s.ListStyle
	s.mu.Unlock()
	s.writeList(w, style, "subcategories", list)
}

func (s *Server) handleGetSubcategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	var found *subcategoryRec
	for i := range s.subcategories {
		if s.subcategories[i].ID == id {
			found = &s.subcategories[i]
		}
	}
	s.mu.Unlock()

	if found == nil {
		writeNotFound(w, "subcategory not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": subcategoryJSON(*found)})
}

func (s *Server) handleListContacts(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	list := make([]map[string]any, 0, len(s.contacts))
	for _, contact := range s.contacts {
		list = append(list, map[string]any{
			"id":        contact.ID,
			"name":      contact.Name,
			"email":     contact.Email,
			"subject":   contact.Subject,
			"message":   contact.Message,
			"status":    contact.Status,
			"createdAt": contact.CreatedAt,
		})
	}
	style := s.ListStyle
	s.mu.Unlock()
	s.writeList(w, style, "contacts", list)
}

func (s *Server) handleSetContactStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	s.mu.Lock()
	contact, ok := s.contacts[chi.URLParam(r, "id")]
	if ok {
		contact.Status = req.Status
	}
	s.mu.Unlock()
	if !ok {
		writeNotFound(w, "contact not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteContact(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	_, ok := s.contacts[id]
	delete(s.contacts, id)
	s.mu.Unlock()
	if !ok {
		writeNotFound(w, "contact not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListRatings(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	list := make([]map[string]any, 0, len(s.ratings))
	for _, rating := range s.ratings {
		list = append(list, map[string]any{
			"id":        rating.ID,
			"productId": rating.ProductID,
			"author":    rating.Author,
			"stars":     rating.Stars,
			"comment":   rating.Comment,
			"status":    rating.Status,
			"createdAt": rating.CreatedAt,
		})
	}
	s.mu.Unlock()

	// The real backend always nests ratings one level deep.
	writeJSON(w, http.StatusOK, map[string]any{"data": map[string]any{"ratings": list}})
}

func (s *Server) handleSetRatingStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	s.mu.Lock()
	rating, ok := s.ratings[chi.URLParam(r, "id")]
	if ok {
		rating.Status = req.Status
	}
	s.mu.Unlock()
	if !ok {
		writeNotFound(w, "rating not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteRating(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	_, ok := s.ratings[id]
	delete(s.ratings, id)
	s.mu.Unlock()
	if !ok {
		writeNotFound(w, "rating not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeList(w http.ResponseWriter, style EnvelopeStyle, nestedKey string, list []map[string]any) {
	switch style {
	case EnvelopeBare:
		writeJSON(w, http.StatusOK, list)
	case EnvelopeNested:
		writeJSON(w, http.StatusOK, map[string]any{"data": map[string]any{nestedKey: list}})
	default:
		writeJSON(w, http.StatusOK, map[string]any{"data": list})
	}
}

func writeNotFound(w http.ResponseWriter, message string) {
	writeError(w, http.StatusNotFound, message)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]any{"message": message},
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
