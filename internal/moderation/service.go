package moderation

import "context"

// Client is the slice of the backend the moderation service needs.
type Client interface {
	ListContacts(ctx context.Context) ([]ContactMessage, error)
	SetContactStatus(ctx context.Context, contactID string, status ContactStatus) error
	DeleteContact(ctx context.Context, contactID string) error
	ListRatings(ctx context.Context) ([]Rating, error)
	SetRatingStatus(ctx context.Context, ratingID string, status RatingStatus) error
	DeleteRating(ctx context.Context, ratingID string) error
}

// Service fronts contact-message and product-rating moderation. All state
// lives in the backend; the service adds the status transitions the admin
// surface exposes.
type Service struct {
	client Client
}

func NewService(client Client) *Service {
	return &Service{client: client}
}

func (s *Service) Contacts(ctx context.Context) ([]ContactMessage, error) {
	return s.client.ListContacts(ctx)
}

// ResolveContact marks a contact message handled.
func (s *Service) ResolveContact(ctx context.Context, contactID string) error {
	return s.client.SetContactStatus(ctx, contactID, ContactStatusResolved)
}

// ReopenContact returns a contact message to the pending queue.
func (s *Service) ReopenContact(ctx context.Context, contactID string) error {
	return s.client.SetContactStatus(ctx, contactID, ContactStatusPending)
}

func (s *Service) DeleteContact(ctx context.Context, contactID string) error {
	return s.client.DeleteContact(ctx, contactID)
}

func (s *Service) Ratings(ctx context.Context) ([]Rating, error) {
	return s.client.ListRatings(ctx)
}

// ApproveRating publishes a rating to the storefront.
func (s *Service) ApproveRating(ctx context.Context, ratingID string) error {
	return s.client.SetRatingStatus(ctx, ratingID, RatingStatusApproved)
}

// HoldRating returns a rating to the pending queue.
func (s *Service) HoldRating(ctx context.Context, ratingID string) error {
	return s.client.SetRatingStatus(ctx, ratingID, RatingStatusPending)
}

func (s *Service) DeleteRating(ctx context.Context, ratingID string) error {
	return s.client.DeleteRating(ctx, ratingID)
}
