package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/ImAlagar/zohra-admin-core/internal/moderation"
	pkgerrors "github.com/ImAlagar/zohra-admin-core/pkg/errors"
)

type wireContact struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

func (w wireContact) toModel() moderation.ContactMessage {
	return moderation.ContactMessage{
		ID:        w.ID,
		Name:      w.Name,
		Email:     w.Email,
		Subject:   w.Subject,
		Message:   w.Message,
		Status:    moderation.ContactStatus(w.Status),
		CreatedAt: w.CreatedAt,
	}
}

type wireRating struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	Author    string    `json:"author"`
	Stars     int       `json:"stars"`
	Comment   string    `json:"comment"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

func (w wireRating) toModel() moderation.Rating {
	return moderation.Rating{
		ID:        w.ID,
		ProductID: w.ProductID,
		Author:    w.Author,
		Stars:     w.Stars,
		Comment:   w.Comment,
		Status:    moderation.RatingStatus(w.Status),
		CreatedAt: w.CreatedAt,
	}
}

// ListContacts returns storefront contact messages for moderation.
func (c *Client) ListContacts(ctx context.Context) ([]moderation.ContactMessage, error) {
	body, err := c.do(ctx, "list_contacts", http.MethodGet, "/contacts", nil)
	if err != nil {
		return nil, asOpError(err, pkgerrors.CodeFetchFailed, "list contacts")
	}

	raw := extractList(body, "contacts")
	if raw == "" {
		return []moderation.ContactMessage{}, nil
	}
	var wire []wireContact
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeFetchFailed, err, "decode contacts")
	}
	contacts := make([]moderation.ContactMessage, 0, len(wire))
	for _, contact := range wire {
		contacts = append(contacts, contact.toModel())
	}
	return contacts, nil
}

// SetContactStatus marks a contact message resolved or pending.
func (c *Client) SetContactStatus(ctx context.Context, contactID string, status moderation.ContactStatus) error {
	payload := map[string]string{"status": string(status)}
	if _, err := c.do(ctx, "set_contact_status", http.MethodPatch, "/contacts/"+url.PathEscape(contactID)+"/status", payload); err != nil {
		return asOpError(err, pkgerrors.CodeUpdateFailed, "set contact status")
	}
	return nil
}

// DeleteContact removes a contact message.
func (c *Client) DeleteContact(ctx context.Context, contactID string) error {
	if _, err := c.do(ctx, "delete_contact", http.MethodDelete, "/contacts/"+url.PathEscape(contactID), nil); err != nil {
		return asOpError(err, pkgerrors.CodeDeleteFailed, "delete contact")
	}
	return nil
}

// ListRatings returns product ratings for moderation. The backend nests this
// list under data.ratings.
func (c *Client) ListRatings(ctx context.Context) ([]moderation.Rating, error) {
	body, err := c.do(ctx, "list_ratings", http.MethodGet, "/ratings", nil)
	if err != nil {
		return nil, asOpError(err, pkgerrors.CodeFetchFailed, "list ratings")
	}

	raw := extractList(body, "ratings")
	if raw == "" {
		return []moderation.Rating{}, nil
	}
	var wire []wireRating
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeFetchFailed, err, "decode ratings")
	}
	ratings := make([]moderation.Rating, 0, len(wire))
	for _, rating := range wire {
		ratings = append(ratings, rating.toModel())
	}
	return ratings, nil
}

// SetRatingStatus approves or un-approves a rating.
func (c *Client) SetRatingStatus(ctx context.Context, ratingID string, status moderation.RatingStatus) error {
	payload := map[string]string{"status": string(status)}
	if _, err := c.do(ctx, "set_rating_status", http.MethodPatch, "/ratings/"+url.PathEscape(ratingID)+"/status", payload); err != nil {
		return asOpError(err, pkgerrors.CodeUpdateFailed, "set rating status")
	}
	return nil
}

// DeleteRating removes a rating.
func (c *Client) DeleteRating(ctx context.Context, ratingID string) error {
	if _, err := c.do(ctx, "delete_rating", http.MethodDelete, "/ratings/"+url.PathEscape(ratingID), nil); err != nil {
		return asOpError(err, pkgerrors.CodeDeleteFailed, "delete rating")
	}
	return nil
}
