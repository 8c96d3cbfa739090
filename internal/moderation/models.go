package moderation

import "time"

// ContactStatus tracks whether a storefront contact message was handled.
type ContactStatus string

const (
	ContactStatusPending  ContactStatus = "PENDING"
	ContactStatusResolved ContactStatus = "RESOLVED"
)

// RatingStatus tracks the moderation state of a product rating.
type RatingStatus string

const (
	RatingStatusPending  RatingStatus = "PENDING"
	RatingStatusApproved RatingStatus = "APPROVED"
)

// ContactMessage is a storefront contact-form submission awaiting moderation.
type ContactMessage struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Subject   string        `json:"subject"`
	Message   string        `json:"message"`
	Status    ContactStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}

// Rating is a product review awaiting moderation.
type Rating struct {
	ID        string       `json:"id"`
	ProductID string       `json:"product_id"`
	Author    string       `json:"author"`
	Stars     int          `json:"stars"`
	Comment   string       `json:"comment"`
	Status    RatingStatus `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
}
