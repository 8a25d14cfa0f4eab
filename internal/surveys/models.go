package surveys

import "time"

// Survey is one pizza tasting open for scoring.
type Survey struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CreatedBy   string    `json:"created_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

type UpdateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

const maxTitleLen = 200
