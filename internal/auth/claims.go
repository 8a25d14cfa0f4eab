package auth

import "github.com/golang-jwt/jwt/v5"

// Claims are the decoded payload of the identity provider's access token.
// Only the fields this service reads are mapped; anything else in the token
// is ignored. Claims live for one request and are never persisted.
type Claims struct {
	jwt.RegisteredClaims

	Email        string       `json:"email"`
	UserMetadata UserMetadata `json:"user_metadata"`
	AppMetadata  AppMetadata  `json:"app_metadata"`
}

// UserMetadata is the provider's free-form per-user profile object.
type UserMetadata struct {
	FullName string `json:"full_name"`
}

// AppMetadata is the provider-managed metadata object. Roles listed here are
// informational only: authorization decisions use the local user's role.
type AppMetadata struct {
	Roles []string `json:"roles"`
}

// Identity is the request-scoped view of the caller derived from Claims.
type Identity struct {
	Subject string   `json:"subject"`
	Email   string   `json:"email"`
	Name    string   `json:"name,omitempty"`
	Roles   []string `json:"roles,omitempty"`
}

func (c Claims) Identity() Identity {
	return Identity{
		Subject: c.Subject,
		Email:   c.Email,
		Name:    c.UserMetadata.FullName,
		Roles:   c.AppMetadata.Roles,
	}
}
