package models

// AuthUser is the identity resolved from a bearer token by the hosted auth
// provider (or a locally verified access token).
type AuthUser struct {
	ID       string            `json:"id"`
	Email    string            `json:"email"`
	Metadata map[string]string `json:"user_metadata,omitempty"`
}

// AuthSession is the session material returned by a password sign-in.
type AuthSession struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token,omitempty"`
	ExpiresIn    int      `json:"expires_in,omitempty"`
	User         AuthUser `json:"user"`
}
