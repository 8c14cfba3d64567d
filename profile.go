package canvas

import (
	"context"
	"fmt"
)

const (
	// DefaultIdentityURL is the host of the identity service used to load
	// user profiles.
	DefaultIdentityURL = "https://login.salesforce.com"
	// DefaultFormField is the form field carrying the signed request.
	DefaultFormField = "signed_request"
)

// Profile is the user profile document returned by the identity service.
// It is kept as decoded JSON so verifiers see every field the service sends.
type Profile map[string]any

func (p Profile) ID() string             { return p.str("id") }
func (p Profile) UserID() string         { return p.str("user_id") }
func (p Profile) OrganizationID() string { return p.str("organization_id") }
func (p Profile) DisplayName() string    { return p.str("display_name") }
func (p Profile) Email() string          { return p.str("email") }

func (p Profile) str(key string) string {
	if p == nil {
		return ""
	}
	switch v := p[key].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// ProfileLoader fetches the profile of the user the access token was issued
// to. A successful load proves the token is live.
type ProfileLoader interface {
	LoadProfile(ctx context.Context, organizationID, userID, accessToken string) (Profile, error)
}

// ProfileLoaderFunc adapts a function to the ProfileLoader interface.
type ProfileLoaderFunc func(ctx context.Context, organizationID, userID, accessToken string) (Profile, error)

// LoadProfile implements ProfileLoader.
func (f ProfileLoaderFunc) LoadProfile(ctx context.Context, organizationID, userID, accessToken string) (Profile, error) {
	return f(ctx, organizationID, userID, accessToken)
}
