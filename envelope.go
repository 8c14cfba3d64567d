package canvas

import (
	"encoding/base64"
	"encoding/json"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
)

// SignedRequestSeparator splits the signature from the encoded payload.
const SignedRequestSeparator = "."

// SignedEnvelope is the wire form of a signed_request value.
type SignedEnvelope struct {
	Signature      string
	EncodedPayload string
}

// String rebuilds the signed_request value.
func (e SignedEnvelope) String() string {
	return e.Signature + SignedRequestSeparator + e.EncodedPayload
}

// SplitSignedRequest splits raw into its signature and payload segments.
// Anything other than two non-empty segments is ErrInvalidFormat.
func SplitSignedRequest(raw string) (SignedEnvelope, error) {
	parts := strings.Split(raw, SignedRequestSeparator)
	if len(parts) != 2 {
		return SignedEnvelope{}, reject(ErrInvalidFormat, nil, map[string]any{
			"segments": len(parts),
		})
	}

	if parts[0] == "" || parts[1] == "" {
		return SignedEnvelope{}, reject(ErrInvalidFormat, nil, map[string]any{
			"missing_signature": parts[0] == "",
			"missing_payload":   parts[1] == "",
		})
	}

	return SignedEnvelope{
		Signature:      parts[0],
		EncodedPayload: parts[1],
	}, nil
}

// Payload is the decoded canvas request.
type Payload struct {
	Algorithm string        `json:"algorithm,omitempty"`
	Client    *Client       `json:"client,omitempty"`
	Context   *EmbedContext `json:"context,omitempty"`
}

// Client carries the access token issued to the embedded application.
type Client struct {
	OAuthToken   string `json:"oauthToken,omitempty"`
	InstanceID   string `json:"instanceId,omitempty"`
	InstanceURL  string `json:"instanceUrl,omitempty"`
	TargetOrigin string `json:"targetOrigin,omitempty"`
}

// EmbedContext describes where and for whom the application is rendered.
type EmbedContext struct {
	User         *User          `json:"user,omitempty"`
	Organization *Organization  `json:"organization,omitempty"`
	Environment  map[string]any `json:"environment,omitempty"`
}

type User struct {
	UserID   string `json:"userId,omitempty"`
	UserName string `json:"userName,omitempty"`
	FullName string `json:"fullName,omitempty"`
	Email    string `json:"email,omitempty"`
}

type Organization struct {
	OrganizationID string `json:"organizationId,omitempty"`
	Name           string `json:"name,omitempty"`
}

// AccessToken returns client.oauthToken.
func (p *Payload) AccessToken() string {
	if p == nil || p.Client == nil {
		return ""
	}
	return p.Client.OAuthToken
}

// UserID returns context.user.userId.
func (p *Payload) UserID() string {
	if p == nil || p.Context == nil || p.Context.User == nil {
		return ""
	}
	return p.Context.User.UserID
}

// OrganizationID returns context.organization.organizationId.
func (p *Payload) OrganizationID() string {
	if p == nil || p.Context == nil || p.Context.Organization == nil {
		return ""
	}
	return p.Context.Organization.OrganizationID
}

// Environment returns a copy of context.environment, never nil.
func (p *Payload) Environment() map[string]any {
	out := map[string]any{}
	if p == nil || p.Context == nil {
		return out
	}
	for k, v := range p.Context.Environment {
		out[k] = v
	}
	return out
}

// Validate checks the fields needed to load a profile and call the verifier.
func (p *Payload) Validate() error {
	err := validation.Errors{
		"client.oauthToken":                   validation.Validate(p.AccessToken(), validation.Required),
		"context.user.userId":                 validation.Validate(p.UserID(), validation.Required),
		"context.organization.organizationId": validation.Validate(p.OrganizationID(), validation.Required),
	}.Filter()
	if err == nil {
		return nil
	}

	malformed := reject(ErrMalformedEnvelope, err, map[string]any{"stage": "validate"})
	if verr := goerrors.FromOzzoValidation(err, "canvas envelope is missing required fields"); verr != nil {
		malformed.ValidationErrors = verr.ValidationErrors
	}
	return malformed
}

// DecodePayload base64 decodes and parses the payload without checking
// required fields.
func DecodePayload(encoded string) (*Payload, error) {
	raw, err := decodeBase64(encoded)
	if err != nil {
		return nil, reject(ErrMalformedEnvelope, err, map[string]any{"stage": "base64"})
	}

	var payload Payload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, reject(ErrMalformedEnvelope, err, map[string]any{"stage": "json"})
	}

	return &payload, nil
}

// DecodeEnvelope decodes the payload and validates its required fields.
func DecodeEnvelope(encoded string) (*Payload, error) {
	payload, err := DecodePayload(encoded)
	if err != nil {
		return nil, err
	}
	if err := payload.Validate(); err != nil {
		return nil, err
	}
	return payload, nil
}

// EncodePayload serializes the payload the way the host platform does:
// JSON, then standard base64.
func EncodePayload(payload *Payload) (string, error) {
	if payload == nil {
		return "", reject(ErrMalformedEnvelope, nil, map[string]any{"stage": "encode"})
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", reject(ErrMalformedEnvelope, err, map[string]any{"stage": "encode"})
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

var payloadEncodings = []*base64.Encoding{
	base64.StdEncoding,
	base64.RawStdEncoding,
	base64.URLEncoding,
	base64.RawURLEncoding,
}

func decodeBase64(encoded string) ([]byte, error) {
	var firstErr error
	for _, enc := range payloadEncodings {
		raw, err := enc.DecodeString(encoded)
		if err == nil {
			return raw, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, firstErr
}
