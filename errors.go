package canvas

import (
	goerrors "github.com/goliatone/go-errors"
)

const (
	TextCodeInvalidFormat         = "CANVAS_INVALID_FORMAT"
	TextCodeSignatureMismatch     = "CANVAS_SIGNATURE_MISMATCH"
	TextCodeMalformedEnvelope     = "CANVAS_MALFORMED_ENVELOPE"
	TextCodeProfileUnavailable    = "CANVAS_PROFILE_UNAVAILABLE"
	TextCodeNotAuthorized         = "CANVAS_NOT_AUTHORIZED"
	TextCodeVerificationError     = "CANVAS_VERIFICATION_ERROR"
	TextCodeConsumerSecretMissing = "CANVAS_CONSUMER_SECRET_REQUIRED"
	TextCodeVerifierMissing       = "CANVAS_VERIFIER_REQUIRED"
	TextCodeProfileLoaderMissing  = "CANVAS_PROFILE_LOADER_REQUIRED"
)

// DefaultDenyMessage is the rejection reason used when a verifier denies a
// user without giving a reason.
const DefaultDenyMessage = "Not an authorized user"

// ErrInvalidFormat is returned when signed_request is not a signature and
// payload pair.
var ErrInvalidFormat = goerrors.New("Invalid signed request format", goerrors.CategoryBadInput).
	WithTextCode(TextCodeInvalidFormat).
	WithCode(goerrors.CodeForbidden)

// ErrSignatureMismatch is returned when the HMAC check fails.
var ErrSignatureMismatch = goerrors.New("Signed request signature mismatch", goerrors.CategoryAuth).
	WithTextCode(TextCodeSignatureMismatch).
	WithCode(goerrors.CodeForbidden)

// ErrMalformedEnvelope is returned when the payload does not decode or lacks
// required fields.
var ErrMalformedEnvelope = goerrors.New("Malformed canvas envelope", goerrors.CategoryBadInput).
	WithTextCode(TextCodeMalformedEnvelope).
	WithCode(goerrors.CodeForbidden)

// ErrProfileUnavailable is returned when the identity lookup fails.
var ErrProfileUnavailable = goerrors.New("Unable to load user profile", goerrors.CategoryExternal).
	WithTextCode(TextCodeProfileUnavailable).
	WithCode(goerrors.CodeForbidden)

// ErrNotAuthorized is returned when the verifier denies the user.
var ErrNotAuthorized = goerrors.New(DefaultDenyMessage, goerrors.CategoryAuthz).
	WithTextCode(TextCodeNotAuthorized).
	WithCode(goerrors.CodeForbidden)

// ErrVerificationFailed is returned when the verifier itself fails.
var ErrVerificationFailed = goerrors.New("Unable to verify user", goerrors.CategoryAuth).
	WithTextCode(TextCodeVerificationError).
	WithCode(goerrors.CodeForbidden)

var ErrConsumerSecretRequired = goerrors.New("canvas consumer secret required", goerrors.CategoryValidation).
	WithTextCode(TextCodeConsumerSecretMissing).
	WithCode(goerrors.CodeInternal)

var ErrVerifierRequired = goerrors.New("canvas verifier required", goerrors.CategoryValidation).
	WithTextCode(TextCodeVerifierMissing).
	WithCode(goerrors.CodeInternal)

var ErrProfileLoaderRequired = goerrors.New("canvas profile loader required", goerrors.CategoryValidation).
	WithTextCode(TextCodeProfileLoaderMissing).
	WithCode(goerrors.CodeInternal)

// IsRejection reports whether err is an instance of the target sentinel.
// Rejections are clones of the sentinels, so they match on text code.
func IsRejection(err error, target *goerrors.Error) bool {
	if err == nil || target == nil {
		return false
	}
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) || richErr == nil {
		return false
	}
	return richErr.TextCode == target.TextCode
}

func reject(base *goerrors.Error, source error, meta map[string]any) *goerrors.Error {
	clone := base.Clone()
	if source != nil {
		clone.Source = source
	}
	if len(meta) > 0 {
		clone.WithMetadata(meta)
	}
	return clone
}

func asRejection(err error, fallback *goerrors.Error) *goerrors.Error {
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) && richErr != nil && richErr.TextCode != "" {
		return richErr
	}
	return reject(fallback, err, nil)
}
