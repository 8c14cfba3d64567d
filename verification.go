package canvas

import (
	"context"
	"fmt"
	"reflect"
)

// Verification is the decision returned by a Verifier. Build one with
// Authorized, Denied or Failed.
type Verification struct {
	user   any
	reason string
	err    error
}

// Authorized accepts the request as user. A nil user is treated as a denial
// without a reason.
func Authorized(user any) Verification {
	return Verification{user: user}
}

// Denied rejects the request. An empty reason uses the configured deny
// message.
func Denied(reason string) Verification {
	return Verification{reason: reason}
}

// Failed reports that the verifier could not reach a decision.
func Failed(err error) Verification {
	if err == nil {
		err = fmt.Errorf("canvas verifier failed")
	}
	return Verification{err: err}
}

// User returns the accepted user, if any.
func (v Verification) User() any { return v.user }

// Reason returns the denial reason, if any.
func (v Verification) Reason() string { return v.reason }

// Err returns the verifier failure, if any.
func (v Verification) Err() error { return v.err }

// Granted reports whether the verification carries a user.
func (v Verification) Granted() bool { return !isNil(v.user) }

// Verifier decides whether the user behind a verified request may proceed.
type Verifier interface {
	Verify(ctx context.Context, accessToken string, profile Profile) Verification
}

// VerifierFunc adapts a function to the Verifier interface.
type VerifierFunc func(ctx context.Context, accessToken string, profile Profile) Verification

// Verify implements Verifier.
func (f VerifierFunc) Verify(ctx context.Context, accessToken string, profile Profile) Verification {
	return f(ctx, accessToken, profile)
}

func callVerifier(ctx context.Context, verifier Verifier, accessToken string, profile Profile) (result Verification) {
	defer func() {
		if r := recover(); r != nil {
			result = Failed(fmt.Errorf("canvas verifier panic: %v", r))
		}
	}()
	return verifier.Verify(ctx, accessToken, profile)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
