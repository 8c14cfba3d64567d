package canvas

import (
	goerrors "github.com/goliatone/go-errors"
)

// OutcomeKind is the result class of a canvas authentication attempt.
type OutcomeKind int

const (
	// OutcomeNotApplicable means the request carries no signed request and
	// should continue down the chain untouched.
	OutcomeNotApplicable OutcomeKind = iota
	OutcomeAuthenticated
	OutcomeRejected
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeNotApplicable:
		return "not_applicable"
	case OutcomeAuthenticated:
		return "authenticated"
	case OutcomeRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Outcome is what Authenticate returns. User, Context and Principal are set
// only when authenticated; Err only when rejected.
type Outcome struct {
	Kind      OutcomeKind
	User      any
	Context   map[string]any
	Principal *Principal
	Err       *goerrors.Error
}

// IsAuthenticated reports whether the request was accepted.
func (o Outcome) IsAuthenticated() bool {
	return o.Kind == OutcomeAuthenticated
}

// Reason is the human readable rejection message.
func (o Outcome) Reason() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Message
}

// TextCode is the machine readable rejection code.
func (o Outcome) TextCode() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.TextCode
}

// StatusCode is the HTTP status a host should answer a rejection with.
func (o Outcome) StatusCode() int {
	if o.Err == nil || o.Err.Code == 0 {
		return goerrors.CodeForbidden
	}
	return o.Err.Code
}

func notApplicable() Outcome {
	return Outcome{Kind: OutcomeNotApplicable}
}

func rejected(err *goerrors.Error) Outcome {
	return Outcome{Kind: OutcomeRejected, Err: err}
}

func authenticated(principal *Principal) Outcome {
	return Outcome{
		Kind:      OutcomeAuthenticated,
		User:      principal.User,
		Context:   principal.Environment,
		Principal: principal,
	}
}
