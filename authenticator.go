package canvas

import (
	"context"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// Request is the part of an inbound HTTP request the authenticator needs.
type Request struct {
	Method        string
	SignedRequest string
}

// IsPostMethod reports whether method is POST, ignoring case.
func IsPostMethod(method string) bool {
	return strings.EqualFold(strings.TrimSpace(method), "POST")
}

// IsApplicable reports whether req carries a canvas signed request.
func IsApplicable(req Request) bool {
	return IsPostMethod(req.Method) && req.SignedRequest != ""
}

// Option configures an Authenticator.
type Option func(*Authenticator)

// WithProfileLoader sets the loader used for the identity lookup.
func WithProfileLoader(loader ProfileLoader) Option {
	return func(a *Authenticator) {
		a.loader = loader
	}
}

// WithLogger sets the logger. It takes precedence over WithLoggerProvider.
func WithLogger(logger Logger) Option {
	return func(a *Authenticator) {
		a.logger = logger
	}
}

// WithLoggerProvider resolves the "canvas" logger from provider.
func WithLoggerProvider(provider LoggerProvider) Option {
	return func(a *Authenticator) {
		a.loggerProvider = provider
	}
}

// WithActivitySink configures a sink for canvas audit events.
func WithActivitySink(sink ActivitySink) Option {
	return func(a *Authenticator) {
		a.activitySink = normalizeActivitySink(sink)
	}
}

// WithMetricsRecorder sets the recorder for outcome counts and profile latency.
func WithMetricsRecorder(recorder MetricsRecorder) Option {
	return func(a *Authenticator) {
		if recorder == nil {
			recorder = NopMetricsRecorder{}
		}
		a.metrics = recorder
	}
}

// WithClock overrides the time source used for events and latency.
func WithClock(now func() time.Time) Option {
	return func(a *Authenticator) {
		if now != nil {
			a.now = now
		}
	}
}

// Authenticator verifies canvas signed requests. It is immutable after
// construction and safe for concurrent use.
type Authenticator struct {
	cfg            Config
	verifier       Verifier
	loader         ProfileLoader
	logger         Logger
	loggerProvider LoggerProvider
	activitySink   ActivitySink
	metrics        MetricsRecorder
	now            func() time.Time
}

// NewAuthenticator returns an Authenticator for the consumer secret in cfg.
// A profile loader must be supplied with WithProfileLoader.
func NewAuthenticator(cfg Config, verifier Verifier, opts ...Option) (*Authenticator, error) {
	if cfg.ConsumerSecret == "" {
		return nil, ErrConsumerSecretRequired.Clone()
	}
	if verifier == nil {
		return nil, ErrVerifierRequired.Clone()
	}

	a := &Authenticator{
		cfg:          cfg.withDefaults(),
		verifier:     verifier,
		activitySink: noopActivitySink{},
		metrics:      NopMetricsRecorder{},
		now:          time.Now,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}

	if a.loader == nil {
		return nil, ErrProfileLoaderRequired.Clone()
	}

	a.loggerProvider, a.logger = ResolveLogger("canvas", a.loggerProvider, a.logger)

	return a, nil
}

// Config returns the resolved configuration.
func (a *Authenticator) Config() Config {
	return a.cfg
}

// Authenticate runs the canvas checks against req. Every step short-circuits
// on failure and the profile is loaded at most once.
func (a *Authenticator) Authenticate(ctx context.Context, req Request) Outcome {
	if ctx == nil {
		ctx = context.Background()
	}

	if !IsApplicable(req) {
		outcome := notApplicable()
		a.countOutcome(ctx, outcome)
		return outcome
	}

	envelope, err := SplitSignedRequest(req.SignedRequest)
	if err != nil {
		return a.reject(ctx, asRejection(err, ErrInvalidFormat), nil)
	}

	if !VerifySignature(envelope.EncodedPayload, envelope.Signature, a.cfg.ConsumerSecret) {
		return a.reject(ctx, ErrSignatureMismatch.Clone(), nil)
	}

	payload, err := DecodeEnvelope(envelope.EncodedPayload)
	if err != nil {
		return a.reject(ctx, asRejection(err, ErrMalformedEnvelope), nil)
	}

	profile, err := a.loadProfile(ctx, payload)
	if err != nil {
		a.logger.Warn("canvas profile lookup failed",
			"organization_id", payload.OrganizationID(),
			"user_id", payload.UserID(),
			"error", err,
		)
		return a.reject(ctx, wrapProviderError(ErrProfileUnavailable, err), payload)
	}

	verification := callVerifier(ctx, a.verifier, payload.AccessToken(), profile)

	if verification.Granted() {
		principal := &Principal{
			User:           verification.User(),
			Profile:        profile,
			OrganizationID: payload.OrganizationID(),
			UserID:         payload.UserID(),
			Environment:    payload.Environment(),
		}
		return a.accept(ctx, principal)
	}

	if verr := verification.Err(); verr != nil {
		a.logger.Warn("canvas verifier failed",
			"organization_id", payload.OrganizationID(),
			"user_id", payload.UserID(),
			"error", verr,
		)
		failed := reject(ErrVerificationFailed, verr, nil)
		var rich *goerrors.Error
		if goerrors.As(verr, &rich) && rich.Message != "" {
			failed.Message = rich.Message
		}
		return a.reject(ctx, failed, payload)
	}

	denied := ErrNotAuthorized.Clone()
	denied.Message = a.cfg.DenyMessage
	if reason := verification.Reason(); reason != "" {
		denied.Message = reason
	}
	return a.reject(ctx, denied, payload)
}

func (a *Authenticator) loadProfile(ctx context.Context, payload *Payload) (Profile, error) {
	started := a.now()
	profile, err := a.loader.LoadProfile(ctx, payload.OrganizationID(), payload.UserID(), payload.AccessToken())

	status := "ok"
	if err == nil && profile == nil {
		err = &ProviderError{Operation: "identity", Code: "empty_profile", Description: "identity service returned no profile"}
	}
	if err != nil {
		status = "error"
	}

	a.metrics.ObserveHistogram(ctx, MetricProfileLoadSeconds, a.now().Sub(started).Seconds(), map[string]string{
		"status": status,
	})

	return profile, err
}

func (a *Authenticator) accept(ctx context.Context, principal *Principal) Outcome {
	outcome := authenticated(principal)
	a.countOutcome(ctx, outcome)

	a.logger.Debug("canvas request authenticated",
		"organization_id", principal.OrganizationID,
		"user_id", principal.UserID,
	)

	a.emit(ctx, ActivityEvent{
		EventType:      ActivityEventCanvasSuccess,
		UserID:         principal.UserID,
		OrganizationID: principal.OrganizationID,
		Metadata: map[string]any{
			"profile_id": principal.Profile.ID(),
		},
	})

	return outcome
}

func (a *Authenticator) reject(ctx context.Context, err *goerrors.Error, payload *Payload) Outcome {
	outcome := rejected(err)
	a.countOutcome(ctx, outcome)

	a.logger.Info("canvas request rejected",
		"text_code", err.TextCode,
		"reason", err.Message,
	)

	event := ActivityEvent{
		EventType: ActivityEventCanvasRejected,
		TextCode:  err.TextCode,
		Reason:    err.Message,
		Metadata:  map[string]any{},
	}
	if payload != nil {
		event.UserID = payload.UserID()
		event.OrganizationID = payload.OrganizationID()
	}
	for k, v := range err.Metadata {
		event.Metadata[k] = v
	}
	a.emit(ctx, event)

	return outcome
}

func (a *Authenticator) countOutcome(ctx context.Context, outcome Outcome) {
	a.metrics.IncCounter(ctx, MetricAuthOutcomes, 1, map[string]string{
		"outcome":   outcome.Kind.String(),
		"text_code": outcome.TextCode(),
	})
}

func (a *Authenticator) emit(ctx context.Context, event ActivityEvent) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Metadata == nil {
		event.Metadata = map[string]any{}
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = a.now().UTC()
	}

	if err := a.activitySink.Record(ctx, event); err != nil {
		a.logger.Warn("canvas activity sink error", "event", string(event.EventType), "error", err)
	}
}
