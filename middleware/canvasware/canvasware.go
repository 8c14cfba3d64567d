package canvasware

import (
	"context"

	canvas "github.com/goliatone/go-auth-canvas"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
)

const (
	DefaultContextKey     = "user"
	DefaultEnvironmentKey = "canvas"
)

// Authenticator is satisfied by *canvas.Authenticator.
type Authenticator interface {
	Authenticate(ctx context.Context, req canvas.Request) canvas.Outcome
}

type Config struct {
	Filter func(router.Context) bool
	// SuccessHandler runs after the user and environment are stored.
	// Defaults to ctx.Next().
	SuccessHandler router.HandlerFunc
	// ErrorHandler receives the *goerrors.Error of a rejected request.
	// Defaults to 403 with the rejection reason as the body.
	ErrorHandler   router.ErrorHandler
	Authenticator  Authenticator
	ContextKey     string
	EnvironmentKey string
	FormField      string

	// ContextEnricher propagates the principal to the standard context.
	// Defaults to canvas.WithPrincipal.
	ContextEnricher func(c context.Context, principal *canvas.Principal) context.Context

	Logger         canvas.Logger
	LoggerProvider canvas.LoggerProvider
}

// New returns a middleware that authenticates canvas signed requests.
// Requests without a signed request pass through untouched.
func New(config ...Config) router.MiddlewareFunc {
	return func(hf router.HandlerFunc) router.HandlerFunc {
		cfg := GetDefaultConfig(config...)
		return func(ctx router.Context) error {
			if cfg.Filter != nil && cfg.Filter(ctx) {
				return ctx.Next()
			}

			req := canvas.Request{Method: ctx.Method()}
			if canvas.IsPostMethod(req.Method) {
				req.SignedRequest = ctx.FormValue(cfg.FormField)
			}

			outcome := cfg.Authenticator.Authenticate(ctx.Context(), req)

			switch outcome.Kind {
			case canvas.OutcomeAuthenticated:
				ctx.Locals(cfg.ContextKey, outcome.User)
				ctx.LocalsMerge(cfg.EnvironmentKey, outcome.Context)

				if cfg.ContextEnricher != nil && outcome.Principal != nil {
					ctx.SetContext(cfg.ContextEnricher(ctx.Context(), outcome.Principal))
				}

				return cfg.SuccessHandler(ctx)
			case canvas.OutcomeRejected:
				return cfg.ErrorHandler(ctx, outcome.Err)
			default:
				return ctx.Next()
			}
		}
	}
}

// GetDefaultConfig fills the zero fields of the first config.
func GetDefaultConfig(config ...Config) (cfg Config) {
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.Authenticator == nil {
		panic("CANVAS: middleware configuration: Authenticator is required.")
	}

	if cfg.SuccessHandler == nil {
		cfg.SuccessHandler = func(ctx router.Context) error {
			return ctx.Next()
		}
	}

	if cfg.ContextKey == "" {
		cfg.ContextKey = DefaultContextKey
	}

	if cfg.EnvironmentKey == "" {
		cfg.EnvironmentKey = DefaultEnvironmentKey
	}

	if cfg.FormField == "" {
		cfg.FormField = canvas.DefaultFormField
	}

	if cfg.ContextEnricher == nil {
		cfg.ContextEnricher = canvas.WithPrincipal
	}

	_, logger := canvas.ResolveLogger("canvas.middleware", cfg.LoggerProvider, cfg.Logger)
	cfg.Logger = logger

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = defaultErrorHandler(logger)
	}

	return cfg
}

func defaultErrorHandler(logger canvas.Logger) router.ErrorHandler {
	return func(c router.Context, err error) error {
		richErr := asRichError(err)

		logger.Info(
			"Canvas middleware error handler",
			"error", richErr.Message,
			"text_code", richErr.TextCode,
			"details", print.MaybePrettyJSON(richErr.Metadata),
		)

		status, message := rejectionResponse(richErr)
		return c.Status(status).SendString(message)
	}
}

func asRichError(err error) *goerrors.Error {
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) && richErr != nil {
		return richErr
	}
	if err == nil {
		return canvas.ErrNotAuthorized.Clone()
	}
	return goerrors.Wrap(err, goerrors.CategoryAuth, canvas.DefaultDenyMessage).
		WithCode(goerrors.CodeForbidden)
}

func rejectionResponse(richErr *goerrors.Error) (int, string) {
	status := richErr.Code
	if status == 0 {
		status = router.StatusForbidden
	}
	message := richErr.Message
	if message == "" {
		message = canvas.DefaultDenyMessage
	}
	return status, message
}
