// Package canvas authenticates requests posted by an embedding CRM platform
// that renders a third party page inside its UI and passes a signed_request
// form field along with it.
//
// Request flow:
//   - The signed request is "<signature>.<payload>". The payload is base64
//     JSON carrying an OAuth access token, the user and organization ids, and
//     an opaque environment map.
//   - The signature is the base64 HMAC-SHA256 of the payload keyed by the
//     consumer secret. A mismatch rejects the request before any decoding.
//   - A valid signature only proves the payload was minted by the platform.
//     The profile is then loaded from the identity service with the embedded
//     token, which proves the token is still live and binds it to the claimed
//     user. See providers/salesforce for the HTTP loader.
//   - A host supplied Verifier decides whether the resulting user may proceed.
//
// Outcomes:
//   - Authenticate returns OutcomeNotApplicable for anything that is not a POST
//     carrying a signed request, OutcomeAuthenticated with the user and
//     environment, or OutcomeRejected with a *goerrors.Error clone of one of the
//     package sentinels. Rejections should be answered with HTTP 403.
//
// Activity sinks and metrics:
//   - ActivitySink receives one event per authenticated or rejected request.
//     Sinks run best-effort (errors are logged) so you can forward to a
//     database or queue without blocking authentication.
//   - MetricsRecorder receives outcome counters and profile lookup latency.
//     adapters/prommetrics backs it with Prometheus.
package canvas
