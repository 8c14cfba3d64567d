package canvas

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// Sign returns the base64 HMAC-SHA256 of encodedPayload keyed by secret.
func Sign(encodedPayload, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(encodedPayload))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// SignPayload encodes payload and returns the full signed_request value.
func SignPayload(payload *Payload, secret string) (string, error) {
	encoded, err := EncodePayload(payload)
	if err != nil {
		return "", err
	}
	return SignedEnvelope{
		Signature:      Sign(encoded, secret),
		EncodedPayload: encoded,
	}.String(), nil
}

// VerifySignature reports whether signature matches the HMAC of
// encodedPayload under secret. An empty signature or secret never matches.
func VerifySignature(encodedPayload, signature, secret string) bool {
	if signature == "" || secret == "" {
		return false
	}
	expected := Sign(encodedPayload, secret)
	return hmac.Equal([]byte(signature), []byte(expected))
}
