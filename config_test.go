package canvas

import (
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Empty(t, cfg.ConsumerSecret)
	assert.Equal(t, DefaultIdentityURL, cfg.IdentityURL)
	assert.Equal(t, DefaultFormField, cfg.FormField)
	assert.Equal(t, DefaultDenyMessage, cfg.DenyMessage)
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.Validate()
	require.Error(t, err)

	var richErr *goerrors.Error
	require.True(t, goerrors.As(err, &richErr))
	assert.Equal(t, goerrors.CategoryValidation, richErr.Category)
	assert.Contains(t, richErr.ValidationMap(), "consumer_secret")

	cfg.ConsumerSecret = testSecret
	require.NoError(t, cfg.Validate())

	cfg.IdentityURL = "not a url"
	require.Error(t, cfg.Validate())
}

func TestLoadConfigLayersOverDefaults(t *testing.T) {
	cfg, err := LoadConfig(map[string]any{
		"consumer_secret": testSecret,
		"identity_url":    "https://test.salesforce.com",
	})
	require.NoError(t, err)

	assert.Equal(t, testSecret, cfg.ConsumerSecret)
	assert.Equal(t, "https://test.salesforce.com", cfg.IdentityURL)
	assert.Equal(t, DefaultFormField, cfg.FormField)
	assert.Equal(t, DefaultDenyMessage, cfg.DenyMessage)
}

func TestLoadConfigRequiresSecret(t *testing.T) {
	_, err := LoadConfig(map[string]any{})
	require.Error(t, err)
}
