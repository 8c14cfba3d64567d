package canvas

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/goliatone/go-config/cfgx"
	goerrors "github.com/goliatone/go-errors"
)

// Config holds the settings of a canvas Authenticator.
type Config struct {
	ConsumerSecret string `koanf:"consumer_secret" mapstructure:"consumer_secret" json:"consumer_secret"`
	IdentityURL    string `koanf:"identity_url" mapstructure:"identity_url" json:"identity_url"`
	FormField      string `koanf:"form_field" mapstructure:"form_field" json:"form_field"`
	DenyMessage    string `koanf:"deny_message" mapstructure:"deny_message" json:"deny_message"`
}

// DefaultConfig returns a Config with every field but the secret filled in.
func DefaultConfig() Config {
	return Config{
		IdentityURL: DefaultIdentityURL,
		FormField:   DefaultFormField,
		DenyMessage: DefaultDenyMessage,
	}
}

// Validate checks that the config can build an Authenticator.
func (c Config) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.ConsumerSecret, validation.Required),
		validation.Field(&c.IdentityURL, validation.Required, is.URL),
		validation.Field(&c.FormField, validation.Required),
	)
	if err != nil {
		return goerrors.FromOzzoValidation(err, "invalid canvas config")
	}
	return nil
}

// LoadConfig builds a Config from a raw map such as one read by a koanf
// loader, layering it over DefaultConfig.
func LoadConfig(raw map[string]any) (Config, error) {
	return cfgx.Build[Config](raw,
		cfgx.WithDefaults(DefaultConfig()),
		cfgx.WithValidator[Config]((*Config).Validate),
	)
}

func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if strings.TrimSpace(c.IdentityURL) == "" {
		c.IdentityURL = defaults.IdentityURL
	}
	if strings.TrimSpace(c.FormField) == "" {
		c.FormField = defaults.FormField
	}
	if strings.TrimSpace(c.DenyMessage) == "" {
		c.DenyMessage = defaults.DenyMessage
	}
	return c
}
