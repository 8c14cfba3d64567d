package canvas

import (
	glog "github.com/goliatone/go-logger/glog"
)

// Logger is the structured logger contract used across the package.
type Logger = glog.Logger

// LoggerProvider hands out named loggers.
type LoggerProvider = glog.LoggerProvider

// ResolveLogger returns a provider and a logger scoped to name. An explicit
// logger wins over the provider, and a nil result falls back to a no-op logger.
func ResolveLogger(name string, provider LoggerProvider, logger Logger) (LoggerProvider, Logger) {
	if logger != nil {
		if provider == nil {
			provider = glog.ProviderFromLogger(logger)
		}
		return provider, glog.Ensure(logger)
	}

	if provider != nil {
		if named := provider.GetLogger(name); named != nil {
			return provider, named
		}
	}

	provider, resolved := glog.Resolve(name, provider, nil)
	return provider, glog.Ensure(resolved)
}
