package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/anoideaopen/introspection/core/logger"
	"github.com/anoideaopen/introspection/core/reflection"
	"github.com/anoideaopen/introspection/core/telemetry"
)

var ErrCfgBytesEmpty = errors.New("config bytes is empty")

// Settings is the JSON form of a registry configuration.
//
//	{
//	  "logLevel": "debug",
//	  "component": "reflection",
//	  "openPackages": ["time"],
//	  "tracing": {"endpoint": "otel-collector:4318", "serviceName": "inspector"}
//	}
type Settings struct {
	LogLevel     string   `json:"logLevel,omitempty"`
	Component    string   `json:"component,omitempty"`
	OpenPackages []string `json:"openPackages,omitempty"`
	Tracing      *Tracing `json:"tracing,omitempty"`
}

type Tracing struct {
	Endpoint    string `json:"endpoint"`
	ServiceName string `json:"serviceName"`
}

// FromBytes parses and validates JSON encoded settings.
func FromBytes(cfgBytes []byte) (*Settings, error) {
	if len(cfgBytes) == 0 {
		return nil, ErrCfgBytesEmpty
	}

	s := new(Settings)
	if err := json.Unmarshal(cfgBytes, s); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate checks the log level and the tracing section.
func (s *Settings) Validate() error {
	if s.LogLevel != "" {
		if _, err := logrus.ParseLevel(s.LogLevel); err != nil {
			return fmt.Errorf("validating log level: %w", err)
		}
	}
	if s.Tracing != nil && s.Tracing.Endpoint != "" && s.Tracing.ServiceName == "" {
		return errors.New("validating tracing: service name is empty")
	}
	return nil
}

// RegistryConfig turns the settings into a reflection.Config. It installs the
// trace provider when tracing is configured; the returned function stops it.
func (s *Settings) RegistryConfig(ctx context.Context) (reflection.Config, func(context.Context) error, error) {
	component := s.Component
	if component == "" {
		component = "reflection"
	}

	cfg := reflection.Config{Logger: logger.Component(component)}
	if s.LogLevel != "" {
		level, err := logrus.ParseLevel(s.LogLevel)
		if err != nil {
			return reflection.Config{}, nil, fmt.Errorf("parsing log level: %w", err)
		}
		l := logger.New(level)
		cfg.Logger = l.WithField("component", component)
	}

	if len(s.OpenPackages) > 0 {
		cfg.Open = reflection.OpenPackages(reflection.DefaultOpenPolicy, s.OpenPackages...)
	}

	shutdown := func(context.Context) error { return nil }
	if s.Tracing != nil && s.Tracing.Endpoint != "" {
		var err error
		shutdown, err = telemetry.InstallTraceProvider(ctx, s.Tracing.Endpoint, s.Tracing.ServiceName)
		if err != nil {
			return reflection.Config{}, nil, fmt.Errorf("installing trace provider: %w", err)
		}
		cfg.Tracer = telemetry.Tracer()
	}

	return cfg, shutdown, nil
}
