// Package app wires the components usersctl runs with: logger, telemetry,
// OpenTelemetry and the users client.
package app

import (
	"context"
	"errors"

	"github.com/luizaranda/go-users/pkg/config"
	"github.com/luizaranda/go-users/pkg/log"
	"github.com/luizaranda/go-users/pkg/otel"
	"github.com/luizaranda/go-users/pkg/telemetry"
	"github.com/luizaranda/go-users/pkg/transport/httpclient"
	"github.com/luizaranda/go-users/pkg/users"
)

const _serviceName = "usersctl"

// Application holds the components built from a config.Config.
type Application struct {
	Config config.Config
	Logger log.Logger
	Level  *log.AtomicLevel
	Tracer telemetry.Client
	Users  *users.Client

	otelShutdown otel.ShutdownFunc
}

// Option customizes the Application built by New.
type Option func(*options)

type options struct {
	logOptions  []log.Option
	userOptions []users.Option
}

// WithLogOptions passes opts to log.NewProductionLogger.
func WithLogOptions(opts ...log.Option) Option {
	return func(o *options) { o.logOptions = append(o.logOptions, opts...) }
}

// WithUsersOptions passes opts to users.NewClient, after the ones derived
// from the configuration.
func WithUsersOptions(opts ...users.Option) Option {
	return func(o *options) { o.userOptions = append(o.userOptions, opts...) }
}

// New builds an Application. The logger and telemetry client become the
// package defaults of log and telemetry. Close must be called once done.
func New(ctx context.Context, cfg config.Config, opts ...Option) (*Application, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	// OTel goes first, components below read the global providers.
	otelShutdown, err := startOTel(ctx, cfg.OTel)
	if err != nil {
		return nil, err
	}

	logger, level, err := newLogger(cfg, o.logOptions)
	if err != nil {
		_ = otelShutdown(ctx)
		return nil, err
	}

	tracer, err := telemetry.NewClient(telemetry.Config{
		ApplicationName: cfg.Telemetry.NewRelicAppName,
		NewRelicLicense: cfg.Telemetry.NewRelicLicense,
		DatadogAddress:  cfg.Telemetry.DatadogAddress,
	})
	if err != nil {
		_ = otelShutdown(ctx)
		return nil, err
	}

	userOpts := append([]users.Option{
		users.WithBaseURL(cfg.BaseURL),
		users.WithHTTPClientOptions(
			httpclient.WithTimeout(cfg.Timeout),
			httpclient.WithLogger(logger),
		),
	}, o.userOptions...)

	client, err := users.NewClient(userOpts...)
	if err != nil {
		_ = tracer.Close()
		_ = otelShutdown(ctx)
		return nil, err
	}

	log.DefaultLogger = logger
	telemetry.DefaultTracer = tracer

	return &Application{
		Config:       cfg,
		Logger:       logger,
		Level:        level,
		Tracer:       tracer,
		Users:        client,
		otelShutdown: otelShutdown,
	}, nil
}

// Context returns ctx carrying the application logger and tracer.
func (a *Application) Context(ctx context.Context) context.Context {
	return telemetry.Context(log.Context(ctx, a.Logger), a.Tracer)
}

// Close reports connection pool gauges and flushes every exporter.
func (a *Application) Close(ctx context.Context) error {
	reportConnPools(a.Tracer)

	err := errors.Join(
		a.otelShutdown(ctx),
		a.Tracer.Close(),
	)
	_ = a.Logger.Sync()

	return err
}

func newLogger(cfg config.Config, opts []log.Option) (log.Logger, *log.AtomicLevel, error) {
	lvl, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	if cfg.LogFormat == "console" {
		opts = append([]log.Option{log.WithConsoleEncoding()}, opts...)
	}

	level := log.NewAtomicLevelAt(lvl)
	return log.NewProductionLogger(&level, opts...), &level, nil
}

func startOTel(ctx context.Context, cfg config.OTel) (otel.ShutdownFunc, error) {
	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}

	return otel.Start(ctx, otel.Config{
		Endpoint:    cfg.Endpoint,
		ServiceName: _serviceName,
		SampleRatio: cfg.SampleRatio,
	})
}
