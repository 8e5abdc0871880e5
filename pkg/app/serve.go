package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/luizaranda/go-users/pkg/log"
)

var (
	// shutdownTimeout bounds graceful shutdowns started by Serve.
	shutdownTimeout = 5 * time.Second

	// readHeaderTimeout applies when the configuration sets no timeout.
	readHeaderTimeout = 10 * time.Second
)

// Serve serves handler on ln until ctx is done or the process receives
// SIGINT or SIGTERM, then shuts the server down gracefully.
func (a *Application) Serve(ctx context.Context, ln net.Listener, handler http.Handler) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	headerTimeout := a.Config.Timeout
	if headerTimeout == 0 {
		headerTimeout = readHeaderTimeout
	}

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: headerTimeout,
		BaseContext:       func(net.Listener) context.Context { return a.Context(context.Background()) },
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	a.Logger.Info("running", log.String("address", ln.Addr().String()))

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
