// Package serve runs a static file server over a built web root, with
// headers that keep browsers from caching artifacts between builds.
package serve

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/visualtopology/skadi-build/internal/logger"
)

// Config holds static server settings.
type Config struct {
	Host    string
	Port    int
	WebRoot string
}

// Handler serves files below webroot. Every response allows any origin,
// method and header, and forbids caching.
func Handler(webroot string) http.Handler {
	files := http.FileServer(http.Dir(webroot))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("%s %s", r.Method, r.URL.Path)
		setHeaders(w.Header())
		files.ServeHTTP(&headerWriter{ResponseWriter: w}, r)
	})
}

func setHeaders(h http.Header) {
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", "*")
	h.Set("Access-Control-Allow-Headers", "*")
	h.Set("Cache-Control", "no-store, no-cache, must-revalidate")
}

// headerWriter re-applies the fixed headers as the status is written;
// FileServer's error paths drop Cache-Control before they reply.
type headerWriter struct {
	http.ResponseWriter
	wroteHeader bool
}

func (w *headerWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.wroteHeader = true
		setHeaders(w.Header())
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *headerWriter) Write(p []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(p)
}

// Serve listens on cfg.Host:cfg.Port and serves cfg.WebRoot until ctx is
// cancelled, then shuts down gracefully. The landing URL is written to out.
func Serve(ctx context.Context, cfg Config, out io.Writer) error {
	info, err := os.Stat(cfg.WebRoot)
	if err != nil {
		return fmt.Errorf("web root: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("web root %s is not a directory", cfg.WebRoot)
	}

	lc := net.ListenConfig{}
	listener, err := lc.Listen(ctx, "tcp", net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)))
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	fmt.Fprintf(out, "serving %s at http://%s/index.html\n", cfg.WebRoot, net.JoinHostPort(cfg.Host, strconv.Itoa(port)))

	server := &http.Server{
		Handler:           Handler(cfg.WebRoot),
		ReadHeaderTimeout: 15 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
