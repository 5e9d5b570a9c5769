// Package oauth runs the localhost endpoint the backend redirects to after a
// GitHub authorization, and opens the authorization page in a browser.
package oauth

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/ggus39/Habit-Coach/internal/dashboard"
	"github.com/ggus39/Habit-Coach/internal/logger"
)

// CallbackPath is the path the backend appends to its frontend URL.
const CallbackPath = "/dashboard"

// ErrClosed is returned by Wait after Shutdown.
var ErrClosed = errors.New("oauth: callback server closed")

// Server receives OAuth returns on a fixed local address.
type Server struct {
	ln     net.Listener
	srv    *http.Server
	events chan dashboard.Callback
	errs   chan error
	done   chan struct{}
}

// Start listens on addr and serves callbacks until Shutdown.
func Start(addr string) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("start callback listener: %w", err)
	}
	s := &Server{
		ln:     ln,
		events: make(chan dashboard.Callback, 4),
		errs:   make(chan error, 1),
		done:   make(chan struct{}),
	}
	mux := http.NewServeMux()
	mux.HandleFunc(CallbackPath, s.handleCallback)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		s.handleCallback(w, r)
	})
	s.srv = &http.Server{Handler: mux, ReadHeaderTimeout: readHeaderTimeout}

	go func() {
		defer close(s.done)
		if srvErr := s.srv.Serve(ln); srvErr != nil && !errors.Is(srvErr, http.ErrServerClosed) {
			s.errs <- srvErr
		}
	}()
	logger.Debug("oauth callback server listening", "addr", ln.Addr().String())
	return s, nil
}

// Addr returns the bound address.
func (s *Server) Addr() string {
	return s.ln.Addr().String()
}

// URL returns the callback URL for the bound address.
func (s *Server) URL() string {
	return "http://" + s.Addr() + CallbackPath
}

// Events delivers one value per marked callback request.
func (s *Server) Events() <-chan dashboard.Callback {
	return s.events
}

// Wait blocks for the next callback, a server error, or ctx.
func (s *Server) Wait(ctx context.Context) (dashboard.Callback, error) {
	select {
	case cb := <-s.events:
		return cb, nil
	case err := <-s.errs:
		return dashboard.Callback{}, fmt.Errorf("callback server error: %w", err)
	case <-s.done:
		return dashboard.Callback{}, ErrClosed
	case <-ctx.Done():
		return dashboard.Callback{}, ctx.Err()
	}
}

// Shutdown stops the server and waits for the serve loop to exit.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.srv.Shutdown(ctx)
	select {
	case <-s.done:
	case <-ctx.Done():
		if err == nil {
			err = ctx.Err()
		}
	}
	return err
}

// handleCallback forwards a marked request once and redirects to the same
// path without the query, so reloading the page does not fire again.
func (s *Server) handleCallback(w http.ResponseWriter, r *http.Request) {
	cb, clean, ok := dashboard.ConsumeCallback(r.URL)
	if !ok {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, callbackHTML) //nolint:errcheck
		return
	}
	select {
	case s.events <- cb:
		logger.Info("github authorization returned", "user", cb.User)
	default:
		logger.Warn("dropping github callback, previous one not consumed", "user", cb.User)
	}
	http.Redirect(w, r, clean.RequestURI(), http.StatusSeeOther)
}
