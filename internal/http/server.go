package http

import (
	"context"
	"net/http"
	"time"

	"github.com/sp1ral-dev/veridian/internal/observability/logger"
)

// Server envuelve http.Server con apagado ordenado.
type Server struct {
	srv *http.Server
}

// NewServer construye el servidor con timeouts sanos. read y write en
// cero caen a los defaults.
func NewServer(addr string, handler http.Handler, read, write time.Duration) *Server {
	if read <= 0 {
		read = 30 * time.Second
	}
	if write <= 0 {
		write = 30 * time.Second
	}
	return &Server{srv: &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       read,
		WriteTimeout:      write,
		IdleTimeout:       120 * time.Second,
	}}
}

// ListenAndServe bloquea sirviendo hasta Shutdown o error fatal.
func (s *Server) ListenAndServe() error {
	logger.L().Info("http server listening", logger.String("addr", s.srv.Addr))
	return s.srv.ListenAndServe()
}

// Shutdown drena conexiones en curso respetando el contexto.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
