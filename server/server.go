// Package server assembles the HTTP API into a runnable server: it wires
// together the dao.Store, the service layer, and the chi router that
// dispatches requests to the api package's handlers.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dekarrin/parattice/server/api"
	"github.com/dekarrin/parattice/server/dao"
	"github.com/dekarrin/parattice/server/middle"
	"github.com/dekarrin/parattice/server/service"
	"github.com/go-chi/chi/v5"
)

// Server is a fully-assembled paraphrase-lattice HTTP server, ready to be
// passed to http.ListenAndServe (or embedded in an http.Server of the
// caller's own construction).
type Server struct {
	Config Config

	store  dao.Store
	router chi.Router
}

// New creates a new Server from cfg, connecting to the database it
// specifies and assembling the full route table.
func New(cfg Config) (*Server, error) {
	cfg = cfg.FillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	store, err := cfg.DB.Connect()
	if err != nil {
		return nil, fmt.Errorf("connect to DB: %w", err)
	}

	svc := service.New(store)

	a := api.API{
		Backend:      svc,
		UnauthDelay:  cfg.UnauthDelay(),
		Secret:       cfg.TokenSecret,
		AdminKeyHash: cfg.AdminKeyHash,
	}

	srv := &Server{Config: cfg, store: store}
	srv.router = buildRouter(a)
	return srv, nil
}

func buildRouter(a api.API) chi.Router {
	r := chi.NewRouter()
	r.Use(middle.DontPanic())

	r.Route(api.PathPrefix, func(r chi.Router) {
		r.Post("/auth/token", a.HTTPAuthToken())

		r.Route("/dictionaries", func(r chi.Router) {
			r.Get("/", a.HTTPGetAllDictionaries())

			r.Group(func(r chi.Router) {
				r.Use(middle.RequireAuth(a.Secret, a.UnauthDelay))
				r.Post("/", a.HTTPCreateDictionary())
			})

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", a.HTTPGetDictionary())
				r.Post("/lattices", a.HTTPBuildLattice())
				r.Post("/lattices/search", a.HTTPSearchLattice())

				r.Group(func(r chi.Router) {
					r.Use(middle.RequireAuth(a.Secret, a.UnauthDelay))
					r.Put("/", a.HTTPUpdateDictionary())
					r.Delete("/", a.HTTPDeleteDictionary())
				})
			})
		})
	})

	return r
}

// ServeHTTP implements http.Handler, allowing a Server to be used directly
// as the handler for an http.Server.
func (s *Server) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	s.router.ServeHTTP(w, req)
}

// Close releases the Server's underlying database connection.
func (s *Server) Close() error {
	return s.store.Close()
}

// ListenAndServe starts serving HTTP requests on addr. It blocks until the
// server shuts down or the given context is canceled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpSrv := &http.Server{
		Addr:    addr,
		Handler: s,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return httpSrv.Shutdown(context.Background())
	}
}
