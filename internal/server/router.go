package server

import (
	"net/http"
	"sort"
	"strings"

	"github.com/diewo77/recipe-api/internal/auth"
	"github.com/diewo77/recipe-api/internal/httpx"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// route maps one path to its handler per method. Other methods get a 405.
type route struct {
	path    string
	auth    bool
	limited bool
	methods map[string]http.HandlerFunc
}

func (s *Server) routeTable() []route {
	uh, rh, th, ih := s.users, s.recipes, s.tags, s.ingredients
	return []route{
		{path: "/user/create", limited: true, methods: map[string]http.HandlerFunc{
			http.MethodPost: uh.Create,
		}},
		{path: "/user/token", limited: true, methods: map[string]http.HandlerFunc{
			http.MethodPost: uh.Token,
		}},
		{path: "/user/me", auth: true, methods: map[string]http.HandlerFunc{
			http.MethodGet:   uh.Me,
			http.MethodPut:   uh.UpdateMe,
			http.MethodPatch: uh.UpdateMe,
		}},
		{path: "/recipe/recipes/{$}", auth: true, methods: map[string]http.HandlerFunc{
			http.MethodGet:  rh.List,
			http.MethodPost: rh.Create,
		}},
		{path: "/recipe/recipes/{id}/{$}", auth: true, methods: map[string]http.HandlerFunc{
			http.MethodGet:    rh.Get,
			http.MethodPut:    rh.Update,
			http.MethodPatch:  rh.Update,
			http.MethodDelete: rh.Delete,
		}},
		{path: "/recipe/tags/{$}", auth: true, methods: map[string]http.HandlerFunc{
			http.MethodGet: th.List,
		}},
		{path: "/recipe/tags/{id}/{$}", auth: true, methods: map[string]http.HandlerFunc{
			http.MethodGet:    th.Get,
			http.MethodPut:    th.Update,
			http.MethodPatch:  th.Update,
			http.MethodDelete: th.Delete,
		}},
		{path: "/recipe/ingredients/{$}", auth: true, methods: map[string]http.HandlerFunc{
			http.MethodGet: ih.List,
		}},
		{path: "/health", methods: map[string]http.HandlerFunc{
			http.MethodGet: s.health,
		}},
		{path: "/healthz", methods: map[string]http.HandlerFunc{
			http.MethodGet: s.healthz,
		}},
		{path: "/metrics", methods: map[string]http.HandlerFunc{
			http.MethodGet: promhttp.Handler().ServeHTTP,
		}},
	}
}

// setupRoutes registers "METHOD path" patterns plus a method-less fallback per path.
func (s *Server) setupRoutes() {
	for _, rt := range s.routeTable() {
		allowed := make([]string, 0, len(rt.methods))
		for method, h := range rt.methods {
			allowed = append(allowed, method)
			s.mux.Handle(method+" "+rt.path, s.wrap(rt, h))
		}
		sort.Strings(allowed)
		s.mux.Handle(rt.path, s.wrap(rt, methodNotAllowed(strings.Join(allowed, ", "))))
	}
	s.mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSONError(w, http.StatusNotFound, httpx.CodeNotFound, nil)
	})
}

// wrap applies the per-route middleware: metrics, then rate limit, then auth.
func (s *Server) wrap(rt route, h http.HandlerFunc) http.Handler {
	var next http.Handler = h
	if rt.auth {
		next = auth.Middleware(s.repo.Tokens)(auth.RequireAuth(next))
	}
	if rt.limited && s.limiter != nil {
		next = s.rateLimit(next)
	}
	return s.instrument(rt.path, next)
}

func methodNotAllowed(allow string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Allow", allow)
		httpx.JSONError(w, http.StatusMethodNotAllowed, httpx.CodeMethodNotAllowed, nil)
	}
}
