package server

import (
	"net/http"
)

// BasicRouter routes catalog traffic: the tagged-document dispatch endpoint
// and the JSON resource handlers all register themselves through it. It layers
// middleware over an [http.ServeMux], relying on the mux's method-qualified
// patterns ("POST /ws", "GET /users/{id}") for method filtering.
type BasicRouter struct {
	mux         *http.ServeMux
	middlewares []Middleware
}

func NewBasicRouter() *BasicRouter {
	return &BasicRouter{
		mux:         http.NewServeMux(),
		middlewares: []Middleware{},
	}
}

// Use appends middleware to the stack. Middleware registered here wraps every
// handler added afterwards, e.g. request logging and rate limiting.
func (r *BasicRouter) Use(middleware ...Middleware) {
	r.middlewares = append(r.middlewares, middleware...)
}

// Handler registers a catalog [Handler]: every pattern from [Handler.Routes]
// is bound to it, wrapped in the current middleware stack.
func (r *BasicRouter) Handler(handler Handler) {
	wrapped := r.apply(handler)

	for _, route := range handler.Routes() {
		r.mux.Handle(route, wrapped)
	}
}

// ServeHTTP implements [http.Handler] for the entire router.
func (r *BasicRouter) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// apply wraps a handler in the middleware stack, last added innermost, so
// requests pass through middleware in registration order.
func (r *BasicRouter) apply(handler http.Handler) http.Handler {
	wrapped := handler

	for i := len(r.middlewares) - 1; i >= 0; i-- {
		wrapped = r.middlewares[i](wrapped)
	}

	return wrapped
}
