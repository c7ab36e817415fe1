package httpserver

import "net/http"

// Controller mounts named routes on a mux. Handlers that must see every path
// unchanged are passed to NewServer instead.
type Controller interface {
	AddRoutes(*http.ServeMux)
}
