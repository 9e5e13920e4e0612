// Package server provides HTTP routing, middleware, and the two catalog
// fronts: the JSON resource API and the XML payload-dispatch endpoint.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Handlers
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib
// handler interface and adds Routes, allowing a handler to encapsulate its
// own route definitions.
//
//   - [DispatchHandler] serves POST /ws: it unwraps an optional SOAP 1.1
//     envelope, hands the payload element to the dispatcher, and wraps the
//     response (or a Fault mapped from the error taxonomy) back up.
//   - [UsersHandler], [PlaylistsHandler], [SongsHandler] serve the JSON
//     resource API backed directly by the repositories.
//
// # Middleware
//
// [Logging] correlates request log lines with a generated request id.
// [RateLimit] applies a shared token bucket across all routes.
package server
