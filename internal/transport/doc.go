// Package transport is the HTTP pipeline shared by every API call.
//
// A [Client] sends JSON requests to a fixed base URL with a fixed timeout.
// Cross-cutting behavior lives in [Middleware] decorators around the
// underlying http.RoundTripper, applied outermost first:
//
//   - request ID: tags each request with X-Request-ID and the context with
//     the same value for log correlation
//   - bearer: reads the persisted token from the store on every request
//     and sets the Authorization header when one exists
//   - classifier: turns failed exchanges into *Error values with a
//     [Category]; a 401 removes the persisted token and user record and
//     fires the OnUnauthorized hooks before the error reaches the caller
//
// Nothing is retried and no error is swallowed.
package transport
