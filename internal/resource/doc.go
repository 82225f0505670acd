// Package resource implements list, get, create, update and delete for one
// API collection, parameterized by a [Spec].
//
// A [Client] validates input before any request, maps canonical field
// names to the API's localized ones, unwraps and canonicalizes responses,
// and reports every outcome as a result.Result. Failure messages prefer
// the server's own text and fall back to a per-operation message.
//
// Listing has two exclusive modes: with a search term the request goes to
// the search endpoint carrying only q; without one it goes to the
// collection endpoint with page and limit.
package resource
