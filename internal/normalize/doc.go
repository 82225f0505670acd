// Package normalize converts between the remote API's payload conventions
// and the client's canonical ones.
//
// Reads go through two steps. [Unwrap] picks the payload out of either a
// {"data": x} envelope or a bare x, and [Decode] rewrites localized keys
// ("nome", "titulo", "tipo", ...) to canonical ones before decoding into Go
// types. Writes go through a [FieldMap], which renames canonical keys to
// the localized names the API expects.
//
// Everything here is a pure function over bytes and maps.
package normalize
