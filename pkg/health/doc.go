// Package health runs dependency probes and exposes them over HTTP.
//
// [Run] executes a set of [Checks] concurrently and returns an aggregated
// [Response]; the CLI "doctor" command prints it. [LivenessHandler] and
// [ReadinessHandler] serve the same data for the development API server:
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//		"store": store.Healthcheck(st),
//	}))
//
// Handlers answer with JSON when the request asks for it via
// "Accept: application/json" or "?format=json", otherwise with plain text.
package health
