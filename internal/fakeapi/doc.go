// Package fakeapi is an in-memory implementation of the platform API used
// by tests and by cmd/fakeapi for local development.
//
// It serves the auth, posts, professores and alunos endpoints with
// Portuguese field names, issues HS256 bearer tokens and can switch between
// data-enveloped and bare response bodies at runtime:
//
//	srv := fakeapi.New(fakeapi.WithEnvelope(true))
//	srv.AddUser("Ana", "ana@example.com", "secret1", fakeapi.RoleProfessor)
//	ts := httptest.NewServer(srv.Handler())
//	defer ts.Close()
//
// Reads of posts are public. Every other endpoint requires a valid token,
// and writes other than comments require the professor role.
package fakeapi
