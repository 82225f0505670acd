// Package classroom is a client for the education blogging platform API.
//
// It keeps the signed-in session in a pluggable store, attaches the bearer
// token to every request, normalizes the API's inconsistent response shapes
// and turns every outcome into a [Result] instead of an error.
//
// # Quick Start
//
//	c, err := classroom.New(
//	    classroom.WithBaseURL("https://api.example.com"),
//	    classroom.WithStore(store.NewFile("session.json")),
//	    classroom.WithLanguage("pt-BR"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer c.Close()
//
//	c.Restore(ctx)
//	if !c.Session().IsAuthenticated() {
//	    if r := c.Login(ctx, email, password); !r.Success {
//	        log.Fatal(r.Error)
//	    }
//	}
//
//	posts := c.Posts.List(ctx, classroom.ListOptions{})
//	if !posts.Success {
//	    log.Println(posts.Error)
//	}
//
// # Results
//
// Every operation returns a [Result]. On failure Error holds a message
// ready for display: the server's own message when it sent one, otherwise a
// fixed per-operation message in the configured language. The underlying
// cause is available through Result.Err for errors.Is checks against the
// sentinels in the transport and session packages.
//
// # Sessions
//
// Login persists the token, the user record and the role under the keys
// auth_token, user_data and user_type. Any 401 response clears the token
// and the user record and resets the in-memory session. Restore rebuilds
// the session after a restart and degrades to signed out on corrupt or
// expired data.
//
// # Roles
//
// The API reports roles in Portuguese or English. "professor" and
// "teacher" map to [RoleTeacher]; anything else, including no role at all,
// maps to [RoleStudent].
package classroom
