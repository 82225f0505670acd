// Package session manages the client's authentication state.
//
// A [Manager] moves between two states. Login authenticates against the
// API and persists three keys to a store.Store: auth_token, user_data (the
// user record as JSON) and user_type (teacher or student). Logout removes
// them. Restore rebuilds the state from the store after a restart and
// treats missing, corrupt or expired data as signed out.
//
//	m := session.New(st, api, session.WithLogger(log))
//	m.Restore(ctx)
//	if res := m.Login(ctx, session.Credentials{Email: e, Password: p}); !res.Success {
//		fmt.Println(res.Error)
//	}
//
// Every operation reports failure through result.Result with a
// user-facing message; none returns a Go error or panics.
//
// When the API answers 401 the transport clears the persisted token and
// user record, and Invalidate is expected to be wired as its hook so the
// in-memory state drops at the same moment.
package session
