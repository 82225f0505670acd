package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"maps"
	"slices"
	"time"

	"github.com/dmitrymomot/classroom"
	"github.com/dmitrymomot/classroom/pkg/health"
)

const (
	flushTimeout  = 2 * time.Second
	doctorTimeout = 5 * time.Second
)

type app struct {
	client  *classroom.Client
	out     io.Writer
	json    bool
	backend health.Checks
}

type command struct {
	run     func(ctx context.Context, a *app, args []string) error
	summary string
}

// usageError marks bad invocations, reported with exit status 2.
type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

// errFailed is returned after a failed Result; its message was the
// Result's own.
var errFailed = errors.New("request failed")

var commands map[string]command

func init() {
	commands = map[string]command{
		"login":     {run: cmdLogin, summary: "sign in and persist the session"},
		"logout":    {run: cmdLogout, summary: "clear the persisted session"},
		"whoami":    {run: cmdWhoami, summary: "show the signed-in user"},
		"register":  {run: cmdRegister, summary: "create an account"},
		"posts":     {run: cmdPosts, summary: "list|search|get|create|update|delete|comment posts"},
		"teachers":  {run: peopleCommand("teachers", func(c *classroom.Client) peopleAPI[classroom.Teacher] { return c.Teachers }), summary: "list|get|create|update|delete teachers"},
		"students":  {run: peopleCommand("students", func(c *classroom.Client) peopleAPI[classroom.Student] { return c.Students }), summary: "list|get|create|update|delete students"},
		"dashboard": {run: cmdDashboard, summary: "overview for the signed-in user"},
		"doctor":    {run: cmdDoctor, summary: "check the session store and the API"},
	}
}

func commandNames() []string {
	names := make([]string, 0, len(commands))
	for n := range commands {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

func newFlags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return usageError{msg: fmt.Sprintf("%s: %v", fs.Name(), err)}
	}
	return nil
}

func required(fs *flag.FlagSet, names ...string) error {
	for _, n := range names {
		if f := fs.Lookup(n); f == nil || f.Value.String() == "" {
			return usageError{msg: fmt.Sprintf("%s: -%s is required", fs.Name(), n)}
		}
	}
	return nil
}

// emit prints the data of a successful result or returns its message.
func emit[T any](a *app, r classroom.Result[T], text func(io.Writer, T)) error {
	if !r.Success {
		return fmt.Errorf("%w: %s", errFailed, r.Error)
	}
	if a.json {
		return writeJSON(a.out, r.Data)
	}
	text(a.out, r.Data)
	return nil
}

func cmdLogin(ctx context.Context, a *app, args []string) error {
	fs := newFlags("login")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := required(fs, "email", "password"); err != nil {
		return err
	}
	return emit(a, a.client.Login(ctx, *email, *password), func(w io.Writer, l classroom.Login) {
		fmt.Fprintf(w, "signed in as %s (%s)\n", displayName(l.User), l.Role)
	})
}

func cmdLogout(ctx context.Context, a *app, _ []string) error {
	a.client.Logout(ctx)
	if !a.json {
		fmt.Fprintln(a.out, "signed out")
	}
	return nil
}

func cmdWhoami(ctx context.Context, a *app, args []string) error {
	fs := newFlags("whoami")
	remote := fs.Bool("remote", false, "fetch the user record from the API")
	if err := parse(fs, args); err != nil {
		return err
	}

	if *remote {
		return emit(a, a.client.Me(ctx), printUser)
	}
	s := a.client.Session().Snapshot()
	if !s.Authenticated {
		return fmt.Errorf("%w: not signed in", errFailed)
	}
	if a.json {
		return writeJSON(a.out, s)
	}
	printUser(a.out, s.User)
	fmt.Fprintf(a.out, "role:  %s\n", s.Role)
	if claims, err := a.client.Session().Claims(); err == nil && !claims.ExpiresAt.IsZero() {
		fmt.Fprintf(a.out, "until: %s\n", claims.ExpiresAt.Local().Format(time.DateTime))
	}
	return nil
}

func cmdRegister(ctx context.Context, a *app, args []string) error {
	fs := newFlags("register")
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "password, at least 6 characters")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := required(fs, "name", "email", "password"); err != nil {
		return err
	}
	u := classroom.NewUser{Name: *name, Email: *email, Password: *password}
	return emit(a, a.client.Register(ctx, u), func(w io.Writer, u classroom.User) {
		fmt.Fprintf(w, "registered %s; sign in with `classroom login`\n", displayName(u))
	})
}

func cmdDashboard(ctx context.Context, a *app, args []string) error {
	fs := newFlags("dashboard")
	limit := fs.Int("limit", 5, "items per list")
	if err := parse(fs, args); err != nil {
		return err
	}
	if !a.client.Session().IsAuthenticated() {
		return fmt.Errorf("%w: not signed in", errFailed)
	}

	d := a.client.Dashboard(ctx, *limit)
	if a.json {
		return writeJSON(a.out, d)
	}
	fmt.Fprintf(a.out, "%s (%s)\n\n", displayName(d.Session.User), d.Session.Role)
	section(a.out, "Posts", d.Posts, printPosts)
	if d.Session.Role.IsTeacher() {
		section(a.out, "Teachers", d.Teachers, printPeople[classroom.Teacher])
		section(a.out, "Students", d.Students, printPeople[classroom.Student])
	}
	return nil
}

func section[T any](w io.Writer, title string, r classroom.Result[T], text func(io.Writer, T)) {
	fmt.Fprintf(w, "== %s ==\n", title)
	if !r.Success {
		fmt.Fprintf(w, "error: %s\n\n", r.Error)
		return
	}
	text(w, r.Data)
	fmt.Fprintln(w)
}

func cmdDoctor(ctx context.Context, a *app, _ []string) error {
	checks := a.client.Healthchecks()
	maps.Copy(checks, a.backend)
	resp := health.Run(ctx, checks, health.WithTimeout(doctorTimeout))
	if a.json {
		if err := writeJSON(a.out, resp); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(a.out, "api: %s\n", a.client.BaseURL())
		for _, name := range resp.Names() {
			c := resp.Checks[name]
			status := "ok"
			if c.Error != "" {
				status = "FAIL " + c.Error
			}
			fmt.Fprintf(a.out, "%-8s %-8s %s\n", name, c.Duration.Round(time.Millisecond), status)
		}
	}
	if !resp.Healthy() {
		return resp.Err()
	}
	return nil
}
