// Command classroom is a terminal client for the education platform API.
//
// Usage:
//
//	classroom [-json] <command> [flags]
//
// Commands:
//
//	login -email E -password P     sign in and persist the session
//	logout                         clear the persisted session
//	whoami [-remote]               show the signed-in user
//	register -name N -email E -password P
//	posts list|search|get|create|update|delete|comment
//	teachers list|get|create|update|delete
//	students list|get|create|update|delete
//	dashboard [-limit N]           posts, and for teachers the people lists
//	doctor                         check the session store and the API
//
// Configuration comes from the environment or a .env file: CLASSROOM_API_URL,
// CLASSROOM_TIMEOUT, CLASSROOM_STORE (file|memory|redis|postgres),
// CLASSROOM_STORE_PATH, REDIS_URL, DATABASE_CONN_URL, CLASSROOM_LANG,
// SENTRY_DSN and LOG_LEVEL.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/getsentry/sentry-go"

	"github.com/dmitrymomot/classroom"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("classroom", flag.ContinueOnError)
	fs.SetOutput(stderr)
	asJSON := fs.Bool("json", false, "print results as JSON")
	fs.Usage = func() { usage(stderr, fs) }
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	name, rest := fs.Arg(0), fs.Args()[1:]
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n", name)
		fs.Usage()
		return 2
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(stderr, "configuration:", err)
		return 1
	}
	log := newLogger(cfg)
	defer sentry.Flush(flushTimeout)

	be, err := openStore(ctx, cfg, log)
	if err != nil {
		fmt.Fprintln(stderr, "session store:", err)
		return 1
	}
	defer func() { _ = be.release(context.WithoutCancel(ctx)) }()

	client, err := classroom.New(
		classroom.WithBaseURL(cfg.APIURL),
		classroom.WithTimeout(cfg.Timeout),
		classroom.WithStore(be.store),
		classroom.WithLogger(log),
		classroom.WithLanguage(cfg.Lang),
	)
	if err != nil {
		fmt.Fprintln(stderr, "client:", err)
		return 1
	}
	defer client.Close()

	a := &app{client: client, out: stdout, json: *asJSON, backend: be.checks()}
	client.Restore(ctx)

	if err := cmd.run(ctx, a, rest); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, err)
		var u usageError
		if errors.As(err, &u) {
			return 2
		}
		return 1
	}
	return 0
}

func usage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "usage: classroom [-json] <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "commands:")
	for _, name := range commandNames() {
		fmt.Fprintf(w, "  %-10s %s\n", name, commands[name].summary)
	}
	fmt.Fprintln(w)
	fs.PrintDefaults()
}
