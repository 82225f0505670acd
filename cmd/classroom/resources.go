package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/dmitrymomot/classroom"
)

func subcommand(name string, args []string) (string, []string, error) {
	if len(args) == 0 {
		return "", nil, usageError{msg: name + ": missing subcommand"}
	}
	return args[0], args[1:], nil
}

func listFlags(name string) (*flag.FlagSet, *int, *int) {
	fs := newFlags(name)
	page := fs.Int("page", 0, "page number")
	limit := fs.Int("limit", 0, "items per page")
	return fs, page, limit
}

func cmdPosts(ctx context.Context, a *app, args []string) error {
	sub, args, err := subcommand("posts", args)
	if err != nil {
		return err
	}
	posts := a.client.Posts

	switch sub {
	case "list":
		fs, page, limit := listFlags("posts list")
		if err := parse(fs, args); err != nil {
			return err
		}
		return emit(a, posts.List(ctx, classroom.ListOptions{Page: *page, Limit: *limit}), printPosts)

	case "search":
		fs := newFlags("posts search")
		q := fs.String("q", "", "search term")
		if err := parse(fs, args); err != nil {
			return err
		}
		if err := required(fs, "q"); err != nil {
			return err
		}
		return emit(a, posts.Search(ctx, *q), printPosts)

	case "get":
		fs := newFlags("posts get")
		id := fs.String("id", "", "post id")
		html := fs.Bool("html", false, "render the content as HTML")
		if err := parse(fs, args); err != nil {
			return err
		}
		if err := required(fs, "id"); err != nil {
			return err
		}
		return emit(a, posts.Get(ctx, classroom.ID(*id)), func(w io.Writer, p classroom.Post) {
			printPost(w, p, *html)
		})

	case "create", "update":
		fs := newFlags("posts " + sub)
		id := fs.String("id", "", "post id (update only)")
		title := fs.String("title", "", "title")
		content := fs.String("content", "", "content, markdown allowed")
		author := fs.String("author", "", "author")
		if err := parse(fs, args); err != nil {
			return err
		}
		in := classroom.PostInput{Title: *title, Content: *content, Author: *author}
		if sub == "create" {
			return emit(a, posts.Create(ctx, in), func(w io.Writer, p classroom.Post) { printPost(w, p, false) })
		}
		if err := required(fs, "id"); err != nil {
			return err
		}
		return emit(a, posts.Update(ctx, classroom.ID(*id), in), func(w io.Writer, p classroom.Post) { printPost(w, p, false) })

	case "delete":
		fs := newFlags("posts delete")
		id := fs.String("id", "", "post id")
		if err := parse(fs, args); err != nil {
			return err
		}
		if err := required(fs, "id"); err != nil {
			return err
		}
		return emit(a, posts.Delete(ctx, classroom.ID(*id)), deleted(*id))

	case "comment":
		fs := newFlags("posts comment")
		id := fs.String("id", "", "post id")
		text := fs.String("text", "", "comment text")
		author := fs.String("author", "", "author, defaults to the signed-in user")
		if err := parse(fs, args); err != nil {
			return err
		}
		if err := required(fs, "id", "text"); err != nil {
			return err
		}
		if *author == "" {
			*author = a.client.Session().User().Name()
		}
		cm := classroom.Comment{Text: *text, Author: *author}
		return emit(a, posts.Comment(ctx, classroom.ID(*id), cm), func(w io.Writer, c classroom.Comment) {
			fmt.Fprintf(w, "commented as %s: %s\n", c.Author, c.Text)
		})
	}
	return usageError{msg: fmt.Sprintf("posts: unknown subcommand %q", sub)}
}

type peopleAPI[T any] interface {
	List(ctx context.Context, opts classroom.ListOptions) classroom.Result[classroom.Page[T]]
	Get(ctx context.Context, id classroom.ID) classroom.Result[T]
	Create(ctx context.Context, in classroom.PersonInput) classroom.Result[T]
	Update(ctx context.Context, id classroom.ID, in classroom.PersonInput) classroom.Result[T]
	Delete(ctx context.Context, id classroom.ID) classroom.Result[struct{}]
}

type profiler interface {
	Profile() classroom.Person
}

func peopleCommand[T profiler](name string, pick func(*classroom.Client) peopleAPI[T]) func(context.Context, *app, []string) error {
	return func(ctx context.Context, a *app, args []string) error {
		api := pick(a.client)
		sub, args, err := subcommand(name, args)
		if err != nil {
			return err
		}

		switch sub {
		case "list":
			fs, page, limit := listFlags(name + " " + sub)
			if err := parse(fs, args); err != nil {
				return err
			}
			return emit(a, api.List(ctx, classroom.ListOptions{Page: *page, Limit: *limit}), printPeople[T])

		case "get", "delete":
			fs := newFlags(name + " " + sub)
			id := fs.String("id", "", "account id")
			if err := parse(fs, args); err != nil {
				return err
			}
			if err := required(fs, "id"); err != nil {
				return err
			}
			if sub == "delete" {
				return emit(a, api.Delete(ctx, classroom.ID(*id)), deleted(*id))
			}
			return emit(a, api.Get(ctx, classroom.ID(*id)), printPerson[T])

		case "create", "update":
			fs := newFlags(name + " " + sub)
			id := fs.String("id", "", "account id (update only)")
			name := fs.String("name", "", "full name")
			email := fs.String("email", "", "email")
			password := fs.String("password", "", "password (create only)")
			if err := parse(fs, args); err != nil {
				return err
			}
			in := classroom.PersonInput{Name: *name, Email: *email, Password: *password}
			if sub == "create" {
				return emit(a, api.Create(ctx, in), printPerson[T])
			}
			if err := required(fs, "id"); err != nil {
				return err
			}
			return emit(a, api.Update(ctx, classroom.ID(*id), in), printPerson[T])
		}
		return usageError{msg: fmt.Sprintf("%s: unknown subcommand %q", name, sub)}
	}
}

func deleted(id string) func(io.Writer, struct{}) {
	return func(w io.Writer, _ struct{}) {
		fmt.Fprintf(w, "deleted %s\n", id)
	}
}
