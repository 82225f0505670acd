package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dmitrymomot/classroom"
)

const excerptLen = 60

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func displayName(u classroom.User) string {
	switch {
	case u.Name() != "" && u.Email() != "":
		return fmt.Sprintf("%s <%s>", u.Name(), u.Email())
	case u.Name() != "":
		return u.Name()
	default:
		return u.Email()
	}
}

func printUser(w io.Writer, u classroom.User) {
	fmt.Fprintf(w, "id:    %s\n", u.ID())
	fmt.Fprintf(w, "name:  %s\n", u.Name())
	fmt.Fprintf(w, "email: %s\n", u.Email())
}

func printPosts(w io.Writer, p classroom.Page[classroom.Post]) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tAUTHOR\tDATE\tEXCERPT")
	for _, post := range p.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", post.ID, post.Title, post.Author, date(post.CreatedAt), post.Excerpt(excerptLen))
	}
	_ = tw.Flush()
	printPagination(w, p.Pagination, len(p.Items))
}

func printPost(w io.Writer, p classroom.Post, html bool) {
	fmt.Fprintf(w, "%s\n", p.Title)
	fmt.Fprintf(w, "by %s, %s (id %s)\n\n", p.Author, date(p.CreatedAt), p.ID)
	if html {
		out, err := p.HTML()
		if err == nil {
			fmt.Fprintln(w, out)
			return
		}
	}
	fmt.Fprintln(w, p.Content)
}

func printPeople[T profiler](w io.Writer, p classroom.Page[T]) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL")
	for _, item := range p.Items {
		pr := item.Profile()
		fmt.Fprintf(tw, "%s\t%s\t%s\n", pr.ID, pr.Name, pr.Email)
	}
	_ = tw.Flush()
	printPagination(w, p.Pagination, len(p.Items))
}

func printPerson[T profiler](w io.Writer, v T) {
	pr := v.Profile()
	fmt.Fprintf(w, "id:    %s\n", pr.ID)
	fmt.Fprintf(w, "name:  %s\n", pr.Name)
	fmt.Fprintf(w, "email: %s\n", pr.Email)
}

func printPagination(w io.Writer, p *classroom.Pagination, n int) {
	if p == nil {
		fmt.Fprintf(w, "%d item(s)\n", n)
		return
	}
	fmt.Fprintf(w, "page %d of %d, %d item(s) total\n", p.CurrentPage, p.TotalPages, p.TotalItems)
	if p.HasNext() {
		fmt.Fprintf(w, "next: -page %d\n", p.CurrentPage+1)
	}
}

func date(t classroom.Timestamp) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(time.DateOnly)
}
