package classroom

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Dashboard is an overview of the platform for the signed-in user.
type Dashboard struct {
	Posts    Result[Page[Post]]
	Teachers Result[Page[Teacher]]
	Students Result[Page[Student]]
	Session  Session
}

// Dashboard loads the first page of posts and, for teachers, the first
// pages of teachers and students. The lists are fetched concurrently and
// each one fails independently.
func (c *Client) Dashboard(ctx context.Context, limit int) Dashboard {
	d := Dashboard{Session: c.session.Snapshot()}
	opts := ListOptions{Page: 1, Limit: limit}

	var g errgroup.Group
	g.Go(func() error {
		d.Posts = c.Posts.List(ctx, opts)
		return nil
	})
	if d.Session.Role.IsTeacher() {
		g.Go(func() error {
			d.Teachers = c.Teachers.List(ctx, opts)
			return nil
		})
		g.Go(func() error {
			d.Students = c.Students.List(ctx, opts)
			return nil
		})
	}
	_ = g.Wait()
	return d
}
