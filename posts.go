package classroom

import (
	"context"
	"net/http"

	"github.com/dmitrymomot/classroom/internal/messages"
	"github.com/dmitrymomot/classroom/internal/resource"
)

// Posts accesses /posts.
type Posts struct {
	c *resource.Client[Post]
}

// List returns posts. With opts.Search set it queries /posts/search
// instead and ignores paging.
func (p *Posts) List(ctx context.Context, opts ListOptions) Result[Page[Post]] {
	return p.c.List(ctx, opts)
}

// Search is List with only a search term.
func (p *Posts) Search(ctx context.Context, q string) Result[Page[Post]] {
	return p.c.List(ctx, ListOptions{Search: q})
}

// Get fetches one post.
func (p *Posts) Get(ctx context.Context, id ID) Result[Post] {
	return p.c.Get(ctx, string(id))
}

// Create publishes a post. Title, content and author are required.
func (p *Posts) Create(ctx context.Context, in PostInput) Result[Post] {
	return p.c.Create(ctx, in.fields())
}

// Update replaces a post.
func (p *Posts) Update(ctx context.Context, id ID, in PostInput) Result[Post] {
	return p.c.Update(ctx, string(id), in.fields())
}

// Delete removes a post.
func (p *Posts) Delete(ctx context.Context, id ID) Result[struct{}] {
	return p.c.Delete(ctx, string(id))
}

// Comment adds a comment to a post.
func (p *Posts) Comment(ctx context.Context, id ID, cm Comment) Result[Comment] {
	body := map[string]any{"text": cm.Text, "author": cm.Author}
	return resource.Invoke[Comment](ctx, p.c, http.MethodPost, string(id), "comments", body, messages.PostsComment)
}
