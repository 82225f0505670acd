package classroom

import (
	"context"

	"github.com/dmitrymomot/classroom/internal/resource"
)

type people[T any] struct {
	c *resource.Client[T]
}

// List returns one page, page 1 and 10 items by default.
func (p people[T]) List(ctx context.Context, opts ListOptions) Result[Page[T]] {
	return p.c.List(ctx, opts)
}

// Get fetches one account.
func (p people[T]) Get(ctx context.Context, id ID) Result[T] {
	return p.c.Get(ctx, string(id))
}

// Create registers an account. Name, a valid email and a password of at
// least six characters are required.
func (p people[T]) Create(ctx context.Context, in PersonInput) Result[T] {
	return p.c.Create(ctx, in.fields())
}

// Update changes name and email. The password is never sent.
func (p people[T]) Update(ctx context.Context, id ID, in PersonInput) Result[T] {
	return p.c.Update(ctx, string(id), in.fields())
}

// Delete removes an account.
func (p people[T]) Delete(ctx context.Context, id ID) Result[struct{}] {
	return p.c.Delete(ctx, string(id))
}

// Teachers accesses /professores.
type Teachers struct{ people[Teacher] }

// Students accesses /alunos.
type Students struct{ people[Student] }
