package resource

import (
	"github.com/dmitrymomot/classroom/internal/normalize"
	"github.com/dmitrymomot/classroom/pkg/validator"
)

// Op names a resource operation.
type Op string

const (
	OpList   Op = "list"
	OpGet    Op = "get"
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Spec describes one API collection.
type Spec struct {
	// Rules returns pre-flight checks for a write. Nil means no checks.
	Rules func(op Op, fields map[string]any) []validator.Rule

	// Name selects the fallback messages: errors.<Name>.<op>.
	Name       string
	Path       string
	SearchPath string

	CreateFields normalize.FieldMap
	UpdateFields normalize.FieldMap

	// Paginated collections always receive page and limit.
	Paginated bool
}

const minPasswordLen = 6

var (
	// Posts is /posts with its search endpoint.
	Posts = Spec{
		Name:         "posts",
		Path:         "/posts",
		SearchPath:   "/posts/search",
		CreateFields: normalize.Fields(normalize.Title, normalize.Content, normalize.Author),
		UpdateFields: normalize.Fields(normalize.Title, normalize.Content, normalize.Author),
		Rules:        postRules,
	}

	// Teachers is /professores.
	Teachers = Spec{
		Name:         "teachers",
		Path:         "/professores",
		Paginated:    true,
		CreateFields: normalize.Fields(normalize.Name, normalize.Email, normalize.Password),
		UpdateFields: normalize.Fields(normalize.Name, normalize.Email),
		Rules:        personRules,
	}

	// Students is /alunos.
	Students = Spec{
		Name:         "students",
		Path:         "/alunos",
		Paginated:    true,
		CreateFields: normalize.Fields(normalize.Name, normalize.Email, normalize.Password),
		UpdateFields: normalize.Fields(normalize.Name, normalize.Email),
		Rules:        personRules,
	}
)

func postRules(_ Op, fields map[string]any) []validator.Rule {
	return []validator.Rule{
		validator.RequiredString("title", normalize.LookupString(fields, normalize.Title)),
		validator.RequiredString("content", normalize.LookupString(fields, normalize.Content)),
		validator.RequiredString("author", normalize.LookupString(fields, normalize.Author)),
	}
}

func personRules(op Op, fields map[string]any) []validator.Rule {
	email := normalize.LookupString(fields, normalize.Email)
	rules := []validator.Rule{
		validator.RequiredString("name", normalize.LookupString(fields, normalize.Name)),
		validator.Email("email", email),
	}
	if email == "" {
		rules[1] = validator.RequiredString("email", email)
	}
	if op == OpCreate {
		rules = append(rules, validator.MinLenString("password", normalize.LookupString(fields, normalize.Password), minPasswordLen))
	}
	return rules
}
