package i18n

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// WithYAMLDir loads every {lang}/{namespace}.yaml (or .yml) file under the
// root of fsys.
//
//	en/errors.yaml
//	pt/errors.yaml
func WithYAMLDir(fsys fs.FS) Option {
	return func(c *Catalog) error {
		return fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			ext := strings.ToLower(path.Ext(p))
			if ext != ".yaml" && ext != ".yml" {
				return nil
			}

			dir := path.Dir(p)
			if dir == "." {
				return fmt.Errorf("%w: %q is not inside a language directory", ErrInvalidFile, p)
			}

			data, err := fs.ReadFile(fsys, p)
			if err != nil {
				return fmt.Errorf("i18n: read %q: %w", p, err)
			}
			var tree map[string]any
			if err := yaml.Unmarshal(data, &tree); err != nil {
				return fmt.Errorf("%w: %q: %s", ErrInvalidFile, p, err)
			}

			c.add(path.Base(dir), strings.TrimSuffix(path.Base(p), path.Ext(p)), tree)
			return nil
		})
	}
}
