package render

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"seohead/internal/domain/site"
	"time"
)

//go:embed templates/*.tmpl
var builtinTemplates embed.FS

const (
	pageTemplate     = "page.tmpl"
	notFoundTemplate = "404.tmpl"
)

type TemplateRenderer struct {
	tpl *template.Template
}

// NewTemplateRenderer parses the built-in layouts and then any *.tmpl files
// in themeDir, so a theme file replaces the built-in template of the same
// name. An empty themeDir uses the built-in layouts only.
func NewTemplateRenderer(themeDir string) (*TemplateRenderer, error) {
	tpl, err := template.New("").Funcs(templateFuncs()).ParseFS(builtinTemplates, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse builtin templates: %w", err)
	}
	if themeDir != "" {
		matches, err := filepath.Glob(filepath.Join(themeDir, "*.tmpl"))
		if err != nil {
			return nil, err
		}
		if len(matches) > 0 {
			if tpl, err = tpl.ParseFiles(matches...); err != nil {
				return nil, fmt.Errorf("parse theme %s: %w", themeDir, err)
			}
		}
	}
	return &TemplateRenderer{tpl: tpl}, nil
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"date": func(t interface{}, layout string) string {
			switch v := t.(type) {
			case nil:
				return ""
			case string:
				return v
			case time.Time:
				if v.IsZero() {
					return ""
				}
				return v.Format(layout)
			case interface{ Format(string) string }:
				return v.Format(layout)
			default:
				return ""
			}
		},
	}
}

// RenderPage executes the layout named by the page's front matter when the
// renderer knows it, the 404 layout for the not-found route, and page.tmpl
// otherwise.
func (r *TemplateRenderer) RenderPage(ctx context.Context, view PageView) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.exec(r.layoutFor(view), view)
}

func (r *TemplateRenderer) layoutFor(view PageView) string {
	if l := view.Meta.Layout; l != "" && r.tpl.Lookup(l+".tmpl") != nil {
		return l + ".tmpl"
	}
	if view.Route.Kind == site.RouteNotFound {
		return notFoundTemplate
	}
	return pageTemplate
}

func (r *TemplateRenderer) exec(name string, data interface{}) ([]byte, error) {
	t := r.tpl.Lookup(name)
	if t == nil {
		return nil, fmt.Errorf("template %s not found", name)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// CheckTheme reports whether themeDir parses on top of the built-in layouts.
// A missing directory is an error; a directory without templates is not.
func CheckTheme(themeDir string) error {
	st, err := os.Stat(themeDir)
	if err != nil {
		return err
	}
	if !st.IsDir() {
		return fmt.Errorf("theme %s: %w", themeDir, errors.New("not a directory"))
	}
	_, err = NewTemplateRenderer(themeDir)
	return err
}

// BuiltinTemplate returns the source of a built-in layout so it can be used as
// the starting point of a theme.
func BuiltinTemplate(name string) ([]byte, error) {
	return fs.ReadFile(builtinTemplates, "templates/"+name)
}
