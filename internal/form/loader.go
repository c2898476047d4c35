package form

import (
	"context"
	"fmt"
	"io/fs"
	"path"

	"gopkg.in/yaml.v3"

	"github.com/takak2166/sitedata/internal/errors"
	"github.com/takak2166/sitedata/internal/logger"
	"github.com/takak2166/sitedata/internal/models"
)

// Sources are the three inputs of a bound form.
type Sources struct {
	Form     map[string]any
	Messages map[string]any
	Options  Options
}

// Paths locate the source files inside a filesystem. Messages and Options
// are optional.
type Paths struct {
	Form     string
	Messages string
	Options  string
}

// LocalePaths returns the conventional layout <dir>/<locale>/{<name>,messages,options}.yml.
func LocalePaths(dir, locale, name string) Paths {
	base := path.Join(dir, locale)
	return Paths{
		Form:     path.Join(base, name+".yml"),
		Messages: path.Join(base, "messages.yml"),
		Options:  path.Join(base, "options.yml"),
	}
}

// LoadSources reads and parses the YAML files named by p from fsys.
func LoadSources(fsys fs.FS, p Paths) (Sources, error) {
	var src Sources
	if p.Form == "" {
		return src, errors.Validation("form definition path is required")
	}
	if err := readYAML(fsys, p.Form, &src.Form); err != nil {
		return src, err
	}
	if p.Messages != "" {
		if err := readYAML(fsys, p.Messages, &src.Messages); err != nil {
			return src, err
		}
	}
	if p.Options != "" {
		if err := readYAML(fsys, p.Options, &src.Options); err != nil {
			return src, err
		}
	}
	return src, nil
}

func readYAML(fsys fs.FS, name string, out any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return errors.Wrap(errors.CategoryConfig, err, fmt.Sprintf("form: read %s", name))
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return errors.Wrap(errors.CategoryDecode, err, fmt.Sprintf("form: parse %s", name))
	}
	return nil
}

// Result is a bound form together with the chapters offered in it.
type Result struct {
	Chapters []models.Chapter      `json:"chapters"`
	Form     models.FormDefinition `json:"form"`
}

// Loader binds sign-up forms against the current chapter list.
type Loader struct {
	chapters ChapterSource
	hook     ChapterHook
}

// NewLoader creates a Loader. hook may be nil.
func NewLoader(chapters ChapterSource, hook ChapterHook) *Loader {
	return &Loader{chapters: chapters, hook: hook}
}

// Load fetches the chapters, keeps those accepting sign-ups, binds the form
// and injects the option lists.
func (l *Loader) Load(ctx context.Context, src Sources) (Result, error) {
	all, err := l.chapters.FetchChapters(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("form: fetch chapters: %w", err)
	}
	chapters := AcceptingSignups(all)

	def, err := Bind(src.Form, src.Messages)
	if err != nil {
		return Result{}, err
	}

	if l.hook != nil {
		chapters = l.hook(chapters)
	}

	def = InjectOptions(def, src.Options, Titles(chapters))

	logger.Debug("Bound sign-up form", map[string]interface{}{
		"fields":   len(def.Fields),
		"chapters": len(chapters),
	})

	return Result{Chapters: chapters, Form: def}, nil
}
