// Package markdown renders CMS markdown bodies to HTML and derives the
// plain-text form used for summaries and search indexing.
package markdown

import (
	"bytes"
	"regexp"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/takak2166/sitedata/internal/errors"
	"github.com/takak2166/sitedata/internal/models"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

var (
	ugcPolicyOnce sync.Once
	ugcPolicy     *bluemonday.Policy
)

// Renderer converts GitHub flavoured markdown to HTML.
// A zero Renderer is not usable; use NewRenderer.
type Renderer struct {
	md       goldmark.Markdown
	sanitize bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithSanitizer passes rendered HTML through a user-generated-content policy.
func WithSanitizer(enabled bool) Option {
	return func(r *Renderer) {
		r.sanitize = enabled
	}
}

// NewRenderer returns a Renderer. Raw HTML in bodies is kept as authored
// unless sanitising is enabled.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ToHTML renders src.
func (r *Renderer) ToHTML(src string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", errors.Wrap(errors.CategoryRender, err, "failed to render markdown")
	}
	out := buf.String()
	if r.sanitize {
		out = sanitizer().Sanitize(out)
	}
	return out, nil
}

// Render returns a copy of c whose Body is rendered HTML and whose PlainBody
// is derived from it. The bool is false when c has no body, in which case c
// is returned unchanged.
func (r *Renderer) Render(c models.Content) (models.Content, bool, error) {
	if c.Body == "" {
		return c, false, nil
	}
	body, err := r.ToHTML(c.Body)
	if err != nil {
		return c, false, err
	}
	return models.Content{Body: body, PlainBody: StripTags(body)}, true, nil
}

// StripTags removes everything that looks like a markup tag.
func StripTags(s string) string {
	return tagPattern.ReplaceAllString(s, "")
}

func sanitizer() *bluemonday.Policy {
	ugcPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")
		ugcPolicy = policy
	})
	return ugcPolicy
}
