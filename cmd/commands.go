package main

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/takak2166/sitedata/internal/config"
	"github.com/takak2166/sitedata/internal/content"
	"github.com/takak2166/sitedata/internal/form"
	"github.com/takak2166/sitedata/internal/graphql"
	"github.com/takak2166/sitedata/internal/logger"
	"github.com/takak2166/sitedata/internal/markdown"
	"github.com/takak2166/sitedata/internal/metrics"
)

// App carries what every command needs.
type App struct {
	cfg     config.Config
	content *content.Client
	out     io.Writer
}

// NewApp wires the GraphQL client, the markdown renderer and the metrics
// recorder into a content client.
func NewApp(cfg config.Config, reg prometheus.Registerer, out io.Writer) *App {
	gql := graphql.New(cfg.Endpoint,
		graphql.WithTimeout(cfg.Timeout),
		graphql.WithRecorder(metrics.NewPrometheusRecorder(reg)),
	)
	renderer := markdown.NewRenderer(markdown.WithSanitizer(cfg.SanitizeHTML))
	return &App{
		cfg:     cfg,
		content: content.New(gql, content.NewNormalizer(renderer)),
		out:     out,
	}
}

func (a *App) print(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type ChaptersCmd struct {
	Signups bool `help:"Only chapters that accept sign-ups"`
}

func (c *ChaptersCmd) Run(ctx context.Context, app *App) error {
	chapters, err := app.content.FetchChapters(ctx)
	if err != nil {
		return err
	}
	if c.Signups {
		chapters = form.AcceptingSignups(chapters)
	}
	return app.print(chapters)
}

type PagesCmd struct{}

func (c *PagesCmd) Run(ctx context.Context, app *App) error {
	pages, err := app.content.FetchPages(ctx)
	if err != nil {
		return err
	}
	return app.print(pages)
}

type PageCmd struct {
	Slug string `arg:"" help:"Page slug"`
}

func (c *PageCmd) Run(ctx context.Context, app *App) error {
	page, err := app.content.FetchPage(ctx, c.Slug)
	if err != nil {
		return err
	}
	return app.print(page)
}

type PostsCmd struct{}

func (c *PostsCmd) Run(ctx context.Context, app *App) error {
	posts, err := app.content.FetchPosts(ctx)
	if err != nil {
		return err
	}
	return app.print(posts)
}

type PostCmd struct {
	Slug string `arg:"" help:"Post slug without the blog/ prefix"`
}

func (c *PostCmd) Run(ctx context.Context, app *App) error {
	post, err := app.content.FetchPost(ctx, c.Slug)
	if err != nil {
		return err
	}
	return app.print(post)
}

type TagsCmd struct{}

func (c *TagsCmd) Run(ctx context.Context, app *App) error {
	tags, err := app.content.FetchTags(ctx)
	if err != nil {
		return err
	}
	return app.print(tags)
}

type JSONCmd struct {
	Title string `arg:"" help:"Title of the JSON entry"`
}

func (c *JSONCmd) Run(ctx context.Context, app *App) error {
	data, err := app.content.FetchJSON(ctx, c.Title)
	if err != nil {
		return err
	}
	return app.print(data)
}

type FormCmd struct {
	Dir    string `help:"Directory holding the form sources" default:"signup-form"`
	Locale string `help:"Locale sub-directory" default:"de"`
	Name   string `help:"Form definition file name without extension" default:"student"`
}

func (c *FormCmd) Run(ctx context.Context, app *App) error {
	src, err := form.LoadSources(os.DirFS(c.Dir), form.LocalePaths(".", c.Locale, c.Name))
	if err != nil {
		return err
	}

	var hook form.ChapterHook
	if app.cfg.IsDevelopment() {
		logger.Info("Development mode: overriding first sign-up chapter", map[string]interface{}{
			"title": app.cfg.DevChapterTitle,
		})
		hook = form.DevelopmentOverride(app.cfg.DevChapterTitle, app.cfg.DevChapterBaseID)
	}

	res, err := form.NewLoader(app.content, hook).Load(ctx, src)
	if err != nil {
		return err
	}
	return app.print(res)
}
