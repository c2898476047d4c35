package content

import (
	"github.com/takak2166/sitedata/internal/errors"
	"github.com/takak2166/sitedata/internal/markdown"
	"github.com/takak2166/sitedata/internal/models"
)

// Slug prefixes must match the route namespaces of the site.
const (
	ChapterPrefix = "standorte/"
	PostPrefix    = "blog/"
)

// RawPage is a page item as returned by the pages query.
type RawPage struct {
	Title    string        `json:"title"`
	Subtitle string        `json:"subtitle"`
	Slug     string        `json:"slug"`
	Body     string        `json:"body"`
	TOC      bool          `json:"toc"`
	Caption  string        `json:"caption"`
	Cover    *models.Image `json:"cover"`
	Sys      struct {
		PublishedAt string `json:"publishedAt"`
	} `json:"sys"`
}

// RawPost is a post item as returned by the posts query.
type RawPost struct {
	Title  string         `json:"title"`
	Slug   string         `json:"slug"`
	Date   string         `json:"date"`
	Body   string         `json:"body"`
	Cover  *models.Image  `json:"cover"`
	Tags   *RawTagTitles  `json:"tags"`
	Author *models.Author `json:"author"`
}

// RawTagTitles is the nested tag relation of a post.
type RawTagTitles struct {
	Items []struct {
		Title string `json:"title"`
	} `json:"items"`
}

// RawTag is a tag item as returned by the tags query.
type RawTag struct {
	Title      string `json:"title"`
	LinkedFrom *struct {
		EntryCollection *struct {
			Total *int `json:"total"`
		} `json:"entryCollection"`
	} `json:"linkedFrom"`
	Icon *models.Image `json:"icon"`
}

// PrefixSlug namespaces slug. It is not idempotent; callers apply it once.
func PrefixSlug(slug, prefix string) string {
	return prefix + slug
}

// Normalizer reshapes raw query items into the records handed to pages.
type Normalizer struct {
	renderer *markdown.Renderer
}

// NewNormalizer creates a Normalizer. A nil renderer uses markdown defaults.
func NewNormalizer(renderer *markdown.Renderer) *Normalizer {
	if renderer == nil {
		renderer = markdown.NewRenderer()
	}
	return &Normalizer{renderer: renderer}
}

// Chapter returns c with its slug in the chapter namespace.
func (n *Normalizer) Chapter(c models.Chapter) models.Chapter {
	c.Slug = PrefixSlug(c.Slug, ChapterPrefix)
	return c
}

// ParseMarkdown renders c.Body. See markdown.Renderer.Render.
func (n *Normalizer) ParseMarkdown(c models.Content) (models.Content, bool, error) {
	return n.renderer.Render(c)
}

// Page renders the body of raw and lifts the publish date. Pages keep their slug.
func (n *Normalizer) Page(raw RawPage) (models.Page, error) {
	body, _, err := n.ParseMarkdown(models.Content{Body: raw.Body})
	if err != nil {
		return models.Page{}, err
	}
	return models.Page{
		Title:       raw.Title,
		Subtitle:    raw.Subtitle,
		Slug:        raw.Slug,
		Content:     body,
		TOC:         raw.TOC,
		Caption:     raw.Caption,
		Cover:       raw.Cover,
		PublishedAt: raw.Sys.PublishedAt,
	}, nil
}

// Post flattens the tag relation to titles, renders the body and
// namespaces the slug, in that order.
func (n *Normalizer) Post(raw RawPost) (models.Post, error) {
	tags := []string{}
	if raw.Tags != nil {
		for _, item := range raw.Tags.Items {
			tags = append(tags, item.Title)
		}
	}

	body, _, err := n.ParseMarkdown(models.Content{Body: raw.Body})
	if err != nil {
		return models.Post{}, err
	}

	return models.Post{
		Title:   raw.Title,
		Slug:    PrefixSlug(raw.Slug, PostPrefix),
		Date:    raw.Date,
		Content: body,
		Cover:   raw.Cover,
		Tags:    tags,
		Author:  raw.Author,
	}, nil
}

// Tag lifts linkedFrom.entryCollection.total to Total. A tag without that
// relation is rejected instead of defaulting to zero.
func (n *Normalizer) Tag(raw RawTag) (models.Tag, error) {
	if raw.LinkedFrom == nil || raw.LinkedFrom.EntryCollection == nil || raw.LinkedFrom.EntryCollection.Total == nil {
		return models.Tag{}, errors.New(errors.CategoryDecode, "tag without linkedFrom.entryCollection.total").With("tag", raw.Title)
	}
	return models.Tag{
		Title: raw.Title,
		Total: *raw.LinkedFrom.EntryCollection.Total,
		Icon:  raw.Icon,
	}, nil
}
