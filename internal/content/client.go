package content

import (
	"context"
	"encoding/json"

	"github.com/takak2166/sitedata/internal/errors"
	"github.com/takak2166/sitedata/internal/graphql"
	"github.com/takak2166/sitedata/internal/logger"
	"github.com/takak2166/sitedata/internal/models"
)

// Requester sends a GraphQL query and returns the "data" member of the response.
type Requester interface {
	Request(ctx context.Context, q graphql.Query) (json.RawMessage, error)
}

// Client fetches and normalizes content from the CMS
type Client struct {
	gql        Requester
	normalizer *Normalizer
}

// New creates a new content client
func New(gql Requester, normalizer *Normalizer) *Client {
	if normalizer == nil {
		normalizer = NewNormalizer(nil)
	}
	return &Client{gql: gql, normalizer: normalizer}
}

type collection[T any] struct {
	Items []T `json:"items"`
}

// fetch runs q and decodes data into a map of aliased collections. A nil
// map means the endpoint returned no data.
func fetch[T any](ctx context.Context, gql Requester, q graphql.Query) (map[string]*collection[T], error) {
	data, err := gql.Request(ctx, q)
	if err != nil {
		return nil, err
	}
	if data == nil {
		logger.Warn("GraphQL response carried no data", map[string]interface{}{
			"operation": q.Name,
		})
		return nil, nil
	}
	var out map[string]*collection[T]
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, errors.Wrap(errors.CategoryDecode, err, "failed to decode "+q.Name)
	}
	return out, nil
}

func items[T any](ctx context.Context, gql Requester, q graphql.Query, alias string) ([]T, error) {
	res, err := fetch[T](ctx, gql, q)
	if err != nil {
		return nil, err
	}
	if coll := res[alias]; coll != nil {
		return coll.Items, nil
	}
	return nil, nil
}

func first[T any](ctx context.Context, gql Requester, q graphql.Query, alias, key, value string) (T, error) {
	list, err := items[T](ctx, gql, q, alias)
	if err != nil {
		var zero T
		return zero, err
	}
	if len(list) == 0 {
		var zero T
		return zero, errors.NotFound("no "+alias+" entry matched").With(key, value)
	}
	return list[0], nil
}

func requireFilter(key, value string) error {
	if value == "" {
		return errors.Validation("empty filter value").With("field", key)
	}
	return nil
}

// FetchChapters returns all active chapters in API order.
func (c *Client) FetchChapters(ctx context.Context) ([]models.Chapter, error) {
	raw, err := items[models.Chapter](ctx, c.gql, graphql.ChaptersQuery(), "chapters")
	if err != nil {
		return nil, err
	}
	chapters := make([]models.Chapter, 0, len(raw))
	for _, ch := range raw {
		chapters = append(chapters, c.normalizer.Chapter(ch))
	}
	logger.Debug("Fetched chapters", map[string]interface{}{"count": len(chapters)})
	return chapters, nil
}

// FetchPage returns the page with slug.
func (c *Client) FetchPage(ctx context.Context, slug string) (models.Page, error) {
	if err := requireFilter("slug", slug); err != nil {
		return models.Page{}, err
	}
	q, err := graphql.PagesQuery(slug)
	if err != nil {
		return models.Page{}, err
	}
	raw, err := first[RawPage](ctx, c.gql, q, "pages", "slug", slug)
	if err != nil {
		return models.Page{}, err
	}
	return c.normalizer.Page(raw)
}

// FetchPages returns all pages in API order.
func (c *Client) FetchPages(ctx context.Context) ([]models.Page, error) {
	q, err := graphql.PagesQuery("")
	if err != nil {
		return nil, err
	}
	raw, err := items[RawPage](ctx, c.gql, q, "pages")
	if err != nil {
		return nil, err
	}
	pages := make([]models.Page, 0, len(raw))
	for _, r := range raw {
		p, err := c.normalizer.Page(r)
		if err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}
	logger.Debug("Fetched pages", map[string]interface{}{"count": len(pages)})
	return pages, nil
}

// FetchPost returns the post with slug. The slug is given without the blog prefix.
func (c *Client) FetchPost(ctx context.Context, slug string) (models.Post, error) {
	if err := requireFilter("slug", slug); err != nil {
		return models.Post{}, err
	}
	q, err := graphql.PostsQuery(slug)
	if err != nil {
		return models.Post{}, err
	}
	raw, err := first[RawPost](ctx, c.gql, q, "posts", "slug", slug)
	if err != nil {
		return models.Post{}, err
	}
	return c.normalizer.Post(raw)
}

// FetchPosts returns all posts in API order.
func (c *Client) FetchPosts(ctx context.Context) ([]models.Post, error) {
	q, err := graphql.PostsQuery("")
	if err != nil {
		return nil, err
	}
	raw, err := items[RawPost](ctx, c.gql, q, "posts")
	if err != nil {
		return nil, err
	}
	posts := make([]models.Post, 0, len(raw))
	for _, r := range raw {
		p, err := c.normalizer.Post(r)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	logger.Debug("Fetched posts", map[string]interface{}{"count": len(posts)})
	return posts, nil
}

// FetchTags returns all tags ordered by title.
func (c *Client) FetchTags(ctx context.Context) ([]models.Tag, error) {
	raw, err := items[RawTag](ctx, c.gql, graphql.TagsQuery(), "tags")
	if err != nil {
		return nil, err
	}
	tags := make([]models.Tag, 0, len(raw))
	for _, r := range raw {
		t, err := c.normalizer.Tag(r)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	logger.Debug("Fetched tags", map[string]interface{}{"count": len(tags)})
	return tags, nil
}

type rawJSON struct {
	Data json.RawMessage `json:"data"`
}

// FetchJSON returns the data of the JSON blob titled title. Interpreting
// the data is up to the caller.
func (c *Client) FetchJSON(ctx context.Context, title string) (json.RawMessage, error) {
	if err := requireFilter("title", title); err != nil {
		return nil, err
	}
	q, err := graphql.JSONQuery(title)
	if err != nil {
		return nil, err
	}
	blob, err := first[rawJSON](ctx, c.gql, q, "json", "title", title)
	if err != nil {
		return nil, err
	}
	return blob.Data, nil
}
