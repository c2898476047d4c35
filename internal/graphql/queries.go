package graphql

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/takak2166/sitedata/internal/errors"
)

// Query is a GraphQL document plus the operation name used in logs and metrics.
type Query struct {
	Name string
	Text string
}

const chaptersQuery = `{
  chapters: chapterCollection(where: { active: true }) {
    items {
      title
      slug
      acceptsSignups
      baseId
      coords {
        lat
        lng: lon
      }
    }
  }
}`

const pagesQuery = `{
  pages: pageCollection%s {
    items {
      title
      subtitle
      slug
      body
      toc
      caption
      cover {
        description
        url
        width
        height
      }
      sys {
        publishedAt
      }
    }
  }
}`

const postsQuery = `{
  posts: contentType2WKn6YEnZewu2ScCkus4AsCollection%s {
    items {
      title
      slug
      date
      body
      cover {
        description
        url
        width
        height
      }
      tags: tagsCollection {
        items {
          title
        }
      }
      author {
        name
        email
        url
        bio
        fieldOfStudy
        photo {
          title
          description
          url
        }
      }
    }
  }
}`

const jsonQuery = `{
  json: jsonCollection(where: {title: %s}) {
    items {
      data
    }
  }
}`

const tagsQuery = `{
  tags: contentType5KMiN6YPvi42IcqAuqmcQeCollection(order: title_ASC) {
    items {
      title
      linkedFrom {
        entryCollection {
          total
        }
      }
      icon {
        url
      }
    }
  }
}`

// ChaptersQuery selects all active chapters.
func ChaptersQuery() Query {
	return Query{Name: "chapters", Text: chaptersQuery}
}

// PagesQuery selects all pages, or only the page with slug when it is non-empty.
func PagesQuery(slug string) (Query, error) {
	where, err := whereSlug(slug)
	if err != nil {
		return Query{}, err
	}
	return Query{Name: "pages", Text: fmt.Sprintf(pagesQuery, where)}, nil
}

// PostsQuery selects all posts, or only the post with slug when it is non-empty.
func PostsQuery(slug string) (Query, error) {
	where, err := whereSlug(slug)
	if err != nil {
		return Query{}, err
	}
	return Query{Name: "posts", Text: fmt.Sprintf(postsQuery, where)}, nil
}

// TagsQuery selects all tags ordered by title with their reference count.
func TagsQuery() Query {
	return Query{Name: "tags", Text: tagsQuery}
}

// JSONQuery selects the JSON blobs titled title.
func JSONQuery(title string) (Query, error) {
	lit, err := StringLiteral(title)
	if err != nil {
		return Query{}, err
	}
	return Query{Name: "json", Text: fmt.Sprintf(jsonQuery, lit)}, nil
}

func whereSlug(slug string) (string, error) {
	if slug == "" {
		return "", nil
	}
	lit, err := StringLiteral(slug)
	if err != nil {
		return "", err
	}
	return "(where: {slug: " + lit + "})", nil
}

// StringLiteral encodes v as a quoted GraphQL string value. JSON string
// escapes are a subset of GraphQL's, so quotes, backslashes and control
// characters cannot terminate the literal.
func StringLiteral(v string) (string, error) {
	if !utf8.ValidString(v) {
		return "", errors.Validation("filter value is not valid UTF-8").With("value", fmt.Sprintf("%q", v))
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", errors.Wrap(errors.CategoryValidation, err, "failed to encode filter value")
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
