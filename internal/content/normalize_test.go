package content

import (
	"encoding/json"
	"regexp"
	"strings"
	"testing"

	"github.com/takak2166/sitedata/internal/errors"
	"github.com/takak2166/sitedata/internal/models"
)

func TestPrefixSlug(t *testing.T) {
	tests := []struct {
		name     string
		slug     string
		prefix   string
		expected string
	}{
		{name: "Chapter", slug: "berlin", prefix: ChapterPrefix, expected: "standorte/berlin"},
		{name: "Post", slug: "sommerfest", prefix: PostPrefix, expected: "blog/sommerfest"},
		{name: "Empty slug", slug: "", prefix: PostPrefix, expected: "blog/"},
		{name: "Applied twice is not idempotent", slug: "blog/x", prefix: PostPrefix, expected: "blog/blog/x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PrefixSlug(tt.slug, tt.prefix); got != tt.expected {
				t.Errorf("PrefixSlug() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestNormalizerChapterDoesNotMutateInput(t *testing.T) {
	n := NewNormalizer(nil)
	in := models.Chapter{Title: "Berlin", Slug: "berlin"}

	out := n.Chapter(in)
	if out.Slug != "standorte/berlin" {
		t.Errorf("expected prefixed slug, got %q", out.Slug)
	}
	if in.Slug != "berlin" {
		t.Errorf("input slug changed to %q", in.Slug)
	}
}

func TestNormalizerPost(t *testing.T) {
	var raw RawPost
	err := json.Unmarshal([]byte(`{
		"title": "Sommerfest",
		"slug": "sommerfest",
		"date": "2021-07-01",
		"body": "Wir *feiern* <b>gemeinsam</b>.",
		"tags": {"items": [{"title": "a"}, {"title": "b"}]},
		"author": {"name": "Kim", "fieldOfStudy": "Physik"}
	}`), &raw)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	post, err := NewNormalizer(nil).Post(raw)
	if err != nil {
		t.Fatalf("Post() error = %v", err)
	}
	if strings.Join(post.Tags, ",") != "a,b" {
		t.Errorf("expected tags [a b], got %v", post.Tags)
	}
	if post.Slug != "blog/sommerfest" {
		t.Errorf("expected prefixed slug, got %q", post.Slug)
	}
	if !strings.Contains(post.Body, "<em>feiern</em>") {
		t.Errorf("expected rendered body, got %q", post.Body)
	}
	if tagPatternMatches(post.PlainBody) {
		t.Errorf("plain body contains markup: %q", post.PlainBody)
	}
	if !strings.Contains(post.PlainBody, "Wir feiern gemeinsam.") {
		t.Errorf("unexpected plain body: %q", post.PlainBody)
	}
	if post.Author == nil || post.Author.FieldOfStudy != "Physik" {
		t.Errorf("expected author to be kept, got %+v", post.Author)
	}
}

func TestNormalizerPostWithoutTagsOrBody(t *testing.T) {
	post, err := NewNormalizer(nil).Post(RawPost{Title: "Leer", Slug: "leer"})
	if err != nil {
		t.Fatalf("Post() error = %v", err)
	}
	if post.Tags == nil || len(post.Tags) != 0 {
		t.Errorf("expected empty tag list, got %#v", post.Tags)
	}
	if post.Body != "" || post.PlainBody != "" {
		t.Errorf("expected no body, got %+v", post.Content)
	}
	if post.Slug != "blog/leer" {
		t.Errorf("expected prefixed slug, got %q", post.Slug)
	}
}

func TestNormalizerTag(t *testing.T) {
	var raw RawTag
	if err := json.Unmarshal([]byte(`{"title":"Mathe","linkedFrom":{"entryCollection":{"total":7}},"icon":{"url":"https://cdn.example/m.svg"}}`), &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	tag, err := NewNormalizer(nil).Tag(raw)
	if err != nil {
		t.Fatalf("Tag() error = %v", err)
	}
	if tag.Total != 7 {
		t.Errorf("expected total 7, got %d", tag.Total)
	}

	encoded, err := json.Marshal(tag)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var keys map[string]any
	if err := json.Unmarshal(encoded, &keys); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := keys["linkedFrom"]; ok {
		t.Errorf("normalized tag must not carry linkedFrom: %s", encoded)
	}
	if keys["total"] != float64(7) {
		t.Errorf("expected total key, got %s", encoded)
	}
}

func TestNormalizerTagWithoutCountIsRejected(t *testing.T) {
	tests := map[string]string{
		"no relation":   `{"title":"x"}`,
		"no collection": `{"title":"x","linkedFrom":{}}`,
		"no total":      `{"title":"x","linkedFrom":{"entryCollection":{}}}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			var raw RawTag
			if err := json.Unmarshal([]byte(body), &raw); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			_, err := NewNormalizer(nil).Tag(raw)
			if !errors.HasCategory(err, errors.CategoryDecode) {
				t.Errorf("expected decode error, got %v", err)
			}
		})
	}
}

func TestNormalizerPage(t *testing.T) {
	page, err := NewNormalizer(nil).Page(RawPage{
		Title: "Impressum",
		Slug:  "impressum",
		Body:  "## Kontakt",
		Sys: struct {
			PublishedAt string `json:"publishedAt"`
		}{PublishedAt: "2021-01-01T00:00:00Z"},
	})
	if err != nil {
		t.Fatalf("Page() error = %v", err)
	}
	if page.Slug != "impressum" {
		t.Errorf("pages keep their slug, got %q", page.Slug)
	}
	if page.PublishedAt != "2021-01-01T00:00:00Z" {
		t.Errorf("expected publishedAt, got %q", page.PublishedAt)
	}
	if strings.TrimSpace(page.PlainBody) != "Kontakt" {
		t.Errorf("unexpected plain body %q", page.PlainBody)
	}
}

var markup = regexp.MustCompile(`<[^>]*>`)

func tagPatternMatches(s string) bool {
	return markup.MatchString(s)
}
