package models

// Coords is a chapter's map position.
type Coords struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Chapter represents a local chapter (location) of the organisation
type Chapter struct {
	Title          string `json:"title"`
	Slug           string `json:"slug"`
	Coords         Coords `json:"coords"`
	AcceptsSignups bool   `json:"acceptsSignups"`
	BaseID         string `json:"baseId,omitempty"`
}

// Image is an asset reference as delivered by the CMS.
type Image struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url"`
	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
}

// Content holds a markdown body and the two forms derived from it.
// PlainBody is always derived from Body and never set on its own.
type Content struct {
	Body      string `json:"body,omitempty"`
	PlainBody string `json:"plainBody,omitempty"`
}

// Page represents a CMS page
type Page struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	Slug     string `json:"slug"`
	Content
	TOC         bool   `json:"toc"`
	Caption     string `json:"caption,omitempty"`
	Cover       *Image `json:"cover,omitempty"`
	PublishedAt string `json:"publishedAt,omitempty"`
}

// Author of a blog post
type Author struct {
	Name         string `json:"name"`
	Email        string `json:"email,omitempty"`
	URL          string `json:"url,omitempty"`
	Bio          string `json:"bio,omitempty"`
	FieldOfStudy string `json:"fieldOfStudy,omitempty"`
	Photo        *Image `json:"photo,omitempty"`
}

// Post represents a blog post
type Post struct {
	Title string `json:"title"`
	Slug  string `json:"slug"`
	Date  string `json:"date,omitempty"`
	Content
	Cover  *Image   `json:"cover,omitempty"`
	Tags   []string `json:"tags"`
	Author *Author  `json:"author,omitempty"`
}

// Tag represents a blog tag and the number of entries referencing it
type Tag struct {
	Title string `json:"title"`
	Total int    `json:"total"`
	Icon  *Image `json:"icon,omitempty"`
}
