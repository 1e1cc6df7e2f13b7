// Package seo builds structured data and sitemaps for the public site.
package seo

import (
	"encoding/json"
	"strings"
	"time"
)

const (
	schemaContext = "https://schema.org"

	// DefaultSiteURL is used when no site URL is configured.
	DefaultSiteURL = "http://localhost:3000"
)

// Builder produces JSON-LD documents rooted at a site URL.
type Builder struct {
	siteURL string
}

// NewBuilder trims trailing slashes from siteURL and falls back to
// DefaultSiteURL when it is blank.
func NewBuilder(siteURL string) *Builder {
	return &Builder{siteURL: cleanBase(siteURL)}
}

// SiteURL returns the normalised base URL.
func (b *Builder) SiteURL() string { return b.siteURL }

type Thing struct {
	Type string `json:"@type"`
	Name string `json:"name,omitempty"`
	URL  string `json:"url,omitempty"`
}

type BlogPosting struct {
	Context       string `json:"@context"`
	Type          string `json:"@type"`
	Headline      string `json:"headline"`
	Description   string `json:"description,omitempty"`
	URL           string `json:"url"`
	DatePublished string `json:"datePublished,omitempty"`
	DateModified  string `json:"dateModified,omitempty"`
	Author        *Thing `json:"author,omitempty"`
	Image         *Thing `json:"image,omitempty"`
}

// PostInput describes a post for BlogPosting.
type PostInput struct {
	Title       string
	Excerpt     string
	Slug        string
	PublishedAt *time.Time
	UpdatedAt   *time.Time
	AuthorName  string
	ImageURL    string
}

// BlogPosting describes a post at /blog/{slug}. The modified date falls
// back to the published date.
func (b *Builder) BlogPosting(post PostInput) BlogPosting {
	doc := BlogPosting{
		Context:       schemaContext,
		Type:          "BlogPosting",
		Headline:      post.Title,
		Description:   post.Excerpt,
		URL:           b.siteURL + "/blog/" + post.Slug,
		DatePublished: formatTime(post.PublishedAt),
		DateModified:  formatTime(post.UpdatedAt),
	}
	if doc.DateModified == "" {
		doc.DateModified = doc.DatePublished
	}
	if post.AuthorName != "" {
		doc.Author = &Thing{Type: "Person", Name: post.AuthorName}
	}
	if post.ImageURL != "" {
		doc.Image = &Thing{Type: "ImageObject", URL: post.ImageURL}
	}
	return doc
}

type WebPage struct {
	Context     string `json:"@context"`
	Type        string `json:"@type"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url"`
}

// WebPage describes a page; an empty slug is the home page.
func (b *Builder) WebPage(title, metaDescription, slug string) WebPage {
	pageURL := b.siteURL
	if slug = strings.Trim(slug, "/"); slug != "" {
		pageURL += "/" + slug
	}
	return WebPage{
		Context:     schemaContext,
		Type:        "WebPage",
		Name:        title,
		Description: metaDescription,
		URL:         pageURL,
	}
}

// Crumb is one breadcrumb entry.
type Crumb struct {
	Name string
	URL  string
}

type ListItem struct {
	Type     string `json:"@type"`
	Position int    `json:"position"`
	Name     string `json:"name"`
	Item     string `json:"item"`
}

type BreadcrumbList struct {
	Context         string     `json:"@context"`
	Type            string     `json:"@type"`
	ItemListElement []ListItem `json:"itemListElement"`
}

// BreadcrumbListOf numbers crumbs from 1.
func BreadcrumbListOf(crumbs []Crumb) BreadcrumbList {
	items := make([]ListItem, len(crumbs))
	for i, crumb := range crumbs {
		items[i] = ListItem{Type: "ListItem", Position: i + 1, Name: crumb.Name, Item: crumb.URL}
	}
	return BreadcrumbList{Context: schemaContext, Type: "BreadcrumbList", ItemListElement: items}
}

// OrganizationInput describes the business behind the site.
type OrganizationInput struct {
	Name        string
	URL         string
	Logo        string
	Description string
	SocialLinks []string
}

type Organization struct {
	Context     string   `json:"@context"`
	Type        string   `json:"@type"`
	Name        string   `json:"name"`
	URL         string   `json:"url"`
	Logo        *Thing   `json:"logo,omitempty"`
	Description string   `json:"description,omitempty"`
	SameAs      []string `json:"sameAs,omitempty"`
}

// Organization uses the builder's site URL when org.URL is blank.
func (b *Builder) Organization(org OrganizationInput) Organization {
	doc := Organization{
		Context:     schemaContext,
		Type:        "Organization",
		Name:        org.Name,
		URL:         org.URL,
		Description: org.Description,
		SameAs:      org.SocialLinks,
	}
	if strings.TrimSpace(doc.URL) == "" {
		doc.URL = b.siteURL
	}
	if org.Logo != "" {
		doc.Logo = &Thing{Type: "ImageObject", URL: org.Logo}
	}
	return doc
}

// Script renders doc as the body of a ld+json script tag. json.Marshal
// escapes "<" so the payload cannot close the tag.
func Script(doc any) (string, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func cleanBase(raw string) string {
	base := strings.TrimSpace(raw)
	if base == "" {
		base = DefaultSiteURL
	}
	return strings.TrimRight(base, "/")
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
