package seo_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-sitecms/internal/posts"
	"github.com/goliatone/go-sitecms/internal/seo"
	"github.com/goliatone/go-sitecms/internal/site"
)

func TestBlogPostingFallsBackToPublishedDate(t *testing.T) {
	published := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	doc := seo.NewBuilder("https://acme.test/").BlogPosting(seo.PostInput{
		Title:       "Hello",
		Slug:        "hello",
		PublishedAt: &published,
		ImageURL:    "https://img.test/a.png",
	})
	if doc.URL != "https://acme.test/blog/hello" {
		t.Fatalf("unexpected url %q", doc.URL)
	}
	if doc.DateModified != "2024-03-01T10:00:00Z" || doc.DateModified != doc.DatePublished {
		t.Fatalf("expected modified date to fall back, got %q", doc.DateModified)
	}
	if doc.Author != nil || doc.Image == nil || doc.Image.Type != "ImageObject" {
		t.Fatalf("unexpected author/image %+v %+v", doc.Author, doc.Image)
	}

	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"@context":"https://schema.org"`) || strings.Contains(string(data), "author") {
		t.Fatalf("unexpected json %s", data)
	}
}

func TestWebPageAndOrganizationDefaults(t *testing.T) {
	b := seo.NewBuilder("")
	if b.SiteURL() != seo.DefaultSiteURL {
		t.Fatalf("expected default site url, got %q", b.SiteURL())
	}
	if home := b.WebPage("Home", "", ""); home.URL != seo.DefaultSiteURL {
		t.Fatalf("unexpected home url %q", home.URL)
	}
	if about := b.WebPage("About", "Who we are", "/about/"); about.URL != seo.DefaultSiteURL+"/about" {
		t.Fatalf("unexpected page url %q", about.URL)
	}
	org := b.Organization(seo.OrganizationInput{Name: "Acme", Logo: "https://acme.test/logo.png"})
	if org.URL != seo.DefaultSiteURL || org.Logo == nil {
		t.Fatalf("unexpected organization %+v", org)
	}
}

func TestBreadcrumbPositionsStartAtOne(t *testing.T) {
	list := seo.BreadcrumbListOf([]seo.Crumb{{Name: "Home", URL: "/"}, {Name: "Blog", URL: "/blog"}})
	if len(list.ItemListElement) != 2 || list.ItemListElement[0].Position != 1 || list.ItemListElement[1].Position != 2 {
		t.Fatalf("unexpected breadcrumb %+v", list)
	}
}

func TestScriptEscapesTags(t *testing.T) {
	out, err := seo.Script(seo.NewBuilder("").WebPage("</script><b>", "", ""))
	if err != nil {
		t.Fatalf("script: %v", err)
	}
	if strings.Contains(out, "</script>") {
		t.Fatalf("expected tag to be escaped, got %s", out)
	}
}

func TestSitemapOrderAndPriorities(t *testing.T) {
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	src := seo.Source{
		Pages:      []seo.Item{{Slug: "about"}, {Slug: "private", NoIndex: true}, {Slug: ""}},
		Posts:      []seo.Item{{Slug: "first"}},
		Services:   []seo.Item{{Slug: "boilers"}},
		Categories: []seo.Item{{Slug: "tips", NoIndex: true}},
	}
	entries := seo.Sitemap("https://acme.test/", src, now)

	want := []struct {
		url      string
		priority float64
		freq     string
	}{
		{"https://acme.test", 1.0, seo.FrequencyWeekly},
		{"https://acme.test/about", 0.8, seo.FrequencyMonthly},
		{"https://acme.test/blog", 0.7, seo.FrequencyWeekly},
		{"https://acme.test/blog/first", 0.6, seo.FrequencyMonthly},
		{"https://acme.test/services", 0.8, seo.FrequencyMonthly},
		{"https://acme.test/services/boilers", 0.7, seo.FrequencyMonthly},
		{"https://acme.test/blog/category/tips", 0.6, seo.FrequencyWeekly},
	}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %+v", len(want), entries)
	}
	for i, w := range want {
		e := entries[i]
		if e.URL != w.url || e.Priority != w.priority || e.ChangeFrequency != w.freq {
			t.Fatalf("entry %d: expected %+v, got %+v", i, w, e)
		}
	}
	if !entries[0].LastModified.Equal(now) {
		t.Fatalf("expected home to use now")
	}
}

func TestPostAndOfferingItems(t *testing.T) {
	items := seo.PostItems([]*posts.Post{
		{Slug: "live", Status: posts.StatusPublished},
		{Slug: "wip", Status: posts.StatusDraft},
	})
	if len(items) != 1 || items[0].Slug != "live" {
		t.Fatalf("expected published posts only, got %+v", items)
	}
	if got := seo.OfferingItems([]*site.Offering{{Slug: "boilers"}}); len(got) != 1 || got[0].Slug != "boilers" {
		t.Fatalf("unexpected offering items %+v", got)
	}
}

func TestMarshalXML(t *testing.T) {
	data, err := seo.MarshalXML(seo.Sitemap("https://acme.test", seo.Source{}, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	out := string(data)
	for _, want := range []string{
		`<?xml version="1.0" encoding="UTF-8"?>`,
		`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`,
		`<loc>https://acme.test/blog</loc>`,
		`<lastmod>2024-05-01T00:00:00Z</lastmod>`,
		`<changefreq>weekly</changefreq>`,
		`<priority>1</priority>`,
		`<priority>0.7</priority>`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in sitemap:\n%s", want, out)
		}
	}
}
