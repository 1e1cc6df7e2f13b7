package seo

import (
	"bytes"
	"strings"
	"time"

	"github.com/snabb/sitemap"

	"github.com/goliatone/go-sitecms/internal/posts"
	"github.com/goliatone/go-sitecms/internal/site"
)

const (
	FrequencyWeekly  = string(sitemap.Weekly)
	FrequencyMonthly = string(sitemap.Monthly)
)

// Entry is one sitemap URL.
type Entry struct {
	URL             string
	LastModified    time.Time
	ChangeFrequency string
	Priority        float64
}

// Item is a sitemap source record.
type Item struct {
	Slug      string
	UpdatedAt time.Time
	NoIndex   bool
}

// Source lists the records a sitemap is built from.
type Source struct {
	Pages      []Item
	Posts      []Item
	Services   []Item
	Categories []Item
}

// Sitemap orders entries as home, pages, blog index, posts, services
// index, services and blog categories. Index entries and the home page
// use now as their modification time. Records without a slug or marked
// noindex are skipped; categories have no noindex flag.
func Sitemap(baseURL string, src Source, now time.Time) []Entry {
	base := cleanBase(baseURL)
	entries := []Entry{{URL: base, LastModified: now, ChangeFrequency: FrequencyWeekly, Priority: 1.0}}

	add := func(items []Item, prefix, freq string, priority float64, honourNoIndex bool) {
		for _, item := range items {
			slug := strings.Trim(item.Slug, "/")
			if slug == "" || (honourNoIndex && item.NoIndex) {
				continue
			}
			entries = append(entries, Entry{
				URL:             base + prefix + "/" + slug,
				LastModified:    item.UpdatedAt,
				ChangeFrequency: freq,
				Priority:        priority,
			})
		}
	}

	add(src.Pages, "", FrequencyMonthly, 0.8, true)

	entries = append(entries, Entry{URL: base + "/blog", LastModified: now, ChangeFrequency: FrequencyWeekly, Priority: 0.7})
	add(src.Posts, "/blog", FrequencyMonthly, 0.6, true)

	entries = append(entries, Entry{URL: base + "/services", LastModified: now, ChangeFrequency: FrequencyMonthly, Priority: 0.8})
	add(src.Services, "/services", FrequencyMonthly, 0.7, true)

	add(src.Categories, "/blog/category", FrequencyWeekly, 0.6, false)
	return entries
}

// PostItems keeps published posts only.
func PostItems(list []*posts.Post) []Item {
	items := make([]Item, 0, len(list))
	for _, post := range list {
		if !post.Published() {
			continue
		}
		items = append(items, Item{Slug: post.Slug, UpdatedAt: post.UpdatedAt, NoIndex: post.NoIndex})
	}
	return items
}

func OfferingItems(list []*site.Offering) []Item {
	items := make([]Item, 0, len(list))
	for _, offering := range list {
		items = append(items, Item{Slug: offering.Slug, UpdatedAt: offering.UpdatedAt})
	}
	return items
}

// MarshalXML renders entries as a sitemaps.org urlset document.
func MarshalXML(entries []Entry) ([]byte, error) {
	sm := sitemap.New()
	for _, entry := range entries {
		u := &sitemap.URL{
			Loc:        entry.URL,
			ChangeFreq: sitemap.ChangeFreq(entry.ChangeFrequency),
			Priority:   float32(entry.Priority),
		}
		if !entry.LastModified.IsZero() {
			lastMod := entry.LastModified.UTC().Truncate(time.Second)
			u.LastMod = &lastMod
		}
		sm.Add(u)
	}
	var buf bytes.Buffer
	if _, err := sm.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
