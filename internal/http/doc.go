// Package http mounts the site API on a *http.ServeMux.
//
// Routes live under the configured base path:
//   - AI writing: /api/ai/generate-topics, /api/ai/generate-blog-post,
//     /api/ai/generate-excerpt, /api/ai/generate-seo-meta,
//     /api/ai/generate-image, /api/ai/generate-alt-text,
//     /api/ai/analyze-images
//   - Contact form: /api/contact
//   - Markdown: /api/markdown/convert
//   - Automation: /api/cron/generate-blog
//   - Posts: /api/posts/{slug}/toc, /api/posts/{slug}/jsonld
//   - Search engines: /sitemap.xml
//
// Host applications can register handlers on their own mux/router as needed.
package http
