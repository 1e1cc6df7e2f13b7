// Package markdown converts the Markdown produced by the writing assistant
// into rich-text documents and imports Markdown drafts from disk as posts.
// Goldmark is only used for previews and plain-text extraction; the
// converter itself understands a deliberately small dialect.
package markdown
