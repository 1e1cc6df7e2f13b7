package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/goliatone/go-sitecms/internal/markdown"
	"github.com/goliatone/go-sitecms/internal/posts"
	"github.com/goliatone/go-sitecms/internal/seo"
	"github.com/goliatone/go-sitecms/richtext"
)

type convertPayload struct {
	Markdown     string `json:"markdown"`
	ExtractTitle bool   `json:"extractTitle,omitempty"`
}

type tocResponse struct {
	Slug string             `json:"slug"`
	TOC  []richtext.TOCItem `json:"toc"`
}

func (api *API) registerMarkdownRoutes(mux *http.ServeMux, base string) {
	if mux == nil {
		return
	}
	mux.HandleFunc("POST "+joinPath(base, "api/markdown/convert"), api.handleMarkdownConvert)
}

func (api *API) registerPostRoutes(mux *http.ServeMux, base string) {
	if mux == nil {
		return
	}
	root := joinPath(base, "api/posts")
	mux.HandleFunc("GET "+root+"/{slug}/toc", api.handlePostTOC)
	mux.HandleFunc("GET "+root+"/{slug}/jsonld", api.handlePostJSONLD)
}

func (api *API) registerSitemapRoutes(mux *http.ServeMux, base string) {
	if mux == nil {
		return
	}
	mux.HandleFunc("GET "+joinPath(base, "sitemap.xml"), api.handleSitemap)
}

func (api *API) handleMarkdownConvert(w http.ResponseWriter, r *http.Request) {
	var payload convertPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		message, _ := clientMessage(invalidBody(err))
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: message})
		return
	}
	writeJSON(w, http.StatusOK, api.convert(payload))
}

func (api *API) convert(payload convertPayload) markdown.Article {
	if payload.ExtractTitle {
		if api.markdown != nil {
			return api.markdown.ConvertArticle(payload.Markdown)
		}
		title, body, _ := markdown.ExtractTitle(payload.Markdown)
		doc := markdown.Convert(body)
		return markdown.Article{Title: title, Body: doc, TOC: richtext.TableOfContents(doc)}
	}

	var doc richtext.Document
	if api.markdown != nil {
		doc = api.markdown.Convert(payload.Markdown)
	} else {
		doc = markdown.Convert(payload.Markdown)
	}
	return markdown.Article{Body: doc, TOC: richtext.TableOfContents(doc)}
}

func (api *API) handlePostTOC(w http.ResponseWriter, r *http.Request) {
	post, ok := api.publishedPost(w, r)
	if !ok {
		return
	}
	toc := richtext.TableOfContents(post.Body)
	if toc == nil {
		toc = []richtext.TOCItem{}
	}
	writeJSON(w, http.StatusOK, tocResponse{Slug: post.Slug, TOC: toc})
}

func (api *API) handlePostJSONLD(w http.ResponseWriter, r *http.Request) {
	post, ok := api.publishedPost(w, r)
	if !ok {
		return
	}
	input := seo.PostInput{
		Title:       post.Title,
		Excerpt:     post.Excerpt,
		Slug:        post.Slug,
		PublishedAt: post.PublishedAt,
		ImageURL:    post.ImageURL,
	}
	if !post.UpdatedAt.IsZero() {
		updated := post.UpdatedAt
		input.UpdatedAt = &updated
	}
	if api.site != nil {
		if profile, err := api.site.Profile(r.Context()); err == nil && profile != nil {
			input.AuthorName = profile.CompanyName
		}
	}
	writeJSON(w, http.StatusOK, api.seo.BlogPosting(input))
}

// publishedPost writes the error response itself when ok is false.
func (api *API) publishedPost(w http.ResponseWriter, r *http.Request) (*posts.Post, bool) {
	if api.posts == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return nil, false
	}
	slug := strings.TrimSpace(r.PathValue("slug"))
	post, err := api.posts.GetBySlug(r.Context(), slug)
	if err != nil {
		var notFound *posts.NotFoundError
		if errors.As(err, &notFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "Post not found"})
			return nil, false
		}
		api.logger.Error("http.posts.lookup_failed", "slug", slug, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal_error", Message: err.Error()})
		return nil, false
	}
	if !post.Published() {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Post not found"})
		return nil, false
	}
	return post, true
}

func (api *API) handleSitemap(w http.ResponseWriter, r *http.Request) {
	var src seo.Source
	if api.posts != nil {
		list, err := api.posts.List(r.Context())
		if err != nil {
			api.logger.Error("http.sitemap.posts_failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal_error", Message: err.Error()})
			return
		}
		src.Posts = seo.PostItems(list)
	}
	if api.site != nil {
		offerings, err := api.site.Offerings(r.Context())
		if err != nil {
			api.logger.Error("http.sitemap.offerings_failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal_error", Message: err.Error()})
			return
		}
		src.Services = seo.OfferingItems(offerings)
	}

	body, err := seo.MarshalXML(seo.Sitemap(api.seo.SiteURL(), src, api.now().UTC()))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal_error", Message: err.Error()})
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
