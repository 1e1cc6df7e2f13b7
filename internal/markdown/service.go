package markdown

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-sitecms/internal/logging"
	"github.com/goliatone/go-sitecms/internal/posts"
	"github.com/goliatone/go-sitecms/pkg/interfaces"
	"github.com/goliatone/go-sitecms/richtext"
)

var ErrDraftsDisabled = errors.New("markdown service: drafts directory not configured")

// Config controls how the Markdown service discovers and parses drafts.
type Config struct {
	DraftsDir string
	Pattern   string
	Recursive bool
	Parser    interfaces.ParseOptions
}

// Article is a converted Markdown document with its title lifted out.
type Article struct {
	Title string             `json:"title,omitempty"`
	Body  richtext.Document  `json:"body"`
	TOC   []richtext.TOCItem `json:"toc"`
}

// Service bundles conversion, preview rendering, text extraction and draft
// import behind one entry point.
type Service struct {
	cfg       Config
	parser    interfaces.MarkdownParser
	converter *Converter
	text      *TextExtractor
	loader    *Loader
	importer  *Importer
	posts     posts.Service
	logger    interfaces.Logger
}

// ServiceOption customises the Markdown service.
type ServiceOption func(*Service)

// WithParser overrides the preview parser.
func WithParser(parser interfaces.MarkdownParser) ServiceOption {
	return func(s *Service) {
		if parser != nil {
			s.parser = parser
		}
	}
}

// WithPostService enables draft import into posts.
func WithPostService(svc posts.Service) ServiceOption {
	return func(s *Service) {
		s.posts = svc
	}
}

// WithServiceLogger sets the logger shared by the converter and importer.
func WithServiceLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
			s.converter = NewConverter(WithConverterLogger(logger))
		}
	}
}

// WithFilesystem replaces the drafts filesystem, mainly for tests.
func WithFilesystem(filesystem fs.FS) ServiceOption {
	return func(s *Service) {
		if filesystem != nil {
			s.loader = NewLoader(filesystem, LoaderConfig{Pattern: s.cfg.Pattern, Recursive: s.cfg.Recursive})
		}
	}
}

// NewService constructs a Markdown service. The drafts loader is only
// created when DraftsDir points at an existing directory.
func NewService(cfg Config, opts ...ServiceOption) (*Service, error) {
	s := &Service{
		cfg:       cfg,
		parser:    NewGoldmarkParser(cfg.Parser),
		converter: NewConverter(),
		logger:    logging.NoOp(),
	}

	if dir := strings.TrimSpace(cfg.DraftsDir); dir != "" {
		filesystem, err := prepareFilesystem(dir)
		if err != nil {
			return nil, err
		}
		s.loader = NewLoader(filesystem, LoaderConfig{Pattern: cfg.Pattern, Recursive: cfg.Recursive})
	}

	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.posts != nil {
		s.importer = NewImporter(ImporterConfig{Posts: s.posts, Converter: s.converter, Logger: s.logger})
	}
	s.text = NewTextExtractor(s.parser)
	return s, nil
}

// Convert turns Markdown into a rich-text document.
func (s *Service) Convert(markdown string) richtext.Document {
	return s.converter.Convert(markdown)
}

// ConvertArticle extracts the leading title and converts the remaining body.
func (s *Service) ConvertArticle(markdown string) Article {
	title, body, _ := ExtractTitle(markdown)
	doc := s.converter.Convert(body)
	return Article{
		Title: title,
		Body:  doc,
		TOC:   richtext.TableOfContents(doc),
	}
}

// Render parses Markdown bytes into preview HTML.
func (s *Service) Render(ctx context.Context, markdown []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.parser.Parse(markdown)
}

// PlainText returns the visible text of markdown.
func (s *Service) PlainText(markdown string) (string, error) {
	return s.text.PlainText(markdown)
}

// LoadDrafts reads every draft from the configured directory.
func (s *Service) LoadDrafts(ctx context.Context) ([]*interfaces.Draft, error) {
	if s.loader == nil {
		return nil, ErrDraftsDisabled
	}
	return s.loader.LoadDirectory(ctx, ".")
}

// ImportDrafts loads and imports every draft into posts.
func (s *Service) ImportDrafts(ctx context.Context, opts ImportOptions) (*ImportResult, error) {
	if s.importer == nil {
		return nil, ErrPostServiceRequired
	}
	drafts, err := s.LoadDrafts(ctx)
	if err != nil {
		return nil, err
	}
	return s.importer.ImportDrafts(ctx, drafts, opts)
}

// ImportDirectory imports drafts from dir instead of the configured
// drafts directory.
func (s *Service) ImportDirectory(ctx context.Context, dir string, opts ImportOptions) (*ImportResult, error) {
	if s.importer == nil {
		return nil, ErrPostServiceRequired
	}
	filesystem, err := prepareFilesystem(dir)
	if err != nil {
		return nil, err
	}
	loader := NewLoader(filesystem, LoaderConfig{Pattern: s.cfg.Pattern, Recursive: s.cfg.Recursive})
	drafts, err := loader.LoadDirectory(ctx, ".")
	if err != nil {
		return nil, err
	}
	return s.importer.ImportDrafts(ctx, drafts, opts)
}

func prepareFilesystem(basePath string) (fs.FS, error) {
	clean := filepath.Clean(basePath)
	info, err := os.Stat(clean)
	if err != nil {
		return nil, fmt.Errorf("markdown service: stat drafts dir %s: %w", clean, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("markdown service: drafts path %s is not a directory", clean)
	}
	return os.DirFS(clean), nil
}
