package aicmd

import (
	"github.com/goliatone/go-sitecms/internal/ai"
)

const generateBlogPostMessageType = "sitecms.ai.generate_blog_post"

// GenerateBlogPostCommand writes a blog post about Topic. With SaveDraft
// the post is stored as an AI sourced draft.
type GenerateBlogPostCommand struct {
	Topic         string   `json:"topic"`
	Keywords      []string `json:"keywords,omitempty"`
	Style         string   `json:"style,omitempty"`
	WordCount     string   `json:"wordCount,omitempty"`
	GenerateImage *bool    `json:"generateImage,omitempty"`
	ImageStyle    string   `json:"imageStyle,omitempty"`
	ImageQuality  string   `json:"imageQuality,omitempty"`
	SaveDraft     bool     `json:"saveDraft,omitempty"`
}

// Type implements command.Message.
func (GenerateBlogPostCommand) Type() string { return generateBlogPostMessageType }

// Validate applies the generator's request rules.
func (cmd GenerateBlogPostCommand) Validate() error {
	return cmd.request().Validate()
}

func (cmd GenerateBlogPostCommand) request() ai.BlogPostRequest {
	return ai.BlogPostRequest{
		Topic:         cmd.Topic,
		Keywords:      cmd.Keywords,
		Style:         cmd.Style,
		WordCount:     cmd.WordCount,
		GenerateImage: cmd.GenerateImage,
		ImageStyle:    cmd.ImageStyle,
		ImageQuality:  cmd.ImageQuality,
	}
}
