package ai

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-sitecms/internal/site"
)

// Image styles understood by the prompt builders.
const (
	ImageStylePhotographic = "photographic"
	ImageStyleDigitalArt   = "digital-art"
	ImageStyleMinimalist   = "minimalist"
	ImageStyleAbstract     = "abstract"
	ImageStyleIllustration = "illustration"
	ImageStyleNatural      = "natural"
)

const (
	maxExistingTopics  = 20
	maxBlogPainPoints  = 3
	summarySourceChars = 500
)

var wordRanges = map[string]string{
	site.WordCountShort:  "800-1200",
	site.WordCountMedium: "1200-1800",
	site.WordCountLong:   "1800-2500",
}

// WordRange maps a word count preset to its target range. Unknown presets
// use the medium range.
func WordRange(preset string) string {
	if r, ok := wordRanges[preset]; ok {
		return r
	}
	return wordRanges[site.WordCountMedium]
}

// RelatedArticle is an existing post the writer may link to.
type RelatedArticle struct {
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

// TopicContextInput gathers everything topic generation knows about the
// business.
type TopicContextInput struct {
	CompanyName    string
	Description    string
	Brief          *site.BrandBrief
	Services       []string
	FocusTopics    []string
	ExcludeTopics  []string
	ExistingTopics []string
}

// TopicContext renders the context lines sent with a topic request.
func TopicContext(in TopicContextInput) string {
	var lines contextLines
	lines.add("Business", in.CompanyName)
	lines.add("Description", in.Description)
	if b := in.Brief; b != nil {
		lines.add("Business Overview", b.BusinessOverview)
		lines.add("Industry", b.Industry)
		lines.add("Business Model", b.BusinessModel)
		lines.add("Products/Services", b.ProductServices)
		lines.add("Unique Selling Proposition", b.UniqueSellingProposition)
		lines.add("Target Audience", b.TargetAudience)
		lines.list("Audience Pain Points", b.AudiencePainPoints)
		lines.list("Audience Goals", b.AudienceGoals)
		lines.list("Target Keywords", b.SeedKeywords)
		lines.list("Topic Clusters", b.TopicClusters)
		names := make([]string, 0, len(b.Competitors))
		for _, c := range b.Competitors {
			names = append(names, c.Name)
		}
		lines.list("Main Competitors", names)
	}
	lines.list("Services", in.Services)
	lines.list("Focus on", in.FocusTopics)
	lines.list("Avoid", in.ExcludeTopics)
	existing := in.ExistingTopics
	if len(existing) > maxExistingTopics {
		existing = existing[:maxExistingTopics]
	}
	lines.list("Already covered topics (avoid duplicates)", existing)
	return lines.String()
}

// BlogPostContextInput feeds the user message of blog post generation.
type BlogPostContextInput struct {
	CompanyName     string
	Brief           *site.BrandBrief
	Keywords        []string
	RelatedArticles []RelatedArticle
}

// BlogPostContext renders the context lines sent with a blog post request.
func BlogPostContext(in BlogPostContextInput) string {
	var lines contextLines
	lines.add("Business", in.CompanyName)
	if b := in.Brief; b != nil {
		lines.add("Business Overview", b.BusinessOverview)
		lines.add("Industry", b.Industry)
		lines.add("Products/Services", b.ProductServices)
		lines.add("Unique Value", b.UniqueSellingProposition)
		lines.add("Target Audience", b.TargetAudience)
		pains := b.AudiencePainPoints
		if len(pains) > maxBlogPainPoints {
			pains = pains[:maxBlogPainPoints]
		}
		lines.list("Audience Challenges", pains)
	}
	lines.list("Target keywords", in.Keywords)
	if len(in.RelatedArticles) > 0 {
		lines = append(lines, "\nRelated articles you can reference (use markdown links):")
		for _, article := range in.RelatedArticles {
			lines = append(lines, fmt.Sprintf("- [%s](/blog/%s)", article.Title, article.Slug))
		}
	}
	return lines.String()
}

// VoiceInstructions renders the brand voice rules appended to the writer
// system prompt.
func VoiceInstructions(brief *site.BrandBrief) string {
	if brief == nil {
		return ""
	}
	var b strings.Builder
	if len(brief.ToneOfVoice) > 0 {
		b.WriteString("\nTONE OF VOICE: " + strings.Join(brief.ToneOfVoice, ", "))
	}
	if brief.WritingStyle != "" {
		b.WriteString("\nWRITING STYLE: " + brief.WritingStyle)
	}
	if len(brief.AvoidWords) > 0 {
		b.WriteString("\nAVOID these words: " + strings.Join(brief.AvoidWords, ", "))
	}
	if len(brief.PreferredWords) > 0 {
		b.WriteString("\nPREFER these words/phrases: " + strings.Join(brief.PreferredWords, ", "))
	}
	return b.String()
}

// BlogPostSystemPrompt is the writer persona for full post generation.
func BlogPostSystemPrompt(style, targetWords, voice string) string {
	return fmt.Sprintf(`You are an expert blog writer creating %s content for a business blog.
Write comprehensive, engaging, and SEO-optimized blog posts.
Use markdown formatting with ## for main sections (h2 headings).
Use **bold** for emphasis on key terms.
Target length: %s words.
Make it valuable, actionable, and well-structured.%s

STRUCTURE REQUIREMENTS:
- Start with an introduction paragraph (NO heading for intro)
- Include 5-7 main sections with ## h2 headings
- End with a conclusion section with ## Conclusion heading
- Each section should be 2-3 paragraphs

INTERNAL LINKING FOR SEO:
- When related articles are provided, naturally reference 2-3 of them using markdown links: [article title](/blog/slug)
- Only link to articles that are contextually relevant
- Place links naturally within the content where they add value
- Don't force links - only include if genuinely helpful

IMPORTANT: Do NOT include:
- A title heading with # (the title will be displayed separately)
- Fake URLs or external links (no example.com)
- Markdown images (no ![alt](url))
- External references you can't verify

Focus on informative text content with strategic internal links.`, style, targetWords, voice)
}

// BlogPostUserPrompt asks for the post itself.
func BlogPostUserPrompt(topic, context string) string {
	if context == "" {
		return "Write a complete blog post about: " + topic
	}
	return "Write a complete blog post about: " + topic + "\n\nContext:\n" + context
}

const topicsSystemPrompt = `You are a content strategist generating blog post topics for a business. 
Create relevant, engaging, and SEO-friendly blog post ideas that would be valuable to their target audience.
Topics should be specific, actionable, and aligned with the business's services and expertise.

IMPORTANT: 
- Topics can be related to existing articles but must have a UNIQUE angle or focus
- Example: If "Lightweight Cooking Gear" exists, you can suggest "Winter Cooking Techniques" or "Cooking Gear Maintenance"
- Avoid exact duplicate titles, but related topics are encouraged for comprehensive coverage

Return only a JSON array of topic objects with this structure:
[
  {
    "title": "Compelling blog post title",
    "description": "Brief description of what the post would cover",
    "keywords": ["keyword1", "keyword2", "keyword3"]
  }
]`

// TopicsUserPrompt asks for count topics grounded on context.
func TopicsUserPrompt(count int, context string) string {
	return fmt.Sprintf("Generate %d unique blog post topics based on this context:\n\n%s", count, context)
}

const summarySystemPrompt = "Create a compelling 1-2 sentence summary (under 160 characters) for this blog post."

const postSEOSystemPrompt = `Generate SEO metadata as JSON:
{
  "metaTitle": "50-60 character SEO title",
  "metaDescription": "120-155 character meta description"
}`

// ExcerptPrompt asks a copywriter for a teaser of an existing post.
func ExcerptPrompt(title, content string) string {
	if title == "" {
		title = "Untitled"
	}
	return fmt.Sprintf(`You are a professional copywriter. Based on the following blog post, write a compelling excerpt/summary that will entice readers to click and read more.

Title: %s

Content:
%s

Requirements:
- 1-2 sentences maximum (under 160 characters)
- Hook the reader with the main value or benefit
- No fluff, be specific and compelling
- Don't use "this post" or "this article" - write in active voice

Respond with ONLY the excerpt text, nothing else.`, title, content)
}

// SEOPrompt asks for meta title and description of a page.
func SEOPrompt(pageType, pageTitle, content string) string {
	if pageType == "" {
		pageType = "page"
	}
	if pageTitle == "" {
		pageTitle = "Untitled"
	}
	return fmt.Sprintf(`You are an SEO expert. Based on the following %s content, generate:
1. An optimized meta title (50-60 characters, include primary keyword at start)
2. An optimized meta description (120-155 characters, compelling and includes call-to-action)

Page title: %s

Content:
%s

Respond ONLY with a JSON object in this exact format:
{"metaTitle": "your title here", "metaDescription": "your description here"}`, pageType, pageTitle, content)
}

const altTextPrompt = `Generate a concise, descriptive alt text for this image. Focus on what is important for accessibility and SEO. Keep it under 125 characters. Do not include "Image of" or "Photo of" - just describe what you see.`

var featuredImageSuffix = map[string]string{
	ImageStylePhotographic: " High-quality photograph, professional, sharp focus, realistic.",
	ImageStyleDigitalArt:   " Modern digital art, clean design, professional.",
	ImageStyleMinimalist:   " Minimalist design, clean, simple, modern, lots of negative space.",
	ImageStyleAbstract:     " Abstract artistic interpretation, creative, modern.",
	ImageStyleIllustration: " Professional illustration, detailed, polished, commercial quality.",
}

// ImagePrompt builds the featured image prompt for a post title.
func ImagePrompt(title, style string) string {
	suffix, ok := featuredImageSuffix[style]
	if !ok {
		suffix = " Clean, professional, corporate-friendly."
	}
	return "Professional blog featured image for article about: " + title + "." + suffix
}

var styledImageFormats = map[string]string{
	ImageStylePhotographic: "Professional photograph: %s. High-quality, sharp focus, professional lighting, realistic.",
	ImageStyleDigitalArt:   "Digital art illustration: %s. Modern, clean, professional design.",
	ImageStyleMinimalist:   "Minimalist design: %s. Clean, simple, modern aesthetic with lots of negative space.",
	ImageStyleAbstract:     "Abstract artistic interpretation: %s. Creative, artistic, modern.",
	ImageStyleIllustration: "Professional illustration: %s. Detailed, polished, commercial quality.",
}

// StyledImagePrompt decorates a free-form prompt with a style. The natural
// style and unknown styles keep the prompt as written.
func StyledImagePrompt(prompt, style string) string {
	format, ok := styledImageFormats[style]
	if !ok {
		return prompt
	}
	return fmt.Sprintf(format, prompt)
}

// Truncate limits value to at most n runes.
func Truncate(value string, n int) string {
	runes := []rune(value)
	if n < 0 || len(runes) <= n {
		return value
	}
	return string(runes[:n])
}

type contextLines []string

func (c *contextLines) add(label, value string) {
	if value = strings.TrimSpace(value); value != "" {
		*c = append(*c, label+": "+value)
	}
}

func (c *contextLines) list(label string, values []string) {
	if len(values) > 0 {
		*c = append(*c, label+": "+strings.Join(values, ", "))
	}
}

func (c contextLines) String() string {
	return strings.Join(c, "\n")
}
