package site

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-sitecms/internal/sections"
)

// Word count presets for generated posts.
const (
	WordCountShort  = "short"
	WordCountMedium = "medium"
	WordCountLong   = "long"
)

// Profile describes the business behind the site.
type Profile struct {
	CompanyName  string             `json:"companyName"`
	Description  string             `json:"description,omitempty"`
	ContactEmail string             `json:"contactEmail,omitempty"`
	Automation   AutomationSettings `json:"automation"`
}

// AutomationSettings control scheduled blog generation.
type AutomationSettings struct {
	Enabled           bool     `json:"enabled"`
	ContentStyle      string   `json:"contentStyle,omitempty"`
	WordCount         string   `json:"wordCount,omitempty"`
	AutoPublish       bool     `json:"autoPublish"`
	GenerateImages    *bool    `json:"generateImages,omitempty"`
	FocusTopics       []string `json:"focusTopics,omitempty"`
	ExcludeTopics     []string `json:"excludeTopics,omitempty"`
	NotificationEmail string   `json:"notificationEmail,omitempty"`
}

// Competitor is a named rival business.
type Competitor struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// BrandBrief is the marketing context fed to content generation.
type BrandBrief struct {
	BusinessOverview         string       `json:"businessOverview,omitempty"`
	Industry                 string       `json:"industry,omitempty"`
	BusinessModel            string       `json:"businessModel,omitempty"`
	ProductServices          string       `json:"productServices,omitempty"`
	UniqueSellingProposition string       `json:"uniqueSellingProposition,omitempty"`
	TargetAudience           string       `json:"targetAudience,omitempty"`
	AudiencePainPoints       []string     `json:"audiencePainPoints,omitempty"`
	AudienceGoals            []string     `json:"audienceGoals,omitempty"`
	SeedKeywords             []string     `json:"seedKeywords,omitempty"`
	TopicClusters            []string     `json:"topicClusters,omitempty"`
	Competitors              []Competitor `json:"competitors,omitempty"`
	ToneOfVoice              []string     `json:"toneOfVoice,omitempty"`
	WritingStyle             string       `json:"writingStyle,omitempty"`
	AvoidWords               []string     `json:"avoidWords,omitempty"`
	PreferredWords           []string     `json:"preferredWords,omitempty"`
	AIImageGeneration        *bool        `json:"aiImageGeneration,omitempty"`
	AIImageStyle             string       `json:"aiImageStyle,omitempty"`
	AIImageQuality           string       `json:"aiImageQuality,omitempty"`
}

// Appearance carries the visual settings of the site.
type Appearance struct {
	Palette sections.Palette `json:"palette"`
}

// Settings keys.
const (
	KeyProfile    = "profile"
	KeyBrandBrief = "brand_brief"
	KeyAppearance = "appearance"
)

// SettingsRecord stores one settings document as JSON.
type SettingsRecord struct {
	bun.BaseModel `bun:"table:site_settings,alias:ss"`

	ID        uuid.UUID      `bun:",pk,type:uuid" json:"id"`
	Key       string         `bun:"key,notnull,unique" json:"key"`
	Data      map[string]any `bun:"data,type:jsonb" json:"data"`
	UpdatedAt time.Time      `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Offering is a service the business sells. Offerings feed topic
// generation and the sitemap.
type Offering struct {
	bun.BaseModel `bun:"table:site_offerings,alias:so"`

	ID        uuid.UUID `bun:",pk,type:uuid" json:"id"`
	Title     string    `bun:"title,notnull" json:"title"`
	Slug      string    `bun:"slug,notnull,unique" json:"slug"`
	Excerpt   string    `bun:"excerpt" json:"excerpt,omitempty"`
	Position  int       `bun:"position,notnull,default:0" json:"position"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}
