package models

import (
	"sort"
	"time"
)

// Field bounds applied during extraction.
const (
	MaxHeadlineLen = 100
	MaxSummaryLen  = 500
)

// FallbackSourceName is used when the research result names no source.
const FallbackSourceName = "Grep Research"

// DefaultTrendingTopics replaces an empty trending list at extraction time.
var DefaultTrendingTopics = []string{"#KATSEYE", "#EYEKON", "#PopStarAcademy"}

// Category classifies what a news item is about.
type Category string

const (
	CategoryMusic      Category = "music"
	CategorySocial     Category = "social"
	CategoryAppearance Category = "appearance"
	CategoryFan        Category = "fan"
	CategoryIndustry   Category = "industry"
)

// ParseCategory maps a raw string onto a known category, defaulting to music.
func ParseCategory(raw string) Category {
	switch Category(raw) {
	case CategoryMusic, CategorySocial, CategoryAppearance, CategoryFan, CategoryIndustry:
		return Category(raw)
	default:
		return CategoryMusic
	}
}

// ContentType describes the medium a news item came from.
type ContentType string

const (
	ContentArticle      ContentType = "article"
	ContentTweet        ContentType = "tweet"
	ContentTikTok       ContentType = "tiktok"
	ContentInstagram    ContentType = "instagram"
	ContentYouTube      ContentType = "youtube"
	ContentAnnouncement ContentType = "official_announcement"
	ContentFanContent   ContentType = "fan_content"
)

// ParseContentType maps a raw string onto a known content type, defaulting to article.
func ParseContentType(raw string) ContentType {
	switch ContentType(raw) {
	case ContentArticle, ContentTweet, ContentTikTok, ContentInstagram,
		ContentYouTube, ContentAnnouncement, ContentFanContent:
		return ContentType(raw)
	default:
		return ContentArticle
	}
}

// TagGroup tags an item that concerns the whole group rather than one member.
const TagGroup = "Group"

var memberNames = map[string]struct{}{
	"Daniela":  {},
	"Lara":     {},
	"Manon":    {},
	"Megan":    {},
	"Sophia":   {},
	"Yoonchae": {},
	TagGroup:   {},
}

// NormalizeMemberTags keeps only known member names (plus the Group tag),
// preserving order and dropping duplicates.
func NormalizeMemberTags(raw []string) []string {
	if len(raw) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(raw))
	var tags []string
	for _, tag := range raw {
		if _, ok := memberNames[tag]; !ok {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}

// NewsItem is a single piece of news inside a bundle.
type NewsItem struct {
	ID             string      `json:"id"`
	Headline       string      `json:"headline"`
	Summary        string      `json:"summary"`
	Category       Category    `json:"category"`
	ContentType    ContentType `json:"content_type"`
	SourceURL      string      `json:"source_url,omitempty"`
	SourceName     string      `json:"source_name"`
	PublishedDate  string      `json:"published_date,omitempty"`
	RelevanceScore int         `json:"relevance_score"`
	MemberTags     []string    `json:"member_tags,omitempty"`
	MediaURLs      []string    `json:"media_urls,omitempty"`
}

// UpcomingEvent is a dated event attached to a bundle.
type UpcomingEvent struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
}

// NewsBundle is the document persisted to object storage and served by the API.
type NewsBundle struct {
	LastUpdated    time.Time       `json:"last_updated"`
	NewsItems      []NewsItem      `json:"news_items"`
	TrendingTopics []string        `json:"trending_topics"`
	UpcomingEvents []UpcomingEvent `json:"upcoming_events"`
	ResearchJobID  string          `json:"research_job_id,omitempty"`
	GeneratedAt    time.Time       `json:"generated_at"`
}

// SortByRelevance orders news items by descending relevance score.
// The sort is stable: ties keep their prior relative order.
func (b *NewsBundle) SortByRelevance() {
	sort.SliceStable(b.NewsItems, func(i, j int) bool {
		return b.NewsItems[i].RelevanceScore > b.NewsItems[j].RelevanceScore
	})
}
