package extract

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/katseye-news/backend/internal/models"
	"github.com/katseye-news/backend/internal/research"
	"github.com/katseye-news/backend/internal/textutil"
)

// Relevance scores assigned outside the structured tier.
const (
	defaultScore     = 5
	freeTextScore    = 6
	finalReportScore = 10
)

// roundupHeadline titles the single item synthesized from a final report.
const roundupHeadline = "Latest KATSEYE News Roundup"

// minFreeTextLen is the shortest answer the free-text tier will turn into an item.
const minFreeTextLen = 100

// Build converts a completed research job into a news bundle using a tiered
// fallback: structured output, then JSON embedded in check answers, then long
// free-text answers, then the final report. The first tier that yields at
// least one item wins. Build has no side effects and takes the clock as an
// argument, so identical inputs produce identical bundles.
//
// Timestamps and the job id are left unset; the publisher stamps them.
func Build(job *research.Job, now time.Time) models.NewsBundle {
	bundle := models.NewsBundle{
		NewsItems:      []models.NewsItem{},
		TrendingTopics: []string{},
		UpcomingEvents: []models.UpcomingEvent{},
	}
	if job == nil {
		bundle.TrendingTopics = append(bundle.TrendingTopics, models.DefaultTrendingTopics...)
		return bundle
	}

	items, topics, events := structuredTier(job.CheckResults)
	bundle.TrendingTopics = append(bundle.TrendingTopics, topics...)
	bundle.UpcomingEvents = append(bundle.UpcomingEvents, events...)

	consumed := map[int]bool{}
	if len(items) == 0 {
		items, consumed = embeddedJSONTier(job.CheckResults)
	}
	if len(items) == 0 {
		items = freeTextTier(job.CheckResults, consumed, now)
	}
	if len(items) == 0 {
		items = finalReportTier(job.FinalReport)
	}

	bundle.NewsItems = append(bundle.NewsItems, items...)
	if len(bundle.TrendingTopics) == 0 {
		bundle.TrendingTopics = append(bundle.TrendingTopics, models.DefaultTrendingTopics...)
	}
	bundle.SortByRelevance()
	return bundle
}

// structuredTier collects every structured_output document across all checks.
// Item ids continue the running count from one document to the next.
func structuredTier(checks []research.CheckResult) ([]models.NewsItem, []string, []models.UpcomingEvent) {
	var (
		items  []models.NewsItem
		topics []string
		events []models.UpcomingEvent
	)

	for _, check := range checks {
		if check.Payload == nil || check.Payload.StructuredOutput == nil {
			continue
		}
		out := check.Payload.StructuredOutput
		for _, raw := range out.NewsItems {
			items = append(items, fromRaw(raw, len(items)+1))
		}
		topics = append(topics, out.TrendingTopics...)
		for _, ev := range out.UpcomingEvents {
			events = append(events, models.UpcomingEvent{
				Title:       ev.Title,
				Date:        ev.Date,
				Location:    ev.Location,
				Description: ev.Description,
			})
		}
	}

	return items, topics, events
}

// embeddedJSONTier scans passed checks whose answer looks like a JSON object.
// Answers that parse and carry news_items contribute items; answers that fail
// to parse are skipped silently and remain eligible for the free-text tier.
// The returned set records which checks were parsed successfully.
func embeddedJSONTier(checks []research.CheckResult) ([]models.NewsItem, map[int]bool) {
	var items []models.NewsItem
	consumed := map[int]bool{}

	for i, check := range checks {
		if !check.Passed || !textutil.LooksLikeJSONObject(check.Answer) {
			continue
		}

		var out research.StructuredOutput
		if err := json.Unmarshal([]byte(strings.TrimSpace(check.Answer)), &out); err != nil {
			// Lenient on purpose: a malformed answer falls through to the
			// free-text tier for this record instead of aborting.
			continue
		}
		consumed[i] = true

		for _, raw := range out.NewsItems {
			items = append(items, fromRaw(raw, len(items)+1))
		}
	}

	return items, consumed
}

// freeTextTier synthesizes one item per passed check with a long enough
// answer, skipping checks already parsed by the embedded-JSON tier.
func freeTextTier(checks []research.CheckResult, consumed map[int]bool, now time.Time) []models.NewsItem {
	var items []models.NewsItem

	for i, check := range checks {
		if consumed[i] || !check.Passed {
			continue
		}
		if utf8.RuneCountInString(check.Answer) < minFreeTextLen {
			continue
		}

		headline := strings.TrimSpace(check.CheckName)
		if headline == "" {
			headline = models.FallbackSourceName
		}

		items = append(items, models.NewsItem{
			ID:             strconv.Itoa(len(items) + 1),
			Headline:       textutil.Truncate(headline, models.MaxHeadlineLen),
			Summary:        textutil.Truncate(check.Answer, models.MaxSummaryLen),
			Category:       models.CategoryMusic,
			ContentType:    models.ContentArticle,
			SourceName:     models.FallbackSourceName,
			PublishedDate:  now.UTC().Format(time.RFC3339),
			RelevanceScore: freeTextScore,
			MemberTags:     []string{models.TagGroup},
		})
	}

	return items
}

// finalReportTier produces exactly one roundup item from the report text.
func finalReportTier(report string) []models.NewsItem {
	if strings.TrimSpace(report) == "" {
		return nil
	}

	return []models.NewsItem{{
		ID:             "1",
		Headline:       roundupHeadline,
		Summary:        textutil.Truncate(report, models.MaxSummaryLen),
		Category:       models.CategoryMusic,
		ContentType:    models.ContentArticle,
		SourceName:     models.FallbackSourceName,
		RelevanceScore: finalReportScore,
		MemberTags:     []string{models.TagGroup},
	}}
}

// fromRaw validates a structured item and fills documented defaults.
func fromRaw(raw research.RawNewsItem, id int) models.NewsItem {
	score := raw.RelevanceScore
	if score < 1 || score > 10 {
		score = defaultScore
	}

	source := strings.TrimSpace(raw.SourceName)
	if source == "" {
		source = models.FallbackSourceName
	}

	return models.NewsItem{
		ID:             strconv.Itoa(id),
		Headline:       textutil.Truncate(textutil.Collapse(raw.Headline), models.MaxHeadlineLen),
		Summary:        textutil.Truncate(raw.Summary, models.MaxSummaryLen),
		Category:       models.ParseCategory(raw.Category),
		ContentType:    models.ParseContentType(raw.ContentType),
		SourceURL:      raw.SourceURL,
		SourceName:     source,
		PublishedDate:  raw.PublishedDate,
		RelevanceScore: score,
		MemberTags:     models.NormalizeMemberTags(raw.MemberTags),
		MediaURLs:      raw.MediaURLs,
	}
}
