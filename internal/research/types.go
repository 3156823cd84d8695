package research

// Status of a research job as reported by the service. StatusTimeout is
// synthesized locally when the polling budget runs out; the service never
// returns it.
type Status string

const (
	StatusPending  Status = "pending"
	StatusRunning  Status = "running"
	StatusComplete Status = "complete"
	StatusFailed   Status = "failed"
	StatusTimeout  Status = "timeout"
)

// Terminal reports whether the status ends the polling loop.
func (s Status) Terminal() bool {
	return s == StatusComplete || s == StatusFailed || s == StatusTimeout
}

// Job is the typed view of a research status response. The raw service
// payload is parsed into it exactly once; unexpected shapes leave fields at
// their zero values instead of failing the run.
type Job struct {
	JobID        string        `json:"job_id"`
	Status       Status        `json:"status"`
	CheckResults []CheckResult `json:"check_results,omitempty"`
	FinalReport  string        `json:"final_report,omitempty"`
}

// CheckResult is one verification step of a research run. Either Payload
// carries structured output conforming to the submitted schema, or Answer
// holds free text.
type CheckResult struct {
	CheckName string        `json:"check_name,omitempty"`
	Passed    bool          `json:"passed"`
	Answer    string        `json:"answer,omitempty"`
	Payload   *CheckPayload `json:"payload,omitempty"`
}

// CheckPayload wraps the optional structured output of a check.
type CheckPayload struct {
	StructuredOutput *StructuredOutput `json:"structured_output,omitempty"`
}

// StructuredOutput mirrors the json_schema handed to the service at submit time.
type StructuredOutput struct {
	NewsItems      []RawNewsItem `json:"news_items"`
	TrendingTopics []string      `json:"trending_topics,omitempty"`
	UpcomingEvents []RawEvent    `json:"upcoming_events,omitempty"`
}

// RawNewsItem is a news item as the research service emits it. Every field
// except headline and summary may be missing; extraction applies defaults.
type RawNewsItem struct {
	Headline       string   `json:"headline"`
	Summary        string   `json:"summary"`
	Category       string   `json:"category,omitempty"`
	ContentType    string   `json:"content_type,omitempty"`
	SourceURL      string   `json:"source_url,omitempty"`
	SourceName     string   `json:"source_name,omitempty"`
	PublishedDate  string   `json:"published_date,omitempty"`
	RelevanceScore int      `json:"relevance_score,omitempty"`
	MemberTags     []string `json:"member_tags,omitempty"`
	MediaURLs      []string `json:"media_urls,omitempty"`
}

// RawEvent is an upcoming event as the research service emits it.
type RawEvent struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
}

// NewsSchema is the target output schema sent with every research submission.
// It matches StructuredOutput field for field.
func NewsSchema() map[string]any {
	newsItem := map[string]any{
		"type":     "object",
		"required": []string{"headline", "summary"},
		"properties": map[string]any{
			"headline": map[string]any{"type": "string"},
			"summary":  map[string]any{"type": "string"},
			"category": map[string]any{
				"type": "string",
				"enum": []string{"music", "social", "appearance", "fan", "industry"},
			},
			"content_type": map[string]any{
				"type": "string",
				"enum": []string{
					"article", "tweet", "tiktok", "instagram",
					"youtube", "official_announcement", "fan_content",
				},
			},
			"source_url":      map[string]any{"type": "string"},
			"source_name":     map[string]any{"type": "string"},
			"published_date":  map[string]any{"type": "string"},
			"relevance_score": map[string]any{"type": "integer", "minimum": 1, "maximum": 10},
			"member_tags":     map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"media_urls":      map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		},
	}

	event := map[string]any{
		"type":     "object",
		"required": []string{"title", "date"},
		"properties": map[string]any{
			"title":       map[string]any{"type": "string"},
			"date":        map[string]any{"type": "string"},
			"location":    map[string]any{"type": "string"},
			"description": map[string]any{"type": "string"},
		},
	}

	return map[string]any{
		"type":     "object",
		"required": []string{"news_items"},
		"properties": map[string]any{
			"news_items":      map[string]any{"type": "array", "items": newsItem},
			"trending_topics": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"upcoming_events": map[string]any{"type": "array", "items": event},
		},
	}
}
