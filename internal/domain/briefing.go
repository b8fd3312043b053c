package domain

// Period is one of the three daily briefing slots.
type Period string

const (
	PeriodMorning   Period = "morning"
	PeriodAfternoon Period = "afternoon"
	PeriodEvening   Period = "evening"
)

// PeriodOrder returns the morning→afternoon→evening sort rank of a period.
func PeriodOrder(p Period) int {
	switch p {
	case PeriodMorning:
		return 0
	case PeriodAfternoon:
		return 1
	case PeriodEvening:
		return 2
	}
	return 3
}

// TagType is the closed set of tag kinds assigned during curation.
type TagType string

const (
	TagModel TagType = "model"
	TagTool  TagType = "tool"
	TagTopic TagType = "topic"
)

// SourceKind classifies an attributed origin by its URL.
type SourceKind string

const (
	SourcePaper      SourceKind = "paper"
	SourceRepository SourceKind = "repository"
	SourceBlog       SourceKind = "blog"
	SourceArticle    SourceKind = "article"
)

// BriefingSource is one attributed origin of a curated item. A merged story
// carries one entry per contributing source.
type BriefingSource struct {
	ID     string     `json:"id"`
	Title  string     `json:"title"`
	URL    string     `json:"url"`
	Domain string     `json:"domain"`
	Type   SourceKind `json:"type,omitempty"`
}

// BriefingTag labels a curated item with a model, tool, or topic.
type BriefingTag struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	Type  TagType `json:"type"`
}

// WhatToTry is the curator's suggested action for an item.
type WhatToTry struct {
	Description string `json:"description"`
	Code        string `json:"code,omitempty"`
	Note        string `json:"note,omitempty"`
}

// BriefingItem is the curated, user-facing unit. Its ID is propagated from
// the originating RawNewsItem. IsRead is always false at creation and is
// mutated only by the client.
type BriefingItem struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	TLDR            string           `json:"tldr"`
	WhyItMatters    []string         `json:"whyItMatters"`
	WhatToTry       WhatToTry        `json:"whatToTry"`
	Sources         []BriefingSource `json:"sources"`
	Tags            []BriefingTag    `json:"tags"`
	Category        Category         `json:"category"`
	ReadTimeMinutes int              `json:"readTimeMinutes"`
	IsRead          bool             `json:"isRead"`
	PublishedAt     string           `json:"publishedAt"`
}

// Briefing is one scheduled period's worth of curated content. Exactly one
// briefing exists per (date, period) pair in the archive.
type Briefing struct {
	ID                   string         `json:"id"`
	Period               Period         `json:"period"`
	Date                 string         `json:"date"`
	ScheduledTime        string         `json:"scheduledTime"`
	ExecutiveSummary     string         `json:"executiveSummary"`
	Items                []BriefingItem `json:"items"`
	TotalReadTimeMinutes int            `json:"totalReadTimeMinutes"`
	IsAvailable          bool           `json:"isAvailable"`
	IsRead               bool           `json:"isRead"`
}

// DailyBriefings groups one calendar day's briefings, morning→afternoon→
// evening. DisplayDate is recomputed on every run relative to "today".
type DailyBriefings struct {
	Date        string     `json:"date"`
	DisplayDate string     `json:"displayDate"`
	Briefings   []Briefing `json:"briefings"`
}
