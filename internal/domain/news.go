package domain

import "time"

// SourceType identifies the fetcher kind that produced a raw item.
type SourceType string

const (
	SourceRSS        SourceType = "rss"
	SourceReddit     SourceType = "reddit"
	SourceTwitter    SourceType = "twitter"
	SourceHackerNews SourceType = "hackernews"
	SourceBluesky    SourceType = "bluesky"
)

// Category is the coarse topic bucket assigned by source configuration.
type Category string

const (
	CategoryReleases  Category = "releases"
	CategoryTools     Category = "tools"
	CategoryWorkflows Category = "workflows"
	CategoryResearch  Category = "research"
	CategoryIndustry  Category = "industry"
)

// RawNewsItem is a candidate story as retrieved from a source, before
// curation. Source may become a comma-joined list after merging.
type RawNewsItem struct {
	ID          string
	Title       string
	Content     string
	URL         string
	Source      string
	SourceType  SourceType
	Category    Category
	PublishedAt time.Time
	Author      string
}
