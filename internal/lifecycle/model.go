package lifecycle

import "time"

// Article is the domain view of an article under lifecycle control.
type Article struct {
	ID                 int
	AuthorID           int
	Title              string
	Content            string
	Status             Status
	ReviewerComment    string
	ScheduledPublishAt *time.Time
	PublishedAt        *time.Time
	CreatedAt          time.Time
	UpdatedAt          *time.Time
}

// NewArticle carries the author-supplied fields of an article being created.
// Status is the requested initial status; the actual one is resolved per
// role by ResolveCreateStatus.
type NewArticle struct {
	AuthorID           int
	Title              string
	Content            string
	Status             Status
	ScheduledPublishAt *time.Time
}

// TransitionResult reports a committed (or no-op) transition. Changed is
// false when the request matched the current status and nothing was written.
type TransitionResult struct {
	Article *Article
	From    Status
	To      Status
	Changed bool
}

// StatusEvent is the domain event emitted after every committed transition.
type StatusEvent struct {
	ArticleID int    `json:"articleId"`
	From      Status `json:"fromStatus"`
	To        Status `json:"toStatus"`
	Reason    string `json:"reason,omitempty"`
}
