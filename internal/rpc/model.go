package rpc

import (
	"time"

	"github.com/pressroom/backend/internal/lifecycle"
)

type QueueRequest struct {
	//page=1 page number (1-based)
	Page *int `json:"page,omitempty"`
	//pageSize=10 items per page
	PageSize *int `json:"pageSize,omitempty"`
}

type TransitionRequest struct {
	//id article numeric ID
	ID int `json:"id"`
	//comment reviewer comment shown to the author
	Comment string `json:"comment,omitempty"`
}

type Article struct {
	ArticleID          int        `json:"articleId"`
	AuthorID           int        `json:"authorId"`
	Title              string     `json:"title"`
	Status             string     `json:"status"`
	ReviewerComment    string     `json:"reviewerComment,omitempty"`
	ScheduledPublishAt *time.Time `json:"scheduledPublishAt,omitempty"`
	PublishedAt        *time.Time `json:"publishedAt,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
}

type TransitionResult struct {
	Article Article `json:"article"`
	From    string  `json:"fromStatus"`
	To      string  `json:"toStatus"`
	Changed bool    `json:"changed"`
}

func NewArticle(a lifecycle.Article) Article {
	return Article{
		ArticleID:          a.ID,
		AuthorID:           a.AuthorID,
		Title:              a.Title,
		Status:             string(a.Status),
		ReviewerComment:    a.ReviewerComment,
		ScheduledPublishAt: a.ScheduledPublishAt,
		PublishedAt:        a.PublishedAt,
		CreatedAt:          a.CreatedAt,
	}
}

func NewArticles(list []lifecycle.Article) []Article {
	articles := make([]Article, len(list))
	for i := range list {
		articles[i] = NewArticle(list[i])
	}
	return articles
}

func NewTransitionResult(r *lifecycle.TransitionResult) TransitionResult {
	return TransitionResult{
		Article: NewArticle(*r.Article),
		From:    string(r.From),
		To:      string(r.To),
		Changed: r.Changed,
	}
}
