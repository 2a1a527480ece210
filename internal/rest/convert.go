package rest

import (
	"github.com/pressroom/backend/internal/db"
	"github.com/pressroom/backend/internal/lifecycle"
)

func Map[From, To any](list []From, converter func(From) To) []To {
	result := make([]To, len(list))
	for i := range list {
		result[i] = converter(list[i])
	}
	return result
}

func NewArticle(a lifecycle.Article) Article {
	return Article{
		ArticleID:          a.ID,
		AuthorID:           a.AuthorID,
		Title:              a.Title,
		Content:            a.Content,
		Status:             string(a.Status),
		ReviewerComment:    a.ReviewerComment,
		ScheduledPublishAt: a.ScheduledPublishAt,
		PublishedAt:        a.PublishedAt,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}

func NewTransitionResponse(r *lifecycle.TransitionResult) TransitionResponse {
	return TransitionResponse{
		Article: NewArticle(*r.Article),
		From:    string(r.From),
		To:      string(r.To),
		Changed: r.Changed,
	}
}

func NewNotification(n db.Notification) Notification {
	return Notification{
		NotificationID:   n.ID,
		RecipientID:      n.RecipientID,
		SenderID:         n.SenderID,
		Type:             n.Type,
		Title:            n.Title,
		Message:          n.Message,
		RelatedArticleID: n.RelatedArticleID,
		RelatedUserID:    n.RelatedUserID,
		IsRead:           n.IsRead,
		CreatedAt:        n.CreatedAt,
	}
}
