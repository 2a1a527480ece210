package lifecycle

import "github.com/pressroom/backend/internal/db"

func NewArticleFromDB(a *db.Article) Article {
	return Article{
		ID:                 a.ID,
		AuthorID:           a.AuthorID,
		Title:              a.Title,
		Content:            a.Content,
		Status:             Status(a.Status),
		ReviewerComment:    a.ReviewerComment,
		ScheduledPublishAt: a.ScheduledPublishAt,
		PublishedAt:        a.PublishedAt,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}

func NewArticlesFromDB(list []db.Article) []Article {
	articles := make([]Article, len(list))
	for i := range list {
		articles[i] = NewArticleFromDB(&list[i])
	}
	return articles
}
