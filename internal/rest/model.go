package rest

import "time"

type Article struct {
	ArticleID          int        `json:"articleId"`
	AuthorID           int        `json:"authorId"`
	Title              string     `json:"title"`
	Content            string     `json:"content"`
	Status             string     `json:"status"`
	ReviewerComment    string     `json:"reviewerComment,omitempty"`
	ScheduledPublishAt *time.Time `json:"scheduledPublishAt,omitempty"`
	PublishedAt        *time.Time `json:"publishedAt,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          *time.Time `json:"updatedAt,omitempty"`
}

type Notification struct {
	NotificationID   int       `json:"notificationId"`
	RecipientID      int       `json:"recipientId"`
	SenderID         *int      `json:"senderId,omitempty"`
	Type             string    `json:"type"`
	Title            string    `json:"title"`
	Message          string    `json:"message"`
	RelatedArticleID *int      `json:"relatedArticleId,omitempty"`
	RelatedUserID    *int      `json:"relatedUserId,omitempty"`
	IsRead           bool      `json:"isRead"`
	CreatedAt        time.Time `json:"createdAt"`
}

type CreateArticleRequest struct {
	Title              string     `json:"title"`
	Content            string     `json:"content"`
	Status             string     `json:"status"`
	ScheduledPublishAt *time.Time `json:"scheduledPublishAt"`
}

type TransitionRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

type TransitionResponse struct {
	Article Article `json:"article"`
	From    string  `json:"fromStatus"`
	To      string  `json:"toStatus"`
	Changed bool    `json:"changed"`
}

type ArticlesRequest struct {
	Status   string `query:"status"`
	Page     *int   `query:"page"`
	PageSize *int   `query:"pageSize"`
}

type NotificationsRequest struct {
	Page     *int `query:"page"`
	PageSize *int `query:"pageSize"`
}
