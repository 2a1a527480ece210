package db

import (
	"time"
)

type Article struct {
	tableName struct{} `pg:"articles,alias:t,discard_unknown_columns"`

	ID                 int        `pg:"articleId,pk"`
	AuthorID           int        `pg:"authorId,use_zero"`
	Title              string     `pg:"title,use_zero"`
	Content            string     `pg:"content,use_zero"`
	Status             string     `pg:"status,use_zero"`
	ReviewerComment    string     `pg:"reviewerComment,use_zero"`
	ScheduledPublishAt *time.Time `pg:"scheduledPublishAt"`
	PublishedAt        *time.Time `pg:"publishedAt"`
	CreatedAt          time.Time  `pg:"createdAt,use_zero"`
	UpdatedAt          *time.Time `pg:"updatedAt"`

	Author *User `pg:"fk:authorId,rel:has-one"`
}

type User struct {
	tableName struct{} `pg:"users,alias:t,discard_unknown_columns"`

	ID        int       `pg:"userId,pk"`
	Name      string    `pg:"name,use_zero"`
	Email     string    `pg:"email,use_zero"`
	Role      string    `pg:"role,use_zero"`
	Locale    string    `pg:"locale,use_zero"`
	CreatedAt time.Time `pg:"createdAt,use_zero"`
}

// Subscription links a reader to a publisher whose articles they follow.
type Subscription struct {
	tableName struct{} `pg:"subscriptions,alias:t,discard_unknown_columns"`

	SubscriberID int       `pg:"subscriberId,pk"`
	PublisherID  int       `pg:"publisherId,pk"`
	CreatedAt    time.Time `pg:"createdAt,use_zero"`
}

type Notification struct {
	tableName struct{} `pg:"notifications,alias:t,discard_unknown_columns"`

	ID               int       `pg:"notificationId,pk"`
	RecipientID      int       `pg:"recipientId,use_zero"`
	SenderID         *int      `pg:"senderId"`
	Type             string    `pg:"type,use_zero"`
	Title            string    `pg:"title,use_zero"`
	Message          string    `pg:"message,use_zero"`
	RelatedArticleID *int      `pg:"relatedArticleId"`
	RelatedUserID    *int      `pg:"relatedUserId"`
	IsRead           bool      `pg:"isRead,use_zero"`
	CreatedAt        time.Time `pg:"createdAt,use_zero"`
}

// StatusChange is the set of fields written together with a status by
// CompareAndSetStatus. PublishedAt and ReviewerComment are only written when
// non-nil; scheduledPublishAt is always cleared because no transition ever
// targets the scheduled status.
type StatusChange struct {
	Status          string
	ReviewerComment *string
	PublishedAt     *time.Time
	UpdatedAt       time.Time
}
