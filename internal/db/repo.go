package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-pg/pg/v10"
)

type Repository struct {
	db pg.DBI
}

// New creates a Repository. It accepts pg.DBI so tests can run against a
// transaction instead of a live connection pool.
func New(db pg.DBI) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Ping(ctx context.Context) error {
	if db, ok := r.db.(*pg.DB); ok {
		return db.Ping(ctx)
	}
	return nil
}

func (r *Repository) Close() error {
	if db, ok := r.db.(*pg.DB); ok {
		return db.Close()
	}
	return nil
}

// ArticleByID retrieves a single article. Returns (nil, nil) when the
// article does not exist.
func (r *Repository) ArticleByID(ctx context.Context, articleID int) (*Article, error) {
	article := &Article{}
	err := r.db.ModelContext(ctx, article).
		Where(`"t"."articleId" = ?`, articleID).
		Select()
	if err != nil {
		if errors.Is(err, pg.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query article by id: %w", err)
	}

	return article, nil
}

func (r *Repository) InsertArticle(ctx context.Context, article *Article) error {
	_, err := r.db.ModelContext(ctx, article).Insert()
	if err != nil {
		return fmt.Errorf("failed to insert article: %w", err)
	}

	return nil
}

// CompareAndSetStatus updates an article's status only if the stored status
// still equals expected. Returns false when the row was not updated, either
// because a concurrent writer won the race or because the article is gone.
// This single conditional write is the serialization point for all
// concurrent transitions on one article.
func (r *Repository) CompareAndSetStatus(ctx context.Context, articleID int,
	expected string, change StatusChange) (bool, error) {

	query := r.db.ModelContext(ctx, (*Article)(nil)).
		Set(`"status" = ?`, change.Status).
		Set(`"scheduledPublishAt" = NULL`).
		Set(`"updatedAt" = ?`, change.UpdatedAt).
		Where(`"t"."articleId" = ?`, articleID).
		Where(`"t"."status" = ?`, expected)

	if change.ReviewerComment != nil {
		query = query.Set(`"reviewerComment" = ?`, *change.ReviewerComment)
	}

	if change.PublishedAt != nil {
		query = query.Set(`"publishedAt" = ?`, *change.PublishedAt)
	}

	res, err := query.Update()
	if err != nil {
		return false, fmt.Errorf("failed to update article status: %w", err)
	}

	return res.RowsAffected() > 0, nil
}

// ArticlesByStatus retrieves articles in the given status, newest first,
// with pagination. Used by the moderation queue listing.
func (r *Repository) ArticlesByStatus(ctx context.Context, status string,
	page, pageSize int) ([]Article, error) {

	if page < 1 || pageSize < 1 {
		return nil, fmt.Errorf(
			"page or pageSize must be greater than 0: page=%d, pageSize=%d",
			page, pageSize,
		)
	}

	offset := (page - 1) * pageSize

	var articles []Article
	err := r.db.ModelContext(ctx, &articles).
		Where(`"t"."status" = ?`, status).
		OrderExpr(`"t"."createdAt" DESC`).
		Limit(pageSize).
		Offset(offset).
		Select()
	if err != nil {
		return nil, fmt.Errorf("failed to query articles by status: %w", err)
	}

	return articles, nil
}

// ScheduledDue retrieves every scheduled article whose publish time has
// elapsed. The scheduler re-derives the full eligible set on every tick, so
// no cursor is kept here.
func (r *Repository) ScheduledDue(ctx context.Context, now time.Time) ([]Article, error) {
	var articles []Article
	err := r.db.ModelContext(ctx, &articles).
		Where(`"t"."status" = ?`, "scheduled").
		Where(`"t"."scheduledPublishAt" <= ?`, now).
		OrderExpr(`"t"."scheduledPublishAt" ASC`).
		Select()
	if err != nil {
		return nil, fmt.Errorf("failed to query due scheduled articles: %w", err)
	}

	return articles, nil
}

func (r *Repository) UserByID(ctx context.Context, userID int) (*User, error) {
	user := &User{}
	err := r.db.ModelContext(ctx, user).
		Where(`"t"."userId" = ?`, userID).
		Select()
	if err != nil {
		if errors.Is(err, pg.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query user by id: %w", err)
	}

	return user, nil
}

// SubscriberIDs returns the ids of all users subscribed to the given
// publisher.
func (r *Repository) SubscriberIDs(ctx context.Context, publisherID int) ([]int, error) {
	var ids []int
	err := r.db.ModelContext(ctx, (*Subscription)(nil)).
		Column("subscriberId").
		Where(`"t"."publisherId" = ?`, publisherID).
		Select(&ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query subscriber ids: %w", err)
	}

	return ids, nil
}

// InsertNotifications persists a notification batch as a single multi-row
// insert. One storage call, not N: a failed broadcast leaves zero
// notifications visible instead of a half-notified audience.
func (r *Repository) InsertNotifications(ctx context.Context, notifications []Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	_, err := r.db.ModelContext(ctx, &notifications).Insert()
	if err != nil {
		return fmt.Errorf("failed to insert notifications: %w", err)
	}

	return nil
}

// NotificationsByRecipient retrieves a recipient's notifications, newest
// first, with pagination.
func (r *Repository) NotificationsByRecipient(ctx context.Context, recipientID int,
	page, pageSize int) ([]Notification, error) {

	if page < 1 || pageSize < 1 {
		return nil, fmt.Errorf(
			"page or pageSize must be greater than 0: page=%d, pageSize=%d",
			page, pageSize,
		)
	}

	offset := (page - 1) * pageSize

	var notifications []Notification
	err := r.db.ModelContext(ctx, &notifications).
		Where(`"t"."recipientId" = ?`, recipientID).
		OrderExpr(`"t"."createdAt" DESC`).
		Limit(pageSize).
		Offset(offset).
		Select()
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}

	return notifications, nil
}

func (r *Repository) MarkNotificationRead(ctx context.Context, notificationID int) (bool, error) {
	res, err := r.db.ModelContext(ctx, (*Notification)(nil)).
		Set(`"isRead" = TRUE`).
		Where(`"t"."notificationId" = ?`, notificationID).
		Update()
	if err != nil {
		return false, fmt.Errorf("failed to mark notification read: %w", err)
	}

	return res.RowsAffected() > 0, nil
}

// DeleteReadNotificationsBefore removes already-read notifications older
// than the cutoff. Maintenance only, not a correctness-critical path.
func (r *Repository) DeleteReadNotificationsBefore(ctx context.Context, cutoff time.Time) (int, error) {
	res, err := r.db.ModelContext(ctx, (*Notification)(nil)).
		Where(`"t"."isRead" = TRUE`).
		Where(`"t"."createdAt" < ?`, cutoff).
		Delete()
	if err != nil {
		return 0, fmt.Errorf("failed to delete read notifications: %w", err)
	}

	return res.RowsAffected(), nil
}
