// Package notify builds and persists the notifications produced by article
// lifecycle transitions. It has two entry shapes: a single-recipient author
// notice and a broadcast to the author's subscribers. Fanout isolates its
// own failures; nothing here ever propagates an error back to the engine.
package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/pressroom/backend/internal/db"
	"github.com/pressroom/backend/internal/lifecycle"
	"github.com/pressroom/backend/internal/metrics"
)

const DefaultTimeout = 10 * time.Second

// Store is the storage surface fanout needs. *db.Repository implements it.
type Store interface {
	UserByID(ctx context.Context, userID int) (*db.User, error)
	SubscriberIDs(ctx context.Context, publisherID int) ([]int, error)
	InsertNotifications(ctx context.Context, notifications []db.Notification) error
}

// Fanout implements lifecycle.Notifier. Every public method returns
// immediately; the work runs on its own goroutine under a bounded-wait
// timeout.
type Fanout struct {
	db      Store
	mailer  Mailer
	metrics metrics.Recorder
	log     *slog.Logger
	timeout time.Duration

	wg sync.WaitGroup
}

func New(store Store, mailer Mailer, rec metrics.Recorder,
	log *slog.Logger, timeout time.Duration) *Fanout {

	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Fanout{
		db:      store,
		mailer:  mailer,
		metrics: rec,
		log:     log,
		timeout: timeout,
	}
}

// Wait blocks until all in-flight fanout work finishes. Called on shutdown.
func (f *Fanout) Wait() {
	f.wg.Wait()
}

func (f *Fanout) ArticleApproved(article lifecycle.Article) {
	f.dispatch(func(ctx context.Context) {
		f.authorNotice(ctx, article, TypeArticleApproved, "")
		f.broadcast(ctx, article)
	})
}

func (f *Fanout) ArticlePublished(article lifecycle.Article) {
	f.dispatch(func(ctx context.Context) {
		f.authorNotice(ctx, article, TypeArticlePublished, "")
		f.broadcast(ctx, article)
	})
}

func (f *Fanout) ArticleRejected(article lifecycle.Article, reason string) {
	f.dispatch(func(ctx context.Context) {
		f.authorNotice(ctx, article, TypeArticleRejected, reason)
	})
}

func (f *Fanout) ArticleFlagged(article lifecycle.Article, reason string) {
	f.dispatch(func(ctx context.Context) {
		f.authorNotice(ctx, article, TypeArticleFlagged, reason)
	})
}

func (f *Fanout) dispatch(fn func(ctx context.Context)) {
	f.wg.Add(1)
	go func() {
		defer f.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), f.timeout)
		defer cancel()

		fn(ctx)
	}()
}

// authorNotice stores one notification for the article's author and sends
// the best-effort email. Mail failures are logged, never retried.
func (f *Fanout) authorNotice(ctx context.Context, article lifecycle.Article,
	typ Type, reason string) {

	author, err := f.db.UserByID(ctx, article.AuthorID)
	if err != nil {
		f.metrics.RecordFanoutFailure("author_lookup")
		f.log.Error("fanout: author lookup failed",
			"error", err, "articleId", article.ID, "authorId", article.AuthorID)
		return
	}
	if author == nil {
		// Author deleted since the article was written; nobody to notify.
		f.log.Warn("fanout: author no longer exists",
			"articleId", article.ID, "authorId", article.AuthorID)
		return
	}

	title, message := render(typ, Locale(author.Locale), article.Title, reason)

	articleID := article.ID
	notification := db.Notification{
		RecipientID:      author.ID,
		Type:             string(typ),
		Title:            title,
		Message:          message,
		RelatedArticleID: &articleID,
		CreatedAt:        time.Now(),
	}

	if err := f.db.InsertNotifications(ctx, []db.Notification{notification}); err != nil {
		f.metrics.RecordFanoutFailure("author_insert")
		f.log.Error("fanout: author notice insert failed",
			"error", err, "articleId", article.ID, "type", typ)
		return
	}

	if author.Email == "" {
		return
	}
	if err := f.mailer.Send(ctx, author.Email, title, message); err != nil {
		f.metrics.RecordFanoutFailure("mail")
		f.log.Error("fanout: author mail failed",
			"error", err, "articleId", article.ID, "authorId", author.ID)
	}
}

// broadcast stores one notification per subscriber of the article's author
// in a single bulk insert. If the insert fails, zero notifications become
// visible; a half-notified audience is never left behind.
func (f *Fanout) broadcast(ctx context.Context, article lifecycle.Article) {
	subscriberIDs, err := f.db.SubscriberIDs(ctx, article.AuthorID)
	if err != nil {
		f.metrics.RecordFanoutFailure("audience_lookup")
		f.log.Error("fanout: audience lookup failed",
			"error", err, "articleId", article.ID, "authorId", article.AuthorID)
		return
	}
	if len(subscriberIDs) == 0 {
		return
	}

	// Subscriber locales are not loaded: audience resolution stays a single
	// query and the batch is rendered once in the default locale.
	title, message := render(TypeNewArticle, DefaultLocale, article.Title, "")

	senderID := article.AuthorID
	articleID := article.ID
	now := time.Now()

	notifications := make([]db.Notification, len(subscriberIDs))
	for i, recipientID := range subscriberIDs {
		notifications[i] = db.Notification{
			RecipientID:      recipientID,
			SenderID:         &senderID,
			Type:             string(TypeNewArticle),
			Title:            title,
			Message:          message,
			RelatedArticleID: &articleID,
			CreatedAt:        now,
		}
	}

	if err := f.db.InsertNotifications(ctx, notifications); err != nil {
		f.metrics.RecordFanoutFailure("broadcast_insert")
		f.log.Error("fanout: broadcast insert failed",
			"error", err, "articleId", article.ID, "audience", len(notifications))
		return
	}

	f.metrics.RecordBroadcastSize(len(notifications))
	f.log.Info("fanout: broadcast delivered",
		"articleId", article.ID, "audience", len(notifications))
}
