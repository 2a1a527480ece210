//go:build integration

package db

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/go-pg/pg/v10"
)

var testDB *pg.DB

func TestMain(m *testing.M) {
	ctx := context.Background()

	opt, err := pg.ParseURL(TestDBURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to parse database URL: %v\n", err)
		os.Exit(1)
	}

	testDB = pg.Connect(opt)

	if err := testDB.Ping(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "failed to connect to test database. Make sure PostgreSQL is running:")
		fmt.Fprintln(os.Stderr, "  docker-compose -f docker-compose.test.yml up -d")
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		_ = testDB.Close()
		os.Exit(1)
	}

	if err := ResetPublicSchema(ctx, testDB); err != nil {
		fmt.Fprintf(os.Stderr, "failed to reset schema: %v\n", err)
		_ = testDB.Close()
		os.Exit(1)
	}

	if err := RunMigrations(ctx, MigrationsDir); err != nil {
		fmt.Fprintf(os.Stderr, "failed to run migrations: %v\n", err)
		_ = testDB.Close()
		os.Exit(1)
	}

	if err := EnsureTablesExist(ctx, testDB, []string{"users", "subscriptions", "articles", "notifications"}); err != nil {
		fmt.Fprintf(os.Stderr, "schema verification failed: %v\n", err)
		_ = testDB.Close()
		os.Exit(1)
	}

	if err := LoadTestData(ctx, testDB); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load test data: %v\n", err)
		_ = testDB.Close()
		os.Exit(1)
	}

	code := m.Run()

	if err := testDB.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to close database connection: %v\n", err)
	}

	os.Exit(code)
}

func TestArticleByID_Integration(t *testing.T) {
	_, ctx, repo := withTx(t)

	article, err := repo.ArticleByID(ctx, 2)
	if err != nil {
		t.Fatalf("failed to query article: %v", err)
	}
	if article == nil {
		t.Fatal("expected article 2 to exist")
	}
	if article.Status != "pending" {
		t.Errorf("expected status pending, got %q", article.Status)
	}
	if article.AuthorID != 2 {
		t.Errorf("expected authorId 2, got %d", article.AuthorID)
	}

	missing, err := repo.ArticleByID(ctx, 9999)
	if err != nil {
		t.Fatalf("unexpected error for missing article: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for missing article, got %+v", missing)
	}
}

func TestInsertArticle_Integration(t *testing.T) {
	_, ctx, repo := withTx(t)

	article := &Article{
		AuthorID:  2,
		Title:     "Inserted in Test",
		Content:   "body",
		Status:    "draft",
		CreatedAt: BaseTime,
	}
	if err := repo.InsertArticle(ctx, article); err != nil {
		t.Fatalf("failed to insert article: %v", err)
	}
	if article.ID == 0 {
		t.Fatal("expected insert to fill the generated id")
	}

	got, err := repo.ArticleByID(ctx, article.ID)
	if err != nil {
		t.Fatalf("failed to re-read article: %v", err)
	}
	if got == nil || got.Title != "Inserted in Test" {
		t.Errorf("re-read mismatch: %+v", got)
	}
}

func TestCompareAndSetStatus_Integration(t *testing.T) {
	_, ctx, repo := withTx(t)

	now := BaseTime
	comment := "approved in test"

	ok, err := repo.CompareAndSetStatus(ctx, 2, "pending", StatusChange{
		Status:          "published",
		ReviewerComment: &comment,
		PublishedAt:     &now,
		UpdatedAt:       now,
	})
	if err != nil {
		t.Fatalf("failed to update status: %v", err)
	}
	if !ok {
		t.Fatal("expected the conditional update to match")
	}

	article, err := repo.ArticleByID(ctx, 2)
	if err != nil {
		t.Fatalf("failed to re-read article: %v", err)
	}
	if article.Status != "published" {
		t.Errorf("expected status published, got %q", article.Status)
	}
	if article.ReviewerComment != comment {
		t.Errorf("expected reviewer comment %q, got %q", comment, article.ReviewerComment)
	}
	if article.PublishedAt == nil || !article.PublishedAt.Equal(now) {
		t.Errorf("expected publishedAt %v, got %v", now, article.PublishedAt)
	}

	// Second attempt against the stale expected status must not match.
	ok, err = repo.CompareAndSetStatus(ctx, 2, "pending", StatusChange{
		Status:    "rejected",
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("failed second conditional update: %v", err)
	}
	if ok {
		t.Error("expected stale conditional update to match no rows")
	}
}

func TestCompareAndSetStatus_ClearsScheduleTime_Integration(t *testing.T) {
	_, ctx, repo := withTx(t)

	now := BaseTime
	ok, err := repo.CompareAndSetStatus(ctx, 4, "scheduled", StatusChange{
		Status:      "published",
		PublishedAt: &now,
		UpdatedAt:   now,
	})
	if err != nil {
		t.Fatalf("failed to promote scheduled article: %v", err)
	}
	if !ok {
		t.Fatal("expected the scheduled article to be promoted")
	}

	article, err := repo.ArticleByID(ctx, 4)
	if err != nil {
		t.Fatalf("failed to re-read article: %v", err)
	}
	if article.ScheduledPublishAt != nil {
		t.Errorf("expected scheduledPublishAt to be cleared, got %v", article.ScheduledPublishAt)
	}
}

func TestArticlesByStatus_Integration(t *testing.T) {
	_, ctx, repo := withTx(t)

	articles, err := repo.ArticlesByStatus(ctx, "pending", 1, 10)
	if err != nil {
		t.Fatalf("failed to list pending articles: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("expected 1 pending article, got %d", len(articles))
	}
	if articles[0].ID != 2 {
		t.Errorf("expected article 2, got %d", articles[0].ID)
	}

	if _, err := repo.ArticlesByStatus(ctx, "pending", 0, 10); err == nil {
		t.Error("expected an error for page 0")
	}
}

func TestScheduledDue_Integration(t *testing.T) {
	_, ctx, repo := withTx(t)

	due, err := repo.ScheduledDue(ctx, BaseTime)
	if err != nil {
		t.Fatalf("failed to query due articles: %v", err)
	}
	if len(due) != 1 {
		t.Fatalf("expected 1 due article, got %d", len(due))
	}
	if due[0].ID != 4 {
		t.Errorf("expected article 4, got %d", due[0].ID)
	}

	// Before the scheduled time nothing is due.
	early, err := repo.ScheduledDue(ctx, BaseTime.Add(-time.Hour))
	if err != nil {
		t.Fatalf("failed to query due articles: %v", err)
	}
	if len(early) != 0 {
		t.Errorf("expected no due articles an hour earlier, got %d", len(early))
	}
}

func TestSubscriberIDs_Integration(t *testing.T) {
	_, ctx, repo := withTx(t)

	ids, err := repo.SubscriberIDs(ctx, 2)
	if err != nil {
		t.Fatalf("failed to query subscriber ids: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 subscribers, got %d", len(ids))
	}

	none, err := repo.SubscriberIDs(ctx, 1)
	if err != nil {
		t.Fatalf("failed to query subscriber ids: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no subscribers for user 1, got %d", len(none))
	}
}

func TestNotifications_Integration(t *testing.T) {
	_, ctx, repo := withTx(t)

	articleID := 3
	senderID := 2
	batch := []Notification{
		{RecipientID: 3, SenderID: &senderID, Type: "new_article", Title: "New article",
			Message: "m", RelatedArticleID: &articleID, CreatedAt: BaseTime},
		{RecipientID: 4, SenderID: &senderID, Type: "new_article", Title: "New article",
			Message: "m", RelatedArticleID: &articleID, CreatedAt: BaseTime},
	}
	if err := repo.InsertNotifications(ctx, batch); err != nil {
		t.Fatalf("failed to insert notification batch: %v", err)
	}

	if err := repo.InsertNotifications(ctx, nil); err != nil {
		t.Fatalf("empty batch must be a no-op, got: %v", err)
	}

	got, err := repo.NotificationsByRecipient(ctx, 3, 1, 10)
	if err != nil {
		t.Fatalf("failed to list notifications: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 notification for user 3, got %d", len(got))
	}
	if got[0].IsRead {
		t.Error("expected new notification to be unread")
	}

	ok, err := repo.MarkNotificationRead(ctx, got[0].ID)
	if err != nil {
		t.Fatalf("failed to mark notification read: %v", err)
	}
	if !ok {
		t.Fatal("expected mark read to match")
	}

	ok, err = repo.MarkNotificationRead(ctx, 9999)
	if err != nil {
		t.Fatalf("unexpected error marking missing notification: %v", err)
	}
	if ok {
		t.Error("expected mark read on missing notification to match no rows")
	}

	deleted, err := repo.DeleteReadNotificationsBefore(ctx, BaseTime.Add(time.Hour))
	if err != nil {
		t.Fatalf("failed to sweep notifications: %v", err)
	}
	if deleted != 1 {
		t.Errorf("expected to sweep 1 read notification, got %d", deleted)
	}
}
