package rpc

import (
	"context"
	"errors"

	"github.com/vmkteam/zenrpc/v2"

	"github.com/pressroom/backend/internal/lifecycle"
)

//go:generate zenrpc

// ModerationService provides RPC methods for the admin moderation console.
// Every method acts with the admin role; authentication happens upstream.
type ModerationService struct {
	zenrpc.Service
	engine *lifecycle.Manager
}

func NewModerationService(engine *lifecycle.Manager) *ModerationService {
	return &ModerationService{engine: engine}
}

// Queue lists articles awaiting moderation, newest first.
//
//zenrpc:page=1 page number (1-based)
//zenrpc:pageSize=10 items per page
//zenrpc:return pending articles
//zenrpc:500 internal server error
func (s *ModerationService) Queue(ctx context.Context, req QueueRequest) ([]Article, error) {
	page, pageSize := 1, 10
	if req.Page != nil {
		page = *req.Page
	}
	if req.PageSize != nil {
		pageSize = *req.PageSize
	}

	articles, err := s.engine.ArticlesByStatus(ctx, lifecycle.StatusPending, page, pageSize)
	if err != nil {
		return nil, err
	}

	return NewArticles(articles), nil
}

// Approve publishes a pending article.
//
//zenrpc:id article numeric ID
//zenrpc:comment optional reviewer comment
//zenrpc:return committed transition
//zenrpc:404 article not found
//zenrpc:409 article was changed concurrently
//zenrpc:422 transition not allowed
//zenrpc:500 internal server error
func (s *ModerationService) Approve(ctx context.Context, req TransitionRequest) (*TransitionResult, error) {
	return s.apply(ctx, req.ID, lifecycle.StatusPublished, req.Comment)
}

// Reject declines an article with a reviewer comment.
//
//zenrpc:id article numeric ID
//zenrpc:comment reviewer comment shown to the author
//zenrpc:return committed transition
//zenrpc:404 article not found
//zenrpc:409 article was changed concurrently
//zenrpc:422 transition not allowed
//zenrpc:500 internal server error
func (s *ModerationService) Reject(ctx context.Context, req TransitionRequest) (*TransitionResult, error) {
	return s.apply(ctx, req.ID, lifecycle.StatusRejected, req.Comment)
}

// Flag marks an article for re-review.
//
//zenrpc:id article numeric ID
//zenrpc:comment reviewer comment shown to the author
//zenrpc:return committed transition
//zenrpc:404 article not found
//zenrpc:409 article was changed concurrently
//zenrpc:422 transition not allowed
//zenrpc:500 internal server error
func (s *ModerationService) Flag(ctx context.Context, req TransitionRequest) (*TransitionResult, error) {
	return s.apply(ctx, req.ID, lifecycle.StatusFlagged, req.Comment)
}

func (s *ModerationService) apply(ctx context.Context, articleID int,
	status lifecycle.Status, reason string) (*TransitionResult, error) {

	result, err := s.engine.ApplyTransition(ctx, articleID, status, lifecycle.RoleAdmin, reason)
	if err != nil {
		return nil, rpcError(err)
	}

	response := NewTransitionResult(result)
	return &response, nil
}

func rpcError(err error) error {
	var invalid *lifecycle.InvalidTransitionError
	var insufficient *lifecycle.InsufficientRoleError

	switch {
	case errors.Is(err, lifecycle.ErrArticleNotFound):
		return zenrpc.NewStringError(404, "article not found")
	case errors.Is(err, lifecycle.ErrConflict):
		return zenrpc.NewStringError(409, "article was changed concurrently, refresh and retry")
	case errors.As(err, &invalid):
		return zenrpc.NewStringError(422, invalid.Error())
	case errors.As(err, &insufficient):
		return zenrpc.NewStringError(403, insufficient.Error())
	default:
		return err
	}
}
