package usecase

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/domain/repository"
)

// CommentService defines operations on video comments.
type CommentService interface {
	ListVideoComments(ctx context.Context, videoID, viewerID primitive.ObjectID, page model.PageRequest) (*model.Page[*model.Comment], error)
	AddComment(ctx context.Context, videoID, userID primitive.ObjectID, content string) (*model.Comment, error)
	UpdateComment(ctx context.Context, commentID, userID primitive.ObjectID, content string) (*model.Comment, error)
	// DeleteComment removes the comment together with its likes.
	DeleteComment(ctx context.Context, commentID, userID primitive.ObjectID) error
}

type commentService struct {
	comments repository.CommentRepository
	videos   repository.VideoRepository
	likes    repository.LikeRepository
	tx       repository.Transactor
}

// NewCommentService creates a new CommentService instance.
func NewCommentService(
	comments repository.CommentRepository,
	videos repository.VideoRepository,
	likes repository.LikeRepository,
	tx repository.Transactor,
) CommentService {
	return &commentService{
		comments: comments,
		videos:   videos,
		likes:    likes,
		tx:       tx,
	}
}

func (s *commentService) ListVideoComments(ctx context.Context, videoID, viewerID primitive.ObjectID, page model.PageRequest) (*model.Page[*model.Comment], error) {
	if err := s.requireVisibleVideo(ctx, videoID, viewerID); err != nil {
		return nil, err
	}
	return s.comments.ListByVideo(ctx, videoID, page)
}

func (s *commentService) AddComment(ctx context.Context, videoID, userID primitive.ObjectID, content string) (*model.Comment, error) {
	comment, err := model.NewComment(videoID, userID, content)
	if err != nil {
		return nil, err
	}
	if err := s.requireVisibleVideo(ctx, videoID, userID); err != nil {
		return nil, err
	}

	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return comment, nil
}

func (s *commentService) UpdateComment(ctx context.Context, commentID, userID primitive.ObjectID, content string) (*model.Comment, error) {
	content, err := model.ValidateContent(content)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedComment(ctx, commentID, userID); err != nil {
		return nil, err
	}
	return s.comments.UpdateContent(ctx, commentID, content)
}

func (s *commentService) DeleteComment(ctx context.Context, commentID, userID primitive.ObjectID) error {
	if _, err := s.ownedComment(ctx, commentID, userID); err != nil {
		return err
	}

	return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.comments.Delete(ctx, commentID); err != nil {
			return err
		}
		target := model.LikeTarget{Kind: model.TargetComment, ID: commentID}
		if _, err := s.likes.DeleteByTarget(ctx, target); err != nil {
			return fmt.Errorf("delete comment likes: %w", err)
		}
		return nil
	})
}

func (s *commentService) ownedComment(ctx context.Context, commentID, userID primitive.ObjectID) (*model.Comment, error) {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if !comment.IsOwnedBy(userID) {
		return nil, ErrForbidden
	}
	return comment, nil
}

func (s *commentService) requireVisibleVideo(ctx context.Context, videoID, viewerID primitive.ObjectID) error {
	video, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		return err
	}
	if !video.VisibleTo(viewerID) {
		return repository.ErrVideoNotFound
	}
	return nil
}
