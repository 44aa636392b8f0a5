package usecase

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/domain/repository"
)

func TestCommentService_DeleteComment_CascadesLikes(t *testing.T) {
	ownerID := primitive.NewObjectID()
	comment := &model.Comment{ID: primitive.NewObjectID(), OwnerID: ownerID}

	likes := newMemLikeRepository()
	target := model.LikeTarget{Kind: model.TargetComment, ID: comment.ID}
	for i := 0; i < 4; i++ {
		like, _ := model.NewLike(target, primitive.NewObjectID())
		_ = likes.Create(context.Background(), like)
	}
	other, _ := model.NewLike(model.LikeTarget{Kind: model.TargetComment, ID: primitive.NewObjectID()}, ownerID)
	_ = likes.Create(context.Background(), other)

	deleted := false
	comments := &mockCommentRepository{
		getByIDFn: func(ctx context.Context, id primitive.ObjectID) (*model.Comment, error) {
			if deleted {
				return nil, repository.ErrCommentNotFound
			}
			return comment, nil
		},
		deleteFn: func(ctx context.Context, id primitive.ObjectID) error {
			deleted = true
			return nil
		},
	}
	tx := &mockTransactor{}
	svc := NewCommentService(comments, &mockVideoRepository{}, likes, tx)

	if err := svc.DeleteComment(context.Background(), comment.ID, ownerID); err != nil {
		t.Fatalf("DeleteComment() error = %v", err)
	}

	if !deleted {
		t.Error("comment was not deleted")
	}
	if tx.calls != 1 {
		t.Errorf("transaction calls = %d, want 1", tx.calls)
	}
	if n := likes.count(); n != 1 {
		t.Errorf("remaining likes = %d, want 1", n)
	}
	if _, err := comments.GetByID(context.Background(), comment.ID); !errors.Is(err, repository.ErrCommentNotFound) {
		t.Errorf("GetByID after delete: error = %v", err)
	}
}

func TestCommentService_OwnerOnlyMutations(t *testing.T) {
	ownerID := primitive.NewObjectID()
	commentID := primitive.NewObjectID()
	comments := &mockCommentRepository{
		getByIDFn: func(ctx context.Context, id primitive.ObjectID) (*model.Comment, error) {
			return &model.Comment{ID: id, OwnerID: ownerID}, nil
		},
		deleteFn: func(ctx context.Context, id primitive.ObjectID) error {
			t.Error("Delete must not be called")
			return nil
		},
		updateContentFn: func(ctx context.Context, id primitive.ObjectID, content string) (*model.Comment, error) {
			t.Error("UpdateContent must not be called")
			return nil, nil
		},
	}
	svc := NewCommentService(comments, &mockVideoRepository{}, newMemLikeRepository(), &mockTransactor{})
	intruder := primitive.NewObjectID()

	if _, err := svc.UpdateComment(context.Background(), commentID, intruder, "hi"); !errors.Is(err, ErrForbidden) {
		t.Errorf("UpdateComment() error = %v, want %v", err, ErrForbidden)
	}
	if err := svc.DeleteComment(context.Background(), commentID, intruder); !errors.Is(err, ErrForbidden) {
		t.Errorf("DeleteComment() error = %v, want %v", err, ErrForbidden)
	}
}

func TestCommentService_AddComment(t *testing.T) {
	published := &model.Video{ID: primitive.NewObjectID(), OwnerID: primitive.NewObjectID(), IsPublished: true}
	userID := primitive.NewObjectID()

	tests := []struct {
		name    string
		videoID primitive.ObjectID
		content string
		wantErr error
	}{
		{name: "success", videoID: published.ID, content: "  nice video "},
		{name: "empty content", videoID: published.ID, content: "   ", wantErr: model.ErrEmptyContent},
		{name: "unknown video", videoID: primitive.NewObjectID(), content: "hi", wantErr: repository.ErrVideoNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			videos := &mockVideoRepository{
				getByIDFn: func(ctx context.Context, id primitive.ObjectID) (*model.Video, error) {
					if id == published.ID {
						return published, nil
					}
					return nil, repository.ErrVideoNotFound
				},
			}
			var created *model.Comment
			comments := &mockCommentRepository{
				createFn: func(ctx context.Context, c *model.Comment) error {
					created = c
					return nil
				},
			}
			svc := NewCommentService(comments, videos, newMemLikeRepository(), &mockTransactor{})

			got, err := svc.AddComment(context.Background(), tt.videoID, userID, tt.content)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("AddComment() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				if created != nil {
					t.Error("no comment should be created")
				}
				return
			}
			if got.Content != "nice video" || got.VideoID != published.ID || got.OwnerID != userID {
				t.Errorf("comment = %+v", got)
			}
		})
	}
}

func TestCommentService_ListVideoComments(t *testing.T) {
	video := &model.Video{ID: primitive.NewObjectID(), OwnerID: primitive.NewObjectID(), IsPublished: true}
	videos := &mockVideoRepository{
		getByIDFn: func(ctx context.Context, id primitive.ObjectID) (*model.Video, error) {
			if id == video.ID {
				return video, nil
			}
			return nil, repository.ErrVideoNotFound
		},
	}
	comments := &mockCommentRepository{
		listByVideoFn: func(ctx context.Context, videoID primitive.ObjectID, page model.PageRequest) (*model.Page[*model.Comment], error) {
			// 12 comments, default limit 10.
			n := int64(10)
			if page.Page == 2 {
				n = 2
			}
			if page.Page > 2 {
				n = 0
			}
			items := make([]*model.Comment, n)
			for i := range items {
				items[i] = &model.Comment{ID: primitive.NewObjectID(), VideoID: videoID}
			}
			return model.NewPage(items, 12, page), nil
		},
	}
	svc := NewCommentService(comments, videos, newMemLikeRepository(), &mockTransactor{})
	ctx := context.Background()

	tests := []struct {
		page      int64
		wantItems int
		wantNext  bool
	}{
		{page: 1, wantItems: 10, wantNext: true},
		{page: 2, wantItems: 2, wantNext: false},
		{page: 5, wantItems: 0, wantNext: false},
	}
	for _, tt := range tests {
		req, err := model.NewPageRequest(tt.page, 10, "", model.SortDesc, model.CommentSortFields)
		if err != nil {
			t.Fatalf("NewPageRequest() error = %v", err)
		}
		page, err := svc.ListVideoComments(ctx, video.ID, primitive.NilObjectID, req)
		if err != nil {
			t.Fatalf("page %d: %v", tt.page, err)
		}
		if len(page.Items) != tt.wantItems || page.HasNext() != tt.wantNext {
			t.Errorf("page %d: items=%d hasNext=%v", tt.page, len(page.Items), page.HasNext())
		}
	}

	if _, err := svc.ListVideoComments(ctx, primitive.NewObjectID(), primitive.NilObjectID, model.DefaultPageRequest()); !errors.Is(err, repository.ErrVideoNotFound) {
		t.Errorf("unknown video: error = %v", err)
	}
}
