package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/domain/repository"
)

func newLikeTestService(likes *memLikeRepository, video *model.Video) LikeService {
	videos := &mockVideoRepository{
		getByIDFn: func(ctx context.Context, id primitive.ObjectID) (*model.Video, error) {
			if video == nil || id != video.ID {
				return nil, repository.ErrVideoNotFound
			}
			return video, nil
		},
	}
	return NewLikeService(likes, videos, &mockCommentRepository{}, &mockTweetRepository{})
}

func TestLikeService_ToggleVideoLike_Parity(t *testing.T) {
	video := &model.Video{ID: primitive.NewObjectID(), OwnerID: primitive.NewObjectID(), IsPublished: true}
	userID := primitive.NewObjectID()
	target := model.LikeTarget{Kind: model.TargetVideo, ID: video.ID}

	for n := 1; n <= 5; n++ {
		likes := newMemLikeRepository()
		svc := newLikeTestService(likes, video)

		var liked bool
		for i := 0; i < n; i++ {
			var err error
			liked, err = svc.ToggleVideoLike(context.Background(), video.ID, userID)
			if err != nil {
				t.Fatalf("toggle %d: %v", i, err)
			}
		}

		wantLiked := n%2 == 1
		if liked != wantLiked {
			t.Errorf("after %d toggles liked = %v, want %v", n, liked, wantLiked)
		}
		if likes.has(target, userID) != wantLiked {
			t.Errorf("after %d toggles stored like = %v, want %v", n, likes.has(target, userID), wantLiked)
		}
	}
}

func TestLikeService_ToggleVideoLike_ConcurrentCreatesLeaveOneLike(t *testing.T) {
	video := &model.Video{ID: primitive.NewObjectID(), OwnerID: primitive.NewObjectID(), IsPublished: true}
	userID := primitive.NewObjectID()
	likes := newMemLikeRepository()
	svc := newLikeTestService(likes, video)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.ToggleVideoLike(context.Background(), video.ID, userID); err != nil {
				t.Errorf("ToggleVideoLike() error = %v", err)
			}
		}()
	}
	wg.Wait()

	if n := likes.count(); n > 1 {
		t.Errorf("likes = %d, want at most 1", n)
	}
}

func TestLikeService_ToggleTargetsMustExist(t *testing.T) {
	userID := primitive.NewObjectID()
	svc := newLikeTestService(newMemLikeRepository(), nil)
	ctx := context.Background()

	if _, err := svc.ToggleVideoLike(ctx, primitive.NewObjectID(), userID); !errors.Is(err, repository.ErrVideoNotFound) {
		t.Errorf("video: error = %v, want %v", err, repository.ErrVideoNotFound)
	}
	if _, err := svc.ToggleCommentLike(ctx, primitive.NewObjectID(), userID); !errors.Is(err, repository.ErrCommentNotFound) {
		t.Errorf("comment: error = %v, want %v", err, repository.ErrCommentNotFound)
	}
	if _, err := svc.ToggleTweetLike(ctx, primitive.NewObjectID(), userID); !errors.Is(err, repository.ErrTweetNotFound) {
		t.Errorf("tweet: error = %v, want %v", err, repository.ErrTweetNotFound)
	}
}

func TestLikeService_ToggleUnpublishedVideo(t *testing.T) {
	video := &model.Video{ID: primitive.NewObjectID(), OwnerID: primitive.NewObjectID(), IsPublished: false}
	svc := newLikeTestService(newMemLikeRepository(), video)

	if _, err := svc.ToggleVideoLike(context.Background(), video.ID, primitive.NewObjectID()); !errors.Is(err, repository.ErrVideoNotFound) {
		t.Errorf("error = %v, want %v", err, repository.ErrVideoNotFound)
	}
	if liked, err := svc.ToggleVideoLike(context.Background(), video.ID, video.OwnerID); err != nil || !liked {
		t.Errorf("owner toggle = %v, %v", liked, err)
	}
}

func TestLikeService_ToggleCommentAndTweetAreIndependent(t *testing.T) {
	userID := primitive.NewObjectID()
	sharedID := primitive.NewObjectID()
	likes := newMemLikeRepository()

	comments := &mockCommentRepository{
		getByIDFn: func(ctx context.Context, id primitive.ObjectID) (*model.Comment, error) {
			return &model.Comment{ID: id}, nil
		},
	}
	tweets := &mockTweetRepository{
		getByIDFn: func(ctx context.Context, id primitive.ObjectID) (*model.Tweet, error) {
			return &model.Tweet{ID: id}, nil
		},
	}
	svc := NewLikeService(likes, &mockVideoRepository{}, comments, tweets)

	if liked, err := svc.ToggleCommentLike(context.Background(), sharedID, userID); err != nil || !liked {
		t.Fatalf("ToggleCommentLike() = %v, %v", liked, err)
	}
	if liked, err := svc.ToggleTweetLike(context.Background(), sharedID, userID); err != nil || !liked {
		t.Fatalf("ToggleTweetLike() = %v, %v", liked, err)
	}
	if likes.count() != 2 {
		t.Errorf("likes = %d, want 2 (targets are distinguished by kind)", likes.count())
	}
}

func TestLikeService_LikedVideos(t *testing.T) {
	userID := primitive.NewObjectID()
	likes := newMemLikeRepository()
	likes.listLikedFn = func(ctx context.Context, likedBy primitive.ObjectID, page model.PageRequest) (*model.Page[*model.LikedVideo], error) {
		if likedBy != userID {
			t.Errorf("likedBy = %v, want %v", likedBy, userID)
		}
		items := []*model.LikedVideo{{LikeID: primitive.NewObjectID(), Video: &model.Video{Title: "a"}}}
		return model.NewPage(items, 11, page), nil
	}
	svc := NewLikeService(likes, &mockVideoRepository{}, &mockCommentRepository{}, &mockTweetRepository{})

	page, err := svc.LikedVideos(context.Background(), userID, model.DefaultPageRequest())
	if err != nil {
		t.Fatalf("LikedVideos() error = %v", err)
	}
	if page.Total != 11 || page.TotalPages() != 2 || !page.HasNext() {
		t.Errorf("page = %+v", page)
	}
}
