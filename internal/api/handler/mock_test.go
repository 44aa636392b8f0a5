package handler

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hszk-dev/vidtube/internal/auth"
	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/usecase"
)

// mockUserService provides a configurable mock for UserService.
type mockUserService struct {
	registerFn         func(ctx context.Context, input usecase.RegisterInput) (*model.User, error)
	loginFn            func(ctx context.Context, input usecase.LoginInput) (*usecase.AuthResult, error)
	logoutFn           func(ctx context.Context, userID primitive.ObjectID) error
	refreshTokenFn     func(ctx context.Context, token string) (*auth.TokenPair, error)
	changePasswordFn   func(ctx context.Context, userID primitive.ObjectID, oldPassword, newPassword string) error
	currentUserFn      func(ctx context.Context, userID primitive.ObjectID) (*model.User, error)
	updateAccountFn    func(ctx context.Context, userID primitive.ObjectID, fullName, email string) (*model.User, error)
	updateAvatarFn     func(ctx context.Context, userID primitive.ObjectID, localPath string) (*model.User, error)
	updateCoverImageFn func(ctx context.Context, userID primitive.ObjectID, localPath string) (*model.User, error)
	channelProfileFn   func(ctx context.Context, username string, viewerID primitive.ObjectID) (*model.ChannelProfile, error)
	watchHistoryFn     func(ctx context.Context, userID primitive.ObjectID) ([]*model.Video, error)
}

func (m *mockUserService) Register(ctx context.Context, input usecase.RegisterInput) (*model.User, error) {
	if m.registerFn != nil {
		return m.registerFn(ctx, input)
	}
	return &model.User{ID: primitive.NewObjectID()}, nil
}

func (m *mockUserService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.AuthResult, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, input)
	}
	return nil, usecase.ErrInvalidCredentials
}

func (m *mockUserService) Logout(ctx context.Context, userID primitive.ObjectID) error {
	if m.logoutFn != nil {
		return m.logoutFn(ctx, userID)
	}
	return nil
}

func (m *mockUserService) RefreshToken(ctx context.Context, token string) (*auth.TokenPair, error) {
	if m.refreshTokenFn != nil {
		return m.refreshTokenFn(ctx, token)
	}
	return nil, usecase.ErrInvalidRefreshToken
}

func (m *mockUserService) ChangePassword(ctx context.Context, userID primitive.ObjectID, oldPassword, newPassword string) error {
	if m.changePasswordFn != nil {
		return m.changePasswordFn(ctx, userID, oldPassword, newPassword)
	}
	return nil
}

func (m *mockUserService) CurrentUser(ctx context.Context, userID primitive.ObjectID) (*model.User, error) {
	if m.currentUserFn != nil {
		return m.currentUserFn(ctx, userID)
	}
	return &model.User{ID: userID}, nil
}

func (m *mockUserService) UpdateAccount(ctx context.Context, userID primitive.ObjectID, fullName, email string) (*model.User, error) {
	if m.updateAccountFn != nil {
		return m.updateAccountFn(ctx, userID, fullName, email)
	}
	return &model.User{ID: userID, FullName: fullName, Email: email}, nil
}

func (m *mockUserService) UpdateAvatar(ctx context.Context, userID primitive.ObjectID, localPath string) (*model.User, error) {
	if m.updateAvatarFn != nil {
		return m.updateAvatarFn(ctx, userID, localPath)
	}
	return &model.User{ID: userID}, nil
}

func (m *mockUserService) UpdateCoverImage(ctx context.Context, userID primitive.ObjectID, localPath string) (*model.User, error) {
	if m.updateCoverImageFn != nil {
		return m.updateCoverImageFn(ctx, userID, localPath)
	}
	return &model.User{ID: userID}, nil
}

func (m *mockUserService) ChannelProfile(ctx context.Context, username string, viewerID primitive.ObjectID) (*model.ChannelProfile, error) {
	if m.channelProfileFn != nil {
		return m.channelProfileFn(ctx, username, viewerID)
	}
	return &model.ChannelProfile{}, nil
}

func (m *mockUserService) WatchHistory(ctx context.Context, userID primitive.ObjectID) ([]*model.Video, error) {
	if m.watchHistoryFn != nil {
		return m.watchHistoryFn(ctx, userID)
	}
	return []*model.Video{}, nil
}

// mockVideoService provides a configurable mock for VideoService.
type mockVideoService struct {
	listVideosFn    func(ctx context.Context, input usecase.ListVideosInput) (*model.Page[*model.Video], error)
	publishVideoFn  func(ctx context.Context, input usecase.PublishVideoInput) (*model.Video, error)
	getVideoFn      func(ctx context.Context, videoID, viewerID primitive.ObjectID) (*model.Video, error)
	recordViewFn    func(ctx context.Context, videoID, viewerID primitive.ObjectID) error
	updateVideoFn   func(ctx context.Context, input usecase.UpdateVideoInput) (*model.Video, error)
	deleteVideoFn   func(ctx context.Context, videoID, userID primitive.ObjectID) error
	togglePublishFn func(ctx context.Context, videoID, userID primitive.ObjectID) (*model.Video, error)
}

func (m *mockVideoService) ListVideos(ctx context.Context, input usecase.ListVideosInput) (*model.Page[*model.Video], error) {
	if m.listVideosFn != nil {
		return m.listVideosFn(ctx, input)
	}
	return model.NewPage[*model.Video](nil, 0, input.Page), nil
}

func (m *mockVideoService) PublishVideo(ctx context.Context, input usecase.PublishVideoInput) (*model.Video, error) {
	if m.publishVideoFn != nil {
		return m.publishVideoFn(ctx, input)
	}
	return &model.Video{ID: primitive.NewObjectID(), OwnerID: input.OwnerID}, nil
}

func (m *mockVideoService) GetVideo(ctx context.Context, videoID, viewerID primitive.ObjectID) (*model.Video, error) {
	if m.getVideoFn != nil {
		return m.getVideoFn(ctx, videoID, viewerID)
	}
	return &model.Video{ID: videoID}, nil
}

func (m *mockVideoService) RecordView(ctx context.Context, videoID, viewerID primitive.ObjectID) error {
	if m.recordViewFn != nil {
		return m.recordViewFn(ctx, videoID, viewerID)
	}
	return nil
}

func (m *mockVideoService) UpdateVideo(ctx context.Context, input usecase.UpdateVideoInput) (*model.Video, error) {
	if m.updateVideoFn != nil {
		return m.updateVideoFn(ctx, input)
	}
	return &model.Video{ID: input.VideoID, Title: input.Title, Description: input.Description}, nil
}

func (m *mockVideoService) DeleteVideo(ctx context.Context, videoID, userID primitive.ObjectID) error {
	if m.deleteVideoFn != nil {
		return m.deleteVideoFn(ctx, videoID, userID)
	}
	return nil
}

func (m *mockVideoService) TogglePublish(ctx context.Context, videoID, userID primitive.ObjectID) (*model.Video, error) {
	if m.togglePublishFn != nil {
		return m.togglePublishFn(ctx, videoID, userID)
	}
	return &model.Video{ID: videoID}, nil
}

// mockCommentService provides a configurable mock for CommentService.
type mockCommentService struct {
	listFn   func(ctx context.Context, videoID, viewerID primitive.ObjectID, page model.PageRequest) (*model.Page[*model.Comment], error)
	addFn    func(ctx context.Context, videoID, userID primitive.ObjectID, content string) (*model.Comment, error)
	updateFn func(ctx context.Context, commentID, userID primitive.ObjectID, content string) (*model.Comment, error)
	deleteFn func(ctx context.Context, commentID, userID primitive.ObjectID) error
}

func (m *mockCommentService) ListVideoComments(ctx context.Context, videoID, viewerID primitive.ObjectID, page model.PageRequest) (*model.Page[*model.Comment], error) {
	if m.listFn != nil {
		return m.listFn(ctx, videoID, viewerID, page)
	}
	return model.NewPage[*model.Comment](nil, 0, page), nil
}

func (m *mockCommentService) AddComment(ctx context.Context, videoID, userID primitive.ObjectID, content string) (*model.Comment, error) {
	if m.addFn != nil {
		return m.addFn(ctx, videoID, userID, content)
	}
	return &model.Comment{ID: primitive.NewObjectID(), VideoID: videoID, OwnerID: userID, Content: content}, nil
}

func (m *mockCommentService) UpdateComment(ctx context.Context, commentID, userID primitive.ObjectID, content string) (*model.Comment, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, commentID, userID, content)
	}
	return &model.Comment{ID: commentID, OwnerID: userID, Content: content}, nil
}

func (m *mockCommentService) DeleteComment(ctx context.Context, commentID, userID primitive.ObjectID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, commentID, userID)
	}
	return nil
}

// mockLikeService provides a configurable mock for LikeService.
type mockLikeService struct {
	toggleFn      func(ctx context.Context, kind model.TargetKind, targetID, userID primitive.ObjectID) (bool, error)
	likedVideosFn func(ctx context.Context, userID primitive.ObjectID, page model.PageRequest) (*model.Page[*model.LikedVideo], error)
}

func (m *mockLikeService) toggle(ctx context.Context, kind model.TargetKind, targetID, userID primitive.ObjectID) (bool, error) {
	if m.toggleFn != nil {
		return m.toggleFn(ctx, kind, targetID, userID)
	}
	return true, nil
}

func (m *mockLikeService) ToggleVideoLike(ctx context.Context, videoID, userID primitive.ObjectID) (bool, error) {
	return m.toggle(ctx, model.TargetVideo, videoID, userID)
}

func (m *mockLikeService) ToggleCommentLike(ctx context.Context, commentID, userID primitive.ObjectID) (bool, error) {
	return m.toggle(ctx, model.TargetComment, commentID, userID)
}

func (m *mockLikeService) ToggleTweetLike(ctx context.Context, tweetID, userID primitive.ObjectID) (bool, error) {
	return m.toggle(ctx, model.TargetTweet, tweetID, userID)
}

func (m *mockLikeService) LikedVideos(ctx context.Context, userID primitive.ObjectID, page model.PageRequest) (*model.Page[*model.LikedVideo], error) {
	if m.likedVideosFn != nil {
		return m.likedVideosFn(ctx, userID, page)
	}
	return model.NewPage[*model.LikedVideo](nil, 0, page), nil
}

// mockSubscriptionService provides a configurable mock for SubscriptionService.
type mockSubscriptionService struct {
	toggleFn      func(ctx context.Context, channelID, subscriberID primitive.ObjectID) (bool, error)
	subscribersFn func(ctx context.Context, channelID primitive.ObjectID) (*model.SubscriberList, error)
	channelsFn    func(ctx context.Context, subscriberID primitive.ObjectID) ([]*model.Subscription, error)
}

func (m *mockSubscriptionService) ToggleSubscription(ctx context.Context, channelID, subscriberID primitive.ObjectID) (bool, error) {
	if m.toggleFn != nil {
		return m.toggleFn(ctx, channelID, subscriberID)
	}
	return true, nil
}

func (m *mockSubscriptionService) ChannelSubscribers(ctx context.Context, channelID primitive.ObjectID) (*model.SubscriberList, error) {
	if m.subscribersFn != nil {
		return m.subscribersFn(ctx, channelID)
	}
	return &model.SubscriberList{Subscribers: []*model.Subscription{}}, nil
}

func (m *mockSubscriptionService) SubscribedChannels(ctx context.Context, subscriberID primitive.ObjectID) ([]*model.Subscription, error) {
	if m.channelsFn != nil {
		return m.channelsFn(ctx, subscriberID)
	}
	return []*model.Subscription{}, nil
}

// mockTweetService provides a configurable mock for TweetService.
type mockTweetService struct {
	createFn func(ctx context.Context, ownerID primitive.ObjectID, content string) (*model.Tweet, error)
	listFn   func(ctx context.Context, userID primitive.ObjectID, page model.PageRequest) (*model.Page[*model.Tweet], error)
	updateFn func(ctx context.Context, tweetID, userID primitive.ObjectID, content string) (*model.Tweet, error)
	deleteFn func(ctx context.Context, tweetID, userID primitive.ObjectID) error
}

func (m *mockTweetService) CreateTweet(ctx context.Context, ownerID primitive.ObjectID, content string) (*model.Tweet, error) {
	if m.createFn != nil {
		return m.createFn(ctx, ownerID, content)
	}
	return &model.Tweet{ID: primitive.NewObjectID(), OwnerID: ownerID, Content: content}, nil
}

func (m *mockTweetService) UserTweets(ctx context.Context, userID primitive.ObjectID, page model.PageRequest) (*model.Page[*model.Tweet], error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID, page)
	}
	return model.NewPage[*model.Tweet](nil, 0, page), nil
}

func (m *mockTweetService) UpdateTweet(ctx context.Context, tweetID, userID primitive.ObjectID, content string) (*model.Tweet, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, tweetID, userID, content)
	}
	return &model.Tweet{ID: tweetID, OwnerID: userID, Content: content}, nil
}

func (m *mockTweetService) DeleteTweet(ctx context.Context, tweetID, userID primitive.ObjectID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, tweetID, userID)
	}
	return nil
}

// mockPlaylistService provides a configurable mock for PlaylistService.
type mockPlaylistService struct {
	createFn      func(ctx context.Context, ownerID primitive.ObjectID, name, description string) (*model.Playlist, error)
	listFn        func(ctx context.Context, userID primitive.ObjectID) ([]*model.Playlist, error)
	getFn         func(ctx context.Context, playlistID, viewerID primitive.ObjectID) (*model.Playlist, error)
	addVideoFn    func(ctx context.Context, playlistID, videoID, userID primitive.ObjectID) (*model.Playlist, error)
	removeVideoFn func(ctx context.Context, playlistID, videoID, userID primitive.ObjectID) (*model.Playlist, error)
	updateFn      func(ctx context.Context, playlistID, userID primitive.ObjectID, name, description string) (*model.Playlist, error)
	deleteFn      func(ctx context.Context, playlistID, userID primitive.ObjectID) error
}

func (m *mockPlaylistService) CreatePlaylist(ctx context.Context, ownerID primitive.ObjectID, name, description string) (*model.Playlist, error) {
	if m.createFn != nil {
		return m.createFn(ctx, ownerID, name, description)
	}
	return &model.Playlist{ID: primitive.NewObjectID(), OwnerID: ownerID, Name: name, Description: description}, nil
}

func (m *mockPlaylistService) UserPlaylists(ctx context.Context, userID primitive.ObjectID) ([]*model.Playlist, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return []*model.Playlist{}, nil
}

func (m *mockPlaylistService) GetPlaylist(ctx context.Context, playlistID, viewerID primitive.ObjectID) (*model.Playlist, error) {
	if m.getFn != nil {
		return m.getFn(ctx, playlistID, viewerID)
	}
	return &model.Playlist{ID: playlistID}, nil
}

func (m *mockPlaylistService) AddVideo(ctx context.Context, playlistID, videoID, userID primitive.ObjectID) (*model.Playlist, error) {
	if m.addVideoFn != nil {
		return m.addVideoFn(ctx, playlistID, videoID, userID)
	}
	return &model.Playlist{ID: playlistID, OwnerID: userID, VideoIDs: []primitive.ObjectID{videoID}}, nil
}

func (m *mockPlaylistService) RemoveVideo(ctx context.Context, playlistID, videoID, userID primitive.ObjectID) (*model.Playlist, error) {
	if m.removeVideoFn != nil {
		return m.removeVideoFn(ctx, playlistID, videoID, userID)
	}
	return &model.Playlist{ID: playlistID, OwnerID: userID}, nil
}

func (m *mockPlaylistService) UpdatePlaylist(ctx context.Context, playlistID, userID primitive.ObjectID, name, description string) (*model.Playlist, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, playlistID, userID, name, description)
	}
	return &model.Playlist{ID: playlistID, OwnerID: userID, Name: name, Description: description}, nil
}

func (m *mockPlaylistService) DeletePlaylist(ctx context.Context, playlistID, userID primitive.ObjectID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, playlistID, userID)
	}
	return nil
}

// mockDashboardService provides a configurable mock for DashboardService.
type mockDashboardService struct {
	statsFn  func(ctx context.Context, userID primitive.ObjectID) (*model.ChannelStats, error)
	videosFn func(ctx context.Context, userID primitive.ObjectID, page model.PageRequest) (*model.Page[*model.Video], error)
}

func (m *mockDashboardService) ChannelStats(ctx context.Context, userID primitive.ObjectID) (*model.ChannelStats, error) {
	if m.statsFn != nil {
		return m.statsFn(ctx, userID)
	}
	return &model.ChannelStats{}, nil
}

func (m *mockDashboardService) ChannelVideos(ctx context.Context, userID primitive.ObjectID, page model.PageRequest) (*model.Page[*model.Video], error) {
	if m.videosFn != nil {
		return m.videosFn(ctx, userID, page)
	}
	return model.NewPage[*model.Video](nil, 0, page), nil
}
