package usecase

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/domain/repository"
)

// mockUserRepository provides a configurable mock for UserRepository.
type mockUserRepository struct {
	createFn               func(ctx context.Context, user *model.User) error
	getByIDFn              func(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	getByUsernameOrEmailFn func(ctx context.Context, username, email string) (*model.User, error)
	updateAccountFn        func(ctx context.Context, id primitive.ObjectID, fullName, email string) (*model.User, error)
	updatePasswordFn       func(ctx context.Context, id primitive.ObjectID, hash string) error
	setAvatarFn            func(ctx context.Context, id primitive.ObjectID, url string) (*model.User, error)
	setCoverImageFn        func(ctx context.Context, id primitive.ObjectID, url string) (*model.User, error)
	setRefreshTokenFn      func(ctx context.Context, id primitive.ObjectID, token string) error
	rotateRefreshTokenFn   func(ctx context.Context, id primitive.ObjectID, current, next string) error
	clearRefreshTokenFn    func(ctx context.Context, id primitive.ObjectID) error
	addToWatchHistoryFn    func(ctx context.Context, id, videoID primitive.ObjectID, limit int) error
	getChannelProfileFn    func(ctx context.Context, username string, viewerID primitive.ObjectID) (*model.ChannelProfile, error)
	getWatchHistoryFn      func(ctx context.Context, id primitive.ObjectID) ([]*model.Video, error)
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return &model.User{ID: id}, nil
}

func (m *mockUserRepository) GetByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error) {
	if m.getByUsernameOrEmailFn != nil {
		return m.getByUsernameOrEmailFn(ctx, username, email)
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockUserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return m.GetByUsernameOrEmail(ctx, username, "")
}

func (m *mockUserRepository) UpdateAccount(ctx context.Context, id primitive.ObjectID, fullName, email string) (*model.User, error) {
	if m.updateAccountFn != nil {
		return m.updateAccountFn(ctx, id, fullName, email)
	}
	return &model.User{ID: id, FullName: fullName, Email: email}, nil
}

func (m *mockUserRepository) UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	if m.updatePasswordFn != nil {
		return m.updatePasswordFn(ctx, id, hash)
	}
	return nil
}

func (m *mockUserRepository) SetAvatar(ctx context.Context, id primitive.ObjectID, url string) (*model.User, error) {
	if m.setAvatarFn != nil {
		return m.setAvatarFn(ctx, id, url)
	}
	return &model.User{ID: id}, nil
}

func (m *mockUserRepository) SetCoverImage(ctx context.Context, id primitive.ObjectID, url string) (*model.User, error) {
	if m.setCoverImageFn != nil {
		return m.setCoverImageFn(ctx, id, url)
	}
	return &model.User{ID: id}, nil
}

func (m *mockUserRepository) SetRefreshToken(ctx context.Context, id primitive.ObjectID, token string) error {
	if m.setRefreshTokenFn != nil {
		return m.setRefreshTokenFn(ctx, id, token)
	}
	return nil
}

func (m *mockUserRepository) RotateRefreshToken(ctx context.Context, id primitive.ObjectID, current, next string) error {
	if m.rotateRefreshTokenFn != nil {
		return m.rotateRefreshTokenFn(ctx, id, current, next)
	}
	return nil
}

func (m *mockUserRepository) ClearRefreshToken(ctx context.Context, id primitive.ObjectID) error {
	if m.clearRefreshTokenFn != nil {
		return m.clearRefreshTokenFn(ctx, id)
	}
	return nil
}

func (m *mockUserRepository) AddToWatchHistory(ctx context.Context, id, videoID primitive.ObjectID, limit int) error {
	if m.addToWatchHistoryFn != nil {
		return m.addToWatchHistoryFn(ctx, id, videoID, limit)
	}
	return nil
}

func (m *mockUserRepository) GetChannelProfile(ctx context.Context, username string, viewerID primitive.ObjectID) (*model.ChannelProfile, error) {
	if m.getChannelProfileFn != nil {
		return m.getChannelProfileFn(ctx, username, viewerID)
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockUserRepository) GetWatchHistory(ctx context.Context, id primitive.ObjectID) ([]*model.Video, error) {
	if m.getWatchHistoryFn != nil {
		return m.getWatchHistoryFn(ctx, id)
	}
	return []*model.Video{}, nil
}

// mockVideoRepository provides a configurable mock for VideoRepository.
type mockVideoRepository struct {
	createFn          func(ctx context.Context, video *model.Video) error
	getByIDFn         func(ctx context.Context, id primitive.ObjectID) (*model.Video, error)
	getWithOwnerFn    func(ctx context.Context, id primitive.ObjectID) (*model.Video, error)
	listFn            func(ctx context.Context, filter repository.VideoFilter, page model.PageRequest) (*model.Page[*model.Video], error)
	updateFn          func(ctx context.Context, id primitive.ObjectID, update repository.VideoUpdate) (*model.Video, error)
	togglePublishedFn func(ctx context.Context, id primitive.ObjectID) (*model.Video, error)
	incrementViewsFn  func(ctx context.Context, id primitive.ObjectID) error
	deleteFn          func(ctx context.Context, id primitive.ObjectID) (*model.Video, error)
	statsFn           func(ctx context.Context, ownerID primitive.ObjectID) (int64, int64, error)

	mu                sync.Mutex
	getWithOwnerCount int
}

func (m *mockVideoRepository) Create(ctx context.Context, video *model.Video) error {
	if m.createFn != nil {
		return m.createFn(ctx, video)
	}
	return nil
}

func (m *mockVideoRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Video, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, repository.ErrVideoNotFound
}

func (m *mockVideoRepository) GetWithOwner(ctx context.Context, id primitive.ObjectID) (*model.Video, error) {
	m.mu.Lock()
	m.getWithOwnerCount++
	m.mu.Unlock()
	if m.getWithOwnerFn != nil {
		return m.getWithOwnerFn(ctx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *mockVideoRepository) getWithOwnerCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getWithOwnerCount
}

func (m *mockVideoRepository) List(ctx context.Context, filter repository.VideoFilter, page model.PageRequest) (*model.Page[*model.Video], error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter, page)
	}
	return model.NewPage[*model.Video](nil, 0, page), nil
}

func (m *mockVideoRepository) Update(ctx context.Context, id primitive.ObjectID, update repository.VideoUpdate) (*model.Video, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, update)
	}
	return &model.Video{ID: id}, nil
}

func (m *mockVideoRepository) TogglePublished(ctx context.Context, id primitive.ObjectID) (*model.Video, error) {
	if m.togglePublishedFn != nil {
		return m.togglePublishedFn(ctx, id)
	}
	return &model.Video{ID: id}, nil
}

func (m *mockVideoRepository) IncrementViews(ctx context.Context, id primitive.ObjectID) error {
	if m.incrementViewsFn != nil {
		return m.incrementViewsFn(ctx, id)
	}
	return nil
}

func (m *mockVideoRepository) Delete(ctx context.Context, id primitive.ObjectID) (*model.Video, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return &model.Video{ID: id}, nil
}

func (m *mockVideoRepository) Stats(ctx context.Context, ownerID primitive.ObjectID) (int64, int64, error) {
	if m.statsFn != nil {
		return m.statsFn(ctx, ownerID)
	}
	return 0, 0, nil
}

// mockCommentRepository provides a configurable mock for CommentRepository.
type mockCommentRepository struct {
	createFn        func(ctx context.Context, comment *model.Comment) error
	getByIDFn       func(ctx context.Context, id primitive.ObjectID) (*model.Comment, error)
	listByVideoFn   func(ctx context.Context, videoID primitive.ObjectID, page model.PageRequest) (*model.Page[*model.Comment], error)
	updateContentFn func(ctx context.Context, id primitive.ObjectID, content string) (*model.Comment, error)
	deleteFn        func(ctx context.Context, id primitive.ObjectID) error
}

func (m *mockCommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	if m.createFn != nil {
		return m.createFn(ctx, comment)
	}
	return nil
}

func (m *mockCommentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Comment, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, repository.ErrCommentNotFound
}

func (m *mockCommentRepository) ListByVideo(ctx context.Context, videoID primitive.ObjectID, page model.PageRequest) (*model.Page[*model.Comment], error) {
	if m.listByVideoFn != nil {
		return m.listByVideoFn(ctx, videoID, page)
	}
	return model.NewPage[*model.Comment](nil, 0, page), nil
}

func (m *mockCommentRepository) UpdateContent(ctx context.Context, id primitive.ObjectID, content string) (*model.Comment, error) {
	if m.updateContentFn != nil {
		return m.updateContentFn(ctx, id, content)
	}
	return &model.Comment{ID: id, Content: content}, nil
}

func (m *mockCommentRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// mockTweetRepository provides a configurable mock for TweetRepository.
type mockTweetRepository struct {
	createFn        func(ctx context.Context, tweet *model.Tweet) error
	getByIDFn       func(ctx context.Context, id primitive.ObjectID) (*model.Tweet, error)
	listByOwnerFn   func(ctx context.Context, ownerID primitive.ObjectID, page model.PageRequest) (*model.Page[*model.Tweet], error)
	updateContentFn func(ctx context.Context, id primitive.ObjectID, content string) (*model.Tweet, error)
	deleteFn        func(ctx context.Context, id primitive.ObjectID) error
}

func (m *mockTweetRepository) Create(ctx context.Context, tweet *model.Tweet) error {
	if m.createFn != nil {
		return m.createFn(ctx, tweet)
	}
	return nil
}

func (m *mockTweetRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Tweet, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, repository.ErrTweetNotFound
}

func (m *mockTweetRepository) ListByOwner(ctx context.Context, ownerID primitive.ObjectID, page model.PageRequest) (*model.Page[*model.Tweet], error) {
	if m.listByOwnerFn != nil {
		return m.listByOwnerFn(ctx, ownerID, page)
	}
	return model.NewPage[*model.Tweet](nil, 0, page), nil
}

func (m *mockTweetRepository) UpdateContent(ctx context.Context, id primitive.ObjectID, content string) (*model.Tweet, error) {
	if m.updateContentFn != nil {
		return m.updateContentFn(ctx, id, content)
	}
	return &model.Tweet{ID: id, Content: content}, nil
}

func (m *mockTweetRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// memLikeRepository is an in-memory LikeRepository enforcing the (target, liker) uniqueness.
type memLikeRepository struct {
	mu    sync.Mutex
	likes map[likeKey]*model.Like

	deleteByTargetFn func(ctx context.Context, target model.LikeTarget) (int64, error)
	countForOwnerFn  func(ctx context.Context, ownerID primitive.ObjectID) (int64, error)
	listLikedFn      func(ctx context.Context, likedBy primitive.ObjectID, page model.PageRequest) (*model.Page[*model.LikedVideo], error)
}

type likeKey struct {
	target  model.LikeTarget
	likedBy primitive.ObjectID
}

func newMemLikeRepository() *memLikeRepository {
	return &memLikeRepository{likes: make(map[likeKey]*model.Like)}
}

func (m *memLikeRepository) Create(ctx context.Context, like *model.Like) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := likeKey{like.Target, like.LikedBy}
	if _, ok := m.likes[key]; ok {
		return repository.ErrDuplicateLike
	}
	m.likes[key] = like
	return nil
}

func (m *memLikeRepository) Delete(ctx context.Context, target model.LikeTarget, likedBy primitive.ObjectID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := likeKey{target, likedBy}
	if _, ok := m.likes[key]; !ok {
		return false, nil
	}
	delete(m.likes, key)
	return true, nil
}

func (m *memLikeRepository) DeleteByTarget(ctx context.Context, target model.LikeTarget) (int64, error) {
	if m.deleteByTargetFn != nil {
		return m.deleteByTargetFn(ctx, target)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for key := range m.likes {
		if key.target == target {
			delete(m.likes, key)
			n++
		}
	}
	return n, nil
}

func (m *memLikeRepository) CountForOwner(ctx context.Context, ownerID primitive.ObjectID) (int64, error) {
	if m.countForOwnerFn != nil {
		return m.countForOwnerFn(ctx, ownerID)
	}
	return 0, nil
}

func (m *memLikeRepository) ListLikedVideos(ctx context.Context, likedBy primitive.ObjectID, page model.PageRequest) (*model.Page[*model.LikedVideo], error) {
	if m.listLikedFn != nil {
		return m.listLikedFn(ctx, likedBy, page)
	}
	return model.NewPage[*model.LikedVideo](nil, 0, page), nil
}

func (m *memLikeRepository) has(target model.LikeTarget, likedBy primitive.ObjectID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.likes[likeKey{target, likedBy}]
	return ok
}

func (m *memLikeRepository) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.likes)
}

// memSubscriptionRepository is an in-memory SubscriptionRepository enforcing (subscriber, channel) uniqueness.
type memSubscriptionRepository struct {
	mu   sync.Mutex
	subs map[[2]primitive.ObjectID]*model.Subscription

	listErr error
}

func newMemSubscriptionRepository() *memSubscriptionRepository {
	return &memSubscriptionRepository{subs: make(map[[2]primitive.ObjectID]*model.Subscription)}
}

func (m *memSubscriptionRepository) Create(ctx context.Context, sub *model.Subscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := [2]primitive.ObjectID{sub.SubscriberID, sub.ChannelID}
	if _, ok := m.subs[key]; ok {
		return repository.ErrDuplicateSubscription
	}
	m.subs[key] = sub
	return nil
}

func (m *memSubscriptionRepository) Delete(ctx context.Context, subscriberID, channelID primitive.ObjectID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := [2]primitive.ObjectID{subscriberID, channelID}
	if _, ok := m.subs[key]; !ok {
		return false, nil
	}
	delete(m.subs, key)
	return true, nil
}

func (m *memSubscriptionRepository) ListSubscribers(ctx context.Context, channelID primitive.ObjectID) ([]*model.Subscription, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Subscription
	for key, sub := range m.subs {
		if key[1] == channelID {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (m *memSubscriptionRepository) CountSubscribers(ctx context.Context, channelID primitive.ObjectID) (int64, error) {
	subs, err := m.ListSubscribers(ctx, channelID)
	return int64(len(subs)), err
}

func (m *memSubscriptionRepository) ListSubscribedChannels(ctx context.Context, subscriberID primitive.ObjectID) ([]*model.Subscription, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Subscription
	for key, sub := range m.subs {
		if key[0] == subscriberID {
			out = append(out, sub)
		}
	}
	return out, nil
}

// mockPlaylistRepository provides a configurable mock for PlaylistRepository.
type mockPlaylistRepository struct {
	createFn        func(ctx context.Context, playlist *model.Playlist) error
	getByIDFn       func(ctx context.Context, id primitive.ObjectID) (*model.Playlist, error)
	getWithVideosFn func(ctx context.Context, id, viewerID primitive.ObjectID) (*model.Playlist, error)
	listByOwnerFn   func(ctx context.Context, ownerID primitive.ObjectID) ([]*model.Playlist, error)
	addVideoFn      func(ctx context.Context, id, videoID primitive.ObjectID) (*model.Playlist, bool, error)
	removeVideoFn   func(ctx context.Context, id, videoID primitive.ObjectID) (*model.Playlist, error)
	updateFn        func(ctx context.Context, id primitive.ObjectID, name, description string) (*model.Playlist, error)
	deleteFn        func(ctx context.Context, id primitive.ObjectID) error
}

func (m *mockPlaylistRepository) Create(ctx context.Context, playlist *model.Playlist) error {
	if m.createFn != nil {
		return m.createFn(ctx, playlist)
	}
	return nil
}

func (m *mockPlaylistRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Playlist, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, repository.ErrPlaylistNotFound
}

func (m *mockPlaylistRepository) GetWithVideos(ctx context.Context, id, viewerID primitive.ObjectID) (*model.Playlist, error) {
	if m.getWithVideosFn != nil {
		return m.getWithVideosFn(ctx, id, viewerID)
	}
	return m.GetByID(ctx, id)
}

func (m *mockPlaylistRepository) ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]*model.Playlist, error) {
	if m.listByOwnerFn != nil {
		return m.listByOwnerFn(ctx, ownerID)
	}
	return nil, nil
}

func (m *mockPlaylistRepository) AddVideo(ctx context.Context, id, videoID primitive.ObjectID) (*model.Playlist, bool, error) {
	if m.addVideoFn != nil {
		return m.addVideoFn(ctx, id, videoID)
	}
	return &model.Playlist{ID: id, VideoIDs: []primitive.ObjectID{videoID}}, true, nil
}

func (m *mockPlaylistRepository) RemoveVideo(ctx context.Context, id, videoID primitive.ObjectID) (*model.Playlist, error) {
	if m.removeVideoFn != nil {
		return m.removeVideoFn(ctx, id, videoID)
	}
	return &model.Playlist{ID: id, VideoIDs: []primitive.ObjectID{}}, nil
}

func (m *mockPlaylistRepository) Update(ctx context.Context, id primitive.ObjectID, name, description string) (*model.Playlist, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, name, description)
	}
	return &model.Playlist{ID: id, Name: name, Description: description}, nil
}

func (m *mockPlaylistRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// mockTransactor runs fn inline and records whether a transaction was used.
type mockTransactor struct {
	calls int
	err   error
}

func (m *mockTransactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	if m.err != nil {
		return m.err
	}
	return fn(ctx)
}

// mockMediaHost provides a configurable mock for MediaHost.
// Deleted URLs are recorded.
type mockMediaHost struct {
	uploadFn func(ctx context.Context, localPath string, kind repository.AssetKind) (*repository.Asset, error)
	deleteFn func(ctx context.Context, url string) error

	mu      sync.Mutex
	deleted []string
}

func (m *mockMediaHost) Upload(ctx context.Context, localPath string, kind repository.AssetKind) (*repository.Asset, error) {
	if m.uploadFn != nil {
		return m.uploadFn(ctx, localPath, kind)
	}
	return &repository.Asset{URL: "http://cdn/media/" + string(kind) + "s/" + localPath}, nil
}

func (m *mockMediaHost) Delete(ctx context.Context, url string) error {
	m.mu.Lock()
	m.deleted = append(m.deleted, url)
	m.mu.Unlock()
	if m.deleteFn != nil {
		return m.deleteFn(ctx, url)
	}
	return nil
}

func (m *mockMediaHost) deletedURLs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.deleted...)
}

// mockCleanupQueue records published tasks.
type mockCleanupQueue struct {
	publishFn func(ctx context.Context, task repository.AssetCleanupTask) error
	consumeFn func(ctx context.Context, handler func(task repository.AssetCleanupTask) error) error

	mu        sync.Mutex
	published []repository.AssetCleanupTask
}

func (m *mockCleanupQueue) PublishAssetCleanup(ctx context.Context, task repository.AssetCleanupTask) error {
	if m.publishFn != nil {
		if err := m.publishFn(ctx, task); err != nil {
			return err
		}
	}
	m.mu.Lock()
	m.published = append(m.published, task)
	m.mu.Unlock()
	return nil
}

func (m *mockCleanupQueue) ConsumeAssetCleanup(ctx context.Context, handler func(task repository.AssetCleanupTask) error) error {
	if m.consumeFn != nil {
		return m.consumeFn(ctx, handler)
	}
	return nil
}

func (m *mockCleanupQueue) Close() error {
	return nil
}

func (m *mockCleanupQueue) tasks() []repository.AssetCleanupTask {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]repository.AssetCleanupTask(nil), m.published...)
}
