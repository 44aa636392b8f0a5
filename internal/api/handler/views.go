package handler

import (
	"time"

	"github.com/hszk-dev/vidtube/internal/domain/model"
)

type OwnerResponse struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Avatar   string `json:"avatar"`
}

// UserResponse never carries the password hash or refresh token.
type UserResponse struct {
	ID         string    `json:"_id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FullName   string    `json:"fullName"`
	Avatar     string    `json:"avatar"`
	CoverImage string    `json:"coverImage"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type ChannelProfileResponse struct {
	OwnerResponse
	Email                     string `json:"email"`
	CoverImage                string `json:"coverImage"`
	SubscribersCount          int64  `json:"subscribersCount"`
	ChannelsSubscribedToCount int64  `json:"channelsSubscribedToCount"`
	IsSubscribed              bool   `json:"isSubscribed"`
}

type VideoResponse struct {
	ID          string         `json:"_id"`
	Owner       *OwnerResponse `json:"owner,omitempty"`
	OwnerID     string         `json:"ownerId"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	VideoFile   string         `json:"videoFile"`
	Thumbnail   string         `json:"thumbnail"`
	Duration    float64        `json:"duration"`
	Views       int64          `json:"views"`
	IsPublished bool           `json:"isPublished"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

type CommentResponse struct {
	ID        string         `json:"_id"`
	VideoID   string         `json:"video"`
	Owner     *OwnerResponse `json:"owner,omitempty"`
	OwnerID   string         `json:"ownerId"`
	Content   string         `json:"content"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

type TweetResponse struct {
	ID        string         `json:"_id"`
	Owner     *OwnerResponse `json:"owner,omitempty"`
	OwnerID   string         `json:"ownerId"`
	Content   string         `json:"content"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

type PlaylistResponse struct {
	ID          string          `json:"_id"`
	OwnerID     string          `json:"owner"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	VideoIDs    []string        `json:"videoIds"`
	Videos      []VideoResponse `json:"videos,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type SubscriptionResponse struct {
	ID         string         `json:"_id"`
	Subscriber *OwnerResponse `json:"subscriber,omitempty"`
	Channel    *OwnerResponse `json:"channel,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
}

type SubscribersResponse struct {
	Count       int64                  `json:"subscribersCount"`
	Subscribers []SubscriptionResponse `json:"subscribers"`
}

type LikedVideoResponse struct {
	ID      string        `json:"_id"`
	LikedAt time.Time     `json:"likedAt"`
	Video   VideoResponse `json:"video"`
}

type ChannelStatsResponse struct {
	TotalVideos      int64 `json:"totalVideos"`
	TotalViews       int64 `json:"totalViews"`
	TotalSubscribers int64 `json:"totalSubscribers"`
	TotalLikes       int64 `json:"totalLikes"`
}

func toOwnerResponse(s *model.UserSummary) *OwnerResponse {
	if s == nil {
		return nil
	}
	return &OwnerResponse{
		ID:       s.ID.Hex(),
		Username: s.Username,
		FullName: s.FullName,
		Avatar:   s.Avatar,
	}
}

func toUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:         u.ID.Hex(),
		Username:   u.Username,
		Email:      u.Email,
		FullName:   u.FullName,
		Avatar:     u.Avatar,
		CoverImage: u.CoverImage,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

func toChannelProfileResponse(p *model.ChannelProfile) ChannelProfileResponse {
	return ChannelProfileResponse{
		OwnerResponse:             *toOwnerResponse(&p.UserSummary),
		Email:                     p.Email,
		CoverImage:                p.CoverImage,
		SubscribersCount:          p.SubscribersCount,
		ChannelsSubscribedToCount: p.ChannelsSubscribedToCount,
		IsSubscribed:              p.IsSubscribed,
	}
}

func toVideoResponse(v *model.Video) VideoResponse {
	return VideoResponse{
		ID:          v.ID.Hex(),
		Owner:       toOwnerResponse(v.Owner),
		OwnerID:     v.OwnerID.Hex(),
		Title:       v.Title,
		Description: v.Description,
		VideoFile:   v.VideoFile,
		Thumbnail:   v.Thumbnail,
		Duration:    v.Duration,
		Views:       v.Views,
		IsPublished: v.IsPublished,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

func toVideoResponses(videos []*model.Video) []VideoResponse {
	out := make([]VideoResponse, 0, len(videos))
	for _, v := range videos {
		out = append(out, toVideoResponse(v))
	}
	return out
}

func toCommentResponse(c *model.Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID.Hex(),
		VideoID:   c.VideoID.Hex(),
		Owner:     toOwnerResponse(c.Owner),
		OwnerID:   c.OwnerID.Hex(),
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toTweetResponse(t *model.Tweet) TweetResponse {
	return TweetResponse{
		ID:        t.ID.Hex(),
		Owner:     toOwnerResponse(t.Owner),
		OwnerID:   t.OwnerID.Hex(),
		Content:   t.Content,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func toPlaylistResponse(p *model.Playlist) PlaylistResponse {
	ids := make([]string, 0, len(p.VideoIDs))
	for _, id := range p.VideoIDs {
		ids = append(ids, id.Hex())
	}
	resp := PlaylistResponse{
		ID:          p.ID.Hex(),
		OwnerID:     p.OwnerID.Hex(),
		Name:        p.Name,
		Description: p.Description,
		VideoIDs:    ids,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.Videos != nil {
		resp.Videos = toVideoResponses(p.Videos)
	}
	return resp
}

func toSubscriptionResponses(subs []*model.Subscription) []SubscriptionResponse {
	out := make([]SubscriptionResponse, 0, len(subs))
	for _, s := range subs {
		out = append(out, SubscriptionResponse{
			ID:         s.ID.Hex(),
			Subscriber: toOwnerResponse(s.Subscriber),
			Channel:    toOwnerResponse(s.Channel),
			CreatedAt:  s.CreatedAt,
		})
	}
	return out
}

func toLikedVideoResponse(l *model.LikedVideo) LikedVideoResponse {
	resp := LikedVideoResponse{ID: l.LikeID.Hex(), LikedAt: l.LikedAt}
	if l.Video != nil {
		resp.Video = toVideoResponse(l.Video)
	}
	return resp
}
