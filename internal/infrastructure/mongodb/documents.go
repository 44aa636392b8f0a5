package mongodb

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hszk-dev/vidtube/internal/domain/model"
)

// Documents mirror the stored shape of each collection. Joined fields are
// only present on aggregation results.

type userSummaryDocument struct {
	ID       primitive.ObjectID `bson:"_id"`
	Username string             `bson:"username"`
	FullName string             `bson:"fullName"`
	Avatar   string             `bson:"avatar"`
}

func (d *userSummaryDocument) toModel() *model.UserSummary {
	if d == nil {
		return nil
	}
	return &model.UserSummary{
		ID:       d.ID,
		Username: d.Username,
		FullName: d.FullName,
		Avatar:   d.Avatar,
	}
}

type userDocument struct {
	ID           primitive.ObjectID   `bson:"_id"`
	Username     string               `bson:"username"`
	Email        string               `bson:"email"`
	FullName     string               `bson:"fullName"`
	Password     string               `bson:"password"`
	Avatar       string               `bson:"avatar"`
	CoverImage   string               `bson:"coverImage,omitempty"`
	RefreshToken string               `bson:"refreshToken,omitempty"`
	WatchHistory []primitive.ObjectID `bson:"watchHistory"`
	CreatedAt    time.Time            `bson:"createdAt"`
	UpdatedAt    time.Time            `bson:"updatedAt"`
}

func newUserDocument(u *model.User) *userDocument {
	history := u.WatchHistory
	if history == nil {
		history = []primitive.ObjectID{}
	}
	return &userDocument{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		FullName:     u.FullName,
		Password:     u.PasswordHash,
		Avatar:       u.Avatar,
		CoverImage:   u.CoverImage,
		RefreshToken: u.RefreshToken,
		WatchHistory: history,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (d *userDocument) toModel() *model.User {
	return &model.User{
		ID:           d.ID,
		Username:     d.Username,
		Email:        d.Email,
		FullName:     d.FullName,
		PasswordHash: d.Password,
		Avatar:       d.Avatar,
		CoverImage:   d.CoverImage,
		RefreshToken: d.RefreshToken,
		WatchHistory: d.WatchHistory,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

type channelProfileDocument struct {
	ID                        primitive.ObjectID `bson:"_id"`
	Username                  string             `bson:"username"`
	FullName                  string             `bson:"fullName"`
	Email                     string             `bson:"email"`
	Avatar                    string             `bson:"avatar"`
	CoverImage                string             `bson:"coverImage"`
	SubscribersCount          int64              `bson:"subscribersCount"`
	ChannelsSubscribedToCount int64              `bson:"channelsSubscribedToCount"`
	IsSubscribed              bool               `bson:"isSubscribed"`
}

func (d *channelProfileDocument) toModel() *model.ChannelProfile {
	return &model.ChannelProfile{
		UserSummary: model.UserSummary{
			ID:       d.ID,
			Username: d.Username,
			FullName: d.FullName,
			Avatar:   d.Avatar,
		},
		Email:                     d.Email,
		CoverImage:                d.CoverImage,
		SubscribersCount:          d.SubscribersCount,
		ChannelsSubscribedToCount: d.ChannelsSubscribedToCount,
		IsSubscribed:              d.IsSubscribed,
	}
}

type videoDocument struct {
	ID          primitive.ObjectID   `bson:"_id"`
	OwnerID     primitive.ObjectID   `bson:"owner"`
	Title       string               `bson:"title"`
	Description string               `bson:"description"`
	VideoFile   string               `bson:"videoFile"`
	Thumbnail   string               `bson:"thumbnail"`
	Duration    float64              `bson:"duration"`
	Views       int64                `bson:"views"`
	IsPublished bool                 `bson:"isPublished"`
	CreatedAt   time.Time            `bson:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt"`
	OwnerInfo   *userSummaryDocument `bson:"ownerInfo,omitempty"`
}

func newVideoDocument(v *model.Video) *videoDocument {
	return &videoDocument{
		ID:          v.ID,
		OwnerID:     v.OwnerID,
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

func (d *videoDocument) toModel() *model.Video {
	return &model.Video{
		ID:          d.ID,
		OwnerID:     d.OwnerID,
		Owner:       d.OwnerInfo.toModel(),
		Title:       d.Title,
		Description: d.Description,
		VideoFile:   d.VideoFile,
		Thumbnail:   d.Thumbnail,
		Duration:    d.Duration,
		Views:       d.Views,
		IsPublished: d.IsPublished,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type commentDocument struct {
	ID        primitive.ObjectID   `bson:"_id"`
	VideoID   primitive.ObjectID   `bson:"video"`
	OwnerID   primitive.ObjectID   `bson:"owner"`
	Content   string               `bson:"content"`
	CreatedAt time.Time            `bson:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt"`
	OwnerInfo *userSummaryDocument `bson:"ownerInfo,omitempty"`
}

func newCommentDocument(c *model.Comment) *commentDocument {
	return &commentDocument{
		ID:        c.ID,
		VideoID:   c.VideoID,
		OwnerID:   c.OwnerID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (d *commentDocument) toModel() *model.Comment {
	return &model.Comment{
		ID:        d.ID,
		VideoID:   d.VideoID,
		OwnerID:   d.OwnerID,
		Owner:     d.OwnerInfo.toModel(),
		Content:   d.Content,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type tweetDocument struct {
	ID        primitive.ObjectID   `bson:"_id"`
	OwnerID   primitive.ObjectID   `bson:"owner"`
	Content   string               `bson:"content"`
	CreatedAt time.Time            `bson:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt"`
	OwnerInfo *userSummaryDocument `bson:"ownerInfo,omitempty"`
}

func newTweetDocument(t *model.Tweet) *tweetDocument {
	return &tweetDocument{
		ID:        t.ID,
		OwnerID:   t.OwnerID,
		Content:   t.Content,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func (d *tweetDocument) toModel() *model.Tweet {
	return &model.Tweet{
		ID:        d.ID,
		OwnerID:   d.OwnerID,
		Owner:     d.OwnerInfo.toModel(),
		Content:   d.Content,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type likeDocument struct {
	ID         primitive.ObjectID `bson:"_id"`
	TargetType string             `bson:"targetType"`
	Target     primitive.ObjectID `bson:"target"`
	LikedBy    primitive.ObjectID `bson:"likedBy"`
	CreatedAt  time.Time          `bson:"createdAt"`
	Video      *videoDocument     `bson:"video,omitempty"`
}

func newLikeDocument(l *model.Like) *likeDocument {
	return &likeDocument{
		ID:         l.ID,
		TargetType: l.Target.Kind.String(),
		Target:     l.Target.ID,
		LikedBy:    l.LikedBy,
		CreatedAt:  l.CreatedAt,
	}
}

func (d *likeDocument) toLikedVideo() *model.LikedVideo {
	lv := &model.LikedVideo{LikeID: d.ID, LikedAt: d.CreatedAt}
	if d.Video != nil {
		lv.Video = d.Video.toModel()
	}
	return lv
}

type subscriptionDocument struct {
	ID             primitive.ObjectID   `bson:"_id"`
	SubscriberID   primitive.ObjectID   `bson:"subscriber"`
	ChannelID      primitive.ObjectID   `bson:"channel"`
	CreatedAt      time.Time            `bson:"createdAt"`
	SubscriberInfo *userSummaryDocument `bson:"subscriberInfo,omitempty"`
	ChannelInfo    *userSummaryDocument `bson:"channelInfo,omitempty"`
}

func newSubscriptionDocument(s *model.Subscription) *subscriptionDocument {
	return &subscriptionDocument{
		ID:           s.ID,
		SubscriberID: s.SubscriberID,
		ChannelID:    s.ChannelID,
		CreatedAt:    s.CreatedAt,
	}
}

func (d *subscriptionDocument) toModel() *model.Subscription {
	return &model.Subscription{
		ID:           d.ID,
		SubscriberID: d.SubscriberID,
		ChannelID:    d.ChannelID,
		Subscriber:   d.SubscriberInfo.toModel(),
		Channel:      d.ChannelInfo.toModel(),
		CreatedAt:    d.CreatedAt,
	}
}

type playlistDocument struct {
	ID          primitive.ObjectID   `bson:"_id"`
	OwnerID     primitive.ObjectID   `bson:"owner"`
	Name        string               `bson:"name"`
	Description string               `bson:"description"`
	Videos      []primitive.ObjectID `bson:"videos"`
	CreatedAt   time.Time            `bson:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt"`
	VideoDocs   []*videoDocument     `bson:"videoDocs,omitempty"`
}

func newPlaylistDocument(p *model.Playlist) *playlistDocument {
	videos := p.VideoIDs
	if videos == nil {
		videos = []primitive.ObjectID{}
	}
	return &playlistDocument{
		ID:          p.ID,
		OwnerID:     p.OwnerID,
		Name:        p.Name,
		Description: p.Description,
		Videos:      videos,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (d *playlistDocument) toModel() *model.Playlist {
	p := &model.Playlist{
		ID:          d.ID,
		OwnerID:     d.OwnerID,
		Name:        d.Name,
		Description: d.Description,
		VideoIDs:    d.Videos,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
	if p.VideoIDs == nil {
		p.VideoIDs = []primitive.ObjectID{}
	}
	if d.VideoDocs != nil {
		// Keep playlist order; the lookup returns videos in natural order.
		byID := make(map[primitive.ObjectID]*videoDocument, len(d.VideoDocs))
		for _, v := range d.VideoDocs {
			byID[v.ID] = v
		}
		p.Videos = make([]*model.Video, 0, len(d.VideoDocs))
		for _, id := range d.Videos {
			if v, ok := byID[id]; ok {
				p.Videos = append(p.Videos, v.toModel())
			}
		}
	}
	return p
}
