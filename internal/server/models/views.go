package models

// OwnerSummary is the public card of a user embedded in other views.
type OwnerSummary struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Avatar   string `json:"avatar"`
}

// ChannelSummary is an OwnerSummary with subscription counters.
type ChannelSummary struct {
	OwnerSummary
	SubscribersCount int64 `json:"subscribersCount"`
	IsSubscribed     bool  `json:"isSubscribed"`
}

type ChannelProfile struct {
	ID                        string    `json:"_id"`
	Username                  string    `json:"username"`
	FullName                  string    `json:"fullName"`
	Email                     string    `json:"email"`
	Avatar                    MediaRef  `json:"avatar"`
	CoverImage                *MediaRef `json:"coverImage"`
	SubscribersCount          int64     `json:"subscribersCount"`
	ChannelsSubscribedToCount int64     `json:"channelsSubscribedToCount"`
	IsSubscribed              bool      `json:"isSubscribed"`
}

type VideoWithOwner struct {
	Video
	Owner OwnerSummary `json:"ownerDetails"`
}

type VideoDetails struct {
	Video
	Owner      ChannelSummary `json:"ownerDetails"`
	LikesCount int64          `json:"likesCount"`
	IsLiked    bool           `json:"isLiked"`
}

type CommentView struct {
	Comment
	Owner      OwnerSummary `json:"ownerDetails"`
	LikesCount int64        `json:"likesCount"`
	IsLiked    bool         `json:"isLiked"`
}

type TweetView struct {
	Tweet
	Owner      OwnerSummary `json:"ownerDetails"`
	LikesCount int64        `json:"likesCount"`
	IsLiked    bool         `json:"isLiked"`
}

type PlaylistDetails struct {
	Playlist
	Owner       OwnerSummary     `json:"ownerDetails"`
	VideoItems  []VideoWithOwner `json:"videoItems"`
	TotalVideos int              `json:"totalVideos"`
	TotalViews  int64            `json:"totalViews"`
}

type DashboardVideo struct {
	Video
	LikesCount int64 `json:"likesCount"`
}

type ChannelStats struct {
	TotalSubscribers int64 `json:"totalSubscribers"`
	TotalLikes       int64 `json:"totalLikes"`
	TotalVideos      int64 `json:"totalVideos"`
	TotalViews       int64 `json:"totalViews"`
}
