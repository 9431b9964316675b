package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/vidtube/internal/common"
	"github.com/dmitrijs2005/vidtube/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComments_OwnershipAndListing(t *testing.T) {
	f := newFixture(t)
	s := NewCommentService(f.deps)
	ctx := context.Background()

	author := f.store.SeedUser(models.User{Username: "author", Email: "a@example.com"})
	video := f.store.SeedVideo(models.Video{OwnerID: author, Title: "t", Description: "d", IsPublished: true})

	c, err := s.Add(ctx, video, author, "first!")
	require.NoError(t, err)

	_, err = s.Add(ctx, video, author, "  ")
	assert.ErrorIs(t, err, common.ErrorValidation)
	_, err = s.Add(ctx, "missing", author, "hello")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	_, err = s.Update(ctx, c.ID, "intruder", "hacked")
	assert.ErrorIs(t, err, common.ErrorForbidden)
	assert.ErrorIs(t, s.Delete(ctx, c.ID, "intruder"), common.ErrorForbidden)

	updated, err := s.Update(ctx, c.ID, author, "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)

	page, err := s.List(ctx, video, author, models.PageRequest{})
	require.NoError(t, err)
	require.Len(t, page.Docs, 1)
	assert.Equal(t, "author", page.Docs[0].Owner.Username)

	require.NoError(t, s.Delete(ctx, c.ID, author))
	_, err = s.Update(ctx, c.ID, author, "again")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestTweets(t *testing.T) {
	f := newFixture(t)
	s := NewTweetService(f.deps)
	ctx := context.Background()

	owner := f.store.SeedUser(models.User{Username: "tw", Email: "tw@example.com"})

	tw, err := s.Create(ctx, owner, "hello world")
	require.NoError(t, err)

	list, err := s.ListByUser(ctx, owner, owner)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "tw", list[0].Owner.Username)

	_, err = s.ListByUser(ctx, "missing", owner)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	_, err = s.Update(ctx, tw.ID, "intruder", "x")
	assert.ErrorIs(t, err, common.ErrorForbidden)
	assert.NoError(t, s.Delete(ctx, tw.ID, owner))
}

func TestPlaylists(t *testing.T) {
	f := newFixture(t)
	s := NewPlaylistService(f.deps)
	ctx := context.Background()

	owner := f.store.SeedUser(models.User{Username: "pl", Email: "pl@example.com"})
	video := f.store.SeedVideo(models.Video{OwnerID: "someone", Title: "t", Description: "d", Views: 7, IsPublished: true})

	p, err := s.Create(ctx, owner, "favs", "my favourites")
	require.NoError(t, err)
	assert.Empty(t, p.Videos)

	_, err = s.AddVideo(ctx, video, p.ID, "intruder")
	assert.ErrorIs(t, err, common.ErrorForbidden)
	_, err = s.AddVideo(ctx, "missing", p.ID, owner)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	p, err = s.AddVideo(ctx, video, p.ID, owner)
	require.NoError(t, err)
	p, err = s.AddVideo(ctx, video, p.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, []string{video}, p.Videos)

	d, err := s.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, d.TotalVideos)
	assert.Equal(t, int64(7), d.TotalViews)

	p, err = s.RemoveVideo(ctx, video, p.ID, owner)
	require.NoError(t, err)
	assert.Empty(t, p.Videos)
	_, err = s.RemoveVideo(ctx, video, p.ID, owner)
	assert.NoError(t, err)

	_, err = s.Update(ctx, p.ID, owner, "", "x")
	assert.ErrorIs(t, err, common.ErrorValidation)
	assert.ErrorIs(t, s.Delete(ctx, p.ID, "intruder"), common.ErrorForbidden)
	assert.NoError(t, s.Delete(ctx, p.ID, owner))
}

func TestLikes_Toggle(t *testing.T) {
	f := newFixture(t)
	s := NewLikeService(f.deps)
	ctx := context.Background()

	video := f.store.SeedVideo(models.Video{OwnerID: "o", Title: "t", Description: "d", IsPublished: true})

	st, err := s.Toggle(ctx, models.LikeVideo, video, "u1")
	require.NoError(t, err)
	assert.True(t, st.IsLiked)

	liked, err := s.LikedVideos(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, liked, 1)

	st, err = s.Toggle(ctx, models.LikeVideo, video, "u1")
	require.NoError(t, err)
	assert.False(t, st.IsLiked)

	_, err = s.Toggle(ctx, models.LikeComment, "missing", "u1")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	_, err = s.Toggle(ctx, models.LikeTarget("playlist"), video, "u1")
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestSubscriptions(t *testing.T) {
	f := newFixture(t)
	s := NewSubscriptionService(f.deps)
	ctx := context.Background()

	channel := f.store.SeedUser(models.User{Username: "chan", Email: "chan@example.com"})
	fan := f.store.SeedUser(models.User{Username: "fan", Email: "fan@example.com"})

	_, err := s.Toggle(ctx, channel, channel)
	assert.ErrorIs(t, err, common.ErrorValidation)

	st, err := s.Toggle(ctx, channel, fan)
	require.NoError(t, err)
	assert.True(t, st.Subscribed)

	subs, err := s.Subscribers(ctx, channel)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "fan", subs[0].Username)
	assert.False(t, subs[0].IsSubscribed)

	chans, err := s.SubscribedChannels(ctx, fan)
	require.NoError(t, err)
	require.Len(t, chans, 1)
	assert.Equal(t, int64(1), chans[0].SubscribersCount)

	stats, err := NewDashboardService(f.deps).Stats(ctx, channel)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalSubscribers)

	st, err = s.Toggle(ctx, channel, fan)
	require.NoError(t, err)
	assert.False(t, st.Subscribed)
}

func TestRequireOwner(t *testing.T) {
	load := func(ctx context.Context, id string) (*models.Tweet, error) {
		if id == "missing" {
			return nil, common.ErrorNotFound
		}
		return &models.Tweet{ID: id, OwnerID: "alice"}, nil
	}
	owner := func(t *models.Tweet) string { return t.OwnerID }
	ctx := context.Background()

	tw, err := requireOwner(ctx, "t1", "alice", load, owner)
	require.NoError(t, err)
	assert.Equal(t, "t1", tw.ID)

	_, err = requireOwner(ctx, "t1", "bob", load, owner)
	assert.ErrorIs(t, err, common.ErrorForbidden)

	_, err = requireOwner(ctx, "missing", "alice", load, owner)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUnpublishedVideo_HiddenFromOtherUsers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	comments := NewCommentService(f.deps)
	likes := NewLikeService(f.deps)
	playlists := NewPlaylistService(f.deps)

	owner := f.store.SeedUser(models.User{Username: "alice", Email: "alice@example.com"})
	other := f.store.SeedUser(models.User{Username: "bob", Email: "bob@example.com"})
	draft := f.store.SeedVideo(models.Video{OwnerID: owner, Title: "draft", Description: "d"})

	_, err := comments.Add(ctx, draft, other, "nice")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	_, err = comments.List(ctx, draft, other, models.PageRequest{})
	assert.ErrorIs(t, err, common.ErrorNotFound)
	_, err = likes.Toggle(ctx, models.LikeVideo, draft, other)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	pl, err := playlists.Create(ctx, other, "later", "watch later")
	require.NoError(t, err)
	_, err = playlists.AddVideo(ctx, draft, pl.ID, other)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	// the owner still sees and uses the draft
	_, err = comments.Add(ctx, draft, owner, "note to self")
	require.NoError(t, err)
	page, err := comments.List(ctx, draft, owner, models.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, page.Docs, 1)
	st, err := likes.Toggle(ctx, models.LikeVideo, draft, owner)
	require.NoError(t, err)
	assert.True(t, st.IsLiked)
}
