// Package testsupport provides in-memory stand-ins for the database and the
// media store, for use in tests of the services and the REST layer.
package testsupport

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/vidtube/internal/common"
	"github.com/dmitrijs2005/vidtube/internal/dbx"
	"github.com/dmitrijs2005/vidtube/internal/server/models"
	"github.com/dmitrijs2005/vidtube/internal/server/repositories/comments"
	"github.com/dmitrijs2005/vidtube/internal/server/repositories/likes"
	"github.com/dmitrijs2005/vidtube/internal/server/repositories/playlists"
	"github.com/dmitrijs2005/vidtube/internal/server/repositories/subscriptions"
	"github.com/dmitrijs2005/vidtube/internal/server/repositories/tweets"
	"github.com/dmitrijs2005/vidtube/internal/server/repositories/users"
	"github.com/dmitrijs2005/vidtube/internal/server/repositories/videos"
	"github.com/google/uuid"
)

type likeKey struct {
	target   models.LikeTarget
	targetID string
	userID   string
}

type subKey struct {
	subscriber string
	channel    string
}

type watchEntry struct {
	videoID string
	at      time.Time
}

// MemoryStore is a RepositoryManager whose repositories share one in-memory
// state. The DBTX handed to the factories is ignored, so transactions are
// not isolated.
type MemoryStore struct {
	mu sync.Mutex

	users          map[string]*models.User
	videos         map[string]*models.Video
	comments       map[string]*models.Comment
	tweets         map[string]*models.Tweet
	playlists      map[string]*models.Playlist
	likes          map[likeKey]time.Time
	subs           map[subKey]time.Time
	history        map[string][]watchEntry
	now            func() time.Time
	MigrationsRuns int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:     map[string]*models.User{},
		videos:    map[string]*models.Video{},
		comments:  map[string]*models.Comment{},
		tweets:    map[string]*models.Tweet{},
		playlists: map[string]*models.Playlist{},
		likes:     map[likeKey]time.Time{},
		subs:      map[subKey]time.Time{},
		history:   map[string][]watchEntry{},
		now:       time.Now,
	}
}

func (m *MemoryStore) RunMigrations(context.Context, *sql.DB) error {
	m.mu.Lock()
	m.MigrationsRuns++
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Users(dbx.DBTX) users.Repository                 { return userRepo{m} }
func (m *MemoryStore) Videos(dbx.DBTX) videos.Repository               { return videoRepo{m} }
func (m *MemoryStore) Comments(dbx.DBTX) comments.Repository           { return commentRepo{m} }
func (m *MemoryStore) Tweets(dbx.DBTX) tweets.Repository               { return tweetRepo{m} }
func (m *MemoryStore) Playlists(dbx.DBTX) playlists.Repository         { return playlistRepo{m} }
func (m *MemoryStore) Likes(dbx.DBTX) likes.Repository                 { return likeRepo{m} }
func (m *MemoryStore) Subscriptions(dbx.DBTX) subscriptions.Repository { return subRepo{m} }

// StoredUser returns a copy of the user row, credentials included.
func (m *MemoryStore) StoredUser(id string) (models.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return models.User{}, false
	}
	return *u, true
}

// StoredUserByName is StoredUser keyed by username.
func (m *MemoryStore) StoredUserByName(username string) (models.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			return *u, true
		}
	}
	return models.User{}, false
}

// SeedUser inserts u as-is, assigning an id when empty.
func (m *MemoryStore) SeedUser(u models.User) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	m.users[u.ID] = &u
	return u.ID
}

// SeedVideo inserts v as-is, assigning an id when empty.
func (m *MemoryStore) SeedVideo(v models.Video) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	m.videos[v.ID] = &v
	return v.ID
}

// SeedComment inserts c as-is, assigning an id when empty.
func (m *MemoryStore) SeedComment(c models.Comment) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	m.comments[c.ID] = &c
	return c.ID
}

// --- users ---

type userRepo struct{ m *MemoryStore }

func (r userRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, existing := range r.m.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return nil, common.ErrorConflict
		}
	}
	c := *u
	c.ID = uuid.NewString()
	c.CreatedAt, c.UpdatedAt = r.m.now(), r.m.now()
	r.m.users[c.ID] = &c
	out := c
	return &out, nil
}

func (r userRepo) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, u := range r.m.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r userRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	u, ok := r.m.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *u
	return &c, nil
}

func (r userRepo) GetByLogin(ctx context.Context, username, email string) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, u := range r.m.users {
		if (username != "" && u.Username == username) || (email != "" && u.Email == email) {
			c := *u
			return &c, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r userRepo) GetChannelProfile(ctx context.Context, username, viewerID string) (*models.ChannelProfile, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, u := range r.m.users {
		if u.Username != username {
			continue
		}
		p := &models.ChannelProfile{
			ID: u.ID, Username: u.Username, FullName: u.FullName, Email: u.Email,
			Avatar: u.Avatar, CoverImage: u.CoverImage,
		}
		for k := range r.m.subs {
			if k.channel == u.ID {
				p.SubscribersCount++
				if k.subscriber == viewerID {
					p.IsSubscribed = true
				}
			}
			if k.subscriber == u.ID {
				p.ChannelsSubscribedToCount++
			}
		}
		return p, nil
	}
	return nil, common.ErrorNotFound
}

func (r userRepo) update(id string, fn func(u *models.User)) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	u, ok := r.m.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	fn(u)
	u.UpdatedAt = r.m.now()
	return nil
}

func (r userRepo) SetRefreshToken(ctx context.Context, id, token string) error {
	return r.update(id, func(u *models.User) { u.RefreshToken = token })
}

func (r userRepo) RotateRefreshToken(ctx context.Context, id, presented, next string) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	u, ok := r.m.users[id]
	if !ok || u.RefreshToken == "" || u.RefreshToken != presented {
		return false, nil
	}
	u.RefreshToken = next
	return true, nil
}

func (r userRepo) UpdatePassword(ctx context.Context, id, hash string) error {
	return r.update(id, func(u *models.User) { u.PasswordHash = hash })
}

func (r userRepo) UpdateAccount(ctx context.Context, id, fullName, email string) (*models.User, error) {
	r.m.mu.Lock()
	for uid, other := range r.m.users {
		if uid != id && other.Email == email {
			r.m.mu.Unlock()
			return nil, common.ErrorConflict
		}
	}
	r.m.mu.Unlock()

	if err := r.update(id, func(u *models.User) { u.FullName, u.Email = fullName, email }); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r userRepo) UpdateAvatar(ctx context.Context, id string, ref models.MediaRef) error {
	return r.update(id, func(u *models.User) { u.Avatar = ref })
}

func (r userRepo) UpdateCoverImage(ctx context.Context, id string, ref models.MediaRef) error {
	return r.update(id, func(u *models.User) { u.CoverImage = &ref })
}

func (r userRepo) AddToWatchHistory(ctx context.Context, userID, videoID string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	entries := []watchEntry{{videoID: videoID, at: r.m.now()}}
	for _, e := range r.m.history[userID] {
		if e.videoID != videoID {
			entries = append(entries, e)
		}
	}
	r.m.history[userID] = entries
	return nil
}

func (r userRepo) WatchHistory(ctx context.Context, userID string) ([]models.VideoWithOwner, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := []models.VideoWithOwner{}
	for _, e := range r.m.history[userID] {
		if v, ok := r.m.videos[e.videoID]; ok {
			out = append(out, r.m.withOwner(v))
		}
	}
	return out, nil
}

// withOwner must be called with mu held.
func (m *MemoryStore) withOwner(v *models.Video) models.VideoWithOwner {
	item := models.VideoWithOwner{Video: *v}
	if o, ok := m.users[v.OwnerID]; ok {
		item.Owner = o.Summary()
	}
	return item
}

// --- videos ---

type videoRepo struct{ m *MemoryStore }

func (r videoRepo) Create(ctx context.Context, v *models.Video) (*models.Video, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	c := *v
	c.ID = uuid.NewString()
	c.CreatedAt, c.UpdatedAt = r.m.now(), r.m.now()
	r.m.videos[c.ID] = &c
	out := c
	return &out, nil
}

func (r videoRepo) GetByID(ctx context.Context, id string) (*models.Video, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	v, ok := r.m.videos[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *v
	return &c, nil
}

func (r videoRepo) GetDetails(ctx context.Context, id, viewerID string) (*models.VideoDetails, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	v, ok := r.m.videos[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	d := &models.VideoDetails{Video: *v}
	if o, ok := r.m.users[v.OwnerID]; ok {
		d.Owner.OwnerSummary = o.Summary()
	}
	for k := range r.m.subs {
		if k.channel == v.OwnerID {
			d.Owner.SubscribersCount++
			if k.subscriber == viewerID {
				d.Owner.IsSubscribed = true
			}
		}
	}
	for k := range r.m.likes {
		if k.target == models.LikeVideo && k.targetID == id {
			d.LikesCount++
			if k.userID == viewerID {
				d.IsLiked = true
			}
		}
	}
	return d, nil
}

func (r videoRepo) List(ctx context.Context, q models.VideoQuery) ([]models.VideoWithOwner, int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	needle := strings.ToLower(q.Query)
	var matched []*models.Video
	for _, v := range r.m.videos {
		if !v.IsPublished || (q.OwnerID != "" && v.OwnerID != q.OwnerID) {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(v.Title), needle) &&
			!strings.Contains(strings.ToLower(v.Description), needle) {
			continue
		}
		matched = append(matched, v)
	}

	less := func(a, b *models.Video) bool {
		switch q.SortBy {
		case "views":
			return a.Views < b.Views
		case "duration":
			return a.Duration < b.Duration
		case "title":
			return a.Title < b.Title
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if q.SortDesc {
			return less(matched[j], matched[i])
		}
		return less(matched[i], matched[j])
	})

	page := q.PageRequest.Normalize()
	out := []models.VideoWithOwner{}
	for i := page.Offset(); i < len(matched) && len(out) < page.Limit; i++ {
		out = append(out, r.m.withOwner(matched[i]))
	}
	return out, int64(len(matched)), nil
}

func (r videoRepo) mutate(id string, fn func(v *models.Video)) (*models.Video, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	v, ok := r.m.videos[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	fn(v)
	v.UpdatedAt = r.m.now()
	c := *v
	return &c, nil
}

func (r videoRepo) Update(ctx context.Context, id, title, description string, thumbnail models.MediaRef) (*models.Video, error) {
	return r.mutate(id, func(v *models.Video) { v.Title, v.Description, v.Thumbnail = title, description, thumbnail })
}

func (r videoRepo) SetPublished(ctx context.Context, id string, published bool) (*models.Video, error) {
	return r.mutate(id, func(v *models.Video) { v.IsPublished = published })
}

func (r videoRepo) Delete(ctx context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.videos[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.m.videos, id)
	for cid, c := range r.m.comments {
		if c.VideoID == id {
			delete(r.m.comments, cid)
		}
	}
	return nil
}

func (r videoRepo) IncrementViews(ctx context.Context, id string) error {
	_, err := r.mutate(id, func(v *models.Video) { v.Views++ })
	return err
}

func (r videoRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.DashboardVideo, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := []models.DashboardVideo{}
	for _, v := range r.m.videos {
		if v.OwnerID != ownerID {
			continue
		}
		d := models.DashboardVideo{Video: *v}
		for k := range r.m.likes {
			if k.target == models.LikeVideo && k.targetID == v.ID {
				d.LikesCount++
			}
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r videoRepo) ChannelStats(ctx context.Context, ownerID string) (*models.ChannelStats, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	st := &models.ChannelStats{}
	for k := range r.m.subs {
		if k.channel == ownerID {
			st.TotalSubscribers++
		}
	}
	for _, v := range r.m.videos {
		if v.OwnerID != ownerID {
			continue
		}
		st.TotalVideos++
		st.TotalViews += v.Views
		for k := range r.m.likes {
			if k.target == models.LikeVideo && k.targetID == v.ID {
				st.TotalLikes++
			}
		}
	}
	return st, nil
}

// --- comments ---

type commentRepo struct{ m *MemoryStore }

func (r commentRepo) Create(ctx context.Context, c *models.Comment) (*models.Comment, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	n := *c
	n.ID = uuid.NewString()
	n.CreatedAt, n.UpdatedAt = r.m.now(), r.m.now()
	r.m.comments[n.ID] = &n
	out := n
	return &out, nil
}

func (r commentRepo) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	c, ok := r.m.comments[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	n := *c
	return &n, nil
}

func (r commentRepo) ListByVideo(ctx context.Context, videoID, viewerID string, page models.PageRequest) ([]models.CommentView, int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var all []*models.Comment
	for _, c := range r.m.comments {
		if c.VideoID == videoID {
			all = append(all, c)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	page = page.Normalize()
	out := []models.CommentView{}
	for i := page.Offset(); i < len(all) && len(out) < page.Limit; i++ {
		v := models.CommentView{Comment: *all[i]}
		if o, ok := r.m.users[all[i].OwnerID]; ok {
			v.Owner = o.Summary()
		}
		for k := range r.m.likes {
			if k.target == models.LikeComment && k.targetID == all[i].ID {
				v.LikesCount++
				if k.userID == viewerID {
					v.IsLiked = true
				}
			}
		}
		out = append(out, v)
	}
	return out, int64(len(all)), nil
}

func (r commentRepo) UpdateContent(ctx context.Context, id, content string) (*models.Comment, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	c, ok := r.m.comments[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c.Content = content
	c.UpdatedAt = r.m.now()
	n := *c
	return &n, nil
}

func (r commentRepo) Delete(ctx context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.comments[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.m.comments, id)
	return nil
}

// --- tweets ---

type tweetRepo struct{ m *MemoryStore }

func (r tweetRepo) Create(ctx context.Context, t *models.Tweet) (*models.Tweet, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	n := *t
	n.ID = uuid.NewString()
	n.CreatedAt, n.UpdatedAt = r.m.now(), r.m.now()
	r.m.tweets[n.ID] = &n
	out := n
	return &out, nil
}

func (r tweetRepo) GetByID(ctx context.Context, id string) (*models.Tweet, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	t, ok := r.m.tweets[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	n := *t
	return &n, nil
}

func (r tweetRepo) ListByOwner(ctx context.Context, ownerID, viewerID string) ([]models.TweetView, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := []models.TweetView{}
	for _, t := range r.m.tweets {
		if t.OwnerID != ownerID {
			continue
		}
		v := models.TweetView{Tweet: *t}
		if o, ok := r.m.users[ownerID]; ok {
			v.Owner = o.Summary()
		}
		for k := range r.m.likes {
			if k.target == models.LikeTweet && k.targetID == t.ID {
				v.LikesCount++
				if k.userID == viewerID {
					v.IsLiked = true
				}
			}
		}
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r tweetRepo) UpdateContent(ctx context.Context, id, content string) (*models.Tweet, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	t, ok := r.m.tweets[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	t.Content = content
	t.UpdatedAt = r.m.now()
	n := *t
	return &n, nil
}

func (r tweetRepo) Delete(ctx context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.tweets[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.m.tweets, id)
	return nil
}

// --- playlists ---

type playlistRepo struct{ m *MemoryStore }

func clonePlaylist(p *models.Playlist) *models.Playlist {
	c := *p
	c.Videos = append([]string{}, p.Videos...)
	return &c
}

func (r playlistRepo) Create(ctx context.Context, p *models.Playlist) (*models.Playlist, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	n := clonePlaylist(p)
	n.ID = uuid.NewString()
	n.CreatedAt, n.UpdatedAt = r.m.now(), r.m.now()
	r.m.playlists[n.ID] = n
	return clonePlaylist(n), nil
}

func (r playlistRepo) GetByID(ctx context.Context, id string) (*models.Playlist, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	p, ok := r.m.playlists[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return clonePlaylist(p), nil
}

func (r playlistRepo) GetDetails(ctx context.Context, id string) (*models.PlaylistDetails, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	p, ok := r.m.playlists[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	d := &models.PlaylistDetails{Playlist: *clonePlaylist(p), VideoItems: []models.VideoWithOwner{}}
	if o, ok := r.m.users[p.OwnerID]; ok {
		d.Owner = o.Summary()
	}
	for _, vid := range p.Videos {
		if v, ok := r.m.videos[vid]; ok && v.IsPublished {
			d.VideoItems = append(d.VideoItems, r.m.withOwner(v))
			d.TotalViews += v.Views
		}
	}
	d.TotalVideos = len(d.VideoItems)
	return d, nil
}

func (r playlistRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.Playlist, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := []models.Playlist{}
	for _, p := range r.m.playlists {
		if p.OwnerID == ownerID {
			out = append(out, *clonePlaylist(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r playlistRepo) Update(ctx context.Context, id, name, description string) (*models.Playlist, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	p, ok := r.m.playlists[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	p.Name, p.Description, p.UpdatedAt = name, description, r.m.now()
	return clonePlaylist(p), nil
}

func (r playlistRepo) Delete(ctx context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.playlists[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.m.playlists, id)
	return nil
}

func (r playlistRepo) AddVideo(ctx context.Context, playlistID, videoID string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	p, ok := r.m.playlists[playlistID]
	if !ok {
		return common.ErrorNotFound
	}
	for _, v := range p.Videos {
		if v == videoID {
			return nil
		}
	}
	p.Videos = append(p.Videos, videoID)
	return nil
}

func (r playlistRepo) RemoveVideo(ctx context.Context, playlistID, videoID string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	p, ok := r.m.playlists[playlistID]
	if !ok {
		return common.ErrorNotFound
	}
	kept := p.Videos[:0]
	for _, v := range p.Videos {
		if v != videoID {
			kept = append(kept, v)
		}
	}
	p.Videos = kept
	return nil
}

// --- likes ---

type likeRepo struct{ m *MemoryStore }

func (r likeRepo) Toggle(ctx context.Context, target models.LikeTarget, targetID, userID string) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	k := likeKey{target: target, targetID: targetID, userID: userID}
	if _, ok := r.m.likes[k]; ok {
		delete(r.m.likes, k)
		return false, nil
	}
	r.m.likes[k] = r.m.now()
	return true, nil
}

func (r likeRepo) LikedVideos(ctx context.Context, userID string) ([]models.VideoWithOwner, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	type liked struct {
		item models.VideoWithOwner
		at   time.Time
	}
	var all []liked
	for k, at := range r.m.likes {
		if k.target != models.LikeVideo || k.userID != userID {
			continue
		}
		if v, ok := r.m.videos[k.targetID]; ok && v.IsPublished {
			all = append(all, liked{item: r.m.withOwner(v), at: at})
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].at.After(all[j].at) })
	out := make([]models.VideoWithOwner, 0, len(all))
	for _, l := range all {
		out = append(out, l.item)
	}
	return out, nil
}

// --- subscriptions ---

type subRepo struct{ m *MemoryStore }

func (r subRepo) Toggle(ctx context.Context, subscriberID, channelID string) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	k := subKey{subscriber: subscriberID, channel: channelID}
	if _, ok := r.m.subs[k]; ok {
		delete(r.m.subs, k)
		return false, nil
	}
	r.m.subs[k] = r.m.now()
	return true, nil
}

// summary must be called with mu held.
func (r subRepo) summary(userID string, isSubscribed bool) models.ChannelSummary {
	s := models.ChannelSummary{IsSubscribed: isSubscribed}
	if u, ok := r.m.users[userID]; ok {
		s.OwnerSummary = u.Summary()
	}
	for k := range r.m.subs {
		if k.channel == userID {
			s.SubscribersCount++
		}
	}
	return s
}

func (r subRepo) Subscribers(ctx context.Context, channelID string) ([]models.ChannelSummary, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := []models.ChannelSummary{}
	for k := range r.m.subs {
		if k.channel == channelID {
			_, back := r.m.subs[subKey{subscriber: channelID, channel: k.subscriber}]
			out = append(out, r.summary(k.subscriber, back))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (r subRepo) SubscribedChannels(ctx context.Context, subscriberID string) ([]models.ChannelSummary, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := []models.ChannelSummary{}
	for k := range r.m.subs {
		if k.subscriber == subscriberID {
			out = append(out, r.summary(k.channel, true))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}
