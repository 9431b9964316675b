package videos

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/vidtube/internal/common"
	"github.com/dmitrijs2005/vidtube/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

var videoCols = []string{"id", "video_url", "video_public_id", "thumbnail_url", "thumbnail_public_id",
	"owner_id", "title", "description", "duration", "views", "is_published", "created_at", "updated_at"}

var ownerCols = []string{"o_id", "o_username", "o_full_name", "o_avatar"}

func videoValues(id, owner string) []driver.Value {
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	return []driver.Value{id, "http://v/" + id, "videos/" + id, "http://t/" + id, "thumbs/" + id,
		owner, "Title " + id, "Desc", 61.5, int64(10), true, now, now}
}

func cols(parts ...[]string) []string {
	var out []string
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func vals(parts ...[]driver.Value) []driver.Value {
	var out []driver.Value
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+videos.*RETURNING\s+id,\s*views,\s*created_at,\s*updated_at`).
		WithArgs("http://v", "videos/1", "http://t", "thumbs/1", "u-1", "T", "D", 3.5, true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "views", "created_at", "updated_at"}).AddRow("v-1", int64(0), now, now))

	v := &models.Video{VideoFile: models.MediaRef{URL: "http://v", PublicID: "videos/1"},
		Thumbnail: models.MediaRef{URL: "http://t", PublicID: "thumbs/1"},
		OwnerID:   "u-1", Title: "T", Description: "D", Duration: 3.5, IsPublished: true}
	got, err := repo.Create(context.Background(), v)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "v-1" {
		t.Fatalf("unexpected video: %+v", got)
	}
}

func TestGetByID(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+v\.id,.*FROM\s+videos\s+v\s+WHERE\s+v\.id\s*=\s*\$1\s*$`
	mock.ExpectQuery(q).WithArgs("v-1").WillReturnRows(sqlmock.NewRows(videoCols).AddRow(videoValues("v-1", "u-1")...))

	v, err := repo.GetByID(context.Background(), "v-1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if v.OwnerID != "u-1" || v.Thumbnail.PublicID != "thumbs/v-1" || v.Duration != 61.5 {
		t.Fatalf("unexpected video: %+v", v)
	}

	mock.ExpectQuery(q).WithArgs("ghost").WillReturnError(sql.ErrNoRows)
	if _, err := repo.GetByID(context.Background(), "ghost"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestGetDetails(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(cols(videoCols, ownerCols, []string{"subs", "is_sub", "likes", "is_liked"})).
		AddRow(vals(videoValues("v-1", "u-1"), []driver.Value{"u-1", "alice", "Alice", "http://a"}, []driver.Value{int64(4), true, int64(9), false})...)
	mock.ExpectQuery(`(?s)^SELECT\s+v\.id,.*FROM\s+videos\s+v\s+JOIN\s+users\s+o.*WHERE\s+v\.id\s*=\s*\$1`).
		WithArgs("v-1", "viewer").WillReturnRows(rows)

	d, err := repo.GetDetails(context.Background(), "v-1", "viewer")
	if err != nil {
		t.Fatalf("GetDetails error: %v", err)
	}
	if d.Owner.Username != "alice" || d.Owner.SubscribersCount != 4 || !d.Owner.IsSubscribed || d.LikesCount != 9 || d.IsLiked {
		t.Fatalf("unexpected details: %+v", d)
	}
}

func TestList_UsesWhitelistedSortAndPaging(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT\s+COUNT\(\*\)\s+FROM\s+videos\s+v\s+WHERE\s+v\.is_published`).
		WithArgs("cats", "").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(12)))
	mock.ExpectQuery(`(?s)ORDER\s+BY\s+v\.views\s+DESC,\s*v\.id\s+LIMIT\s+\$3\s+OFFSET\s+\$4$`).
		WithArgs("cats", "", 5, 5).
		WillReturnRows(sqlmock.NewRows(cols(videoCols, ownerCols)).
			AddRow(vals(videoValues("v-1", "u-1"), []driver.Value{"u-1", "alice", "Alice", "http://a"})...))

	items, total, err := repo.List(context.Background(), models.VideoQuery{
		Query: "cats", SortBy: "views", SortDesc: true, PageRequest: models.PageRequest{Page: 2, Limit: 5},
	})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if total != 12 || len(items) != 1 || items[0].Owner.Username != "alice" {
		t.Fatalf("unexpected list: %d %+v", total, items)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestList_UnknownSortFallsBackToCreatedAt(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT\s+COUNT`).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(0)))
	mock.ExpectQuery(`(?s)ORDER\s+BY\s+v\.created_at\s+ASC,`).
		WithArgs("", "u-9", models.DefaultPageLimit, 0).
		WillReturnRows(sqlmock.NewRows(cols(videoCols, ownerCols)))

	items, total, err := repo.List(context.Background(), models.VideoQuery{SortBy: "1; DROP TABLE videos", OwnerID: "u-9"})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if total != 0 || len(items) != 0 || items == nil {
		t.Fatalf("unexpected list: %d %+v", total, items)
	}
}

func TestList_SearchTreatsWildcardsLiterally(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT\s+COUNT.*ILIKE\s+'%'\s+\|\|\s+\$1\s+\|\|\s+'%'\s+ESCAPE`).
		WithArgs(`100\% a\_b c\\d`, "").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(0)))
	mock.ExpectQuery(`(?s)LIMIT\s+\$3\s+OFFSET\s+\$4$`).
		WithArgs(`100\% a\_b c\\d`, "", models.DefaultPageLimit, 0).
		WillReturnRows(sqlmock.NewRows(cols(videoCols, ownerCols)))

	if _, _, err := repo.List(context.Background(), models.VideoQuery{Query: `100% a_b c\d`}); err != nil {
		t.Fatalf("List error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestEscapeLike(t *testing.T) {
	cases := map[string]string{
		"":         "",
		"cats":     "cats",
		"50%":      `50\%`,
		"snake_ca": `snake\_ca`,
		`a\b`:      `a\\b`,
	}
	for in, want := range cases {
		if got := escapeLike(in); got != want {
			t.Errorf("escapeLike(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestUpdateAndPublish(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()
	ctx := context.Background()

	mock.ExpectQuery(`(?s)^UPDATE\s+videos\s+v\s+SET\s+title\s*=\s*\$2.*RETURNING\s+v\.id`).
		WithArgs("v-1", "New", "Desc", "http://t2", "thumbs/2").
		WillReturnRows(sqlmock.NewRows(videoCols).AddRow(videoValues("v-1", "u-1")...))
	if _, err := repo.Update(ctx, "v-1", "New", "Desc", models.MediaRef{URL: "http://t2", PublicID: "thumbs/2"}); err != nil {
		t.Fatalf("Update error: %v", err)
	}

	mock.ExpectQuery(`(?s)^UPDATE\s+videos\s+v\s+SET\s+is_published\s*=\s*\$2`).
		WithArgs("v-1", false).WillReturnError(sql.ErrNoRows)
	if _, err := repo.SetPublished(ctx, "v-1", false); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestDeleteAndIncrementViews(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()
	ctx := context.Background()

	mock.ExpectExec(`^DELETE\s+FROM\s+videos\s+WHERE\s+id\s*=\s*\$1$`).WithArgs("v-1").WillReturnResult(sqlmock.NewResult(0, 1))
	if err := repo.Delete(ctx, "v-1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}

	mock.ExpectExec(`^UPDATE\s+videos\s+SET\s+views\s*=\s*views\s*\+\s*1`).WithArgs("v-2").WillReturnResult(sqlmock.NewResult(0, 0))
	if err := repo.IncrementViews(ctx, "v-2"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestDashboardQueries(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()
	ctx := context.Background()

	mock.ExpectQuery(`(?s)^SELECT\s+v\.id,.*FROM\s+videos\s+v\s+WHERE\s+v\.owner_id\s*=\s*\$1\s+ORDER\s+BY\s+v\.created_at\s+DESC`).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows(cols(videoCols, []string{"likes"})).AddRow(vals(videoValues("v-1", "u-1"), []driver.Value{int64(2)})...))
	list, err := repo.ListByOwner(ctx, "u-1")
	if err != nil || len(list) != 1 || list[0].LikesCount != 2 {
		t.Fatalf("ListByOwner: %+v %v", list, err)
	}

	mock.ExpectQuery(`(?s)^SELECT\s+\(SELECT\s+COUNT\(\*\)\s+FROM\s+subscriptions`).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows([]string{"a", "b", "c", "d"}).AddRow(int64(1), int64(2), int64(3), int64(40)))
	stats, err := repo.ChannelStats(ctx, "u-1")
	if err != nil {
		t.Fatalf("ChannelStats error: %v", err)
	}
	if *stats != (models.ChannelStats{TotalSubscribers: 1, TotalLikes: 2, TotalVideos: 3, TotalViews: 40}) {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}
