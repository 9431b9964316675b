package subscriptions

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/vidtube/internal/dbx"
	"github.com/dmitrijs2005/vidtube/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Toggle(ctx context.Context, subscriberID, channelID string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM subscriptions WHERE subscriber_id = $1 AND channel_id = $2`, subscriberID, channelID)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	if n > 0 {
		return false, nil
	}

	query :=
		`INSERT INTO subscriptions (subscriber_id, channel_id) VALUES ($1, $2)
		 ON CONFLICT (subscriber_id, channel_id) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, query, subscriberID, channelID); err != nil {
		return false, dbx.WrapError(err)
	}
	return true, nil
}

// Subscribers lists users subscribed to channelID. IsSubscribed tells
// whether the channel subscribes back to each of them.
func (r *PostgresRepository) Subscribers(ctx context.Context, channelID string) ([]models.ChannelSummary, error) {
	query :=
		`SELECT u.id, u.username, u.full_name, u.avatar_url,
		 (SELECT COUNT(*) FROM subscriptions x WHERE x.channel_id = u.id),
		 EXISTS (SELECT 1 FROM subscriptions x WHERE x.channel_id = u.id AND x.subscriber_id = $1)
		 FROM subscriptions s
		 JOIN users u ON u.id = s.subscriber_id
		 WHERE s.channel_id = $1
		 ORDER BY s.created_at DESC
		 `
	return r.list(ctx, query, channelID)
}

// SubscribedChannels lists channels subscriberID follows.
func (r *PostgresRepository) SubscribedChannels(ctx context.Context, subscriberID string) ([]models.ChannelSummary, error) {
	query :=
		`SELECT u.id, u.username, u.full_name, u.avatar_url,
		 (SELECT COUNT(*) FROM subscriptions x WHERE x.channel_id = u.id),
		 TRUE
		 FROM subscriptions s
		 JOIN users u ON u.id = s.channel_id
		 WHERE s.subscriber_id = $1
		 ORDER BY s.created_at DESC
		 `
	return r.list(ctx, query, subscriberID)
}

func (r *PostgresRepository) list(ctx context.Context, query string, arg string) ([]models.ChannelSummary, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := []models.ChannelSummary{}
	for rows.Next() {
		var c models.ChannelSummary
		if err := rows.Scan(&c.ID, &c.Username, &c.FullName, &c.Avatar, &c.SubscribersCount, &c.IsSubscribed); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}
