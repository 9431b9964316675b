// Package rest exposes the vidtube services over HTTP using fiber.
package rest

import (
	"context"
	"fmt"
	"net"

	"github.com/dmitrijs2005/vidtube/internal/common"
	"github.com/dmitrijs2005/vidtube/internal/logging"
	"github.com/dmitrijs2005/vidtube/internal/server/auth"
	"github.com/dmitrijs2005/vidtube/internal/server/metrics"
	"github.com/dmitrijs2005/vidtube/internal/server/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// Services are the business services the REST handlers call into.
type Services struct {
	Users         *services.UserService
	Videos        *services.VideoService
	Comments      *services.CommentService
	Tweets        *services.TweetService
	Playlists     *services.PlaylistService
	Likes         *services.LikeService
	Subscriptions *services.SubscriptionService
	Dashboard     *services.DashboardService
}

// NewServices builds every service over the same dependencies.
func NewServices(d services.Deps) Services {
	return Services{
		Users:         services.NewUserService(d),
		Videos:        services.NewVideoService(d),
		Comments:      services.NewCommentService(d),
		Tweets:        services.NewTweetService(d),
		Playlists:     services.NewPlaylistService(d),
		Likes:         services.NewLikeService(d),
		Subscriptions: services.NewSubscriptionService(d),
		Dashboard:     services.NewDashboardService(d),
	}
}

// Options configure the HTTP surface.
type Options struct {
	// CORSOrigin is the single origin allowed to send credentialed requests.
	// Empty disables CORS headers.
	CORSOrigin string
	// BodyLimit caps request bodies in bytes, uploads included.
	BodyLimit int
	// AuthLimiter, when set, guards login and registration.
	AuthLimiter fiber.Handler
	Metrics     *metrics.Metrics
}

type handlers struct {
	svc Services
	log logging.Logger
}

// NewRouter builds the fiber application with every route mounted under
// common.APIBasePath.
func NewRouter(svc Services, tokens *auth.TokenIssuer, opts Options, log logging.Logger) *fiber.App {
	log = log.With("module", "rest")

	app := fiber.New(fiber.Config{
		AppName:               "vidtube",
		BodyLimit:             opts.BodyLimit,
		ErrorHandler:          ErrorHandler(log),
		DisableStartupMessage: true,
	})

	app.Use(requestid.New())
	app.Use(AccessLog(log, opts.Metrics))
	app.Use(recover.New())
	if opts.CORSOrigin != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins:     opts.CORSOrigin,
			AllowCredentials: true,
		}))
	}

	if opts.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(opts.Metrics.Handler()))
	}

	h := &handlers{svc: svc, log: log}
	gate := Gate(tokens, svc.Users)
	limit := opts.AuthLimiter
	if limit == nil {
		limit = func(c *fiber.Ctx) error { return c.Next() }
	}

	api := app.Group(common.APIBasePath)
	api.Get("/healthcheck", h.healthcheck)

	users := api.Group("/users")
	users.Post("/register", limit, h.register)
	users.Post("/login", limit, h.login)
	users.Post("/refresh-Token", h.refreshToken)
	users.Post("/logout", gate, h.logout)
	users.Post("/changePassword", gate, h.changePassword)
	users.Get("/currentUser", gate, h.currentUser)
	users.Patch("/updateAccount", gate, h.updateAccount)
	users.Patch("/updateAvatar", gate, h.updateAvatar)
	users.Patch("/updatecoverImage", gate, h.updateCoverImage)
	users.Get("/c/:username", gate, h.channelProfile)
	users.Get("/watchHistory", gate, h.watchHistory)

	videos := api.Group("/videos", gate)
	videos.Get("/allVideos", h.listVideos)
	videos.Post("/allVideos", h.publishVideo)
	videos.Get("/:videoId", h.getVideo)
	videos.Patch("/:videoId", h.updateVideo)
	videos.Delete("/:videoId", h.deleteVideo)
	videos.Patch("/togglePublish/:videoId", h.togglePublish)

	comments := api.Group("/comments", gate)
	comments.Get("/:videoId", h.listComments)
	comments.Post("/:videoId", h.addComment)
	comments.Patch("/c/:commentId", h.updateComment)
	comments.Delete("/c/:commentId", h.deleteComment)

	tweets := api.Group("/tweets", gate)
	tweets.Post("/createTweet", h.createTweet)
	tweets.Get("/user/:userId", h.userTweets)
	tweets.Patch("/:tweetId", h.updateTweet)
	tweets.Delete("/:tweetId", h.deleteTweet)

	playlists := api.Group("/playlists", gate)
	playlists.Post("/createPlaylist", h.createPlaylist)
	playlists.Get("/:playlistId", h.getPlaylist)
	playlists.Patch("/:playlistId", h.updatePlaylist)
	playlists.Delete("/:playlistId", h.deletePlaylist)
	playlists.Patch("/add/:videoId/:playlistId", h.addToPlaylist)
	playlists.Patch("/remove/:videoId/:playlistId", h.removeFromPlaylist)
	playlists.Get("/user/:userId", h.userPlaylists)

	likes := api.Group("/likes", gate)
	likes.Post("/toggle/v/:videoId", h.toggleVideoLike)
	likes.Post("/toggle/c/:commentId", h.toggleCommentLike)
	likes.Post("/toggle/t/:tweetId", h.toggleTweetLike)
	likes.Get("/likedVideos", h.likedVideos)

	subs := api.Group("/subscriptions", gate)
	subs.Post("/c/:channelId", h.toggleSubscription)
	subs.Get("/c/:channelId", h.channelSubscribers)
	subs.Get("/u/:subscriberId", h.subscribedChannels)

	dashboard := api.Group("/dashboard", gate)
	dashboard.Get("/stats", h.channelStats)
	dashboard.Get("/videos", h.channelVideos)

	return app
}

// HTTPServer serves the REST API until its context is cancelled.
type HTTPServer struct {
	address string
	app     *fiber.App
	logger  logging.Logger
}

func NewHTTPServer(address string, app *fiber.App, logger logging.Logger) *HTTPServer {
	return &HTTPServer{address: address, app: app, logger: logger.With("module", "http")}
}

// Run listens on the configured address and blocks until ctx is cancelled or
// the listener fails. Cancellation triggers a graceful shutdown.
func (s *HTTPServer) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.address, err)
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(context.Background(), "shutting down HTTP server")
		if err := s.app.ShutdownWithContext(context.Background()); err != nil {
			s.logger.Error(context.Background(), "HTTP shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "HTTP server listening", "address", s.address)
	if err := s.app.Listener(ln); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}
	return nil
}
