package main

import (
	"context"
	"fmt"
	"os"
	"time"

	auctionapp "github.com/niazroky/Commerce/internal/auction/application"
	auctiondomain "github.com/niazroky/Commerce/internal/auction/domain"
	auctionapi "github.com/niazroky/Commerce/internal/auction/infra/httpapi"
	auctionmem "github.com/niazroky/Commerce/internal/auction/infra/repository/memory"
	auctionpg "github.com/niazroky/Commerce/internal/auction/infra/repository/postgres"
	communityapp "github.com/niazroky/Commerce/internal/community/application"
	communitydomain "github.com/niazroky/Commerce/internal/community/domain"
	communityapi "github.com/niazroky/Commerce/internal/community/infra/httpapi"
	communitymem "github.com/niazroky/Commerce/internal/community/infra/repository/memory"
	communitypg "github.com/niazroky/Commerce/internal/community/infra/repository/postgres"
	"github.com/niazroky/Commerce/internal/shared/config"
	"github.com/niazroky/Commerce/internal/shared/db"
	"github.com/niazroky/Commerce/internal/shared/db/migrations"
	"github.com/niazroky/Commerce/internal/shared/httpserver"
	"github.com/niazroky/Commerce/internal/shared/logger"
	"github.com/niazroky/Commerce/internal/shared/metrics"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

type stores struct {
	auction   auctiondomain.Store
	comments  communitydomain.CommentRepository
	watchlist communitydomain.WatchlistRepository
	close     func()
}

func main() {
	log := logger.GetLogger()
	defer log.Sync()

	fs := pflag.NewFlagSet("commerce", pflag.ExitOnError)
	config.RegisterFlags(fs)
	issueToken := fs.String("issue-token", "", "print a 24h bearer token for the given user id and exit")
	_ = fs.Parse(os.Args[1:])

	cfg, err := config.Load(fs)
	if err != nil {
		log.Fatal("Invalid configuration", zap.Error(err))
	}
	if err := logger.SetLevel(cfg.LogLevel); err != nil {
		log.Warn("Ignoring invalid log level", zap.String("level", cfg.LogLevel), zap.Error(err))
	}
	auth := httpserver.NewAuthenticator(cfg.JWTSecret)

	// local tooling, real tokens come from the identity provider
	if *issueToken != "" {
		token, err := auth.Issue(*issueToken, 24*time.Hour)
		if err != nil {
			log.Fatal("Token issuance failed", zap.Error(err))
		}
		fmt.Println(token)
		return
	}

	log.Info("Starting Commerce server...")
	if cfg.InsecureSecret() {
		log.Warn("JWT_SECRET is the development default, do not expose this instance")
	}

	st, err := openStores(cfg)
	if err != nil {
		log.Fatal("Storage initialization failed", zap.String("driver", cfg.StorageDriver), zap.Error(err))
	}
	defer st.close()

	m := metrics.New(cfg.MetricsNamespace)

	auctionService := auctionapp.NewAuctionService(st.auction, m)
	communityService := communityapp.NewCommunityService(st.auction.Listings(), st.comments, st.watchlist)

	server := httpserver.NewServer(m)
	auctionapi.NewAuctionHandler(auctionService, auth).Register(server.Router())
	communityapi.NewCommunityHandler(communityService, auth).Register(server.Router())

	if err := server.Start(cfg.HTTPAddr); err != nil {
		log.Fatal("HTTP server failed", zap.Error(err))
	}
}

func openStores(cfg *config.Config) (*stores, error) {
	log := logger.GetLogger()

	if cfg.StorageDriver == config.StorageDriverMemory {
		log.Warn("Using in-memory storage, data is lost on restart")
		community := communitymem.NewStore()
		return &stores{
			auction:   auctionmem.NewStore(),
			comments:  community.Comments(),
			watchlist: community.Watchlist(),
			close:     func() {},
		}, nil
	}

	log.Info("Running database migrations...")
	if err := migrations.RunMigrations(cfg.PostgresDSN()); err != nil {
		return nil, err
	}
	log.Info("Database migrations completed successfully.")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	pool, err := db.GetPostgresDBPool(ctx, cfg.PostgresDSN())
	if err != nil {
		return nil, err
	}
	return &stores{
		auction:   auctionpg.NewStore(pool),
		comments:  communitypg.NewCommentRepository(pool),
		watchlist: communitypg.NewWatchlistRepository(pool),
		close:     pool.Close,
	}, nil
}
