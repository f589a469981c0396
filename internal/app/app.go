package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/StNick/squash-team-challenge/internal/config"
	"github.com/StNick/squash-team-challenge/internal/domain/match"
	"github.com/StNick/squash-team-challenge/internal/domain/matchup"
	"github.com/StNick/squash-team-challenge/internal/domain/player"
	"github.com/StNick/squash-team-challenge/internal/domain/team"
	"github.com/StNick/squash-team-challenge/internal/domain/tournament"
	cacherepo "github.com/StNick/squash-team-challenge/internal/infrastructure/repository/cache"
	"github.com/StNick/squash-team-challenge/internal/infrastructure/repository/memory"
	"github.com/StNick/squash-team-challenge/internal/infrastructure/repository/postgres"
	"github.com/StNick/squash-team-challenge/internal/interfaces/httpapi"
	basecache "github.com/StNick/squash-team-challenge/internal/platform/cache"
	"github.com/StNick/squash-team-challenge/internal/platform/logging"
	"github.com/StNick/squash-team-challenge/internal/usecase"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

type repositories struct {
	tournaments tournament.Repository
	teams       team.Repository
	players     player.Repository
	reserves    player.ReserveRepository
	matchups    matchup.Repository
	matches     match.Repository
}

// NewHTTPServer assembles the full API server. The returned cleanup
// function closes the database pool and must run after server shutdown.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, cleanup, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos.tournaments = cacherepo.NewTournamentRepository(repos.tournaments, store)
		repos.teams = cacherepo.NewTeamRepository(repos.teams, store)
		repos.players = cacherepo.NewPlayerRepository(repos.players, store)
		repos.reserves = cacherepo.NewReserveRepository(repos.reserves, store)
	}

	handler := httpapi.NewHandler(
		usecase.NewTournamentService(repos.tournaments, repos.teams, repos.matchups, repos.matches),
		usecase.NewRosterService(repos.teams, repos.players, repos.reserves),
		usecase.NewAggregationService(repos.teams, repos.matchups, repos.matches, repos.players, repos.reserves,
			usecase.WithDefaultRecomputeWorkers(cfg.RecomputeWorkers)),
		logger,
	)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.AdminToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		_ = cleanup()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, cleanup, nil
}

func buildRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, func() error, error) {
	if cfg.DBURL == "" {
		logger.Info("using in-memory repositories", "reason", "DB_URL empty")
		return repositories{
			tournaments: memory.NewTournamentRepository(memory.SeedTournaments()),
			teams:       memory.NewTeamRepository(memory.SeedTeams()),
			players:     memory.NewPlayerRepository(memory.SeedPlayers()),
			reserves:    memory.NewReserveRepository(memory.SeedReserves()),
			matchups:    memory.NewMatchupRepository(memory.SeedMatchups()),
			matches:     memory.NewMatchRepository(memory.SeedMatches()),
		}, func() error { return nil }, nil
	}

	db, err := connectDB(ctx, cfg)
	if err != nil {
		return repositories{}, nil, err
	}

	if err := postgres.BootstrapSeed(ctx, db); err != nil {
		_ = db.Close()
		return repositories{}, nil, fmt.Errorf("bootstrap seed: %w", err)
	}

	logger.Info("using postgres repositories", "db_name", dbNameFromURL(cfg.DBURL))
	return repositories{
		tournaments: postgres.NewTournamentRepository(db),
		teams:       postgres.NewTeamRepository(db),
		players:     postgres.NewPlayerRepository(db),
		reserves:    postgres.NewReserveRepository(db),
		matchups:    postgres.NewMatchupRepository(db),
		matches:     postgres.NewMatchRepository(db),
	}, db.Close, nil
}

func connectDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Open("postgres", dbURL,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}
