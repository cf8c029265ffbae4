package app

import (
	"context"
	"log"
	"log/slog"

	"github.com/SriHarshaMande/Planning-poker/internal/config"
	http_game "github.com/SriHarshaMande/Planning-poker/internal/delivery/http/game"
	http_init "github.com/SriHarshaMande/Planning-poker/internal/delivery/http/init"
	http_story "github.com/SriHarshaMande/Planning-poker/internal/delivery/http/story"
	ws_game "github.com/SriHarshaMande/Planning-poker/internal/delivery/ws/game"
	infra_genai "github.com/SriHarshaMande/Planning-poker/internal/infra/genai"
	infra_memory_game "github.com/SriHarshaMande/Planning-poker/internal/infra/memory/game"
	infra_postgres_game "github.com/SriHarshaMande/Planning-poker/internal/infra/postgres/game"
	infra_pg_init "github.com/SriHarshaMande/Planning-poker/internal/infra/postgres/init"
	infra_redis_game "github.com/SriHarshaMande/Planning-poker/internal/infra/redis/game"
	infra_redis_init "github.com/SriHarshaMande/Planning-poker/internal/infra/redis/init"
	usecase_game "github.com/SriHarshaMande/Planning-poker/internal/usecase/game"
	usecase_story "github.com/SriHarshaMande/Planning-poker/internal/usecase/story"
)

func Go(cfg *config.Config) {
	const redisKeyPrefix = "game"

	var repo usecase_game.GameRepository
	switch cfg.Store.Backend {
	case "redis":
		redisConn := infra_redis_init.MustEstablishConn(cfg.Redis)
		repo = infra_redis_game.New(redisConn, redisKeyPrefix)
	case "postgres":
		pgConn := infra_pg_init.MustEstablishConn(cfg.Postgres)
		driver := infra_postgres_game.New(pgConn)
		if err := driver.EnsureSchema(context.Background()); err != nil {
			log.Fatalf("failed to ensure games schema: %v", err)
		}
		repo = driver
	default:
		repo = infra_memory_game.New()
	}

	var generator usecase_story.StoryGenerator
	if cfg.GenAI.APIKey == "" {
		slog.Warn("GEMINI_API_KEY not set, story generation uses the stub")
		generator = infra_genai.NewMock()
	} else {
		generator = infra_genai.MustEstablishClient(cfg.GenAI)
	}

	hub := ws_game.NewHub(slog.Default())
	gameUC := usecase_game.New(repo, hub, cfg.Store.RoomIDLength)
	storyUC := usecase_story.New(generator)

	controllerPool := http_init.NewControllerPool()
	controllerPool.Add(
		http_game.New(gameUC),
		http_story.New(storyUC),
		ws_game.NewController(hub),
	)
	controllerPool.RunAll(cfg.HTTP.Port)
}
