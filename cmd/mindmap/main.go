package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/maptotext/mindmap/internal/config"
	"github.com/maptotext/mindmap/internal/handler"
	"github.com/maptotext/mindmap/internal/idgen"
	"github.com/maptotext/mindmap/internal/job"
	"github.com/maptotext/mindmap/internal/middleware"
	"github.com/maptotext/mindmap/internal/repo"
	"github.com/maptotext/mindmap/internal/schedule"
	"github.com/maptotext/mindmap/internal/service"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "mindmap",
		Short: "mind map backend server",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run mind map server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return fmt.Errorf("--config is required")
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger.Init(
				cfg.LogConfig.File,
				cfg.LogConfig.Level,
				int(cfg.LogConfig.FileCount),
				int(cfg.LogConfig.FileSize),
				int(cfg.LogConfig.KeepDays),
				cfg.LogConfig.Console,
			)
			logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))

			db, err := repo.Open(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			if err := repo.ApplyMigrations(db); err != nil {
				return fmt.Errorf("migrations: %w", err)
			}
			return runServer(cfg, db)
		},
	}

	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func runServer(cfg *config.Config, db *sqlx.DB) error {
	logutil.GetLogger(context.Background()).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.String("db_path", cfg.DBPath),
	)

	store := repo.WrapLruCache(
		repo.NewMindMapRepo(db),
		cfg.CacheSize,
		time.Duration(cfg.CacheTTLSeconds)*time.Second,
	)
	versionRepo := repo.NewVersionRepo(db)

	mindMapService := service.NewMindMapService(store, versionRepo, idgen.New(), cfg.VersionMaxKeep)
	exportService := service.NewExportService(store, versionRepo)

	scheduler := schedule.NewScheduler()
	if err := scheduler.AddJob(job.NewVersionPruneJob(store, versionRepo, cfg.VersionMaxKeep), cfg.VersionPruneSpec); err != nil {
		return fmt.Errorf("schedule version prune: %w", err)
	}

	deps := handler.RouterDeps{
		MindMaps: handler.NewMindMapHandler(mindMapService),
		Bubbles:  handler.NewBubbleHandler(mindMapService),
		Keywords: handler.NewKeywordHandler(mindMapService),
		Versions: handler.NewVersionHandler(mindMapService),
		Export:   handler.NewExportHandler(exportService),
	}

	engine, err := webapi.NewEngine(
		"/api/v1",
		fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.CORS(cfg.CORSAllowlist),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}
	logutil.GetLogger(context.Background()).Info("http server listening", zap.String("addr", fmt.Sprintf("0.0.0.0:%d", cfg.Port)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler.Start(ctx)
	defer scheduler.Stop()

	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	return nil
}
