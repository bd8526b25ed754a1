package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dropDatabas3/idbridge/internal/config"
	httpserver "github.com/dropDatabas3/idbridge/internal/http"
	"github.com/dropDatabas3/idbridge/internal/identity/gateway"
	"github.com/dropDatabas3/idbridge/internal/identity/providers"
	"github.com/dropDatabas3/idbridge/internal/identity/providers/facebook"
	"github.com/dropDatabas3/idbridge/internal/identity/providers/google"
	"github.com/dropDatabas3/idbridge/internal/identity/providers/microsoft"
	"github.com/dropDatabas3/idbridge/internal/identity/providers/twitter"
	"github.com/dropDatabas3/idbridge/internal/infra/cachefactory"
	"github.com/dropDatabas3/idbridge/internal/login"
	"github.com/dropDatabas3/idbridge/internal/metrics"
	"github.com/dropDatabas3/idbridge/internal/observability/logger"
	"github.com/dropDatabas3/idbridge/internal/session"
	pgstore "github.com/dropDatabas3/idbridge/internal/store/adapters/pg"
)

func main() {
	_ = godotenv.Load()

	configPath := envOr("IDBRIDGE_CONFIG", "config.yaml")

	root := &cobra.Command{
		Use:   "idbridge",
		Short: "External identity normalization and session enrichment service",
	}
	root.PersistentFlags().StringVar(&configPath, "config", configPath, "ruta al config YAML (env IDBRIDGE_CONFIG)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Arranca el servicio HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(configPath)
		},
	}
	root.AddCommand(serveCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serve(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger.Init(logger.Config{
		Env:         cfg.App.Env,
		Level:       cfg.Log.Level,
		ServiceName: "idbridge",
	})
	defer func() { _ = logger.Sync() }()

	if err := metrics.Register(nil); err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	pool, err := pgxpool.New(context.Background(), cfg.Storage.DSN)
	if err != nil {
		return fmt.Errorf("open postgres pool: %w", err)
	}
	defer pool.Close()

	var cacheCfg cachefactory.Config
	cacheCfg.Kind = cfg.Cache.Kind
	cacheCfg.Redis.Addr = cfg.Cache.Redis.Addr
	cacheCfg.Redis.DB = cfg.Cache.Redis.DB
	cacheCfg.Redis.Prefix = cfg.Cache.Redis.Prefix
	cacheCfg.Memory.DefaultTTL = cfg.Cache.Memory.DefaultTTL

	c, err := cachefactory.Open(cacheCfg)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}

	gw := gateway.New()

	registry := providers.NewRegistry()
	registry.Register(twitter.New(cfg.OAuth.Twitter.ConsumerKey, cfg.OAuth.Twitter.ConsumerSecret, gw))
	registry.Register(facebook.New(gw))
	registry.Register(google.New(gw))
	registry.Register(microsoft.New(cfg.OAuth.MicrosoftGraph.SavePhoto, cfg.OAuth.MicrosoftGraph.SavePhotoSize, gw))

	users := pgstore.NewUserRepo(pool)
	roles := pgstore.NewRoleRepo(pool)

	srv := &httpserver.Server{
		Login:     login.NewService(users, registry),
		Populator: session.NewPopulator(c, users, roles).WithTTL(cfg.SnapshotTTL()),
	}

	logger.L().Info("idbridge listening",
		zap.String("addr", cfg.Server.Addr),
		zap.Strings("providers", registry.Names()))
	return httpserver.Start(cfg.Server.Addr, httpserver.NewRouter(srv))
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
