package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/uwoguessr/uwoguessr-server/internal/api"
	"github.com/uwoguessr/uwoguessr-server/internal/factory"
	"github.com/uwoguessr/uwoguessr-server/internal/services/devicetoken"
	redisstorage "github.com/uwoguessr/uwoguessr-server/internal/storage/redis"
)

type serverOptions struct {
	bind          string
	port          int
	tokenSecret   string
	timezone      string
	storageType   string
	redisURL      string
	locationsFile string
}

func newCmd(opts *serverOptions) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("GUESSR")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "guessr-server",
		Short:         "Backend for the campus photo guessing game",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&opts.bind, "bind", "b", "", "address to bind to (env: GUESSR_BIND)")
	fs.IntVarP(&opts.port, "port", "p", 8080, "port to listen on (env: GUESSR_PORT)")
	fs.StringVar(&opts.tokenSecret, "token-secret", "", "HMAC secret for device tokens (env: GUESSR_TOKEN_SECRET)")
	fs.StringVar(&opts.timezone, "timezone", factory.DefaultTimezone, "reference timezone for daily challenges (env: GUESSR_TIMEZONE)")
	fs.StringVar(&opts.storageType, "storage-type", factory.StorageTypeMemory, "storage backend: memory or redis (env: GUESSR_STORAGE_TYPE)")
	fs.StringVar(&opts.redisURL, "redis-url", "", "redis connection URL (env: GUESSR_REDIS_URL)")
	fs.StringVar(&opts.locationsFile, "locations-file", "", "JSON file of locations to load at startup (env: GUESSR_LOCATIONS_FILE)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	return cmd
}

func run(opts *serverOptions) error {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if len(opts.tokenSecret) < devicetoken.MinSecretLength {
		// Issue and Verify will reject with 500s until the secret is fixed
		logger.Warn("device token secret missing or too short",
			slog.Int("min_length", devicetoken.MinSecretLength))
	}

	cfg := factory.Config{
		TokenSecret: opts.tokenSecret,
		Timezone:    opts.timezone,
		Logger:      logger,
		StorageType: opts.storageType,
	}

	if cfg.StorageType == factory.StorageTypeRedis {
		if opts.redisURL == "" {
			return fmt.Errorf("--redis-url required when storage type is redis")
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = opts.redisURL
		cfg.RedisConfig = &redisCfg
	}

	app, err := factory.New(cfg)
	if err != nil {
		return fmt.Errorf("creating application: %w", err)
	}

	// Load the location catalog
	if opts.locationsFile != "" {
		count, err := app.ChallengeService.LoadLocationsFromFile(context.Background(), opts.locationsFile)
		if err != nil {
			return fmt.Errorf("loading locations: %w", err)
		}
		logger.Info("location catalog loaded", slog.Int("count", count))
	}

	router := api.NewRouter(api.RouterConfig{
		Logger:               logger,
		TokenService:         app.TokenService,
		ChallengeService:     app.ChallengeService,
		LeaderboardService:   app.LeaderboardService,
		SubmissionController: app.SubmissionController,
	})

	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = opts.bind
	serverConfig.Port = opts.port
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			return err
		}
	}

	logger.Info("server stopped")
	return nil
}

func main() {
	opts := &serverOptions{}
	if err := newCmd(opts).Execute(); err != nil {
		slog.Error("server failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
