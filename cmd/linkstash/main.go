package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/linkstash/linkstash/internal/cache"
	"github.com/linkstash/linkstash/internal/profile"
	"github.com/linkstash/linkstash/server"
	"github.com/linkstash/linkstash/store"
	"github.com/linkstash/linkstash/store/db"
)

var version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "linkstash",
	Short: "A personal bookmark and snippet archive",
	Run: func(_ *cobra.Command, _ []string) {
		instanceProfile := &profile.Profile{
			Mode:          viper.GetString("mode"),
			Addr:          viper.GetString("addr"),
			Port:          viper.GetInt("port"),
			Data:          viper.GetString("data"),
			Driver:        viper.GetString("driver"),
			DSN:           viper.GetString("dsn"),
			RedisURL:      viper.GetString("redis-url"),
			IndexResponse: viper.GetString("index-response"),
			Version:       version,
		}
		if err := instanceProfile.Validate(); err != nil {
			slog.Error("invalid profile", slog.String("error", err.Error()))
			os.Exit(1)
		}

		setupLogger(instanceProfile)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		dbDriver, err := db.NewDBDriver(instanceProfile)
		if err != nil {
			slog.Error("failed to create db driver", slog.String("error", err.Error()))
			os.Exit(1)
		}

		storeInstance := store.New(dbDriver, instanceProfile)
		if err := storeInstance.Migrate(ctx); err != nil {
			slog.Error("failed to migrate schema", slog.String("error", err.Error()))
			os.Exit(1)
		}

		var cacheClient *cache.Cache
		if instanceProfile.RedisURL != "" {
			cacheClient, err = cache.New(instanceProfile.RedisURL)
			if err != nil {
				slog.Error("failed to create redis client", slog.String("error", err.Error()))
				os.Exit(1)
			}
		}

		s := server.NewServer(instanceProfile, storeInstance, cacheClient)

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		go func() {
			<-sig
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			s.Shutdown(shutdownCtx)
			cancel()
		}()

		if err := s.Start(ctx); err != nil {
			slog.Error("server stopped", slog.String("error", err.Error()))
			os.Exit(1)
		}
	},
}

func setupLogger(p *profile.Profile) {
	level := slog.LevelInfo
	if p.IsDev() {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))
}

func init() {
	rootCmd.PersistentFlags().String("mode", "demo", `mode of server, can be "prod" or "dev" or "demo"`)
	rootCmd.PersistentFlags().String("addr", "", "address of server")
	rootCmd.PersistentFlags().Int("port", 8080, "port of server")
	rootCmd.PersistentFlags().String("data", "", "data directory")
	rootCmd.PersistentFlags().String("driver", "sqlite", `database driver, "sqlite" or "postgres"`)
	rootCmd.PersistentFlags().String("dsn", "", "database source name")
	rootCmd.PersistentFlags().String("redis-url", "", "optional redis url for the cache and health probe")
	rootCmd.PersistentFlags().String("index-response", "Welcome", "body served on GET /")

	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		panic(err)
	}
	viper.SetEnvPrefix("linkstash")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
