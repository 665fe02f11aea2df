package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/hrygo/contentmaker/internal/bot"
	"github.com/hrygo/contentmaker/internal/bot/session"
	"github.com/hrygo/contentmaker/internal/profile"
	"github.com/hrygo/contentmaker/plugin/ai"
	"github.com/hrygo/contentmaker/plugin/telegram"
	apiv1 "github.com/hrygo/contentmaker/server/router/api/v1"
	"github.com/hrygo/contentmaker/store"
	"github.com/hrygo/contentmaker/store/db"
)

const version = "0.1.0"

const greetingBanner = `
 ContentMaker Bot %s
 Telegram assistant for AI content ideas
`

var rootCmd = &cobra.Command{
	Use:   "contentmaker",
	Short: "Telegram bot that generates and manages content ideas with AI",
	RunE: func(_ *cobra.Command, _ []string) error {
		instanceProfile := &profile.Profile{
			Mode:    viper.GetString("mode"),
			Addr:    viper.GetString("addr"),
			Port:    viper.GetInt("port"),
			Data:    viper.GetString("data"),
			Driver:  viper.GetString("driver"),
			DSN:     viper.GetString("dsn"),
			Version: version,
		}
		instanceProfile.FromEnv()
		if err := instanceProfile.Validate(); err != nil {
			return err
		}
		return run(instanceProfile)
	},
}

func init() {
	viper.SetDefault("mode", "demo")
	viper.SetDefault("driver", "sqlite")
	viper.SetDefault("addr", "")
	viper.SetDefault("port", 8081)
	viper.SetDefault("data", ".")

	rootCmd.PersistentFlags().String("mode", "demo", `mode of server, can be "prod" or "dev" or "demo"`)
	rootCmd.PersistentFlags().String("addr", "", "address of server")
	rootCmd.PersistentFlags().Int("port", 8081, "port of server")
	rootCmd.PersistentFlags().String("data", ".", "data directory")
	rootCmd.PersistentFlags().String("driver", "sqlite", "database driver")
	rootCmd.PersistentFlags().String("dsn", "", "database source name (aka. DSN)")

	for _, flag := range []string{"mode", "addr", "port", "data", "driver", "dsn"} {
		if err := viper.BindPFlag(flag, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			panic(err)
		}
	}

	viper.SetEnvPrefix("contentmaker")
	viper.AutomaticEnv()
}

func run(instanceProfile *profile.Profile) error {
	logLevel := slog.LevelInfo
	if instanceProfile.IsDev() {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	dbDriver, err := db.NewDBDriver(instanceProfile)
	if err != nil {
		return err
	}
	defer dbDriver.Close()

	storeInstance := store.New(dbDriver, instanceProfile)
	if err := storeInstance.Migrate(ctx); err != nil {
		return err
	}

	generator := ai.NewGenerator(ai.Config{
		APIKey:  instanceProfile.AIAPIKey,
		BaseURL: instanceProfile.AIBaseURL,
		Model:   instanceProfile.AIModel,
		Timeout: instanceProfile.AITimeout,
	})

	telegramClient := telegram.NewClient(telegram.Config{
		Token:  instanceProfile.TelegramToken,
		APIURL: instanceProfile.TelegramAPIURL,
	})

	sessions := session.NewStore()
	dispatcher := bot.NewDispatcher(telegramClient, storeInstance, generator, sessions, logger)
	poller := telegram.NewPoller(telegramClient, dispatcher)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	apiService := apiv1.NewAPIV1Service(storeInstance, generator, logger)
	apiService.RegisterRoutes(e)

	addr := fmt.Sprintf("%s:%d", instanceProfile.Addr, instanceProfile.Port)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		logger.Info("telegram poller started")
		err := poller.Run(gctx)
		if err == context.Canceled {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		return e.Shutdown(shutdownCtx)
	})

	fmt.Printf(greetingBanner, version)
	logger.Info("contentmaker started",
		slog.String("version", version),
		slog.String("mode", instanceProfile.Mode),
		slog.String("driver", instanceProfile.Driver))

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("contentmaker stopped", slog.Int("active_chats", sessions.ActiveChatCount()))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
