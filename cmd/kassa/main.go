package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"kassa/pkg/app"
	"kassa/pkg/storage"

	"github.com/joho/godotenv"
	"github.com/vmkteam/embedlog"
)

const appName = "kassa"

var (
	fs          = flag.NewFlagSet(appName, flag.ExitOnError)
	flHost      = fs.String("host", "0.0.0.0", "http listen host")
	flPort      = fs.Int("port", 8075, "http listen port")
	flDevel     = fs.Bool("devel", false, "enable development mode")
	flVerbose   = fs.Bool("verbose", false, "enable debug output")
	flJSONLogs  = fs.Bool("json", false, "log in JSON format")
	flBotDebug  = fs.Bool("bot-debug", false, "enable telegram bot debug output")
	gracePeriod = 5 * time.Second
)

func main() {
	_ = fs.Parse(os.Args[1:])
	_ = godotenv.Load()

	sl := embedlog.NewLogger(*flVerbose, *flJSONLogs)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := readConfig()
	exitOnError(sl, err)

	store, err := storage.NewMinioStore(cfg.Storage)
	exitOnError(sl, err)

	a, err := app.New(ctx, appName, sl, cfg, store)
	exitOnError(sl, err)

	// graceful shutdown
	go func() {
		<-ctx.Done()
		if err := a.Shutdown(gracePeriod); err != nil {
			sl.Error(context.Background(), "shutdown failed", "err", err)
		}
	}()

	if err := a.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		exitOnError(sl, err)
	}
}

// readConfig assembles app.Config from flags and environment. Credentials
// come from env (or .env) only.
func readConfig() (app.Config, error) {
	var cfg app.Config

	cfg.Server.Host = *flHost
	cfg.Server.Port = *flPort
	cfg.Server.IsDevel = *flDevel

	cfg.Telegram.Token = os.Getenv("TELEGRAM_BOT_TOKEN")
	cfg.Telegram.Debug = *flBotDebug

	allowed, err := parseIDList(os.Getenv("ALLOWED_USER_IDS"))
	if err != nil {
		return cfg, fmt.Errorf("invalid ALLOWED_USER_IDS: %w", err)
	}
	cfg.Telegram.AllowedUserIDs = allowed

	cfg.Storage = storage.MinioConfig{
		Endpoint:  os.Getenv("S3_ENDPOINT"),
		AccessKey: os.Getenv("S3_ACCESS_KEY_ID"),
		SecretKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
		Bucket:    envOrDefault("S3_BUCKET", "tables"),
		UseSSL:    true,
	}
	if v := os.Getenv("S3_USE_SSL"); v != "" {
		useSSL, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid S3_USE_SSL: %w", err)
		}
		cfg.Storage.UseSSL = useSSL
	}

	return cfg, nil
}

func parseIDList(s string) ([]int64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func exitOnError(sl embedlog.Logger, err error) {
	if err != nil {
		sl.Error(context.Background(), "fatal error", "err", err)
		os.Exit(1)
	}
}
