package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Veraticus/easy-style/internal/account"
	"github.com/Veraticus/easy-style/internal/cli"
	"github.com/Veraticus/easy-style/internal/common"
	"github.com/Veraticus/easy-style/internal/config"
	"github.com/Veraticus/easy-style/internal/gemini"
	"github.com/Veraticus/easy-style/internal/history"
	"github.com/Veraticus/easy-style/internal/model"
	"github.com/Veraticus/easy-style/internal/notify"
	"github.com/Veraticus/easy-style/internal/purchase"
	"github.com/Veraticus/easy-style/internal/service"
	"github.com/Veraticus/easy-style/internal/share"
	"github.com/Veraticus/easy-style/internal/shopping"
	"github.com/Veraticus/easy-style/internal/storage"
	"github.com/Veraticus/easy-style/internal/styling"
)

// appConfig is populated by initConfig before any command runs.
var appConfig *config.Config

// initStorage opens and migrates the configured database.
func initStorage(ctx context.Context) (service.Storage, error) {
	store, err := storage.NewSQLiteStorage(appConfig.Database.Path)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// initGateway connects to Gemini.
func initGateway(ctx context.Context) (*gemini.Client, error) {
	g := appConfig.Gemini
	if g.APIKey == "" {
		return nil, fmt.Errorf("%w: set gemini.api_key or GEMINI_API_KEY", common.ErrMissingConfig)
	}
	return gemini.New(ctx, gemini.Options{
		Logger:            slog.Default(),
		APIKey:            g.APIKey,
		TextModel:         g.TextModel,
		ImageModel:        g.ImageModel,
		Timeout:           g.Timeout,
		RequestsPerMinute: g.RateLimit,
	})
}

func newPipeline(gateway styling.AIGateway) *styling.Pipeline {
	s := appConfig.Shopping
	searcher := shopping.NewMockSearcher(shopping.Options{
		Logger:     slog.Default(),
		MinLatency: s.MinLatency,
		MaxLatency: s.MaxLatency,
		Seed:       s.Seed,
	})
	return styling.NewWithConfig(gateway, searcher, styling.DefaultConfig())
}

func newAccounts(store service.Storage) (*account.Service, error) {
	return account.NewService(store, account.Config{
		Logger:     slog.Default(),
		JWTSecret:  appConfig.Server.JWTSecret,
		AdminEmail: appConfig.Server.AdminEmail,
	})
}

// newHistory wires S3 sharing when a bucket is configured.
func newHistory(ctx context.Context, store service.Storage) (*history.Service, error) {
	opts := []history.Option{history.WithLogger(slog.Default())}

	sc := appConfig.Share
	if sc.Bucket != "" {
		uploader, err := share.NewS3Uploader(ctx, share.Config{
			Logger:   slog.Default(),
			Bucket:   sc.Bucket,
			Region:   sc.Region,
			Endpoint: sc.Endpoint,
			LinkTTL:  sc.PresignTTL,
		})
		if err != nil {
			return nil, err
		}
		opts = append(opts, history.WithUploader(uploader))
	}
	return history.NewService(store, opts...), nil
}

func newPurchases(store service.Storage) *purchase.Service {
	nc := appConfig.Notify
	notifier := notify.New(notify.Config{
		Logger:     slog.Default(),
		APIKey:     nc.SendGridAPIKey,
		FromEmail:  nc.FromEmail,
		FromName:   nc.FromName,
		AdminEmail: appConfig.Server.AdminEmail,
	})
	return purchase.NewService(store, notifier, slog.Default())
}

// localUser identifies the operator of a CLI command.
func localUser(email string) (account.Principal, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return account.Principal{}, fmt.Errorf("%w: pass --email", common.ErrUnauthorized)
	}
	return account.Principal{Email: email, IsAdmin: strings.EqualFold(email, appConfig.Server.AdminEmail)}, nil
}

// exportProductImages writes the result's product card images into dir.
func exportProductImages(ctx context.Context, out io.Writer, dir string, result model.StyleResult) error {
	cards, err := cli.ExportProductImages(ctx, dir, result, cli.HTTPImageFetcher(nil))
	fmt.Fprint(out, cli.RenderProductImages(cards))
	return err
}

// localAdmin is the principal used for admin-only CLI commands.
func localAdmin() account.Principal {
	return account.Principal{Email: appConfig.Server.AdminEmail, IsAdmin: true}
}
