package main

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/tomaskoller/inkwell/internal/common"
	"github.com/tomaskoller/inkwell/internal/postservice"
	"github.com/tomaskoller/inkwell/internal/userservice"
)

type application struct {
	config      *Config
	logger      *slog.Logger
	userService *userservice.UserService
	postService *postservice.PostService
	session     *userservice.Session

	in  *bufio.Scanner
	out io.Writer
	// sortBy is the reader's current listing order, the REPL's stand-in for
	// the sort dropdown.
	sortBy postservice.SortOrder
}

func main() {
	// Initialize the logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// Load the configuration
	cfg, err := loadConfig(".env")
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Open the substrate
	sub, err := common.NewSQLiteSubstrate(cfg.SubstratePath)
	if err != nil {
		logger.Error("failed to open the substrate", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer sub.Close()

	cache := common.NewCache(5*time.Minute, 10*time.Minute)

	// Initialize the services. The nil comparer means plaintext credentials
	// at rest; swap in userservice.BcryptComparer to harden.
	userService := userservice.NewUserService(sub, cache, nil)
	postService := postservice.NewPostService(sub, cache)

	ctx := context.Background()

	// Seed demo data on first run, before anything reads the collections.
	if err := userService.EnsureSeeded(ctx); err != nil {
		logger.Error("failed to seed accounts", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := postService.EnsureSeeded(ctx); err != nil {
		logger.Error("failed to seed posts", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Rehydrate the session left behind by a previous run
	session, err := userservice.NewSession(ctx, userService)
	if err != nil {
		logger.Error("failed to restore session", slog.String("error", err.Error()))
		os.Exit(1)
	}

	app := &application{
		config:      cfg,
		logger:      logger,
		userService: userService,
		postService: postService,
		session:     session,
		in:          bufio.NewScanner(os.Stdin),
		out:         os.Stdout,
		sortBy:      postservice.SortNewest,
	}

	logger.Info("starting inkwell",
		slog.String("substrate", cfg.SubstratePath),
		slog.String("env", cfg.Environment))

	if err := app.repl(ctx); err != nil {
		logger.Error("repl terminated", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
