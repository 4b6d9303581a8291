package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"hrms/backend/foundation/web"
	"hrms/backend/internal/commands"
	"hrms/backend/internal/middleware"
	"hrms/backend/internal/pkg/config"
	"hrms/backend/internal/pkg/notify"
	"hrms/backend/internal/pkg/repository/database"
	"hrms/backend/internal/router"
)

func main() {
	log := log.New(os.Stdout, "HRMS : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	if err := run(log); err != nil {
		if errors.Is(err, config.ErrHelp) {
			return
		}
		log.Println("main: error:", err)
		os.Exit(1)
	}
}

func run(log *log.Logger) error {

	// =========================================================================
	// Configuration

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		return err
	}

	log.Printf("main: config :\n%v\n", cfg)

	// =========================================================================
	// Store

	ctx := context.Background()

	db, err := database.New(ctx, database.Config{
		URL:        cfg.DB.URL,
		DisableTLS: cfg.DB.DisableTLS,
		Debug:      cfg.DB.Debug,
		LogWriter:  log.Writer(),
	})
	if err != nil {
		return errors.Wrap(err, "connecting to db")
	}
	defer func() {
		log.Printf("main: closing %s store", db.Driver())
		db.Close()
	}()

	if err := commands.Migrate(ctx, db); err != nil {
		return errors.Wrap(err, "migrating db")
	}

	switch cmd := cfg.Args.Num(0); cmd {
	case "", "serve":
	case "migrate":
		version, _, err := commands.CurrentVersion(ctx, db)
		if err != nil {
			return err
		}
		log.Printf("main: migrated to version %d", version)
		return nil
	case "seed":
		path := cfg.Args.Num(1)
		if path == "" {
			return errors.New("usage: hrms seed <file.yaml>")
		}
		result, err := commands.SeedFromFile(ctx, log, db, path)
		if err != nil {
			return errors.Wrap(err, "seeding")
		}
		log.Printf("main: seeded %s: %s", path, result)
		return nil
	default:
		return errors.Errorf("unknown command %q", cmd)
	}

	// =========================================================================
	// Notifications

	var events notify.Publisher = notify.Nop{}
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()

		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("main: redis %s unreachable, events will be dropped: %v", cfg.Redis.Addr, err)
		}
		events = notify.NewRedis(client, cfg.Redis.Channel)
	}

	// =========================================================================
	// API

	notifier := notify.NewNotifier(events, log)
	defer notifier.Close()

	app := web.NewApp(log, middleware.Logger(log))
	router.NewRouter(app, db, notifier, cfg.Web.AllowedOrigins).Init()

	api := http.Server{
		Addr:         cfg.Web.Host,
		Handler:      app,
		ReadTimeout:  cfg.Web.ReadTimeout,
		WriteTimeout: cfg.Web.WriteTimeout,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Printf("main: API listening on %s", api.Addr)
		serverErrors <- api.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return errors.Wrap(err, "server error")

	case sig := <-shutdown:
		log.Printf("main: %v : start shutdown", sig)

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Web.ShutdownTimeout)
		defer cancel()

		if err := api.Shutdown(ctx); err != nil {
			api.Close()
			return errors.Wrap(err, "could not stop server gracefully")
		}
	}

	return nil
}
