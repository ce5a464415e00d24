package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/forgo/divisions/internal/config"
	"github.com/forgo/divisions/internal/jobs"
	"github.com/forgo/divisions/internal/model"
	"github.com/forgo/divisions/internal/repository"
	"github.com/forgo/divisions/internal/service"
)

func main() {
	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repo := repository.NewDivisionRepository(cfg.Store.DataDir, logger)
	svc := service.NewDivisionService(service.DivisionServiceConfig{
		Repo:            repo,
		Logger:          logger,
		MaxDivisionSize: cfg.Store.MaxDivisionSize,
	})

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	if os.Args[1] == "serve" {
		if err := runServe(cfg, svc); err != nil {
			slog.Error("serve failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	var cmdErr error
	switch os.Args[1] {
	case "list":
		cmdErr = runList(ctx, svc)
	case "show":
		cmdErr = runShow(ctx, svc, os.Args[2:])
	case "create":
		cmdErr = runCreate(ctx, svc, os.Args[2:])
	case "disband":
		cmdErr = runDisband(ctx, svc, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if cmdErr != nil {
		slog.Error("command failed", slog.String("command", os.Args[1]), slog.String("error", cmdErr.Error()))
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: divisionsctl <list|show|create|disband|serve> [flags]")
}

// runServe keeps the store resident: the chat flusher runs on its
// configured interval and, when enabled, the data directory watcher
// picks up external edits. Runs until interrupted.
func runServe(cfg *config.Config, svc *service.DivisionService) error {
	slog.Info("divisions store starting",
		slog.String("data_dir", cfg.Store.DataDir),
		slog.String("language", cfg.Language),
		slog.Bool("watch", cfg.Store.WatchEnabled),
	)

	flusher := jobs.NewChatFlusher(svc, cfg.Jobs.ChatFlushInterval)
	flusher.Start()
	defer flusher.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Store.WatchEnabled {
		go func() {
			if err := svc.Watch(ctx, cfg.Store.DataDir); err != nil && ctx.Err() == nil {
				slog.Error("data directory watch stopped", slog.String("error", err.Error()))
			}
		}()
	}

	<-ctx.Done()
	slog.Info("divisions store stopping")
	return nil
}

func runList(ctx context.Context, svc *service.DivisionService) error {
	divisions, err := svc.All(ctx)
	if err != nil {
		return err
	}
	for _, d := range divisions {
		fmt.Printf("%s  %-24s  level %-3d  members %d\n", d.ID, d.Name, d.Level(), len(d.Members))
	}
	return nil
}

func runShow(ctx context.Context, svc *service.DivisionService, args []string) error {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	name := fs.String("name", "", "division name")
	id := fs.String("id", "", "division id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	d, err := lookup(ctx, svc, *name, *id)
	if err != nil {
		return err
	}

	fmt.Printf("id:         %s\n", d.ID)
	fmt.Printf("name:       %s\n", d.Name)
	fmt.Printf("owner:      %s\n", d.Owner)
	fmt.Printf("created:    %s\n", d.CreatedAt.Format(time.RFC3339))
	fmt.Printf("level:      %d\n", d.Level())
	fmt.Printf("experience: %.0f\n", d.Experience)
	if d.Tagline != "" {
		fmt.Printf("tagline:    %s\n", d.Tagline)
	}
	fmt.Printf("members:    %d\n", len(d.Members))
	fmt.Printf("banned:     %d\n", len(d.BanList))
	for platform, link := range d.Socials {
		fmt.Printf("social:     %s %s\n", platform, link)
	}
	for _, entry := range d.AuditLog {
		fmt.Printf("audit:      %s %s\n", entry.Timestamp.Format("2006-01-02"), entry.Line())
	}
	return nil
}

func runCreate(ctx context.Context, svc *service.DivisionService, args []string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	name := fs.String("name", "", "division name")
	owner := fs.String("owner", "", "owner player id")
	tagline := fs.String("tagline", "", "division tagline")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ownerID, err := uuid.Parse(*owner)
	if err != nil {
		return fmt.Errorf("parsing owner id: %w", err)
	}

	d, err := svc.Create(ctx, service.CreateDivisionRequest{
		Owner:   ownerID,
		Name:    *name,
		Tagline: *tagline,
	})
	if err != nil {
		return err
	}
	fmt.Println(d.ID)
	return nil
}

func runDisband(ctx context.Context, svc *service.DivisionService, args []string) error {
	fs := flag.NewFlagSet("disband", flag.ExitOnError)
	name := fs.String("name", "", "division name")
	id := fs.String("id", "", "division id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	d, err := lookup(ctx, svc, *name, *id)
	if err != nil {
		return err
	}
	return svc.Remove(ctx, d, nil)
}

func lookup(ctx context.Context, svc *service.DivisionService, name, id string) (*model.Division, error) {
	switch {
	case id != "":
		parsed, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("parsing division id: %w", err)
		}
		d, err := svc.ByID(ctx, parsed)
		if err != nil {
			return nil, err
		}
		if d == nil {
			return nil, fmt.Errorf("no division with id %s", id)
		}
		return d, nil
	case name != "":
		d, err := svc.ByName(ctx, strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		if d == nil {
			return nil, fmt.Errorf("no division named %q", name)
		}
		return d, nil
	default:
		return nil, fmt.Errorf("either -name or -id is required")
	}
}
