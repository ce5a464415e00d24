package jobs

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/forgo/divisions/internal/repository"
	"github.com/forgo/divisions/internal/service"
)

func newTestService(t *testing.T) *service.DivisionService {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := repository.NewDivisionRepository(t.TempDir(), logger)
	return service.NewDivisionService(service.DivisionServiceConfig{
		Repo:   repo,
		Logger: logger,
	})
}

func TestChatFlusher_StartStop(t *testing.T) {
	flusher := NewChatFlusher(newTestService(t), time.Hour)

	flusher.Start()
	if !flusher.IsRunning() {
		t.Error("expected flusher to be running after Start")
	}
	// Start is idempotent
	flusher.Start()

	flusher.Stop()
	if flusher.IsRunning() {
		t.Error("expected flusher to be stopped after Stop")
	}
	// Stop is idempotent
	flusher.Stop()
}

func TestChatFlusher_RunOnce_DrainsBuffer(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	d, err := svc.Create(ctx, service.CreateDivisionRequest{
		Owner: uuid.New(),
		Name:  "Iron Vanguard",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	cached, err := svc.ByID(ctx, d.ID)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if err := svc.Broadcast(ctx, cached, "movement at dawn"); err != nil {
		t.Fatalf("broadcast: %v", err)
	}

	flusher := NewChatFlusher(svc, 0)
	if err := flusher.RunOnce(ctx); err != nil {
		t.Fatalf("run once: %v", err)
	}
	if buffered := svc.MessageLog(cached); len(buffered) != 0 {
		t.Errorf("expected buffer drained, got %d lines", len(buffered))
	}
}
