package jobs

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/forgo/divisions/internal/service"
)

// ChatFlusher periodically drains buffered division chat to disk
type ChatFlusher struct {
	divisionService *service.DivisionService
	interval        time.Duration
	stopCh          chan struct{}
	wg              sync.WaitGroup
	running         bool
	mu              sync.Mutex
}

// NewChatFlusher creates a new chat flusher job
func NewChatFlusher(divisionService *service.DivisionService, interval time.Duration) *ChatFlusher {
	if interval == 0 {
		interval = time.Minute // Default flush every minute
	}
	return &ChatFlusher{
		divisionService: divisionService,
		interval:        interval,
		stopCh:          make(chan struct{}),
	}
}

// Start begins the chat flusher job
func (f *ChatFlusher) Start() {
	f.mu.Lock()
	if f.running {
		f.mu.Unlock()
		return
	}
	f.running = true
	f.mu.Unlock()

	f.wg.Add(1)
	go f.run()
	log.Printf("Chat flusher started (interval: %v)", f.interval)
}

// Stop gracefully stops the chat flusher job, flushing one last time
func (f *ChatFlusher) Stop() {
	f.mu.Lock()
	if !f.running {
		f.mu.Unlock()
		return
	}
	f.running = false
	f.mu.Unlock()

	close(f.stopCh)
	f.wg.Wait()
	f.flush()
	log.Println("Chat flusher stopped")
}

// run is the main loop
func (f *ChatFlusher) run() {
	defer f.wg.Done()

	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			f.flush()
		case <-f.stopCh:
			return
		}
	}
}

// flush drains every division's chat buffer
func (f *ChatFlusher) flush() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := f.divisionService.FlushChat(ctx); err != nil {
		log.Printf("Error flushing division chat: %v", err)
	}
}

// RunOnce flushes once (for testing or manual trigger)
func (f *ChatFlusher) RunOnce(ctx context.Context) error {
	return f.divisionService.FlushChat(ctx)
}

// IsRunning returns whether the flusher is running
func (f *ChatFlusher) IsRunning() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.running
}
