package http

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
)

// allTopics subscribes to every solution regardless of its problem.
const allTopics = ""

// StreamManager handles active SSE connections.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan<- string]struct{} // problem ID -> set of channels
	logger      *slog.Logger
}

// NewStreamManager creates a manager that reports dropped messages to logger.
// A nil logger discards them.
func NewStreamManager(logger *slog.Logger) *StreamManager {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &StreamManager{
		subscribers: make(map[string]map[chan<- string]struct{}),
		logger:      logger,
	}
}

// Subscribe registers a channel for solutions of problemID, or of every problem
// when problemID is empty. The returned function unsubscribes and closes the channel.
func (sm *StreamManager) Subscribe(problemID string) (chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 10)
	if _, ok := sm.subscribers[problemID]; !ok {
		sm.subscribers[problemID] = make(map[chan<- string]struct{})
	}
	sm.subscribers[problemID][ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if subs, ok := sm.subscribers[problemID]; ok {
			delete(subs, ch)
			close(ch)
			if len(subs) == 0 {
				delete(sm.subscribers, problemID)
			}
		}
	}
}

// Broadcast sends msg to the subscribers of problemID and to the catch-all subscribers.
// Slow clients drop messages rather than block the solver.
func (sm *StreamManager) Broadcast(problemID string, msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	topics := []string{allTopics}
	if problemID != allTopics {
		topics = append(topics, problemID)
	}
	for _, topic := range topics {
		for ch := range sm.subscribers[topic] {
			select {
			case ch <- msg:
			default:
				sm.logger.Warn("SSE: client buffer full, dropping message", "problem", problemID)
			}
		}
	}
}

// SubscribeEvents handles the GET /events request (SSE).
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	problemID := r.URL.Query().Get("problem")
	ch, cancel := s.Streams.Subscribe(problemID)
	defer cancel()

	s.Logger.Info("SSE: client subscribed", "problem", problemID)
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: solution\ndata: %s\n\n", msg)
			flusher.Flush()
		}
	}
}
