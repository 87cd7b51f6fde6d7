package sinks

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"chronosta/logging"
)

// JSONSink appends events as JSON lines to a file, batching writes so the
// sink worker is not hitting the disk for every event.
type JSONSink struct {
	mu      sync.Mutex
	file    *os.File
	batch   []logging.Event
	maxLen  int
	ticker  *time.Ticker
	done    chan struct{}
	flushed sync.WaitGroup
}

func NewJSONSink(cfg logging.JSONConfig) (*JSONSink, error) {
	if cfg.FilePath == "" {
		return nil, fmt.Errorf("json sink requires a file path")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	file, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	maxBatch := cfg.MaxBatch
	if maxBatch <= 0 {
		maxBatch = 32
	}
	interval := cfg.FlushInterval
	if interval <= 0 {
		interval = 2 * time.Second
	}
	s := &JSONSink{
		file:   file,
		batch:  make([]logging.Event, 0, maxBatch),
		maxLen: maxBatch,
		ticker: time.NewTicker(interval),
		done:   make(chan struct{}),
	}
	s.flushed.Add(1)
	go s.flushLoop()
	return s, nil
}

func (s *JSONSink) Write(event logging.Event) error {
	s.mu.Lock()
	s.batch = append(s.batch, event)
	shouldFlush := len(s.batch) >= s.maxLen
	s.mu.Unlock()
	if shouldFlush {
		return s.flush()
	}
	return nil
}

func (s *JSONSink) flushLoop() {
	defer s.flushed.Done()
	for {
		select {
		case <-s.done:
			return
		case <-s.ticker.C:
			s.flush()
		}
	}
}

func (s *JSONSink) flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.batch) == 0 {
		return nil
	}
	for _, event := range s.batch {
		data, err := json.Marshal(event)
		if err != nil {
			continue
		}
		if _, err := s.file.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("write log line: %w", err)
		}
	}
	s.batch = s.batch[:0]
	return nil
}

func (s *JSONSink) Close(ctx context.Context) error {
	s.ticker.Stop()
	close(s.done)
	s.flushed.Wait()
	if err := s.flush(); err != nil {
		return err
	}
	return s.file.Close()
}
