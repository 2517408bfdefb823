package scheduler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/maidacontrol/internal/logger"
)

type fakeSyncer struct {
	calls  atomic.Int32
	status int
	err    error
	called chan struct{}
}

func (f *fakeSyncer) SyncFavorites(ctx context.Context) (*http.Response, error) {
	f.calls.Add(1)
	if f.called != nil {
		select {
		case f.called <- struct{}{}:
		default:
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &http.Response{
		StatusCode: f.status,
		Body:       io.NopCloser(strings.NewReader(`{"synced":true}`)),
	}, nil
}

func TestNewSyncer_Schedule(t *testing.T) {
	tests := []struct {
		schedule string
		wantErr  bool
	}{
		{schedule: "@every 24h"},
		{schedule: "@daily"},
		{schedule: "0 4 * * *"},
		{schedule: "every day", wantErr: true},
		{schedule: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.schedule, func(t *testing.T) {
			_, err := NewSyncer(&fakeSyncer{}, tt.schedule, logger.Discard())
			if (err != nil) != tt.wantErr {
				t.Errorf("NewSyncer(%q) error = %v, wantErr %v", tt.schedule, err, tt.wantErr)
			}
		})
	}
}

func TestSyncer_RunOnce(t *testing.T) {
	fake := &fakeSyncer{status: http.StatusOK}
	s, err := NewSyncer(fake, "@every 1h", logger.Discard())
	if err != nil {
		t.Fatalf("NewSyncer() error = %v", err)
	}

	res, err := s.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("RunOnce() error = %v", err)
	}
	if res.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, want %d", res.StatusCode, http.StatusOK)
	}
	if fake.calls.Load() != 1 {
		t.Errorf("calls = %d, want 1", fake.calls.Load())
	}
}

func TestSyncer_RunOnce_Error(t *testing.T) {
	cause := errors.New("backend down")
	s, err := NewSyncer(&fakeSyncer{err: cause}, "@every 1h", logger.Discard())
	if err != nil {
		t.Fatalf("NewSyncer() error = %v", err)
	}
	if _, err := s.RunOnce(context.Background()); !errors.Is(err, cause) {
		t.Errorf("RunOnce() error = %v, want %v", err, cause)
	}
}

func TestSyncer_StartRunsOnSchedule(t *testing.T) {
	fake := &fakeSyncer{status: http.StatusOK, called: make(chan struct{}, 1)}
	s, err := NewSyncer(fake, "@every 1s", logger.Discard())
	if err != nil {
		t.Fatalf("NewSyncer() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	select {
	case <-fake.called:
	case <-time.After(5 * time.Second):
		t.Fatal("scheduled sync did not run")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Start() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Start() did not return after cancel")
	}
}

func TestSyncer_NilLoggerUsesDefault(t *testing.T) {
	s, err := NewSyncer(&fakeSyncer{status: http.StatusOK}, "@every 1h", nil)
	if err != nil {
		t.Fatalf("NewSyncer() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Start(ctx); err != nil {
		t.Errorf("Start() error = %v", err)
	}
}
