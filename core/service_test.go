package core

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeService implements Interface and records lifecycle calls
type fakeService struct {
	id       string
	startErr error
	recorder *callRecorder

	mu      sync.Mutex
	started bool
	stopped bool
}

func (fs *fakeService) Start(ctx context.Context) error {
	fs.mu.Lock()
	fs.started = true
	fs.mu.Unlock()
	if fs.recorder != nil {
		fs.recorder.record("start:" + fs.id)
	}
	return fs.startErr
}

func (fs *fakeService) Stop() {
	fs.mu.Lock()
	fs.stopped = true
	fs.mu.Unlock()
	if fs.recorder != nil {
		fs.recorder.record("stop:" + fs.id)
	}
}

func (fs *fakeService) wasStarted() bool {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.started
}

func (fs *fakeService) wasStopped() bool {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.stopped
}

// callRecorder captures the order of lifecycle calls
type callRecorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *callRecorder) record(call string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call)
}

func (r *callRecorder) order() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func TestStartAll(t *testing.T) {
	registry := NewRegistry()
	first := &fakeService{id: "first"}
	second := &fakeService{id: "second"}
	registry.Register(first)
	registry.Register(second)

	require.NoError(t, registry.StartAll(context.Background()))
	assert.True(t, first.wasStarted())
	assert.True(t, second.wasStarted())
}

func TestStartAll_ErrorStopsStartedServices(t *testing.T) {
	registry := NewRegistry()
	startErr := errors.New("start error")
	first := &fakeService{id: "first"}
	second := &fakeService{id: "second", startErr: startErr}
	third := &fakeService{id: "third"}
	registry.Register(first)
	registry.Register(second)
	registry.Register(third)

	err := registry.StartAll(context.Background())
	require.ErrorIs(t, err, startErr)

	assert.True(t, first.wasStarted())
	assert.True(t, first.wasStopped(), "services started before the failure must be stopped")
	assert.False(t, third.wasStarted(), "services after the failure must not start")
}

func TestStopAll_ReverseOrder(t *testing.T) {
	registry := NewRegistry()
	recorder := &callRecorder{}
	for _, id := range []string{"first", "second", "third"} {
		registry.Register(&fakeService{id: id, recorder: recorder})
	}

	require.NoError(t, registry.StartAll(context.Background()))
	registry.StopAll()

	assert.Equal(t, []string{
		"start:first", "start:second", "start:third",
		"stop:third", "stop:second", "stop:first",
	}, recorder.order())
}
