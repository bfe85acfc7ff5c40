package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gate segura cada requisição dentro do handler até open ser fechado.
type gate struct {
	entered chan struct{}
	open    chan struct{}
}

func newGate() *gate {
	return &gate{entered: make(chan struct{}, 16), open: make(chan struct{})}
}

func (g *gate) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g.entered <- struct{}{}
	<-g.open
	w.WriteHeader(http.StatusOK)
}

func TestConcurrencyMiddleware_RejectsWhenSlotsAreBusy(t *testing.T) {
	g := newGate()
	var mu sync.Mutex
	var statuses []int
	h := ConcurrencyMiddleware(ConcurrencyOptions{
		Max:            2,
		AcquireTimeout: 20 * time.Millisecond,
		Reject: func(w http.ResponseWriter, r *http.Request, status int, _ time.Duration) {
			mu.Lock()
			statuses = append(statuses, status)
			mu.Unlock()
			w.WriteHeader(status)
		},
	})(g)

	var wg sync.WaitGroup
	codes := make(chan int, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "http://svc/", nil))
			codes <- w.Code
		}()
	}
	defer func() {
		close(g.open)
		wg.Wait()
	}()

	for i := 0; i < 2; i++ {
		select {
		case <-g.entered:
		case <-time.After(time.Second):
			t.Fatalf("request %d never reached the handler", i+1)
		}
	}

	// as duas vagas estão ocupadas: a terceira esgota o timeout
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "http://svc/", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	mu.Lock()
	require.Equal(t, []int{http.StatusServiceUnavailable}, statuses)
	mu.Unlock()
}

func TestConcurrencyMiddleware_ReleasesSlotAfterRequest(t *testing.T) {
	calls := 0
	h := ConcurrencyMiddleware(ConcurrencyOptions{Max: 1, AcquireTimeout: 10 * time.Millisecond})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { calls++ }),
	)

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "http://svc/", nil))
		require.Equal(t, http.StatusOK, w.Code, "request %d", i)
	}
	assert.Equal(t, 5, calls)
}

func TestConcurrencyMiddleware_DisabledWhenMaxIsZero(t *testing.T) {
	g := newGate()
	close(g.open)
	h := ConcurrencyMiddleware(ConcurrencyOptions{Max: 0})(g)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "http://svc/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
