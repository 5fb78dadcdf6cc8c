package cmdutil

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestServeListenerShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	httpServer := &http.Server{Handler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})}
	logger := zerolog.Nop()
	out := &syncBuffer{}

	ctx, cancel := context.WithCancel(context.Background())
	cleaned := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- ServeListener(ctx, httpServer, ln, "Test", time.Second, &logger, out,
			func(context.Context) error {
				close(cleaned)
				return nil
			})
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String())
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}

	<-cleaned
	assert.Contains(t, out.String(), "Test server listening on http://")
	assert.Contains(t, out.String(), "Shutting down Test server")
}

func TestServeReportsListenFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer func() { _ = ln.Close() }()

	logger := zerolog.Nop()
	err = Serve(context.Background(), &http.Server{Addr: ln.Addr().String()}, "Test", time.Second,
		&logger, io.Discard, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to listen")
}
