package httpapi

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/blogify/internal/logging"
	"github.com/stretchr/testify/require"
)

func TestRun_StopsOnContextCancel(t *testing.T) {
	s := &HTTPServer{address: "127.0.0.1:0", logger: logging.Nop()}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestRun_ListenError(t *testing.T) {
	s := &HTTPServer{address: "127.0.0.1:-1", logger: logging.Nop()}
	require.Error(t, s.Run(context.Background()))
}
