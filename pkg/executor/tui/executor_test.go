package tui

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestQuitOnCancel(t *testing.T) {
	t.Run("cancel quits the program", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		quit := make(chan struct{}, 1)
		stop := quitOnCancel(ctx, func() { quit <- struct{}{} })

		cancel()
		select {
		case <-quit:
		case <-time.After(time.Second):
			t.Fatal("quit was not called after cancel")
		}
		stop()
	})

	t.Run("stop ends the wait without quitting", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()

		var quits atomic.Int32
		stop := quitOnCancel(ctx, func() { quits.Add(1) })

		stopped := make(chan struct{})
		go func() {
			stop()
			close(stopped)
		}()
		select {
		case <-stopped:
		case <-time.After(time.Second):
			t.Fatal("stop did not return while the context was still live")
		}

		cancel()
		time.Sleep(10 * time.Millisecond)
		assert.Zero(t, quits.Load())
	})
}
