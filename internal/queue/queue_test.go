package queue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFIFOOrder(t *testing.T) {
	q := New[int]()
	for i := 0; i < 100; i++ {
		q.Push(i)
	}
	for i := 0; i < 100; i++ {
		v, ok := q.Pop()
		require.True(t, ok)
		assert.Equal(t, i, v)
	}
}

func TestPopBlocksUntilPush(t *testing.T) {
	q := New[string]()
	done := make(chan string, 1)
	go func() {
		v, ok := q.Pop()
		if !ok {
			v = "<closed>"
		}
		done <- v
	}()

	time.Sleep(20 * time.Millisecond)
	q.Push("hello")

	select {
	case v := <-done:
		assert.Equal(t, "hello", v)
	case <-time.After(time.Second):
		t.Fatal("Pop never returned")
	}
}

func TestCloseUnblocksEmptyPop(t *testing.T) {
	q := New[int]()
	done := make(chan bool, 1)
	go func() {
		_, ok := q.Pop()
		done <- ok
	}()

	time.Sleep(20 * time.Millisecond)
	q.Close()

	select {
	case ok := <-done:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("Pop never woke up after Close")
	}
}

func TestCloseStillDrainsBufferedItems(t *testing.T) {
	q := New[int]()
	q.Push(1)
	q.Push(2)
	q.Close()

	v, ok := q.Pop()
	require.True(t, ok)
	assert.Equal(t, 1, v)

	v, ok = q.Pop()
	require.True(t, ok)
	assert.Equal(t, 2, v)

	_, ok = q.Pop()
	assert.False(t, ok)
}
