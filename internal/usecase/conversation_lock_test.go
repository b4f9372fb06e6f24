package usecase

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConversationLockEvictedWhenIdle(t *testing.T) {
	o := &ChatOrchestrator{convLocks: map[uint]*convLock{}}

	lock := o.acquireConversation(9)
	assert.Len(t, o.convLocks, 1)

	o.releaseConversation(9, lock)
	assert.Empty(t, o.convLocks)
}

func TestConversationLockSerializesTurns(t *testing.T) {
	o := &ChatOrchestrator{convLocks: map[uint]*convLock{}}

	const turns = 16
	var wg sync.WaitGroup
	counter := 0
	for i := 0; i < turns; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			lock := o.acquireConversation(9)
			counter++
			o.releaseConversation(9, lock)
		}()
	}
	wg.Wait()

	assert.Equal(t, turns, counter)
	// Every turn released its reference, so the entry is gone.
	assert.Empty(t, o.convLocks)
}

func TestConversationLocksIndependentAcrossConversations(t *testing.T) {
	o := &ChatOrchestrator{convLocks: map[uint]*convLock{}}

	a := o.acquireConversation(1)
	b := o.acquireConversation(2)
	assert.Len(t, o.convLocks, 2)

	o.releaseConversation(1, a)
	assert.Len(t, o.convLocks, 1)

	o.releaseConversation(2, b)
	assert.Empty(t, o.convLocks)
}
