package handlers

import "sync"

// ChatLocker provides per-chat mutual exclusion. Two updates for the same
// chat arriving back to back would otherwise race on the read-modify-write
// of the history column; locking by chat ID serializes them without
// blocking unrelated chats.
type ChatLocker struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

// NewChatLocker creates an empty ChatLocker.
func NewChatLocker() *ChatLocker {
	return &ChatLocker{locks: make(map[int64]*sync.Mutex)}
}

// Lock acquires the mutex for chatID, creating it on first use, and returns
// the unlock function.
func (c *ChatLocker) Lock(chatID int64) func() {
	c.mu.Lock()
	lock, ok := c.locks[chatID]
	if !ok {
		lock = &sync.Mutex{}
		c.locks[chatID] = lock
	}
	c.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
