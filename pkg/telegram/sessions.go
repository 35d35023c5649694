package telegram

import (
	"sync"
)

// PendingCommand records which command a conversation's next free-text
// message is answering.
type PendingCommand string

const (
	PendingNone PendingCommand = ""
	PendingIn   PendingCommand = "in"
	PendingOut  PendingCommand = "out"
)

// SessionManager tracks the pending command per conversation. Keyed by chat
// id, so two chats issuing /in concurrently cannot clobber each other.
type SessionManager struct {
	mu      sync.Mutex
	pending map[int64]PendingCommand
}

func NewSessionManager() *SessionManager {
	return &SessionManager{pending: make(map[int64]PendingCommand)}
}

// Set records the pending command for a chat, replacing any previous one.
func (sm *SessionManager) Set(chatID int64, cmd PendingCommand) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.pending[chatID] = cmd
}

// Take returns the pending command for a chat and resets it to idle.
// One attempt consumes the pending state whether or not it succeeds.
func (sm *SessionManager) Take(chatID int64) PendingCommand {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	cmd, ok := sm.pending[chatID]
	if !ok {
		return PendingNone
	}
	delete(sm.pending, chatID)

	return cmd
}

// Peek returns the pending command without consuming it.
func (sm *SessionManager) Peek(chatID int64) PendingCommand {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	return sm.pending[chatID]
}
