package store

import "time"

// MaxExchanges is the per-session history window. On append the oldest
// entries are discarded so at most the last MaxExchanges remain.
const MaxExchanges = 10

// Exchange is one user-message/assistant-response pair. Immutable once recorded.
type Exchange struct {
	User      string    `json:"user"`
	Assistant string    `json:"assistant"`
	CreatedAt time.Time `json:"created_at"`
}

// Conversation is the in-memory state for one chat session.
// Exchanges are ordered oldest first.
type Conversation struct {
	SessionID string     `json:"session_id"`
	Exchanges []Exchange `json:"exchanges"`
}

func NewConversation(sessionID string) *Conversation {
	return &Conversation{SessionID: sessionID}
}

// Append records a completed exchange and enforces the history window.
func (c *Conversation) Append(user, assistant string, now time.Time) {
	c.Exchanges = append(c.Exchanges, Exchange{
		User:      user,
		Assistant: assistant,
		CreatedAt: now,
	})
	if len(c.Exchanges) > MaxExchanges {
		c.Exchanges = c.Exchanges[len(c.Exchanges)-MaxExchanges:]
	}
}

func (c *Conversation) Len() int {
	return len(c.Exchanges)
}
