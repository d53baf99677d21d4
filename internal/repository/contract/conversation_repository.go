package contract

import "ai-legalchat-be/pkg/store"

// ConversationRepository is the swappable boundary around conversation
// state. The initial backing is in-process memory; nothing survives a
// restart by design.
type ConversationRepository interface {
	// Get returns the conversation for a session, or false if none exists.
	Get(sessionID string) (*store.Conversation, bool)

	// Save overwrites the conversation under its session key.
	Save(conversation *store.Conversation)

	// Delete removes a session's conversation. Deleting an absent session
	// is not an error.
	Delete(sessionID string)
}
