package memory

import (
	"time"

	"github.com/patrickmn/go-cache"

	"ai-legalchat-be/internal/repository/contract"
	"ai-legalchat-be/pkg/store"
)

type ConversationRepository struct {
	cache *cache.Cache
}

var _ contract.ConversationRepository = &ConversationRepository{}

func NewConversationRepository() *ConversationRepository {
	// Create a cache with a default expiration time of 1 hour, and which
	// purges expired items every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &ConversationRepository{
		cache: c,
	}
}

func (r *ConversationRepository) Get(sessionID string) (*store.Conversation, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.Conversation), true
	}
	return nil, false
}

func (r *ConversationRepository) Save(conversation *store.Conversation) {
	r.cache.Set(conversation.SessionID, conversation, cache.DefaultExpiration)
}

func (r *ConversationRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}
