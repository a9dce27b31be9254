package repo

import (
	"context"
	"sync"

	"github.com/cloudwego/eino/schema"

	"github.com/storefront-core/server/internal/model"
)

// MemoryConversationRepository is used when Redis is not configured. History
// lives until the session is cleared or the process exits.
type MemoryConversationRepository struct {
	mu       sync.Mutex
	messages map[string][]*schema.Message
}

func NewMemoryConversationRepository() *MemoryConversationRepository {
	return &MemoryConversationRepository{messages: map[string][]*schema.Message{}}
}

func (r *MemoryConversationRepository) AddMessage(_ context.Context, sessionID string, message *schema.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages[sessionID] = append(r.messages[sessionID], message)
	return nil
}

func (r *MemoryConversationRepository) LoadHistory(_ context.Context, sessionID string) (*model.ConversationHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	msgs := make([]*schema.Message, len(r.messages[sessionID]))
	copy(msgs, r.messages[sessionID])
	return &model.ConversationHistory{SessionID: sessionID, Messages: msgs}, nil
}

func (r *MemoryConversationRepository) ClearHistory(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.messages, sessionID)
	return nil
}

func (r *MemoryConversationRepository) GetMessageCount(_ context.Context, sessionID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.messages[sessionID]), nil
}

// MemoryActivityJournal is the in-process ActivityJournal.
type MemoryActivityJournal struct {
	mu      sync.Mutex
	entries map[string][]model.ActivityEntry
}

func NewMemoryActivityJournal() *MemoryActivityJournal {
	return &MemoryActivityJournal{entries: map[string][]model.ActivityEntry{}}
}

func (j *MemoryActivityJournal) Append(_ context.Context, sessionID string, entry model.ActivityEntry) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries[sessionID] = append(j.entries[sessionID], entry)
	return nil
}

func (j *MemoryActivityJournal) Load(_ context.Context, sessionID string) ([]model.ActivityEntry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]model.ActivityEntry, len(j.entries[sessionID]))
	copy(out, j.entries[sessionID])
	sortByVersion(out)
	return out, nil
}

func (j *MemoryActivityJournal) Clear(_ context.Context, sessionID string) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	delete(j.entries, sessionID)
	return nil
}

var (
	_ model.ConversationRepository = (*MemoryConversationRepository)(nil)
	_ model.ActivityJournal        = (*MemoryActivityJournal)(nil)
)
