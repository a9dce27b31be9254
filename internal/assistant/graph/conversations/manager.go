package conversations

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"

	"github.com/storefront-core/server/internal/model"
)

// MessagesManager records the shopper/assistant exchange of a session and
// builds the model context from it.
type MessagesManager struct {
	conversationRepo model.ConversationRepository
	maxTurns         int
}

func NewMessagesManager(conversationRepo model.ConversationRepository, config model.ConversationConfig) *MessagesManager {
	return &MessagesManager{
		conversationRepo: conversationRepo,
		maxTurns:         config.MaxTurns,
	}
}

// SaveQuery stores the shopper's message.
func (cm *MessagesManager) SaveQuery(ctx context.Context, sessionID string, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return fmt.Errorf("empty query")
	}
	return cm.conversationRepo.AddMessage(ctx, sessionID, schema.UserMessage(query))
}

// BuildResponseContext returns the system prompt followed by the most recent
// maxTurns messages of the session.
func (cm *MessagesManager) BuildResponseContext(ctx context.Context, sessionID string, systemPrompt string) ([]*schema.Message, error) {
	history, err := cm.conversationRepo.LoadHistory(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	recent := trimTail(history.Messages, cm.maxTurns)
	messages := make([]*schema.Message, 0, len(recent)+1)
	messages = append(messages, schema.SystemMessage(systemPrompt))
	for _, m := range recent {
		if m == nil || strings.TrimSpace(m.Content) == "" {
			continue
		}
		messages = append(messages, m)
	}
	return messages, nil
}

func (cm *MessagesManager) SaveResponse(ctx context.Context, sessionID string, content string) error {
	return cm.conversationRepo.AddMessage(ctx, sessionID, schema.AssistantMessage(content, nil))
}

// trimTail keeps the last maxTurns messages. A history must not start with an
// assistant message, so a leading one left by the cut is dropped too.
func trimTail(messages []*schema.Message, maxTurns int) []*schema.Message {
	if maxTurns <= 0 || len(messages) <= maxTurns {
		return messages
	}
	tail := messages[len(messages)-maxTurns:]
	for len(tail) > 0 && tail[0] != nil && tail[0].Role == schema.Assistant {
		tail = tail[1:]
	}
	return tail
}
