package model

import (
	"context"

	"github.com/cloudwego/eino/schema"
)

// ConversationRepository stores the assistant chat history of a shopping
// session.
type ConversationRepository interface {
	AddMessage(ctx context.Context, sessionID string, message *schema.Message) error
	LoadHistory(ctx context.Context, sessionID string) (*ConversationHistory, error)
	ClearHistory(ctx context.Context, sessionID string) error
	GetMessageCount(ctx context.Context, sessionID string) (int, error)
}

type ConversationHistory struct {
	SessionID string
	Messages  []*schema.Message
}
