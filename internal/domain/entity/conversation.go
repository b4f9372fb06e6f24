package entity

import "time"

// Conversation roles
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ConversationTurn is one append-only message in a conversation. Turns
// reference the plan only by id; the per-turn aggregates stay pure trees.
type ConversationTurn struct {
	ConversationID uint      `bson:"conversationId"`
	TurnIndex      int       `bson:"turnIndex"`
	Role           string    `bson:"role"`
	Content        string    `bson:"content"`
	Timestamp      time.Time `bson:"timestamp"`
}

// ChatMessage is a message in the canonical system/user/assistant schema sent
// to the LLM collaborator.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
