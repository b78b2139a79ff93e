package conversation

import "time"

// Role identifies who produced a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Turn is one message in a journal chat conversation. Turns are created by
// the chat subsystem and are read-only to the analysis pipeline.
type Turn struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// Context holds descriptive metrics about a turn sequence, computed fresh
// per analysis request and never persisted.
type Context struct {
	TurnCount            int    `json:"turn_count"`
	AverageTurnLength    int    `json:"average_turn_length"`
	TimeSpan             string `json:"time_span"`
	HasMultipleExchanges bool   `json:"has_multiple_exchanges"`
}
