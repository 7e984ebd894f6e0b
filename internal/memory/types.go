package memory

import "time"

// RetentionWindow is the maximum number of turns kept per conversation.
const RetentionWindow = 40

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn stores a single user or assistant conversational message.
type Turn struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
