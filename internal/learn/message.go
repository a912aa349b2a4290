package learn

import (
	"time"

	"github.com/google/uuid"
)

// Role distinguishes the two sides of a conversation.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Citation is a web source attached to a grounded model reply.
type Citation struct {
	Title string
	URI   string
}

// Message is one turn in an agent conversation.
type Message struct {
	ID        string
	Role      Role
	Content   string
	Timestamp time.Time
	Citations []Citation
	// Audio carries raw speech bytes when the turn was spoken.
	Audio []byte
}

// NewMessage builds a message with a fresh id and the current time.
func NewMessage(role Role, content string) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
}
