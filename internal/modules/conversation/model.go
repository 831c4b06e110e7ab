// README: Conversation turns and the append-only log contract.
package conversation

import (
	"context"
	"errors"
	"time"
)

// Turn is one user utterance plus the assistant's reply. Turns are read-only
// once written; the log only ever appends and trims from the front.
type Turn struct {
	UserText      string    `json:"user_text"`
	AssistantText string    `json:"assistant_text"`
	Timestamp     time.Time `json:"timestamp"`
}

var ErrBadRequest = errors.New("bad request")

// Log is the conversation store contract: append a finished turn, read the
// most recent n in chronological order.
type Log interface {
	Append(ctx context.Context, sessionID string, t Turn) error
	Recent(ctx context.Context, sessionID string, n int) ([]Turn, error)
}
