package events

// Message types pushed over the WebSocket channel.
const (
	TypeConnectionEstablished = "connection_established"
	TypePong                  = "pong"
	TypeTaskCreated           = "task_created"
	TypeTaskUpdated           = "task_updated"
	TypeDatabaseUpdate        = "database_update"
)

// Envelope is the common shape of every pushed message. Optional fields
// are omitted per message type.
type Envelope struct {
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
	Message   string `json:"message,omitempty"`

	// Task event fields
	TaskID     string `json:"task_id,omitempty"`
	Status     string `json:"status,omitempty"`
	Priority   string `json:"priority,omitempty"`
	Complexity *int   `json:"complexity,omitempty"`

	// Database update payload
	Data *DatabaseUpdateData `json:"data,omitempty"`
}

// DatabaseUpdateData carries the payload of a database_update message.
type DatabaseUpdateData struct {
	ModifiedAt string `json:"modified_at"`
	Message    string `json:"message"`
}
