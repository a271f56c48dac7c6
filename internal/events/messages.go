package events

import (
	"encoding/json"
	"time"
)

// TableChangedMessage announces that a table snapshot was durably written.
// It carries only the key and the change description; consumers re-read
// the table from the primary store, so a lost message costs nothing but
// a delayed mirror.
type TableChangedMessage struct {
	Key               string    `json:"key"`
	ChangeDescription string    `json:"change_description"`
	Timestamp         time.Time `json:"timestamp"`
}

// NewTableChangedMessage creates a message stamped with the current time.
func NewTableChangedMessage(key, changeDescription string) *TableChangedMessage {
	return &TableChangedMessage{
		Key:               key,
		ChangeDescription: changeDescription,
		Timestamp:         time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *TableChangedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// TableChangedMessageFromJSON creates a message from JSON bytes.
func TableChangedMessageFromJSON(data []byte) (*TableChangedMessage, error) {
	var msg TableChangedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
