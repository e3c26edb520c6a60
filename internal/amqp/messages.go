package amqp

import (
	"encoding/json"
	"time"
)

// DatasetReloadMessage asks the dashboard to rebuild its canonical dataset
// from the configured source. The importer publishes one after replacing the
// orders table.
type DatasetReloadMessage struct {
	Source    string    `json:"source"`
	Rows      int       `json:"rows"`
	Timestamp time.Time `json:"timestamp"`
}

// NewDatasetReloadMessage creates a reload message for the given source.
func NewDatasetReloadMessage(source string, rows int) *DatasetReloadMessage {
	return &DatasetReloadMessage{
		Source:    source,
		Rows:      rows,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *DatasetReloadMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// DatasetReloadMessageFromJSON creates a message from JSON bytes
func DatasetReloadMessageFromJSON(data []byte) (*DatasetReloadMessage, error) {
	var msg DatasetReloadMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
