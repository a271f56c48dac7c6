package events

import (
	"testing"
	"time"
)

func TestTableChangedMessageJSON(t *testing.T) {
	msg := NewTableChangedMessage("ledger.csv", "add panadol sale")
	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got, err := TableChangedMessageFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Key != "ledger.csv" || got.ChangeDescription != "add panadol sale" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if got.Timestamp.IsZero() || time.Since(got.Timestamp) > time.Minute {
		t.Fatalf("timestamp not stamped: %v", got.Timestamp)
	}
}

func TestTableChangedMessageFromJSONInvalid(t *testing.T) {
	if _, err := TableChangedMessageFromJSON([]byte("{not json")); err == nil {
		t.Fatalf("expected error for invalid JSON")
	}
}
