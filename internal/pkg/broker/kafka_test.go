package broker

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNewEventWrapsPayload(t *testing.T) {
	at := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	ev, err := NewEvent("order.paid", map[string]int64{"order_id": 42}, at)
	if err != nil {
		t.Fatal(err)
	}
	if ev.EventID == "" || ev.EventType != "order.paid" || !ev.Timestamp.Equal(at) {
		t.Fatalf("unexpected envelope: %+v", ev)
	}

	var payload map[string]int64
	if err := json.Unmarshal(ev.Payload, &payload); err != nil {
		t.Fatal(err)
	}
	if payload["order_id"] != 42 {
		t.Errorf("payload = %v", payload)
	}
}
