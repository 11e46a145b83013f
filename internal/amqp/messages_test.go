package amqp

import (
	"testing"
	"time"
)

func TestTradeSyncMessageRoundTrip(t *testing.T) {
	msg := NewTradeSyncMessage("01HV3Q0XN8")
	if msg.Timestamp.IsZero() {
		t.Fatal("expected timestamp to be set")
	}

	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got, err := TradeSyncMessageFromJSON(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.TradeID != "01HV3Q0XN8" {
		t.Fatalf("expected trade id preserved, got %q", got.TradeID)
	}
	if !got.Timestamp.Truncate(time.Millisecond).Equal(msg.Timestamp.Truncate(time.Millisecond)) {
		t.Fatalf("timestamp drifted: %v vs %v", got.Timestamp, msg.Timestamp)
	}
}

func TestTradeSyncMessageFromJSONRejectsGarbage(t *testing.T) {
	if _, err := TradeSyncMessageFromJSON([]byte("{not json")); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}
