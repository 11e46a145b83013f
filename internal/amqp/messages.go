package amqp

import (
	"encoding/json"
	"time"
)

// TradeSyncMessage asks the worker to export one trade review to the
// trading log. It carries only the id; the worker fetches the full review
// from the database so the log always reflects the latest write.
type TradeSyncMessage struct {
	TradeID   string    `json:"trade_id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewTradeSyncMessage(tradeID string) *TradeSyncMessage {
	return &TradeSyncMessage{
		TradeID:   tradeID,
		Timestamp: time.Now(),
	}
}

func (m *TradeSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func TradeSyncMessageFromJSON(data []byte) (*TradeSyncMessage, error) {
	var msg TradeSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
