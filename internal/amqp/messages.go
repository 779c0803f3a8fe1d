package amqp

import (
	"encoding/json"
	"time"
)

// Entities a change message can refer to.
const (
	EntityTransaction = "transaction"
	EntityBill        = "bill"
	EntityDebt        = "debt"
	EntitySavingsGoal = "savings_goal"
	EntityCategory    = "category"
)

// Operations carried by a change message.
const (
	OpCreated = "created"
	OpUpdated = "updated"
	OpDeleted = "deleted"
)

// ChangeMessage is a lightweight notification that a record changed. It
// carries only the entity kind, id and operation; consumers fetch the full
// record themselves.
type ChangeMessage struct {
	Entity    string    `json:"entity"`
	ID        string    `json:"id"`
	Op        string    `json:"op"`
	Timestamp time.Time `json:"timestamp"`
}

func NewChangeMessage(entity, id, op string) *ChangeMessage {
	return &ChangeMessage{
		Entity:    entity,
		ID:        id,
		Op:        op,
		Timestamp: time.Now(),
	}
}

func (m *ChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ChangeMessageFromJSON(data []byte) (*ChangeMessage, error) {
	var msg ChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
