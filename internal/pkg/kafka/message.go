package kafka

import (
	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

const (
	TypePost     = "post"
	TypeMetric   = "metric"
	TypeComment  = "comment"
	TypeAudience = "audience"
)

// Envelope 接入消息外层结构
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// ToEnvelope 解析 kafka 消息，格式错误归为毒消息
func ToEnvelope(msg *sarama.ConsumerMessage) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(msg.Value, &env); err != nil {
		return nil, errors.Wrap(ErrPoison, err.Error())
	}
	if env.Type == "" {
		return nil, errors.Wrap(ErrPoison, "message type is empty")
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil, errors.Wrap(ErrPoison, "data is empty")
	}
	return &env, nil
}
