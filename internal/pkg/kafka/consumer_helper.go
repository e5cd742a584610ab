package kafka

import (
	"context"
	log "log/slog"
	"sync"
	"time"

	"github.com/IBM/sarama"
	"github.com/pkg/errors"
)

const (
	batchSize    = 32
	batchTimeout = 1 * time.Second

	minRetryInterval = 100 * time.Millisecond
	maxRetryInterval = 5 * time.Second
)

// ErrPoison 消息本身有问题，重试无意义，直接提交位点
var ErrPoison = errors.New("poison message")

type LogicFunc func(ctx context.Context, msg *sarama.ConsumerMessage) error

// pullMessageBatch 攒批拉取消息，满 batchSize 或超时即处理
func pullMessageBatch(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim, logic LogicFunc) error {
	batch := make([]*sarama.ConsumerMessage, 0, batchSize)
	ticker := time.NewTicker(batchTimeout)
	defer ticker.Stop()
	for {
		select {
		case msg, ok := <-claim.Messages():
			if !ok {
				if len(batch) > 0 {
					processBatch(session, batch, logic)
				}
				return nil
			}
			batch = append(batch, msg)
			if len(batch) >= batchSize {
				processBatch(session, batch, logic)
				batch = make([]*sarama.ConsumerMessage, 0, batchSize)
				ticker.Reset(batchTimeout)
			}
		case <-ticker.C:
			if len(batch) > 0 {
				processBatch(session, batch, logic)
				batch = make([]*sarama.ConsumerMessage, 0, batchSize)
			}
		case <-session.Context().Done():
			return nil
		}
	}
}

// processBatch 并发处理一批消息，全部结束后提交最后一条的位点
func processBatch(session sarama.ConsumerGroupSession, messages []*sarama.ConsumerMessage, logic LogicFunc) {
	var wg sync.WaitGroup

	for _, msg := range messages {
		wg.Add(1)
		go func(m *sarama.ConsumerMessage) {
			defer wg.Done()
			processWithRetry(session.Context(), m, logic)
		}(msg)
	}

	wg.Wait()

	// 会话中途结束时不提交，交给下一次 rebalance 后重新消费
	if len(messages) == 0 || session.Context().Err() != nil {
		return
	}
	session.MarkMessage(messages[len(messages)-1], "")
	session.Commit()
}

// processWithRetry 指数退避重试，上限 maxRetryInterval；毒消息不重试
func processWithRetry(ctx context.Context, m *sarama.ConsumerMessage, logic LogicFunc) {
	retryInterval := minRetryInterval
	for {
		err := logic(ctx, m)
		if err == nil {
			return
		}
		if errors.Is(err, ErrPoison) {
			log.WarnContext(ctx, "drop poison message", "topic", m.Topic, "partition", m.Partition, "offset", m.Offset, "err", err)
			return
		}

		log.ErrorContext(ctx, "process message error", "topic", m.Topic, "offset", m.Offset, "err", err)
		select {
		case <-ctx.Done():
			return
		case <-time.After(retryInterval):
		}

		retryInterval *= 2
		if retryInterval > maxRetryInterval {
			retryInterval = maxRetryInterval
		}
	}
}
