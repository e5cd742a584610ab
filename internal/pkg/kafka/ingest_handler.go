package kafka

import (
	"SocialPulse/internal/api/dto"
	"SocialPulse/internal/pkg/logger"
	"SocialPulse/internal/pkg/metrics"
	"SocialPulse/internal/pkg/util"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Ingester 接入落库，由 service 层实现
type Ingester interface {
	IngestPost(ctx context.Context, req *dto.PostCreateDTO) error
	IngestMetric(ctx context.Context, req *dto.MetricCreateDTO) error
	IngestComment(ctx context.Context, req *dto.CommentCreateDTO) error
	IngestAudience(ctx context.Context, req *dto.AudienceCreateDTO) error
}

// Classifier 判断业务错误是否属于不可重试的数据问题
type Classifier func(err error) bool

type IngestHandler struct {
	ingester  Ingester
	permanent Classifier
	metrics   *metrics.Metrics
}

func NewIngestHandler(ingester Ingester, permanent Classifier, m *metrics.Metrics) *IngestHandler {
	if permanent == nil {
		permanent = func(error) bool { return false }
	}
	return &IngestHandler{
		ingester:  ingester,
		permanent: permanent,
		metrics:   m,
	}
}

func (h *IngestHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("ingest consumer setup")
	return nil
}

func (h *IngestHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("ingest consumer cleanup")
	return nil
}

func (h *IngestHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-ingest consume claim", "partition", claim.Partition())
	if err := pullMessageBatch(session, claim, h.logic); err != nil {
		log.Error("topic-ingest process batch error", "err", err)
		return err
	}
	log.Info("topic-ingest consume claim end", "partition", claim.Partition())
	return nil
}

func (h *IngestHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	ctx = context.WithValue(ctx, logger.TraceIDKey, "ingest-"+uuid.New().String())

	env, err := ToEnvelope(msg)
	if err != nil {
		h.count("unknown", "invalid")
		return err
	}

	err = h.dispatch(ctx, env)
	switch {
	case err == nil:
		h.count(env.Type, "success")
		return nil
	case errors.Is(err, ErrPoison):
		h.count(env.Type, "invalid")
		return err
	case h.permanent(err):
		h.count(env.Type, "rejected")
		return errors.Wrap(ErrPoison, err.Error())
	default:
		h.count(env.Type, "retry")
		return err
	}
}

func (h *IngestHandler) dispatch(ctx context.Context, env *Envelope) error {
	switch env.Type {
	case TypePost:
		var req dto.PostCreateDTO
		if err := decodeData(env.Data, &req); err != nil {
			return err
		}
		return h.ingester.IngestPost(ctx, &req)
	case TypeMetric:
		var req dto.MetricCreateDTO
		if err := decodeData(env.Data, &req); err != nil {
			return err
		}
		return h.ingester.IngestMetric(ctx, &req)
	case TypeComment:
		var req dto.CommentCreateDTO
		if err := decodeData(env.Data, &req); err != nil {
			return err
		}
		return h.ingester.IngestComment(ctx, &req)
	case TypeAudience:
		var req dto.AudienceCreateDTO
		if err := decodeData(env.Data, &req); err != nil {
			return err
		}
		return h.ingester.IngestAudience(ctx, &req)
	default:
		return errors.Wrapf(ErrPoison, "unknown message type %q", env.Type)
	}
}

// decodeData 反序列化并按 binding 规则校验
func decodeData(data []byte, out any) error {
	if err := json.Unmarshal(data, out); err != nil {
		return errors.Wrap(ErrPoison, err.Error())
	}
	if err := util.ValidateDTO(out); err != nil {
		return errors.Wrap(ErrPoison, err.Error())
	}
	return nil
}

func (h *IngestHandler) count(msgType, result string) {
	if h.metrics == nil {
		return
	}
	h.metrics.IngestMessages.WithLabelValues(msgType, result).Inc()
}
