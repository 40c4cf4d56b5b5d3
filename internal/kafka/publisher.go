package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Shopify/sarama"
	"github.com/shopspring/decimal"

	"github.com/kanna-karuppasamy/campus-energy-dashboard/internal/config"
	"github.com/kanna-karuppasamy/campus-energy-dashboard/internal/logger"
	"github.com/kanna-karuppasamy/campus-energy-dashboard/internal/models"
)

const (
	EventBuildingStats = "building_stats"
	EventCampusSummary = "campus_summary"
)

// BuildingStatsEvent is published once per building
type BuildingStatsEvent struct {
	Type     string  `json:"type"`
	RunID    string  `json:"runId"`
	Building string  `json:"building"`
	MeanKWh  float64 `json:"meanKWh"`
	MinKWh   float64 `json:"minKWh"`
	MaxKWh   float64 `json:"maxKWh"`
	TotalKWh float64 `json:"totalKWh"`
	Readings int     `json:"readings"`
}

// CampusSummaryEvent carries the executive summary of a run
type CampusSummaryEvent struct {
	Type        string          `json:"type"`
	RunID       string          `json:"runId"`
	TotalKWh    decimal.Decimal `json:"totalKWh"`
	TopBuilding string          `json:"topBuilding"`
	PeriodStart *time.Time      `json:"periodStart,omitempty"`
	PeriodEnd   *time.Time      `json:"periodEnd,omitempty"`
}

// Publisher sends run results to a Kafka topic
type Publisher struct {
	topic    string
	producer sarama.SyncProducer
	log      logger.Logger
}

// NewPublisher connects a synchronous producer to the configured brokers
func NewPublisher(cfg config.KafkaConfig, log logger.Logger) (*Publisher, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.ClientID = cfg.ClientID
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = 3
	if cfg.Timeout > 0 {
		saramaConfig.Net.DialTimeout = cfg.Timeout
		saramaConfig.Producer.Timeout = cfg.Timeout
	}

	producer, err := sarama.NewSyncProducer(cfg.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return NewPublisherWithProducer(producer, cfg.Topic, log), nil
}

// NewPublisherWithProducer wraps an existing producer
func NewPublisherWithProducer(producer sarama.SyncProducer, topic string, log logger.Logger) *Publisher {
	return &Publisher{
		topic:    topic,
		producer: producer,
		log:      log.WithField("component", "kafka"),
	}
}

// Export publishes one message per building keyed by building name, followed
// by the campus summary keyed "campus"
func (p *Publisher) Export(ctx context.Context, rep *models.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	messages := make([]*sarama.ProducerMessage, 0, len(rep.Summary)+1)
	for _, s := range rep.Summary.Ordered() {
		msg, err := p.message(s.Building, BuildingStatsEvent{
			Type:     EventBuildingStats,
			RunID:    rep.RunID,
			Building: s.Building,
			MeanKWh:  s.Mean,
			MinKWh:   s.Min,
			MaxKWh:   s.Max,
			TotalKWh: s.Sum,
			Readings: s.Count,
		})
		if err != nil {
			return err
		}
		messages = append(messages, msg)
	}

	summary := CampusSummaryEvent{
		Type:        EventCampusSummary,
		RunID:       rep.RunID,
		TotalKWh:    rep.Executive.TotalKWh,
		TopBuilding: rep.Executive.TopBuilding,
	}
	if len(rep.Daily) > 0 {
		start, end := rep.Daily[0].Period, rep.Daily[len(rep.Daily)-1].Period
		summary.PeriodStart, summary.PeriodEnd = &start, &end
	}
	msg, err := p.message("campus", summary)
	if err != nil {
		return err
	}
	messages = append(messages, msg)

	if err := p.producer.SendMessages(messages); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", p.topic, err)
	}

	p.log.Infof("Published %d messages to %s", len(messages), p.topic)
	return nil
}

func (p *Publisher) message(key string, event interface{}) (*sarama.ProducerMessage, error) {
	value, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s event: %w", key, err)
	}
	return &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(value),
	}, nil
}

// Close closes the underlying producer
func (p *Publisher) Close() error {
	return p.producer.Close()
}
