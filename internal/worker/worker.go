package worker

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"time"

	"promfeed/internal/config"
	"promfeed/internal/logger"
	"promfeed/internal/worker/processors"

	"github.com/segmentio/kafka-go"
)

// MessageReader is the subset of *kafka.Reader the worker consumes.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Processor interface {
	Process(ctx context.Context, event processors.Event) error
}

type Worker struct {
	logger    *logger.Logger
	reader    MessageReader
	processor Processor
}

func New(cfg *config.Config, logger *logger.Logger, processor Processor) *Worker {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.KafkaBrokerList(),
		GroupID:        cfg.KafkaGroupID,
		Topic:          cfg.KafkaTopic,
		MinBytes:       1,
		MaxBytes:       1e6, // 1MB
		CommitInterval: time.Second,
	})
	return NewWithReader(reader, logger, processor)
}

func NewWithReader(reader MessageReader, logger *logger.Logger, processor Processor) *Worker {
	return &Worker{
		logger:    logger,
		reader:    reader,
		processor: processor,
	}
}

// Run consumes feed requests until ctx is canceled or the reader is closed.
// Every fetched message is committed, including ones that failed, so a bad
// request is not redelivered forever.
func (w *Worker) Run(ctx context.Context) error {
	w.logger.Info("Worker started, listening for feed requests...")

	for {
		message, err := w.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, io.EOF) {
				return nil
			}
			w.logger.Error("Failed to read message: %v", err)
			continue
		}

		w.handle(ctx, message)

		if err := w.reader.CommitMessages(ctx, message); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			w.logger.Error("Failed to commit offset %d: %v", message.Offset, err)
		}
	}
}

func (w *Worker) handle(ctx context.Context, message kafka.Message) {
	w.logger.Debug("Received message at offset %d: %s", message.Offset, string(message.Value))

	var event processors.Event
	if err := json.Unmarshal(message.Value, &event); err != nil {
		w.logger.Error("Failed to parse event at offset %d: %v", message.Offset, err)
		return
	}

	if err := w.processor.Process(ctx, event); err != nil {
		if errors.Is(err, processors.ErrUnsupportedEvent) {
			w.logger.Warn("Skipping message at offset %d: %v", message.Offset, err)
			return
		}
		w.logger.Error("Failed to process event: %v", err)
		return
	}

	w.logger.Debug("Event processed successfully")
}

func (w *Worker) Stop() error {
	w.logger.Info("Stopping worker...")
	return w.reader.Close()
}
