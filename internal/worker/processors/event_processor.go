package processors

import (
	"context"
	"errors"
	"fmt"
	"time"

	"promfeed/internal/feed"
	"promfeed/internal/logger"
)

// EventFeedRegenerate asks for the feed file to be rebuilt.
const EventFeedRegenerate = "feed.regenerate"

// ErrUnsupportedEvent is returned for event types the processor ignores.
var ErrUnsupportedEvent = errors.New("unsupported event type")

// Event is the JSON payload of a feed request message.
type Event struct {
	Type      string    `json:"type"`
	Dialect   string    `json:"dialect,omitempty"`
	Mode      string    `json:"mode,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type FeedGenerator interface {
	Generate(ctx context.Context, override feed.Override) (feed.Result, error)
}

type FileWriter interface {
	WriteFile(ctx context.Context, path string, data []byte) error
}

type EventProcessor struct {
	generator  FeedGenerator
	writer     FileWriter
	outputPath string
	logger     *logger.Logger
}

func NewEventProcessor(generator FeedGenerator, writer FileWriter, outputPath string, logger *logger.Logger) *EventProcessor {
	return &EventProcessor{
		generator:  generator,
		writer:     writer,
		outputPath: outputPath,
		logger:     logger,
	}
}

func (ep *EventProcessor) Process(ctx context.Context, event Event) error {
	if event.Type != EventFeedRegenerate {
		return fmt.Errorf("%w: %q", ErrUnsupportedEvent, event.Type)
	}

	override, err := feed.ParseOverride(event.Dialect, event.Mode)
	if err != nil {
		return fmt.Errorf("invalid %s event: %w", event.Type, err)
	}

	res, err := ep.generator.Generate(ctx, override)
	if err != nil {
		return fmt.Errorf("feed run %s failed: %w", res.RunID, err)
	}

	if err := ep.writer.WriteFile(ctx, ep.outputPath, res.Data); err != nil {
		return fmt.Errorf("feed run %s: %w", res.RunID, err)
	}

	ep.logger.Info("Event %s processed: run %s wrote %d offers", event.Type, res.RunID, res.Offers)
	return nil
}
