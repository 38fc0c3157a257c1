package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/tranvu/cinesync/infra"
	"github.com/tranvu/cinesync/infra/produce"
	"github.com/tranvu/cinesync/repository"
)

// ImportConsumer pulls import jobs off the queue, fetches the remote
// resource with retries, and lands it in the bucket behind the quota pass.
type ImportConsumer struct {
	channel     *amqp.Channel
	infra       *infra.Infra
	repository  *repository.Repository
	maxAttempts int
}

func NewImportConsumer(channel *amqp.Channel, inf *infra.Infra, repo *repository.Repository, maxAttempts int) *ImportConsumer {
	return &ImportConsumer{
		channel:     channel,
		infra:       inf,
		repository:  repo,
		maxAttempts: maxAttempts,
	}
}

func (c *ImportConsumer) Start(ctx context.Context) error {
	msgs, err := c.channel.Consume(
		produce.ImportFetchQueue,
		"",
		false, // manual ack
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register import consumer: %w", err)
	}

	c.infra.Logger.InfoWithContextf(ctx, "[Import Consumer] Listening on queue: %s", produce.ImportFetchQueue)

	go func() {
		for {
			select {
			case <-ctx.Done():
				c.infra.Logger.InfoWithContextf(ctx, "[Import Consumer] Shutting down...")
				return
			case msg, ok := <-msgs:
				if !ok {
					c.infra.Logger.WarningWithContextf(ctx, "[Import Consumer] Channel closed")
					return
				}
				c.handleImport(ctx, msg)
			}
		}
	}()

	return nil
}

func (c *ImportConsumer) handleImport(ctx context.Context, msg amqp.Delivery) {
	var job produce.ImportJobMessage
	if err := json.Unmarshal(msg.Body, &job); err != nil {
		c.infra.Logger.WarningWithContextf(ctx, "[Import Consumer] Dropping malformed job: %v", err)
		_ = msg.Nack(false, false)
		return
	}

	c.infra.Logger.InfoWithContextf(ctx, "[Import Consumer] Job %s: fetching %s", job.JobID, job.URL)

	resp, err := c.infra.Fetch.FetchWithRetry(ctx, job.URL, c.maxAttempts, job.Headers)
	if err != nil {
		c.infra.Logger.ErrorWithContextf(ctx, err, "[Import Consumer] Job %s: fetch failed", job.JobID)
		_ = msg.Nack(false, false)
		return
	}
	defer resp.Body.Close()

	contentType := job.ContentType
	if contentType == "" {
		contentType = resp.Header.Get("Content-Type")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	// quota accounting needs the incoming size up front, so a response
	// without a Content-Length is buffered first
	var body io.Reader = resp.Body
	size := resp.ContentLength
	if size < 0 {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, resp.Body); err != nil {
			c.infra.Logger.ErrorWithContextf(ctx, err, "[Import Consumer] Job %s: read failed", job.JobID)
			_ = msg.Nack(false, false)
			return
		}
		size = int64(buf.Len())
		body = &buf
	}

	evicted, err := c.repository.ObjectRepo.Upload(ctx, job.Key, body, size, contentType)
	if err != nil {
		c.infra.Logger.ErrorWithContextf(ctx, err, "[Import Consumer] Job %s: upload of %s failed", job.JobID, job.Key)
		_ = msg.Nack(false, false)
		return
	}

	c.infra.Logger.InfoWithContextf(ctx, "[Import Consumer] Job %s: stored %s (%d bytes, evicted %d objects)",
		job.JobID, job.Key, size, evicted.DeletedCount)
	_ = msg.Ack(false)
}
