// Package nats carries document-validation tasks from the API server to the
// worker over a NATS core queue group.
package nats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	appconfig "supplier-management-api-server/config"
)

const (
	queueGroup = "workers"
	// approvalSubject fans approval events out to every API instance, which
	// relays them to its connected websocket clients.
	approvalSubject = "suppliers.approved"
)

// ValidationTask asks the worker to analyze one document of one supplier.
type ValidationTask struct {
	SupplierID  string `json:"supplierId"`
	DocumentURL string `json:"documentUrl"`
}

type Queue struct {
	conn    *nats.Conn
	subject string
}

func New(cfg appconfig.NATSConfig) (*Queue, error) {
	conn, err := nats.Connect(
		cfg.URL,
		nats.Name("supplier-management-api-server"),
		nats.Timeout(2*time.Second),
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(60),
		nats.RetryOnFailedConnect(true),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			zap.L().Warn("nats disconnected", zap.Error(err))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			zap.L().Info("nats reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}
	return &Queue{conn: conn, subject: cfg.Subject}, nil
}

func (q *Queue) Close() {
	if q.conn != nil {
		q.conn.Close()
	}
}

// PublishValidationTask enqueues one task. Callers treat failures as
// advisory; a lost task only delays validation until re-submission.
func (q *Queue) PublishValidationTask(ctx context.Context, task ValidationTask) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal validation task: %w", err)
	}
	if err := q.conn.Publish(q.subject, data); err != nil {
		return fmt.Errorf("failed to publish validation task: %w", err)
	}
	return nil
}

// ApprovalEvent carries a supplier approval from the worker to the API
// instances holding the websocket connections.
type ApprovalEvent struct {
	Organization string          `json:"organization"`
	Payload      json.RawMessage `json:"payload"`
}

// SendToOrganization publishes an approval event for relay to an
// organization's connected clients.
func (q *Queue) SendToOrganization(organization string, payload []byte) {
	data, err := json.Marshal(ApprovalEvent{Organization: organization, Payload: payload})
	if err != nil {
		zap.L().Error("failed to marshal approval event", zap.Error(err))
		return
	}
	if err := q.conn.Publish(approvalSubject, data); err != nil {
		zap.L().Error("failed to publish approval event", zap.Error(err))
	}
}

// SubscribeApprovalEvents relays approval events for the lifetime of the
// connection. Every API instance receives every event; each relays to the
// clients it holds.
func (q *Queue) SubscribeApprovalEvents(handler func(organization string, payload []byte)) error {
	_, err := q.conn.Subscribe(approvalSubject, func(msg *nats.Msg) {
		var event ApprovalEvent
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			zap.L().Error("failed to decode approval event", zap.Error(err))
			return
		}
		handler(event.Organization, event.Payload)
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe to approval events: %w", err)
	}
	return nil
}

// SubscribeValidationTasks consumes tasks until ctx is cancelled, then drains
// the subscription. Handler errors are logged, not redelivered.
func (q *Queue) SubscribeValidationTasks(ctx context.Context, handler func(context.Context, ValidationTask)) error {
	sub, err := q.conn.QueueSubscribe(q.subject, queueGroup, func(msg *nats.Msg) {
		if errors.Is(ctx.Err(), context.Canceled) {
			return
		}

		var task ValidationTask
		if err := json.Unmarshal(msg.Data, &task); err != nil {
			zap.L().Error("failed to decode validation task", zap.Error(err))
			return
		}
		handler(ctx, task)
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe: %w", err)
	}

	if err := q.conn.Flush(); err != nil {
		return fmt.Errorf("failed to flush subscription: %w", err)
	}

	<-ctx.Done()
	if err := sub.Drain(); err != nil {
		return fmt.Errorf("failed to drain subscription: %w", err)
	}
	if err := q.conn.FlushTimeout(5 * time.Second); err != nil {
		return fmt.Errorf("failed to flush after drain: %w", err)
	}
	return nil
}
