package alerts

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/Yuvraj13742/dodo-payments/internal/logger"
	"github.com/Yuvraj13742/dodo-payments/internal/metrics"
)

const queueKey = "reconciliation_alerts"

// Alert kinds cover the two windows where local and provider state can
// diverge and a human has to reconcile.
const (
	KindUnknownReference = "unknown_external_reference"
	KindPayoutGap        = "payout_reconciliation_gap"
	KindPayoutFailed     = "payout_failed_after_debit"
	KindSettlementSkew   = "settlement_correlation_mismatch"
)

type Alert struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	Message     string    `json:"message"`
	ExternalRef string    `json:"external_ref,omitempty"`
	AccountID   int       `json:"account_id,omitempty"`
	Created     time.Time `json:"created"`
}

// Queue is a durable manual-review queue backed by redis. Raising an
// alert must never fail the operation that raised it; errors here are
// logged and swallowed.
type Queue interface {
	Raise(ctx context.Context, kind, message, externalRef string, accountID int)
}

type queue struct {
	redis *redis.Client
}

func NewQueue(client *redis.Client) Queue {
	return &queue{redis: client}
}

func (q *queue) Raise(ctx context.Context, kind, message, externalRef string, accountID int) {
	alert := Alert{
		ID:          uuid.NewString(),
		Kind:        kind,
		Message:     message,
		ExternalRef: externalRef,
		AccountID:   accountID,
		Created:     time.Now().UTC(),
	}

	metrics.RecordReconciliationAlert(kind)
	logger.Warn("reconciliation alert raised",
		"alert_id", alert.ID,
		"kind", kind,
		"message", message,
		"external_ref", externalRef,
		"account_id", accountID,
	)

	data, err := json.Marshal(alert)
	if err != nil {
		logger.Error("failed to marshal alert", "error", err)
		return
	}

	if err := q.redis.LPush(ctx, queueKey, data).Err(); err != nil {
		logger.Error("failed to queue alert", "alert_id", alert.ID, "error", err)
	}
}

// Worker drains the queue and logs each alert. Operations tooling tails
// these entries; nothing is ever acked back to the ledger.
type Worker struct {
	redis *redis.Client
}

func NewWorker(client *redis.Client) *Worker {
	return &Worker{redis: client}
}

func (w *Worker) Start(ctx context.Context) {
	logger.Info("reconciliation alert worker started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("reconciliation alert worker stopped")
			return
		default:
			w.processNext(ctx)
		}
	}
}

func (w *Worker) processNext(ctx context.Context) {
	result, err := w.redis.BRPop(ctx, 2*time.Second, queueKey).Result()
	if err != nil {
		return
	}
	if len(result) < 2 {
		return
	}

	var alert Alert
	if err := json.Unmarshal([]byte(result[1]), &alert); err != nil {
		logger.Error("malformed alert payload", "payload", result[1], "error", err)
		return
	}

	logger.Warn("manual reconciliation required",
		"alert_id", alert.ID,
		"kind", alert.Kind,
		"message", alert.Message,
		"external_ref", alert.ExternalRef,
		"account_id", alert.AccountID,
		"created", alert.Created,
	)
}
