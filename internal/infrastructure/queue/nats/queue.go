package nats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/BenLYNC/AI-Automation-Alert/internal/core/domain"
	"github.com/BenLYNC/AI-Automation-Alert/internal/infrastructure/resilience"
)

// QueueGroup load-balances score requests across worker replicas.
const QueueGroup = "scorers"

type Queue struct {
	conn           *nats.Conn
	requestSubject string
	alertSubject   string
	executor       *resilience.Executor
	logger         *slog.Logger
}

type Options struct {
	ConnectTimeout       time.Duration
	ReconnectWait        time.Duration
	MaxReconnects        int
	RetryOnFailedConnect *bool
	ResilienceExecutor   *resilience.Executor
	Logger               *slog.Logger
}

func New(url, requestSubject, alertSubject string) (*Queue, error) {
	return NewWithOptions(url, requestSubject, alertSubject, Options{})
}

func NewWithOptions(url, requestSubject, alertSubject string, options Options) (*Queue, error) {
	connectTimeout := options.ConnectTimeout
	if connectTimeout <= 0 {
		connectTimeout = 2 * time.Second
	}
	reconnectWait := options.ReconnectWait
	if reconnectWait <= 0 {
		reconnectWait = 2 * time.Second
	}
	maxReconnects := options.MaxReconnects
	if maxReconnects <= 0 {
		maxReconnects = 60
	}
	retryOnFailedConnect := true
	if options.RetryOnFailedConnect != nil {
		retryOnFailedConnect = *options.RetryOnFailedConnect
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	conn, err := nats.Connect(
		url,
		nats.Name("automation-alert"),
		nats.Timeout(connectTimeout),
		nats.ReconnectWait(reconnectWait),
		nats.MaxReconnects(maxReconnects),
		nats.RetryOnFailedConnect(retryOnFailedConnect),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn("nats_disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("nats_reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	return &Queue{
		conn:           conn,
		requestSubject: requestSubject,
		alertSubject:   alertSubject,
		executor:       options.ResilienceExecutor,
		logger:         logger,
	}, nil
}

func (q *Queue) Close() {
	if q.conn != nil {
		q.conn.Close()
	}
}

// PublishAlertScored emits the finished report on the alert subject.
func (q *Queue) PublishAlertScored(ctx context.Context, report *domain.Report) error {
	if report == nil {
		return nil
	}
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode alert scored event: %w", err)
	}
	return q.publish(ctx, q.alertSubject, payload)
}

func (q *Queue) PublishScoreRequest(ctx context.Context, req domain.ScoreRequest) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encode score request: %w", err)
	}
	return q.publish(ctx, q.requestSubject, payload)
}

func (q *Queue) publish(ctx context.Context, subject string, payload []byte) error {
	call := func(_ context.Context) error {
		if err := q.conn.Publish(subject, payload); err != nil {
			return fmt.Errorf("nats publish: %w", err)
		}
		return nil
	}

	var err error
	if q.executor != nil {
		err = q.executor.Execute(ctx, "nats.publish", call, classifyNATSError)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return wrapTemporaryIfNeeded(err)
	}
	return nil
}

// SubscribeScoreRequests blocks until ctx is done, then drains the subscription.
func (q *Queue) SubscribeScoreRequests(ctx context.Context, handler func(context.Context, domain.ScoreRequest) error) error {
	sub, err := q.conn.QueueSubscribe(q.requestSubject, QueueGroup, func(msg *nats.Msg) {
		if errors.Is(ctx.Err(), context.Canceled) {
			return
		}

		handlerCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		handleScoreRequest(handlerCtx, q.logger, msg.Data, handler)
	})
	if err != nil {
		return fmt.Errorf("nats subscribe: %w", err)
	}

	if err := q.conn.Flush(); err != nil {
		return fmt.Errorf("nats flush: %w", err)
	}

	<-ctx.Done()
	if err := sub.Drain(); err != nil {
		return fmt.Errorf("nats drain subscription: %w", err)
	}
	if err := q.conn.FlushTimeout(5 * time.Second); err != nil {
		return fmt.Errorf("nats flush after drain: %w", err)
	}
	return nil
}

// handleScoreRequest decodes one message and runs handler. Undecodable
// messages are logged and dropped.
func handleScoreRequest(ctx context.Context, logger *slog.Logger, data []byte, handler func(context.Context, domain.ScoreRequest) error) bool {
	var req domain.ScoreRequest
	if err := json.Unmarshal(data, &req); err != nil {
		logger.Error("score_request_decode_failed", "error", err, "bytes", len(data))
		return false
	}
	if err := handler(ctx, req); err != nil {
		logger.Error("score_request_failed", "soc_code", req.SOCCode, "error", err)
		return false
	}
	return true
}
