package mq

import (
	"context"
	"encoding/json"
	"net"
	"time"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"baka-api/config"
	"baka-api/internal/domain/user"
)

const bufferSize = 128

const (
	ActionUserCreated    = "user.created"
	ActionUserDeleted    = "user.deleted"
	ActionUserDisabled   = "user.disabled"
	ActionUserTokenReset = "user.token_reset"
)

// RoutingKeys lists every lifecycle action; each is published under its own routing key.
var RoutingKeys = []string{
	ActionUserCreated,
	ActionUserDeleted,
	ActionUserDisabled,
	ActionUserTokenReset,
}

type (
	InputCh  = chan Event
	RabbitMQ struct {
		cfg   config.MQ
		log   *zap.Logger
		conn  *amqp091.Connection
		pubCh *amqp091.Channel
		in    InputCh
	}
	// Event never carries the bearer token.
	Event struct {
		Id      uuid.UUID   `json:"event_id"`
		TS      time.Time   `json:"time_stamp"`
		Action  string      `json:"event_action"`
		UserID  int64       `json:"user_id"`
		Payload UserPayload `json:"user_payload"`
	}
	UserPayload struct {
		Username    string `json:"username"`
		Email       string `json:"email"`
		AccountType string `json:"account_type"`
		Deleted     bool   `json:"deleted"`
		Disabled    bool   `json:"disabled"`
	}
)

func NewUserEvent(action string, u *user.User) Event {
	return Event{
		Id:     uuid.New(),
		TS:     time.Now(),
		Action: action,
		UserID: int64(u.ID),
		Payload: UserPayload{
			Username:    u.Username,
			Email:       u.Email,
			AccountType: u.AccountType,
			Deleted:     u.Deleted,
			Disabled:    u.Disabled,
		},
	}
}

func New(cfg config.MQ, logger *zap.Logger) *RabbitMQ {
	return &RabbitMQ{
		cfg: cfg,
		log: logger,
		in:  make(chan Event, bufferSize),
	}
}

func (r *RabbitMQ) Connect(ctx context.Context, dsn string) error {
	dialer := &net.Dialer{Timeout: 10 * time.Second}

	amqpCfg := amqp091.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Properties: amqp091.Table{
			"connection_name": "bakaapi",
		},
		Dial: func(network, addr string) (net.Conn, error) {
			return dialer.DialContext(ctx, network, addr)
		},
	}

	var err error
	r.conn, err = amqp091.DialConfig(dsn, amqpCfg)
	if err != nil {
		return err
	}
	r.pubCh, err = r.conn.Channel()
	if err != nil {
		_ = r.conn.Close()
		return err
	}

	r.log.Info("rabbitmq connected successfully")

	return nil
}

func (r *RabbitMQ) Init() error {
	if err := r.pubCh.ExchangeDeclare(
		r.cfg.Exchange,
		r.cfg.ExchangeType,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		_ = r.pubCh.Close()
		return err
	}
	q, err := r.pubCh.QueueDeclare(
		r.cfg.QueueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	for _, rk := range RoutingKeys {
		if err = r.pubCh.QueueBind(q.Name, rk, r.cfg.Exchange, false, nil); err != nil {
			return err
		}
	}

	return nil
}

// Publish enqueues e for the publisher worker. A full buffer drops the event
// rather than stalling the request that produced it.
func (r *RabbitMQ) Publish(e Event) {
	select {
	case r.in <- e:
	default:
		r.log.Warn("mq buffer full, event dropped",
			zap.String("action", e.Action),
			zap.Int64("user_id", e.UserID),
		)
	}
}

func (r *RabbitMQ) PublisherWorker(ctx context.Context) {
	r.log.Info("starting publisher worker")

	defer func() {
		r.log.Info("publisher worker gracefully stopped")
	}()

	for {
		select {
		case e := <-r.in:
			if err := r.publish(ctx, e); err != nil {
				r.log.Error("mq publish error", zap.Error(err), zap.String("action", e.Action))
			}
		case <-ctx.Done():
			_ = r.pubCh.Close()
			return
		}
	}
}

func (r *RabbitMQ) publish(ctx context.Context, e Event) error {
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}

	pub := amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		MessageId:    e.Id.String(),
		Timestamp:    e.TS,
		Type:         e.Action,
		Body:         b,
	}

	return r.pubCh.PublishWithContext(
		ctx,
		r.cfg.Exchange,
		e.Action,
		true,
		false,
		pub,
	)
}

func (r *RabbitMQ) GetConn() *amqp091.Connection { return r.conn }

// Discard stands in for the broker when none is configured.
type Discard struct {
	log *zap.Logger
}

func NewDiscard(logger *zap.Logger) *Discard { return &Discard{log: logger} }

func (d *Discard) Publish(e Event) {
	d.log.Debug("mq disabled, event discarded", zap.String("action", e.Action), zap.Int64("user_id", e.UserID))
}
