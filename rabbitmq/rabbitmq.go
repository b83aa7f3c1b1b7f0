package rabbitmq

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/labstack/gommon/log"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/ziflex/lecho/v3"

	"github.com/contaflow/ledgerhub/db/models"
)

// bufPool is a classic buffer pool pattern that allows more clever reuse of
// heap memory. Instead of allocating new memory every time we encode an
// event we reuse buffers from this pool.
var bufPool = sync.Pool{
	New: func() interface{} { return new(bytes.Buffer) },
}

const contentTypeJSON = "application/json"

// Client publishes ledger lifecycle events for downstream reporting and
// cross-module consumers.
type Client interface {
	PublishEntryEvent(ctx context.Context, key string, entry *models.JournalEntry) error
	// Close will close all connections to rabbitmq
	Close() error
}

// EntryEvent is the wire format of a journal entry lifecycle event.
type EntryEvent struct {
	CompanyID   int64     `json:"company_id"`
	EntryID     int64     `json:"entry_id"`
	Number      string    `json:"number"`
	Date        time.Time `json:"date"`
	Currency    string    `json:"currency"`
	TotalDebit  string    `json:"total_debit"`
	TotalCredit string    `json:"total_credit"`
	Status      string    `json:"status"`
	HashValue   string    `json:"hash_value,omitempty"`
}

type DefaultClient struct {
	amqpClient AMQPClient

	logger *lecho.Logger

	entryExchange string
}

type ClientOption = func(client *DefaultClient)

func WithEntryExchange(exchange string) ClientOption {
	return func(client *DefaultClient) {
		client.entryExchange = exchange
	}
}

func WithLogger(logger *lecho.Logger) ClientOption {
	return func(client *DefaultClient) {
		client.logger = logger
	}
}

func NewClient(amqpClient AMQPClient, options ...ClientOption) (Client, error) {
	client := &DefaultClient{
		amqpClient: amqpClient,
		logger: lecho.New(
			os.Stdout,
			lecho.WithLevel(log.DEBUG),
			lecho.WithTimestamp(),
		),
		entryExchange: "ledgerhub_entry",
	}
	for _, opt := range options {
		opt(client)
	}

	err := amqpClient.ExchangeDeclare(
		client.entryExchange,
		"topic",
		// durable
		true,
		// auto-deleted
		false,
		// internal
		false,
		// no-wait
		false,
		nil,
	)
	if err != nil {
		return nil, err
	}

	return client, nil
}

func (client *DefaultClient) PublishEntryEvent(ctx context.Context, key string, entry *models.JournalEntry) error {
	payload := bufPool.Get().(*bytes.Buffer)
	payload.Reset()
	defer bufPool.Put(payload)

	event := EntryEvent{
		CompanyID:   entry.CompanyID,
		EntryID:     entry.ID,
		Number:      entry.Number,
		Date:        entry.Date,
		Currency:    entry.Currency,
		TotalDebit:  entry.TotalDebit.StringFixed(2),
		TotalCredit: entry.TotalCredit.StringFixed(2),
		Status:      entry.Status,
		HashValue:   entry.HashValue,
	}
	if err := json.NewEncoder(payload).Encode(event); err != nil {
		return err
	}

	client.logger.Debugf("publishing %s for entry %s", key, entry.Number)
	return client.amqpClient.PublishWithContext(ctx,
		client.entryExchange,
		key,
		false,
		false,
		amqp.Publishing{
			ContentType: contentTypeJSON,
			Body:        payload.Bytes(),
		},
	)
}

func (client *DefaultClient) Close() error {
	return client.amqpClient.Close()
}
