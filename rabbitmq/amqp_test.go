package rabbitmq

import (
	"io"
	"sync/atomic"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/ziflex/lecho/v3"
)

func TestReconnectionLoopSurvivesRepeatedDisconnects(t *testing.T) {
	var dials atomic.Int64
	client := &defaultAMQPClient{
		logger: lecho.New(io.Discard),
	}
	client.dial = func() error {
		dials.Add(1)
		// connect installs a close-notification channel on the new connection
		client.notifyCloseChan = make(chan *amqp.Error)
		return nil
	}
	first := make(chan *amqp.Error)
	client.notifyCloseChan = first
	go client.reconnectionLoop()

	first <- &amqp.Error{Code: amqp.ConnectionForced, Reason: "broker gone"}
	assert.Eventually(t, func() bool {
		return dials.Load() == 1 && !client.reconFlag.Load()
	}, time.Second, 10*time.Millisecond)

	// the amqp library closes the dead connection's channel; the loop must
	// move on to the replacement channel instead of exiting
	close(first)

	second := client.notifyCloseChan
	second <- &amqp.Error{Code: amqp.ConnectionForced, Reason: "broker gone again"}
	assert.Eventually(t, func() bool {
		return dials.Load() == 2
	}, time.Second, 10*time.Millisecond)
}
