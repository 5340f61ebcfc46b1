// Package rabbitmq publishes delivery lifecycle notifications to a RabbitMQ
// topic exchange. Publishing is best-effort from the engine's point of view:
// transitions commit first, and a failed publish is logged by the caller
// without affecting the committed state.
package rabbitmq

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/streadway/amqp"
)

// Client owns the AMQP connection and channel and declares the topic
// exchange notifications are published to.
type Client struct {
	url      string
	exchange string
	logger   *slog.Logger

	mu         sync.RWMutex
	connection *amqp.Connection
	channel    *amqp.Channel
	closing    bool
}

// NewClient creates an unconnected client. Call Connect before publishing.
func NewClient(url string, exchange string, logger *slog.Logger) *Client {
	return &Client{
		url:      url,
		exchange: exchange,
		logger:   logger,
	}
}

// Connect dials the broker, opens a channel and declares the durable topic
// exchange. Retries the dial a few times to ride out broker startup.
func (c *Client) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	const retryCount = 5
	const retryDelay = 2 * time.Second

	var err error
	for attempt := 1; attempt <= retryCount; attempt++ {
		c.connection, err = amqp.Dial(c.url)
		if err != nil {
			c.logger.Warn("rabbitmq dial failed",
				"attempt", attempt,
				"of", retryCount,
				"error", err,
			)
			if attempt < retryCount {
				time.Sleep(retryDelay)
				continue
			}
			return fmt.Errorf("connect to rabbitmq: %w", err)
		}

		c.channel, err = c.connection.Channel()
		if err != nil {
			c.connection.Close()
			return fmt.Errorf("open rabbitmq channel: %w", err)
		}

		err = c.channel.ExchangeDeclare(
			c.exchange,
			"topic",
			true,  // durable
			false, // auto-deleted
			false, // internal
			false, // no-wait
			nil,
		)
		if err != nil {
			c.channel.Close()
			c.connection.Close()
			return fmt.Errorf("declare exchange %q: %w", c.exchange, err)
		}

		c.logger.Info("connected to rabbitmq", "exchange", c.exchange)

		go c.watchConnection()
		return nil
	}

	return err
}

// watchConnection reconnects once the broker drops the connection, unless
// the client is shutting down.
func (c *Client) watchConnection() {
	notifyClose := make(chan *amqp.Error, 1)
	c.connection.NotifyClose(notifyClose)

	err := <-notifyClose
	if err == nil {
		return
	}

	c.mu.RLock()
	closing := c.closing
	c.mu.RUnlock()
	if closing {
		return
	}

	c.logger.Warn("rabbitmq connection lost, reconnecting", "error", err)
	time.Sleep(2 * time.Second)
	if reconnectErr := c.Connect(); reconnectErr != nil {
		c.logger.Error("rabbitmq reconnect failed", "error", reconnectErr)
	}
}

// Exchange returns the exchange name notifications are published to.
func (c *Client) Exchange() string {
	return c.exchange
}

// Channel returns the current AMQP channel.
func (c *Client) Channel() *amqp.Channel {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.channel
}

// IsConnected reports whether the underlying connection is open.
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connection != nil && !c.connection.IsClosed()
}

// Close shuts down the channel and connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closing {
		return nil
	}
	c.closing = true

	var closeErr error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			closeErr = fmt.Errorf("close channel: %w", err)
		}
	}
	if c.connection != nil {
		if err := c.connection.Close(); err != nil {
			if closeErr != nil {
				closeErr = fmt.Errorf("%w; close connection: %w", closeErr, err)
			} else {
				closeErr = fmt.Errorf("close connection: %w", err)
			}
		}
	}

	return closeErr
}
