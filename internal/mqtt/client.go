// internal/mqtt/client.go
package mqtt

import (
	"errors"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	cfg "github.com/tamzrod/growatt-bridge/internal/config"
)

// Topic suffixes below <root>.
const (
	TopicData       = "data"
	TopicSettings   = "settings"
	TopicError      = "error"
	TopicInfo       = "info"
	TopicStatus     = "status"
	TopicConnection = "connection"

	TopicWrite       = "write"
	TopicWriteConfig = "writeconfig"
)

const (
	connectTimeout = 10 * time.Second
	connectRetry   = 5 * time.Second
	publishTimeout = 5 * time.Second
)

// Handler receives inbound messages. It runs on the paho goroutine
// and must not block.
type Handler func(topic string, payload []byte)

// Client publishes under one topic root and delivers write commands.
type Client struct {
	c       paho.Client
	root    string
	broker  string
	timeout time.Duration
	logger  zerolog.Logger
}

// New prepares a client without dialing. The connection marker is
// retained: "online" on every (re)connect, "offline" as last will.
func New(m cfg.MQTTConfig, h Handler) (*Client, error) {
	if m.Broker == "" {
		return nil, errors.New("mqtt: broker required")
	}

	c := &Client{
		root:    m.TopicRoot,
		broker:  m.Broker,
		timeout: connectTimeout,
		logger:  log.With().Str("component", "mqtt").Logger(),
	}

	opts := paho.NewClientOptions()
	opts.AddBroker(m.Broker)
	opts.SetClientID(m.ClientID)
	if m.Username != "" {
		opts.SetUsername(m.Username)
		opts.SetPassword(m.Password)
	}
	opts.SetKeepAlive(time.Duration(m.KeepAliveSec) * time.Second)
	opts.SetAutoReconnect(true)
	// The first dial is retried too; the broker may come up after us.
	opts.SetConnectRetry(true)
	opts.SetConnectRetryInterval(connectRetry)
	opts.SetWill(c.Topic(TopicConnection), "offline", 1, true)

	opts.SetOnConnectHandler(func(pc paho.Client) {
		c.logger.Info().Str("broker", m.Broker).Msg("connected")
		pc.Publish(c.Topic(TopicConnection), 1, true, "online")

		cb := func(_ paho.Client, msg paho.Message) {
			h(msg.Topic(), msg.Payload())
		}
		for _, sub := range []string{TopicWrite, TopicWriteConfig} {
			t := c.Topic(sub + "/#")
			if tok := pc.Subscribe(t, 0, cb); tok.Wait() && tok.Error() != nil {
				c.logger.Error().Str("topic", t).Err(tok.Error()).Msg("subscribe failed")
			}
		}
	})
	opts.SetConnectionLostHandler(func(_ paho.Client, err error) {
		c.logger.Warn().Err(err).Msg("connection lost")
	})

	c.c = paho.NewClient(opts)
	return c, nil
}

// Connect dials the broker. The handler may fire as soon as it returns.
// An unreachable broker is not an error: paho keeps retrying in the
// background and the on-connect handler publishes and subscribes once
// it gets through.
func (c *Client) Connect() error {
	tok := c.c.Connect()
	if !tok.WaitTimeout(c.timeout) {
		c.logger.Warn().Str("broker", c.broker).Dur("retry", connectRetry).Msg("broker unreachable, retrying")
		return nil
	}
	if err := tok.Error(); err != nil {
		return fmt.Errorf("mqtt: connect %s: %w", c.broker, err)
	}
	return nil
}

// Topic returns <root>/<sub>.
func (c *Client) Topic(sub string) string {
	return c.root + "/" + sub
}

// Publish sends payload to <root>/<sub> at QoS 0, not retained.
func (c *Client) Publish(sub, payload string) error {
	tok := c.c.Publish(c.Topic(sub), 0, false, payload)
	if !tok.WaitTimeout(publishTimeout) {
		return fmt.Errorf("mqtt: publish %s: timed out", sub)
	}
	return tok.Error()
}

// Close marks the bridge offline and disconnects.
func (c *Client) Close() {
	if c == nil || c.c == nil {
		return
	}
	c.c.Publish(c.Topic(TopicConnection), 1, true, "offline").WaitTimeout(time.Second)
	c.c.Disconnect(250)
}
