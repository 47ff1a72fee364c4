package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

var errNotConnected = errors.New("not connected to NATS JetStream")

// NATSOptions tunes the connection and the event stream
type NATSOptions struct {
	ClientName    string
	MaxReconnects int
	ReconnectWait time.Duration
	StreamMaxAge  time.Duration
	DedupWindow   time.Duration
}

// DefaultNATSOptions returns the options used by the bot
func DefaultNATSOptions() NATSOptions {
	return NATSOptions{
		ClientName:    "gachabot",
		MaxReconnects: 10,
		ReconnectWait: 2 * time.Second,
		StreamMaxAge:  7 * 24 * time.Hour,
		DedupWindow:   2 * time.Minute,
	}
}

// NATSClient publishes gacha events to JetStream. The bot never consumes
// its own stream.
type NATSClient struct {
	servers string
	opts    NATSOptions

	mu sync.RWMutex
	nc *nats.Conn
	js nats.JetStreamContext
}

// NewNATSClient creates a client for a comma-separated server list
func NewNATSClient(servers string) *NATSClient {
	return &NATSClient{servers: servers, opts: DefaultNATSOptions()}
}

// Connect dials the servers and opens the JetStream context
func (c *NATSClient) Connect(ctx context.Context) error {
	nc, err := nats.Connect(c.servers,
		nats.Name(c.opts.ClientName),
		nats.MaxReconnects(c.opts.MaxReconnects),
		nats.ReconnectWait(c.opts.ReconnectWait),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.WithError(err).Warn("Event bus connection lost")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.WithField("url", nc.ConnectedUrl()).Info("Event bus reconnected")
		}),
		nats.ClosedHandler(func(*nats.Conn) {
			log.Info("Event bus connection closed")
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := nc.JetStream(nats.Context(ctx))
	if err != nil {
		nc.Close()
		return fmt.Errorf("failed to create JetStream context: %w", err)
	}

	c.mu.Lock()
	c.nc, c.js = nc, js
	c.mu.Unlock()

	log.WithField("servers", c.servers).Info("Connected to event bus")
	return nil
}

func (c *NATSClient) jetStream() (nats.JetStreamContext, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.js == nil {
		return nil, errNotConnected
	}
	return c.js, nil
}

// EnsureStream creates the stream, or widens an existing one so it captures
// every subject in subjects
func (c *NATSClient) EnsureStream(name string, subjects []string) error {
	js, err := c.jetStream()
	if err != nil {
		return err
	}

	info, err := js.StreamInfo(name)
	if errors.Is(err, nats.ErrStreamNotFound) {
		_, err = js.AddStream(&nats.StreamConfig{
			Name:        name,
			Subjects:    subjects,
			Retention:   nats.LimitsPolicy,
			MaxAge:      c.opts.StreamMaxAge,
			Duplicates:  c.opts.DedupWindow,
			Storage:     nats.FileStorage,
			Description: "Draws, token changes, redemptions and pool edits",
		})
		if err != nil {
			return fmt.Errorf("failed to create stream %s: %w", name, err)
		}
		log.WithFields(log.Fields{"stream": name, "subjects": subjects}).Info("Created event stream")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to look up stream %s: %w", name, err)
	}

	missing := false
	for _, s := range subjects {
		if !slices.Contains(info.Config.Subjects, s) {
			missing = true
			break
		}
	}
	if !missing {
		return nil
	}

	cfg := info.Config
	for _, s := range subjects {
		if !slices.Contains(cfg.Subjects, s) {
			cfg.Subjects = append(cfg.Subjects, s)
		}
	}
	if _, err := js.UpdateStream(&cfg); err != nil {
		return fmt.Errorf("failed to update stream %s: %w", name, err)
	}
	log.WithFields(log.Fields{"stream": name, "subjects": cfg.Subjects}).Info("Updated event stream subjects")
	return nil
}

// Publish stores data on subject. msgID lets JetStream drop a redelivered
// event inside the dedup window.
func (c *NATSClient) Publish(ctx context.Context, subject string, data []byte, msgID string) error {
	js, err := c.jetStream()
	if err != nil {
		return err
	}

	opts := []nats.PubOpt{nats.Context(ctx)}
	if msgID != "" {
		opts = append(opts, nats.MsgId(msgID))
	}
	ack, err := js.Publish(subject, data, opts...)
	if err != nil {
		return fmt.Errorf("failed to publish to %s: %w", subject, err)
	}
	if ack.Duplicate {
		log.WithFields(log.Fields{"subject": subject, "msgID": msgID}).Debug("Event bus dropped duplicate")
	}
	return nil
}

// IsConnected reports whether the connection is currently up
func (c *NATSClient) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.nc != nil && c.nc.IsConnected()
}

// Close drains pending publishes and closes the connection
func (c *NATSClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.nc == nil {
		return nil
	}
	err := c.nc.Drain()
	c.nc, c.js = nil, nil
	if err != nil {
		return fmt.Errorf("failed to drain NATS connection: %w", err)
	}
	return nil
}
