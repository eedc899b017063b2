// Package mqtt pushes widget payloads to an MQTT broker. Each recipient has
// a retained message on "{prefix}/{recipient}" holding the data of the
// newest postcard that reaches them, so widgets can subscribe instead of
// polling.
package mqtt

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/heartmarshall/postcards-home/internal/config"
	"github.com/heartmarshall/postcards-home/internal/domain"
)

const (
	publishQoS     = 1
	publishTimeout = 10 * time.Second
	connectTimeout = 30 * time.Second
)

type publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
}

type connector interface {
	Connect() paho.Token
	Disconnect(quiesce uint)
}

// Notifier publishes a retained widget payload per recipient.
type Notifier struct {
	client    publisher
	closeFn   func()
	prefix    string
	household domain.Household
	log       *slog.Logger
}

// Connect dials the broker described by cfg.
func Connect(ctx context.Context, log *slog.Logger, cfg config.MQTTConfig, household domain.Household) (*Notifier, error) {
	if cfg.Broker == "" {
		return nil, errors.New("mqtt: broker URL is required")
	}
	log = log.With("adapter", "mqtt")

	clientID := cfg.ClientID
	if clientID == "" {
		clientID = "postcards-" + uuid.NewString()[:8]
	}

	opts := paho.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetMaxReconnectInterval(2 * time.Minute).
		SetKeepAlive(60 * time.Second).
		SetCleanSession(true).
		SetOnConnectHandler(func(paho.Client) {
			log.Info("connected to MQTT broker", slog.String("broker", cfg.Broker))
		}).
		SetConnectionLostHandler(func(_ paho.Client, err error) {
			log.Error("MQTT connection lost", slog.String("error", err.Error()))
		})

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}
	if cfg.UseTLS {
		opts.SetTLSConfig(&tls.Config{MinVersion: tls.VersionTLS12})
	}

	client := paho.NewClient(opts)
	if err := dial(ctx, client, connectTimeout); err != nil {
		return nil, fmt.Errorf("mqtt: connect to %s: %w", cfg.Broker, err)
	}

	n := newNotifier(log, client, cfg.TopicPrefix, household)
	n.closeFn = func() { client.Disconnect(1000) }
	return n, nil
}

// dial waits for the first connection. On failure the client is stopped so
// its connect retry loop does not outlive the returned error.
func dial(ctx context.Context, c connector, timeout time.Duration) error {
	if err := wait(ctx, c.Connect(), timeout); err != nil {
		c.Disconnect(0)
		return err
	}
	return nil
}

func newNotifier(log *slog.Logger, client publisher, prefix string, household domain.Household) *Notifier {
	return &Notifier{
		client:    client,
		closeFn:   func() {},
		prefix:    strings.TrimRight(prefix, "/"),
		household: household,
		log:       log,
	}
}

// PostcardDispatched publishes p as the widget payload of every recipient.
// A broadcast postcard reaches every household member as well as the
// broadcast topic.
func (n *Notifier) PostcardDispatched(ctx context.Context, p domain.Postcard) error {
	payload, err := json.Marshal(domain.WidgetDataFrom(p))
	if err != nil {
		return fmt.Errorf("mqtt: marshal widget data: %w", err)
	}

	var errs []error
	for _, name := range n.targets(p) {
		topic := n.Topic(name)
		if err := wait(ctx, n.client.Publish(topic, publishQoS, true, payload), publishTimeout); err != nil {
			errs = append(errs, fmt.Errorf("publish %s: %w", topic, err))
			continue
		}
		n.log.DebugContext(ctx, "widget payload published", slog.String("topic", topic))
	}
	if len(errs) > 0 {
		return fmt.Errorf("mqtt: %w", errors.Join(errs...))
	}
	return nil
}

// Topic returns the retained topic for recipient.
func (n *Notifier) Topic(recipient string) string {
	return n.prefix + "/" + topicSegment(recipient)
}

// Close disconnects from the broker.
func (n *Notifier) Close() {
	n.closeFn()
}

func (n *Notifier) targets(p domain.Postcard) []string {
	names := p.Recipients
	if p.IsBroadcast() {
		names = append(append([]string(nil), p.Recipients...), n.household.Members...)
	}
	return domain.NormalizeRecipients(names)
}

// topicSegment makes name safe as a single topic level.
func topicSegment(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '+', '#', 0:
			return '_'
		}
		return r
	}, name)
}

func wait(ctx context.Context, tok paho.Token, timeout time.Duration) error {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-tok.Done():
		return tok.Error()
	case <-timer.C:
		return errors.New("timeout")
	case <-ctx.Done():
		return ctx.Err()
	}
}
