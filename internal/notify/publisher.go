package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	paho "github.com/eclipse/paho.mqtt.golang"

	"happyminds/internal/domain"
)

type Config struct {
	BrokerURL   string
	ClientID    string
	Username    string
	Password    string
	TopicPrefix string
}

// Publisher pushes mood events to MQTT so companion devices can react to a
// freshly saved journal entry. It is optional: with no broker configured it
// stays disabled and every call is a no-op error the caller only logs.
type Publisher struct {
	cfg    Config
	client paho.Client
	logger *slog.Logger
}

func NewPublisher(cfg Config, logger *slog.Logger) *Publisher {
	if cfg.TopicPrefix == "" {
		cfg.TopicPrefix = "happyminds"
	}
	return &Publisher{cfg: cfg, logger: logger}
}

func (p *Publisher) Enabled() bool {
	return p != nil && p.cfg.BrokerURL != ""
}

func (p *Publisher) Start(ctx context.Context) error {
	if !p.Enabled() {
		return nil
	}

	opts := paho.NewClientOptions().
		AddBroker(p.cfg.BrokerURL).
		SetClientID(p.cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectRetry(true)

	if p.cfg.Username != "" {
		opts.SetUsername(p.cfg.Username)
		opts.SetPassword(p.cfg.Password)
	}

	opts.SetConnectionLostHandler(func(_ paho.Client, err error) {
		p.logger.Error("mqtt connection lost", "error", err)
	})

	p.client = paho.NewClient(opts)
	if token := p.client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}

	go func() {
		<-ctx.Done()
		p.client.Disconnect(100)
	}()

	return nil
}

// PublishMood sends one mood event, QoS 1.
func (p *Publisher) PublishMood(userID string, event domain.MoodEvent) error {
	if !p.Enabled() || p.client == nil {
		return fmt.Errorf("mood publisher is not configured")
	}
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	topic := MoodTopic(p.cfg.TopicPrefix, userID)
	if token := p.client.Publish(topic, 1, false, body); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	return nil
}

func MoodTopic(prefix, userID string) string {
	return fmt.Sprintf("%s/journal/%s/mood", prefix, userID)
}
