package control

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/cwbudde/algo-blocks/config"
)

// ErrTimeout is returned when the broker does not acknowledge in time.
var ErrTimeout = errors.New("control: mqtt timeout")

// Dial connects to the broker named in cfg.
func Dial(cfg config.ControlConfig, logger *slog.Logger) (mqtt.Client, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(cfg.ClientID)
	opts.SetAutoReconnect(true)
	opts.SetConnectRetryInterval(2 * time.Second)
	opts.SetMaxReconnectInterval(30 * time.Second)

	opts.OnConnect = func(mqtt.Client) {
		logger.Info("mqtt connection established", "broker", cfg.Broker, "client_id", cfg.ClientID)
	}
	opts.OnConnectionLost = func(_ mqtt.Client, err error) {
		logger.Warn("mqtt connection lost, will auto-reconnect", "broker", cfg.Broker, "error", err)
	}

	client := mqtt.NewClient(opts)

	logger.Info("connecting to mqtt broker", "broker", cfg.Broker)
	if err := wait(client.Connect(), timeout(cfg)); err != nil {
		return nil, fmt.Errorf("mqtt connection failed: %w", err)
	}
	return client, nil
}

// MQTTListener serves a Handler on the command topic, answers on the
// response topic and publishes constant changes on the event topic.
type MQTTListener struct {
	client  mqtt.Client
	handler *Handler
	cfg     config.ControlConfig
	logger  *slog.Logger

	mu        sync.Mutex
	stopWatch func()
	started   bool
	done      chan struct{}

	published   atomic.Uint64
	publishErrs atomic.Uint64
}

// NewMQTTListener returns a listener that is not yet subscribed.
func NewMQTTListener(client mqtt.Client, h *Handler, cfg config.ControlConfig, logger *slog.Logger) *MQTTListener {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &MQTTListener{client: client, handler: h, cfg: cfg, logger: logger}
}

// Start subscribes to the command topic and begins forwarding constant
// changes. It stops forwarding when ctx is done.
func (l *MQTTListener) Start(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.started {
		return errors.New("control: listener already started")
	}

	topic := l.cfg.Topics.Commands
	l.logger.Info("subscribing to control plane", "topic", topic, "qos", l.cfg.QoS)

	if err := wait(l.client.Subscribe(topic, l.cfg.QoS, l.messageHandler), timeout(l.cfg)); err != nil {
		return fmt.Errorf("control plane subscription failed: %w", err)
	}

	stop, err := l.handler.Watch(16, l.publishEvent)
	if err != nil {
		l.client.Unsubscribe(topic)
		return err
	}
	l.stopWatch = stop
	l.started = true
	l.done = make(chan struct{})

	go func(done <-chan struct{}) {
		select {
		case <-ctx.Done():
			_ = l.Stop()
		case <-done:
		}
	}(l.done)

	l.logger.Info("control plane listener started", "blocks", l.handler.IDs())
	return nil
}

// Stop unsubscribes and stops forwarding events. It is safe to call more
// than once.
func (l *MQTTListener) Stop() error {
	l.mu.Lock()
	if !l.started {
		l.mu.Unlock()
		return nil
	}
	l.started = false
	stop := l.stopWatch
	close(l.done)
	l.mu.Unlock()

	// Event callbacks publish; they must be able to finish.
	stop()

	if l.client.IsConnected() {
		if err := wait(l.client.Unsubscribe(l.cfg.Topics.Commands), timeout(l.cfg)); err != nil {
			return fmt.Errorf("control plane unsubscribe failed: %w", err)
		}
	}

	l.logger.Info("control plane listener stopped")
	return nil
}

// Stats returns the number of published messages and publish failures.
func (l *MQTTListener) Stats() (published, failed uint64) {
	return l.published.Load(), l.publishErrs.Load()
}

func (l *MQTTListener) messageHandler(_ mqtt.Client, msg mqtt.Message) {
	l.logger.Debug("control command received", "topic", msg.Topic(), "bytes", len(msg.Payload()))
	l.publish(l.cfg.Topics.Responses, l.handler.HandleJSON(msg.Payload()))
}

func (l *MQTTListener) publishEvent(e Event) {
	payload, err := json.Marshal(e)
	if err != nil {
		l.logger.Error("failed to marshal event", "error", err)
		return
	}
	l.publish(l.cfg.Topics.Events, payload)
}

func (l *MQTTListener) publish(topic string, payload []byte) {
	err := wait(l.client.Publish(topic, l.cfg.QoS, false, payload), timeout(l.cfg))

	if err != nil {
		l.publishErrs.Add(1)
		l.logger.Error("failed to publish", "topic", topic, "error", err)
		return
	}
	l.published.Add(1)
	l.logger.Debug("published", "topic", topic, "bytes", len(payload))
}

func wait(token mqtt.Token, d time.Duration) error {
	if !token.WaitTimeout(d) {
		return ErrTimeout
	}
	return token.Error()
}

func timeout(cfg config.ControlConfig) time.Duration {
	if cfg.TimeoutS <= 0 {
		return 5 * time.Second
	}
	return time.Duration(cfg.TimeoutS) * time.Second
}
