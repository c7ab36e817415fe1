package mqtt

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

//go:generate mockgen -source=./client.go -destination=../../../test/unit/doubles/infra/mqtt/client.go

const (
	_defaultQoS     = 1 // At least once
	_connectTimeout = 5 * time.Second
	_publishTimeout = 5 * time.Second
	_disconnectWait = 250 * time.Millisecond
)

var ErrPublishTimeout = errors.New("publish timed out")

type Client interface {
	Publish(topic string, msg any) error
	Disconnect()
}

type SimpleClientOpts struct {
	Broker   string
	ClientID string
	Username string
	Password string
	Retained bool
}

// NewSimpleClient connects to the broker and keeps reconnecting in the
// background when the connection drops.
func NewSimpleClient(opts SimpleClientOpts) (*SimpleClient, error) {
	onConnectHandler := func(_ paho.Client) {
		slog.Info("connected to MQTT broker", slog.String("broker", opts.Broker))
	}

	onConnectionLostHandler := func(_ paho.Client, err error) {
		slog.Error("connection lost to MQTT broker", slog.Any("error", err))
	}

	pahoOpts := paho.NewClientOptions().
		AddBroker(opts.Broker).
		SetClientID(opts.ClientID).
		SetUsername(opts.Username).
		SetPassword(opts.Password).
		SetOnConnectHandler(onConnectHandler).
		SetAutoReconnect(true).
		SetConnectionLostHandler(onConnectionLostHandler).
		SetKeepAlive(10 * time.Second).
		SetConnectTimeout(_connectTimeout)

	client := paho.NewClient(pahoOpts)
	token := client.Connect()
	if !token.WaitTimeout(_connectTimeout) {
		return nil, fmt.Errorf("connecting to %s: timed out", opts.Broker)
	}
	if token.Error() != nil {
		return nil, fmt.Errorf("connecting to %s: %w", opts.Broker, token.Error())
	}

	return &SimpleClient{client: client, retained: opts.Retained}, nil
}

var _ Client = (*SimpleClient)(nil)

type SimpleClient struct {
	client   paho.Client
	retained bool
}

func (c *SimpleClient) Disconnect() {
	c.client.Disconnect(uint(_disconnectWait.Milliseconds()))
}

func (c *SimpleClient) Publish(topic string, msg any) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshaling message: %w", err)
	}

	token := c.client.Publish(topic, _defaultQoS, c.retained, payload)
	if !token.WaitTimeout(_publishTimeout) {
		return fmt.Errorf("publishing to topic %s: %w", topic, ErrPublishTimeout)
	}
	if token.Error() != nil {
		return fmt.Errorf("publishing to topic %s: %w", topic, token.Error())
	}

	return nil
}
