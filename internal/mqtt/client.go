package mqtt

import (
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// PositionTopic is the topic position change events are published to.
const PositionTopic = "event/solenoid/position"

// Client wraps the paho MQTT client with the connection-retry behavior
// shared by the commands in this project.
type Client struct {
	client mqtt.Client
}

// Config holds MQTT client configuration
type Config struct {
	ServerURL         string
	ClientID          string
	MaxRetries        int           // Maximum number of connection retries (0 = infinite)
	InitialRetryDelay time.Duration // Initial delay between retries
	MaxRetryDelay     time.Duration // Maximum delay between retries
	OnConnect         func(*Client) // Callback to execute when connected
}

// PositionEvent is published whenever the solenoid changes position.
type PositionEvent struct {
	Position  int    `json:"position"`
	Variant   string `json:"variant"`
	Timestamp string `json:"timestamp"`
}

// NewClient creates a new MQTT client and starts connecting in the
// background. A broker that is down never blocks the caller; publishes
// fail until the connection is up.
func NewClient(config Config) (*Client, error) {
	parsedURL, err := url.Parse(config.ServerURL)
	if err != nil {
		return nil, fmt.Errorf("invalid MQTT server URL: %w", err)
	}

	if parsedURL.Scheme != "mqtt" {
		return nil, fmt.Errorf("MQTT server URL must use mqtt:// scheme")
	}

	initialDelay := config.InitialRetryDelay
	if initialDelay == 0 {
		initialDelay = time.Second
	}
	maxDelay := config.MaxRetryDelay
	if maxDelay == 0 {
		maxDelay = 30 * time.Second
	}

	c := &Client{}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(config.ServerURL)
	opts.SetClientID(config.ClientID)
	opts.SetCleanSession(true)
	opts.SetAutoReconnect(true)
	opts.SetOnConnectHandler(func(mqtt.Client) {
		log.Printf("connected to MQTT server %s", config.ServerURL)
		if config.OnConnect != nil {
			config.OnConnect(c)
		}
	})
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		log.Printf("lost connection to MQTT server: %v", err)
	})

	c.client = mqtt.NewClient(opts)

	go c.connectWithRetry(config.MaxRetries, initialDelay, maxDelay)

	return c, nil
}

func (c *Client) connectWithRetry(maxRetries int, delay, maxDelay time.Duration) {
	for attempt := 1; ; attempt++ {
		token := c.client.Connect()
		token.Wait()
		if token.Error() == nil {
			return
		}

		log.Printf("MQTT connection attempt %d failed: %v", attempt, token.Error())
		if maxRetries > 0 && attempt >= maxRetries {
			log.Printf("giving up on MQTT connection after %d attempts", attempt)
			return
		}

		time.Sleep(delay)
		delay *= 2
		if delay > maxDelay {
			delay = maxDelay
		}
	}
}

// Publish marshals payload as JSON and publishes it to topic.
func (c *Client) Publish(topic string, qos byte, retained bool, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	token := c.client.Publish(topic, qos, retained, data)
	token.Wait()
	if token.Error() != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, token.Error())
	}
	return nil
}

// Subscribe registers handler for messages on topic.
func (c *Client) Subscribe(topic string, qos byte, handler func(topic string, payload []byte)) error {
	token := c.client.Subscribe(topic, qos, func(_ mqtt.Client, msg mqtt.Message) {
		handler(msg.Topic(), msg.Payload())
	})
	token.Wait()
	if token.Error() != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", topic, token.Error())
	}
	return nil
}

// IsConnected reports whether the client currently has a broker
// connection.
func (c *Client) IsConnected() bool {
	return c.client.IsConnected()
}

// Disconnect closes the connection, waiting up to quiesce milliseconds
// for in-flight messages.
func (c *Client) Disconnect(quiesce uint) {
	c.client.Disconnect(quiesce)
}
