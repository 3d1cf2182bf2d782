package status

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/larsks/display1306/v2/display"
	"github.com/larsks/display1306/v2/display/fakedriver"

	"github.com/biotinker/solenoid-ac/internal/cli"
	"github.com/biotinker/solenoid-ac/internal/mqtt"
)

// Handler implements the CLI handler for solenoid-status. It renders
// the solenoid position on an SSD1306 display, polling the API server
// and refreshing immediately when a position event arrives over MQTT.
type Handler struct {
	display    *display.Display
	mqttClient *mqtt.Client
	refreshCh  chan struct{}
}

// NewHandler creates a new Handler instance
func NewHandler() *Handler {
	return &Handler{
		refreshCh: make(chan struct{}, 1),
	}
}

// Start implements the CommandHandler interface
func (h *Handler) Start(config cli.Configurable) error {
	cfg := config.(*Config)

	if h.display == nil {
		var d *display.Display
		var err error

		if cfg.DryRun {
			d, err = display.NewDisplay().WithDriver(fakedriver.NewFakeSSD1306()).Build()
		} else {
			d, err = display.NewDisplay().Build()
		}
		if err != nil {
			return fmt.Errorf("failed to initialize display: %w", err)
		}
		h.display = d
	}

	if err := h.display.Init(); err != nil {
		return fmt.Errorf("failed to initialize display: %w", err)
	}

	if cfg.MQTTServer != "" {
		client, err := mqtt.NewClient(mqtt.Config{
			ServerURL: cfg.MQTTServer,
			ClientID:  "solenoid-status",
			OnConnect: func(client *mqtt.Client) {
				if err := client.Subscribe(mqtt.PositionTopic, 0, h.handlePositionEvent); err != nil {
					log.Printf("failed to subscribe to position events: %v", err)
				} else {
					log.Printf("subscribed to position events on MQTT")
				}
			},
		})
		if err != nil {
			log.Printf("failed to initialize MQTT client: %v", err)
		} else {
			h.mqttClient = client
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("received shutdown signal")
		cancel()
	}()

	defer func() {
		if h.mqttClient != nil {
			h.mqttClient.Disconnect(250)
		}
		h.display.ClearScreen() //nolint:errcheck
		h.display.Close()       //nolint:errcheck
	}()

	ticker := time.NewTicker(cfg.UpdateInterval)
	defer ticker.Stop()

	h.render(cfg.ServerURL)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			h.render(cfg.ServerURL)
		case <-h.refreshCh:
			h.render(cfg.ServerURL)
		}
	}
}

// handlePositionEvent wakes the render loop when the server publishes
// a position change.
func (h *Handler) handlePositionEvent(_ string, _ []byte) {
	select {
	case h.refreshCh <- struct{}{}:
	default:
	}
}

func (h *Handler) render(serverURL string) {
	state := "???"
	variant := "???"

	if status, err := getSolenoidStatus(serverURL); err != nil {
		log.Printf("failed to fetch solenoid status: %v", err)
	} else {
		if status.Position == 1 {
			state = "ON"
		} else {
			state = "off"
		}
		variant = status.Variant
	}

	lines := []string{
		"*** SOLENOID ***",
		fmt.Sprintf("STATE: %s", state),
		fmt.Sprintf("DRIVE: %s", variant),
		time.Now().Format("15:04:05"),
	}

	if err := h.display.PrintLines(0, lines); err != nil {
		log.Printf("failed to print lines to display: %v", err)
	}
	if err := h.display.Update(); err != nil {
		log.Printf("failed to update display: %v", err)
	}
}

// APIResponse represents the standard API response format
type APIResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// SolenoidStatus is the data payload of /status responses
type SolenoidStatus struct {
	Position  int    `json:"position"`
	Positions int    `json:"positions"`
	Variant   string `json:"variant"`
	Driver    string `json:"driver"`
}

// getSolenoidStatus contacts the API server and returns the solenoid
// status.
func getSolenoidStatus(serverURL string) (*SolenoidStatus, error) {
	resp, err := http.Get(serverURL + "/status")
	if err != nil {
		return nil, fmt.Errorf("failed to contact API server: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API server returned status %d", resp.StatusCode)
	}

	var apiResponse APIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, fmt.Errorf("failed to decode API response: %w", err)
	}

	if apiResponse.Status != "ok" {
		return nil, fmt.Errorf("API returned error status: %s", apiResponse.Message)
	}

	var status SolenoidStatus
	if err := json.Unmarshal(apiResponse.Data, &status); err != nil {
		return nil, fmt.Errorf("failed to unmarshal status data: %w", err)
	}

	return &status, nil
}
