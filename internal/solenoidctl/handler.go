package solenoidctl

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/biotinker/solenoid-ac/internal/cli"
	"github.com/biotinker/solenoid-ac/internal/version"
)

// APIResponse represents the standard API response format
type APIResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// PositionData is the data payload of position responses
type PositionData struct {
	Position int `json:"position"`
}

// StatusData is the data payload of /status responses
type StatusData struct {
	Position  int    `json:"position"`
	Positions int    `json:"positions"`
	Variant   string `json:"variant"`
	Driver    string `json:"driver"`
}

// PositionRequest is the body of a set-position request
type PositionRequest struct {
	Position int `json:"position"`
}

// HTTPClient interface for testing
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Handler implements the solenoidctl command handler
type Handler struct {
	config     *Config
	httpClient HTTPClient
	stdout     io.Writer
	stderr     io.Writer
}

// NewHandler creates a new solenoidctl handler
func NewHandler() *Handler {
	return &Handler{
		httpClient: &http.Client{},
		stdout:     os.Stdout,
		stderr:     os.Stderr,
	}
}

// Execute dispatches a solenoidctl subcommand
func (h *Handler) Execute(cmdArgs *cli.CommandArgs) error {
	h.config = cmdArgs.Config.(*Config)

	if len(cmdArgs.Args) == 0 {
		h.showHelp()
		return nil
	}

	command := cmdArgs.Args[0]

	switch command {
	case "version":
		version.ShowVersion()
		return nil
	case "help":
		h.showHelp()
		return nil
	case "on":
		return h.cmdSetPosition(1)
	case "off":
		return h.cmdSetPosition(0)
	case "toggle":
		return h.cmdToggle()
	case "status":
		return h.cmdStatus()
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
}

func (h *Handler) showHelp() {
	fmt.Fprintf(h.stdout, `solenoidctl - Command line tool for controlling an AC solenoid switch

Usage: solenoidctl [flags] <command>

Commands:
  on       Energize the solenoid (position 1)
  off      De-energize the solenoid (position 0)
  toggle   Flip the current position
  status   Show the current position and variant
  help     Show this help
  version  Show version information

Flags:
  --config string      Config file to use (default %q)
  --server-url string  API server URL (default %q)
  --version            Show version and exit
`, getDefaultConfigFile(), defaultServerURL)
}

func (h *Handler) cmdSetPosition(position int) error {
	body, err := json.Marshal(PositionRequest{Position: position})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, h.config.ServerURL+"/position", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.doRequest(req)
	if err != nil {
		return err
	}

	var data PositionData
	if len(resp.Data) > 0 {
		if err := json.Unmarshal(resp.Data, &data); err != nil {
			return fmt.Errorf("failed to decode response data: %w", err)
		}
	}

	fmt.Fprintf(h.stdout, "position: %d\n", data.Position)
	return nil
}

func (h *Handler) cmdToggle() error {
	position, err := h.getPosition()
	if err != nil {
		return err
	}
	return h.cmdSetPosition(1 - position)
}

func (h *Handler) cmdStatus() error {
	req, err := http.NewRequest(http.MethodGet, h.config.ServerURL+"/status", nil)
	if err != nil {
		return err
	}

	resp, err := h.doRequest(req)
	if err != nil {
		return err
	}

	var data StatusData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return fmt.Errorf("failed to decode response data: %w", err)
	}

	state := "off"
	if data.Position == 1 {
		state = "on"
	}
	fmt.Fprintf(h.stdout, "position: %d (%s)\npositions: %d\nvariant: %s\ndriver: %s\n",
		data.Position, state, data.Positions, data.Variant, data.Driver)
	return nil
}

func (h *Handler) getPosition() (int, error) {
	req, err := http.NewRequest(http.MethodGet, h.config.ServerURL+"/position", nil)
	if err != nil {
		return 0, err
	}

	resp, err := h.doRequest(req)
	if err != nil {
		return 0, err
	}

	var data PositionData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return 0, fmt.Errorf("failed to decode response data: %w", err)
	}
	return data.Position, nil
}

func (h *Handler) doRequest(req *http.Request) (*APIResponse, error) {
	httpResp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", req.URL, err)
	}
	defer httpResp.Body.Close() //nolint:errcheck

	var resp APIResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.Status != "ok" {
		return nil, fmt.Errorf("server returned an error: %s", resp.Message)
	}
	return &resp, nil
}
