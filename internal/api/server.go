package api

import (
	"fmt"
	"log"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/biotinker/solenoid-ac/internal/board"
	"github.com/biotinker/solenoid-ac/internal/boarddrivers"
	"github.com/biotinker/solenoid-ac/internal/httpserver"
	"github.com/biotinker/solenoid-ac/internal/mqtt"
	"github.com/biotinker/solenoid-ac/internal/solenoid"
)

// Server exposes one solenoid switch over HTTP. It owns the board and
// the solenoid: shutdown forces the outputs low before releasing them.
type Server struct {
	listenAddr string
	driver     string
	board      board.Board
	sol        *solenoid.Solenoid
	mqttClient *mqtt.Client
	router     *chi.Mux
}

// NewServer creates a new Server instance.
func NewServer(cfg *Config) (*Server, error) {
	b, err := boarddrivers.Create(cfg.Driver, cfg.DriverConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBoardCreate, err)
	}

	sol, err := solenoid.New(b, &cfg.Solenoid)
	if err != nil {
		b.Close() //nolint:errcheck
		return nil, fmt.Errorf("%w: %v", ErrSolenoidCreate, err)
	}

	s := &Server{
		listenAddr: fmt.Sprintf("%s:%d", cfg.ListenAddress, cfg.ListenPort),
		driver:     cfg.Driver,
		board:      b,
		sol:        sol,
		router:     chi.NewRouter(),
	}

	if cfg.MQTTServer != "" {
		client, err := mqtt.NewClient(mqtt.Config{
			ServerURL: cfg.MQTTServer,
			ClientID:  "solenoid-server",
		})
		if err != nil {
			log.Printf("failed to initialize MQTT client: %v", err)
		} else {
			s.mqttClient = client
		}
	}

	s.router.Use(middleware.Logger)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))
	s.router.Post("/position", s.setPositionHandler)
	s.router.Get("/position", s.getPositionHandler)
	s.router.Get("/positions", s.getPositionsHandler)
	s.router.Get("/status", s.statusHandler)

	return s, nil
}

// Routes returns the HTTP handler, for tests.
func (s *Server) Routes() *chi.Mux {
	return s.router
}

// Start runs the server until SIGINT/SIGTERM, then closes the solenoid
// and the board.
func (s *Server) Start() error {
	return httpserver.StartWithGracefulShutdown(s.listenAddr, s.router, s.Close)
}

// Close forces the solenoid off and releases the board. Errors are
// logged, never raised: the shutdown path must always run to
// completion so the solenoid is not left energized.
func (s *Server) Close() {
	if err := s.sol.Close(); err != nil {
		log.Printf("failed to close solenoid: %v", err)
	}
	if err := s.board.Close(); err != nil {
		log.Printf("failed to close board: %v", err)
	}
	if s.mqttClient != nil {
		s.mqttClient.Disconnect(250)
	}
}
