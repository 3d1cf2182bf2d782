package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/biotinker/solenoid-ac/internal/mqtt"
	"github.com/biotinker/solenoid-ac/internal/solenoid"
)

type positionRequest struct {
	Position *int `json:"position"`
}

type jsonResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type positionData struct {
	Position int `json:"position"`
}

type statusData struct {
	Position  int    `json:"position"`
	Positions int    `json:"positions"`
	Variant   string `json:"variant"`
	Driver    string `json:"driver"`
}

func (s *Server) sendJSONResponse(w http.ResponseWriter, httpCode int, status string, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpCode)
	json.NewEncoder(w).Encode(jsonResponse{ //nolint:errcheck
		Status:  status,
		Message: message,
		Data:    data,
	})
}

func (s *Server) setPositionHandler(w http.ResponseWriter, r *http.Request) {
	var req positionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendJSONResponse(w, http.StatusBadRequest, "error", "Failed to decode request body", nil)
		return
	}
	if req.Position == nil {
		s.sendJSONResponse(w, http.StatusBadRequest, "error", "Missing 'position' field", nil)
		return
	}

	if err := s.sol.SetPosition(*req.Position); err != nil {
		log.Printf("failed to set position to %d: %v", *req.Position, err)
		code := http.StatusInternalServerError
		if errors.Is(err, solenoid.ErrInvalidPosition) {
			code = http.StatusBadRequest
		}
		s.sendJSONResponse(w, code, "error", err.Error(), nil)
		return
	}

	s.publishPositionEvent(*req.Position)
	s.sendJSONResponse(w, http.StatusOK, "ok", "", positionData{Position: s.sol.GetPosition()})
}

func (s *Server) getPositionHandler(w http.ResponseWriter, r *http.Request) {
	s.sendJSONResponse(w, http.StatusOK, "ok", "", positionData{Position: s.sol.GetPosition()})
}

func (s *Server) getPositionsHandler(w http.ResponseWriter, r *http.Request) {
	s.sendJSONResponse(w, http.StatusOK, "ok", "", map[string]int{"positions": s.sol.GetNumberOfPositions()})
}

func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	s.sendJSONResponse(w, http.StatusOK, "ok", "", statusData{
		Position:  s.sol.GetPosition(),
		Positions: s.sol.GetNumberOfPositions(),
		Variant:   s.sol.Variant().String(),
		Driver:    s.driver,
	})
}

func (s *Server) publishPositionEvent(position int) {
	if s.mqttClient == nil || !s.mqttClient.IsConnected() {
		return
	}

	event := mqtt.PositionEvent{
		Position:  position,
		Variant:   s.sol.Variant().String(),
		Timestamp: time.Now().Format(time.RFC3339),
	}
	if err := s.mqttClient.Publish(mqtt.PositionTopic, 0, false, event); err != nil {
		log.Printf("failed to publish position event: %v", err)
	}
}
