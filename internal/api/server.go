// Package api provides the HTTP observation surface over the engine.
// GET endpoints are public read-only snapshots; the speed endpoint
// requires a bearer token. The server only ever reads committed state
// through the engine's synchronized snapshot methods.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/talgya/wildgrid/internal/events"
	"github.com/talgya/wildgrid/internal/sim"
)

// Server serves the simulation state over HTTP.
type Server struct {
	Engine   *sim.Engine
	Runner   *sim.Runner
	Port     int
	AdminKey string // Bearer token for the speed endpoint. Empty = disabled.
}

// Start begins serving in a goroutine.
func (s *Server) Start() {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/grid", s.handleGrid)
	mux.HandleFunc("/api/v1/stats", s.handleStats)
	mux.HandleFunc("/api/v1/events", s.handleEvents)
	mux.HandleFunc("/api/v1/history", s.handleHistory)
	mux.HandleFunc("/api/v1/speed", s.adminOnly(s.handleSpeed))

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr, "admin_auth", s.AdminKey != "")

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

func (s *Server) checkBearerToken(r *http.Request) bool {
	auth := r.Header.Get("Authorization")
	return strings.TrimPrefix(auth, "Bearer ") == s.AdminKey && auth != ""
}

// adminOnly wraps a handler to require bearer token auth on POST.
func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			if s.AdminKey == "" {
				http.Error(w, "admin endpoints disabled", http.StatusForbidden)
				return
			}
			if !s.checkBearerToken(r) {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
		}
		next(w, r)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	stats := s.Engine.Stats()
	extTurn, extinct := s.Engine.ExtinctionTurn()

	status := map[string]any{
		"turn":       s.Engine.Turn(),
		"ended":      s.Engine.Ended(),
		"extinct":    extinct,
		"winner":     stats.Winner(),
		"predators":  stats.Predators.Total,
		"prey":       stats.Prey.Total,
		"scavengers": stats.Scavengers.Total,
		"corpses":    stats.Corpses,
	}
	if extinct {
		status["extinction_turn"] = extTurn
	}
	if s.Runner != nil {
		status["speed"] = s.Runner.Speed()
	}
	writeJSON(w, status)
}

// handleGrid returns the cell matrix as kind names, row by row.
func (s *Server) handleGrid(w http.ResponseWriter, r *http.Request) {
	snapshot := s.Engine.Grid()
	rows := make([][]string, len(snapshot))
	for i, row := range snapshot {
		rows[i] = make([]string, len(row))
		for j, k := range row {
			rows[i][j] = k.String()
		}
	}
	writeJSON(w, map[string]any{
		"size":  len(snapshot),
		"cells": rows,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Engine.Stats())
}

// handleEvents returns retained events, optionally filtered with ?type=
// and truncated with ?limit=.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	var entries []events.Event
	if t := r.URL.Query().Get("type"); t != "" {
		entries = s.Engine.EventsByType(events.Type(t))
	} else {
		entries = s.Engine.Events()
	}

	if limStr := r.URL.Query().Get("limit"); limStr != "" {
		if lim, err := strconv.Atoi(limStr); err == nil && lim > 0 && lim < len(entries) {
			entries = entries[len(entries)-lim:]
		}
	}
	writeJSON(w, entries)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Engine.History())
}

func (s *Server) handleSpeed(w http.ResponseWriter, r *http.Request) {
	if s.Runner == nil {
		http.Error(w, "no runner attached", http.StatusNotFound)
		return
	}
	if r.Method == http.MethodPost {
		var req struct {
			Speed float64 `json:"speed"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		s.Runner.SetSpeed(req.Speed)
	}
	writeJSON(w, map[string]float64{"speed": s.Runner.Speed()})
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
