// Package mux provides the HTTP and websocket surface of the server
package mux

import (
	"net/http"
	"time"

	"holdemroom-server/internal/config"
	"holdemroom-server/internal/rng"
	"holdemroom-server/pkg/holdem"
	"holdemroom-server/pkg/room"

	"github.com/coder/quartz"
	gmux "github.com/gorilla/mux"
)

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version  string
	registry *room.Registry
}

// NewMux returns a new HTTP mux
func NewMux(version string) *Mux {
	cfg := config.Instance()

	opts := holdem.Options{
		StartingChips:   cfg.Game.StartingChips,
		SmallBlind:      cfg.Game.SmallBlind,
		BigBlind:        cfg.Game.BigBlind,
		BlindInterval:   cfg.Game.BlindInterval,
		BlindMultiplier: cfg.Game.BlindMultiplier,
	}

	advanceDelay := time.Duration(cfg.AdvanceDelay) * time.Second
	registry := room.NewRegistry(opts, advanceDelay, quartz.NewReal(), rng.Crypto{})
	registry.StartShift()

	this := &Mux{
		Router:   gmux.NewRouter(),
		version:  version,
		registry: registry,
	}

	r := this.Router
	r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
	r.Methods(http.MethodPost).Path("/room").Handler(this.postRoom())
	r.Methods(http.MethodGet).Path("/room/{code:[A-Za-z0-9]{6}}/ws").Handler(this.getRoomCodeWS())

	return this
}
