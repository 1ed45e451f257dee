// Package room connects websocket clients to hold'em tables. Each room owns
// one table and a run loop that serializes every intent, so the game itself
// never needs locks.
package room

import (
	"errors"
	"sync"
	"time"

	"holdemroom-server/pkg/holdem"
	"holdemroom-server/pkg/poker/action"

	"github.com/coder/quartz"
	"github.com/sirupsen/logrus"
)

// Room hosts a single table and its connected clients
type Room struct {
	code         string
	registry     *Registry
	log          logrus.FieldLogger
	game         *holdem.Game
	clock        quartz.Clock
	advanceDelay time.Duration

	clients map[*Client]bool
	// hostID is the player allowed to start hands; the first to join, with
	// the role handed off when the host disconnects
	hostID string
	lock   sync.RWMutex

	// advancePending is true while a deferred stage advance is on the clock.
	// Run-loop access only.
	advancePending bool

	execInRunLoop chan func()
	close         chan bool
}

// ErrNotHost is returned when a non-host tries to start a hand
var ErrNotHost = errors.New("only the host can start a hand")

// NewRoom returns a new room with a fresh table.
// This is called from a blocking state, so it needs to return quickly.
func NewRoom(registry *Registry, code string, opts holdem.Options, advanceDelay time.Duration, clock quartz.Clock) (*Room, error) {
	log := logrus.WithField("room", code)

	game, err := holdem.NewGame(log, nil, opts)
	if err != nil {
		return nil, err
	}

	return &Room{
		code:          code,
		registry:      registry,
		log:           log,
		game:          game,
		clock:         clock,
		advanceDelay:  advanceDelay,
		clients:       make(map[*Client]bool),
		execInRunLoop: make(chan func(), 256),
		close:         make(chan bool),
	}, nil
}

// Code returns the room's join code
func (r *Room) Code() string {
	return r.code
}

// Clients will return a slice of connected (at the time) clients
func (r *Room) Clients() []*Client {
	r.lock.RLock()
	defer r.lock.RUnlock()

	clients := make([]*Client, 0, len(r.clients))
	for client := range r.clients {
		clients = append(clients, client)
	}

	return clients
}

// StartShift starts the run loop
func (r *Room) StartShift() {
	go r.runLoop()
}

func (r *Room) runLoop() {
	r.log.Debug("creating room run loop")
	for {
		select {
		case fn := <-r.execInRunLoop:
			fn()
		case <-r.close:
			r.log.Debug("terminating room run loop")
			return
		}
	}
}

type joinedData struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Room     string `json:"room"`
	Host     bool   `json:"host"`
}

// AddClient adds a client.
// This method must return quickly.
func (r *Room) AddClient(client *Client) {
	r.lock.Lock()
	client.room = r
	r.clients[client] = true
	if r.hostID == "" {
		r.hostID = client.PlayerID
	}
	host := r.hostID == client.PlayerID
	r.lock.Unlock()

	r.execInRunLoop <- func() {
		client.Send(&Response{Key: "joined", Data: &joinedData{
			PlayerID: client.PlayerID,
			Name:     client.Name,
			Room:     r.code,
			Host:     host,
		}})

		r.broadcastState()
	}
}

// RemoveClient removes a client and vacates their seat.
// This method must return quickly.
func (r *Room) RemoveClient(client *Client) (lastClient bool) {
	r.lock.Lock()
	delete(r.clients, client)
	nClients := len(r.clients)
	if r.hostID == client.PlayerID {
		r.hostID = ""
		for remaining := range r.clients {
			r.hostID = remaining.PlayerID
			break
		}
	}
	r.lock.Unlock()

	r.execInRunLoop <- func() {
		if err := r.game.Leave(client.PlayerID); err != nil && !errors.Is(err, holdem.ErrNotSeated) {
			r.log.WithError(err).Error("could not vacate seat")
		}

		r.broadcastState()
		r.maybeScheduleAdvance()
	}

	return nClients == 0
}

// EndShift is called when the room is no longer needed
func (r *Room) EndShift() {
	close(r.close)
}

// ReceivedMessage is called when a client sends a message to the server
func (r *Room) ReceivedMessage(c *Client, msg *PayloadIn) {
	switch msg.Action {
	case "sit":
		r.execInRunLoop <- func() {
			seat, ok := msg.AdditionalData.GetInt("seat")
			if !ok {
				c.Send(newErrorResponse(msg.Context, errors.New("could not obtain seat")))
				return
			}

			if err := r.game.Sit(seat, c.PlayerID, c.Name); err != nil {
				c.Send(newErrorResponse(msg.Context, err))
				return
			}

			c.Send(OK(msg.Context))
			r.broadcastState()
		}
	case "stand":
		r.execInRunLoop <- func() {
			if err := r.game.Leave(c.PlayerID); err != nil {
				c.Send(newErrorResponse(msg.Context, err))
				return
			}

			c.Send(OK(msg.Context))
			r.broadcastState()
			r.maybeScheduleAdvance()
		}
	case "startHand":
		r.execInRunLoop <- func() {
			if !r.isHost(c) {
				c.Send(newErrorResponse(msg.Context, ErrNotHost))
				return
			}

			if err := r.game.StartHand(); err != nil {
				c.Send(newErrorResponse(msg.Context, err))
				return
			}

			c.Send(OK(msg.Context))
			r.broadcastState()
			r.maybeScheduleAdvance()
		}
	case "state":
		r.execInRunLoop <- func() {
			c.Send(&Response{Key: "state", Data: r.game.State(), Context: msg.Context})
			if private := r.game.PrivateState(c.PlayerID); private != nil {
				c.Send(&Response{Key: "hand", Data: private, Context: msg.Context})
			}
		}
	default:
		act, err := action.FromString(msg.Action)
		if err != nil {
			r.log.WithField("msg", msg).Warn("unknown message")
			return
		}

		r.execInRunLoop <- func() {
			amount, _ := msg.AdditionalData.GetInt("amount")

			if err := r.game.Action(c.PlayerID, act, amount); err != nil {
				c.Send(newErrorResponse(msg.Context, err))
				return
			}

			c.Send(OK(msg.Context))
			r.broadcastState()
			r.maybeScheduleAdvance()
		}
	}
}

func (r *Room) isHost(c *Client) bool {
	r.lock.RLock()
	defer r.lock.RUnlock()

	return r.hostID == c.PlayerID
}

// broadcastState sends the public snapshot to every client and each player
// their own hole cards.
// NOTE: must only be called from the run loop.
func (r *Room) broadcastState() {
	state := r.game.State()
	for _, client := range r.Clients() {
		client.Send(&Response{Key: "state", Data: state})
		if private := r.game.PrivateState(client.PlayerID); private != nil {
			client.Send(&Response{Key: "hand", Data: private})
		}
	}
}

// maybeScheduleAdvance arms the stage-advance timer when the table has a
// deferred transition waiting. The pause gives clients time to show the end
// of the betting round before the next street appears.
// NOTE: must only be called from the run loop.
func (r *Room) maybeScheduleAdvance() {
	if !r.game.NeedsAdvance() || r.advancePending {
		return
	}

	r.advancePending = true
	r.clock.AfterFunc(r.advanceDelay, func() {
		fn := func() {
			r.advancePending = false
			r.game.Advance()
			r.broadcastState()
			r.maybeScheduleAdvance()
		}

		select {
		case r.execInRunLoop <- fn:
		case <-r.close:
		}
	})
}
