package room

import (
	"errors"
	"strings"
	"sync"
	"time"

	"holdemroom-server/internal/rng"
	"holdemroom-server/pkg/holdem"

	"github.com/coder/quartz"
	"github.com/sirupsen/logrus"
)

// ErrRoomNotFound is returned when a join code does not match a live room
var ErrRoomNotFound = errors.New("room not found")

const codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
const codeLength = 6

// Registry dispatches clients to rooms, creating rooms on demand and reaping
// them when the last client disconnects
type Registry struct {
	opts         holdem.Options
	advanceDelay time.Duration
	clock        quartz.Clock
	random       rng.Generator

	lock  sync.RWMutex
	rooms map[string]*Room

	connect    chan *Client
	disconnect chan *Client
}

// NewRegistry returns a new registry object
func NewRegistry(opts holdem.Options, advanceDelay time.Duration, clock quartz.Clock, random rng.Generator) *Registry {
	return &Registry{
		opts:         opts,
		advanceDelay: advanceDelay,
		clock:        clock,
		random:       random,
		rooms:        make(map[string]*Room),
		connect:      make(chan *Client, 256),
		disconnect:   make(chan *Client, 256),
	}
}

// StartShift starts the registry run loop
func (r *Registry) StartShift() {
	go r.runLoop()
}

func (r *Registry) runLoop() {
	for {
		select {
		case client := <-r.connect:
			logrus.WithField("player", client.String()).Debug("client connected")
			room, ok := r.Room(client.roomCode)
			if !ok {
				logrus.WithField("room", client.roomCode).WithField("type", "exception").Error("room not found")
				client.Send(newErrorResponse("", ErrRoomNotFound))
				continue
			}

			room.AddClient(client)
		case client := <-r.disconnect:
			logrus.WithField("player", client.String()).Debug("client disconnected")
			room, ok := r.Room(client.roomCode)
			if !ok {
				continue
			}

			if room.RemoveClient(client) {
				room.EndShift()

				r.lock.Lock()
				delete(r.rooms, room.code)
				r.lock.Unlock()

				logrus.WithField("room", room.code).Debug("room reaped")
			}
		}
	}
}

// CreateRoom creates a new room with a unique join code and starts its run loop
func (r *Registry) CreateRoom() (*Room, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	var code string
	for {
		code = r.newCode()
		if _, exists := r.rooms[code]; !exists {
			break
		}
	}

	room, err := NewRoom(r, code, r.opts, r.advanceDelay, r.clock)
	if err != nil {
		return nil, err
	}

	room.StartShift()
	r.rooms[code] = room

	logrus.WithField("room", code).Info("room created")
	return room, nil
}

// Room returns the live room for the given join code
func (r *Registry) Room(code string) (*Room, bool) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	room, ok := r.rooms[strings.ToUpper(code)]
	return room, ok
}

// ClientConnected is called when a client connects to the server
func (r *Registry) ClientConnected(client *Client) {
	r.connect <- client
}

// ClientDisconnected is called when a client disconnects from the server
func (r *Registry) ClientDisconnected(client *Client) {
	r.disconnect <- client
}

func (r *Registry) newCode() string {
	var sb strings.Builder
	for i := 0; i < codeLength; i++ {
		sb.WriteByte(codeAlphabet[r.random.Intn(len(codeAlphabet))])
	}

	return sb.String()
}
