package room

import (
	"context"
	"fmt"
	"testing"
	"time"

	"holdemroom-server/internal/rng"
	"holdemroom-server/pkg/holdem"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
)

func TestRoom_AddClient(t *testing.T) {
	mock := quartz.NewMock(t)
	registry := NewRegistry(holdem.DefaultOptions(), time.Second, mock, rng.Crypto{})

	r, err := registry.CreateRoom()
	assert.NoError(t, err)

	c := NewClient(nil, r.Code(), "p1", "Alice")
	c2 := NewClient(nil, r.Code(), "p2", "Bob")

	r.AddClient(c)
	r.AddClient(c2)

	assert.False(t, r.RemoveClient(c))
	assert.True(t, r.RemoveClient(c2))
}

// waitForResponse drains the client's send channel until a response with the
// given key arrives
func waitForResponse(t *testing.T, c *Client, key string) *Response {
	t.Helper()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case msg := <-c.SendChan():
			resp, ok := msg.(*Response)
			if !ok {
				t.Fatalf("unexpected message type: %T", msg)
			}

			if resp.Key == key {
				return resp
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %q response", key)
		}
	}
}

var stateRequests int

// requestState round-trips a state request through the run loop, so it also
// guarantees every previously enqueued run-loop function has completed. The
// unique context distinguishes the reply from broadcast snapshots.
func requestState(t *testing.T, c *Client) *holdem.State {
	t.Helper()

	stateRequests++
	ctx := fmt.Sprintf("state-%d", stateRequests)
	c.ReceivedMessage(&PayloadIn{Action: "state", Context: ctx})

	for {
		resp := waitForResponse(t, c, "state")
		if resp.Context == ctx {
			return resp.Data.(*holdem.State)
		}
	}
}

func TestRoom_playHeadsUpHand(t *testing.T) {
	a := assert.New(t)
	mock := quartz.NewMock(t)
	registry := NewRegistry(holdem.DefaultOptions(), 2*time.Second, mock, rng.Crypto{})

	r, err := registry.CreateRoom()
	a.NoError(err)

	alice := NewClient(nil, r.Code(), "p1", "Alice")
	bob := NewClient(nil, r.Code(), "p2", "Bob")
	r.AddClient(alice)
	r.AddClient(bob)

	// the first to join becomes the host
	joined := waitForResponse(t, alice, "joined").Data.(*joinedData)
	a.True(joined.Host)
	a.Equal(r.Code(), joined.Room)
	joined = waitForResponse(t, bob, "joined").Data.(*joinedData)
	a.False(joined.Host)

	alice.ReceivedMessage(&PayloadIn{
		Action:         "sit",
		AdditionalData: AdditionalData{"seat": float64(0)},
		Context:        "sit-alice",
	})
	resp := waitForResponse(t, alice, "status")
	a.Equal("sit-alice", resp.Context)

	// same seat again fails
	bob.ReceivedMessage(&PayloadIn{
		Action:         "sit",
		AdditionalData: AdditionalData{"seat": float64(0)},
	})
	resp = waitForResponse(t, bob, "error")
	a.Equal(holdem.ErrSeatTaken.Error(), resp.Value)

	bob.ReceivedMessage(&PayloadIn{
		Action:         "sit",
		AdditionalData: AdditionalData{"seat": float64(1)},
	})
	waitForResponse(t, bob, "status")

	// only the host can start the hand
	bob.ReceivedMessage(&PayloadIn{Action: "startHand"})
	resp = waitForResponse(t, bob, "error")
	a.Equal(ErrNotHost.Error(), resp.Value)

	alice.ReceivedMessage(&PayloadIn{Action: "startHand"})
	waitForResponse(t, alice, "status")

	state := requestState(t, alice)
	a.Equal(holdem.StagePreflop, state.Stage)
	a.Equal(30, state.Pot)

	// heads-up: the button posts the big blind, so the small blind acts first
	a.Equal(1, state.ActionAt)

	// both players were dealt hole cards
	private := waitForResponse(t, alice, "hand").Data.(*holdem.PrivateState)
	a.Equal(0, private.Seat)
	a.Equal(2, len(private.Cards))

	// acting out of turn is rejected
	alice.ReceivedMessage(&PayloadIn{Action: "call"})
	resp = waitForResponse(t, alice, "error")
	a.Equal(holdem.ErrNotYourTurn.Error(), resp.Value)

	bob.ReceivedMessage(&PayloadIn{Action: "call"})
	waitForResponse(t, bob, "status")
	alice.ReceivedMessage(&PayloadIn{Action: "check"})
	waitForResponse(t, alice, "status")

	// the round is settled; the flop appears only after the advance delay
	state = requestState(t, alice)
	a.Equal(holdem.StagePreflop, state.Stage)
	a.Equal(40, state.Pot)
	a.Equal(-1, state.ActionAt)

	mock.Advance(2 * time.Second).MustWait(context.Background())

	state = requestState(t, alice)
	a.Equal(holdem.StageFlop, state.Stage)
	a.Equal(3, len(state.Community))
	a.Equal(40, state.Pot)
	a.Equal(1, state.ActionAt)
}

func TestRoom_foldEndsHandWithoutTimer(t *testing.T) {
	a := assert.New(t)
	mock := quartz.NewMock(t)
	registry := NewRegistry(holdem.DefaultOptions(), 2*time.Second, mock, rng.Crypto{})

	r, err := registry.CreateRoom()
	a.NoError(err)

	alice := NewClient(nil, r.Code(), "p1", "Alice")
	bob := NewClient(nil, r.Code(), "p2", "Bob")
	r.AddClient(alice)
	r.AddClient(bob)

	alice.ReceivedMessage(&PayloadIn{Action: "sit", AdditionalData: AdditionalData{"seat": float64(0)}})
	bob.ReceivedMessage(&PayloadIn{Action: "sit", AdditionalData: AdditionalData{"seat": float64(1)}})
	waitForResponse(t, bob, "status")

	alice.ReceivedMessage(&PayloadIn{Action: "startHand"})
	waitForResponse(t, alice, "status")

	// the small blind folds; the hand settles immediately
	bob.ReceivedMessage(&PayloadIn{Action: "fold"})
	waitForResponse(t, bob, "status")

	state := requestState(t, alice)
	a.Equal(holdem.StageLobby, state.Stage)
	a.NotNil(state.LastResult)
	a.Equal(holdem.ReasonSinglePlayer, state.LastResult.Reason)
	a.Equal(1010, state.Seats[0].Chips)
	a.Equal(990, state.Seats[1].Chips)
}

func TestRoom_hostReassignedOnDisconnect(t *testing.T) {
	a := assert.New(t)
	mock := quartz.NewMock(t)
	registry := NewRegistry(holdem.DefaultOptions(), time.Second, mock, rng.Crypto{})

	r, err := registry.CreateRoom()
	a.NoError(err)

	alice := NewClient(nil, r.Code(), "p1", "Alice")
	bob := NewClient(nil, r.Code(), "p2", "Bob")
	r.AddClient(alice)
	r.AddClient(bob)

	a.True(r.isHost(alice))
	a.False(r.isHost(bob))

	r.RemoveClient(alice)
	a.True(r.isHost(bob))
}

func TestRoom_unknownMessageIsIgnored(t *testing.T) {
	mock := quartz.NewMock(t)
	registry := NewRegistry(holdem.DefaultOptions(), time.Second, mock, rng.Crypto{})

	r, err := registry.CreateRoom()
	assert.NoError(t, err)

	c := NewClient(nil, r.Code(), "p1", "Alice")
	r.AddClient(c)

	c.ReceivedMessage(&PayloadIn{Action: "launchMissiles"})
	requestState(t, c)
}
