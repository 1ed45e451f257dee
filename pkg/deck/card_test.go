package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCard_String(t *testing.T) {
	assert.Equal(t, "A♠", CardFromString("14s").String())
	assert.Equal(t, "J♡", CardFromString("11h").String())
	assert.Equal(t, "2♣", CardFromString("2c").String())
	assert.Equal(t, "10♢", CardFromString("10d").String())
}

func TestCardFromString(t *testing.T) {
	a := assert.New(t)

	card := CardFromString("5h")
	a.Equal(5, card.Rank)
	a.Equal(Hearts, card.Suit)

	a.Nil(CardFromString(""))
	a.Panics(func() {
		CardFromString("99x")
	})
}

func TestCardsToString(t *testing.T) {
	cards := CardsFromString("2c,13d,14s")
	assert.Equal(t, "2c,13d,14s", CardsToString(cards))
	assert.Equal(t, 3, len(cards))
}

func TestCard_AceLowRank(t *testing.T) {
	assert.Equal(t, 1, CardFromString("14c").AceLowRank())
	assert.Equal(t, 13, CardFromString("13c").AceLowRank())
}

func TestHand(t *testing.T) {
	a := assert.New(t)

	h := make(Hand, 0)
	h.AddCard(CardFromString("2c"))
	h.AddCard(CardFromString("3d"))

	a.True(h.HasCard(CardFromString("2c")))
	a.False(h.HasCard(CardFromString("2d")))
	a.Equal("2c,3d", h.String())

	clone := h.Clone()
	clone[0] = CardFromString("14s")
	a.Equal("2c,3d", h.String())
}
