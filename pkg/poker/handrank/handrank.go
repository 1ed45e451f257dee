// Package handrank ranks poker hands of five to seven cards.
//
// The engine only depends on the Ranker interface, so the evaluation strategy
// is swappable and independently testable.
package handrank

import (
	"fmt"

	"holdemroom-server/pkg/deck"
)

// Strength is an opaque, totally ordered descriptor of hand strength.
// A greater value always beats a lesser one; equal values tie.
type Strength int

// Category returns the hand category encoded in the strength
func (s Strength) Category() Category {
	return Category(s >> (4 * 5))
}

// Ranker produces a Strength for a set of 5 to 7 cards
type Ranker interface {
	Rank(cards deck.Hand) Strength
}

// Category is a poker hand category, i.e., royal flush
type Category int

// constants for Category
const (
	HighCard Category = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// String returns the string representation of a category
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High card"
	case OnePair:
		return "Pair"
	case TwoPair:
		return "Two pair"
	case ThreeOfAKind:
		return "Three of a kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full house"
	case FourOfAKind:
		return "Four of a kind"
	case StraightFlush:
		return "Straight flush"
	case RoyalFlush:
		return "Royal flush"
	default:
		panic(fmt.Sprintf("unknown category: %d", c))
	}
}

// Winners returns the seats holding a maximal strength, ties included.
// The returned seat indexes are in ascending order.
func Winners(strengths map[int]Strength) []int {
	best := Strength(-1)
	for _, s := range strengths {
		if s > best {
			best = s
		}
	}

	winners := make([]int, 0, len(strengths))
	for seat, s := range strengths {
		if s == best {
			winners = append(winners, seat)
		}
	}

	sortInts(winners)
	return winners
}

func sortInts(s []int) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j] < s[j-1]; j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}
