package handrank

import (
	"fmt"
	"sort"

	"holdemroom-server/pkg/deck"
)

// Evaluator is the built-in Ranker. It scores the best five-card hand that can
// be assembled from the cards provided.
type Evaluator struct{}

// Rank implements Ranker
func (Evaluator) Rank(cards deck.Hand) Strength {
	n := len(cards)
	if n < 5 || n > 7 {
		panic(fmt.Sprintf("cannot rank %d cards", n))
	}

	best := Strength(0)
	forEachChoiceOfFive(n, func(indexes [5]int) {
		var hand [5]*deck.Card
		for i, index := range indexes {
			hand[i] = cards[index]
		}

		if s := scoreFive(hand); s > best {
			best = s
		}
	})

	return best
}

// forEachChoiceOfFive visits every 5-element subset of [0, n)
func forEachChoiceOfFive(n int, visit func([5]int)) {
	var indexes [5]int
	for a := 0; a < n-4; a++ {
		for b := a + 1; b < n-3; b++ {
			for c := b + 1; c < n-2; c++ {
				for d := c + 1; d < n-1; d++ {
					for e := d + 1; e < n; e++ {
						indexes[0], indexes[1], indexes[2], indexes[3], indexes[4] = a, b, c, d, e
						visit(indexes)
					}
				}
			}
		}
	}
}

// scoreFive scores exactly five cards. The strength packs the category above
// five rank nibbles, ordered most significant tiebreak first.
func scoreFive(hand [5]*deck.Card) Strength {
	ranks := make([]int, 5)
	flush := true
	for i, card := range hand {
		ranks[i] = card.Rank
		if card.Suit != hand[0].Suit {
			flush = false
		}
	}

	sort.Sort(sort.Reverse(sort.IntSlice(ranks)))

	straightHigh := straightHighCard(ranks)

	if flush && straightHigh > 0 {
		if straightHigh == deck.Ace {
			return pack(RoyalFlush, straightHigh)
		}

		return pack(StraightFlush, straightHigh)
	}

	// group ranks by count, then by rank, both descending. The resulting order
	// is exactly the tiebreak order for every pairing-based category.
	counts := make(map[int]int)
	for _, rank := range ranks {
		counts[rank]++
	}

	grouped := make([]int, 0, 5)
	for _, rank := range ranks {
		grouped = append(grouped, rank)
	}
	sort.SliceStable(grouped, func(i, j int) bool {
		if counts[grouped[i]] != counts[grouped[j]] {
			return counts[grouped[i]] > counts[grouped[j]]
		}

		return grouped[i] > grouped[j]
	})

	distinct := dedupe(grouped)

	switch len(counts) {
	case 2:
		if counts[grouped[0]] == 4 {
			return pack(FourOfAKind, distinct...)
		}

		return pack(FullHouse, distinct...)
	case 3:
		if counts[grouped[0]] == 3 {
			return pack(ThreeOfAKind, distinct...)
		}

		return pack(TwoPair, distinct...)
	case 4:
		return pack(OnePair, distinct...)
	}

	if flush {
		return pack(Flush, ranks...)
	}

	if straightHigh > 0 {
		return pack(Straight, straightHigh)
	}

	return pack(HighCard, ranks...)
}

// straightHighCard returns the high card of a straight, or 0 if the five
// distinct ranks (descending) are not consecutive. The wheel (A-5-4-3-2)
// counts as a five-high straight.
func straightHighCard(ranks []int) int {
	for i := 1; i < 5; i++ {
		if ranks[i-1] == ranks[i] {
			return 0
		}
	}

	if ranks[0]-ranks[4] == 4 {
		return ranks[0]
	}

	if ranks[0] == deck.Ace && ranks[1] == 5 && ranks[1]-ranks[4] == 3 {
		return 5
	}

	return 0
}

func dedupe(sorted []int) []int {
	out := make([]int, 0, len(sorted))
	for i, v := range sorted {
		if i == 0 || sorted[i-1] != v {
			out = append(out, v)
		}
	}

	return out
}

// pack encodes the category and up to five tiebreak ranks (most significant
// first) into a single comparable value. Ranks fit in a nibble (2–14).
func pack(category Category, tiebreaks ...int) Strength {
	s := Strength(category)
	for i := 0; i < 5; i++ {
		s <<= 4
		if i < len(tiebreaks) {
			s |= Strength(tiebreaks[i])
		}
	}

	return s
}
