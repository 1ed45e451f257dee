// Package sidepot partitions per-seat contributions into a main pot and side pots.
//
// Side pots arise when unequal all-in stacks create partial eligibility: a seat
// can only contest chips it was able to match. Pots are derived state, recomputed
// fresh from the per-seat totals at settlement time.
package sidepot

import "sort"

// Pot is one layer of the overall pot along with the seats eligible to win it
type Pot struct {
	Amount   int   `json:"amount"`
	Eligible []int `json:"eligible"`
}

// Pots is an ordered list of pots, from the layer everyone could contest
// down to the layer only the deepest stack(s) could contest
type Pots []*Pot

// Total returns the combined total of all pots
func (p Pots) Total() int {
	total := 0
	for _, pot := range p {
		total += pot.Amount
	}

	return total
}

// Partition converts per-seat total contributions into an ordered list of pots.
//
// Each iteration takes the minimum positive remaining contribution; that amount
// times the number of seats still contributing forms one pot layer whose
// eligible set is exactly those seats. All arithmetic is in whole chips, so
// the sum of all pot amounts always equals the sum of the contributions.
func Partition(contributions map[int]int) Pots {
	remaining := make(map[int]int)
	for seat, amount := range contributions {
		if amount > 0 {
			remaining[seat] = amount
		}
	}

	pots := make(Pots, 0, 1)
	for len(remaining) > 0 {
		low := 0
		for _, amount := range remaining {
			if low == 0 || amount < low {
				low = amount
			}
		}

		eligible := make([]int, 0, len(remaining))
		for seat := range remaining {
			eligible = append(eligible, seat)
		}
		sort.Ints(eligible)

		pots = append(pots, &Pot{
			Amount:   low * len(eligible),
			Eligible: eligible,
		})

		for seat := range remaining {
			remaining[seat] -= low
			if remaining[seat] == 0 {
				delete(remaining, seat)
			}
		}
	}

	return pots
}
