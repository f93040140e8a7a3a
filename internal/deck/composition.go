package deck

// RankCounts is a compact composition vector: the number of undrawn cards
// of each rank, indexed by rank-2 (Two..Ace maps to 0..12). It is the
// representation the probability engine recurses over — small enough to
// copy by value at every recursion step instead of hashing a card slice.
type RankCounts [13]int

func rankIndex(r Rank) int {
	return int(r) - int(Two)
}

// Count returns the number of undrawn cards of the given rank.
func (rc RankCounts) Count(r Rank) int {
	return rc[rankIndex(r)]
}

// Total returns the total number of undrawn cards.
func (rc RankCounts) Total() int {
	n := 0
	for _, c := range rc {
		n += c
	}
	return n
}

// Remove returns a copy of rc with one card of rank r removed. It is a
// no-op (returns rc unchanged) if none remain, which callers must guard
// against via Count before recursing.
func (rc RankCounts) Remove(r Rank) RankCounts {
	out := rc
	idx := rankIndex(r)
	if out[idx] > 0 {
		out[idx]--
	}
	return out
}

// NewRankCounts builds a full composition for numDecks decks.
func NewRankCounts(numDecks int) RankCounts {
	var rc RankCounts
	for i := range rc {
		rc[i] = 4 * numDecks
	}
	return rc
}
