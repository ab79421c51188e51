package overlap

import "strings"

// Score compares first against second.
//
// Cases are checked in order:
//  1. second is strictly shorter than first and occurs inside it: PerfectScore,
//     and the combined fragment is first unchanged.
//  2. the leftmost offset in first where second's leading byte appears and the
//     bytes agree up to the end of either fragment: the score is the overlap
//     length. If second ends before first does, combined is first; otherwise
//     combined is first's head followed by all of second.
//  3. otherwise NoMatch.
//
// The scan stops at the leftmost viable offset, so a longer overlap further
// right is never considered. An empty second fragment never overlaps; it can
// only be absorbed through containment.
func Score(first, second string) Match {
	if len(second) < len(first) && strings.Contains(first, second) {
		return Match{Score: PerfectScore, Combined: first}
	}
	if second == "" {
		return NoMatch
	}

	lead := second[0]
	for start := 0; start < len(first); start++ {
		if first[start] != lead {
			continue
		}

		tail := len(first) - start
		if len(second) < tail {
			if first[start:start+len(second)] == second {
				return Match{
					Score:        len(second),
					SecondOffset: start,
					Combined:     first,
				}
			}
		} else if first[start:] == second[:tail] {
			return Match{
				Score:        tail,
				SecondOffset: start,
				Combined:     first[:start] + second,
			}
		}
	}
	return NoMatch
}

// scoreAt scores parts[i] against parts[j] and records the positions.
func scoreAt(parts []string, i, j int) Match {
	m := Score(parts[i], parts[j])
	if m.Score == 0 {
		return NoMatch
	}
	m.FirstIndex = i
	m.SecondIndex = j
	return m
}

// bestInRow returns the best match among the pairs (i, j) and (j, i) for
// every j > i, visited in that order. Ties keep the earliest match.
func bestInRow(parts []string, i int) Match {
	best := NoMatch
	for j := i + 1; j < len(parts); j++ {
		if m := scoreAt(parts, i, j); m.Score > best.Score {
			best = m
		}
		if m := scoreAt(parts, j, i); m.Score > best.Score {
			best = m
		}
	}
	return best
}

// bestMatch scans every ordered pair of parts and returns the first match
// with the greatest positive score, or NoMatch.
func bestMatch(parts []string) Match {
	best := NoMatch
	for i := 0; i < len(parts)-1; i++ {
		if m := bestInRow(parts, i); m.Score > best.Score {
			best = m
		}
	}
	return best
}

// fallback concatenates every part in its current order.
func fallback(parts []string) Match {
	return Match{
		FirstIndex:  0,
		SecondIndex: 1,
		Score:       FallbackScore,
		Combined:    strings.Join(parts, ""),
	}
}
