package providers

import (
	"regexp"
	"strconv"
	"strings"
)

// setScore matches "7-6", "6-7(5)" or "7-6(10)".
var setScore = regexp.MustCompile(`^(\d{1,2})-(\d{1,2})(?:\(\d+\))?$`)

// SetLine is the games of one set from the match winner's side.
type SetLine struct {
	Winner int
	Loser  int
}

// ParseSets splits a winner-first score ("7-6(4) 3-6 6-3 RET") into sets.
// Tokens that are not set scores are ignored.
func ParseSets(score string) []SetLine {
	var sets []SetLine
	for _, tok := range strings.Fields(score) {
		m := setScore.FindStringSubmatch(tok)
		if m == nil {
			continue
		}
		a, _ := strconv.Atoi(m[1])
		b, _ := strconv.Atoi(m[2])
		sets = append(sets, SetLine{Winner: a, Loser: b})
	}
	return sets
}

// complete reports whether the set was played to a finish.
func (s SetLine) complete() bool {
	hi, lo := s.Winner, s.Loser
	if lo > hi {
		hi, lo = lo, hi
	}
	return (hi >= 6 && hi-lo >= 2) || (hi == 7 && lo == 6)
}

func (s SetLine) tiebreak() bool {
	return (s.Winner == 7 && s.Loser == 6) || (s.Winner == 6 && s.Loser == 7)
}

// ParseScore converts a winner-first score into the tracked player's games
// and sets. won says whether the tracked player won the match; for a loss
// the figures are flipped. Unfinished sets count toward games only.
func ParseScore(score string, won bool) (gamesWon, gamesLost, setsWon, setsLost int) {
	for _, s := range ParseSets(score) {
		gamesWon += s.Winner
		gamesLost += s.Loser
		if !s.complete() {
			continue
		}
		if s.Winner > s.Loser {
			setsWon++
		} else {
			setsLost++
		}
	}
	if !won {
		gamesWon, gamesLost = gamesLost, gamesWon
		setsWon, setsLost = setsLost, setsWon
	}
	return gamesWon, gamesLost, setsWon, setsLost
}

// CountTiebreaks counts 7-6 sets won and lost by the tracked player.
func CountTiebreaks(score string, won bool) (tiebreaksWon, tiebreaksLost int) {
	for _, s := range ParseSets(score) {
		if !s.tiebreak() {
			continue
		}
		if s.Winner > s.Loser {
			tiebreaksWon++
		} else {
			tiebreaksLost++
		}
	}
	if !won {
		tiebreaksWon, tiebreaksLost = tiebreaksLost, tiebreaksWon
	}
	return tiebreaksWon, tiebreaksLost
}
