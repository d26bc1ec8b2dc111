package sim

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jayseearr/battleship/internal/game"
)

// Summary aggregates a batch of game results.
type Summary struct {
	Games        int
	Player1      string
	Player2      string
	Player1Wins  int
	Player2Wins  int
	Ties         int
	FirstMover   int // wins by whichever player moved first
	MeanTurns    float64
	MedianTurns  int
	MinTurns     int
	MaxTurns     int
	TotalShots   int
	TotalHits    int
	Elapsed      time.Duration
	GameDuration time.Duration // mean per-game duration
}

// aggregator accumulates results as games finish.
type aggregator struct {
	turns       []int
	p1Wins      int
	p2Wins      int
	ties        int
	firstMover  int
	shots       int
	hits        int
	gameElapsed time.Duration
}

func (a *aggregator) add(res game.Result, player1Name string) {
	a.turns = append(a.turns, res.TurnCount)
	switch {
	case res.Tie:
		a.ties++
	case res.Winner.Name() == player1Name:
		a.p1Wins++
		if res.FirstMove == 1 {
			a.firstMover++
		}
	default:
		a.p2Wins++
		if res.FirstMove == 2 {
			a.firstMover++
		}
	}
	a.shots += res.Player1Stats.Shots + res.Player2Stats.Shots
	a.hits += res.Player1Stats.Hits + res.Player2Stats.Hits
	a.gameElapsed += res.Duration
}

func (a *aggregator) summary(cfg Config, elapsed time.Duration) Summary {
	s := Summary{
		Games:       len(a.turns),
		Player1:     cfg.Player1.Name,
		Player2:     cfg.Player2.Name,
		Player1Wins: a.p1Wins,
		Player2Wins: a.p2Wins,
		Ties:        a.ties,
		FirstMover:  a.firstMover,
		TotalShots:  a.shots,
		TotalHits:   a.hits,
		Elapsed:     elapsed,
	}
	if len(a.turns) == 0 {
		return s
	}
	sorted := append([]int(nil), a.turns...)
	sort.Ints(sorted)
	total := 0
	for _, t := range sorted {
		total += t
	}
	s.MeanTurns = float64(total) / float64(len(sorted))
	s.MedianTurns = sorted[len(sorted)/2]
	s.MinTurns = sorted[0]
	s.MaxTurns = sorted[len(sorted)-1]
	s.GameDuration = a.gameElapsed / time.Duration(len(sorted))
	return s
}

// String renders the summary as a small report.
func (s Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d games: %s %d wins, %s %d wins, %d ties\n",
		s.Games, s.Player1, s.Player1Wins, s.Player2, s.Player2Wins, s.Ties)
	decided := s.Player1Wins + s.Player2Wins
	if decided > 0 {
		fmt.Fprintf(&b, "first mover won %d of %d decided games (%.1f%%)\n",
			s.FirstMover, decided, 100*float64(s.FirstMover)/float64(decided))
	}
	fmt.Fprintf(&b, "turns: mean %.1f, median %d, min %d, max %d\n",
		s.MeanTurns, s.MedianTurns, s.MinTurns, s.MaxTurns)
	if s.TotalShots > 0 {
		fmt.Fprintf(&b, "shots: %d (%.1f%% hit rate)\n",
			s.TotalShots, 100*float64(s.TotalHits)/float64(s.TotalShots))
	}
	fmt.Fprintf(&b, "elapsed: %s (%s per game)", s.Elapsed.Round(time.Millisecond),
		s.GameDuration.Round(time.Microsecond))
	return b.String()
}
