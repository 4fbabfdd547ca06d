// Package scores keeps the high-score table for the lifetime of the process.
// One Board is shared by every local or SSH session, so it is safe for
// concurrent use. Nothing is written to disk.
package scores

import (
	"sort"
	"sync"
	"time"
)

// DefaultKeep is how many entries a board retains per mode.
const DefaultKeep = 100

// ScoreEntry represents a single high score record.
type ScoreEntry struct {
	ID        int64
	GameID    string
	Player    string
	Score     int
	CreatedAt time.Time
}

// DuelResult is the outcome of a two-player split-screen round.
type DuelResult struct {
	ID        int64
	GameID    string
	Player1   string
	Player2   string
	Score1    int
	Score2    int
	Duration  time.Duration
	CreatedAt time.Time
}

// Winner returns 1 or 2 for the higher score, 0 for a draw.
func (d DuelResult) Winner() int {
	switch {
	case d.Score1 > d.Score2:
		return 1
	case d.Score2 > d.Score1:
		return 2
	default:
		return 0
	}
}

// GameStats contains aggregated statistics for a game mode.
type GameStats struct {
	GameID     string
	GamesCount int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	LastPlayed time.Time
}

// Board is an in-memory score table.
type Board struct {
	mu     sync.RWMutex
	keep   int
	nextID int64
	scores map[string][]ScoreEntry // per game, best first, at most keep entries
	stats  map[string]*GameStats
	duels  []DuelResult // newest last, at most keep entries
	now    func() time.Time
}

// NewBoard creates an empty board retaining keep entries per mode.
func NewBoard(keep int) *Board {
	if keep <= 0 {
		keep = DefaultKeep
	}
	return &Board{
		keep:   keep,
		scores: make(map[string][]ScoreEntry),
		stats:  make(map[string]*GameStats),
		now:    time.Now,
	}
}

// SaveScore records a new score for the given mode.
// Returns the ID of the record and its 1-based rank, or rank 0 when the score
// did not make the retained table.
func (b *Board) SaveScore(gameID, player string, score int) (id int64, rank int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	e := ScoreEntry{
		ID:        b.nextID,
		GameID:    gameID,
		Player:    player,
		Score:     score,
		CreatedAt: b.now(),
	}

	st, ok := b.stats[gameID]
	if !ok {
		st = &GameStats{GameID: gameID}
		b.stats[gameID] = st
	}
	st.GamesCount++
	st.TotalScore += int64(score)
	st.AvgScore = float64(st.TotalScore) / float64(st.GamesCount)
	if st.GamesCount == 1 || score > st.HighScore {
		st.HighScore = score
	}
	st.LastPlayed = e.CreatedAt

	// Ties rank below earlier entries
	list := b.scores[gameID]
	pos := sort.Search(len(list), func(i int) bool { return list[i].Score < score })
	if pos >= b.keep {
		return e.ID, 0
	}
	list = append(list, ScoreEntry{})
	copy(list[pos+1:], list[pos:])
	list[pos] = e
	if len(list) > b.keep {
		list = list[:b.keep]
	}
	b.scores[gameID] = list

	return e.ID, pos + 1
}

// TopScores returns up to limit best scores for the mode, best first.
func (b *Board) TopScores(gameID string, limit int) []ScoreEntry {
	if limit <= 0 {
		limit = 10
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	list := b.scores[gameID]
	if len(list) > limit {
		list = list[:limit]
	}
	out := make([]ScoreEntry, len(list))
	copy(out, list)
	return out
}

// HighScore returns the highest score for the mode.
// Returns 0 if no scores exist.
func (b *Board) HighScore(gameID string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if st, ok := b.stats[gameID]; ok {
		return st.HighScore
	}
	return 0
}

// ClearScores deletes all scores and statistics for the mode.
func (b *Board) ClearScores(gameID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.scores, gameID)
	delete(b.stats, gameID)
}

// SaveDuel records the result of a split-screen round.
func (b *Board) SaveDuel(result DuelResult) int64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	result.ID = b.nextID
	if result.CreatedAt.IsZero() {
		result.CreatedAt = b.now()
	}
	b.duels = append(b.duels, result)
	if len(b.duels) > b.keep {
		b.duels = b.duels[len(b.duels)-b.keep:]
	}
	return result.ID
}

// RecentDuels returns up to limit duel results, newest first.
func (b *Board) RecentDuels(limit int) []DuelResult {
	if limit <= 0 {
		limit = 10
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	n := min(limit, len(b.duels))
	out := make([]DuelResult, 0, n)
	for i := len(b.duels) - 1; i >= len(b.duels)-n; i-- {
		out = append(out, b.duels[i])
	}
	return out
}

// GetGameStats returns aggregated statistics for a mode.
// A mode that was never played yields zero stats.
func (b *Board) GetGameStats(gameID string) GameStats {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if st, ok := b.stats[gameID]; ok {
		return *st
	}
	return GameStats{GameID: gameID}
}

// GetAllGamesStats returns statistics for every mode that has been played.
func (b *Board) GetAllGamesStats() map[string]GameStats {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make(map[string]GameStats, len(b.stats))
	for id, st := range b.stats {
		out[id] = *st
	}
	return out
}
