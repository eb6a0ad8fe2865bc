// package match scores free-form song references against canonical playlist
// entries using containment-based fuzzy matching.
//
// Matching is substring/containment only. Edit-distance and phonetic metrics
// would change which songs match and are deliberately out of scope.
package match

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"lxsort/internal/library"
	"lxsort/internal/orderlist"
)

// Default scoring weights. Product tuning constants, overridable via config.
const (
	ScoreExact           = 100.0 // normalized titles are equal
	ScoreExactWithArtist = 200.0 // equal titles plus artist containment
	ScoreRefInCandidate  = 60.0  // ref title contained in candidate title, scaled by length ratio
	ScoreCandidateInRef  = 50.0  // candidate title contained in ref title, scaled by length ratio
	ScoreArtistBonus     = 30.0  // artist containment on top of a containment match
	MatchThreshold       = 50.0  // minimum best score to accept a match
)

var (
	bracketPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\([^)]*\)`),
		regexp.MustCompile(`\[[^\]]*\]`),
		regexp.MustCompile(`【[^】]*】`),
	}
	nonWordPattern = regexp.MustCompile(`[^\p{L}\p{N}_]`)
)

// Normalize canonicalizes a song or artist string for comparison.
//
// Removes bracketed annotations like "(Live)" or "【Remix】" together with
// their brackets, drops every rune that is not a letter, digit or underscore
// in any script, and lower-cases the remainder. Total and idempotent; empty
// input yields empty output.
func Normalize(text string) string {
	for _, p := range bracketPatterns {
		text = p.ReplaceAllString(text, "")
	}
	text = nonWordPattern.ReplaceAllString(text, "")
	return strings.ToLower(text)
}

// Weights holds the scoring constants for one matcher instance.
type Weights struct {
	Exact           float64
	ExactWithArtist float64
	RefInCandidate  float64
	CandidateInRef  float64
	ArtistBonus     float64
	Threshold       float64
}

// DefaultWeights returns the built-in scoring weights.
func DefaultWeights() Weights {
	return Weights{
		Exact:           ScoreExact,
		ExactWithArtist: ScoreExactWithArtist,
		RefInCandidate:  ScoreRefInCandidate,
		CandidateInRef:  ScoreCandidateInRef,
		ArtistBonus:     ScoreArtistBonus,
		Threshold:       MatchThreshold,
	}
}

// score computes the similarity of one candidate against pre-normalized
// reference strings.
//
// Exact title equality scores Exact, raised to ExactWithArtist when either
// normalized artist contains the other. Otherwise containment in either
// direction scores proportionally to the length ratio; the ref-in-candidate
// direction weighs slightly more because canonical titles are assumed cleaner
// and shorter than pasted text. A containment match earns ArtistBonus when
// the artists also agree.
func (w Weights) score(refName, refArtist, candName, candArtist string) float64 {
	if refName == "" || candName == "" {
		return 0
	}

	// An empty candidate artist is contained in any ref artist and so agrees.
	artistAgrees := refArtist != "" &&
		(strings.Contains(candArtist, refArtist) || strings.Contains(refArtist, candArtist))

	if refName == candName {
		if artistAgrees {
			return w.ExactWithArtist
		}
		return w.Exact
	}

	// Length ratios count runes so CJK titles weigh the same as ASCII.
	score := 0.0
	if strings.Contains(candName, refName) {
		score = w.RefInCandidate * float64(utf8.RuneCountInString(refName)) / float64(utf8.RuneCountInString(candName))
	} else if strings.Contains(refName, candName) {
		score = w.CandidateInRef * float64(utf8.RuneCountInString(candName)) / float64(utf8.RuneCountInString(refName))
	}

	if score > 0 && artistAgrees {
		score += w.ArtistBonus
	}
	return score
}

// Match scores every candidate against ref and returns the best one, or nil
// when no candidate reaches the threshold.
//
// Ties between equal best scores resolve to the first candidate in list
// order; the scan uses a strict greater-than comparison to keep that stable.
func (w Weights) Match(ref orderlist.SongRef, candidates []*library.Song) *library.Song {
	refName := Normalize(ref.Title)
	refArtist := Normalize(ref.Artist)

	var best *library.Song
	bestScore := 0.0

	for _, song := range candidates {
		score := w.score(refName, refArtist, Normalize(song.Name), Normalize(song.Singer))
		if score > bestScore {
			bestScore = score
			best = song
		}
	}

	if bestScore >= w.Threshold {
		return best
	}
	return nil
}
