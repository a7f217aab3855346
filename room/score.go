// room/score.go
package room

import (
	"github.com/SecurityPuppy/plugdj-node/models"
)

// computeScore derives the room's aggregate approval metric from the current
// vote tallies. With nothing playing the score is always neutral. Otherwise
// score = 0.5 + (positive - negative) / (2 * (userCount - 1)); the
// denominator excludes the playing DJ's own slot and floors at zero, in
// which case the score stays neutral.
func computeScore(votes map[int64]int, curates map[int64]bool, userCount int, playing bool) models.Score {
	if !playing {
		return models.NeutralScore()
	}

	var positive, negative int
	for _, vote := range votes {
		switch vote {
		case 1:
			positive++
		case -1:
			negative++
		}
	}

	score := 0.5
	if voters := userCount - 1; voters > 0 {
		score += float64(positive-negative) / float64(2*voters)
	}

	return models.Score{
		Positive: positive,
		Negative: negative,
		Curates:  len(curates),
		Score:    score,
	}
}
