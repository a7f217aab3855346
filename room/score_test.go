package room

import (
	"testing"
)

func TestComputeScore_NotPlaying(t *testing.T) {
	score := computeScore(map[int64]int{1: 1, 2: 1}, nil, 5, false)
	if score.Score != 0.5 {
		t.Errorf("Expected neutral score with nothing playing, got %v", score.Score)
	}
	if score.Positive != 0 {
		t.Errorf("Expected no tallies with nothing playing, got %d", score.Positive)
	}
}

func TestComputeScore_Bounds(t *testing.T) {
	// Everyone woots: ceiling.
	score := computeScore(map[int64]int{1: 1, 3: 1}, nil, 3, true)
	if score.Score != 1.0 {
		t.Errorf("Expected 1.0 with every listener wooting, got %v", score.Score)
	}

	// Everyone mehs: floor.
	score = computeScore(map[int64]int{1: -1, 3: -1}, nil, 3, true)
	if score.Score != 0.0 {
		t.Errorf("Expected 0.0 with every listener mehing, got %v", score.Score)
	}
}

func TestComputeScore_SingleOccupant(t *testing.T) {
	// The DJ alone in the room: no eligible voters, score stays neutral.
	score := computeScore(map[int64]int{1: 1}, nil, 1, true)
	if score.Score != 0.5 {
		t.Errorf("Expected neutral score with no eligible voters, got %v", score.Score)
	}
	if score.Positive != 1 {
		t.Errorf("Expected the tally to still be reported, got %d", score.Positive)
	}
}

func TestComputeScore_Mixed(t *testing.T) {
	votes := map[int64]int{1: 1, 3: 1, 4: -1, 5: 0}
	curates := map[int64]bool{3: true}

	score := computeScore(votes, curates, 5, true)
	if score.Positive != 2 || score.Negative != 1 {
		t.Fatalf("Expected tallies 2/1, got %d/%d", score.Positive, score.Negative)
	}
	if score.Curates != 1 {
		t.Errorf("Expected 1 curate, got %d", score.Curates)
	}
	// 0.5 + (2-1)/(2*4) = 0.625
	if score.Score != 0.625 {
		t.Errorf("Expected 0.625, got %v", score.Score)
	}
}
