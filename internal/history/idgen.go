package history

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// adjectives and nouns feed memorable run identifiers.
var adjectives = []string{
	"amber", "bold", "brisk", "calm", "clear", "crisp", "deft", "eager",
	"fleet", "frank", "gold", "hardy", "keen", "lucid", "lunar", "mellow",
	"nimble", "polar", "quick", "rapid", "solid", "sonic", "steady", "swift",
	"terse", "vivid",
}

var nouns = []string{
	"anchor", "beacon", "breeze", "cedar", "comet", "cove", "delta", "ember",
	"falcon", "fjord", "glade", "harbor", "heron", "lantern", "maple", "mesa",
	"orbit", "osprey", "pixel", "prism", "quartz", "ridge", "spruce", "summit",
	"tide", "zephyr",
}

// SessionID returns the timestamp-derived session identifier used to tag
// report directories and the REPORT_ITERATION environment variable. One is
// generated per run, at time-of-day resolution.
func SessionID(now time.Time) string {
	return now.Format("20060102_150405")
}

// GenerateID creates a unique run identifier in adjective_noun_timestamp
// format, using crypto/rand for word selection to avoid collisions within
// the same second.
func GenerateID() (string, error) {
	adj, err := randomWord(adjectives)
	if err != nil {
		return "", fmt.Errorf("selecting random adjective: %w", err)
	}
	noun, err := randomWord(nouns)
	if err != nil {
		return "", fmt.Errorf("selecting random noun: %w", err)
	}
	return fmt.Sprintf("%s_%s_%s", adj, noun, time.Now().Format("20060102_150405")), nil
}

func randomWord(words []string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(words))))
	if err != nil {
		return "", fmt.Errorf("generating random number: %w", err)
	}
	return words[n.Int64()], nil
}
