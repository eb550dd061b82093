package study_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tcardoso/deckstudy/internal/study"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name    string
		answer  string
		correct string
		want    bool
	}{
		{"exact match", "Paris", "Paris", true},
		{"case insensitive", "PARIS", "paris", true},
		{"surrounding whitespace trimmed", " Paris ", "paris", true},
		{"stored answer trimmed too", "paris", "  Paris\n", true},
		{"near miss is wrong", "Pariss", "Paris", false},
		{"interior whitespace matters", "NewYork", "New York", false},
		{"interior whitespace preserved both sides", "new york", "New York", true},
		{"empty answer never matches", "", "Paris", false},
		{"whitespace-only answer never matches", "   ", "Paris", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, study.Evaluate(tt.answer, tt.correct))
		})
	}
}
