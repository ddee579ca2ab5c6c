package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from string
		to   string
		want bool
	}{
		{StatusNotStarted, StatusInProgress, true},
		{StatusInProgress, StatusSubmitted, true},
		{StatusInProgress, StatusUnderReview, true},
		{StatusSubmitted, StatusUnderReview, true},
		{StatusUnderReview, StatusReviewed, true},

		// cancelled is reachable from every non-terminal state
		{StatusNotStarted, StatusCancelled, true},
		{StatusInProgress, StatusCancelled, true},
		{StatusSubmitted, StatusCancelled, true},
		{StatusUnderReview, StatusCancelled, true},

		// terminal states stay terminal
		{StatusReviewed, StatusCancelled, false},
		{StatusCancelled, StatusCancelled, false},
		{StatusReviewed, StatusInProgress, false},
		{StatusCancelled, StatusInProgress, false},

		// no going backwards or skipping ahead
		{StatusInProgress, StatusNotStarted, false},
		{StatusSubmitted, StatusInProgress, false},
		{StatusNotStarted, StatusReviewed, false},
		{StatusInProgress, StatusReviewed, false},
		{StatusUnderReview, StatusSubmitted, false},
	}

	for _, tt := range tests {
		t.Run(tt.from+"_to_"+tt.to, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestIsSubmittedOrLater(t *testing.T) {
	assert.False(t, IsSubmittedOrLater(StatusNotStarted))
	assert.False(t, IsSubmittedOrLater(StatusInProgress))
	assert.False(t, IsSubmittedOrLater(StatusCancelled))
	assert.True(t, IsSubmittedOrLater(StatusSubmitted))
	assert.True(t, IsSubmittedOrLater(StatusUnderReview))
	assert.True(t, IsSubmittedOrLater(StatusReviewed))
}

func TestValidSection(t *testing.T) {
	for _, s := range []string{SectionReading, SectionWriting, SectionSpeaking, SectionListening} {
		assert.True(t, ValidSection(s))
	}
	assert.False(t, ValidSection("grammar"))
	assert.False(t, ValidSection(""))
}
