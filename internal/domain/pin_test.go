package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPosition_Valid(t *testing.T) {
	cases := []struct {
		pos   Position
		valid bool
	}{
		{Position{0, 0}, true},
		{Position{100, 100}, true},
		{Position{50.5, 12.25}, true},
		{Position{-0.1, 10}, false},
		{Position{10, 100.01}, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.valid, tc.pos.Valid(), "pos=%+v", tc.pos)
	}
}

func TestPin_TaskAccessors_NilTask(t *testing.T) {
	p := Pin{ID: "p1"}
	assert.Equal(t, "", p.TaskTitle())
	assert.Equal(t, "", p.TaskID())
	assert.False(t, p.MatchesTitle("a"))
}

func TestPin_MatchesTitle_CaseInsensitive(t *testing.T) {
	p := Pin{Task: &TaskRef{ID: "t1", Title: "Paint Wall"}}
	assert.True(t, p.MatchesTitle("paint"))
	assert.True(t, p.MatchesTitle("WALL"))
	assert.True(t, p.MatchesTitle("t w"))
	assert.False(t, p.MatchesTitle("ceiling"))
}

func TestImageSize_Loaded(t *testing.T) {
	assert.False(t, ImageSize{}.Loaded())
	assert.False(t, ImageSize{Width: 100}.Loaded())
	assert.True(t, ImageSize{Width: 100, Height: 50}.Loaded())
}

func TestPlan_DisplayName(t *testing.T) {
	assert.Equal(t, "A-101", (&Plan{ID: "x", Code: "A-101", Name: "Ground"}).DisplayName())
	assert.Equal(t, "Ground", (&Plan{ID: "x", Name: "Ground"}).DisplayName())
	assert.Equal(t, "x", (&Plan{ID: "x"}).DisplayName())
}
