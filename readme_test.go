package bindable_test

import (
	"runtime"
	"strconv"
	"testing"

	"github.com/go-bindable/bindable"
	"github.com/stretchr/testify/assert"
)

// from README
func TestReadmeUsage(t *testing.T) {
	type player struct {
		Score int
		Name  string
	}
	type scoreboard struct {
		name  string
		score *string
	}

	state := bindable.Of(player{Score: 100, Name: "anna"})

	board := &scoreboard{}
	bindable.Bind(state, func(p player) string { return p.Name },
		board, func(b *scoreboard, s string) { b.name = s })
	bindable.BindTransform(state, func(p player) int { return p.Score },
		board, func(b *scoreboard, s *string) { b.score = s },
		func(n int) *string {
			s := strconv.Itoa(n)
			return &s
		})

	assert.Equal(t, "anna", board.name)
	assert.Equal(t, "100", *board.score)

	state.Set(player{Score: 250, Name: "anna"})
	assert.Equal(t, "250", *board.score)
	runtime.KeepAlive(board)
}
