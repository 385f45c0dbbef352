package fill

import (
	"testing"

	"github.com/formlab/formbuilder-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBoard() *ClozeBoard {
	return NewClozeBoard(models.ClozeContent{
		Sentence: "The __ jumped over the __.",
		Options:  []string{"cat", "moon", "fence"},
	})
}

func TestClozeBoard_PlaceOption(t *testing.T) {
	b := newBoard()

	require.NoError(t, b.PlaceOption(0, "cat"))
	assert.Equal(t, []string{"cat", ""}, b.Slots())
	assert.False(t, b.Available("cat"))
	assert.True(t, b.Available("moon"))

	t.Run("placing a used option moves it", func(t *testing.T) {
		require.NoError(t, b.PlaceOption(1, "cat"))
		assert.Equal(t, []string{"", "cat"}, b.Slots())
	})

	t.Run("overwriting a slot frees its occupant", func(t *testing.T) {
		require.NoError(t, b.PlaceOption(1, "moon"))
		assert.Equal(t, []string{"", "moon"}, b.Slots())
		assert.True(t, b.Available("cat"))
	})

	t.Run("out of range", func(t *testing.T) {
		assert.Error(t, b.PlaceOption(2, "cat"))
		assert.Error(t, b.PlaceOption(-1, "cat"))
	})

	t.Run("option outside the pool", func(t *testing.T) {
		assert.Error(t, b.PlaceOption(0, "dog"))
	})
}

func TestClozeBoard_ClearAndReturn(t *testing.T) {
	b := newBoard()
	require.NoError(t, b.PlaceOption(0, "cat"))
	require.NoError(t, b.PlaceOption(1, "moon"))

	require.NoError(t, b.ClearSlot(0))
	assert.Equal(t, []string{"", "moon"}, b.Slots())
	assert.True(t, b.Available("cat"))

	b.ReturnOption("moon")
	assert.Equal(t, []string{"", ""}, b.Slots())

	// clearing an unplaced option is a no-op
	b.ReturnOption("fence")
	assert.Equal(t, []string{"", ""}, b.Slots())

	assert.Error(t, b.ClearSlot(5))
}

func TestClozeBoard_UsedOptions(t *testing.T) {
	b := newBoard()
	assert.Empty(t, b.UsedOptions())

	require.NoError(t, b.PlaceOption(1, "moon"))
	require.NoError(t, b.PlaceOption(0, "fence"))
	assert.Equal(t, []string{"fence", "moon"}, b.UsedOptions())
}

func TestClozeBoard_Segments(t *testing.T) {
	b := newBoard()
	assert.Equal(t, []string{"The ", " jumped over the ", "."}, b.Segments())

	t.Run("no blanks yields one segment", func(t *testing.T) {
		plain := NewClozeBoard(models.ClozeContent{Sentence: "no blanks", Options: []string{"x"}})
		assert.Equal(t, []string{"no blanks"}, plain.Segments())
		assert.Empty(t, plain.Slots())
	})
}

func TestClozeBoard_OptionCardinalityMismatch(t *testing.T) {
	t.Run("more options than blanks", func(t *testing.T) {
		b := NewClozeBoard(models.ClozeContent{
			Sentence: "only __ here",
			Options:  []string{"one", "two", "three"},
		})
		require.NoError(t, b.PlaceOption(0, "one"))
		assert.True(t, b.Filled())
		assert.True(t, b.Available("two"))
		assert.True(t, b.Available("three"))
	})

	t.Run("fewer options than blanks", func(t *testing.T) {
		b := NewClozeBoard(models.ClozeContent{
			Sentence: "__ and __ and __",
			Options:  []string{"first"},
		})
		require.NoError(t, b.PlaceOption(0, "first"))
		assert.False(t, b.Filled())
		assert.Equal(t, models.ClozeAnswer{"first", "", ""}, b.Answer())
	})
}

func TestClozeBoard_Answer(t *testing.T) {
	b := newBoard()
	require.NoError(t, b.PlaceOption(0, "cat"))
	require.NoError(t, b.PlaceOption(1, "moon"))

	answer := b.Answer()
	assert.Equal(t, models.ClozeAnswer{"cat", "moon"}, answer)

	// the snapshot is detached from the board
	answer[0] = "fence"
	assert.Equal(t, []string{"cat", "moon"}, b.Slots())
}
