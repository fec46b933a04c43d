package cart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCart_Add(t *testing.T) {
	now := time.Now()

	t.Run("MergesSameProduct", func(t *testing.T) {
		c := &Cart{}
		require.NoError(t, c.Add("p1", 1, now))
		require.NoError(t, c.Add("p1", 1, now.Add(time.Minute)))

		require.Len(t, c.Lines, 1)
		assert.Equal(t, 2, c.Lines[0].Quantity)
		assert.Equal(t, now, c.Lines[0].AddedAt)
	})

	t.Run("ZeroMeansOne", func(t *testing.T) {
		c := &Cart{}
		require.NoError(t, c.Add("p1", 0, now))
		assert.Equal(t, 1, c.Lines[0].Quantity)
	})

	t.Run("NegativeRejected", func(t *testing.T) {
		c := &Cart{}
		assert.ErrorIs(t, c.Add("p1", -1, now), ErrInvalidQuantity)
		assert.Empty(t, c.Lines)
	})

	t.Run("CapsLineQuantity", func(t *testing.T) {
		c := &Cart{}
		assert.ErrorIs(t, c.Add("p1", 1_000_000, now), ErrQuantityTooLarge)
		assert.Empty(t, c.Lines)

		require.NoError(t, c.Add("p1", MaxLineQuantity, now))
		assert.ErrorIs(t, c.Add("p1", 1, now), ErrQuantityTooLarge)
		assert.Equal(t, MaxLineQuantity, c.Lines[0].Quantity)
	})

	t.Run("KeepsInsertionOrder", func(t *testing.T) {
		c := &Cart{}
		_ = c.Add("p2", 1, now)
		_ = c.Add("p1", 1, now)
		assert.Equal(t, []string{"p2", "p1"}, c.ProductIDs())
	})
}

func TestCart_SetQuantity(t *testing.T) {
	c := &Cart{Lines: []Line{{ProductID: "p1", Quantity: 3}}}

	assert.ErrorIs(t, c.SetQuantity("p1", 0), ErrInvalidQuantity)
	assert.Equal(t, 3, c.Lines[0].Quantity)

	assert.ErrorIs(t, c.SetQuantity("p9", 2), ErrCartItemNotFound)

	assert.ErrorIs(t, c.SetQuantity("p1", MaxLineQuantity+1), ErrQuantityTooLarge)
	assert.Equal(t, 3, c.Lines[0].Quantity)

	require.NoError(t, c.SetQuantity("p1", 5))
	assert.Equal(t, 5, c.Lines[0].Quantity)
}

func TestCart_RemoveAndClear(t *testing.T) {
	c := &Cart{Lines: []Line{{ProductID: "p1", Quantity: 1}, {ProductID: "p2", Quantity: 1}}}

	assert.True(t, c.Remove("p1"))
	assert.False(t, c.Remove("p1"))
	assert.Equal(t, []string{"p2"}, c.ProductIDs())

	assert.True(t, c.Clear())
	assert.False(t, c.Clear())
	assert.True(t, c.Empty())

	var nilCart *Cart
	assert.True(t, nilCart.Empty())
}
