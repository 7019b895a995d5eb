package ranking

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededCatalog() *Catalog {
	c := NewCatalog()
	songs := []Song{
		{"Shape of You", 95},
		{"Blinding Lights", 90},
		{"Despacito", 85},
		{"Believer", 80},
		{"Faded", 75},
		{"Closer", 70},
		{"Havana", 65},
	}
	for _, s := range songs {
		c.Add(s.Title, s.Popularity)
	}
	return c
}

func TestTopThree(t *testing.T) {
	c := seededCatalog()

	want := []Song{
		{"Shape of You", 95},
		{"Blinding Lights", 90},
		{"Despacito", 85},
	}
	assert.Equal(t, want, c.TopK(3))
}

func TestTopKBounds(t *testing.T) {
	testCases := []struct {
		k       int
		wantLen int
	}{
		{-1, 0},
		{0, 0},
		{1, 1},
		{7, 7},
		{8, 7},
		{100, 7},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("k_%d", tc.k), func(t *testing.T) {
			c := seededCatalog()
			got := c.TopK(tc.k)
			require.NotNil(t, got)
			require.Len(t, got, tc.wantLen)

			for i := 1; i < len(got); i++ {
				assert.GreaterOrEqual(t, got[i-1].Popularity, got[i].Popularity)
			}
		})
	}
}

func TestTopKIsRepeatable(t *testing.T) {
	c := seededCatalog()

	first := c.TopK(3)
	second := c.TopK(3)

	assert.Equal(t, first, second)
	assert.Equal(t, 7, c.Len())
}

func TestDrainConsumes(t *testing.T) {
	c := seededCatalog()

	first := c.Drain(3)
	require.Len(t, first, 3)
	assert.Equal(t, "Shape of You", first[0].Title)
	assert.Equal(t, 4, c.Len())

	next := c.Drain(1)
	assert.Equal(t, []Song{{"Believer", 80}}, next)

	rest := c.Drain(10)
	assert.Len(t, rest, 3)
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.TopK(3))
}

func TestDuplicateEntries(t *testing.T) {
	c := NewCatalog()
	c.Add("Faded", 75)
	c.Add("Faded", 75)
	c.Add("Faded", 99)

	got := c.TopK(5)
	assert.Equal(t, []Song{{"Faded", 99}, {"Faded", 75}, {"Faded", 75}}, got)
}

func TestEqualPopularity(t *testing.T) {
	c := NewCatalog()
	c.Add("A", 50)
	c.Add("B", 50)
	c.Add("C", 10)

	got := c.TopK(2)
	titles := []string{got[0].Title, got[1].Title}
	assert.ElementsMatch(t, []string{"A", "B"}, titles)
}

func TestEmptyCatalog(t *testing.T) {
	c := NewCatalog()
	assert.Empty(t, c.TopK(3))
	assert.Empty(t, c.Drain(3))
}
