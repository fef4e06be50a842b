package certificate

import (
	"bytes"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScorePercentage(t *testing.T) {
	cases := []struct {
		correct, attempted int
		want               float64
		text               string
	}{
		{0, 0, 0, "0"},
		{2, 3, 66.7, "66.7"},
		{15, 15, 100, "100.0"},
		{0, 15, 0, "0.0"},
		{1, 8, 12.5, "12.5"},
	}
	for _, tc := range cases {
		got := ScorePercentage(tc.correct, tc.attempted)
		assert.False(t, math.IsNaN(got))
		assert.Equal(t, tc.want, got)
		assert.Equal(t, tc.text, FormatPercentage(tc.correct, tc.attempted))
	}
}

func TestBandFor(t *testing.T) {
	assert.Equal(t, BandVerySuperior, BandFor(98))
	assert.Equal(t, BandSuperior, BandFor(97.9))
	assert.Equal(t, BandSuperior, BandFor(90))
	assert.Equal(t, BandHighAverage, BandFor(75))
	assert.Equal(t, BandAverage, BandFor(50))
	assert.Equal(t, BandBelowAverage, BandFor(49.9))
	assert.Equal(t, BandBelowAverage, BandFor(0))
}

func TestEstimateIQ(t *testing.T) {
	assert.Equal(t, 100, EstimateIQ(50))
	assert.InDelta(t, 115, EstimateIQ(84.13), 1)
	assert.InDelta(t, 85, EstimateIQ(15.87), 1)

	// clamped tails stay finite
	assert.Equal(t, EstimateIQ(0.01), EstimateIQ(0))
	assert.Equal(t, EstimateIQ(99.99), EstimateIQ(100))
	assert.Less(t, EstimateIQ(100), 160)

	prev := EstimateIQ(0)
	for pct := 1.0; pct <= 100; pct++ {
		cur := EstimateIQ(pct)
		assert.GreaterOrEqual(t, cur, prev, "pct %v", pct)
		prev = cur
	}
}

func TestNumber(t *testing.T) {
	assert.Equal(t, "89abcdef", Number("0123456789abcdef"))
	assert.Equal(t, "short", Number("short"))
}

func TestRenderIsDeterministic(t *testing.T) {
	d := Data{
		ResultID:           "65f0c0ffee0123456789abcd",
		Recipient:          "Ada Lovelace",
		CorrectAnswers:     12,
		QuestionsAttempted: 15,
		IssuedAt:           time.Date(2024, 5, 17, 9, 30, 0, 0, time.UTC),
	}
	url := "https://iqscaler.example/verify-certificate/" + d.ResultID

	first, err := Render(d, url)
	require.NoError(t, err)
	second, err := Render(d, url)
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(first, []byte("%PDF-")))
	assert.True(t, bytes.Contains(first, []byte("%%EOF")))
	assert.Equal(t, first, second)

	other, err := Render(d, url+"x")
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}
