package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduqar/tutor-marketplace/internal/httperr"
)

func TestParseMinutes(t *testing.T) {
	m, err := ParseMinutes("09:30")
	require.NoError(t, err)
	assert.Equal(t, 9*60+30, m)

	m, err = ParseMinutes("00:00")
	require.NoError(t, err)
	assert.Equal(t, 0, m)

	_, err = ParseMinutes("25:00")
	assert.Error(t, err)

	_, err = ParseMinutes("930")
	assert.Error(t, err)
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "09:30", FormatMinutes(570))
	assert.Equal(t, "00:00", FormatMinutes(0))
	assert.Equal(t, "23:59", FormatMinutes(1439))
}

func TestNewInterval(t *testing.T) {
	iv, err := NewInterval("09:30", 1)
	require.NoError(t, err)
	assert.Equal(t, Interval{Start: 570, End: 630}, iv)

	// fractional duration
	iv, err = NewInterval("10:00", 1.5)
	require.NoError(t, err)
	assert.Equal(t, Interval{Start: 600, End: 690}, iv)
}

func TestNewIntervalRejectsInvalid(t *testing.T) {
	_, err := NewInterval("09:00", 0)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotUnavailable))

	_, err = NewInterval("09:00", -1)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotUnavailable))

	// would run past midnight
	_, err = NewInterval("23:30", 1)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotUnavailable))

	_, err = NewInterval("bad", 1)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotUnavailable))
}

func TestNewIntervalEndsExactlyAtMidnight(t *testing.T) {
	iv, err := NewInterval("23:00", 1)
	require.NoError(t, err)
	assert.Equal(t, 1440, iv.End)
}

func TestOverlapsHalfOpen(t *testing.T) {
	a := Interval{Start: 570, End: 630} // 09:30-10:30

	assert.True(t, a.Overlaps(Interval{Start: 600, End: 660}))
	assert.True(t, a.Overlaps(Interval{Start: 500, End: 571}))
	assert.True(t, a.Overlaps(Interval{Start: 580, End: 600}))

	// touching endpoints are not a conflict
	assert.False(t, a.Overlaps(Interval{Start: 630, End: 690}))
	assert.False(t, a.Overlaps(Interval{Start: 510, End: 570}))
	assert.False(t, a.Overlaps(Interval{Start: 700, End: 760}))
}

func TestContains(t *testing.T) {
	w := Interval{Start: 540, End: 720} // 09:00-12:00

	assert.True(t, w.Contains(Interval{Start: 570, End: 630}))
	assert.True(t, w.Contains(Interval{Start: 540, End: 720}))
	assert.False(t, w.Contains(Interval{Start: 530, End: 600}))
	assert.False(t, w.Contains(Interval{Start: 700, End: 730}))
}
