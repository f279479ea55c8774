package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffcal/staffcal-api/internal/models"
)

func TestMergeBandsTouchingIntervalsMerge(t *testing.T) {
	bands := MergeBands([]models.EventInstance{
		instance("a", "09:00", "12:00"),
		instance("b", "12:00", "15:00"),
	})
	require.Len(t, bands, 1)
	assert.Equal(t, models.Band{StartSlot: 18, EndSlot: 30}, bands[0])
}

func TestMergeBandsDisjointStayApart(t *testing.T) {
	bands := MergeBands([]models.EventInstance{
		instance("a", "09:00", "11:00"),
		instance("b", "13:00", "15:00"),
	})
	require.Len(t, bands, 2)
	assert.Equal(t, models.Band{StartSlot: 18, EndSlot: 22}, bands[0])
	assert.Equal(t, models.Band{StartSlot: 26, EndSlot: 30}, bands[1])
}

func TestMergeBandsContainedIntervalAbsorbed(t *testing.T) {
	bands := MergeBands([]models.EventInstance{
		instance("outer", "09:00", "17:00"),
		instance("inner", "10:00", "11:00"),
	})
	require.Len(t, bands, 1)
	assert.Equal(t, models.Band{StartSlot: 18, EndSlot: 34}, bands[0])
}

func TestMergeBandsUnsortedInput(t *testing.T) {
	bands := MergeBands([]models.EventInstance{
		instance("late", "14:00", "16:00"),
		instance("early", "08:00", "10:00"),
		instance("mid", "09:30", "14:30"),
	})
	require.Len(t, bands, 1)
	assert.Equal(t, models.Band{StartSlot: 16, EndSlot: 32}, bands[0])
}

func TestMergeBandsResultIsDisjointUnion(t *testing.T) {
	bands := MergeBands([]models.EventInstance{
		instance("a", "08:00", "10:00"),
		instance("b", "09:00", "11:00"),
		instance("c", "12:00", "13:00"),
		instance("d", "12:30", "14:00"),
		instance("e", "16:00", "17:00"),
	})
	require.Len(t, bands, 3)
	for i := 1; i < len(bands); i++ {
		assert.Greater(t, bands[i].StartSlot, bands[i-1].EndSlot)
	}
}

func TestMergeBandsSkipsMalformedAndEmpty(t *testing.T) {
	assert.Nil(t, MergeBands(nil))
	bands := MergeBands([]models.EventInstance{instance("bad", "xx", "10:00")})
	assert.Nil(t, bands)
}
