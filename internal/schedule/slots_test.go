package schedule

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSlotsWeekday(t *testing.T) {
	friday := date(2026, time.September, 4)
	slots := ResolveSlots(friday, AllOpen)

	require.Len(t, slots, 16)
	assert.Equal(t, "09:00", slots[0].Time)
	assert.Equal(t, "18:30", slots[len(slots)-1].Time)

	labels := make([]string, len(slots))
	for i, s := range slots {
		labels[i] = s.Time
		assert.True(t, s.Available)
	}
	assert.True(t, sort.StringsAreSorted(labels), "slots must keep chronological order")
}

func TestResolveSlotsSaturday(t *testing.T) {
	saturday := date(2026, time.September, 5)
	require.Equal(t, time.Saturday, saturday.Weekday())

	slots := ResolveSlots(saturday, AllOpen)

	require.Len(t, slots, 14)
	assert.Equal(t, "08:00", slots[0].Time)
	assert.Equal(t, "16:30", slots[len(slots)-1].Time)
}

func TestResolveSlotsSunday(t *testing.T) {
	sunday := date(2026, time.September, 6)
	require.Equal(t, time.Sunday, sunday.Weekday())

	assert.Nil(t, ResolveSlots(sunday, AllOpen))
}

func TestResolveSlotsDenyList(t *testing.T) {
	deny := NewDenyList("10:30", "15:00", "17:30")
	friday := date(2026, time.September, 4)

	slots := ResolveSlots(friday, deny)

	unavailable := map[string]bool{}
	for _, s := range slots {
		if !s.Available {
			unavailable[s.Time] = true
		}
	}
	assert.Equal(t, map[string]bool{"10:30": true, "15:00": true, "17:30": true}, unavailable)
}

func TestResolveSlotsCheckerFunc(t *testing.T) {
	saturday := date(2026, time.September, 5)
	checker := CheckerFunc(func(d time.Time, label string) bool {
		return label >= "10:00"
	})

	slots := ResolveSlots(saturday, checker)
	assert.False(t, slots[0].Available) // 08:00
	assert.True(t, slots[len(slots)-1].Available)
}

func TestResolveSlotsNilChecker(t *testing.T) {
	for _, s := range ResolveSlots(date(2026, time.September, 4), nil) {
		assert.True(t, s.Available)
	}
}

func TestValidLabel(t *testing.T) {
	friday := date(2026, time.September, 4)
	saturday := date(2026, time.September, 5)
	sunday := date(2026, time.September, 6)

	assert.True(t, ValidLabel(friday, "18:30"))
	assert.False(t, ValidLabel(friday, "08:00")) // Saturday-only label
	assert.True(t, ValidLabel(saturday, "08:00"))
	assert.False(t, ValidLabel(saturday, "18:30"))
	assert.False(t, ValidLabel(sunday, "09:00"))
	assert.False(t, ValidLabel(friday, "09:15"))
}

func TestFormatLongDate(t *testing.T) {
	assert.Equal(t, "sexta-feira, 4 de setembro de 2026", FormatLongDate(date(2026, time.September, 4)))
	assert.Equal(t, "domingo, 1 de março de 2026", FormatLongDate(date(2026, time.March, 1)))
}

func TestMonthTitle(t *testing.T) {
	assert.Equal(t, "Setembro 2026", MonthTitle(Month{Year: 2026, Month: time.September}))
}
