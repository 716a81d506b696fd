package models

import (
	"hyperschedule-service/internal/pkg/exceptions"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func mustWeekdays(t *testing.T, days string) Weekdays {
	t.Helper()
	w, err := NewWeekdays(zap.NewNop(), days)
	require.NoError(t, err)
	return w
}

func TestMeetingBuilder(t *testing.T) {
	start := NewDate(2026, time.August, 31)
	end := NewDate(2026, time.December, 11)
	morning := Time{Hour: 9, Minute: 0}
	noon := Time{Hour: 12, Minute: 0}

	t.Run("Complete Meeting", func(t *testing.T) {
		meeting, err := NewMeetingBuilder().
			Dates(start, end).
			Weekdays(mustWeekdays(t, "MWF")).
			Times(morning, noon).
			Subterm(FirstHalfTerm).
			Location("Shanahan 1480").
			Build()
		require.NoError(t, err)
		assert.Equal(t, start, *meeting.StartDate)
		assert.Equal(t, "MWF", meeting.Weekdays.String())
		assert.Equal(t, Location("Shanahan 1480"), *meeting.Location)
	})

	t.Run("Partial Meeting Is Legal", func(t *testing.T) {
		meeting, err := NewMeetingBuilder().StartTime(noon).Build()
		require.NoError(t, err)
		assert.Nil(t, meeting.EndTime)
		assert.Nil(t, meeting.StartDate)
	})

	t.Run("Inverted Dates Fail", func(t *testing.T) {
		_, err := NewMeetingBuilder().Dates(end, start).Build()
		assert.True(t, exceptions.IsKind(err, exceptions.KindConfig))
	})

	t.Run("Equal Dates Fail", func(t *testing.T) {
		_, err := NewMeetingBuilder().Dates(start, start).Build()
		assert.True(t, exceptions.IsKind(err, exceptions.KindConfig))
	})

	t.Run("Inverted Times Fail", func(t *testing.T) {
		_, err := NewMeetingBuilder().Times(noon, morning).Build()
		assert.True(t, exceptions.IsKind(err, exceptions.KindConfig))
	})

	t.Run("Equal Times Fail", func(t *testing.T) {
		_, err := NewMeetingBuilder().Times(noon, noon).Build()
		assert.True(t, exceptions.IsKind(err, exceptions.KindConfig))
	})

	t.Run("Empty Weekdays Fail", func(t *testing.T) {
		_, err := NewMeetingBuilder().Weekdays(Weekdays{}).Build()
		assert.True(t, exceptions.IsKind(err, exceptions.KindConfig))
	})

	t.Run("Zero Subterm Fails", func(t *testing.T) {
		_, err := NewMeetingBuilder().Subterm(Subterm{}).Build()
		assert.True(t, exceptions.IsKind(err, exceptions.KindConfig))

		meeting, err := NewMeetingBuilder().Subterm(SecondHalfTerm).Build()
		require.NoError(t, err)
		assert.True(t, meeting.Subterm.Equal(SecondHalfTerm))
	})

	t.Run("Fields Set Out Of Order Validate Once", func(t *testing.T) {
		meeting, err := NewMeetingBuilder().EndTime(morning).EndDate(start).StartTime(Time{Hour: 8}).StartDate(NewDate(2026, time.August, 1)).Build()
		require.NoError(t, err)
		assert.True(t, meeting.StartTime.Before(*meeting.EndTime))
		assert.True(t, meeting.StartDate.Before(*meeting.EndDate))
	})

	t.Run("Built Meeting Is Independent Of Builder", func(t *testing.T) {
		builder := NewMeetingBuilder().StartTime(morning)
		meeting, err := builder.Build()
		require.NoError(t, err)
		builder.StartTime(noon)
		assert.Equal(t, morning, *meeting.StartTime)
	})
}

func TestScheduleDeduplication(t *testing.T) {
	log, logs := newObservedLogger()
	days := mustWeekdays(t, "TR")

	first, err := NewMeetingBuilder().Weekdays(days).Times(Time{Hour: 13, Minute: 15}, Time{Hour: 14, Minute: 30}).Subterm(FullTerm).Location("Galileo Pryne").Build()
	require.NoError(t, err)
	sameSlotOtherRoom, err := NewMeetingBuilder().Weekdays(days).Times(Time{Hour: 13, Minute: 15}, Time{Hour: 14, Minute: 30}).Subterm(FullTerm).Location("Parsons 1285").Build()
	require.NoError(t, err)
	otherSubterm, err := NewMeetingBuilder().Weekdays(days).Times(Time{Hour: 13, Minute: 15}, Time{Hour: 14, Minute: 30}).Subterm(SecondHalfTerm).Build()
	require.NoError(t, err)

	var schedule Schedule
	assert.True(t, schedule.Add(log, first))
	assert.False(t, schedule.Add(log, sameSlotOtherRoom))
	assert.True(t, schedule.Add(log, otherSubterm))

	require.Len(t, schedule, 2)
	assert.Equal(t, Location("Galileo Pryne"), *schedule[0].Location)
	assert.Equal(t, 1, logs.FilterMessage("Schedule.Add dropped duplicate meeting").Len())
}
