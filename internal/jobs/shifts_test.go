package jobs

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/harentsoaR/hospital-api/internal/models"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReleaser struct {
	released []models.Shift
	err      error
}

func (f *fakeReleaser) ReleaseShift(_ context.Context, shift models.Shift) (int, error) {
	f.released = append(f.released, shift)
	return 2, f.err
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestEndedShift(t *testing.T) {
	day := func(h int) time.Time { return time.Date(2024, time.March, 5, h, 0, 0, 0, time.Local) }
	assert.Equal(t, models.ShiftEvening, EndedShift(day(0)))
	assert.Equal(t, models.ShiftMorning, EndedShift(day(12)))
	assert.Equal(t, models.ShiftAfternoon, EndedShift(day(18)))
}

func TestRunReleasesEndedShift(t *testing.T) {
	staff := &fakeReleaser{}
	h := NewShiftHandover(staff, quietLogger())
	h.now = func() time.Time { return time.Date(2024, time.March, 5, 12, 0, 0, 0, time.Local) }

	h.Run(context.Background())
	assert.Equal(t, []models.Shift{models.ShiftMorning}, staff.released)

	staff.err = errors.New("down")
	h.Run(context.Background())
	assert.Len(t, staff.released, 2)
}

func TestHandoverSpecFiresOnBoundaries(t *testing.T) {
	sched, err := cron.ParseStandard(HandoverSpec)
	require.NoError(t, err)

	next := sched.Next(time.Date(2024, time.March, 5, 9, 30, 0, 0, time.Local))
	assert.Equal(t, time.Date(2024, time.March, 5, 12, 0, 0, 0, time.Local), next)

	next = sched.Next(next)
	assert.Equal(t, time.Date(2024, time.March, 5, 18, 0, 0, 0, time.Local), next)

	next = sched.Next(next)
	assert.Equal(t, time.Date(2024, time.March, 6, 0, 0, 0, 0, time.Local), next)
}

func TestStartSchedules(t *testing.T) {
	c, err := NewShiftHandover(&fakeReleaser{}, quietLogger()).Start()
	require.NoError(t, err)
	defer c.Stop()
	assert.Len(t, c.Entries(), 1)
}
