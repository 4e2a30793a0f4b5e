package jobs

import (
	"context"
	"time"

	"github.com/harentsoaR/hospital-api/internal/access"
	"github.com/harentsoaR/hospital-api/internal/models"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// HandoverSpec fires at every shift boundary.
const HandoverSpec = "0 0,12,18 * * *"

// ShiftReleaser clears the working flag of one shift's staff and reports
// how many were released.
type ShiftReleaser interface {
	ReleaseShift(ctx context.Context, shift models.Shift) (int, error)
}

// ShiftHandover frees the staff of the shift that just ended so they stop
// blocking the available helpers list for the next one.
type ShiftHandover struct {
	staff ShiftReleaser
	log   *logrus.Logger
	now   func() time.Time
}

func NewShiftHandover(staff ShiftReleaser, logger *logrus.Logger) *ShiftHandover {
	return &ShiftHandover{staff: staff, log: logger, now: time.Now}
}

// EndedShift is the shift in progress a minute before t.
func EndedShift(t time.Time) models.Shift {
	return access.CurrentShift(t.Add(-time.Minute).Hour())
}

// Run releases the shift that ended just before now.
func (h *ShiftHandover) Run(ctx context.Context) {
	shift := EndedShift(h.now())
	n, err := h.staff.ReleaseShift(ctx, shift)
	if err != nil {
		h.log.WithError(err).WithField("shift", shift).Error("shift handover failed")
		return
	}
	h.log.WithFields(logrus.Fields{"shift": shift, "released": n}).Info("shift handover done")
}

// Start schedules Run on the handover boundaries. Stop the returned cron
// on shutdown.
func (h *ShiftHandover) Start() (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(HandoverSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		h.Run(ctx)
	}); err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}
