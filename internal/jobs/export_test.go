package jobs

import "time"

func (j *PendingOrderExpiryJob) SetClock(now func() time.Time) {
	j.now = now
}
