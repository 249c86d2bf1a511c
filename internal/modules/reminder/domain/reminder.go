package domain

import (
	"fmt"
	"time"
)

// ClockLayout is the wall-clock form notification times are stored in.
const ClockLayout = "15:04"

// NotificationTitle heads every daily reminder.
const NotificationTitle = "Today's Tasks"

// ShouldFire reports whether the reminder is due: notifications are on
// and the local wall clock reads exactly the configured minute.
func ShouldFire(now time.Time, enabled bool, notificationTime string) bool {
	if !enabled {
		return false
	}
	return now.Format(ClockLayout) == notificationTime
}

// FireStamp identifies the minute a firing belongs to, so one minute
// never produces two notifications.
func FireStamp(now time.Time) string {
	return now.Format("2006-01-02 15:04")
}

// NotificationBody summarises the day's pending tasks. An empty day
// yields no notification.
func NotificationBody(titles []string) (string, bool) {
	if len(titles) == 0 {
		return "", false
	}
	return fmt.Sprintf("You have %d task(s) today: %s", len(titles), titles[0]), true
}
