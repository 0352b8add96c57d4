package dto

import "time"

type MetricsOutput struct {
	HeartRate        int
	RestingHeartRate int
	HRV              int
	Steps            int
	UpdatedAt        time.Time
}
