package models

import "time"

// Scan is a raw tag read from an RFID reader, resolved against the roster.
type Scan struct {
	ID          int64     `json:"id"`
	TagID       string    `json:"tag_id"`
	StudentName string    `json:"student_name"`
	Grade       string    `json:"grade"`
	ScanTime    time.Time `json:"scan_time"`
}
