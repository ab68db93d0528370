package domain

import "time"

// BikeInfo one-to-one detail record for a reservation
type BikeInfo struct {
	ID                int64
	ReservationID     int64
	Manufacturer      string
	ModelName         string
	Details           string
	HasPartsBroughtIn bool
	Images            []BikeImage // ordered by UploadedAt
}

// BikeImage photo attached to a BikeInfo
type BikeImage struct {
	ID         int64
	BikeInfoID int64
	ImagePath  string // reference into the photo storage
	UploadedAt time.Time
}
