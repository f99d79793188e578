package model

import "time"

// TimestampLayout is ISO-8601 with fixed millisecond precision. Fixed width
// keeps stored timestamps lexicographically sortable by recency.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// NowTimestamp stamps server-side creation times.
func NowTimestamp() string {
	return time.Now().UTC().Format(TimestampLayout)
}

// Location is a GPS fix reported by the device.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// TelemetrySample is one reading from the wearable. UserID and Timestamp are
// stamped by the server on accepted writes, never supplied by the client.
type TelemetrySample struct {
	HeartRate   float64  `json:"heartRate"`
	Temperature float64  `json:"temperature"`
	Location    Location `json:"location"`
	Timestamp   string   `json:"timestamp"`
	UserID      string   `json:"userId,omitempty"`
}

// DefaultSample is what observers see before any device has reported.
func DefaultSample() TelemetrySample {
	return TelemetrySample{
		HeartRate:   72,
		Temperature: 36.6,
		Location:    Location{Lat: 53.270962, Lng: -9.062691},
		Timestamp:   NowTimestamp(),
	}
}

type User struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Age    int     `json:"age"`
	Weight float64 `json:"weight"`
	Gender string  `json:"gender"`
	Height float64 `json:"height"`
}
