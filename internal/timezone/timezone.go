package timezone

import "time"

// All civil dates and clock times in the booking core are interpreted in
// this single operating timezone, whatever offset a client sends.
const DefaultTimezone = "Asia/Ho_Chi_Minh"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location() *time.Location {
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.FixedZone("ICT", 7*3600)
	}
	return loc
}

func Now() time.Time {
	return time.Now().In(Location())
}
