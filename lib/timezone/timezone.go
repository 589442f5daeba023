package timezone

import "time"

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("Asia/Kolkata")
	if err != nil {
		panic(err)
	}
}

// force the timezone to IST regardless of where the server runs,
// search listings and history timestamps are all India-local
func Now() time.Time {
	return time.Now().In(Location)
}
