package mediaio

import "time"

// parseEXIFTime parses the EXIF DateTime format ("2006:01:02 15:04:05").
func parseEXIFTime(s string) (time.Time, error) {
	return time.Parse("2006:01:02 15:04:05", s)
}
