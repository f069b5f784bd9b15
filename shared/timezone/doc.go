// Package timezone provides timezone utilities for the application.
//
// Usage:
//
//	now := timezone.Now()                          // current time in the app timezone
//	appTime := timezone.ToAppTime(someTime)        // convert any time to the app timezone
//	formatted := timezone.Format(time.Now(), "2006-01-02 15:04:05")
//	day, err := timezone.Parse("2006-01-02", "2026-09-14")
//	loc := timezone.GetLocation()
//
// Booking days and the past-date cutoff are evaluated in this timezone, so a
// misconfigured zone shifts which day counts as "today".
//
// The timezone is configured via the APP_TIMEZONE environment variable using
// standard IANA names ("UTC", "Europe/Paris", ...) and is initialized when
// the package is imported.
package timezone
