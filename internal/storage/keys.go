package storage

import (
	"strings"
	"time"
)

// Object key layout shared by the publisher, the read API and retention.
const (
	LatestKey     = "latest.json"
	ArchivePrefix = "archive/"

	archiveDateLayout = "2006-01-02"
)

// ArchiveKey returns the archive key for the UTC calendar date of t.
// Later runs on the same day overwrite the same key.
func ArchiveKey(t time.Time) string {
	return ArchivePrefix + t.UTC().Format(archiveDateLayout) + ".json"
}

// ArchiveKeyForDate returns the archive key for a YYYY-MM-DD date string,
// or false when the date does not parse.
func ArchiveKeyForDate(date string) (string, bool) {
	if _, err := time.Parse(archiveDateLayout, date); err != nil {
		return "", false
	}
	return ArchivePrefix + date + ".json", true
}

// ArchiveDate extracts the calendar date encoded in an archive key.
func ArchiveDate(key string) (time.Time, bool) {
	raw := strings.TrimSuffix(strings.TrimPrefix(key, ArchivePrefix), ".json")
	t, err := time.Parse(archiveDateLayout, raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
