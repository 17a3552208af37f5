// Package idhash computes deterministic record identifiers.
package idhash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// NewsID computes a deterministic news record ID using SHA256.
// Formula: SHA256(url|title)
// Returns hex-encoded hash (64 characters). The same article fetched twice
// hashes to the same ID, so duplicate inserts are rejected by the store.
func NewsID(url, title string) string {
	data := fmt.Sprintf("%s|%s", url, title)
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}

// TrendID computes a deterministic trend metric ID using SHA256.
// Formula: SHA256(company|metric_name|published_at_unix_ms|value)
func TrendID(company, metricName string, publishedAtMs int64, value float64) string {
	data := fmt.Sprintf("%s|%s|%d|%g", company, metricName, publishedAtMs, value)
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}
