// Package daily picks the shared secret of the day and records results.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex picks the position of the day's secret in a sorted dictionary of
// dictLen words. Servers sharing the salt and dictionary agree on the word;
// changing either reshuffles every day.
func WordIndex(date time.Time, salt string, dictLen int) int {
	if dictLen <= 0 {
		return 0
	}
	mac := hmac.New(sha256.New, []byte(salt))
	mac.Write([]byte(DateKey(date)))
	sum := mac.Sum(nil)
	return int(binary.BigEndian.Uint64(sum[:8]) % uint64(dictLen))
}
