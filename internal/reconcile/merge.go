package reconcile

import "time"

// Merge combines an authoritative snapshot with the local cache. The result is
// every snapshot record in store order followed by the local records the
// snapshot does not contain yet, provided they were created within window of
// now (epoch milliseconds). Duplicate ids keep their first occurrence and
// records without an id are dropped.
func Merge(snapshot, local []Record, now int64, window time.Duration) []Record {
	confirmed := make(map[string]bool, len(snapshot))
	for _, r := range snapshot {
		confirmed[r.ID] = true
	}

	seen := make(map[string]bool, len(snapshot)+len(local))
	merged := make([]Record, 0, len(snapshot)+len(local))
	add := func(r Record) {
		if r.ID == "" || seen[r.ID] {
			return
		}
		seen[r.ID] = true
		merged = append(merged, r.Clone())
	}

	for _, r := range snapshot {
		add(r)
	}
	limit := window.Milliseconds()
	for _, r := range local {
		if confirmed[r.ID] {
			continue
		}
		if isPending(r, now, limit) {
			add(r)
		}
	}
	return merged
}

func isPending(r Record, now, windowMillis int64) bool {
	if r.CreatedAt <= 0 {
		return false
	}
	return now-r.CreatedAt <= windowMillis
}

// dedupe keeps the first record for every id and drops records without one.
func dedupe(records []Record) []Record {
	seen := make(map[string]bool, len(records))
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if r.ID == "" || seen[r.ID] {
			continue
		}
		seen[r.ID] = true
		out = append(out, r)
	}
	return out
}
