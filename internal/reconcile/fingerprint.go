package reconcile

import (
	"encoding/json"
	"hash/fnv"
	"sort"
)

type stamp struct {
	ID        string
	CreatedAt int64
	Digest    uint64
}

// Fingerprint summarizes a collection for change detection: one (id,
// timestamp) pair per record, sorted by id. Each pair also carries a digest
// of the record's content, since the store reports updates at second
// resolution and a status change can leave every timestamp untouched.
type Fingerprint []stamp

func FingerprintOf(records []Record) Fingerprint {
	fp := make(Fingerprint, 0, len(records))
	for _, r := range records {
		fp = append(fp, stamp{ID: r.ID, CreatedAt: r.CreatedAt, Digest: digest(r)})
	}
	sort.SliceStable(fp, func(i, j int) bool { return fp[i].ID < fp[j].ID })
	return fp
}

func (f Fingerprint) Equal(other Fingerprint) bool {
	if len(f) != len(other) {
		return false
	}
	for i := range f {
		if f[i] != other[i] {
			return false
		}
	}
	return true
}

// digest hashes the record's fields and update time. encoding/json sorts map
// keys, so equal records always hash equally.
func digest(r Record) uint64 {
	h := fnv.New64a()
	data, err := json.Marshal(struct {
		UpdatedAt int64          `json:"u"`
		Fields    map[string]any `json:"f"`
	}{r.UpdatedAt, r.Fields})
	if err != nil {
		return 0
	}
	h.Write(data)
	return h.Sum64()
}
