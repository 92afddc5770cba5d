package domain

// Reserved team codes. Both buckets always exist in the registry: members whose
// registration could not be matched to a real team land in TeamUnassigned, and
// the coordinator account lives in TeamPrivileged.
const (
	TeamUnassigned = "other"
	TeamPrivileged = "admin"
)

// Snapshot is the whole registry as persisted: team code to member ids.
type Snapshot map[string][]int64

// Clone returns a deep copy of the snapshot. Empty teams stay non-nil so
// they serialize as empty lists.
func (s Snapshot) Clone() Snapshot {
	out := make(Snapshot, len(s))
	for code, members := range s {
		copied := make([]int64, len(members))
		copy(copied, members)
		out[code] = copied
	}
	return out
}

// TeamRoster is the read-only view of one team exposed by the operations API.
type TeamRoster struct {
	Code    string  `json:"code"`
	Members []int64 `json:"members"`
}
