package history

import (
	"iter"
	"strings"
)

// DeletedMarker is the payload of a deletion record.
const DeletedMarker = "deleted"

type entryKind int

const (
	entryUnknown entryKind = iota
	entryUpload
	entryDeletion
)

// keyState tracks a single key through absent -> live -> deleted.
type keyState int

const (
	stateAbsent keyState = iota
	stateLive
	stateDeleted
)

// parseEntry classifies a single history line. Lines that are neither an
// upload record nor a deletion record are reported as entryUnknown.
func parseEntry(line string) (entryKind, Key) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return entryUnknown, Key{}
	}
	key, err := ParseKey(fields[0])
	if err != nil {
		return entryUnknown, Key{}
	}
	if fields[1] == DeletedMarker {
		return entryDeletion, key
	}
	return entryUpload, key
}

// Reconcile returns the keys that have an upload record and no deletion
// record, in the order they were first uploaded. Unknown lines and deletions
// without a matching upload are ignored. A key that has been deleted stays
// deleted even if an upload record for it shows up later.
func Reconcile(lines iter.Seq[string]) []Key {
	states := make(map[Key]keyState)
	var order []Key

	for line := range lines {
		kind, key := parseEntry(line)
		switch kind {
		case entryDeletion:
			states[key] = stateDeleted
		case entryUpload:
			if states[key] == stateAbsent {
				states[key] = stateLive
				order = append(order, key)
			}
		}
	}

	live := make([]Key, 0, len(order))
	for _, key := range order {
		if states[key] == stateLive {
			live = append(live, key)
		}
	}
	return live
}
