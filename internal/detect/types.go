package detect

// ChangeType is the closed set of change classifications.
type ChangeType int

const (
	Added ChangeType = iota
	Modified
	Deleted
	Renamed
)

func (t ChangeType) String() string {
	switch t {
	case Added:
		return "added"
	case Modified:
		return "modified"
	case Deleted:
		return "deleted"
	case Renamed:
		return "renamed"
	default:
		return "unknown"
	}
}

// ChangedFile is one detected change. Path is repo-root relative with forward
// slashes. PreviousPath is set if and only if Type is Renamed.
type ChangedFile struct {
	Path         string
	Type         ChangeType
	PreviousPath string
}
