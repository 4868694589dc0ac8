package txn

import "strings"

// Stage is a builder stage of a Txn. Stages combine into a set.
type Stage uint8

const (
	// StageWhen is set by Txn.When.
	StageWhen Stage = 1 << iota
	// StageThen is set by Txn.AndThen.
	StageThen
	// StageElse is set by Txn.OrElse.
	StageElse
)

func (s Stage) String() string {
	names := make([]string, 0, 3) //nolint:mnd

	if s&StageWhen != 0 {
		names = append(names, "When")
	}

	if s&StageThen != 0 {
		names = append(names, "AndThen")
	}

	if s&StageElse != 0 {
		names = append(names, "OrElse")
	}

	if len(names) == 0 {
		return "None"
	}

	return strings.Join(names, "|")
}
