package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// idPrefix marks a reference as a raw task ID rather than a list position.
const idPrefix = "id:"

// TaskRef represents a parsed task reference: either a 1-based position in
// the fetched list or an explicit task ID.
type TaskRef struct {
	Num int    // 1-based position, 0 if ID is set
	ID  string // explicit ID, "" if Num is set
}

// HasID reports whether the reference names a task by ID.
func (r TaskRef) HasID() bool { return r.ID != "" }

func (r TaskRef) String() string {
	if r.HasID() {
		return idPrefix + r.ID
	}
	return strconv.Itoa(r.Num)
}

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRef parses a task reference from the first argument.
//
// Parsing rules:
// 1. No args → error: task reference required
// 2. All digits → position reference (3)
// 3. "id:" followed by a non-empty ID → ID reference (id:6f1c...)
// 4. Otherwise → error: invalid task reference: <ref>
// Extra arguments after the reference are an error.
func ParseTaskRef(args []string) (TaskRef, error) {
	if len(args) == 0 {
		return TaskRef{}, ErrTaskRefRequired
	}
	if len(args) > 1 {
		return TaskRef{}, fmt.Errorf("unexpected argument: %s", args[1])
	}

	arg := strings.TrimSpace(args[0])

	if isAllDigits(arg) {
		num, err := strconv.Atoi(arg)
		if err != nil {
			return TaskRef{}, fmt.Errorf("invalid task reference: %s", arg)
		}
		return TaskRef{Num: num}, nil
	}

	if id, ok := strings.CutPrefix(arg, idPrefix); ok {
		if id == "" {
			return TaskRef{}, ErrTaskRefRequired
		}
		return TaskRef{ID: id}, nil
	}

	return TaskRef{}, fmt.Errorf("invalid task reference: %s", arg)
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
