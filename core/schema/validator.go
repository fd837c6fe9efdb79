package schema

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/asaidimu/go-qsdata/core"
)

// Issue codes reported by the Validator.
const (
	IssueEmptyCollection = "EMPTY_COLLECTION"
	IssueMissingKey      = "MISSING_KEY"
	IssueInvalidValue    = "INVALID_VALUE"
	IssueNotNumeric      = "NOT_NUMERIC"
	IssueNonUniformType  = "NON_UNIFORM_TYPE"
)

// KeyRequirement describes what an operation expects of the values stored
// under a single key.
type KeyRequirement struct {
	// Key is the record key being checked.
	Key string
	// Required makes a missing key an issue.
	Required bool
	// Uniform requires every value under Key to share the first record's kind.
	Uniform bool
	// Numeric requires every value to be an integer or a numeric string.
	Numeric bool
	// NonEmpty rejects an empty collection.
	NonEmpty bool
}

// Validator checks collections against a KeyRequirement. Issues are
// reported in record order, so the first issue always concerns the earliest
// offending record.
type Validator struct {
	req    KeyRequirement
	issues []Issue
}

// NewValidator creates a Validator for the given requirement. The same
// instance can validate any number of collections.
func NewValidator(req KeyRequirement) *Validator {
	return &Validator{
		req:    req,
		issues: make([]Issue, 0),
	}
}

// Validate checks c and returns whether it passed along with every issue
// found.
func (v *Validator) Validate(c Collection) (bool, []Issue) {
	v.issues = make([]Issue, 0)

	if v.req.NonEmpty && len(c) == 0 {
		v.addIssue(IssueEmptyCollection, "collection must not be empty", "")
		return false, v.issues
	}

	first := KindInvalid
	for i, record := range c {
		path := v.buildPath(i)
		value, exists := record[v.req.Key]
		if !exists {
			if v.req.Required {
				v.addIssue(IssueMissingKey, fmt.Sprintf("Key '%s' not found in record", v.req.Key), path)
			}
			continue
		}

		kind := KindOf(value)
		if kind == KindInvalid {
			v.addIssue(IssueInvalidValue, "Value should be an int or a string, got null", path)
			continue
		}

		if v.req.Numeric {
			if _, ok := ToInt64(value); !ok {
				v.addIssue(IssueNotNumeric, fmt.Sprintf("Value %q is not an integer", value.Format()), path)
				continue
			}
		}

		if v.req.Uniform {
			if first == KindInvalid {
				first = kind
			} else if kind != first {
				v.addIssue(IssueNonUniformType, fmt.Sprintf("Expected %s, got %s", first, kind), path)
			}
		}
	}

	return len(v.issues) == 0, v.issues
}

// Check validates c and converts the first issue, if any, into an error
// wrapping the matching core sentinel.
func (v *Validator) Check(c Collection) error {
	if ok, issues := v.Validate(c); !ok {
		return IssueError(issues[0], v.req.Key)
	}
	return nil
}

// IssueError converts a validation issue into a typed error.
func IssueError(issue Issue, key string) error {
	switch issue.Code {
	case IssueMissingKey:
		return &core.MissingKeyError{Key: key, Index: pathIndex(issue.Path)}
	case IssueNonUniformType:
		return core.NonUniformType("%s at %s", issue.Message, issue.Path)
	case IssueEmptyCollection:
		return core.InvalidArgument("%s", issue.Message)
	default:
		return core.InvalidArgument("%s at %s", issue.Message, issue.Path)
	}
}

// ToInt64 coerces a value to an integer. Integers pass through; strings are
// accepted when they hold an optionally signed base-10 integer, surrounding
// whitespace allowed.
func ToInt64(v Value) (int64, bool) {
	switch val := v.(type) {
	case IntValue:
		return int64(val), true
	case StringValue:
		i, err := strconv.ParseInt(strings.TrimSpace(string(val)), 10, 64)
		return i, err == nil
	default:
		return 0, false
	}
}

func (v *Validator) addIssue(code, message, path string) {
	v.issues = append(v.issues, Issue{
		Code:     code,
		Message:  message,
		Path:     path,
		Severity: "error",
	})
}

func (v *Validator) buildPath(index int) string {
	return fmt.Sprintf("[%d].%s", index, v.req.Key)
}

// pathIndex recovers the record index from a path built by buildPath.
func pathIndex(path string) int {
	end := strings.IndexByte(path, ']')
	if !strings.HasPrefix(path, "[") || end < 0 {
		return -1
	}
	i, err := strconv.Atoi(path[1:end])
	if err != nil {
		return -1
	}
	return i
}
