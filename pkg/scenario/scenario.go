// Package scenario reads scripted sequences of associated list
// operations from YAML or JSONC files and replays them.
package scenario

import (
	"bytes"
	"encoding/json"
	"io/fs"
	"path"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/tidwall/jsonc"
	yaml "gopkg.in/yaml.v3"
)

const (
	OpInsert          = "insert"
	OpRemove          = "remove"
	OpGet             = "get"
	OpContains        = "contains"
	OpReserve         = "reserve"
	OpReserveExact    = "reserve_exact"
	OpTryReserve      = "try_reserve"
	OpTryReserveExact = "try_reserve_exact"
	OpShrink          = "shrink"
	OpShrinkToFit     = "shrink_to_fit"
	OpClear           = "clear"
	OpDump            = "dump"

	// opNew is reported when the initial capacity can't be allocated.
	opNew = "new"
)

// Scenario is a scripted sequence of operations on a
// List[string, string].
type Scenario struct {
	// Capacity is the initial capacity of the list.
	Capacity int `yaml:"capacity" json:"capacity"`

	// Budget limits the number of slots the list may allocate.
	// The host heap is used when nil.
	Budget *int `yaml:"budget" json:"budget"`

	Steps []Step `yaml:"steps" json:"steps"`
}

// Step is a single operation.
type Step struct {
	Op    string `yaml:"op" json:"op"`
	Key   string `yaml:"key" json:"key"`
	Value string `yaml:"value" json:"value"`
	N     int    `yaml:"n" json:"n"`
}

// String formats the step the way it's echoed in outputs.
func (s Step) String() string {
	switch s.Op {
	case OpInsert:
		return s.Op + " " + s.Key + "=" + s.Value
	case OpRemove, OpGet, OpContains:
		return s.Op + " " + s.Key
	case OpReserve, OpReserveExact, OpTryReserve, OpTryReserveExact, OpShrink:
		return s.Op + " " + strconv.Itoa(s.N)
	}
	return s.Op
}

// Read reads and validates the scenario file at filePath.
// Files with a .json or .jsonc extension may contain comments
// and trailing commas, anything else is decoded as YAML.
func Read(filesystem fs.FS, filePath string) (*Scenario, error) {
	b, err := fs.ReadFile(filesystem, filePath)
	if err != nil {
		return nil, errors.Wrap(err, "reading scenario")
	}
	s := new(Scenario)
	if err := decode(filePath, b, s); err != nil {
		return nil, &ErrorIllegal{
			FilePath: filePath,
			Message:  err.Error(),
		}
	}
	if err := s.Validate(filePath); err != nil {
		return nil, err
	}
	return s, nil
}

func decode(filePath string, b []byte, s *Scenario) error {
	switch path.Ext(filePath) {
	case ".json", ".jsonc":
		d := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(b)))
		d.DisallowUnknownFields()
		return d.Decode(s)
	}
	d := yaml.NewDecoder(bytes.NewReader(b))
	d.KnownFields(true)
	return d.Decode(s)
}

// Validate checks the scenario read from filePath.
func (s *Scenario) Validate(filePath string) error {
	if s.Capacity < 0 {
		return &ErrorIllegal{
			FilePath: filePath,
			Feature:  "capacity",
			Message:  "must not be negative",
		}
	}
	if s.Budget != nil && *s.Budget < 0 {
		return &ErrorIllegal{
			FilePath: filePath,
			Feature:  "budget",
			Message:  "must not be negative",
		}
	}
	if len(s.Steps) < 1 {
		return &ErrorMissing{FilePath: filePath, Feature: "steps"}
	}
	for i, st := range s.Steps {
		feature := "step " + strconv.Itoa(i)
		switch st.Op {
		case OpInsert, OpRemove, OpGet, OpContains:
			if st.Key == "" {
				return &ErrorMissing{
					FilePath: filePath,
					Feature:  "key of " + feature,
				}
			}
		case OpReserve, OpReserveExact, OpTryReserve, OpTryReserveExact, OpShrink:
			if st.N < 0 {
				return &ErrorIllegal{
					FilePath: filePath,
					Feature:  feature,
					Message:  "n must not be negative",
				}
			}
		case OpShrinkToFit, OpClear, OpDump:
		case "":
			return &ErrorMissing{
				FilePath: filePath,
				Feature:  "op of " + feature,
			}
		default:
			return &ErrorIllegal{
				FilePath: filePath,
				Feature:  feature,
				Message:  "unknown op " + strconv.Quote(st.Op),
			}
		}
	}
	return nil
}

type ErrorMissing struct {
	FilePath string
	Feature  string
}

func (e ErrorMissing) Error() string {
	var b strings.Builder
	if e.Feature == "" {
		b.Grow(len("missing ") + len(e.FilePath))
		b.WriteString("missing ")
		b.WriteString(e.FilePath)
		return b.String()
	}
	b.Grow(len("missing ") + len(e.Feature) + len(" in ") + len(e.FilePath))
	b.WriteString("missing ")
	b.WriteString(e.Feature)
	b.WriteString(" in ")
	b.WriteString(e.FilePath)
	return b.String()
}

type ErrorIllegal struct {
	FilePath string
	Feature  string
	Message  string
}

func (e ErrorIllegal) Error() string {
	var b strings.Builder
	b.WriteString("illegal ")
	if e.Feature != "" {
		b.WriteString(e.Feature)
		b.WriteString(" in ")
	}
	b.WriteString(e.FilePath)
	b.WriteString(": ")
	b.WriteString(e.Message)
	return b.String()
}

// ErrorAborted is returned when an operation that treats
// allocation failure as fatal failed.
type ErrorAborted struct {
	// Step is -1 if the list couldn't be created.
	Step  int
	Op    string
	Cause error
}

func (e ErrorAborted) Error() string {
	if e.Step < 0 {
		return e.Op + " aborted: " + e.Cause.Error()
	}
	return "step " + strconv.Itoa(e.Step) + " (" + e.Op + ") aborted: " +
		e.Cause.Error()
}

func (e ErrorAborted) Unwrap() error { return e.Cause }
