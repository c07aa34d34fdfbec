package job

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
)

// DocTypeJob tags documents the status index processes. Documents carrying
// any other type tag are ignored by the map step.
const DocTypeJob = "job"

// ErrEmptyHistory indicates a job document whose transition log has no
// entries, which leaves nothing to classify.
var ErrEmptyHistory = errors.New("empty transition history")

// Transition is one recorded lifecycle hop: the state left, the state
// entered, and the execution site at the time of the hop.
type Transition struct {
	OldState State  `json:"oldstate"`
	NewState State  `json:"newstate"`
	Location string `json:"location"`
}

// Site returns the transition's location as an explicit Site value.
func (t Transition) Site() Site {
	return SiteAt(t.Location)
}

// TransitionLog is the chronological sequence of transitions for one job.
// Position is significant and is preserved exactly as stored.
type TransitionLog []Transition

// Document is the job snapshot read at index time. Only the fields consumed
// by the map step are decoded; everything else in the stored document is
// opaque to this system.
type Document struct {
	ID       string        `json:"_id,omitempty"`
	Type     string        `json:"type"`
	Workflow string        `json:"workflow"`
	States   TransitionLog `json:"states"`
}

// IsJob reports whether the document is tagged for status indexing.
func (d *Document) IsJob() bool {
	return d != nil && d.Type == DocTypeJob
}

// Last returns the transition at the highest chronological position together
// with its index. An empty log returns ErrEmptyHistory.
func (l TransitionLog) Last() (Transition, int, error) {
	if len(l) == 0 {
		return Transition{}, -1, ErrEmptyHistory
	}
	last := len(l) - 1
	return l[last], last, nil
}

// UnmarshalJSON decodes a transition log from either an ordered array or a
// mapping keyed by stringified positional indices. Some document hosts store
// the sequence in the map form; its keys are ordered by numeric value, never
// by lexicographic key iteration, which would place "10" before "2".
func (l *TransitionLog) UnmarshalJSON(data []byte) error {
	trimmed := firstNonSpace(data)
	switch trimmed {
	case '[':
		var seq []Transition
		if err := json.Unmarshal(data, &seq); err != nil {
			return fmt.Errorf("decode transition array: %w", err)
		}
		*l = seq
		return nil
	case '{':
		var keyed map[string]Transition
		if err := json.Unmarshal(data, &keyed); err != nil {
			return fmt.Errorf("decode transition map: %w", err)
		}
		positions := make([]int, 0, len(keyed))
		byPosition := make(map[int]Transition, len(keyed))
		for key, transition := range keyed {
			position, err := strconv.Atoi(key)
			if err != nil {
				return fmt.Errorf("transition key %q is not a position: %w", key, err)
			}
			if _, exists := byPosition[position]; exists {
				return fmt.Errorf("duplicate transition position %d", position)
			}
			positions = append(positions, position)
			byPosition[position] = transition
		}
		sort.Ints(positions)
		seq := make([]Transition, 0, len(positions))
		for _, position := range positions {
			seq = append(seq, byPosition[position])
		}
		*l = seq
		return nil
	case 'n':
		// JSON null: no transitions recorded yet.
		*l = nil
		return nil
	default:
		return fmt.Errorf("transition log must be an array or an index-keyed object")
	}
}

func firstNonSpace(data []byte) byte {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}
		return b
	}
	return 0
}

// DecodeDocument parses a stored job document. Unknown fields are ignored.
func DecodeDocument(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode job document: %w", err)
	}
	return &doc, nil
}
