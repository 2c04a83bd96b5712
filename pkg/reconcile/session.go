package reconcile

import (
	"encoding/json"
	"errors"
)

var (
	ErrUnknownItem    = errors.New("unknown import item")
	ErrSetIneligible  = errors.New("set has no active exercises")
	ErrUnknownCommand = errors.New("unknown import command")
)

// Input is everything the extraction and catalog collaborators hand over when
// the review starts.
type Input struct {
	Exercises           []ExtractedExercise          `json:"exercises"`
	Sets                []ExtractedExerciseSet       `json:"sets"`
	Notes               []ExtractedClinicalNote      `json:"notes"`
	DetectedPatientName string                       `json:"detectedPatientName,omitempty"`
	Suggestions         map[string][]MatchSuggestion `json:"suggestions"`
}

type Options struct {
	AssignSetsToPatient  bool `json:"assignSetsToPatient"`
	CreateSetAfterImport bool `json:"createSetAfterImport"`
}

// Session is the mutable state of one import review. It is not safe for
// concurrent use; callers serialise access.
type Session struct {
	input    Input
	exercise map[string]int
	set      map[string]int
	note     map[string]int

	exerciseDecisions *ExerciseStore
	setDecisions      *SetStore
	noteDecisions     *NoteStore

	patientID string
	options   Options
}

// NewSession classifies every exercise and seeds default decisions. Items
// repeating an earlier temp id are dropped.
func NewSession(in Input) *Session {
	s := newEmptySession(in)
	for _, e := range s.input.Exercises {
		sugg := s.input.Suggestions[e.TempID]
		s.exerciseDecisions.put(e.TempID, DefaultDecision(Classify(sugg), sugg))
	}
	for _, set := range s.input.Sets {
		action := SetActionSkip
		if IsEligible(set, s.exerciseDecisions) {
			action = SetActionCreate
		}
		s.setDecisions.put(set.TempID, ExerciseSetDecision{Action: action})
	}
	for _, n := range s.input.Notes {
		s.noteDecisions.put(n.TempID, ClinicalNoteDecision{Action: NoteActionCreate})
	}
	return s
}

func newEmptySession(in Input) *Session {
	s := &Session{
		exercise:          make(map[string]int),
		set:               make(map[string]int),
		note:              make(map[string]int),
		exerciseDecisions: NewExerciseStore(),
		setDecisions:      NewSetStore(),
		noteDecisions:     NewNoteStore(),
	}

	s.input.DetectedPatientName = in.DetectedPatientName
	s.input.Suggestions = make(map[string][]MatchSuggestion, len(in.Suggestions))
	for id, list := range in.Suggestions {
		s.input.Suggestions[id] = append([]MatchSuggestion(nil), list...)
	}
	for _, e := range in.Exercises {
		if _, dup := s.exercise[e.TempID]; dup {
			continue
		}
		s.exercise[e.TempID] = len(s.input.Exercises)
		s.input.Exercises = append(s.input.Exercises, e)
	}
	for _, set := range in.Sets {
		if _, dup := s.set[set.TempID]; dup {
			continue
		}
		s.set[set.TempID] = len(s.input.Sets)
		s.input.Sets = append(s.input.Sets, set)
	}
	for _, n := range in.Notes {
		if _, dup := s.note[n.TempID]; dup {
			continue
		}
		s.note[n.TempID] = len(s.input.Notes)
		s.input.Notes = append(s.input.Notes, n)
	}
	return s
}

func (s *Session) Exercises() []ExtractedExercise { return s.input.Exercises }
func (s *Session) Sets() []ExtractedExerciseSet { return s.input.Sets }
func (s *Session) Notes() []ExtractedClinicalNote { return s.input.Notes }
func (s *Session) DetectedPatientName() string { return s.input.DetectedPatientName }
func (s *Session) PatientID() string { return s.patientID }
func (s *Session) Options() Options { return s.options }
func (s *Session) ExerciseDecisions() *ExerciseStore { return s.exerciseDecisions.Clone() }

func (s *Session) Exercise(tempID string) (ExtractedExercise, bool) {
	i, ok := s.exercise[tempID]
	if !ok {
		return ExtractedExercise{}, false
	}
	return s.input.Exercises[i], true
}

func (s *Session) Set(tempID string) (ExtractedExerciseSet, bool) {
	i, ok := s.set[tempID]
	if !ok {
		return ExtractedExerciseSet{}, false
	}
	return s.input.Sets[i], true
}

// Suggestions returns the current snapshot for an exercise, best first.
func (s *Session) Suggestions(tempID string) []MatchSuggestion {
	return s.input.Suggestions[tempID]
}

func (s *Session) Bucket(tempID string) Bucket {
	return Classify(s.input.Suggestions[tempID])
}

// BucketMembers lists exercise temp ids in the given bucket, in extraction order.
func (s *Session) BucketMembers(b Bucket) []string {
	var ids []string
	for _, e := range s.input.Exercises {
		if s.Bucket(e.TempID) == b {
			ids = append(ids, e.TempID)
		}
	}
	return ids
}

func (s *Session) ExerciseDecision(tempID string) (ExerciseDecision, bool) {
	return s.exerciseDecisions.Get(tempID)
}

func (s *Session) SetDecision(tempID string) (ExerciseSetDecision, bool) {
	return s.setDecisions.Get(tempID)
}

func (s *Session) NoteDecision(tempID string) (ClinicalNoteDecision, bool) {
	return s.noteDecisions.Get(tempID)
}

func (s *Session) AllExerciseDecisions() map[string]ExerciseDecision {
	return s.exerciseDecisions.All()
}

func (s *Session) AllSetDecisions() map[string]ExerciseSetDecision {
	return s.setDecisions.All()
}

func (s *Session) AllNoteDecisions() map[string]ClinicalNoteDecision {
	return s.noteDecisions.All()
}

// IsSetEligible reports whether the set has at least one active member right now.
func (s *Session) IsSetEligible(setTempID string) bool {
	set, ok := s.Set(setTempID)
	if !ok {
		return false
	}
	return IsEligible(set, s.exerciseDecisions)
}

func (s *Session) Stats() Stats {
	return ComputeStats(s.exerciseDecisions)
}

// ConfidentProgress counts confident exercises currently set to reuse.
func (s *Session) ConfidentProgress() Progress {
	var p Progress
	for _, id := range s.BucketMembers(BucketConfident) {
		p.Total++
		if d, ok := s.exerciseDecisions.Get(id); ok && d.Action == ExerciseActionReuse {
			p.Approved++
		}
	}
	return p
}

func (s *Session) Summary() Summary {
	stats := s.Stats()
	sum := Summary{
		Exercises:         stats,
		TotalToImport:     stats.TotalToImport(),
		CanProceed:        stats.CanProceed(),
		ConfidentProgress: s.ConfidentProgress(),
	}
	for _, set := range s.input.Sets {
		d, _ := s.setDecisions.Get(set.TempID)
		eligible := IsEligible(set, s.exerciseDecisions)
		if !eligible {
			sum.IneligibleSets++
		}
		if d.Action == SetActionCreate && eligible {
			sum.SetsToCreate++
		} else {
			sum.SetsSkipped++
		}
	}
	for _, n := range s.input.Notes {
		if d, _ := s.noteDecisions.Get(n.TempID); d.Action == NoteActionCreate {
			sum.NotesToCreate++
		} else {
			sum.NotesSkipped++
		}
	}
	return sum
}

// SuggestPatient matches the detected patient name against the roster.
func (s *Session) SuggestPatient(roster []PatientOption) *PatientOption {
	if s.input.DetectedPatientName == "" {
		return nil
	}
	return SuggestPatient(s.input.DetectedPatientName, roster)
}

// StaleReuseDecisions lists exercises whose reuse target is missing from their
// current suggestion snapshot. They are reported, not repaired.
func (s *Session) StaleReuseDecisions() []string {
	var stale []string
	for _, e := range s.input.Exercises {
		d, ok := s.exerciseDecisions.Get(e.TempID)
		if !ok || d.Action != ExerciseActionReuse {
			continue
		}
		found := false
		for _, sg := range s.input.Suggestions[e.TempID] {
			if sg.ExistingExerciseID == d.ReuseExerciseID {
				found = true
				break
			}
		}
		if !found {
			stale = append(stale, e.TempID)
		}
	}
	return stale
}

// SessionState is the serialisable form of a Session.
type SessionState struct {
	Input             Input                           `json:"input"`
	ExerciseDecisions map[string]ExerciseDecision     `json:"exerciseDecisions"`
	SetDecisions      map[string]ExerciseSetDecision  `json:"setDecisions"`
	NoteDecisions     map[string]ClinicalNoteDecision `json:"noteDecisions"`
	PatientID         string                          `json:"patientId,omitempty"`
	Options           Options                         `json:"options"`
}

func (s *Session) State() SessionState {
	return SessionState{
		Input:             s.input,
		ExerciseDecisions: s.exerciseDecisions.All(),
		SetDecisions:      s.setDecisions.All(),
		NoteDecisions:     s.noteDecisions.All(),
		PatientID:         s.patientID,
		Options:           s.options,
	}
}

// RestoreSession rebuilds a session from its state. Items without a stored
// decision get their defaults.
func RestoreSession(state SessionState) *Session {
	s := NewSession(state.Input)
	for _, e := range s.input.Exercises {
		if d, ok := state.ExerciseDecisions[e.TempID]; ok {
			s.exerciseDecisions.put(e.TempID, d)
		}
	}
	for _, set := range s.input.Sets {
		if d, ok := state.SetDecisions[set.TempID]; ok {
			s.setDecisions.put(set.TempID, d)
		}
	}
	for _, n := range s.input.Notes {
		if d, ok := state.NoteDecisions[n.TempID]; ok {
			s.noteDecisions.put(n.TempID, d)
		}
	}
	s.patientID = state.PatientID
	s.options = state.Options
	return s
}

func (s *Session) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.State())
}

func (s *Session) UnmarshalJSON(data []byte) error {
	var state SessionState
	if err := json.Unmarshal(data, &state); err != nil {
		return err
	}
	*s = *RestoreSession(state)
	return nil
}
