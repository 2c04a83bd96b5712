package reconcile

// Command is one user or bulk action against a session. Commands are applied
// through Session.Dispatch.
type Command interface {
	apply(s *Session) (Result, error)
}

// Result reports what a dispatched command changed.
type Result struct {
	Changed int `json:"changed"`
}

// Dispatch applies cmd. A failed command leaves the session unchanged.
func (s *Session) Dispatch(cmd Command) (Result, error) {
	if cmd == nil {
		return Result{}, ErrUnknownCommand
	}
	return cmd.apply(s)
}

type SetExerciseDecision struct {
	TempID string
	Patch  ExercisePatch
}

func (c SetExerciseDecision) apply(s *Session) (Result, error) {
	if _, ok := s.exercise[c.TempID]; !ok {
		return Result{}, ErrUnknownItem
	}
	if err := s.exerciseDecisions.Merge(c.TempID, c.Patch); err != nil {
		return Result{}, err
	}
	return Result{Changed: 1}, nil
}

// SetSetDecision refuses to mark an ineligible set for creation. Sets already
// marked create are left alone when they lose their last active member.
type SetSetDecision struct {
	TempID string
	Patch  SetPatch
}

func (c SetSetDecision) apply(s *Session) (Result, error) {
	set, ok := s.Set(c.TempID)
	if !ok {
		return Result{}, ErrUnknownItem
	}
	if c.Patch.Action != nil && *c.Patch.Action == SetActionCreate && !IsEligible(set, s.exerciseDecisions) {
		return Result{}, ErrSetIneligible
	}
	if err := s.setDecisions.Merge(c.TempID, c.Patch); err != nil {
		return Result{}, err
	}
	return Result{Changed: 1}, nil
}

type SetNoteDecision struct {
	TempID string
	Patch  NotePatch
}

func (c SetNoteDecision) apply(s *Session) (Result, error) {
	if _, ok := s.note[c.TempID]; !ok {
		return Result{}, ErrUnknownItem
	}
	if err := s.noteDecisions.Merge(c.TempID, c.Patch); err != nil {
		return Result{}, err
	}
	return Result{Changed: 1}, nil
}

type ApplyBulk struct {
	Action BulkAction
}

func (c ApplyBulk) apply(s *Session) (Result, error) {
	n, err := s.applyBulk(c.Action)
	if err != nil {
		return Result{}, err
	}
	return Result{Changed: n}, nil
}

// ApproveAllConfident, UseAllMatched, SetAllCreate and SetAllSkip are the
// fixed bulk commands.
var (
	ApproveAllConfident = ApplyBulk{Action: BulkApproveAllConfident}
	UseAllMatched       = ApplyBulk{Action: BulkUseAllMatched}
	SetAllCreate        = ApplyBulk{Action: BulkSetAllCreate}
	SetAllSkip          = ApplyBulk{Action: BulkSetAllSkip}
)

// BindPatient binds the import to a patient. An empty id unbinds.
type BindPatient struct {
	PatientID string
}

func (c BindPatient) apply(s *Session) (Result, error) {
	if s.patientID == c.PatientID {
		return Result{}, nil
	}
	s.patientID = c.PatientID
	return Result{Changed: 1}, nil
}

type SetImportOptions struct {
	AssignSetsToPatient  *bool
	CreateSetAfterImport *bool
}

func (c SetImportOptions) apply(s *Session) (Result, error) {
	before := s.options
	if c.AssignSetsToPatient != nil {
		s.options.AssignSetsToPatient = *c.AssignSetsToPatient
	}
	if c.CreateSetAfterImport != nil {
		s.options.CreateSetAfterImport = *c.CreateSetAfterImport
	}
	if before == s.options {
		return Result{}, nil
	}
	return Result{Changed: 1}, nil
}

// ReplaceSuggestions installs a fresh suggestion snapshot for one exercise
// ("change match"). The exercise's decision is kept as is, even if its reuse
// target is no longer listed.
type ReplaceSuggestions struct {
	TempID      string
	Suggestions []MatchSuggestion
}

func (c ReplaceSuggestions) apply(s *Session) (Result, error) {
	if _, ok := s.exercise[c.TempID]; !ok {
		return Result{}, ErrUnknownItem
	}
	s.input.Suggestions[c.TempID] = append([]MatchSuggestion(nil), c.Suggestions...)
	return Result{Changed: 1}, nil
}
