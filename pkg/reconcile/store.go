package reconcile

// Store keeps one decision per temp id. Every write goes through Merge so the
// per-kind invariants live in a single merge function.
type Store[D any, P any] struct {
	records map[string]D
	order   []string
	merge   func(current D, patch P) (D, error)
}

type (
	ExerciseStore = Store[ExerciseDecision, ExercisePatch]
	SetStore      = Store[ExerciseSetDecision, SetPatch]
	NoteStore     = Store[ClinicalNoteDecision, NotePatch]
)

func NewExerciseStore() *ExerciseStore {
	return newStore(mergeExercise)
}

func NewSetStore() *SetStore {
	return newStore(mergeSet)
}

func NewNoteStore() *NoteStore {
	return newStore(mergeNote)
}

func newStore[D any, P any](merge func(D, P) (D, error)) *Store[D, P] {
	return &Store[D, P]{
		records: make(map[string]D),
		merge:   merge,
	}
}

func (s *Store[D, P]) Get(tempID string) (D, bool) {
	d, ok := s.records[tempID]
	return d, ok
}

// Merge applies patch to the record for tempID, creating it when absent.
// On error the stored record is left as it was.
func (s *Store[D, P]) Merge(tempID string, patch P) error {
	current, exists := s.records[tempID]
	next, err := s.merge(current, patch)
	if err != nil {
		return err
	}
	if !exists {
		s.order = append(s.order, tempID)
	}
	s.records[tempID] = next
	return nil
}

// put installs a record verbatim. Only used for defaults and restores.
func (s *Store[D, P]) put(tempID string, d D) {
	if _, exists := s.records[tempID]; !exists {
		s.order = append(s.order, tempID)
	}
	s.records[tempID] = d
}

// All returns a copy of the records keyed by temp id.
func (s *Store[D, P]) All() map[string]D {
	out := make(map[string]D, len(s.records))
	for id, d := range s.records {
		out[id] = d
	}
	return out
}

// IDs returns temp ids in first-write order.
func (s *Store[D, P]) IDs() []string {
	return append([]string(nil), s.order...)
}

func (s *Store[D, P]) Len() int {
	return len(s.records)
}

func (s *Store[D, P]) Clone() *Store[D, P] {
	c := &Store[D, P]{
		records: s.All(),
		order:   s.IDs(),
		merge:   s.merge,
	}
	return c
}
