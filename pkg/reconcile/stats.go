package reconcile

// Stats partitions exercise decisions by action. The three counts always sum
// to the number of stored decisions.
type Stats struct {
	ReuseCount  int `json:"reuseCount"`
	CreateCount int `json:"createCount"`
	SkipCount   int `json:"skipCount"`
}

func ComputeStats(exercises *ExerciseStore) Stats {
	var s Stats
	for _, d := range exercises.records {
		switch d.Action {
		case ExerciseActionReuse:
			s.ReuseCount++
		case ExerciseActionSkip:
			s.SkipCount++
		default:
			s.CreateCount++
		}
	}
	return s
}

func (s Stats) Total() int {
	return s.ReuseCount + s.CreateCount + s.SkipCount
}

// TotalToImport counts exercises that will reach the catalog or a set.
func (s Stats) TotalToImport() int {
	return s.ReuseCount + s.CreateCount
}

// CanProceed gates the commit.
func (s Stats) CanProceed() bool {
	return s.TotalToImport() > 0
}

// Progress is a display counter for one bucket section.
type Progress struct {
	Approved int `json:"approved"`
	Total    int `json:"total"`
}

// Summary extends the exercise stats with set and note counts for the commit footer.
type Summary struct {
	Exercises         Stats    `json:"exercises"`
	TotalToImport     int      `json:"totalToImport"`
	CanProceed        bool     `json:"canProceed"`
	ConfidentProgress Progress `json:"confidentProgress"`
	SetsToCreate      int      `json:"setsToCreate"`
	SetsSkipped       int      `json:"setsSkipped"`
	IneligibleSets    int      `json:"ineligibleSets"`
	NotesToCreate     int      `json:"notesToCreate"`
	NotesSkipped      int      `json:"notesSkipped"`
}
