package diagnosis

type Disease struct {
	ID          int64
	Name        string
	Description string
	Precautions string
	Symptoms    []string
}

// Match is one candidate disease scored against the reported symptoms.
type Match struct {
	Disease Disease
	Matched []string
	Score   int
}
