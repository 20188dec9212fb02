package domain

// RunEntry is one line of run history.
type RunEntry struct {
	Timestamp  string  `json:"timestamp"`
	CommitHash string  `json:"commit_hash,omitempty"`
	Oracle     string  `json:"oracle"`
	Total      int     `json:"total"`
	Failed     int     `json:"failed"`
	Verdict    Verdict `json:"verdict"`
}
