package domain

// OracleCache maps fixture content digests to a previous oracle verdict.
type OracleCache struct {
	StateDir string                       `json:"state_dir"`
	Entries  map[string]CachedOracleEntry `json:"entries"`
}

// CachedOracleEntry is a stored oracle verdict. Unavailability is never
// cached since it describes the environment, not the document.
type CachedOracleEntry struct {
	Oracle    string         `json:"oracle"`
	Summary   *OracleSummary `json:"summary,omitempty"`
	Rejection string         `json:"rejection,omitempty"`
}

// Key builds the cache key for an oracle and a content digest.
func (c *OracleCache) Key(oracle, digest string) string {
	return oracle + ":" + digest
}

// Lookup returns the stored entry for the oracle and digest, if any.
func (c *OracleCache) Lookup(oracle, digest string) (CachedOracleEntry, bool) {
	if c == nil || c.Entries == nil {
		return CachedOracleEntry{}, false
	}
	e, ok := c.Entries[c.Key(oracle, digest)]
	return e, ok
}

// Store records an oracle verdict.
func (c *OracleCache) Store(oracle, digest string, entry CachedOracleEntry) {
	if c.Entries == nil {
		c.Entries = make(map[string]CachedOracleEntry)
	}
	entry.Oracle = oracle
	c.Entries[c.Key(oracle, digest)] = entry
}
