package auth

// SessionID names one of the sessions a model can be logged into. The
// default (unnamed) session is DefaultSessionID.
type SessionID string

const DefaultSessionID SessionID = ""

// Key derives the storage key (cookie name, session key) for this session
// from base: base itself for the default session, "<id>_<base>" otherwise.
func (id SessionID) Key(base string) string {
	if id == DefaultSessionID {
		return base
	}
	return string(id) + "_" + base
}

// IsDefault reports whether id is the unnamed session.
func (id SessionID) IsDefault() bool {
	return id == DefaultSessionID
}

// SessionKeys returns the storage keys of every session id of the model,
// in order, with the primary session first.
func (c *Config) SessionKeys(base string) []string {
	keys := make([]string, 0, len(c.SessionIDs))
	for _, id := range c.SessionIDs {
		keys = append(keys, id.Key(base))
	}
	return keys
}
