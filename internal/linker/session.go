package linker

// Session carries per-visit state that the page would otherwise read from
// the query string. A non-empty PrefillCID pins the CID for the session.
type Session struct {
	PrefillCID string `json:"prefill_cid,omitempty"`
}

func (s Session) ReadOnly() bool {
	return s.PrefillCID != ""
}

// ResolveCID applies the prefill to a submitted CID. An empty submission
// takes the prefill; any other value must equal it.
func (s Session) ResolveCID(submitted string) (string, bool) {
	if !s.ReadOnly() {
		return submitted, true
	}
	if submitted == "" || submitted == s.PrefillCID {
		return s.PrefillCID, true
	}
	return "", false
}
