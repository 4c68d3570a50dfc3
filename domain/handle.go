package domain

// Handle identifies the UI client that owns persisted state, the analogue of a browser profile.
type Handle string

// Key namespaces a base store key by handle. The empty handle uses the bare key.
func (h Handle) Key(base string) string {
	if h == "" {
		return base
	}
	return base + ":" + string(h)
}

func (h Handle) String() string {
	return string(h)
}
