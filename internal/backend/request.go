package backend

// Entry is one element of a request: a raw payload plus optional metadata
// supplied by the host (for example the content type).
type Entry struct {
	Body     []byte
	Metadata map[string]string
}

// Request is the ordered sequence of entries handed to a backend.
// Current backends only consume the first entry.
type Request []Entry

// IsEmpty reports whether the request carries no entries.
func (r Request) IsEmpty() bool {
	return len(r) == 0
}

// First returns the first entry.
func (r Request) First() (Entry, error) {
	if len(r) == 0 {
		return Entry{}, ErrEmptyRequest
	}
	return r[0], nil
}

// NewRequest builds a single-entry request.
func NewRequest(body []byte, metadata map[string]string) Request {
	return Request{{Body: body, Metadata: metadata}}
}
