package backend

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/buger/jsonparser"

	"github.com/ekisa-team/modelhandler/internal/table"
)

// Payload is the decoded body of a request entry. It is one of
// *RecordsPayload or *URLPayload.
type Payload interface {
	payload()
}

// RecordsPayload carries an inline record set.
type RecordsPayload struct {
	Table *table.Table
}

// URLPayload references an external resource the backend should fetch.
type URLPayload struct {
	URL string
}

func (*RecordsPayload) payload() {}
func (*URLPayload) payload()     {}

// DecodePayload decodes an entry body. An object with a string "url" member is
// a URL reference; anything else must be a record set.
func DecodePayload(body []byte) (Payload, error) {
	if !utf8.Valid(body) {
		return nil, fmt.Errorf("%w: body is not valid UTF-8", ErrMalformedPayload)
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPayload, table.ErrMalformedJSON)
	}

	_, dataType, _, err := jsonparser.Get(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}

	if dataType == jsonparser.Object {
		if url, err := jsonparser.GetString(body, "url"); err == nil {
			return &URLPayload{URL: url}, nil
		}
	}

	t, err := table.FromJSON(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}
	return &RecordsPayload{Table: t}, nil
}

// DecodeRecords decodes the first entry of req as a record set.
func DecodeRecords(req Request) (*table.Table, error) {
	entry, err := req.First()
	if err != nil {
		return nil, err
	}
	p, err := DecodePayload(entry.Body)
	if err != nil {
		return nil, err
	}
	records, ok := p.(*RecordsPayload)
	if !ok {
		return nil, fmt.Errorf("%w: expected a record set, got a url reference", ErrUnexpectedPayload)
	}
	return records.Table, nil
}

// DecodeURL decodes the first entry of req as a URL reference.
func DecodeURL(req Request) (string, error) {
	entry, err := req.First()
	if err != nil {
		return "", err
	}
	p, err := DecodePayload(entry.Body)
	if err != nil {
		return "", err
	}
	ref, ok := p.(*URLPayload)
	if !ok {
		return "", fmt.Errorf("%w: expected an object with a url member", ErrUnexpectedPayload)
	}
	return ref.URL, nil
}
