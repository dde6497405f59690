package backend

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePayload_Records(t *testing.T) {
	p, err := DecodePayload([]byte(`[{"a":1},{"a":2}]`))
	require.NoError(t, err)

	records, ok := p.(*RecordsPayload)
	require.True(t, ok)
	assert.Equal(t, 2, records.Table.NumRows())
}

func TestDecodePayload_URL(t *testing.T) {
	p, err := DecodePayload([]byte(`{"url":"https://example.com/data.json"}`))
	require.NoError(t, err)

	ref, ok := p.(*URLPayload)
	require.True(t, ok)
	assert.Equal(t, "https://example.com/data.json", ref.URL)
}

func TestDecodePayload_NonStringURLIsARecord(t *testing.T) {
	p, err := DecodePayload([]byte(`{"url":42}`))
	require.NoError(t, err)

	records, ok := p.(*RecordsPayload)
	require.True(t, ok)
	out, err := json.Marshal(records.Table)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"url":42}]`, string(out))
}

func TestDecodePayload_Malformed(t *testing.T) {
	for _, body := range [][]byte{
		[]byte(`not json`),
		[]byte(`"just a string"`),
		[]byte(`{"url":"http://x"} trailing-junk`),
		{0xff, 0xfe},
		nil,
	} {
		_, err := DecodePayload(body)
		assert.ErrorIs(t, err, ErrMalformedPayload, "body %q", body)
	}
}

func TestDecodeRecordsAndURL(t *testing.T) {
	_, err := DecodeRecords(nil)
	assert.ErrorIs(t, err, ErrEmptyRequest)

	_, err = DecodeRecords(NewRequest([]byte(`{"url":"http://x"}`), nil))
	assert.ErrorIs(t, err, ErrUnexpectedPayload)

	_, err = DecodeURL(NewRequest([]byte(`{"a":1}`), nil))
	assert.ErrorIs(t, err, ErrUnexpectedPayload)

	url, err := DecodeURL(NewRequest([]byte(`{"url":"http://x"}`), nil))
	require.NoError(t, err)
	assert.Equal(t, "http://x", url)
}

func TestRequest_First(t *testing.T) {
	var empty Request
	assert.True(t, empty.IsEmpty())

	req := Request{{Body: []byte("1")}, {Body: []byte("2")}}
	first, err := req.First()
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), first.Body)
}
