// Package fetch provides a backend that downloads the record set referenced by
// the "url" member of the request body.
//
// Outbound calls are mediated: only http and https are allowed, every call has
// a timeout, the response size is capped, and an optional host allow-list
// restricts where the backend may connect.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/buger/jsonparser"

	"github.com/ekisa-team/modelhandler/internal/backend"
	"github.com/ekisa-team/modelhandler/internal/mapsafe"
	"github.com/ekisa-team/modelhandler/internal/table"
)

const (
	// BackendName is the identifier the backend is registered under.
	BackendName = "fetch"

	DefaultTimeout  = 30 * time.Second
	DefaultMaxBytes = int64(32 << 20)

	maxRedirects = 10
)

// Error definitions for the fetch backend.
var (
	ErrSchemeNotAllowed = errors.New("url scheme not allowed")
	ErrHostNotAllowed   = errors.New("url host not allowed")
	ErrBadStatus        = errors.New("unexpected response status")
	ErrTooLarge         = errors.New("response exceeds size limit")
	ErrFieldNotFound    = errors.New("field not found in response")
	ErrTooManyRedirects = errors.New("too many redirects")
)

func init() {
	backend.Register(BackendName, New)
}

// Backend implements backend.Backend.
type Backend struct {
	client   *http.Client
	allowed  map[string]bool
	maxBytes int64
	field    []string
	column   string
	value    string
}

// New creates the backend. Recognised params: timeout, allowed_hosts,
// max_bytes, field (dot separated path), column and value.
func New(def backend.Definition) (backend.Backend, error) {
	b := &Backend{
		maxBytes: mapsafe.Get(def.Params, "max_bytes", DefaultMaxBytes),
		column:   mapsafe.Get(def.Params, "column", ""),
		value:    mapsafe.Get(def.Params, "value", ""),
	}

	if b.maxBytes <= 0 {
		return nil, fmt.Errorf("fetch: max_bytes must be positive, got %d", b.maxBytes)
	}

	if hosts := mapsafe.Get(def.Params, "allowed_hosts", []string(nil)); len(hosts) > 0 {
		b.allowed = make(map[string]bool, len(hosts))
		for _, h := range hosts {
			b.allowed[strings.ToLower(h)] = true
		}
	}

	if field := mapsafe.Get(def.Params, "field", ""); field != "" {
		b.field = strings.Split(field, ".")
	}

	b.client = &http.Client{
		Timeout:       mapsafe.Get(def.Params, "timeout", DefaultTimeout),
		CheckRedirect: b.checkRedirect,
	}

	return b, nil
}

// Run fetches the referenced document and decodes it as a record set.
func (b *Backend) Run(ctx context.Context, req backend.Request) (*table.Table, error) {
	raw, err := backend.DecodeURL(req)
	if err != nil {
		return nil, err
	}

	target, err := b.checkURL(raw)
	if err != nil {
		return nil, err
	}

	body, err := b.download(ctx, target)
	if err != nil {
		return nil, err
	}

	if len(b.field) > 0 {
		value, dataType, _, err := jsonparser.Get(body, b.field...)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrFieldNotFound, strings.Join(b.field, "."))
		}
		if dataType != jsonparser.Array && dataType != jsonparser.Object {
			return nil, fmt.Errorf("fetch: field %s: %w", strings.Join(b.field, "."), table.ErrNotRecordSet)
		}
		body = value
	}

	t, err := table.FromJSON(body)
	if err != nil {
		return nil, fmt.Errorf("fetch: decode %s: %w", target.Redacted(), err)
	}

	if b.column != "" {
		t.SetConstant(b.column, b.value)
	}
	return t, nil
}

func (b *Backend) checkURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: %q", ErrSchemeNotAllowed, u.Scheme)
	}
	if b.allowed != nil && !b.allowed[strings.ToLower(u.Hostname())] {
		return nil, fmt.Errorf("%w: %s", ErrHostNotAllowed, u.Hostname())
	}
	return u, nil
}

// checkRedirect applies the scheme and host rules to every redirect hop.
func (b *Backend) checkRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return fmt.Errorf("%w: stopped after %d", ErrTooManyRedirects, len(via))
	}
	_, err := b.checkURL(req.URL.String())
	return err
}

func (b *Backend) download(ctx context.Context, target *url.URL) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("fetch: failed to create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := b.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s from %s", ErrBadStatus, resp.Status, target.Redacted())
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, b.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("fetch: read response: %w", err)
	}
	if int64(len(body)) > b.maxBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, b.maxBytes)
	}
	return body, nil
}
