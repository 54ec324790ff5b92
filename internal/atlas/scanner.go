package atlas

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/balakrishnanc/ripe-utils/internal/logger"
	"github.com/balakrishnanc/ripe-utils/internal/metrics"
)

// probesEndpoint is the catalog path under the API root.
const probesEndpoint = "/probes/"

// Client queries the RIPE Atlas v2 API
// Requests are fully synchronous: one page at a time, no retry, no timeout
// beyond the defaults of the underlying HTTP client
type Client struct {
	baseURL    string
	pageSize   int
	sortKey    string
	httpClient *http.Client
	metrics    *metrics.Metrics // optional, can be nil
	logger     *logger.Logger
}

// NewClient creates a new Atlas API client
//
// Parameters:
//   - baseURL: root of the Atlas v2 API (e.g. https://atlas.ripe.net/api/v2)
//   - pageSize: objects per page; the API caps this at 500
//   - sortKey: stable sort order for the catalog (ascending "id" guarantees
//     pages are disjoint and exhaustive across a run)
//   - m: metrics collector (optional, can be nil)
//   - log: logger (optional, can be nil)
func NewClient(baseURL string, pageSize int, sortKey string, m *metrics.Metrics, log *logger.Logger) *Client {
	if log == nil {
		log = logger.NewDefault()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		pageSize:   pageSize,
		sortKey:    sortKey,
		httpClient: http.DefaultClient,
		metrics:    m,
		logger:     log.WithComponent("AtlasClient"),
	}
}

// Probes returns a scanner over the full probe catalog
//
// The scanner is a lazy, finite, non-restartable pull iterator: nothing is
// fetched until the first Scan, and the next page is requested only after
// the caller has consumed every probe of the current one. Page size and
// sort order go on the first request only; follow-up requests target the
// server-supplied opaque "next" URL verbatim
func (c *Client) Probes() *ProbeScanner {
	params := url.Values{}
	params.Set("page_size", strconv.Itoa(c.pageSize))
	params.Set("sort", c.sortKey)

	return &ProbeScanner{
		client: c,
		next:   c.baseURL + probesEndpoint + "?" + params.Encode(),
	}
}

// probePage mirrors one page of the catalog response
// Count is a pointer so a body without the field is caught as malformed
// rather than read as an empty catalog
type probePage struct {
	Count   *int        `json:"count"`
	Next    string      `json:"next"`
	Results []RawRecord `json:"results"`
}

// ProbeScanner walks the probe catalog page by page, in the manner of
// bufio.Scanner: call Scan until it returns false, then check Err
//
// The server-supplied "next" reference is the only cursor state; the
// server guarantees it makes forward progress, and the scanner trusts that
// rather than verifying it
type ProbeScanner struct {
	client  *Client
	next    string // URL of the page to fetch next; empty once the cursor is exhausted
	pending []RawRecord
	current Probe
	err     error
	done    bool
}

// Scan advances to the next probe of the catalog, fetching a new page when
// the current one is drained. It returns false when the catalog is
// exhausted or an error occurred; after an error every subsequent call
// returns false as well
func (s *ProbeScanner) Scan() bool {
	if s.err != nil || s.done {
		return false
	}

	for len(s.pending) == 0 {
		if s.next == "" {
			s.done = true
			return false
		}
		if err := s.fetchPage(); err != nil {
			s.err = err
			return false
		}
	}

	raw := s.pending[0]
	s.pending = s.pending[1:]

	probe, err := NewProbe(raw)
	if err != nil {
		s.err = err
		return false
	}
	s.current = probe

	if m := s.client.metrics; m != nil {
		m.ProbesListed.Inc()
	}
	return true
}

// Probe returns the probe produced by the last successful Scan.
func (s *ProbeScanner) Probe() Probe { return s.current }

// Err returns the first error encountered while scanning, if any.
func (s *ProbeScanner) Err() error { return s.err }

// fetchPage requests the page the cursor points at and buffers its records
func (s *ProbeScanner) fetchPage() error {
	pageURL := s.next
	s.next = ""
	c := s.client

	c.logger.Debug().Str("url", pageURL).Msg("Fetching probe page")

	start := time.Now()
	resp, err := c.httpClient.Get(pageURL)
	if err != nil {
		return fmt.Errorf("fetch probe page: %w", err)
	}
	defer resp.Body.Close()

	if c.metrics != nil {
		c.metrics.PageFetchDuration.Observe(time.Since(start).Seconds())
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error().Int("status", resp.StatusCode).Str("url", pageURL).Msg("Probe page request failed")
		if c.metrics != nil {
			c.metrics.HTTPErrorsTotal.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()
		}
		return &HTTPError{StatusCode: resp.StatusCode, Status: resp.Status, URL: pageURL}
	}

	decoder := json.NewDecoder(resp.Body)
	decoder.UseNumber()

	var page probePage
	if err := decoder.Decode(&page); err != nil {
		return fmt.Errorf("decode probe page: %w", err)
	}
	if page.Count == nil {
		return fmt.Errorf("probe page from %s missing %q field", pageURL, "count")
	}

	if c.metrics != nil {
		c.metrics.PagesFetched.Inc()
	}
	c.logger.Debug().
		Int("count", *page.Count).
		Int("results", len(page.Results)).
		Msg("Probe page fetched")

	// An empty catalog ends the listing regardless of the cursor
	if *page.Count == 0 {
		return nil
	}

	s.pending = page.Results
	// A JSON null leaves Next empty, which terminates after this page
	s.next = page.Next
	return nil
}
