// Package schoolapi provides a client for the school data Query Service.
package schoolapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/schooldata/internal/model"
)

// Client defines the Query Service operations.
type Client interface {
	Health(ctx context.Context) error

	ListRecords(ctx context.Context) ([]model.School, error)
	GetRecord(ctx context.Context, id int64) (*model.School, error)
	SearchRecords(ctx context.Context, q string) ([]model.School, error)
	CreateRecord(ctx context.Context, in model.SchoolInput) (int64, error)
	UpdateRecord(ctx context.Context, id int64, in model.SchoolInput) error
	DeleteRecord(ctx context.Context, id int64) error
	// DeleteAllRecords empties the record table and returns the number removed.
	DeleteAllRecords(ctx context.Context) (int64, error)

	Demographics(ctx context.Context) ([]model.DemographicRecord, error)
	// GraduationRates returns every district when aun is empty.
	GraduationRates(ctx context.Context, aun string) ([]model.GraduationRecord, error)
	FinancialAnalysis(ctx context.Context) ([]model.FinancialRecord, error)
	SchoolPerformance(ctx context.Context) ([]model.PerformanceRecord, error)
	Cities(ctx context.Context) (model.CityGroups, error)
	SearchSchools(ctx context.Context, term string, sort model.SortKey) ([]model.DirectoryResult, error)
}

// APIError is a non-2xx answer from the service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("schoolapi: status %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a 404 from the service.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Option configures the client.
type Option func(*httpClient)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *httpClient) {
		c.http.Timeout = d
	}
}

type httpClient struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the service at baseURL. Requests are not
// retried.
func NewClient(baseURL string, opts ...Option) Client {
	c := &httpClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do sends one request and decodes a 2xx JSON body into out when non-nil.
func (c *httpClient) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return eris.Wrap(err, "schoolapi: marshal request")
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return eris.Wrap(err, "schoolapi: create request")
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return eris.Wrapf(err, "schoolapi: %s %s", method, path)
	}
	defer resp.Body.Close() //nolint:errcheck

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrap(err, "schoolapi: read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Error string `json:"error"`
		}
		msg := strings.TrimSpace(string(data))
		if json.Unmarshal(data, &e) == nil && e.Error != "" {
			msg = e.Error
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return eris.Wrapf(err, "schoolapi: decode %s response", path)
	}
	return nil
}

func recordPath(id string) string {
	return "/api/data/" + id
}

func (c *httpClient) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil, nil)
}

func (c *httpClient) ListRecords(ctx context.Context) ([]model.School, error) {
	var out []model.School
	if err := c.do(ctx, http.MethodGet, "/api/data", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *httpClient) GetRecord(ctx context.Context, id int64) (*model.School, error) {
	var out model.School
	if err := c.do(ctx, http.MethodGet, recordPath(strconv.FormatInt(id, 10)), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *httpClient) SearchRecords(ctx context.Context, q string) ([]model.School, error) {
	var out []model.School
	if err := c.do(ctx, http.MethodGet, "/api/data/search", url.Values{"q": {q}}, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *httpClient) CreateRecord(ctx context.Context, in model.SchoolInput) (int64, error) {
	var out model.Created
	if err := c.do(ctx, http.MethodPost, "/api/data", nil, in, &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

func (c *httpClient) UpdateRecord(ctx context.Context, id int64, in model.SchoolInput) error {
	return c.do(ctx, http.MethodPut, recordPath(strconv.FormatInt(id, 10)), nil, in, nil)
}

func (c *httpClient) DeleteRecord(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, recordPath(strconv.FormatInt(id, 10)), nil, nil, nil)
}

func (c *httpClient) DeleteAllRecords(ctx context.Context) (int64, error) {
	var out struct {
		Deleted int64 `json:"deleted"`
	}
	if err := c.do(ctx, http.MethodDelete, recordPath("*"), nil, nil, &out); err != nil {
		return 0, err
	}
	return out.Deleted, nil
}

func (c *httpClient) Demographics(ctx context.Context) ([]model.DemographicRecord, error) {
	var out []model.DemographicRecord
	if err := c.do(ctx, http.MethodGet, "/api/demographics", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *httpClient) GraduationRates(ctx context.Context, aun string) ([]model.GraduationRecord, error) {
	path := "/api/graduation-rates"
	if aun = strings.TrimSpace(aun); aun != "" {
		path += "/" + url.PathEscape(aun)
	}
	var out []model.GraduationRecord
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *httpClient) FinancialAnalysis(ctx context.Context) ([]model.FinancialRecord, error) {
	var out []model.FinancialRecord
	if err := c.do(ctx, http.MethodGet, "/api/financial-analysis", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *httpClient) SchoolPerformance(ctx context.Context) ([]model.PerformanceRecord, error) {
	var out []model.PerformanceRecord
	if err := c.do(ctx, http.MethodGet, "/api/school-performance", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *httpClient) Cities(ctx context.Context) (model.CityGroups, error) {
	var out model.CityGroups
	if err := c.do(ctx, http.MethodGet, "/api/cities", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *httpClient) SearchSchools(ctx context.Context, term string, sort model.SortKey) ([]model.DirectoryResult, error) {
	q := url.Values{"term": {term}}
	if sort != "" {
		q.Set("sortBy", string(sort))
	}
	var out []model.DirectoryResult
	if err := c.do(ctx, http.MethodGet, "/api/schools/search", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
