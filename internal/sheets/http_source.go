package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
)

const DefaultBaseURL = "https://sheets.googleapis.com/v4"

// HTTPSource читает значения диапазонов через REST API таблиц
type HTTPSource struct {
	baseURL       string
	spreadsheetID string
	apiKey        string
	httpClient    *http.Client
	log           *logrus.Logger
}

func NewHTTPSource(baseURL, spreadsheetID, apiKey string, timeout time.Duration, log *logrus.Logger) *HTTPSource {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &HTTPSource{
		baseURL:       baseURL,
		spreadsheetID: spreadsheetID,
		apiKey:        apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// valuesResponse ответ эндпоинта values
type valuesResponse struct {
	Range          string          `json:"range"`
	MajorDimension string          `json:"majorDimension"`
	Values         [][]interface{} `json:"values"`
}

func (s *HTTPSource) Rows(ctx context.Context, rng NamedRange) ([][]interface{}, error) {
	query := url.Values{}
	query.Set("valueRenderOption", "UNFORMATTED_VALUE")
	query.Set("majorDimension", "ROWS")
	if s.apiKey != "" {
		query.Set("key", s.apiKey)
	}

	u := fmt.Sprintf("%s/spreadsheets/%s/values/%s?%s",
		s.baseURL, url.PathEscape(s.spreadsheetID), url.PathEscape(rng.String()), query.Encode())

	resp, err := s.makeRequest(ctx, u, rng)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"range": rng.String(),
		"rows":  len(resp.Values),
	}).Debug("диапазон загружен")

	if resp.Values == nil {
		return [][]interface{}{}, nil
	}
	return resp.Values, nil
}

func (s *HTTPSource) makeRequest(ctx context.Context, u string, rng NamedRange) (*valuesResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, &UpstreamError{Range: rng, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{Range: rng, Status: resp.StatusCode}
	}

	var result valuesResponse
	if err := decodeRows(resp.Body, &result); err != nil {
		return nil, &UpstreamError{Range: rng, Err: fmt.Errorf("разбор ответа: %w", err)}
	}

	return &result, nil
}

// decodeRows числа в ячейках остаются json.Number
func decodeRows(r io.Reader, dest interface{}) error {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return dec.Decode(dest)
}

func unmarshalRows(raw []byte) ([][]interface{}, error) {
	var rows [][]interface{}
	if err := decodeRows(bytes.NewReader(raw), &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
