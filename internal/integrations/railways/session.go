package railways

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// session тонкий HTTP слой клиента: префикс хоста, браузерные заголовки,
// проверка статуса и конверта ответа. Вся типизация живет уровнем выше.
type session struct {
	baseURL    string
	httpClient *http.Client
	metrics    Metrics
}

func newSession(hostname string, timeout time.Duration, metrics Metrics) *session {
	return &session{
		baseURL: resolveBaseURL(hostname),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: metrics,
	}
}

// resolveBaseURL принимает либо голый хост (railway.gov.tm), либо полный
// URL со схемой — последнее нужно тестам против httptest.Server
func resolveBaseURL(hostname string) string {
	if strings.Contains(hostname, "://") {
		return strings.TrimSuffix(hostname, "/")
	}
	return "https://" + hostname
}

// defaultHeaders браузерный набор заголовков, который upstream ожидает
// на каждом запросе
func defaultHeaders() http.Header {
	h := http.Header{}
	h.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8,application/signed-exchange;v=b3;q=0.7")
	h.Set("Accept-Language", "en-US;en;q=0.9,tk;q=0.8")
	h.Set("Cache-Control", "max-age=0")
	h.Set("Dnt", "1")
	h.Set("Sec-Ch-Ua", `"Not;A=Brand";v="99", "Google Chrome";v="139", "Chromium";v="139"`)
	h.Set("Sec-Ch-Ua-Mobile", "?0")
	h.Set("Sec-Ch-Ua-Platform", `"Windows"`)
	h.Set("Sec-Fetch-Dest", "document")
	h.Set("Sec-Fetch-Mode", "navigate")
	h.Set("Sec-Fetch-Site", "same-origin")
	h.Set("Sec-Fetch-User", "?1")
	h.Set("Upgrade-Insecure-Requests", "1")
	h.Set("User-Agent", "Mozilla/5.0 (Windows NT 11.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/139.0.0.0 Safari/537.36")
	return h
}

// getJSON выполняет GET и возвращает data из конверта ответа
func (s *session) getJSON(ctx context.Context, endpoint, path string) (json.RawMessage, error) {
	return s.do(ctx, http.MethodGet, endpoint, path, nil)
}

// postJSON выполняет POST с JSON телом и возвращает data из конверта ответа
func (s *session) postJSON(ctx context.Context, endpoint, path string, body interface{}) (json.RawMessage, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode request body: %v", ErrInternal, err)
	}
	return s.do(ctx, http.MethodPost, endpoint, path, encoded)
}

func (s *session) do(ctx context.Context, method, endpoint, path string, body []byte) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header = defaultHeaders()
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.metrics.ObserveUpstreamRequest(endpoint, "error", time.Since(started))
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	s.metrics.ObserveUpstreamRequest(endpoint, strconv.Itoa(resp.StatusCode), time.Since(started))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		responseBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf(
			"%w: unexpected status code %d: %s",
			ErrTransport, resp.StatusCode, string(responseBody),
		)
	}

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %v", ErrTransport, err)
	}

	return decodeEnvelope(responseBody)
}

// close освобождает удерживаемые соединения
func (s *session) close() {
	s.httpClient.CloseIdleConnections()
}
