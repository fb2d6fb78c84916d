// Package formclient formu.link REST API'si için ince bir HTTP istemcisidir.
// Yeniden deneme yapmaz, hata yutmaz; bu sorumluluklar çağırana aittir.
package formclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Result her API çağrısının tekdüze sonucu. Body, Content-Type JSON ise
// ayrıştırılabilir JSON'dur; değilse opak metin olarak taşınır.
type Result struct {
	StatusCode int
	Body       []byte
	IsJSON     bool
}

// DecodeJSON gövdeyi verilen hedefe çözer. Gövde JSON değilse hata döner.
func (r *Result) DecodeJSON(v any) error {
	if !r.IsJSON {
		return fmt.Errorf("yanıt JSON değil (status %d)", r.StatusCode)
	}
	return json.Unmarshal(r.Body, v)
}

// APIError 2xx dışı, yapılandırılmış hata gövdeli yanıtları temsil eder.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("api hatası: status %d", e.StatusCode)
}

// Client formu.link API istemcisi. Durumsuzdur; eşzamanlı kullanım güvenlidir.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New verilen taban URL ve bearer token ile yeni bir istemci oluşturur.
// httpClient nil ise http.DefaultClient kullanılır; zaman aşımı tamamen
// altta yatan transport'a bırakılır.
func New(baseURL, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    httpClient,
	}
}

// do isteği kurar, gönderir ve yanıtı tekdüze Result'a çevirir.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, noCache bool) (*Result, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("istek gövdesi serileştirilemedi: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if noCache {
		req.Header.Set("Cache-Control", "no-cache")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	result := &Result{
		StatusCode: resp.StatusCode,
		Body:       data,
		IsJSON:     mediaType == "application/json",
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if result.IsJSON {
			var errBody struct {
				Error string `json:"error"`
			}
			if json.Unmarshal(data, &errBody) == nil {
				apiErr.Message = errBody.Error
			}
		}
		return result, apiErr
	}
	return result, nil
}

// CheckTitle başlığın benzersiz olup olmadığını sorgular.
// excludeID > 0 ise o form kontrol dışı bırakılır (güncelleme senaryosu).
func (c *Client) CheckTitle(ctx context.Context, title string, excludeID uint) (bool, error) {
	q := url.Values{"title": {title}}
	if excludeID > 0 {
		q.Set("excludeId", strconv.FormatUint(uint64(excludeID), 10))
	}
	res, err := c.do(ctx, http.MethodGet, "/api/forms/check-title", q, nil, false)
	if err != nil {
		return false, err
	}
	var body struct {
		Unique bool `json:"unique"`
	}
	if err := res.DecodeJSON(&body); err != nil {
		return false, err
	}
	return body.Unique, nil
}

// SaveForm formu oluşturur veya (payload.ID doluysa) günceller.
func (c *Client) SaveForm(ctx context.Context, payload FormPayload) (*Form, error) {
	res, err := c.do(ctx, http.MethodPost, "/api/forms", nil, payload, false)
	if err != nil {
		return nil, err
	}
	return decodeForm(res)
}

// GetForm formu ID ile getirir. Her zaman taze veri ister (no-cache).
func (c *Client) GetForm(ctx context.Context, id uint) (*Form, error) {
	res, err := c.do(ctx, http.MethodGet, "/api/forms/"+strconv.FormatUint(uint64(id), 10), nil, nil, true)
	if err != nil {
		return nil, err
	}
	return decodeForm(res)
}

// DeleteForm formu siler.
func (c *Client) DeleteForm(ctx context.Context, id uint) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/forms/"+strconv.FormatUint(uint64(id), 10), nil, nil, false)
	return err
}

// ReorderFields sunucu tarafında alan sıralamasını değiştirir.
func (c *Client) ReorderFields(ctx context.Context, formID uint, from, to int) (*Form, error) {
	body := map[string]int{"from": from, "to": to}
	res, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/forms/%d/fields/reorder", formID), nil, body, false)
	if err != nil {
		return nil, err
	}
	return decodeForm(res)
}

// SaveDraft taslak kaydeder (otomatik veya manuel).
func (c *Client) SaveDraft(ctx context.Context, payload DraftPayload) (*Draft, error) {
	res, err := c.do(ctx, http.MethodPost, "/api/drafts", nil, payload, false)
	if err != nil {
		return nil, err
	}
	var body struct {
		Draft Draft `json:"draft"`
	}
	if err := res.DecodeJSON(&body); err != nil {
		return nil, err
	}
	return &body.Draft, nil
}

// CreateVersion form için yeni bir numaralı sürüm oluşturur.
func (c *Client) CreateVersion(ctx context.Context, formID uint, changeDescription string) (*Version, error) {
	body := map[string]string{"changeDescription": changeDescription}
	res, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/forms/%d/versions", formID), nil, body, false)
	if err != nil {
		return nil, err
	}
	return decodeVersion(res)
}

// PublishVersion sürümü yayınlar.
func (c *Client) PublishVersion(ctx context.Context, formID, versionID uint) (*Version, error) {
	body := map[string]uint{"formId": formID}
	res, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/versions/%d/publish", versionID), nil, body, false)
	if err != nil {
		return nil, err
	}
	return decodeVersion(res)
}

// RollbackVersion formu verilen sürümün içeriğine geri döndürür.
func (c *Client) RollbackVersion(ctx context.Context, formID, versionID uint) (*Version, error) {
	body := map[string]uint{"formId": formID}
	res, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/versions/%d/rollback", versionID), nil, body, false)
	if err != nil {
		return nil, err
	}
	return decodeVersion(res)
}

// ListDrafts formun taslaklarını getirir.
func (c *Client) ListDrafts(ctx context.Context, formID uint) ([]Draft, error) {
	res, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/forms/%d/drafts", formID), nil, nil, true)
	if err != nil {
		return nil, err
	}
	var body struct {
		Drafts []Draft `json:"drafts"`
	}
	if err := res.DecodeJSON(&body); err != nil {
		return nil, err
	}
	return body.Drafts, nil
}

// ListVersions formun sürümlerini getirir.
func (c *Client) ListVersions(ctx context.Context, formID uint) ([]Version, error) {
	res, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/forms/%d/versions", formID), nil, nil, true)
	if err != nil {
		return nil, err
	}
	var body struct {
		Versions []Version `json:"versions"`
	}
	if err := res.DecodeJSON(&body); err != nil {
		return nil, err
	}
	return body.Versions, nil
}

func decodeForm(res *Result) (*Form, error) {
	var body struct {
		Form Form `json:"form"`
	}
	if err := res.DecodeJSON(&body); err != nil {
		return nil, err
	}
	return &body.Form, nil
}

func decodeVersion(res *Result) (*Version, error) {
	var body struct {
		Version Version `json:"version"`
	}
	if err := res.DecodeJSON(&body); err != nil {
		return nil, err
	}
	return &body.Version, nil
}
