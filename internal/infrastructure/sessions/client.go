package sessions

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"strings"
	"time"

	"sessions-agent/internal/application/port/output"
	"sessions-agent/internal/domain/entity"

	"github.com/google/uuid"
)

var _ output.SessionsPort = (*Client)(nil)

type Config struct {
	Endpoint  string
	SessionID string
	// SanitizeInput strips markdown fences and a "python" tag before execution.
	SanitizeInput bool
	UserAgent     string
	Timeout       time.Duration
	HTTPClient    *http.Client
	Tokens        TokenProvider
	Logger        output.LoggerPort
}

func DefaultConfig(endpoint string) Config {
	return Config{
		Endpoint:      endpoint,
		SanitizeInput: true,
		UserAgent:     DefaultUAgent,
		Timeout:       2 * time.Minute,
	}
}

type Client struct {
	endpoint   string
	sessionID  string
	sanitize   bool
	userAgent  string
	httpClient *http.Client
	tokens     TokenProvider
	logger     output.LoggerPort
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, ErrEndpointNotSet
	}
	if cfg.Tokens == nil {
		return nil, fmt.Errorf("sessions client: token provider is required")
	}

	sessionID := cfg.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUAgent
	}

	return &Client{
		endpoint:   cfg.Endpoint,
		sessionID:  sessionID,
		sanitize:   cfg.SanitizeInput,
		userAgent:  userAgent,
		httpClient: httpClient,
		tokens:     cfg.Tokens,
		logger:     cfg.Logger,
	}, nil
}

func (c *Client) SessionID() string {
	return c.sessionID
}

// BuildURL joins the endpoint and path and appends the session identifier and
// API version, keeping any query string already on the endpoint.
func (c *Client) BuildURL(p string) (string, error) {
	return buildURL(c.endpoint, c.sessionID, p)
}

func buildURL(endpoint, sessionID, p string) (string, error) {
	if endpoint == "" {
		return "", ErrEndpointNotSet
	}

	base, query, hasQuery := strings.Cut(endpoint, "?")
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}

	params := "identifier=" + quoteIdentifier(sessionID) + "&api-version=" + APIVersion
	if hasQuery {
		return base + p + "?" + query + "&" + params, nil
	}
	return base + p + "?" + params, nil
}

// quoteIdentifier percent-encodes everything except unreserved characters and
// "/", so spaces become %20 and path-like identifiers stay readable.
func quoteIdentifier(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9',
			c == '-', c == '_', c == '.', c == '~', c == '/':
			b.WriteByte(c)
		default:
			b.WriteByte('%')
			b.WriteByte(hex[c>>4])
			b.WriteByte(hex[c&0x0f])
		}
	}
	return b.String()
}

func (c *Client) Execute(ctx context.Context, code string) (*entity.ExecutionResult, error) {
	if c.sanitize {
		code = SanitizeInput(code)
	}
	if strings.TrimSpace(code) == "" {
		return nil, ErrEmptyCode
	}

	body, err := json.Marshal(executeRequest{
		Properties: executeProperties{
			CodeInputType: codeInputType,
			ExecutionType: executionType,
			Code:          code,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	c.debug("Executing code", "session", c.sessionID, "codeLen", len(code))

	start := time.Now()
	var resp executeResponse
	if err := c.do(ctx, http.MethodPost, executePath, "application/json", bytes.NewReader(body), &resp); err != nil {
		return nil, err
	}

	c.debug("Execution finished",
		"session", c.sessionID,
		"status", resp.Properties.Status,
		"remoteMs", resp.Properties.ExecutionTimeMs,
		"elapsed", time.Since(start).String())

	return &resp.Properties, nil
}

// UploadFile stores data under /mnt/data/<name> in the session.
func (c *Client) UploadFile(ctx context.Context, name string, data io.Reader) (*entity.RemoteFile, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", path.Join(entity.RemoteDataDir, path.Base(name)))
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, data); err != nil {
		return nil, fmt.Errorf("copy upload data: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	var resp fileListResponse
	if err := c.do(ctx, http.MethodPost, uploadPath, mw.FormDataContentType(), &buf, &resp); err != nil {
		return nil, err
	}
	if len(resp.Value) == 0 {
		return nil, ErrEmptyUpload
	}

	file := resp.Value[0].Properties
	return &file, nil
}

func (c *Client) DownloadFile(ctx context.Context, remotePath string) ([]byte, error) {
	remotePath = strings.TrimPrefix(remotePath, entity.RemoteDataDir+"/")

	var out bytes.Buffer
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf(contentPathFmt, remotePath), "", nil, &out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func (c *Client) ListFiles(ctx context.Context) ([]entity.RemoteFile, error) {
	var resp fileListResponse
	if err := c.do(ctx, http.MethodGet, listFilesPath, "", nil, &resp); err != nil {
		return nil, err
	}

	files := make([]entity.RemoteFile, 0, len(resp.Value))
	for _, v := range resp.Value {
		files = append(files, v.Properties)
	}
	return files, nil
}

// do sends one authenticated request. out is either a *bytes.Buffer that
// receives the raw body or a value the JSON body is decoded into.
func (c *Client) do(ctx context.Context, method, p, contentType string, body io.Reader, out any) error {
	target, err := c.BuildURL(p)
	if err != nil {
		return err
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", c.userAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("pool request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Method:     method,
			Path:       p,
			Body:       strings.TrimSpace(string(respBody)),
		}
		if c.logger != nil {
			c.logger.Error("Pool request failed", "method", method, "path", p, "status", resp.StatusCode)
		}
		return apiErr
	}

	if buf, ok := out.(*bytes.Buffer); ok {
		buf.Write(respBody)
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) debug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}
