// Package api is the HTTP client for the keepsake server used by the
// curator CLI.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/keepsake/internal/common"
)

// Recording is the server's representation of one uploaded memory.
type Recording struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	AudioURL    string    `json:"audioUrl"`
	PhotoURL    string    `json:"photoUrl,omitempty"`
	Order       int64     `json:"order"`
	CreatedAt   time.Time `json:"createdAt"`
}

// VerifyResult is the outcome of a password check.
type VerifyResult struct {
	Valid bool   `json:"valid"`
	Role  string `json:"role,omitempty"`
	Token string `json:"token,omitempty"`
}

// Client talks to the server's JSON API. After a successful VerifyPassword
// that returned a session token, the token is sent as a Bearer header on
// subsequent requests.
type Client struct {
	client  *http.Client
	baseURL string
	token   string
}

func NewClient(baseURL string) *Client {
	return &Client{
		client:  &http.Client{Timeout: 60 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (c *Client) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set(common.SessionTokenHeaderName, common.SessionTokenScheme+" "+c.token)
	}
}

type apiError struct {
	Error string `json:"error"`
}

// decodeError turns a non-2xx response into an error carrying the server's
// message when one was provided.
func decodeError(resp *http.Response) error {
	var payload apiError
	body, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return fmt.Errorf("server error (%d): %s", resp.StatusCode, payload.Error)
	}
	return fmt.Errorf("server error (%d)", resp.StatusCode)
}

func (c *Client) postJSON(ctx context.Context, endpoint string, body any) (*http.Response, error) {
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	return c.client.Do(req)
}

// SetPassword replaces the shared viewer password.
func (c *Client) SetPassword(ctx context.Context, password string) error {
	resp, err := c.postJSON(ctx, "/api/set-password", map[string]string{"password": password})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decodeError(resp)
	}
	return nil
}

// VerifyPassword checks the password and remembers the session token when the
// server issued one.
func (c *Client) VerifyPassword(ctx context.Context, password string) (*VerifyResult, error) {
	resp, err := c.postJSON(ctx, "/api/verify-password", map[string]string{"password": password})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, common.ErrorNotConfigured
	}
	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var result VerifyResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	if result.Token != "" {
		c.token = result.Token
	}

	return &result, nil
}

// UploadArgs describes one upload: metadata plus local file paths. PhotoPath
// may be empty. Content types are inferred from the file extensions.
type UploadArgs struct {
	Title       string
	Description string
	Order       int64
	AudioPath   string
	PhotoPath   string
}

func attachFile(w *multipart.Writer, field, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filepath.Base(path)))
	header.Set("Content-Type", contentType)

	part, err := w.CreatePart(header)
	if err != nil {
		return err
	}

	_, err = io.Copy(part, file)
	return err
}

// Upload sends a new recording as multipart form data.
func (c *Client) Upload(ctx context.Context, args *UploadArgs) (*Recording, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("title", args.Title); err != nil {
		return nil, err
	}
	if err := w.WriteField("description", args.Description); err != nil {
		return nil, err
	}
	if err := w.WriteField("order", strconv.FormatInt(args.Order, 10)); err != nil {
		return nil, err
	}

	if err := attachFile(w, "audio", args.AudioPath); err != nil {
		return nil, fmt.Errorf("error reading audio file: %w", err)
	}
	if args.PhotoPath != "" {
		if err := attachFile(w, "photo", args.PhotoPath); err != nil {
			return nil, fmt.Errorf("error reading photo file: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/recordings", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	c.authorize(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var recording Recording
	if err := json.NewDecoder(resp.Body).Decode(&recording); err != nil {
		return nil, err
	}

	return &recording, nil
}

// List fetches all recordings in display order.
func (c *Client) List(ctx context.Context) ([]Recording, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/recordings", nil)
	if err != nil {
		return nil, err
	}
	c.authorize(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var recordings []Recording
	if err := json.NewDecoder(resp.Body).Decode(&recordings); err != nil {
		return nil, err
	}

	return recordings, nil
}

// Delete removes a recording by id.
func (c *Client) Delete(ctx context.Context, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/api/recordings/"+id, nil)
	if err != nil {
		return err
	}
	c.authorize(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decodeError(resp)
	}
	return nil
}
