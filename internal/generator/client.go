package generator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/SW2PDEPLOY/front/internal/auth"
	"github.com/SW2PDEPLOY/front/internal/models"
)

type Client struct {
	baseURL    string
	session    *auth.Session
	httpClient *http.Client
}

type AnalyzeImageRequest struct {
	Image       string             `json:"image"`
	ProjectType models.ProjectType `json:"projectType"`
}

type analyzeImageResponse struct {
	Success     bool   `json:"success"`
	Description string `json:"description,omitempty"`
	Error       string `json:"error,omitempty"`
}

type PromptRequest struct {
	Prompt      string             `json:"prompt"`
	Nombre      string             `json:"nombre,omitempty"`
	ProjectType models.ProjectType `json:"project_type"`
	Config      models.AppConfig   `json:"config,omitempty"`
	CreatedVia  models.CreatedVia  `json:"created_via,omitempty"`
}

type AppRequest struct {
	XML         string             `json:"xml,omitempty"`
	Prompt      string             `json:"prompt,omitempty"`
	MockupID    string             `json:"mockup_id,omitempty"`
	ProjectType models.ProjectType `json:"project_type"`
	UserID      string             `json:"user_id"`
	CreatedVia  models.CreatedVia  `json:"created_via,omitempty"`
}

type AppPatch struct {
	Nombre *string          `json:"nombre,omitempty"`
	Prompt *string          `json:"prompt,omitempty"`
	Config models.AppConfig `json:"config,omitempty"`
}

// Artifact is a packaged project archive ready to hand to the user.
type Artifact struct {
	Name        string
	ContentType string
	Data        []byte
}

// NewClient builds a client for the mobile-generator service bound to the
// given session. Every operation is a single request/response exchange: no
// retries, no backoff. A failed call is reported once and the user decides
// whether to resubmit.
func NewClient(baseURL string, session *auth.Session) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		session: session,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// WithSession returns a copy of the client bound to session. Copies share
// the underlying HTTP client.
func (c *Client) WithSession(session *auth.Session) *Client {
	clone := *c
	clone.session = session
	return &clone
}

// AnalyzeImage submits an encoded mockup image for analysis and returns the
// interface description the service derived from it.
func (c *Client) AnalyzeImage(encodedImage string, projectType models.ProjectType) (string, error) {
	const op = "analyze image"

	jsonData, err := json.Marshal(AnalyzeImageRequest{Image: encodedImage, ProjectType: projectType})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.baseURL + "/mobile-generator/analyze-image"
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(op, req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Op: op, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", &TransportError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("status %d, body: %s", resp.StatusCode, string(body))}
	}

	var result analyzeImageResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", &TransportError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to decode response: %w, body: %s", err, string(body))}
	}

	if !result.Success {
		reason := result.Error
		if reason == "" {
			reason = "image analysis failed"
		}
		return "", &ServerError{Op: op, Reason: reason}
	}

	return result.Description, nil
}

// CreateFromPrompt registers a new app for the session user from a text
// description and returns the stored record.
func (c *Client) CreateFromPrompt(promptReq PromptRequest) (*models.App, error) {
	const op = "create app"

	if err := c.requireUser(); err != nil {
		return nil, err
	}
	if promptReq.CreatedVia == "" {
		promptReq.CreatedVia = models.CreatedViaPrompt
	}

	jsonData, err := json.Marshal(promptReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.baseURL + "/mobile-generator/from-prompt"
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(op, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return c.decodeApp(op, resp)
}

// CreateApp registers a new app through the generic creation endpoint.
// Exactly one source field (xml, prompt or mockup_id) must be set; the
// record is tagged with how it was created.
func (c *Client) CreateApp(appReq AppRequest) (*models.App, error) {
	const op = "create app"

	if err := c.requireUser(); err != nil {
		return nil, err
	}

	via, err := appReq.sourceTag()
	if err != nil {
		return nil, err
	}
	appReq.UserID = c.session.UserID
	appReq.CreatedVia = via

	jsonData, err := json.Marshal(appReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.baseURL + "/mobile-generator"
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(op, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return c.decodeApp(op, resp)
}

// GenerateProject triggers packaging of an app and returns the resulting
// archive. The response content type is authoritative: a JSON body means
// generation failed and its message is surfaced instead of bytes.
func (c *Client) GenerateProject(appID string) (*Artifact, error) {
	const op = "generate project"

	url := c.baseURL + "/mobile-generator/" + appID + "/generate"
	req, err := http.NewRequest("POST", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.do(op, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, &TransportError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("status %d, body: %s", resp.StatusCode, string(body))}
	}

	mediaType := resp.Header.Get("Content-Type")
	if mt, _, err := mime.ParseMediaType(mediaType); err == nil {
		mediaType = mt
	}
	if mediaType == "application/json" {
		reason := "project generation failed"
		var failure struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal(body, &failure); err == nil {
			if failure.Message != "" {
				reason = failure.Message
			} else if failure.Error != "" {
				reason = failure.Error
			}
		}
		return nil, &ServerError{Op: op, Reason: reason}
	}

	if len(body) == 0 {
		return nil, &ServerError{Op: op, Reason: "generation returned an empty archive"}
	}
	if mediaType == "" {
		mediaType = "application/zip"
	}

	return &Artifact{ContentType: mediaType, Data: body}, nil
}

// ListApps returns the app records belonging to the session user.
func (c *Client) ListApps() ([]models.App, error) {
	const op = "list apps"

	url := c.baseURL + "/mobile-generator"
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.do(op, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("status %d, body: %s", resp.StatusCode, string(body))}
	}

	var apps []models.App
	if err := json.Unmarshal(body, &apps); err != nil {
		return nil, &TransportError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to decode response: %w, body: %s", err, string(body))}
	}

	return apps, nil
}

// GetApp fetches a single app record.
func (c *Client) GetApp(appID string) (*models.App, error) {
	const op = "get app"

	url := c.baseURL + "/mobile-generator/" + appID
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.do(op, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return c.decodeApp(op, resp)
}

// UpdateApp applies a partial update to an app record and returns the
// updated record.
func (c *Client) UpdateApp(appID string, patch AppPatch) (*models.App, error) {
	const op = "update app"

	jsonData, err := json.Marshal(patch)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.baseURL + "/mobile-generator/" + appID
	req, err := http.NewRequest("PATCH", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(op, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return c.decodeApp(op, resp)
}

// DeleteApp removes an app record.
func (c *Client) DeleteApp(appID string) error {
	const op = "delete app"

	url := c.baseURL + "/mobile-generator/" + appID
	req, err := http.NewRequest("DELETE", url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.do(op, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		body, _ := io.ReadAll(resp.Body)
		return &TransportError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("status %d, body: %s", resp.StatusCode, string(body))}
	}

	return nil
}

// do attaches the session token, executes the request, and intercepts 401
// responses: the session hook fires and the caller gets ErrUnauthorized.
func (c *Client) do(op string, req *http.Request) (*http.Response, error) {
	if c.session != nil && c.session.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.session.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("failed to execute request: %w", err)}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		c.session.Unauthorized()
		return nil, ErrUnauthorized
	}

	return resp, nil
}

func (c *Client) decodeApp(op string, resp *http.Response) (*models.App, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, &TransportError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("status %d, body: %s", resp.StatusCode, string(body))}
	}

	var app models.App
	if err := json.Unmarshal(body, &app); err != nil {
		return nil, &TransportError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to decode response: %w, body: %s", err, string(body))}
	}

	return &app, nil
}

func (c *Client) requireUser() error {
	if c.session == nil || c.session.UserID == "" {
		return auth.ErrNoIdentity
	}
	return nil
}

// sourceTag checks the exactly-one-source invariant and reports which
// creation path the request represents.
func (r *AppRequest) sourceTag() (models.CreatedVia, error) {
	via := models.CreatedViaManual
	count := 0
	if r.XML != "" {
		via = models.CreatedViaXML
		count++
	}
	if r.Prompt != "" {
		via = models.CreatedViaPrompt
		count++
	}
	if r.MockupID != "" {
		via = models.CreatedViaMockup
		count++
	}
	if count != 1 {
		return "", ErrExactlyOneSource
	}
	return via, nil
}
