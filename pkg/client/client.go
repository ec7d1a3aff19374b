// Package client talks to the board's admin API for the command line tools.
package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/freetocompute/mindboard/pkg/board/requests"
	"github.com/freetocompute/mindboard/pkg/board/responses"
	"github.com/freetocompute/mindboard/pkg/models"
	"github.com/go-resty/resty/v2"
)

const LoginConfigFilename = ".loginconfig"

var ErrNotLoggedIn = errors.New("not logged in, run the login command first")

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.StatusCode)
	}
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// Session is what the login command persists between invocations.
type Session struct {
	ServerURL string            `json:"server_url"`
	Cookies   map[string]string `json:"cookies"`
}

func LoadSession(path string) (*Session, error) {
	bytes, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotLoggedIn
	}
	if err != nil {
		return nil, err
	}

	var session Session
	if err := json.Unmarshal(bytes, &session); err != nil {
		return nil, err
	}
	if len(session.Cookies) == 0 {
		return nil, ErrNotLoggedIn
	}
	return &session, nil
}

func (s *Session) Save(path string) error {
	bytes, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, bytes, 0600)
}

type Client struct {
	serverURL string
	rc        *resty.Client
}

func New(serverURL string) *Client {
	serverURL = strings.TrimRight(serverURL, "/")
	return &Client{
		serverURL: serverURL,
		rc: resty.New().
			SetBaseURL(serverURL).
			SetHeader("Accept", "application/json"),
	}
}

// FromSession builds a client that presents the cookies of a saved login.
func FromSession(s *Session) *Client {
	c := New(s.ServerURL)
	for name, value := range s.Cookies {
		c.rc.SetCookie(&http.Cookie{Name: name, Value: value})
	}
	return c
}

func (c *Client) do(method string, path string, body interface{}, result interface{}) (*resty.Response, error) {
	req := c.rc.R().SetError(&responses.Envelope{})
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		apiErr := &APIError{StatusCode: resp.StatusCode()}
		if env, ok := resp.Error().(*responses.Envelope); ok {
			apiErr.Message = env.Error
		}
		return resp, apiErr
	}
	return resp, nil
}

// Login signs in as an admin and returns the session to persist.
func (c *Client) Login(username string, password string) (*responses.AdminStatus, *Session, error) {
	var login responses.AdminLogin
	resp, err := c.do(http.MethodPost, "/api/admin/login",
		&requests.Credentials{Username: username, Password: password}, &login)
	if err != nil {
		return nil, nil, err
	}

	session := &Session{ServerURL: c.serverURL, Cookies: map[string]string{}}
	for _, cookie := range resp.Cookies() {
		if cookie.Value != "" {
			session.Cookies[cookie.Name] = cookie.Value
		}
	}
	return &login.AdminStatus, session, nil
}

func (c *Client) Logout() error {
	_, err := c.do(http.MethodPost, "/api/admin/logout", nil, nil)
	return err
}

func (c *Client) Status() (*responses.AdminStatus, error) {
	var status responses.AdminStatus
	if _, err := c.do(http.MethodGet, "/api/admin/status", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (c *Client) SignupRequests() ([]models.SignupRequest, error) {
	var pending []models.SignupRequest
	if _, err := c.do(http.MethodGet, "/api/auth/signup-requests", nil, &pending); err != nil {
		return nil, err
	}
	return pending, nil
}

func (c *Client) ApproveSignup(id uint) error {
	_, err := c.do(http.MethodPost, fmt.Sprintf("/api/auth/signup-requests/%d/approve", id), nil, nil)
	return err
}

func (c *Client) DeclineSignup(id uint) error {
	_, err := c.do(http.MethodPost, fmt.Sprintf("/api/auth/signup-requests/%d/decline", id), nil, nil)
	return err
}

func (c *Client) Admins() ([]models.AdminAccount, error) {
	var admins []models.AdminAccount
	if _, err := c.do(http.MethodGet, "/api/admin/users", nil, &admins); err != nil {
		return nil, err
	}
	return admins, nil
}

func (c *Client) AddAdmin(username string, password string) (uint, error) {
	var created responses.Created
	_, err := c.do(http.MethodPost, "/api/admin/register",
		&requests.Credentials{Username: username, Password: password}, &created)
	if err != nil {
		return 0, err
	}
	return created.ID, nil
}

func (c *Client) RemoveAdmin(id uint) error {
	_, err := c.do(http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", id), nil, nil)
	return err
}

func (c *Client) Users() ([]models.UserAccount, error) {
	var users []models.UserAccount
	if _, err := c.do(http.MethodGet, "/api/admin/all-users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) RemoveUser(id uint) error {
	_, err := c.do(http.MethodDelete, fmt.Sprintf("/api/admin/delete-user/%d", id), nil, nil)
	return err
}
