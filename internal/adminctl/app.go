package adminctl

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// App talks to the server's HTTP API. Endpoint is the base URL, e.g.
// "http://localhost:8080".
type App struct {
	Endpoint string
	Client   *http.Client
	Out      io.Writer
}

func NewApp(endpoint string, out io.Writer) *App {
	return &App{
		Endpoint: endpoint,
		Client:   &http.Client{Timeout: 10 * time.Second},
		Out:      out,
	}
}

// Status reports whether the server still awaits first-run setup.
func (a *App) Status() (bool, error) {
	resp, err := a.Client.Get(a.Endpoint + "/api/setup")
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var body struct {
		SetupRequired bool `json:"setup_required"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, err
	}
	return body.SetupRequired, nil
}

// login authenticates against the server and returns the session cookie.
func (a *App) login(username, password string) (*http.Cookie, error) {
	payload, err := json.Marshal(map[string]string{"username": username, "password": password})
	if err != nil {
		return nil, err
	}

	resp, err := a.Client.Post(a.Endpoint+"/api/login", "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return nil, errors.New("invalid username or password")
	default:
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	for _, c := range resp.Cookies() {
		if c.Name == "token" {
			return c, nil
		}
	}
	return nil, errors.New("login response carried no session cookie")
}

// Reset sets a new password for username. The endpoint is admin-gated, so
// the operator's own credentials are asked for first.
func (a *App) Reset(adminUsername, username string) error {
	adminPassword, err := GetPassword(a.Out, fmt.Sprintf("Password for %s: ", adminUsername))
	if err != nil {
		return err
	}

	cookie, err := a.login(adminUsername, adminPassword)
	if err != nil {
		return err
	}

	password, err := GetPassword(a.Out, fmt.Sprintf("New password for %s: ", username))
	if err != nil {
		return err
	}
	confirm, err := GetPassword(a.Out, "Repeat password: ")
	if err != nil {
		return err
	}
	if password != confirm {
		return errors.New("passwords do not match")
	}

	payload, err := json.Marshal(map[string]string{"username": username, "password": password})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPut, a.Endpoint+"/api/admin/users/password", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookie)

	resp, err := a.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		fmt.Fprintf(a.Out, "Password for %q reset\n", username)
		return nil
	case http.StatusNotFound:
		return fmt.Errorf("user %q not found", username)
	case http.StatusForbidden:
		return errors.New("admin privileges required")
	default:
		var body struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
			return errors.New(body.Error)
		}
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
}

// Setup creates the first admin account. Passwords are read interactively so
// they never appear in shell history or process listings.
func (a *App) Setup(username string) error {
	password, err := GetPassword(a.Out, "Enter password: ")
	if err != nil {
		return err
	}
	confirm, err := GetPassword(a.Out, "Repeat password: ")
	if err != nil {
		return err
	}
	if password != confirm {
		return errors.New("passwords do not match")
	}

	payload, err := json.Marshal(map[string]string{"username": username, "password": password})
	if err != nil {
		return err
	}

	resp, err := a.Client.Post(a.Endpoint+"/api/setup", "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		fmt.Fprintf(a.Out, "Admin account %q created\n", username)
		return nil
	case http.StatusForbidden:
		return errors.New("setup already completed")
	default:
		var body struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
			return errors.New(body.Error)
		}
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
}
