package social

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pressquill/newshub/internal/pkg/env"
)

const postEndpoint = "https://api.twitter.com/2/tweets"

// maximum post length accepted by the API
const maxPostLength = 280

type postRequest struct {
	Text string `json:"text"`
}

type postResponse struct {
	Data struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"data"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// XPoster publishes short announcements to X. It is inactive unless
// X_POST_ENABLED is set, so local and test environments never hit the API.
type XPoster struct {
	client *http.Client
}

func NewXPoster() *XPoster {
	return &XPoster{client: http.DefaultClient}
}

// Enabled reports whether posting is switched on and credentials exist.
func (p *XPoster) Enabled() bool {
	return env.GetEnv("X_POST_ENABLED", "false") == "true" &&
		env.GetEnv("X_BEARER_TOKEN", "") != ""
}

// Post publishes text to X. Text longer than the API limit is truncated.
func (p *XPoster) Post(text string) error {
	if !p.Enabled() {
		return fmt.Errorf("X posting is not enabled")
	}
	if len([]rune(text)) > maxPostLength {
		runes := []rune(text)
		text = string(runes[:maxPostLength-3]) + "..."
	}

	body, err := json.Marshal(postRequest{Text: text})
	if err != nil {
		return fmt.Errorf("failed to encode post body: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, postEndpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build post request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+env.GetEnv("X_BEARER_TOKEN", ""))
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request to X API: %v", err)
	}
	defer resp.Body.Close()

	var response postResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return fmt.Errorf("failed to decode X API response: %v", err)
	}

	if resp.StatusCode != http.StatusCreated {
		detail := response.Detail
		if detail == "" {
			detail = response.Title
		}
		return fmt.Errorf("X API returned status %d: %s", resp.StatusCode, detail)
	}
	return nil
}
