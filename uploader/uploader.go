package uploader

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

type gitHubUploadRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
}

// UploadToGitHub publishes a generated calendar body to a repository via
// the GitHub contents API, so calendar clients can subscribe to it by
// URL.
func UploadToGitHub(token, repo, path string, content []byte) error {
	uploadURL := fmt.Sprintf("https://api.github.com/repos/%s/contents/%s", repo, path)
	body := gitHubUploadRequest{
		Message: "Update schedule.ics",
		Content: base64.StdEncoding.EncodeToString(content),
	}
	bodyJSON, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("error marshalling JSON: %v", err)
	}

	req, err := http.NewRequest("PUT", uploadURL, bytes.NewBuffer(bodyJSON))
	if err != nil {
		return fmt.Errorf("error creating request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("error making request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("error uploading to GitHub, status code: %d, response: %s", resp.StatusCode, string(respBody))
	}

	return nil
}
