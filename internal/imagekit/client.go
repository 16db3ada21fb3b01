// Package imagekit uploads catalog images to the ImageKit media API and
// returns their public URLs. The client is invoked from the product form
// before save; it never touches the database.
package imagekit

import (
	"encoding/base64"
	"net/http"

	"github.com/guonaihong/gout"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const DefaultUploadURL = "https://upload.imagekit.io/api/v1/files/upload"

// ErrNotConfigured indicates the private key is missing, a configuration
// error rather than an upload failure.
var ErrNotConfigured = errors.New("imagekit: private key not configured")

// Client is a thin handle around the ImageKit upload endpoint.
type Client struct {
	UploadURL  string
	PrivateKey string
}

func NewClient(privateKey string) *Client {
	return &Client{UploadURL: DefaultUploadURL, PrivateKey: privateKey}
}

// UploadResult is the subset of the ImageKit response the site needs.
type UploadResult struct {
	Url    string `json:"url"`
	FileId string `json:"fileId"`
	Name   string `json:"name"`
}

type apiError struct {
	Message string `json:"message"`
}

// Upload sends a base64-encoded file payload under fileName and returns the
// hosted URL.
func (c *Client) Upload(file, fileName string) (*UploadResult, error) {
	if c.PrivateKey == "" {
		return nil, ErrNotConfigured
	}
	if file == "" || fileName == "" {
		return nil, errors.New("imagekit: file and fileName are required")
	}

	uploadURL := c.UploadURL
	if uploadURL == "" {
		uploadURL = DefaultUploadURL
	}
	auth := "Basic " + base64.StdEncoding.EncodeToString([]byte(c.PrivateKey+":"))

	var (
		result  UploadResult
		apiErr  apiError
		code    int
		rawBody string
	)
	err := gout.POST(uploadURL).
		SetHeader(gout.H{"Authorization": auth}).
		SetForm(gout.H{
			"file":              file,
			"fileName":          fileName,
			"useUniqueFileName": "true",
		}).
		Code(&code).
		BindBody(&rawBody).
		Do()
	if err != nil {
		return nil, errors.Wrap(err, "imagekit: upload request")
	}
	if code != http.StatusOK {
		if jerr := json.Unmarshal([]byte(rawBody), &apiErr); jerr == nil && apiErr.Message != "" {
			return nil, errors.Errorf("imagekit: upload rejected: %s", apiErr.Message)
		}
		return nil, errors.Errorf("imagekit: upload failed with status %d", code)
	}
	if jerr := json.Unmarshal([]byte(rawBody), &result); jerr != nil {
		return nil, errors.Wrap(jerr, "imagekit: decode response")
	}
	if result.Url == "" {
		return nil, errors.New("imagekit: response missing url")
	}
	return &result, nil
}
