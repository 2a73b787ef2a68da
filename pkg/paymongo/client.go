package paymongo

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

const (
	DefaultBaseURL = "https://api.paymongo.com/v1"
	defaultTimeout = 15 * time.Second
)

type Client struct {
	http *resty.Client
}

// NewClient authenticates every call with HTTP basic auth, the secret key as
// user name and an empty password.
func NewClient(baseURL, secretKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	hc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(defaultTimeout).
		SetBasicAuth(secretKey, "").
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")

	return &Client{http: hc}
}

func (c *Client) CreateSource(ctx context.Context, params CreateSourceParams) (Source, error) {
	var body createSourceRequest
	body.Data.Attributes = params

	var result sourceResponse
	var apiErr errorResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&result).
		SetError(&apiErr).
		Post("/sources")
	if err != nil {
		return Source{}, errors.Wrap(err, "paymongo: create source")
	}

	if resp.IsError() {
		return Source{}, &APIError{
			StatusCode: resp.StatusCode(),
			Errors:     apiErr.Errors,
		}
	}

	return result.Data, nil
}
