// Package fcm sends push notifications through the Firebase Cloud Messaging
// HTTP v1 API.
package fcm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	fcmapi "google.golang.org/api/fcm/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

type Message struct {
	Token string
	Title string
	Body  string
	Data  map[string]string
}

// SendError is a non-2xx answer from FCM.
type SendError struct {
	StatusCode int
	Body       string
}

func (e *SendError) Error() string {
	return fmt.Sprintf("FCM request failed with status %d: %s", e.StatusCode, e.Body)
}

type serviceAccount struct {
	ProjectID   string `json:"project_id"`
	ClientEmail string `json:"client_email"`
}

type Client struct {
	service   *fcmapi.Service
	projectID string
}

func NewClient(ctx context.Context, projectID string, opts ...option.ClientOption) (*Client, error) {
	if projectID == "" {
		return nil, errors.New("fcm: project id is required")
	}

	service, err := fcmapi.NewService(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "fcm: create service")
	}

	return &Client{service: service, projectID: projectID}, nil
}

// NewClientFromServiceAccount authenticates with the given service-account
// key and sends on behalf of the key's project.
func NewClientFromServiceAccount(ctx context.Context, serviceAccountJSON []byte) (*Client, error) {
	var account serviceAccount
	if err := json.Unmarshal(serviceAccountJSON, &account); err != nil {
		return nil, errors.Wrap(err, "fcm: decode service account")
	}
	if account.ClientEmail == "" {
		return nil, errors.New("fcm: service account has no client_email")
	}

	return NewClient(ctx, account.ProjectID,
		option.WithCredentialsJSON(serviceAccountJSON),
		option.WithScopes(fcmapi.CloudPlatformScope),
	)
}

// Send returns the message name assigned by FCM.
func (c *Client) Send(ctx context.Context, msg Message) (string, error) {
	req := &fcmapi.SendMessageRequest{
		Message: &fcmapi.Message{
			Token: msg.Token,
			Notification: &fcmapi.Notification{
				Title: msg.Title,
				Body:  msg.Body,
			},
			Data: msg.Data,
		},
	}

	resp, err := c.service.Projects.Messages.Send("projects/"+c.projectID, req).Context(ctx).Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			return "", &SendError{StatusCode: apiErr.Code, Body: apiErr.Body}
		}
		return "", errors.Wrap(err, "fcm: send message")
	}

	return resp.Name, nil
}
