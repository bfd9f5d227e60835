package sendGrid_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lmoralesdev/storefront-gateway/internal/models"
	sendgrid_client "github.com/lmoralesdev/storefront-gateway/pkg/sendGrid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmailService(t *testing.T) {
	// Arrange
	apiKey := "test-api-key"
	fromEmail := "sender@example.com"
	fromName := "Test Sender"

	// Act
	service := sendgrid_client.NewEmailService(apiKey, fromEmail, fromName)

	// Assert
	assert.NotNil(t, service)
}

type sendgridV3Payload struct {
	Personalizations []struct {
		To      []map[string]string `json:"to"`
		Cc      []map[string]string `json:"cc,omitempty"`
		Bcc     []map[string]string `json:"bcc,omitempty"`
		Subject string              `json:"subject"`
	} `json:"personalizations"`
	From    map[string]string `json:"from"`
	Content []struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	} `json:"content"`
}

func TestEmailService_Send(t *testing.T) {
	apiKey := "SG.test-api-key"
	fromEmail := "orders@example.com"
	fromName := "Storefront"
	ctx := context.Background()

	var mockServer *httptest.Server

	var lastRequestPayload sendgridV3Payload

	var handlerFunc http.HandlerFunc

	// startMockServer sets up and starts the httptest server with the current handlerFunc.
	startMockServer := func() {
		mockServer = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			bodyBytes, err := io.ReadAll(r.Body)
			if err != nil {
				http.Error(w, "Failed to read request body", http.StatusInternalServerError)

				return
			}

			defer r.Body.Close()

			err = json.Unmarshal(bodyBytes, &lastRequestPayload)
			if err != nil {
				http.Error(w, "Failed to unmarshal request body", http.StatusBadRequest)

				return
			}

			handlerFunc(w, r)
		}))
	}

	tests := []struct {
		name          string
		req           *models.EmailNotificationRequest
		handler       http.HandlerFunc
		expectedError string
		checkPayload  func(t *testing.T, payload sendgridV3Payload)
	}{
		{
			name: "Success - Simple Email",
			req: &models.EmailNotificationRequest{
				To:          "recipient@example.com",
				Subject:     "Order Confirmation",
				Content:     "Plain text content",
				HTMLContent: "<h1>HTML Content</h1>",
			},
			handler: func(w http.ResponseWriter, r *http.Request) {
				// Assert
				assert.Equal(t, http.MethodPost, r.Method, "Expected POST request")
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
				assert.Equal(t, "Bearer "+apiKey, r.Header.Get("Authorization"))
				w.WriteHeader(http.StatusAccepted)
			},
			expectedError: "",
			checkPayload: func(t *testing.T, p sendgridV3Payload) {
				require.Len(t, p.Personalizations, 1, "Expected one personalization block")
				pers := p.Personalizations[0]
				require.Len(t, pers.To, 1, "Expected one TO recipient")
				assert.Equal(t, "recipient@example.com", pers.To[0]["email"])
				assert.Empty(t, pers.Cc, "Expected no CC recipients")
				assert.Empty(t, pers.Bcc, "Expected no BCC recipients")
				assert.Equal(t, "Order Confirmation", pers.Subject)

				assert.Equal(t, fromEmail, p.From["email"])
				assert.Equal(t, fromName, p.From["name"])

				require.Len(t, p.Content, 2, "Expected two content blocks (text and html)")
				assert.Equal(t, "text/plain", p.Content[0].Type)
				assert.Equal(t, "Plain text content", p.Content[0].Value)
				assert.Equal(t, "text/html", p.Content[1].Type)
				assert.Equal(t, "<h1>HTML Content</h1>", p.Content[1].Value)
			},
		},
		{
			name: "Success - Plain Text Only",
			req: &models.EmailNotificationRequest{
				To:      "recipient@example.com",
				Subject: "Plain Only",
				Content: "Just text",
			},
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusAccepted)
			},
			expectedError: "",
			checkPayload: func(t *testing.T, p sendgridV3Payload) {
				require.Len(t, p.Content, 1, "Expected only the plain text block")
				assert.Equal(t, "text/plain", p.Content[0].Type)
				assert.Equal(t, "Just text", p.Content[0].Value)
			},
		},
		{
			name: "Success - With CC and BCC",
			req: &models.EmailNotificationRequest{
				To:          "recipient@example.com",
				CC:          []string{"cc1@example.com", "cc2@example.com"},
				BCC:         []string{"bcc1@example.com"},
				Subject:     "Copied Recipients",
				Content:     "Another plain text",
				HTMLContent: "<p>HTML</p>",
			},
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusAccepted)
			},
			expectedError: "",
			checkPayload: func(t *testing.T, p sendgridV3Payload) {
				require.Len(t, p.Personalizations, 1)
				pers := p.Personalizations[0]
				require.Len(t, pers.To, 1)
				assert.Equal(t, "recipient@example.com", pers.To[0]["email"])
				require.Len(t, pers.Cc, 2, "Expected two CC recipients")
				assert.Equal(t, "cc1@example.com", pers.Cc[0]["email"])
				assert.Equal(t, "cc2@example.com", pers.Cc[1]["email"])
				require.Len(t, pers.Bcc, 1, "Expected one BCC recipient")
				assert.Equal(t, "bcc1@example.com", pers.Bcc[0]["email"])
			},
		},
		{
			name: "Failure - SendGrid API Error (4xx)",
			req: &models.EmailNotificationRequest{
				To:      "bad@example.com",
				Subject: "Rejected",
				Content: "Content",
			},
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"errors": [{"message": "Invalid email"}]}`))
			},
			expectedError: "failed to send email, status code: 400",
		},
		{
			name: "Failure - SendGrid API Error (5xx)",
			req: &models.EmailNotificationRequest{
				To:      "recipient@example.com",
				Subject: "Upstream Down",
				Content: "Content",
			},
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			expectedError: "failed to send email, status code: 500",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			lastRequestPayload = sendgridV3Payload{}
			handlerFunc = tc.handler

			startMockServer()

			serviceImpl := sendgrid_client.NewEmailService(apiKey, fromEmail, fromName)

			sgClient := serviceImpl.GetSendGridClient()

			sgClient.Request.BaseURL = mockServer.URL

			// Act
			err := serviceImpl.Send(ctx, tc.req)

			// Assert
			if tc.expectedError == "" {
				assert.NoError(t, err, "Expected no error")
			} else {
				assert.Error(t, err, "Expected an error")
				assert.Contains(t, err.Error(), tc.expectedError, "Error message mismatch")
			}

			if tc.checkPayload != nil {
				tc.checkPayload(t, lastRequestPayload)
			}

			mockServer.Close()
		})
	}

	t.Run("Failure - Network Error", func(t *testing.T) {
		// Arrange
		startMockServer()

		serviceImpl := sendgrid_client.NewEmailService(apiKey, fromEmail, fromName)
		sgClient := serviceImpl.GetSendGridClient()
		sgClient.Request.BaseURL = mockServer.URL
		mockServer.Close()

		req := &models.EmailNotificationRequest{
			To:      "recipient@example.com",
			Subject: "Network Error Test",
			Content: "Content",
		}

		// Act
		err := serviceImpl.Send(ctx, req)

		// Assert
		assert.Error(t, err, "Expected a network error")
		assert.True(t, strings.Contains(err.Error(), "connect: connection refused") || strings.Contains(err.Error(), "dial tcp"), "Expected connection refused or dial tcp error")
	})
}
