/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package mail provides a client for sending email through an HTTP mail provider.
package mail

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/riaz37/clarifaior/internal/system/config"
	serverconst "github.com/riaz37/clarifaior/internal/system/constants"
	httpservice "github.com/riaz37/clarifaior/internal/system/http"
	"github.com/riaz37/clarifaior/internal/system/log"
)

const loggerComponentName = "MailClient"

const httpClientTimeout = 30 * time.Second

// MailClientInterface defines the interface for sending email.
type MailClientInterface interface {
	SendMail(to []string, subject, body string) error
}

// mailClient sends email through a custom HTTP mail provider endpoint.
type mailClient struct {
	url         string
	httpMethod  string
	fromAddress string
}

// NewMailClient creates a new mail client from the deployment configuration.
func NewMailClient() MailClientInterface {
	mailConfig := config.GetClarifaiorRuntime().Config.Integrations.Mail

	httpMethod := strings.ToUpper(mailConfig.HTTPMethod)
	if httpMethod == "" {
		httpMethod = http.MethodPost
	}

	return &mailClient{
		url:         mailConfig.URL,
		httpMethod:  httpMethod,
		fromAddress: mailConfig.FromAddress,
	}
}

type sendMailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Body    string   `json:"body"`
}

// SendMail sends an email to the given recipients.
func (c *mailClient) SendMail(to []string, subject, body string) error {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	if len(to) == 0 {
		return fmt.Errorf("at least one recipient is required")
	}
	for _, recipient := range to {
		logger.Debug("Sending email", log.String("to", log.MaskString(recipient)))
	}

	payload, err := json.Marshal(sendMailRequest{
		From:    c.fromAddress,
		To:      to,
		Subject: subject,
		Body:    body,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal mail request: %w", err)
	}

	req, err := http.NewRequest(c.httpMethod, c.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set(serverconst.ContentTypeHeaderName, serverconst.ContentTypeJSON)

	client := httpservice.NewHTTPClientWithTimeout(httpClientTimeout)
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send mail request: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			logger.Error("Failed to close response body", log.Error(closeErr))
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("mail request failed, status code: %d, response: %s",
			resp.StatusCode, string(bodyBytes))
	}

	return nil
}
