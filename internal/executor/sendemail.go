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

package executor

import (
	"fmt"

	"github.com/riaz37/clarifaior/internal/agent/constants"
	"github.com/riaz37/clarifaior/internal/integration/mail"
)

// SendEmailExecutor handles send-email nodes.
type SendEmailExecutor struct {
	client mail.MailClientInterface
}

// NewSendEmailExecutor creates a send email executor backed by the given client.
func NewSendEmailExecutor(client mail.MailClientInterface) *SendEmailExecutor {
	return &SendEmailExecutor{client: client}
}

// GetType returns the node type handled by this executor.
func (e *SendEmailExecutor) GetType() string {
	return constants.NodeTypeSendEmail
}

// Execute sends the resolved email to the configured recipients.
func (e *SendEmailExecutor) Execute(config map[string]any, runCtx RunContext) (ExecutionResult, error) {
	recipients, err := parseRecipients(config["to"])
	if err != nil {
		return ExecutionResult{}, err
	}

	subject := optionalString(config, "subject")
	body := optionalString(config, "body")
	if body == "" {
		body = optionalString(config, "message")
	}

	if err := e.client.SendMail(recipients, subject, body); err != nil {
		return ExecutionResult{}, fmt.Errorf("failed to send email: %w", err)
	}

	return ExecutionResult{
		Output: map[string]any{
			"recipients": len(recipients),
			"delivered":  true,
		},
	}, nil
}

// parseRecipients accepts a single address or a list of addresses.
func parseRecipients(value any) ([]string, error) {
	switch v := value.(type) {
	case string:
		if v == "" {
			return nil, fmt.Errorf("missing required configuration: to")
		}
		return []string{v}, nil
	case []string:
		if len(v) == 0 {
			return nil, fmt.Errorf("missing required configuration: to")
		}
		return v, nil
	case []any:
		recipients := make([]string, 0, len(v))
		for _, item := range v {
			address, ok := item.(string)
			if !ok || address == "" {
				return nil, fmt.Errorf("invalid recipient address: %v", item)
			}
			recipients = append(recipients, address)
		}
		if len(recipients) == 0 {
			return nil, fmt.Errorf("missing required configuration: to")
		}
		return recipients, nil
	default:
		return nil, fmt.Errorf("missing required configuration: to")
	}
}
