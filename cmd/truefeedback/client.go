package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"truefeedback/internal/dto"
	"truefeedback/internal/suggest"
	"truefeedback/internal/validation"

	"github.com/spf13/cobra"
)

const defaultBaseURL = "http://localhost:8080"

type apiClient struct {
	baseURL string
	http    *http.Client
}

func newAPIClient(baseURL string) *apiClient {
	return &apiClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// postJSON sends body and decodes the reply into out whatever the status.
func (c *apiClient) postJSON(ctx context.Context, path string, body, out any) (int, error) {
	var reader io.Reader = http.NoBody
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return 0, err
		}
		reader = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return resp.StatusCode, fmt.Errorf("unexpected response (%d): %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	return resp.StatusCode, nil
}

func (c *apiClient) send(ctx context.Context, username, content string) (dto.APIResponse, error) {
	var out dto.APIResponse
	status, err := c.postJSON(ctx, "/api/send-message", dto.SendMessageRequest{Username: username, Content: content}, &out)
	if err != nil {
		return out, err
	}
	if !out.Success {
		return out, fmt.Errorf("send failed (%d): %s", status, out.Message)
	}
	return out, nil
}

func (c *apiClient) verify(ctx context.Context, username, code string) (dto.APIResponse, error) {
	var out dto.APIResponse
	status, err := c.postJSON(ctx, "/api/verify-code", dto.VerifyCodeRequest{Username: username, Code: code}, &out)
	if err != nil {
		return out, err
	}
	if !out.Success {
		return out, fmt.Errorf("verification failed (%d): %s", status, out.Message)
	}
	return out, nil
}

// suggest returns parsed questions. Any failure yields the fallback set,
// the same way a recipient page behaves.
func (c *apiClient) suggest(ctx context.Context) ([]string, error) {
	var out dto.SuggestResponse
	if _, err := c.postJSON(ctx, "/api/suggest-messages", nil, &out); err != nil {
		return suggest.FallbackQuestions(), err
	}
	return suggest.ParseQuestions(string(out.Content)), nil
}

func addServerFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVar(target, "server", defaultBaseURL, "base URL of the truefeedback API")
}

func sendCmd() *cobra.Command {
	var server string
	cmd := &cobra.Command{
		Use:   "send <username> <message>",
		Short: "Send an anonymous message",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			content := strings.Join(args[1:], " ")
			if err := validation.MessageContent(content); err != nil {
				return err
			}
			out, err := newAPIClient(server).send(cmd.Context(), args[0], content)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out.Message)
			return nil
		},
	}
	addServerFlag(cmd, &server)
	return cmd
}

func verifyCmd() *cobra.Command {
	var server string
	cmd := &cobra.Command{
		Use:   "verify <username> <code>",
		Short: "Submit an account verification code",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.VerifyCode(args[1]); err != nil {
				return err
			}
			out, err := newAPIClient(server).verify(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out.Message)
			return nil
		},
	}
	addServerFlag(cmd, &server)
	return cmd
}

func suggestCmd() *cobra.Command {
	var server string
	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Print suggested questions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			questions, err := newAPIClient(server).suggest(cmd.Context())
			if err != nil {
				cmd.PrintErrf("suggestions unavailable, showing defaults: %v\n", err)
			}
			for _, q := range questions {
				fmt.Fprintln(cmd.OutOrStdout(), q)
			}
			return nil
		},
	}
	addServerFlag(cmd, &server)
	return cmd
}
