package ipfs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"chainclub/internal/config"
)

// HttpPublisher talks to an IPFS HTTP API (Infura-compatible /api/v0/add).
type HttpPublisher struct {
	apiUrl        string
	projectId     string
	projectSecret string
	client        *http.Client
}

func NewHttpPublisher(c config.IpfsConf) *HttpPublisher {
	return &HttpPublisher{
		apiUrl:        strings.TrimRight(c.ApiUrl, "/"),
		projectId:     c.ProjectId,
		projectSecret: c.ProjectSecret,
		client:        &http.Client{Timeout: 30 * time.Second},
	}
}

// addResponse is the relevant subset of the /api/v0/add reply.
type addResponse struct {
	Name string `json:"Name"`
	Hash string `json:"Hash"`
	Size string `json:"Size"`
}

// Publish 序列化文档并通过 /api/v0/add 上传，返回 CID
func (p *HttpPublisher) Publish(ctx context.Context, doc interface{}) (string, error) {
	payload, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to marshal metadata document: %w", err)
	}

	// /api/v0/add 要求 multipart 表单上传
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "metadata.json")
	if err != nil {
		return "", fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := part.Write(payload); err != nil {
		return "", fmt.Errorf("failed to write multipart body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	apiURL := p.apiUrl + "/api/v0/add?pin=true"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, &body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if p.projectId != "" {
		req.SetBasicAuth(p.projectId, p.projectSecret)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call IPFS API: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("IPFS API error %d: %s", resp.StatusCode, string(respBody))
	}

	var added addResponse
	if err := json.Unmarshal(respBody, &added); err != nil {
		return "", fmt.Errorf("failed to parse IPFS response: %w", err)
	}
	if added.Hash == "" {
		return "", fmt.Errorf("IPFS response missing hash")
	}
	return added.Hash, nil
}
