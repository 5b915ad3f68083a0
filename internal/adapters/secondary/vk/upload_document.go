package vk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
)

// uploadServerResponse ответ docs.getMessagesUploadServer
type uploadServerResponse struct {
	UploadURL string `json:"upload_url"`
}

// uploadFileResponse ответ сервера загрузки
type uploadFileResponse struct {
	File  string `json:"file"`
	Error string `json:"error,omitempty"`
}

// savedDoc сохранённый документ
type savedDoc struct {
	ID      int64 `json:"id"`
	OwnerID int64 `json:"owner_id"`
}

// docsSaveResponse ответ docs.save
type docsSaveResponse struct {
	Type string   `json:"type"`
	Doc  savedDoc `json:"doc"`
}

// UploadDocument загружает файл как документ для отправки в диалог peerID.
// Возвращает attachment вида doc{owner_id}_{id}.
// Флоу VK: docs.getMessagesUploadServer -> POST файла -> docs.save.
func (c *Client) UploadDocument(ctx context.Context, peerID int64, filename string, data []byte) (string, error) {
	uploadURL, err := c.getMessagesUploadServer(ctx, peerID)
	if err != nil {
		return "", fmt.Errorf("failed to get upload server: %w", err)
	}

	uploadedFile, err := c.uploadFile(ctx, uploadURL, filename, data)
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	attachment, err := c.saveDocument(ctx, uploadedFile, filename)
	if err != nil {
		return "", fmt.Errorf("failed to save document: %w", err)
	}

	c.log.Debug("document uploaded successfully",
		"peer_id", peerID,
		"filename", filename,
		"attachment", attachment,
		"size", len(data),
	)

	return attachment, nil
}

// getMessagesUploadServer выполняет docs.getMessagesUploadServer
func (c *Client) getMessagesUploadServer(ctx context.Context, peerID int64) (string, error) {
	params := url.Values{}
	params.Set("type", "doc")
	params.Set("peer_id", strconv.FormatInt(peerID, 10))

	raw, err := c.callMethod(ctx, "docs.getMessagesUploadServer", params)
	if err != nil {
		return "", err
	}

	var resp uploadServerResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", fmt.Errorf("failed to unmarshal upload server response: %w", err)
	}

	if resp.UploadURL == "" {
		return "", fmt.Errorf("empty upload_url in response")
	}

	return resp.UploadURL, nil
}

// uploadFile отправляет файл на сервер загрузки VK
func (c *Client) uploadFile(ctx context.Context, uploadURL string, filename string, data []byte) (string, error) {
	var requestBody bytes.Buffer
	writer := multipart.NewWriter(&requestBody)

	filePart, err := writer.CreateFormFile("file", filename)
	if err != nil {
		c.log.Error("failed to create file form field",
			"error", err,
			"filename", filename,
		)
		return "", fmt.Errorf("failed to create file form field: %w", err)
	}

	if _, err := filePart.Write(data); err != nil {
		c.log.Error("failed to write file data",
			"error", err,
			"filename", filename,
		)
		return "", fmt.Errorf("failed to write file data: %w", err)
	}

	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to close multipart writer: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, &requestBody)
	if err != nil {
		return "", fmt.Errorf("failed to create upload request: %w", err)
	}

	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.log.Error("upload request failed",
			"error", err,
			"filename", filename,
		)
		return "", fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read upload response: %w", err)
	}

	var uploadResp uploadFileResponse
	if err := json.Unmarshal(body, &uploadResp); err != nil {
		c.log.Error("failed to unmarshal upload response",
			"error", err,
			"status_code", resp.StatusCode,
			"body", string(body),
		)
		return "", fmt.Errorf("failed to unmarshal upload response: %w", err)
	}

	if uploadResp.File == "" {
		return "", fmt.Errorf("upload server returned no file: %s", uploadResp.Error)
	}

	return uploadResp.File, nil
}

// saveDocument выполняет docs.save, возвращает attachment
func (c *Client) saveDocument(ctx context.Context, file string, title string) (string, error) {
	params := url.Values{}
	params.Set("file", file)
	params.Set("title", title)

	raw, err := c.callMethod(ctx, "docs.save", params)
	if err != nil {
		return "", err
	}

	var resp docsSaveResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", fmt.Errorf("failed to unmarshal docs.save response: %w", err)
	}

	if resp.Doc.ID == 0 {
		return "", fmt.Errorf("docs.save returned empty doc")
	}

	return fmt.Sprintf("doc%d_%d", resp.Doc.OwnerID, resp.Doc.ID), nil
}
