package base

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"github.com/viant/baseclient"
	"github.com/viant/baseclient/transport"
)

const fileField = "file"

func (c *Client) newRequest(ctx context.Context, cortege *transport.Cortege) (*http.Request, error) {
	var body io.Reader
	contentType := ""
	switch {
	case cortege.File != nil:
		payload, boundaryType, err := encodeMultipart(cortege.File)
		if err != nil {
			return nil, err
		}
		body = payload
		contentType = boundaryType
	case cortege.Data != nil:
		data, err := json.Marshal(cortege.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}
	request, err := http.NewRequestWithContext(ctx, string(cortege.Method), c.URL(cortege.Path), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	cortege.Headers.Range(func(key, value string) bool {
		request.Header.Set(key, value)
		return true
	})
	if contentType != "" {
		request.Header.Set(baseclient.HeaderContentType, contentType)
	}
	return request, nil
}

// encodeMultipart writes the file part; a JSON body supplied along with a file is not sent.
func encodeMultipart(file *baseclient.FileMeta) (*bytes.Buffer, string, error) {
	buffer := new(bytes.Buffer)
	writer := multipart.NewWriter(buffer)
	mimeType := file.MimeType
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, fileField, file.Name))
	header.Set(baseclient.HeaderContentType, mimeType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create multipart file: %w", err)
	}
	if _, err = part.Write(file.Content); err != nil {
		return nil, "", fmt.Errorf("failed to write multipart file: %w", err)
	}
	if err = writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart writer: %w", err)
	}
	return buffer, writer.FormDataContentType(), nil
}
