// Package netx moves document content to and from presigned object
// storage URLs.
package netx

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// Client is used for all transfers. Tests may replace it.
var Client = &http.Client{}

func checkStatus(resp *http.Response, op string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	return fmt.Errorf("%s failed: %s; body: %s", op, resp.Status, string(b))
}

// UploadToPresignedURL PUTs size bytes from body to url.
func UploadToPresignedURL(ctx context.Context, url string, body io.Reader, size int64) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, body)
	if err != nil {
		return err
	}
	req.ContentLength = size
	if size == 0 {
		req.Body = http.NoBody
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return checkStatus(resp, "upload")
}

// DownloadFromPresignedURL GETs url and copies the body to w, returning the
// number of bytes written.
func DownloadFromPresignedURL(ctx context.Context, url string, w io.Writer) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}

	resp, err := Client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, "download"); err != nil {
		return 0, err
	}

	return io.Copy(w, resp.Body)
}
