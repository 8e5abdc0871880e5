package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
)

// ReaderFunc returns a fresh reader over the same request body on every
// call.
type ReaderFunc func() (io.Reader, error)

// GetBodyFunc has the signature of http.Request GetBody.
func (r ReaderFunc) GetBodyFunc() (io.ReadCloser, error) {
	tmp, err := r()
	if err != nil {
		return nil, err
	}
	return io.NopCloser(tmp), nil
}

// lenReader is implemented by in-memory readers of known size.
type lenReader interface{ Len() int }

// NewRequest creates an http.Request whose body can be replayed through
// GetBody, which lets net/http resend it on redirects and on connections
// closed before the request was written.
//
// rawBody may be nil, a ReaderFunc, []byte, *bytes.Buffer, *bytes.Reader,
// io.ReadSeeker or any io.Reader (read fully into memory). Content-Length is
// set whenever the size is known.
func NewRequest(ctx context.Context, method, url string, rawBody any) (*http.Request, error) {
	if rawBody == nil {
		return http.NewRequestWithContext(ctx, method, url, nil)
	}

	readerFunc, contentLength, err := getBodyReaderAndContentLength(rawBody)
	if err != nil {
		return nil, err
	}

	bodyReader, err := readerFunc()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, err
	}
	req.ContentLength = contentLength
	req.GetBody = readerFunc.GetBodyFunc

	return req, nil
}

func getBodyReaderAndContentLength(rawBody any) (ReaderFunc, int64, error) {
	var bodyReader ReaderFunc
	var contentLength int64

	switch body := rawBody.(type) {
	case ReaderFunc:
		return readerFuncBody(body)

	case func() (io.Reader, error):
		return readerFuncBody(body)

	case []byte:
		buf := body
		bodyReader = func() (io.Reader, error) {
			return bytes.NewReader(buf), nil
		}
		contentLength = int64(len(buf))

	case *bytes.Buffer:
		buf := body
		bodyReader = func() (io.Reader, error) {
			return bytes.NewReader(buf.Bytes()), nil
		}
		contentLength = int64(buf.Len())

	// Before io.ReadSeeker: a snapshot avoids seeking the caller's reader.
	case *bytes.Reader:
		snapshot := *body
		bodyReader = func() (io.Reader, error) {
			r := snapshot
			return &r, nil
		}
		contentLength = int64(body.Len())

	case io.ReadSeeker:
		raw := body
		bodyReader = func() (io.Reader, error) {
			_, err := raw.Seek(0, 0)
			return io.NopCloser(raw), err
		}
		if lr, ok := raw.(lenReader); ok {
			contentLength = int64(lr.Len())
		}

	case io.Reader:
		buf, err := io.ReadAll(body)
		if err != nil {
			return nil, 0, err
		}

		if len(buf) == 0 {
			bodyReader = func() (io.Reader, error) {
				return http.NoBody, nil
			}
			contentLength = 0
		} else {
			bodyReader = func() (io.Reader, error) {
				return bytes.NewReader(buf), nil
			}
			contentLength = int64(len(buf))
		}

	default:
		return nil, 0, fmt.Errorf("httpclient: cannot use %T as request body", rawBody)
	}

	return bodyReader, contentLength, nil
}

func readerFuncBody(body ReaderFunc) (ReaderFunc, int64, error) {
	tmp, err := body()
	if err != nil {
		return nil, 0, err
	}

	var contentLength int64
	if lr, ok := tmp.(lenReader); ok {
		contentLength = int64(lr.Len())
	}
	if c, ok := tmp.(io.Closer); ok {
		_ = c.Close()
	}

	return body, contentLength, nil
}
