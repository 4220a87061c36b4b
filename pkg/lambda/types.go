package lambda

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/aws/aws-lambda-go/events"
)

// Request represents a generic HTTP request for serverless functions
type Request struct {
	Method      string
	Path        string
	Headers     http.Header
	QueryParams url.Values
	Body        []byte
}

// Response represents a generic HTTP response for serverless functions
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// RequestFromAPIGateway converts a proxy event. Multi-value headers and
// query parameters win over their single-value forms.
func RequestFromAPIGateway(event events.APIGatewayProxyRequest) (*Request, error) {
	req := &Request{
		Method:      event.HTTPMethod,
		Path:        event.Path,
		Headers:     make(http.Header),
		QueryParams: make(url.Values),
	}

	if len(event.MultiValueHeaders) > 0 {
		for key, values := range event.MultiValueHeaders {
			for _, value := range values {
				req.Headers.Add(key, value)
			}
		}
	} else {
		for key, value := range event.Headers {
			req.Headers.Set(key, value)
		}
	}

	if len(event.MultiValueQueryStringParameters) > 0 {
		for key, values := range event.MultiValueQueryStringParameters {
			req.QueryParams[key] = append(req.QueryParams[key], values...)
		}
	} else {
		for key, value := range event.QueryStringParameters {
			req.QueryParams.Set(key, value)
		}
	}

	if event.IsBase64Encoded {
		body, err := base64.StdEncoding.DecodeString(event.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to decode base64 body: %w", err)
		}
		req.Body = body
	} else {
		req.Body = []byte(event.Body)
	}

	return req, nil
}

// HTTPRequest builds the net/http request the router serves
func (r *Request) HTTPRequest(ctx context.Context) (*http.Request, error) {
	target := r.Path
	if target == "" {
		target = "/"
	}
	if len(r.QueryParams) > 0 {
		target += "?" + r.QueryParams.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, r.Method, target, bytes.NewReader(r.Body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	httpReq.Header = r.Headers.Clone()
	httpReq.ContentLength = int64(len(r.Body))
	httpReq.RequestURI = target
	if host := r.Headers.Get("Host"); host != "" {
		httpReq.Host = host
	}

	return httpReq, nil
}

// ToAPIGateway converts the response back into a proxy response. Bodies
// that are not valid UTF-8 are base64 encoded.
func (r *Response) ToAPIGateway() events.APIGatewayProxyResponse {
	resp := events.APIGatewayProxyResponse{
		StatusCode:        r.StatusCode,
		Headers:           make(map[string]string, len(r.Headers)),
		MultiValueHeaders: make(map[string][]string, len(r.Headers)),
	}

	for key, values := range r.Headers {
		resp.Headers[key] = strings.Join(values, ",")
		resp.MultiValueHeaders[key] = values
	}

	if utf8.Valid(r.Body) {
		resp.Body = string(r.Body)
	} else {
		resp.Body = base64.StdEncoding.EncodeToString(r.Body)
		resp.IsBase64Encoded = true
	}

	return resp
}

// responseRecorder captures what the router writes
type responseRecorder struct {
	header http.Header
	status int
	body   bytes.Buffer
}

func newResponseRecorder() *responseRecorder {
	return &responseRecorder{header: make(http.Header)}
}

func (w *responseRecorder) Header() http.Header {
	return w.header
}

func (w *responseRecorder) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.body.Write(b)
}

func (w *responseRecorder) WriteHeader(status int) {
	if w.status == 0 {
		w.status = status
	}
}

func (w *responseRecorder) response() *Response {
	status := w.status
	if status == 0 {
		status = http.StatusOK
	}
	return &Response{
		StatusCode: status,
		Headers:    w.header,
		Body:       w.body.Bytes(),
	}
}
