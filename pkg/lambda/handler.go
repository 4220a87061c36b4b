package lambda

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
)

// Handler serves API Gateway proxy events through an http.Handler
type Handler struct {
	router http.Handler
}

// NewHandler wraps router
func NewHandler(router http.Handler) *Handler {
	return &Handler{router: router}
}

// Serve runs one request through the router
func (h *Handler) Serve(ctx context.Context, req *Request) (*Response, error) {
	httpReq, err := req.HTTPRequest(ctx)
	if err != nil {
		return nil, err
	}

	recorder := newResponseRecorder()
	h.router.ServeHTTP(recorder, httpReq)
	return recorder.response(), nil
}

// Handle converts the event, serves it and converts the response back
func (h *Handler) Handle(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	req, err := RequestFromAPIGateway(event)
	if err != nil {
		return errorResponse(http.StatusBadRequest, "invalid request encoding"), nil
	}

	resp, err := h.Serve(ctx, req)
	if err != nil {
		return errorResponse(http.StatusBadRequest, "invalid request"), nil
	}

	return resp.ToAPIGateway(), nil
}

func errorResponse(status int, message string) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       `{"error":"` + message + `"}`,
	}
}
