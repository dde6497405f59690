package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/ekisa-team/modelhandler/internal/backend"
	"github.com/ekisa-team/modelhandler/internal/handler"
)

// maxBodyBytes bounds the size of an invocation body.
const maxBodyBytes = 32 << 20

type (
	InvokeInput struct {
		ContentType string `header:"Content-Type"`
		RawBody     []byte
	}

	InvokeOutput struct {
		Status      int
		ContentType string `header:"Content-Type"`
		Body        []byte
	}
)

type (
	PingResponseDTO struct {
		Status  string `json:"status"`
		Backend string `json:"backend,omitempty"`
	}

	PingOutput struct {
		Status int
		Body   PingResponseDTO
	}
)

// InvocationHandler exposes the dispatch handler over HTTP.
type InvocationHandler struct {
	handler *handler.Handler
	hctx    handler.Context
}

// NewInvocationHandler creates a new InvocationHandler and registers its
// operations on api.
func NewInvocationHandler(api huma.API, h *handler.Handler, hctx handler.Context) *InvocationHandler {
	ih := &InvocationHandler{handler: h, hctx: hctx}

	huma.Register(api, huma.Operation{
		OperationID:   "invoke",
		Method:        http.MethodPost,
		Path:          "/invocations",
		Summary:       "Run the bound backend on a request body",
		Tags:          []string{"inference"},
		DefaultStatus: http.StatusOK,
		MaxBodyBytes:  maxBodyBytes,
		RequestBody: &huma.RequestBody{
			Required: false,
			Content: map[string]*huma.MediaType{
				"application/json": {},
			},
		},
	}, ih.handleInvoke)

	huma.Register(api, huma.Operation{
		OperationID: "ping",
		Method:      http.MethodGet,
		Path:        "/ping",
		Summary:     "Report whether a backend is bound",
		Tags:        []string{"health"},
	}, ih.handlePing)

	return ih
}

// handleInvoke handles the invoke operation.
func (ih *InvocationHandler) handleInvoke(ctx context.Context, input *InvokeInput) (*InvokeOutput, error) {
	var req backend.Request
	if len(input.RawBody) > 0 {
		var metadata map[string]string
		if input.ContentType != "" {
			metadata = map[string]string{"Content-Type": input.ContentType}
		}
		req = backend.NewRequest(input.RawBody, metadata)
	}

	out, err := ih.handler.Dispatch(ctx, req, ih.hctx)
	if err != nil {
		if handler.IsInitError(err) {
			return nil, huma.Error503ServiceUnavailable("backend is not available", err)
		}
		return nil, huma.Error500InternalServerError(err.Error())
	}

	if out == nil {
		return &InvokeOutput{Status: http.StatusNoContent}, nil
	}

	return &InvokeOutput{
		Status:      http.StatusOK,
		ContentType: "application/json",
		Body:        out,
	}, nil
}

// handlePing handles the ping operation.
func (ih *InvocationHandler) handlePing(_ context.Context, _ *struct{}) (*PingOutput, error) {
	if !ih.handler.Ready() {
		return &PingOutput{
			Status: http.StatusServiceUnavailable,
			Body:   PingResponseDTO{Status: "Unhealthy"},
		}, nil
	}

	return &PingOutput{
		Status: http.StatusOK,
		Body:   PingResponseDTO{Status: "Healthy", Backend: ih.handler.Backend()},
	}, nil
}
