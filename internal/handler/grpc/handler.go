package grpc

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/TomasB/ipcheck/internal/data"
	"github.com/TomasB/ipcheck/internal/handler/response"
	"github.com/TomasB/ipcheck/internal/history"
	"github.com/TomasB/ipcheck/internal/lookup"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// Handler implements IPCheckServer.
type Handler struct {
	service  *lookup.Service
	sessions *history.Sessions
}

// NewHandler creates a new gRPC handler backed by service and sessions.
func NewHandler(service *lookup.Service, sessions *history.Sessions) *Handler {
	return &Handler{service: service, sessions: sessions}
}

// OpenSession starts a session and returns its id as {"session": id}.
func (h *Handler) OpenSession(_ context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	id, _ := h.sessions.Open()
	return structpb.NewStruct(map[string]any{"session": id})
}

// EndSession discards the history of {"session": id}.
func (h *Handler) EndSession(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id := field(req, "session")
	if id == "" {
		return nil, status.Error(codes.InvalidArgument, "session is required")
	}
	if !h.sessions.End(id) {
		return nil, status.Error(codes.NotFound, "unknown session")
	}
	return &structpb.Struct{}, nil
}

// Lookup resolves {"ip": addr}. When "session" is set the result is
// appended to that session's history.
func (h *Handler) Lookup(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	ip := field(req, "ip")
	if ip == "" {
		return nil, status.Error(codes.InvalidArgument, "ip is required")
	}

	var (
		rec data.Record
		err error
	)
	if id := field(req, "session"); id != "" {
		store, ok := h.sessions.Get(id)
		if !ok {
			return nil, status.Error(codes.NotFound, "unknown session")
		}
		rec, err = h.service.LookupAndRecord(ctx, store, ip)
	} else {
		rec, err = h.service.Lookup(ctx, ip)
	}
	if err != nil {
		return nil, toStatus(err)
	}

	return toStruct(rec)
}

// Compare looks up {"ip_a", "ip_b"} and returns {"a": record, "b": record}.
func (h *Handler) Compare(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	cmp, err := h.service.Compare(ctx, field(req, "ip_a"), field(req, "ip_b"))
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(cmp)
}

// History returns {"entries": [...]} for {"session": id}, most recent first.
func (h *Handler) History(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id := field(req, "session")
	if id == "" {
		return nil, status.Error(codes.InvalidArgument, "session is required")
	}
	store, ok := h.sessions.Get(id)
	if !ok {
		return nil, status.Error(codes.NotFound, "unknown session")
	}
	return toStruct(map[string]any{"entries": store.All()})
}

func field(req *structpb.Struct, name string) string {
	if req == nil {
		return ""
	}
	return req.GetFields()[name].GetStringValue()
}

// toStruct converts v to a Struct through its JSON form.
func toStruct(v any) (*structpb.Struct, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, status.Error(codes.Internal, "encode response")
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, status.Error(codes.Internal, "encode response")
	}
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Error(codes.Internal, "encode response")
	}
	return s, nil
}

func toStatus(err error) error {
	httpStatus, body := response.FromError(err)

	code := codes.Internal
	switch httpStatus {
	case http.StatusBadRequest:
		code = codes.InvalidArgument
	case http.StatusServiceUnavailable:
		code = codes.FailedPrecondition
	case http.StatusBadGateway, http.StatusGatewayTimeout:
		code = codes.Unavailable
	}
	if code == codes.Internal {
		slog.Error("grpc lookup failed", "error", err)
	}
	return status.Error(code, body.Error)
}
