package kit

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func TestChainOrder(t *testing.T) {
	var trail []string
	mark := func(name string) Middleware {
		return func(next Endpoint) Endpoint {
			return func(ctx context.Context, req any) (any, error) {
				trail = append(trail, name)
				return next(ctx, req)
			}
		}
	}
	ep := Chain(mark("a"), mark("b"), mark("c"))(func(context.Context, any) (any, error) {
		trail = append(trail, "endpoint")
		return nil, nil
	})
	ep(context.Background(), nil)

	if got := strings.Join(trail, ","); got != "a,b,c,endpoint" {
		t.Errorf("trail = %s", got)
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	ep := RequestID()(func(ctx context.Context, _ any) (any, error) {
		seen = GetRequestID(ctx)
		return nil, nil
	})

	ep(context.Background(), nil)
	if len(seen) != 36 {
		t.Errorf("generated id = %q, want a uuid", seen)
	}

	ep(WithRequestID(context.Background(), "fixed"), nil)
	if seen != "fixed" {
		t.Errorf("existing id overwritten: %q", seen)
	}
}

func TestTransportDefault(t *testing.T) {
	if got := GetTransport(context.Background()); got != "http" {
		t.Errorf("default transport = %q", got)
	}
	if got := GetTransport(WithTransport(context.Background(), "mcp")); got != "mcp" {
		t.Errorf("transport = %q", got)
	}
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	ok := Logging(logger, "clean")(func(context.Context, any) (any, error) { return "x", nil })
	if resp, err := ok(WithRequestID(context.Background(), "r1"), nil); err != nil || resp != "x" {
		t.Fatalf("resp = %v, err = %v", resp, err)
	}
	out := buf.String()
	for _, want := range []string{"endpoint=clean", "transport=http", "request_id=r1", "level=DEBUG"} {
		if !strings.Contains(out, want) {
			t.Errorf("log %q missing %q", out, want)
		}
	}

	buf.Reset()
	boom := errors.New("boom")
	failing := Logging(logger, "decompose")(func(context.Context, any) (any, error) { return nil, boom })
	if _, err := failing(context.Background(), nil); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	if out := buf.String(); !strings.Contains(out, "level=WARN") || !strings.Contains(out, "error=boom") {
		t.Errorf("failure log = %q", out)
	}
}

func TestDecodeArgs(t *testing.T) {
	type req struct {
		Ingredients []string `json:"ingredients"`
	}
	var call mcp.CallToolRequest
	call.Params.Arguments = map[string]any{"ingredients": []any{"Tomatoes", "basil"}}

	v, err := DecodeArgs[req]()(call)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	got := v.(*req)
	if len(got.Ingredients) != 2 || got.Ingredients[0] != "Tomatoes" {
		t.Errorf("decoded = %+v", got)
	}

	call.Params.Arguments = map[string]any{"ingredients": []any{"tomato", 42}}
	if _, err := DecodeArgs[req]()(call); err == nil {
		t.Error("expected error for non-string element")
	}
}
