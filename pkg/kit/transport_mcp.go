package kit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// DecodeMCP builds a typed request from MCP tool arguments.
type DecodeMCP func(mcp.CallToolRequest) (any, error)

// DecodeArgs returns a DecodeMCP that re-encodes the tool arguments as
// JSON into a new *T, so MCP and HTTP share one request shape.
func DecodeArgs[T any]() DecodeMCP {
	return func(req mcp.CallToolRequest) (any, error) {
		data, err := json.Marshal(req.GetArguments())
		if err != nil {
			return nil, err
		}
		v := new(T)
		if err := json.Unmarshal(data, v); err != nil {
			return nil, err
		}
		return v, nil
	}
}

// RegisterMCPTool registers an Endpoint as an MCP tool on the given server.
// The endpoint sees transport "mcp"; its response is returned as JSON text.
func RegisterMCPTool(srv *server.MCPServer, tool mcp.Tool, endpoint Endpoint, decode DecodeMCP) {
	srv.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		request, err := decode(req)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		resp, err := endpoint(WithTransport(ctx, "mcp"), request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		data, err := json.Marshal(resp)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("marshal: %v", err)), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	})
}
