package api

import (
	"github.com/hazyhaar/vegantree/pkg/kit"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

var (
	stringItems = map[string]any{"type": "string"}
	basketItems = map[string]any{"type": "array", "items": stringItems}
)

// RegisterMCPTools registers the vegantree MCP tools on the server. They
// dispatch to the same endpoints as the HTTP routes.
func RegisterMCPTools(srv *server.MCPServer, svc *Service) {
	ep := newEndpoints(svc)

	kit.RegisterMCPTool(srv, mcp.NewTool("clean_ingredients",
		mcp.WithDescription("Normalize raw ingredient strings: lowercase, drop parentheses and symbols, lemmatize, remove adjectives."),
		mcp.WithArray("ingredients", mcp.Required(), mcp.Items(stringItems), mcp.Description("Raw ingredient strings")),
	), ep.clean, kit.DecodeArgs[cleanReq]())

	kit.RegisterMCPTool(srv, mcp.NewTool("preprocess_ingredients",
		mcp.WithDescription("Clean a basket of ingredients and drop results shorter than min_length characters."),
		mcp.WithArray("ingredients", mcp.Required(), mcp.Items(stringItems), mcp.Description("Raw ingredient strings")),
		mcp.WithNumber("min_length", mcp.Description("Minimum cleaned length (default 3)")),
	), ep.preprocess, kit.DecodeArgs[preprocessReq]())

	kit.RegisterMCPTool(srv, mcp.NewTool("is_vegan",
		mcp.WithDescription("Classify up to 100 ingredient baskets as vegan or not, naming the first offending item."),
		mcp.WithArray("baskets", mcp.Required(), mcp.Items(basketItems), mcp.Description("Baskets, each a list of ingredient strings")),
	), ep.vegan, kit.DecodeArgs[veganReq]())

	kit.RegisterMCPTool(srv, mcp.NewTool("decompose_vocab",
		mcp.WithDescription("Infer the root of every term of a vocabulary by substring containment, anchored on fixed points."),
		mcp.WithArray("vocab", mcp.Items(stringItems), mcp.Description("Normalized vocabulary")),
		mcp.WithArray("fixed_points", mcp.Items(stringItems), mcp.Description("Terms that never take a parent")),
		mcp.WithObject("parents", mcp.Description("Explicit child to parent map; when set, only its roots are resolved")),
	), ep.decompose, kit.DecodeArgs[decomposeReq]())

	kit.RegisterMCPTool(srv, mcp.NewTool("lexicon_info",
		mcp.WithDescription("Describe the loaded lexicon: id, version and table sizes."),
	), ep.lexicon, kit.DecodeArgs[struct{}]())
}
