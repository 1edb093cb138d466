package api

import (
	"context"
	"errors"
	"fmt"

	"github.com/hazyhaar/vegantree/pkg/hierarchy"
	"github.com/hazyhaar/vegantree/pkg/ingredient"
	"github.com/hazyhaar/vegantree/pkg/kit"
	"github.com/hazyhaar/vegantree/pkg/vegan"
)

// ErrInvalidRequest marks caller mistakes; HTTP maps it to 400.
var ErrInvalidRequest = errors.New("invalid request")

const (
	maxBaskets     = 100
	maxIngredients = 1000
	maxVocab       = 20000
)

// Shared request/response types used by both HTTP and MCP transports.

type cleanReq struct {
	Ingredients []string `json:"ingredients"`
}

type cleanResult struct {
	Input string `json:"input"`
	Clean string `json:"clean"`
}

type cleanResponse struct {
	Results []cleanResult `json:"results"`
}

type preprocessReq struct {
	Ingredients []string `json:"ingredients"`
	MinLength   int      `json:"min_length,omitempty"`
}

type preprocessResponse struct {
	Tokens []string `json:"tokens"`
}

type veganReq struct {
	Baskets [][]string `json:"baskets"`
}

type veganResponse struct {
	Results []vegan.Verdict `json:"results"`
}

// decomposeReq either infers a hierarchy from Vocab or, when Parents is
// set, resolves the roots of that explicit parent map.
type decomposeReq struct {
	Vocab       []string          `json:"vocab"`
	FixedPoints []string          `json:"fixed_points"`
	Parents     map[string]string `json:"parents,omitempty"`
}

type decomposeResponse struct {
	Roots map[string]string `json:"roots"`
}

type endpoints struct {
	clean      kit.Endpoint
	preprocess kit.Endpoint
	vegan      kit.Endpoint
	decompose  kit.Endpoint
	lexicon    kit.Endpoint
}

// newEndpoints wraps each endpoint with request ids and logging.
func newEndpoints(svc *Service) *endpoints {
	wrap := func(name string, ep kit.Endpoint) kit.Endpoint {
		return kit.Chain(kit.RequestID(), kit.Logging(svc.logger, name))(ep)
	}
	return &endpoints{
		clean:      wrap("clean", cleanEndpoint(svc)),
		preprocess: wrap("preprocess", preprocessEndpoint(svc)),
		vegan:      wrap("vegan", veganEndpoint(svc)),
		decompose:  wrap("decompose", decomposeEndpoint(svc)),
		lexicon:    wrap("lexicon", lexiconEndpoint(svc)),
	}
}

func cleanEndpoint(svc *Service) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*cleanReq)
		if err := checkIngredients(req.Ingredients); err != nil {
			return nil, err
		}
		norm, _ := svc.current()
		results := make([]cleanResult, len(req.Ingredients))
		for i, in := range req.Ingredients {
			results[i] = cleanResult{Input: in, Clean: norm.Clean(in)}
		}
		return cleanResponse{Results: results}, nil
	}
}

func preprocessEndpoint(svc *Service) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*preprocessReq)
		if err := checkIngredients(req.Ingredients); err != nil {
			return nil, err
		}
		if req.MinLength < 0 {
			return nil, fmt.Errorf("%w: min_length must not be negative", ErrInvalidRequest)
		}
		minLen := req.MinLength
		if minLen == 0 {
			minLen = ingredient.DefaultMinLength
		}
		norm, _ := svc.current()
		tokens := norm.Preprocess(req.Ingredients, minLen)
		if tokens == nil {
			tokens = []string{}
		}
		return preprocessResponse{Tokens: tokens}, nil
	}
}

func veganEndpoint(svc *Service) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*veganReq)
		if len(req.Baskets) == 0 {
			return nil, fmt.Errorf("%w: baskets array is empty", ErrInvalidRequest)
		}
		if len(req.Baskets) > maxBaskets {
			return nil, fmt.Errorf("%w: too many baskets (max %d, got %d)", ErrInvalidRequest, maxBaskets, len(req.Baskets))
		}
		_, cls := svc.current()
		results := make([]vegan.Verdict, len(req.Baskets))
		for i, b := range req.Baskets {
			results[i] = cls.Check(b)
		}
		return veganResponse{Results: results}, nil
	}
}

func decomposeEndpoint(svc *Service) kit.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(*decomposeReq)
		if len(req.Parents) > 0 {
			roots, err := hierarchy.Resolve(req.Parents)
			if err != nil {
				return nil, err
			}
			return decomposeResponse{Roots: roots}, nil
		}
		if len(req.Vocab) > maxVocab {
			return nil, fmt.Errorf("%w: vocabulary too large (max %d, got %d)", ErrInvalidRequest, maxVocab, len(req.Vocab))
		}
		forest, err := hierarchy.BuildForest(ctx, req.Vocab, req.FixedPoints, hierarchy.WithWorkers(svc.workers))
		if err != nil {
			return nil, err
		}
		roots, err := forest.Roots()
		if err != nil {
			return nil, err
		}
		return decomposeResponse{Roots: roots}, nil
	}
}

func lexiconEndpoint(svc *Service) kit.Endpoint {
	return func(_ context.Context, _ any) (any, error) {
		return svc.Lexicon().Info(), nil
	}
}

func checkIngredients(items []string) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: ingredients array is empty", ErrInvalidRequest)
	}
	if len(items) > maxIngredients {
		return fmt.Errorf("%w: too many ingredients (max %d, got %d)", ErrInvalidRequest, maxIngredients, len(items))
	}
	return nil
}
