package authz

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/open-policy-agent/opa/rego"
)

//go:embed policy.rego
var policy string

// Request describes one API call for the policy.
type Request struct {
	Method        string
	Resource      string
	Authenticated bool
	IsStaff       bool
}

// Authorizer evaluates the access policy in-process.
type Authorizer struct {
	query rego.PreparedEvalQuery
}

func New(ctx context.Context) (*Authorizer, error) {
	query, err := rego.New(
		rego.Query("data.skybook.authz.allow"),
		rego.Module("policy.rego", policy),
	).PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("prepare policy: %w", err)
	}
	return &Authorizer{query: query}, nil
}

func (a *Authorizer) Allow(ctx context.Context, req Request) (bool, error) {
	input := map[string]interface{}{
		"method":        req.Method,
		"resource":      req.Resource,
		"authenticated": req.Authenticated,
		"is_staff":      req.IsStaff,
	}
	rs, err := a.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return false, fmt.Errorf("evaluate policy: %w", err)
	}
	return rs.Allowed(), nil
}
