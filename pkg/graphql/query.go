package graphql

import (
	"context"

	"github.com/graphql-go/graphql"
)

// ExecuteQueryWithVariables executes a GraphQL query with variables
func ExecuteQueryWithVariables(query string, schema graphql.Schema, variables map[string]any) *graphql.Result {
	return Execute(context.Background(), schema, query, variables)
}

// Execute runs a query under ctx
func Execute(ctx context.Context, schema graphql.Schema, query string, variables map[string]any) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:         schema,
		RequestString:  query,
		VariableValues: variables,
		Context:        ctx,
	})
}
