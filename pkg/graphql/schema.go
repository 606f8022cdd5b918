// Package graphql exposes a read-only GraphQL view of the class model. Each
// query resolves against a single store snapshot.
package graphql

import (
	"fmt"

	"github.com/graphql-go/graphql"

	"github.com/dd0wney/cluso-classdiagram/pkg/health"
	"github.com/dd0wney/cluso-classdiagram/pkg/store"
	"github.com/dd0wney/cluso-classdiagram/pkg/uml"
)

// SnapshotSource supplies the snapshot a query reads.
type SnapshotSource interface {
	Snapshot() *store.Snapshot
}

// HealthSource is implemented by sources that can report session health.
type HealthSource interface {
	Health() health.Response
}

var attributeType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Attribute",
	Fields: graphql.Fields{
		"visibility": attributeField(func(a uml.Attribute) any { return a.Visibility.Marker() }),
		"name":       attributeField(func(a uml.Attribute) any { return a.Name }),
		"type":       attributeField(func(a uml.Attribute) any { return a.Type.String() }),
		"display":    attributeField(func(a uml.Attribute) any { return a.String() }),
	},
})

var methodType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Method",
	Fields: graphql.Fields{
		"visibility": methodField(graphql.String, func(m uml.Method) any { return m.Visibility.Marker() }),
		"name":       methodField(graphql.String, func(m uml.Method) any { return m.Name }),
		"returnType": methodField(graphql.String, func(m uml.Method) any { return m.ReturnType.String() }),
		"args":       methodField(graphql.NewList(graphql.String), func(m uml.Method) any { return m.Args }),
		"display":    methodField(graphql.String, func(m uml.Method) any { return m.String() }),
	},
})

var classType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Class",
	Fields: graphql.Fields{
		"id": &graphql.Field{
			Type: graphql.NewNonNull(graphql.ID),
			Resolve: classResolver(func(c uml.ClassRecord) any {
				return c.ID.String()
			}),
		},
		"name": &graphql.Field{
			Type: graphql.String,
			Resolve: classResolver(func(c uml.ClassRecord) any {
				return c.Name
			}),
		},
		"attributes": &graphql.Field{
			Type: graphql.NewList(attributeType),
			Resolve: classResolver(func(c uml.ClassRecord) any {
				return c.Attributes
			}),
		},
		"methods": &graphql.Field{
			Type: graphql.NewList(methodType),
			Resolve: classResolver(func(c uml.ClassRecord) any {
				return c.Methods
			}),
		},
	},
})

var linkType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Link",
	Fields: graphql.Fields{
		"from": &graphql.Field{
			Type: graphql.ID,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if l, ok := p.Source.(uml.LinkRecord); ok {
					return l.From.String(), nil
				}
				return nil, nil
			},
		},
		"to": &graphql.Field{
			Type: graphql.ID,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if l, ok := p.Source.(uml.LinkRecord); ok {
					return l.To.String(), nil
				}
				return nil, nil
			},
		},
	},
})

// GenerateSchema builds the query schema over src
func GenerateSchema(src SnapshotSource) (graphql.Schema, error) {
	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"health": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if hs, ok := src.(HealthSource); ok {
						return string(hs.Health().Status), nil
					}
					return string(health.StatusHealthy), nil
				},
			},
			"version": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return int(src.Snapshot().Version()), nil
				},
			},
			// classes(name: String): [Class]
			"classes": &graphql.Field{
				Type: graphql.NewList(classType),
				Args: graphql.FieldConfigArgument{
					"name": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					classes := src.Snapshot().Classes()
					name, ok := p.Args["name"].(string)
					if !ok {
						return classes, nil
					}
					filtered := make([]uml.ClassRecord, 0, len(classes))
					for _, c := range classes {
						if c.Name == name {
							filtered = append(filtered, c)
						}
					}
					return filtered, nil
				},
			},
			// class(id: ID!): Class
			"class": &graphql.Field{
				Type: classType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, ok := p.Args["id"].(string)
					if !ok {
						return nil, fmt.Errorf("id argument is required")
					}
					rec, found := src.Snapshot().Get(uml.Identity(id))
					if !found {
						return nil, nil
					}
					return rec, nil
				},
			},
			"links": &graphql.Field{
				Type: graphql.NewList(linkType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return src.Snapshot().Links(), nil
				},
			},
		},
	})

	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
	if err != nil {
		return graphql.Schema{}, fmt.Errorf("failed to create schema: %w", err)
	}

	return schema, nil
}

func classResolver(get func(uml.ClassRecord) any) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		if c, ok := p.Source.(uml.ClassRecord); ok {
			return get(c), nil
		}
		return nil, nil
	}
}

func attributeField(get func(uml.Attribute) any) *graphql.Field {
	return &graphql.Field{
		Type: graphql.String,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			if a, ok := p.Source.(uml.Attribute); ok {
				return get(a), nil
			}
			return nil, nil
		},
	}
}

func methodField(t graphql.Output, get func(uml.Method) any) *graphql.Field {
	return &graphql.Field{
		Type: t,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			if m, ok := p.Source.(uml.Method); ok {
				return get(m), nil
			}
			return nil, nil
		},
	}
}
