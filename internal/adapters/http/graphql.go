package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/samirrijal/olistboard/internal/core/domain"
)

// rangeArgs are accepted by every range-dependent field.
var rangeArgs = graphql.FieldConfigArgument{
	"start": &graphql.ArgumentConfig{Type: graphql.String, Description: "YYYY-MM-DD, defaults to the first approval day"},
	"end":   &graphql.ArgumentConfig{Type: graphql.String, Description: "YYYY-MM-DD, defaults to the last approval day"},
}

// buildSchema creates the GraphQL schema wired to the analytics service.
// Object fields resolve through the json tags of the domain types.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	geoPointType := graphql.NewObject(graphql.ObjectConfig{
		Name: "GeoPoint",
		Fields: graphql.Fields{
			"lat": &graphql.Field{Type: graphql.Float},
			"lon": &graphql.Field{Type: graphql.Float},
		},
	})

	dateRangeType := graphql.NewObject(graphql.ObjectConfig{
		Name: "DateRange",
		Fields: graphql.Fields{
			"start": &graphql.Field{Type: graphql.String},
			"end":   &graphql.Field{Type: graphql.String},
		},
	})

	productType := graphql.NewObject(graphql.ObjectConfig{
		Name: "ProductRevenue",
		Fields: graphql.Fields{
			"product_id":            &graphql.Field{Type: graphql.String},
			"product_category_name": &graphql.Field{Type: graphql.String},
			"total_revenue":         &graphql.Field{Type: graphql.Float},
			"order_count":           &graphql.Field{Type: graphql.Int},
			"sell_probability":      &graphql.Field{Type: graphql.Float},
		},
	})

	regionType := graphql.NewObject(graphql.ObjectConfig{
		Name: "RegionSpend",
		Fields: graphql.Fields{
			"customer_state": &graphql.Field{Type: graphql.String},
			"mean":           &graphql.Field{Type: graphql.Float},
			"std":            &graphql.Field{Type: graphql.Float},
			"count":          &graphql.Field{Type: graphql.Int},
			"ci_low":         &graphql.Field{Type: graphql.Float},
			"ci_high":        &graphql.Field{Type: graphql.Float},
		},
	})

	spenderType := graphql.NewObject(graphql.ObjectConfig{
		Name: "CustomerSpend",
		Fields: graphql.Fields{
			"customer_unique_id": &graphql.Field{Type: graphql.String},
			"customer_state":     &graphql.Field{Type: graphql.String},
			"total_spent":        &graphql.Field{Type: graphql.Float},
		},
	})

	densityType := graphql.NewObject(graphql.ObjectConfig{
		Name: "StateDensity",
		Fields: graphql.Fields{
			"state":     &graphql.Field{Type: graphql.String},
			"customers": &graphql.Field{Type: graphql.Int},
		},
	})

	locationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "CustomerLocation",
		Fields: graphql.Fields{
			"customer_unique_id": &graphql.Field{Type: graphql.String},
			"zip_code_prefix":    &graphql.Field{Type: graphql.Int},
			"city":               &graphql.Field{Type: graphql.String},
			"state":              &graphql.Field{Type: graphql.String},
			"location":           &graphql.Field{Type: geoPointType},
		},
	})

	resolveRange := func(p graphql.ResolveParams) (domain.DateRange, error) {
		start, _ := p.Args["start"].(string)
		end, _ := p.Args["end"].(string)
		return deps.Analytics.ResolveRange(start, end)
	}

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"dateRange": &graphql.Field{
				Type:        dateRangeType,
				Description: "First and last approval day in the dataset",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					r, err := deps.Analytics.Bounds()
					if err != nil {
						return nil, err
					}
					return toRangeJSON(r), nil
				},
			},
			"topProduct": &graphql.Field{
				Type:        productType,
				Description: "Best-selling product by revenue",
				Args:        rangeArgs,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					r, err := resolveRange(p)
					if err != nil {
						return nil, err
					}
					return deps.Analytics.TopProduct(p.Context, r)
				},
			},
			"productRevenues": &graphql.Field{
				Type:        graphql.NewList(productType),
				Description: "Revenue per product, highest first",
				Args: graphql.FieldConfigArgument{
					"start": rangeArgs["start"],
					"end":   rangeArgs["end"],
					"limit": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 20},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					r, err := resolveRange(p)
					if err != nil {
						return nil, err
					}
					revenues := deps.Analytics.ProductRevenues(p.Context, r)
					if limit, _ := p.Args["limit"].(int); limit > 0 && len(revenues) > limit {
						revenues = revenues[:limit]
					}
					return revenues, nil
				},
			},
			"regionSpend": &graphql.Field{
				Type:        graphql.NewList(regionType),
				Description: "Mean payment per state over the last three months",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Analytics.RegionSpend(p.Context), nil
				},
			},
			"topSpenders": &graphql.Field{
				Type:        graphql.NewList(spenderType),
				Description: "Customers by total payment over the last three months",
				Args: graphql.FieldConfigArgument{
					"limit": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 10},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					limit, _ := p.Args["limit"].(int)
					return deps.Analytics.TopSpenders(p.Context, limit), nil
				},
			},
			"stateDensity": &graphql.Field{
				Type:        graphql.NewList(densityType),
				Description: "Located customers per state",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Analytics.StateDensity(p.Context), nil
				},
			},
			"customerLocations": &graphql.Field{
				Type:        graphql.NewList(locationType),
				Description: "Customers resolved to coordinates",
				Args: graphql.FieldConfigArgument{
					"offset": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 0},
					"limit":  &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 100},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					locs := deps.Analytics.CustomerLocations(p.Context)
					offset, _ := p.Args["offset"].(int)
					limit, _ := p.Args["limit"].(int)
					if offset < 0 || offset >= len(locs) {
						return []domain.CustomerLocation{}, nil
					}
					end := offset + limit
					if limit <= 0 || end > len(locs) {
						end = len(locs)
					}
					return locs[offset:end], nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.UserContext(),
		})

		return c.JSON(result)
	}
}
