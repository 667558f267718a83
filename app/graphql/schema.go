// Package graphql exposes a read-only query surface over the menu and
// store status.
package graphql

import (
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/ashrith-07/campus-bites-sub000/app/models"
	"github.com/ashrith-07/campus-bites-sub000/app/services"
	gqlhttp "github.com/ashrith-07/campus-bites-sub000/pkg/graphql"
)

var menuItemType = graphql.NewObject(graphql.ObjectConfig{
	Name: "MenuItem",
	Fields: graphql.Fields{
		"id":           &graphql.Field{Type: graphql.Int},
		"name":         &graphql.Field{Type: graphql.String},
		"description":  &graphql.Field{Type: graphql.String},
		"price":        &graphql.Field{Type: graphql.Float},
		"category":     &graphql.Field{Type: graphql.String},
		"imageUrl":     &graphql.Field{Type: graphql.String},
		"imageIsEmoji": &graphql.Field{Type: graphql.Boolean},
		"stock":        &graphql.Field{Type: graphql.Int},
		"isAvailable":  &graphql.Field{Type: graphql.Boolean},
		"popular":      &graphql.Field{Type: graphql.Boolean},
	},
})

func init() {
	// Resolve id from the embedded gorm.Model.
	menuItemType.Fields()["id"].Resolve = func(p graphql.ResolveParams) (any, error) {
		if item, ok := p.Source.(models.MenuItem); ok {
			return int(item.ID), nil
		}
		return nil, nil
	}
}

// NewHandler builds the /api/graphql endpoint over the menu and store
// services.
func NewHandler(menu *services.MenuService, store *services.StoreService) (http.Handler, error) {
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"menuItems": &graphql.Field{
				Type: graphql.NewList(menuItemType),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return menu.List(p.Context)
				},
			},
			"menuItem": &graphql.Field{
				Type: menuItemType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					id, _ := p.Args["id"].(int)
					return menu.Get(uint(id))
				},
			},
			"storeOpen": &graphql.Field{
				Type: graphql.Boolean,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return store.Get(p.Context), nil
				},
			},
		},
	})

	schema, err := gqlhttp.NewSchema(query)
	if err != nil {
		return nil, err
	}
	return gqlhttp.Handler(schema), nil
}
