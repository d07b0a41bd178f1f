package demo

import (
	_ "embed"

	"github.com/JonMunkholm/itemtable/internal/catalog"
	"github.com/JonMunkholm/itemtable/internal/table"
)

var (
	//go:embed data/products.json
	productsJSON []byte

	//go:embed data/orders.json
	ordersJSON []byte
)

func init() {
	registerProducts()
	registerOrders()
	registerTags()
	registerPgTables()
}

func str(s string) *string { return &s }

var rowActions = []table.Action{
	{Name: "edit-item", Label: "Edit", Icon: "edit icon", Class: "ui teal basic mini button"},
	{Name: "delete-item", Icon: "delete icon", Class: "ui red basic mini button",
		Extra: map[string]string{"title": "Delete this row"}},
}

func registerProducts() {
	catalog.Register(catalog.Definition{
		Info: catalog.Info{
			Key:         "products",
			Group:       "Inventory",
			Label:       "Products",
			Description: "Sortable product list with selection and row actions",
		},
		Fields: []table.FieldInput{
			table.FieldName("__handle"),
			table.FieldName("__sequence"),
			table.FieldName("__checkbox:id"),
			{Name: "code", Callback: str("upper")},
			table.FieldName("name"),
			{Name: "price", Callback: str("money|$"), TitleClass: str("right aligned"), DataClass: str("right aligned")},
			{Name: "in_stock", Title: str("In stock"), Callback: str("yesno"), DataClass: str("center aligned")},
			table.FieldName("__actions"),
		},
		Actions:   rowActions,
		Callbacks: Callbacks,
		Options:   map[string]any{"minRows": 8},
		Source:    catalog.RowSource{JSON: productsJSON, Path: "items"},
	})
}

func registerOrders() {
	catalog.Register(catalog.Definition{
		Info: catalog.Info{
			Key:         "orders",
			Group:       "Sales",
			Label:       "Orders",
			Description: "Nested customer fields and date formatting",
		},
		Fields: []table.FieldInput{
			table.FieldName("__checkbox:order_id"),
			{Name: "order_id", Title: str("Order #")},
			{Name: "customer.name", Title: str("Customer")},
			{Name: "customer.country", Title: str("Country"), DataClass: str("collapsing")},
			{Name: "placed_at", Title: str("Placed"), Callback: str("date|Jan 2 2006")},
			{Name: "total", Callback: str("money|€"), DataClass: str("right aligned")},
			{Name: "status", Callback: str("lower")},
		},
		Callbacks: Callbacks,
		Options:   map[string]any{"table-class": "ui celled compact table"},
		Source:    catalog.RowSource{JSON: ordersJSON},
	})
}

func registerTags() {
	catalog.Register(catalog.Definition{
		Info: catalog.Info{
			Key:   "tags",
			Group: "Inventory",
			Label: "Tags",
		},
		Fields: []table.FieldInput{
			table.FieldName("__sequence"),
			{Name: "name", Callback: str("prefix|#")},
			table.FieldName("uses"),
		},
		Callbacks: Callbacks,
		Options:   map[string]any{"minRows": 5},
		Source: catalog.RowSource{Rows: []table.Row{
			{"name": "fasteners", "uses": 14},
			{"name": "outdoor", "uses": 3},
		}},
	})
}

func registerPgTables() {
	catalog.Register(catalog.Definition{
		Info: catalog.Info{
			Key:         "pg_tables",
			Group:       "Database",
			Label:       "Postgres tables",
			Description: "Requires DATABASE_URL",
		},
		Fields: []table.FieldInput{
			table.FieldName("__sequence"),
			table.FieldName("schemaname"),
			table.FieldName("tablename"),
			table.FieldName("tableowner"),
		},
		Source: catalog.RowSource{
			Query: `SELECT schemaname, tablename, tableowner
			        FROM pg_catalog.pg_tables
			        ORDER BY schemaname, tablename`,
		},
	})
}
