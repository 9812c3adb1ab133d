package migrate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFunctionsSQLDefinesRepositoryFunctions(t *testing.T) {
	require.NotEmpty(t, functionsSQL)

	for _, name := range []string{
		"sp_add_sales_master",
		"sp_insert_sales_details",
		"sp_update_sales_master",
		"sp_get_sales_master_by_id",
		"sp_get_sales_detail_by_sale_id",
		"sp_get_sales_total_by_id",
		"sp_delete_sales_master",
		"sp_get_all_sales",
		"sp_get_sales_by_salesperson",
		"sp_get_all_products",
		"sp_get_product_by_id",
		"sp_add_product",
		"sp_update_product",
		"sp_delete_product",
		"sp_get_all_salespersons",
		"sp_get_salesperson_by_id",
		"sp_add_salesperson",
		"sp_update_salesperson_name",
		"sp_delete_salesperson",
	} {
		assert.Contains(t, functionsSQL, "FUNCTION "+name+"(", name)
	}
}

func TestFunctionsSQLHasNoGormPlaceholders(t *testing.T) {
	// gorm rewrites ? and @name when executing raw SQL
	assert.False(t, strings.Contains(functionsSQL, "?"))
	assert.False(t, strings.Contains(functionsSQL, "@"))
}

func TestAllTablesInDependencyOrder(t *testing.T) {
	tables := AllTables()
	require.Len(t, tables, 4)

	var names []string
	for _, table := range tables {
		names = append(names, table.(interface{ TableName() string }).TableName())
	}
	assert.Equal(t, []string{"products", "salespersons", "sales_master", "sales_detail"}, names)
}

func TestForeignKeysReferenceKnownTables(t *testing.T) {
	known := map[string]bool{"products": true, "salespersons": true, "sales_master": true, "sales_detail": true}
	for _, fk := range foreignKeys {
		assert.True(t, known[fk.table], fk.name)
		assert.True(t, known[fk.refTable], fk.name)
	}
}
