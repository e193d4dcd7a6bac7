package auth

type Permission string

// AdminRole is the seeded role that holds every permission.
const AdminRole = "ADMIN"

// PermissionCachePattern matches every cached permission set.
const PermissionCachePattern = "permissions:*"

// PermissionCacheKey is where a user's permission names are cached.
func PermissionCacheKey(userID string) string {
	return "permissions:" + userID
}

const (
	AccountView       Permission = "Account_View"
	AccountCreate     Permission = "Account_Create"
	AccountRoleCreate Permission = "Account_Role_Create"
	AccountRoleEdit   Permission = "Account_Role_Edit"

	// AccountEdit shares the create permission.
	AccountEdit = AccountCreate

	OrderView   Permission = "Order_View"
	OrderCreate Permission = "Order_Create"
	OrderEdit   Permission = "Order_Edit"
	OrderPay    Permission = "Order_Pay"

	ProductView   Permission = "Product_View"
	ProductCreate Permission = "Product_Create"
	ProductEdit   Permission = "Product_Edit"

	WarehouseView             Permission = "Warehouse_View"
	WarehouseMaterialCreate   Permission = "Warehouse_Material_Create"
	WarehouseMaterialEdit     Permission = "Warehouse_Material_Edit"
	WarehouseProviderCreate   Permission = "Warehouse_Provider_Create"
	WarehouseProviderEdit     Permission = "Warehouse_Provider_Edit"
	WarehouseImportNoteCreate Permission = "Warehouse_ImportNote_Create"
	WarehouseExportNoteCreate Permission = "Warehouse_ExportNote_Create"
	WarehouseNoteDelete       Permission = "Warehouse_Note_Delete"

	DefinitionView   Permission = "Definition_View"
	DefinitionCreate Permission = "Definition_Create"
	DefinitionEdit   Permission = "Definition_Edit"
)

// RoutePermissions maps "METHOD /full/path" (gin's FullPath) to the
// permission the caller needs. Routes missing here only need a valid token.
var RoutePermissions = map[string]Permission{
	"GET /api/material":              WarehouseView,
	"GET /api/material/active":       WarehouseView,
	"GET /api/material/low-stock":    WarehouseView,
	"GET /api/material/movements":    WarehouseView,
	"GET /api/material/units":        WarehouseView,
	"GET /api/material/:id":          WarehouseView,
	"POST /api/material":             WarehouseMaterialCreate,
	"POST /api/material/units":       WarehouseMaterialCreate,
	"DELETE /api/material/units/:id": WarehouseMaterialCreate,
	"PUT /api/material/:id":          WarehouseMaterialEdit,

	"GET /api/provider":        WarehouseView,
	"GET /api/provider/active": WarehouseView,
	"GET /api/provider/:id":    WarehouseView,
	"POST /api/provider":       WarehouseProviderCreate,
	"PUT /api/provider/:id":    WarehouseProviderEdit,

	"GET /api/import-export":                        WarehouseView,
	"GET /api/import-export/import-notes/:id":       WarehouseView,
	"GET /api/import-export/export-notes/:id":       WarehouseView,
	"GET /api/import-export/import-notes/:id/excel": WarehouseView,
	"GET /api/import-export/export-notes/:id/excel": WarehouseView,
	"POST /api/import-export/import-notes":          WarehouseImportNoteCreate,
	"POST /api/import-export/export-notes":          WarehouseExportNoteCreate,
	"DELETE /api/import-export/import-notes/:id":    WarehouseNoteDelete,
	"DELETE /api/import-export/export-notes/:id":    WarehouseNoteDelete,

	"GET /api/order":                 OrderView,
	"GET /api/order/payment-methods": OrderView,
	"GET /api/order/:id":             OrderView,
	"POST /api/order":                OrderCreate,
	"PUT /api/order/:id":             OrderEdit,
	"DELETE /api/order/:id":          OrderEdit,
	"POST /api/order/:id/pay":        OrderPay,

	"GET /api/statistic/revenue-chart": OrderView,
	"GET /api/statistic/overview":      OrderView,
	"GET /api/statistic/order-type":    OrderView,
	"GET /api/statistic/payment-type":  OrderView,
	"GET /api/statistic/category":      OrderView,
	"GET /api/statistic/top-products":  OrderView,

	"GET /api/category":        ProductView,
	"POST /api/category":       ProductCreate,
	"PUT /api/category/:id":    ProductEdit,
	"DELETE /api/category/:id": ProductEdit,
	"GET /api/product":         ProductView,
	"GET /api/product/:id":     ProductView,
	"POST /api/product":        ProductCreate,
	"PUT /api/product/:id":     ProductEdit,

	"GET /api/product/:id/options": ProductView,
	"PUT /api/product/:id/options": ProductEdit,

	"GET /api/definition/types":        DefinitionView,
	"POST /api/definition/types":       DefinitionCreate,
	"PUT /api/definition/types/:id":    DefinitionEdit,
	"DELETE /api/definition/types/:id": DefinitionEdit,
	"GET /api/definition/options":      DefinitionView,
	"GET /api/definition/options/:id":  DefinitionView,
	"POST /api/definition/options":     DefinitionCreate,
	"PUT /api/definition/options/:id":  DefinitionEdit,

	"GET /api/account":                     AccountView,
	"GET /api/account/:id":                 AccountView,
	"GET /api/account/:id/permissions":     AccountView,
	"POST /api/account":                    AccountCreate,
	"PUT /api/account/:id":                 AccountEdit,
	"DELETE /api/account/:id":              AccountEdit,
	"POST /api/account/:id/reset-password": AccountEdit,

	"GET /api/role":                 AccountView,
	"GET /api/role/:id/permissions": AccountView,
	"GET /api/permission":           AccountView,
	"POST /api/role":                AccountRoleCreate,
	"PUT /api/role/:id":             AccountRoleEdit,
	"DELETE /api/role/:id":          AccountRoleEdit,
}
