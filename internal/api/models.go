package api

// Role determines which views and actions an identity may use.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleManager  Role = "MANAGER"
)

// Identity is a signed-in principal as issued by the remote user directory.
type Identity struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// FoodItem is one menu entry.
type FoodItem struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Order is one placed order. ItemName is a denormalized copy of the menu
// item name at order time; later menu edits do not alter it.
type Order struct {
	ID           int    `json:"id"`
	CustomerName string `json:"customerName"`
	ItemName     string `json:"itemName"`
	Quantity     int    `json:"quantity"`
	UserID       int    `json:"userId"`
	Delivered    bool   `json:"delivered"`
}
