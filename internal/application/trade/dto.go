package trade

// CreatePurchaseOrderRequest records a new purchase order row.
type CreatePurchaseOrderRequest struct {
	Supplier     string         `json:"supplier" binding:"required"`
	OrderDate    string         `json:"order_date"`
	DespatchDate string         `json:"despatch_date"`
	Amount       string         `json:"amount"`
	Quantities   map[string]int `json:"quantities" binding:"required"`
}

// UpdatePurchaseOrderRequest updates the bounded set of mutable fields on an
// existing purchase order. Nil fields are left untouched.
type UpdatePurchaseOrderRequest struct {
	DespatchDate *string `json:"despatch_date"`
	Amount       *string `json:"amount"`
}

// CreateSalesOrderRequest records a new sales order row. Quantities are the
// ordered amounts; dispatched amounts start blank and are filled in later.
type CreateSalesOrderRequest struct {
	Customer        string         `json:"customer" binding:"required"`
	OrderDate       string         `json:"order_date"`
	AppointmentDate string         `json:"appointment_date"`
	Amount          string         `json:"amount"`
	Quantities      map[string]int `json:"quantities" binding:"required"`
}

// UpdateSalesOrderRequest updates the mutable fields of a sales order,
// including the dispatched quantities of the second column block.
type UpdateSalesOrderRequest struct {
	AppointmentDate *string        `json:"appointment_date"`
	Amount          *string        `json:"amount"`
	Dispatched      map[string]int `json:"dispatched"`
}

// OrderResponse is a ledger row presented to the API.
type OrderResponse struct {
	OrderID       string         `json:"order_id"`
	Counterparty  string         `json:"counterparty"`
	OrderDate     string         `json:"order_date"`
	LifecycleDate string         `json:"lifecycle_date"`
	Amount        string         `json:"amount"`
	DocumentKey   string         `json:"document_key,omitempty"`
	Quantities    map[string]int `json:"quantities"`
	Dispatched    map[string]int `json:"dispatched,omitempty"`
}
