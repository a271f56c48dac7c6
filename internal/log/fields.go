package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldTableKey   = "key"
	FieldBackend    = "backend"
	FieldPosition   = "position"
	FieldItem       = "item"
	FieldCategory   = "category"
	FieldYear       = "year"
	FieldMonth      = "month"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentHTTP      = "http"
	ComponentLedger    = "ledger"
	ComponentStock     = "stock"
	ComponentInventory = "inventory"
	ComponentStore     = "store"
	ComponentEvents    = "events"
	ComponentWorker    = "worker"
	ComponentBackend   = "backend"
)
