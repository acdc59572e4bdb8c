// Package log defines the shared structured-logging vocabulary so field
// names stay consistent between the client and the reference server.
package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldDuration  = "duration_ms"
	FieldError     = "error"
	FieldID        = "id"
	FieldType      = "type"
	FieldAmount    = "amount"
	FieldAction    = "action"
	FieldToken     = "token"
)

// Components defines standard component names
const (
	ComponentStore   = "store"
	ComponentGateway = "gateway"
	ComponentServer  = "server"
	ComponentStorage = "storage"
	ComponentAMQP    = "amqp"
)
