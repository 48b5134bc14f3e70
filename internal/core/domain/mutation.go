package domain

// Operation is the verb of a change request.
type Operation string

const (
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// Verb is the past-tense form used in audit messages.
func (o Operation) Verb() string {
	switch o {
	case OpCreate:
		return "created"
	case OpUpdate:
		return "updated"
	case OpDelete:
		return "deleted"
	}
	return string(o)
}

// EntityKind names a mutable domain entity.
type EntityKind string

const (
	EntityUser EntityKind = "User"
	EntityCar  EntityKind = "Car"
	EntitySale EntityKind = "Sale"
)

// UserFields carries the writable attributes of a user. Password is the
// plain credential; the coordinator hashes it before it reaches the store.
type UserFields struct {
	Email      string
	Password   string
	Firstname  string
	Middlename string
	Lastname   string
	ContactNum string
	Type       string
	Status     string
}

// CarFields carries the writable attributes of a car.
type CarFields struct {
	VIN          string
	Year         int
	Make         string
	Model        string
	Color        string
	Mileage      int
	Price        int64
	Transmission string
	Fuel         string
	Status       string
}

// SaleFields carries the writable attributes of a sales transaction.
type SaleFields struct {
	CarID      int64
	CustomerID int64
	AgentID    int64
	Comments   string
}

// Change is a tagged mutation request: exactly one of User, Car, Sale is set,
// matching Entity. ID is required for update and delete.
type Change struct {
	Op     Operation
	Entity EntityKind
	ID     int64

	User *UserFields
	Car  *CarFields
	Sale *SaleFields
}

// MutationResult is the acknowledgment returned on a committed mutation.
type MutationResult struct {
	Op     Operation  `json:"operation"`
	Entity EntityKind `json:"entity"`
	// Key is the affected entity's natural key (email, VIN line, sale ref).
	Key    string `json:"key"`
	Detail string `json:"detail"`
}
