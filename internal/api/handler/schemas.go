package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Email      string `json:"email"       validate:"required,email"`
	Password   string `json:"password"    validate:"required,min=8"`
	Firstname  string `json:"firstname"   validate:"required"`
	Middlename string `json:"middlename"`
	Lastname   string `json:"lastname"    validate:"required"`
	ContactNum string `json:"contact_num"`
}

// --- Users ---

type userRequest struct {
	Email      string `json:"email"       validate:"required,email"`
	Password   string `json:"password"    validate:"omitempty,min=8"`
	Firstname  string `json:"firstname"   validate:"required"`
	Middlename string `json:"middlename"`
	Lastname   string `json:"lastname"    validate:"required"`
	ContactNum string `json:"contact_num"`
	Type       string `json:"type"`
	Status     string `json:"status"      validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

// --- Cars ---

type carRequest struct {
	VIN          string `json:"vin"               validate:"required"`
	Year         int    `json:"year"              validate:"required,gt=1900"`
	Make         string `json:"make"              validate:"required"`
	Model        string `json:"model"             validate:"required"`
	Color        string `json:"color"             validate:"required"`
	Mileage      int    `json:"mileage"           validate:"gte=0"`
	Price        int64  `json:"price"             validate:"required,gt=0"`
	Transmission string `json:"transmission_type" validate:"required,oneof=MANUAL AUTOMATIC"`
	Fuel         string `json:"fuel_type"         validate:"required,oneof=PETROL DIESEL ELECTRIC HYBRID"`
	Status       string `json:"status"            validate:"omitempty,oneof=AVAILABLE SOLD RESERVED"`
}

// --- Sales ---

type saleRequest struct {
	CarID      int64  `json:"car_id"      validate:"required,gt=0"`
	CustomerID int64  `json:"customer_id" validate:"required,gt=0"`
	AgentID    int64  `json:"agent_id"    validate:"required,gt=0"`
	Comments   string `json:"comments"`
}
