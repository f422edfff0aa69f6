package models

import "time"

type Staff struct {
	ID            string    `json:"id"`
	TenantID      string    `json:"tenant_id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	Permissions   []string  `json:"permissions"`
	CallsMade     int       `json:"calls_made"`
	CallsReceived int       `json:"calls_received"`
	CreatedAt     time.Time `json:"created_at"`
}

type StoredFile struct {
	ID           string    `json:"id"`
	TenantID     string    `json:"tenant_id"`
	Name         string    `json:"name"`
	StoredName   string    `json:"stored_name"`
	Size         int64     `json:"size"`
	UploadedBy   string    `json:"uploaded_by"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

type CarrierInfo struct {
	CompanyName string `json:"company_name"`
	MCNumber    string `json:"mc_number"`
	DOTNumber   string `json:"dot_number"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Address     string `json:"address"`
}

type OwnerInfo struct {
	Name      string `json:"name"`
	CDLNumber string `json:"cdl_number"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

type EquipmentInfo struct {
	TruckType   string `json:"truck_type"`
	TrailerType string `json:"trailer_type"`
	Year        int    `json:"year"`
	VIN         string `json:"vin"`
}

type PaymentInfo struct {
	Method       string `json:"method"`
	BillingTerms string `json:"billing_terms"`
	FactoringCo  string `json:"factoring_company"`
}

type RoutingInfo struct {
	PreferredLanes []string `json:"preferred_lanes"`
	HomeBase       string   `json:"home_base"`
	MaxMiles       int      `json:"max_miles"`
}

type ComplianceInfo struct {
	W9OnFile        bool     `json:"w9_on_file"`
	InsuranceOnFile bool     `json:"insurance_on_file"`
	AuthorityOnFile bool     `json:"authority_on_file"`
	DocumentURLs    []string `json:"document_urls"`
}

type LoaderInfo struct {
	AgentName    string  `json:"agent_name"`
	Percentage   float64 `json:"percentage"`
	TotalPayment float64 `json:"total_payment"`
	PaymentLink  string  `json:"payment_link"`
	Documents    string  `json:"documents"`
	Reviews      string  `json:"reviews"`
}

type LoadDetails struct {
	From         string    `json:"from"`
	To           string    `json:"to"`
	Miles        float64   `json:"miles"`
	Amount       float64   `json:"amount"`
	PickupDate   time.Time `json:"pickup_date"`
	DeliveryType string    `json:"delivery_type"`
}

// Driver status values. The UI also surfaces a derived "Approved" tier on
// top of Active; the engine treats the approved tier as status "Approved".
const (
	StatusPending  = "Pending"
	StatusActive   = "Active"
	StatusNA       = "N/A"
	StatusRejected = "Rejected"
	StatusApproved = "Approved"
)

type Driver struct {
	ID               string         `json:"id"`
	TenantID         string         `json:"tenant_id"`
	Carrier          CarrierInfo    `json:"carrier"`
	Owner            OwnerInfo      `json:"owner"`
	Equipment        EquipmentInfo  `json:"equipment"`
	Payment          PaymentInfo    `json:"payment"`
	Routing          RoutingInfo    `json:"routing"`
	Compliance       ComplianceInfo `json:"compliance"`
	Loader           LoaderInfo     `json:"loader"`
	Load             LoadDetails    `json:"load_details"`
	Status           string         `json:"status"`
	HasLoader        bool           `json:"has_loader"`
	CreatedBy        string         `json:"created_by"`
	ApprovedBy       string         `json:"approved_by,omitempty"`
	ApprovedAt       *time.Time     `json:"approved_at,omitempty"`
	RegistrationDate time.Time      `json:"registration_date"`
	LastUpdated      time.Time      `json:"last_updated"`
}

type Meeting struct {
	ID           string    `json:"id"`
	TenantID     string    `json:"tenant_id"`
	Title        string    `json:"title"`
	With         string    `json:"with"`
	Email        string    `json:"email"`
	ScheduledAt  time.Time `json:"scheduled_at"`
	Notes        string    `json:"notes"`
	ReminderSent bool      `json:"reminder_sent"`
	CreatedBy    string    `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
}

type DriverStats struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Active   int `json:"active"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
	// ActiveLoaders counts approved drivers whose computed agent commission
	// clears the activity threshold.
	ActiveLoaders int `json:"active_loaders"`
}
