package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RoomStatus represents the housekeeping/occupancy state of a room
type RoomStatus string

const (
	RoomAvailable     RoomStatus = "available"
	RoomOccupied      RoomStatus = "occupied"
	RoomNeedsCleaning RoomStatus = "needs_cleaning"
	RoomMaintenance   RoomStatus = "maintenance"
)

// roomStatusAliases maps legacy spellings onto the canonical statuses
var roomStatusAliases = map[string]RoomStatus{
	"cleaning":       RoomNeedsCleaning,
	"out_of_service": RoomMaintenance,
	"out-of-service": RoomMaintenance,
	"needs-cleaning": RoomNeedsCleaning,
}

// NormalizeRoomStatus trims, lowercases and resolves aliases.
// Unknown values are returned as-is so callers can bucket them.
func NormalizeRoomStatus(s string) RoomStatus {
	v := strings.ToLower(strings.TrimSpace(s))
	if alias, ok := roomStatusAliases[v]; ok {
		return alias
	}
	return RoomStatus(v)
}

// IsValid reports whether s is one of the canonical statuses
func (s RoomStatus) IsValid() bool {
	switch s {
	case RoomAvailable, RoomOccupied, RoomNeedsCleaning, RoomMaintenance:
		return true
	}
	return false
}

// ClearsTenant reports whether entering s wipes tenant details
func (s RoomStatus) ClearsTenant() bool {
	return s == RoomNeedsCleaning || s == RoomMaintenance
}

// BookingType is the billing cadence of a guest
type BookingType string

const (
	BookingDaily   BookingType = "daily"
	BookingWeekly  BookingType = "weekly"
	BookingMonthly BookingType = "monthly"
)

func (b BookingType) IsValid() bool {
	return b == BookingDaily || b == BookingWeekly || b == BookingMonthly
}

// PaymentStatus is the billing state of a guest
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentOverdue PaymentStatus = "overdue"
)

func (p PaymentStatus) IsValid() bool {
	return p == PaymentPending || p == PaymentPaid || p == PaymentOverdue
}

// MaintenancePriority of a maintenance request
type MaintenancePriority string

const (
	PriorityUrgent MaintenancePriority = "urgent"
	PriorityNormal MaintenancePriority = "normal"
	PriorityLow    MaintenancePriority = "low"
)

func (p MaintenancePriority) IsValid() bool {
	return p == PriorityUrgent || p == PriorityNormal || p == PriorityLow
}

// MaintenanceStatus of a maintenance request
type MaintenanceStatus string

const (
	MaintenanceSubmitted  MaintenanceStatus = "submitted"
	MaintenanceInProgress MaintenanceStatus = "in_progress"
	MaintenanceCompleted  MaintenanceStatus = "completed"
)

func (s MaintenanceStatus) IsValid() bool {
	return s == MaintenanceSubmitted || s == MaintenanceInProgress || s == MaintenanceCompleted
}

// InquiryStatus of a prospective-guest inquiry
type InquiryStatus string

const (
	InquiryNew       InquiryStatus = "new"
	InquiryContacted InquiryStatus = "contacted"
	InquiryClosed    InquiryStatus = "closed"
)

func (s InquiryStatus) IsValid() bool {
	return s == InquiryNew || s == InquiryContacted || s == InquiryClosed
}

// Payment methods
const (
	MethodCash     = "cash"
	MethodTransfer = "transfer"
	MethodCard     = "card"
	MethodOther    = "other"
)

// IsValidPaymentMethod reports whether m is a known payment method
func IsValidPaymentMethod(m string) bool {
	switch m {
	case MethodCash, MethodTransfer, MethodCard, MethodOther:
		return true
	}
	return false
}

// DefaultExpenseCategory is used for receipts without a category
const DefaultExpenseCategory = "Other"

// Building is a property that contains rooms
type Building struct {
	ID          uint             `json:"id"`
	Name        string           `json:"name"`
	Address     string           `json:"address"`
	DailyRate   *decimal.Decimal `json:"daily_rate,omitempty"`
	WeeklyRate  *decimal.Decimal `json:"weekly_rate,omitempty"`
	MonthlyRate *decimal.Decimal `json:"monthly_rate,omitempty"`
}

// Room is a rentable unit inside a building
type Room struct {
	ID           uint            `json:"id"`
	Number       string          `json:"number"`
	BuildingID   uint            `json:"building_id"`
	Status       RoomStatus      `json:"status"`
	TenantName   string          `json:"tenant_name,omitempty"`
	TenantPhone  string          `json:"tenant_phone,omitempty"`
	TenantEmail  string          `json:"tenant_email,omitempty"`
	RentalRate   decimal.Decimal `json:"rental_rate"`
	RentalPeriod BookingType     `json:"rental_period,omitempty"`
	Floor        int             `json:"floor"`
	AccessPIN    string          `json:"access_pin,omitempty"`
	StatusNote   string          `json:"status_note,omitempty"`
}

// Guest is a tenant/booking profile
type Guest struct {
	ID             uint            `json:"id"`
	RoomID         *uint           `json:"room_id,omitempty"`
	Name           string          `json:"name"`
	Email          string          `json:"email,omitempty"`
	Phone          string          `json:"phone,omitempty"`
	BookingType    BookingType     `json:"booking_type"`
	CheckInDate    time.Time       `json:"check_in_date"`
	CheckOutDate   *time.Time      `json:"check_out_date,omitempty"`
	PaymentAmount  decimal.Decimal `json:"payment_amount"`
	NextPaymentDue *time.Time      `json:"next_payment_due,omitempty"`
	PaymentStatus  PaymentStatus   `json:"payment_status"`
	IsActive       bool            `json:"is_active"`
	HasMovedOut    bool            `json:"has_moved_out"`
	MoveOutDate    *time.Time      `json:"move_out_date,omitempty"`
}

// Payment is revenue received from a guest
type Payment struct {
	ID          uint            `json:"id"`
	GuestID     *uint           `json:"guest_id,omitempty"`
	RoomID      *uint           `json:"room_id,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate time.Time       `json:"payment_date"`
	Method      string          `json:"method"`
	Status      string          `json:"status"`
	Reference   string          `json:"reference"`
}

// Receipt is an expense paid to a vendor
type Receipt struct {
	ID          uint            `json:"id"`
	Vendor      string          `json:"vendor"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	ReceiptDate time.Time       `json:"receipt_date"`
	BuildingID  *uint           `json:"building_id,omitempty"`
}

// MaintenanceRequest is a repair ticket for a room
type MaintenanceRequest struct {
	ID          uint                `json:"id"`
	RoomID      uint                `json:"room_id"`
	Priority    MaintenancePriority `json:"priority"`
	Status      MaintenanceStatus   `json:"status"`
	Description string              `json:"description"`
}
