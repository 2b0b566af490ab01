package models

import (
	"time"

	"rentdesk/internal/core/domain"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ============================================================
// Auth & Staff Tables
// ============================================================

// User represents staff accounts (users table)
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email     string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	FullName  string         `gorm:"size:100" json:"full_name"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Role      string         `gorm:"size:20;default:'STAFF'" json:"role"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name,omitempty"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Property Tables
// ============================================================

// Building is a managed property
type Building struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	Name        string           `gorm:"size:100;not null" json:"name"`
	Address     string           `gorm:"type:text" json:"address"`
	DailyRate   *decimal.Decimal `gorm:"type:decimal(12,2)" json:"daily_rate"`
	WeeklyRate  *decimal.Decimal `gorm:"type:decimal(12,2)" json:"weekly_rate"`
	MonthlyRate *decimal.Decimal `gorm:"type:decimal(12,2)" json:"monthly_rate"`
	CreatedAt   time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt   `gorm:"index" json:"-"`

	Rooms []Room `gorm:"foreignKey:BuildingID" json:"rooms,omitempty"`
}

func (Building) TableName() string {
	return "buildings"
}

func (b *Building) ToDomain() domain.Building {
	return domain.Building{
		ID:          b.ID,
		Name:        b.Name,
		Address:     b.Address,
		DailyRate:   b.DailyRate,
		WeeklyRate:  b.WeeklyRate,
		MonthlyRate: b.MonthlyRate,
	}
}

// Room is a rentable unit
type Room struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Number       string          `gorm:"size:20;not null;uniqueIndex:idx_room_building_number,priority:2" json:"number"`
	BuildingID   uint            `gorm:"not null;index;uniqueIndex:idx_room_building_number,priority:1" json:"building_id"`
	Status       string          `gorm:"size:20;not null;default:'available';index" json:"status"`
	TenantName   string          `gorm:"size:100" json:"tenant_name"`
	TenantPhone  string          `gorm:"size:30" json:"tenant_phone"`
	TenantEmail  string          `gorm:"size:100" json:"tenant_email"`
	RentalRate   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"rental_rate"`
	RentalPeriod string          `gorm:"size:10" json:"rental_period"`
	Floor        int             `json:"floor"`
	AccessPIN    string          `gorm:"size:12" json:"access_pin"`
	StatusNote   string          `gorm:"type:text" json:"status_note"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`

	Building *Building `gorm:"foreignKey:BuildingID" json:"building,omitempty"`
}

func (Room) TableName() string {
	return "rooms"
}

func (r *Room) ToDomain() domain.Room {
	return domain.Room{
		ID:           r.ID,
		Number:       r.Number,
		BuildingID:   r.BuildingID,
		Status:       domain.RoomStatus(r.Status),
		TenantName:   r.TenantName,
		TenantPhone:  r.TenantPhone,
		TenantEmail:  r.TenantEmail,
		RentalRate:   r.RentalRate,
		RentalPeriod: domain.BookingType(r.RentalPeriod),
		Floor:        r.Floor,
		AccessPIN:    r.AccessPIN,
		StatusNote:   r.StatusNote,
	}
}

// ApplyDomain copies the mutable status/tenant fields back from d
func (r *Room) ApplyDomain(d domain.Room) {
	r.Status = string(d.Status)
	r.TenantName = d.TenantName
	r.TenantPhone = d.TenantPhone
	r.TenantEmail = d.TenantEmail
	r.StatusNote = d.StatusNote
}

// Guest is a tenant/booking profile
type Guest struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	RoomID         *uint           `gorm:"index" json:"room_id"`
	Name           string          `gorm:"size:100;not null" json:"name"`
	Email          string          `gorm:"size:100" json:"email"`
	Phone          string          `gorm:"size:30" json:"phone"`
	BookingType    string          `gorm:"size:10;not null;default:'monthly'" json:"booking_type"`
	CheckInDate    time.Time       `gorm:"type:date;not null" json:"check_in_date"`
	CheckOutDate   *time.Time      `gorm:"type:date" json:"check_out_date"`
	PaymentAmount  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"payment_amount"`
	NextPaymentDue *time.Time      `gorm:"type:date;index" json:"next_payment_due"`
	PaymentStatus  string          `gorm:"size:10;not null;default:'pending'" json:"payment_status"`
	IsActive       bool            `gorm:"default:true;index" json:"is_active"`
	HasMovedOut    bool            `gorm:"default:false;index" json:"has_moved_out"`
	MoveOutDate    *time.Time      `gorm:"type:date" json:"move_out_date"`
	Notes          string          `gorm:"type:text" json:"notes"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`

	Room *Room `gorm:"foreignKey:RoomID" json:"room,omitempty"`
}

func (Guest) TableName() string {
	return "guests"
}

func (g *Guest) ToDomain() domain.Guest {
	return domain.Guest{
		ID:             g.ID,
		RoomID:         g.RoomID,
		Name:           g.Name,
		Email:          g.Email,
		Phone:          g.Phone,
		BookingType:    domain.BookingType(g.BookingType),
		CheckInDate:    g.CheckInDate,
		CheckOutDate:   g.CheckOutDate,
		PaymentAmount:  g.PaymentAmount,
		NextPaymentDue: g.NextPaymentDue,
		PaymentStatus:  domain.PaymentStatus(g.PaymentStatus),
		IsActive:       g.IsActive,
		HasMovedOut:    g.HasMovedOut,
		MoveOutDate:    g.MoveOutDate,
	}
}

// Payment is revenue received
type Payment struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	GuestID     *uint           `gorm:"index" json:"guest_id"`
	RoomID      *uint           `gorm:"index" json:"room_id"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	PaymentDate time.Time       `gorm:"type:date;not null;index" json:"payment_date"`
	Method      string          `gorm:"size:20;not null" json:"method"`
	Status      string          `gorm:"size:20;not null;default:'completed'" json:"status"`
	Reference   string          `gorm:"size:64;uniqueIndex;not null" json:"reference"`
	CoversDue   *time.Time      `gorm:"type:date" json:"covers_due"`
	Notes       string          `gorm:"type:text" json:"notes"`
	RecordedBy  uint            `json:"recorded_by"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`

	Guest *Guest `gorm:"foreignKey:GuestID" json:"guest,omitempty"`
}

func (Payment) TableName() string {
	return "payments"
}

// Payment statuses
const (
	PaymentCompleted = "completed"
	PaymentRefunded  = "refunded"
)

func (p *Payment) ToDomain() domain.Payment {
	return domain.Payment{
		ID:          p.ID,
		GuestID:     p.GuestID,
		RoomID:      p.RoomID,
		Amount:      p.Amount,
		PaymentDate: p.PaymentDate,
		Method:      p.Method,
		Status:      p.Status,
		Reference:   p.Reference,
	}
}

// Receipt is an expense
type Receipt struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Vendor      string          `gorm:"size:100" json:"vendor"`
	Category    string          `gorm:"size:50;index" json:"category"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	ReceiptDate time.Time       `gorm:"type:date;not null;index" json:"receipt_date"`
	BuildingID  *uint           `gorm:"index" json:"building_id"`
	Description string          `gorm:"type:text" json:"description"`
	LineItems   datatypes.JSON  `json:"line_items"`
	RecordedBy  uint            `json:"recorded_by"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Receipt) TableName() string {
	return "receipts"
}

func (r *Receipt) ToDomain() domain.Receipt {
	return domain.Receipt{
		ID:          r.ID,
		Vendor:      r.Vendor,
		Category:    r.Category,
		Amount:      r.Amount,
		ReceiptDate: r.ReceiptDate,
		BuildingID:  r.BuildingID,
	}
}

// MaintenanceRequest is a repair ticket
type MaintenanceRequest struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	RoomID      uint           `gorm:"not null;index" json:"room_id"`
	Priority    string         `gorm:"size:10;not null;default:'normal'" json:"priority"`
	Status      string         `gorm:"size:20;not null;default:'submitted';index" json:"status"`
	Description string         `gorm:"type:text;not null" json:"description"`
	ReportedBy  string         `gorm:"size:100" json:"reported_by"`
	Photos      datatypes.JSON `json:"photos"`
	CompletedAt *time.Time     `json:"completed_at"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Room *Room `gorm:"foreignKey:RoomID" json:"room,omitempty"`
}

func (MaintenanceRequest) TableName() string {
	return "maintenance_requests"
}

// Inquiry is a contact-form message from a prospective guest
type Inquiry struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	Name        string            `gorm:"size:100;not null" json:"name"`
	Email       string            `gorm:"size:100" json:"email"`
	Phone       string            `gorm:"size:30" json:"phone"`
	Message     string            `gorm:"type:text" json:"message"`
	BookingType string            `gorm:"size:10" json:"booking_type"`
	Status      string            `gorm:"size:20;not null;default:'new';index" json:"status"`
	Metadata    datatypes.JSONMap `json:"metadata"`
	CreatedAt   time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt    `gorm:"index" json:"-"`
}

func (Inquiry) TableName() string {
	return "inquiries"
}

// Activity is the audit trail of state-changing operations
type Activity struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Entity      string    `gorm:"size:30;not null;index:idx_activity_entity,priority:1" json:"entity"`
	EntityID    uint      `gorm:"not null;index:idx_activity_entity,priority:2" json:"entity_id"`
	Action      string    `gorm:"size:50;not null" json:"action"`
	FromValue   string    `gorm:"size:50" json:"from_value"`
	ToValue     string    `gorm:"size:50" json:"to_value"`
	Description string    `gorm:"type:text" json:"description"`
	PerformedBy string    `gorm:"size:50" json:"performed_by"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Activity) TableName() string {
	return "activities"
}

// Activity actions
const (
	ActionCreate          = "CREATE"
	ActionUpdate          = "UPDATE"
	ActionStatusChange    = "STATUS_CHANGE"
	ActionMoveOut         = "MOVE_OUT"
	ActionPaymentReceived = "PAYMENT_RECEIVED"
	ActionRelease         = "RELEASE"
)

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Building{},
		&Room{},
		&Guest{},
		&Payment{},
		&Receipt{},
		&MaintenanceRequest{},
		&Inquiry{},
		&Activity{},
	)
}

// BuildingsToDomain converts a slice of models
func BuildingsToDomain(in []*Building) []domain.Building {
	out := make([]domain.Building, len(in))
	for i, b := range in {
		out[i] = b.ToDomain()
	}
	return out
}

// RoomsToDomain converts a slice of models
func RoomsToDomain(in []*Room) []domain.Room {
	out := make([]domain.Room, len(in))
	for i, r := range in {
		out[i] = r.ToDomain()
	}
	return out
}

// GuestsToDomain converts a slice of models
func GuestsToDomain(in []*Guest) []domain.Guest {
	out := make([]domain.Guest, len(in))
	for i, g := range in {
		out[i] = g.ToDomain()
	}
	return out
}

// PaymentsToDomain converts a slice of models
func PaymentsToDomain(in []*Payment) []domain.Payment {
	out := make([]domain.Payment, len(in))
	for i, p := range in {
		out[i] = p.ToDomain()
	}
	return out
}

// ReceiptsToDomain converts a slice of models
func ReceiptsToDomain(in []*Receipt) []domain.Receipt {
	out := make([]domain.Receipt, len(in))
	for i, r := range in {
		out[i] = r.ToDomain()
	}
	return out
}
