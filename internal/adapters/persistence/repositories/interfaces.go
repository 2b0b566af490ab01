package repositories

import (
	"context"
	"time"

	"rentdesk/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// BuildingRepository defines building repository interface
type BuildingRepository interface {
	Create(ctx context.Context, building *models.Building) error
	GetByID(ctx context.Context, id uint) (*models.Building, error)
	List(ctx context.Context) ([]*models.Building, error)
	Update(ctx context.Context, building *models.Building) error
	Delete(ctx context.Context, id uint) error
	CountRooms(ctx context.Context, id uint) (int64, error)
}

// RoomFilter narrows room listings
type RoomFilter struct {
	BuildingID *uint
	Status     string
}

// RoomRepository defines room repository interface
type RoomRepository interface {
	Create(ctx context.Context, room *models.Room) error
	GetByID(ctx context.Context, id uint) (*models.Room, error)
	List(ctx context.Context, filter RoomFilter) ([]*models.Room, error)
	Update(ctx context.Context, room *models.Room) error
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
	ExistsByNumber(ctx context.Context, buildingID uint, number string, excludeID uint) (bool, error)
}

// GuestFilter narrows guest listings
type GuestFilter struct {
	Active   *bool
	MovedOut *bool
	RoomID   *uint
	Query    string
}

// GuestRepository defines guest repository interface
type GuestRepository interface {
	Create(ctx context.Context, guest *models.Guest) error
	GetByID(ctx context.Context, id uint) (*models.Guest, error)
	List(ctx context.Context, filter GuestFilter, offset, limit int) ([]*models.Guest, int64, error)
	ListTracked(ctx context.Context) ([]*models.Guest, error)
	Update(ctx context.Context, guest *models.Guest) error
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
	CountActiveByRoom(ctx context.Context, roomID uint, excludeID uint) (int64, error)
}

// PaymentFilter narrows payment listings
type PaymentFilter struct {
	GuestID *uint
	RoomID  *uint
	From    *time.Time
	To      *time.Time
}

// PaymentRepository defines payment repository interface
type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	GetByID(ctx context.Context, id uint) (*models.Payment, error)
	GetByReference(ctx context.Context, reference string) (*models.Payment, error)
	List(ctx context.Context, filter PaymentFilter, offset, limit int) ([]*models.Payment, int64, error)
	ListAll(ctx context.Context) ([]*models.Payment, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	Delete(ctx context.Context, id uint) error
}

// ReceiptRepository defines receipt repository interface
type ReceiptRepository interface {
	Create(ctx context.Context, receipt *models.Receipt) error
	GetByID(ctx context.Context, id uint) (*models.Receipt, error)
	List(ctx context.Context, category string, offset, limit int) ([]*models.Receipt, int64, error)
	ListAll(ctx context.Context) ([]*models.Receipt, error)
	Update(ctx context.Context, receipt *models.Receipt) error
	Delete(ctx context.Context, id uint) error
}

// MaintenanceFilter narrows maintenance listings
type MaintenanceFilter struct {
	RoomID   *uint
	Status   string
	Priority string
}

// MaintenanceRepository defines maintenance request repository interface
type MaintenanceRepository interface {
	Create(ctx context.Context, req *models.MaintenanceRequest) error
	GetByID(ctx context.Context, id uint) (*models.MaintenanceRequest, error)
	List(ctx context.Context, filter MaintenanceFilter, offset, limit int) ([]*models.MaintenanceRequest, int64, error)
	Update(ctx context.Context, req *models.MaintenanceRequest) error
	Delete(ctx context.Context, id uint) error
}

// InquiryRepository defines inquiry repository interface
type InquiryRepository interface {
	Create(ctx context.Context, inquiry *models.Inquiry) error
	GetByID(ctx context.Context, id uint) (*models.Inquiry, error)
	List(ctx context.Context, status string, offset, limit int) ([]*models.Inquiry, int64, error)
	Update(ctx context.Context, inquiry *models.Inquiry) error
	Delete(ctx context.Context, id uint) error
}

// ActivityRepository defines the audit trail repository interface
type ActivityRepository interface {
	Create(ctx context.Context, activity *models.Activity) error
	ListByEntity(ctx context.Context, entity string, entityID uint, limit int) ([]*models.Activity, error)
}
