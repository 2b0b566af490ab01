package services

import (
	"context"
	"fmt"
	"time"

	"rentdesk/internal/adapters/persistence/models"
	"rentdesk/internal/adapters/persistence/repositories"
	"rentdesk/internal/core/domain"
	"rentdesk/internal/core/rules"

	"github.com/shopspring/decimal"
)

// DashboardService builds the read-only reports on top of the rules package
type DashboardService struct {
	buildingRepo    repositories.BuildingRepository
	roomRepo        repositories.RoomRepository
	paymentRepo     repositories.PaymentRepository
	receiptRepo     repositories.ReceiptRepository
	maintenanceRepo repositories.MaintenanceRepository
	inquiryRepo     repositories.InquiryRepository
	guests          *GuestService
	cache           *ReportCache
	clock           Clock
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	buildingRepo repositories.BuildingRepository,
	roomRepo repositories.RoomRepository,
	paymentRepo repositories.PaymentRepository,
	receiptRepo repositories.ReceiptRepository,
	maintenanceRepo repositories.MaintenanceRepository,
	inquiryRepo repositories.InquiryRepository,
	guests *GuestService,
	cache *ReportCache,
	clock Clock,
) *DashboardService {
	return &DashboardService{
		buildingRepo:    buildingRepo,
		roomRepo:        roomRepo,
		paymentRepo:     paymentRepo,
		receiptRepo:     receiptRepo,
		maintenanceRepo: maintenanceRepo,
		inquiryRepo:     inquiryRepo,
		guests:          guests,
		cache:           cache,
		clock:           clock,
	}
}

// ============================================================
// Response types
// ============================================================

// OverviewData is the landing dashboard
type OverviewData struct {
	Occupancy        rules.OccupancyStats   `json:"occupancy"`
	DueToday         int                    `json:"due_today"`
	DueThisWeek      int                    `json:"due_this_week"`
	Overdue          int                    `json:"overdue"`
	OpenMaintenance  int64                  `json:"open_maintenance"`
	NewInquiries     int64                  `json:"new_inquiries"`
	Financial        rules.FinancialSummary `json:"financial"`
	UpcomingPayments []domain.Guest         `json:"upcoming_payments"`
	GeneratedAt      time.Time              `json:"generated_at"`
}

// OccupancyData is the occupancy report
type OccupancyData struct {
	Overall    rules.OccupancyStats      `json:"overall"`
	ByBuilding []rules.BuildingOccupancy `json:"by_building"`
}

// PaymentsDueData is a due-payment listing over a window
type PaymentsDueData struct {
	Window   string          `json:"window"`
	Range    rules.DateRange `json:"range"`
	Guests   []domain.Guest  `json:"guests"`
	Count    int             `json:"count"`
	TotalDue decimal.Decimal `json:"total_due"`
}

// Payment-due windows
const (
	WindowToday  = "today"
	WindowWeek   = "week"
	WindowCustom = "custom"
)

// maxCustomWindowDays bounds custom payment-due windows
const maxCustomWindowDays = 366

// ============================================================
// Reports
// ============================================================

// Overview returns the landing dashboard
func (s *DashboardService) Overview(ctx context.Context, auth domain.AuthContext) (*OverviewData, error) {
	if err := requireAuth(auth); err != nil {
		return nil, err
	}
	today := s.clock.Today()
	key := "overview:" + today.Format(DateLayout)

	return cached(s.cache, key, func() (*OverviewData, error) {
		rooms, err := s.rooms(ctx)
		if err != nil {
			return nil, err
		}
		tracked, err := s.guests.Tracked(ctx)
		if err != nil {
			return nil, err
		}
		fin, err := s.financeInput(ctx)
		if err != nil {
			return nil, err
		}
		openMx, err := s.openMaintenance(ctx)
		if err != nil {
			return nil, err
		}
		_, newInq, err := s.inquiryRepo.List(ctx, string(domain.InquiryNew), 0, 1)
		if err != nil {
			return nil, err
		}

		week := rules.SelectPaymentsDue(tracked, rules.ThisWeek(today))
		upcoming := week
		if len(upcoming) > 5 {
			upcoming = upcoming[:5]
		}

		return &OverviewData{
			Occupancy:        rules.CalculateOccupancy(rooms, nil),
			DueToday:         len(rules.SelectPaymentsDue(tracked, rules.Today(today))),
			DueThisWeek:      len(week),
			Overdue:          len(rules.SelectOverdue(tracked, today)),
			OpenMaintenance:  openMx,
			NewInquiries:     newInq,
			Financial:        rules.Summarize(fin, rules.PeriodCurrentMonth, today),
			UpcomingPayments: upcoming,
			GeneratedAt:      s.clock.Today(),
		}, nil
	})
}

// Occupancy returns occupancy stats, optionally for one building, plus the
// per-building breakdown
func (s *DashboardService) Occupancy(ctx context.Context, auth domain.AuthContext, buildingID *uint) (*OccupancyData, error) {
	if err := requireAuth(auth); err != nil {
		return nil, err
	}
	key := "occupancy:all"
	if buildingID != nil {
		key = fmt.Sprintf("occupancy:%d", *buildingID)
	}

	return cached(s.cache, key, func() (*OccupancyData, error) {
		rooms, err := s.rooms(ctx)
		if err != nil {
			return nil, err
		}
		buildings, err := s.buildingRepo.List(ctx)
		if err != nil {
			return nil, err
		}
		return &OccupancyData{
			Overall:    rules.CalculateOccupancy(rooms, buildingID),
			ByBuilding: rules.OccupancyByBuilding(models.BuildingsToDomain(buildings), rooms),
		}, nil
	})
}

// ResolveWindow turns a window selector into a date range
func (s *DashboardService) ResolveWindow(window, start, end string) (rules.DateRange, error) {
	today := s.clock.Today()
	switch window {
	case "", WindowWeek:
		return rules.ThisWeek(today), nil
	case WindowToday:
		return rules.Today(today), nil
	case WindowCustom:
		from, err := parseDate("start", start)
		if err != nil {
			return rules.DateRange{}, err
		}
		to, err := parseDate("end", end)
		if err != nil {
			return rules.DateRange{}, err
		}
		r := rules.DateRange{Start: from, End: to}
		if to.Before(from) {
			return rules.DateRange{}, domain.NewValidationError(domain.CodeInvalidValue, "end", "must not be before start")
		}
		if r.Days() > maxCustomWindowDays {
			return rules.DateRange{}, domain.NewValidationError(domain.CodeInvalidValue, "end", fmt.Sprintf("window must not exceed %d days", maxCustomWindowDays))
		}
		return r, nil
	}
	return rules.DateRange{}, domain.NewValidationError(domain.CodeInvalidValue, "window", "must be today, week or custom")
}

// PaymentsDue lists guests due within window (today|week|custom)
func (s *DashboardService) PaymentsDue(ctx context.Context, auth domain.AuthContext, window, start, end string) (*PaymentsDueData, error) {
	if err := requireAuth(auth); err != nil {
		return nil, err
	}
	r, err := s.ResolveWindow(window, start, end)
	if err != nil {
		return nil, err
	}
	if window == "" {
		window = WindowWeek
	}

	key := fmt.Sprintf("due:%s:%s:%s", s.clock.Today().Format(DateLayout), r.Start.Format(DateLayout), r.End.Format(DateLayout))
	return cached(s.cache, key, func() (*PaymentsDueData, error) {
		guests, err := s.guests.PaymentsDue(ctx, auth, r)
		if err != nil {
			return nil, err
		}
		return &PaymentsDueData{
			Window:   window,
			Range:    r,
			Guests:   guests,
			Count:    len(guests),
			TotalDue: totalDue(guests),
		}, nil
	})
}

// Overdue lists overdue guests
func (s *DashboardService) Overdue(ctx context.Context, auth domain.AuthContext) ([]domain.Guest, error) {
	if err := requireAuth(auth); err != nil {
		return nil, err
	}
	key := "overdue:" + s.clock.Today().Format(DateLayout)
	return cached(s.cache, key, func() ([]domain.Guest, error) {
		return s.guests.Overdue(ctx, auth)
	})
}

// Financial returns the financial summary for period
func (s *DashboardService) Financial(ctx context.Context, auth domain.AuthContext, period string) (*rules.FinancialSummary, error) {
	if err := requireAuth(auth); err != nil {
		return nil, err
	}
	p, err := rules.ParsePeriod(period)
	if err != nil {
		return nil, domain.NewValidationError(domain.CodeInvalidValue, "period", "must be current-month, last-month, current-year or last-year")
	}

	today := s.clock.Today()
	key := fmt.Sprintf("financial:%s:%s", p, today.Format(DateLayout))
	return cached(s.cache, key, func() (*rules.FinancialSummary, error) {
		in, err := s.financeInput(ctx)
		if err != nil {
			return nil, err
		}
		summary := rules.Summarize(in, p, today)
		return &summary, nil
	})
}

// Trend returns the trailing monthly revenue/expense trend
func (s *DashboardService) Trend(ctx context.Context, auth domain.AuthContext) ([]rules.MonthlyPoint, error) {
	if err := requireAuth(auth); err != nil {
		return nil, err
	}
	today := s.clock.Today()
	key := "trend:" + today.Format("2006-01")
	return cached(s.cache, key, func() ([]rules.MonthlyPoint, error) {
		in, err := s.financeInput(ctx)
		if err != nil {
			return nil, err
		}
		return rules.MonthlyTrend(in, today, rules.TrendMonths), nil
	})
}

// ============================================================
// Helpers
// ============================================================

func (s *DashboardService) rooms(ctx context.Context) ([]domain.Room, error) {
	rows, err := s.roomRepo.List(ctx, repositories.RoomFilter{})
	if err != nil {
		return nil, err
	}
	return models.RoomsToDomain(rows), nil
}

// financeInput loads the snapshot the aggregator needs. Refunded payments
// are not revenue.
func (s *DashboardService) financeInput(ctx context.Context) (rules.FinanceInput, error) {
	var in rules.FinanceInput

	payments, err := s.paymentRepo.ListAll(ctx)
	if err != nil {
		return in, err
	}
	for _, p := range payments {
		if p.Status == models.PaymentRefunded {
			continue
		}
		in.Payments = append(in.Payments, p.ToDomain())
	}

	receipts, err := s.receiptRepo.ListAll(ctx)
	if err != nil {
		return in, err
	}
	in.Expenses = models.ReceiptsToDomain(receipts)

	if in.Rooms, err = s.rooms(ctx); err != nil {
		return in, err
	}
	buildings, err := s.buildingRepo.List(ctx)
	if err != nil {
		return in, err
	}
	in.Buildings = models.BuildingsToDomain(buildings)
	return in, nil
}

// openMaintenance counts tickets not yet completed
func (s *DashboardService) openMaintenance(ctx context.Context) (int64, error) {
	var open int64
	for _, st := range []domain.MaintenanceStatus{domain.MaintenanceSubmitted, domain.MaintenanceInProgress} {
		_, n, err := s.maintenanceRepo.List(ctx, repositories.MaintenanceFilter{Status: string(st)}, 0, 1)
		if err != nil {
			return 0, err
		}
		open += n
	}
	return open, nil
}

func totalDue(guests []domain.Guest) decimal.Decimal {
	total := decimal.Zero
	for _, g := range guests {
		total = total.Add(g.PaymentAmount)
	}
	return total
}
