package rules

import (
	"log"
	"sort"
	"strings"
	"time"

	"rentdesk/internal/core/domain"

	"github.com/shopspring/decimal"
)

// UnassignedProperty labels revenue whose room/building cannot be resolved
const UnassignedProperty = "Unassigned"

// TrendMonths is the length of the trailing monthly trend
const TrendMonths = 6

// FinanceInput is the snapshot the aggregator works on
type FinanceInput struct {
	Payments  []domain.Payment
	Expenses  []domain.Receipt
	Rooms     []domain.Room
	Buildings []domain.Building
}

// CategoryBreakdown is the expense total of one category
type CategoryBreakdown struct {
	Category   string          `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	Count      int             `json:"count"`
	Percentage float64         `json:"percentage"`
}

// PropertyBreakdown is the revenue of one building
type PropertyBreakdown struct {
	BuildingID   uint            `json:"building_id"`
	BuildingName string          `json:"building_name"`
	Revenue      decimal.Decimal `json:"revenue"`
	PaymentCount int             `json:"payment_count"`
}

// FinancialSummary is the financial dashboard for one period
type FinancialSummary struct {
	Period        Period              `json:"period"`
	Range         DateRange           `json:"range"`
	TotalRevenue  decimal.Decimal     `json:"total_revenue"`
	TotalExpenses decimal.Decimal     `json:"total_expenses"`
	NetProfit     decimal.Decimal     `json:"net_profit"`
	ProfitMargin  float64             `json:"profit_margin"`
	PaymentCount  int                 `json:"payment_count"`
	ExpenseCount  int                 `json:"expense_count"`
	Categories    []CategoryBreakdown `json:"categories"`
	Properties    []PropertyBreakdown `json:"properties"`
}

// MonthlyPoint is one month of the trend chart
type MonthlyPoint struct {
	Month    string          `json:"month"`
	Label    string          `json:"label"`
	Revenue  decimal.Decimal `json:"revenue"`
	Expenses decimal.Decimal `json:"expenses"`
	Profit   decimal.Decimal `json:"profit"`
}

// Summarize aggregates payments and expenses falling in period
func Summarize(in FinanceInput, period Period, now time.Time) FinancialSummary {
	return SummarizeRange(in, period.Resolve(now), period)
}

// SummarizeRange aggregates payments and expenses falling in r
func SummarizeRange(in FinanceInput, r DateRange, period Period) FinancialSummary {
	payments := filterPayments(in.Payments, r)
	expenses := filterExpenses(in.Expenses, r)

	revenue := sumPayments(payments)
	spent := sumExpenses(expenses)
	net := revenue.Sub(spent)

	return FinancialSummary{
		Period:        period,
		Range:         r,
		TotalRevenue:  revenue,
		TotalExpenses: spent,
		NetProfit:     net,
		ProfitMargin:  Percent(net, revenue),
		PaymentCount:  len(payments),
		ExpenseCount:  len(expenses),
		Categories:    categoryBreakdown(expenses, spent),
		Properties:    propertyBreakdown(payments, in.Rooms, in.Buildings),
	}
}

// MonthlyTrend returns revenue/expenses/profit for the trailing months ending
// with the month of now, oldest first.
func MonthlyTrend(in FinanceInput, now time.Time, months int) []MonthlyPoint {
	if months <= 0 {
		months = TrendMonths
	}
	y, m, _ := now.Date()
	points := make([]MonthlyPoint, 0, months)
	for i := months - 1; i >= 0; i-- {
		first := time.Date(y, m-time.Month(i), 1, 0, 0, 0, 0, now.Location())
		r := MonthRange(first)
		revenue := sumPayments(filterPayments(in.Payments, r))
		spent := sumExpenses(filterExpenses(in.Expenses, r))
		points = append(points, MonthlyPoint{
			Month:    first.Format("2006-01"),
			Label:    first.Format("Jan 2006"),
			Revenue:  revenue,
			Expenses: spent,
			Profit:   revenue.Sub(spent),
		})
	}
	return points
}

func filterPayments(payments []domain.Payment, r DateRange) []domain.Payment {
	out := make([]domain.Payment, 0, len(payments))
	for _, p := range payments {
		if p.PaymentDate.IsZero() {
			log.Printf("⚠️ Payment %d has no payment date, skipped", p.ID)
			continue
		}
		if p.Amount.IsNegative() {
			log.Printf("⚠️ Payment %d has negative amount %s, skipped", p.ID, p.Amount)
			continue
		}
		if r.Contains(p.PaymentDate) {
			out = append(out, p)
		}
	}
	return out
}

func filterExpenses(expenses []domain.Receipt, r DateRange) []domain.Receipt {
	out := make([]domain.Receipt, 0, len(expenses))
	for _, e := range expenses {
		if e.ReceiptDate.IsZero() {
			log.Printf("⚠️ Receipt %d has no receipt date, skipped", e.ID)
			continue
		}
		if e.Amount.IsNegative() {
			log.Printf("⚠️ Receipt %d has negative amount %s, skipped", e.ID, e.Amount)
			continue
		}
		if r.Contains(e.ReceiptDate) {
			out = append(out, e)
		}
	}
	return out
}

func sumPayments(payments []domain.Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return total
}

func sumExpenses(expenses []domain.Receipt) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// ExpenseCategory returns the grouping key for a receipt
func ExpenseCategory(e domain.Receipt) string {
	if c := strings.TrimSpace(e.Category); c != "" {
		return c
	}
	return domain.DefaultExpenseCategory
}

func categoryBreakdown(expenses []domain.Receipt, total decimal.Decimal) []CategoryBreakdown {
	index := map[string]int{}
	out := make([]CategoryBreakdown, 0)
	for _, e := range expenses {
		cat := ExpenseCategory(e)
		i, ok := index[cat]
		if !ok {
			i = len(out)
			index[cat] = i
			out = append(out, CategoryBreakdown{Category: cat, Amount: decimal.Zero})
		}
		out[i].Amount = out[i].Amount.Add(e.Amount)
		out[i].Count++
	}
	for i := range out {
		out[i].Percentage = Percent(out[i].Amount, total)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if c := out[i].Amount.Cmp(out[j].Amount); c != 0 {
			return c > 0
		}
		return out[i].Category < out[j].Category
	})
	return out
}

func propertyBreakdown(payments []domain.Payment, rooms []domain.Room, buildings []domain.Building) []PropertyBreakdown {
	roomBuilding := make(map[uint]uint, len(rooms))
	for _, r := range rooms {
		roomBuilding[r.ID] = r.BuildingID
	}
	names := make(map[uint]string, len(buildings))
	for _, b := range buildings {
		names[b.ID] = b.Name
	}

	index := map[uint]int{}
	out := make([]PropertyBreakdown, 0)
	for _, p := range payments {
		var buildingID uint
		if p.RoomID != nil {
			buildingID = roomBuilding[*p.RoomID]
		}
		name, known := names[buildingID]
		if !known {
			buildingID = 0
			name = UnassignedProperty
		}
		i, ok := index[buildingID]
		if !ok {
			i = len(out)
			index[buildingID] = i
			out = append(out, PropertyBreakdown{BuildingID: buildingID, BuildingName: name, Revenue: decimal.Zero})
		}
		out[i].Revenue = out[i].Revenue.Add(p.Amount)
		out[i].PaymentCount++
	}
	sort.SliceStable(out, func(i, j int) bool {
		if c := out[i].Revenue.Cmp(out[j].Revenue); c != 0 {
			return c > 0
		}
		return out[i].BuildingName < out[j].BuildingName
	})
	return out
}
