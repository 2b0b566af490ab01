package rules

import (
	"testing"
	"time"

	"rentdesk/internal/core/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestSummarize_Scenario(t *testing.T) {
	now := time.Date(2024, 6, 20, 10, 0, 0, 0, time.UTC)
	in := FinanceInput{
		Payments: []domain.Payment{{ID: 1, Amount: dec("100"), PaymentDate: date(2024, 6, 1)}},
		Expenses: []domain.Receipt{{ID: 1, Amount: dec("40"), ReceiptDate: date(2024, 6, 2)}},
	}

	s := Summarize(in, PeriodCurrentMonth, now)

	assert.True(t, s.TotalRevenue.Equal(dec("100")))
	assert.True(t, s.TotalExpenses.Equal(dec("40")))
	assert.True(t, s.NetProfit.Equal(dec("60")))
	assert.Equal(t, 60.0, s.ProfitMargin)
	require.Len(t, s.Categories, 1)
	assert.Equal(t, "Other", s.Categories[0].Category)
	assert.Equal(t, 100.0, s.Categories[0].Percentage)
}

func TestSummarize_EmptyIsAllZero(t *testing.T) {
	for _, p := range []Period{PeriodCurrentMonth, PeriodLastMonth, PeriodCurrentYear, PeriodLastYear} {
		s := Summarize(FinanceInput{}, p, time.Now())
		assert.True(t, s.TotalRevenue.IsZero())
		assert.True(t, s.TotalExpenses.IsZero())
		assert.True(t, s.NetProfit.IsZero())
		assert.Equal(t, float64(0), s.ProfitMargin)
		assert.Empty(t, s.Categories)
		assert.Empty(t, s.Properties)
	}
}

func TestSummarize_DecimalSafe(t *testing.T) {
	now := date(2024, 6, 30)
	var payments []domain.Payment
	for i := 0; i < 1000; i++ {
		payments = append(payments, domain.Payment{Amount: dec("0.10"), PaymentDate: date(2024, 6, 15)})
	}
	expenses := []domain.Receipt{{Amount: dec("0.30"), ReceiptDate: date(2024, 6, 15)}}

	s := Summarize(FinanceInput{Payments: payments, Expenses: expenses}, PeriodCurrentMonth, now)

	assert.Equal(t, "100", s.TotalRevenue.String())
	assert.Equal(t, "99.7", s.NetProfit.String())
	assert.True(t, s.NetProfit.Equal(s.TotalRevenue.Sub(s.TotalExpenses)))
}

func TestSummarize_ZeroRevenueMargin(t *testing.T) {
	in := FinanceInput{Expenses: []domain.Receipt{{Amount: dec("25"), ReceiptDate: date(2024, 6, 3)}}}
	s := Summarize(in, PeriodCurrentMonth, date(2024, 6, 10))

	assert.True(t, s.NetProfit.Equal(dec("-25")))
	assert.Equal(t, float64(0), s.ProfitMargin)
}

func TestSummarize_PeriodFiltering(t *testing.T) {
	now := date(2024, 6, 15)
	in := FinanceInput{Payments: []domain.Payment{
		{Amount: dec("10"), PaymentDate: date(2024, 6, 30)},
		{Amount: dec("20"), PaymentDate: date(2024, 5, 1)},
		{Amount: dec("30"), PaymentDate: date(2024, 5, 31)},
		{Amount: dec("40"), PaymentDate: date(2023, 12, 31)},
		{Amount: dec("50"), PaymentDate: date(2024, 7, 1)},
	}}

	assert.Equal(t, "10", Summarize(in, PeriodCurrentMonth, now).TotalRevenue.String())
	assert.Equal(t, "50", Summarize(in, PeriodLastMonth, now).TotalRevenue.String())
	assert.Equal(t, "110", Summarize(in, PeriodCurrentYear, now).TotalRevenue.String())
	assert.Equal(t, "40", Summarize(in, PeriodLastYear, now).TotalRevenue.String())
}

func TestSummarize_LastMonthAcrossYear(t *testing.T) {
	r := PeriodLastMonth.Resolve(date(2024, 1, 15))
	assert.Equal(t, date(2023, 12, 1), r.Start)
	assert.Equal(t, date(2023, 12, 31), r.End)
}

func TestSummarize_SkipsMalformed(t *testing.T) {
	in := FinanceInput{
		Payments: []domain.Payment{
			{ID: 1, Amount: dec("10")},
			{ID: 2, Amount: dec("-5"), PaymentDate: date(2024, 6, 2)},
			{ID: 3, Amount: dec("7"), PaymentDate: date(2024, 6, 2)},
		},
	}
	s := Summarize(in, PeriodCurrentMonth, date(2024, 6, 10))
	assert.Equal(t, "7", s.TotalRevenue.String())
	assert.Equal(t, 1, s.PaymentCount)
}

func TestSummarize_Breakdowns(t *testing.T) {
	now := date(2024, 6, 10)
	in := FinanceInput{
		Buildings: []domain.Building{{ID: 1, Name: "Harbor"}, {ID: 2, Name: "Riverside"}},
		Rooms:     []domain.Room{{ID: 10, BuildingID: 1}, {ID: 20, BuildingID: 2}},
		Payments: []domain.Payment{
			{Amount: dec("100"), RoomID: ptr(uint(10)), PaymentDate: date(2024, 6, 1)},
			{Amount: dec("300"), RoomID: ptr(uint(20)), PaymentDate: date(2024, 6, 1)},
			{Amount: dec("50"), RoomID: ptr(uint(10)), PaymentDate: date(2024, 6, 2)},
			{Amount: dec("5"), PaymentDate: date(2024, 6, 2)},
		},
		Expenses: []domain.Receipt{
			{Amount: dec("30"), Category: "Utilities", ReceiptDate: date(2024, 6, 1)},
			{Amount: dec("10"), Category: "  ", ReceiptDate: date(2024, 6, 1)},
			{Amount: dec("60"), Category: "Utilities", ReceiptDate: date(2024, 6, 3)},
		},
	}

	s := Summarize(in, PeriodCurrentMonth, now)

	require.Len(t, s.Properties, 3)
	assert.Equal(t, "Riverside", s.Properties[0].BuildingName)
	assert.Equal(t, "Harbor", s.Properties[1].BuildingName)
	assert.Equal(t, "150", s.Properties[1].Revenue.String())
	assert.Equal(t, 2, s.Properties[1].PaymentCount)
	assert.Equal(t, UnassignedProperty, s.Properties[2].BuildingName)

	require.Len(t, s.Categories, 2)
	assert.Equal(t, "Utilities", s.Categories[0].Category)
	assert.Equal(t, 90.0, s.Categories[0].Percentage)
	assert.Equal(t, "Other", s.Categories[1].Category)
	assert.Equal(t, 10.0, s.Categories[1].Percentage)
}

func TestMonthlyTrend(t *testing.T) {
	now := date(2024, 3, 15)
	in := FinanceInput{
		Payments: []domain.Payment{
			{Amount: dec("100"), PaymentDate: date(2024, 3, 1)},
			{Amount: dec("80"), PaymentDate: date(2023, 10, 31)},
			{Amount: dec("999"), PaymentDate: date(2023, 9, 30)},
		},
		Expenses: []domain.Receipt{{Amount: dec("30"), ReceiptDate: date(2024, 3, 2)}},
	}

	points := MonthlyTrend(in, now, TrendMonths)

	require.Len(t, points, 6)
	assert.Equal(t, "2023-10", points[0].Month)
	assert.Equal(t, "80", points[0].Revenue.String())
	assert.Equal(t, "2024-03", points[5].Month)
	assert.Equal(t, "Mar 2024", points[5].Label)
	assert.Equal(t, "70", points[5].Profit.String())
}

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod("")
	require.NoError(t, err)
	assert.Equal(t, PeriodCurrentMonth, p)

	p, err = ParsePeriod("last-year")
	require.NoError(t, err)
	assert.Equal(t, PeriodLastYear, p)

	_, err = ParsePeriod("fortnight")
	assert.Error(t, err)
}
