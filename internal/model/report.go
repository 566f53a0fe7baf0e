package model

import "github.com/shopspring/decimal"

// The report DTOs keep the Spanish field names of the original wire contract
// so existing frontends keep working unchanged.

// Balance is the ledger service's income/expense breakdown for a date window.
type Balance struct {
	TotalIncome       decimal.Decimal            `json:"totalIngresos"`
	TotalExpense      decimal.Decimal            `json:"totalGastos"`
	Balance           decimal.Decimal            `json:"balance"`
	StartDate         Date                       `json:"startDate"`
	EndDate           Date                       `json:"endDate"`
	ExpenseByCategory map[string]decimal.Decimal `json:"gastosPorCategoria"`
	IncomeByCategory  map[string]decimal.Decimal `json:"ingresosPorCategoria"`
}

// Transaction types as reported by the ledger service.
const (
	TransactionIncome  = "INGRESO"
	TransactionExpense = "GASTO"
)

// CategoryRef is the slim category reference embedded in ledger transactions.
type CategoryRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Transaction is a single ledger entry as returned by the transaction service.
type Transaction struct {
	ID              int64           `json:"id"`
	Category        *CategoryRef    `json:"category,omitempty"`
	Type            string          `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionDate Date            `json:"transactionDate"`
	Description     string          `json:"description"`
}

// TransactionPage is one page of ledger transactions.
type TransactionPage struct {
	Content       []Transaction `json:"content"`
	PageNumber    int           `json:"pageNumber"`
	PageSize      int           `json:"pageSize"`
	TotalElements int64         `json:"totalElements"`
	TotalPages    int           `json:"totalPages"`
}

// CategorySpending ranks one category's share of total spend.
type CategorySpending struct {
	CategoryName     string          `json:"categoryName"`
	Amount           decimal.Decimal `json:"amount"`
	Percentage       decimal.Decimal `json:"percentage"`
	TransactionCount int             `json:"transactionCount"`
}

// DashboardData is the composite dashboard view for a date window.
type DashboardData struct {
	TotalIncome       decimal.Decimal            `json:"totalIngresos"`
	TotalExpense      decimal.Decimal            `json:"totalGastos"`
	Balance           decimal.Decimal            `json:"balance"`
	MonthSavings      decimal.Decimal            `json:"ahorrosMes"`
	SavingsRate       decimal.Decimal            `json:"porcentajeAhorro"`
	ExpenseByCategory map[string]decimal.Decimal `json:"gastosPorCategoria"`
	IncomeByCategory  map[string]decimal.Decimal `json:"ingresosPorCategoria"`
	TopCategories     []CategorySpending         `json:"topCategorias"`

	// Budget section; zero-filled when the budget summary is unavailable.
	TotalBudgets  int             `json:"totalPresupuestos"`
	ActiveBudgets int             `json:"presupuestosActivos"`
	BudgetsAtRisk int             `json:"presupuestosEnRiesgo"`
	TotalBudgeted decimal.Decimal `json:"totalPresupuestado"`
	TotalSpent    decimal.Decimal `json:"totalGastado"`

	RecentTransactions []Transaction   `json:"transaccionesRecientes"`
	TotalTransactions  int             `json:"totalTransacciones"`
	AvgDailyExpense    decimal.Decimal `json:"gastoPromedioDiario"`
	TopExpenseCategory string          `json:"categoriaConMasGasto"`
}

// DailyBalance is one day of the monthly balance series.
type DailyBalance struct {
	Date    Date            `json:"date"`
	Income  decimal.Decimal `json:"ingresos"`
	Expense decimal.Decimal `json:"gastos"`
	Balance decimal.Decimal `json:"balance"`
}

// MonthlySummary is the per-calendar-month report, including a balance entry
// for every day of the month regardless of data sparsity.
type MonthlySummary struct {
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	MonthName string `json:"monthName"`

	TotalIncome     decimal.Decimal `json:"totalIngresos"`
	TotalExpense    decimal.Decimal `json:"totalGastos"`
	Balance         decimal.Decimal `json:"balance"`
	AvgDailyExpense decimal.Decimal `json:"promedioGastoDiario"`

	TransactionCount int `json:"cantidadTransacciones"`
	IncomeCount      int `json:"cantidadIngresos"`
	ExpenseCount     int `json:"cantidadGastos"`

	ExpenseByCategory map[string]decimal.Decimal `json:"gastosPorCategoria"`
	IncomeByCategory  map[string]decimal.Decimal `json:"ingresosPorCategoria"`

	TopExpenseCategory string          `json:"categoriaConMasGasto"`
	TopExpenseAmount   decimal.Decimal `json:"montoMayorGasto"`

	DailyBalances []DailyBalance `json:"balanceDiario"`
}

// MonthlySpending is one point of the category trend series.
type MonthlySpending struct {
	Year      int             `json:"year"`
	Month     int             `json:"month"`
	MonthName string          `json:"monthName"`
	Amount    decimal.Decimal `json:"amount"`
}

// CategoryAnalysis is the deep-dive report for a single category. The budget
// fields are reserved for later composition with budget data and are always
// emitted as zero.
type CategoryAnalysis struct {
	CategoryName       string          `json:"categoryName"`
	TotalSpent         decimal.Decimal `json:"totalSpent"`
	Percentage         decimal.Decimal `json:"percentage"`
	TransactionCount   int             `json:"transactionCount"`
	AverageTransaction decimal.Decimal `json:"averageTransaction"`

	BudgetAmount         decimal.Decimal `json:"budgetAmount"`
	BudgetRemaining      decimal.Decimal `json:"budgetRemaining"`
	BudgetPercentageUsed decimal.Decimal `json:"budgetPercentageUsed"`

	MonthlyTrend []MonthlySpending `json:"monthlyTrend"`
}

// ComparisonData contrasts two arbitrary periods. Percentage changes saturate
// to zero when the period-1 value is zero.
type ComparisonData struct {
	Period1StartDate Date            `json:"period1StartDate"`
	Period1EndDate   Date            `json:"period1EndDate"`
	Period1Income    decimal.Decimal `json:"period1Ingresos"`
	Period1Expense   decimal.Decimal `json:"period1Gastos"`
	Period1Balance   decimal.Decimal `json:"period1Balance"`

	Period2StartDate Date            `json:"period2StartDate"`
	Period2EndDate   Date            `json:"period2EndDate"`
	Period2Income    decimal.Decimal `json:"period2Ingresos"`
	Period2Expense   decimal.Decimal `json:"period2Gastos"`
	Period2Balance   decimal.Decimal `json:"period2Balance"`

	IncomeDelta  decimal.Decimal `json:"diferenciaIngresos"`
	ExpenseDelta decimal.Decimal `json:"diferenciaGastos"`
	BalanceDelta decimal.Decimal `json:"diferenciaBalance"`

	IncomeChangePct  decimal.Decimal `json:"porcentajeCambioIngresos"`
	ExpenseChangePct decimal.Decimal `json:"porcentajeCambioGastos"`
	BalanceChangePct decimal.Decimal `json:"porcentajeCambioBalance"`
}
