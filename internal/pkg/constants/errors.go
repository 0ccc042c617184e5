package constants

import (
	"fmt"
	"net/http"
)

type CodedError struct {
	msg  string
	code int
}

func NewCodedError(msg string, code int) *CodedError {
	return &CodedError{msg: msg, code: code}
}

func (e *CodedError) Error() string {
	return e.msg
}

func (e *CodedError) Code() int {
	return e.code
}

var (
	ErrDBNotFound           = NewCodedError("not found", http.StatusNotFound)
	ErrHarvestYearNotFound  = NewCodedError("harvest year not found", http.StatusNotFound)
	ErrInsufficientData     = NewCodedError("insufficient data", http.StatusUnprocessableEntity)
	ErrInvalidData          = NewCodedError("invalid data", http.StatusUnprocessableEntity)
	ErrInvalidConfiguration = NewCodedError("invalid configuration", http.StatusInternalServerError)
	ErrBadRequest           = NewCodedError("bad request", http.StatusBadRequest)
)

type Entity string

const (
	EntityHarvestYears    Entity = "harvest_years"
	EntityCultures        Entity = "cultures"
	EntitySystems         Entity = "systems"
	EntityCycles          Entity = "cycles"
	EntityProperties      Entity = "properties"
	EntityPlantedAreas    Entity = "planted_areas"
	EntityProductivities  Entity = "productivities"
	EntityCommodityPrices Entity = "commodity_prices"
	EntityExchangeRates   Entity = "exchange_rates"
	EntityProductionCosts Entity = "production_costs"
	EntityOtherExpenses   Entity = "other_expenses"
	EntityDebtInstruments Entity = "debt_instruments"
	EntityBalanceItems    Entity = "balance_items"
)

// SourceUnavailableError is returned when the store cannot return a whole
// collection. The engine never retries it.
type SourceUnavailableError struct {
	Entity Entity
	Err    error
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("source unavailable, entity-%s: %s", e.Entity, e.Err)
}

func (e *SourceUnavailableError) Unwrap() error {
	return e.Err
}

func (e *SourceUnavailableError) Code() int {
	return http.StatusServiceUnavailable
}
