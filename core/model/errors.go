package model

// Single instances of every failure the ledger and the sale can report,
// typed by class so callers can match either the exact value or the class.

type ArithmeticError string
type LedgerError string
type SaleError string
type AuthError string

const (
	ErrOverflow       = ArithmeticError("arithmetic overflow")
	ErrUnderflow      = ArithmeticError("arithmetic underflow")
	ErrDivisionByZero = ArithmeticError("division by zero")

	ErrInvalidRecipient      = LedgerError("invalid recipient")
	ErrInsufficientBalance   = LedgerError("insufficient balance")
	ErrInsufficientAllowance = LedgerError("insufficient allowance")

	ErrSaleFinished        = SaleError("sale finished")
	ErrAlreadyFinished     = SaleError("sale already finished")
	ErrInvalidContributor  = SaleError("invalid contributor")
	ErrBelowMinimum        = SaleError("below minimum purchase")
	ErrPhaseNotPurchasable = SaleError("phase not purchasable")
	ErrHardCapExceeded     = SaleError("hard cap exceeded")
	ErrPreIcoLimitExceeded = SaleError("pre-ico sale limit exceeded")

	ErrNotAuthorized = AuthError("not authorized")
)

func (e ArithmeticError) Error() string { return string(e) }
func (e LedgerError) Error() string     { return string(e) }
func (e SaleError) Error() string       { return string(e) }
func (e AuthError) Error() string       { return string(e) }

// determine the class of an error
func IsErrArithmetic(e error) bool { _, ok := e.(ArithmeticError); return ok }
func IsErrLedger(e error) bool     { _, ok := e.(LedgerError); return ok }
func IsErrSale(e error) bool       { _, ok := e.(SaleError); return ok }
func IsErrAuth(e error) bool       { _, ok := e.(AuthError); return ok }
