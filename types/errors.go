package types

import "fmt"

// Code buckets every failure into the categories callers dispatch on.
type Code uint8

const (
	CodePrecondition Code = iota + 1
	CodeArithmetic
	CodeInsufficientBalance
	CodeUnauthorized
	CodeInvalidReference
	CodeResourceExhausted
)

func (c Code) String() string {
	switch c {
	case CodePrecondition:
		return "PreconditionViolation"
	case CodeArithmetic:
		return "ArithmeticFault"
	case CodeInsufficientBalance:
		return "InsufficientBalance"
	case CodeUnauthorized:
		return "Unauthorized"
	case CodeInvalidReference:
		return "InvalidReference"
	case CodeResourceExhausted:
		return "ResourceExhausted"
	default:
		return "Unknown"
	}
}

// Error is the categorized error every operation returns. Operations are
// all-or-nothing, so an Error always means no state was touched.
type Error struct {
	Code    Code
	Name    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s: %v", e.Code, e.Name, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Name, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error carrying the same Name, so wrapped instances
// still satisfy errors.Is against the sentinels below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Name == t.Name
}

func newErr(code Code, name, message string) *Error {
	return &Error{Code: code, Name: name, Message: message}
}

var (
	ErrAlreadyInitialized = newErr(CodePrecondition, "AlreadyInitialized", "presale state already initialized")
	ErrNotInitialized     = newErr(CodePrecondition, "NotInitialized", "state record has not been initialized")
	ErrAlreadyEnded       = newErr(CodePrecondition, "AlreadyEnded", "presale already ended")
	ErrStakingClosed      = newErr(CodePrecondition, "StakingClosed", "staking is only allowed during the presale")
	ErrEarlyUnstakeLocked = newErr(CodePrecondition, "EarlyUnstakeLocked", "unstaking not allowed before 7 days after launch")
	ErrNoRewardsAvailable = newErr(CodePrecondition, "NoRewardsAvailable", "no rewards available to claim yet")
	ErrLiquidityLock      = newErr(CodePrecondition, "LiquidityLockError", "liquidity lock window error")
	ErrWithdrawalClosed   = newErr(CodePrecondition, "WithdrawalClosed", "withdrawal allowed only during presale")

	ErrInvalidAmount       = newErr(CodeInvalidReference, "InvalidAmount", "invalid payment or stake amount")
	ErrInvalidTokenMint    = newErr(CodeInvalidReference, "InvalidTokenMint", "invalid token mint address")
	ErrInvalidFeeRecipient = newErr(CodeInvalidReference, "InvalidFeeRecipient", "fee recipient or treasury does not match configuration")
	ErrInvalidStageIndex   = newErr(CodeInvalidReference, "InvalidStageIndex", "invalid presale stage index")

	ErrInsufficientFunds   = newErr(CodeInsufficientBalance, "InsufficientFunds", "insufficient funds for transfer")
	ErrInsufficientRewards = newErr(CodeInsufficientBalance, "InsufficientRewards", "not enough rewards in the pool")

	ErrUnauthorized = newErr(CodeUnauthorized, "Unauthorized", "caller is not an admin")

	ErrRewardsExhausted = newErr(CodeResourceExhausted, "StakingRewardsExhausted", "staking rewards pool is exhausted")
)

// ArithmeticFault wraps a checked-arithmetic failure so composed
// operations report a structured error instead of crashing the host.
func ArithmeticFault(err error) *Error {
	return &Error{Code: CodeArithmetic, Name: "ArithmeticFault", Message: "checked arithmetic aborted the operation", Err: err}
}
