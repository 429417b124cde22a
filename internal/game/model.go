package game

import (
	"errors"
	"math"
	"time"
)

const (
	// DefaultClickCooldown is the minimum gap between two accepted clicks.
	DefaultClickCooldown = 1000 * time.Millisecond

	// Fixed casino odds: 40% to win, 1.5x payout on the stake.
	DefaultWagerWinProbability   = 0.4
	DefaultWagerPayoutMultiplier = 1.5
)

var (
	ErrCooldownActive    = errors.New("cooldown active: clicks are allowed once per second")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrAlreadyOwned      = errors.New("already owned")
	ErrNoIncomeSource    = errors.New("no income source")
	ErrInvalidAmount     = errors.New("amount must be a positive integer")
	ErrItemNotFound      = errors.New("item not found")
	ErrUnknownTier       = errors.New("unknown tier")
)

// Rules holds the tunable constants of the economy.
type Rules struct {
	ClickCooldown         time.Duration `json:"click_cooldown"`
	WagerWinProbability   float64       `json:"wager_win_probability"`
	WagerPayoutMultiplier float64       `json:"wager_payout_multiplier"`
}

func DefaultRules() Rules {
	return Rules{
		ClickCooldown:         DefaultClickCooldown,
		WagerWinProbability:   DefaultWagerWinProbability,
		WagerPayoutMultiplier: DefaultWagerPayoutMultiplier,
	}
}

func (r Rules) Validate() error {
	if r.ClickCooldown <= 0 {
		return errors.New("click cooldown must be positive")
	}
	if r.WagerWinProbability <= 0 || r.WagerWinProbability >= 1 {
		return errors.New("wager win probability must be in (0, 1)")
	}
	if r.WagerPayoutMultiplier <= 1 {
		return errors.New("wager payout multiplier must exceed 1")
	}
	return nil
}

// WagerWinNet is the net balance gain for a won bet: floor(bet*mult) - bet.
func WagerWinNet(bet int64, multiplier float64) int64 {
	return int64(math.Floor(float64(bet)*multiplier)) - bet
}
