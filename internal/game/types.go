package game

import (
	"errors"
	"fmt"
)

// Tier is one privilege bracket. Threshold is the balance required to enter
// the tier; the lowest tier is active from balance 0 regardless of its
// configured threshold.
type Tier struct {
	Name      string `json:"name"`
	RewardMin int64  `json:"reward_min"`
	RewardMax int64  `json:"reward_max"`
	Threshold int64  `json:"threshold"`
}

// TierTable is an ordered privilege ladder, strictly increasing in Threshold.
// It is loaded once and never mutated at runtime.
type TierTable []Tier

func (t TierTable) Validate() error {
	if len(t) == 0 {
		return errors.New("tier table must not be empty")
	}
	for i, tier := range t {
		if tier.Name == "" {
			return fmt.Errorf("tier %d: name must not be empty", i)
		}
		if tier.RewardMin < 0 || tier.RewardMax < tier.RewardMin {
			return fmt.Errorf("tier %q: reward range [%d, %d] is invalid", tier.Name, tier.RewardMin, tier.RewardMax)
		}
		if i > 0 && tier.Threshold <= t[i-1].Threshold {
			return fmt.Errorf("tier %q: threshold %d does not exceed previous tier's %d", tier.Name, tier.Threshold, t[i-1].Threshold)
		}
	}
	return nil
}

// IndexFor returns the index of the applicable tier for a balance: the
// highest-indexed tier whose threshold is at most the balance, or 0 when the
// balance is below every threshold.
func (t TierTable) IndexFor(balance int64) int {
	idx := 0
	for i := range t {
		if balance >= t[i].Threshold {
			idx = i
		}
	}
	return idx
}

// IndexOf resolves a tier by name for admin grants.
func (t TierTable) IndexOf(name string) (int, bool) {
	for i := range t {
		if t[i].Name == name {
			return i, true
		}
	}
	return 0, false
}

// Business is an immutable catalog record. Profit is the per-collection
// contribution to the owner's passive income rate.
type Business struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Emoji  string `json:"emoji"`
	Price  int64  `json:"price"`
	Profit int64  `json:"profit"`
}

// Vehicle is an immutable catalog record with no post-purchase effect.
type Vehicle struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
	Price int64  `json:"price"`
}

func ValidateBusinesses(items []Business) error {
	seen := make(map[int64]bool, len(items))
	for _, b := range items {
		if b.ID <= 0 || b.Name == "" {
			return fmt.Errorf("business %q (id %d) is malformed", b.Name, b.ID)
		}
		if b.Price <= 0 || b.Profit <= 0 {
			return fmt.Errorf("business %q: price and profit must be positive", b.Name)
		}
		if seen[b.ID] {
			return fmt.Errorf("business id %d is duplicated", b.ID)
		}
		seen[b.ID] = true
	}
	return nil
}

func ValidateVehicles(items []Vehicle) error {
	seen := make(map[int64]bool, len(items))
	for _, v := range items {
		if v.ID <= 0 || v.Name == "" {
			return fmt.Errorf("vehicle %q (id %d) is malformed", v.Name, v.ID)
		}
		if v.Price <= 0 {
			return fmt.Errorf("vehicle %q: price must be positive", v.Name)
		}
		if seen[v.ID] {
			return fmt.Errorf("vehicle id %d is duplicated", v.ID)
		}
		seen[v.ID] = true
	}
	return nil
}

// GrantKind tags the admin grant variants.
type GrantKind string

const (
	GrantCurrency        GrantKind = "currency"
	GrantPremiumCurrency GrantKind = "premium_currency"
	GrantTier            GrantKind = "tier"
)

// GrantInput carries one admin grant. Amount applies to the currency kinds,
// Tier to the tier kind.
type GrantInput struct {
	Kind   GrantKind `json:"kind"`
	Amount int64     `json:"amount,omitempty"`
	Tier   string    `json:"tier,omitempty"`
}

type ClickResult struct {
	Earned  int64  `json:"earned"`
	Balance int64  `json:"balance"`
	Tier    string `json:"tier"`
	TierUp  bool   `json:"tier_up"`
}

type PurchaseResult struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Emoji   string `json:"emoji"`
	Price   int64  `json:"price"`
	Balance int64  `json:"balance"`
}

type CollectResult struct {
	Collected int64 `json:"collected"`
	Balance   int64 `json:"balance"`
}

type WagerResult struct {
	Won     bool  `json:"won"`
	Bet     int64 `json:"bet"`
	Delta   int64 `json:"delta"`
	Balance int64 `json:"balance"`
}

type GrantResult struct {
	Kind           GrantKind `json:"kind"`
	Balance        int64     `json:"balance"`
	PremiumBalance int64     `json:"premium_balance"`
	Tier           string    `json:"tier"`
}

// Profile is the read-only view of a session handed to callers.
type Profile struct {
	SessionID         string  `json:"session_id"`
	Balance           int64   `json:"balance"`
	PremiumBalance    int64   `json:"premium_balance"`
	Tier              string  `json:"tier"`
	TierIndex         int     `json:"tier_index"`
	RewardMin         int64   `json:"reward_min"`
	RewardMax         int64   `json:"reward_max"`
	NextTierThreshold int64   `json:"next_tier_threshold,omitempty"`
	PassiveIncomeRate int64   `json:"passive_income_rate"`
	OwnedBusinesses   []int64 `json:"owned_businesses"`
	OwnedVehicles     []int64 `json:"owned_vehicles"`
}

// BusinessListing and VehicleListing pair a catalog record with the
// session's ownership flag.
type BusinessListing struct {
	Business
	Owned bool `json:"owned"`
}

type VehicleListing struct {
	Vehicle
	Owned bool `json:"owned"`
}
