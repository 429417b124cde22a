package game

import "testing"

func TestTierTableIndexFor(t *testing.T) {
	tiers := TierTable{
		{Name: "Hobo", RewardMin: 500, RewardMax: 2500, Threshold: 100000},
		{Name: "Rich", RewardMin: 3000, RewardMax: 5000, Threshold: 1000000},
		{Name: "Millionaire", RewardMin: 5000, RewardMax: 10000, Threshold: 2000000},
	}

	tests := []struct {
		balance int64
		want    int
	}{
		{balance: 0, want: 0},
		{balance: 99999, want: 0},
		{balance: 100000, want: 0},
		{balance: 999999, want: 0},
		{balance: 1000000, want: 1},
		{balance: 1999999, want: 1},
		{balance: 2000000, want: 2},
		{balance: 50000000, want: 2},
	}
	for _, tc := range tests {
		if got := tiers.IndexFor(tc.balance); got != tc.want {
			t.Fatalf("balance=%d got=%d want=%d", tc.balance, got, tc.want)
		}
	}
}

func TestTierTableIndexOf(t *testing.T) {
	tiers := TierTable{
		{Name: "Hobo", RewardMin: 1, RewardMax: 2, Threshold: 10},
		{Name: "Rich", RewardMin: 3, RewardMax: 4, Threshold: 20},
	}
	if idx, ok := tiers.IndexOf("Rich"); !ok || idx != 1 {
		t.Fatalf("IndexOf(Rich) = %d, %v", idx, ok)
	}
	if _, ok := tiers.IndexOf("Pauper"); ok {
		t.Fatal("expected unknown tier name to miss")
	}
}

func TestTierTableValidate(t *testing.T) {
	valid := TierTable{
		{Name: "A", RewardMin: 1, RewardMax: 5, Threshold: 10},
		{Name: "B", RewardMin: 5, RewardMax: 10, Threshold: 20},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid table: %v", err)
	}

	invalid := []TierTable{
		{},
		{{Name: "", RewardMin: 1, RewardMax: 2, Threshold: 1}},
		{{Name: "A", RewardMin: 5, RewardMax: 1, Threshold: 1}},
		{{Name: "A", RewardMin: -1, RewardMax: 1, Threshold: 1}},
		{
			{Name: "A", RewardMin: 1, RewardMax: 2, Threshold: 10},
			{Name: "B", RewardMin: 1, RewardMax: 2, Threshold: 10},
		},
		{
			{Name: "A", RewardMin: 1, RewardMax: 2, Threshold: 10},
			{Name: "B", RewardMin: 1, RewardMax: 2, Threshold: 5},
		},
	}
	for i, table := range invalid {
		if err := table.Validate(); err == nil {
			t.Fatalf("table %d: expected validation failure", i)
		}
	}
}

func TestWagerWinNet(t *testing.T) {
	tests := []struct {
		bet  int64
		want int64
	}{
		{bet: 100000, want: 50000},
		{bet: 3, want: 1},
		{bet: 1, want: 0},
		{bet: 2, want: 1},
	}
	for _, tc := range tests {
		if got := WagerWinNet(tc.bet, DefaultWagerPayoutMultiplier); got != tc.want {
			t.Fatalf("bet=%d got=%d want=%d", tc.bet, got, tc.want)
		}
	}
}

func TestValidateBusinesses(t *testing.T) {
	ok := []Business{
		{ID: 1, Name: "Store", Price: 10, Profit: 1},
		{ID: 2, Name: "Office", Price: 20, Profit: 2},
	}
	if err := ValidateBusinesses(ok); err != nil {
		t.Fatalf("expected valid catalog: %v", err)
	}

	bad := [][]Business{
		{{ID: 0, Name: "Store", Price: 10, Profit: 1}},
		{{ID: 1, Name: "", Price: 10, Profit: 1}},
		{{ID: 1, Name: "Store", Price: 0, Profit: 1}},
		{{ID: 1, Name: "Store", Price: 10, Profit: 0}},
		{
			{ID: 1, Name: "Store", Price: 10, Profit: 1},
			{ID: 1, Name: "Other", Price: 20, Profit: 2},
		},
	}
	for i, catalog := range bad {
		if err := ValidateBusinesses(catalog); err == nil {
			t.Fatalf("catalog %d: expected validation failure", i)
		}
	}
}

func TestValidateVehicles(t *testing.T) {
	if err := ValidateVehicles([]Vehicle{{ID: 1, Name: "Scooter", Price: 10}}); err != nil {
		t.Fatalf("expected valid catalog: %v", err)
	}
	bad := [][]Vehicle{
		{{ID: 1, Name: "Scooter", Price: 0}},
		{
			{ID: 1, Name: "Scooter", Price: 10},
			{ID: 1, Name: "Bike", Price: 20},
		},
	}
	for i, catalog := range bad {
		if err := ValidateVehicles(catalog); err == nil {
			t.Fatalf("catalog %d: expected validation failure", i)
		}
	}
}

func TestRulesValidate(t *testing.T) {
	if err := DefaultRules().Validate(); err != nil {
		t.Fatalf("default rules invalid: %v", err)
	}
	bad := []Rules{
		{ClickCooldown: 0, WagerWinProbability: 0.4, WagerPayoutMultiplier: 1.5},
		{ClickCooldown: DefaultClickCooldown, WagerWinProbability: 0, WagerPayoutMultiplier: 1.5},
		{ClickCooldown: DefaultClickCooldown, WagerWinProbability: 1, WagerPayoutMultiplier: 1.5},
		{ClickCooldown: DefaultClickCooldown, WagerWinProbability: 0.4, WagerPayoutMultiplier: 1},
	}
	for i, r := range bad {
		if err := r.Validate(); err == nil {
			t.Fatalf("rules %d: expected validation failure", i)
		}
	}
}
