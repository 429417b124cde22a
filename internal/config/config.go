package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"klicks/internal/game"
)

// APIConfig is the full server configuration, including the static game
// data the engine consumes: tier table, catalogs, cooldown and wager odds.
type APIConfig struct {
	Addr       string `koanf:"addr"`
	AdminToken string `koanf:"admin_token"`
	LogLevel   string `koanf:"log_level"`

	ClickCooldownMS       int     `koanf:"click_cooldown_ms"`
	WagerWinProbability   float64 `koanf:"wager_win_probability"`
	WagerPayoutMultiplier float64 `koanf:"wager_payout_multiplier"`

	Tiers      []TierConfig     `koanf:"tiers"`
	Businesses []BusinessConfig `koanf:"businesses"`
	Vehicles   []VehicleConfig  `koanf:"vehicles"`
}

type TierConfig struct {
	Name      string `koanf:"name"`
	RewardMin int64  `koanf:"reward_min"`
	RewardMax int64  `koanf:"reward_max"`
	Threshold int64  `koanf:"threshold"`
}

type BusinessConfig struct {
	ID     int64  `koanf:"id"`
	Name   string `koanf:"name"`
	Emoji  string `koanf:"emoji"`
	Price  int64  `koanf:"price"`
	Profit int64  `koanf:"profit"`
}

type VehicleConfig struct {
	ID    int64  `koanf:"id"`
	Name  string `koanf:"name"`
	Emoji string `koanf:"emoji"`
	Price int64  `koanf:"price"`
}

type CLIConfig struct {
	APIBaseURL string
	AdminToken string
}

// Default returns the built-in configuration: the original privilege
// ladder and shop data. The top tier's threshold is raised above Hacker's
// so the table stays strictly increasing.
func Default() *APIConfig {
	return &APIConfig{
		Addr:                  ":8080",
		LogLevel:              "info",
		ClickCooldownMS:       int(game.DefaultClickCooldown / time.Millisecond),
		WagerWinProbability:   game.DefaultWagerWinProbability,
		WagerPayoutMultiplier: game.DefaultWagerPayoutMultiplier,
		Tiers: []TierConfig{
			{Name: "Hobo", RewardMin: 500, RewardMax: 2500, Threshold: 100000},
			{Name: "Rich", RewardMin: 3000, RewardMax: 5000, Threshold: 1000000},
			{Name: "Millionaire", RewardMin: 5000, RewardMax: 10000, Threshold: 2000000},
			{Name: "Billionaire", RewardMin: 10000, RewardMax: 25000, Threshold: 10000000},
			{Name: "Cheater", RewardMin: 25000, RewardMax: 50000, Threshold: 25000000},
			{Name: "VIP", RewardMin: 50000, RewardMax: 100000, Threshold: 50000000},
			{Name: "Hacker", RewardMin: 100000, RewardMax: 250000, Threshold: 100000000},
			{Name: "God", RewardMin: 250000, RewardMax: 500000, Threshold: 250000000},
		},
		Businesses: []BusinessConfig{
			{ID: 1, Name: "24/7 Store", Emoji: "🏪", Price: 500000, Profit: 50000},
			{ID: 2, Name: "Office", Emoji: "🏢", Price: 999999, Profit: 75000},
			{ID: 3, Name: "Billionaires LLC", Emoji: "🏦", Price: 1500000, Profit: 125000},
			{ID: 4, Name: "Arbitrage Team", Emoji: "💼", Price: 200000, Profit: 25000},
			{ID: 5, Name: "Dream Job", Emoji: "💎", Price: 500000, Profit: 100000},
		},
		Vehicles: []VehicleConfig{
			{ID: 1, Name: "Scooter", Emoji: "🛴", Price: 150000},
			{ID: 2, Name: "Motorbike", Emoji: "🏍️", Price: 750000},
			{ID: 3, Name: "Sedan", Emoji: "🚗", Price: 1500000},
			{ID: 4, Name: "Sports Car", Emoji: "🏎️", Price: 5000000},
			{ID: 5, Name: "Helicopter", Emoji: "🚁", Price: 20000000},
			{ID: 6, Name: "Yacht", Emoji: "🛥️", Price: 50000000},
		},
	}
}

func (c *APIConfig) Rules() game.Rules {
	return game.Rules{
		ClickCooldown:         time.Duration(c.ClickCooldownMS) * time.Millisecond,
		WagerWinProbability:   c.WagerWinProbability,
		WagerPayoutMultiplier: c.WagerPayoutMultiplier,
	}
}

func (c *APIConfig) TierTable() game.TierTable {
	out := make(game.TierTable, 0, len(c.Tiers))
	for _, t := range c.Tiers {
		out = append(out, game.Tier{Name: t.Name, RewardMin: t.RewardMin, RewardMax: t.RewardMax, Threshold: t.Threshold})
	}
	return out
}

func (c *APIConfig) BusinessCatalog() []game.Business {
	out := make([]game.Business, 0, len(c.Businesses))
	for _, b := range c.Businesses {
		out = append(out, game.Business{ID: b.ID, Name: b.Name, Emoji: b.Emoji, Price: b.Price, Profit: b.Profit})
	}
	return out
}

func (c *APIConfig) VehicleCatalog() []game.Vehicle {
	out := make([]game.Vehicle, 0, len(c.Vehicles))
	for _, v := range c.Vehicles {
		out = append(out, game.Vehicle{ID: v.ID, Name: v.Name, Emoji: v.Emoji, Price: v.Price})
	}
	return out
}

func (c *APIConfig) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("addr must not be empty")
	}
	if err := c.Rules().Validate(); err != nil {
		return err
	}
	if err := c.TierTable().Validate(); err != nil {
		return err
	}
	if err := game.ValidateBusinesses(c.BusinessCatalog()); err != nil {
		return err
	}
	if err := game.ValidateVehicles(c.VehicleCatalog()); err != nil {
		return err
	}
	return nil
}

func (c *APIConfig) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
