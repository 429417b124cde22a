package main

import (
	"fmt"
	"strconv"
	"strings"

	"klicks/internal/game"

	"github.com/fatih/color"
)

var (
	accent  = color.New(color.FgCyan, color.Bold)
	success = color.New(color.FgGreen, color.Bold)
	warn    = color.New(color.FgYellow, color.Bold)
	danger  = color.New(color.FgRed, color.Bold)
	neutral = color.New(color.FgHiWhite)
)

func printSuccess(msg string) {
	success.Println(msg)
}

func printWarn(msg string) {
	warn.Println(msg)
}

func printError(msg string) {
	danger.Println(msg)
}

func printInfo(msg string) {
	neutral.Println(msg)
}

func renderProfile(p game.Profile) {
	accent.Printf("\n== PROFILE (%s) ==\n", p.Tier)
	fmt.Printf("Balance:         %s coins\n", comma(p.Balance))
	fmt.Printf("Premium:         %s gems\n", comma(p.PremiumBalance))
	fmt.Printf("Click reward:    %s-%s coins\n", comma(p.RewardMin), comma(p.RewardMax))
	if p.NextTierThreshold > 0 {
		fmt.Printf("Next tier at:    %s coins\n", comma(p.NextTierThreshold))
	} else {
		fmt.Printf("Next tier at:    maxed out\n")
	}
	fmt.Printf("Passive income:  %s coins per collect\n", comma(p.PassiveIncomeRate))
	fmt.Printf("Businesses:      %d owned\n", len(p.OwnedBusinesses))
	fmt.Printf("Vehicles:        %d owned\n", len(p.OwnedVehicles))
	fmt.Println()
}

func renderClick(out game.ClickResult) {
	printSuccess(fmt.Sprintf("+%s coins! Balance: %s", comma(out.Earned), comma(out.Balance)))
	if out.TierUp {
		accent.Printf("🎉 New privilege: %s\n", out.Tier)
	}
}

func renderBusinesses(listings []game.BusinessListing) {
	accent.Println("\n== BUSINESS SHOP ==")
	if len(listings) == 0 {
		printInfo("Nothing for sale.")
		return
	}
	fmt.Printf("%-4s %-4s %-24s %14s %14s %-6s\n", "ID", "", "NAME", "PRICE", "PROFIT", "OWNED")
	for _, l := range listings {
		owned := ""
		if l.Owned {
			owned = "yes"
		}
		fmt.Printf("%-4d %-4s %-24s %14s %14s %-6s\n",
			l.ID, l.Emoji, truncate(l.Name, 24), comma(l.Price), comma(l.Profit), owned)
	}
	fmt.Println()
}

func renderVehicles(listings []game.VehicleListing) {
	accent.Println("\n== GARAGE ==")
	if len(listings) == 0 {
		printInfo("Nothing for sale.")
		return
	}
	fmt.Printf("%-4s %-4s %-24s %14s %-6s\n", "ID", "", "NAME", "PRICE", "OWNED")
	for _, l := range listings {
		owned := ""
		if l.Owned {
			owned = "yes"
		}
		fmt.Printf("%-4d %-4s %-24s %14s %-6s\n",
			l.ID, l.Emoji, truncate(l.Name, 24), comma(l.Price), owned)
	}
	fmt.Println()
}

func renderWager(out game.WagerResult) {
	if out.Won {
		printSuccess(fmt.Sprintf("🎰 Jackpot! +%s coins. Balance: %s", comma(out.Delta), comma(out.Balance)))
		return
	}
	printError(fmt.Sprintf("😢 Lost %s coins. Balance: %s", comma(out.Bet), comma(out.Balance)))
}

func comma(v int64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	s := strconv.FormatInt(v, 10)
	if len(s) <= 3 {
		return sign + s
	}
	var b strings.Builder
	b.WriteString(sign)
	pre := len(s) % 3
	if pre > 0 {
		b.WriteString(s[:pre])
		b.WriteByte(',')
	}
	for i := pre; i < len(s); i += 3 {
		b.WriteString(s[i : i+3])
		if i+3 < len(s) {
			b.WriteByte(',')
		}
	}
	return b.String()
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
