package game

import (
	"fmt"
	"log/slog"
	mathrand "math/rand"
	"slices"
	"sync"
	"time"

	"golang.org/x/exp/maps"
)

// Clock yields the current instant. Injected so tests can time-travel
// across the click cooldown.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Rand yields uniform draws for click rewards and wager outcomes.
// *math/rand.Rand satisfies it directly.
type Rand interface {
	Int63n(n int64) int64
	Float64() float64
}

// Engine owns the transition rules of the economy. It holds no player
// state itself: every operation takes the session it acts on.
type Engine struct {
	rules        Rules
	tiers        TierTable
	businesses   []Business
	vehicles     []Vehicle
	businessByID map[int64]Business
	vehicleByID  map[int64]Vehicle

	log    *slog.Logger
	notify Notifier

	clock Clock
	mu    sync.Mutex // guards rand
	rand  Rand
}

type Option func(*Engine)

func WithClock(c Clock) Option {
	return func(e *Engine) { e.clock = c }
}

func WithRand(r Rand) Option {
	return func(e *Engine) { e.rand = r }
}

func WithNotifier(n Notifier) Option {
	return func(e *Engine) { e.notify = n }
}

// NewEngine validates the rules, tier table and catalogs and builds an
// engine. Production wires the defaults: system clock, seeded math/rand,
// slog-backed notifier.
func NewEngine(rules Rules, tiers TierTable, businesses []Business, vehicles []Vehicle, logger *slog.Logger, opts ...Option) (*Engine, error) {
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("rules: %w", err)
	}
	if err := tiers.Validate(); err != nil {
		return nil, fmt.Errorf("tier table: %w", err)
	}
	if err := ValidateBusinesses(businesses); err != nil {
		return nil, fmt.Errorf("business catalog: %w", err)
	}
	if err := ValidateVehicles(vehicles); err != nil {
		return nil, fmt.Errorf("vehicle catalog: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	e := &Engine{
		rules:        rules,
		tiers:        tiers,
		businesses:   slices.Clone(businesses),
		vehicles:     slices.Clone(vehicles),
		businessByID: make(map[int64]Business, len(businesses)),
		vehicleByID:  make(map[int64]Vehicle, len(vehicles)),
		log:          logger,
		clock:        systemClock{},
		rand:         mathrand.New(mathrand.NewSource(time.Now().UnixNano())),
	}
	e.notify = LogNotifier{Log: logger}
	for _, b := range businesses {
		e.businessByID[b.ID] = b
	}
	for _, v := range vehicles {
		e.vehicleByID[v.ID] = v
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

func (e *Engine) Rules() Rules     { return e.rules }
func (e *Engine) Tiers() TierTable { return slices.Clone(e.tiers) }

// Click draws a tier-scaled reward if the cooldown has elapsed, then
// re-evaluates the tier. The re-evaluation only ever moves the tier up;
// the sole path to a lower tier is an admin grant.
func (e *Engine) Click(s *Session) (ClickResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := e.clock.Now()
	if elapsed := now.Sub(s.lastClick); elapsed < e.rules.ClickCooldown {
		e.reject("⏳ Hold on!", "Clicks are allowed once per second")
		return ClickResult{}, ErrCooldownActive
	}

	tier := e.tiers[s.tierIdx]
	earned := tier.RewardMin + e.draw(tier.RewardMax-tier.RewardMin+1)
	s.balance += earned
	s.lastClick = now

	res := ClickResult{Earned: earned, Balance: s.balance, Tier: tier.Name}
	e.info("💸 Earned!", fmt.Sprintf("+%d coins", earned))

	if next := e.tiers.IndexFor(s.balance); next > s.tierIdx {
		s.tierIdx = next
		res.Tier = e.tiers[next].Name
		res.TierUp = true
		e.info("🎉 New privilege!", fmt.Sprintf("You are now %s", res.Tier))
	}
	e.log.Debug("click", "session", s.id, "earned", earned, "balance", s.balance, "tier", res.Tier)
	return res, nil
}

// BuyBusiness performs a one-time purchase and folds the business profit
// into the session's passive income rate.
func (e *Engine) BuyBusiness(s *Session, id int64) (PurchaseResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := e.businessByID[id]
	if !ok {
		e.reject("❌ Unknown business", fmt.Sprintf("No business with id %d", id))
		return PurchaseResult{}, fmt.Errorf("business %d: %w", id, ErrItemNotFound)
	}
	// InsufficientFunds outranks AlreadyOwned when both hold.
	if s.balance < b.Price {
		e.reject("❌ Not enough coins", fmt.Sprintf("You need %d coins", b.Price))
		return PurchaseResult{}, fmt.Errorf("need %d coins: %w", b.Price, ErrInsufficientFunds)
	}
	if s.businesses[id] {
		e.reject("❌ Already owned", "You already own this business")
		return PurchaseResult{}, ErrAlreadyOwned
	}

	s.balance -= b.Price
	s.businesses[id] = true
	s.incomeRate += b.Profit

	e.info("🎉 Business purchased!", fmt.Sprintf("%s %s", b.Emoji, b.Name))
	e.log.Debug("business purchased", "session", s.id, "business", b.Name, "balance", s.balance, "income_rate", s.incomeRate)
	return PurchaseResult{ID: b.ID, Name: b.Name, Emoji: b.Emoji, Price: b.Price, Balance: s.balance}, nil
}

// BuyVehicle is the same contract as BuyBusiness minus the income effect.
func (e *Engine) BuyVehicle(s *Session, id int64) (PurchaseResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := e.vehicleByID[id]
	if !ok {
		e.reject("❌ Unknown vehicle", fmt.Sprintf("No vehicle with id %d", id))
		return PurchaseResult{}, fmt.Errorf("vehicle %d: %w", id, ErrItemNotFound)
	}
	if s.balance < v.Price {
		e.reject("❌ Not enough coins", fmt.Sprintf("You need %d coins", v.Price))
		return PurchaseResult{}, fmt.Errorf("need %d coins: %w", v.Price, ErrInsufficientFunds)
	}
	if s.vehicles[id] {
		e.reject("❌ Already owned", "You already own this vehicle")
		return PurchaseResult{}, ErrAlreadyOwned
	}

	s.balance -= v.Price
	s.vehicles[id] = true

	e.info("🎉 Vehicle purchased!", fmt.Sprintf("%s %s", v.Emoji, v.Name))
	e.log.Debug("vehicle purchased", "session", s.id, "vehicle", v.Name, "balance", s.balance)
	return PurchaseResult{ID: v.ID, Name: v.Name, Emoji: v.Emoji, Price: v.Price, Balance: s.balance}, nil
}

// CollectIncome grants the full cached passive income rate. Income is not
// time-weighted: every call pays the whole rate.
func (e *Engine) CollectIncome(s *Session) (CollectResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.incomeRate <= 0 {
		e.reject("❌ No businesses", "Buy a business first")
		return CollectResult{}, ErrNoIncomeSource
	}
	s.balance += s.incomeRate

	e.info("💰 Profit collected!", fmt.Sprintf("+%d coins", s.incomeRate))
	e.log.Debug("income collected", "session", s.id, "collected", s.incomeRate, "balance", s.balance)
	return CollectResult{Collected: s.incomeRate, Balance: s.balance}, nil
}

// Wager stakes bet coins on a fixed-odds Bernoulli draw. Wager outcomes
// never change the tier.
func (e *Engine) Wager(s *Session, bet int64) (WagerResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if bet <= 0 || bet > s.balance {
		e.reject("❌ Not enough coins", fmt.Sprintf("Cannot stake %d coins", bet))
		return WagerResult{}, fmt.Errorf("bet %d against balance %d: %w", bet, s.balance, ErrInsufficientFunds)
	}

	if e.bernoulli(e.rules.WagerWinProbability) {
		delta := WagerWinNet(bet, e.rules.WagerPayoutMultiplier)
		s.balance += delta
		e.info("🎰 Jackpot!", fmt.Sprintf("+%d coins", delta))
		e.log.Debug("wager won", "session", s.id, "bet", bet, "delta", delta, "balance", s.balance)
		return WagerResult{Won: true, Bet: bet, Delta: delta, Balance: s.balance}, nil
	}

	s.balance -= bet
	e.info("😢 Lost", fmt.Sprintf("-%d coins", bet))
	e.log.Debug("wager lost", "session", s.id, "bet", bet, "balance", s.balance)
	return WagerResult{Won: false, Bet: bet, Delta: -bet, Balance: s.balance}, nil
}

// Grant is the privileged override path. It bypasses cooldowns, thresholds
// and catalog checks; callers are assumed to be authenticated already.
func (e *Engine) Grant(s *Session, in GrantInput) (GrantResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch in.Kind {
	case GrantCurrency:
		if in.Amount <= 0 {
			e.reject("❌ Invalid grant", fmt.Sprintf("Cannot grant %d coins", in.Amount))
			return GrantResult{}, ErrInvalidAmount
		}
		s.balance += in.Amount
		e.info("🎁 Coins granted", fmt.Sprintf("+%d coins", in.Amount))
	case GrantPremiumCurrency:
		if in.Amount <= 0 {
			e.reject("❌ Invalid grant", fmt.Sprintf("Cannot grant %d gems", in.Amount))
			return GrantResult{}, ErrInvalidAmount
		}
		s.premium += in.Amount
		e.info("💎 Gems granted", fmt.Sprintf("+%d gems", in.Amount))
	case GrantTier:
		idx, ok := e.tiers.IndexOf(in.Tier)
		if !ok {
			e.reject("❌ Invalid grant", fmt.Sprintf("No tier named %q", in.Tier))
			return GrantResult{}, fmt.Errorf("tier %q: %w", in.Tier, ErrUnknownTier)
		}
		s.tierIdx = idx
		e.info("🎖️ Privilege set", fmt.Sprintf("You are now %s", in.Tier))
	default:
		e.reject("❌ Invalid grant", fmt.Sprintf("Unknown grant kind %q", in.Kind))
		return GrantResult{}, fmt.Errorf("grant kind %q: %w", in.Kind, ErrInvalidAmount)
	}

	e.log.Info("admin grant", "session", s.id, "kind", in.Kind, "amount", in.Amount, "tier", in.Tier)
	return GrantResult{
		Kind:           in.Kind,
		Balance:        s.balance,
		PremiumBalance: s.premium,
		Tier:           e.tiers[s.tierIdx].Name,
	}, nil
}

// Profile returns the read-only view of a session.
func (e *Engine) Profile(s *Session) Profile {
	s.mu.Lock()
	defer s.mu.Unlock()

	tier := e.tiers[s.tierIdx]
	ownedBusinesses := maps.Keys(s.businesses)
	slices.Sort(ownedBusinesses)
	ownedVehicles := maps.Keys(s.vehicles)
	slices.Sort(ownedVehicles)
	p := Profile{
		SessionID:         s.id,
		Balance:           s.balance,
		PremiumBalance:    s.premium,
		Tier:              tier.Name,
		TierIndex:         s.tierIdx,
		RewardMin:         tier.RewardMin,
		RewardMax:         tier.RewardMax,
		PassiveIncomeRate: s.incomeRate,
		OwnedBusinesses:   ownedBusinesses,
		OwnedVehicles:     ownedVehicles,
	}
	if s.tierIdx+1 < len(e.tiers) {
		p.NextTierThreshold = e.tiers[s.tierIdx+1].Threshold
	}
	return p
}

// Businesses lists the catalog with the session's ownership flags.
func (e *Engine) Businesses(s *Session) []BusinessListing {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]BusinessListing, 0, len(e.businesses))
	for _, b := range e.businesses {
		out = append(out, BusinessListing{Business: b, Owned: s.businesses[b.ID]})
	}
	return out
}

// Vehicles lists the catalog with the session's ownership flags.
func (e *Engine) Vehicles(s *Session) []VehicleListing {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]VehicleListing, 0, len(e.vehicles))
	for _, v := range e.vehicles {
		out = append(out, VehicleListing{Vehicle: v, Owned: s.vehicles[v.ID]})
	}
	return out
}

func (e *Engine) draw(span int64) int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rand.Int63n(span)
}

func (e *Engine) bernoulli(p float64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rand.Float64() < p
}

func (e *Engine) info(title, description string) {
	e.notify.Notify(Notification{Title: title, Description: description, Severity: SeverityInfo})
}

func (e *Engine) reject(title, description string) {
	e.notify.Notify(Notification{Title: title, Description: description, Severity: SeverityError})
}
