// Package battle implements the turn-based boss fight: move resolution, the
// enemy's delayed counter-attack, victory and mercy-defeat transitions, the
// shop and redeem commands. A Battle is single-threaded; every command and
// every scheduled callback must run on the same goroutine (or be serialized
// by the caller).
package battle

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"boss-clicker/internal/clock"
	"boss-clicker/internal/progression"
)

// saveTimeout bounds one persistence write.
const saveTimeout = 2 * time.Second

// Saver persists the progression state after it changes.
type Saver interface {
	Save(ctx context.Context, s progression.State) error
}

// Config wires a Battle to its collaborators. A zero State starts a new
// player at level 1; nil fields get DefaultRules, clock.Real, NopObserver,
// no saver and slog.Default.
type Config struct {
	State     progression.State
	Rules     *Rules
	Scheduler clock.Scheduler
	Observer  Observer
	Saver     Saver
	Logger    *slog.Logger
}

// Battle owns all mutable game state for one player.
type Battle struct {
	rules    Rules
	sched    clock.Scheduler
	observer Observer
	saver    Saver
	logger   *slog.Logger

	state  progression.State
	boss   progression.Boss
	player progression.Player

	phase     Phase
	bossHP    int
	playerHP  int
	energy    int
	charged   bool
	shielded  bool
	stats     EncounterStats
	redeemed  map[string]bool
	pending   clock.Timer
	closed    bool
	validCode map[string]bool
}

// New builds a Battle positioned at the start of an encounter for
// cfg.State. It emits nothing until Start is called.
func New(cfg Config) *Battle {
	rules := DefaultRules()
	if cfg.Rules != nil {
		rules = *cfg.Rules
	}
	b := &Battle{
		rules:     rules,
		sched:     cfg.Scheduler,
		observer:  cfg.Observer,
		saver:     cfg.Saver,
		logger:    cfg.Logger,
		state:     progression.Normalize(cfg.State),
		redeemed:  make(map[string]bool),
		validCode: make(map[string]bool),
	}
	if b.sched == nil {
		b.sched = clock.Real{}
	}
	if b.observer == nil {
		b.observer = NopObserver{}
	}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	for _, c := range rules.RedeemCodes {
		if c = normalizeCode(c); c != "" {
			b.validCode[c] = true
		}
	}
	b.startEncounter()
	b.energy = b.player.MaxEnergy
	return b
}

// Start announces the current boss and state to the observer.
func (b *Battle) Start() {
	b.observer.BossChanged(b.boss)
	b.observer.StateChanged(b.Snapshot())
	b.observer.TurnLocked(b.phase != PhasePlayerTurn)
}

// Close cancels any pending turn timer. Later commands are rejected.
func (b *Battle) Close() {
	b.closed = true
	if b.pending != nil {
		b.pending.Stop()
		b.pending = nil
	}
}

// Phase returns the current state machine phase.
func (b *Battle) Phase() Phase { return b.phase }

// State returns the persisted progression state.
func (b *Battle) State() progression.State { return b.state }

// Rules returns the active ruleset.
func (b *Battle) Rules() Rules { return b.rules }

// Boss returns the current boss.
func (b *Battle) Boss() progression.Boss { return b.boss }

// Snapshot captures the current state for redraw.
func (b *Battle) Snapshot() Snapshot {
	return Snapshot{
		Phase:       b.phase,
		Level:       b.state.Level,
		Currency:    b.state.Currency,
		Rewards:     b.state.Rewards,
		RewardSlots: progression.RewardSlots,
		BossName:    b.boss.Name,
		BossTitle:   b.boss.Title,
		BossHP:      b.bossHP,
		BossMaxHP:   b.boss.MaxHP,
		PlayerHP:    b.playerHP,
		PlayerMaxHP: b.player.MaxHP,
		Energy:      b.energy,
		MaxEnergy:   b.player.MaxEnergy,
		Charged:     b.charged,
		Shielded:    b.shielded,
	}
}

// SubmitMove resolves one player move. A rejected move returns a Rejection,
// emits Rejected, and leaves the state untouched.
func (b *Battle) SubmitMove(m Move) error {
	if b.closed {
		return b.reject(ErrClosed)
	}
	if _, ok := moveIDs[m]; !ok {
		return b.reject(ErrUnknownMove)
	}
	if b.phase != PhasePlayerTurn || b.playerHP <= 0 {
		return b.reject(ErrNotYourTurn)
	}
	cost := m.Cost()
	if b.energy < cost {
		return b.reject(fmt.Errorf("%w: %s needs %d, have %d", ErrInsufficientEnergy, m, cost, b.energy))
	}

	damage := 0
	crit := false
	switch m {
	case MoveBasicAttack:
		damage = progression.AttackDamage(b.state.Level)
		b.charged = false
	case MoveCharge:
		b.charged = true
		b.observer.Floater(Floater{Text: "CHARGED!", Style: StyleCharge})
	case MoveDefend:
		b.shielded = true
		b.observer.Floater(Floater{Text: "SHIELD UP", Style: StyleShield, PlayerSide: true})
	case MoveSpecial:
		damage = progression.FinisherDamage(b.state.Level)
		if b.charged {
			damage *= 3
			b.charged = false
		}
		crit = true
	case MoveRecover:
		b.energy = min(b.player.MaxEnergy, b.energy+recoverEnergy)
		damage = 1
		b.observer.Floater(Floater{Text: "+STAMINA", Style: StyleEnergy, PlayerSide: true})
	}

	b.energy -= cost
	b.stats.Moves++
	if damage > 0 {
		b.stats.DamageDealt += min(damage, b.bossHP)
		b.bossHP = max(0, b.bossHP-damage)
		if crit {
			b.observer.Floater(Floater{Text: fmt.Sprintf("CRIT %d!", damage), Style: StyleCrit})
		} else {
			b.observer.Floater(Floater{Text: fmt.Sprintf("%d", damage), Style: StyleDamage})
		}
	}
	b.observer.StateChanged(b.Snapshot())

	if b.bossHP <= 0 {
		b.win()
		return nil
	}
	b.endPlayerTurn()
	return nil
}

// RequestShopAction buys a full energy refill. It does not use a turn.
func (b *Battle) RequestShopAction() error {
	if b.closed {
		return b.reject(ErrClosed)
	}
	price := b.rules.ShopPrice
	if b.state.Currency < price {
		return b.reject(fmt.Errorf("%w: stamina costs %d, have %d", ErrInsufficientFunds, price, b.state.Currency))
	}
	b.state.Currency -= price
	b.energy = b.player.MaxEnergy
	b.observer.Floater(Floater{Text: "STAMINA RECHARGED!", Style: StyleEnergy, PlayerSide: true})
	b.persist()
	b.observer.StateChanged(b.Snapshot())
	return nil
}

// RequestRedeem applies a bonus code: full heal plus currency. Each code
// works once per Battle.
func (b *Battle) RequestRedeem(code string) error {
	if b.closed {
		return b.reject(ErrClosed)
	}
	c := normalizeCode(code)
	if !b.validCode[c] {
		return b.reject(ErrInvalidCode)
	}
	if b.redeemed[c] {
		return b.reject(ErrCodeRedeemed)
	}
	b.redeemed[c] = true
	b.playerHP = b.player.MaxHP
	b.state.Currency += b.rules.RedeemBonus
	b.observer.Floater(Floater{Text: fmt.Sprintf("+%d GEMS", b.rules.RedeemBonus), Style: StyleHeal, PlayerSide: true})
	b.persist()
	b.observer.StateChanged(b.Snapshot())
	return nil
}

func (b *Battle) reject(err error) error {
	b.observer.Rejected(err)
	return err
}

// startEncounter resets the boss and the player's HP for the current level.
func (b *Battle) startEncounter() {
	b.boss = progression.ScaleBoss(b.state.Level)
	b.player = progression.ScalePlayer(b.state.Level)
	b.bossHP = b.boss.MaxHP
	b.playerHP = b.player.MaxHP
	b.shielded = false
	b.stats = EncounterStats{}
	b.phase = PhasePlayerTurn
}

func (b *Battle) win() {
	b.phase = PhaseVictory
	cleared := b.state.Level
	b.state.Level++
	b.state.Currency += b.rules.VictoryReward
	unlocked := false
	if progression.IsMilestone(b.state.Level) && b.state.Rewards < progression.RewardSlots {
		b.state.Rewards++
		unlocked = true
	}
	b.persist()

	ev := VictoryEvent{
		ClearedLevel:   cleared,
		Reward:         b.rules.VictoryReward,
		RewardUnlocked: unlocked,
		State:          b.state,
		Stats:          b.stats,
	}
	if unlocked {
		b.observer.Floater(Floater{Text: fmt.Sprintf("LVL %d! PHOTO UNLOCKED!", b.state.Level), Style: StyleReward})
	} else {
		b.observer.Floater(Floater{Text: "LEVEL UP!", Style: StyleLevelUp})
	}
	b.logger.Info("boss defeated", "level", cleared, "moves", b.stats.Moves, "reward_unlocked", unlocked)
	b.observer.Victory(ev)

	b.startEncounter()
	b.observer.BossChanged(b.boss)
	b.observer.StateChanged(b.Snapshot())
}

func (b *Battle) endPlayerTurn() {
	b.phase = PhaseEnemyTurn
	b.observer.TurnLocked(true)
	b.observer.StateChanged(b.Snapshot())
	b.pending = b.sched.AfterFunc(b.rules.ThinkDelay, b.enemyAttack)
}

func (b *Battle) enemyAttack() {
	b.pending = nil
	if b.closed || b.phase != PhaseEnemyTurn {
		return
	}
	dmg := progression.EnemyDamage(b.state.Level)
	shielded := b.shielded
	b.shielded = false
	if shielded {
		dmg /= 4
	}
	b.playerHP = max(0, b.playerHP-dmg)
	b.stats.DamageTaken += dmg

	if shielded {
		b.observer.Floater(Floater{Text: fmt.Sprintf("BLOCKED! TOOK %d", dmg), Style: StyleShield, PlayerSide: true})
	} else {
		b.observer.Floater(Floater{Text: fmt.Sprintf("TOOK %d DMG!", dmg), Style: StylePlayerHit, PlayerSide: true})
	}

	if b.playerHP <= 0 {
		b.phase = PhaseDefeatRecovery
		b.stats.Defeats++
		b.observer.StateChanged(b.Snapshot())
		b.observer.Defeat()
		b.pending = b.sched.AfterFunc(b.rules.RecoveryDelay, b.recoverFromDefeat)
		return
	}
	b.resumePlayerTurn()
}

// recoverFromDefeat is the mercy rule: defeat heals and hands the turn back.
func (b *Battle) recoverFromDefeat() {
	b.pending = nil
	if b.closed || b.phase != PhaseDefeatRecovery {
		return
	}
	b.playerHP = b.player.MaxHP
	b.observer.Floater(Floater{Text: "REVIVED", Style: StyleHeal, PlayerSide: true})
	b.resumePlayerTurn()
}

func (b *Battle) resumePlayerTurn() {
	b.phase = PhasePlayerTurn
	b.observer.StateChanged(b.Snapshot())
	b.observer.TurnLocked(false)
}

func (b *Battle) persist() {
	if b.saver == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := b.saver.Save(ctx, b.state); err != nil {
		b.logger.Warn("save progress failed", "error", err, "level", b.state.Level)
	}
}
