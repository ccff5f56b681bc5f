package battle

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Rules are the tunable economy and pacing constants. Move costs and damage
// formulas are fixed; see Move.Cost and the progression package.
type Rules struct {
	ThinkDelay    time.Duration `yaml:"think_delay"`
	RecoveryDelay time.Duration `yaml:"recovery_delay"`
	VictoryReward int           `yaml:"victory_reward"`
	ShopPrice     int           `yaml:"shop_price"`
	RedeemBonus   int           `yaml:"redeem_bonus"`
	RedeemCodes   []string      `yaml:"redeem_codes"`
}

// DefaultRules returns the stock ruleset.
func DefaultRules() Rules {
	return Rules{
		ThinkDelay:    time.Second,
		RecoveryDelay: 1500 * time.Millisecond,
		VictoryReward: 50,
		ShopPrice:     20,
		RedeemBonus:   100,
		RedeemCodes:   []string{"WELCOME", "SECONDWIND"},
	}
}

// Validate reports the first out-of-range field.
func (r Rules) Validate() error {
	switch {
	case r.ThinkDelay < 0:
		return fmt.Errorf("think_delay must not be negative, got %s", r.ThinkDelay)
	case r.RecoveryDelay < 0:
		return fmt.Errorf("recovery_delay must not be negative, got %s", r.RecoveryDelay)
	case r.VictoryReward < 0:
		return fmt.Errorf("victory_reward must not be negative, got %d", r.VictoryReward)
	case r.ShopPrice < 0:
		return fmt.Errorf("shop_price must not be negative, got %d", r.ShopPrice)
	case r.RedeemBonus < 0:
		return fmt.Errorf("redeem_bonus must not be negative, got %d", r.RedeemBonus)
	}
	for _, c := range r.RedeemCodes {
		if normalizeCode(c) == "" {
			return errors.New("redeem_codes must not contain blank entries")
		}
	}
	return nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
