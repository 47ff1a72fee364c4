package gacha

import (
	"fmt"

	"gachabot/domain/entities"
)

// Redeem checks rule against balance and returns the balance after the debit
// and the role to grant, if any. On failure the input balance is untouched.
func Redeem(rule *entities.ExchangeRule, balance entities.TokenBalance) (entities.TokenBalance, string, error) {
	next, err := balance.Debit(rule.Price)
	if err != nil {
		return nil, "", fmt.Errorf("exchange %d needs %s: %w", rule.ExchangeID, rule.Price, err)
	}
	role := ""
	if rule.HasRole() {
		role = *rule.RoleOnRedeem
	}
	return next, role, nil
}
