// Package syncpolicy decides whether lifecycle operations synchronize with the ledger.
package syncpolicy

import (
	"strings"

	"ecopickup/internal/config"
)

// Policy is the ledger synchronization predicate.
type Policy struct {
	missing []string
}

// New evaluates the ledger settings once.
func New(cfg config.Ledger) Policy {
	var missing []string
	for _, f := range []struct {
		env, value string
	}{
		{"BLOCKCHAIN_RPC_URL", cfg.RPCURL},
		{"BLOCKCHAIN_PRIVATE_KEY", cfg.PrivateKey},
		{"PICKUP_MANAGER_ADDRESS", cfg.PickupManagerAddress},
		{"GREEN_REWARD_ADDRESS", cfg.GreenRewardAddress},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.env)
		}
	}
	return Policy{missing: missing}
}

// Disabled returns a policy that never synchronizes.
func Disabled() Policy {
	return Policy{missing: []string{"ledger"}}
}

// Active reports whether every ledger setting is present.
func (p Policy) Active() bool {
	return len(p.missing) == 0
}

// Missing lists the settings that keep sync disabled.
func (p Policy) Missing() []string {
	return append([]string(nil), p.missing...)
}
