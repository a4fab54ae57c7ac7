package redis

import (
	"fmt"

	"github.com/plinkolabs/plinko/internal/model"
)

// Key prefix for all ledger data
const keyPrefix = "plinko"

// accountKey returns the Redis key for an Account
func accountKey(addr model.Address) string {
	return fmt.Sprintf("%s:account:%s", keyPrefix, addr)
}

// registryKey returns the Redis key for the append-only registry list
func registryKey() string {
	return fmt.Sprintf("%s:registry", keyPrefix)
}

// registryMembersKey returns the Redis key for the registry membership
// set, kept alongside the list so listing checks are O(1)
func registryMembersKey() string {
	return fmt.Sprintf("%s:registry:members", keyPrefix)
}

// ownerKey returns the Redis key for the owner address
func ownerKey() string {
	return fmt.Sprintf("%s:owner", keyPrefix)
}

// balanceKey returns the Redis key for the treasury balance
func balanceKey() string {
	return fmt.Sprintf("%s:balance", keyPrefix)
}
