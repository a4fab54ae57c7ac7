package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/plinkolabs/plinko/internal/confidential"
)

// loadOrCreateKeyPair returns the score keypair from the key file,
// generating and persisting one on first use. The private scalar stays
// on this machine; only the public point is ever submitted.
func loadOrCreateKeyPair() (*confidential.KeyPair, error) {
	data, err := os.ReadFile(cfg.KeyFile)
	if err == nil {
		keys, err := confidential.KeyPairFromPrivate(data)
		if err != nil {
			return nil, fmt.Errorf("corrupt key file %s: %w", cfg.KeyFile, err)
		}
		return keys, nil
	}
	if !os.IsNotExist(err) {
		return nil, err
	}

	keys := confidential.NewKeyPair()
	private, err := keys.MarshalPrivateKey()
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(cfg.KeyFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}
	if err := os.WriteFile(cfg.KeyFile, private, 0600); err != nil {
		return nil, err
	}

	return keys, nil
}
