package keyring

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/zalando/go-keyring"
)

const (
	service    = "habitcoach"
	walletUser = "wallet"
)

var (
	// ErrNotFound is returned when no wallet has been paired.
	ErrNotFound = errors.New("no paired wallet in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring cannot be reached.
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// GetWallet returns the paired wallet address.
func GetWallet() (string, error) {
	addr, err := keyring.Get(service, walletUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return addr, nil
}

// SetWallet pairs a wallet address. The address is stored in checksummed form.
func SetWallet(addr string) error {
	if !common.IsHexAddress(addr) {
		return fmt.Errorf("invalid wallet address %q", addr)
	}
	if err := keyring.Set(service, walletUser, common.HexToAddress(addr).Hex()); err != nil {
		return fmt.Errorf("store wallet in keyring: %w", err)
	}
	return nil
}

// DeleteWallet removes the paired wallet.
func DeleteWallet() error {
	err := keyring.Delete(service, walletUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete wallet from keyring: %w", err)
	}
	return nil
}
