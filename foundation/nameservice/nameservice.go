// Package nameservice reads a folder of wallet key files and provides name
// lookup for the ledger addresses they own.
package nameservice

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/ardanlabs/ledger/foundation/blockchain/wallet"
)

// NameService maintains a map of addresses for name lookup.
type NameService struct {
	names     map[string]string // address -> name
	addresses map[string]string // name -> address
}

// New constructs a name service with an entry for every <name>.ecdsa file
// under root. A missing root gives an empty name service.
func New(root string) (*NameService, error) {
	ns := NameService{
		names:     make(map[string]string),
		addresses: make(map[string]string),
	}

	fn := func(fileName string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walkdir failure: %w", err)
		}

		if d.IsDir() || filepath.Ext(fileName) != ".ecdsa" {
			return nil
		}

		w, err := wallet.Load(fileName)
		if err != nil {
			return err
		}

		name := strings.TrimSuffix(filepath.Base(fileName), ".ecdsa")
		address := w.Address()

		ns.names[address] = name
		ns.addresses[name] = address

		return nil
	}

	if err := filepath.WalkDir(root, fn); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &ns, nil
		}
		return nil, fmt.Errorf("walking directory: %w", err)
	}

	return &ns, nil
}

// Lookup returns the name for the specified address, or the address itself
// when it has no name.
func (ns *NameService) Lookup(address string) string {
	name, exists := ns.names[address]
	if !exists {
		return address
	}
	return name
}

// Resolve returns the address for the specified name. Anything that isn't a
// known name is returned unchanged so raw addresses pass through.
func (ns *NameService) Resolve(name string) string {
	address, exists := ns.addresses[name]
	if !exists {
		return name
	}
	return address
}

// Copy returns a copy of the map of addresses and names.
func (ns *NameService) Copy() map[string]string {
	cpy := make(map[string]string, len(ns.names))
	for address, name := range ns.names {
		cpy[address] = name
	}
	return cpy
}
