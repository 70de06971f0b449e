// Package genesis loads the genesis configuration: the engine parameters and
// the accounts that exist before the first epoch.
package genesis

import (
	"encoding/json"
	"fmt"
	"os"

	bankmem "github.com/tontinelabs/tontine/bank/memory"
	idmem "github.com/tontinelabs/tontine/identity/memory"
	"github.com/tontinelabs/tontine/ledger"
	"github.com/tontinelabs/tontine/types"
)

// Account is one pre-funded account with its bound agent id.
type Account struct {
	Address types.Address
	Agent   types.AgentID
	Balance types.Amount
}

// GenesisConfig holds everything needed to boot a fresh network.
type GenesisConfig struct {
	GenesisTime   uint64
	EpochDuration uint64
	EpochFee      types.Amount
	FeeShareBps   uint64
	FeeRecipient  types.Address
	Accounts      []Account
}

// configJSON is the intermediate struct for JSON unmarshaling.
type configJSON struct {
	GenesisTime   uint64        `json:"GENESIS_TIME"`
	EpochDuration uint64        `json:"EPOCH_DURATION"`
	EpochFee      uint64        `json:"EPOCH_FEE"`
	FeeShareBps   uint64        `json:"FEE_SHARE_BPS"`
	FeeRecipient  string        `json:"FEE_RECIPIENT"`
	Accounts      []accountJSON `json:"ACCOUNTS"`
}

type accountJSON struct {
	Address string `json:"address"`
	Agent   string `json:"agent"`
	Balance uint64 `json:"balance"`
}

// LoadFromFile loads a GenesisConfig from a JSON file.
func LoadFromFile(path string) (*GenesisConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading genesis file: %w", err)
	}
	return LoadFromJSON(data)
}

// LoadFromJSON loads a GenesisConfig from JSON bytes.
func LoadFromJSON(data []byte) (*GenesisConfig, error) {
	var raw configJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing genesis JSON: %w", err)
	}

	recipient, err := types.ParseAddress(raw.FeeRecipient)
	if err != nil {
		return nil, fmt.Errorf("parsing fee recipient: %w", err)
	}

	config := &GenesisConfig{
		GenesisTime:   raw.GenesisTime,
		EpochDuration: raw.EpochDuration,
		EpochFee:      types.Amount(raw.EpochFee),
		FeeShareBps:   raw.FeeShareBps,
		FeeRecipient:  recipient,
		Accounts:      make([]Account, len(raw.Accounts)),
	}

	for i, acct := range raw.Accounts {
		addr, err := types.ParseAddress(acct.Address)
		if err != nil {
			return nil, fmt.Errorf("parsing account %d address: %w", i, err)
		}
		agent, err := types.ParseAgentID(acct.Agent)
		if err != nil {
			return nil, fmt.Errorf("parsing account %d agent: %w", i, err)
		}
		config.Accounts[i] = Account{
			Address: addr,
			Agent:   agent,
			Balance: types.Amount(acct.Balance),
		}
	}

	if err := config.Params().Validate(); err != nil {
		return nil, fmt.Errorf("invalid genesis params: %w", err)
	}
	return config, nil
}

// Params converts the genesis configuration into engine parameters.
func (c *GenesisConfig) Params() ledger.Params {
	return ledger.Params{
		GenesisTime:   c.GenesisTime,
		EpochDuration: c.EpochDuration,
		EpochFee:      c.EpochFee,
		FeeShareBps:   c.FeeShareBps,
		FeeRecipient:  c.FeeRecipient,
	}
}

// Bootstrap builds the bank and identity registry with every genesis account
// funded and bound.
func (c *GenesisConfig) Bootstrap() (*bankmem.Bank, *idmem.Registry, error) {
	bank := bankmem.New()
	registry := idmem.New()

	for i, acct := range c.Accounts {
		if err := registry.Bind(acct.Agent, acct.Address); err != nil {
			return nil, nil, fmt.Errorf("binding account %d: %w", i, err)
		}
		bank.Mint(acct.Address, acct.Balance)
	}
	return bank, registry, nil
}
