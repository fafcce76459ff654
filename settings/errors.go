package settings

import "github.com/originals-sdk/sdk/errors"

func invalidNetwork(n Network) error {
	return errors.NewConfigurationError("invalid network %q: must be one of mainnet, regtest, signet, testnet", n)
}

func invalidKeyType(k KeyType) error {
	return errors.NewConfigurationError("invalid default key type %q: must be one of Ed25519, ES256K, ES256", k)
}
