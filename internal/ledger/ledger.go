// Package ledger anchors document-validation outcomes to a Hyperledger
// Fabric channel, giving clients an immutable audit trail of compliance
// decisions. The ledger is optional: a nil *Ledger is a no-op.
package ledger

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	fabconfig "github.com/hyperledger/fabric-sdk-go/pkg/core/config"
	"github.com/hyperledger/fabric-sdk-go/pkg/fabsdk"
	"github.com/hyperledger/fabric-sdk-go/pkg/gateway"

	appconfig "supplier-management-api-server/config"
)

type Ledger struct {
	gw       *gateway.Gateway
	sdk      *fabsdk.FabricSDK
	contract *gateway.Contract
}

// Initialize connects to the Fabric gateway with the configured identity.
// Returns (nil, nil) when the ledger is disabled.
func Initialize(cfg appconfig.FabricConfig) (*Ledger, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	os.Setenv("DISCOVERY_AS_LOCALHOST", "true")

	fsWallet, err := gateway.NewFileSystemWallet("wallet")
	if err != nil {
		return nil, fmt.Errorf("failed to create wallet: %w", err)
	}

	if err := populateWallet(fsWallet, cfg.OrgName, cfg.UserName, cfg.UserCertPath, cfg.UserKeyDir); err != nil {
		return nil, fmt.Errorf("failed to populate wallet: %w", err)
	}

	sdk, err := fabsdk.New(fabconfig.FromFile(filepath.Clean(cfg.ConnectionProfile)))
	if err != nil {
		return nil, fmt.Errorf("failed to create fabric sdk: %w", err)
	}

	gw, err := gateway.Connect(
		gateway.WithSDK(sdk),
		gateway.WithIdentity(fsWallet, cfg.UserName),
	)
	if err != nil {
		sdk.Close()
		return nil, fmt.Errorf("failed to connect to gateway: %w", err)
	}

	network, err := gw.GetNetwork(cfg.ChannelName)
	if err != nil {
		gw.Close()
		sdk.Close()
		return nil, fmt.Errorf("failed to get network: %w", err)
	}

	return &Ledger{
		gw:       gw,
		sdk:      sdk,
		contract: network.GetContract(cfg.ChaincodeName),
	}, nil
}

func (l *Ledger) Close() {
	if l == nil {
		return
	}
	l.gw.Close()
	l.sdk.Close()
}

// RecordValidation anchors one validation outcome. No-op on a nil ledger.
func (l *Ledger) RecordValidation(supplierID, documentType, outcome string) error {
	if l == nil {
		return nil
	}
	_, err := l.contract.SubmitTransaction(
		"RecordComplianceEvent",
		supplierID,
		documentType,
		outcome,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to submit compliance event: %w", err)
	}
	return nil
}
