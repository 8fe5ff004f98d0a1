package cli

import (
	"context"
	"fmt"
	"os"

	configfile "github.com/custodia-labs/firetap-cli/internal/adapters/driven/config/file"
	statefile "github.com/custodia-labs/firetap-cli/internal/adapters/driven/state/file"
	statesqlite "github.com/custodia-labs/firetap-cli/internal/adapters/driven/state/sqlite"
	"github.com/custodia-labs/firetap-cli/internal/connectors/firestore"
	"github.com/custodia-labs/firetap-cli/internal/core/ports/driven"
	"github.com/custodia-labs/firetap-cli/internal/core/services"
	"github.com/custodia-labs/firetap-cli/internal/singer"
)

// runtime bundles the adapters wired up for one command invocation.
type runtime struct {
	coordinator *services.RunCoordinator
	fetcher     driven.DocumentFetcher
	stateStore  driven.StateStore
}

// newRuntime loads the configuration and connects the adapters. The caller
// must call close when done.
func newRuntime(ctx context.Context) (*runtime, error) {
	cfg, err := configfile.Load(configPath)
	if err != nil {
		return nil, err
	}

	fetcher, err := firestore.NewClient(ctx, firestore.ClientConfig{
		ProjectID: cfg.ProjectID,
		Credentials: firestore.Credentials{
			Path:   cfg.CredentialsPath,
			JSON:   cfg.CredentialsJSON,
			Base64: cfg.CredentialsBase64,
		},
	})
	if err != nil {
		return nil, err
	}

	stateStore, err := newStateStore(cfg)
	if err != nil {
		fetcher.Close()
		return nil, err
	}

	sink := singer.NewWriter(os.Stdout)
	return &runtime{
		coordinator: services.NewRunCoordinator(cfg.Specs(), cfg.BatchSize, fetcher, stateStore, sink),
		fetcher:     fetcher,
		stateStore:  stateStore,
	}, nil
}

func newStateStore(cfg *configfile.Config) (driven.StateStore, error) {
	switch cfg.StateBackend {
	case configfile.BackendSQLite:
		return statesqlite.NewStore(cfg.StatePath)
	default:
		return statefile.NewStore(cfg.StatePath)
	}
}

func (r *runtime) close() {
	if err := r.stateStore.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "closing state store: %v\n", err)
	}
	if err := r.fetcher.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "closing firestore client: %v\n", err)
	}
}
