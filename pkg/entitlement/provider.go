// Package entitlement implements the premium subscription gate: a static
// catalog, pluggable providers and a reactive Subscription.
package entitlement

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/ideastash/pkg/core"
	"github.com/aretw0/ideastash/pkg/typed"
)

// Provider kinds selectable at composition time.
const (
	KindLocal = "local"
	KindStub  = "stub"
)

// Provider is the entitlement backend.
type Provider interface {
	// Offerings returns the catalog. It always succeeds.
	Offerings(ctx context.Context) (Offering, error)
	// Purchase buys pkg. false with a nil error means the purchase was declined.
	Purchase(ctx context.Context, pkg Package) (bool, error)
	// Restore reports whether a prior purchase exists.
	Restore(ctx context.Context) (bool, error)
	// IsEntitled reports whether the premium entitlement is active.
	IsEntitled(ctx context.Context) (bool, error)
	// CustomerInfo returns the active entitlements.
	CustomerInfo(ctx context.Context) (CustomerInfo, error)
}

// NewProvider builds the provider of the given kind. store is only used by
// the local provider.
func NewProvider(kind string, store core.Store, logger *slog.Logger) (Provider, error) {
	switch kind {
	case KindLocal, "":
		return NewLocalProvider(store, logger), nil
	case KindStub:
		return NewStubProvider(), nil
	}
	return nil, fmt.Errorf("unknown entitlement provider %q", kind)
}

// LocalProvider is a working mock: purchases succeed and persist a flag.
type LocalProvider struct {
	flag    *typed.Document[bool]
	catalog Offering
	logger  *slog.Logger
}

// NewLocalProvider creates a provider persisting the flag under core.KeyProStatus.
func NewLocalProvider(store core.Store, logger *slog.Logger) *LocalProvider {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &LocalProvider{
		flag:    typed.NewDocument[bool](store, core.KeyProStatus),
		catalog: DefaultCatalog(),
		logger:  logger,
	}
}

func (p *LocalProvider) Offerings(ctx context.Context) (Offering, error) {
	return DefaultCatalog(), nil
}

func (p *LocalProvider) Purchase(ctx context.Context, pkg Package) (bool, error) {
	if _, ok := p.catalog.Package(pkg.Identifier); !ok {
		return false, &PurchaseError{Package: pkg.Identifier, Err: ErrUnknownPackage}
	}
	ctx = context.WithValue(ctx, core.ChangeReasonKey, "feat(pro): purchase "+pkg.Identifier)
	if err := p.flag.Save(ctx, true); err != nil {
		return false, &PurchaseError{Package: pkg.Identifier, Err: err}
	}
	p.logger.Info("purchase completed", "package", pkg.Identifier)
	return true, nil
}

func (p *LocalProvider) Restore(ctx context.Context) (bool, error) {
	pro, err := p.read(ctx)
	if err != nil {
		return false, &RestoreError{Err: err}
	}
	return pro, nil
}

func (p *LocalProvider) IsEntitled(ctx context.Context) (bool, error) {
	return p.read(ctx)
}

func (p *LocalProvider) CustomerInfo(ctx context.Context) (CustomerInfo, error) {
	pro, err := p.read(ctx)
	if err != nil {
		return CustomerInfo{}, err
	}
	return customerInfo(pro), nil
}

func (p *LocalProvider) read(ctx context.Context) (bool, error) {
	pro, _, err := p.flag.Load(ctx)
	return pro, err
}

// StubProvider is the placeholder for a real store integration: it shows the
// catalog and declines everything. It holds no state.
type StubProvider struct{}

// NewStubProvider creates a stub provider.
func NewStubProvider() *StubProvider { return &StubProvider{} }

func (StubProvider) Offerings(ctx context.Context) (Offering, error) {
	return DefaultCatalog(), nil
}

// Purchase declines: purchases are demo only.
func (StubProvider) Purchase(ctx context.Context, pkg Package) (bool, error) {
	return false, nil
}

func (StubProvider) Restore(ctx context.Context) (bool, error) { return false, nil }

func (StubProvider) IsEntitled(ctx context.Context) (bool, error) { return false, nil }

func (StubProvider) CustomerInfo(ctx context.Context) (CustomerInfo, error) {
	return customerInfo(false), nil
}

var (
	_ Provider = (*LocalProvider)(nil)
	_ Provider = (*StubProvider)(nil)
)
