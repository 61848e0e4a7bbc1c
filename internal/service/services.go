package service

import (
	"github.com/MKhiriev/go-bundle-keeper/internal/adapter"
	"github.com/MKhiriev/go-bundle-keeper/internal/config"
	"github.com/MKhiriev/go-bundle-keeper/internal/crypto"
	"github.com/MKhiriev/go-bundle-keeper/internal/metrics"
	"github.com/MKhiriev/go-bundle-keeper/internal/store"
)

// Services wires the services of one node.
type Services struct {
	Bundles   BundleService
	ADUs      ADUService
	Router    RouterService
	Routes    RouteService
	Keys      KeyService
	Inventory InventoryService
	Auth      AuthService
	AppInfo   AppInfoService

	TransferJob *TransferJob
	DeliveryJob Job
}

// NewServices builds every service on top of storages. transport may be nil
// on a node that only serves the HTTP API.
func NewServices(
	storages *store.Storages,
	engine crypto.Engine,
	cfg config.StructuredConfig,
	transport adapter.Transport,
	m *metrics.Metrics,
) (*Services, error) {
	keys := NewKeyService(storages.PeerKeys, engine)
	routes := NewRouteService(storages.Routes)
	router := NewRouterService(storages.ADUs, routes, adapter.NewHTTPDeliverer(cfg.Adapter.RequestTimeout), m)
	bundles := NewBundleService(storages, engine, keys, router, cfg.Window, m)

	appInfo, err := NewAppInfoService(cfg.App, keys)
	if err != nil {
		return nil, err
	}

	return &Services{
		Bundles:     bundles,
		ADUs:        NewADUService(storages.ADUs, m),
		Router:      router,
		Routes:      routes,
		Keys:        keys,
		Inventory:   NewInventoryService(storages.TransportPeers, bundles),
		Auth:        NewAuthService(cfg.App),
		AppInfo:     appInfo,
		TransferJob: NewTransferJob(bundles, keys, router, transport),
		DeliveryJob: NewDeliveryJob(router),
	}, nil
}
