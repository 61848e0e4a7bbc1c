package service

import (
	"context"

	"github.com/MKhiriev/go-bundle-keeper/internal/config"
	"github.com/MKhiriev/go-bundle-keeper/models"
)

type appInfoService struct {
	info models.NodeInfo
}

// NewAppInfoService describes the running node. A version is required.
func NewAppInfoService(cfg config.App, keys KeyService) (AppInfoService, error) {
	if cfg.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	own := keys.Own()
	return &appInfoService{
		info: models.NodeInfo{
			Version: cfg.Version,
			Role:    own.Role,
			PeerID:  own.PeerID,
		},
	}, nil
}

func (s *appInfoService) GetAppVersion(context.Context) string {
	return s.info.Version
}

func (s *appInfoService) NodeInfo(context.Context) models.NodeInfo {
	return s.info
}
