package data

import (
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/sales_agent/app/display/internal/conf"
	"github.com/iWorld-y/sales_agent/app/sales_agent/pkg/config"
	"github.com/iWorld-y/sales_agent/app/sales_agent/pkg/storage"
)

type Data struct {
	store storage.Store
}

func NewData(c *conf.Data, logger log.Logger) (*Data, func(), error) {
	sc := config.StorageConfig{Driver: "file", Dir: "."}
	if c != nil && c.Storage != nil {
		sc = *c.Storage
	}
	store, err := storage.New(sc)
	if err != nil {
		return nil, nil, err
	}
	log.NewHelper(logger).Infof("storage driver: %s", storageDriver(sc))

	cleanup := func() {
		log.NewHelper(logger).Info("closing the data resources")
		store.Close()
	}
	return &Data{store: store}, cleanup, nil
}

func storageDriver(sc config.StorageConfig) string {
	if sc.Driver == "" {
		return "file"
	}
	return sc.Driver
}
