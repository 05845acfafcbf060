package upload

import (
	"github.com/grupoclick/clickcheck/internal/config"
)

type Container struct {
	Storage Storage
	Handler *Handler
}

// NewContainer wires the bucket client. A missing S3 configuration is
// logged, not fatal: the rest of the API works without uploads.
func NewContainer() *Container {
	storage, err := NewStorage()
	if err != nil {
		config.Logger().WithError(err).Warn("object storage not configured, uploads disabled")
		storage = nil
	}

	return &Container{
		Storage: storage,
		Handler: NewHandler(storage),
	}
}
