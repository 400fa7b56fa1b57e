package sqlite

import (
	"github.com/bornholm/go-assetgen/cache"
	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
)

const Type cache.Type = "sqlite"

func init() {
	cache.Register(Type, CreateBackendFromOptions)
}

type Options struct {
	Path string `mapstructure:"path" validate:"required"`
}

func CreateBackendFromOptions(options any) (cache.Backend, error) {
	opts := Options{}

	if err := mapstructure.Decode(options, &opts); err != nil {
		return nil, errors.Wrapf(err, "could not parse '%s' cache options", Type)
	}

	validate := validator.New()
	if err := validate.Struct(&opts); err != nil {
		return nil, errors.Wrap(err, "could not validate sqlite cache options")
	}

	return NewBackend(opts.Path), nil
}
