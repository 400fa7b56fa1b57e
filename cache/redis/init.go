package redis

import (
	"github.com/bornholm/go-assetgen/cache"
	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const Type cache.Type = "redis"

func init() {
	cache.Register(Type, CreateBackendFromOptions)
}

type Options struct {
	Address  string `mapstructure:"address" validate:"required"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"min=0"`
	// Prefix is prepended to every key
	Prefix string `mapstructure:"prefix"`
}

func CreateBackendFromOptions(options any) (cache.Backend, error) {
	opts := Options{}

	if err := mapstructure.Decode(options, &opts); err != nil {
		return nil, errors.Wrapf(err, "could not parse '%s' cache options", Type)
	}

	validate := validator.New()
	if err := validate.Struct(&opts); err != nil {
		return nil, errors.Wrap(err, "could not validate redis cache options")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     opts.Address,
		Password: opts.Password,
		DB:       opts.DB,
	})

	return NewBackend(client, opts.Prefix), nil
}
