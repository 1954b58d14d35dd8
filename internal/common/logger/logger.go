package logger

import (
	"go.uber.org/zap"
)

// NewNamed creates a zap logger for the given environment, named after the
// service. Development gets console output, everything else JSON.
func NewNamed(env, service string) (*zap.Logger, error) {
	var (
		log *zap.Logger
		err error
	)
	if env == "development" {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	return log.Named(service), nil
}
