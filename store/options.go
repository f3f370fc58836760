package store

import "go.uber.org/zap"

// settings are shared by every flat-file store.
type settings struct {
	fs          FileSystem
	lockFactory FileLockFactory
	logger      *zap.Logger
}

func newSettings(opts []Option) settings {
	s := settings{
		fs:          OSFileSystem{},
		lockFactory: FlockFactory{},
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Option configures a store.
type Option func(*settings)

// WithFileSystem sets a custom FileSystem implementation
func WithFileSystem(fs FileSystem) Option {
	return func(s *settings) {
		s.fs = fs
	}
}

// WithFileLockFactory sets a custom FileLockFactory implementation
func WithFileLockFactory(factory FileLockFactory) Option {
	return func(s *settings) {
		s.lockFactory = factory
	}
}

// WithLogger sets the store logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}
