// Package preference stores small client preferences, such as the remembered
// session, as files under a configured directory.
package preference

import (
	"os"
	"regexp"

	"journal/config"
	"journal/internal/domain/service"
	"journal/internal/errors"

	"github.com/peterbourgon/diskv/v3"
)

const cacheSizeMax = 64 * 1024

var validKey = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

type diskvStore struct {
	d *diskv.Diskv
}

// NewDiskvStore opens the store under cfg.Preferences.Dir.
func NewDiskvStore(cfg *config.Config) service.PreferenceStore {
	return NewDiskvStoreAt(cfg.Preferences.Dir)
}

// NewDiskvStoreAt opens the store rooted at dir. Keys map to flat file names.
func NewDiskvStoreAt(dir string) service.PreferenceStore {
	return &diskvStore{d: diskv.New(diskv.Options{
		BasePath:     dir,
		CacheSizeMax: cacheSizeMax,
		FilePerm:     0o600,
		PathPerm:     0o700,
	})}
}

func (s *diskvStore) Get(key string) (string, bool, error) {
	if err := checkKey(key); err != nil {
		return "", false, err
	}
	if !s.d.Has(key) {
		return "", false, nil
	}

	val, err := s.d.Read(key)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}

		return "", false, errors.Wrapf(err, "read preference %s", key)
	}

	return string(val), true, nil
}

func (s *diskvStore) Set(key, value string) error {
	if err := checkKey(key); err != nil {
		return err
	}

	return errors.Wrapf(s.d.Write(key, []byte(value)), "write preference %s", key)
}

func (s *diskvStore) Delete(key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if !s.d.Has(key) {
		return nil
	}

	if err := s.d.Erase(key); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "erase preference %s", key)
	}

	return nil
}

func checkKey(key string) error {
	if !validKey.MatchString(key) {
		return errors.Errorf("invalid preference key %q", key)
	}

	return nil
}
