// Package fileutil holds small file helpers shared by the SDK loaders and the
// CLI: bounded reads of metadata files and atomic replacement of config files.
package fileutil

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// DefaultPerm is used for files written by xcsdk.
const DefaultPerm os.FileMode = 0o644

// AtomicWriteFile replaces path with data.
//
// The data is written to a temp file in the same directory and renamed over
// path, so an interrupted write leaves any previous file intact. The parent
// directory must already exist.
func AtomicWriteFile(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".xcsdk-atomic-*.tmp")
	if err != nil {
		return errors.Wrapf(err, "creating temp file for %s", path)
	}

	tmpName := tmp.Name()
	renamed := false
	defer func() {
		if !renamed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "writing temp file")
	}
	if err := tmp.Chmod(perm); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "setting file permissions")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "closing temp file")
	}

	if err := os.Rename(tmpName, path); err != nil {
		return errors.Wrapf(err, "replacing %s", path)
	}
	renamed = true

	return nil
}

// AtomicWriteYAML encodes v as YAML with two-space indentation and writes it
// atomically.
func AtomicWriteYAML(path string, v any, perm os.FileMode) (err error) {
	// yaml.v3 panics on values it cannot represent (funcs, channels).
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf("encoding YAML: %v", r)
		}
	}()

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(err, "encoding YAML")
	}
	if err := enc.Close(); err != nil {
		return errors.Wrap(err, "encoding YAML")
	}

	return AtomicWriteFile(path, buf.Bytes(), perm)
}

// AtomicWriteTOML encodes v as TOML and writes it atomically.
func AtomicWriteTOML(path string, v any, perm os.FileMode) error {
	data, err := toml.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "encoding TOML")
	}
	return AtomicWriteFile(path, data, perm)
}
