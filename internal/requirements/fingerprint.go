package requirements

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"os"
	"path/filepath"
	"strings"

	"github.com/reqpin/reqpin/internal/errors"
	"github.com/reqpin/reqpin/internal/util"
)

// FingerprintPrefix tags fingerprints with the digest algorithm, so the
// algorithm can change without ambiguity in already generated lock files.
const FingerprintPrefix = "sha256:"

// Fingerprint computes the content fingerprint of the given constraints
// source: a single SHA-256 digest over the file's raw bytes followed by the
// bytes of every `-r` include, depth first, in the order the directives
// appear. The fingerprint changes whenever the source or any transitively
// included file changes.
func Fingerprint(sourcePath string) (string, error) {
	digest := sha256.New()

	if err := hashFile(digest, sourcePath, nil); err != nil {
		return "", err
	}

	return FingerprintPrefix + hex.EncodeToString(digest.Sum(nil)), nil
}

// hashFile feeds the file at the given path and its includes into the digest.
// The chain holds the paths currently being traversed, so a circular include
// is reported instead of recursing forever.
func hashFile(digest hash.Hash, path string, chain []string) error {
	path = util.CleanPath(path)

	if util.ListContainsElement(chain, path) {
		return errors.New(&IncludeCycleError{Chain: append(chain, path)})
	}

	chain = append(chain, path)

	content, err := os.ReadFile(path)
	if err != nil {
		return errors.New(err)
	}

	if _, err := digest.Write(content); err != nil {
		return errors.New(err)
	}

	for _, line := range strings.Split(string(content), "\n") {
		target := parseIncludeDirective(line)
		if target == "" {
			continue
		}

		if err := hashFile(digest, resolveIncludePath(filepath.Dir(path), target), chain); err != nil {
			return err
		}
	}

	return nil
}
