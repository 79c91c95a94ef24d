/*
 * Copyright (C) 2026 Nuts community
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 *
 */

package jsonld

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net/url"

	"github.com/nuts-foundation/go-ldsig/core"
	"github.com/nuts-foundation/go-ldsig/jsonld/assets"
	"github.com/nuts-foundation/go-ldsig/jsonld/log"
	"github.com/piprate/json-gold/ld"
)

// ContextsConfig contains config for json-ld document loader
type ContextsConfig struct {
	// RemoteAllowList A list with urls as string which are allowed to request
	RemoteAllowList []string `koanf:"remoteallowlist"`
	// LocalFileMapping contains a list of context URLs mapped to a local file
	LocalFileMapping map[string]string `koanf:"localmapping"`
}

// ErrContextURLNotAllowed is returned when a context is requested that is neither on the allow list nor mapped to a local file.
var ErrContextURLNotAllowed = errors.New("context not on the remoteallowlist")

// embeddedFSDocumentLoader tries to load documents from an embedded filesystem.
type embeddedFSDocumentLoader struct {
	fs         fs.FS
	nextLoader ld.DocumentLoader
}

// filteredDocumentLoader is a ld.DocumentLoader which contains a list of allowed URLs.
// the nextLoader will only be called when the URL is on the AllowedURLs list.
type filteredDocumentLoader struct {
	AllowedURLs []string
	nextLoader  ld.DocumentLoader
}

// NewEmbeddedFSDocumentLoader creates a new embeddedFSDocumentLoader for an embedded filesystem.
func NewEmbeddedFSDocumentLoader(fs embed.FS, nextLoader ld.DocumentLoader) ld.DocumentLoader {
	return &embeddedFSDocumentLoader{
		fs:         fs,
		nextLoader: nextLoader,
	}
}

// NewFilteredLoader accepts a list of allowed urls and a nextLoader and creates a new filteredDocumentLoader
func NewFilteredLoader(allowedURLs []string, nextLoader ld.DocumentLoader) ld.DocumentLoader {
	return &filteredDocumentLoader{AllowedURLs: allowedURLs, nextLoader: nextLoader}
}

// LoadDocument calls the nextLoader if the URL u is on the AllowedURLs list, returns a ld.LoadingDocumentFailed otherwise.
func (h filteredDocumentLoader) LoadDocument(u string) (*ld.RemoteDocument, error) {
	for _, allowedURL := range h.AllowedURLs {
		if allowedURL == u {
			return h.nextLoader.LoadDocument(u)
		}
	}
	log.Logger().
		WithField(core.LogFieldContextURL, u).
		Debug("Blocked loading of context not on the allow list")
	return nil, ld.NewJsonLdError(ld.LoadingDocumentFailed, fmt.Errorf("%w: %s", ErrContextURLNotAllowed, u))
}

type mappedDocumentLoader struct {
	mapping    map[string]string
	nextLoader ld.DocumentLoader
}

// NewMappedDocumentLoader rewrites document request using a mapping and calls the nextLoader
func NewMappedDocumentLoader(mapping map[string]string, nextLoader ld.DocumentLoader) ld.DocumentLoader {
	return &mappedDocumentLoader{
		mapping:    mapping,
		nextLoader: nextLoader,
	}
}

// LoadDocument rewrites u according to the mapping and calls the next loader.
// If u is not found in the mapping, just call the nextLoader with u.
func (m mappedDocumentLoader) LoadDocument(u string) (*ld.RemoteDocument, error) {
	mappedU, ok := m.mapping[u]
	if ok {
		log.Logger().Tracef("Loading context %s from %s", u, mappedU)
		return m.nextLoader.LoadDocument(mappedU)
	}
	return m.nextLoader.LoadDocument(u)
}

// LoadDocument tries to load the document from the embedded filesystem.
// If the document is not a file or could not be found it tries the nextLoader.
func (e embeddedFSDocumentLoader) LoadDocument(path string) (*ld.RemoteDocument, error) {
	parsedURL, err := url.Parse(path)
	if err != nil {
		return nil, ld.NewJsonLdError(ld.LoadingDocumentFailed, fmt.Sprintf("error parsing URL: %s", path))
	}

	protocol := parsedURL.Scheme
	// ignore http(s) documents
	if protocol != "http" && protocol != "https" {
		remoteDoc := &ld.RemoteDocument{}
		remoteDoc.DocumentURL = path
		// If fileNotExists, pass on to the nextLoader
		file, err := e.fs.Open(path)
		if errors.Is(err, fs.ErrNotExist) {
			if e.nextLoader != nil {
				return e.nextLoader.LoadDocument(path)
			}
			return nil, ld.NewJsonLdError(ld.LoadingDocumentFailed, err)
		}
		log.Logger().Tracef("Loading %s from embedded filesystem", path)
		// If an error occurred, fail
		if err != nil {
			return nil, ld.NewJsonLdError(ld.LoadingDocumentFailed, err.Error())
		}
		defer file.Close()
		// If the file points to a directory, fail
		stat, _ := file.Stat()
		if stat.IsDir() {
			return nil, ld.NewJsonLdError(ld.LoadingDocumentFailed, errors.New("document can not be a directory"))
		}
		remoteDoc.Document, err = ld.DocumentFromReader(file)
		if err != nil {
			return nil, err
		}
		return remoteDoc, nil
	}
	if e.nextLoader != nil {
		return e.nextLoader.LoadDocument(path)
	}
	return nil, ld.NewJsonLdError(ld.LoadingDocumentFailed, nil)
}

// SecurityV1Context is the JSON-LD context of the first version of the security vocabulary.
const SecurityV1Context = "https://w3id.org/security/v1"

// SecurityV2Context is the JSON-LD context of the security vocabulary that defines the 2018/2019 signature suites.
const SecurityV2Context = "https://w3id.org/security/v2"

// DefaultContextConfig returns the default list of allowed external resources and a mapping to embedded contexts
func DefaultContextConfig() ContextsConfig {
	return ContextsConfig{
		RemoteAllowList: DefaultAllowList(),
		LocalFileMapping: map[string]string{
			SecurityV1Context: "assets/contexts/security-v1.ldjson",
			SecurityV2Context: "assets/contexts/security-v2.ldjson",
		},
	}
}

// DefaultAllowList returns the default allow list for external contexts
func DefaultAllowList() []string {
	return []string{SecurityV1Context, SecurityV2Context}
}

// NewContextLoader creates a new JSON-LD context loader with the embedded FS as first loader.
// It loads the security contexts from the embedded FS. This ensures the contents cannot be altered.
// If allowUnlistedExternalCalls is set to true, it also loads unlisted external contexts from the internet.
func NewContextLoader(allowUnlistedExternalCalls bool, contexts ContextsConfig) (ld.DocumentLoader, error) {
	// Build the documentLoader chain:
	// Start with rewriting all context urls to their mapped counterparts
	loader := NewMappedDocumentLoader(contexts.LocalFileMapping,
		// Cache all the documents
		ld.NewCachingDocumentLoader(
			// Handle all embedded file system files
			NewEmbeddedFSDocumentLoader(assets.Assets,
				// Last in the chain is the defaultLoader which can resolve
				// local files and remote (via http) context documents
				ld.NewDefaultDocumentLoader(nil))))

	// If unlisted calls are not allowed, filter all calls to the defaultLoader
	if !allowUnlistedExternalCalls {
		// only allow explicitly allowed remote urls and listed local files:
		allowed := make([]string, len(contexts.RemoteAllowList), len(contexts.RemoteAllowList)+len(contexts.LocalFileMapping))
		copy(allowed, contexts.RemoteAllowList)
		for url := range contexts.LocalFileMapping {
			allowed = append(allowed, url)
		}
		loader = NewFilteredLoader(allowed, loader)
	}

	for contextURL, localFile := range contexts.LocalFileMapping {
		// preload mapped files:
		if _, err := loader.LoadDocument(contextURL); err != nil {
			return nil, fmt.Errorf("preloading context %s failed: %w", contextURL, err)
		}
		log.Logger().
			WithField(core.LogFieldContextURL, contextURL).
			Debugf("Loaded context from local file (file=%s)", localFile)
	}

	return loader, nil
}
