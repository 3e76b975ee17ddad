package repository

import (
	"context"
	"encoding/xml"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.trai.ch/drift/internal/core/domain"
	"go.trai.ch/drift/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

const (
	metadataFileName  = "maven-metadata.xml"
	httpClientTimeout = 30 * time.Second
)

var _ ports.DependencyResolver = (*Maven)(nil)

// Maven resolves against the maven-metadata.xml listing of a Maven repository.
// Listings are fetched once per module; concurrent lookups share a request.
type Maven struct {
	baseURL    string
	httpClient *http.Client

	group singleflight.Group
	mu    sync.RWMutex
	memo  map[domain.ModuleIdentifier][]domain.Version
}

// NewMaven returns a resolver for the repository at baseURL.
func NewMaven(baseURL string) *Maven {
	return NewMavenWithClient(baseURL, &http.Client{Timeout: httpClientTimeout})
}

// NewMavenWithClient returns a resolver using the given HTTP client.
func NewMavenWithClient(baseURL string, client *http.Client) *Maven {
	return &Maven{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: client,
		memo:       make(map[domain.ModuleIdentifier][]domain.Version),
	}
}

type mavenMetadata struct {
	XMLName    xml.Name `xml:"metadata"`
	Versioning struct {
		Versions []string `xml:"versions>version"`
	} `xml:"versioning"`
}

// Resolve returns the highest listed version matched by dep.
func (m *Maven) Resolve(ctx context.Context, dep domain.Dependency) ([]domain.Resolution, error) {
	published, err := m.versions(ctx, dep.Module())
	if err != nil {
		return nil, err
	}
	return resolveFrom(dep, published)
}

func (m *Maven) versions(ctx context.Context, module domain.ModuleIdentifier) ([]domain.Version, error) {
	m.mu.RLock()
	cached, ok := m.memo[module]
	m.mu.RUnlock()
	if ok {
		return cached, nil
	}

	res, err, _ := m.group.Do(module.String(), func() (any, error) {
		versions, err := m.fetch(ctx, module)
		if err != nil {
			return nil, err
		}
		m.mu.Lock()
		m.memo[module] = versions
		m.mu.Unlock()
		return versions, nil
	})
	if err != nil {
		return nil, err
	}
	return res.([]domain.Version), nil
}

func (m *Maven) metadataURL(module domain.ModuleIdentifier) string {
	return m.baseURL + "/" + strings.ReplaceAll(module.Group, ".", "/") + "/" + module.Name + "/" + metadataFileName
}

func (m *Maven) fetch(ctx context.Context, module domain.ModuleIdentifier) ([]domain.Version, error) {
	url := m.metadataURL(module)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrRepositoryRequestFailed.Error())
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrRepositoryRequestFailed.Error()), "url", url)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusNotFound {
		notFoundErr := zerr.With(domain.ErrModuleNotFound, "module", module.String())
		return nil, zerr.With(notFoundErr, "repository", m.baseURL)
	}
	if resp.StatusCode != http.StatusOK {
		apiErr := zerr.With(domain.ErrRepositoryRequestFailed, "status_code", resp.StatusCode)
		return nil, zerr.With(apiErr, "url", url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrRepositoryRequestFailed.Error())
	}

	var meta mavenMetadata
	if err := xml.Unmarshal(body, &meta); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrRepositoryParseFailed.Error()), "url", url)
	}
	return parseVersions(meta.Versioning.Versions), nil
}
