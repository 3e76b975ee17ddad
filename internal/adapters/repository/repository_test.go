package repository_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/drift/internal/adapters/repository"
	"go.trai.ch/drift/internal/core/domain"
	"go.trai.ch/drift/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func versions(raw ...string) []domain.Version {
	out := make([]domain.Version, 0, len(raw))
	for _, s := range raw {
		out = append(out, domain.ParseVersion(s))
	}
	return out
}

func TestSelect(t *testing.T) {
	published := versions("1.0", "1.1", "1.10", "2.0", "2.1-RC1", "2.1")

	tests := []struct {
		probe    string
		expected string
		found    bool
	}{
		{probe: "+", expected: "2.1", found: true},
		{probe: "", expected: "2.1", found: true},
		{probe: "1.+", expected: "1.10", found: true},
		{probe: "1.1", expected: "1.1", found: true},
		{probe: "1.2", found: false},
		{probe: "3.+", found: false},
		{probe: "2.1-rc1", expected: "2.1-RC1", found: true},
	}

	for _, tt := range tests {
		t.Run(tt.probe, func(t *testing.T) {
			v, ok := repository.Select(domain.ParseVersion(tt.probe), published)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.expected, v.String())
			}
		})
	}
}

func TestCatalog_Resolve(t *testing.T) {
	catalog, err := repository.LoadCatalog(filepath.Join("testdata", "catalog.yaml"))
	require.NoError(t, err)

	ctx := context.Background()

	results, err := catalog.Resolve(ctx, domain.NewDependency("org.example", "plugin", domain.ParseVersion("+")))
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "org.example:plugin:0.2", results[0].String())

	_, err = catalog.Resolve(ctx, domain.NewDependency("org.example", "lib", domain.ParseVersion("3.+")))
	require.Error(t, err)
	zErr, ok := err.(*zerr.Error)
	require.True(t, ok)
	assert.Equal(t, domain.ErrNoMatchingVersion.Error(), zErr.Message())
	assert.Equal(t, "3.+", zErr.Metadata()["version"])

	_, err = catalog.Resolve(ctx, domain.NewDependency("org.other", "lib", domain.ParseVersion("+")))
	require.Error(t, err)
	assert.Equal(t, domain.ErrModuleNotFound.Error(), err.Error())
}

func TestCatalog_InvalidModule(t *testing.T) {
	_, err := repository.NewCatalog(map[string][]string{"not-a-module": {"1.0"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrInvalidNotation.Error())
}

const metadata = `<?xml version="1.0" encoding="UTF-8"?>
<metadata>
  <groupId>org.example</groupId>
  <artifactId>lib</artifactId>
  <versioning>
    <latest>2.0</latest>
    <versions>
      <version>1.0</version>
      <version>1.1</version>
      <version>2.0</version>
    </versions>
  </versioning>
</metadata>`

func TestMaven_Resolve(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		switch r.URL.Path {
		case "/repo/org/example/lib/maven-metadata.xml":
			_, _ = w.Write([]byte(metadata))
		case "/repo/org/example/broken/maven-metadata.xml":
			_, _ = w.Write([]byte("<metadata"))
		case "/repo/org/example/down/maven-metadata.xml":
			w.WriteHeader(http.StatusBadGateway)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	m := repository.NewMavenWithClient(srv.URL+"/repo/", srv.Client())
	ctx := context.Background()

	t.Run("highest match", func(t *testing.T) {
		results, err := m.Resolve(ctx, domain.NewDependency("org.example", "lib", domain.ParseVersion("1.+")))
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "org.example:lib:1.1", results[0].String())
	})

	t.Run("memoized", func(t *testing.T) {
		before := requests.Load()
		_, err := m.Resolve(ctx, domain.NewDependency("org.example", "lib", domain.ParseVersion("+")))
		require.NoError(t, err)
		assert.Equal(t, before, requests.Load())
	})

	t.Run("not found", func(t *testing.T) {
		_, err := m.Resolve(ctx, domain.NewDependency("org.example", "missing", domain.ParseVersion("+")))
		require.Error(t, err)
		zErr, ok := err.(*zerr.Error)
		require.True(t, ok)
		assert.Equal(t, domain.ErrModuleNotFound.Error(), zErr.Message())
		assert.Equal(t, "org.example:missing", zErr.Metadata()["module"])
	})

	t.Run("parse failure", func(t *testing.T) {
		_, err := m.Resolve(ctx, domain.NewDependency("org.example", "broken", domain.ParseVersion("+")))
		require.Error(t, err)
		assert.Contains(t, err.Error(), domain.ErrRepositoryParseFailed.Error())
	})

	t.Run("server error", func(t *testing.T) {
		_, err := m.Resolve(ctx, domain.NewDependency("org.example", "down", domain.ParseVersion("+")))
		require.Error(t, err)
		zErr, ok := err.(*zerr.Error)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadGateway, zErr.Metadata()["status_code"])
	})
}

func TestMaven_SharedRequest(t *testing.T) {
	var requests atomic.Int32
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		<-release
		_, _ = w.Write([]byte(metadata))
	}))
	defer srv.Close()

	m := repository.NewMavenWithClient(srv.URL, srv.Client())

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := m.Resolve(context.Background(), domain.NewDependency("org.example", "lib", domain.ParseVersion("+")))
			assert.NoError(t, err)
		}()
	}

	require.Eventually(t, func() bool { return requests.Load() > 0 }, time.Second, time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), requests.Load())
	_, err := m.Resolve(context.Background(), domain.NewDependency("org.example", "lib", domain.ParseVersion("1.0")))
	require.NoError(t, err)
	assert.Equal(t, int32(1), requests.Load())
}

func TestChain(t *testing.T) {
	ctrl := gomock.NewController(t)
	first := mocks.NewMockDependencyResolver(ctrl)
	second := mocks.NewMockDependencyResolver(ctrl)

	dep := domain.NewDependency("g", "n", domain.ParseVersion("+"))
	resolved := []domain.Resolution{domain.Resolved(dep.WithVersion(domain.ParseVersion("1.0")))}

	first.EXPECT().Resolve(gomock.Any(), dep).Return(nil, domain.ErrModuleNotFound)
	second.EXPECT().Resolve(gomock.Any(), dep).Return(resolved, nil)

	results, err := repository.Chain{first, second}.Resolve(context.Background(), dep)
	require.NoError(t, err)
	assert.Equal(t, resolved, results)

	first.EXPECT().Resolve(gomock.Any(), dep).Return(nil, errors.New("first"))
	second.EXPECT().Resolve(gomock.Any(), dep).Return(nil, errors.New("second"))
	_, err = repository.Chain{first, second}.Resolve(context.Background(), dep)
	require.EqualError(t, err, "second")

	_, err = repository.Chain{}.Resolve(context.Background(), dep)
	assert.ErrorIs(t, err, domain.ErrNoRepositories)
}

func TestFactory(t *testing.T) {
	f := repository.NewFactory()

	_, err := f.NewResolver(domain.RepositorySettings{})
	assert.ErrorIs(t, err, domain.ErrNoRepositories)

	r, err := f.NewResolver(domain.RepositorySettings{CatalogPath: filepath.Join("testdata", "catalog.yaml")})
	require.NoError(t, err)
	results, err := r.Resolve(context.Background(), domain.NewDependency("org.example", "lib", domain.ParseVersion("1.+")))
	require.NoError(t, err)
	assert.Equal(t, "org.example:lib:1.1", results[0].String())

	_, err = f.NewResolver(domain.RepositorySettings{CatalogPath: filepath.Join("testdata", "missing.yaml")})
	assert.Error(t, err)
}
