package apps

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"gopkg.in/yaml.v3"
)

const defaultRegistryTimeout = 15 * time.Second

// RegistryEntry is an app advertised by a registry index.
type RegistryEntry struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version,omitempty"`
	Description string `yaml:"description,omitempty"`
	Source      string `yaml:"source"`
}

type registryFile struct {
	Apps []RegistryEntry `yaml:"apps"`
}

// Registry reads a YAML registry index from a local path or an HTTP(S) URL.
type Registry struct {
	Source  string
	Client  *fasthttp.Client
	Timeout time.Duration
}

func NewRegistry(source string) *Registry {
	return &Registry{Source: source}
}

// Entries loads every entry of the index, sorted by name.
func (r *Registry) Entries() ([]RegistryEntry, error) {
	source := strings.TrimSpace(r.Source)
	if source == "" {
		return nil, fmt.Errorf("registry: no registry configured")
	}
	var (
		data []byte
		err  error
	)
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		data, err = r.fetch(source)
	} else {
		data, err = os.ReadFile(source)
		if err != nil {
			err = fmt.Errorf("registry: read %s: %w", source, err)
		}
	}
	if err != nil {
		return nil, err
	}

	var raw registryFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("registry: parse %s: %w", source, err)
	}
	sort.Slice(raw.Apps, func(i, j int) bool { return raw.Apps[i].Name < raw.Apps[j].Name })
	return raw.Apps, nil
}

// Search returns the entries whose name or description contains term, ignoring
// case. An empty term matches everything.
func (r *Registry) Search(term string) ([]RegistryEntry, error) {
	entries, err := r.Entries()
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return entries, nil
	}
	var matches []RegistryEntry
	for _, entry := range entries {
		if strings.Contains(strings.ToLower(entry.Name), needle) ||
			strings.Contains(strings.ToLower(entry.Description), needle) {
			matches = append(matches, entry)
		}
	}
	return matches, nil
}

// Lookup finds the entry with exactly the given name.
func (r *Registry) Lookup(name string) (*RegistryEntry, error) {
	entries, err := r.Entries()
	if err != nil {
		return nil, err
	}
	for i := range entries {
		if entries[i].Name == name {
			return &entries[i], nil
		}
	}
	return nil, fmt.Errorf("registry: no app named %q", name)
}

func (r *Registry) fetch(url string) ([]byte, error) {
	client := r.Client
	if client == nil {
		client = &fasthttp.Client{Name: "plang"}
	}
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = defaultRegistryTimeout
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	if err := client.DoTimeout(req, resp, timeout); err != nil {
		return nil, fmt.Errorf("registry: fetch %s: %w", url, err)
	}
	if status := resp.StatusCode(); status != fasthttp.StatusOK {
		return nil, fmt.Errorf("registry: fetch %s: unexpected status %d", url, status)
	}
	return append([]byte(nil), resp.Body()...), nil
}
