package metadata

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pyneda/wsimport/pkg/wsdl"
	"github.com/pyneda/wsimport/pkg/xmlnode"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
)

// Fetcher downloads metadata documents and follows their wsdl:import,
// xsd:import and xsd:include locations
type Fetcher struct {
	client      *http.Client
	headers     map[string]string
	maxDepth    int
	concurrency int
}

// NewFetcher creates a fetcher with a 30 second timeout
func NewFetcher() *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		},
		headers:     make(map[string]string),
		maxDepth:    10,
		concurrency: 5,
	}
}

// WithHeaders sets custom headers sent with every request
func (f *Fetcher) WithHeaders(headers map[string]string) *Fetcher {
	f.headers = headers
	return f
}

// WithClient sets a custom HTTP client
func (f *Fetcher) WithClient(client *http.Client) *Fetcher {
	f.client = client
	return f
}

// WithTimeout sets the timeout of the HTTP client
func (f *Fetcher) WithTimeout(timeout time.Duration) *Fetcher {
	f.client.Timeout = timeout
	return f
}

// WithMaxDepth sets the maximum import recursion depth
func (f *Fetcher) WithMaxDepth(depth int) *Fetcher {
	f.maxDepth = depth
	return f
}

// WithConcurrency sets how many documents are downloaded at once
func (f *Fetcher) WithConcurrency(n int) *Fetcher {
	if n > 0 {
		f.concurrency = n
	}
	return f
}

type fetchResult struct {
	index   int
	url     string
	section Section
	imports []string
	err     error
}

// Fetch downloads the given documents and everything they import. A root
// document that cannot be retrieved or parsed fails the fetch; failed
// imports are logged and skipped.
func (f *Fetcher) Fetch(ctx context.Context, urls ...string) (Set, error) {
	var set Set
	seen := make(map[string]bool)
	level := make([]string, 0, len(urls))
	for _, u := range urls {
		if !seen[u] {
			seen[u] = true
			level = append(level, u)
		}
	}

	for depth := 0; len(level) > 0; depth++ {
		if depth > f.maxDepth {
			log.Warn().Int("depth", depth).Int("pending", len(level)).Msg("Maximum import depth reached, remaining imports skipped")
			break
		}

		results := f.fetchLevel(ctx, level)

		var next []string
		for _, result := range results {
			if result.err != nil {
				if depth == 0 {
					return set, fmt.Errorf("failed to fetch %s: %w", result.url, result.err)
				}
				log.Warn().Err(result.err).Str("url", result.url).Msg("Failed to fetch imported metadata, skipping")
				continue
			}
			set.Add(result.section)
			for _, imported := range result.imports {
				if !seen[imported] {
					seen[imported] = true
					next = append(next, imported)
				}
			}
		}
		level = next
	}

	return set, nil
}

// fetchLevel downloads a batch of documents in parallel, keeping the input
// order in the results
func (f *Fetcher) fetchLevel(ctx context.Context, urls []string) []fetchResult {
	p := pool.NewWithResults[fetchResult]().WithMaxGoroutines(f.concurrency)
	for i, u := range urls {
		p.Go(func() fetchResult {
			log.Debug().Str("url", u).Msg("Fetching metadata document")
			section, imports, err := f.fetchSection(ctx, u)
			return fetchResult{index: i, url: u, section: section, imports: imports, err: err}
		})
	}

	ordered := make([]fetchResult, len(urls))
	for _, result := range p.Wait() {
		ordered[result.index] = result
	}
	return ordered
}

// fetchSection downloads and parses one document, returning the absolute
// locations it imports
func (f *Fetcher) fetchSection(ctx context.Context, url string) (Section, []string, error) {
	data, err := f.fetchDocument(ctx, url)
	if err != nil {
		return Section{}, nil, err
	}

	section, err := SectionFromBytes(data, url)
	if err != nil {
		return Section{}, nil, err
	}

	parser := wsdl.NewParser()
	var imports []string
	switch section.Dialect {
	case DialectWSDL:
		doc, err := parser.ParseFromBytes(data, url)
		if err != nil {
			return Section{}, nil, err
		}
		section.Metadata = doc
		for _, imp := range doc.Imports {
			if imp.Location != "" {
				imports = append(imports, wsdl.ResolveURL(url, imp.Location))
			}
		}
		if doc.Types != nil {
			for _, schema := range doc.Types.Schemas {
				imports = append(imports, schemaLocations(url, schema)...)
			}
		}
	case DialectXMLSchema:
		schema, err := parser.ParseSchema(data, url)
		if err != nil {
			return Section{}, nil, err
		}
		section.Metadata = schema
		imports = schemaLocations(url, schema)
	case DialectPolicy:
		element, err := xmlnode.Parse(data)
		if err != nil {
			return Section{}, nil, err
		}
		section.Metadata = element
	}

	return section, imports, nil
}

func schemaLocations(baseURL string, schema *wsdl.XSDSchema) []string {
	var locations []string
	for _, imp := range schema.Imports {
		if imp.SchemaLocation != "" {
			locations = append(locations, wsdl.ResolveURL(baseURL, imp.SchemaLocation))
		}
	}
	for _, inc := range schema.Includes {
		if inc.SchemaLocation != "" {
			locations = append(locations, wsdl.ResolveURL(baseURL, inc.SchemaLocation))
		}
	}
	return locations
}

// fetchDocument retrieves a document from URL
func (f *Fetcher) fetchDocument(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "text/xml, application/xml, application/wsdl+xml")
	for key, value := range f.headers {
		req.Header.Set(key, value)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	return io.ReadAll(resp.Body)
}
