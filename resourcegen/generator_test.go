package resourcegen

import (
	"strings"
	"testing"

	"github.com/tavish/resourceful"
)

// Song is a model fixture; the generator resolves its type through the
// registry's exported metadata.
type Song struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func testRegistry() *resourceful.Registry {
	reg := resourceful.NewRegistry()
	reg.SetBaseRoute("/api")
	reg.Endpoint("songs").
		Route("/songs/:id").
		Model(func() any { return &Song{} }).
		EnableQuery()
	reg.Endpoint("ping").Route("/ping")
	return reg
}

func TestGenerate(t *testing.T) {
	src, err := Generate(testRegistry(), &Config{PackageName: "apiclient"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	out := string(src)

	for _, want := range []string{
		"// Code generated by resourcegen. DO NOT EDIT.",
		"package apiclient",
		"type Clients struct {",
		"Songs *SongsClient",
		"Ping *PingClient",
		"func NewClients(api *resourceful.API) (*Clients, error)",
		"type SongsClient struct {",
		"func (c *SongsClient) Get(ctx context.Context, params map[string]string) (*resourcegen.Song, error)",
		"func (c *SongsClient) Query(ctx context.Context, params map[string]string) ([]*resourcegen.Song, error)",
		"func (c *SongsClient) Save(ctx context.Context, params map[string]string, body any) (any, error)",
		"func (c *SongsClient) Remove(ctx context.Context, params map[string]string) (any, error)",
		"func (c *PingClient) Get(ctx context.Context, params map[string]string) (any, error)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("generated source missing %q\n%s", want, out)
		}
	}
}

func TestGenerate_RequiresPackageName(t *testing.T) {
	if _, err := Generate(testRegistry(), &Config{}); err == nil {
		t.Error("expected error without a package name")
	}
	if _, err := Generate(testRegistry(), nil); err == nil {
		t.Error("expected error with nil config")
	}
}

func TestGenerate_EmptyRegistry(t *testing.T) {
	if _, err := Generate(resourceful.NewRegistry(), &Config{PackageName: "x"}); err == nil {
		t.Error("expected error for empty registry")
	}
}

func TestExportName(t *testing.T) {
	cases := map[string]string{
		"songs":      "Songs",
		"play-count": "PlayCount",
		"get":        "Get",
		"v2_items":   "V2Items",
	}
	for in, want := range cases {
		if got := exportName(in); got != want {
			t.Errorf("exportName(%q): expected %q, got %q", in, want, got)
		}
	}
}
