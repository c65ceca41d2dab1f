// Package main writes the OpenAPI document of the relay without starting a
// server or contacting the upstream.
//
// Usage:
//
//	go run ./cmd/tikkun-openapi > openapi.json
//	go run ./cmd/tikkun-openapi -yaml > openapi.yaml
//	go run ./cmd/tikkun-openapi -output openapi.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"gopkg.in/yaml.v3"

	"github.com/tikkun/tikkun-api/internal/config"
	"github.com/tikkun/tikkun-api/internal/http/handlers"
	"github.com/tikkun/tikkun-api/internal/http/routes"
	"github.com/tikkun/tikkun-api/internal/profiles"
	"github.com/tikkun/tikkun-api/internal/version"
)

func main() {
	outputFile := flag.String("output", "", "Output file path (default: stdout)")
	outputYAML := flag.Bool("yaml", false, "Output as YAML instead of JSON")
	baseURL := flag.String("base-url", "", "Server URL to list in the document")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Get().Short())
		return
	}

	cfg := routes.NewHumaConfig()
	if *baseURL != "" {
		cfg.Servers = []*huma.Server{{URL: *baseURL, Description: "API Server"}}
	}
	api := humachi.New(chi.NewRouter(), cfg)

	// Handlers are registered but never invoked; no completer is needed.
	routes.Register(api, handlers.New(profiles.New(profiles.Builtin()...), nil, nil), config.DefaultMaxBodyBytes)

	spec := api.OpenAPI()

	var data []byte
	var err error
	if *outputYAML {
		data, err = yaml.Marshal(spec)
	} else {
		data, err = json.MarshalIndent(spec, "", "  ")
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error marshaling OpenAPI spec: %v\n", err)
		os.Exit(1)
	}

	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, data, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "error writing to file: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "OpenAPI spec written to %s\n", *outputFile)
		return
	}
	fmt.Print(string(data))
}
