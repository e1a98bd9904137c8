// Command schemagen generates the JSON schema for the choosr configuration
// file. It is invoked via go:generate from pkg/config.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/invopop/jsonschema"

	"github.com/macropower/choosr/pkg/config"
)

var outFile = flag.String("o", "config.v1beta1.json", "Output file for the generated schema")

func main() {
	flag.Parse()

	r := &jsonschema.Reflector{}

	// Pull field doc comments into the schema descriptions.
	for _, pkgPath := range []string{"./", "../profile", "../rule"} {
		err := r.AddGoComments("github.com/macropower/choosr", pkgPath)
		if err != nil {
			log.Fatalf("add go comments: %v", err)
		}
	}

	s := r.Reflect(&config.Config{})
	s.ID = "https://github.com/macropower/choosr/pkg/config/config"

	jsData, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		log.Fatalf("generate JSON schema: %v", err)
	}

	err = os.WriteFile(*outFile, append(jsData, '\n'), 0o600)
	if err != nil {
		log.Fatalf("write schema file: %v", err)
	}
}
