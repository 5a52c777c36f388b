package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"tabboard/pkg/store"
)

// inspect prints the stored board document from either backend, for
// debugging a deployment without going through the HTTP API.
func main() {
	var (
		filePath = flag.String("file", "", "document file path")
		dbPath   = flag.String("db", "", "Pebble DB path")
	)
	flag.Parse()

	if *filePath == "" && *dbPath == "" {
		fmt.Fprintln(os.Stderr, "one of --file or --db is required")
		os.Exit(2)
	}

	var gw store.Gateway
	if *dbPath != "" {
		pg, err := store.OpenPebbleGateway(*dbPath, nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open pebble: %v\n", err)
			os.Exit(1)
		}
		gw = pg
	} else {
		gw = store.NewFileGateway(*filePath, nil)
	}
	defer gw.Close()

	doc, err := gw.Load(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "load document: %v\n", err)
		os.Exit(1)
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "marshal document: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
