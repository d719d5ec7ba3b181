package main

import (
	"fmt"
	"log"
	"os"

	"github.com/pchampin/quadbridge/pkg/dataset"
	"github.com/pchampin/quadbridge/pkg/rdf"
	"github.com/pchampin/quadbridge/pkg/store"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: quadbridge <command> [args]")
		fmt.Println("Commands:")
		fmt.Println("  demo [path]        - Run a demo with sample data (default path: ./quadbridge_data)")
		fmt.Println("  query <path> <q>   - Execute a restricted SELECT DISTINCT query")
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "demo":
		dbPath := "./quadbridge_data"
		if len(os.Args) >= 3 {
			dbPath = os.Args[2]
		}
		runDemo(dbPath)
	case "query":
		if len(os.Args) < 4 {
			fmt.Println("Usage: quadbridge query <path> <query>")
			os.Exit(1)
		}
		runQuery(os.Args[2], os.Args[3])
	default:
		fmt.Printf("Unknown command: %s\n", command)
		os.Exit(1)
	}
}

func runDemo(dbPath string) {
	fmt.Println("=== Quadbridge Demo ===")
	fmt.Println()

	fmt.Printf("Opening database at: %s\n", dbPath)
	backend, err := store.Open(dbPath)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer backend.Close()

	ds := dataset.New(backend)
	fmt.Println("Dataset initialized")
	fmt.Println()

	alice := &rdf.NamedNode{IRI: "http://example.org/alice"}
	bob := &rdf.NamedNode{IRI: "http://example.org/bob"}
	carol := &rdf.BlankNode{ID: "carol"}

	knows := &rdf.NamedNode{IRI: "http://xmlns.com/foaf/0.1/knows"}
	name := &rdf.NamedNode{IRI: "http://xmlns.com/foaf/0.1/name"}
	age := &rdf.NamedNode{IRI: "http://xmlns.com/foaf/0.1/age"}

	graph1 := &rdf.NamedNode{IRI: "http://example.org/graph1"}

	fmt.Println("Inserting sample data...")
	samples := []struct {
		s, p, o, g rdf.Term
	}{
		{alice, name, &rdf.Literal{Value: "Alice"}, nil},
		{alice, age, rdf.NewIntegerLiteral(30), nil},
		{alice, knows, bob, nil},
		{bob, name, &rdf.Literal{Value: "Bob", Language: "en"}, nil},
		{bob, knows, carol, nil},
		{carol, name, &rdf.Literal{Value: "Carol"}, nil},
		{alice, name, &rdf.Literal{Value: "Alice in Graph1"}, graph1},
	}

	for _, q := range samples {
		if err := ds.Insert(q.s, q.p, q.o, q.g); err != nil {
			log.Fatalf("Failed to insert quad: %v", err)
		}
		fmt.Printf("  + %s %s %s\n", q.s, q.p, q.o)
	}

	count, err := backend.Count()
	if err != nil {
		log.Fatalf("Failed to count quads: %v", err)
	}
	fmt.Printf("\nTotal quads stored: %d\n", count)

	fmt.Println()
	fmt.Println("=== Pattern scans ===")
	fmt.Println()

	fmt.Printf("Quads about %s:\n", alice)
	it := ds.QuadsWithS(alice)
	defer it.Close()
	for it.Next() {
		q, err := it.Quad()
		if err != nil {
			log.Fatalf("Failed to read quad: %v", err)
		}
		fmt.Printf("  %s %s %s", q.S(), q.P(), q.O())
		if g := q.G(); g != nil {
			fmt.Printf(" (graph %s)", g)
		}
		fmt.Println()
	}

	fmt.Println()
	fmt.Println("=== Aggregates ===")
	fmt.Println()

	printSet(ds.Subjects, "Subjects")
	printSet(ds.Predicates, "Predicates")
	printSet(ds.Objects, "Objects")
	printSet(ds.GraphNames, "Graph names")
	printSet(ds.BlankNodes, "Blank nodes")
	printSet(ds.Literals, "Literals")

	fmt.Println("=== Demo Complete ===")
}

func runQuery(dbPath, queryString string) {
	backend, err := store.Open(dbPath)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer backend.Close()

	bindings, err := backend.PrepareAndExecute(queryString, dataset.QueryOptions{})
	if err != nil {
		log.Fatalf("Failed to execute query: %v", err)
	}

	fmt.Println("Results:")
	for _, row := range bindings.Rows {
		for i, term := range row {
			fmt.Printf("  %s = %s\n", bindings.Variables[i], term)
		}
	}
	fmt.Printf("\nFound %d results\n", len(bindings.Rows))
}

func printSet(fetch func() (dataset.TermSet, error), label string) {
	set, err := fetch()
	if err != nil {
		log.Fatalf("Failed to fetch %s: %v", label, err)
	}
	fmt.Printf("%s (%d):\n", label, set.Len())
	for _, t := range set.Terms() {
		fmt.Printf("  %s\n", t)
	}
	fmt.Println()
}
