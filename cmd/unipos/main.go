package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"unipos/internal"
	"unipos/internal/catalog"
	"unipos/internal/config"
	"unipos/internal/extract"
	"unipos/internal/staging"
	"unipos/internal/storage"
	"unipos/internal/transform"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "ingest:raw":
		db := openDB(cfg)
		defer db.Close()
		loader := staging.NewLoader(db)
		result := loader.LoadAll(cfg.SourcesDir)
		total := 0
		for _, source := range internal.Sources() {
			counts := result[source]
			fmt.Printf("  %s: %d locations, %d orders, %d payments\n",
				source, counts.Locations, counts.Orders, counts.Payments)
			total += counts.Locations + counts.Orders + counts.Payments
		}
		must(db.SetMeta("last_ingest", now()))
		fmt.Printf("ingest done: %d raw records staged\n", total)
	case "catalog:build":
		ext, err := extract.All(cfg.SourcesDir)
		must(err)
		cat := catalog.Build(ext)
		must(catalog.Save(cat, cfg.CatalogPath))
		db := openDB(cfg)
		defer db.Close()
		must(db.SetMeta("last_catalog_build", now()))
		for _, source := range internal.Sources() {
			fmt.Printf("  %s: %d items\n", source, cat.Count(source))
		}
		fmt.Printf("catalog built: %d items -> %s\n", cat.Total(), cfg.CatalogPath)
	case "catalog:verify":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		xlsx := fs.String("xlsx", "", "also write findings to this xlsx path")
		_ = fs.Parse(os.Args[2:])
		cat, err := catalog.Load(cfg.CatalogPath)
		must(err)
		ext, err := extract.All(cfg.SourcesDir)
		must(err)
		report := catalog.Verify(cat, ext)
		printReport(report)
		db := openDB(cfg)
		defer db.Close()
		must(db.SetMeta("last_catalog_verify", now()))
		if *xlsx != "" {
			must(catalog.ExportReportXLSX(report, *xlsx))
			fmt.Printf("findings written to %s\n", *xlsx)
		}
		if report.Verdict() == catalog.VerdictBroken {
			os.Exit(1)
		}
	case "catalog:export":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		out := fs.String("out", "", "output xlsx path")
		_ = fs.Parse(os.Args[2:])
		path := *out
		if path == "" {
			path = filepath.Join(cfg.OutputDir, "catalog.xlsx")
		}
		cat, err := catalog.Load(cfg.CatalogPath)
		must(err)
		must(catalog.ExportXLSX(cat, path))
		fmt.Printf("exported %d items to %s\n", cat.Total(), path)
	case "transform:locations", "transform:orders", "transform:items", "transform:metadata":
		db := openDB(cfg)
		defer db.Close()
		runner := newRunner(db, cfg)
		var stage transform.Stage
		for _, s := range runner.Stages() {
			if "transform:"+shortName(s.Name) == cmd {
				stage = s
			}
		}
		counts, err := stage.Run()
		must(err)
		must(db.InsertRun(stage.Name, counts))
		fmt.Printf("%s done: %d records (%s)\n", stage.Name, counts.Total(), counts)
	case "transform:all":
		db := openDB(cfg)
		defer db.Close()
		runner := newRunner(db, cfg)
		results, err := runner.All()
		must(err)
		total := 0
		for _, counts := range results {
			total += counts.Total()
		}
		fmt.Printf("transform done: %d records across %d stages\n", total, len(results))
	default:
		usage()
		os.Exit(1)
	}
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func openDB(cfg config.Config) *storage.DB {
	db, err := storage.Open(cfg.DBPath)
	must(err)
	return db
}

func newRunner(db *storage.DB, cfg config.Config) *transform.Runner {
	cat, err := catalog.Load(cfg.CatalogPath)
	must(err)
	return transform.NewRunner(db, cat, cfg)
}

// shortName maps a stage name to its subcommand suffix.
func shortName(stage string) string {
	if stage == "order_items" {
		return "items"
	}
	return stage
}

func printReport(report catalog.Report) {
	for _, source := range internal.Sources() {
		rep := report[source]
		if rep.Clean() {
			fmt.Printf("%s: ok\n", source)
			continue
		}
		fmt.Printf("%s:\n", source)
		for _, e := range rep.IDErrors {
			fmt.Printf("  [ID] %s: %s\n", e.ItemID, e.Reason)
		}
		for _, e := range rep.CategoryErrors {
			fmt.Printf("  [CATEGORY] %s: source %q != catalog %q\n", e.ItemID, e.SourceCategory, e.CatalogCategory)
		}
		for _, e := range rep.Missing {
			fmt.Printf("  [MISSING] %s (%s)\n", e.ItemID, e.Name)
		}
	}
	idErrors, categoryErrors, missing := report.Totals()
	fmt.Printf("verdict: %s (%d id errors, %d category errors, %d missing)\n",
		report.Verdict(), idErrors, categoryErrors, missing)
}

func usage() {
	fmt.Println("usage: unipos <command>")
	fmt.Println("commands:")
	fmt.Println("  ingest:raw")
	fmt.Println("  catalog:build")
	fmt.Println("  catalog:verify [--xlsx=./out/findings.xlsx]")
	fmt.Println("  catalog:export [--out=./out/catalog.xlsx]")
	fmt.Println("  transform:locations")
	fmt.Println("  transform:orders")
	fmt.Println("  transform:items")
	fmt.Println("  transform:metadata")
	fmt.Println("  transform:all")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
