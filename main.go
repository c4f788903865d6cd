package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/insightdelivered/statement-ledger/internal/api"
	"github.com/insightdelivered/statement-ledger/internal/config"
	"github.com/insightdelivered/statement-ledger/internal/logger"
	"github.com/insightdelivered/statement-ledger/internal/mapping"
	"github.com/insightdelivered/statement-ledger/internal/models"
	"github.com/insightdelivered/statement-ledger/internal/pipeline"
	"github.com/insightdelivered/statement-ledger/internal/writer"
)

const version = "1.0.0"

func main() {
	modeFlag := flag.String("mode", "custom+default", "Mapping mode: custom+default or trend")
	outputFlag := flag.String("output", "", "Output file path (defaults to input filename with new extension)")
	formatFlag := flag.String("format", "xlsx", "Output format: xlsx or csv")
	nameFlag := flag.String("name", "", "Account holder's name (enables the mapping store with -account)")
	accountFlag := flag.String("account", "", "Account number (enables the mapping store with -name)")
	customFlag := flag.String("custom", "", "Custom keyword=ledger pairs, comma separated (enables custom mapping)")
	noDefaultFlag := flag.Bool("no-default", false, "Disable the built-in Cash/Drawings rules")
	trendFlag := flag.String("trend", "", "Previous statement XLSX with Ledger Name column (trend mode input)")
	mappingsDirFlag := flag.String("mappings-dir", "", "Directory for per-account mapping files")
	configFlag := flag.String("config", "", "YAML config file path")
	serveFlag := flag.Bool("serve", false, "Run the HTTP API instead of converting files")
	addrFlag := flag.String("addr", "", "Listen address for -serve (default :8080)")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	helpFlag := flag.Bool("help", false, "Show usage help")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Bank Statement Ledger Tool
by Insight Delivered

Converts running-balance bank statement PDFs into a transaction ledger
and assigns ledger names via keyword or trend mapping.

Usage:
  statement-ledger [flags] <input.pdf> [input2.pdf ...]
  statement-ledger -serve [-addr :8080]

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Convert with the built-in Cash/Drawings rules
  statement-ledger statement.pdf

  # Add custom keyword rules and persist them for the account
  statement-ledger -name "A Kumar" -account 12345678 \
      -custom "rent=Rent,emi=Loan EMI" statement.pdf

  # Classify by similarity to a previously labeled statement
  statement-ledger -mode trend -trend last_month.xlsx statement.pdf

  # Run the HTTP API
  statement-ledger -serve -addr :8080

Mapping Modes:
  custom+default - built-in rules first, then custom keywords on the rest
  trend          - fuzzy match against previously labeled narrations
`)
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("statement-ledger v%s\n", version)
		os.Exit(0)
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fatalf("Config error: %v\n", err)
	}
	if *mappingsDirFlag != "" {
		cfg.MappingsDir = *mappingsDirFlag
	}
	if *addrFlag != "" {
		cfg.Addr = *addrFlag
	}

	log := logger.WithLevel(logger.New(), cfg.LogLevel)

	if *serveFlag {
		serve(cfg, log)
		return
	}

	if *helpFlag || flag.NArg() == 0 {
		flag.Usage()
		os.Exit(0)
	}

	mode, err := models.ParseMappingMode(*modeFlag)
	if err != nil {
		fatalf("%v\n", err)
	}

	if strings.ToLower(*formatFlag) != "xlsx" && strings.ToLower(*formatFlag) != "csv" {
		fatalf("Unknown format %q. Supported: xlsx, csv\n", *formatFlag)
	}

	identity := models.AccountIdentity{
		HolderName:    strings.TrimSpace(*nameFlag),
		AccountNumber: strings.TrimSpace(*accountFlag),
	}
	hasIdentity := identity.HolderName != "" && identity.AccountNumber != ""

	store := mapping.NewStore(cfg.MappingsDir)
	opts, err := buildOptions(mode, *customFlag, *trendFlag, !*noDefaultFlag, hasIdentity, identity, store, log)
	if err != nil {
		fatalf("%v\n", err)
	}

	for _, inputPath := range flag.Args() {
		if err := processFile(inputPath, opts, *outputFlag, strings.ToLower(*formatFlag), identity, log); err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", inputPath, err)
			os.Exit(1)
		}
	}

	// Persist the effective mappings for the account, replacing any
	// previous file wholesale.
	if hasIdentity {
		set := models.MappingSet{CustomMap: opts.CustomMap, TrendMap: opts.TrendMap}
		if err := store.Save(identity, set); err != nil {
			log.Warn().Err(err).Msg("could not save mappings")
		} else {
			log.Info().Str("key", identity.StorageKey()).Msg("mappings saved")
		}
	}
}

// buildOptions assembles pipeline options from flags, falling back to the
// account's saved mappings for anything not supplied on the command line.
func buildOptions(mode models.MappingMode, customSpec, trendPath string, enableDefault bool,
	hasIdentity bool, identity models.AccountIdentity, store *mapping.Store, log zerolog.Logger) (pipeline.Options, error) {

	opts := pipeline.Options{
		Mode:          mode,
		EnableDefault: enableDefault,
	}

	if customSpec != "" {
		pairs, err := parseCustomSpec(customSpec)
		if err != nil {
			return opts, err
		}
		opts.EnableCustom = true
		opts.CustomMap = pairs
	}

	if trendPath != "" {
		f, err := os.Open(trendPath)
		if err != nil {
			return opts, fmt.Errorf("open trend file: %w", err)
		}
		pairs, loadErr := mapping.LoadTrendXLSX(f)
		f.Close()
		if loadErr != nil {
			return opts, loadErr
		}
		opts.TrendMap = pairs
		log.Info().Int("entries", len(pairs)).Msg("loaded trend mappings")
	}

	if hasIdentity {
		saved, err := store.Load(identity)
		if err != nil {
			log.Warn().Err(err).Msg("could not load saved mappings")
			return opts, nil
		}
		if len(opts.CustomMap) == 0 && len(saved.CustomMap) > 0 {
			opts.EnableCustom = true
			opts.CustomMap = saved.CustomMap
		}
		if len(opts.TrendMap) == 0 {
			opts.TrendMap = saved.TrendMap
		}
	}

	return opts, nil
}

// parseCustomSpec parses "keyword=ledger,keyword2=ledger2" preserving
// order, since custom mapping is first-match-wins.
func parseCustomSpec(spec string) (models.PairList, error) {
	var pairs models.PairList
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		keyword, ledgerName, ok := strings.Cut(part, "=")
		if !ok || strings.TrimSpace(keyword) == "" || strings.TrimSpace(ledgerName) == "" {
			return nil, fmt.Errorf("invalid custom mapping %q (want keyword=ledger)", part)
		}
		pairs = append(pairs, models.Pair{
			Keyword: strings.TrimSpace(keyword),
			Ledger:  strings.TrimSpace(ledgerName),
		})
	}
	if len(pairs) == 0 {
		return nil, fmt.Errorf("no custom mappings in %q", spec)
	}
	return pairs, nil
}

func processFile(inputPath string, opts pipeline.Options, outputPath, format string,
	identity models.AccountIdentity, log zerolog.Logger) error {

	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("input file not found: %s", inputPath)
	}
	if ext := strings.ToLower(filepath.Ext(inputPath)); ext != ".pdf" {
		return fmt.Errorf("expected .pdf file, got %q", ext)
	}

	log.Info().Str("file", inputPath).Msg("processing")

	records, err := pipeline.RunFile(inputPath, opts)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		log.Warn().Str("file", inputPath).Msg("no valid transactions found; the PDF layout may not match the expected running-balance format")
	} else {
		log.Info().Int("count", len(records)).Msg("extracted transactions")
	}

	outPath := outputPath
	if outPath == "" {
		outPath = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + "." + format
	}

	switch format {
	case "csv":
		w := &writer.CSVWriter{IncludeHeader: true, Identity: identity}
		if err := w.WriteToFile(outPath, records); err != nil {
			return fmt.Errorf("CSV write failed: %w", err)
		}
	default:
		w := &writer.XLSXWriter{}
		if err := w.WriteToFile(outPath, records); err != nil {
			return fmt.Errorf("XLSX write failed: %w", err)
		}
	}

	log.Info().Str("output", outPath).Msg("done")
	return nil
}

func serve(cfg config.Config, log zerolog.Logger) {
	api.Configure(cfg.MappingsDir, log)
	app := api.NewApp()
	if cfg.StaticDir != "" {
		app.Static("/", cfg.StaticDir)
	}
	log.Info().Str("addr", cfg.Addr).Msg("serving statement-ledger API")
	if err := app.Listen(cfg.Addr); err != nil {
		fatalf("Server error: %v\n", err)
	}
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}
