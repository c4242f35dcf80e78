// Command channel-lang: language enrichment for TV channel datasets.
//
//	enrich          Detect languages for every channel in the dataset that lacks one
//	split           Write one dataset file per detected language
//	detect          Detect one channel (-name, -tvg-id) and print the decision
//	import          Parse an M3U playlist into a channel dataset JSON
//	iptvorg-harvest Download the iptv-org channel list into a local DB
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/channellang/channel-lang/internal/config"
	"github.com/channellang/channel-lang/internal/dataset"
	"github.com/channellang/channel-lang/internal/enrich"
	"github.com/channellang/channel-lang/internal/iptvorg"
	"github.com/channellang/channel-lang/internal/langcache"
	"github.com/channellang/channel-lang/internal/langdetect"
	"github.com/channellang/channel-lang/internal/metrics"
	"github.com/channellang/channel-lang/internal/playlist"
)

func main() {
	_ = config.LoadEnvFile(".env")
	log.SetFlags(log.LstdFlags)
	log.SetPrefix("[channel-lang] ")

	enrichCmd := flag.NewFlagSet("enrich", flag.ExitOnError)
	enrichDataset := enrichCmd.String("dataset", "", "Channel dataset JSON (default: CHANNEL_LANG_DATASET)")
	enrichDryRun := enrichCmd.Bool("dry-run", false, "Detect but do not write the dataset back")

	splitCmd := flag.NewFlagSet("split", flag.ExitOnError)
	splitDataset := splitCmd.String("dataset", "", "Channel dataset JSON (default: CHANNEL_LANG_DATASET)")

	detectCmd := flag.NewFlagSet("detect", flag.ExitOnError)
	detectName := detectCmd.String("name", "", "Channel display name")
	detectTVGID := detectCmd.String("tvg-id", "", "Channel tvg-id (domain source)")

	importCmd := flag.NewFlagSet("import", flag.ExitOnError)
	importM3U := importCmd.String("m3u", "", "M3U playlist file to parse")
	importOut := importCmd.String("out", "", "Output dataset JSON (default: CHANNEL_LANG_DATASET)")

	harvestCmd := flag.NewFlagSet("iptvorg-harvest", flag.ExitOnError)
	harvestOut := harvestCmd.String("out", "", "Output DB path (default: CHANNEL_LANG_IPTVORG_DB or ./iptvorg.json)")
	harvestURL := harvestCmd.String("url", "", "channels.json URL (default: iptv-org API)")

	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <enrich|split|detect|import|iptvorg-harvest> [flags]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  enrich          Detect languages for channels in the dataset\n")
		fmt.Fprintf(os.Stderr, "  split           Write one dataset file per language\n")
		fmt.Fprintf(os.Stderr, "  detect          Detect one channel and print the decision\n")
		fmt.Fprintf(os.Stderr, "  import          Parse an M3U playlist into a dataset JSON\n")
		fmt.Fprintf(os.Stderr, "  iptvorg-harvest Download the iptv-org channel list\n")
		os.Exit(1)
	}

	cfg := config.Load()

	switch os.Args[1] {
	case "enrich":
		_ = enrichCmd.Parse(os.Args[2:])
		path := *enrichDataset
		if path == "" {
			path = cfg.DatasetPath
		}
		channels, err := dataset.Load(path)
		if err != nil {
			log.Printf("Load dataset failed: %v", err)
			os.Exit(1)
		}

		cache, closeCache, err := openCache(cfg)
		if err != nil {
			log.Printf("Open cache failed: %v", err)
			os.Exit(1)
		}
		defer closeCache()

		var db *iptvorg.DB
		if cfg.IPTVOrgDB != "" {
			db, err = iptvorg.Load(cfg.IPTVOrgDB)
			if err != nil {
				log.Printf("Load iptv-org DB failed: %v", err)
				os.Exit(1)
			}
			log.Printf("iptv-org DB: %d channels", db.Len())
		}

		metrics.Serve(cfg.MetricsAddr)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		runner := enrich.New(newDetector(cfg, cache), db, enrich.Options{
			Workers:       cfg.Workers,
			BatchSize:     cfg.BatchSize,
			BatchDelay:    cfg.BatchDelay,
			RatePerSecond: cfg.RatePerSecond,
		})
		stats, runErr := runner.Run(ctx, channels)
		log.Printf("Enrich: %s", stats)
		if !*enrichDryRun {
			// Save even on interrupt: completed detections are kept.
			if err := dataset.Save(path, channels); err != nil {
				log.Printf("Save dataset failed: %v", err)
				os.Exit(1)
			}
			log.Printf("Saved dataset to %s", path)
		}
		if runErr != nil {
			log.Printf("Enrich stopped early: %v", runErr)
			os.Exit(1)
		}

	case "split":
		_ = splitCmd.Parse(os.Args[2:])
		path := *splitDataset
		if path == "" {
			path = cfg.DatasetPath
		}
		channels, err := dataset.Load(path)
		if err != nil {
			log.Printf("Load dataset failed: %v", err)
			os.Exit(1)
		}
		counts, err := dataset.SplitByLanguage(path, channels)
		if err != nil {
			log.Printf("Split failed: %v", err)
			os.Exit(1)
		}
		for code, n := range counts {
			log.Printf("  %s: %d channels", code, n)
		}

	case "detect":
		_ = detectCmd.Parse(os.Args[2:])
		if *detectName == "" && *detectTVGID == "" {
			log.Printf("detect needs -name and/or -tvg-id")
			os.Exit(1)
		}
		cache, closeCache, err := openCache(cfg)
		if err != nil {
			log.Printf("Open cache failed: %v", err)
			os.Exit(1)
		}
		defer closeCache()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		decision := newDetector(cfg, cache).Detect(ctx, *detectName, *detectTVGID)
		fmt.Printf("%s\t%s\n", decision.Language, decision.Source)

	case "import":
		_ = importCmd.Parse(os.Args[2:])
		if *importM3U == "" {
			log.Printf("import needs -m3u")
			os.Exit(1)
		}
		out := *importOut
		if out == "" {
			out = cfg.DatasetPath
		}
		f, err := os.Open(*importM3U)
		if err != nil {
			log.Printf("Open playlist failed: %v", err)
			os.Exit(1)
		}
		channels, err := playlist.Parse(f)
		f.Close()
		if err != nil {
			log.Printf("Parse playlist failed: %v", err)
			os.Exit(1)
		}
		if err := dataset.Save(out, channels); err != nil {
			log.Printf("Save dataset failed: %v", err)
			os.Exit(1)
		}
		log.Printf("Imported %d channels to %s", len(channels), out)

	case "iptvorg-harvest":
		_ = harvestCmd.Parse(os.Args[2:])
		out := *harvestOut
		if out == "" {
			out = cfg.IPTVOrgDB
		}
		if out == "" {
			out = "./iptvorg.json"
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		db := &iptvorg.DB{}
		n, err := db.Harvest(ctx, *harvestURL, nil)
		if err != nil {
			log.Printf("Harvest failed: %v", err)
			os.Exit(1)
		}
		if err := db.Save(out); err != nil {
			log.Printf("Save DB failed: %v", err)
			os.Exit(1)
		}
		log.Printf("Harvested %d channels to %s", n, out)

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}
}

// openCache builds the configured cache backend. The returned close func is
// a no-op for backends without resources to release.
func openCache(cfg *config.Config) (langdetect.Cache, func(), error) {
	switch cfg.CacheBackend {
	case config.CacheBackendMemory:
		return langcache.NewMemory(), func() {}, nil
	case config.CacheBackendSQLite:
		c, err := langcache.OpenSQLite(cfg.CachePath)
		if err != nil {
			return nil, nil, err
		}
		return c, func() { c.Close() }, nil
	default:
		c, err := langcache.OpenFile(cfg.CachePath)
		if err != nil {
			return nil, nil, err
		}
		return c, func() {}, nil
	}
}

func newDetector(cfg *config.Config, cache langdetect.Cache) *langdetect.Detector {
	retries := cfg.FetchRetries
	if retries == 0 {
		retries = -1
	}
	return langdetect.New(langdetect.Config{
		Cache: cache,
		Fetch: langdetect.FetchConfig{
			Retries:   retries,
			Timeout:   cfg.FetchTimeout,
			UserAgent: cfg.UserAgent,
		},
	})
}
