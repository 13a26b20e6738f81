package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/lician/backend/internal/sitemap"
	"github.com/lician/backend/internal/universe"
	"github.com/lician/backend/pkg/config"
)

// sitemapCmd represents the sitemap command
var sitemapCmd = &cobra.Command{
	Use:   "sitemap",
	Short: "Render one sitemap page to stdout",
	Long: `Renders one page of a comparison sitemap to stdout, exactly as
the HTTP endpoint would serve it. Useful for eyeballing URL shapes and
page boundaries without a running server.

Example:
  go run ./cmd/lician sitemap --variant yearly --page 1
  go run ./cmd/lician sitemap --variant quarterly --page 10 > page10.xml`,
	RunE: runSitemap,
}

var (
	sitemapVariant string
	sitemapPage    int64
)

func init() {
	rootCmd.AddCommand(sitemapCmd)

	sitemapCmd.Flags().StringVar(&sitemapVariant, "variant", "yearly", "sitemap variant (yearly|quarterly)")
	sitemapCmd.Flags().Int64Var(&sitemapPage, "page", 1, "1-based page number")
}

func runSitemap(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := newLogger(cfg)

	db, err := connectDatabase(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	var repo *universe.Repository
	if db != nil {
		defer db.Close()
		repo = universe.NewRepository(db.Pool)
	}

	roster, err := universe.LoadRoster(ctx, repo, cfg.Roster.FilePath, log)
	if err != nil {
		return fmt.Errorf("load roster: %w", err)
	}

	yearly, quarterly := buildEnumerators(cfg, roster, time.Now())

	var enum *sitemap.Enumerator
	switch sitemapVariant {
	case sitemap.VariantYearly:
		enum = yearly
	case sitemap.VariantQuarterly:
		enum = quarterly
	default:
		return fmt.Errorf("unknown variant %q (valid: yearly, quarterly)", sitemapVariant)
	}

	entries := enum.Page(sitemapPage, time.Now())
	body, err := sitemap.Render(entries)
	if err != nil {
		return fmt.Errorf("render sitemap page: %w", err)
	}

	os.Stdout.Write(body)
	fmt.Fprintf(os.Stderr, "\n%d URLs (page %d of %d, %d total)\n",
		len(entries), sitemapPage, enum.PageCount(), enum.TotalURLs())

	return nil
}
