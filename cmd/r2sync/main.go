package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	miniorepo "github.com/sandsky/travel-backend/internal/repository/minio"
	"github.com/sandsky/travel-backend/internal/repository/postgres"
)

// urlColumns is every stored column that can carry a public object URL.
var urlColumns = []struct {
	table  string
	column string
}{
	{"destination", "card_image_url"},
	{"destination", "hero_image_url"},
	{"destination_gallery_image", "image_url"},
	{"trip", "card_image_url"},
	{"trip", "hero_image_url"},
	{"blog_post", "hero_image_url"},
	{"blog_post", "card_image_url"},
	{"blog_section", "section_image_url"},
	{"seo_entry", "main_image_url"},
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "r2sync",
		Short:        "Mirror and maintain the R2 media bucket",
		SilenceUsage: true,
	}

	viper.SetEnvPrefix("R2SYNC")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	flags := root.PersistentFlags()
	flags.String("endpoint", "", "R2 endpoint host")
	flags.String("access-key", "", "R2 access key id")
	flags.String("secret-key", "", "R2 secret access key")
	flags.String("bucket", "", "bucket name")
	flags.Bool("use-ssl", true, "connect over TLS")
	flags.String("public-base-url", "", "public base URL objects are served from")
	if err := viper.BindPFlags(flags); err != nil {
		log.Fatalf("bind flags: %v", err)
	}

	var srcDir, uploadPrefix string
	uploadCmd := &cobra.Command{
		Use:   "upload",
		Short: "Upload a local tree to the bucket, preserving paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			storage, bucket, err := buildStorage()
			if err != nil {
				return err
			}
			return uploadTree(cmd.Context(), storage, bucket, srcDir, uploadPrefix)
		},
	}
	uploadCmd.Flags().StringVar(&srcDir, "src", "", "local directory to upload")
	uploadCmd.Flags().StringVar(&uploadPrefix, "prefix", "", "key prefix to upload under")
	_ = uploadCmd.MarkFlagRequired("src")

	var destDir, downloadPrefix string
	downloadCmd := &cobra.Command{
		Use:   "download",
		Short: "Download the bucket to a local tree, preserving paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			storage, bucket, err := buildStorage()
			if err != nil {
				return err
			}
			return downloadTree(cmd.Context(), storage, bucket, destDir, downloadPrefix)
		},
	}
	downloadCmd.Flags().StringVar(&destDir, "dest", "", "local directory to write into")
	downloadCmd.Flags().StringVar(&downloadPrefix, "prefix", "", "only download keys under this prefix")
	_ = downloadCmd.MarkFlagRequired("dest")

	var fromBase, toBase, databaseURL string
	var dryRun bool
	rewriteCmd := &cobra.Command{
		Use:   "rewrite-urls",
		Short: "Rewrite stored image URLs from one public base to another",
		RunE: func(cmd *cobra.Command, args []string) error {
			if fromBase == "" || toBase == "" {
				return fmt.Errorf("--from-base and --to-base are required")
			}
			if databaseURL == "" {
				databaseURL = os.Getenv("DATABASE_URL")
			}
			db, err := postgres.New(databaseURL)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			defer db.Close()
			return rewriteURLs(cmd.Context(), db, fromBase, toBase, dryRun)
		},
	}
	rewriteCmd.Flags().StringVar(&fromBase, "from-base", "", "old public base URL")
	rewriteCmd.Flags().StringVar(&toBase, "to-base", "", "new public base URL")
	rewriteCmd.Flags().StringVar(&databaseURL, "database-url", "", "Postgres DSN, falls back to DATABASE_URL")
	rewriteCmd.Flags().BoolVar(&dryRun, "dry-run", false, "report matches without updating")

	root.AddCommand(uploadCmd, downloadCmd, rewriteCmd)
	return root
}

func buildStorage() (*miniorepo.Storage, string, error) {
	endpoint := viper.GetString("endpoint")
	bucket := viper.GetString("bucket")
	if endpoint == "" || bucket == "" {
		return nil, "", fmt.Errorf("endpoint and bucket are required")
	}
	client, err := miniorepo.NewClient(
		endpoint,
		viper.GetString("access-key"),
		viper.GetString("secret-key"),
		viper.GetBool("use-ssl"),
	)
	if err != nil {
		return nil, "", fmt.Errorf("connect object storage: %w", err)
	}
	return miniorepo.NewStorage(client, viper.GetString("public-base-url")), bucket, nil
}

func uploadTree(ctx context.Context, storage *miniorepo.Storage, bucket, srcDir, prefix string) error {
	uploaded, failed := 0, 0
	err := filepath.WalkDir(srcDir, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if prefix != "" {
			key = strings.TrimSuffix(prefix, "/") + "/" + key
		}

		file, err := os.Open(path)
		if err != nil {
			log.Printf("err  %s: %v", key, err)
			failed++
			return nil
		}
		defer file.Close()
		info, err := file.Stat()
		if err != nil {
			log.Printf("err  %s: %v", key, err)
			failed++
			return nil
		}

		if _, err := storage.Upload(ctx, bucket, key, contentTypeFor(path), file, info.Size()); err != nil {
			log.Printf("err  %s: %v", key, err)
			failed++
			return nil
		}
		log.Printf("ok   %s (%d bytes)", key, info.Size())
		uploaded++
		return nil
	})
	if err != nil {
		return err
	}
	log.Printf("upload done: ok=%d failed=%d", uploaded, failed)
	return nil
}

func downloadTree(ctx context.Context, storage *miniorepo.Storage, bucket, destDir, prefix string) error {
	objects, err := storage.List(ctx, bucket, prefix)
	if err != nil {
		return err
	}

	downloaded, failed := 0, 0
	for _, object := range objects {
		target := filepath.Join(destDir, filepath.FromSlash(object.Key))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}

		reader, err := storage.Download(ctx, bucket, object.Key)
		if err != nil {
			log.Printf("err  %s: %v", object.Key, err)
			failed++
			continue
		}
		file, err := os.Create(target)
		if err != nil {
			reader.Close()
			log.Printf("err  %s: %v", object.Key, err)
			failed++
			continue
		}
		_, copyErr := io.Copy(file, reader)
		reader.Close()
		file.Close()
		if copyErr != nil {
			log.Printf("err  %s: %v", object.Key, copyErr)
			failed++
			continue
		}
		log.Printf("ok   %s (%d bytes)", object.Key, object.Size)
		downloaded++
	}
	log.Printf("download done: ok=%d failed=%d", downloaded, failed)
	return nil
}

func rewriteURLs(ctx context.Context, db *sqlx.DB, fromBase, toBase string, dryRun bool) error {
	fromBase = strings.TrimRight(fromBase, "/")
	toBase = strings.TrimRight(toBase, "/")
	pattern := fromBase + "%"

	total := 0
	for _, target := range urlColumns {
		if dryRun {
			var count int
			query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s LIKE $1`, target.table, target.column)
			if err := db.GetContext(ctx, &count, query, pattern); err != nil {
				return fmt.Errorf("%s.%s: %w", target.table, target.column, err)
			}
			log.Printf("%s.%s: %d row(s) would change", target.table, target.column, count)
			total += count
			continue
		}
		query := fmt.Sprintf(
			`UPDATE %s SET %s = REPLACE(%s, $1, $2) WHERE %s LIKE $3`,
			target.table, target.column, target.column, target.column,
		)
		result, err := db.ExecContext(ctx, query, fromBase, toBase, pattern)
		if err != nil {
			return fmt.Errorf("%s.%s: %w", target.table, target.column, err)
		}
		affected, _ := result.RowsAffected()
		log.Printf("%s.%s: %d row(s) updated", target.table, target.column, affected)
		total += int(affected)
	}

	mode := "updated"
	if dryRun {
		mode = "matched (dry-run)"
	}
	log.Printf("rewrite-urls done: %d row(s) %s", total, mode)
	return nil
}

func contentTypeFor(path string) string {
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); byExt != "" {
		return byExt
	}
	return "application/octet-stream"
}
