package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/plotplan/plotplan/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the layout and artifact cache",
	}

	cmd.AddCommand(c.cacheInfoCommand())
	cmd.AddCommand(c.cacheClearCommand())

	return cmd
}

// cacheInfoCommand creates the "cache info" subcommand.
func (c *CLI) cacheInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the cache backend and contents",
		RunE: func(cmd *cobra.Command, args []string) error {
			printInfo("Backend: %s", c.Config.Cache.Backend)
			printDetail("TTL: %dh", c.Config.Cache.TTLHours)

			if c.Config.Cache.Backend == "redis" {
				printDetail("Redis: %s (db %d)", c.Config.Cache.Redis.Addr, c.Config.Cache.Redis.DB)
				return nil
			}
			if c.Config.Cache.Backend != "file" {
				return nil
			}

			dir, err := config.CacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			count, size := countCacheEntries(dir)
			printDetail("Directory: %s", dir)
			printDetail("Entries: %d (%.1f KiB)", count, float64(size)/1024)
			return nil
		},
	}
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached layouts and artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := config.CacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}

			if _, err := os.Stat(dir); os.IsNotExist(err) {
				printInfo("Cache is empty")
				return nil
			}

			count := 0
			err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
				if err != nil {
					return nil // Skip errors, continue walking
				}
				if path == dir {
					return nil
				}
				if !info.IsDir() {
					if err := os.Remove(path); err == nil {
						count++
					}
				}
				return nil
			})
			if err != nil {
				return err
			}

			// Clean up empty subdirectories
			_ = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
				if err != nil || path == dir {
					return nil
				}
				if info.IsDir() {
					os.Remove(path)
				}
				return nil
			})

			printSuccess("Cleared %d cached entries", count)
			printDetail("Directory: %s", dir)
			return nil
		},
	}
}

// countCacheEntries walks the cache directory counting files and bytes.
func countCacheEntries(dir string) (count int, size int64) {
	_ = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		count++
		size += info.Size()
		return nil
	})
	return count, size
}
