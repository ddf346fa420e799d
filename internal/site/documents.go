// Package site reads and writes the three documents the tracker
// publishes: the timeline page, the RSS feed, and the scan brief the
// automated researcher is primed with.
package site

import (
	"fmt"
	"os"
)

// Paths locates the tracked documents on disk.
type Paths struct {
	Index string
	Feed  string
	Brief string
}

// Documents holds the full text of the tracked documents. Merge
// operations rewrite these strings; regions no operation touches are
// written back byte for byte.
type Documents struct {
	Index string
	Feed  string
	Brief string
}

// Load reads all three documents. Every file must exist: applying an
// update against a partial checkout would silently drop content.
func Load(p Paths) (*Documents, error) {
	index, err := os.ReadFile(p.Index)
	if err != nil {
		return nil, fmt.Errorf("read index page: %w", err)
	}

	feed, err := os.ReadFile(p.Feed)
	if err != nil {
		return nil, fmt.Errorf("read feed: %w", err)
	}

	brief, err := os.ReadFile(p.Brief)
	if err != nil {
		return nil, fmt.Errorf("read scan brief: %w", err)
	}

	return &Documents{
		Index: string(index),
		Feed:  string(feed),
		Brief: string(brief),
	}, nil
}

// Save writes all three documents back to disk.
func Save(p Paths, d *Documents) error {
	if err := os.WriteFile(p.Index, []byte(d.Index), 0644); err != nil {
		return fmt.Errorf("write index page: %w", err)
	}
	if err := os.WriteFile(p.Feed, []byte(d.Feed), 0644); err != nil {
		return fmt.Errorf("write feed: %w", err)
	}
	if err := os.WriteFile(p.Brief, []byte(d.Brief), 0644); err != nil {
		return fmt.Errorf("write scan brief: %w", err)
	}
	return nil
}
