package files

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strconv"
)

// Years lists the admission years that have a catalog workbook under the
// data root, newest first. A missing root yields an empty list.
func (l *Locator) Years() ([]int, error) {
	entries, err := os.ReadDir(l.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []int{}, nil
		}
		return nil, fmt.Errorf("failed to read directory %s: %w", l.root, err)
	}

	years := []int{}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		year, err := strconv.Atoi(entry.Name())
		if err != nil || year <= 0 {
			continue
		}
		if l.Exists(l.CatalogPath(year)) {
			years = append(years, year)
		}
	}

	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years, nil
}
