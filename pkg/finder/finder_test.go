package finder_test

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/phpfix/pkg/finder"
)

func testFs(t *testing.T, paths ...string) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	for _, path := range paths {
		require.NoError(t, afero.WriteFile(fsys, path, []byte("<?php\n"), 0o644))
	}
	return fsys
}

func TestFind(t *testing.T) {
	fsys := testFs(t,
		"src/a.php",
		"src/nested/deep/b.php",
		"src/readme.md",
		"vendor/lib/c.php",
		"top.php",
	)

	tests := []struct {
		name    string
		include []string
		exclude []string
		want    []string
	}{
		{
			name:    "all php files",
			include: []string{"**/*.php"},
			want:    []string{"src/a.php", "src/nested/deep/b.php", "top.php", "vendor/lib/c.php"},
		},
		{
			name:    "exclude vendor",
			include: []string{"**/*.php"},
			exclude: []string{"vendor/**"},
			want:    []string{"src/a.php", "src/nested/deep/b.php", "top.php"},
		},
		{
			name:    "narrow include",
			include: []string{"src/**/*.php"},
			want:    []string{"src/a.php", "src/nested/deep/b.php"},
		},
		{
			name:    "nothing matches",
			include: []string{"**/*.js"},
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := finder.NewDefaultFinder(fsys, tt.include, tt.exclude)
			got, err := f.Find(context.Background(), ".")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFind_Subdirectory(t *testing.T) {
	fsys := testFs(t, "src/a.php", "other/b.php")

	f := finder.NewDefaultFinder(fsys, []string{"**/*.php"}, nil)
	got, err := f.Find(context.Background(), "src")
	require.NoError(t, err)
	assert.Equal(t, []string{"src/a.php"}, got)
}
