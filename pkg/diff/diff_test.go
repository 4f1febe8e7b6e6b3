package diff_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/walteh/phpfix/pkg/diff"
)

func TestStrings(t *testing.T) {
	assert.Empty(t, diff.Strings("same\n", "same\n"))

	d := diff.Strings("<?php return (1);\n", "<?php return 1;\n")
	assert.Contains(t, d, "-<?php return (1);")
	assert.Contains(t, d, "+<?php return 1;")
}

type sample struct {
	Exported   string
	unexported string
}

func TestExportedOnly(t *testing.T) {
	assert.Empty(t, diff.ExportedOnly(
		sample{Exported: "a", unexported: "x"},
		sample{Exported: "a", unexported: "y"},
	), "unexported fields are ignored")

	d := diff.ExportedOnly(sample{Exported: "a"}, sample{Exported: "b"})
	assert.NotEmpty(t, d)
}
