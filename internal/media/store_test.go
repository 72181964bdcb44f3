package media

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Save(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, "/media/")

	url, err := store.Save(context.Background(), "airplanes", "Boeing 737 MAX", ".PNG", strings.NewReader("png-bytes"))

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/media/airplanes/boeing-737-max-"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	data, err := os.ReadFile(filepath.Join(dir, "airplanes", filepath.Base(url)))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestStore_Save_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewStore(t.TempDir(), "/media").Save(ctx, "airplanes", "a", ".png", strings.NewReader("x"))

	assert.ErrorIs(t, err, context.Canceled)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "airbus-a320", slugify("  Airbus A320 "))
	assert.Equal(t, "tu-154", slugify("Tu--154!"))
}
