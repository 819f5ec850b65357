package render

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"

	// Decoders for the asset formats the catalog stores.
	_ "image/jpeg"
	_ "image/png"

	canvas "github.com/Peace-Corp/modoo-canvas"
)

// Loader resolves an asset reference to a decoded image. Loading is the
// only asynchronous step in rendering; it runs entirely in phase one so
// that composition is a pure synchronous function of its inputs.
type Loader interface {
	Load(ctx context.Context, url string) (image.Image, error)
}

// DirLoader resolves asset references as paths under a root directory.
// Production uses a blob-storage loader with the same interface; DirLoader
// serves the CLI and tests.
type DirLoader struct {
	Root string
}

// Load implements Loader.
func (d DirLoader) Load(_ context.Context, url string) (image.Image, error) {
	f, err := os.Open(filepath.Join(d.Root, filepath.FromSlash(url)))
	if err != nil {
		return nil, fmt.Errorf("load asset %q: %w", url, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode asset %q: %w", url, err)
	}
	return img, nil
}

// Assets is the result of the loading phase: every image that could be
// resolved, keyed by its reference. Missing entries are not errors here;
// the compose phase degrades per layer.
type Assets struct {
	images map[string]image.Image
}

// Image returns the loaded image for a reference.
func (a Assets) Image(url string) (image.Image, bool) {
	img, ok := a.images[url]
	return img, ok
}

// Len returns the number of loaded assets.
func (a Assets) Len() int { return len(a.images) }

// LoadAssets runs the loading phase for one side: the mockup image plus
// every image layer's source. A failed asset is logged and skipped; the
// later compose proceeds without that layer's visual content, and geometry
// or metadata extraction elsewhere is unaffected.
func LoadAssets(ctx context.Context, loader Loader, side canvas.ProductSide, layers []canvas.Layer) Assets {
	refs := make([]string, 0, len(layers)+1)
	if side.Mockup.URL != "" {
		refs = append(refs, side.Mockup.URL)
	}
	for _, l := range layers {
		if l.Kind == canvas.LayerImage && l.SourceURL != "" {
			refs = append(refs, l.SourceURL)
		}
	}

	assets := Assets{images: make(map[string]image.Image, len(refs))}
	for _, ref := range refs {
		if _, dup := assets.images[ref]; dup {
			continue
		}
		img, err := loader.Load(ctx, ref)
		if err != nil {
			canvas.Logger().Warn("asset failed to load, render will skip it",
				"side", side.ID, "asset", ref, "error", err)
			continue
		}
		assets.images[ref] = img
	}
	return assets
}
