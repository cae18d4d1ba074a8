package battery

import (
	"fmt"
	_ "image/png" // texture decoding
	"io/fs"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// AssetPaths names the texture files inside an asset filesystem.
type AssetPaths struct {
	Matcap string `yaml:"matcap"`
	Light  string `yaml:"light"`
	// Shader is optional; DefaultShaderSource is used when empty.
	Shader string `yaml:"shader"`
}

// LoadAssets reads the textures (and optional shader) named by paths from
// fsys and pairs them with procedural battery geometry. A missing file is
// reported as ErrMissingTexture or ErrMissingShader.
func LoadAssets(fsys fs.FS, paths AssetPaths, segments int) (Assets, error) {
	matcap, err := loadImage(fsys, paths.Matcap)
	if err != nil {
		return Assets{}, fmt.Errorf("%w: matcap: %v", ErrMissingTexture, err)
	}
	light, err := loadImage(fsys, paths.Light)
	if err != nil {
		return Assets{}, fmt.Errorf("%w: light: %v", ErrMissingTexture, err)
	}
	shader := []byte(DefaultShaderSource)
	if paths.Shader != "" {
		shader, err = fs.ReadFile(fsys, paths.Shader)
		if err != nil {
			return Assets{}, fmt.Errorf("%w: %v", ErrMissingShader, err)
		}
	}
	a := Assets{
		Geometry: NewBatteryGeometry(segments),
		Shader:   shader,
		Matcap:   matcap,
		Light:    light,
	}
	if err := a.validate(); err != nil {
		return Assets{}, err
	}
	return a, nil
}

func loadImage(fsys fs.FS, path string) (*ebiten.Image, error) {
	if path == "" {
		return nil, fmt.Errorf("no path")
	}
	f, err := fsys.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := ebitenutil.NewImageFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}
