package cli

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate keeps user config files and CIF_* variables out of the test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, k := range []string{EnvConfig, EnvLogLevel, EnvJPEGQuality, EnvOutputFormat} {
		t.Setenv(k, "")
	}
}

func runCmd(t *testing.T, stdin []byte, args ...string) (code int, stdout, stderr *bytes.Buffer) {
	t.Helper()
	stdout, stderr = &bytes.Buffer{}, &bytes.Buffer{}
	code = Run(args, Env{Stdin: bytes.NewReader(stdin), Stdout: stdout, Stderr: stderr})
	return code, stdout, stderr
}

func TestRunGeneratorToFileAndBack(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	tile := filepath.Join(dir, "tile.png")

	code, _, stderr := runCmd(t, nil, "-o", tile, "constantColor", "-color", "hsl(120,100%,25%)", "-size", "6x4")
	require.Equal(t, 0, code, stderr.String())

	img, err := imaging.Open(tile)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 6, 4), img.Bounds())
	assert.Equal(t, color.NRGBA{0, 128, 0, 255}, color.NRGBAModel.Convert(img.At(1, 1)))

	out := filepath.Join(dir, "out.jpg")
	code, _, stderr = runCmd(t, nil, "-i", tile, "-o", out, "-quality", "80",
		"resize", "-size", "12x0", "flop")
	require.Equal(t, 0, code, stderr.String())
	img, err = imaging.Open(out)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 12, 8), img.Bounds())
}

func TestRunStdinToStdout(t *testing.T) {
	isolate(t)
	var in bytes.Buffer
	require.NoError(t, imaging.Encode(&in, imaging.New(3, 2, color.White), imaging.PNG))

	code, stdout, stderr := runCmd(t, in.Bytes(), "-o", "STDOUT", "colorInvert")
	require.Equal(t, 0, code, stderr.String())

	img, err := imaging.Decode(stdout)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())
	assert.Equal(t, color.NRGBA{0, 0, 0, 255}, color.NRGBAModel.Convert(img.At(0, 0)))
}

func TestRunPatternInput(t *testing.T) {
	isolate(t)
	code, stdout, stderr := runCmd(t, nil, "-i", "pattern:gold", "-format", "bmp", "crop", "-rectangle", "10x10+5+5")
	require.Equal(t, 0, code, stderr.String())
	img, err := imaging.Decode(stdout)
	require.NoError(t, err)
	assert.Equal(t, 10, img.Bounds().Dx())
}

func TestRunBadTokenExitsOne(t *testing.T) {
	isolate(t)
	code, stdout, stderr := runCmd(t, nil, "-o", "-", "constantColor", "-color", "rgb(256,0,0)")
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout.String())
	msg := stderr.String()
	assert.True(t, strings.HasPrefix(msg, "cif: "), msg)
	assert.Contains(t, msg, "rgb(256,0,0)")
	assert.Contains(t, msg, "out of range")
}

func TestRunUsageErrors(t *testing.T) {
	isolate(t)
	code, _, stderr := runCmd(t, nil, "gaussianBlur", "-sigma", "1")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr.String(), "valid: -radius")

	code, _, _ = runCmd(t, nil, "-nosuchflag")
	assert.Equal(t, 2, code)

	code, _, _ = runCmd(t, nil, "-o", "out.webp", "-i", "pattern:red", "flip")
	assert.Equal(t, 1, code)
}

func TestRunInformational(t *testing.T) {
	isolate(t)

	code, stdout, _ := runCmd(t, nil, "-version")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "cif version "+Version)

	code, stdout, _ = runCmd(t, nil, "-list")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "Generator:")
	assert.Contains(t, stdout.String(), "linearGradient")

	code, stdout, _ = runCmd(t, nil, "-list", "blur")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "unsharpMask")
	assert.NotContains(t, stdout.String(), "crop")

	code, stdout, _ = runCmd(t, nil, "-list", "colors")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "#ff0000ff")

	code, stdout, _ = runCmd(t, nil, "-help", "vignette")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "-intensity (number, optional)")

	code, _, _ = runCmd(t, nil, "-help", "nope")
	assert.Equal(t, 1, code)
}

func TestRunVerboseLogsFilters(t *testing.T) {
	isolate(t)
	code, _, stderr := runCmd(t, nil, "-verbose", "-i", "pattern:stripes", "-o", "-", "grayscale")
	require.Equal(t, 0, code)
	assert.Contains(t, stderr.String(), "filter=grayscale")
}

func TestLoadConfigPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[output]
jpeg_quality = 70
format = "jpg"

[log]
level = "info"
`), 0o644))

	env := map[string]string{EnvJPEGQuality: "60"}
	cfg, err := loadConfig(path, func(k string) string { return env[k] })
	require.NoError(t, err)
	assert.Equal(t, 60, cfg.Output.JPEGQuality, "environment beats file")
	assert.Equal(t, "jpg", cfg.Output.Format, "file beats defaults")
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, DefaultRepository, cfg.Update.Repository)

	env = map[string]string{"XDG_CONFIG_HOME": dir}
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "cif"), 0o755))
	require.NoError(t, os.Rename(path, filepath.Join(dir, "cif", "config.toml")))
	cfg, err = loadConfig("", func(k string) string { return env[k] })
	require.NoError(t, err)
	assert.Equal(t, 70, cfg.Output.JPEGQuality)
}

func TestLoadConfigErrors(t *testing.T) {
	none := func(string) string { return "" }

	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.toml"), none)
	assert.Error(t, err, "an explicit config file must exist")

	empty := t.TempDir()
	cfg, err := loadConfig("", func(k string) string {
		if k == "XDG_CONFIG_HOME" {
			return empty
		}
		return ""
	})
	require.NoError(t, err, "the default location may be missing")
	assert.Equal(t, DefaultConfig(), cfg)

	bad := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[output\n"), 0o644))
	_, err = loadConfig(bad, none)
	assert.Error(t, err)

	_, err = loadConfig("", func(k string) string {
		switch k {
		case "XDG_CONFIG_HOME":
			return empty
		case EnvJPEGQuality:
			return "high"
		}
		return ""
	})
	assert.Error(t, err)

	_, err = loadConfig("", func(k string) string {
		switch k {
		case "XDG_CONFIG_HOME":
			return empty
		case EnvLogLevel:
			return "chatty"
		}
		return ""
	})
	assert.ErrorContains(t, err, "chatty")
}
