// Command dotfactory converts fonts and images into C bitmap arrays for
// microcontroller displays.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/wbrown/dotfactory"
	"github.com/wbrown/dotfactory/codepage"
	"github.com/wbrown/dotfactory/imageutil"
	"github.com/wbrown/dotfactory/internal/debug"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// defaultText is every printable ASCII character.
const defaultText = "<<0x20-0x7E>>"

func main() {
	os.Exit(run())
}

func run() int {
	log.SetFlags(0)
	log.SetPrefix("dotfactory: ")

	// A missing .env is not an error.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("failed to load .env: %v", err)
		return 1
	}

	var (
		fontPath     string
		size, dpi    float64
		text         string
		textFile     string
		imagePath    string
		background   string
		invert       bool
		resize       string
		tiles        string
		tilesPerLine int
		configPath   string
		name         string
		codePage     string
		out          string
		preview      string
		previewScale int
		workers      int
		debugMode    bool
		debugPretty  bool
		listPages    bool
		showVersion  bool
		showHelp     bool
	)

	pflag.StringVarP(&fontPath, "font", "f", "", "Font file (.ttf, .otf, .ttc, .bdf) or 'builtin'")
	pflag.Float64VarP(&size, "size", "s", 12, "Font size in points")
	pflag.Float64Var(&dpi, "dpi", 72, "Resolution the font size is measured at")
	pflag.StringVarP(&text, "text", "t", defaultText, "Characters to generate; <<start-end>> selects offset ranges")
	pflag.StringVar(&textFile, "text-file", "", "Read the characters to generate from a file")
	pflag.StringVarP(&imagePath, "image", "i", "", "Image to convert (png, jpeg, gif, bmp, tiff)")
	pflag.StringVar(&background, "background", "auto", "Background colours: auto, threshold:N or #rrggbb,...")
	pflag.BoolVar(&invert, "invert", false, "Swap background and foreground")
	pflag.StringVar(&resize, "resize", "", "Resize the image to WxH before conversion (0 keeps aspect ratio)")
	pflag.StringVar(&tiles, "tiles", "", "Treat the image as a tile sheet with WxH tiles ('auto' for 16x16 grid)")
	pflag.IntVar(&tilesPerLine, "tiles-per-line", 0, "Tiles per sheet row (0 = as many as fit)")
	pflag.StringVarP(&configPath, "config", "c", os.Getenv("DOTFACTORY_CONFIG"), "YAML output configuration")
	pflag.StringVarP(&name, "name", "n", "", "Name used in comments and variable names")
	pflag.StringVar(&codePage, "codepage", "", "Code page id or name (overrides the configuration)")
	pflag.StringVarP(&out, "out", "o", "", "Write <out>.c and <out>.h instead of printing")
	pflag.StringVar(&preview, "preview", "", "Write a preview of the encoded bitmaps (png, bmp, gif or tiff by extension)")
	pflag.IntVar(&previewScale, "preview-scale", 4, "Preview enlargement factor")
	pflag.IntVarP(&workers, "workers", "j", 0, "Glyphs processed in parallel (0 = one per CPU)")
	pflag.BoolVar(&debugMode, "debug", false, "Trace the pipeline to stderr")
	pflag.BoolVar(&debugPretty, "debug-pretty", false, "Use pretty format for debug output (default: JSON)")
	pflag.BoolVar(&listPages, "list-codepages", false, "List the supported code pages")
	pflag.BoolVarP(&showVersion, "version", "v", false, "Show version information")
	pflag.BoolVarP(&showHelp, "help", "h", false, "Show help message")
	pflag.Parse()

	if showHelp {
		printHelp(os.Stdout)
		return 0
	}
	if showVersion {
		fmt.Printf("dotfactory version %s (commit: %s, built: %s)\n", version, commit, date)
		return 0
	}
	if listPages {
		printCodePages(os.Stdout)
		return 0
	}
	if (fontPath == "") == (imagePath == "") {
		log.Print("exactly one of --font or --image is required")
		printHelp(os.Stderr)
		return 1
	}

	cfg := dotfactory.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = dotfactory.LoadConfig(configPath); err != nil {
			log.Print(err)
			return 1
		}
	}
	if codePage != "" {
		page, err := codepage.ByName(codePage)
		if err != nil {
			log.Print(err)
			return 1
		}
		cfg.CodePage = page.ID()
	}
	if name != "" {
		cfg.DisplayName = name
	}

	opts := []dotfactory.GeneratorOption{
		dotfactory.WithConfig(cfg),
		dotfactory.WithWorkers(workers),
	}
	envPretty := debug.InitFromEnv()
	if debugMode {
		debug.SetEnabled(true)
	}
	if debug.Enabled() {
		var sink debug.Sink = debug.NewJSONSink(os.Stderr)
		if debugPretty || envPretty {
			sink = debug.NewPrettySink(os.Stderr)
		}
		opts = append(opts, dotfactory.WithDebugSink(sink))
	}
	gen := dotfactory.NewGenerator(opts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var (
		output dotfactory.Output
		sheet  *imageutil.RGBAImage
	)
	switch {
	case fontPath != "":
		if textFile != "" {
			data, err := os.ReadFile(textFile)
			if err != nil {
				log.Printf("failed to read text file: %v", err)
				return 1
			}
			text = string(data)
		}
		src, err := dotfactory.LoadFont(fontPath, size, dpi)
		if err != nil {
			log.Print(err)
			return 1
		}
		defer src.Close()
		output, sheet, err = generateFont(ctx, gen, text, src, preview != "", previewScale)
		if err != nil {
			log.Print(err)
			return 1
		}

	default:
		img, err := imageutil.LoadImage(imagePath)
		if err != nil {
			log.Print(err)
			return 1
		}
		if resize != "" {
			w, h, err := parseSize(resize)
			if err != nil {
				log.Print(err)
				return 1
			}
			img = resizeImage(img, w, h)
		}
		cls, err := parseBackground(background, img)
		if err != nil {
			log.Print(err)
			return 1
		}
		if invert {
			cls = cls.Invert()
		}
		imageName := baseName(imagePath)

		if tiles == "" {
			output, sheet, err = generateImage(ctx, gen, img, cls, imageName, preview != "", previewScale)
			if err != nil {
				log.Print(err)
				return 1
			}
			break
		}

		tile, err := parseTiles(tiles)
		if err != nil {
			log.Print(err)
			return 1
		}
		src, err := dotfactory.NewTileSheet(img, cls, imageName, tile, tilesPerLine)
		if err != nil {
			log.Print(err)
			return 1
		}
		if textFile != "" {
			data, err := os.ReadFile(textFile)
			if err != nil {
				log.Printf("failed to read text file: %v", err)
				return 1
			}
			text = string(data)
		}
		output, sheet, err = generateFont(ctx, gen, text, src, preview != "", previewScale)
		if err != nil {
			log.Print(err)
			return 1
		}
	}

	if err := writeOutput(output, out); err != nil {
		log.Print(err)
		return 1
	}
	if sheet != nil {
		if err := imageutil.SaveImage(sheet, preview); err != nil {
			log.Print(err)
			return 1
		}
		log.Printf("preview written to %s", preview)
	}
	return 0
}

func generateFont(ctx context.Context, gen *dotfactory.Generator, text string, src dotfactory.GlyphSource,
	wantPreview bool, scale int) (dotfactory.Output, *imageutil.RGBAImage, error) {
	fd, err := gen.GenerateFont(ctx, text, src)
	if err != nil {
		return dotfactory.Output{}, nil, err
	}
	output, err := fd.Render()
	if err != nil {
		return dotfactory.Output{}, nil, err
	}
	log.Printf("%s: %d characters, %d bytes", fd.Name, len(fd.Chars), fd.BitmapBytes())
	if !wantPreview {
		return output, nil, nil
	}
	sheet, err := dotfactory.Preview(fd, scale)
	return output, sheet, err
}

func generateImage(ctx context.Context, gen *dotfactory.Generator, img *imageutil.RGBAImage, cls dotfactory.Classification,
	name string, wantPreview bool, scale int) (dotfactory.Output, *imageutil.RGBAImage, error) {
	id, err := gen.GenerateImage(ctx, img, cls, name)
	if err != nil {
		return dotfactory.Output{}, nil, err
	}
	output, err := id.Render()
	if err != nil {
		return dotfactory.Output{}, nil, err
	}
	log.Printf("%s: %dx%d, %d bytes", id.Name, id.Glyph.Width(), id.Glyph.Height(), len(id.Glyph.Pages))
	if !wantPreview {
		return output, nil, nil
	}
	sheet, err := dotfactory.PreviewImage(id, scale)
	return output, sheet, err
}

// writeOutput prints the source and header, or writes them next to each
// other as <out>.c and <out>.h.
func writeOutput(output dotfactory.Output, out string) error {
	if out == "" {
		fmt.Print(output.Source)
		fmt.Println()
		fmt.Print(output.Header)
		return nil
	}
	out = strings.TrimSuffix(out, filepath.Ext(out))
	if err := os.WriteFile(out+".c", []byte(output.Source), 0644); err != nil {
		return fmt.Errorf("failed to write source: %w", err)
	}
	if err := os.WriteFile(out+".h", []byte(output.Header), 0644); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	log.Printf("wrote %s.c and %s.h", out, out)
	return nil
}

func baseName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, "Usage: dotfactory --font FILE [options]")
	fmt.Fprintln(w, "       dotfactory --image FILE [--tiles WxH] [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	pflag.CommandLine.SetOutput(w)
	pflag.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  DOTFACTORY_CONFIG        default for --config")
	fmt.Fprintln(w, "  DOTFACTORY_DEBUG=1       enable debug tracing")
	fmt.Fprintln(w, "  DOTFACTORY_DEBUG_PRETTY=1 pretty debug output")
	fmt.Fprintln(w, "Variables may also be set in a .env file in the working directory.")
}

func printCodePages(w io.Writer) {
	for _, id := range codepage.IDs() {
		fmt.Fprintf(w, "%6d  %s\n", id, codepage.Name(id))
	}
}
