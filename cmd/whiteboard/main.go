package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"strings"
	"time"

	"github.com/ivlev/whiteboard/internal/board"
	"github.com/ivlev/whiteboard/internal/config"
	"github.com/ivlev/whiteboard/internal/export"
	"github.com/ivlev/whiteboard/internal/history"
	"github.com/ivlev/whiteboard/internal/identity"
	"github.com/ivlev/whiteboard/internal/notify"
	"github.com/ivlev/whiteboard/internal/scene"
	"github.com/ivlev/whiteboard/internal/source"
	"github.com/ivlev/whiteboard/internal/system"
)

func main() {
	configPtr := flag.String("config", "", "Path to YAML config (optional)")
	boardPtr := flag.String("board", "", "Board file to load (YAML)")
	savePtr := flag.String("save", "", "Write the board file after running")
	importPtr := flag.String("import", "", "PDF or image file/directory to place on the board")
	exportPtr := flag.String("export", "", "Render the board to a PNG/JPEG still")
	thumbPtr := flag.Int("thumb", 0, "Also write a thumbnail of the given width next to -export")
	qrPtr := flag.String("qr", "", "Write a share QR code for this URL next to -export")
	animatePtr := flag.String("animate", "", "Start a preset on a shape before exporting frames, as eid:preset")
	framesPtr := flag.Int("frames", 0, "Number of animation frames to export into <export>_frames/")
	demoPtr := flag.Bool("demo", false, "Populate an empty board with a sample scene")

	flag.Parse()

	cfg := config.Default()
	if *configPtr != "" {
		var err error
		cfg, err = config.LoadFile(*configPtr)
		if err != nil {
			log.Fatalf("[-] config: %v", err)
		}
	}

	depth := cfg.HistoryDepth
	if depth <= 0 {
		depth = system.SuggestHistoryDepth(history.DefaultCapacity, 500)
	}

	b := board.New(notify.LogSink{}, nil, depth)
	fmt.Printf("[*] Board %dx%d, history depth %d\n", cfg.Width, cfg.Height, depth)

	if *boardPtr != "" {
		entry, err := scene.ReadBoard(*boardPtr)
		if err != nil {
			log.Fatalf("[-] load board: %v", err)
		}
		if err := b.Load(entry); err != nil {
			log.Fatalf("[-] load board: %v", err)
		}
		fmt.Printf("[*] Loaded %s: %d shapes\n", *boardPtr, b.NodeCount())
	}

	if *demoPtr && b.NodeCount() == 0 {
		populateDemo(b)
		fmt.Printf("[*] Demo scene: %d shapes\n", b.NodeCount())
	}

	if *importPtr != "" {
		src, err := source.Open(*importPtr)
		if err != nil {
			log.Fatalf("[-] import: %v", err)
		}
		defer src.Close()
		b.Batch(func() {
			for page := 0; page < src.PageCount(); page++ {
				eid, err := b.ImportPage(src, page, 40+float64(page)*30, 40+float64(page)*30, float64(cfg.Width)*0.6)
				if err != nil {
					log.Printf("[!] page %d: %v", page, err)
					continue
				}
				fmt.Printf("[*] Imported page %d as %s\n", page+1, eid)
			}
		})
	}

	renderer := export.NewRenderer(cfg.Width, cfg.Height, cfg.Background, cfg.ImportDPI)

	if *exportPtr != "" {
		if *animatePtr != "" && *framesPtr > 0 {
			if err := exportFrames(b, renderer, cfg, *animatePtr, *exportPtr, *framesPtr); err != nil {
				log.Fatalf("[-] frames: %v", err)
			}
		}

		img := renderer.Render(b.Snapshot())
		if err := writeStill(img, *exportPtr); err != nil {
			log.Fatalf("[-] export: %v", err)
		}
		fmt.Printf("[*] Exported %s\n", *exportPtr)

		if *thumbPtr > 0 {
			thumbPath := withSuffix(*exportPtr, "_thumb")
			if err := export.WritePNG(export.Thumbnail(img, *thumbPtr), thumbPath); err != nil {
				log.Fatalf("[-] thumbnail: %v", err)
			}
			fmt.Printf("[*] Thumbnail %s\n", thumbPath)
		}
		renderer.Release(img)

		if *qrPtr != "" {
			qrPath := withSuffix(*exportPtr, "_qr")
			if err := export.WriteShareQR(*qrPtr, qrPath, 256); err != nil {
				log.Fatalf("[-] qr: %v", err)
			}
			fmt.Printf("[*] Share QR %s\n", qrPath)
		}
	}

	if *savePtr != "" {
		if err := scene.WriteBoard(b.Snapshot(), *savePtr); err != nil {
			log.Fatalf("[-] save board: %v", err)
		}
		fmt.Printf("[*] Saved %s\n", *savePtr)
	}
}

// exportFrames runs the preset on the requested shape and writes one PNG
// per frame. Snapshots are taken on the board's own context; only the
// rasterization fans out.
func exportFrames(b *board.Board, renderer *export.Renderer, cfg config.Config, spec, exportPath string, frames int) error {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return fmt.Errorf("bad -animate %q, want eid:preset", spec)
	}
	eid, preset := identity.EID(parts[0]), parts[1]

	applied, err := b.StartAnimation(eid, preset)
	if err != nil {
		return err
	}
	if !applied {
		return fmt.Errorf("preset %s not applied to %s", preset, eid)
	}

	step := time.Second / time.Duration(cfg.FPS)
	now := time.Now()
	entries := make([]*scene.Entry, frames)
	for i := 0; i < frames; i++ {
		now = now.Add(step)
		b.Tick(now)
		entries[i] = b.Snapshot()
	}
	b.StopAnimation(eid)

	dir := strings.TrimSuffix(exportPath, ".png")
	dir = strings.TrimSuffix(dir, ".jpg") + "_frames"
	if err := renderer.WriteFrames(entries, dir, cfg.Workers); err != nil {
		return err
	}
	fmt.Printf("[*] Wrote %d frames to %s\n", frames, dir)
	return nil
}

func writeStill(img image.Image, path string) error {
	if strings.HasSuffix(strings.ToLower(path), ".jpg") || strings.HasSuffix(strings.ToLower(path), ".jpeg") {
		return export.WriteJPEG(img, path, 85)
	}
	return export.WritePNG(img, path)
}

func populateDemo(b *board.Board) {
	b.Batch(func() {
		b.AddRect(80, 80, 240, 140, "#4fc3f7")
		b.AddEllipse(400, 120, 90, 60, "#ffb74d")
		b.AddLine(100, 320, 380, 40, scene.Stroke{Color: "#555555", Width: 4})
		b.AddPath(520, 300, []scene.Point{{X: 0, Y: 0}, {X: 40, Y: 60}, {X: 90, Y: 20}, {X: 140, Y: 70}}, scene.Stroke{Color: "#e57373", Width: 3})
		b.AddText(120, 420, "whiteboard", 24, "#333333")
	})
}

func withSuffix(path, suffix string) string {
	for _, ext := range []string{".png", ".jpg", ".jpeg"} {
		if strings.HasSuffix(path, ext) {
			return strings.TrimSuffix(path, ext) + suffix + ".png"
		}
	}
	return path + suffix + ".png"
}
